package tui

import (
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/bastiangx/shopsearch/pkg/catalog/catalogtest"
	"github.com/bastiangx/shopsearch/pkg/filter"
	tea "github.com/charmbracelet/bubbletea"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	m := NewModel(catalogtest.Sample(t), WithDelay(time.Hour), WithHistory([]string{"mug"}, []string{"lamp"}))
	t.Cleanup(m.sess.Close)
	return m
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestCycles(t *testing.T) {
	if got := nextPrice(filter.PriceOver50); got != filter.PriceAll {
		t.Errorf("nextPrice wraps to %v", got)
	}
	if got := nextPrice(filter.PriceAll); got != filter.PriceUnder10 {
		t.Errorf("nextPrice(all) = %v", got)
	}
	var ratings []int
	n := 0
	for range filter.RatingOptions {
		n = nextRating(n)
		ratings = append(ratings, n)
	}
	if !slices.Equal(ratings, []int{4, 3, 2, 0}) {
		t.Errorf("rating cycle = %v", ratings)
	}
	if got := nextSort(filter.SortNewest); got != filter.SortRelevance {
		t.Errorf("nextSort wraps to %v", got)
	}
}

func TestTypingIsDebounced(t *testing.T) {
	m := press(t, newTestModel(t), runes("lamp"))

	if m.input.Value() != "lamp" {
		t.Fatalf("input = %q", m.input.Value())
	}
	if !m.pending {
		t.Error("keystroke should leave the session pending")
	}
	if m.snap.Query != "" || len(m.snap.Suggestions) != 2 {
		t.Errorf("view changed before settling: %+v", m.snap)
	}
}

func TestEnterSubmits(t *testing.T) {
	m := press(t, newTestModel(t), runes("lamp"), tea.KeyMsg{Type: tea.KeyEnter})

	if m.snap.Submitted != "lamp" || m.pending {
		t.Fatalf("submitted = %q pending = %v", m.snap.Submitted, m.pending)
	}
	if got := catalogtest.IDs(m.snap.Results); !slices.Equal(got, []string{"p-07"}) {
		t.Errorf("results = %v", got)
	}
	if !strings.Contains(m.View(), "Desk Lamp") {
		t.Error("view does not show the result")
	}
}

func TestPickSuggestion(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})

	if m.snap.Submitted != "lamp" || m.input.Value() != "lamp" {
		t.Errorf("picked %q, input %q", m.snap.Submitted, m.input.Value())
	}
}

func TestFilterKeys(t *testing.T) {
	m := press(t, newTestModel(t),
		tea.KeyMsg{Type: tea.KeyCtrlP},
		tea.KeyMsg{Type: tea.KeyCtrlS},
		tea.KeyMsg{Type: tea.KeyTab},
	)
	want := filter.State{Category: "all", Price: filter.PriceUnder10, InStock: true, SortBy: filter.SortPriceLow}
	if m.snap.Filters != want {
		t.Errorf("filters = %+v", m.snap.Filters)
	}
	if got := catalogtest.IDs(m.snap.Quick); !slices.Equal(got, []string{"p-06"}) {
		t.Errorf("quick = %v", got)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	if !m.snap.Filters.IsDefault() {
		t.Errorf("filters not cleared: %+v", m.snap.Filters)
	}
}

func TestStaleSnapshotIgnored(t *testing.T) {
	m := press(t, newTestModel(t), tea.KeyMsg{Type: tea.KeyCtrlS})
	old := m.snap
	old.Version = 0
	old.Filters = filter.Default()

	m = press(t, m, snapshotMsg(old))
	if !m.snap.Filters.InStock {
		t.Error("older snapshot replaced newer one")
	}
}
