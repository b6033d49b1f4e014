package session_test

import (
	"net/url"
	"reflect"
	"testing"
	"time"

	"github.com/bastiangx/shopsearch/pkg/catalog/catalogtest"
	"github.com/bastiangx/shopsearch/pkg/filter"
	"github.com/bastiangx/shopsearch/pkg/session"
	"github.com/bastiangx/shopsearch/pkg/suggest"
)

var (
	recent   = []string{"wireless earbuds", "kitchen organizer", "travel backpack"}
	trending = []string{"smart watch", "led lights", "phone holder", "desk lamp"}
)

func newSession(t *testing.T, delay time.Duration) (*session.Session, chan session.Snapshot) {
	t.Helper()
	updates := make(chan session.Snapshot, 32)
	s := session.New(catalogtest.Sample(t),
		session.WithDelay(delay),
		session.WithHistory(recent, trending),
		session.WithListener(func(snap session.Snapshot) { updates <- snap }),
	)
	t.Cleanup(s.Close)
	return s, updates
}

func waitFor(t *testing.T, updates chan session.Snapshot) session.Snapshot {
	t.Helper()
	select {
	case snap := <-updates:
		return snap
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for snapshot")
		return session.Snapshot{}
	}
}

func TestInitialSnapshot(t *testing.T) {
	s, _ := newSession(t, time.Hour)
	snap := s.Snapshot()

	if len(snap.Suggestions) != len(recent)+len(trending) {
		t.Errorf("initial suggestions = %d, want %d", len(snap.Suggestions), len(recent)+len(trending))
	}
	if len(snap.Quick) != 10 || len(snap.Results) != 10 {
		t.Errorf("initial quick/results = %d/%d, want 10/10", len(snap.Quick), len(snap.Results))
	}
	if snap.Filters != filter.Default() {
		t.Errorf("initial filters = %+v", snap.Filters)
	}
}

func TestTypingIsDebounced(t *testing.T) {
	s, updates := newSession(t, 30*time.Millisecond)

	for _, in := range []string{"k", "ki", "kit", "kitchen"} {
		s.Type(in)
	}
	if got := s.Snapshot(); got.Input != "kitchen" || got.Query != "" {
		t.Errorf("before settle: Input = %q, Query = %q", got.Input, got.Query)
	}

	snap := waitFor(t, updates)
	if snap.Query != "kitchen" {
		t.Fatalf("settled query = %q, want kitchen", snap.Query)
	}
	if got, want := catalogtest.IDs(snap.Quick), []string{"p-03", "p-04", "p-07"}; !reflect.DeepEqual(got, want) {
		t.Errorf("quick = %v, want %v", got, want)
	}
	if len(snap.Suggestions) != 2 || snap.Suggestions[0].Text != "Kitchen Organizer" {
		t.Errorf("suggestions = %+v", snap.Suggestions)
	}
	if len(snap.Results) != 10 {
		t.Errorf("results page changed before submit: %d products", len(snap.Results))
	}

	select {
	case extra := <-updates:
		t.Errorf("unexpected second snapshot for query %q", extra.Query)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestFacetChangesApplyImmediately(t *testing.T) {
	s, updates := newSession(t, time.Hour)

	st := filter.Default()
	st.Price = filter.PriceUnder10
	snap := s.SetFilters(st)

	want := []string{"p-03", "p-06"}
	if got := catalogtest.IDs(snap.Quick); !reflect.DeepEqual(got, want) {
		t.Errorf("quick = %v, want %v", got, want)
	}
	if got := catalogtest.IDs(snap.Results); !reflect.DeepEqual(got, want) {
		t.Errorf("results = %v, want %v", got, want)
	}
	if got := waitFor(t, updates); got.Version != snap.Version {
		t.Errorf("listener saw version %d, want %d", got.Version, snap.Version)
	}

	snap = s.UpdateFilters(func(st *filter.State) { st.InStock = true })
	if got := catalogtest.IDs(snap.Results); !reflect.DeepEqual(got, []string{"p-06"}) {
		t.Errorf("results after in-stock = %v", got)
	}

	snap = s.ClearFilters()
	if !snap.Filters.IsDefault() || len(snap.Results) != 10 {
		t.Errorf("after clear: filters %+v, %d results", snap.Filters, len(snap.Results))
	}
}

func TestSubmit(t *testing.T) {
	s, _ := newSession(t, time.Hour)

	s.Type("   ")
	if _, ok := s.Submit(); ok {
		t.Error("Submit() of a blank box succeeded")
	}

	s.UpdateFilters(func(st *filter.State) { st.SortBy = filter.SortPriceHigh })
	s.Type("lamp")
	link, ok := s.Submit()
	if !ok {
		t.Fatal("Submit() = false")
	}
	if got := link.Encode(); got != "q=lamp&sort=price-high" {
		t.Errorf("link = %q", got)
	}

	snap := s.Snapshot()
	if snap.Submitted != "lamp" || snap.Query != "lamp" || s.Pending() {
		t.Errorf("after submit: submitted %q, query %q, pending %v", snap.Submitted, snap.Query, s.Pending())
	}
	if got := catalogtest.IDs(snap.Results); !reflect.DeepEqual(got, []string{"p-07"}) {
		t.Errorf("results = %v", got)
	}
	if got := s.Link().Encode(); got != "q=lamp&sort=price-high" {
		t.Errorf("Link() = %q", got)
	}
}

func TestSelectSuggestion(t *testing.T) {
	s, _ := newSession(t, time.Hour)
	s.Type("des")

	link := s.Select(suggest.Suggestion{Kind: suggest.KindProduct, Text: "Desk Lamp", Category: "home-kitchen"})
	if got := link.Encode(); got != "category=home-kitchen&q=Desk+Lamp" {
		t.Errorf("link = %q", got)
	}

	snap := s.Snapshot()
	if snap.Input != "Desk Lamp" || snap.Query != "Desk Lamp" || s.Pending() {
		t.Errorf("after select: input %q, query %q, pending %v", snap.Input, snap.Query, s.Pending())
	}
	if snap.Filters.Category != "home-kitchen" {
		t.Errorf("category = %q, want home-kitchen", snap.Filters.Category)
	}
	if got := catalogtest.IDs(snap.Results); !reflect.DeepEqual(got, []string{"p-07"}) {
		t.Errorf("results = %v", got)
	}

	link = s.Select(suggest.Suggestion{Kind: suggest.KindTrending, Text: "smart watch"})
	if got := link.Encode(); got != "category=home-kitchen&q=smart+watch" {
		t.Errorf("history pick changed the category: %q", got)
	}
}

func TestOpenDeepLink(t *testing.T) {
	s, _ := newSession(t, time.Hour)

	v, err := url.ParseQuery("q=e&price=over-50&sort=nonsense")
	if err != nil {
		t.Fatal(err)
	}
	snap := s.Open(v)
	if snap.Submitted != "e" || snap.Filters.Price != filter.PriceOver50 || snap.Filters.SortBy != filter.SortRelevance {
		t.Errorf("Open() snapshot = %+v", snap)
	}
	if got := catalogtest.IDs(snap.Results); !reflect.DeepEqual(got, []string{"p-05"}) {
		t.Errorf("results = %v", got)
	}
}

func TestHistoryAndClearQuery(t *testing.T) {
	s, _ := newSession(t, time.Hour)

	snap := s.SetHistory([]string{"yoga mat"}, nil)
	if len(snap.Suggestions) != 1 || snap.Suggestions[0].Kind != suggest.KindRecent {
		t.Errorf("suggestions = %+v", snap.Suggestions)
	}

	s.Type("scarf")
	snap = s.ClearQuery()
	if snap.Input != "" || snap.Query != "" || s.Pending() {
		t.Errorf("after clear: input %q, query %q, pending %v", snap.Input, snap.Query, s.Pending())
	}
}

func TestCloseDropsPendingInput(t *testing.T) {
	s, updates := newSession(t, 20*time.Millisecond)

	s.Type("lamp")
	s.Close()

	select {
	case snap := <-updates:
		t.Errorf("snapshot after Close: %+v", snap)
	case <-time.After(100 * time.Millisecond):
	}
}
