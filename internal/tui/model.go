// Package tui is a full-screen live search over a catalog: suggestions and
// quick results follow the search box as typing pauses.
package tui

import (
	"context"
	"time"

	"github.com/bastiangx/shopsearch/pkg/catalog"
	"github.com/bastiangx/shopsearch/pkg/debounce"
	"github.com/bastiangx/shopsearch/pkg/filter"
	"github.com/bastiangx/shopsearch/pkg/session"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// snapshotMsg carries a session update into the program loop.
type snapshotMsg session.Snapshot

// Model represents the application state.
type Model struct {
	width  int
	height int

	keys    keyMap
	help    help.Model
	input   textinput.Model
	spinner spinner.Model

	catalog  *catalog.Catalog
	sess     *session.Session
	updates  chan session.Snapshot
	snap     session.Snapshot
	selected int // index into snap.Suggestions, -1 for none
	pending  bool
	limit    int
}

// Option configures a Model.
type Option func(*config)

type config struct {
	delay    time.Duration
	limit    int
	recent   []string
	trending []string
}

func WithDelay(d time.Duration) Option {
	return func(c *config) { c.delay = d }
}

// WithLimit caps how many products each list shows.
func WithLimit(n int) Option {
	return func(c *config) { c.limit = n }
}

func WithHistory(recent, trending []string) Option {
	return func(c *config) {
		c.recent = recent
		c.trending = trending
	}
}

// NewModel builds the model and its session.
func NewModel(cat *catalog.Catalog, opts ...Option) Model {
	cfg := config{delay: debounce.DefaultDelay, limit: 8}
	for _, opt := range opts {
		opt(&cfg)
	}

	input := textinput.New()
	input.Placeholder = "Search products..."
	input.Prompt = "⌕ "
	input.CharLimit = 120
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	updates := make(chan session.Snapshot, 32)
	sess := session.New(cat,
		session.WithDelay(cfg.delay),
		session.WithHistory(cfg.recent, cfg.trending),
		session.WithListener(func(s session.Snapshot) {
			select {
			case updates <- s:
			default:
			}
		}),
	)

	return Model{
		keys:     defaultKeyMap(),
		help:     help.New(),
		input:    input,
		spinner:  sp,
		catalog:  cat,
		sess:     sess,
		updates:  updates,
		snap:     sess.Snapshot(),
		selected: -1,
		limit:    cfg.limit,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.waitForSnapshot())
}

func (m Model) waitForSnapshot() tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(<-m.updates)
	}
}

// Run starts the program and blocks until the user quits or ctx ends.
func Run(ctx context.Context, cat *catalog.Catalog, opts ...Option) error {
	m := NewModel(cat, opts...)
	defer m.sess.Close()
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

func nextPrice(r filter.PriceRange) filter.PriceRange {
	all := filter.PriceRanges()
	for i, v := range all {
		if v == r {
			return all[(i+1)%len(all)]
		}
	}
	return filter.PriceAll
}

func nextRating(n int) int {
	for i, v := range filter.RatingOptions {
		if v == n {
			return filter.RatingOptions[(i+1)%len(filter.RatingOptions)]
		}
	}
	return 0
}

func nextSort(k filter.SortKey) filter.SortKey {
	all := filter.SortKeys()
	for i, v := range all {
		if v == k {
			return all[(i+1)%len(all)]
		}
	}
	return filter.SortRelevance
}
