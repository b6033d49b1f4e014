/*
Package session is the event-driven shell around search.

A Session owns the facet state, a debounced query and the lists derived from
them. Events come in through plain method calls (Type, SetFilters, Select,
Submit, ...) and every event recomputes only what depends on it:

	settled query change -> suggestions, quick results
	facet change         -> quick results, page results
	submit / select      -> page results
	history change       -> suggestions

Each recomputation publishes a new immutable Snapshot to the listener. The
listener runs on the goroutine that caused the change (the debounce timer for
keystrokes) and must not call Select or Submit.
*/
package session

import (
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/bastiangx/shopsearch/pkg/catalog"
	"github.com/bastiangx/shopsearch/pkg/debounce"
	"github.com/bastiangx/shopsearch/pkg/filter"
	"github.com/bastiangx/shopsearch/pkg/suggest"
	"github.com/charmbracelet/log"
)

// Snapshot is the complete derived view at one point in time. Its slices are
// shared between snapshots and must not be modified.
type Snapshot struct {
	Version uint64
	// Input is the raw text of the search box; Query is its debounced value.
	Input       string
	Query       string
	Filters     filter.State
	Suggestions []suggest.Suggestion
	// Quick holds the header's instant results for Query, unsorted.
	Quick []catalog.Product
	// Submitted is the query of the results page and Results its sorted products.
	Submitted string
	Results   []catalog.Product
}

type dirty uint8

const (
	dirtySuggestions dirty = 1 << iota
	dirtyQuick
	dirtyResults
	dirtyAll = dirtySuggestions | dirtyQuick | dirtyResults
)

// Session holds the state of one search box and its results page.
type Session struct {
	notifyMu sync.Mutex
	mu       sync.Mutex

	catalog   *catalog.Catalog
	suggester suggest.Suggester
	gate      *debounce.Gate[string]
	delay     time.Duration
	listener  func(Snapshot)

	recent   []string
	trending []string
	query    string
	filters  filter.State
	snap     Snapshot
}

// Option configures a Session.
type Option func(*Session)

// WithDelay sets the debounce quiet period.
func WithDelay(d time.Duration) Option {
	return func(s *Session) { s.delay = d }
}

// WithHistory sets the recent and trending queries shown for an empty box.
func WithHistory(recent, trending []string) Option {
	return func(s *Session) {
		s.recent = append([]string(nil), recent...)
		s.trending = append([]string(nil), trending...)
	}
}

// WithListener registers fn to receive every new Snapshot.
func WithListener(fn func(Snapshot)) Option {
	return func(s *Session) { s.listener = fn }
}

// WithSuggester replaces the default catalog-backed suggestion generator.
func WithSuggester(sg suggest.Suggester) Option {
	return func(s *Session) { s.suggester = sg }
}

// New returns a session over cat with an empty query and default facets.
func New(cat *catalog.Catalog, opts ...Option) *Session {
	s := &Session{
		catalog: cat,
		delay:   debounce.DefaultDelay,
		filters: filter.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.suggester == nil {
		s.suggester = suggest.NewGenerator(cat)
	}
	s.gate = debounce.New("", s.delay, s.onSettle)

	s.mu.Lock()
	s.recomputeLocked(dirtyAll)
	s.mu.Unlock()
	return s
}

// Type records a keystroke. Derived lists follow once typing pauses.
func (s *Session) Type(input string) {
	s.mu.Lock()
	s.snap.Input = input
	s.mu.Unlock()
	s.gate.Set(input)
}

func (s *Session) onSettle(query string) {
	s.update(func() dirty {
		s.query = query
		return dirtySuggestions | dirtyQuick
	})
}

// ClearQuery empties the search box immediately.
func (s *Session) ClearQuery() Snapshot {
	s.gate.Reset("")
	return s.update(func() dirty {
		s.query = ""
		s.snap.Input = ""
		return dirtySuggestions | dirtyQuick
	})
}

// SetFilters replaces the facet state. Facet changes are not debounced.
func (s *Session) SetFilters(st filter.State) Snapshot {
	return s.update(func() dirty {
		s.filters = st.Normalize()
		return dirtyQuick | dirtyResults
	})
}

// UpdateFilters applies fn to a copy of the current facet state.
func (s *Session) UpdateFilters(fn func(*filter.State)) Snapshot {
	return s.update(func() dirty {
		st := s.filters
		fn(&st)
		s.filters = st.Normalize()
		return dirtyQuick | dirtyResults
	})
}

// ClearFilters resets every facet to unconstrained.
func (s *Session) ClearFilters() Snapshot {
	return s.SetFilters(filter.Default())
}

// SetHistory replaces the recent and trending query lists.
func (s *Session) SetHistory(recent, trending []string) Snapshot {
	return s.update(func() dirty {
		s.recent = append([]string(nil), recent...)
		s.trending = append([]string(nil), trending...)
		return dirtySuggestions
	})
}

// Submit commits the text currently in the box as the results-page query and
// returns its deep link. A blank box submits nothing.
func (s *Session) Submit() (url.Values, bool) {
	input := s.gate.Latest()
	if strings.TrimSpace(input) == "" {
		return nil, false
	}
	s.gate.Flush()

	var link url.Values
	s.update(func() dirty {
		s.query = input
		s.snap.Submitted = input
		link = filter.Encode(input, s.filters)
		return dirtyQuick | dirtyResults
	})
	return link, true
}

// Select applies a clicked suggestion: its text becomes the query, its category
// (if any) the selected category, and the search is submitted at once.
func (s *Session) Select(sg suggest.Suggestion) url.Values {
	s.gate.Reset(sg.Text)

	var link url.Values
	s.update(func() dirty {
		s.query = sg.Text
		s.snap.Input = sg.Text
		s.snap.Submitted = sg.Text
		if sg.Category != "" {
			s.filters.Category = sg.Category
			s.filters = s.filters.Normalize()
		}
		link = filter.Encode(sg.Text, s.filters)
		return dirtyAll
	})
	return link
}

// Open loads a deep link as the results page, as when landing on a shared URL.
func (s *Session) Open(v url.Values) Snapshot {
	query, st := filter.Decode(v)
	s.gate.Reset(query)
	return s.update(func() dirty {
		s.query = query
		s.snap.Input = query
		s.snap.Submitted = query
		s.filters = st
		return dirtyAll
	})
}

// Link returns the deep link of the current results page.
func (s *Session) Link() url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return filter.Encode(s.snap.Submitted, s.filters)
}

// Snapshot returns the latest derived view.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Pending reports whether a keystroke is still waiting for the debounce.
func (s *Session) Pending() bool {
	return s.gate.Pending()
}

// Close stops the debounce timer. Pending keystrokes are dropped.
func (s *Session) Close() {
	s.gate.Stop()
}

// update applies mutate and recomputes what it marked dirty, then notifies.
// notifyMu keeps listener calls in the same order as the state changes.
func (s *Session) update(mutate func() dirty) Snapshot {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	d := mutate()
	s.recomputeLocked(d)
	snap := s.snap
	s.mu.Unlock()

	if s.listener != nil {
		s.listener(snap)
	}
	return snap
}

func (s *Session) recomputeLocked(d dirty) {
	start := time.Now()
	s.snap.Version++
	s.snap.Query = s.query
	s.snap.Filters = s.filters

	if d&dirtySuggestions != 0 {
		s.snap.Suggestions = s.suggester.Suggest(s.query, s.recent, s.trending)
	}
	if d&dirtyQuick != 0 {
		s.snap.Quick = filter.Quick(s.catalog, s.query, s.filters)
	}
	if d&dirtyResults != 0 {
		s.snap.Results = filter.Results(s.catalog, s.snap.Submitted, s.filters)
	}
	log.Debug("Session recomputed",
		"version", s.snap.Version,
		"query", s.query,
		"suggestions", len(s.snap.Suggestions),
		"quick", len(s.snap.Quick),
		"results", len(s.snap.Results),
		"took", time.Since(start))
}
