// Package cli is a line-oriented front end over a search session, for
// debugging the storefront search from a terminal.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/bastiangx/shopsearch/internal/ui"
	"github.com/bastiangx/shopsearch/internal/utils"
	"github.com/bastiangx/shopsearch/pkg/catalog"
	"github.com/bastiangx/shopsearch/pkg/debounce"
	"github.com/bastiangx/shopsearch/pkg/filter"
	"github.com/bastiangx/shopsearch/pkg/session"
	"github.com/charmbracelet/log"
)

// settleSlack is added to the debounce delay when waiting for a keystroke to settle.
const settleSlack = 250 * time.Millisecond

// HistoryFunc returns the current recent and trending query lists.
type HistoryFunc func(ctx context.Context) (recent, trending []string, err error)

// RecordFunc stores a submitted query.
type RecordFunc func(ctx context.Context, query string) error

// InputHandler reads commands and search text, drives a session and prints
// what changed.
type InputHandler struct {
	catalog    *catalog.Catalog
	sess       *session.Session
	updates    chan session.Snapshot
	out        io.Writer
	delay      time.Duration
	maxResults int
	showDesc   bool
	history    HistoryFunc
	record     RecordFunc
}

// Option configures an InputHandler.
type Option func(*InputHandler)

func WithWriter(w io.Writer) Option {
	return func(h *InputHandler) { h.out = w }
}

func WithDelay(d time.Duration) Option {
	return func(h *InputHandler) { h.delay = d }
}

func WithMaxResults(n int) Option {
	return func(h *InputHandler) { h.maxResults = n }
}

func WithDescriptions(show bool) Option {
	return func(h *InputHandler) { h.showDesc = show }
}

// WithHistory sets the source the empty-box suggestions are reloaded from
// after each submit.
func WithHistory(fn HistoryFunc) Option {
	return func(h *InputHandler) { h.history = fn }
}

func WithRecorder(fn RecordFunc) Option {
	return func(h *InputHandler) { h.record = fn }
}

// NewInputHandler builds a handler with its own session over cat.
func NewInputHandler(cat *catalog.Catalog, opts ...Option) *InputHandler {
	h := &InputHandler{
		catalog:    cat,
		updates:    make(chan session.Snapshot, 16),
		out:        os.Stdout,
		delay:      debounce.DefaultDelay,
		maxResults: 10,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.sess = session.New(cat,
		session.WithDelay(h.delay),
		session.WithListener(h.publish),
	)
	return h
}

// publish never blocks the session; a slow reader just misses intermediate views.
func (h *InputHandler) publish(snap session.Snapshot) {
	select {
	case h.updates <- snap:
	default:
	}
}

// Start runs the loop until in ends, :quit, or ctx is cancelled.
func (h *InputHandler) Start(ctx context.Context, in io.Reader) error {
	defer h.sess.Close()
	h.refreshHistory(ctx)

	h.println(ui.TitleStyle.Render("shopsearch CLI"))
	h.println(ui.MutedStyle.Render("type to search, :help for commands (Ctrl+D to exit)"))

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(h.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(h.out)
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		line := utils.StripControl(scanner.Text())
		cmd, err := parseCommand(line)
		if err != nil {
			h.println(ui.ErrorStyle.Render(err.Error()))
			continue
		}
		if cmd.kind == cmdQuit {
			return nil
		}
		h.execute(ctx, cmd)
	}
}

func (h *InputHandler) execute(ctx context.Context, cmd command) {
	switch cmd.kind {
	case cmdType:
		h.typeText(cmd.arg)
	case cmdCategory:
		h.showFilters(h.sess.UpdateFilters(func(s *filter.State) { s.Category = cmd.arg }))
	case cmdPrice:
		h.showFilters(h.sess.UpdateFilters(func(s *filter.State) { s.Price = filter.ParsePriceRange(cmd.arg) }))
	case cmdRating:
		h.showFilters(h.sess.UpdateFilters(func(s *filter.State) { s.Rating = filter.ParseRating(cmd.arg) }))
	case cmdStock:
		h.showFilters(h.sess.UpdateFilters(func(s *filter.State) { s.InStock = cmd.on }))
	case cmdSort:
		h.showFilters(h.sess.UpdateFilters(func(s *filter.State) { s.SortBy = filter.ParseSortKey(cmd.arg) }))
	case cmdClearFilters:
		h.showFilters(h.sess.ClearFilters())
	case cmdClearQuery:
		h.showSuggestions(h.sess.ClearQuery())
	case cmdSubmit:
		h.submit(ctx)
	case cmdPick:
		h.pick(ctx, cmd.n)
	case cmdLink:
		h.println(h.sess.Link().Encode())
	case cmdOpen:
		h.open(cmd.arg)
	case cmdCategories:
		h.println(ui.Categories(h.catalog))
	case cmdHelp:
		h.println(helpText)
	}
}

// typeText feeds text to the session and waits for the debounce to settle,
// then prints suggestions and quick results.
func (h *InputHandler) typeText(text string) {
	h.drain()
	h.sess.Type(text)

	timeout := time.NewTimer(h.delay + settleSlack)
	defer timeout.Stop()
	for {
		select {
		case snap := <-h.updates:
			if snap.Query == text {
				h.showSuggestions(snap)
				return
			}
		case <-timeout.C:
			// an unchanged query settles without a new snapshot
			h.showSuggestions(h.sess.Snapshot())
			return
		}
	}
}

func (h *InputHandler) drain() {
	for {
		select {
		case <-h.updates:
		default:
			return
		}
	}
}

func (h *InputHandler) submit(ctx context.Context) {
	link, ok := h.sess.Submit()
	if !ok {
		h.println(ui.MutedStyle.Render("nothing to submit"))
		return
	}
	h.afterSubmit(ctx, link)
}

func (h *InputHandler) pick(ctx context.Context, n int) {
	list := h.sess.Snapshot().Suggestions
	if n > len(list) {
		h.println(ui.ErrorStyle.Render(fmt.Sprintf("no suggestion %d", n)))
		return
	}
	h.afterSubmit(ctx, h.sess.Select(list[n-1]))
}

func (h *InputHandler) afterSubmit(ctx context.Context, link url.Values) {
	snap := h.sess.Snapshot()
	h.showResults(snap)
	h.println(ui.MutedStyle.Render("?" + link.Encode()))

	if h.record != nil {
		if err := h.record(ctx, snap.Submitted); err != nil {
			log.Warnf("Recording query: %v", err)
		}
		h.refreshHistory(ctx)
	}
}

func (h *InputHandler) open(raw string) {
	v, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		h.println(ui.ErrorStyle.Render(err.Error()))
		return
	}
	h.showResults(h.sess.Open(v))
}

func (h *InputHandler) refreshHistory(ctx context.Context) {
	if h.history == nil {
		return
	}
	recent, trending, err := h.history(ctx)
	if err != nil {
		log.Warnf("Loading history: %v", err)
		return
	}
	h.sess.SetHistory(recent, trending)
}

func (h *InputHandler) showSuggestions(snap session.Snapshot) {
	h.println(ui.Suggestions(snap.Suggestions, -1))
	if strings.TrimSpace(snap.Query) != "" {
		h.println(ui.Products("Quick results", snap.Quick, h.maxResults, false))
	}
}

func (h *InputHandler) showFilters(snap session.Snapshot) {
	h.println(ui.Filters(snap.Filters))
	if snap.Submitted != "" {
		h.showResults(snap)
	}
}

func (h *InputHandler) showResults(snap session.Snapshot) {
	title := fmt.Sprintf("Results for %q", snap.Submitted)
	h.println(ui.Products(title, snap.Results, h.maxResults, h.showDesc))
	h.println(ui.Filters(snap.Filters))
}

func (h *InputHandler) println(s string) {
	fmt.Fprintln(h.out, s)
}
