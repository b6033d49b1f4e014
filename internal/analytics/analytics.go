/*
Package analytics supplies the recent and trending query lists shown in the
empty search box, and remembers queries submitted during this run.

A Provider is read on startup and, optionally, on a refresh interval:

	p := analytics.NewOverlay(analytics.NewStatic(cfg.History.Recent, cfg.History.Trending))
	h, err := analytics.Load(ctx, p)
	sess.SetHistory(h.Recent, h.Trending)
*/
package analytics

import (
	"context"
	"sync"
	"time"

	"github.com/bastiangx/shopsearch/internal/utils"
	"github.com/bastiangx/shopsearch/pkg/e"
	"github.com/charmbracelet/log"
	"github.com/jimlawless/whereami"
)

// Provider returns query history, most relevant first.
type Provider interface {
	Recent(ctx context.Context) ([]string, error)
	Trending(ctx context.Context) ([]string, error)
}

// Recorder stores a submitted query.
type Recorder interface {
	Record(ctx context.Context, query string) error
}

// History is one read of a Provider.
type History struct {
	Recent   []string
	Trending []string
}

// Load reads both lists from p. Blank and repeated entries are dropped.
func Load(ctx context.Context, p Provider) (History, error) {
	recent, err := p.Recent(ctx)
	if err != nil {
		return History{}, e.Wrap(whereami.WhereAmI(), err)
	}
	trending, err := p.Trending(ctx)
	if err != nil {
		return History{}, e.Wrap(whereami.WhereAmI(), err)
	}
	return History{
		Recent:   utils.DedupeQueries(recent),
		Trending: utils.DedupeQueries(trending),
	}, nil
}

// Watch calls fn with a fresh History every interval until ctx ends.
// Failed reads are logged and skipped so fn only sees good data.
func Watch(ctx context.Context, p Provider, interval time.Duration, fn func(History)) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h, err := Load(ctx, p)
			if err != nil {
				log.Warnf("History refresh failed: %v", err)
				continue
			}
			fn(h)
		}
	}
}

// Live holds the latest History for readers on other goroutines.
type Live struct {
	mu sync.RWMutex
	h  History
}

// NewLive returns a Live seeded with h.
func NewLive(h History) *Live {
	return &Live{h: h}
}

// Set replaces the held History.
func (l *Live) Set(h History) {
	l.mu.Lock()
	l.h = h
	l.mu.Unlock()
}

// Get returns the held lists. Callers must not modify them.
func (l *Live) Get() (recent, trending []string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.h.Recent, l.h.Trending
}
