package analytics

import (
	"context"
	"strings"
	"sync"

	"github.com/bastiangx/shopsearch/internal/utils"
)

// maxLocalRecent caps how many submitted queries an Overlay keeps.
const maxLocalRecent = 10

// Overlay puts queries submitted in this process in front of a base
// provider's recent list. They live in memory only and are gone on restart.
type Overlay struct {
	base   Provider
	mu     sync.RWMutex
	recent []string
}

var _ Recorder = (*Overlay)(nil)

// NewOverlay wraps base.
func NewOverlay(base Provider) *Overlay {
	return &Overlay{base: base}
}

// Recent returns local submissions, newest first, then the base list.
func (o *Overlay) Recent(ctx context.Context) ([]string, error) {
	base, err := o.base.Recent(ctx)
	if err != nil {
		return nil, err
	}
	o.mu.RLock()
	out := append(append([]string(nil), o.recent...), base...)
	o.mu.RUnlock()
	return out, nil
}

func (o *Overlay) Trending(ctx context.Context) ([]string, error) {
	return o.base.Trending(ctx)
}

// Record moves query to the front of the local recent list.
func (o *Overlay) Record(_ context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.recent = utils.DedupeQueries(append([]string{query}, o.recent...))
	if len(o.recent) > maxLocalRecent {
		o.recent = o.recent[:maxLocalRecent]
	}
	return nil
}
