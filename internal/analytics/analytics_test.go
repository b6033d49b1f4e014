package analytics

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/bastiangx/shopsearch/pkg/clients"
	"github.com/bastiangx/shopsearch/pkg/config"
)

type failingProvider struct{}

func (failingProvider) Recent(context.Context) ([]string, error)   { return nil, errors.New("down") }
func (failingProvider) Trending(context.Context) ([]string, error) { return nil, nil }

func TestLoadDedupes(t *testing.T) {
	p := NewStatic([]string{"Lamp", " lamp ", "", "mug"}, []string{"desk", "Desk"})
	h, err := Load(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(h.Recent, []string{"Lamp", "mug"}) {
		t.Errorf("recent = %q", h.Recent)
	}
	if !slices.Equal(h.Trending, []string{"desk"}) {
		t.Errorf("trending = %q", h.Trending)
	}
}

func TestLoadPropagatesErrors(t *testing.T) {
	if _, err := Load(context.Background(), failingProvider{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestOverlayRecord(t *testing.T) {
	p := NewOverlay(NewStatic([]string{"mug"}, []string{"desk"}))
	ctx := context.Background()

	for _, q := range []string{"lamp", "  ", "kettle"} {
		if err := p.Record(ctx, q); err != nil {
			t.Fatal(err)
		}
	}
	got, _ := p.Recent(ctx)
	if want := []string{"kettle", "lamp", "mug"}; !slices.Equal(got, want) {
		t.Errorf("recent = %q, want %q", got, want)
	}
	if trending, _ := p.Trending(ctx); !slices.Equal(trending, []string{"desk"}) {
		t.Errorf("trending = %q", trending)
	}

	for i := 0; i < maxLocalRecent+5; i++ {
		_ = p.Record(ctx, string(rune('a'+i)))
	}
	got, _ = p.Recent(ctx)
	if len(got) != maxLocalRecent+1 {
		t.Errorf("len(recent) = %d, want %d local plus the base entry", len(got), maxLocalRecent)
	}
}

func TestStaticCopiesInput(t *testing.T) {
	in := []string{"mug"}
	p := NewStatic(in, nil)
	in[0] = "changed"
	got, _ := p.Recent(context.Background())
	if got[0] != "mug" {
		t.Errorf("provider shares caller slice: %q", got)
	}
}

func TestWatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu    sync.Mutex
		calls int
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		Watch(ctx, NewStatic([]string{"mug"}, nil), 10*time.Millisecond, func(h History) {
			mu.Lock()
			calls++
			mu.Unlock()
		})
	}()

	time.Sleep(55 * time.Millisecond)
	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	if calls == 0 {
		t.Error("fn never called")
	}
}

func TestLive(t *testing.T) {
	l := NewLive(History{Recent: []string{"mug"}})
	recent, trending := l.Get()
	if len(recent) != 1 || trending != nil {
		t.Fatalf("Get() = %q, %q", recent, trending)
	}
	l.Set(History{Trending: []string{"lamp"}})
	recent, trending = l.Get()
	if recent != nil || len(trending) != 1 || trending[0] != "lamp" {
		t.Errorf("after Set: %q, %q", recent, trending)
	}
}

func TestRedisProviderUnreachable(t *testing.T) {
	cfg := config.DefaultConfig().Redis
	cfg.Addr = "127.0.0.1:1"
	cfg.MaxRetries = -1
	cfg.DialTimeoutMS = 100

	client := clients.NewRedisClient(cfg)
	defer client.Close(context.Background())
	p := NewRedisProvider(client, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := p.Recent(ctx); err == nil {
		t.Error("Recent: expected connection error")
	}
	if _, err := p.Trending(ctx); err == nil {
		t.Error("Trending: expected connection error")
	}
	if _, err := Load(ctx, NewOverlay(p)); err == nil {
		t.Error("Load through overlay: expected connection error")
	}
}
