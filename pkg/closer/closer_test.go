package closer

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestCloseRunsLIFO(t *testing.T) {
	c := NewCloser(0)
	var order []int
	for i := 1; i <= 3; i++ {
		i := i
		c.AddFunc(func() { order = append(order, i) })
	}
	if err := c.Close(context.Background()); err != nil {
		t.Fatal(err)
	}
	want := []int{3, 2, 1}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestCloseCollectsErrors(t *testing.T) {
	c := NewCloser(0)
	c.Add(func(context.Context) error { return errors.New("db gone") })
	c.Add(func(context.Context) error { return nil })

	err := c.Close(context.Background())
	if err == nil || !strings.Contains(err.Error(), "db gone") {
		t.Fatalf("err = %v", err)
	}
	if err := c.Close(context.Background()); err != nil {
		t.Errorf("second Close = %v, want nil", err)
	}
}

func TestCloseForcesRemainingOnTimeout(t *testing.T) {
	c := NewCloser(100 * time.Millisecond)

	var (
		mu     sync.Mutex
		forced bool
	)
	c.Add(func(ctx context.Context) error {
		mu.Lock()
		defer mu.Unlock()
		forced = true
		return nil
	})
	c.Add(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := c.Close(ctx)
	if err == nil || !strings.Contains(err.Error(), "interrupted") {
		t.Fatalf("err = %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if !forced {
		t.Error("remaining func was not run")
	}
}
