package debounce

import (
	"sync"
	"testing"
	"time"
)

const testDelay = 40 * time.Millisecond

type recorder struct {
	mu     sync.Mutex
	values []string
	ch     chan string
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan string, 16)}
}

func (r *recorder) emit(v string) {
	r.mu.Lock()
	r.values = append(r.values, v)
	r.mu.Unlock()
	r.ch <- v
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.values...)
}

func (r *recorder) wait(t *testing.T) string {
	t.Helper()
	select {
	case v := <-r.ch:
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for emission")
		return ""
	}
}

func TestGateCollapsesBurst(t *testing.T) {
	rec := newRecorder()
	g := New("", testDelay, rec.emit)
	defer g.Stop()

	g.Set("a")
	g.Set("ab")
	g.Set("abc")

	if got := rec.wait(t); got != "abc" {
		t.Errorf("emitted %q, want %q", got, "abc")
	}
	time.Sleep(3 * testDelay)
	if got := rec.snapshot(); len(got) != 1 {
		t.Errorf("emissions = %v, want exactly one", got)
	}
	if g.Value() != "abc" || g.Pending() {
		t.Errorf("Value() = %q, Pending() = %v", g.Value(), g.Pending())
	}
}

func TestGateEmitsOncePerQuietPeriod(t *testing.T) {
	rec := newRecorder()
	g := New("", testDelay, rec.emit)
	defer g.Stop()

	g.Set("lamp")
	if got := rec.wait(t); got != "lamp" {
		t.Fatalf("first emission = %q", got)
	}
	g.Set("desk")
	if got := rec.wait(t); got != "desk" {
		t.Fatalf("second emission = %q", got)
	}
}

func TestGateSkipsUnchangedValue(t *testing.T) {
	rec := newRecorder()
	g := New("", testDelay, rec.emit)
	defer g.Stop()

	g.Set("a")
	g.Set("")
	time.Sleep(4 * testDelay)

	if got := rec.snapshot(); len(got) != 0 {
		t.Errorf("emissions = %v, want none", got)
	}
	if g.Pending() {
		t.Error("Pending() = true after settling")
	}
}

func TestGateLatestTracksInput(t *testing.T) {
	g := New("start", time.Hour, nil)
	defer g.Stop()

	g.Set("next")
	if g.Latest() != "next" || g.Value() != "start" {
		t.Errorf("Latest() = %q, Value() = %q", g.Latest(), g.Value())
	}
	if !g.Pending() {
		t.Error("Pending() = false with an outstanding timer")
	}
}

func TestGateFlush(t *testing.T) {
	rec := newRecorder()
	g := New("", time.Hour, rec.emit)
	defer g.Stop()

	if g.Flush() {
		t.Error("Flush() with nothing pending reported an emission")
	}

	g.Set("desk lamp")
	if !g.Flush() {
		t.Fatal("Flush() = false, want true")
	}
	if got := rec.snapshot(); len(got) != 1 || got[0] != "desk lamp" {
		t.Errorf("emissions = %v", got)
	}
	if g.Pending() || g.Value() != "desk lamp" {
		t.Errorf("after Flush: Pending() = %v, Value() = %q", g.Pending(), g.Value())
	}
}

func TestGateStop(t *testing.T) {
	rec := newRecorder()
	g := New("", testDelay, rec.emit)

	g.Set("a")
	g.Stop()
	g.Stop()
	g.Set("b")
	time.Sleep(3 * testDelay)

	if got := rec.snapshot(); len(got) != 0 {
		t.Errorf("emissions after Stop = %v", got)
	}
	if g.Pending() {
		t.Error("Pending() = true after Stop")
	}
}

func TestGateReset(t *testing.T) {
	rec := newRecorder()
	g := New("", testDelay, rec.emit)
	defer g.Stop()

	g.Set("a")
	g.Reset("chosen")
	time.Sleep(3 * testDelay)

	if got := rec.snapshot(); len(got) != 0 {
		t.Errorf("emissions after Reset = %v", got)
	}
	if g.Value() != "chosen" || g.Latest() != "chosen" {
		t.Errorf("Value() = %q, Latest() = %q", g.Value(), g.Latest())
	}
}

func TestGateCallbackMaySet(t *testing.T) {
	done := make(chan int, 4)
	var g *Gate[int]
	g = New(0, testDelay, func(v int) {
		if v < 2 {
			g.Set(v + 1)
		}
		done <- v
	})
	defer g.Stop()

	g.Set(1)
	for _, want := range []int{1, 2} {
		select {
		case got := <-done:
			if got != want {
				t.Errorf("emission = %d, want %d", got, want)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for %d", want)
		}
	}
}

func TestNewDefaultsDelay(t *testing.T) {
	if d := New(0, 0, nil).Delay(); d != DefaultDelay {
		t.Errorf("Delay() = %v, want %v", d, DefaultDelay)
	}
}
