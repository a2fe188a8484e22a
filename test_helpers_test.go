package focus

import (
	"sort"
	"sync"
	"time"
)

// fakeClock is a manually advanced Clock for deterministic cadence
// tests.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Time
	fn      func()
	stopped bool
	fired   bool
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1000, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, fn func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now.Add(d), fn: fn}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.fired {
		return false
	}
	t.stopped = true
	return true
}

// advance moves the clock forward, firing due timers in order.
func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	for {
		var next *fakeTimer
		for _, t := range c.timers {
			if t.stopped || t.fired || t.at.After(target) {
				continue
			}
			if next == nil || t.at.Before(next.at) {
				next = t
			}
		}
		if next == nil {
			break
		}
		c.now = next.at
		next.fired = true
		fn := next.fn
		c.mu.Unlock()
		fn()
		c.mu.Lock()
	}
	c.now = target
	c.mu.Unlock()
}

// fakeSource is a scripted GeometrySource.
type fakeSource struct {
	rect Rect
	ok   bool
	axis Axis
}

func (s *fakeSource) ViewportRect() (Rect, bool) { return s.rect, s.ok }

func (s *fakeSource) Axis() Axis { return s.axis }

func verticalSource(w, h float64) *fakeSource {
	return &fakeSource{rect: NewRect(0, 0, w, h), ok: true, axis: Vertical}
}

// fakeHandle is a scripted GeometryHandle.
type fakeHandle struct {
	rect       Rect
	measurable bool
	ok         bool
}

func (h *fakeHandle) Measurable() bool { return h.measurable }

func (h *fakeHandle) ItemRect() (Rect, bool) { return h.rect, h.ok }

// vitem returns a handle for a full-width item spanning [y, y+h) in a
// vertical list.
func vitem(y, h float64) *fakeHandle {
	return &fakeHandle{rect: NewRect(0, y, 400, h), measurable: true, ok: true}
}

// mustEngine builds an engine and fails the test on error.
func mustEngine(t interface{ Fatalf(string, ...any) }, source GeometrySource, opts ...Option) *Engine {
	e, err := New(source, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func idsOf(set map[string]struct{}) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
