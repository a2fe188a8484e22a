package focus

import (
	"sync/atomic"
	"time"

	"github.com/grindlemire/go-focus/internal/debug"
)

// Clock abstracts time for the scheduler so cadence behavior is
// testable with a fake clock. The default implementation delegates to
// the time package.
type Clock interface {
	Now() time.Time

	// AfterFunc schedules fn to run once after d and returns a handle
	// that can cancel it.
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a cancellable single-shot task handle.
type Timer interface {
	// Stop cancels the timer. Returns false if it already fired.
	Stop() bool
}

type stdClock struct{}

func (stdClock) Now() time.Time { return time.Now() }

func (stdClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

var _ Clock = stdClock{}

// updateKind discriminates the UpdatePolicy variants.
type updateKind uint8

const (
	updatePerFrame updateKind = iota
	updateOnScrollEnd
	updateHybrid
)

// UpdatePolicy decides when the pipeline recomputes relative to scroll
// activity. It is a closed family of variants; construct one with
// PerFrame, OnScrollEnd, or Hybrid. The zero value is PerFrame.
// Immutable configuration.
type UpdatePolicy struct {
	kind                 updateKind
	scrollEndDebounce    time.Duration
	ballisticInterval    time.Duration
	computeWhileDragging bool
}

// PerFrame recomputes on every frame tick while anything changed,
// coalesced to at most one pass per rendered frame.
func PerFrame() UpdatePolicy {
	return UpdatePolicy{kind: updatePerFrame}
}

// OnScrollEnd suppresses all computes while scrolling and runs exactly
// one pass once the scroll has been idle for the debounce duration.
//
// Panics if debounce is negative.
func OnScrollEnd(debounce time.Duration) UpdatePolicy {
	if debounce < 0 {
		panic("focus: negative scroll-end debounce")
	}
	return UpdatePolicy{kind: updateOnScrollEnd, scrollEndDebounce: debounce}
}

// Hybrid computes per frame while dragging (if computeWhileDragging),
// throttles to one pass per ballisticInterval during fling, and always
// schedules one final debounced pass after the scroll settles.
//
// Panics if either duration is negative.
func Hybrid(scrollEndDebounce, ballisticInterval time.Duration, computeWhileDragging bool) UpdatePolicy {
	if scrollEndDebounce < 0 || ballisticInterval < 0 {
		panic("focus: negative hybrid cadence duration")
	}
	return UpdatePolicy{
		kind:                 updateHybrid,
		scrollEndDebounce:    scrollEndDebounce,
		ballisticInterval:    ballisticInterval,
		computeWhileDragging: computeWhileDragging,
	}
}

// scrollPhase is the scheduler's view of the scroll lifecycle.
type scrollPhase uint8

const (
	phaseIdle      scrollPhase = iota
	phaseDragging              // Direct manipulation in progress
	phaseBallistic             // Momentum scroll after release
)

func (p scrollPhase) String() string {
	switch p {
	case phaseDragging:
		return "dragging"
	case phaseBallistic:
		return "ballistic"
	default:
		return "idle"
	}
}

// scheduler decides when the pipeline runs. It never computes geometry
// itself: it either marks the engine dirty (picked up on the next
// frame tick) or arms a single-shot timer that invokes compute
// directly. Each timer purpose owns at most one handle; arming a new
// one cancels the old, so only the latest request wins.
type scheduler struct {
	policy UpdatePolicy
	clock  Clock

	// compute runs the pipeline synchronously. Supplied by the engine.
	compute func()

	phase          scrollPhase
	dirty          atomic.Bool
	scrollEndTimer Timer
	lastBallistic  time.Time
}

func newScheduler(policy UpdatePolicy, clock Clock, compute func()) *scheduler {
	return &scheduler{
		policy:  policy,
		clock:   clock,
		compute: compute,
	}
}

// markDirty defers a compute to the next frame tick. Duplicate
// requests coalesce into one pass.
func (s *scheduler) markDirty() {
	s.dirty.Store(true)
}

// scrollStarted transitions into dragging (direct manipulation) or
// ballistic and cancels any pending settle timer.
func (s *scheduler) scrollStarted(direct bool) {
	if direct {
		s.setPhase(phaseDragging)
	} else {
		s.setPhase(phaseBallistic)
	}
	s.cancelScrollEnd()
	s.lastBallistic = time.Time{}
}

// scrollUpdated handles a position-change tick per the cadence policy.
// Ticks observed while idle (position moved without a lifecycle event)
// are treated like settle triggers so the output cannot go stale.
func (s *scheduler) scrollUpdated() {
	switch s.policy.kind {
	case updatePerFrame:
		s.markDirty()
	case updateOnScrollEnd:
		if s.phase == phaseIdle {
			s.armScrollEnd()
		}
	case updateHybrid:
		switch s.phase {
		case phaseDragging:
			if s.policy.computeWhileDragging {
				s.markDirty()
			}
		case phaseBallistic:
			s.ballisticTick()
		default:
			s.armScrollEnd()
		}
	}
}

// scrollEnded transitions to idle and schedules the settle compute.
func (s *scheduler) scrollEnded() {
	s.setPhase(phaseIdle)
	switch s.policy.kind {
	case updatePerFrame:
		s.markDirty()
	default:
		s.armScrollEnd()
	}
}

// requestCompute asks for a pass on behalf of registration changes and
// external metrics signals, subject to the same cadence rules.
func (s *scheduler) requestCompute() {
	switch s.policy.kind {
	case updatePerFrame:
		s.markDirty()
	case updateOnScrollEnd:
		if s.phase == phaseIdle {
			s.armScrollEnd()
		}
		// While scrolling the scroll-end pass will pick it up.
	case updateHybrid:
		switch s.phase {
		case phaseDragging:
			if s.policy.computeWhileDragging {
				s.markDirty()
			}
		case phaseBallistic:
			s.ballisticTick()
		default:
			s.armScrollEnd()
		}
	}
}

// forceCompute cancels pending timers and runs the pipeline
// immediately. Used when configuration changes, since the output
// contract changed.
func (s *scheduler) forceCompute() {
	s.cancelScrollEnd()
	s.dirty.Store(false)
	s.compute()
}

// frameTick runs a pass if one was marked dirty since the last frame.
// Hosts call this once per frame, after layout is stable.
func (s *scheduler) frameTick() {
	if s.dirty.Swap(false) {
		s.compute()
	}
}

// setPolicy swaps the cadence policy, dropping pending timers.
func (s *scheduler) setPolicy(policy UpdatePolicy) {
	s.cancelScrollEnd()
	s.policy = policy
}

// close cancels any pending timers.
func (s *scheduler) close() {
	s.cancelScrollEnd()
}

// ballisticTick throttles ballistic-phase computes to at most one per
// configured interval.
func (s *scheduler) ballisticTick() {
	now := s.clock.Now()
	if !s.lastBallistic.IsZero() && now.Sub(s.lastBallistic) < s.policy.ballisticInterval {
		return
	}
	s.lastBallistic = now
	s.markDirty()
}

// armScrollEnd starts (or refreshes) the settle debounce. A zero
// debounce computes synchronously.
func (s *scheduler) armScrollEnd() {
	s.cancelScrollEnd()
	d := s.policy.scrollEndDebounce
	if d == 0 {
		s.compute()
		return
	}
	s.scrollEndTimer = s.clock.AfterFunc(d, s.compute)
}

func (s *scheduler) cancelScrollEnd() {
	if s.scrollEndTimer != nil {
		s.scrollEndTimer.Stop()
		s.scrollEndTimer = nil
	}
}

func (s *scheduler) setPhase(p scrollPhase) {
	if s.phase != p {
		debug.Log("scheduler: %s -> %s", s.phase, p)
		s.phase = p
	}
}
