package focus

import "sync"

// Unsubscribe removes a subscription. Calling it more than once is
// harmless.
type Unsubscribe func()

// signal wraps an output value and notifies subscribers when it
// changes by more than the type's tolerance. It is the diff gate of
// the output sink: set only fires bindings when eq reports a real
// change, while force always fires (used by the full-snapshot output,
// which intentionally carries high-frequency metrics).
//
// Mutation happens on the engine's logical thread; the internal mutex
// only protects the binding list against subscribe/unsubscribe racing
// a notification sweep.
type signal[T any] struct {
	mu       sync.Mutex
	value    T
	hasValue bool
	eq       func(a, b T) bool
	bindings []*signalBinding[T]
}

// signalBinding mirrors the engine's subscription handles: the active
// flag is cleared by Unsubscribe and swept on the next set.
type signalBinding[T any] struct {
	fn     func(T)
	active bool
}

func newSignal[T any](eq func(a, b T) bool) *signal[T] {
	return &signal[T]{eq: eq}
}

// get returns the last committed value, if any.
func (s *signal[T]) get() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.hasValue
}

// set stores v and returns a closure that notifies subscribers, or nil
// when the change is within tolerance. The closure is run by the
// caller after releasing engine locks so subscribers may re-enter the
// engine.
func (s *signal[T]) set(v T) func() {
	return s.store(v, false)
}

// force stores v and always returns a notify closure (nil only when
// nobody is subscribed).
func (s *signal[T]) force(v T) func() {
	return s.store(v, true)
}

func (s *signal[T]) store(v T, always bool) func() {
	s.mu.Lock()
	changed := always || !s.hasValue || !s.eq(s.value, v)
	s.value = v
	s.hasValue = true

	if !changed {
		s.mu.Unlock()
		return nil
	}

	// Copy active bindings and drop unsubscribed ones so the slice
	// does not accumulate dead entries.
	active := make([]*signalBinding[T], 0, len(s.bindings))
	for _, b := range s.bindings {
		if b.active {
			active = append(active, b)
		}
	}
	s.bindings = active
	s.mu.Unlock()

	if len(active) == 0 {
		return nil
	}
	return func() {
		for _, b := range active {
			b.fn(v)
		}
	}
}

// bind registers fn and returns its removal handle.
func (s *signal[T]) bind(fn func(T)) Unsubscribe {
	b := &signalBinding[T]{fn: fn, active: true}
	s.mu.Lock()
	s.bindings = append(s.bindings, b)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		b.active = false
		s.mu.Unlock()
	}
}
