package focus

import (
	"fmt"
	"sync"
)

// Engine derives attention state for items inside a scrollable
// viewport: which items are visible, which intersect the focus region,
// and which single item is the stable primary winner.
//
// The host wires it up with a GeometrySource, registers item handles,
// routes scroll lifecycle signals in, and calls FrameTick once per
// frame after layout is stable. The engine runs its whole pipeline
// (geometry -> region -> selection -> stability -> diff) synchronously
// inside one compute pass; passes never overlap.
//
// Subscribe/unsubscribe and the signal methods are assumed to run on
// the same logical thread as compute. Subscriber callbacks are invoked
// after the engine releases its internal lock, so they may safely call
// back into the engine.
type Engine struct {
	mu     sync.Mutex
	source GeometrySource
	clock  Clock

	reg   *registry
	sched *scheduler
	snk   *sink

	cfg       passConfig
	policy    SelectionPolicy
	stability StabilityConfig
	// updatePolicy is only consulted during New; afterwards the
	// scheduler owns the live cadence policy.
	updatePolicy UpdatePolicy

	stab    stabilityState
	current Snapshot
	closed  bool
}

// New creates an Engine reading geometry from source. Defaults: a
// zero-thickness line region at the viewport center, closest-to-anchor
// selection, sticky stability, per-frame updates.
func New(source GeometrySource, opts ...Option) (*Engine, error) {
	if source == nil {
		return nil, fmt.Errorf("focus: nil geometry source")
	}
	e := &Engine{
		source: source,
		clock:  stdClock{},
		reg:    newRegistry(),
		snk:    newSink(),
		cfg: passConfig{
			region:                 LineRegion(0),
			anchor:                 AnchorFraction(0.5),
			insetAffectsVisibility: true,
		},
		policy:       ClosestToAnchor(),
		stability:    DefaultStability(),
		updatePolicy: PerFrame(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	e.sched = newScheduler(e.updatePolicy, e.clock, e.runCompute)
	return e, nil
}

// Register adds an item (or swaps its geometry handle if the id is
// already known, preserving registration order) and requests a compute
// pass per the cadence policy.
func (e *Engine) Register(id string, h GeometryHandle) error {
	e.mu.Lock()
	err := e.reg.register(id, h)
	e.mu.Unlock()
	if err != nil {
		return err
	}
	e.sched.requestCompute()
	return nil
}

// Unregister removes an item and requests a compute pass.
func (e *Engine) Unregister(id string) {
	e.mu.Lock()
	e.reg.unregister(id)
	e.mu.Unlock()
	e.sched.requestCompute()
}

// ScrollStarted signals the beginning of a scroll. direct is true for
// direct manipulation (a drag), false for ballistic motion.
func (e *Engine) ScrollStarted(direct bool) {
	e.sched.scrollStarted(direct)
}

// ScrollUpdated signals a scroll position change tick.
func (e *Engine) ScrollUpdated() {
	e.sched.scrollUpdated()
}

// ScrollEnded signals that scrolling settled.
func (e *Engine) ScrollEnded() {
	e.sched.scrollEnded()
}

// MetricsChanged signals an external geometry change (e.g. viewport
// resize) and requests a compute pass per the cadence policy.
func (e *Engine) MetricsChanged() {
	e.sched.requestCompute()
}

// FrameTick runs a pending coalesced compute pass. Hosts call this
// once per rendered frame, after layout/measurement is stable — never
// mid-layout, so the pass cannot read torn geometry.
func (e *Engine) FrameTick() {
	e.sched.frameTick()
}

// Compute forces an immediate synchronous pass, bypassing the cadence
// policy. Pending timers stay armed.
func (e *Engine) Compute() {
	e.runCompute()
}

// SetRegion swaps the focus region and forces an immediate recompute,
// cancelling pending timers.
func (e *Engine) SetRegion(r Region) {
	e.mu.Lock()
	e.cfg.region = r
	e.mu.Unlock()
	e.sched.forceCompute()
}

// SetAnchor swaps the anchor and forces an immediate recompute.
func (e *Engine) SetAnchor(a Anchor) {
	e.mu.Lock()
	e.cfg.anchor = a
	e.mu.Unlock()
	e.sched.forceCompute()
}

// SetPolicy swaps the selection policy and forces an immediate
// recompute.
func (e *Engine) SetPolicy(p SelectionPolicy) {
	e.mu.Lock()
	e.policy = p
	e.mu.Unlock()
	e.sched.forceCompute()
}

// SetStability swaps the stability configuration and forces an
// immediate recompute. Invalid configuration is rejected without
// touching the engine.
func (e *Engine) SetStability(c StabilityConfig) error {
	if err := c.Validate(); err != nil {
		return err
	}
	e.mu.Lock()
	e.stability = c
	e.mu.Unlock()
	e.sched.forceCompute()
	return nil
}

// SetUpdatePolicy swaps the cadence policy, cancelling pending timers,
// and forces an immediate recompute.
func (e *Engine) SetUpdatePolicy(p UpdatePolicy) {
	e.sched.setPolicy(p)
	e.sched.forceCompute()
}

// SetInsets swaps the viewport insets and forces an immediate
// recompute.
func (e *Engine) SetInsets(in Insets) {
	e.mu.Lock()
	e.cfg.insets = in
	e.mu.Unlock()
	e.sched.forceCompute()
}

// Current returns the last computed snapshot. The zero Snapshot is
// returned before the first pass.
func (e *Engine) Current() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// PrimaryID returns the current primary item id, or "" when none.
func (e *Engine) PrimaryID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current.PrimaryID
}

// ItemState is a non-subscribing point read of one item's focus state
// in the last snapshot.
func (e *Engine) ItemState(id string) (ItemFocus, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current.Item(id)
}

// OnPrimaryChange subscribes to primary id changes. The callback fires
// only when the id itself differs from the previous value, never on
// mere recomputes.
func (e *Engine) OnPrimaryChange(fn func(id string)) Unsubscribe {
	return e.snk.primary.bind(fn)
}

// OnFocusedChange subscribes to focused-set membership changes. The
// ids are delivered sorted; the callback fires only when membership
// differs.
func (e *Engine) OnFocusedChange(fn func(ids []string)) Unsubscribe {
	return e.snk.focused.bind(fn)
}

// OnSnapshot subscribes to every completed pass. This output
// intentionally updates each commit; use the narrower outputs when
// only changes matter.
func (e *Engine) OnSnapshot(fn func(Snapshot)) Unsubscribe {
	return e.snk.snapshot.bind(fn)
}

// OnItem subscribes to one item's focus state. The output is created
// lazily and evicted on the first commit after its last subscriber
// unsubscribes. Updates are suppressed for sub-tolerance metric
// drift. An item that disappears from the snapshot while still
// subscribed receives the default (off-screen) state.
func (e *Engine) OnItem(id string, fn func(ItemFocus)) Unsubscribe {
	return e.subscribeItem(id, func(out *itemOutput) Unsubscribe {
		return out.state.bind(fn)
	})
}

// OnItemPrimary subscribes to one item's primary flag. Like the other
// boolean projections it ignores all metric drift, making it suitable
// for very large item counts.
func (e *Engine) OnItemPrimary(id string, fn func(bool)) Unsubscribe {
	return e.subscribeItem(id, func(out *itemOutput) Unsubscribe {
		if out.primary == nil {
			out.primary = boolSignal()
		}
		return out.primary.bind(fn)
	})
}

// OnItemFocused subscribes to one item's focused flag.
func (e *Engine) OnItemFocused(id string, fn func(bool)) Unsubscribe {
	return e.subscribeItem(id, func(out *itemOutput) Unsubscribe {
		if out.focused == nil {
			out.focused = boolSignal()
		}
		return out.focused.bind(fn)
	})
}

// OnItemVisible subscribes to one item's visible flag.
func (e *Engine) OnItemVisible(id string, fn func(bool)) Unsubscribe {
	return e.subscribeItem(id, func(out *itemOutput) Unsubscribe {
		if out.visible == nil {
			out.visible = boolSignal()
		}
		return out.visible.bind(fn)
	})
}

// Close cancels pending timers and stops the engine. Further signals
// and computes are ignored.
func (e *Engine) Close() {
	e.sched.close()
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
}

// subscribeItem wires a subscription into the lazily created per-item
// output, tracking the explicit subscriber count that drives eviction.
func (e *Engine) subscribeItem(id string, bind func(*itemOutput) Unsubscribe) Unsubscribe {
	e.mu.Lock()
	out := e.snk.output(id)
	out.refs++
	unbind := bind(out)
	e.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			out.refs--
			e.mu.Unlock()
			unbind()
		})
	}
}

// runCompute executes one full pipeline pass: prune -> geometry ->
// region -> selection -> stability -> snapshot -> diff commit.
// Notifications run after the lock is released.
func (e *Engine) runCompute() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	now := e.clock.Now()

	e.reg.pruneStale()

	// An unresolvable viewport yields an empty result, not an error;
	// selection and stability then see no candidates.
	var items []ItemFocus
	if viewport, ok := e.source.ViewportRect(); ok {
		items = computeItems(e.reg.ordered(), viewport, e.source.Axis(), e.cfg)
	}

	byID := make(map[string]ItemFocus, len(items))
	focusedIDs := make(map[string]struct{})
	visibleIDs := make(map[string]struct{})
	for _, it := range items {
		byID[it.ID] = it
		if it.Focused {
			focusedIDs[it.ID] = struct{}{}
		}
		if it.Visible {
			visibleIDs[it.ID] = struct{}{}
		}
	}

	primaryID, since := selectPrimary(byID, items, e.policy, e.stability, e.stab, now)
	if primaryID != "" {
		it := byID[primaryID]
		it.Primary = true
		byID[primaryID] = it
	}
	e.stab = stabilityState{primaryID: primaryID, since: since}

	snap := Snapshot{
		Time:       now,
		PrimaryID:  primaryID,
		FocusedIDs: focusedIDs,
		VisibleIDs: visibleIDs,
		Items:      byID,
	}
	e.current = snap
	notes := e.snk.commit(snap)
	e.mu.Unlock()

	for _, fn := range notes {
		fn()
	}
}

func errNegative(what string) error {
	return fmt.Errorf("focus: %s cannot be negative", what)
}
