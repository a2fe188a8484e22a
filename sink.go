package focus

import "github.com/grindlemire/go-focus/internal/debug"

// sink turns committed snapshots into minimal change notifications.
// Global outputs (primary id, focused set, full snapshot) are created
// eagerly; per-item outputs are created lazily on first subscription
// and evicted once they have no subscribers, which bounds memory for
// continuously scrolling item sets.
//
// All mutation happens on the engine's commit/subscribe paths; commit
// returns the notification closures so the engine can run them after
// releasing its lock.
type sink struct {
	primary  *signal[string]
	focused  *signal[[]string]
	snapshot *signal[Snapshot]
	items    map[string]*itemOutput
}

// itemOutput holds one item's outputs plus the explicit subscriber
// count that drives eviction. The boolean projections are created on
// first use so large item sets only pay for what they watch.
type itemOutput struct {
	refs    int
	state   *signal[ItemFocus]
	primary *signal[bool]
	focused *signal[bool]
	visible *signal[bool]
}

func newSink() *sink {
	k := &sink{
		primary:  newSignal(func(a, b string) bool { return a == b }),
		focused:  newSignal(equalIDSlices),
		snapshot: newSignal(func(a, b Snapshot) bool { return false }),
		items:    make(map[string]*itemOutput),
	}
	// Seed the global outputs with their empty states so the first
	// commit only notifies when something actually appeared.
	k.primary.hasValue = true
	k.focused.hasValue = true
	return k
}

// commit folds one snapshot into the outputs and returns the pending
// notification closures. Update cost is proportional to the number of
// live per-item outputs, not the number of registered items.
func (k *sink) commit(next Snapshot) []func() {
	var notes []func()
	add := func(fn func()) {
		if fn != nil {
			notes = append(notes, fn)
		}
	}

	add(k.primary.set(next.PrimaryID))
	add(k.focused.set(sortedIDs(next.FocusedIDs)))
	// The full snapshot output always updates.
	add(k.snapshot.force(next))

	for id, out := range k.items {
		if out.refs <= 0 {
			// Nobody is listening; drop the output. It will be
			// recreated lazily if someone subscribes again.
			debug.Log("sink: evicting output for %q", id)
			delete(k.items, id)
			continue
		}
		it, ok := next.Items[id]
		if !ok {
			// Still subscribed but gone from the snapshot: push the
			// unknown/off-screen default state.
			it = ItemFocus{ID: id}
		}
		add(out.state.set(it))
		if out.primary != nil {
			add(out.primary.set(it.Primary))
		}
		if out.focused != nil {
			add(out.focused.set(it.Focused))
		}
		if out.visible != nil {
			add(out.visible.set(it.Visible))
		}
	}
	return notes
}

// output returns the per-item output for id, creating it on demand.
func (k *sink) output(id string) *itemOutput {
	out, ok := k.items[id]
	if !ok {
		out = &itemOutput{state: newSignal(itemFocusEqual)}
		k.items[id] = out
	}
	return out
}

func boolSignal() *signal[bool] {
	return newSignal(func(a, b bool) bool { return a == b })
}

func equalIDSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
