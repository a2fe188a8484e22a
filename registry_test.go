package focus

import "testing"

func TestRegistry_OrderPreservedAcrossReregister(t *testing.T) {
	r := newRegistry()
	if err := r.register("a", vitem(0, 100)); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.register("b", vitem(100, 100)); err != nil {
		t.Fatalf("register: %v", err)
	}

	// Re-registering swaps the handle but keeps the original order.
	replacement := vitem(500, 100)
	if err := r.register("a", replacement); err != nil {
		t.Fatalf("re-register: %v", err)
	}

	ordered := r.ordered()
	if len(ordered) != 2 {
		t.Fatalf("len(ordered) = %d, want 2", len(ordered))
	}
	if ordered[0].id != "a" || ordered[1].id != "b" {
		t.Errorf("order = [%q, %q], want [a, b]", ordered[0].id, ordered[1].id)
	}
	if ordered[0].handle != GeometryHandle(replacement) {
		t.Error("re-register did not swap the handle")
	}
}

func TestRegistry_RejectsInvalidRegistrations(t *testing.T) {
	r := newRegistry()
	if err := r.register("", vitem(0, 100)); err == nil {
		t.Error("register with empty id succeeded, want error")
	}
	if err := r.register("a", nil); err == nil {
		t.Error("register with nil handle succeeded, want error")
	}
}

func TestRegistry_Unregister(t *testing.T) {
	r := newRegistry()
	if err := r.register("a", vitem(0, 100)); err != nil {
		t.Fatalf("register: %v", err)
	}

	r.unregister("a")
	r.unregister("missing") // Ignored.

	if len(r.ordered()) != 0 {
		t.Errorf("len(ordered) = %d, want 0", len(r.ordered()))
	}
}

func TestRegistry_PruneStaleDropsUnmeasurable(t *testing.T) {
	r := newRegistry()
	live := vitem(0, 100)
	stale := vitem(100, 100)
	stale.measurable = false

	if err := r.register("live", live); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.register("stale", stale); err != nil {
		t.Fatalf("register: %v", err)
	}

	r.pruneStale()

	ordered := r.ordered()
	if len(ordered) != 1 || ordered[0].id != "live" {
		t.Fatalf("after prune, entries = %d, want only \"live\"", len(ordered))
	}
}
