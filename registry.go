package focus

import (
	"fmt"
	"sort"

	"github.com/grindlemire/go-focus/internal/debug"
)

// GeometryHandle is the capability through which the engine reads one
// item's measured rectangle. The host resolves it lazily against its
// own widget tree; the engine never holds host-tree types.
type GeometryHandle interface {
	// Measurable reports whether the item is currently mounted,
	// attached, and sized, i.e. whether ItemRect can succeed.
	Measurable() bool

	// ItemRect returns the item's rectangle in the coordinate space
	// shared with the geometry source's viewport rect. The bool is
	// false when the rect cannot be resolved this frame.
	ItemRect() (Rect, bool)
}

// GeometrySource supplies the viewport rectangle and scroll axis the
// per-item rectangles are measured against. Implemented by the host;
// the engine only requires that the answers are consistent with the
// item handles at the moment a compute pass runs.
type GeometrySource interface {
	// ViewportRect returns the viewport rectangle in the shared
	// coordinate space, or false when no viewport can be resolved yet.
	ViewportRect() (Rect, bool)

	// Axis returns the primary scroll direction.
	Axis() Axis
}

// registryEntry tracks one registered item. The order field is
// assigned at first registration and preserved across re-registration;
// it seeds the deterministic tie-break.
type registryEntry struct {
	id     string
	handle GeometryHandle
	order  uint64
}

// registry owns item membership. Single writer: the registration API.
type registry struct {
	entries   map[string]*registryEntry
	nextOrder uint64
}

func newRegistry() *registry {
	return &registry{entries: make(map[string]*registryEntry)}
}

// register adds an item or, if the id is already present, swaps its
// geometry handle in place while preserving the registration order.
func (r *registry) register(id string, h GeometryHandle) error {
	if id == "" {
		return fmt.Errorf("focus: empty item id")
	}
	if h == nil {
		return fmt.Errorf("focus: nil geometry handle for item %q", id)
	}
	if e, ok := r.entries[id]; ok {
		e.handle = h
		return nil
	}
	r.nextOrder++
	r.entries[id] = &registryEntry{id: id, handle: h, order: r.nextOrder}
	debug.Log("registry: registered %q (order %d)", id, r.nextOrder)
	return nil
}

// unregister removes an item. Unknown ids are ignored.
func (r *registry) unregister(id string) {
	delete(r.entries, id)
}

// pruneStale drops entries whose handle can no longer be measured.
// The engine calls this defensively at the start of every pass so a
// host that forgets to unregister does not leak entries.
func (r *registry) pruneStale() {
	for id, e := range r.entries {
		if !e.handle.Measurable() {
			debug.Log("registry: pruning stale %q", id)
			delete(r.entries, id)
		}
	}
}

// ordered returns the entries sorted by registration order.
func (r *registry) ordered() []*registryEntry {
	out := make([]*registryEntry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].order < out[j].order })
	return out
}
