package focus

import (
	"sort"
	"time"
)

// ItemFocus is the per-item result of one compute pass. Values are
// produced fresh each pass and never mutated in place.
type ItemFocus struct {
	// ID is the caller-supplied item identity.
	ID string

	Visible bool
	Focused bool
	// Primary is the mutually exclusive winner flag: at most one item
	// per snapshot carries it.
	Primary bool

	// VisibleFraction is the share of the item's area inside the
	// viewport, in [0, 1].
	VisibleFraction float64
	// DistancePx is the signed distance from the item center to the
	// anchor along the scroll axis. Negative means the item center is
	// before the anchor.
	DistancePx float64
	// FocusProgress is 1 when the item center sits on the anchor,
	// falling to 0 at the region/item edge.
	FocusProgress float64
	// FocusOverlap is the fraction of the region band the item covers.
	FocusOverlap float64

	// ItemRect and ViewportRect are populated only when the engine is
	// built WithDebugRects; they are for debug overlays and analytics,
	// never for selection.
	ItemRect     Rect
	ViewportRect Rect

	// order is the registration order used as the final tie-break.
	order uint64
}

// Snapshot is the immutable bundle produced by one compute pass.
//
// Invariants: FocusedIDs holds exactly the ids whose item has
// Focused=true (likewise VisibleIDs/Visible); if PrimaryID is non-empty
// it names the single item with Primary=true.
type Snapshot struct {
	Time time.Time
	// PrimaryID is the winning item's id, or "" when no primary is
	// selected.
	PrimaryID  string
	FocusedIDs map[string]struct{}
	VisibleIDs map[string]struct{}
	Items      map[string]ItemFocus
}

// Item returns the focus state for id and whether it was part of this
// snapshot.
func (s Snapshot) Item(id string) (ItemFocus, bool) {
	it, ok := s.Items[id]
	return it, ok
}

// equalIDSets reports whether two id sets have identical membership.
func equalIDSets(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for id := range a {
		if _, ok := b[id]; !ok {
			return false
		}
	}
	return true
}

// sortedIDs returns the set's members in lexical order, for
// deterministic delivery to subscribers.
func sortedIDs(set map[string]struct{}) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// itemFocusEqual is the tolerance-aware equality used to suppress
// notifications driven by sub-pixel drift. Debug rectangles are
// ignored.
func itemFocusEqual(a, b ItemFocus) bool {
	if a.ID != b.ID || a.Visible != b.Visible || a.Focused != b.Focused || a.Primary != b.Primary {
		return false
	}
	return fractionsEqual(a.VisibleFraction, b.VisibleFraction) &&
		fractionsEqual(a.FocusProgress, b.FocusProgress) &&
		fractionsEqual(a.FocusOverlap, b.FocusOverlap) &&
		distancesEqual(a.DistancePx, b.DistancePx)
}
