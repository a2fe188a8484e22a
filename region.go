package focus

import "github.com/grindlemire/go-focus/internal/geometry"

// regionKind discriminates the Region variants.
type regionKind uint8

const (
	regionLine regionKind = iota
	regionZone
	regionCustom
)

// RegionResult is the verdict a Region produces for one item.
// Progress and Overlap are normalized to [0, 1].
type RegionResult struct {
	Focused  bool
	Progress float64 // 1 at perfect center, 0 at the edge
	Overlap  float64 // Fraction of the region band the item covers
}

// RegionFunc is a caller-supplied region evaluator. The engine clamps
// Progress and Overlap to [0, 1] regardless of what the function
// returns.
type RegionFunc func(itemRect, viewportRect Rect, axis Axis, anchorPx float64) RegionResult

// Region is the rule that converts an anchor position plus an item
// rectangle into a focus verdict. It is a closed family of variants
// (line, zone, custom) dispatched exhaustively; construct one with
// LineRegion, ZoneRegion, or CustomRegion. The zero value is a
// zero-thickness line. Immutable value.
type Region struct {
	kind      regionKind
	thickness float64 // line band thickness, px
	extent    float64 // zone total thickness, px
	eval      RegionFunc
}

// LineRegion returns a Region that focuses items intersecting a thin
// band of the given thickness centered on the anchor. A thickness of 0
// focuses the single item whose span contains the anchor position
// (edges inclusive).
//
// Panics if thicknessPx is negative.
func LineRegion(thicknessPx float64) Region {
	if thicknessPx < 0 {
		panic("focus: negative line thickness")
	}
	return Region{kind: regionLine, thickness: thicknessPx}
}

// ZoneRegion returns a Region that focuses every item overlapping a
// band of the given total extent centered on the anchor.
//
// Panics if extentPx is not positive.
func ZoneRegion(extentPx float64) Region {
	if extentPx <= 0 {
		panic("focus: zone extent must be positive")
	}
	return Region{kind: regionZone, extent: extentPx}
}

// CustomRegion returns a Region that delegates to fn. Outputs are
// clamped to [0, 1] as a safety net.
//
// Panics if fn is nil.
func CustomRegion(fn RegionFunc) Region {
	if fn == nil {
		panic("focus: nil region func")
	}
	return Region{kind: regionCustom, eval: fn}
}

// evaluate produces the focus verdict for one item rectangle against a
// resolved anchor position. Items with zero or negative extent along
// the axis cannot be focused by line/zone regions.
func (r Region) evaluate(itemRect, viewportRect geometry.Rect, axis geometry.Axis, anchorPx float64) RegionResult {
	switch r.kind {
	case regionCustom:
		res := r.eval(itemRect, viewportRect, axis, anchorPx)
		res.Progress = clamp01(res.Progress)
		res.Overlap = clamp01(res.Overlap)
		return res
	case regionZone:
		return bandVerdict(itemRect, axis, anchorPx, r.extent, r.extent)
	default:
		return r.lineVerdict(itemRect, axis, anchorPx)
	}
}

// lineVerdict handles both the degenerate zero-thickness line and the
// thin-band case. Progress is measured against the item's own extent.
func (r Region) lineVerdict(itemRect geometry.Rect, axis geometry.Axis, anchorPx float64) RegionResult {
	extent := itemRect.Extent(axis)
	if extent <= 0 {
		return RegionResult{}
	}

	start := itemRect.Start(axis)
	end := itemRect.End(axis)

	if r.thickness == 0 {
		// Focused iff the anchor lies within the item span, inclusive.
		if anchorPx < start || anchorPx > end {
			return RegionResult{}
		}
		return RegionResult{
			Focused:  true,
			Progress: centerProgress(itemRect, axis, anchorPx, extent),
			Overlap:  1,
		}
	}

	overlap := spanOverlap(start, end, anchorPx-r.thickness/2, anchorPx+r.thickness/2)
	if overlap <= 0 {
		return RegionResult{}
	}
	return RegionResult{
		Focused:  true,
		Progress: centerProgress(itemRect, axis, anchorPx, extent),
		Overlap:  clamp01(overlap / r.thickness),
	}
}

// bandVerdict evaluates a band of total thickness bandPx centered on
// the anchor. Progress is measured against progressExtent's half-span.
func bandVerdict(itemRect geometry.Rect, axis geometry.Axis, anchorPx, bandPx, progressExtent float64) RegionResult {
	if itemRect.Extent(axis) <= 0 {
		return RegionResult{}
	}

	overlap := spanOverlap(itemRect.Start(axis), itemRect.End(axis), anchorPx-bandPx/2, anchorPx+bandPx/2)
	if overlap <= 0 {
		return RegionResult{}
	}
	return RegionResult{
		Focused:  true,
		Progress: centerProgress(itemRect, axis, anchorPx, progressExtent),
		Overlap:  clamp01(overlap / bandPx),
	}
}

// centerProgress returns 1 when the item center sits exactly on the
// anchor, falling linearly to 0 at halfExtent/2 away.
func centerProgress(itemRect geometry.Rect, axis geometry.Axis, anchorPx, extent float64) float64 {
	dist := itemRect.Center(axis) - anchorPx
	if dist < 0 {
		dist = -dist
	}
	return clamp01(1 - dist/(extent/2))
}

// spanOverlap returns the length of the overlap between [aStart, aEnd]
// and [bStart, bEnd], or 0 when disjoint.
func spanOverlap(aStart, aEnd, bStart, bEnd float64) float64 {
	lo := max(aStart, bStart)
	hi := min(aEnd, bEnd)
	if hi <= lo {
		return 0
	}
	return hi - lo
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
