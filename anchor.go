package focus

import "github.com/grindlemire/go-focus/internal/geometry"

// anchorUnit specifies how an Anchor's amount is interpreted.
type anchorUnit uint8

const (
	anchorFraction anchorUnit = iota // Fraction of viewport extent (0.5 = middle)
	anchorPixels                     // Absolute pixels from the viewport's start edge
)

// Anchor is the reference position within the viewport against which
// focus membership and distances are measured. It is expressed either
// as a fraction of the viewport extent or as an absolute pixel offset
// from the viewport's start edge, plus a fixed pixel bias.
//
// Anchor is an immutable value; it resolves to an absolute position
// only when given a concrete viewport rectangle.
type Anchor struct {
	amount float64
	unit   anchorUnit
	biasPx float64
}

// AnchorFraction returns an Anchor at the given fraction of the
// viewport extent (0 = start edge, 0.5 = center, 1 = end edge).
func AnchorFraction(f float64) Anchor {
	return Anchor{amount: f, unit: anchorFraction}
}

// AnchorPixels returns an Anchor at an absolute pixel offset from the
// viewport's start edge.
func AnchorPixels(px float64) Anchor {
	return Anchor{amount: px, unit: anchorPixels}
}

// WithBias returns a copy of the anchor shifted by a fixed pixel bias,
// applied after the fraction/offset is resolved.
func (a Anchor) WithBias(px float64) Anchor {
	a.biasPx = px
	return a
}

// Resolve computes the anchor's absolute position along the given axis
// for a concrete viewport rectangle.
func (a Anchor) Resolve(viewport geometry.Rect, axis geometry.Axis) float64 {
	start := viewport.Start(axis)
	switch a.unit {
	case anchorPixels:
		return start + a.amount + a.biasPx
	default:
		return start + viewport.Extent(axis)*a.amount + a.biasPx
	}
}
