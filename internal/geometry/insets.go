package geometry

// Insets represents spacing carved off the four edges of a rectangle
// (e.g., to exclude pinned overlays from the usable viewport).
type Insets struct {
	Top, Right, Bottom, Left float64
}

// InsetAll creates Insets with the same value on all sides.
func InsetAll(n float64) Insets {
	return Insets{Top: n, Right: n, Bottom: n, Left: n}
}

// InsetSymmetric creates Insets with vertical (top/bottom) and
// horizontal (left/right) values.
func InsetSymmetric(v, h float64) Insets {
	return Insets{Top: v, Bottom: v, Left: h, Right: h}
}

// IsZero returns true if all four edges are zero.
func (in Insets) IsZero() bool {
	return in.Top == 0 && in.Right == 0 && in.Bottom == 0 && in.Left == 0
}
