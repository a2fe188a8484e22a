package geometry

// Rect represents a rectangle in a shared pixel coordinate space.
// X and Y are the top-left corner; Width and Height are dimensions.
// All values are float64 because scroll positions and measured item
// geometry are sub-pixel.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// NewRect creates a new Rect with the given position and dimensions.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// IsEmpty returns true if the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Area returns the area of the rectangle. Degenerate rectangles have
// zero area.
func (r Rect) Area() float64 {
	if r.Width <= 0 || r.Height <= 0 {
		return 0
	}
	return r.Width * r.Height
}

// Intersect returns the intersection of two rectangles.
// If the rectangles don't overlap, returns an empty Rect.
func (r Rect) Intersect(other Rect) Rect {
	x := max(r.X, other.X)
	y := max(r.Y, other.Y)
	right := min(r.Right(), other.Right())
	bottom := min(r.Bottom(), other.Bottom())

	width := right - x
	height := bottom - y

	if width <= 0 || height <= 0 {
		return Rect{}
	}

	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Translate returns a new Rect moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Inset returns a new Rect shrunk by the given Insets.
// Negative inset values expand the rectangle.
func (r Rect) Inset(in Insets) Rect {
	return Rect{
		X:      r.X + in.Left,
		Y:      r.Y + in.Top,
		Width:  r.Width - in.Left - in.Right,
		Height: r.Height - in.Top - in.Bottom,
	}
}

// Start returns the leading edge of the rectangle along the given axis.
func (r Rect) Start(axis Axis) float64 {
	if axis == Horizontal {
		return r.X
	}
	return r.Y
}

// End returns the trailing edge of the rectangle along the given axis.
func (r Rect) End(axis Axis) float64 {
	if axis == Horizontal {
		return r.Right()
	}
	return r.Bottom()
}

// Extent returns the size of the rectangle along the given axis.
func (r Rect) Extent(axis Axis) float64 {
	if axis == Horizontal {
		return r.Width
	}
	return r.Height
}

// Center returns the midpoint of the rectangle along the given axis.
func (r Rect) Center(axis Axis) float64 {
	return r.Start(axis) + r.Extent(axis)/2
}
