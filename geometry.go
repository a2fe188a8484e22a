// geometry.go re-exports geometry types from internal/geometry.
// Any changes to internal/geometry types must be mirrored here.
package focus

import "github.com/grindlemire/go-focus/internal/geometry"

// Axis identifies the primary scroll direction of a viewport.
type Axis = geometry.Axis

const (
	Vertical   = geometry.Vertical
	Horizontal = geometry.Horizontal
)

// Rect represents a rectangle in the shared pixel coordinate space.
type Rect = geometry.Rect

// Insets represents spacing carved off the four edges of a rectangle.
type Insets = geometry.Insets

// NewRect creates a new Rect with the given position and dimensions.
func NewRect(x, y, width, height float64) Rect {
	return geometry.NewRect(x, y, width, height)
}

// InsetAll creates Insets with the same value on all sides.
func InsetAll(n float64) Insets {
	return geometry.InsetAll(n)
}

// InsetSymmetric creates Insets with vertical (top/bottom) and
// horizontal (left/right) values.
func InsetSymmetric(v, h float64) Insets {
	return geometry.InsetSymmetric(v, h)
}
