package geometry

// Axis identifies the primary scroll direction of a viewport.
type Axis uint8

const (
	Vertical   Axis = iota // Items stacked top-to-bottom
	Horizontal             // Items laid out left-to-right
)

// String returns a human-readable axis name for debug output.
func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}
