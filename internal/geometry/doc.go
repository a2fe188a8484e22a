// Package geometry provides the float64 rectangle and axis primitives
// shared by the focus pipeline. All coordinates live in a single space
// supplied by the host's geometry source; this package only does the
// arithmetic.
package geometry
