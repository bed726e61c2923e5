// Package scene turns a maze layout into placement records for a 3D scene:
// one floor tile per cell and one wall solid per present wall, each wall
// textured by the corner variant its neighbouring walls call for.
package scene

import "github.com/beka-birhanu/vinom-walker/maze"

// Variant is the texture/orientation choice for a wall segment, decided by
// which walls meet its two corners.
type Variant int

const (
	Isolated Variant = iota
	CornerLeft
	CornerRight
	BothCorners
)

var variantNames = [...]string{"isolated", "corner-left", "corner-right", "both-corners"}

// String returns the variant name used in texture ids.
func (v Variant) String() string {
	if v < Isolated || v > BothCorners {
		return "unknown"
	}
	return variantNames[v]
}

// MarshalText implements encoding.TextMarshaler.
func (v Variant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// cornerNeighbors holds, per wall direction, the directions of the walls
// meeting its left and right corners.
var cornerNeighbors = [...][2]maze.Direction{
	maze.North: {maze.East, maze.West},
	maze.South: {maze.West, maze.East},
	maze.East:  {maze.South, maze.North},
	maze.West:  {maze.North, maze.South},
}

// CornerNeighbors returns the directions of the walls at the left and right
// corners of the wall facing d.
func CornerNeighbors(d maze.Direction) (left, right maze.Direction) {
	pair := cornerNeighbors[d]
	return pair[0], pair[1]
}

// ResolveFlags picks the variant for a wall given whether it is present and
// whether its left and right corner walls are present. It reports false
// when the wall itself is absent.
//
// A wall joined only at its left corner takes the corner-right texture and
// vice versa, so the joint reads correctly when viewed from inside the cell.
func ResolveFlags(present, left, right bool) (Variant, bool) {
	switch {
	case !present:
		return Isolated, false
	case left && right:
		return BothCorners, true
	case left:
		return CornerRight, true
	case right:
		return CornerLeft, true
	default:
		return Isolated, true
	}
}

// Resolve picks the variant for the wall of c facing d using only c's own flags.
func Resolve(c maze.Cell, d maze.Direction) (Variant, bool) {
	left, right := CornerNeighbors(d)
	return ResolveFlags(c.HasWall(d), c.HasWall(left), c.HasWall(right))
}
