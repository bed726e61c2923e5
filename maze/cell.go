package maze

import "strings"

// Direction identifies one side of a cell.
type Direction int

// Directions in the fixed order used for every scan over a cell's sides.
const (
	North Direction = iota
	South
	East
	West
)

// Directions lists every direction in scan order.
var Directions = [...]Direction{North, South, East, West}

var directionNames = [...]string{"North", "South", "East", "West"}

// deltas holds the row/col offset to the neighbor behind each direction.
var deltas = [...]CellPosition{
	North: {Row: -1, Col: 0},
	South: {Row: 1, Col: 0},
	East:  {Row: 0, Col: 1},
	West:  {Row: 0, Col: -1},
}

// String returns the direction name (North, South, East, West).
func (d Direction) String() string {
	if d < North || d > West {
		return "Unknown"
	}
	return directionNames[d]
}

// Opposite returns the direction facing back across the same wall.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	default:
		return East
	}
}

// Delta returns the row/col offset to the neighbor behind d.
func (d Direction) Delta() CellPosition {
	return deltas[d]
}

// ParseDirection maps a case-insensitive name to a Direction.
func ParseDirection(s string) (Direction, bool) {
	for _, d := range Directions {
		if strings.EqualFold(s, d.String()) {
			return d, true
		}
	}
	return 0, false
}

// Cell represents a single cell in a maze grid.
type Cell struct {
	NorthWall bool `json:"north_wall"` // NorthWall indicates whether there is a wall on the north side of the cell.
	SouthWall bool `json:"south_wall"` // SouthWall indicates whether there is a wall on the south side of the cell.
	EastWall  bool `json:"east_wall"`  // EastWall indicates whether there is a wall on the east side of the cell.
	WestWall  bool `json:"west_wall"`  // WestWall indicates whether there is a wall on the west side of the cell.
}

// closedCell is a cell with every wall present.
var closedCell = Cell{NorthWall: true, SouthWall: true, EastWall: true, WestWall: true}

// HasNorthWall returns true if there is a wall on the north side of the cell.
func (c Cell) HasNorthWall() bool {
	return c.NorthWall
}

// HasSouthWall returns true if there is a wall on the south side of the cell.
func (c Cell) HasSouthWall() bool {
	return c.SouthWall
}

// HasEastWall returns true if there is a wall on the east side of the cell.
func (c Cell) HasEastWall() bool {
	return c.EastWall
}

// HasWestWall returns true if there is a wall on the west side of the cell.
func (c Cell) HasWestWall() bool {
	return c.WestWall
}

// HasWall reports whether the wall facing d is present.
func (c Cell) HasWall(d Direction) bool {
	switch d {
	case North:
		return c.NorthWall
	case South:
		return c.SouthWall
	case East:
		return c.EastWall
	case West:
		return c.WestWall
	}
	return false
}

// WithWall returns a copy of the cell with the wall facing d set to present.
func (c Cell) WithWall(d Direction, present bool) Cell {
	switch d {
	case North:
		c.NorthWall = present
	case South:
		c.SouthWall = present
	case East:
		c.EastWall = present
	case West:
		c.WestWall = present
	}
	return c
}

// CellPosition represents the position of a cell in the maze grid.
type CellPosition struct {
	Row int `json:"row"` // Row index of the cell
	Col int `json:"col"` // Column index of the cell
}

// Step returns the position of the neighbor behind d.
func (cp CellPosition) Step(d Direction) CellPosition {
	delta := d.Delta()
	return CellPosition{Row: cp.Row + delta.Row, Col: cp.Col + delta.Col}
}

// Move represents a movement from one cell to an adjacent one.
type Move struct {
	From      CellPosition // Starting cell
	To        CellPosition // Destination cell
	Direction Direction    // Direction of the move, as seen from From
}
