package maze

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidDimensions     = errors.New("invalid maze dimensions")
	ErrOutOfBounds           = errors.New("cell position out of bounds")
	ErrInconsistentWallState = errors.New("inconsistent wall state")
	ErrUnknownAlgorithm      = errors.New("unknown maze algorithm")
)

// Layout is a read-only view over a rows×cols arrangement of cells.
type Layout interface {
	Rows() int
	Cols() int
	Get(row, col int) (Cell, error)
}

// Opening is a boundary wall deliberately left open, such as an entrance or exit.
type Opening struct {
	Pos       CellPosition `json:"pos"`
	Direction Direction    `json:"direction"`
}

var _ Layout = &Grid{}

// Grid is a fixed-size rows×cols collection of cells stored in a flat
// slice addressed by row*cols+col. Walls shared by two cells are always
// written on both sides in the same call.
type Grid struct {
	rows     int       // Number of rows
	cols     int       // Number of columns
	cells    []Cell    // Cells in row-major order
	openings []Opening // Boundary walls allowed to be open
}

// NewGrid creates a grid of the given size with every wall present.
func NewGrid(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}

	cells := make([]Cell, rows*cols)
	for i := range cells {
		cells[i] = closedCell
	}

	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: cells,
	}, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns.
func (g *Grid) Cols() int {
	return g.cols
}

// InBound reports whether (row, col) lies inside the grid.
func (g *Grid) InBound(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

func (g *Grid) index(pos CellPosition) int {
	return pos.Row*g.cols + pos.Col
}

// Get returns the cell at (row, col).
func (g *Grid) Get(row, col int) (Cell, error) {
	if !g.InBound(row, col) {
		return Cell{}, fmt.Errorf("%w: (%d,%d) in %dx%d grid", ErrOutOfBounds, row, col, g.rows, g.cols)
	}
	return g.cells[row*g.cols+col], nil
}

// Set replaces the walls of the cell at (row, col) and mirrors every shared
// wall onto the neighbor behind it. Clearing an outward boundary wall that
// is not an opening is rejected. Nothing is written when an error is returned.
func (g *Grid) Set(row, col int, walls Cell) error {
	if !g.InBound(row, col) {
		return fmt.Errorf("%w: (%d,%d) in %dx%d grid", ErrOutOfBounds, row, col, g.rows, g.cols)
	}

	pos := CellPosition{Row: row, Col: col}
	for _, d := range Directions {
		n := pos.Step(d)
		if !g.InBound(n.Row, n.Col) && !walls.HasWall(d) && !g.IsOpening(pos, d) {
			return fmt.Errorf("%w: clearing %s boundary wall of (%d,%d)", ErrInconsistentWallState, d, row, col)
		}
	}

	g.cells[g.index(pos)] = walls
	for _, d := range Directions {
		n := pos.Step(d)
		if g.InBound(n.Row, n.Col) {
			i := g.index(n)
			g.cells[i] = g.cells[i].WithWall(d.Opposite(), walls.HasWall(d))
		}
	}
	return nil
}

// OpenBoundary designates the outward wall of pos facing d as an opening
// and removes it. d must point out of the grid.
func (g *Grid) OpenBoundary(pos CellPosition, d Direction) error {
	if !g.InBound(pos.Row, pos.Col) {
		return fmt.Errorf("%w: (%d,%d) in %dx%d grid", ErrOutOfBounds, pos.Row, pos.Col, g.rows, g.cols)
	}

	n := pos.Step(d)
	if g.InBound(n.Row, n.Col) {
		return fmt.Errorf("%w: %s wall of (%d,%d) is not on the boundary", ErrInconsistentWallState, d, pos.Row, pos.Col)
	}

	if !g.IsOpening(pos, d) {
		g.openings = append(g.openings, Opening{Pos: pos, Direction: d})
	}
	i := g.index(pos)
	g.cells[i] = g.cells[i].WithWall(d, false)
	return nil
}

// IsOpening reports whether the wall of pos facing d is a designated opening.
func (g *Grid) IsOpening(pos CellPosition, d Direction) bool {
	for _, o := range g.openings {
		if o.Pos == pos && o.Direction == d {
			return true
		}
	}
	return false
}

// Openings returns the designated openings in the order they were added.
func (g *Grid) Openings() []Opening {
	return append([]Opening(nil), g.openings...)
}

// Neighbors returns the in-bound moves out of pos in direction order.
func (g *Grid) Neighbors(pos CellPosition) []Move {
	moves := make([]Move, 0, len(Directions))
	for _, d := range Directions {
		n := pos.Step(d)
		if g.InBound(n.Row, n.Col) {
			moves = append(moves, Move{From: pos, To: n, Direction: d})
		}
	}
	return moves
}

// Passable reports whether a move crosses an open interior wall.
func (g *Grid) Passable(m Move) bool {
	if !g.InBound(m.From.Row, m.From.Col) || !g.InBound(m.To.Row, m.To.Col) || m.From.Step(m.Direction) != m.To {
		return false
	}
	return !g.cells[g.index(m.From)].HasWall(m.Direction) && !g.cells[g.index(m.To)].HasWall(m.Direction.Opposite())
}

// carve removes the wall crossed by m on both cells.
func (g *Grid) carve(m Move) {
	from, to := g.index(m.From), g.index(m.To)
	g.cells[from] = g.cells[from].WithWall(m.Direction, false)
	g.cells[to] = g.cells[to].WithWall(m.Direction.Opposite(), false)
}

// Passages counts the open interior walls.
func (g *Grid) Passages() int {
	count := 0
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			cell := g.cells[row*g.cols+col]
			if col+1 < g.cols && !cell.EastWall {
				count++
			}
			if row+1 < g.rows && !cell.SouthWall {
				count++
			}
		}
	}
	return count
}

// Validate checks mutual wall consistency between neighbors and that every
// outward boundary wall is present unless it is an opening.
func (g *Grid) Validate() error {
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			pos := CellPosition{Row: row, Col: col}
			cell := g.cells[g.index(pos)]
			for _, d := range Directions {
				n := pos.Step(d)
				if !g.InBound(n.Row, n.Col) {
					if !cell.HasWall(d) && !g.IsOpening(pos, d) {
						return fmt.Errorf("%w: (%d,%d) has open %s boundary", ErrInconsistentWallState, row, col, d)
					}
					continue
				}
				if cell.HasWall(d) != g.cells[g.index(n)].HasWall(d.Opposite()) {
					return fmt.Errorf("%w: (%d,%d) %s disagrees with (%d,%d)", ErrInconsistentWallState, row, col, d, n.Row, n.Col)
				}
			}
		}
	}
	return nil
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{
		rows:     g.rows,
		cols:     g.cols,
		cells:    append([]Cell(nil), g.cells...),
		openings: append([]Opening(nil), g.openings...),
	}
}

// Equal reports whether two grids have the same size, walls and openings.
func (g *Grid) Equal(o *Grid) bool {
	if g.rows != o.rows || g.cols != o.cols || len(g.openings) != len(o.openings) {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	for i := range g.openings {
		if g.openings[i] != o.openings[i] {
			return false
		}
	}
	return true
}

// String provides a textual representation of the grid.
func (g *Grid) String() string {
	var output strings.Builder

	// Top boundary
	output.WriteString("+")
	for col := 0; col < g.cols; col++ {
		if g.cells[col].NorthWall {
			output.WriteString("---+")
		} else {
			output.WriteString("   +")
		}
	}
	output.WriteString("\n")

	for row := 0; row < g.rows; row++ {
		// Cell rows
		if g.cells[row*g.cols].WestWall {
			output.WriteString("|")
		} else {
			output.WriteString(" ")
		}
		for col := 0; col < g.cols; col++ {
			if g.cells[row*g.cols+col].EastWall {
				output.WriteString("   |")
			} else {
				output.WriteString("    ")
			}
		}
		output.WriteString("\n")

		// Wall rows
		output.WriteString("+")
		for col := 0; col < g.cols; col++ {
			if g.cells[row*g.cols+col].SouthWall {
				output.WriteString("---+")
			} else {
				output.WriteString("   +")
			}
		}
		output.WriteString("\n")
	}

	return output.String()
}
