/*
Package maze provides the grid model and generators for rectangular perfect mazes.

A Maze owns a Grid of cells whose four wall flags are kept mutually
consistent with their neighbors. Generation carves a spanning tree over the
cells using either a recursive backtracker or Wilson's loop-erased random
walk, driven by an injectable random source so a seed always reproduces the
same layout. Once generated a Maze is read-only.
*/
package maze

import (
	"fmt"
	"math/rand"
	"strings"
)

// Algorithm names a maze generation strategy.
type Algorithm string

const (
	Backtracker Algorithm = "backtracker"
	Wilson      Algorithm = "wilson"
)

// ParseAlgorithm maps a case-insensitive name to an Algorithm. An empty
// name selects the backtracker.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(strings.ToLower(s)) {
	case "", Backtracker:
		return Backtracker, nil
	case Wilson:
		return Wilson, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownAlgorithm, s)
}

// Option configures Generate.
type Option func(*generator)

type generator struct {
	rng       *rand.Rand
	algorithm Algorithm
	entrance  *Opening
	exit      *Opening
}

// WithAlgorithm selects the generation strategy.
func WithAlgorithm(a Algorithm) Option {
	return func(g *generator) {
		g.algorithm = a
	}
}

// WithRand injects the random source, replacing the one derived from the seed.
func WithRand(rng *rand.Rand) Option {
	return func(g *generator) {
		g.rng = rng
	}
}

// WithEntrance opens the boundary wall of pos facing d.
func WithEntrance(pos CellPosition, d Direction) Option {
	return func(g *generator) {
		g.entrance = &Opening{Pos: pos, Direction: d}
	}
}

// WithExit opens the boundary wall of pos facing d.
func WithExit(pos CellPosition, d Direction) Option {
	return func(g *generator) {
		g.exit = &Opening{Pos: pos, Direction: d}
	}
}

// Maze is a generated perfect maze. It is immutable and safe for concurrent reads.
type Maze struct {
	grid      *Grid     // Carved grid
	seed      int64     // Seed the layout was generated from
	algorithm Algorithm // Strategy used to carve the grid
	entrance  *Opening  // Optional entrance
	exit      *Opening  // Optional exit
}

var _ Layout = &Maze{}

// Generate builds a rows×cols perfect maze from seed.
func Generate(rows, cols int, seed int64, opts ...Option) (*Maze, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}

	gen := &generator{algorithm: Backtracker}
	for _, opt := range opts {
		opt(gen)
	}
	if gen.rng == nil {
		gen.rng = rand.New(rand.NewSource(seed))
	}

	grid, err := NewGrid(rows, cols)
	if err != nil {
		return nil, err
	}

	for _, o := range []*Opening{gen.entrance, gen.exit} {
		if o == nil {
			continue
		}
		if err := grid.OpenBoundary(o.Pos, o.Direction); err != nil {
			return nil, err
		}
	}

	switch gen.algorithm {
	case Backtracker:
		start := CellPosition{}
		if gen.entrance != nil {
			start = gen.entrance.Pos
		}
		carveBacktracker(grid, start, gen.rng)
	case Wilson:
		carveWilson(grid, gen.rng)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownAlgorithm, gen.algorithm)
	}

	if err := grid.Validate(); err != nil {
		panic(err)
	}
	if p := grid.Passages(); p != rows*cols-1 {
		panic(fmt.Errorf("%w: %d passages in %dx%d maze", ErrInconsistentWallState, p, rows, cols))
	}

	return &Maze{
		grid:      grid,
		seed:      seed,
		algorithm: gen.algorithm,
		entrance:  gen.entrance,
		exit:      gen.exit,
	}, nil
}

// carveBacktracker grows the tree depth first, carving towards a uniformly
// chosen unvisited neighbor and backing up at dead ends.
func carveBacktracker(g *Grid, start CellPosition, rng *rand.Rand) {
	visited := make([]bool, g.rows*g.cols)
	visited[g.index(start)] = true
	stack := []CellPosition{start}

	candidates := make([]Move, 0, len(Directions))
	for len(stack) > 0 {
		cur := stack[len(stack)-1]

		candidates = candidates[:0]
		for _, m := range g.Neighbors(cur) {
			if !visited[g.index(m.To)] {
				candidates = append(candidates, m)
			}
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		m := candidates[rng.Intn(len(candidates))]
		g.carve(m)
		visited[g.index(m.To)] = true
		stack = append(stack, m.To)
	}
}

// carveWilson joins unvisited cells to the tree with loop-erased random walks.
func carveWilson(g *Grid, rng *rand.Rand) {
	visited := make([]bool, g.rows*g.cols)
	visited[g.index(randomCellPosition(g, rng))] = true
	remaining := g.rows*g.cols - 1

	for remaining > 0 {
		start := randomUnvisitedCellPosition(g, rng, visited)

		// Later exits overwrite earlier ones, which erases loops.
		exits := make(map[CellPosition]Move)
		cell := start
		for !visited[g.index(cell)] {
			neighbors := g.Neighbors(cell)
			m := neighbors[rng.Intn(len(neighbors))]
			exits[cell] = m
			cell = m.To
		}

		cell = start
		for !visited[g.index(cell)] {
			m := exits[cell]
			g.carve(m)
			visited[g.index(cell)] = true
			remaining--
			cell = m.To
		}
	}
}

// randomCellPosition generates a random position within the grid.
func randomCellPosition(g *Grid, rng *rand.Rand) CellPosition {
	return CellPosition{Row: rng.Intn(g.rows), Col: rng.Intn(g.cols)}
}

// randomUnvisitedCellPosition selects a random position that has not been visited.
func randomUnvisitedCellPosition(g *Grid, rng *rand.Rand, visited []bool) CellPosition {
	for {
		pos := randomCellPosition(g, rng)
		if !visited[g.index(pos)] {
			return pos
		}
	}
}

// Rows returns the number of rows.
func (m *Maze) Rows() int {
	return m.grid.rows
}

// Cols returns the number of columns.
func (m *Maze) Cols() int {
	return m.grid.cols
}

// Get implements Layout.
func (m *Maze) Get(row, col int) (Cell, error) {
	return m.grid.Get(row, col)
}

// CellAt returns the cell at (row, col) or ErrOutOfBounds.
func (m *Maze) CellAt(row, col int) (Cell, error) {
	return m.grid.Get(row, col)
}

// InBound reports whether (row, col) lies inside the maze.
func (m *Maze) InBound(row, col int) bool {
	return m.grid.InBound(row, col)
}

// Seed returns the seed the maze was generated from.
func (m *Maze) Seed() int64 {
	return m.seed
}

// Algorithm returns the strategy used to generate the maze.
func (m *Maze) Algorithm() Algorithm {
	return m.algorithm
}

// Entrance returns the entrance opening, if one was requested.
func (m *Maze) Entrance() (Opening, bool) {
	if m.entrance == nil {
		return Opening{}, false
	}
	return *m.entrance, true
}

// Exit returns the exit opening, if one was requested.
func (m *Maze) Exit() (Opening, bool) {
	if m.exit == nil {
		return Opening{}, false
	}
	return *m.exit, true
}

// Passages returns the number of open interior walls.
func (m *Maze) Passages() int {
	return m.grid.Passages()
}

// IsValidMove checks if a move crosses an open wall between two cells.
func (m *Maze) IsValidMove(move Move) bool {
	return m.grid.Passable(move)
}

// Grid returns a copy of the underlying grid.
func (m *Maze) Grid() *Grid {
	return m.grid.Clone()
}

// String provides a textual representation of the maze.
func (m *Maze) String() string {
	return m.grid.String()
}

// FromGrid wraps an already carved grid, typically one decoded from storage.
// The grid must satisfy the same invariants Generate guarantees. Algorithm,
// entrance and exit options are recorded; WithRand is ignored.
func FromGrid(g *Grid, seed int64, opts ...Option) (*Maze, error) {
	gen := &generator{algorithm: Backtracker}
	for _, opt := range opts {
		opt(gen)
	}

	for _, o := range []*Opening{gen.entrance, gen.exit} {
		if o != nil && !g.IsOpening(o.Pos, o.Direction) {
			return nil, fmt.Errorf("%w: (%d,%d) %s is not an opening", ErrInconsistentWallState, o.Pos.Row, o.Pos.Col, o.Direction)
		}
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if p := g.Passages(); p != g.rows*g.cols-1 {
		return nil, fmt.Errorf("%w: %d passages in %dx%d maze", ErrInconsistentWallState, p, g.rows, g.cols)
	}
	if n := g.Reachable(CellPosition{}); n != g.rows*g.cols {
		return nil, fmt.Errorf("%w: only %d of %d cells connected", ErrInconsistentWallState, n, g.rows*g.cols)
	}

	return &Maze{
		grid:      g.Clone(),
		seed:      seed,
		algorithm: gen.algorithm,
		entrance:  gen.entrance,
		exit:      gen.exit,
	}, nil
}
