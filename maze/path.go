package maze

import (
	"errors"
	"fmt"
)

var ErrNoPath = errors.New("no path between cells")

// bfs walks passages from start and returns each reached cell's predecessor
// index, with -1 marking unreached cells and start pointing to itself.
func (g *Grid) bfs(start CellPosition) []int {
	parent := make([]int, g.rows*g.cols)
	for i := range parent {
		parent[i] = -1
	}

	parent[g.index(start)] = g.index(start)
	queue := []CellPosition{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, m := range g.Neighbors(cur) {
			i := g.index(m.To)
			if parent[i] == -1 && g.Passable(m) {
				parent[i] = g.index(cur)
				queue = append(queue, m.To)
			}
		}
	}
	return parent
}

// Reachable counts the cells reachable from start through passages, start included.
func (g *Grid) Reachable(start CellPosition) int {
	if !g.InBound(start.Row, start.Col) {
		return 0
	}

	count := 0
	for _, p := range g.bfs(start) {
		if p != -1 {
			count++
		}
	}
	return count
}

// Solve returns the shortest path of cells from one position to another, both included.
func (m *Maze) Solve(from, to CellPosition) ([]CellPosition, error) {
	g := m.grid
	for _, p := range []CellPosition{from, to} {
		if !g.InBound(p.Row, p.Col) {
			return nil, fmt.Errorf("%w: (%d,%d) in %dx%d grid", ErrOutOfBounds, p.Row, p.Col, g.rows, g.cols)
		}
	}

	parent := g.bfs(from)
	if parent[g.index(to)] == -1 {
		return nil, ErrNoPath
	}

	var reversed []CellPosition
	for i := g.index(to); ; i = parent[i] {
		reversed = append(reversed, CellPosition{Row: i / g.cols, Col: i % g.cols})
		if i == parent[i] {
			break
		}
	}

	path := make([]CellPosition, len(reversed))
	for i, p := range reversed {
		path[len(reversed)-1-i] = p
	}
	return path, nil
}

// Solution returns the path from the entrance to the exit. Without openings
// it runs from the top-left to the bottom-right cell.
func (m *Maze) Solution() ([]CellPosition, error) {
	from := CellPosition{}
	to := CellPosition{Row: m.grid.rows - 1, Col: m.grid.cols - 1}
	if m.entrance != nil {
		from = m.entrance.Pos
	}
	if m.exit != nil {
		to = m.exit.Pos
	}
	return m.Solve(from, to)
}
