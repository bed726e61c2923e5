package scene

import (
	"math"
	"testing"

	"github.com/beka-birhanu/vinom-walker/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsilon = 1e-9

func TestProjectGeometrySingleCell(t *testing.T) {
	g, err := maze.NewGrid(1, 1)
	require.NoError(t, err)

	placements := ProjectGeometry(g, DefaultConfig())
	require.Len(t, placements, 5)

	floor := placements[0]
	assert.Equal(t, KindFloor, floor.Kind)
	assert.Equal(t, FloorTexture, floor.TextureID)
	assert.InDelta(t, -0.5, floor.Position.Y, epsilon)
	assert.Equal(t, Vec3{X: 1, Y: 0, Z: 1}, floor.Size)

	north := placements[1]
	assert.Equal(t, KindWall, north.Kind)
	assert.Equal(t, maze.North, north.Direction)
	assert.InDelta(t, 0, north.Position.X, epsilon)
	assert.InDelta(t, 0.05, north.Position.Y, epsilon)
	assert.InDelta(t, -0.55, north.Position.Z, epsilon)
	assert.InDelta(t, 1, north.Size.X, epsilon)
	assert.InDelta(t, 0.1, north.Size.Z, epsilon)
	assert.Equal(t, BothCorners, north.Variant)
	assert.Equal(t, "north-both-corners", north.TextureID)

	east := placements[3]
	assert.Equal(t, maze.East, east.Direction)
	assert.InDelta(t, 0.55, east.Position.X, epsilon)
	assert.InDelta(t, 0.1, east.Size.X, epsilon)
	assert.InDelta(t, 1, east.Size.Z, epsilon)
	assert.InDelta(t, -math.Pi/2, east.Yaw, epsilon)
}

func TestProjectGeometryVariants(t *testing.T) {
	g, err := maze.NewGrid(1, 2)
	require.NoError(t, err)
	require.NoError(t, g.Set(0, 0, maze.Cell{NorthWall: true, SouthWall: true, WestWall: true}))

	placements := ProjectGeometry(g, DefaultConfig())
	// Two floors, three walls on each cell.
	require.Len(t, placements, 8)

	byTexture := map[maze.CellPosition][]string{}
	for _, p := range placements {
		if p.Kind == KindWall {
			byTexture[p.Cell] = append(byTexture[p.Cell], p.TextureID)
		}
	}
	assert.Equal(t, []string{"north-corner-left", "south-corner-right", "west-both-corners"}, byTexture[maze.CellPosition{}])
	assert.Equal(t, []string{"north-corner-right", "south-corner-left", "east-both-corners"}, byTexture[maze.CellPosition{Col: 1}])
}

func TestProjectGeometryGeneratedMaze(t *testing.T) {
	m, err := maze.Generate(6, 9, 17)
	require.NoError(t, err)
	before := m.Grid()

	cfg := ConfigFor(2, 0.2)
	first := ProjectGeometry(m, cfg)
	second := ProjectGeometry(m, cfg)
	assert.Equal(t, first, second)
	assert.True(t, before.Equal(m.Grid()))

	walls, floors := 0, 0
	for row := 0; row < m.Rows(); row++ {
		for col := 0; col < m.Cols(); col++ {
			c, _ := m.CellAt(row, col)
			for _, d := range maze.Directions {
				if c.HasWall(d) {
					walls++
				}
			}
		}
	}
	for _, p := range first {
		switch p.Kind {
		case KindFloor:
			floors++
			assert.InDelta(t, float64(p.Cell.Col)*2, p.Position.X, epsilon)
			assert.InDelta(t, float64(p.Cell.Row)*2, p.Position.Z, epsilon)
		case KindWall:
			left, right := CornerNeighbors(p.Direction)
			c, _ := m.CellAt(p.Cell.Row, p.Cell.Col)
			want, ok := ResolveFlags(c.HasWall(p.Direction), c.HasWall(left), c.HasWall(right))
			require.True(t, ok)
			assert.Equal(t, want, p.Variant)
		}
	}
	assert.Equal(t, 54, floors)
	assert.Equal(t, walls, len(first)-floors)
}
