package minimap

import (
	"bytes"
	"image/color"
	"math"
	"testing"

	"github.com/beka-birhanu/vinom-walker/maze"
	"github.com/beka-birhanu/vinom-walker/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject(t *testing.T) {
	// Scene positions of cell centres as laid out by scene.ProjectGeometry.
	tests := []struct {
		name     string
		cellSize float64
		cell     maze.CellPosition
		want     maze.CellPosition
	}{
		{"top-left corner", 1, maze.CellPosition{Row: 0, Col: 0}, maze.CellPosition{Row: 0, Col: 0}},
		{"top-right corner", 1, maze.CellPosition{Row: 0, Col: 4}, maze.CellPosition{Row: 0, Col: 4}},
		{"centre", 1, maze.CellPosition{Row: 2, Col: 2}, maze.CellPosition{Row: 3, Col: 2}},
		{"cell 2,3", 1, maze.CellPosition{Row: 2, Col: 3}, maze.CellPosition{Row: 3, Col: 3}},
		{"bottom-right corner", 1, maze.CellPosition{Row: 4, Col: 4}, maze.CellPosition{Row: 5, Col: 4}},
		{"cell 2,3 with larger cells", 2, maze.CellPosition{Row: 2, Col: 3}, maze.CellPosition{Row: 3, Col: 3}},
	}

	g, err := maze.NewGrid(5, 5)
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var floor *scene.Placement
			for _, p := range scene.ProjectGeometry(g, scene.ConfigFor(tt.cellSize, 0.1)) {
				if p.Kind == scene.KindFloor && p.Cell == tt.cell {
					p := p
					floor = &p
				}
			}
			require.NotNil(t, floor)

			got := Project(PlayerPose{X: floor.Position.X, Z: floor.Position.Z}, tt.cellSize)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	for _, cs := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := New(cs)
		assert.ErrorIs(t, err, ErrInvalidCellSize)
	}
}

func TestRedrawWithoutPose(t *testing.T) {
	m, err := maze.Generate(4, 5, 2)
	require.NoError(t, err)
	mm, err := New(1)
	require.NoError(t, err)

	d := mm.Redraw(m, nil, Size{W: 100, H: 80})
	assert.Nil(t, d.Marker)
	assert.Nil(t, d.Player)
	require.Len(t, d.GridLines, 4+1+5+1)
	assert.Equal(t, Segment{From: Point{X: 0, Y: 20}, To: Point{X: 100, Y: 20}, Color: GridColor}, d.GridLines[1])
	assert.Equal(t, Segment{From: Point{X: 20, Y: 0}, To: Point{X: 20, Y: 80}, Color: GridColor}, d.GridLines[6])

	walls := 0
	for row := 0; row < m.Rows(); row++ {
		for col := 0; col < m.Cols(); col++ {
			c, _ := m.CellAt(row, col)
			for _, dir := range maze.Directions {
				if c.HasWall(dir) {
					walls++
				}
			}
		}
	}
	assert.Len(t, d.Walls, walls)

	_, ok := mm.LastPose()
	assert.False(t, ok)
}

func TestRedrawWallSegments(t *testing.T) {
	g, err := maze.NewGrid(1, 1)
	require.NoError(t, err)
	mm, err := New(1)
	require.NoError(t, err)

	d := mm.Redraw(g, nil, Size{W: 10, H: 10})
	assert.Equal(t, []Segment{
		{From: Point{X: 0, Y: 0}, To: Point{X: 10, Y: 0}, Color: NorthColor},
		{From: Point{X: 0, Y: 10}, To: Point{X: 10, Y: 10}, Color: SouthColor},
		{From: Point{X: 10, Y: 0}, To: Point{X: 10, Y: 10}, Color: EastColor},
		{From: Point{X: 0, Y: 0}, To: Point{X: 0, Y: 10}, Color: WestColor},
	}, d.Walls)
}

func TestRedrawWithPose(t *testing.T) {
	g, err := maze.NewGrid(5, 5)
	require.NoError(t, err)
	mm, err := New(1)
	require.NoError(t, err)

	pose := &PlayerPose{X: 3, Z: 2, Heading: math.Pi}
	d := mm.Redraw(g, pose, Size{W: 50, H: 50})
	require.NotNil(t, d.Marker)
	assert.Equal(t, maze.CellPosition{Row: 3, Col: 3}, *d.Player)

	// Heading π faces +Z, which is down on the minimap.
	tip := d.Marker.Points[0]
	assert.InDelta(t, 35, tip.X, 1e-9)
	assert.InDelta(t, 35+3.5, tip.Y, 1e-9)

	t.Run("idempotent", func(t *testing.T) {
		again := mm.Redraw(g, pose, Size{W: 50, H: 50})
		assert.Equal(t, d, again)
	})

	t.Run("reuses the last pose", func(t *testing.T) {
		cached := mm.Redraw(g, nil, Size{W: 50, H: 50})
		assert.Equal(t, d, cached)
		last, ok := mm.LastPose()
		assert.True(t, ok)
		assert.Equal(t, *pose, last)
	})

	t.Run("clamps the marker into the grid", func(t *testing.T) {
		d := mm.Redraw(g, &PlayerPose{X: 4, Z: 4}, Size{W: 50, H: 50})
		assert.Equal(t, maze.CellPosition{Row: 5, Col: 4}, *d.Player)
		tip := d.Marker.Points[0]
		assert.InDelta(t, 45, tip.X, 1e-9)
		assert.InDelta(t, 45-3.5, tip.Y, 1e-9)
	})
}

func TestRedrawEmptyViewport(t *testing.T) {
	g, err := maze.NewGrid(2, 2)
	require.NoError(t, err)
	mm, err := New(1)
	require.NoError(t, err)

	d := mm.Redraw(g, &PlayerPose{}, Size{})
	assert.Empty(t, d.GridLines)
	assert.Empty(t, d.Walls)
	assert.Nil(t, d.Marker)
}

func TestRender(t *testing.T) {
	g, err := maze.NewGrid(1, 1)
	require.NoError(t, err)
	mm, err := New(1)
	require.NoError(t, err)

	d := mm.Redraw(g, &PlayerPose{Heading: math.Pi}, Size{W: 100, H: 100})
	img, err := Render(d)
	require.NoError(t, err)

	assertColorNear(t, NorthColor, img.RGBAAt(50, 0))
	assertColorNear(t, MarkerColor, img.RGBAAt(50, 50))
	assertColorNear(t, Background, img.RGBAAt(20, 80))

	var a, b bytes.Buffer
	require.NoError(t, RenderPNG(d, &a))
	require.NoError(t, RenderPNG(mm.Redraw(g, nil, Size{W: 100, H: 100}), &b))
	assert.Equal(t, a.Bytes(), b.Bytes())

	_, err = Render(Drawing{})
	assert.ErrorIs(t, err, ErrInvalidViewport)
}

// assertColorNear allows for rounding in the rasterizer's coverage.
func assertColorNear(t *testing.T, want, got color.RGBA) {
	t.Helper()
	assert.InDelta(t, want.R, got.R, 2)
	assert.InDelta(t, want.G, got.G, 2)
	assert.InDelta(t, want.B, got.B, 2)
	assert.InDelta(t, want.A, got.A, 2)
}

func TestPlayerPoseValidate(t *testing.T) {
	assert.NoError(t, PlayerPose{X: 1, Z: -2, Heading: 3}.Validate())

	for name, pose := range map[string]PlayerPose{
		"NaN x":       {X: math.NaN()},
		"infinite y":  {Y: math.Inf(1)},
		"infinite z":  {Z: math.Inf(-1)},
		"NaN heading": {Heading: math.NaN()},
	} {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, pose.Validate(), ErrInvalidPose)
		})
	}
}

func TestRedrawIgnoresNonFinitePose(t *testing.T) {
	g, err := maze.NewGrid(3, 3)
	require.NoError(t, err)
	mm, err := New(1)
	require.NoError(t, err)
	viewport := Size{W: 30, H: 30}

	t.Run("without a cached pose", func(t *testing.T) {
		d := mm.Redraw(g, &PlayerPose{X: 1, Z: 1, Heading: math.NaN()}, viewport)
		assert.Nil(t, d.Marker)
		assert.Nil(t, d.Player)
		_, ok := mm.LastPose()
		assert.False(t, ok)
	})

	t.Run("keeps the cached pose", func(t *testing.T) {
		good := &PlayerPose{X: 1, Z: 1}
		want := mm.Redraw(g, good, viewport)

		d := mm.Redraw(g, &PlayerPose{X: math.NaN(), Z: 1}, viewport)
		assert.Equal(t, want, d)
		last, ok := mm.LastPose()
		require.True(t, ok)
		assert.Equal(t, *good, last)
	})

	t.Run("non-finite viewport", func(t *testing.T) {
		d := mm.Redraw(g, nil, Size{W: math.Inf(1), H: 30})
		assert.Equal(t, Drawing{}, d)
	})
}

func TestCheckRaster(t *testing.T) {
	assert.NoError(t, Size{W: 4096, H: 1}.CheckRaster())
	assert.ErrorIs(t, Size{W: 4097, H: 10}.CheckRaster(), ErrInvalidViewport)
	assert.ErrorIs(t, Size{W: 0, H: 10}.CheckRaster(), ErrInvalidViewport)
	assert.ErrorIs(t, Size{W: math.NaN(), H: 10}.CheckRaster(), ErrInvalidViewport)
}
