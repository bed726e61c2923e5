// Package minimap draws a top-down view of a maze layout with the player's
// position and heading projected onto the grid.
package minimap

import (
	"errors"
	"image/color"
	"math"
	"sync"

	"github.com/beka-birhanu/vinom-walker/maze"
)

var (
	ErrInvalidCellSize = errors.New("cell size must be positive")
	ErrInvalidPose     = errors.New("pose must have finite coordinates and heading")
)

// Calibration between the scene origin and the grid origin, in cells.
// Floor tiles are centred on col*cellSize, row*cellSize, and these offsets
// keep the marker on the same cell the scene geometry puts the player in.
const (
	colBias  = 0.4
	rowBias  = -0.5
	rowShift = 1

	// markerScale is the marker radius as a fraction of the smaller cell side.
	markerScale = 0.35
	// markerSpread is the angle in radians between the tip and each rear corner.
	markerSpread = 2.5
)

// Fixed colors, one per wall direction, plus grid lines and the marker.
var (
	NorthColor  = color.RGBA{R: 0xe0, G: 0x30, B: 0x30, A: 0xff}
	SouthColor  = color.RGBA{R: 0x30, G: 0x60, B: 0xe0, A: 0xff}
	EastColor   = color.RGBA{R: 0x30, G: 0xc0, B: 0x40, A: 0xff}
	WestColor   = color.RGBA{R: 0xe0, G: 0xc0, B: 0x20, A: 0xff}
	GridColor   = color.RGBA{R: 0x50, G: 0x50, B: 0x50, A: 0xff}
	MarkerColor = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

var wallColors = [...]color.RGBA{
	maze.North: NorthColor,
	maze.South: SouthColor,
	maze.East:  EastColor,
	maze.West:  WestColor,
}

// PlayerPose is the player's scene position and heading (radians about Y).
type PlayerPose struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Z       float64 `json:"z"`
	Heading float64 `json:"heading"`
}

// Validate reports ErrInvalidPose when any field is NaN or infinite.
func (p PlayerPose) Validate() error {
	for _, v := range [...]float64{p.X, p.Y, p.Z, p.Heading} {
		if !finite(v) {
			return ErrInvalidPose
		}
	}
	return nil
}

// Size is a viewport extent in minimap units.
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Finite reports whether both sides are finite numbers.
func (s Size) Finite() bool {
	return finite(s.W) && finite(s.H)
}

// Point is a minimap coordinate, origin top-left, Y growing downwards.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Segment is a colored line.
type Segment struct {
	From  Point
	To    Point
	Color color.RGBA
}

// Triangle is a filled, colored triangle.
type Triangle struct {
	Points [3]Point
	Color  color.RGBA
}

// Drawing is the full set of commands for one redraw, in paint order:
// grid lines, walls, then the marker.
type Drawing struct {
	Viewport  Size
	GridLines []Segment
	Walls     []Segment
	Marker    *Triangle          // nil when no pose is known
	Player    *maze.CellPosition // projected cell, possibly outside the grid
}

// Project maps a scene position onto grid coordinates. The result may lie
// outside the grid.
func Project(pose PlayerPose, cellSize float64) maze.CellPosition {
	return maze.CellPosition{
		Row: int(math.Round(pose.Z/cellSize+rowBias)) + rowShift,
		Col: int(math.Round(pose.X/cellSize + colBias)),
	}
}

// Minimap redraws a layout on demand, remembering the last pose it was given.
type Minimap struct {
	cellSize float64     // Scene units per cell
	last     *PlayerPose // Last pose passed to Redraw
	mu       sync.Mutex
}

// New creates a minimap for scenes built with the given cell size.
func New(cellSize float64) (*Minimap, error) {
	if cellSize <= 0 || !finite(cellSize) {
		return nil, ErrInvalidCellSize
	}
	return &Minimap{cellSize: cellSize}, nil
}

// LastPose returns the most recent pose given to Redraw.
func (m *Minimap) LastPose() (PlayerPose, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.last == nil {
		return PlayerPose{}, false
	}
	return *m.last, true
}

// Redraw produces the complete drawing for the layout. A nil pose reuses the
// last known one; with no pose at all only the grid and walls are drawn.
// A pose with non-finite fields is ignored like a nil one, and a non-finite
// viewport yields an empty drawing.
// Redrawing with the same inputs always yields the same drawing.
func (m *Minimap) Redraw(l maze.Layout, pose *PlayerPose, viewport Size) Drawing {
	m.mu.Lock()
	if pose != nil && pose.Validate() == nil {
		p := *pose
		m.last = &p
	}
	var current *PlayerPose
	if m.last != nil {
		p := *m.last
		current = &p
	}
	m.mu.Unlock()

	if !viewport.Finite() {
		return Drawing{}
	}

	d := Drawing{Viewport: viewport}
	rows, cols := l.Rows(), l.Cols()
	if rows <= 0 || cols <= 0 || viewport.W <= 0 || viewport.H <= 0 {
		return d
	}

	cw, ch := viewport.W/float64(cols), viewport.H/float64(rows)

	d.GridLines = make([]Segment, 0, rows+cols+2)
	for row := 0; row <= rows; row++ {
		y := float64(row) * ch
		d.GridLines = append(d.GridLines, Segment{From: Point{X: 0, Y: y}, To: Point{X: viewport.W, Y: y}, Color: GridColor})
	}
	for col := 0; col <= cols; col++ {
		x := float64(col) * cw
		d.GridLines = append(d.GridLines, Segment{From: Point{X: x, Y: 0}, To: Point{X: x, Y: viewport.H}, Color: GridColor})
	}

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			cell, err := l.Get(row, col)
			if err != nil {
				continue
			}
			for _, dir := range maze.Directions {
				if cell.HasWall(dir) {
					d.Walls = append(d.Walls, wallSegment(row, col, dir, cw, ch))
				}
			}
		}
	}

	if current == nil {
		return d
	}

	pos := Project(*current, m.cellSize)
	d.Player = &pos
	d.Marker = marker(clamp(pos, rows, cols), current.Heading, cw, ch)
	return d
}

// wallSegment returns the edge of cell (row, col) facing dir.
func wallSegment(row, col int, dir maze.Direction, cw, ch float64) Segment {
	x0, y0 := float64(col)*cw, float64(row)*ch
	x1, y1 := x0+cw, y0+ch

	s := Segment{Color: wallColors[dir]}
	switch dir {
	case maze.North:
		s.From, s.To = Point{X: x0, Y: y0}, Point{X: x1, Y: y0}
	case maze.South:
		s.From, s.To = Point{X: x0, Y: y1}, Point{X: x1, Y: y1}
	case maze.East:
		s.From, s.To = Point{X: x1, Y: y0}, Point{X: x1, Y: y1}
	case maze.West:
		s.From, s.To = Point{X: x0, Y: y0}, Point{X: x0, Y: y1}
	}
	return s
}

// marker builds the heading triangle centred on pos. Heading 0 faces -Z
// (north, up on the minimap); heading π faces +Z.
func marker(pos maze.CellPosition, heading, cw, ch float64) *Triangle {
	cx, cy := (float64(pos.Col)+0.5)*cw, (float64(pos.Row)+0.5)*ch
	r := markerScale * math.Min(cw, ch)

	at := func(angle float64) Point {
		return Point{X: cx - r*math.Sin(angle), Y: cy - r*math.Cos(angle)}
	}
	return &Triangle{
		Points: [3]Point{at(heading), at(heading + markerSpread), at(heading - markerSpread)},
		Color:  MarkerColor,
	}
}

func clamp(pos maze.CellPosition, rows, cols int) maze.CellPosition {
	pos.Row = max(0, min(pos.Row, rows-1))
	pos.Col = max(0, min(pos.Col, cols-1))
	return pos
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
