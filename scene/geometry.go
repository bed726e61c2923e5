package scene

import (
	"math"
	"strings"

	"github.com/beka-birhanu/vinom-walker/maze"
)

// Kind tells floor tiles and wall solids apart.
type Kind string

const (
	KindFloor Kind = "floor"
	KindWall  Kind = "wall"

	// FloorTexture is the texture id of every floor tile.
	FloorTexture = "floor"
)

// Vec3 is a point or extent in scene units. Y is up; +X follows columns and
// +Z follows rows, so north is -Z.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Placement is one solid for the host scene.
type Placement struct {
	Kind      Kind              // Floor tile or wall
	Cell      maze.CellPosition // Cell the solid belongs to
	Direction maze.Direction    // Facing of a wall, unset for floors
	Position  Vec3              // Centre of the solid
	Size      Vec3              // Extent along X, Y and Z
	Yaw       float64           // Rotation about Y in radians, outward facing for walls
	Variant   Variant           // Corner variant of a wall, unset for floors
	TextureID string            // Asset name the host resolves
}

// Config holds the scene dimensions used by ProjectGeometry.
type Config struct {
	CellSize      float64 // Edge length of a cell
	WallThickness float64 // Depth of a wall solid
	WallHeight    float64 // Height of a wall solid
	FloorY        float64 // Height of floor tiles
	WallBias      float64 // Extra outward push keeping back-to-back walls from being coplanar
	Elevation     float64 // Height of wall centres
}

// DefaultConfig returns the unit-cell scene dimensions.
func DefaultConfig() Config {
	return ConfigFor(1, 0.1)
}

// ConfigFor derives a config for the given cell size and wall thickness.
func ConfigFor(cellSize, wallThickness float64) Config {
	return Config{
		CellSize:      cellSize,
		WallThickness: wallThickness,
		WallHeight:    cellSize,
		FloorY:        -cellSize / 2,
		WallBias:      cellSize / 20,
		Elevation:     wallThickness / 2,
	}
}

// yaws holds the outward facing rotation of each wall direction.
var yaws = [...]float64{
	maze.North: 0,
	maze.South: math.Pi,
	maze.East:  -math.Pi / 2,
	maze.West:  math.Pi / 2,
}

// WallTexture returns the texture id for a wall facing d with variant v.
func WallTexture(d maze.Direction, v Variant) string {
	return strings.ToLower(d.String()) + "-" + v.String()
}

// ProjectGeometry lists the floor tile and walls of every cell in row-major
// order, walls in direction order after their cell's floor. The layout is
// only read, so the same layout always yields the same list.
func ProjectGeometry(l maze.Layout, cfg Config) []Placement {
	placements := make([]Placement, 0, l.Rows()*l.Cols()*3)
	half := cfg.CellSize / 2

	for row := 0; row < l.Rows(); row++ {
		for col := 0; col < l.Cols(); col++ {
			cell, err := l.Get(row, col)
			if err != nil {
				continue
			}

			pos := maze.CellPosition{Row: row, Col: col}
			x, z := float64(col)*cfg.CellSize, float64(row)*cfg.CellSize

			placements = append(placements, Placement{
				Kind:      KindFloor,
				Cell:      pos,
				Position:  Vec3{X: x, Y: cfg.FloorY, Z: z},
				Size:      Vec3{X: cfg.CellSize, Y: 0, Z: cfg.CellSize},
				TextureID: FloorTexture,
			})

			for _, d := range maze.Directions {
				variant, ok := Resolve(cell, d)
				if !ok {
					continue
				}

				delta := d.Delta()
				offset := half + cfg.WallBias
				size := Vec3{X: cfg.CellSize, Y: cfg.WallHeight, Z: cfg.WallThickness}
				if d == maze.East || d == maze.West {
					size = Vec3{X: cfg.WallThickness, Y: cfg.WallHeight, Z: cfg.CellSize}
				}

				placements = append(placements, Placement{
					Kind:      KindWall,
					Cell:      pos,
					Direction: d,
					Position: Vec3{
						X: x + float64(delta.Col)*offset,
						Y: cfg.Elevation,
						Z: z + float64(delta.Row)*offset,
					},
					Size:      size,
					Yaw:       yaws[d],
					Variant:   variant,
					TextureID: WallTexture(d, variant),
				})
			}
		}
	}

	return placements
}
