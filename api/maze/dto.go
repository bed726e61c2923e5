// Package mazeapi provides the request and response shapes of the maze routes.
package mazeapi

import (
	"fmt"
	"image/color"

	"github.com/beka-birhanu/vinom-walker/maze"
	"github.com/beka-birhanu/vinom-walker/minimap"
	"github.com/beka-birhanu/vinom-walker/scene"
	"github.com/google/uuid"
)

// GenerateRequest represents a request to generate a new maze.
type GenerateRequest struct {
	Rows      int    `json:"rows" binding:"required"`
	Cols      int    `json:"cols" binding:"required"`
	Seed      *int64 `json:"seed"`
	Algorithm string `json:"algorithm"`
	OpenEnds  bool   `json:"open_ends"`
}

// MinimapRequest carries an optional player pose and the viewport to draw into.
type MinimapRequest struct {
	Pose     *minimap.PlayerPose `json:"pose"`
	Viewport minimap.Size        `json:"viewport" binding:"required"`
}

// MinimapQuery is the query string of the PNG minimap route. The pose is
// used only when both x and z are given.
type MinimapQuery struct {
	X       *float64 `form:"x"`
	Y       float64  `form:"y"`
	Z       *float64 `form:"z"`
	Heading float64  `form:"heading"`
	W       float64  `form:"w"`
	H       float64  `form:"h"`
}

// Pose returns the pose described by the query, if any.
func (q MinimapQuery) Pose() *minimap.PlayerPose {
	if q.X == nil || q.Z == nil {
		return nil
	}
	return &minimap.PlayerPose{X: *q.X, Y: q.Y, Z: *q.Z, Heading: q.Heading}
}

// PositionResponse is a grid cell coordinate.
type PositionResponse struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// OpeningResponse is an open boundary wall.
type OpeningResponse struct {
	Row       int    `json:"row"`
	Col       int    `json:"col"`
	Direction string `json:"direction"`
}

// MazeResponse summarizes a stored maze.
type MazeResponse struct {
	ID        uuid.UUID        `json:"id"`
	Rows      int              `json:"rows"`
	Cols      int              `json:"cols"`
	Seed      int64            `json:"seed"`
	Algorithm string           `json:"algorithm"`
	Passages  int              `json:"passages"`
	Entrance  *OpeningResponse `json:"entrance,omitempty"`
	Exit      *OpeningResponse `json:"exit,omitempty"`
	Layout    string           `json:"layout"`
}

// ListResponse lists stored maze IDs, newest first.
type ListResponse struct {
	IDs []uuid.UUID `json:"ids"`
}

// CellResponse reports the walls of one cell.
type CellResponse struct {
	Row       int  `json:"row"`
	Col       int  `json:"col"`
	NorthWall bool `json:"north_wall"`
	SouthWall bool `json:"south_wall"`
	EastWall  bool `json:"east_wall"`
	WestWall  bool `json:"west_wall"`
}

// PlacementResponse is one solid of the scene geometry.
type PlacementResponse struct {
	Kind      string     `json:"kind"`
	Row       int        `json:"row"`
	Col       int        `json:"col"`
	Direction string     `json:"direction,omitempty"`
	Position  scene.Vec3 `json:"position"`
	Size      scene.Vec3 `json:"size"`
	Yaw       float64    `json:"yaw"`
	Variant   string     `json:"variant,omitempty"`
	TextureID string     `json:"texture_id"`
}

// GeometryResponse holds every placement of a maze in row-major order.
type GeometryResponse struct {
	Placements []PlacementResponse `json:"placements"`
}

// SolutionResponse is the entrance to exit path of a maze.
type SolutionResponse struct {
	Length int                `json:"length"`
	Path   []PositionResponse `json:"path"`
}

// SegmentResponse is a colored line of the minimap.
type SegmentResponse struct {
	From  minimap.Point `json:"from"`
	To    minimap.Point `json:"to"`
	Color string        `json:"color"`
}

// TriangleResponse is the filled player marker.
type TriangleResponse struct {
	Points [3]minimap.Point `json:"points"`
	Color  string           `json:"color"`
}

// DrawingResponse is one complete minimap redraw.
type DrawingResponse struct {
	Viewport  minimap.Size      `json:"viewport"`
	GridLines []SegmentResponse `json:"grid_lines"`
	Walls     []SegmentResponse `json:"walls"`
	Marker    *TriangleResponse `json:"marker,omitempty"`
	Player    *PositionResponse `json:"player,omitempty"`
}

func newMazeResponse(id uuid.UUID, m *maze.Maze) *MazeResponse {
	resp := &MazeResponse{
		ID:        id,
		Rows:      m.Rows(),
		Cols:      m.Cols(),
		Seed:      m.Seed(),
		Algorithm: string(m.Algorithm()),
		Passages:  m.Passages(),
		Layout:    m.String(),
	}
	if o, ok := m.Entrance(); ok {
		resp.Entrance = newOpeningResponse(o)
	}
	if o, ok := m.Exit(); ok {
		resp.Exit = newOpeningResponse(o)
	}
	return resp
}

func newOpeningResponse(o maze.Opening) *OpeningResponse {
	return &OpeningResponse{Row: o.Pos.Row, Col: o.Pos.Col, Direction: o.Direction.String()}
}

func newCellResponse(row, col int, c maze.Cell) *CellResponse {
	return &CellResponse{
		Row:       row,
		Col:       col,
		NorthWall: c.HasNorthWall(),
		SouthWall: c.HasSouthWall(),
		EastWall:  c.HasEastWall(),
		WestWall:  c.HasWestWall(),
	}
}

func newGeometryResponse(placements []scene.Placement) *GeometryResponse {
	resp := &GeometryResponse{Placements: make([]PlacementResponse, 0, len(placements))}
	for _, p := range placements {
		pr := PlacementResponse{
			Kind:      string(p.Kind),
			Row:       p.Cell.Row,
			Col:       p.Cell.Col,
			Position:  p.Position,
			Size:      p.Size,
			Yaw:       p.Yaw,
			TextureID: p.TextureID,
		}
		if p.Kind == scene.KindWall {
			pr.Direction = p.Direction.String()
			pr.Variant = p.Variant.String()
		}
		resp.Placements = append(resp.Placements, pr)
	}
	return resp
}

func newSolutionResponse(path []maze.CellPosition) *SolutionResponse {
	resp := &SolutionResponse{Length: len(path), Path: make([]PositionResponse, 0, len(path))}
	for _, p := range path {
		resp.Path = append(resp.Path, PositionResponse{Row: p.Row, Col: p.Col})
	}
	return resp
}

func newDrawingResponse(d minimap.Drawing) *DrawingResponse {
	resp := &DrawingResponse{
		Viewport:  d.Viewport,
		GridLines: newSegmentResponses(d.GridLines),
		Walls:     newSegmentResponses(d.Walls),
	}
	if d.Marker != nil {
		resp.Marker = &TriangleResponse{Points: d.Marker.Points, Color: hexColor(d.Marker.Color)}
	}
	if d.Player != nil {
		resp.Player = &PositionResponse{Row: d.Player.Row, Col: d.Player.Col}
	}
	return resp
}

func newSegmentResponses(segments []minimap.Segment) []SegmentResponse {
	resp := make([]SegmentResponse, 0, len(segments))
	for _, s := range segments {
		resp = append(resp, SegmentResponse{From: s.From, To: s.To, Color: hexColor(s.Color)})
	}
	return resp
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
