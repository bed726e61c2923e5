package i

import (
	"context"

	"github.com/beka-birhanu/vinom-walker/maze"
	"github.com/beka-birhanu/vinom-walker/minimap"
	"github.com/beka-birhanu/vinom-walker/scene"
	"github.com/google/uuid"
)

// GenerateRequest describes a maze to generate.
type GenerateRequest struct {
	Rows      int
	Cols      int
	Seed      *int64 // nil picks a fresh seed
	Algorithm string // empty uses the service default
	OpenEnds  bool   // open the north wall of the first cell and the south wall of the last
}

// MazeService generates mazes and projects them for the host.
type MazeService interface {
	Generate(ctx context.Context, req GenerateRequest) (uuid.UUID, *maze.Maze, error)
	Maze(ctx context.Context, id uuid.UUID) (*maze.Maze, error)
	List(ctx context.Context, limit int) ([]uuid.UUID, error)
	CellAt(ctx context.Context, id uuid.UUID, row, col int) (maze.Cell, error)
	Geometry(ctx context.Context, id uuid.UUID) ([]scene.Placement, error)
	Solution(ctx context.Context, id uuid.UUID) ([]maze.CellPosition, error)
	Minimap(ctx context.Context, id uuid.UUID, pose *minimap.PlayerPose, viewport minimap.Size) (minimap.Drawing, error)
}
