package i

import (
	"context"
	"errors"

	"github.com/beka-birhanu/vinom-walker/maze"
	"github.com/google/uuid"
)

var (
	ErrMazeNotFound = errors.New("maze not found")
	ErrMazeExists   = errors.New("maze already exists")
)

// MazeRepo defines the interface for maze persistence operations.
type MazeRepo interface {
	// Save stores a generated maze under id.
	// Returns ErrMazeExists if id is already taken; stored mazes are never overwritten.
	Save(ctx context.Context, id uuid.UUID, m *maze.Maze) error

	// ByID retrieves a maze by its ID.
	// Returns ErrMazeNotFound if no maze is stored under id.
	ByID(ctx context.Context, id uuid.UUID) (*maze.Maze, error)

	// List returns up to limit maze IDs, most recently saved first.
	List(ctx context.Context, limit int) ([]uuid.UUID, error)
}

// MazeEncoder converts mazes to and from a storable byte form.
type MazeEncoder interface {
	MarshalMaze(*maze.Maze) ([]byte, error)
	UnmarshalMaze([]byte) (*maze.Maze, error)
}
