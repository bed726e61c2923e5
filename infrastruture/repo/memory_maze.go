package repo

import (
	"context"
	"sync"

	"github.com/beka-birhanu/vinom-walker/maze"
	"github.com/beka-birhanu/vinom-walker/service/i"
	"github.com/google/uuid"
)

var _ i.MazeRepo = &MemoryMazeRepo{}

// MemoryMazeRepo keeps mazes in process memory.
type MemoryMazeRepo struct {
	mazes map[uuid.UUID]*maze.Maze
	order []uuid.UUID // IDs in save order
	sync.RWMutex
}

// NewMemoryMazeRepo creates an empty in-memory maze repository.
func NewMemoryMazeRepo() *MemoryMazeRepo {
	return &MemoryMazeRepo{
		mazes: make(map[uuid.UUID]*maze.Maze),
	}
}

// Save stores m under id.
func (r *MemoryMazeRepo) Save(_ context.Context, id uuid.UUID, m *maze.Maze) error {
	r.Lock()
	defer r.Unlock()

	if _, ok := r.mazes[id]; ok {
		return i.ErrMazeExists
	}
	r.mazes[id] = m
	r.order = append(r.order, id)
	return nil
}

// ByID retrieves the maze stored under id.
func (r *MemoryMazeRepo) ByID(_ context.Context, id uuid.UUID) (*maze.Maze, error) {
	r.RLock()
	defer r.RUnlock()

	m, ok := r.mazes[id]
	if !ok {
		return nil, i.ErrMazeNotFound
	}
	return m, nil
}

// List returns up to limit IDs, most recent first.
func (r *MemoryMazeRepo) List(_ context.Context, limit int) ([]uuid.UUID, error) {
	r.RLock()
	defer r.RUnlock()

	if limit <= 0 {
		return []uuid.UUID{}, nil
	}

	ids := make([]uuid.UUID, 0, min(limit, len(r.order)))
	for k := len(r.order) - 1; k >= 0 && len(ids) < limit; k-- {
		ids = append(ids, r.order[k])
	}
	return ids, nil
}
