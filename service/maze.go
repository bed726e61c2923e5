package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-walker/maze"
	"github.com/beka-birhanu/vinom-walker/minimap"
	"github.com/beka-birhanu/vinom-walker/scene"
	"github.com/beka-birhanu/vinom-walker/service/i"
	"github.com/google/uuid"
)

const (
	defaultMaxDimension = 100
	defaultListLimit    = 20
)

var _ i.MazeService = &MazeService{}

// Config configures a MazeService.
type Config struct {
	Repo             i.MazeRepo
	Logger           i.Logger
	Scene            scene.Config
	DefaultAlgorithm maze.Algorithm
	MaxDimension     int // Upper bound on rows and cols, defaults to 100
}

// MazeService generates mazes, keeps them in a repo and projects them for
// the host. Each stored maze gets its own minimap so the last player pose is
// remembered per maze.
type MazeService struct {
	repo         i.MazeRepo
	logger       i.Logger
	scene        scene.Config
	algorithm    maze.Algorithm
	maxDimension int
	minimaps     map[uuid.UUID]*minimap.Minimap
	sync.RWMutex
}

// New creates a MazeService from c.
func New(c *Config) (*MazeService, error) {
	if c == nil || c.Repo == nil || c.Logger == nil {
		return nil, errors.New("maze service needs a repo and a logger")
	}

	cfg := c.Scene
	if cfg.CellSize <= 0 {
		cfg = scene.DefaultConfig()
	}

	algorithm, err := maze.ParseAlgorithm(string(c.DefaultAlgorithm))
	if err != nil {
		return nil, err
	}

	maxDimension := c.MaxDimension
	if maxDimension <= 0 {
		maxDimension = defaultMaxDimension
	}

	return &MazeService{
		repo:         c.Repo,
		logger:       c.Logger,
		scene:        cfg,
		algorithm:    algorithm,
		maxDimension: maxDimension,
		minimaps:     make(map[uuid.UUID]*minimap.Minimap),
	}, nil
}

// Generate builds a new maze from req and stores it under a fresh ID.
func (s *MazeService) Generate(ctx context.Context, req i.GenerateRequest) (uuid.UUID, *maze.Maze, error) {
	if req.Rows > s.maxDimension || req.Cols > s.maxDimension {
		return uuid.Nil, nil, fmt.Errorf("%w: rows and cols must be at most %d", maze.ErrInvalidDimensions, s.maxDimension)
	}

	algorithm := s.algorithm
	if req.Algorithm != "" {
		a, err := maze.ParseAlgorithm(req.Algorithm)
		if err != nil {
			return uuid.Nil, nil, err
		}
		algorithm = a
	}

	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}

	opts := []maze.Option{maze.WithAlgorithm(algorithm)}
	if req.OpenEnds {
		opts = append(opts,
			maze.WithEntrance(maze.CellPosition{Row: 0, Col: 0}, maze.North),
			maze.WithExit(maze.CellPosition{Row: req.Rows - 1, Col: req.Cols - 1}, maze.South),
		)
	}

	m, err := maze.Generate(req.Rows, req.Cols, seed, opts...)
	if err != nil {
		return uuid.Nil, nil, err
	}

	id := uuid.New()
	if err := s.repo.Save(ctx, id, m); err != nil {
		s.logger.Error(fmt.Sprintf("saving maze %s: %s", id, err))
		return uuid.Nil, nil, err
	}

	s.logger.Info(fmt.Sprintf("generated %dx%d %s maze %s with seed %d", m.Rows(), m.Cols(), algorithm, id, seed))
	return id, m, nil
}

// Maze returns the stored maze with the given ID. The minimap of a maze the
// repo no longer holds, such as an expired one, is dropped.
func (s *MazeService) Maze(ctx context.Context, id uuid.UUID) (*maze.Maze, error) {
	m, err := s.repo.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, i.ErrMazeNotFound) {
			s.forgetMinimap(id)
		} else {
			s.logger.Error(fmt.Sprintf("loading maze %s: %s", id, err))
		}
		return nil, err
	}
	return m, nil
}

// List returns up to limit stored maze IDs, newest first.
func (s *MazeService) List(ctx context.Context, limit int) ([]uuid.UUID, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.repo.List(ctx, limit)
}

// CellAt returns the walls of one cell of a stored maze.
func (s *MazeService) CellAt(ctx context.Context, id uuid.UUID, row, col int) (maze.Cell, error) {
	m, err := s.Maze(ctx, id)
	if err != nil {
		return maze.Cell{}, err
	}
	return m.CellAt(row, col)
}

// Geometry projects a stored maze into scene placements.
func (s *MazeService) Geometry(ctx context.Context, id uuid.UUID) ([]scene.Placement, error) {
	m, err := s.Maze(ctx, id)
	if err != nil {
		return nil, err
	}
	return scene.ProjectGeometry(m, s.scene), nil
}

// Solution returns the path from the entrance to the exit of a stored maze.
func (s *MazeService) Solution(ctx context.Context, id uuid.UUID) ([]maze.CellPosition, error) {
	m, err := s.Maze(ctx, id)
	if err != nil {
		return nil, err
	}
	return m.Solution()
}

// Minimap redraws the minimap of a stored maze. A nil pose reuses the last
// pose sent for that maze. Non-finite poses and viewports are rejected
// without touching the remembered pose.
func (s *MazeService) Minimap(ctx context.Context, id uuid.UUID, pose *minimap.PlayerPose, viewport minimap.Size) (minimap.Drawing, error) {
	if pose != nil {
		if err := pose.Validate(); err != nil {
			return minimap.Drawing{}, err
		}
	}
	if !viewport.Finite() {
		return minimap.Drawing{}, fmt.Errorf("%w: %vx%v", minimap.ErrInvalidViewport, viewport.W, viewport.H)
	}

	m, err := s.Maze(ctx, id)
	if err != nil {
		return minimap.Drawing{}, err
	}

	mm, err := s.minimapFor(id)
	if err != nil {
		return minimap.Drawing{}, err
	}
	return mm.Redraw(m, pose, viewport), nil
}

func (s *MazeService) minimapFor(id uuid.UUID) (*minimap.Minimap, error) {
	s.RLock()
	mm, ok := s.minimaps[id]
	s.RUnlock()
	if ok {
		return mm, nil
	}

	s.Lock()
	defer s.Unlock()
	if mm, ok := s.minimaps[id]; ok {
		return mm, nil
	}

	mm, err := minimap.New(s.scene.CellSize)
	if err != nil {
		return nil, err
	}
	s.minimaps[id] = mm
	return mm, nil
}

func (s *MazeService) forgetMinimap(id uuid.UUID) {
	s.Lock()
	defer s.Unlock()
	delete(s.minimaps, id)
}
