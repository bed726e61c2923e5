package service

import (
	"context"
	"io"
	"math"
	"testing"

	"github.com/beka-birhanu/vinom-walker/config"
	"github.com/beka-birhanu/vinom-walker/infrastruture/repo"
	logger "github.com/beka-birhanu/vinom-walker/infrastruture/log"
	"github.com/beka-birhanu/vinom-walker/maze"
	"github.com/beka-birhanu/vinom-walker/minimap"
	"github.com/beka-birhanu/vinom-walker/scene"
	"github.com/beka-birhanu/vinom-walker/service/i"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *MazeService {
	t.Helper()
	l, err := logger.New("TEST", config.ColorBlue, io.Discard)
	require.NoError(t, err)

	svc, err := New(&Config{
		Repo:         repo.NewMemoryMazeRepo(),
		Logger:       l,
		MaxDimension: 30,
	})
	require.NoError(t, err)
	return svc
}

func seed(v int64) *int64 { return &v }

func TestNew(t *testing.T) {
	t.Run("Missing repo", func(t *testing.T) {
		_, err := New(&Config{})
		assert.Error(t, err)
	})

	t.Run("Unknown default algorithm", func(t *testing.T) {
		l, _ := logger.New("TEST", config.ColorBlue, io.Discard)
		_, err := New(&Config{Repo: repo.NewMemoryMazeRepo(), Logger: l, DefaultAlgorithm: "eller"})
		assert.ErrorIs(t, err, maze.ErrUnknownAlgorithm)
	})
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	t.Run("Stores the generated maze", func(t *testing.T) {
		id, m, err := svc.Generate(ctx, i.GenerateRequest{Rows: 6, Cols: 7, Seed: seed(42)})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)
		assert.Equal(t, 6*7-1, m.Passages())
		assert.Equal(t, maze.Backtracker, m.Algorithm())

		stored, err := svc.Maze(ctx, id)
		require.NoError(t, err)
		assert.True(t, m.Grid().Equal(stored.Grid()))
	})

	t.Run("Same seed same layout", func(t *testing.T) {
		_, a, err := svc.Generate(ctx, i.GenerateRequest{Rows: 5, Cols: 5, Seed: seed(9), Algorithm: "wilson"})
		require.NoError(t, err)
		_, b, err := svc.Generate(ctx, i.GenerateRequest{Rows: 5, Cols: 5, Seed: seed(9), Algorithm: "wilson"})
		require.NoError(t, err)
		assert.True(t, a.Grid().Equal(b.Grid()))
	})

	t.Run("Open ends", func(t *testing.T) {
		_, m, err := svc.Generate(ctx, i.GenerateRequest{Rows: 4, Cols: 3, Seed: seed(1), OpenEnds: true})
		require.NoError(t, err)

		first, err := m.CellAt(0, 0)
		require.NoError(t, err)
		assert.False(t, first.HasNorthWall())
		last, err := m.CellAt(3, 2)
		require.NoError(t, err)
		assert.False(t, last.HasSouthWall())
	})

	t.Run("Invalid dimensions", func(t *testing.T) {
		_, _, err := svc.Generate(ctx, i.GenerateRequest{Rows: 0, Cols: 3})
		assert.ErrorIs(t, err, maze.ErrInvalidDimensions)

		_, _, err = svc.Generate(ctx, i.GenerateRequest{Rows: 31, Cols: 3})
		assert.ErrorIs(t, err, maze.ErrInvalidDimensions)
	})

	t.Run("Unknown algorithm", func(t *testing.T) {
		_, _, err := svc.Generate(ctx, i.GenerateRequest{Rows: 3, Cols: 3, Algorithm: "prim"})
		assert.ErrorIs(t, err, maze.ErrUnknownAlgorithm)
	})
}

func TestLookups(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	id, m, err := svc.Generate(ctx, i.GenerateRequest{Rows: 5, Cols: 4, Seed: seed(3)})
	require.NoError(t, err)

	t.Run("Unknown maze", func(t *testing.T) {
		_, err := svc.Geometry(ctx, uuid.New())
		assert.ErrorIs(t, err, i.ErrMazeNotFound)
		_, err = svc.Minimap(ctx, uuid.New(), nil, minimap.Size{W: 10, H: 10})
		assert.ErrorIs(t, err, i.ErrMazeNotFound)
	})

	t.Run("Cell", func(t *testing.T) {
		cell, err := svc.CellAt(ctx, id, 2, 1)
		require.NoError(t, err)
		want, _ := m.CellAt(2, 1)
		assert.Equal(t, want, cell)

		_, err = svc.CellAt(ctx, id, 5, 0)
		assert.ErrorIs(t, err, maze.ErrOutOfBounds)
	})

	t.Run("Geometry", func(t *testing.T) {
		placements, err := svc.Geometry(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, scene.ProjectGeometry(m, scene.DefaultConfig()), placements)
	})

	t.Run("Solution", func(t *testing.T) {
		path, err := svc.Solution(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, maze.CellPosition{}, path[0])
		assert.Equal(t, maze.CellPosition{Row: 4, Col: 3}, path[len(path)-1])
	})

	t.Run("Minimap remembers pose per maze", func(t *testing.T) {
		viewport := minimap.Size{W: 40, H: 50}
		pose := &minimap.PlayerPose{X: 1, Z: 2, Heading: 0.5}

		first, err := svc.Minimap(ctx, id, pose, viewport)
		require.NoError(t, err)
		require.NotNil(t, first.Marker)

		again, err := svc.Minimap(ctx, id, nil, viewport)
		require.NoError(t, err)
		assert.Equal(t, first, again)

		otherID, _, err := svc.Generate(ctx, i.GenerateRequest{Rows: 5, Cols: 4, Seed: seed(3)})
		require.NoError(t, err)
		other, err := svc.Minimap(ctx, otherID, nil, viewport)
		require.NoError(t, err)
		assert.Nil(t, other.Marker)
	})

	t.Run("List", func(t *testing.T) {
		ids, err := svc.List(ctx, 0)
		require.NoError(t, err)
		assert.Contains(t, ids, id)
	})
}

// expiringRepo hides mazes marked expired, like a store whose entries time out.
type expiringRepo struct {
	*repo.MemoryMazeRepo
	expired map[uuid.UUID]bool
}

func (r *expiringRepo) ByID(ctx context.Context, id uuid.UUID) (*maze.Maze, error) {
	if r.expired[id] {
		return nil, i.ErrMazeNotFound
	}
	return r.MemoryMazeRepo.ByID(ctx, id)
}

func (s *MazeService) trackedMinimaps() int {
	s.RLock()
	defer s.RUnlock()
	return len(s.minimaps)
}

func TestMinimapRejectsNonFiniteInput(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	id, _, err := svc.Generate(ctx, i.GenerateRequest{Rows: 4, Cols: 4, Seed: seed(5)})
	require.NoError(t, err)
	viewport := minimap.Size{W: 40, H: 40}

	good := &minimap.PlayerPose{X: 1, Z: 1, Heading: 0.25}
	want, err := svc.Minimap(ctx, id, good, viewport)
	require.NoError(t, err)

	t.Run("Pose", func(t *testing.T) {
		for _, pose := range []*minimap.PlayerPose{
			{X: math.NaN(), Z: 1},
			{X: 1, Z: math.Inf(1)},
			{X: 1, Z: 1, Heading: math.NaN()},
		} {
			_, err := svc.Minimap(ctx, id, pose, viewport)
			assert.ErrorIs(t, err, minimap.ErrInvalidPose)
		}

		cached, err := svc.Minimap(ctx, id, nil, viewport)
		require.NoError(t, err)
		assert.Equal(t, want, cached)
	})

	t.Run("Viewport", func(t *testing.T) {
		_, err := svc.Minimap(ctx, id, nil, minimap.Size{W: math.NaN(), H: 10})
		assert.ErrorIs(t, err, minimap.ErrInvalidViewport)
	})
}

func TestMinimapDroppedWhenMazeExpires(t *testing.T) {
	ctx := context.Background()
	l, err := logger.New("TEST", config.ColorBlue, io.Discard)
	require.NoError(t, err)
	store := &expiringRepo{MemoryMazeRepo: repo.NewMemoryMazeRepo(), expired: make(map[uuid.UUID]bool)}
	svc, err := New(&Config{Repo: store, Logger: l})
	require.NoError(t, err)

	id, _, err := svc.Generate(ctx, i.GenerateRequest{Rows: 3, Cols: 3, Seed: seed(2)})
	require.NoError(t, err)
	_, err = svc.Minimap(ctx, id, &minimap.PlayerPose{X: 1, Z: 1}, minimap.Size{W: 30, H: 30})
	require.NoError(t, err)
	assert.Equal(t, 1, svc.trackedMinimaps())

	store.expired[id] = true
	_, err = svc.Minimap(ctx, id, nil, minimap.Size{W: 30, H: 30})
	assert.ErrorIs(t, err, i.ErrMazeNotFound)
	assert.Equal(t, 0, svc.trackedMinimaps())
}
