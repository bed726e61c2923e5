package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-walker/maze"
	"github.com/beka-birhanu/vinom-walker/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultRedisPrefix = "vinom-walker"

	mazeKeyFmt   = "%s:maze:%s"
	mazeIndexFmt = "%s:mazes"
	mazeSeqFmt   = "%s:maze_seq"
)

var _ i.MazeRepo = &RedisMazeRepo{}

// RedisMazeRepo stores encoded mazes in Redis with an optional TTL and
// keeps a sorted index of maze IDs by save order.
type RedisMazeRepo struct {
	client  *redis.Client
	locker  *redsync.Redsync
	encoder i.MazeEncoder
	prefix  string
	ttl     time.Duration
}

// NewRedisMazeRepo initializes a RedisMazeRepo. A ttlSeconds of zero keeps mazes forever.
func NewRedisMazeRepo(client *redis.Client, encoder i.MazeEncoder, ttlSeconds int) (*RedisMazeRepo, error) {
	if client == nil || encoder == nil {
		return nil, errors.New("redis maze repo needs a client and an encoder")
	}

	repo := &RedisMazeRepo{
		client:  client,
		encoder: encoder,
		prefix:  defaultRedisPrefix,
		ttl:     time.Duration(ttlSeconds) * time.Second,
	}
	pool := goredis.NewPool(client)
	repo.locker = redsync.New(pool)
	return repo, nil
}

// Save encodes m and stores it under id, indexing it by save order.
func (r *RedisMazeRepo) Save(ctx context.Context, id uuid.UUID, m *maze.Maze) error {
	payload, err := r.encoder.MarshalMaze(m)
	if err != nil {
		return err
	}

	key := r.mazeKey(id)
	mutex := r.locker.NewMutex(key + ":save_lock")
	if err := mutex.LockContext(ctx); err != nil {
		return fmt.Errorf("obtaining maze save lock: %w", err)
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return err
	}
	if exists > 0 {
		return i.ErrMazeExists
	}

	seq, err := r.client.Incr(ctx, fmt.Sprintf(mazeSeqFmt, r.prefix)).Result()
	if err != nil {
		return err
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, payload, r.ttl)
		pipe.ZAdd(ctx, r.indexKey(), redis.Z{Score: float64(seq), Member: id.String()})
		return nil
	})
	return err
}

// ByID loads and decodes the maze stored under id.
func (r *RedisMazeRepo) ByID(ctx context.Context, id uuid.UUID) (*maze.Maze, error) {
	payload, err := r.client.Get(ctx, r.mazeKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, i.ErrMazeNotFound
		}
		return nil, err
	}
	return r.encoder.UnmarshalMaze(payload)
}

// List returns up to limit indexed IDs, most recent first. IDs whose maze
// has expired may still be listed.
func (r *RedisMazeRepo) List(ctx context.Context, limit int) ([]uuid.UUID, error) {
	if limit <= 0 {
		return []uuid.UUID{}, nil
	}

	members, err := r.client.ZRevRange(ctx, r.indexKey(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(members))
	for _, member := range members {
		if id, err := uuid.Parse(member); err == nil {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *RedisMazeRepo) mazeKey(id uuid.UUID) string {
	return fmt.Sprintf(mazeKeyFmt, r.prefix, id)
}

func (r *RedisMazeRepo) indexKey() string {
	return fmt.Sprintf(mazeIndexFmt, r.prefix)
}
