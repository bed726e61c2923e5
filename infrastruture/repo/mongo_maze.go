package repo

import (
	"context"
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-walker/maze"
	"github.com/beka-birhanu/vinom-walker/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ i.MazeRepo = &MongoMazeRepo{}

// mazeDocument is the stored form of a maze.
type mazeDocument struct {
	ID        string    `bson:"_id"`
	Rows      int       `bson:"rows"`
	Cols      int       `bson:"cols"`
	Seed      int64     `bson:"seed"`
	Algorithm string    `bson:"algorithm"`
	Layout    []byte    `bson:"layout"`
	CreatedAt time.Time `bson:"createdAt"`
}

// MongoMazeRepo handles the persistence of mazes in MongoDB.
type MongoMazeRepo struct {
	collection *mongo.Collection
	encoder    i.MazeEncoder
}

// NewMongoMazeRepo creates a new MongoMazeRepo with the given MongoDB client, database name, and collection name.
func NewMongoMazeRepo(client *mongo.Client, encoder i.MazeEncoder, dbName, collectionName string) *MongoMazeRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &MongoMazeRepo{
		collection: collection,
		encoder:    encoder,
	}
}

// Save inserts a maze. Existing mazes are never replaced.
func (r *MongoMazeRepo) Save(ctx context.Context, id uuid.UUID, m *maze.Maze) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	layout, err := r.encoder.MarshalMaze(m)
	if err != nil {
		return err
	}

	doc := mazeDocument{
		ID:        id.String(),
		Rows:      m.Rows(),
		Cols:      m.Cols(),
		Seed:      m.Seed(),
		Algorithm: string(m.Algorithm()),
		Layout:    layout,
		CreatedAt: time.Now(),
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return i.ErrMazeExists
		}
		return errors.New("unexpected error: " + err.Error())
	}
	return nil
}

// ByID retrieves a maze by its ID.
// Returns ErrMazeNotFound if the maze is not found.
func (r *MongoMazeRepo) ByID(ctx context.Context, id uuid.UUID) (*maze.Maze, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	filter := bson.M{"_id": id.String()}
	var doc mazeDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, i.ErrMazeNotFound
		}
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return r.encoder.UnmarshalMaze(doc.Layout)
}

// List returns up to limit maze IDs ordered by creation time, newest first.
func (r *MongoMazeRepo) List(ctx context.Context, limit int) ([]uuid.UUID, error) {
	if limit <= 0 {
		return []uuid.UUID{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"_id": 1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}
	defer cursor.Close(ctx)

	ids := make([]uuid.UUID, 0, limit)
	for cursor.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		if id, err := uuid.Parse(doc.ID); err == nil {
			ids = append(ids, id)
		}
	}
	return ids, cursor.Err()
}
