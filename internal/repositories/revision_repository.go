package repositories

import (
	"context"
	"time"

	"github.com/celebot/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RevisionRepository appends historical versions of entities on every
// write. History is an audit artifact: it is written after the SQL
// transaction commits and is never part of request atomicity.
type RevisionRepository interface {
	Record(ctx context.Context, kind string, entityID uint, action string, snapshot interface{}) error
	ListByEntity(ctx context.Context, kind string, entityID uint) ([]models.Revision, error)
}

// MongoRevisionRepository implements RevisionRepository for MongoDB
type MongoRevisionRepository struct {
	collection *mongo.Collection
}

// NewMongoRevisionRepository creates a new MongoRevisionRepository
func NewMongoRevisionRepository(db *mongo.Database) *MongoRevisionRepository {
	return &MongoRevisionRepository{collection: db.Collection("revisions")}
}

// Record appends the next revision for (kind, entityID). Revision numbers
// start at 1 and only grow; existing documents are never rewritten.
func (r *MongoRevisionRepository) Record(ctx context.Context, kind string, entityID uint, action string, snapshot interface{}) error {
	filter := bson.M{"kind": kind, "entity_id": entityID}
	opts := options.FindOne().SetSort(bson.D{{Key: "revision", Value: -1}})

	next := 1
	var last models.Revision
	err := r.collection.FindOne(ctx, filter, opts).Decode(&last)
	switch err {
	case nil:
		next = last.Revision + 1
	case mongo.ErrNoDocuments:
	default:
		return err
	}

	_, err = r.collection.InsertOne(ctx, models.Revision{
		Kind:       kind,
		EntityID:   entityID,
		Revision:   next,
		Action:     action,
		Snapshot:   snapshot,
		RecordedAt: time.Now().UTC(),
	})
	return err
}

// ListByEntity returns an entity's history, oldest revision first.
func (r *MongoRevisionRepository) ListByEntity(ctx context.Context, kind string, entityID uint) ([]models.Revision, error) {
	filter := bson.M{"kind": kind, "entity_id": entityID}
	opts := options.Find().SetSort(bson.D{{Key: "revision", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var revisions []models.Revision
	if err := cursor.All(ctx, &revisions); err != nil {
		return nil, err
	}
	return revisions, nil
}
