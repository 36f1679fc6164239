package wineryRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"winetrail/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoWineryRepo implements WineryRepository using MongoDB.
type MongoWineryRepo struct {
	coll *mongo.Collection
}

// NewMongoWineryRepo creates the catalog repository over the wineries collection.
func NewMongoWineryRepo(db *mongo.Database, logger *zap.Logger) *MongoWineryRepo {
	repo := &MongoWineryRepo{coll: db.Collection("wineries")}
	if err := repo.ensureIndexes(); err != nil {
		logger.Warn("winery indexes", zap.Error(err))
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// GetByID retrieves a winery by its id.
func (r *MongoWineryRepo) GetByID(ctx context.Context, id string) (*models.Winery, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc wineryDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": idValue(id)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("winery %s: %w", id, ErrWineryNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch winery %s: %w", id, err)
	}
	w := doc.toModel()
	return &w, nil
}

// List returns one page of wineries ordered by name.
func (r *MongoWineryRepo) List(ctx context.Context, page, limit int) ([]models.Winery, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count wineries: %w", err)
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	wineries, err := r.find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	return wineries, total, nil
}

// GetMany retrieves the wineries matching ids.
func (r *MongoWineryRepo) GetMany(ctx context.Context, ids []string) ([]models.Winery, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	values := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		values = append(values, idValue(id))
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": values}})
}

// ListByOwner returns the wineries whose owner is ownerID.
func (r *MongoWineryRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Winery, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return r.find(ctx, bson.M{"owner": idValue(ownerID)})
}

func (r *MongoWineryRepo) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Winery, error) {
	cursor, err := r.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to query wineries: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []wineryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode wineries: %w", err)
	}
	out := make([]models.Winery, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}
