package userRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"winetrail/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// userProjection keeps credentials out of every read.
var userProjection = bson.M{"password": 0}

type userDocument struct {
	ID       bson.RawValue `bson:"_id"`
	Name     string        `bson:"name"`
	Email    string        `bson:"email"`
	Role     string        `bson:"role"`
	FCMToken string        `bson:"fcm_token"`
}

func (d userDocument) toModel() models.User {
	u := models.User{
		Name:     d.Name,
		Email:    d.Email,
		Role:     models.Role(d.Role),
		FCMToken: d.FCMToken,
	}
	switch d.ID.Type {
	case bsontype.ObjectID:
		u.ID = d.ID.ObjectID().Hex()
	case bsontype.String:
		u.ID = d.ID.StringValue()
	}
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	return u
}

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo creates a new instance of UserRepository using MongoDB.
func NewMongoUserRepo(db *mongo.Database, logger *zap.Logger) *MongoUserRepo {
	repo := &MongoUserRepo{coll: db.Collection("users")}
	if err := repo.ensureIndexes(); err != nil {
		logger.Warn("user indexes", zap.Error(err))
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var key interface{} = id
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		key = oid
	}

	var doc userDocument
	opts := options.FindOne().SetProjection(userProjection)
	err := r.coll.FindOne(ctx, bson.M{"_id": key}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("user %s: %w", id, ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user with id %s: %w", id, err)
	}
	u := doc.toModel()
	return &u, nil
}

func (r *MongoUserRepo) ListAdmins(ctx context.Context) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetProjection(userProjection)
	cursor, err := r.coll.Find(ctx, bson.M{"role": string(models.RoleAdmin)}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query admins: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode admins: %w", err)
	}
	admins := make([]models.User, 0, len(docs))
	for _, d := range docs {
		admins = append(admins, d.toModel())
	}
	return admins, nil
}
