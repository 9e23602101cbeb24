package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nlpdform/internal/model"
)

// StatusCheckRepo handles storage operations for legacy status checks
type StatusCheckRepo interface {
	Create(ctx context.Context, check *model.StatusCheck) error
	List(ctx context.Context, limit int64) ([]*model.StatusCheck, error)
}

type statusCheckRepo struct {
	collection *mongo.Collection
}

// NewStatusCheckRepo creates a MongoDB-backed status check repository
func NewStatusCheckRepo(db *mongo.Database) StatusCheckRepo {
	return &statusCheckRepo{
		collection: db.Collection("status_checks"),
	}
}

func (r *statusCheckRepo) Create(ctx context.Context, check *model.StatusCheck) error {
	_, err := r.collection.InsertOne(ctx, check)
	return err
}

func (r *statusCheckRepo) List(ctx context.Context, limit int64) ([]*model.StatusCheck, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	checks := make([]*model.StatusCheck, 0)
	if err := cursor.All(ctx, &checks); err != nil {
		return nil, err
	}
	return checks, nil
}
