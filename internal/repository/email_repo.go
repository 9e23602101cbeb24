package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"nlpdform/internal/model"
)

// EmailOutputRepo handles storage operations for generated email records
type EmailOutputRepo interface {
	Create(ctx context.Context, output *model.EmailOutput) error
	GetBySubmissionID(ctx context.Context, submissionID string) (*model.EmailOutput, error)
}

type emailOutputRepo struct {
	collection *mongo.Collection
}

// NewEmailOutputRepo creates a MongoDB-backed email output repository
func NewEmailOutputRepo(db *mongo.Database) EmailOutputRepo {
	return &emailOutputRepo{
		collection: db.Collection("email_outputs"),
	}
}

func (r *emailOutputRepo) Create(ctx context.Context, output *model.EmailOutput) error {
	_, err := r.collection.InsertOne(ctx, output)
	return err
}

func (r *emailOutputRepo) GetBySubmissionID(ctx context.Context, submissionID string) (*model.EmailOutput, error) {
	var output model.EmailOutput
	err := r.collection.FindOne(ctx, bson.M{"submission_id": submissionID}).Decode(&output)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &output, nil
}
