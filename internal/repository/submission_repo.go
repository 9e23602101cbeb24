package repository

import (
	"context"
	"math"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nlpdform/internal/model"
)

// SubmissionRepo handles storage operations for form submissions
type SubmissionRepo interface {
	Create(ctx context.Context, sub *model.Submission) error
	List(ctx context.Context, skip, limit int64) ([]*model.Submission, error)
	GetByID(ctx context.Context, id string) (*model.Submission, error)
	UpdateStatus(ctx context.Context, id, status string, teaserText *string) error
	Stats(ctx context.Context) (*model.SubmissionStats, error)
}

type submissionRepo struct {
	collection *mongo.Collection
}

// NewSubmissionRepo creates a MongoDB-backed submission repository
func NewSubmissionRepo(db *mongo.Database) SubmissionRepo {
	return &submissionRepo{
		collection: db.Collection("form_submissions"),
	}
}

func (r *submissionRepo) Create(ctx context.Context, sub *model.Submission) error {
	_, err := r.collection.InsertOne(ctx, sub)
	return err
}

func (r *submissionRepo) List(ctx context.Context, skip, limit int64) ([]*model.Submission, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	subs := make([]*model.Submission, 0)
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *submissionRepo) GetByID(ctx context.Context, id string) (*model.Submission, error) {
	var sub model.Submission
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&sub)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *submissionRepo) UpdateStatus(ctx context.Context, id, status string, teaserText *string) error {
	update := bson.M{"status": status}
	if teaserText != nil {
		update["teaser_text"] = *teaserText
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *submissionRepo) Stats(ctx context.Context) (*model.SubmissionStats, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	riskLevels, err := r.groupCounts(ctx, "$risk_level", nil)
	if err != nil {
		return nil, err
	}

	industries, err := r.groupCounts(ctx, "$industry", bson.M{"industry": bson.M{"$nin": bson.A{nil, ""}}})
	if err != nil {
		return nil, err
	}

	avg, err := r.averageScore(ctx)
	if err != nil {
		return nil, err
	}

	return &model.SubmissionStats{
		TotalSubmissions: total,
		RiskLevels:       riskLevels,
		Industries:       industries,
		AverageScore:     avg,
	}, nil
}

// groupCounts runs a $group count aggregation over the given field, with an
// optional $match stage in front. Empty group keys are dropped.
func (r *submissionRepo) groupCounts(ctx context.Context, field string, match bson.M) (map[string]int64, error) {
	pipeline := mongo.Pipeline{}
	if match != nil {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}
	pipeline = append(pipeline, bson.D{{Key: "$group", Value: bson.M{
		"_id":   field,
		"count": bson.M{"$sum": 1},
	}}})

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Key   string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	counts := make(map[string]int64)
	for _, row := range rows {
		if row.Key == "" {
			continue
		}
		counts[row.Key] = row.Count
	}
	return counts, nil
}

func (r *submissionRepo) averageScore(ctx context.Context) (float64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":       nil,
			"avg_score": bson.M{"$avg": "$score_normalized"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		AvgScore float64 `bson:"avg_score"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return math.Round(rows[0].AvgScore*100) / 100, nil
}
