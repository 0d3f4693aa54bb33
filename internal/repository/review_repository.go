package repository

import (
	"context"

	"github.com/smithrashell/CodeMaster-sub007/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ReviewRepository struct {
	Col *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{Col: db.Collection("review_items")}
}

func (r *ReviewRepository) FindAll(ctx context.Context) ([]models.ReviewItem, error) {
	cur, err := r.Col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var items []models.ReviewItem
	for cur.Next(ctx) {
		var item models.ReviewItem
		if err := cur.Decode(&item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, cur.Err()
}

// FindByProblemID returns the stored item, or a fresh zero-box item when the
// problem has never been reviewed.
func (r *ReviewRepository) FindByProblemID(ctx context.Context, problemID string) (*models.ReviewItem, error) {
	var item models.ReviewItem
	err := r.Col.FindOne(ctx, bson.M{"problem_id": problemID}).Decode(&item)
	if err == mongo.ErrNoDocuments {
		return &models.ReviewItem{ProblemID: problemID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ReviewRepository) Upsert(ctx context.Context, item *models.ReviewItem) error {
	filter := bson.M{"problem_id": item.ProblemID}
	_, err := r.Col.ReplaceOne(ctx, filter, item, options.Replace().SetUpsert(true))
	return err
}
