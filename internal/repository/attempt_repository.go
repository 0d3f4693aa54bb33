package repository

import (
	"context"
	"time"

	"github.com/smithrashell/CodeMaster-sub007/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AttemptRepository struct {
	Col *mongo.Collection
}

func NewAttemptRepository(db *mongo.Database) *AttemptRepository {
	return &AttemptRepository{Col: db.Collection("attempts")}
}

func (r *AttemptRepository) Insert(ctx context.Context, attempt *models.AttemptRecord) error {
	_, err := r.Col.InsertOne(ctx, attempt)
	return err
}

// FindRecent returns the newest attempts first, optionally success-only and
// bounded to a trailing window of days.
func (r *AttemptRepository) FindRecent(ctx context.Context, limit int, successOnly bool, withinDays int) ([]models.AttemptRecord, error) {
	filter := bson.M{}
	if successOnly {
		filter["success"] = true
	}
	if withinDays > 0 {
		cutoff := time.Now().AddDate(0, 0, -withinDays)
		filter["attempt_date"] = bson.M{"$gte": cutoff}
	}

	opts := options.Find().SetSort(bson.D{{Key: "attempt_date", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := r.Col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var attempts []models.AttemptRecord
	for cur.Next(ctx) {
		var a models.AttemptRecord
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, cur.Err()
}
