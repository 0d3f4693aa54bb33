package repository

import (
	"context"

	"github.com/smithrashell/CodeMaster-sub007/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SessionAnalyticsRepository struct {
	Col *mongo.Collection
}

func NewSessionAnalyticsRepository(db *mongo.Database) *SessionAnalyticsRepository {
	return &SessionAnalyticsRepository{Col: db.Collection("sessions")}
}

func (r *SessionAnalyticsRepository) Insert(ctx context.Context, session *models.PracticeSession) error {
	_, err := r.Col.InsertOne(ctx, session)
	return err
}

// FindRecent returns the newest completed-session summaries first.
func (r *SessionAnalyticsRepository) FindRecent(ctx context.Context, userID string, n int, standardOnly bool) ([]models.PracticeSession, error) {
	filter := bson.M{"user_id": userID}
	if standardOnly {
		filter["session_type"] = models.SessionTypeStandard
	}

	opts := options.Find().SetSort(bson.D{{Key: "completed_at", Value: -1}})
	if n > 0 {
		opts.SetLimit(int64(n))
	}

	cur, err := r.Col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var sessions []models.PracticeSession
	for cur.Next(ctx) {
		var s models.PracticeSession
		if err := cur.Decode(&s); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, cur.Err()
}
