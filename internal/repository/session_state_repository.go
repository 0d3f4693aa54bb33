package repository

import (
	"context"
	"errors"

	"github.com/smithrashell/CodeMaster-sub007/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SessionStateRepository struct {
	Col *mongo.Collection
}

func NewSessionStateRepository(db *mongo.Database) *SessionStateRepository {
	return &SessionStateRepository{Col: db.Collection("session_state")}
}

// Get returns the user's single state document, creating defaults on first
// sight.
func (r *SessionStateRepository) Get(ctx context.Context, userID string) (*models.SessionState, error) {
	var state models.SessionState
	err := r.Col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&state)
	if errors.Is(err, mongo.ErrNoDocuments) {
		state := models.NewSessionState(userID)
		if err := r.Put(ctx, state); err != nil {
			return nil, err
		}
		return state, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (r *SessionStateRepository) Put(ctx context.Context, state *models.SessionState) error {
	filter := bson.M{"user_id": state.UserID}
	_, err := r.Col.ReplaceOne(ctx, filter, state, options.Replace().SetUpsert(true))
	return err
}
