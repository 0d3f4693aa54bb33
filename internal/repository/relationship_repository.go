package repository

import (
	"context"
	"fmt"

	"github.com/smithrashell/CodeMaster-sub007/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RelationshipRepository struct {
	Col *mongo.Collection
}

func NewRelationshipRepository(db *mongo.Database) *RelationshipRepository {
	return &RelationshipRepository{Col: db.Collection("relationships")}
}

func (r *RelationshipRepository) FindAll(ctx context.Context) ([]models.ProblemRelationship, error) {
	cur, err := r.Col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var rels []models.ProblemRelationship
	for cur.Next(ctx) {
		var rel models.ProblemRelationship
		if err := cur.Decode(&rel); err != nil {
			return nil, err
		}
		rels = append(rels, rel)
	}
	return rels, cur.Err()
}

// FindBySource returns the directed edges out of one problem, strongest
// first.
func (r *RelationshipRepository) FindBySource(ctx context.Context, problemID string) ([]models.ProblemRelationship, error) {
	opts := options.Find().SetSort(bson.D{{Key: "strength", Value: -1}})
	cur, err := r.Col.Find(ctx, bson.M{"problem_id1": problemID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var rels []models.ProblemRelationship
	for cur.Next(ctx) {
		var rel models.ProblemRelationship
		if err := cur.Decode(&rel); err != nil {
			return nil, err
		}
		rels = append(rels, rel)
	}
	return rels, cur.Err()
}

// Upsert creates or updates the directed edge keyed by both problem ids.
func (r *RelationshipRepository) Upsert(ctx context.Context, rel *models.ProblemRelationship) error {
	if rel.ProblemID1 == "" || rel.ProblemID2 == "" {
		return fmt.Errorf("relationship missing problem ids")
	}
	filter := bson.M{"problem_id1": rel.ProblemID1, "problem_id2": rel.ProblemID2}
	update := bson.M{"$set": bson.M{"strength": rel.Strength}}
	_, err := r.Col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// ReplaceAll clears the collection and writes the rebuilt edge set. A failed
// rewrite returns the error untouched: a half-rebuilt graph is worse than a
// stale one, so the caller decides whether to retry.
func (r *RelationshipRepository) ReplaceAll(ctx context.Context, rels []models.ProblemRelationship) error {
	if _, err := r.Col.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if len(rels) == 0 {
		return nil
	}
	docs := make([]interface{}, len(rels))
	for i := range rels {
		docs[i] = rels[i]
	}
	_, err := r.Col.InsertMany(ctx, docs)
	return err
}
