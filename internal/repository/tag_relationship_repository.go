package repository

import (
	"context"

	"github.com/smithrashell/CodeMaster-sub007/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type TagRelationshipRepository struct {
	Col *mongo.Collection
}

func NewTagRelationshipRepository(db *mongo.Database) *TagRelationshipRepository {
	return &TagRelationshipRepository{Col: db.Collection("tag_relationships")}
}

func (r *TagRelationshipRepository) FindAll(ctx context.Context) ([]models.TagNode, error) {
	cur, err := r.Col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var nodes []models.TagNode
	for cur.Next(ctx) {
		var node models.TagNode
		if err := cur.Decode(&node); err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, cur.Err()
}

// ReplaceAll rewrites the tag graph wholesale; tag nodes are never partially
// mutated.
func (r *TagRelationshipRepository) ReplaceAll(ctx context.Context, nodes []models.TagNode) error {
	if _, err := r.Col.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if len(nodes) == 0 {
		return nil
	}
	docs := make([]interface{}, len(nodes))
	for i := range nodes {
		docs[i] = nodes[i]
	}
	_, err := r.Col.InsertMany(ctx, docs)
	return err
}
