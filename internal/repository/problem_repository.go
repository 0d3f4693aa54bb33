package repository

import (
	"context"

	"github.com/smithrashell/CodeMaster-sub007/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProblemRepository struct {
	Col *mongo.Collection
}

func NewProblemRepository(db *mongo.Database) *ProblemRepository {
	return &ProblemRepository{Col: db.Collection("problems")}
}

func (r *ProblemRepository) FindAll(ctx context.Context) ([]models.Problem, error) {
	cur, err := r.Col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var problems []models.Problem
	for cur.Next(ctx) {
		var p models.Problem
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		problems = append(problems, p)
	}
	return problems, cur.Err()
}

func (r *ProblemRepository) FindByID(ctx context.Context, id string) (*models.Problem, error) {
	var problem models.Problem
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&problem)
	if err != nil {
		return nil, err
	}
	return &problem, nil
}

func (r *ProblemRepository) FindByTag(ctx context.Context, tag string) ([]models.Problem, error) {
	cur, err := r.Col.Find(ctx, bson.M{"tags": tag})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var problems []models.Problem
	for cur.Next(ctx) {
		var p models.Problem
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		problems = append(problems, p)
	}
	return problems, cur.Err()
}

func (r *ProblemRepository) Create(ctx context.Context, problem *models.Problem) error {
	_, err := r.Col.InsertOne(ctx, problem)
	return err
}
