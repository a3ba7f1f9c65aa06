package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"progress-service/internal/models"
)

type LearnerRepository struct {
	Col *mongo.Collection
}

func NewLearnerRepository(db *mongo.Database) *LearnerRepository {
	return &LearnerRepository{Col: db.Collection("learners")}
}

// FindByID returns (nil, nil) when the learner is not enrolled.
func (r *LearnerRepository) FindByID(ctx context.Context, id string) (*models.Learner, error) {
	var learner models.Learner
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&learner)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &learner, nil
}
