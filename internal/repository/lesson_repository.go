package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"progress-service/internal/models"
)

type LessonRepository struct {
	Col *mongo.Collection
}

func NewLessonRepository(db *mongo.Database) *LessonRepository {
	return &LessonRepository{Col: db.Collection("lessons")}
}

// FindByID returns (nil, nil) when the lesson does not exist.
func (r *LessonRepository) FindByID(ctx context.Context, id string) (*models.Lesson, error) {
	var lesson models.Lesson
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&lesson)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}
