package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"progress-service/internal/models"
)

type ProgressRepository struct {
	Col *mongo.Collection
}

func NewProgressRepository(db *mongo.Database) *ProgressRepository {
	return &ProgressRepository{Col: db.Collection("progress")}
}

// EnsureIndexes enforces the one-record-per-(learner, lesson) invariant.
func (r *ProgressRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.Col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "learner_id", Value: 1}, {Key: "lesson_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// FindByLearnerAndLesson returns (nil, nil) when no record exists yet;
// NOT_STARTED is the implicit absence of a record.
func (r *ProgressRepository) FindByLearnerAndLesson(ctx context.Context, learnerID, lessonID string) (*models.LessonProgress, error) {
	var record models.LessonProgress
	err := r.Col.FindOne(ctx, bson.M{"learner_id": learnerID, "lesson_id": lessonID}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Upsert writes the record keyed on (learner_id, lesson_id). Racing writes
// resolve last-writer-wins; updated_at timestamps every write so the
// outcome is deterministic and auditable.
func (r *ProgressRepository) Upsert(ctx context.Context, record *models.LessonProgress) error {
	filter := bson.M{"learner_id": record.LearnerID, "lesson_id": record.LessonID}
	update := bson.M{
		"$set": bson.M{
			"status":             record.Status,
			"score":              record.Score,
			"attempts":           record.Attempts,
			"time_spent_seconds": record.TimeSpentSeconds,
			"completed_at":       record.CompletedAt,
			"last_accessed_at":   record.LastAccessedAt,
			"updated_at":         record.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"learner_id": record.LearnerID,
			"lesson_id":  record.LessonID,
			"started_at": record.StartedAt,
		},
	}
	_, err := r.Col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *ProgressRepository) FindByLearner(ctx context.Context, learnerID string) ([]models.LessonProgress, error) {
	cur, err := r.Col.Find(ctx, bson.M{"learner_id": learnerID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var records []models.LessonProgress
	for cur.Next(ctx) {
		var rec models.LessonProgress
		if err := cur.Decode(&rec); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// CountCompleted counts lessons whose stored status reached a terminal tier.
func (r *ProgressRepository) CountCompleted(ctx context.Context, learnerID string) (int, error) {
	n, err := r.Col.CountDocuments(ctx, bson.M{
		"learner_id": learnerID,
		"status":     bson.M{"$in": []models.ProgressStatus{models.StatusCompleted, models.StatusMastered}},
	})
	return int(n), err
}

// TotalTimeSpentSeconds sums recorded lesson time for the learner.
func (r *ProgressRepository) TotalTimeSpentSeconds(ctx context.Context, learnerID string) (int, error) {
	cur, err := r.Col.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"learner_id": learnerID}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$time_spent_seconds"},
		}}},
	})
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)
	var out struct {
		Total int `bson:"total"`
	}
	if cur.Next(ctx) {
		if err := cur.Decode(&out); err != nil {
			return 0, err
		}
	}
	return out.Total, nil
}

// ActivityDates returns the timestamps of recent progress writes for
// streak computation. Activity is derived from the progress records'
// access and completion stamps, not stored separately.
func (r *ProgressRepository) ActivityDates(ctx context.Context, learnerID string, since time.Time) ([]time.Time, error) {
	cur, err := r.Col.Find(ctx,
		bson.M{"learner_id": learnerID, "last_accessed_at": bson.M{"$gte": since}},
		options.Find().SetProjection(bson.M{"last_accessed_at": 1, "completed_at": 1}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var dates []time.Time
	for cur.Next(ctx) {
		var rec struct {
			LastAccessedAt time.Time  `bson:"last_accessed_at"`
			CompletedAt    *time.Time `bson:"completed_at"`
		}
		if err := cur.Decode(&rec); err != nil {
			return nil, err
		}
		dates = append(dates, rec.LastAccessedAt)
		if rec.CompletedAt != nil && rec.CompletedAt.After(since) {
			dates = append(dates, *rec.CompletedAt)
		}
	}
	return dates, nil
}
