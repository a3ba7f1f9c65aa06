package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"progress-service/internal/models"
)

type BadgeRepository struct {
	Col *mongo.Collection
}

func NewBadgeRepository(db *mongo.Database) *BadgeRepository {
	return &BadgeRepository{Col: db.Collection("badges")}
}

// EnsureIndexes enforces (learner_id, badge_code) uniqueness so concurrent
// unlock evaluations can never award the same badge twice.
func (r *BadgeRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.Col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "learner_id", Value: 1}, {Key: "badge_code", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// InsertIfAbsent creates the badge once. It reports created=false both when
// the document already existed and when a concurrent insert wins the race;
// neither case is an error for the caller.
func (r *BadgeRepository) InsertIfAbsent(ctx context.Context, badge *models.AchievementBadge) (bool, error) {
	filter := bson.M{"learner_id": badge.LearnerID, "badge_code": badge.BadgeCode}
	update := bson.M{"$setOnInsert": bson.M{
		"learner_id":  badge.LearnerID,
		"badge_code":  badge.BadgeCode,
		"badge_name":  badge.BadgeName,
		"description": badge.Description,
		"earned_at":   badge.EarnedAt,
	}}

	res, err := r.Col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, err
	}
	return res.UpsertedCount == 1, nil
}

func (r *BadgeRepository) FindByLearner(ctx context.Context, learnerID string) ([]models.AchievementBadge, error) {
	cur, err := r.Col.Find(ctx, bson.M{"learner_id": learnerID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var badges []models.AchievementBadge
	for cur.Next(ctx) {
		var b models.AchievementBadge
		if err := cur.Decode(&b); err != nil {
			return nil, err
		}
		badges = append(badges, b)
	}
	return badges, nil
}

// EarnedCodes returns the learner's badge codes as a set for the engine.
func (r *BadgeRepository) EarnedCodes(ctx context.Context, learnerID string) (map[string]bool, error) {
	badges, err := r.FindByLearner(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	codes := make(map[string]bool, len(badges))
	for _, b := range badges {
		codes[b.BadgeCode] = true
	}
	return codes, nil
}
