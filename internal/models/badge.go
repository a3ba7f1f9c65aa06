package models

import "time"

// AchievementBadge is created once per (learner, badge code) and never
// mutated or deleted afterwards.
type AchievementBadge struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	LearnerID   string    `bson:"learner_id" json:"learner_id"`
	BadgeCode   string    `bson:"badge_code" json:"badge_code"`
	BadgeName   string    `bson:"badge_name" json:"badge_name"`
	Description string    `bson:"description" json:"description"`
	EarnedAt    time.Time `bson:"earned_at" json:"earned_at"`
}
