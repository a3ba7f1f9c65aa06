package models

import "time"

type ProgressStatus string

const (
	StatusNotStarted ProgressStatus = "not_started"
	StatusInProgress ProgressStatus = "in_progress"
	StatusCompleted  ProgressStatus = "completed"
	StatusMastered   ProgressStatus = "mastered"
)

// Tier returns the ordering rank of a status. A stored status is never
// replaced by one with a lower tier unless the learner explicitly resets.
func (s ProgressStatus) Tier() int {
	switch s {
	case StatusInProgress:
		return 1
	case StatusCompleted:
		return 2
	case StatusMastered:
		return 3
	default:
		return 0
	}
}

// LessonProgress is the single persisted record per (learner, lesson) pair.
type LessonProgress struct {
	ID               string         `bson:"_id,omitempty" json:"id"`
	LearnerID        string         `bson:"learner_id" json:"learner_id"`
	LessonID         string         `bson:"lesson_id" json:"lesson_id"`
	Status           ProgressStatus `bson:"status" json:"status"`
	Score            *int           `bson:"score,omitempty" json:"score,omitempty"`
	Attempts         int            `bson:"attempts" json:"attempts"`
	TimeSpentSeconds int            `bson:"time_spent_seconds" json:"time_spent_seconds"`
	StartedAt        time.Time      `bson:"started_at" json:"started_at"`
	CompletedAt      *time.Time     `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	LastAccessedAt   time.Time      `bson:"last_accessed_at" json:"last_accessed_at"`
	UpdatedAt        time.Time      `bson:"updated_at" json:"updated_at"`
}

type Lesson struct {
	ID       string `bson:"_id,omitempty" json:"id"`
	Title    string `bson:"title" json:"title"`
	Language string `bson:"language" json:"language"`
	Level    string `bson:"level" json:"level"`
}

type Learner struct {
	ID               string    `bson:"_id,omitempty" json:"id"`
	DisplayName      string    `bson:"display_name" json:"display_name"`
	ToleranceEnabled bool      `bson:"tolerance_enabled" json:"tolerance_enabled"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
}

// LearnerStats are the derived totals badge rules evaluate against.
type LearnerStats struct {
	TotalCompleted    int `json:"total_completed"`
	CurrentStreak     int `json:"current_streak"`
	TotalMinutesSpent int `json:"total_minutes_spent"`
}
