package models

import "time"

// ProgressSnapshot is the progress portion of a completion response.
type ProgressSnapshot struct {
	Status      ProgressStatus `json:"status"`
	Score       *int           `json:"score,omitempty"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
}

// CompletionResult is what the route layer returns to the UI after a
// completion event has been processed end to end.
type CompletionResult struct {
	Progress        ProgressSnapshot   `json:"progress"`
	Stats           LearnerStats       `json:"stats"`
	NewAchievements []AchievementBadge `json:"new_achievements"`
	Message         string             `json:"message"`
}
