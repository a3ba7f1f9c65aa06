// Package progression holds the lesson status state machine. Persistence
// of the resulting record belongs to the service layer; this package only
// decides what the next record looks like.
package progression

import (
	"time"

	"progress-service/internal/models"
)

// Config holds the score thresholds for status transitions.
type Config struct {
	MasteryThreshold    int
	CompletionThreshold int
}

// DefaultConfig mirrors the platform-wide 90/70 boundaries.
func DefaultConfig() *Config {
	return &Config{
		MasteryThreshold:    90,
		CompletionThreshold: 70,
	}
}

// Manager applies completion events to progress records.
type Manager struct {
	config *Config
}

func NewManager(config *Config) *Manager {
	if config == nil {
		config = DefaultConfig()
	}
	return &Manager{config: config}
}

// StatusForScore maps a completion score onto a target status.
func (m *Manager) StatusForScore(score int) models.ProgressStatus {
	switch {
	case score >= m.config.MasteryThreshold:
		return models.StatusMastered
	case score >= m.config.CompletionThreshold:
		return models.StatusCompleted
	default:
		return models.StatusInProgress
	}
}

// Start returns the record for a learner entering a lesson. If record is
// nil a fresh IN_PROGRESS record is created; otherwise only the access
// timestamp moves. Entering a lesson is not an attempt.
func (m *Manager) Start(record *models.LessonProgress, learnerID, lessonID string, now time.Time) *models.LessonProgress {
	if record == nil {
		return &models.LessonProgress{
			LearnerID:      learnerID,
			LessonID:       lessonID,
			Status:         models.StatusInProgress,
			StartedAt:      now,
			LastAccessedAt: now,
			UpdatedAt:      now,
		}
	}
	record.LastAccessedAt = now
	record.UpdatedAt = now
	return record
}

// ApplyCompletion folds one completion event into the record. The stored
// status only ever moves to an equal or higher tier; a weaker later attempt
// bumps the attempt count without downgrading. completed-at is stamped on
// every entry into COMPLETED or MASTERED, including re-entries.
func (m *Manager) ApplyCompletion(record *models.LessonProgress, learnerID, lessonID string, score, durationSeconds int, now time.Time) *models.LessonProgress {
	if record == nil {
		record = &models.LessonProgress{
			LearnerID: learnerID,
			LessonID:  lessonID,
			Status:    models.StatusInProgress,
			StartedAt: now,
		}
	}

	next := m.StatusForScore(score)
	if next.Tier() > record.Status.Tier() {
		record.Status = next
	}

	if record.Score == nil || score > *record.Score {
		s := score
		record.Score = &s
	}

	if next.Tier() >= models.StatusCompleted.Tier() {
		completed := now
		record.CompletedAt = &completed
	}

	record.Attempts++
	record.TimeSpentSeconds += durationSeconds
	record.LastAccessedAt = now
	record.UpdatedAt = now
	return record
}

// Reset is the one sanctioned downgrade: the caller explicitly asked to
// start over. The attempt history survives as an audit trail.
func (m *Manager) Reset(record *models.LessonProgress, now time.Time) *models.LessonProgress {
	record.Status = models.StatusInProgress
	record.Score = nil
	record.CompletedAt = nil
	record.LastAccessedAt = now
	record.UpdatedAt = now
	return record
}
