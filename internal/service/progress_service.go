package service

import (
	"context"
	"fmt"
	"time"

	"progress-service/internal/achievements"
	"progress-service/internal/cache"
	"progress-service/internal/models"
	"progress-service/internal/progression"
	"progress-service/internal/streak"
)

// activityWindowDays bounds the look-back for streak computation.
const activityWindowDays = 30

// ProgressStore is the persistence collaborator for progress records.
// Writes to LessonProgress go through this service exclusively.
type ProgressStore interface {
	FindByLearnerAndLesson(ctx context.Context, learnerID, lessonID string) (*models.LessonProgress, error)
	Upsert(ctx context.Context, record *models.LessonProgress) error
	FindByLearner(ctx context.Context, learnerID string) ([]models.LessonProgress, error)
	CountCompleted(ctx context.Context, learnerID string) (int, error)
	TotalTimeSpentSeconds(ctx context.Context, learnerID string) (int, error)
	ActivityDates(ctx context.Context, learnerID string, since time.Time) ([]time.Time, error)
}

// BadgeStore extends the achievement engine's insert contract with reads.
type BadgeStore interface {
	achievements.BadgeStore
	FindByLearner(ctx context.Context, learnerID string) ([]models.AchievementBadge, error)
	EarnedCodes(ctx context.Context, learnerID string) (map[string]bool, error)
}

type LessonStore interface {
	FindByID(ctx context.Context, id string) (*models.Lesson, error)
}

type LearnerStore interface {
	FindByID(ctx context.Context, id string) (*models.Learner, error)
}

// ProgressService orchestrates the completion flow: status transition,
// persistence, streak recomputation, badge unlocks and the learner-facing
// message. The progress write always lands before streak and badge reads
// so the rules see up-to-date totals.
type ProgressService struct {
	Progress ProgressStore
	Badges   BadgeStore
	Lessons  LessonStore
	Learners LearnerStore

	manager *progression.Manager
	engine  *achievements.Engine
	stats   *cache.StatsCache

	now func() time.Time
}

func NewProgressService(progress ProgressStore, badges BadgeStore, lessons LessonStore, learners LearnerStore, statsCache *cache.StatsCache) *ProgressService {
	return &ProgressService{
		Progress: progress,
		Badges:   badges,
		Lessons:  lessons,
		Learners: learners,
		manager:  progression.NewManager(nil),
		engine:   achievements.NewEngine(badges, nil),
		stats:    statsCache,
		now:      time.Now,
	}
}

// BadgeRules exposes the rule table for the catalogue endpoint.
func (s *ProgressService) BadgeRules() []achievements.Rule {
	return s.engine.Rules()
}

func (s *ProgressService) lookups(ctx context.Context, learnerID, lessonID string) error {
	if learnerID == "" || lessonID == "" {
		return fmt.Errorf("%w: learner and lesson ids are required", ErrValidation)
	}
	learner, err := s.Learners.FindByID(ctx, learnerID)
	if err != nil {
		return err
	}
	if learner == nil {
		return fmt.Errorf("%w: learner %s", ErrNotFound, learnerID)
	}
	lesson, err := s.Lessons.FindByID(ctx, lessonID)
	if err != nil {
		return err
	}
	if lesson == nil {
		return fmt.Errorf("%w: lesson %s", ErrNotFound, lessonID)
	}
	return nil
}

// StartLesson records that the learner entered a lesson. It creates the
// record in IN_PROGRESS when absent and never counts as an attempt.
func (s *ProgressService) StartLesson(ctx context.Context, learnerID, lessonID string) (*models.LessonProgress, error) {
	if err := s.lookups(ctx, learnerID, lessonID); err != nil {
		return nil, err
	}

	record, err := s.Progress.FindByLearnerAndLesson(ctx, learnerID, lessonID)
	if err != nil {
		return nil, err
	}
	record = s.manager.Start(record, learnerID, lessonID, s.now())
	if err := s.Progress.Upsert(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// CompleteLesson processes one completion event end to end and returns the
// caller-facing result shape.
func (s *ProgressService) CompleteLesson(ctx context.Context, learnerID, lessonID string, score, durationSeconds int) (*models.CompletionResult, error) {
	if score < 0 || score > 100 {
		return nil, fmt.Errorf("%w: score %d out of range", ErrValidation, score)
	}
	if durationSeconds < 0 {
		return nil, fmt.Errorf("%w: negative duration", ErrValidation)
	}
	if err := s.lookups(ctx, learnerID, lessonID); err != nil {
		return nil, err
	}

	now := s.now()

	record, err := s.Progress.FindByLearnerAndLesson(ctx, learnerID, lessonID)
	if err != nil {
		return nil, err
	}
	record = s.manager.ApplyCompletion(record, learnerID, lessonID, score, durationSeconds, now)
	if err := s.Progress.Upsert(ctx, record); err != nil {
		return nil, err
	}

	// The write above must be visible before totals are read; badge rules
	// depend on the fresh completion count and streak.
	stats, err := s.computeStats(ctx, learnerID, now)
	if err != nil {
		return nil, err
	}

	earned, err := s.Badges.EarnedCodes(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	unlocked := s.engine.EvaluateUnlocks(ctx, learnerID, stats, earned, now)

	if s.stats != nil {
		s.stats.Invalidate(ctx, learnerID)
		s.stats.Set(ctx, learnerID, stats)
	}

	return &models.CompletionResult{
		Progress: models.ProgressSnapshot{
			Status:      record.Status,
			Score:       record.Score,
			CompletedAt: record.CompletedAt,
		},
		Stats:           stats,
		NewAchievements: unlocked,
		Message:         messageForStatus(record.Status),
	}, nil
}

// ResetLesson is the explicit downgrade path back to IN_PROGRESS.
func (s *ProgressService) ResetLesson(ctx context.Context, learnerID, lessonID string) (*models.LessonProgress, error) {
	if err := s.lookups(ctx, learnerID, lessonID); err != nil {
		return nil, err
	}

	record, err := s.Progress.FindByLearnerAndLesson(ctx, learnerID, lessonID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%w: no progress for lesson %s", ErrNotFound, lessonID)
	}
	record = s.manager.Reset(record, s.now())
	if err := s.Progress.Upsert(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *ProgressService) ListProgress(ctx context.Context, learnerID string) ([]models.LessonProgress, error) {
	if learnerID == "" {
		return nil, fmt.Errorf("%w: learner id is required", ErrValidation)
	}
	return s.Progress.FindByLearner(ctx, learnerID)
}

// Stats returns the learner's totals, served from the redis cache when warm.
func (s *ProgressService) Stats(ctx context.Context, learnerID string) (models.LearnerStats, error) {
	if learnerID == "" {
		return models.LearnerStats{}, fmt.Errorf("%w: learner id is required", ErrValidation)
	}
	if s.stats != nil {
		if cached, ok := s.stats.Get(ctx, learnerID); ok {
			return *cached, nil
		}
	}
	stats, err := s.computeStats(ctx, learnerID, s.now())
	if err != nil {
		return models.LearnerStats{}, err
	}
	if s.stats != nil {
		s.stats.Set(ctx, learnerID, stats)
	}
	return stats, nil
}

func (s *ProgressService) ListBadges(ctx context.Context, learnerID string) ([]models.AchievementBadge, error) {
	if learnerID == "" {
		return nil, fmt.Errorf("%w: learner id is required", ErrValidation)
	}
	return s.Badges.FindByLearner(ctx, learnerID)
}

func (s *ProgressService) computeStats(ctx context.Context, learnerID string, now time.Time) (models.LearnerStats, error) {
	completed, err := s.Progress.CountCompleted(ctx, learnerID)
	if err != nil {
		return models.LearnerStats{}, err
	}

	since := now.AddDate(0, 0, -activityWindowDays)
	dates, err := s.Progress.ActivityDates(ctx, learnerID, since)
	if err != nil {
		return models.LearnerStats{}, err
	}

	totalSeconds, err := s.Progress.TotalTimeSpentSeconds(ctx, learnerID)
	if err != nil {
		return models.LearnerStats{}, err
	}

	return models.LearnerStats{
		TotalCompleted:    completed,
		CurrentStreak:     streak.Current(dates, now),
		TotalMinutesSpent: totalSeconds / 60,
	}, nil
}

// messageForStatus picks the encouragement line solely by resulting status.
func messageForStatus(status models.ProgressStatus) string {
	switch status {
	case models.StatusMastered:
		return "Excellent work! You mastered this lesson!"
	case models.StatusCompleted:
		return "Great job completing this lesson!"
	default:
		return "Keep practicing, you're making progress!"
	}
}
