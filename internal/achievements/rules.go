package achievements

import "progress-service/internal/models"

// Rule is one independently evaluable badge condition. Adding a badge is a
// data change here, not a new branch in the engine.
type Rule struct {
	Code        string
	Name        string
	Description string
	Unlocked    func(models.LearnerStats) bool
}

// Config holds the unlock thresholds.
type Config struct {
	LessonMilestone int
	StreakMilestone int
}

func DefaultConfig() *Config {
	return &Config{
		LessonMilestone: 10,
		StreakMilestone: 7,
	}
}

// DefaultRules builds the ordered rule table for a config.
func DefaultRules(cfg *Config) []Rule {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return []Rule{
		{
			Code:        "first_lesson",
			Name:        "First Steps",
			Description: "Complete your first lesson",
			Unlocked: func(s models.LearnerStats) bool {
				return s.TotalCompleted == 1
			},
		},
		{
			Code:        "ten_lessons",
			Name:        "Dedicated Learner",
			Description: "Complete 10 lessons",
			Unlocked: func(s models.LearnerStats) bool {
				return s.TotalCompleted >= cfg.LessonMilestone
			},
		},
		{
			Code:        "week_streak",
			Name:        "Week Warrior",
			Description: "Practice 7 days in a row",
			Unlocked: func(s models.LearnerStats) bool {
				return s.CurrentStreak >= cfg.StreakMilestone
			},
		},
	}
}
