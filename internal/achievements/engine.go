// Package achievements evaluates badge unlock rules after completion
// events. Unlocks are idempotent: a (learner, badge code) pair is persisted
// at most once no matter how often the rules are re-evaluated.
package achievements

import (
	"context"
	"log"
	"time"

	"progress-service/internal/models"
)

// BadgeStore is the persistence collaborator for earned badges. InsertIfAbsent
// must report created=false, not an error, when the badge already exists.
type BadgeStore interface {
	InsertIfAbsent(ctx context.Context, badge *models.AchievementBadge) (bool, error)
}

// Engine walks the rule table and persists newly earned badges.
type Engine struct {
	store BadgeStore
	rules []Rule
}

func NewEngine(store BadgeStore, rules []Rule) *Engine {
	if rules == nil {
		rules = DefaultRules(nil)
	}
	return &Engine{store: store, rules: rules}
}

// Rules exposes the table for catalogue listings.
func (e *Engine) Rules() []Rule {
	return e.rules
}

// EvaluateUnlocks checks every rule against the learner's totals and
// persists each newly qualifying badge exactly once. Already earned codes
// are skipped, and a duplicate insert detected by the store is absorbed as
// a skip. One rule's persistence failure is logged and never aborts the
// remaining rules.
func (e *Engine) EvaluateUnlocks(ctx context.Context, learnerID string, stats models.LearnerStats, earned map[string]bool, now time.Time) []models.AchievementBadge {
	var unlocked []models.AchievementBadge

	for _, rule := range e.rules {
		if earned[rule.Code] {
			continue
		}
		if !rule.Unlocked(stats) {
			continue
		}

		badge := &models.AchievementBadge{
			LearnerID:   learnerID,
			BadgeCode:   rule.Code,
			BadgeName:   rule.Name,
			Description: rule.Description,
			EarnedAt:    now,
		}

		created, err := e.store.InsertIfAbsent(ctx, badge)
		if err != nil {
			log.Printf("achievements: failed to persist badge %s for learner %s: %v", rule.Code, learnerID, err)
			continue
		}
		if !created {
			// A concurrent completion event got there first.
			continue
		}
		unlocked = append(unlocked, *badge)
	}

	return unlocked
}
