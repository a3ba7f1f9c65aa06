package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"progress-service/internal/models"
)

const statsTTL = 5 * time.Minute

// StatsCache keeps frequently requested learner totals in redis. All
// operations degrade to a miss when redis is unavailable so the engine
// never depends on the cache.
type StatsCache struct {
	client *redis.Client
}

func NewStatsCache(addr, password string) *StatsCache {
	if addr == "" {
		return &StatsCache{}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("Error connecting to Redis: %v", err)
	}
	return &StatsCache{client: client}
}

func statsKey(learnerID string) string {
	return fmt.Sprintf("learner:%s:stats", learnerID)
}

func (c *StatsCache) Get(ctx context.Context, learnerID string) (*models.LearnerStats, bool) {
	if c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, statsKey(learnerID)).Bytes()
	if err != nil {
		return nil, false
	}
	var stats models.LearnerStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, false
	}
	return &stats, true
}

func (c *StatsCache) Set(ctx context.Context, learnerID string, stats models.LearnerStats) {
	if c.client == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, statsKey(learnerID), raw, statsTTL).Err(); err != nil {
		log.Printf("Error caching stats for learner %s: %v", learnerID, err)
	}
}

// Invalidate drops the cached totals after a completion event so badge
// rules never read stale counts.
func (c *StatsCache) Invalidate(ctx context.Context, learnerID string) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, statsKey(learnerID)).Err(); err != nil {
		log.Printf("Error invalidating stats for learner %s: %v", learnerID, err)
	}
}
