package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"donation_platform/internal/domain/entities"
	"donation_platform/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
)

const statsKeyPrefix = "donations:stats:"

// RedisStatsCache stores computed campaign stats as JSON under
// donations:stats:<campaign_id>:<generation>. Ledger writes bump the counter at
// donations:stats:<campaign_id>:gen, which orphans every entry stored for an older
// generation; the TTL cleans those up and bounds staleness when an invalidation is lost.
type RedisStatsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ interfaces.IStatsCache = (*RedisStatsCache)(nil)

func NewRedisStatsCache(rdb *redis.Client, ttl time.Duration) *RedisStatsCache {
	return &RedisStatsCache{rdb: rdb, ttl: ttl}
}

// StatsGeneration returns 0 for a campaign that was never invalidated.
func (c *RedisStatsCache) StatsGeneration(ctx context.Context, campaignID string) (int64, error) {
	gen, err := c.rdb.Get(ctx, generationKey(campaignID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *RedisStatsCache) GetCampaignStats(ctx context.Context, campaignID string, generation int64) (entities.CampaignStats, bool, error) {
	raw, err := c.rdb.Get(ctx, statsKey(campaignID, generation)).Bytes()
	if errors.Is(err, redis.Nil) {
		return entities.CampaignStats{}, false, nil
	}
	if err != nil {
		return entities.CampaignStats{}, false, err
	}

	var stats entities.CampaignStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		// A payload we cannot read is treated as a miss and overwritten on the next set.
		return entities.CampaignStats{}, false, nil
	}
	return stats, true, nil
}

func (c *RedisStatsCache) SetCampaignStats(ctx context.Context, stats entities.CampaignStats, generation int64) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, statsKey(stats.CampaignID, generation), raw, c.ttl).Err()
}

// InvalidateCampaign bumps the generation. The counter has no TTL: resetting it could
// bring an old entry back into view.
func (c *RedisStatsCache) InvalidateCampaign(ctx context.Context, campaignID string) error {
	return c.rdb.Incr(ctx, generationKey(campaignID)).Err()
}

func statsKey(campaignID string, generation int64) string {
	return statsKeyPrefix + campaignID + ":" + strconv.FormatInt(generation, 10)
}

func generationKey(campaignID string) string {
	return statsKeyPrefix + campaignID + ":gen"
}
