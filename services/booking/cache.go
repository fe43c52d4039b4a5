package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"detailing/models"
	"detailing/utils"

	"github.com/go-redis/redis/v8"
)

// MonthCache stores month-availability answers for the date picker.
// Per-day slots and booking validation never read from it.
type MonthCache interface {
	Get(ctx context.Context, key string) ([]models.DayAvailability, bool)
	Set(ctx context.Context, key string, days []models.DayAvailability)
	InvalidateMonth(ctx context.Context, month string)
}

// MonthCacheKey builds the cache key. today is part of the key because the
// answer changes when the day rolls over.
func MonthCacheKey(month, today, serviceTitle string) string {
	return fmt.Sprintf("%s%s:%s:%s", utils.MonthCachePrefix, month, today, strings.ToLower(strings.TrimSpace(serviceTitle)))
}

// RedisMonthCache implements MonthCache on Redis.
type RedisMonthCache struct {
	client *redis.Client
}

func NewRedisMonthCache(client *redis.Client) *RedisMonthCache {
	return &RedisMonthCache{client: client}
}

func (c *RedisMonthCache) Get(ctx context.Context, key string) ([]models.DayAvailability, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var days []models.DayAvailability
	if err := json.Unmarshal(raw, &days); err != nil {
		return nil, false
	}
	return days, true
}

func (c *RedisMonthCache) Set(ctx context.Context, key string, days []models.DayAvailability) {
	raw, err := json.Marshal(days)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, key, raw, utils.MonthCacheTTL).Err()
}

// InvalidateMonth drops every cached answer for month ("YYYY-MM").
func (c *RedisMonthCache) InvalidateMonth(ctx context.Context, month string) {
	iter := c.client.Scan(ctx, 0, utils.MonthCachePrefix+month+":*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if len(keys) > 0 {
		_ = c.client.Del(ctx, keys...).Err()
	}
}
