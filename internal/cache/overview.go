package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"TourWatch/internal/model/dto"
	"TourWatch/storage/redis"
)

const overviewKey = "dashboard:overview"

// GetOverview 读取总览统计缓存，未命中返回 (nil, nil)
func GetOverview(ctx context.Context) (*dto.OverviewResponse, error) {
	data, err := redis.Client().Get(ctx, redis.Key(overviewKey)).Result()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get overview cache: %w", err)
	}

	var overview dto.OverviewResponse
	if err := json.Unmarshal([]byte(data), &overview); err != nil {
		return nil, fmt.Errorf("failed to unmarshal overview cache: %w", err)
	}
	return &overview, nil
}

// SetOverview 写入总览统计缓存
func SetOverview(ctx context.Context, overview *dto.OverviewResponse, ttl time.Duration) error {
	data, err := json.Marshal(overview)
	if err != nil {
		return fmt.Errorf("failed to marshal overview cache: %w", err)
	}
	return redis.Client().Set(ctx, redis.Key(overviewKey), data, ttl).Err()
}
