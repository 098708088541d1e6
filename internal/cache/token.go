package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"TourWatch/storage/redis"
)

const (
	tokenBlacklistPrefix = "token:blacklist"
)

// tokenFingerprint 黑名单里只存 token 的摘要，不落原文
func tokenFingerprint(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// BlacklistAccessToken 登出时拉黑 access token，TTL 取 token 剩余有效期即可
// Key: twch:token:blacklist:{sha256}
func BlacklistAccessToken(ctx context.Context, rawToken string, ttl time.Duration) error {
	key := redis.Key(tokenBlacklistPrefix, tokenFingerprint(rawToken))
	return redis.Client().Set(ctx, key, "1", ttl).Err()
}

// IsAccessTokenBlacklisted 检查 token 是否已被拉黑
func IsAccessTokenBlacklisted(ctx context.Context, rawToken string) (bool, error) {
	key := redis.Key(tokenBlacklistPrefix, tokenFingerprint(rawToken))
	result, err := redis.Client().Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return result > 0, nil
}
