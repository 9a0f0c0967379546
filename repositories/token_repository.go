package repositories

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisRevokedTokenRepository struct {
	redis *redis.Client
}

func NewRedisRevokedTokenRepository(redisClient *redis.Client) *RedisRevokedTokenRepository {
	return &RedisRevokedTokenRepository{redis: redisClient}
}

// Tokens are keyed by digest so raw credentials never land in Redis.
func revokedTokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return fmt.Sprintf("auth:revoked:%s", hex.EncodeToString(sum[:]))
}

func (r *RedisRevokedTokenRepository) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return r.redis.Set(ctx, revokedTokenKey(token), 1, ttl).Err()
}

func (r *RedisRevokedTokenRepository) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := r.redis.Exists(ctx, revokedTokenKey(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
