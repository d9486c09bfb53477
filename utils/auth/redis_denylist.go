package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/nmdong/VietThanhProductions/model"
	"github.com/nmdong/VietThanhProductions/utils/cache"
)

const denylistKeyPrefix = "denylist:"

// RedisDenylist keeps revoked identifiers in Redis. Keys expire together with
// the token they describe, so nothing has to be pruned.
type RedisDenylist struct {
	redisCache *cache.RedisCache
}

var _ Denylist = (*RedisDenylist)(nil)

// NewRedisDenylist creates a Redis backed denylist
func NewRedisDenylist(redisCache *cache.RedisCache) *RedisDenylist {
	return &RedisDenylist{redisCache: redisCache}
}

// Add stores jti with a TTL matching the token's remaining lifetime
func (r *RedisDenylist) Add(ctx context.Context, jti string, tokenType model.TokenType, userID *uint, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl < time.Second {
		ttl = time.Second
	}

	owner := "-"
	if userID != nil {
		owner = fmt.Sprintf("%d", *userID)
	}

	// SETNX leaves an existing entry untouched
	_, err := r.redisCache.SetNX(ctx, denylistKeyPrefix+jti, fmt.Sprintf("%s:%s", tokenType, owner), ttl)
	return err
}

// IsRevoked reports whether jti has a live denylist key
func (r *RedisDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return r.redisCache.Exists(ctx, denylistKeyPrefix+jti)
}

// Prune is a no-op: Redis TTL already expires the keys
func (r *RedisDenylist) Prune(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}
