package repositories

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Kvng-HackSOC/mediadev/internal/logger"
)

// RevokedTokenRepository tracks logged-out access tokens in Redis until
// they would have expired anyway.
type RevokedTokenRepository struct {
	client *redis.Client
}

// NewRevokedTokenRepository creates a new repository instance.
func NewRevokedTokenRepository(client *redis.Client) *RevokedTokenRepository {
	return &RevokedTokenRepository{client: client}
}

// tokenKey hashes the raw token so full JWTs are never stored.
func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "revoked_token:" + hex.EncodeToString(sum[:])
}

// Revoke marks a token as revoked for the given TTL.
func (r *RevokedTokenRepository) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		// Already expired; nothing to track.
		return nil
	}

	key := tokenKey(token)
	err := r.client.Set(ctx, key, "1", ttl).Err()

	logger.Log.Infow(
		"key", key,
		"ttl", ttl,
		"error", err,
	)

	return err
}

// IsRevoked reports whether the token has been revoked.
func (r *RevokedTokenRepository) IsRevoked(ctx context.Context, token string) (bool, error) {
	key := tokenKey(token)

	_, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		logger.Log.Errorw("revocation check failed", "key", key, "error", err)
		return false, err
	}
	return true, nil
}
