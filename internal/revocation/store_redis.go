package revocation

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"citizengw/pkg/domain"
)

var (
	isRevokedDurationMs = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "citizengw_is_token_revoked_duration_ms",
		Help:    "Latency of support-token revocation checks in milliseconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
	})
)

const (
	// Redis key prefix for blacklisted support tokens. The raw token string
	// is the key suffix so the check is a single existence probe.
	revokedTokenKeyPrefix = "blacklist:support-token:"
)

// RedisStore is a Redis-backed implementation of Store. This is the
// production-recommended implementation for distributed deployments where
// multiple instances need to share revocation state.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore constructs a Redis-backed revocation list.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Revoke adds a token to the revocation list with TTL.
// Uses Redis SET with expiry for atomic set-with-expiry; re-revoking simply
// refreshes the entry, which keeps the operation idempotent.
func (s *RedisStore) Revoke(ctx context.Context, token domain.SupportToken, fiscalCode domain.FiscalCode, ttl time.Duration) error {
	if err := validateTTL(ttl); err != nil {
		return err
	}
	key := revokedTokenKeyPrefix + token.String()
	return s.client.Set(ctx, key, fiscalCode.String(), ttl).Err()
}

// IsRevoked checks if a token is in the revocation list.
// Returns false if the key doesn't exist (not revoked or already expired).
func (s *RedisStore) IsRevoked(ctx context.Context, token domain.SupportToken) (bool, error) {
	start := time.Now()
	defer func() {
		isRevokedDurationMs.Observe(float64(time.Since(start).Microseconds()) / 1000.0)
	}()

	key := revokedTokenKeyPrefix + token.String()
	_, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
