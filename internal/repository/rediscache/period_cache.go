// Package rediscache caches settlement status lookups in Redis. Statuses
// change rarely but are read on every record mutation, so a short TTL in
// front of the ERP database removes most of the read load.
package rediscache

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"worktime-control/internal/approval"
	"worktime-control/internal/domain"
)

const keyPrefix = "wtc:slstatus"

// errCacheMiss marks a key without a cached entry.
var errCacheMiss = redis.Nil

// backend is the key-value surface the cache needs. Get returns errCacheMiss
// for an absent key.
type backend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// redisBackend adapts a Redis client to the backend interface.
type redisBackend struct {
	client *redis.Client
}

func (b redisBackend) Get(ctx context.Context, key string) (string, error) {
	return b.client.Get(ctx, key).Result()
}

func (b redisBackend) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return b.client.Set(ctx, key, value, ttl).Err()
}

func (b redisBackend) Del(ctx context.Context, key string) error {
	return b.client.Del(ctx, key).Err()
}

// statusEntry is the cached shape of a lookup result. Found is false for a
// cached "no status" answer so misses are not re-queried for the TTL.
type statusEntry struct {
	Found  bool                         `json:"found"`
	Status *domain.ApprovalPeriodStatus `json:"status,omitempty"`
}

// PeriodStatusCache decorates a PeriodStore with a read-through cache.
type PeriodStatusCache struct {
	store   approval.PeriodStore
	backend backend
	ttl     time.Duration
	logger  *zap.Logger
}

// NewPeriodStatusCache wraps a period store with a Redis cache. Entries
// expire after ttl.
func NewPeriodStatusCache(store approval.PeriodStore, client *redis.Client, ttl time.Duration, logger *zap.Logger) *PeriodStatusCache {
	return newWithBackend(store, redisBackend{client: client}, ttl, logger)
}

func newWithBackend(store approval.PeriodStore, b backend, ttl time.Duration, logger *zap.Logger) *PeriodStatusCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PeriodStatusCache{store: store, backend: b, ttl: ttl, logger: logger}
}

// FindStatus returns the cached status for the lookup, falling through to the
// underlying store on a miss. Cache errors degrade to a direct lookup.
func (c *PeriodStatusCache) FindStatus(ctx context.Context, officeID, corporationID int64, periods []time.Time) (*domain.ApprovalPeriodStatus, error) {
	key := cacheKey(officeID, corporationID, periods)

	payload, err := c.backend.Get(ctx, key)
	if err == nil {
		var entry statusEntry
		if err := json.Unmarshal([]byte(payload), &entry); err == nil {
			if !entry.Found {
				return nil, nil
			}
			return entry.Status, nil
		}
		c.logger.Warn("discarding malformed cache entry", zap.String("key", key))
	} else if err != errCacheMiss {
		c.logger.Warn("settlement status cache read failed", zap.String("key", key), zap.Error(err))
	}

	status, err := c.store.FindStatus(ctx, officeID, corporationID, periods)
	if err != nil {
		return nil, err
	}

	entry := statusEntry{Found: status != nil, Status: status}
	if data, err := json.Marshal(entry); err == nil {
		if err := c.backend.Set(ctx, key, string(data), c.ttl); err != nil {
			c.logger.Warn("settlement status cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return status, nil
}

// Invalidate drops the cached lookup for the given periods. Called after a
// status is written so the next evaluation sees it.
func (c *PeriodStatusCache) Invalidate(ctx context.Context, officeID, corporationID int64, periods []time.Time) error {
	return c.backend.Del(ctx, cacheKey(officeID, corporationID, periods))
}

func cacheKey(officeID, corporationID int64, periods []time.Time) string {
	parts := []string{keyPrefix, formatID(officeID), formatID(corporationID)}
	for _, period := range periods {
		parts = append(parts, domain.DateOnly(period).Format("2006-01"))
	}
	return strings.Join(parts, ":")
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
