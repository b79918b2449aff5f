package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"f1grid/internal/domain"
	"f1grid/pkg/errors"
	"f1grid/pkg/redis"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SnapshotValidity is how long a cached team snapshot stays usable. The
// boundary is strict: a snapshot exactly this old is already expired.
const SnapshotValidity = 24 * time.Hour

// CacheStore persists the most recent successful team list together with its
// fetch timestamp under two paired Redis keys. The pair is always written and
// deleted together; a payload without its timestamp reads as absent.
type CacheStore struct {
	redis  *redis.Client
	logger *zap.Logger
	now    func() time.Time
}

// NewCacheStore creates a cache store. A nil Redis client is allowed and
// turns every operation into a no-op, so the service can run uncached.
func NewCacheStore(redisClient *redis.Client, logger *zap.Logger) *CacheStore {
	return &CacheStore{
		redis:  redisClient,
		logger: logger,
		now:    time.Now,
	}
}

// Read returns the cached team snapshot when one exists and is still fresh.
// Expired, incomplete, or corrupt entries are purged and read as absent.
func (c *CacheStore) Read(ctx context.Context) ([]domain.TeamRecord, bool) {
	if c.redis == nil {
		return nil, false
	}

	tsKey := c.redis.KeyBuilder.KeyTeamsFetchedAt()
	payloadKey := c.redis.KeyBuilder.KeyTeamsPayload()

	rawTS, err := c.redis.Get(ctx, tsKey)
	if err == goredis.Nil {
		// No timestamp means no valid entry, even if a payload lingers.
		c.purgePair(ctx)
		return nil, false
	}
	if err != nil {
		c.logger.Warn("Snapshot timestamp read failed, treating cache as absent", zap.Error(err))
		return nil, false
	}

	fetchedAt, err := strconv.ParseInt(rawTS, 10, 64)
	if err != nil {
		c.logger.Warn("Snapshot timestamp corrupted, purging cache", zap.Error(err))
		c.purgePair(ctx)
		return nil, false
	}

	age := c.now().UnixMilli() - fetchedAt
	if age >= SnapshotValidity.Milliseconds() {
		c.logger.Debug("Snapshot expired, purging cache",
			zap.Int64("age_ms", age))
		c.purgePair(ctx)
		return nil, false
	}

	rawPayload, err := c.redis.Get(ctx, payloadKey)
	if err != nil {
		if err != goredis.Nil {
			c.logger.Warn("Snapshot payload read failed, treating cache as absent", zap.Error(err))
		}
		c.purgePair(ctx)
		return nil, false
	}

	var teams []domain.TeamRecord
	if err := json.Unmarshal([]byte(rawPayload), &teams); err != nil {
		c.logger.Warn("Snapshot payload corrupted, purging cache", zap.Error(err))
		c.purgePair(ctx)
		return nil, false
	}
	if len(teams) == 0 {
		c.purgePair(ctx)
		return nil, false
	}

	c.logger.Debug("Team snapshot cache hit",
		zap.Int("teams", len(teams)),
		zap.Int64("age_ms", age))
	return teams, true
}

// Write stores the team list and the current time as a paired snapshot.
// Caching is an optimization, so serialization or storage failures are
// logged and swallowed, never returned.
func (c *CacheStore) Write(ctx context.Context, teams []domain.TeamRecord) {
	if c.redis == nil {
		return
	}

	payload, err := json.Marshal(teams)
	if err != nil {
		storageErr := errors.NewStorageError("failed to serialize team snapshot", err)
		c.logger.Error("Snapshot write skipped", zap.Error(storageErr))
		return
	}

	pair := map[string]interface{}{
		c.redis.KeyBuilder.KeyTeamsPayload():   string(payload),
		c.redis.KeyBuilder.KeyTeamsFetchedAt(): strconv.FormatInt(c.now().UnixMilli(), 10),
	}
	if err := c.redis.SetMultiple(ctx, pair, redis.TTLTeamsSnapshot); err != nil {
		storageErr := errors.NewStorageError("failed to store team snapshot", err)
		c.logger.Error("Snapshot write failed", zap.Error(storageErr))
		return
	}

	c.logger.Debug("Team snapshot cached", zap.Int("teams", len(teams)))
}

// Purge removes the snapshot pair unconditionally.
func (c *CacheStore) Purge(ctx context.Context) error {
	if c.redis == nil {
		return nil
	}
	return c.redis.Delete(ctx,
		c.redis.KeyBuilder.KeyTeamsPayload(),
		c.redis.KeyBuilder.KeyTeamsFetchedAt())
}

func (c *CacheStore) purgePair(ctx context.Context) {
	if err := c.Purge(ctx); err != nil {
		c.logger.Warn("Failed to purge snapshot pair", zap.Error(err))
	}
}
