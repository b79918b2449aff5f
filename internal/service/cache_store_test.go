package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"f1grid/internal/domain"
	"f1grid/pkg/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestStore(t *testing.T) (*miniredis.Miniredis, *redis.Client, *CacheStore) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := redis.NewClient("redis://"+mr.Addr(), "test", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return mr, client, NewCacheStore(client, zap.NewNop())
}

func sampleTeams(names ...string) []domain.TeamRecord {
	teams := make([]domain.TeamRecord, 0, len(names))
	for _, name := range names {
		teams = append(teams, domain.TeamRecord{
			ID:          domain.Slugify(name),
			Name:        name,
			AccentColor: domain.TeamAccentColor(name),
			Drivers:     []domain.DriverRecord{},
		})
	}
	return teams
}

func TestCacheStore_WriteThenRead(t *testing.T) {
	_, _, store := setupTestStore(t)
	ctx := context.Background()

	store.Write(ctx, sampleTeams("Ferrari", "McLaren"))

	teams, ok := store.Read(ctx)
	require.True(t, ok)
	require.Len(t, teams, 2)
	assert.Equal(t, "ferrari", teams[0].ID)
	assert.Equal(t, "mclaren", teams[1].ID)
}

func TestCacheStore_OverwriteNeverMerges(t *testing.T) {
	_, _, store := setupTestStore(t)
	ctx := context.Background()

	store.Write(ctx, sampleTeams("Ferrari", "McLaren"))
	store.Write(ctx, sampleTeams("Williams"))

	teams, ok := store.Read(ctx)
	require.True(t, ok)
	require.Len(t, teams, 1)
	assert.Equal(t, "williams", teams[0].ID)
}

func TestCacheStore_ValidityBoundaryIsStrict(t *testing.T) {
	tests := []struct {
		name      string
		age       time.Duration
		wantValid bool
	}{
		{name: "fresh entry", age: time.Hour, wantValid: true},
		{name: "one millisecond before the boundary", age: SnapshotValidity - time.Millisecond, wantValid: true},
		{name: "exactly at the boundary", age: SnapshotValidity, wantValid: false},
		{name: "past the boundary", age: SnapshotValidity + time.Hour, wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mr, client, store := setupTestStore(t)
			ctx := context.Background()

			writtenAt := time.Now()
			store.now = func() time.Time { return writtenAt }
			store.Write(ctx, sampleTeams("Ferrari"))

			store.now = func() time.Time { return writtenAt.Add(tt.age) }
			teams, ok := store.Read(ctx)

			if tt.wantValid {
				require.True(t, ok)
				assert.Len(t, teams, 1)
			} else {
				assert.False(t, ok)
				assert.Nil(t, teams)

				// Lazy expiry removes both keys of the pair.
				assert.False(t, mr.Exists(client.KeyBuilder.KeyTeamsPayload()))
				assert.False(t, mr.Exists(client.KeyBuilder.KeyTeamsFetchedAt()))
			}
		})
	}
}

func TestCacheStore_PayloadWithoutTimestampIsAbsent(t *testing.T) {
	mr, client, store := setupTestStore(t)
	ctx := context.Background()

	mr.Set(client.KeyBuilder.KeyTeamsPayload(), `[{"id":"ferrari","name":"Ferrari"}]`)

	teams, ok := store.Read(ctx)
	assert.False(t, ok)
	assert.Nil(t, teams)
	assert.False(t, mr.Exists(client.KeyBuilder.KeyTeamsPayload()))
}

func TestCacheStore_CorruptPayloadIsAbsentAndPurged(t *testing.T) {
	mr, client, store := setupTestStore(t)
	ctx := context.Background()

	mr.Set(client.KeyBuilder.KeyTeamsFetchedAt(), strconv.FormatInt(time.Now().UnixMilli(), 10))
	mr.Set(client.KeyBuilder.KeyTeamsPayload(), "{not json")

	teams, ok := store.Read(ctx)
	assert.False(t, ok)
	assert.Nil(t, teams)
	assert.False(t, mr.Exists(client.KeyBuilder.KeyTeamsPayload()))
	assert.False(t, mr.Exists(client.KeyBuilder.KeyTeamsFetchedAt()))
}

func TestCacheStore_CorruptTimestampIsAbsentAndPurged(t *testing.T) {
	mr, client, store := setupTestStore(t)
	ctx := context.Background()

	mr.Set(client.KeyBuilder.KeyTeamsFetchedAt(), "yesterday-ish")
	mr.Set(client.KeyBuilder.KeyTeamsPayload(), `[{"id":"ferrari","name":"Ferrari"}]`)

	_, ok := store.Read(ctx)
	assert.False(t, ok)
	assert.False(t, mr.Exists(client.KeyBuilder.KeyTeamsFetchedAt()))
}

func TestCacheStore_Purge(t *testing.T) {
	mr, client, store := setupTestStore(t)
	ctx := context.Background()

	store.Write(ctx, sampleTeams("Ferrari"))
	require.NoError(t, store.Purge(ctx))

	assert.False(t, mr.Exists(client.KeyBuilder.KeyTeamsPayload()))
	assert.False(t, mr.Exists(client.KeyBuilder.KeyTeamsFetchedAt()))

	_, ok := store.Read(ctx)
	assert.False(t, ok)
}

func TestCacheStore_NilClientIsNoop(t *testing.T) {
	store := NewCacheStore(nil, zap.NewNop())
	ctx := context.Background()

	store.Write(ctx, sampleTeams("Ferrari"))
	teams, ok := store.Read(ctx)
	assert.False(t, ok)
	assert.Nil(t, teams)
	assert.NoError(t, store.Purge(ctx))
}
