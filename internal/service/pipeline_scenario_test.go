package service_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"f1grid/internal/service"
	"f1grid/internal/service/ergast"
	"f1grid/internal/service/fallback"
	"f1grid/pkg/logger"
	"f1grid/pkg/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Wires the real pipeline stages together: miniredis-backed cache store,
// httptest-backed remote source, and an on-disk fallback document.

func newCacheStore(t *testing.T) *service.CacheStore {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := redis.NewClient("redis://"+mr.Addr(), "test", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return service.NewCacheStore(client, zap.NewNop())
}

func writeFallbackDoc(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "teams.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestPipeline_RemoteFetchPopulatesCache(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write([]byte(`{"MRData": {"TeamTable": {"Teams": [
			{"name": "Red Bull", "nationality": "Austrian"},
			{"name": "Ferrari", "nationality": "Italian"}
		]}}}`))
	}))
	defer server.Close()

	cache := newCacheStore(t)
	remote := ergast.NewService(server.URL, 5*time.Second, logger.NewNop())
	fb := fallback.NewService(filepath.Join(t.TempDir(), "missing.json"), logger.NewNop())
	svc := service.NewTeamService(cache, remote, fb, logger.NewNop())

	ctx := context.Background()
	teams := svc.FetchTeamsData(ctx)

	require.Len(t, teams, 2)
	for _, team := range teams {
		assert.Equal(t, 0, team.Championships)
		assert.Equal(t, 0, team.Wins)
		assert.Equal(t, 0, team.Podiums)
		assert.Empty(t, team.Drivers)
	}
	assert.Equal(t, int64(1), requests.Load())

	// The snapshot was written back: a second call is served from cache
	// without touching the upstream again.
	cached, ok := cache.Read(ctx)
	require.True(t, ok)
	assert.Equal(t, teams, cached)

	again := svc.FetchTeamsData(ctx)
	assert.Equal(t, teams, again)
	assert.Equal(t, int64(1), requests.Load())
}

func TestPipeline_SlowRemoteFallsBackAtDeadline(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	doc := writeFallbackDoc(t, `{"teams": [{"name": "Williams"}]}`)

	cache := newCacheStore(t)
	remote := ergast.NewService(server.URL, 100*time.Millisecond, logger.NewNop())
	fb := fallback.NewService(doc, logger.NewNop())
	svc := service.NewTeamService(cache, remote, fb, logger.NewNop())

	ctx := context.Background()
	start := time.Now()
	teams := svc.FetchTeamsData(ctx)
	elapsed := time.Since(start)

	require.Len(t, teams, 1)
	assert.Equal(t, "williams", teams[0].ID)

	// The pipeline moves on when the deadline fires instead of waiting for
	// the stalled upstream.
	assert.Less(t, elapsed, 2*time.Second)

	// Fallback results are cached too.
	cached, ok := cache.Read(ctx)
	require.True(t, ok)
	assert.Equal(t, teams, cached)
}

func TestPipeline_TotalFailureServesEmptyList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cache := newCacheStore(t)
	remote := ergast.NewService(server.URL, time.Second, logger.NewNop())
	fb := fallback.NewService(filepath.Join(t.TempDir(), "missing.json"), logger.NewNop())
	svc := service.NewTeamService(cache, remote, fb, logger.NewNop())

	teams := svc.FetchTeamsData(context.Background())

	require.NotNil(t, teams)
	assert.Empty(t, teams)

	_, ok := cache.Read(context.Background())
	assert.False(t, ok)
}
