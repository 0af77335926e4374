package services

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitemap-service/internal/core"
)

func writeSeed(t *testing.T, path, content string, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func TestRefresher_SyncsOnlyWhenSeedChanges(t *testing.T) {
	catalog := newTestCatalog(t)
	ctx := context.Background()
	logger := core.NewLoggerWithWriter(&bytes.Buffer{}, slog.LevelInfo)

	path := filepath.Join(t.TempDir(), "catalog.json")
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	writeSeed(t, path, `[{"id": "1", "title": "One"}]`, start)

	_, err := catalog.ImportFile(ctx, path)
	require.NoError(t, err)

	refresher := NewRefresher(catalog, logger, path, time.Hour)
	refresher.Start(ctx)
	defer refresher.Stop()

	changed, err := refresher.Refresh(ctx)
	require.NoError(t, err)
	assert.False(t, changed)

	writeSeed(t, path, `[{"id": "1", "title": "One"}, {"id": "2", "title": "Two"}]`, start.Add(time.Minute))

	changed, err = refresher.Refresh(ctx)
	require.NoError(t, err)
	assert.True(t, changed)

	count, err := catalog.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	changed, err = refresher.Refresh(ctx)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestRefresher_MissingSeed(t *testing.T) {
	catalog := newTestCatalog(t)
	logger := core.NewLoggerWithWriter(&bytes.Buffer{}, slog.LevelInfo)

	refresher := NewRefresher(catalog, logger, filepath.Join(t.TempDir(), "missing.json"), time.Hour)
	_, err := refresher.Refresh(context.Background())
	assert.Error(t, err)
}

func TestRefresher_StopIsIdempotent(t *testing.T) {
	catalog := newTestCatalog(t)
	logger := core.NewLoggerWithWriter(&bytes.Buffer{}, slog.LevelInfo)

	refresher := NewRefresher(catalog, logger, filepath.Join(t.TempDir(), "catalog.json"), time.Millisecond)
	refresher.Start(context.Background())
	refresher.Stop()
	refresher.Stop()
}

func TestRefresher_ConcurrentRefreshSyncsOnce(t *testing.T) {
	catalog := newTestCatalog(t)
	ctx := context.Background()
	logger := core.NewLoggerWithWriter(&bytes.Buffer{}, slog.LevelInfo)

	path := filepath.Join(t.TempDir(), "catalog.json")
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	writeSeed(t, path, `[{"id": "1", "title": "One"}]`, start)

	refresher := NewRefresher(catalog, logger, path, time.Hour)
	refresher.Start(ctx)
	defer refresher.Stop()

	writeSeed(t, path, `[{"id": "1", "title": "One"}, {"id": "2", "title": "Two"}]`, start.Add(time.Minute))

	var synced atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			changed, err := refresher.Refresh(ctx)
			assert.NoError(t, err)
			if changed {
				synced.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), synced.Load())
}

func TestRefresher_LoopPicksUpChanges(t *testing.T) {
	catalog := newTestCatalog(t)
	ctx := context.Background()
	logger := core.NewLoggerWithWriter(&bytes.Buffer{}, slog.LevelInfo)

	path := filepath.Join(t.TempDir(), "catalog.json")
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	writeSeed(t, path, `[{"id": "1", "title": "One"}]`, start)

	refresher := NewRefresher(catalog, logger, path, 5*time.Millisecond)
	refresher.Start(ctx)
	defer refresher.Stop()

	writeSeed(t, path, `[{"id": "1", "title": "One"}, {"id": "2", "title": "Two"}]`, start.Add(time.Minute))

	require.Eventually(t, func() bool {
		count, err := catalog.Count(ctx)
		return err == nil && count == 2
	}, 2*time.Second, 10*time.Millisecond)

	changed, err := refresher.Refresh(ctx)
	require.NoError(t, err)
	assert.False(t, changed)
}
