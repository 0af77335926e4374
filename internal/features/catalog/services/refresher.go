package services

import (
	"context"
	"os"
	"sync"
	"time"

	"sitemap-service/internal/core"
)

// Refresher periodically syncs the catalog with its seed file.
// A sync only happens when the file's modification time changed since the last one.
type Refresher struct {
	catalog  *CatalogService
	logger   *core.Logger
	path     string
	interval time.Duration

	// mu serializes refreshes and guards lastMod
	mu      sync.Mutex
	lastMod time.Time

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewRefresher creates a refresher for the seed file at path
func NewRefresher(catalog *CatalogService, logger *core.Logger, path string, interval time.Duration) *Refresher {
	return &Refresher{
		catalog:  catalog,
		logger:   logger,
		path:     path,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start begins the refresh loop
func (r *Refresher) Start(ctx context.Context) {
	r.logger.Info("Starting catalog refresher", "path", r.path, "interval", r.interval)

	if info, err := os.Stat(r.path); err == nil {
		r.mu.Lock()
		r.lastMod = info.ModTime()
		r.mu.Unlock()
	}

	r.wg.Add(1)
	go r.loop(ctx)
}

// Stop stops the loop and waits for an in-flight sync to finish
func (r *Refresher) Stop() {
	r.stopOnce.Do(func() {
		r.logger.Info("Stopping catalog refresher")
		close(r.stopChan)
	})
	r.wg.Wait()
}

func (r *Refresher) loop(ctx context.Context) {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopChan:
			return
		case <-ticker.C:
			if _, err := r.Refresh(ctx); err != nil {
				r.logger.Error("Failed to refresh catalog", "path", r.path, "error", err)
			}
		}
	}
}

// Refresh syncs the catalog if the seed file changed and reports whether it did
func (r *Refresher) Refresh(ctx context.Context) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	info, err := os.Stat(r.path)
	if err != nil {
		return false, core.NewConfigurationError("failed to stat catalog seed", err)
	}

	if !info.ModTime().After(r.lastMod) {
		r.logger.Debug("Catalog seed unchanged", "path", r.path)
		return false, nil
	}

	if _, err := r.catalog.SyncFile(ctx, r.path); err != nil {
		return false, err
	}

	r.lastMod = info.ModTime()
	return true, nil
}
