// internal/app/system/workers/locationpurge.go
package workers

import (
	"context"
	"sync"
	"time"

	kvstore "github.com/dalemusser/vethub/internal/app/store/kv"
	"github.com/dalemusser/vethub/internal/app/system/timeouts"
	"github.com/dalemusser/vethub/internal/app/system/visitorstate"
	"go.uber.org/zap"
)

// LocationPurge is a background worker that deletes cached visitor
// locations once they are older than visitorstate.LocationTTL.
type LocationPurge struct {
	store    kvstore.Purger
	log      *zap.Logger
	interval time.Duration
	now      func() time.Time
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewLocationPurge creates a purge worker that runs every interval.
func NewLocationPurge(store kvstore.Purger, logger *zap.Logger, interval time.Duration) *LocationPurge {
	return &LocationPurge{
		store:    store,
		log:      logger,
		interval: interval,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background purge loop.
func (w *LocationPurge) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("location purge worker started",
		zap.Duration("interval", w.interval),
		zap.Duration("ttl", visitorstate.LocationTTL))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *LocationPurge) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("location purge worker stopped")
}

func (w *LocationPurge) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.purge()
		}
	}
}

func (w *LocationPurge) purge() int64 {
	ctx, cancel := context.WithTimeout(context.Background(), timeouts.Medium())
	defer cancel()

	cutoff := w.now().Add(-visitorstate.LocationTTL)
	count, err := w.store.DeleteOlderThan(ctx, visitorstate.LocationPrefix, cutoff)
	if err != nil {
		w.log.Error("failed to purge cached locations", zap.Error(err))
		return 0
	}
	if count > 0 {
		w.log.Info("purged stale cached locations", zap.Int64("count", count))
	}
	return count
}
