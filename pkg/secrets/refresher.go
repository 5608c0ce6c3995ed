package secrets

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Refresher periodically reloads secrets on a cron schedule.
//
// An empty schedule disables periodic refresh entirely; Start becomes a
// no-op so callers do not need to special-case the disabled state.
type Refresher struct {
	manager  *Manager
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
}

// NewRefresher creates a refresher that reloads the manager's providers
// on the given cron schedule.
func NewRefresher(manager *Manager, schedule string) *Refresher {
	return &Refresher{
		manager:  manager,
		schedule: schedule,
		cron:     cron.New(),
		logger:   slog.Default().With("component", "secrets-refresher"),
	}
}

// Start validates the schedule and begins periodic refreshes. The
// refresher stops automatically when the context is cancelled.
func (r *Refresher) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return fmt.Errorf("refresher already running")
	}

	if r.schedule == "" {
		r.logger.Debug("secrets refresh schedule not configured, periodic refresh disabled")
		return nil
	}

	if _, err := cron.ParseStandard(r.schedule); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", r.schedule, err)
	}

	_, err := r.cron.AddFunc(r.schedule, func() {
		refreshCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := r.manager.Refresh(refreshCtx); err != nil {
			r.logger.Error("scheduled secrets refresh failed", "error", err)
			return
		}
		r.logger.Info("scheduled secrets refresh completed")
	})
	if err != nil {
		return fmt.Errorf("failed to schedule secrets refresh: %w", err)
	}

	r.cron.Start()
	r.running = true
	r.logger.Info("secrets refresher started", "schedule", r.schedule)

	go func() {
		<-ctx.Done()
		r.Stop()
	}()

	return nil
}

// Stop halts the refresher and waits for any in-flight refresh to finish.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return
	}

	<-r.cron.Stop().Done()
	r.running = false
	r.logger.Info("secrets refresher stopped")
}

// IsRunning reports whether the refresher is currently active.
func (r *Refresher) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// NextRun returns the time of the next scheduled refresh, or the zero
// time when the refresher is not running.
func (r *Refresher) NextRun() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return time.Time{}
	}

	entries := r.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}
