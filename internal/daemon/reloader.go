package daemon

import (
	"context"
	"log/slog"
)

// Reloader runs config reloads on a single goroutine. Requests from IPC,
// signals and the file watcher queue on one channel, so hotkey
// re-registration never runs concurrently with another reload.
type Reloader struct {
	apply    func() error
	requests chan chan error
	logger   *slog.Logger
}

// NewReloader creates a reloader that calls apply for each request.
func NewReloader(apply func() error, logger *slog.Logger) *Reloader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Reloader{
		apply:    apply,
		requests: make(chan chan error),
		logger:   logger,
	}
}

// Run serves reload requests until ctx is cancelled.
func (r *Reloader) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case done := <-r.requests:
			err := r.apply()
			if err != nil {
				r.logger.Warn("config reload failed", "error", err)
			} else {
				r.logger.Info("config reloaded")
			}
			done <- err
		}
	}
}

// Request queues a reload and waits for its result.
func (r *Reloader) Request(ctx context.Context) error {
	done := make(chan error, 1)
	select {
	case r.requests <- done:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
