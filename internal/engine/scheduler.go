package engine

import (
	"context"
	"log/slog"
	"time"
)

// Task is a cancellable deferred or periodic job.
type Task interface {
	// Stop prevents future runs. It does not wait for a run in progress.
	Stop()
}

// Scheduler runs deferred and periodic work for the engine.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Task
	Every(d time.Duration, fn func()) Task
}

// ClockScheduler runs tasks on the wall clock.
type ClockScheduler struct {
	logger *slog.Logger
}

var _ Scheduler = (*ClockScheduler)(nil)

// NewClockScheduler creates a scheduler backed by time.AfterFunc and tickers.
func NewClockScheduler(logger *slog.Logger) *ClockScheduler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ClockScheduler{logger: logger}
}

type timerTask struct {
	timer *time.Timer
}

func (t timerTask) Stop() { t.timer.Stop() }

// AfterFunc runs fn once after d.
func (s *ClockScheduler) AfterFunc(d time.Duration, fn func()) Task {
	return timerTask{timer: time.AfterFunc(d, func() { s.safeRun("deferred", fn) })}
}

type cancelTask struct {
	cancel context.CancelFunc
}

func (t cancelTask) Stop() { t.cancel() }

// Every runs fn every d until the task is stopped.
func (s *ClockScheduler) Every(d time.Duration, fn func()) Task {
	ctx, cancel := context.WithCancel(context.Background())
	go s.loop(ctx, d, fn)
	return cancelTask{cancel: cancel}
}

func (s *ClockScheduler) loop(ctx context.Context, interval time.Duration, fn func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Debug("periodic task started", "interval", interval)

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("periodic task stopped")
			return
		case <-ticker.C:
			s.safeRun("periodic", fn)
		}
	}
}

// safeRun keeps a panicking task from taking down the daemon.
func (s *ClockScheduler) safeRun(kind string, fn func()) {
	defer func() {
		if err := recover(); err != nil {
			s.logger.Error("scheduled task panic recovered", "kind", kind, "error", err)
		}
	}()
	fn()
}
