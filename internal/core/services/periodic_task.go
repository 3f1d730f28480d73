package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// PeriodicTask runs a job once after an initial delay and then on every tick of Interval.
type PeriodicTask struct {
	Name         string
	InitialDelay time.Duration
	Interval     time.Duration
	Run          func(ctx context.Context) error
	Logger       *slog.Logger

	mu   sync.Mutex
	stop context.CancelFunc
	done chan struct{}
}

// Start launches the task in the background. It stops when ctx is done or Stop is called.
func (t *PeriodicTask) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stop != nil {
		return fmt.Errorf("periodic task %s already started", t.Name)
	}
	if t.Interval <= 0 {
		return fmt.Errorf("periodic task %s needs a positive interval, got %s", t.Name, t.Interval)
	}
	if t.Logger == nil {
		t.Logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(ctx)
	t.stop = cancel
	t.done = make(chan struct{})
	go t.loop(ctx, t.done)
	return nil
}

// Stop cancels the task and waits for an in-flight run to return.
func (t *PeriodicTask) Stop() {
	t.mu.Lock()
	stop, done := t.stop, t.done
	t.stop, t.done = nil, nil
	t.mu.Unlock()

	if stop == nil {
		return
	}
	stop()
	<-done
}

func (t *PeriodicTask) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	if t.InitialDelay > 0 {
		timer := time.NewTimer(t.InitialDelay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return
		}
	}
	t.runOnce(ctx)

	ticker := time.NewTicker(t.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			t.runOnce(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (t *PeriodicTask) runOnce(ctx context.Context) {
	start := time.Now()
	if err := t.Run(ctx); err != nil {
		t.Logger.ErrorContext(ctx, "Periodic task failed",
			slog.String("task", t.Name),
			slog.String("error", err.Error()))
		return
	}
	t.Logger.DebugContext(ctx, "Periodic task finished",
		slog.String("task", t.Name),
		slog.Duration("duration", time.Since(start)))
}
