package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Task is one run of a periodic job.
type Task func(ctx context.Context) error

// Scheduler runs a Task immediately on Start and then once per interval.
// Runs never overlap: a run that outlasts the interval delays the next tick.
type Scheduler struct {
	logger   *zap.Logger
	interval time.Duration
	task     Task

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewScheduler(logger *zap.Logger, interval time.Duration, task Task) *Scheduler {
	return &Scheduler{
		logger:   logger,
		interval: interval,
		task:     task,
	}
}

// Start launches the loop. It stops when Stop is called or ctx is done.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrSchedulerAlreadyRunning
	}

	loopCtx, cancel := context.WithCancel(ctx)
	s.running = true
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.loop(loopCtx, s.done)

	s.logger.Info("Scheduler started", zap.Duration("interval", s.interval))
	return nil
}

// Stop cancels the loop and waits for an in-flight run to return.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return ErrSchedulerNotRunning
	}
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	cancel()
	<-done

	s.logger.Info("Scheduler stopped")
	return nil
}

func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Scheduler) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer func() {
		s.mu.Lock()
		s.running = false
		s.cancel()
		s.mu.Unlock()
	}()

	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler loop exiting", zap.Error(ctx.Err()))
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.runTimeout())
	defer cancel()

	start := time.Now()
	if err := s.task(runCtx); err != nil {
		s.logger.Error("Scheduled task failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return
	}
	s.logger.Debug("Scheduled task completed", zap.Duration("duration", time.Since(start)))
}

// runTimeout leaves a tenth of the interval between the end of a run and the
// next tick.
func (s *Scheduler) runTimeout() time.Duration {
	return s.interval - s.interval/10
}
