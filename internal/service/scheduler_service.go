package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/popeskul/sms-messaging/internal/config"
	"github.com/popeskul/sms-messaging/internal/scheduler"
)

type schedulerService struct {
	scheduler  *scheduler.Scheduler
	reconciler ReconcileService
	logger     *zap.Logger
}

// NewSchedulerService runs status reconciliation on the configured interval.
func NewSchedulerService(
	cfg *config.ReconcilerConfig,
	reconciler ReconcileService,
	logger *zap.Logger,
) SchedulerService {
	svc := &schedulerService{
		reconciler: reconciler,
		logger:     logger,
	}

	svc.scheduler = scheduler.NewScheduler(logger, cfg.Interval(), svc.executeReconcileTask)
	return svc
}

func (s *schedulerService) Start() error {
	return s.scheduler.Start(context.Background())
}

func (s *schedulerService) Stop() error {
	return s.scheduler.Stop()
}

func (s *schedulerService) IsRunning() bool {
	return s.scheduler.IsRunning()
}

func (s *schedulerService) executeReconcileTask(ctx context.Context) error {
	return s.reconciler.ReconcilePending(ctx)
}
