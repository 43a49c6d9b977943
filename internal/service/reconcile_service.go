package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/popeskul/sms-messaging/internal/carrier"
	"github.com/popeskul/sms-messaging/internal/config"
	"github.com/popeskul/sms-messaging/internal/models"
	"github.com/popeskul/sms-messaging/internal/realtime"
	"github.com/popeskul/sms-messaging/internal/repository"
)

type reconcileService struct {
	cfg       *config.ReconcilerConfig
	repo      repository.Repository
	gateway   carrier.Gateway
	publisher realtime.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewReconcileService(
	cfg *config.ReconcilerConfig,
	repo repository.Repository,
	gateway carrier.Gateway,
	publisher realtime.Publisher,
	logger *zap.Logger,
) ReconcileService {
	return &reconcileService{
		cfg:       cfg,
		repo:      repo,
		gateway:   gateway,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// ReconcilePending polls the carrier for recent outbound rows whose status
// callback has not arrived yet.
func (s *reconcileService) ReconcilePending(ctx context.Context) error {
	since := s.now().Add(-s.cfg.MaxAge())

	pending, err := s.repo.Message().ListPending(ctx, since, s.cfg.BatchSize)
	if err != nil {
		return fmt.Errorf("failed to list pending messages: %w", err)
	}
	if remaining := s.cfg.BatchSize - len(pending); remaining > 0 {
		campaigns, err := s.repo.Campaign().ListPending(ctx, since, remaining)
		if err != nil {
			return fmt.Errorf("failed to list pending campaign sends: %w", err)
		}
		pending = append(pending, campaigns...)
	}

	if len(pending) == 0 {
		s.logger.Debug("No pending delivery statuses")
		return nil
	}

	s.logger.Info("Reconciling delivery statuses", zap.Int("count", len(pending)))

	var updated int
	for _, p := range pending {
		if err := ctx.Err(); err != nil {
			return err
		}

		res, err := s.gateway.Fetch(ctx, p.CarrierSID)
		if err != nil {
			if errors.Is(err, carrier.ErrCircuitOpen) {
				return fmt.Errorf("failed to fetch status: %w", err)
			}
			s.logger.Warn("Failed to fetch message status",
				zap.String("carrierSID", p.CarrierSID),
				zap.Error(err))
			continue
		}

		status := statusFromCarrier(res.Status)
		if status == p.Status {
			continue
		}

		update := models.StatusUpdate{
			CarrierSID:   p.CarrierSID,
			Status:       status,
			ErrorCode:    res.ErrorCode,
			ErrorMessage: res.ErrorMessage,
		}
		if err := applyStatus(ctx, s.repo, s.publisher, s.logger, update); err != nil {
			return err
		}
		updated++
	}

	s.logger.Info("Delivery status reconciliation finished",
		zap.Int("checked", len(pending)),
		zap.Int("updated", updated))

	return nil
}
