package service

import (
	"context"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/popeskul/sms-messaging/internal/carrier"
	"github.com/popeskul/sms-messaging/internal/config"
	"github.com/popeskul/sms-messaging/internal/realtime"
	"github.com/popeskul/sms-messaging/internal/repository"
)

type Service struct {
	Access        AccessService
	Consent       ConsentService
	Authorization AuthorizationService
	Conversation  ConversationService
	Webhook       WebhookService
	Batch         BatchService
	Audit         AuditService
	Reconcile     ReconcileService
	Scheduler     SchedulerService
	Health        HealthService
}

func NewService(
	cfg *config.Config,
	repo repository.Repository,
	redisClient *redis.Client,
	gateway carrier.Gateway,
	publisher realtime.Publisher,
	logger *zap.Logger,
) *Service {
	if publisher == nil {
		publisher = realtime.NopPublisher{}
	}

	consentService := NewConsentService(repo, publisher, logger)
	reconcileService := NewReconcileService(&cfg.Reconciler, repo, gateway, publisher, logger)
	schedulerService := NewSchedulerService(&cfg.Reconciler, reconcileService, logger)

	return &Service{
		Access:        NewAccessService(repo),
		Consent:       consentService,
		Authorization: NewAuthorizationService(repo, publisher, logger),
		Conversation:  NewConversationService(&cfg.Carrier, repo, consentService, gateway, publisher, logger),
		Webhook:       NewWebhookService(&cfg.Webhook, repo, consentService, redisClient, publisher, logger),
		Batch:         NewBatchService(&cfg.Batch, repo, gateway, publisher, logger),
		Audit:         NewAuditService(repo, consentService, logger),
		Reconcile:     reconcileService,
		Scheduler:     schedulerService,
		Health:        NewHealthService(repo, redisClient, schedulerService, gateway),
	}
}

type accessService struct {
	repo repository.Repository
}

func NewAccessService(repo repository.Repository) AccessService {
	return &accessService{repo: repo}
}

func (s *accessService) RequireAdmin(ctx context.Context, actorID string) error {
	return requireAdmin(ctx, s.repo, actorID)
}
