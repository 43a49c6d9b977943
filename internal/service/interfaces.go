package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

import (
	"context"
	"time"

	"github.com/popeskul/sms-messaging/internal/models"
)

type ConsentService interface {
	IsEligible(ctx context.Context, phone string) (bool, error)
	RecordOptOut(ctx context.Context, phone string, method models.OptOutMethod, note string) error
	RecordOptIn(ctx context.Context, phone string, method string) error
	SetProfileConsent(ctx context.Context, userID string, consent bool) (*models.Profile, error)
	ListOptOuts(ctx context.Context) ([]*models.OptOutEntry, error)
}

type AuthorizationService interface {
	Authorize(ctx context.Context, actorID, phone, notes string) (*models.AuthorizedNumber, error)
	Revoke(ctx context.Context, actorID, id string) error
	List(ctx context.Context, actorID string, includeInactive bool) ([]*models.AuthorizedNumber, error)
}

type ConversationService interface {
	List(ctx context.Context, actorID string, status models.ConversationStatus) ([]*models.Conversation, error)
	GetThread(ctx context.Context, actorID string, conversationID int64) (*Thread, error)
	Archive(ctx context.Context, actorID string, conversationID int64) error
	Reply(ctx context.Context, actorID string, conversationID int64, body string) (*models.Message, error)
	SendDirect(ctx context.Context, actorID, phone, body string) (*models.Message, error)
}

type WebhookService interface {
	// HandleInbound returns the reply text for the XML acknowledgement; "" acks silently.
	HandleInbound(ctx context.Context, msg InboundMessage) (string, error)
	HandleStatus(ctx context.Context, update models.StatusUpdate) error
}

type BatchService interface {
	SendBatch(ctx context.Context, actorID string, req BatchRequest) (*BatchResult, error)
}

type AuditService interface {
	ListRecords(ctx context.Context, actorID string, query AuditQuery) (*AuditPage, error)
	Stats(ctx context.Context, actorID string, from, to *time.Time) (*AuditStats, error)
	OptOutHistory(ctx context.Context, actorID string) ([]*models.OptOutEntry, error)
}

type ReconcileService interface {
	ReconcilePending(ctx context.Context) error
}

type AccessService interface {
	RequireAdmin(ctx context.Context, actorID string) error
}

type SchedulerService interface {
	Start() error
	Stop() error
	IsRunning() bool
}

type HealthService interface {
	GetHealth() *HealthStatus
}
