package repository

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

import (
	"context"
	"time"

	"github.com/popeskul/sms-messaging/internal/models"
)

// Repository interface defines all repository operations.
type Repository interface {
	// Ping checks database connectivity
	Ping() error

	Profile() ProfileRepository
	OptOut() OptOutRepository
	AuthorizedNumber() AuthorizedNumberRepository
	Conversation() ConversationRepository
	Message() MessageRepository
	Campaign() CampaignRepository
}

// ProfileRepository reads the customer directory and owns the consent columns.
type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	GetByPhone(ctx context.Context, phone string) (*models.Profile, error)
	GetByIDs(ctx context.Context, ids []string) ([]*models.Profile, error)
	GetRole(ctx context.Context, id string) (models.Role, error)
	// SetConsentByPhone updates every profile carrying phone and returns how many matched.
	SetConsentByPhone(ctx context.Context, phone string, consent bool, method string, at time.Time) (int64, error)
	SetConsentByID(ctx context.Context, id string, consent bool, method string, at time.Time) error
}

// OptOutRepository is the opt-out ledger.
type OptOutRepository interface {
	// Insert adds the entry unless the phone is already present; it reports whether a row was written.
	Insert(ctx context.Context, entry *models.OptOut) (bool, error)
	// DeleteByPhone removes the entry if present; it reports whether a row was removed.
	DeleteByPhone(ctx context.Context, phone string) (bool, error)
	Exists(ctx context.Context, phone string) (bool, error)
	ListPhones(ctx context.Context) ([]string, error)
	List(ctx context.Context) ([]*models.OptOutEntry, error)
	Count(ctx context.Context) (int64, error)
}

// AuthorizedNumberRepository stores the 1:1 messaging allow-list.
type AuthorizedNumberRepository interface {
	Create(ctx context.Context, number *models.AuthorizedNumber) error
	Deactivate(ctx context.Context, id, deactivatedBy string, at time.Time) error
	GetActiveByPhone(ctx context.Context, phone string) (*models.AuthorizedNumber, error)
	List(ctx context.Context, includeInactive bool) ([]*models.AuthorizedNumber, error)
}

// ConversationRepository stores one thread per customer phone.
type ConversationRepository interface {
	Upsert(ctx context.Context, upsert models.ConversationUpsert) (*models.Conversation, error)
	GetByID(ctx context.Context, id int64) (*models.Conversation, error)
	List(ctx context.Context, status models.ConversationStatus) ([]*models.Conversation, error)
	// IncrementUnread bumps the stored unread counter by one.
	IncrementUnread(ctx context.Context, id int64) error
	MarkRead(ctx context.Context, id int64) error
	SetStatus(ctx context.Context, id int64, status models.ConversationStatus) error
}

// MessageRepository stores individual conversation messages.
type MessageRepository interface {
	// Create inserts msg and reports false when its carrier SID is already stored.
	Create(ctx context.Context, msg *models.Message) (bool, error)
	ListByConversation(ctx context.Context, conversationID int64) ([]*models.Message, error)
	UpdateStatus(ctx context.Context, update models.StatusUpdate) (int64, error)
	ListPending(ctx context.Context, since time.Time, limit int) ([]models.PendingStatus, error)
	ListAudit(ctx context.Context, filter models.AuditFilter) ([]models.AuditRow, error)
	CountAudit(ctx context.Context, filter models.AuditFilter) (int64, error)
	DeliveryCounts(ctx context.Context, from, to *time.Time) (models.DeliveryCounts, error)
}

// CampaignRepository is the append-only batch campaign audit table.
type CampaignRepository interface {
	Create(ctx context.Context, send *models.CampaignSend) error
	ListByBatch(ctx context.Context, batchID string) ([]*models.CampaignSend, error)
	UpdateStatus(ctx context.Context, update models.StatusUpdate) (int64, error)
	ListPending(ctx context.Context, since time.Time, limit int) ([]models.PendingStatus, error)
	ListAudit(ctx context.Context, filter models.AuditFilter) ([]models.AuditRow, error)
	CountAudit(ctx context.Context, filter models.AuditFilter) (int64, error)
	DeliveryCounts(ctx context.Context, from, to *time.Time) (models.DeliveryCounts, error)
}
