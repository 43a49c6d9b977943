package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/popeskul/sms-messaging/internal/models"
)

const conversationColumns = `id, customer_phone, profile_id, last_message_at, unread_count, status, created_at, updated_at`

type conversationRepository struct {
	db *sqlx.DB
}

func NewConversationRepository(db *sqlx.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

// Upsert creates the conversation for a phone or touches the existing one in a
// single statement. An archived conversation becomes active again. The unread
// counter is left alone; see IncrementUnread.
func (r *conversationRepository) Upsert(ctx context.Context, upsert models.ConversationUpsert) (*models.Conversation, error) {
	query := `
		INSERT INTO sms_conversations (customer_phone, profile_id, last_message_at, unread_count, status)
		VALUES ($1, $2, $3, 0, 'active')
		ON CONFLICT (customer_phone) DO UPDATE SET
			profile_id = COALESCE(EXCLUDED.profile_id, sms_conversations.profile_id),
			last_message_at = GREATEST(sms_conversations.last_message_at, EXCLUDED.last_message_at),
			status = 'active',
			updated_at = NOW()
		RETURNING ` + conversationColumns

	var profileID sql.NullString
	if upsert.ProfileID != nil {
		profileID = sql.NullString{String: *upsert.ProfileID, Valid: true}
	}

	var conv models.Conversation
	if err := r.db.GetContext(ctx, &conv, query, upsert.Phone, profileID, upsert.At); err != nil {
		return nil, fmt.Errorf("failed to upsert conversation: %w", err)
	}

	return &conv, nil
}

func (r *conversationRepository) GetByID(ctx context.Context, id int64) (*models.Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM sms_conversations WHERE id = $1`

	var conv models.Conversation
	if err := r.db.GetContext(ctx, &conv, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}

	return &conv, nil
}

// List returns conversations most recent first. An empty status lists all of them.
func (r *conversationRepository) List(ctx context.Context, status models.ConversationStatus) ([]*models.Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM sms_conversations`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY last_message_at DESC`

	var convs []*models.Conversation
	if err := r.db.SelectContext(ctx, &convs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}

	return convs, nil
}

func (r *conversationRepository) IncrementUnread(ctx context.Context, id int64) error {
	return r.update(ctx, `UPDATE sms_conversations SET unread_count = unread_count + 1, updated_at = NOW() WHERE id = $1`, id)
}

func (r *conversationRepository) MarkRead(ctx context.Context, id int64) error {
	return r.update(ctx, `UPDATE sms_conversations SET unread_count = 0, updated_at = NOW() WHERE id = $1`, id)
}

func (r *conversationRepository) SetStatus(ctx context.Context, id int64, status models.ConversationStatus) error {
	return r.update(ctx, `UPDATE sms_conversations SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
}

func (r *conversationRepository) update(ctx context.Context, query string, args ...interface{}) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update conversation: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
