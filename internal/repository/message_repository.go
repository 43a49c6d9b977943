package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/popeskul/sms-messaging/internal/models"
)

const messageColumns = `id, conversation_id, direction, from_number, to_number, body, status, carrier_sid,
	error_code, error_message, sent_by, sent_at, created_at, updated_at`

var messageAuditColumns = auditColumns{
	phone:     "c.customer_phone",
	body:      "m.body",
	status:    "m.status",
	direction: "m.direction",
	ts:        "m.sent_at",
}

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create inserts a message. A carrier SID that is already stored is ignored
// and reported as false, which makes carrier redeliveries harmless.
func (r *messageRepository) Create(ctx context.Context, msg *models.Message) (bool, error) {
	query := `
		INSERT INTO sms_messages
			(conversation_id, direction, from_number, to_number, body, status, carrier_sid,
			 error_code, error_message, sent_by, sent_at)
		VALUES
			(:conversation_id, :direction, :from_number, :to_number, :body, :status, :carrier_sid,
			 :error_code, :error_message, :sent_by, :sent_at)
		ON CONFLICT (carrier_sid) DO NOTHING
		RETURNING id, created_at, updated_at
	`

	rows, err := r.db.NamedQueryContext(ctx, query, msg)
	if err != nil {
		return false, fmt.Errorf("failed to create message: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return false, rows.Err()
	}
	if err := rows.Scan(&msg.ID, &msg.CreatedAt, &msg.UpdatedAt); err != nil {
		return false, fmt.Errorf("failed to scan message: %w", err)
	}

	return true, nil
}

func (r *messageRepository) ListByConversation(ctx context.Context, conversationID int64) ([]*models.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM sms_messages WHERE conversation_id = $1 ORDER BY sent_at ASC, id ASC`

	var messages []*models.Message
	if err := r.db.SelectContext(ctx, &messages, query, conversationID); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	return messages, nil
}

// UpdateStatus applies a delivery report unless the stored status is already terminal.
func (r *messageRepository) UpdateStatus(ctx context.Context, update models.StatusUpdate) (int64, error) {
	query := `
		UPDATE sms_messages
		SET status = $2,
		    error_code = COALESCE(NULLIF($3, ''), error_code),
		    error_message = COALESCE(NULLIF($4, ''), error_message),
		    updated_at = NOW()
		WHERE carrier_sid = $1 AND status <> ALL($5)
	`

	res, err := r.db.ExecContext(ctx, query, update.CarrierSID, update.Status, update.ErrorCode, update.ErrorMessage, terminalStatuses())
	if err != nil {
		return 0, fmt.Errorf("failed to update message status: %w", err)
	}

	return res.RowsAffected()
}

func (r *messageRepository) ListPending(ctx context.Context, since time.Time, limit int) ([]models.PendingStatus, error) {
	query := `
		SELECT carrier_sid, status
		FROM sms_messages
		WHERE direction = 'outbound'
		  AND carrier_sid IS NOT NULL
		  AND status <> ALL($1)
		  AND sent_at >= $2
		ORDER BY sent_at ASC
		LIMIT $3
	`

	var pending []models.PendingStatus
	if err := r.db.SelectContext(ctx, &pending, query, terminalStatuses(), since, limit); err != nil {
		return nil, fmt.Errorf("failed to list pending messages: %w", err)
	}

	return pending, nil
}

func (r *messageRepository) ListAudit(ctx context.Context, filter models.AuditFilter) ([]models.AuditRow, error) {
	w := buildAuditWhere(filter, messageAuditColumns)
	limit := w.next()
	w.args = append(w.args, filter.Limit)
	offset := w.next()
	w.args = append(w.args, filter.Offset)

	query := `
		SELECT m.id, m.direction, c.customer_phone AS phone, m.body, m.status,
		       COALESCE(m.sent_by, '') AS sent_by,
		       COALESCE(m.carrier_sid, '') AS carrier_sid,
		       COALESCE(m.error_code, '') AS error_code,
		       COALESCE(m.error_message, '') AS error_message,
		       '' AS batch_id,
		       COALESCE(p.first_name, '') AS first_name,
		       COALESCE(p.last_name, '') AS last_name,
		       COALESCE(p.email, '') AS email,
		       m.sent_at AS ts
		FROM sms_messages m
		JOIN sms_conversations c ON c.id = m.conversation_id
		LEFT JOIN profiles p ON p.id = c.profile_id` + w.sql() + `
		ORDER BY m.sent_at DESC, m.id DESC
		LIMIT ` + limit + ` OFFSET ` + offset

	var rows []models.AuditRow
	if err := r.db.SelectContext(ctx, &rows, query, w.args...); err != nil {
		return nil, fmt.Errorf("failed to list message audit rows: %w", err)
	}

	return rows, nil
}

func (r *messageRepository) CountAudit(ctx context.Context, filter models.AuditFilter) (int64, error) {
	w := buildAuditWhere(filter, messageAuditColumns)
	query := `
		SELECT COUNT(*)
		FROM sms_messages m
		JOIN sms_conversations c ON c.id = m.conversation_id` + w.sql()

	var count int64
	if err := r.db.GetContext(ctx, &count, query, w.args...); err != nil {
		return 0, fmt.Errorf("failed to count message audit rows: %w", err)
	}

	return count, nil
}

// DeliveryCounts aggregates outbound conversation messages.
func (r *messageRepository) DeliveryCounts(ctx context.Context, from, to *time.Time) (models.DeliveryCounts, error) {
	w := buildRangeWhere(from, to, "sent_at", "direction = 'outbound'")
	query := `
		SELECT COUNT(*) AS sent,
		       COUNT(*) FILTER (WHERE status = 'delivered') AS delivered,
		       COUNT(*) FILTER (WHERE status IN ('failed', 'undelivered')) AS failed,
		       0 AS skipped
		FROM sms_messages` + w.sql()

	var counts models.DeliveryCounts
	if err := r.db.GetContext(ctx, &counts, query, w.args...); err != nil {
		return models.DeliveryCounts{}, fmt.Errorf("failed to count message deliveries: %w", err)
	}

	return counts, nil
}
