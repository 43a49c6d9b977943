package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/popeskul/sms-messaging/internal/models"
)

const campaignColumns = `id, batch_id, user_id, phone, message_body, template, status, carrier_sid,
	error_code, error_message, sent_by, created_at, updated_at`

var campaignAuditColumns = auditColumns{
	phone:  "COALESCE(s.phone, '')",
	body:   "s.message_body",
	status: "s.status",
	ts:     "s.created_at",
}

type campaignRepository struct {
	db *sqlx.DB
}

func NewCampaignRepository(db *sqlx.DB) CampaignRepository {
	return &campaignRepository{db: db}
}

// Create appends one recipient outcome of a batch.
func (r *campaignRepository) Create(ctx context.Context, send *models.CampaignSend) error {
	query := `
		INSERT INTO sms_campaign_sends
			(batch_id, user_id, phone, message_body, template, status, carrier_sid,
			 error_code, error_message, sent_by)
		VALUES
			(:batch_id, :user_id, :phone, :message_body, :template, :status, :carrier_sid,
			 :error_code, :error_message, :sent_by)
		RETURNING id, created_at, updated_at
	`

	rows, err := r.db.NamedQueryContext(ctx, query, send)
	if err != nil {
		return fmt.Errorf("failed to create campaign send: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed to create campaign send: %w", err)
		}
		return fmt.Errorf("failed to create campaign send: no row returned")
	}

	return rows.Scan(&send.ID, &send.CreatedAt, &send.UpdatedAt)
}

func (r *campaignRepository) ListByBatch(ctx context.Context, batchID string) ([]*models.CampaignSend, error) {
	query := `SELECT ` + campaignColumns + ` FROM sms_campaign_sends WHERE batch_id = $1 ORDER BY id ASC`

	var sends []*models.CampaignSend
	if err := r.db.SelectContext(ctx, &sends, query, batchID); err != nil {
		return nil, fmt.Errorf("failed to list campaign sends: %w", err)
	}

	return sends, nil
}

// UpdateStatus applies a delivery report unless the stored status is already terminal.
func (r *campaignRepository) UpdateStatus(ctx context.Context, update models.StatusUpdate) (int64, error) {
	query := `
		UPDATE sms_campaign_sends
		SET status = $2,
		    error_code = COALESCE(NULLIF($3, ''), error_code),
		    error_message = COALESCE(NULLIF($4, ''), error_message),
		    updated_at = NOW()
		WHERE carrier_sid = $1 AND status <> ALL($5)
	`

	res, err := r.db.ExecContext(ctx, query, update.CarrierSID, update.Status, update.ErrorCode, update.ErrorMessage, terminalStatuses())
	if err != nil {
		return 0, fmt.Errorf("failed to update campaign status: %w", err)
	}

	return res.RowsAffected()
}

func (r *campaignRepository) ListPending(ctx context.Context, since time.Time, limit int) ([]models.PendingStatus, error) {
	query := `
		SELECT carrier_sid, status
		FROM sms_campaign_sends
		WHERE carrier_sid IS NOT NULL
		  AND status <> ALL($1)
		  AND created_at >= $2
		ORDER BY created_at ASC
		LIMIT $3
	`

	var pending []models.PendingStatus
	if err := r.db.SelectContext(ctx, &pending, query, terminalStatuses(), since, limit); err != nil {
		return nil, fmt.Errorf("failed to list pending campaign sends: %w", err)
	}

	return pending, nil
}

func (r *campaignRepository) ListAudit(ctx context.Context, filter models.AuditFilter) ([]models.AuditRow, error) {
	w := buildAuditWhere(filter, campaignAuditColumns)
	limit := w.next()
	w.args = append(w.args, filter.Limit)
	offset := w.next()
	w.args = append(w.args, filter.Offset)

	query := `
		SELECT s.id, 'outbound' AS direction, COALESCE(s.phone, '') AS phone,
		       s.message_body AS body, s.status, s.sent_by,
		       COALESCE(s.carrier_sid, '') AS carrier_sid,
		       COALESCE(s.error_code, '') AS error_code,
		       COALESCE(s.error_message, '') AS error_message,
		       s.batch_id::text AS batch_id,
		       COALESCE(p.first_name, '') AS first_name,
		       COALESCE(p.last_name, '') AS last_name,
		       COALESCE(p.email, '') AS email,
		       s.created_at AS ts
		FROM sms_campaign_sends s
		LEFT JOIN profiles p ON p.id = s.user_id` + w.sql() + `
		ORDER BY s.created_at DESC, s.id DESC
		LIMIT ` + limit + ` OFFSET ` + offset

	var rows []models.AuditRow
	if err := r.db.SelectContext(ctx, &rows, query, w.args...); err != nil {
		return nil, fmt.Errorf("failed to list campaign audit rows: %w", err)
	}

	return rows, nil
}

func (r *campaignRepository) CountAudit(ctx context.Context, filter models.AuditFilter) (int64, error) {
	w := buildAuditWhere(filter, campaignAuditColumns)
	query := `SELECT COUNT(*) FROM sms_campaign_sends s` + w.sql()

	var count int64
	if err := r.db.GetContext(ctx, &count, query, w.args...); err != nil {
		return 0, fmt.Errorf("failed to count campaign audit rows: %w", err)
	}

	return count, nil
}

// DeliveryCounts aggregates campaign outcomes. Skipped rows never reach the
// carrier and are excluded from the sent total.
func (r *campaignRepository) DeliveryCounts(ctx context.Context, from, to *time.Time) (models.DeliveryCounts, error) {
	w := buildRangeWhere(from, to, "created_at")
	query := `
		SELECT COUNT(*) FILTER (WHERE status <> 'skipped') AS sent,
		       COUNT(*) FILTER (WHERE status = 'delivered') AS delivered,
		       COUNT(*) FILTER (WHERE status IN ('failed', 'undelivered')) AS failed,
		       COUNT(*) FILTER (WHERE status = 'skipped') AS skipped
		FROM sms_campaign_sends` + w.sql()

	var counts models.DeliveryCounts
	if err := r.db.GetContext(ctx, &counts, query, w.args...); err != nil {
		return models.DeliveryCounts{}, fmt.Errorf("failed to count campaign deliveries: %w", err)
	}

	return counts, nil
}
