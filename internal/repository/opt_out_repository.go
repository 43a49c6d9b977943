package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/popeskul/sms-messaging/internal/models"
)

type optOutRepository struct {
	db *sqlx.DB
}

func NewOptOutRepository(db *sqlx.DB) OptOutRepository {
	return &optOutRepository{db: db}
}

// Insert writes a ledger row unless one already exists for the phone.
func (r *optOutRepository) Insert(ctx context.Context, entry *models.OptOut) (bool, error) {
	query := `
		INSERT INTO sms_opt_outs (phone, opted_out_at, method, notes)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (phone) DO NOTHING
		RETURNING id
	`

	rows, err := r.db.QueryxContext(ctx, query, entry.Phone, entry.OptedOutAt, entry.Method, entry.Notes)
	if err != nil {
		return false, fmt.Errorf("failed to insert opt-out: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return false, rows.Err()
	}
	if err := rows.Scan(&entry.ID); err != nil {
		return false, fmt.Errorf("failed to scan opt-out id: %w", err)
	}

	return true, nil
}

func (r *optOutRepository) DeleteByPhone(ctx context.Context, phone string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sms_opt_outs WHERE phone = $1`, phone)
	if err != nil {
		return false, fmt.Errorf("failed to delete opt-out: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}

func (r *optOutRepository) Exists(ctx context.Context, phone string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM sms_opt_outs WHERE phone = $1)`, phone); err != nil {
		return false, fmt.Errorf("failed to check opt-out: %w", err)
	}

	return exists, nil
}

func (r *optOutRepository) ListPhones(ctx context.Context) ([]string, error) {
	var phones []string
	if err := r.db.SelectContext(ctx, &phones, `SELECT phone FROM sms_opt_outs`); err != nil {
		return nil, fmt.Errorf("failed to list opt-out phones: %w", err)
	}

	return phones, nil
}

// List returns the ledger newest first, joined to the matching profile.
func (r *optOutRepository) List(ctx context.Context) ([]*models.OptOutEntry, error) {
	query := `
		SELECT o.id, o.phone, o.opted_out_at, o.method, o.notes,
		       p.id AS profile_id, p.first_name, p.last_name, p.email
		FROM sms_opt_outs o
		LEFT JOIN LATERAL (
			SELECT id, first_name, last_name, email
			FROM profiles
			WHERE phone = o.phone
			ORDER BY created_at ASC
			LIMIT 1
		) p ON TRUE
		ORDER BY o.opted_out_at DESC
	`

	var entries []*models.OptOutEntry
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("failed to list opt-outs: %w", err)
	}

	return entries, nil
}

func (r *optOutRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM sms_opt_outs`); err != nil {
		return 0, fmt.Errorf("failed to count opt-outs: %w", err)
	}

	return count, nil
}
