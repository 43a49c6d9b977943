package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/popeskul/sms-messaging/internal/models"
)

const authorizedNumberColumns = `id, phone, profile_id, notes, compliance_verified, verified_at, is_active,
	authorized_by, created_at, deactivated_at, deactivated_by`

type authorizedNumberRepository struct {
	db *sqlx.DB
}

func NewAuthorizedNumberRepository(db *sqlx.DB) AuthorizedNumberRepository {
	return &authorizedNumberRepository{db: db}
}

// Create inserts an allow-list entry. A second active entry for the same
// phone violates uq_sms_authorized_numbers_active_phone and yields ErrDuplicate.
func (r *authorizedNumberRepository) Create(ctx context.Context, number *models.AuthorizedNumber) error {
	query := `
		INSERT INTO sms_authorized_numbers
			(id, phone, profile_id, notes, compliance_verified, verified_at, is_active, authorized_by, created_at)
		VALUES
			(:id, :phone, :profile_id, :notes, :compliance_verified, :verified_at, :is_active, :authorized_by, :created_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, number); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create authorized number: %w", err)
	}

	return nil
}

// Deactivate soft-deletes an active entry.
func (r *authorizedNumberRepository) Deactivate(ctx context.Context, id, deactivatedBy string, at time.Time) error {
	query := `
		UPDATE sms_authorized_numbers
		SET is_active = FALSE,
		    deactivated_at = $2,
		    deactivated_by = $3
		WHERE id = $1 AND is_active
	`

	res, err := r.db.ExecContext(ctx, query, id, at, deactivatedBy)
	if err != nil {
		return fmt.Errorf("failed to deactivate authorized number: %w", err)
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

func (r *authorizedNumberRepository) GetActiveByPhone(ctx context.Context, phone string) (*models.AuthorizedNumber, error) {
	query := `SELECT ` + authorizedNumberColumns + ` FROM sms_authorized_numbers WHERE phone = $1 AND is_active`

	var number models.AuthorizedNumber
	if err := r.db.GetContext(ctx, &number, query, phone); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get authorized number: %w", err)
	}

	return &number, nil
}

func (r *authorizedNumberRepository) List(ctx context.Context, includeInactive bool) ([]*models.AuthorizedNumber, error) {
	query := `SELECT ` + authorizedNumberColumns + ` FROM sms_authorized_numbers`
	if !includeInactive {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY created_at DESC`

	var numbers []*models.AuthorizedNumber
	if err := r.db.SelectContext(ctx, &numbers, query); err != nil {
		return nil, fmt.Errorf("failed to list authorized numbers: %w", err)
	}

	return numbers, nil
}
