package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/popeskul/sms-messaging/internal/models"
)

const profileColumns = `id, phone, first_name, last_name, email, sms_consent, sms_consent_method, sms_consent_at, role, created_at`

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// GetByID returns the profile with the given id.
func (r *profileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`

	var profile models.Profile
	if err := r.db.GetContext(ctx, &profile, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &profile, nil
}

// GetByPhone returns the oldest profile carrying phone.
func (r *profileRepository) GetByPhone(ctx context.Context, phone string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE phone = $1 ORDER BY created_at ASC LIMIT 1`

	var profile models.Profile
	if err := r.db.GetContext(ctx, &profile, query, phone); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile by phone: %w", err)
	}

	return &profile, nil
}

// GetByIDs loads every profile in ids. Unknown ids are simply absent from the result.
func (r *profileRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Profile, error) {
	if len(ids) == 0 {
		return []*models.Profile{}, nil
	}

	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = ANY($1)`

	var profiles []*models.Profile
	if err := r.db.SelectContext(ctx, &profiles, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("failed to get profiles: %w", err)
	}

	return profiles, nil
}

func (r *profileRepository) GetRole(ctx context.Context, id string) (models.Role, error) {
	var role models.Role
	if err := r.db.GetContext(ctx, &role, `SELECT role FROM profiles WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to get profile role: %w", err)
	}

	return role, nil
}

func (r *profileRepository) SetConsentByPhone(ctx context.Context, phone string, consent bool, method string, at time.Time) (int64, error) {
	query := `
		UPDATE profiles
		SET sms_consent = $2,
		    sms_consent_method = $3,
		    sms_consent_at = $4
		WHERE phone = $1
	`

	res, err := r.db.ExecContext(ctx, query, phone, consent, method, at)
	if err != nil {
		return 0, fmt.Errorf("failed to update consent by phone: %w", err)
	}

	return res.RowsAffected()
}

func (r *profileRepository) SetConsentByID(ctx context.Context, id string, consent bool, method string, at time.Time) error {
	query := `
		UPDATE profiles
		SET sms_consent = $2,
		    sms_consent_method = $3,
		    sms_consent_at = $4
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query, id, consent, method, at)
	if err != nil {
		return fmt.Errorf("failed to update consent: %w", err)
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
