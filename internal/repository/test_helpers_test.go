package repository_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/popeskul/sms-messaging/internal/models"
)

type testProfile struct {
	Phone     string
	FirstName string
	LastName  string
	Email     string
	Consent   bool
	Role      models.Role
}

func insertTestProfile(t *testing.T, db *sqlx.DB, p testProfile) string {
	t.Helper()

	id := uuid.New().String()
	role := p.Role
	if role == "" {
		role = models.RoleCustomer
	}

	var phone sql.NullString
	if p.Phone != "" {
		phone = sql.NullString{String: p.Phone, Valid: true}
	}

	_, err := db.Exec(`
		INSERT INTO profiles (id, phone, first_name, last_name, email, sms_consent, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, phone, p.FirstName, p.LastName, p.Email, p.Consent, role)
	require.NoError(t, err)

	return id
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
