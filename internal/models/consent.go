package models

import (
	"database/sql"
	"time"
)

type OptOutMethod string

const (
	OptOutMethodStopKeyword OptOutMethod = "stop_keyword"
	OptOutMethodManual      OptOutMethod = "manual"
	OptOutMethodWebForm     OptOutMethod = "web_form"
	OptOutMethodImport      OptOutMethod = "import"
)

// Consent methods recorded on the profile when consent is granted.
const (
	ConsentMethodStartKeyword = "start_keyword"
	ConsentMethodWebForm      = "web_form"
)

// OptOut is a ledger entry; its presence blocks non-transactional messages
// regardless of the profile consent flag.
type OptOut struct {
	ID         int64          `db:"id" json:"id"`
	Phone      string         `db:"phone" json:"phone"`
	OptedOutAt time.Time      `db:"opted_out_at" json:"opted_out_at"`
	Method     OptOutMethod   `db:"method" json:"method"`
	Notes      sql.NullString `db:"notes" json:"notes,omitempty"`
}

// OptOutEntry is an opt-out joined to the matching profile, if any.
type OptOutEntry struct {
	OptOut
	ProfileID sql.NullString `db:"profile_id" json:"profile_id,omitempty"`
	FirstName sql.NullString `db:"first_name" json:"first_name,omitempty"`
	LastName  sql.NullString `db:"last_name" json:"last_name,omitempty"`
	Email     sql.NullString `db:"email" json:"email,omitempty"`
}

// AuthorizedNumber is an admin allow-list entry for 1:1 messaging.
type AuthorizedNumber struct {
	ID                 string         `db:"id" json:"id"`
	Phone              string         `db:"phone" json:"phone"`
	ProfileID          string         `db:"profile_id" json:"profile_id"`
	Notes              sql.NullString `db:"notes" json:"notes,omitempty"`
	ComplianceVerified bool           `db:"compliance_verified" json:"compliance_verified"`
	VerifiedAt         time.Time      `db:"verified_at" json:"verified_at"`
	IsActive           bool           `db:"is_active" json:"is_active"`
	AuthorizedBy       string         `db:"authorized_by" json:"authorized_by"`
	CreatedAt          time.Time      `db:"created_at" json:"created_at"`
	DeactivatedAt      sql.NullTime   `db:"deactivated_at" json:"deactivated_at,omitempty"`
	DeactivatedBy      sql.NullString `db:"deactivated_by" json:"deactivated_by,omitempty"`
}
