package models

import (
	"database/sql"
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStaff    Role = "staff"
	RoleCustomer Role = "customer"
)

// Profile is the slice of the customer directory this service reads and writes.
type Profile struct {
	ID               string         `db:"id" json:"id"`
	Phone            sql.NullString `db:"phone" json:"phone,omitempty"`
	FirstName        string         `db:"first_name" json:"first_name"`
	LastName         string         `db:"last_name" json:"last_name"`
	Email            string         `db:"email" json:"email"`
	SMSConsent       bool           `db:"sms_consent" json:"sms_consent"`
	SMSConsentMethod sql.NullString `db:"sms_consent_method" json:"sms_consent_method,omitempty"`
	SMSConsentAt     sql.NullTime   `db:"sms_consent_at" json:"sms_consent_at,omitempty"`
	Role             Role           `db:"role" json:"role"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
}

// FullName joins first and last name, skipping blanks.
func (p *Profile) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
}
