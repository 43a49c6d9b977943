package models

import "time"

type AuditType string

const (
	AuditTypeCampaign     AuditType = "campaign"
	AuditTypeConversation AuditType = "conversation"
)

// AuditRecord is the normalized shape shared by campaign rows and
// conversation messages.
type AuditRecord struct {
	ID            int64         `json:"id"`
	Type          AuditType     `json:"type"`
	Direction     Direction     `json:"direction"`
	RecipientName string        `json:"recipient_name,omitempty"`
	Phone         string        `json:"phone"`
	Email         string        `json:"email,omitempty"`
	Body          string        `json:"body"`
	Status        MessageStatus `json:"status"`
	SentBy        string        `json:"sent_by,omitempty"`
	CarrierSID    string        `json:"carrier_sid,omitempty"`
	ErrorCode     string        `json:"error_code,omitempty"`
	ErrorMessage  string        `json:"error_message,omitempty"`
	BatchID       string        `json:"batch_id,omitempty"`
	Timestamp     time.Time     `json:"timestamp"`
}

// AuditFilter narrows both audit sources.
type AuditFilter struct {
	Search    string
	Status    MessageStatus
	Direction Direction
	Type      AuditType
	From      *time.Time
	To        *time.Time
	Offset    int
	Limit     int
}

// AuditRow is a campaign or message row joined to the recipient profile.
type AuditRow struct {
	ID           int64         `db:"id"`
	Direction    Direction     `db:"direction"`
	Phone        string        `db:"phone"`
	Body         string        `db:"body"`
	Status       MessageStatus `db:"status"`
	SentBy       string        `db:"sent_by"`
	CarrierSID   string        `db:"carrier_sid"`
	ErrorCode    string        `db:"error_code"`
	ErrorMessage string        `db:"error_message"`
	BatchID      string        `db:"batch_id"`
	FirstName    string        `db:"first_name"`
	LastName     string        `db:"last_name"`
	Email        string        `db:"email"`
	Timestamp    time.Time     `db:"ts"`
}

// DeliveryCounts aggregates delivery outcomes over both sources.
type DeliveryCounts struct {
	Sent      int64 `db:"sent"`
	Delivered int64 `db:"delivered"`
	Failed    int64 `db:"failed"`
	Skipped   int64 `db:"skipped"`
}
