package models

import (
	"database/sql"
	"time"
)

// CampaignSend is the compliance record for one recipient of one batch.
type CampaignSend struct {
	ID           int64          `db:"id" json:"id"`
	BatchID      string         `db:"batch_id" json:"batch_id"`
	UserID       string         `db:"user_id" json:"user_id"`
	Phone        sql.NullString `db:"phone" json:"phone,omitempty"`
	MessageBody  string         `db:"message_body" json:"message_body"`
	Template     string         `db:"template" json:"template"`
	Status       MessageStatus  `db:"status" json:"status"`
	CarrierSID   sql.NullString `db:"carrier_sid" json:"carrier_sid,omitempty"`
	ErrorCode    sql.NullString `db:"error_code" json:"error_code,omitempty"`
	ErrorMessage sql.NullString `db:"error_message" json:"error_message,omitempty"`
	SentBy       string         `db:"sent_by" json:"sent_by"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}
