// Package models defines data structures used throughout the application.
package models

import (
	"database/sql"
	"time"
)

type MessageStatus string

const (
	MessageStatusQueued      MessageStatus = "queued"
	MessageStatusSending     MessageStatus = "sending"
	MessageStatusSent        MessageStatus = "sent"
	MessageStatusDelivered   MessageStatus = "delivered"
	MessageStatusFailed      MessageStatus = "failed"
	MessageStatusUndelivered MessageStatus = "undelivered"
	MessageStatusReceived    MessageStatus = "received"
	MessageStatusSkipped     MessageStatus = "skipped"
)

// TerminalStatuses never change once recorded.
var TerminalStatuses = []MessageStatus{
	MessageStatusDelivered,
	MessageStatusFailed,
	MessageStatusUndelivered,
	MessageStatusReceived,
	MessageStatusSkipped,
}

// IsTerminal reports whether s is a final delivery state.
func (s MessageStatus) IsTerminal() bool {
	for _, t := range TerminalStatuses {
		if s == t {
			return true
		}
	}
	return false
}

type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

// Message is a single SMS within a conversation.
type Message struct {
	ID             int64          `db:"id" json:"id"`
	ConversationID int64          `db:"conversation_id" json:"conversation_id"`
	Direction      Direction      `db:"direction" json:"direction"`
	FromNumber     string         `db:"from_number" json:"from_number"`
	ToNumber       string         `db:"to_number" json:"to_number"`
	Body           string         `db:"body" json:"body"`
	Status         MessageStatus  `db:"status" json:"status"`
	CarrierSID     sql.NullString `db:"carrier_sid" json:"carrier_sid,omitempty"`
	ErrorCode      sql.NullString `db:"error_code" json:"error_code,omitempty"`
	ErrorMessage   sql.NullString `db:"error_message" json:"error_message,omitempty"`
	SentBy         sql.NullString `db:"sent_by" json:"sent_by,omitempty"`
	SentAt         time.Time      `db:"sent_at" json:"sent_at"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`
}

// StatusUpdate carries an asynchronous delivery report for a carrier message.
type StatusUpdate struct {
	CarrierSID   string
	Status       MessageStatus
	ErrorCode    string
	ErrorMessage string
}

// PendingStatus identifies a row whose delivery status is not final yet.
type PendingStatus struct {
	CarrierSID string        `db:"carrier_sid"`
	Status     MessageStatus `db:"status"`
}
