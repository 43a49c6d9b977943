package models

import (
	"database/sql"
	"time"
)

type ConversationStatus string

const (
	ConversationStatusActive   ConversationStatus = "active"
	ConversationStatusArchived ConversationStatus = "archived"
)

// Conversation groups every message exchanged with one customer phone.
type Conversation struct {
	ID            int64              `db:"id" json:"id"`
	CustomerPhone string             `db:"customer_phone" json:"customer_phone"`
	ProfileID     sql.NullString     `db:"profile_id" json:"profile_id,omitempty"`
	LastMessageAt time.Time          `db:"last_message_at" json:"last_message_at"`
	UnreadCount   int                `db:"unread_count" json:"unread_count"`
	Status        ConversationStatus `db:"status" json:"status"`
	CreatedAt     time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `db:"updated_at" json:"updated_at"`
}

// ConversationUpsert describes a message touching a conversation.
type ConversationUpsert struct {
	Phone     string
	ProfileID *string
	At        time.Time
}
