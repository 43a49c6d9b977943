package service

import (
	"time"

	"github.com/popeskul/sms-messaging/internal/api"
	"github.com/popeskul/sms-messaging/internal/models"
)

type HealthStatus struct {
	Status               api.HealthResponseStatus              `json:"status"`
	SchedulerStatus      api.HealthResponseSchedulerStatus     `json:"scheduler_status"`
	DatabaseStatus       api.HealthResponseDatabaseStatus      `json:"database_status"`
	RedisStatus          api.HealthResponseRedisStatus         `json:"redis_status"`
	CircuitBreakerStatus string                                `json:"circuit_breaker_status,omitempty"`
	CircuitBreakerState  api.HealthResponseCircuitBreakerState `json:"circuit_breaker_state,omitempty"`
}

// Keyword is the compliance class of an inbound message body.
type Keyword int

const (
	KeywordNone Keyword = iota
	KeywordStop
	KeywordStart
)

// InboundMessage is the subset of the carrier webhook form the service needs.
type InboundMessage struct {
	MessageSID string
	From       string
	To         string
	Body       string
}

type BatchRequest struct {
	UserIDs         []string
	MessageTemplate string
}

type RecipientStatus string

const (
	RecipientSuccess RecipientStatus = "success"
	RecipientFailed  RecipientStatus = "failed"
	RecipientSkipped RecipientStatus = "skipped"
)

// RecipientResult is the outcome for one user of a batch.
type RecipientResult struct {
	UserID        string
	Phone         string
	Status        RecipientStatus
	Reason        string
	CarrierSID    string
	CarrierStatus string
	ErrorCode     string
	// AuditError is set when the campaign row could not be written.
	AuditError string
}

type BatchSummary struct {
	Total      int
	Successful int
	Failed     int
	Skipped    int
}

type BatchResult struct {
	BatchID string
	Results []RecipientResult
	Summary BatchSummary
}

// AuditQuery is the caller-facing audit filter; Page starts at 1.
type AuditQuery struct {
	Search    string
	Status    models.MessageStatus
	Direction models.Direction
	Type      models.AuditType
	From      *time.Time
	To        *time.Time
	Page      int
	Limit     int
}

type AuditPage struct {
	Records []models.AuditRecord
	Total   int64
	Page    int
	Limit   int
}

type AuditStats struct {
	TotalSent    int64
	Delivered    int64
	Failed       int64
	Skipped      int64
	OptedOut     int64
	DeliveryRate float64
}

// Thread is a conversation with its messages in chronological order.
type Thread struct {
	Conversation *models.Conversation
	Messages     []*models.Message
}
