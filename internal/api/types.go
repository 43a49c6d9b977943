// Package api holds the HTTP contract described by api/openapi.yaml: wire
// types, the ServerInterface implemented by the handler and the chi router
// that binds request parameters.
package api

import (
	"time"
)

const (
	BearerAuthScopes = "BearerAuth.Scopes"
)

// Defines values for AuditRecordType.
const (
	AuditRecordTypeCampaign     AuditRecordType = "campaign"
	AuditRecordTypeConversation AuditRecordType = "conversation"
)

// Defines values for BatchRecipientResultStatus.
const (
	BatchRecipientResultStatusFailed  BatchRecipientResultStatus = "failed"
	BatchRecipientResultStatusSkipped BatchRecipientResultStatus = "skipped"
	BatchRecipientResultStatusSuccess BatchRecipientResultStatus = "success"
)

// Defines values for HealthResponseCircuitBreakerState.
const (
	Closed   HealthResponseCircuitBreakerState = "closed"
	HalfOpen HealthResponseCircuitBreakerState = "half-open"
	Open     HealthResponseCircuitBreakerState = "open"
)

// Defines values for HealthResponseDatabaseStatus.
const (
	HealthResponseDatabaseStatusConnected    HealthResponseDatabaseStatus = "connected"
	HealthResponseDatabaseStatusDisconnected HealthResponseDatabaseStatus = "disconnected"
)

// Defines values for HealthResponseRedisStatus.
const (
	HealthResponseRedisStatusConnected    HealthResponseRedisStatus = "connected"
	HealthResponseRedisStatusDisabled     HealthResponseRedisStatus = "disabled"
	HealthResponseRedisStatusDisconnected HealthResponseRedisStatus = "disconnected"
)

// Defines values for HealthResponseSchedulerStatus.
const (
	HealthResponseSchedulerStatusRunning HealthResponseSchedulerStatus = "running"
	HealthResponseSchedulerStatusStopped HealthResponseSchedulerStatus = "stopped"
)

// Defines values for HealthResponseStatus.
const (
	Degraded  HealthResponseStatus = "degraded"
	Healthy   HealthResponseStatus = "healthy"
	Unhealthy HealthResponseStatus = "unhealthy"
)

// Defines values for ListOptOutsParamsFormat.
const (
	ListOptOutsParamsFormatCsv  ListOptOutsParamsFormat = "csv"
	ListOptOutsParamsFormatJson ListOptOutsParamsFormat = "json"
)

// Defines values for SchedulerResponseStatus.
const (
	SchedulerResponseStatusStarted SchedulerResponseStatus = "started"
	SchedulerResponseStatusStopped SchedulerResponseStatus = "stopped"
)

// AuditListResponse defines model for AuditListResponse.
type AuditListResponse struct {
	Pagination Pagination    `json:"pagination"`
	Records    []AuditRecord `json:"records"`
}

// AuditRecord defines model for AuditRecord.
type AuditRecord struct {
	BatchId       *string         `json:"batchId,omitempty"`
	Body          string          `json:"body"`
	CarrierSid    *string         `json:"carrierSid,omitempty"`
	Direction     string          `json:"direction"`
	Email         *string         `json:"email,omitempty"`
	ErrorCode     *string         `json:"errorCode,omitempty"`
	ErrorMessage  *string         `json:"errorMessage,omitempty"`
	Id            int64           `json:"id"`
	Phone         string          `json:"phone"`
	RecipientName *string         `json:"recipientName,omitempty"`
	SentBy        *string         `json:"sentBy,omitempty"`
	Status        string          `json:"status"`
	Timestamp     time.Time       `json:"timestamp"`
	Type          AuditRecordType `json:"type"`
}

// AuditRecordType defines model for AuditRecord.Type.
type AuditRecordType string

// AuditStats defines model for AuditStats.
type AuditStats struct {
	Delivered    int64   `json:"delivered"`
	DeliveryRate float64 `json:"deliveryRate"`
	Failed       int64   `json:"failed"`
	OptedOut     int64   `json:"optedOut"`
	Skipped      int64   `json:"skipped"`
	TotalSent    int64   `json:"totalSent"`
}

// AuthorizeNumberRequest defines model for AuthorizeNumberRequest.
type AuthorizeNumberRequest struct {
	Notes *string `json:"notes,omitempty"`
	Phone string  `json:"phone"`
}

// AuthorizedNumber defines model for AuthorizedNumber.
type AuthorizedNumber struct {
	AuthorizedBy       string     `json:"authorizedBy"`
	ComplianceVerified bool       `json:"complianceVerified"`
	CreatedAt          time.Time  `json:"createdAt"`
	DeactivatedAt      *time.Time `json:"deactivatedAt,omitempty"`
	DeactivatedBy      *string    `json:"deactivatedBy,omitempty"`
	Id                 string     `json:"id"`
	IsActive           bool       `json:"isActive"`
	Notes              *string    `json:"notes,omitempty"`
	Phone              string     `json:"phone"`
	ProfileId          string     `json:"profileId"`
	VerifiedAt         time.Time  `json:"verifiedAt"`
}

// AuthorizedNumberList defines model for AuthorizedNumberList.
type AuthorizedNumberList struct {
	Numbers []AuthorizedNumber `json:"numbers"`
}

// BatchRecipientResult defines model for BatchRecipientResult.
type BatchRecipientResult struct {
	CarrierSid    *string                    `json:"carrierSid,omitempty"`
	CarrierStatus *string                    `json:"carrierStatus,omitempty"`
	ErrorCode     *string                    `json:"errorCode,omitempty"`
	Phone         *string                    `json:"phone,omitempty"`
	Reason        *string                    `json:"reason,omitempty"`
	Status        BatchRecipientResultStatus `json:"status"`
	UserId        string                     `json:"userId"`
}

// BatchRecipientResultStatus defines model for BatchRecipientResult.Status.
type BatchRecipientResultStatus string

// BatchSendRequest defines model for BatchSendRequest.
type BatchSendRequest struct {
	MessageTemplate string   `json:"messageTemplate"`
	UserIds         []string `json:"userIds"`
}

// BatchSendResponse defines model for BatchSendResponse.
type BatchSendResponse struct {
	BatchId string                 `json:"batchId"`
	Message string                 `json:"message"`
	Results []BatchRecipientResult `json:"results"`
	Success bool                   `json:"success"`
	Summary BatchSummary           `json:"summary"`
}

// BatchSummary defines model for BatchSummary.
type BatchSummary struct {
	Failed     int `json:"failed"`
	Skipped    int `json:"skipped"`
	Successful int `json:"successful"`
	Total      int `json:"total"`
}

// Conversation defines model for Conversation.
type Conversation struct {
	CustomerPhone string    `json:"customerPhone"`
	Id            int64     `json:"id"`
	LastMessageAt time.Time `json:"lastMessageAt"`
	ProfileId     *string   `json:"profileId,omitempty"`
	Status        string    `json:"status"`
	UnreadCount   int       `json:"unreadCount"`
}

// ConversationList defines model for ConversationList.
type ConversationList struct {
	Conversations []Conversation `json:"conversations"`
}

// ConversationThread defines model for ConversationThread.
type ConversationThread struct {
	Conversation Conversation `json:"conversation"`
	Messages     []Message    `json:"messages"`
}

// ErrorResponse defines model for ErrorResponse.
type ErrorResponse struct {
	Error     string     `json:"error"`
	Message   string     `json:"message"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// HealthResponse defines model for HealthResponse.
type HealthResponse struct {
	CircuitBreakerState  *HealthResponseCircuitBreakerState `json:"circuit_breaker_state,omitempty"`
	CircuitBreakerStatus *string                            `json:"circuit_breaker_status,omitempty"`
	DatabaseStatus       *HealthResponseDatabaseStatus      `json:"database_status,omitempty"`
	RedisStatus          *HealthResponseRedisStatus         `json:"redis_status,omitempty"`
	SchedulerStatus      *HealthResponseSchedulerStatus     `json:"scheduler_status,omitempty"`
	Status               HealthResponseStatus               `json:"status"`
	Timestamp            time.Time                          `json:"timestamp"`
}

// HealthResponseCircuitBreakerState defines model for HealthResponse.CircuitBreakerState.
type HealthResponseCircuitBreakerState string

// HealthResponseDatabaseStatus defines model for HealthResponse.DatabaseStatus.
type HealthResponseDatabaseStatus string

// HealthResponseRedisStatus defines model for HealthResponse.RedisStatus.
type HealthResponseRedisStatus string

// HealthResponseSchedulerStatus defines model for HealthResponse.SchedulerStatus.
type HealthResponseSchedulerStatus string

// HealthResponseStatus defines model for HealthResponse.Status.
type HealthResponseStatus string

// Message defines model for Message.
type Message struct {
	Body           string    `json:"body"`
	CarrierSid     *string   `json:"carrierSid,omitempty"`
	ConversationId int64     `json:"conversationId"`
	Direction      string    `json:"direction"`
	ErrorCode      *string   `json:"errorCode,omitempty"`
	ErrorMessage   *string   `json:"errorMessage,omitempty"`
	FromNumber     string    `json:"fromNumber"`
	Id             int64     `json:"id"`
	SentAt         time.Time `json:"sentAt"`
	SentBy         *string   `json:"sentBy,omitempty"`
	Status         string    `json:"status"`
	ToNumber       string    `json:"toNumber"`
}

// OptOutEntry defines model for OptOutEntry.
type OptOutEntry struct {
	Email      *string   `json:"email,omitempty"`
	FirstName  *string   `json:"firstName,omitempty"`
	Id         int64     `json:"id"`
	LastName   *string   `json:"lastName,omitempty"`
	Method     string    `json:"method"`
	Notes      *string   `json:"notes,omitempty"`
	OptedOutAt time.Time `json:"optedOutAt"`
	Phone      string    `json:"phone"`
	ProfileId  *string   `json:"profileId,omitempty"`
}

// OptOutList defines model for OptOutList.
type OptOutList struct {
	OptOuts []OptOutEntry `json:"optOuts"`
}

// Pagination defines model for Pagination.
type Pagination struct {
	CurrentPage  int `json:"current_page"`
	ItemsPerPage int `json:"items_per_page"`
	TotalItems   int `json:"total_items"`
	TotalPages   int `json:"total_pages"`
}

// SchedulerResponse defines model for SchedulerResponse.
type SchedulerResponse struct {
	Message string                  `json:"message"`
	Status  SchedulerResponseStatus `json:"status"`
}

// SchedulerResponseStatus defines model for SchedulerResponse.Status.
type SchedulerResponseStatus string

// SendDirectMessageRequest defines model for SendDirectMessageRequest.
type SendDirectMessageRequest struct {
	Body  string `json:"body"`
	Phone string `json:"phone"`
}

// SendMessageRequest defines model for SendMessageRequest.
type SendMessageRequest struct {
	Body string `json:"body"`
}

// SmsConsentResponse defines model for SmsConsentResponse.
type SmsConsentResponse struct {
	SmsConsent       bool       `json:"smsConsent"`
	SmsConsentAt     *time.Time `json:"smsConsentAt,omitempty"`
	SmsConsentMethod *string    `json:"smsConsentMethod,omitempty"`
	UserId           string     `json:"userId"`
}

// UpdateSmsConsentRequest defines model for UpdateSmsConsentRequest.
type UpdateSmsConsentRequest struct {
	Consent bool `json:"consent"`
}

// ListAuditRecordsParams defines parameters for ListAuditRecords.
type ListAuditRecordsParams struct {
	Search    *string    `form:"search,omitempty" json:"search,omitempty"`
	Status    *string    `form:"status,omitempty" json:"status,omitempty"`
	Direction *string    `form:"direction,omitempty" json:"direction,omitempty"`
	Type      *string    `form:"type,omitempty" json:"type,omitempty"`
	From      *time.Time `form:"from,omitempty" json:"from,omitempty"`
	To        *time.Time `form:"to,omitempty" json:"to,omitempty"`
	Page      *int       `form:"page,omitempty" json:"page,omitempty"`
	Limit     *int       `form:"limit,omitempty" json:"limit,omitempty"`
}

// ExportAuditRecordsParams defines parameters for ExportAuditRecords.
type ExportAuditRecordsParams struct {
	Search    *string    `form:"search,omitempty" json:"search,omitempty"`
	Status    *string    `form:"status,omitempty" json:"status,omitempty"`
	Direction *string    `form:"direction,omitempty" json:"direction,omitempty"`
	Type      *string    `form:"type,omitempty" json:"type,omitempty"`
	From      *time.Time `form:"from,omitempty" json:"from,omitempty"`
	To        *time.Time `form:"to,omitempty" json:"to,omitempty"`
	Page      *int       `form:"page,omitempty" json:"page,omitempty"`
	Limit     *int       `form:"limit,omitempty" json:"limit,omitempty"`
}

// GetAuditStatsParams defines parameters for GetAuditStats.
type GetAuditStatsParams struct {
	From *time.Time `form:"from,omitempty" json:"from,omitempty"`
	To   *time.Time `form:"to,omitempty" json:"to,omitempty"`
}

// ListAuthorizedNumbersParams defines parameters for ListAuthorizedNumbers.
type ListAuthorizedNumbersParams struct {
	IncludeInactive *bool `form:"includeInactive,omitempty" json:"includeInactive,omitempty"`
}

// ListConversationsParams defines parameters for ListConversations.
type ListConversationsParams struct {
	Status *string `form:"status,omitempty" json:"status,omitempty"`
}

// ListOptOutsParams defines parameters for ListOptOuts.
type ListOptOutsParams struct {
	Format *ListOptOutsParamsFormat `form:"format,omitempty" json:"format,omitempty"`
}

// ListOptOutsParamsFormat defines parameters for ListOptOuts.
type ListOptOutsParamsFormat string

// StreamEventsParams defines parameters for StreamEvents.
type StreamEventsParams struct {
	Tables         *string `form:"tables,omitempty" json:"tables,omitempty"`
	ConversationId *int64  `form:"conversationId,omitempty" json:"conversationId,omitempty"`
	Phone          *string `form:"phone,omitempty" json:"phone,omitempty"`
}

// SendBatchJSONRequestBody defines body for SendBatch for application/json ContentType.
type SendBatchJSONRequestBody = BatchSendRequest

// AuthorizeNumberJSONRequestBody defines body for AuthorizeNumber for application/json ContentType.
type AuthorizeNumberJSONRequestBody = AuthorizeNumberRequest

// ReplyToConversationJSONRequestBody defines body for ReplyToConversation for application/json ContentType.
type ReplyToConversationJSONRequestBody = SendMessageRequest

// SendDirectMessageJSONRequestBody defines body for SendDirectMessage for application/json ContentType.
type SendDirectMessageJSONRequestBody = SendDirectMessageRequest

// UpdateSmsConsentJSONRequestBody defines body for UpdateSmsConsent for application/json ContentType.
type UpdateSmsConsentJSONRequestBody = UpdateSmsConsentRequest
