package handler

import (
	"database/sql"
	"time"

	"github.com/popeskul/sms-messaging/internal/api"
	"github.com/popeskul/sms-messaging/internal/models"
	"github.com/popeskul/sms-messaging/internal/service"
)

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func nullTime(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toAPIAuthorizedNumber(n *models.AuthorizedNumber) api.AuthorizedNumber {
	return api.AuthorizedNumber{
		Id:                 n.ID,
		Phone:              n.Phone,
		ProfileId:          n.ProfileID,
		Notes:              nullString(n.Notes),
		ComplianceVerified: n.ComplianceVerified,
		VerifiedAt:         n.VerifiedAt,
		IsActive:           n.IsActive,
		AuthorizedBy:       n.AuthorizedBy,
		CreatedAt:          n.CreatedAt,
		DeactivatedAt:      nullTime(n.DeactivatedAt),
		DeactivatedBy:      nullString(n.DeactivatedBy),
	}
}

func toAPIConversation(c *models.Conversation) api.Conversation {
	return api.Conversation{
		Id:            c.ID,
		CustomerPhone: c.CustomerPhone,
		ProfileId:     nullString(c.ProfileID),
		LastMessageAt: c.LastMessageAt,
		UnreadCount:   c.UnreadCount,
		Status:        string(c.Status),
	}
}

func toAPIMessage(m *models.Message) api.Message {
	return api.Message{
		Id:             m.ID,
		ConversationId: m.ConversationID,
		Direction:      string(m.Direction),
		FromNumber:     m.FromNumber,
		ToNumber:       m.ToNumber,
		Body:           m.Body,
		Status:         string(m.Status),
		CarrierSid:     nullString(m.CarrierSID),
		ErrorCode:      nullString(m.ErrorCode),
		ErrorMessage:   nullString(m.ErrorMessage),
		SentBy:         nullString(m.SentBy),
		SentAt:         m.SentAt,
	}
}

func toAPIThread(t *service.Thread) api.ConversationThread {
	messages := make([]api.Message, 0, len(t.Messages))
	for _, m := range t.Messages {
		messages = append(messages, toAPIMessage(m))
	}
	return api.ConversationThread{
		Conversation: toAPIConversation(t.Conversation),
		Messages:     messages,
	}
}

func toAPIBatchResponse(result *service.BatchResult, message string) api.BatchSendResponse {
	results := make([]api.BatchRecipientResult, 0, len(result.Results))
	for _, r := range result.Results {
		reason := r.Reason
		if reason == "" {
			reason = r.AuditError
		}
		results = append(results, api.BatchRecipientResult{
			UserId:        r.UserID,
			Phone:         optional(r.Phone),
			Status:        api.BatchRecipientResultStatus(r.Status),
			Reason:        optional(reason),
			CarrierSid:    optional(r.CarrierSID),
			CarrierStatus: optional(r.CarrierStatus),
			ErrorCode:     optional(r.ErrorCode),
		})
	}

	return api.BatchSendResponse{
		Success: true,
		BatchId: result.BatchID,
		Summary: api.BatchSummary{
			Total:      result.Summary.Total,
			Successful: result.Summary.Successful,
			Failed:     result.Summary.Failed,
			Skipped:    result.Summary.Skipped,
		},
		Results: results,
		Message: message,
	}
}

func toAPIAuditRecord(r models.AuditRecord) api.AuditRecord {
	return api.AuditRecord{
		Id:            r.ID,
		Type:          api.AuditRecordType(r.Type),
		Direction:     string(r.Direction),
		RecipientName: optional(r.RecipientName),
		Phone:         r.Phone,
		Email:         optional(r.Email),
		Body:          r.Body,
		Status:        string(r.Status),
		SentBy:        optional(r.SentBy),
		CarrierSid:    optional(r.CarrierSID),
		ErrorCode:     optional(r.ErrorCode),
		ErrorMessage:  optional(r.ErrorMessage),
		BatchId:       optional(r.BatchID),
		Timestamp:     r.Timestamp,
	}
}

func toAPIAuditList(page *service.AuditPage) api.AuditListResponse {
	records := make([]api.AuditRecord, 0, len(page.Records))
	for _, r := range page.Records {
		records = append(records, toAPIAuditRecord(r))
	}

	totalPages := 0
	if page.Limit > 0 {
		totalPages = int((page.Total + int64(page.Limit) - 1) / int64(page.Limit))
	}

	return api.AuditListResponse{
		Records: records,
		Pagination: api.Pagination{
			CurrentPage:  page.Page,
			ItemsPerPage: page.Limit,
			TotalItems:   int(page.Total),
			TotalPages:   totalPages,
		},
	}
}

func toAPIOptOut(e *models.OptOutEntry) api.OptOutEntry {
	return api.OptOutEntry{
		Id:         e.ID,
		Phone:      e.Phone,
		OptedOutAt: e.OptedOutAt,
		Method:     string(e.Method),
		Notes:      nullString(e.Notes),
		ProfileId:  nullString(e.ProfileID),
		FirstName:  nullString(e.FirstName),
		LastName:   nullString(e.LastName),
		Email:      nullString(e.Email),
	}
}

func toAPIConsent(p *models.Profile) api.SmsConsentResponse {
	return api.SmsConsentResponse{
		UserId:           p.ID,
		SmsConsent:       p.SMSConsent,
		SmsConsentMethod: nullString(p.SMSConsentMethod),
		SmsConsentAt:     nullTime(p.SMSConsentAt),
	}
}
