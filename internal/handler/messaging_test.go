package handler_test

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/popeskul/sms-messaging/internal/api"
	"github.com/popeskul/sms-messaging/internal/handler"
	"github.com/popeskul/sms-messaging/internal/models"
	"github.com/popeskul/sms-messaging/internal/service"
)

func TestHandler_SendBatch(t *testing.T) {
	f := newFixture(t)
	f.batch.EXPECT().SendBatch(gomock.Any(), adminID, service.BatchRequest{
		UserIDs:         []string{"u1", "u2", "u3"},
		MessageTemplate: "Hi [First Name]!",
	}).Return(&service.BatchResult{
		BatchID: "batch-1",
		Results: []service.RecipientResult{
			{UserID: "u1", Status: service.RecipientSkipped, Reason: "No phone number on file"},
			{UserID: "u2", Phone: "+15551230002", Status: service.RecipientSkipped, Reason: "User has not consented"},
			{UserID: "u3", Phone: "+15551230003", Status: service.RecipientFailed, ErrorCode: "21610", AuditError: "Failed to record audit entry"},
		},
		Summary: service.BatchSummary{Total: 3, Failed: 1, Skipped: 2},
	}, nil)

	w := httptest.NewRecorder()
	req := newRequest(http.MethodPost, "/sms/batch", api.BatchSendRequest{
		UserIds:         []string{"u1", "u2", "u3"},
		MessageTemplate: "Hi [First Name]!",
	}, adminID)
	f.handler(handler.Options{}).SendBatch(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[api.BatchSendResponse](t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, "batch-1", resp.BatchId)
	assert.Equal(t, api.BatchSummary{Total: 3, Successful: 0, Failed: 1, Skipped: 2}, resp.Summary)
	assert.Equal(t, "Batch processed: 0 sent, 1 failed, 2 skipped", resp.Message)
	require.Len(t, resp.Results, 3)
	assert.Nil(t, resp.Results[0].Phone)
	assert.Equal(t, "No phone number on file", *resp.Results[0].Reason)
	assert.Equal(t, api.BatchRecipientResultStatusSkipped, resp.Results[1].Status)
	assert.Equal(t, api.BatchRecipientResultStatusFailed, resp.Results[2].Status)
	assert.Equal(t, "21610", *resp.Results[2].ErrorCode)
	assert.Equal(t, "Failed to record audit entry", *resp.Results[2].Reason)
}

func TestHandler_SendBatch_Errors(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		err            error
		expectedStatus int
	}{
		{name: "malformed body", body: "{not json", expectedStatus: http.StatusBadRequest},
		{name: "empty recipients", body: api.BatchSendRequest{MessageTemplate: "x"}, err: &service.Error{Kind: service.ErrValidation, Message: "Select between 1 and 1000 recipients"}, expectedStatus: http.StatusBadRequest},
		{name: "anonymous", body: api.BatchSendRequest{UserIds: []string{"u1"}, MessageTemplate: "x"}, err: &service.Error{Kind: service.ErrUnauthorized, Message: "Authentication required"}, expectedStatus: http.StatusUnauthorized},
		{name: "staff member", body: api.BatchSendRequest{UserIds: []string{"u1"}, MessageTemplate: "x"}, err: &service.Error{Kind: service.ErrForbidden, Message: "Admin access required"}, expectedStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.err != nil {
				f.batch.EXPECT().SendBatch(gomock.Any(), adminID, gomock.Any()).Return(nil, tt.err)
			}

			w := httptest.NewRecorder()
			f.handler(handler.Options{}).SendBatch(w, newRequest(http.MethodPost, "/sms/batch", tt.body, adminID))

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestHandler_AuthorizedNumbers(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	number := &models.AuthorizedNumber{
		ID:                 "an-1",
		Phone:              "+15551230001",
		ProfileID:          "cust-1",
		Notes:              sql.NullString{String: "VIP", Valid: true},
		ComplianceVerified: true,
		VerifiedAt:         now,
		IsActive:           true,
		AuthorizedBy:       adminID,
		CreatedAt:          now,
	}

	t.Run("authorize", func(t *testing.T) {
		f := newFixture(t)
		f.authorization.EXPECT().Authorize(gomock.Any(), adminID, "(555) 123-0001", "VIP").Return(number, nil)

		w := httptest.NewRecorder()
		req := newRequest(http.MethodPost, "/sms/authorized-numbers", api.AuthorizeNumberRequest{Phone: "(555) 123-0001", Notes: ptr("VIP")}, adminID)
		f.handler(handler.Options{}).AuthorizeNumber(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		resp := decode[api.AuthorizedNumber](t, w)
		assert.Equal(t, "+15551230001", resp.Phone)
		assert.True(t, resp.ComplianceVerified)
		assert.Equal(t, "VIP", *resp.Notes)
		assert.Nil(t, resp.DeactivatedAt)
	})

	t.Run("list including inactive", func(t *testing.T) {
		f := newFixture(t)
		inactive := *number
		inactive.ID = "an-0"
		inactive.IsActive = false
		inactive.DeactivatedAt = sql.NullTime{Time: now, Valid: true}
		inactive.DeactivatedBy = sql.NullString{String: adminID, Valid: true}
		f.authorization.EXPECT().List(gomock.Any(), adminID, true).Return([]*models.AuthorizedNumber{number, &inactive}, nil)

		w := httptest.NewRecorder()
		f.handler(handler.Options{}).ListAuthorizedNumbers(w, newRequest(http.MethodGet, "/sms/authorized-numbers", nil, adminID),
			api.ListAuthorizedNumbersParams{IncludeInactive: ptr(true)})

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decode[api.AuthorizedNumberList](t, w)
		require.Len(t, resp.Numbers, 2)
		assert.False(t, resp.Numbers[1].IsActive)
		assert.Equal(t, adminID, *resp.Numbers[1].DeactivatedBy)
	})

	t.Run("list defaults to active only", func(t *testing.T) {
		f := newFixture(t)
		f.authorization.EXPECT().List(gomock.Any(), adminID, false).Return(nil, nil)

		w := httptest.NewRecorder()
		f.handler(handler.Options{}).ListAuthorizedNumbers(w, newRequest(http.MethodGet, "/sms/authorized-numbers", nil, adminID),
			api.ListAuthorizedNumbersParams{})

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("revoke", func(t *testing.T) {
		f := newFixture(t)
		f.authorization.EXPECT().Revoke(gomock.Any(), adminID, "an-1").Return(nil)

		w := httptest.NewRecorder()
		f.handler(handler.Options{}).RevokeAuthorizedNumber(w, newRequest(http.MethodDelete, "/sms/authorized-numbers/an-1", nil, adminID), "an-1")

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("revoke unknown", func(t *testing.T) {
		f := newFixture(t)
		f.authorization.EXPECT().Revoke(gomock.Any(), adminID, "missing").
			Return(&service.Error{Kind: service.ErrNotFound, Message: "Authorized number not found"})

		w := httptest.NewRecorder()
		f.handler(handler.Options{}).RevokeAuthorizedNumber(w, newRequest(http.MethodDelete, "/sms/authorized-numbers/missing", nil, adminID), "missing")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandler_Conversations(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	conversation := &models.Conversation{
		ID:            7,
		CustomerPhone: "+15551230001",
		ProfileID:     sql.NullString{String: "cust-1", Valid: true},
		LastMessageAt: now,
		Status:        models.ConversationStatusActive,
	}
	inbound := &models.Message{
		ID:             1,
		ConversationID: 7,
		Direction:      models.DirectionInbound,
		FromNumber:     "+15551230001",
		ToNumber:       "+15559990000",
		Body:           "Hi",
		Status:         models.MessageStatusReceived,
		CarrierSID:     sql.NullString{String: "SMin", Valid: true},
		SentAt:         now,
	}

	t.Run("list by status", func(t *testing.T) {
		f := newFixture(t)
		f.conversation.EXPECT().List(gomock.Any(), adminID, models.ConversationStatusArchived).Return([]*models.Conversation{conversation}, nil)

		w := httptest.NewRecorder()
		f.handler(handler.Options{}).ListConversations(w, newRequest(http.MethodGet, "/sms/conversations?status=archived", nil, adminID),
			api.ListConversationsParams{Status: ptr("archived")})

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decode[api.ConversationList](t, w)
		require.Len(t, resp.Conversations, 1)
		assert.Equal(t, "cust-1", *resp.Conversations[0].ProfileId)
	})

	t.Run("thread", func(t *testing.T) {
		f := newFixture(t)
		f.conversation.EXPECT().GetThread(gomock.Any(), adminID, int64(7)).
			Return(&service.Thread{Conversation: conversation, Messages: []*models.Message{inbound}}, nil)

		w := httptest.NewRecorder()
		f.handler(handler.Options{}).GetConversationMessages(w, newRequest(http.MethodGet, "/sms/conversations/7/messages", nil, adminID), 7)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decode[api.ConversationThread](t, w)
		assert.Equal(t, int64(7), resp.Conversation.Id)
		require.Len(t, resp.Messages, 1)
		assert.Equal(t, "SMin", *resp.Messages[0].CarrierSid)
		assert.Nil(t, resp.Messages[0].SentBy)
	})

	t.Run("reply", func(t *testing.T) {
		f := newFixture(t)
		outbound := &models.Message{
			ID:             2,
			ConversationID: 7,
			Direction:      models.DirectionOutbound,
			Body:           "We open at 11",
			Status:         models.MessageStatusQueued,
			SentBy:         sql.NullString{String: adminID, Valid: true},
			SentAt:         now,
		}
		f.conversation.EXPECT().Reply(gomock.Any(), adminID, int64(7), "We open at 11").Return(outbound, nil)

		w := httptest.NewRecorder()
		f.handler(handler.Options{}).ReplyToConversation(w,
			newRequest(http.MethodPost, "/sms/conversations/7/messages", api.SendMessageRequest{Body: "We open at 11"}, adminID), 7)

		assert.Equal(t, http.StatusCreated, w.Code)
		resp := decode[api.Message](t, w)
		assert.Equal(t, "queued", resp.Status)
		assert.Equal(t, adminID, *resp.SentBy)
	})

	t.Run("reply to revoked number", func(t *testing.T) {
		f := newFixture(t)
		f.conversation.EXPECT().Reply(gomock.Any(), adminID, int64(7), "hello").
			Return(nil, &service.Error{Kind: service.ErrCompliance, Message: "Phone number is not authorized for 1:1 messaging"})

		w := httptest.NewRecorder()
		f.handler(handler.Options{}).ReplyToConversation(w,
			newRequest(http.MethodPost, "/sms/conversations/7/messages", api.SendMessageRequest{Body: "hello"}, adminID), 7)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("direct message carrier failure", func(t *testing.T) {
		f := newFixture(t)
		f.conversation.EXPECT().SendDirect(gomock.Any(), adminID, "+15551230001", "hello").
			Return(nil, &service.Error{Kind: service.ErrCarrier, Message: "Failed to send message: carrier unavailable"})

		w := httptest.NewRecorder()
		f.handler(handler.Options{}).SendDirectMessage(w,
			newRequest(http.MethodPost, "/sms/messages", api.SendDirectMessageRequest{Phone: "+15551230001", Body: "hello"}, adminID))

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, "Failed to send message: carrier unavailable", decode[api.ErrorResponse](t, w).Message)
	})

	t.Run("archive", func(t *testing.T) {
		f := newFixture(t)
		f.conversation.EXPECT().Archive(gomock.Any(), adminID, int64(7)).Return(nil)

		w := httptest.NewRecorder()
		f.handler(handler.Options{}).ArchiveConversation(w, newRequest(http.MethodPost, "/sms/conversations/7/archive", nil, adminID), 7)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestHandler_UpdateSmsConsent(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("opt in", func(t *testing.T) {
		f := newFixture(t)
		f.consent.EXPECT().SetProfileConsent(gomock.Any(), "cust-1", true).Return(&models.Profile{
			ID:               "cust-1",
			SMSConsent:       true,
			SMSConsentMethod: sql.NullString{String: models.ConsentMethodWebForm, Valid: true},
			SMSConsentAt:     sql.NullTime{Time: at, Valid: true},
		}, nil)

		w := httptest.NewRecorder()
		f.handler(handler.Options{}).UpdateSmsConsent(w,
			newRequest(http.MethodPut, "/profile/sms-consent", api.UpdateSmsConsentRequest{Consent: true}, "cust-1"))

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decode[api.SmsConsentResponse](t, w)
		assert.True(t, resp.SmsConsent)
		assert.Equal(t, "web_form", *resp.SmsConsentMethod)
		assert.True(t, at.Equal(*resp.SmsConsentAt))
	})

	t.Run("anonymous", func(t *testing.T) {
		f := newFixture(t)
		f.consent.EXPECT().SetProfileConsent(gomock.Any(), "", false).
			Return(nil, &service.Error{Kind: service.ErrUnauthorized, Message: "Authentication required"})

		w := httptest.NewRecorder()
		f.handler(handler.Options{}).UpdateSmsConsent(w,
			newRequest(http.MethodPut, "/profile/sms-consent", api.UpdateSmsConsentRequest{Consent: false}, ""))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
