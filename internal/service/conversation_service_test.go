package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/popeskul/sms-messaging/internal/carrier"
	"github.com/popeskul/sms-messaging/internal/models"
	"github.com/popeskul/sms-messaging/internal/service"
)

const customerPhone = "+15551230001"

func authorizedFixture(t *testing.T) *fixture {
	t.Helper()

	f := newFixture(t)
	addCustomer(f.store, "u1", "Ann", customerPhone, true)
	_, err := f.svc.Authorization.Authorize(context.Background(), adminID, customerPhone, "")
	require.NoError(t, err)
	return f
}

func TestConversationService_SendDirect(t *testing.T) {
	f := authorizedFixture(t)
	ctx := context.Background()

	f.gateway.EXPECT().
		Send(gomock.Any(), carrier.SendRequest{To: customerPhone, Body: "Your table is ready"}).
		Return(&carrier.SendResult{SID: "SM1", Status: "queued"}, nil)

	msg, err := f.svc.Conversation.SendDirect(ctx, adminID, "555.123.0001", " Your table is ready ")
	require.NoError(t, err)
	assert.Equal(t, models.DirectionOutbound, msg.Direction)
	assert.Equal(t, models.MessageStatusQueued, msg.Status)
	assert.Equal(t, "SM1", msg.CarrierSID.String)
	assert.Equal(t, adminID, msg.SentBy.String)
	assert.Equal(t, "+15559990000", msg.FromNumber)

	conversations, err := f.svc.Conversation.List(ctx, adminID, "")
	require.NoError(t, err)
	require.Len(t, conversations, 1)
	assert.Equal(t, customerPhone, conversations[0].CustomerPhone)
	assert.Equal(t, 0, conversations[0].UnreadCount)
	assert.Equal(t, "u1", conversations[0].ProfileID.String)
}

func TestConversationService_SendDirect_Rejections(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(f *fixture)
		phone       string
		body        string
		expectedErr error
	}{
		{
			name:        "not authorized",
			setup:       func(f *fixture) { addCustomer(f.store, "u2", "Bo", "+15551230002", true) },
			phone:       "+15551230002",
			body:        "hi",
			expectedErr: service.ErrCompliance,
		},
		{
			name: "opted out after authorization",
			setup: func(f *fixture) {
				require.NoError(t, f.svc.Consent.RecordOptOut(context.Background(), customerPhone, models.OptOutMethodStopKeyword, ""))
			},
			phone:       customerPhone,
			body:        "hi",
			expectedErr: service.ErrCompliance,
		},
		{
			name:        "empty body",
			setup:       func(*fixture) {},
			phone:       customerPhone,
			body:        "   ",
			expectedErr: service.ErrValidation,
		},
		{
			name:        "invalid phone",
			setup:       func(*fixture) {},
			phone:       "0",
			body:        "hi",
			expectedErr: service.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := authorizedFixture(t)
			tt.setup(f)

			_, err := f.svc.Conversation.SendDirect(context.Background(), adminID, tt.phone, tt.body)
			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Empty(t, f.store.Messages())
		})
	}
}

func TestConversationService_SendDirect_CarrierFailureIsRecorded(t *testing.T) {
	f := authorizedFixture(t)

	f.gateway.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		Return(nil, &carrier.Error{Code: 21610, Message: "Attempt to send to unsubscribed recipient", HTTPStatus: 400})

	_, err := f.svc.Conversation.SendDirect(context.Background(), adminID, customerPhone, "hi")
	require.ErrorIs(t, err, service.ErrCarrier)

	messages := f.store.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, models.MessageStatusFailed, messages[0].Status)
	assert.Equal(t, "21610", messages[0].ErrorCode.String)
	assert.Equal(t, "Attempt to send to unsubscribed recipient", messages[0].ErrorMessage.String)
	assert.False(t, messages[0].CarrierSID.Valid)
}

func TestConversationService_ThreadLifecycle(t *testing.T) {
	f := authorizedFixture(t)
	ctx := context.Background()

	for _, sid := range []string{"SMin1", "SMin2"} {
		_, err := f.svc.Webhook.HandleInbound(ctx, service.InboundMessage{MessageSID: sid, From: customerPhone, To: "+15559990000", Body: "hello"})
		require.NoError(t, err)
	}

	conversations, err := f.svc.Conversation.List(ctx, adminID, models.ConversationStatusActive)
	require.NoError(t, err)
	require.Len(t, conversations, 1)
	id := conversations[0].ID
	assert.Equal(t, 2, conversations[0].UnreadCount)

	thread, err := f.svc.Conversation.GetThread(ctx, adminID, id)
	require.NoError(t, err)
	assert.Len(t, thread.Messages, 2)
	assert.Equal(t, 0, thread.Conversation.UnreadCount)

	f.gateway.EXPECT().
		Send(gomock.Any(), carrier.SendRequest{To: customerPhone, Body: "See you soon"}).
		Return(&carrier.SendResult{SID: "SMout", Status: "sent"}, nil)

	reply, err := f.svc.Conversation.Reply(ctx, adminID, id, "See you soon")
	require.NoError(t, err)
	assert.Equal(t, id, reply.ConversationID)

	require.NoError(t, f.svc.Conversation.Archive(ctx, adminID, id))
	archived, err := f.svc.Conversation.List(ctx, adminID, models.ConversationStatusArchived)
	require.NoError(t, err)
	require.Len(t, archived, 1)

	// new inbound traffic re-opens the conversation
	_, err = f.svc.Webhook.HandleInbound(ctx, service.InboundMessage{MessageSID: "SMin3", From: customerPhone, Body: "one more"})
	require.NoError(t, err)
	active, err := f.svc.Conversation.List(ctx, adminID, models.ConversationStatusActive)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, 1, active[0].UnreadCount)
}

func TestConversationService_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Conversation.GetThread(ctx, adminID, 42)
	assert.ErrorIs(t, err, service.ErrNotFound)

	assert.ErrorIs(t, f.svc.Conversation.Archive(ctx, adminID, 42), service.ErrNotFound)

	_, err = f.svc.Conversation.Reply(ctx, adminID, 42, "hi")
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = f.svc.Conversation.List(ctx, adminID, "deleted")
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = f.svc.Conversation.List(ctx, staffID, "")
	assert.ErrorIs(t, err, service.ErrForbidden)
}
