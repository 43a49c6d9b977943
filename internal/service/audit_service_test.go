package service_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/popeskul/sms-messaging/internal/models"
	"github.com/popeskul/sms-messaging/internal/service"
)

// seedAudit stores two campaign rows (timestamped now) and two conversation
// messages, one an hour ahead and one an hour behind.
func seedAudit(t *testing.T, f *fixture) time.Time {
	t.Helper()
	ctx := context.Background()
	now := time.Now()

	addCustomer(f.store, "u1", "Ann", "+15551230001", true)
	addCustomer(f.store, "u2", "Bo", "+15551230002", true)

	require.NoError(t, f.store.Campaign().Create(ctx, &models.CampaignSend{
		BatchID: "batch-1", UserID: "u1", Phone: nullPhone("+15551230001"),
		MessageBody: "Pizza night", Status: models.MessageStatusQueued,
		CarrierSID: sql.NullString{String: "SMc1", Valid: true}, SentBy: adminID,
	}))
	require.NoError(t, f.store.Campaign().Create(ctx, &models.CampaignSend{
		BatchID: "batch-1", UserID: "u2", Phone: nullPhone("+15551230002"),
		MessageBody: "Pizza night", Status: models.MessageStatusSkipped,
		ErrorMessage: sql.NullString{String: "User has opted out", Valid: true}, SentBy: adminID,
	}))

	profileID := "u2"
	conv, err := f.store.Conversation().Upsert(ctx, models.ConversationUpsert{Phone: "+15551230002", ProfileID: &profileID, At: now})
	require.NoError(t, err)

	_, err = f.store.Message().Create(ctx, &models.Message{
		ConversationID: conv.ID, Direction: models.DirectionInbound, Body: "Where is my order?",
		Status: models.MessageStatusReceived, CarrierSID: sql.NullString{String: "SMi1", Valid: true},
		SentAt: now.Add(time.Hour),
	})
	require.NoError(t, err)
	_, err = f.store.Message().Create(ctx, &models.Message{
		ConversationID: conv.ID, Direction: models.DirectionOutbound, Body: "On its way",
		Status: models.MessageStatusDelivered, CarrierSID: sql.NullString{String: "SMo1", Valid: true},
		SentBy: sql.NullString{String: adminID, Valid: true}, SentAt: now.Add(-time.Hour),
	})
	require.NoError(t, err)

	return now
}

func TestAuditService_ListRecords_MergesSources(t *testing.T) {
	f := newFixture(t)
	seedAudit(t, f)

	page, err := f.svc.Audit.ListRecords(context.Background(), adminID, service.AuditQuery{Limit: 3})
	require.NoError(t, err)

	assert.Equal(t, int64(4), page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 3, page.Limit)
	require.Len(t, page.Records, 3)

	first := page.Records[0]
	assert.Equal(t, models.AuditTypeConversation, first.Type)
	assert.Equal(t, models.DirectionInbound, first.Direction)
	assert.Equal(t, "Where is my order?", first.Body)
	assert.Equal(t, "Bo Customer", first.RecipientName)
	assert.Equal(t, "u2@example.com", first.Email)

	for _, r := range page.Records[1:] {
		assert.Equal(t, models.AuditTypeCampaign, r.Type)
		assert.Equal(t, "batch-1", r.BatchID)
		assert.Equal(t, models.DirectionOutbound, r.Direction)
	}
	for i := 1; i < len(page.Records); i++ {
		assert.False(t, page.Records[i].Timestamp.After(page.Records[i-1].Timestamp))
	}
}

func TestAuditService_ListRecords_Filters(t *testing.T) {
	tests := []struct {
		name          string
		query         service.AuditQuery
		expectedTotal int64
		expectedBody  []string
	}{
		{
			name:          "inbound excludes campaigns",
			query:         service.AuditQuery{Direction: models.DirectionInbound},
			expectedTotal: 1,
			expectedBody:  []string{"Where is my order?"},
		},
		{
			name:          "campaign type only",
			query:         service.AuditQuery{Type: models.AuditTypeCampaign},
			expectedTotal: 2,
			expectedBody:  []string{"Pizza night", "Pizza night"},
		},
		{
			name:          "conversation outbound",
			query:         service.AuditQuery{Type: models.AuditTypeConversation, Direction: models.DirectionOutbound},
			expectedTotal: 1,
			expectedBody:  []string{"On its way"},
		},
		{
			name:          "search is case-insensitive on body",
			query:         service.AuditQuery{Search: "PIZZA"},
			expectedTotal: 2,
			expectedBody:  []string{"Pizza night", "Pizza night"},
		},
		{
			name:          "search matches phone digits",
			query:         service.AuditQuery{Search: "1230001"},
			expectedTotal: 1,
			expectedBody:  []string{"Pizza night"},
		},
		{
			name:          "search matches formatted phone",
			query:         service.AuditQuery{Search: "(555) 123-0001"},
			expectedTotal: 1,
			expectedBody:  []string{"Pizza night"},
		},
		{
			name:          "status",
			query:         service.AuditQuery{Status: models.MessageStatusDelivered},
			expectedTotal: 1,
			expectedBody:  []string{"On its way"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			seedAudit(t, f)

			page, err := f.svc.Audit.ListRecords(context.Background(), adminID, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedTotal, page.Total)

			bodies := make([]string, 0, len(page.Records))
			for _, r := range page.Records {
				bodies = append(bodies, r.Body)
			}
			assert.Equal(t, tt.expectedBody, bodies)
		})
	}
}

func TestAuditService_ListRecords_DateRange(t *testing.T) {
	f := newFixture(t)
	now := seedAudit(t, f)

	from := now.Add(30 * time.Minute)
	page, err := f.svc.Audit.ListRecords(context.Background(), adminID, service.AuditQuery{From: &from})
	require.NoError(t, err)
	require.Len(t, page.Records, 1)
	assert.Equal(t, "SMi1", page.Records[0].CarrierSID)
}

func TestAuditService_ListRecords_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	from := time.Now()
	to := from.Add(-time.Hour)

	for name, query := range map[string]service.AuditQuery{
		"direction": {Direction: "sideways"},
		"type":      {Type: "email"},
		"limit":     {Limit: service.MaxAuditLimit + 1},
		"range":     {From: &from, To: &to},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.Audit.ListRecords(ctx, adminID, query)
			assert.ErrorIs(t, err, service.ErrValidation)
		})
	}

	_, err := f.svc.Audit.ListRecords(ctx, staffID, service.AuditQuery{})
	assert.ErrorIs(t, err, service.ErrForbidden)
}

func TestAuditService_Stats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedAudit(t, f)

	require.NoError(t, f.svc.Webhook.HandleStatus(ctx, models.StatusUpdate{CarrierSID: "SMc1", Status: "undelivered"}))
	require.NoError(t, f.svc.Consent.RecordOptOut(ctx, "+15551230002", models.OptOutMethodStopKeyword, ""))

	stats, err := f.svc.Audit.Stats(ctx, adminID, nil, nil)
	require.NoError(t, err)

	// one non-skipped campaign row plus one outbound message
	assert.Equal(t, int64(2), stats.TotalSent)
	assert.Equal(t, int64(1), stats.Delivered)
	assert.Equal(t, int64(1), stats.Failed)
	assert.Equal(t, int64(1), stats.Skipped)
	assert.Equal(t, int64(1), stats.OptedOut)
	assert.InDelta(t, 0.5, stats.DeliveryRate, 0.0001)
}

func TestAuditService_Stats_Empty(t *testing.T) {
	f := newFixture(t)

	stats, err := f.svc.Audit.Stats(context.Background(), adminID, nil, nil)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalSent)
	assert.Zero(t, stats.DeliveryRate)
}

func TestAuditService_OptOutHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	addCustomer(f.store, "u1", "Ann", "+15551230001", true)
	require.NoError(t, f.svc.Consent.RecordOptOut(ctx, "+15551230001", models.OptOutMethodManual, "asked by phone"))

	entries, err := f.svc.Audit.OptOutHistory(ctx, adminID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Ann", entries[0].FirstName.String)

	_, err = f.svc.Audit.OptOutHistory(ctx, staffID)
	assert.ErrorIs(t, err, service.ErrForbidden)
}
