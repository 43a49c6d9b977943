package handler_test

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
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

var auditTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func auditRecords() []models.AuditRecord {
	return []models.AuditRecord{
		{
			ID:            2,
			Type:          models.AuditTypeCampaign,
			Direction:     models.DirectionOutbound,
			RecipientName: "Eve Customer",
			Phone:         "+15551230003",
			Body:          `Hi "Eve"`,
			Status:        models.MessageStatusDelivered,
			SentBy:        adminID,
			CarrierSID:    "SMc",
			BatchID:       "batch-1",
			Timestamp:     auditTime,
		},
		{
			ID:        9,
			Type:      models.AuditTypeConversation,
			Direction: models.DirectionInbound,
			Phone:     "+15551230001",
			Body:      "STOP",
			Status:    models.MessageStatusReceived,
			Timestamp: auditTime.Add(-time.Hour),
		},
	}
}

func TestHandler_ListAuditRecords(t *testing.T) {
	from := auditTime.Add(-24 * time.Hour)
	f := newFixture(t)
	f.audit.EXPECT().ListRecords(gomock.Any(), adminID, service.AuditQuery{
		Search:    "555",
		Status:    models.MessageStatusDelivered,
		Direction: models.DirectionOutbound,
		Type:      models.AuditTypeCampaign,
		From:      &from,
		Page:      2,
		Limit:     2,
	}).Return(&service.AuditPage{Records: auditRecords(), Total: 5, Page: 2, Limit: 2}, nil)

	params := api.ListAuditRecordsParams{
		Search:    ptr("555"),
		Status:    ptr("delivered"),
		Direction: ptr("outbound"),
		Type:      ptr("campaign"),
		From:      &from,
		Page:      ptr(2),
		Limit:     ptr(2),
	}

	w := httptest.NewRecorder()
	f.handler(handler.Options{}).ListAuditRecords(w, newRequest(http.MethodGet, "/sms/audit", nil, adminID), params)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[api.AuditListResponse](t, w)
	assert.Equal(t, api.Pagination{CurrentPage: 2, ItemsPerPage: 2, TotalItems: 5, TotalPages: 3}, resp.Pagination)
	require.Len(t, resp.Records, 2)
	assert.Equal(t, api.AuditRecordTypeCampaign, resp.Records[0].Type)
	assert.Equal(t, "batch-1", *resp.Records[0].BatchId)
	assert.Nil(t, resp.Records[1].BatchId)
	assert.Nil(t, resp.Records[1].RecipientName)
}

func TestHandler_ListAuditRecords_InvalidFilter(t *testing.T) {
	f := newFixture(t)
	f.audit.EXPECT().ListRecords(gomock.Any(), adminID, gomock.Any()).
		Return(nil, &service.Error{Kind: service.ErrValidation, Message: "direction must be inbound or outbound"})

	w := httptest.NewRecorder()
	f.handler(handler.Options{}).ListAuditRecords(w, newRequest(http.MethodGet, "/sms/audit", nil, adminID),
		api.ListAuditRecordsParams{Direction: ptr("sideways")})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "direction must be inbound or outbound", decode[api.ErrorResponse](t, w).Message)
}

func TestHandler_ExportAuditRecords(t *testing.T) {
	f := newFixture(t)
	f.audit.EXPECT().ListRecords(gomock.Any(), adminID, service.AuditQuery{}).
		Return(&service.AuditPage{Records: auditRecords(), Total: 2, Page: 1, Limit: 50}, nil)

	w := httptest.NewRecorder()
	f.handler(handler.Options{}).ExportAuditRecords(w, newRequest(http.MethodGet, "/sms/audit/export", nil, adminID),
		api.ExportAuditRecordsParams{})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `attachment; filename="sms-audit-`)

	lines := strings.Split(strings.TrimSuffix(w.Body.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], `"Date/Time","Type","Direction"`))
	assert.Contains(t, lines[1], `"Hi ""Eve"""`)
	assert.Contains(t, lines[1], `"2024-05-01T12:00:00Z"`)
	assert.Contains(t, lines[2], `"STOP"`)
}

func TestHandler_GetAuditStats(t *testing.T) {
	from := auditTime.Add(-7 * 24 * time.Hour)
	f := newFixture(t)
	f.audit.EXPECT().Stats(gomock.Any(), adminID, &from, nil).Return(&service.AuditStats{
		TotalSent:    4,
		Delivered:    3,
		Failed:       1,
		Skipped:      2,
		OptedOut:     5,
		DeliveryRate: 0.75,
	}, nil)

	w := httptest.NewRecorder()
	f.handler(handler.Options{}).GetAuditStats(w, newRequest(http.MethodGet, "/sms/audit/stats", nil, adminID),
		api.GetAuditStatsParams{From: &from})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, api.AuditStats{TotalSent: 4, Delivered: 3, Failed: 1, Skipped: 2, OptedOut: 5, DeliveryRate: 0.75}, decode[api.AuditStats](t, w))
}

func TestHandler_ListOptOuts(t *testing.T) {
	entries := []*models.OptOutEntry{
		{
			OptOut: models.OptOut{
				ID:         1,
				Phone:      "+15551230001",
				OptedOutAt: auditTime,
				Method:     models.OptOutMethodStopKeyword,
				Notes:      sql.NullString{String: "Opted out via SMS reply: STOP", Valid: true},
			},
			ProfileID: sql.NullString{String: "cust-1", Valid: true},
			FirstName: sql.NullString{String: "Ann", Valid: true},
			LastName:  sql.NullString{String: "Customer", Valid: true},
			Email:     sql.NullString{String: "ann@example.com", Valid: true},
		},
	}

	t.Run("json by default", func(t *testing.T) {
		f := newFixture(t)
		f.audit.EXPECT().OptOutHistory(gomock.Any(), adminID).Return(entries, nil)

		w := httptest.NewRecorder()
		f.handler(handler.Options{}).ListOptOuts(w, newRequest(http.MethodGet, "/sms/opt-outs", nil, adminID), api.ListOptOutsParams{})

		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[api.OptOutList](t, w)
		require.Len(t, resp.OptOuts, 1)
		assert.Equal(t, "stop_keyword", resp.OptOuts[0].Method)
		assert.Equal(t, "Ann", *resp.OptOuts[0].FirstName)
	})

	t.Run("csv", func(t *testing.T) {
		f := newFixture(t)
		f.audit.EXPECT().OptOutHistory(gomock.Any(), adminID).Return(entries, nil)

		format := api.ListOptOutsParamsFormatCsv
		w := httptest.NewRecorder()
		f.handler(handler.Options{}).ListOptOuts(w, newRequest(http.MethodGet, "/sms/opt-outs?format=csv", nil, adminID),
			api.ListOptOutsParams{Format: &format})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Disposition"), "sms-opt-outs-")
		assert.Contains(t, w.Body.String(), `"+15551230001","Ann Customer","ann@example.com"`)
	})

	t.Run("unknown format", func(t *testing.T) {
		f := newFixture(t)

		format := api.ListOptOutsParamsFormat("xml")
		w := httptest.NewRecorder()
		f.handler(handler.Options{}).ListOptOuts(w, newRequest(http.MethodGet, "/sms/opt-outs?format=xml", nil, adminID),
			api.ListOptOutsParams{Format: &format})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("forbidden", func(t *testing.T) {
		f := newFixture(t)
		f.audit.EXPECT().OptOutHistory(gomock.Any(), "staff-1").
			Return(nil, &service.Error{Kind: service.ErrForbidden, Message: "Admin access required"})

		w := httptest.NewRecorder()
		f.handler(handler.Options{}).ListOptOuts(w, newRequest(http.MethodGet, "/sms/opt-outs", nil, "staff-1"), api.ListOptOutsParams{})

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
