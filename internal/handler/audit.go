package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/popeskul/sms-messaging/internal/api"
	"github.com/popeskul/sms-messaging/internal/middleware"
	"github.com/popeskul/sms-messaging/internal/models"
	"github.com/popeskul/sms-messaging/internal/service"
)

type auditParams struct {
	Search, Status, Direction, Type *string
	From, To                        *time.Time
	Page, Limit                     *int
}

func (p auditParams) query() service.AuditQuery {
	var q service.AuditQuery
	if p.Search != nil {
		q.Search = *p.Search
	}
	if p.Status != nil {
		q.Status = models.MessageStatus(*p.Status)
	}
	if p.Direction != nil {
		q.Direction = models.Direction(*p.Direction)
	}
	if p.Type != nil {
		q.Type = models.AuditType(*p.Type)
	}
	if p.Page != nil {
		q.Page = *p.Page
	}
	if p.Limit != nil {
		q.Limit = *p.Limit
	}
	q.From, q.To = p.From, p.To
	return q
}

// ListAuditRecords implements api.ServerInterface.
func (h *Handler) ListAuditRecords(w http.ResponseWriter, r *http.Request, params api.ListAuditRecordsParams) {
	page, err := h.service.Audit.ListRecords(r.Context(), middleware.GetActorID(r.Context()), auditParams(params).query())
	if err != nil {
		h.sendServiceError(w, r, err, "Failed to retrieve audit records")
		return
	}

	render.JSON(w, r, toAPIAuditList(page))
}

// ExportAuditRecords implements api.ServerInterface. It serializes the same
// page ListAuditRecords would return.
func (h *Handler) ExportAuditRecords(w http.ResponseWriter, r *http.Request, params api.ExportAuditRecordsParams) {
	page, err := h.service.Audit.ListRecords(r.Context(), middleware.GetActorID(r.Context()), auditParams(params).query())
	if err != nil {
		h.sendServiceError(w, r, err, "Failed to export audit records")
		return
	}

	var buf bytes.Buffer
	if err := service.WriteAuditCSV(&buf, page.Records); err != nil {
		h.sendServiceError(w, r, err, "Failed to export audit records")
		return
	}

	h.writeCSV(w, r, "sms-audit", buf.Bytes())
}

// GetAuditStats implements api.ServerInterface.
func (h *Handler) GetAuditStats(w http.ResponseWriter, r *http.Request, params api.GetAuditStatsParams) {
	stats, err := h.service.Audit.Stats(r.Context(), middleware.GetActorID(r.Context()), params.From, params.To)
	if err != nil {
		h.sendServiceError(w, r, err, "Failed to compute audit statistics")
		return
	}

	render.JSON(w, r, api.AuditStats{
		TotalSent:    stats.TotalSent,
		Delivered:    stats.Delivered,
		Failed:       stats.Failed,
		Skipped:      stats.Skipped,
		OptedOut:     stats.OptedOut,
		DeliveryRate: stats.DeliveryRate,
	})
}

// ListOptOuts implements api.ServerInterface.
func (h *Handler) ListOptOuts(w http.ResponseWriter, r *http.Request, params api.ListOptOutsParams) {
	format := api.ListOptOutsParamsFormatJson
	if params.Format != nil {
		format = *params.Format
	}
	if format != api.ListOptOutsParamsFormatJson && format != api.ListOptOutsParamsFormatCsv {
		h.sendError(w, r, http.StatusBadRequest, errorCodeValidation, "format must be json or csv")
		return
	}

	entries, err := h.service.Audit.OptOutHistory(r.Context(), middleware.GetActorID(r.Context()))
	if err != nil {
		h.sendServiceError(w, r, err, "Failed to retrieve opt-out history")
		return
	}

	if format == api.ListOptOutsParamsFormatCsv {
		var buf bytes.Buffer
		if err := service.WriteOptOutCSV(&buf, entries); err != nil {
			h.sendServiceError(w, r, err, "Failed to export opt-out history")
			return
		}
		h.writeCSV(w, r, "sms-opt-outs", buf.Bytes())
		return
	}

	resp := api.OptOutList{OptOuts: make([]api.OptOutEntry, 0, len(entries))}
	for _, e := range entries {
		resp.OptOuts = append(resp.OptOuts, toAPIOptOut(e))
	}
	render.JSON(w, r, resp)
}

func (h *Handler) writeCSV(w http.ResponseWriter, r *http.Request, name string, body []byte) {
	filename := fmt.Sprintf("%s-%s.csv", name, time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		h.logger.Warn("Failed to write CSV export",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Error(err))
	}
}
