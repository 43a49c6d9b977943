package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/popeskul/sms-messaging/internal/api"
	"github.com/popeskul/sms-messaging/internal/middleware"
	"github.com/popeskul/sms-messaging/internal/phone"
	"github.com/popeskul/sms-messaging/internal/realtime"
)

var streamTables = map[realtime.Table]bool{
	realtime.TableMessages:          true,
	realtime.TableConversations:     true,
	realtime.TableOptOuts:           true,
	realtime.TableProfiles:          true,
	realtime.TableAuthorizedNumbers: true,
	realtime.TableCampaignSends:     true,
}

// StreamEvents implements api.ServerInterface as a server-sent event stream
// that ends when the client disconnects.
func (h *Handler) StreamEvents(w http.ResponseWriter, r *http.Request, params api.StreamEventsParams) {
	if !h.requireAdmin(w, r) {
		return
	}

	if h.opts.Events == nil {
		h.sendError(w, r, http.StatusServiceUnavailable, errorCodeUnavailable, errorMessageEventsUnavailable)
		return
	}

	filter, msg := streamFilter(params)
	if msg != "" {
		h.sendError(w, r, http.StatusBadRequest, errorCodeValidation, msg)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		h.sendError(w, r, http.StatusInternalServerError, "STREAMING_UNSUPPORTED", "Streaming is not supported")
		return
	}

	logger := h.logger.With(zap.String("request_id", middleware.GetRequestID(r.Context())))

	sub, err := h.opts.Events.Subscribe(r.Context(), filter)
	if err != nil {
		logger.Error("Failed to subscribe to change events", zap.Error(err))
		h.sendError(w, r, http.StatusServiceUnavailable, errorCodeUnavailable, errorMessageEventsUnavailable)
		return
	}
	defer func() {
		if err := sub.Close(); err != nil {
			logger.Debug("Failed to close change subscription", zap.Error(err))
		}
	}()

	// The server write timeout would otherwise cut long-lived streams.
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
		logger.Debug("Write deadline not adjustable for event stream", zap.Error(err))
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "retry: 3000\n\n")
	flusher.Flush()

	heartbeat := time.NewTicker(h.opts.Heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case event, ok := <-sub.Events():
			if !ok {
				return
			}
			payload, err := json.Marshal(event)
			if err != nil {
				logger.Warn("Failed to encode change event", zap.Error(err))
				continue
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Table, payload); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

// streamFilter returns a non-empty message when a parameter is invalid.
func streamFilter(params api.StreamEventsParams) (realtime.Filter, string) {
	var filter realtime.Filter

	if params.Tables != nil {
		for _, name := range strings.Split(*params.Tables, ",") {
			table := realtime.Table(strings.TrimSpace(name))
			if table == "" {
				continue
			}
			if !streamTables[table] {
				return filter, fmt.Sprintf("unknown table %q", table)
			}
			filter.Tables = append(filter.Tables, table)
		}
	}

	if params.ConversationId != nil {
		filter.ConversationID = *params.ConversationId
	}

	if params.Phone != nil && *params.Phone != "" {
		normalized, err := phone.Normalize(*params.Phone)
		if err != nil {
			return filter, "phone must be a valid phone number"
		}
		filter.Phone = normalized
	}

	return filter, ""
}
