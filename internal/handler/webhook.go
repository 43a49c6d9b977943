package handler

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/popeskul/sms-messaging/internal/carrier"
	"github.com/popeskul/sms-messaging/internal/middleware"
	"github.com/popeskul/sms-messaging/internal/models"
	"github.com/popeskul/sms-messaging/internal/service"
)

// ReceiveInboundSms implements api.ServerInterface. The carrier always gets a
// 200 XML acknowledgement; failures are logged and acked silently so the
// carrier does not retry.
func (h *Handler) ReceiveInboundSms(w http.ResponseWriter, r *http.Request) {
	reply := ""
	logger := h.logger.With(zap.String("request_id", middleware.GetRequestID(r.Context())))

	defer func() {
		if p := recover(); p != nil {
			logger.Error("Panic while handling inbound SMS", zap.Any("panic", p))
			reply = ""
		}
		writeTwiML(w, reply)
	}()

	if !h.verifyWebhook(r, logger) {
		return
	}

	msg := service.InboundMessage{
		MessageSID: r.PostForm.Get("MessageSid"),
		From:       r.PostForm.Get("From"),
		To:         r.PostForm.Get("To"),
		Body:       r.PostForm.Get("Body"),
	}
	if msg.MessageSID == "" {
		msg.MessageSID = r.PostForm.Get("SmsSid")
	}

	text, err := h.service.Webhook.HandleInbound(r.Context(), msg)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			logger.Warn("Ignoring inbound SMS", zap.String("message_sid", msg.MessageSID), zap.Error(err))
		} else {
			logger.Error("Failed to process inbound SMS", zap.String("message_sid", msg.MessageSID), zap.Error(err))
		}
		return
	}

	reply = text
}

// ReceiveStatusCallback implements api.ServerInterface.
func (h *Handler) ReceiveStatusCallback(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(zap.String("request_id", middleware.GetRequestID(r.Context())))

	defer func() {
		if p := recover(); p != nil {
			logger.Error("Panic while handling status callback", zap.Any("panic", p))
		}
		writeTwiML(w, "")
	}()

	if !h.verifyWebhook(r, logger) {
		return
	}

	update := models.StatusUpdate{
		CarrierSID:   firstNonEmpty(r.PostForm.Get("MessageSid"), r.PostForm.Get("SmsSid")),
		Status:       models.MessageStatus(firstNonEmpty(r.PostForm.Get("MessageStatus"), r.PostForm.Get("SmsStatus"))),
		ErrorCode:    r.PostForm.Get("ErrorCode"),
		ErrorMessage: r.PostForm.Get("ErrorMessage"),
	}

	if err := h.service.Webhook.HandleStatus(r.Context(), update); err != nil {
		logger.Warn("Failed to apply status callback",
			zap.String("message_sid", update.CarrierSID),
			zap.String("status", string(update.Status)),
			zap.Error(err))
	}
}

// verifyWebhook parses the form and, when enabled, checks the carrier signature.
func (h *Handler) verifyWebhook(r *http.Request, logger *zap.Logger) bool {
	if err := r.ParseForm(); err != nil {
		logger.Warn("Malformed webhook form", zap.Error(err))
		return false
	}

	if !h.opts.Webhook.ValidateSignature {
		return true
	}

	fullURL := strings.TrimRight(h.opts.Webhook.PublicURL, "/") + r.URL.RequestURI()
	if !carrier.ValidateSignature(h.opts.AuthToken, fullURL, r.PostForm, r.Header.Get(carrier.SignatureHeader)) {
		logger.Warn("Rejected webhook with invalid signature",
			zap.String("path", r.URL.Path),
			zap.String("remote_addr", r.RemoteAddr))
		return false
	}
	return true
}

func writeTwiML(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(carrier.TwiML(message))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
