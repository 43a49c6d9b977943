package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"

	"github.com/popeskul/sms-messaging/internal/api"
	"github.com/popeskul/sms-messaging/internal/middleware"
	"github.com/popeskul/sms-messaging/internal/models"
	"github.com/popeskul/sms-messaging/internal/service"
)

// SendBatch implements api.ServerInterface.
func (h *Handler) SendBatch(w http.ResponseWriter, r *http.Request) {
	var req api.BatchSendRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.service.Batch.SendBatch(r.Context(), middleware.GetActorID(r.Context()), service.BatchRequest{
		UserIDs:         req.UserIds,
		MessageTemplate: req.MessageTemplate,
	})
	if err != nil {
		h.sendServiceError(w, r, err, "Failed to send batch")
		return
	}

	message := fmt.Sprintf("Batch processed: %d sent, %d failed, %d skipped",
		result.Summary.Successful, result.Summary.Failed, result.Summary.Skipped)
	render.JSON(w, r, toAPIBatchResponse(result, message))
}

// ListAuthorizedNumbers implements api.ServerInterface.
func (h *Handler) ListAuthorizedNumbers(w http.ResponseWriter, r *http.Request, params api.ListAuthorizedNumbersParams) {
	includeInactive := params.IncludeInactive != nil && *params.IncludeInactive

	numbers, err := h.service.Authorization.List(r.Context(), middleware.GetActorID(r.Context()), includeInactive)
	if err != nil {
		h.sendServiceError(w, r, err, "Failed to list authorized numbers")
		return
	}

	resp := api.AuthorizedNumberList{Numbers: make([]api.AuthorizedNumber, 0, len(numbers))}
	for _, n := range numbers {
		resp.Numbers = append(resp.Numbers, toAPIAuthorizedNumber(n))
	}
	render.JSON(w, r, resp)
}

// AuthorizeNumber implements api.ServerInterface.
func (h *Handler) AuthorizeNumber(w http.ResponseWriter, r *http.Request) {
	var req api.AuthorizeNumberRequest
	if !h.decode(w, r, &req) {
		return
	}

	notes := ""
	if req.Notes != nil {
		notes = *req.Notes
	}

	number, err := h.service.Authorization.Authorize(r.Context(), middleware.GetActorID(r.Context()), req.Phone, notes)
	if err != nil {
		h.sendServiceError(w, r, err, "Failed to authorize number")
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toAPIAuthorizedNumber(number))
}

// RevokeAuthorizedNumber implements api.ServerInterface.
func (h *Handler) RevokeAuthorizedNumber(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.service.Authorization.Revoke(r.Context(), middleware.GetActorID(r.Context()), id); err != nil {
		h.sendServiceError(w, r, err, "Failed to revoke authorized number")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListConversations implements api.ServerInterface.
func (h *Handler) ListConversations(w http.ResponseWriter, r *http.Request, params api.ListConversationsParams) {
	status := models.ConversationStatus("")
	if params.Status != nil {
		status = models.ConversationStatus(*params.Status)
	}

	conversations, err := h.service.Conversation.List(r.Context(), middleware.GetActorID(r.Context()), status)
	if err != nil {
		h.sendServiceError(w, r, err, "Failed to list conversations")
		return
	}

	resp := api.ConversationList{Conversations: make([]api.Conversation, 0, len(conversations))}
	for _, c := range conversations {
		resp.Conversations = append(resp.Conversations, toAPIConversation(c))
	}
	render.JSON(w, r, resp)
}

// GetConversationMessages implements api.ServerInterface.
func (h *Handler) GetConversationMessages(w http.ResponseWriter, r *http.Request, id int64) {
	thread, err := h.service.Conversation.GetThread(r.Context(), middleware.GetActorID(r.Context()), id)
	if err != nil {
		h.sendServiceError(w, r, err, "Failed to load conversation")
		return
	}

	render.JSON(w, r, toAPIThread(thread))
}

// ReplyToConversation implements api.ServerInterface.
func (h *Handler) ReplyToConversation(w http.ResponseWriter, r *http.Request, id int64) {
	var req api.SendMessageRequest
	if !h.decode(w, r, &req) {
		return
	}

	msg, err := h.service.Conversation.Reply(r.Context(), middleware.GetActorID(r.Context()), id, req.Body)
	if err != nil {
		h.sendServiceError(w, r, err, "Failed to send reply")
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toAPIMessage(msg))
}

// ArchiveConversation implements api.ServerInterface.
func (h *Handler) ArchiveConversation(w http.ResponseWriter, r *http.Request, id int64) {
	if err := h.service.Conversation.Archive(r.Context(), middleware.GetActorID(r.Context()), id); err != nil {
		h.sendServiceError(w, r, err, "Failed to archive conversation")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SendDirectMessage implements api.ServerInterface.
func (h *Handler) SendDirectMessage(w http.ResponseWriter, r *http.Request) {
	var req api.SendDirectMessageRequest
	if !h.decode(w, r, &req) {
		return
	}

	msg, err := h.service.Conversation.SendDirect(r.Context(), middleware.GetActorID(r.Context()), req.Phone, req.Body)
	if err != nil {
		h.sendServiceError(w, r, err, "Failed to send message")
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toAPIMessage(msg))
}

// UpdateSmsConsent implements api.ServerInterface.
func (h *Handler) UpdateSmsConsent(w http.ResponseWriter, r *http.Request) {
	var req api.UpdateSmsConsentRequest
	if !h.decode(w, r, &req) {
		return
	}

	profile, err := h.service.Consent.SetProfileConsent(r.Context(), middleware.GetActorID(r.Context()), req.Consent)
	if err != nil {
		h.sendServiceError(w, r, err, "Failed to update SMS consent")
		return
	}

	render.JSON(w, r, toAPIConsent(profile))
}
