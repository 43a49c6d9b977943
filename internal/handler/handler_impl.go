// Package handler provides HTTP request handlers for the application.
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/popeskul/sms-messaging/internal/api"
	"github.com/popeskul/sms-messaging/internal/config"
	"github.com/popeskul/sms-messaging/internal/middleware"
	"github.com/popeskul/sms-messaging/internal/realtime"
	"github.com/popeskul/sms-messaging/internal/scheduler"
	"github.com/popeskul/sms-messaging/internal/service"
)

const (
	errorCodeSchedulerAlreadyRunning = "SCHEDULER_ALREADY_RUNNING"
	errorCodeSchedulerNotRunning     = "SCHEDULER_NOT_RUNNING"
	errorCodeValidation              = "VALIDATION_ERROR"
	errorCodeCompliance              = "COMPLIANCE_VIOLATION"
	errorCodeNotFound                = "NOT_FOUND"
	errorCodeDuplicate               = "ALREADY_EXISTS"
	errorCodeForbidden               = "FORBIDDEN"
	errorCodeCarrier                 = "CARRIER_ERROR"
	errorCodeInvalidParameter        = "INVALID_PARAMETER"
	errorCodeUnavailable             = "SERVICE_UNAVAILABLE"
)

const (
	errorMessageSchedulerAlreadyRunning = "Scheduler is already running"
	errorMessageSchedulerNotRunning     = "Scheduler is not running"
	errorMessageFailedToStartScheduler  = "Failed to start scheduler"
	errorMessageFailedToStopScheduler   = "Failed to stop scheduler"
	errorMessageInvalidBody             = "Request body must be valid JSON"
	errorMessageEventsUnavailable       = "Realtime events are not configured"
)

const (
	schedulerMessageStarted = "Scheduler started successfully"
	schedulerMessageStopped = "Scheduler stopped successfully"
)

// EventSubscriber opens realtime change streams.
type EventSubscriber interface {
	Subscribe(ctx context.Context, filter realtime.Filter) (*realtime.Subscription, error)
}

// Options configures the parts of the handler that sit outside the services.
type Options struct {
	Webhook config.WebhookConfig
	// AuthToken signs carrier webhooks.
	AuthToken string
	// Events is nil when realtime streaming is disabled.
	Events EventSubscriber
	// Heartbeat is the idle interval between SSE keep-alive comments.
	Heartbeat time.Duration
}

type Handler struct {
	service *service.Service
	opts    Options
	logger  *zap.Logger
}

// NewHandler creates a new handler instance that implements api.ServerInterface.
func NewHandler(service *service.Service, opts Options, logger *zap.Logger) api.ServerInterface {
	if opts.Heartbeat <= 0 {
		opts.Heartbeat = 25 * time.Second
	}
	return &Handler{
		service: service,
		opts:    opts,
		logger:  logger,
	}
}

// StartScheduler implements api.ServerInterface.
func (h *Handler) StartScheduler(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	err := h.service.Scheduler.Start()
	if err != nil {
		if errors.Is(err, scheduler.ErrSchedulerAlreadyRunning) {
			h.sendError(w, r, http.StatusConflict, errorCodeSchedulerAlreadyRunning, errorMessageSchedulerAlreadyRunning)
			return
		}

		h.logger.Error("Failed to start scheduler",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Error(err))
		h.sendError(w, r, http.StatusInternalServerError, middleware.ErrorCodeInternal, errorMessageFailedToStartScheduler)
		return
	}

	render.JSON(w, r, api.SchedulerResponse{
		Status:  api.SchedulerResponseStatusStarted,
		Message: schedulerMessageStarted,
	})
}

// StopScheduler implements api.ServerInterface.
func (h *Handler) StopScheduler(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	err := h.service.Scheduler.Stop()
	if err != nil {
		if errors.Is(err, scheduler.ErrSchedulerNotRunning) {
			h.sendError(w, r, http.StatusConflict, errorCodeSchedulerNotRunning, errorMessageSchedulerNotRunning)
			return
		}

		h.logger.Error("Failed to stop scheduler",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Error(err))
		h.sendError(w, r, http.StatusInternalServerError, middleware.ErrorCodeInternal, errorMessageFailedToStopScheduler)
		return
	}

	render.JSON(w, r, api.SchedulerResponse{
		Status:  api.SchedulerResponseStatusStopped,
		Message: schedulerMessageStopped,
	})
}

// HealthCheck implements api.ServerInterface.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := h.service.Health.GetHealth()

	response := api.HealthResponse{
		Status:    health.Status,
		Timestamp: time.Now(),
	}

	if health.SchedulerStatus != "" {
		status := health.SchedulerStatus
		response.SchedulerStatus = &status
	}

	if health.DatabaseStatus != "" {
		status := health.DatabaseStatus
		response.DatabaseStatus = &status
	}

	if health.RedisStatus != "" {
		status := health.RedisStatus
		response.RedisStatus = &status
	}

	if health.CircuitBreakerStatus != "" {
		response.CircuitBreakerStatus = &health.CircuitBreakerStatus
	}

	if health.CircuitBreakerState != "" {
		state := health.CircuitBreakerState
		response.CircuitBreakerState = &state
	}

	// Degraded stays 200 so monitors see the state while the API keeps serving.
	if health.Status == api.Unhealthy {
		render.Status(r, http.StatusServiceUnavailable)
	}

	render.JSON(w, r, response)
}

// InvalidParamHandler answers requests whose path or query parameters fail to bind.
func InvalidParamHandler(w http.ResponseWriter, r *http.Request, err error) {
	middleware.WriteError(w, r, http.StatusBadRequest, errorCodeInvalidParameter, err.Error())
}

func (h *Handler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if err := h.service.Access.RequireAdmin(r.Context(), middleware.GetActorID(r.Context())); err != nil {
		h.sendServiceError(w, r, err, "Failed to verify access")
		return false
	}
	return true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		h.sendError(w, r, http.StatusBadRequest, errorCodeValidation, errorMessageInvalidBody)
		return false
	}
	return true
}

// sendServiceError maps service error kinds to HTTP responses. Anything
// without a kind is logged and reported as an internal error with fallback.
func (h *Handler) sendServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var status int
	var code string

	switch {
	case errors.Is(err, service.ErrValidation):
		status, code = http.StatusBadRequest, errorCodeValidation
	case errors.Is(err, service.ErrCompliance):
		status, code = http.StatusUnprocessableEntity, errorCodeCompliance
	case errors.Is(err, service.ErrNotFound):
		status, code = http.StatusNotFound, errorCodeNotFound
	case errors.Is(err, service.ErrDuplicate):
		status, code = http.StatusConflict, errorCodeDuplicate
	case errors.Is(err, service.ErrUnauthorized):
		status, code = http.StatusUnauthorized, middleware.ErrorCodeUnauthorized
	case errors.Is(err, service.ErrForbidden):
		status, code = http.StatusForbidden, errorCodeForbidden
	case errors.Is(err, service.ErrCarrier):
		status, code = http.StatusBadGateway, errorCodeCarrier
		h.logger.Warn("Carrier request failed",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Error(err))
	default:
		h.logger.Error(fallback,
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Error(err))
		h.sendError(w, r, http.StatusInternalServerError, middleware.ErrorCodeInternal, fallback)
		return
	}

	h.sendError(w, r, status, code, service.Message(err, fallback))
}

func (h *Handler) sendError(w http.ResponseWriter, r *http.Request, statusCode int, errorCode, message string) {
	middleware.WriteError(w, r, statusCode, errorCode, message)
}
