package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Archive a conversation
	// (POST /sms/conversations/{id}/archive)
	ArchiveConversation(w http.ResponseWriter, r *http.Request, id int64)
	// Authorize a phone number for 1:1 messaging
	// (POST /sms/authorized-numbers)
	AuthorizeNumber(w http.ResponseWriter, r *http.Request)
	// Export audit records as CSV
	// (GET /sms/audit/export)
	ExportAuditRecords(w http.ResponseWriter, r *http.Request, params ExportAuditRecordsParams)
	// Aggregate delivery statistics
	// (GET /sms/audit/stats)
	GetAuditStats(w http.ResponseWriter, r *http.Request, params GetAuditStatsParams)
	// Open a conversation thread
	// (GET /sms/conversations/{id}/messages)
	GetConversationMessages(w http.ResponseWriter, r *http.Request, id int64)
	// Health check
	// (GET /health)
	HealthCheck(w http.ResponseWriter, r *http.Request)
	// List campaign and conversation audit records
	// (GET /sms/audit)
	ListAuditRecords(w http.ResponseWriter, r *http.Request, params ListAuditRecordsParams)
	// List authorized numbers
	// (GET /sms/authorized-numbers)
	ListAuthorizedNumbers(w http.ResponseWriter, r *http.Request, params ListAuthorizedNumbersParams)
	// List conversations
	// (GET /sms/conversations)
	ListConversations(w http.ResponseWriter, r *http.Request, params ListConversationsParams)
	// Opt-out history
	// (GET /sms/opt-outs)
	ListOptOuts(w http.ResponseWriter, r *http.Request, params ListOptOutsParams)
	// Carrier inbound SMS webhook
	// (POST /webhooks/sms/inbound)
	ReceiveInboundSms(w http.ResponseWriter, r *http.Request)
	// Carrier delivery status callback
	// (POST /webhooks/sms/status)
	ReceiveStatusCallback(w http.ResponseWriter, r *http.Request)
	// Reply within a conversation
	// (POST /sms/conversations/{id}/messages)
	ReplyToConversation(w http.ResponseWriter, r *http.Request, id int64)
	// Revoke an authorized number
	// (DELETE /sms/authorized-numbers/{id})
	RevokeAuthorizedNumber(w http.ResponseWriter, r *http.Request, id string)
	// Send a campaign to a batch of users
	// (POST /sms/batch)
	SendBatch(w http.ResponseWriter, r *http.Request)
	// Message an authorized number directly
	// (POST /sms/messages)
	SendDirectMessage(w http.ResponseWriter, r *http.Request)
	// Start the status reconciler
	// (POST /scheduler/start)
	StartScheduler(w http.ResponseWriter, r *http.Request)
	// Stop the status reconciler
	// (POST /scheduler/stop)
	StopScheduler(w http.ResponseWriter, r *http.Request)
	// Server-sent change events
	// (GET /sms/events)
	StreamEvents(w http.ResponseWriter, r *http.Request, params StreamEventsParams)
	// Update the caller's SMS consent
	// (PUT /profile/sms-consent)
	UpdateSmsConsent(w http.ResponseWriter, r *http.Request)
}

// ServerInterfaceWrapper converts contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	ErrorHandlerFunc   func(w http.ResponseWriter, r *http.Request, err error)
}

type MiddlewareFunc func(http.Handler) http.Handler

func (siw *ServerInterfaceWrapper) serve(w http.ResponseWriter, r *http.Request, secured bool, fn http.HandlerFunc) {
	ctx := r.Context()
	if secured {
		ctx = context.WithValue(ctx, BearerAuthScopes, []string{})
	}

	var handler http.Handler = fn
	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}

	handler.ServeHTTP(w, r.WithContext(ctx))
}

func (siw *ServerInterfaceWrapper) bindInt64Path(w http.ResponseWriter, r *http.Request, id *int64) bool {
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "id", Err: err})
		return false
	}
	return true
}

func (siw *ServerInterfaceWrapper) bindQuery(w http.ResponseWriter, r *http.Request, name string, dest interface{}) bool {
	err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: name, Err: err})
		return false
	}
	return true
}

// ArchiveConversation operation middleware
func (siw *ServerInterfaceWrapper) ArchiveConversation(w http.ResponseWriter, r *http.Request) {
	var id int64
	if !siw.bindInt64Path(w, r, &id) {
		return
	}

	siw.serve(w, r, true, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ArchiveConversation(w, r, id)
	})
}

// AuthorizeNumber operation middleware
func (siw *ServerInterfaceWrapper) AuthorizeNumber(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, true, siw.Handler.AuthorizeNumber)
}

// ExportAuditRecords operation middleware
func (siw *ServerInterfaceWrapper) ExportAuditRecords(w http.ResponseWriter, r *http.Request) {
	var params ExportAuditRecordsParams
	if !siw.bindQuery(w, r, "search", &params.Search) ||
		!siw.bindQuery(w, r, "status", &params.Status) ||
		!siw.bindQuery(w, r, "direction", &params.Direction) ||
		!siw.bindQuery(w, r, "type", &params.Type) ||
		!siw.bindQuery(w, r, "from", &params.From) ||
		!siw.bindQuery(w, r, "to", &params.To) ||
		!siw.bindQuery(w, r, "page", &params.Page) ||
		!siw.bindQuery(w, r, "limit", &params.Limit) {
		return
	}

	siw.serve(w, r, true, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ExportAuditRecords(w, r, params)
	})
}

// GetAuditStats operation middleware
func (siw *ServerInterfaceWrapper) GetAuditStats(w http.ResponseWriter, r *http.Request) {
	var params GetAuditStatsParams
	if !siw.bindQuery(w, r, "from", &params.From) || !siw.bindQuery(w, r, "to", &params.To) {
		return
	}

	siw.serve(w, r, true, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetAuditStats(w, r, params)
	})
}

// GetConversationMessages operation middleware
func (siw *ServerInterfaceWrapper) GetConversationMessages(w http.ResponseWriter, r *http.Request) {
	var id int64
	if !siw.bindInt64Path(w, r, &id) {
		return
	}

	siw.serve(w, r, true, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetConversationMessages(w, r, id)
	})
}

// HealthCheck operation middleware
func (siw *ServerInterfaceWrapper) HealthCheck(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, false, siw.Handler.HealthCheck)
}

// ListAuditRecords operation middleware
func (siw *ServerInterfaceWrapper) ListAuditRecords(w http.ResponseWriter, r *http.Request) {
	var params ListAuditRecordsParams
	if !siw.bindQuery(w, r, "search", &params.Search) ||
		!siw.bindQuery(w, r, "status", &params.Status) ||
		!siw.bindQuery(w, r, "direction", &params.Direction) ||
		!siw.bindQuery(w, r, "type", &params.Type) ||
		!siw.bindQuery(w, r, "from", &params.From) ||
		!siw.bindQuery(w, r, "to", &params.To) ||
		!siw.bindQuery(w, r, "page", &params.Page) ||
		!siw.bindQuery(w, r, "limit", &params.Limit) {
		return
	}

	siw.serve(w, r, true, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ListAuditRecords(w, r, params)
	})
}

// ListAuthorizedNumbers operation middleware
func (siw *ServerInterfaceWrapper) ListAuthorizedNumbers(w http.ResponseWriter, r *http.Request) {
	var params ListAuthorizedNumbersParams
	if !siw.bindQuery(w, r, "includeInactive", &params.IncludeInactive) {
		return
	}

	siw.serve(w, r, true, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ListAuthorizedNumbers(w, r, params)
	})
}

// ListConversations operation middleware
func (siw *ServerInterfaceWrapper) ListConversations(w http.ResponseWriter, r *http.Request) {
	var params ListConversationsParams
	if !siw.bindQuery(w, r, "status", &params.Status) {
		return
	}

	siw.serve(w, r, true, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ListConversations(w, r, params)
	})
}

// ListOptOuts operation middleware
func (siw *ServerInterfaceWrapper) ListOptOuts(w http.ResponseWriter, r *http.Request) {
	var params ListOptOutsParams
	if !siw.bindQuery(w, r, "format", &params.Format) {
		return
	}

	siw.serve(w, r, true, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ListOptOuts(w, r, params)
	})
}

// ReceiveInboundSms operation middleware
func (siw *ServerInterfaceWrapper) ReceiveInboundSms(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, false, siw.Handler.ReceiveInboundSms)
}

// ReceiveStatusCallback operation middleware
func (siw *ServerInterfaceWrapper) ReceiveStatusCallback(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, false, siw.Handler.ReceiveStatusCallback)
}

// ReplyToConversation operation middleware
func (siw *ServerInterfaceWrapper) ReplyToConversation(w http.ResponseWriter, r *http.Request) {
	var id int64
	if !siw.bindInt64Path(w, r, &id) {
		return
	}

	siw.serve(w, r, true, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ReplyToConversation(w, r, id)
	})
}

// RevokeAuthorizedNumber operation middleware
func (siw *ServerInterfaceWrapper) RevokeAuthorizedNumber(w http.ResponseWriter, r *http.Request) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "id", Err: err})
		return
	}

	siw.serve(w, r, true, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.RevokeAuthorizedNumber(w, r, id)
	})
}

// SendBatch operation middleware
func (siw *ServerInterfaceWrapper) SendBatch(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, true, siw.Handler.SendBatch)
}

// SendDirectMessage operation middleware
func (siw *ServerInterfaceWrapper) SendDirectMessage(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, true, siw.Handler.SendDirectMessage)
}

// StartScheduler operation middleware
func (siw *ServerInterfaceWrapper) StartScheduler(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, true, siw.Handler.StartScheduler)
}

// StopScheduler operation middleware
func (siw *ServerInterfaceWrapper) StopScheduler(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, true, siw.Handler.StopScheduler)
}

// StreamEvents operation middleware
func (siw *ServerInterfaceWrapper) StreamEvents(w http.ResponseWriter, r *http.Request) {
	var params StreamEventsParams
	if !siw.bindQuery(w, r, "tables", &params.Tables) ||
		!siw.bindQuery(w, r, "conversationId", &params.ConversationId) ||
		!siw.bindQuery(w, r, "phone", &params.Phone) {
		return
	}

	siw.serve(w, r, true, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.StreamEvents(w, r, params)
	})
}

// UpdateSmsConsent operation middleware
func (siw *ServerInterfaceWrapper) UpdateSmsConsent(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, true, siw.Handler.UpdateSmsConsent)
}

type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

// Handler creates http.Handler with routing matching OpenAPI spec.
func Handler(si ServerInterface) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{})
}

type ChiServerOptions struct {
	BaseURL          string
	BaseRouter       chi.Router
	Middlewares      []MiddlewareFunc
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// HandlerWithOptions creates http.Handler with additional options
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter

	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	wrapper := ServerInterfaceWrapper{
		Handler:            si,
		HandlerMiddlewares: options.Middlewares,
		ErrorHandlerFunc:   options.ErrorHandlerFunc,
	}

	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/health", wrapper.HealthCheck)
	})
	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/webhooks/sms/inbound", wrapper.ReceiveInboundSms)
	})
	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/webhooks/sms/status", wrapper.ReceiveStatusCallback)
	})
	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/sms/batch", wrapper.SendBatch)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/sms/authorized-numbers", wrapper.ListAuthorizedNumbers)
	})
	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/sms/authorized-numbers", wrapper.AuthorizeNumber)
	})
	r.Group(func(r chi.Router) {
		r.Delete(options.BaseURL+"/sms/authorized-numbers/{id}", wrapper.RevokeAuthorizedNumber)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/sms/conversations", wrapper.ListConversations)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/sms/conversations/{id}/messages", wrapper.GetConversationMessages)
	})
	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/sms/conversations/{id}/messages", wrapper.ReplyToConversation)
	})
	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/sms/conversations/{id}/archive", wrapper.ArchiveConversation)
	})
	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/sms/messages", wrapper.SendDirectMessage)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/sms/audit", wrapper.ListAuditRecords)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/sms/audit/export", wrapper.ExportAuditRecords)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/sms/audit/stats", wrapper.GetAuditStats)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/sms/opt-outs", wrapper.ListOptOuts)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/sms/events", wrapper.StreamEvents)
	})
	r.Group(func(r chi.Router) {
		r.Put(options.BaseURL+"/profile/sms-consent", wrapper.UpdateSmsConsent)
	})
	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/scheduler/start", wrapper.StartScheduler)
	})
	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/scheduler/stop", wrapper.StopScheduler)
	})

	return r
}
