package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/popeskul/sms-messaging/internal/api"
	"github.com/popeskul/sms-messaging/internal/handler"
	"github.com/popeskul/sms-messaging/internal/middleware"
	"github.com/popeskul/sms-messaging/internal/service"
	"github.com/popeskul/sms-messaging/internal/service/mocks"
)

const adminID = "admin-1"

type fixture struct {
	access        *mocks.MockAccessService
	consent       *mocks.MockConsentService
	authorization *mocks.MockAuthorizationService
	conversation  *mocks.MockConversationService
	webhook       *mocks.MockWebhookService
	batch         *mocks.MockBatchService
	audit         *mocks.MockAuditService
	scheduler     *mocks.MockSchedulerService
	health        *mocks.MockHealthService
	svc           *service.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		access:        mocks.NewMockAccessService(ctrl),
		consent:       mocks.NewMockConsentService(ctrl),
		authorization: mocks.NewMockAuthorizationService(ctrl),
		conversation:  mocks.NewMockConversationService(ctrl),
		webhook:       mocks.NewMockWebhookService(ctrl),
		batch:         mocks.NewMockBatchService(ctrl),
		audit:         mocks.NewMockAuditService(ctrl),
		scheduler:     mocks.NewMockSchedulerService(ctrl),
		health:        mocks.NewMockHealthService(ctrl),
	}
	f.svc = &service.Service{
		Access:        f.access,
		Consent:       f.consent,
		Authorization: f.authorization,
		Conversation:  f.conversation,
		Webhook:       f.webhook,
		Batch:         f.batch,
		Audit:         f.audit,
		Scheduler:     f.scheduler,
		Health:        f.health,
	}
	return f
}

func (f *fixture) handler(opts handler.Options) api.ServerInterface {
	return handler.NewHandler(f.svc, opts, zap.NewNop())
}

// newRequest builds a request as the authenticator would hand it over.
func newRequest(method, target string, body interface{}, actorID string) *http.Request {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		payload, _ := json.Marshal(b)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "test-request-id")
	if actorID != "" {
		ctx = context.WithValue(ctx, middleware.ActorIDKey, actorID)
	}
	return req.WithContext(ctx)
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func ptr[T any](v T) *T {
	return &v
}
