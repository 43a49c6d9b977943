package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/popeskul/sms-messaging/internal/api"
	"github.com/popeskul/sms-messaging/internal/middleware"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) api.ErrorResponse {
	t.Helper()
	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{"generated when absent", "", false},
		{"propagated from caller", "req-123", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			handler := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = middleware.GetRequestID(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/sms/audit", nil)
			if tt.incoming != "" {
				req.Header.Set(middleware.RequestIDHeader, tt.incoming)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			require.NotEmpty(t, seen)
			assert.Equal(t, seen, w.Header().Get(middleware.RequestIDHeader))
			if tt.keep {
				assert.Equal(t, tt.incoming, seen)
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	rl := middleware.NewRateLimiter(rate.Limit(1), 1, "/webhooks/")
	handler := rl.Middleware()(okHandler())

	send := func(path, addr string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("/sms/audit", "10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, send("/sms/audit", "10.0.0.1:5678"), "same host, different port")
	assert.Equal(t, http.StatusOK, send("/sms/audit", "10.0.0.2:1234"))

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, send("/webhooks/sms/inbound", "10.0.0.1:1234"))
	}
}

func TestRateLimiter_ErrorBody(t *testing.T) {
	rl := middleware.NewRateLimiter(rate.Limit(0), 0)
	w := httptest.NewRecorder()
	rl.Middleware()(okHandler()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sms/audit", nil))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, middleware.ErrorCodeRateLimitExceeded, resp.Error)
	assert.NotNil(t, resp.Timestamp)
}

func TestCORS(t *testing.T) {
	handler := middleware.CORS(middleware.NewCORSConfig([]string{"https://admin.example.com"}))(okHandler())

	t.Run("preflight from allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/sms/batch", nil)
		req.Header.Set("Origin", "https://admin.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://admin.example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	})

	t.Run("unknown origin gets no headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/sms/audit", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("simple request exposes headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/sms/audit/export", nil)
		req.Header.Set("Origin", "https://admin.example.com")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
	})
}

func TestRecovery(t *testing.T) {
	handler := middleware.Recovery(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("test panic")
	}))

	w := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sms/audit", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, middleware.ErrorCodeInternal, decodeError(t, w).Error)
}

func TestTimeout(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(200 * time.Millisecond):
			w.WriteHeader(http.StatusOK)
		}
	})
	handler := middleware.Timeout(20*time.Millisecond, "/sms/events")(slow)

	t.Run("slow request times out", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sms/audit", nil))

		assert.Equal(t, http.StatusRequestTimeout, w.Code)
		assert.Equal(t, middleware.ErrorCodeRequestTimeout, decodeError(t, w).Error)
	})

	t.Run("exempt path has no deadline", func(t *testing.T) {
		var hasDeadline bool
		exempt := middleware.Timeout(20*time.Millisecond, "/sms/events")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, hasDeadline = r.Context().Deadline()
			w.WriteHeader(http.StatusOK)
		}))
		w := httptest.NewRecorder()
		exempt.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sms/events", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.False(t, hasDeadline)
	})

	t.Run("fast request keeps its headers", func(t *testing.T) {
		fast := middleware.Timeout(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/xml")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("<Response></Response>"))
		}))
		w := httptest.NewRecorder()
		fast.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/webhooks/sms/inbound", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/xml", w.Header().Get("Content-Type"))
		assert.Equal(t, "<Response></Response>", w.Body.String())
	})
}

func TestLogger_PreservesFlusher(t *testing.T) {
	var flushable bool
	handler := middleware.Logger(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, flushable = w.(http.Flusher)
		w.WriteHeader(http.StatusAccepted)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sms/events", nil))

	assert.True(t, flushable)
	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestChain(t *testing.T) {
	var requestID string
	handler := middleware.Chain(&middleware.Config{
		Logger:         zap.NewNop(),
		CORS:           middleware.NewCORSConfig(nil),
		RateLimiter:    middleware.NewRateLimiter(rate.Inf, 1),
		RequestTimeout: time.Second,
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = middleware.GetRequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/health", nil).WithContext(ctx)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, requestID)
}
