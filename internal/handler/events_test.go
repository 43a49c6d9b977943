package handler_test

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/popeskul/sms-messaging/internal/api"
	"github.com/popeskul/sms-messaging/internal/handler"
	"github.com/popeskul/sms-messaging/internal/middleware"
	"github.com/popeskul/sms-messaging/internal/realtime"
	"github.com/popeskul/sms-messaging/internal/service"
)

func TestHandler_StreamEvents_Rejections(t *testing.T) {
	offline := realtime.NewHub(redis.NewClient(&redis.Options{Addr: "localhost:9999"}), zap.NewNop())

	tests := []struct {
		name           string
		events         handler.EventSubscriber
		params         api.StreamEventsParams
		adminErr       error
		expectedStatus int
	}{
		{
			name:           "not an admin",
			events:         offline,
			adminErr:       &service.Error{Kind: service.ErrForbidden, Message: "Admin access required"},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "streaming disabled",
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name:           "unknown table",
			events:         offline,
			params:         api.StreamEventsParams{Tables: ptr("messages,orders")},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid phone",
			events:         offline,
			params:         api.StreamEventsParams{Phone: ptr("12")},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "redis unreachable",
			events:         offline,
			params:         api.StreamEventsParams{Tables: ptr("messages")},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.access.EXPECT().RequireAdmin(gomock.Any(), adminID).Return(tt.adminErr)

			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()

			w := httptest.NewRecorder()
			req := newRequest(http.MethodGet, "/sms/events", nil, adminID)
			req = req.WithContext(context.WithValue(ctx, middleware.ActorIDKey, adminID))
			f.handler(handler.Options{Events: tt.events}).StreamEvents(w, req, tt.params)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	t.Cleanup(func() {
		_ = client.Close()
		_ = container.Terminate(ctx)
	})
	return client
}

func TestHandler_StreamEvents(t *testing.T) {
	client := startRedis(t)
	hub := realtime.NewHub(client, zap.NewNop())

	f := newFixture(t)
	f.access.EXPECT().RequireAdmin(gomock.Any(), adminID).Return(nil)
	h := f.handler(handler.Options{Events: hub, Heartbeat: time.Hour})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), middleware.ActorIDKey, adminID)
		h.StreamEvents(w, r.WithContext(ctx), api.StreamEventsParams{
			Tables:         ptr("messages"),
			ConversationId: ptr(int64(42)),
		})
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "retry: 3000\n", line)

	require.NoError(t, hub.Publish(ctx, realtime.ChangeEvent{Table: realtime.TableConversations, Action: realtime.ActionUpdate, ConversationID: 42}))
	require.NoError(t, hub.Publish(ctx, realtime.ChangeEvent{Table: realtime.TableMessages, Action: realtime.ActionInsert, ConversationID: 7}))
	require.NoError(t, hub.Publish(ctx, realtime.ChangeEvent{Table: realtime.TableMessages, Action: realtime.ActionInsert, ConversationID: 42, RecordID: "SM42"}))

	var eventLine, dataLine string
	for eventLine == "" || dataLine == "" {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		switch {
		case strings.HasPrefix(line, "event: "):
			eventLine = strings.TrimSpace(line)
		case strings.HasPrefix(line, "data: "):
			dataLine = strings.TrimSpace(line)
		}
	}

	assert.Equal(t, "event: messages", eventLine)
	assert.Contains(t, dataLine, `"recordId":"SM42"`)
	assert.Contains(t, dataLine, `"conversationId":42`)
}
