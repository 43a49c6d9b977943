package service_test

import (
	"errors"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/popeskul/sms-messaging/internal/api"
	"github.com/popeskul/sms-messaging/internal/carrier"
	carriermocks "github.com/popeskul/sms-messaging/internal/carrier/mocks"
	"github.com/popeskul/sms-messaging/internal/repository/mocks"
	"github.com/popeskul/sms-messaging/internal/service"
	servicemocks "github.com/popeskul/sms-messaging/internal/service/mocks"
)

func TestHealthService_GetHealth(t *testing.T) {
	tests := []struct {
		name                    string
		withRedis               bool
		setupMocks              func(*mocks.MockRepository, *servicemocks.MockSchedulerService, *carriermocks.MockGateway)
		expectedStatus          api.HealthResponseStatus
		expectedSchedulerStatus api.HealthResponseSchedulerStatus
		expectedDatabaseStatus  api.HealthResponseDatabaseStatus
		expectedRedisStatus     api.HealthResponseRedisStatus
		expectedCBState         api.HealthResponseCircuitBreakerState
	}{
		{
			name: "redis disabled, everything else up",
			setupMocks: func(repo *mocks.MockRepository, scheduler *servicemocks.MockSchedulerService, gateway *carriermocks.MockGateway) {
				scheduler.EXPECT().IsRunning().Return(true)
				repo.EXPECT().Ping().Return(nil)
				gateway.EXPECT().BreakerState().Return(carrier.StateClosed, uint32(10), uint32(0))
			},
			expectedStatus:          api.Healthy,
			expectedSchedulerStatus: api.HealthResponseSchedulerStatusRunning,
			expectedDatabaseStatus:  api.HealthResponseDatabaseStatusConnected,
			expectedRedisStatus:     api.HealthResponseRedisStatusDisabled,
			expectedCBState:         api.Closed,
		},
		{
			name:      "redis unreachable",
			withRedis: true,
			setupMocks: func(repo *mocks.MockRepository, scheduler *servicemocks.MockSchedulerService, gateway *carriermocks.MockGateway) {
				scheduler.EXPECT().IsRunning().Return(false)
				repo.EXPECT().Ping().Return(nil)
				gateway.EXPECT().BreakerState().Return(carrier.StateClosed, uint32(0), uint32(0))
			},
			expectedStatus:          api.Unhealthy,
			expectedSchedulerStatus: api.HealthResponseSchedulerStatusStopped,
			expectedDatabaseStatus:  api.HealthResponseDatabaseStatusConnected,
			expectedRedisStatus:     api.HealthResponseRedisStatusDisconnected,
			expectedCBState:         api.Closed,
		},
		{
			name: "database disconnected",
			setupMocks: func(repo *mocks.MockRepository, scheduler *servicemocks.MockSchedulerService, gateway *carriermocks.MockGateway) {
				scheduler.EXPECT().IsRunning().Return(true)
				repo.EXPECT().Ping().Return(errors.New("connection failed"))
				gateway.EXPECT().BreakerState().Return(carrier.StateHalfOpen, uint32(3), uint32(1))
			},
			expectedStatus:          api.Unhealthy,
			expectedSchedulerStatus: api.HealthResponseSchedulerStatusRunning,
			expectedDatabaseStatus:  api.HealthResponseDatabaseStatusDisconnected,
			expectedRedisStatus:     api.HealthResponseRedisStatusDisabled,
			expectedCBState:         api.HalfOpen,
		},
		{
			name: "carrier circuit open",
			setupMocks: func(repo *mocks.MockRepository, scheduler *servicemocks.MockSchedulerService, gateway *carriermocks.MockGateway) {
				scheduler.EXPECT().IsRunning().Return(true)
				repo.EXPECT().Ping().Return(nil)
				gateway.EXPECT().BreakerState().Return(carrier.StateOpen, uint32(100), uint32(60))
			},
			expectedStatus:          api.Degraded,
			expectedSchedulerStatus: api.HealthResponseSchedulerStatusRunning,
			expectedDatabaseStatus:  api.HealthResponseDatabaseStatusConnected,
			expectedRedisStatus:     api.HealthResponseRedisStatusDisabled,
			expectedCBState:         api.Open,
		},
		{
			name: "database down outranks open circuit",
			setupMocks: func(repo *mocks.MockRepository, scheduler *servicemocks.MockSchedulerService, gateway *carriermocks.MockGateway) {
				scheduler.EXPECT().IsRunning().Return(false)
				repo.EXPECT().Ping().Return(errors.New("connection failed"))
				gateway.EXPECT().BreakerState().Return(carrier.StateOpen, uint32(10), uint32(10))
			},
			expectedStatus:          api.Unhealthy,
			expectedSchedulerStatus: api.HealthResponseSchedulerStatusStopped,
			expectedDatabaseStatus:  api.HealthResponseDatabaseStatusDisconnected,
			expectedRedisStatus:     api.HealthResponseRedisStatusDisabled,
			expectedCBState:         api.Open,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := mocks.NewMockRepository(ctrl)
			mockScheduler := servicemocks.NewMockSchedulerService(ctrl)
			mockGateway := carriermocks.NewMockGateway(ctrl)

			var redisClient *redis.Client
			if tt.withRedis {
				redisClient = redis.NewClient(&redis.Options{Addr: "localhost:9999"})
				defer redisClient.Close()
			}

			tt.setupMocks(mockRepo, mockScheduler, mockGateway)

			status := service.NewHealthService(mockRepo, redisClient, mockScheduler, mockGateway).GetHealth()

			require.NotNil(t, status)
			assert.Equal(t, tt.expectedStatus, status.Status)
			assert.Equal(t, tt.expectedSchedulerStatus, status.SchedulerStatus)
			assert.Equal(t, tt.expectedDatabaseStatus, status.DatabaseStatus)
			assert.Equal(t, tt.expectedRedisStatus, status.RedisStatus)
			assert.Equal(t, tt.expectedCBState, status.CircuitBreakerState)
		})
	}
}

func TestHealthService_CircuitBreakerStatusFormatting(t *testing.T) {
	tests := []struct {
		name             string
		requests         uint32
		failures         uint32
		expectedCBStatus string
	}{
		{"no requests", 0, 0, "No requests yet"},
		{"all successful", 100, 0, "Requests: 100, Failures: 0 (0.0%)"},
		{"some failures", 100, 25, "Requests: 100, Failures: 25 (25.0%)"},
		{"all failures", 50, 50, "Requests: 50, Failures: 50 (100.0%)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := mocks.NewMockRepository(ctrl)
			mockScheduler := servicemocks.NewMockSchedulerService(ctrl)
			mockGateway := carriermocks.NewMockGateway(ctrl)

			mockScheduler.EXPECT().IsRunning().Return(true)
			mockRepo.EXPECT().Ping().Return(nil)
			mockGateway.EXPECT().BreakerState().Return(carrier.StateClosed, tt.requests, tt.failures)

			status := service.NewHealthService(mockRepo, nil, mockScheduler, mockGateway).GetHealth()

			assert.Equal(t, tt.expectedCBStatus, status.CircuitBreakerStatus)
		})
	}
}
