package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/popeskul/sms-messaging/internal/api"
	"github.com/popeskul/sms-messaging/internal/carrier"
	"github.com/popeskul/sms-messaging/internal/repository"
)

const redisPingTimeout = 2 * time.Second

type healthService struct {
	repo        repository.Repository
	redisClient *redis.Client
	scheduler   SchedulerService
	gateway     carrier.Gateway
}

// NewHealthService reports on every dependency. A nil redisClient is
// reported as disabled rather than disconnected.
func NewHealthService(
	repo repository.Repository,
	redisClient *redis.Client,
	scheduler SchedulerService,
	gateway carrier.Gateway,
) HealthService {
	return &healthService{
		repo:        repo,
		redisClient: redisClient,
		scheduler:   scheduler,
		gateway:     gateway,
	}
}

func (s *healthService) GetHealth() *HealthStatus {
	state, requests, failures := s.gateway.BreakerState()

	status := &HealthStatus{
		SchedulerStatus:      s.schedulerStatus(),
		DatabaseStatus:       s.databaseStatus(),
		RedisStatus:          s.redisStatus(),
		CircuitBreakerState:  api.HealthResponseCircuitBreakerState(state),
		CircuitBreakerStatus: breakerSummary(requests, failures),
	}

	switch {
	case status.DatabaseStatus != api.HealthResponseDatabaseStatusConnected,
		status.RedisStatus == api.HealthResponseRedisStatusDisconnected:
		status.Status = api.Unhealthy
	case state == carrier.StateOpen:
		// Inbound webhooks and reporting keep working; only sends fail.
		status.Status = api.Degraded
	default:
		status.Status = api.Healthy
	}

	return status
}

func (s *healthService) schedulerStatus() api.HealthResponseSchedulerStatus {
	if s.scheduler.IsRunning() {
		return api.HealthResponseSchedulerStatusRunning
	}
	return api.HealthResponseSchedulerStatusStopped
}

func (s *healthService) databaseStatus() api.HealthResponseDatabaseStatus {
	if err := s.repo.Ping(); err != nil {
		return api.HealthResponseDatabaseStatusDisconnected
	}
	return api.HealthResponseDatabaseStatusConnected
}

func (s *healthService) redisStatus() api.HealthResponseRedisStatus {
	if s.redisClient == nil {
		return api.HealthResponseRedisStatusDisabled
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()

	if err := s.redisClient.Ping(ctx).Err(); err != nil {
		return api.HealthResponseRedisStatusDisconnected
	}
	return api.HealthResponseRedisStatusConnected
}

func breakerSummary(requests, failures uint32) string {
	if requests == 0 {
		return "No requests yet"
	}
	rate := float64(failures) / float64(requests) * 100
	return fmt.Sprintf("Requests: %d, Failures: %d (%.1f%%)", requests, failures, rate)
}
