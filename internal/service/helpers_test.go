package service_test

import (
	"context"
	"database/sql"
	"testing"

	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	carriermocks "github.com/popeskul/sms-messaging/internal/carrier/mocks"
	"github.com/popeskul/sms-messaging/internal/config"
	"github.com/popeskul/sms-messaging/internal/models"
	"github.com/popeskul/sms-messaging/internal/realtime"
	"github.com/popeskul/sms-messaging/internal/repository/memstore"
	"github.com/popeskul/sms-messaging/internal/service"
)

const (
	adminID    = "admin-1"
	staffID    = "staff-1"
	adminPhone = "+15550000001"
)

func testConfig() *config.Config {
	return &config.Config{
		Carrier: config.CarrierConfig{
			AccountSID: "AC123",
			AuthToken:  "token",
			FromNumber: "+15559990000",
		},
		Webhook:    config.WebhookConfig{DedupeTTLHours: 24},
		Batch:      config.BatchConfig{MaxRecipients: 1000, SendIntervalMS: 0},
		Reconciler: config.ReconcilerConfig{IntervalSeconds: 60, BatchSize: 50, MaxAgeHours: 72},
	}
}

func newStore() *memstore.Store {
	store := memstore.New()
	store.AddProfile(models.Profile{ID: adminID, FirstName: "Ada", Role: models.RoleAdmin, Phone: nullPhone(adminPhone)})
	store.AddProfile(models.Profile{ID: staffID, FirstName: "Sam", Role: models.RoleStaff})
	return store
}

func addCustomer(store *memstore.Store, id, firstName, phone string, consent bool) {
	store.AddProfile(models.Profile{
		ID:         id,
		FirstName:  firstName,
		LastName:   "Customer",
		Email:      id + "@example.com",
		Phone:      nullPhone(phone),
		SMSConsent: consent,
		Role:       models.RoleCustomer,
	})
}

func nullPhone(phone string) sql.NullString {
	return sql.NullString{String: phone, Valid: phone != ""}
}

// recorder collects published change events.
type recorder struct {
	events []realtime.ChangeEvent
}

func (r *recorder) Publish(_ context.Context, event realtime.ChangeEvent) error {
	r.events = append(r.events, event)
	return nil
}

func (r *recorder) tables() []realtime.Table {
	out := make([]realtime.Table, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Table)
	}
	return out
}

type fixture struct {
	store     *memstore.Store
	gateway   *carriermocks.MockGateway
	publisher *recorder
	svc       *service.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &fixture{
		store:     newStore(),
		gateway:   carriermocks.NewMockGateway(ctrl),
		publisher: &recorder{},
	}
	f.svc = service.NewService(testConfig(), f.store, nil, f.gateway, f.publisher, zap.NewNop())
	return f
}
