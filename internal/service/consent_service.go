package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/popeskul/sms-messaging/internal/models"
	"github.com/popeskul/sms-messaging/internal/phone"
	"github.com/popeskul/sms-messaging/internal/realtime"
	"github.com/popeskul/sms-messaging/internal/repository"
)

type consentService struct {
	repo      repository.Repository
	publisher realtime.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewConsentService(repo repository.Repository, publisher realtime.Publisher, logger *zap.Logger) ConsentService {
	return &consentService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// IsEligible reports whether marketing messages may be sent to rawPhone: a
// profile must carry the number with consent granted and the number must not
// be in the opt-out ledger.
func (s *consentService) IsEligible(ctx context.Context, rawPhone string) (bool, error) {
	normalized, err := phone.Normalize(rawPhone)
	if err != nil {
		return false, nil
	}

	profile, err := s.repo.Profile().GetByPhone(ctx, normalized)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get profile: %w", err)
	}
	if !profile.SMSConsent {
		return false, nil
	}

	optedOut, err := s.repo.OptOut().Exists(ctx, normalized)
	if err != nil {
		return false, fmt.Errorf("failed to check opt-out ledger: %w", err)
	}

	return !optedOut, nil
}

func (s *consentService) RecordOptOut(ctx context.Context, rawPhone string, method models.OptOutMethod, note string) error {
	normalized, err := phone.Normalize(rawPhone)
	if err != nil {
		return newError(ErrValidation, "Invalid phone number")
	}

	now := s.now()
	entry := &models.OptOut{
		Phone:      normalized,
		OptedOutAt: now,
		Method:     method,
		Notes:      sql.NullString{String: note, Valid: note != ""},
	}

	inserted, err := s.repo.OptOut().Insert(ctx, entry)
	if err != nil {
		return fmt.Errorf("failed to record opt-out: %w", err)
	}
	if inserted {
		s.publish(ctx, realtime.ChangeEvent{Table: realtime.TableOptOuts, Action: realtime.ActionInsert, Phone: normalized})
	}

	updated, err := s.repo.Profile().SetConsentByPhone(ctx, normalized, false, string(method), now)
	if err != nil {
		return fmt.Errorf("failed to revoke profile consent: %w", err)
	}
	if updated > 0 {
		s.publish(ctx, realtime.ChangeEvent{Table: realtime.TableProfiles, Action: realtime.ActionUpdate, Phone: normalized})
	}

	s.logger.Info("Recorded opt-out",
		zap.String("phone", normalized),
		zap.String("method", string(method)),
		zap.Bool("newEntry", inserted),
		zap.Int64("profilesUpdated", updated))

	return nil
}

func (s *consentService) RecordOptIn(ctx context.Context, rawPhone string, method string) error {
	normalized, err := phone.Normalize(rawPhone)
	if err != nil {
		return newError(ErrValidation, "Invalid phone number")
	}

	removed, err := s.repo.OptOut().DeleteByPhone(ctx, normalized)
	if err != nil {
		return fmt.Errorf("failed to clear opt-out: %w", err)
	}
	if removed {
		s.publish(ctx, realtime.ChangeEvent{Table: realtime.TableOptOuts, Action: realtime.ActionDelete, Phone: normalized})
	}

	updated, err := s.repo.Profile().SetConsentByPhone(ctx, normalized, true, method, s.now())
	if err != nil {
		return fmt.Errorf("failed to grant profile consent: %w", err)
	}
	if updated > 0 {
		s.publish(ctx, realtime.ChangeEvent{Table: realtime.TableProfiles, Action: realtime.ActionUpdate, Phone: normalized})
	}

	s.logger.Info("Recorded opt-in",
		zap.String("phone", normalized),
		zap.String("method", method),
		zap.Bool("ledgerCleared", removed),
		zap.Int64("profilesUpdated", updated))

	return nil
}

// SetProfileConsent applies the self-service consent form for userID. The
// ledger follows the form so that a web opt-out blocks campaigns exactly like
// a STOP reply.
func (s *consentService) SetProfileConsent(ctx context.Context, userID string, consent bool) (*models.Profile, error) {
	if userID == "" {
		return nil, newError(ErrUnauthorized, "Authentication required")
	}

	profile, err := s.repo.Profile().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(ErrNotFound, "Profile not found")
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if profile.Phone.Valid && profile.Phone.String != "" {
		if consent {
			err = s.RecordOptIn(ctx, profile.Phone.String, models.ConsentMethodWebForm)
		} else {
			err = s.RecordOptOut(ctx, profile.Phone.String, models.OptOutMethodWebForm, "Opted out via profile settings")
		}
		if err != nil && !errors.Is(err, ErrValidation) {
			return nil, err
		}
	}

	if err := s.repo.Profile().SetConsentByID(ctx, userID, consent, models.ConsentMethodWebForm, s.now()); err != nil {
		return nil, fmt.Errorf("failed to update consent: %w", err)
	}
	s.publish(ctx, realtime.ChangeEvent{Table: realtime.TableProfiles, Action: realtime.ActionUpdate, RecordID: userID})

	return s.repo.Profile().GetByID(ctx, userID)
}

func (s *consentService) ListOptOuts(ctx context.Context) ([]*models.OptOutEntry, error) {
	entries, err := s.repo.OptOut().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list opt-outs: %w", err)
	}
	return entries, nil
}

func (s *consentService) publish(ctx context.Context, event realtime.ChangeEvent) {
	publish(ctx, s.publisher, s.logger, event)
}

// publish announces a change; a failed notification never fails the write
// that caused it.
func publish(ctx context.Context, publisher realtime.Publisher, logger *zap.Logger, event realtime.ChangeEvent) {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn("Failed to publish change event",
			zap.String("table", string(event.Table)),
			zap.String("action", string(event.Action)),
			zap.Error(err))
	}
}
