package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/popeskul/sms-messaging/internal/models"
	"github.com/popeskul/sms-messaging/internal/phone"
	"github.com/popeskul/sms-messaging/internal/realtime"
	"github.com/popeskul/sms-messaging/internal/repository"
)

const (
	msgPhoneNotInDirectory = "Phone number not found in customer directory"
	msgPhoneOptedOut       = "Phone number has opted out of SMS communications"
	msgNoConsent           = "Customer has not consented to SMS communications"
	msgAlreadyAuthorized   = "Phone number is already authorized"
	msgAuthorizationAbsent = "Authorized number not found"
)

type authorizationService struct {
	repo      repository.Repository
	publisher realtime.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewAuthorizationService(repo repository.Repository, publisher realtime.Publisher, logger *zap.Logger) AuthorizationService {
	return &authorizationService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Authorize adds rawPhone to the 1:1 messaging allow-list after checking the
// directory, the opt-out ledger and the profile consent flag, in that order.
func (s *authorizationService) Authorize(ctx context.Context, actorID, rawPhone, notes string) (*models.AuthorizedNumber, error) {
	if err := requireAdmin(ctx, s.repo, actorID); err != nil {
		return nil, err
	}

	normalized, err := phone.Normalize(rawPhone)
	if err != nil {
		return nil, newError(ErrValidation, "Invalid phone number")
	}

	profile, err := s.repo.Profile().GetByPhone(ctx, normalized)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(ErrNotFound, msgPhoneNotInDirectory)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	optedOut, err := s.repo.OptOut().Exists(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to check opt-out ledger: %w", err)
	}
	if optedOut {
		return nil, newError(ErrCompliance, msgPhoneOptedOut)
	}

	if !profile.SMSConsent {
		return nil, newError(ErrCompliance, msgNoConsent)
	}

	now := s.now()
	notes = strings.TrimSpace(notes)
	number := &models.AuthorizedNumber{
		ID:                 uuid.NewString(),
		Phone:              normalized,
		ProfileID:          profile.ID,
		Notes:              sql.NullString{String: notes, Valid: notes != ""},
		ComplianceVerified: true,
		VerifiedAt:         now,
		IsActive:           true,
		AuthorizedBy:       actorID,
		CreatedAt:          now,
	}

	if err := s.repo.AuthorizedNumber().Create(ctx, number); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, newError(ErrDuplicate, msgAlreadyAuthorized)
		}
		return nil, fmt.Errorf("failed to create authorized number: %w", err)
	}

	publish(ctx, s.publisher, s.logger, realtime.ChangeEvent{
		Table:    realtime.TableAuthorizedNumbers,
		Action:   realtime.ActionInsert,
		Phone:    normalized,
		RecordID: number.ID,
	})

	s.logger.Info("Authorized number for direct messaging",
		zap.String("id", number.ID),
		zap.String("phone", normalized),
		zap.String("authorizedBy", actorID))

	return number, nil
}

// Revoke deactivates an allow-list entry. Entries are never deleted.
func (s *authorizationService) Revoke(ctx context.Context, actorID, id string) error {
	if err := requireAdmin(ctx, s.repo, actorID); err != nil {
		return err
	}

	if err := s.repo.AuthorizedNumber().Deactivate(ctx, id, actorID, s.now()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return newError(ErrNotFound, msgAuthorizationAbsent)
		}
		return fmt.Errorf("failed to deactivate authorized number: %w", err)
	}

	publish(ctx, s.publisher, s.logger, realtime.ChangeEvent{
		Table:    realtime.TableAuthorizedNumbers,
		Action:   realtime.ActionUpdate,
		RecordID: id,
	})

	s.logger.Info("Revoked authorized number", zap.String("id", id), zap.String("revokedBy", actorID))
	return nil
}

func (s *authorizationService) List(ctx context.Context, actorID string, includeInactive bool) ([]*models.AuthorizedNumber, error) {
	if err := requireAdmin(ctx, s.repo, actorID); err != nil {
		return nil, err
	}

	numbers, err := s.repo.AuthorizedNumber().List(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list authorized numbers: %w", err)
	}
	return numbers, nil
}
