package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/popeskul/sms-messaging/internal/models"
	"github.com/popeskul/sms-messaging/internal/repository"
)

// Error kinds. Handlers map them to HTTP status codes with errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrCompliance   = errors.New("compliance check failed")
	ErrNotFound     = errors.New("not found")
	ErrDuplicate    = errors.New("already exists")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrCarrier      = errors.New("carrier request failed")
)

// Error carries a user-facing message alongside its kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Message returns the user-facing text of err, or fallback when err does
// not carry one.
func Message(err error, fallback string) string {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Message
	}
	return fallback
}

// requireAdmin resolves the actor's role server-side.
func requireAdmin(ctx context.Context, repo repository.Repository, actorID string) error {
	if actorID == "" {
		return newError(ErrUnauthorized, "Authentication required")
	}

	role, err := repo.Profile().GetRole(ctx, actorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return newError(ErrUnauthorized, "Unknown user")
		}
		return fmt.Errorf("failed to resolve role: %w", err)
	}

	if role != models.RoleAdmin {
		return newError(ErrForbidden, "Admin access required")
	}
	return nil
}
