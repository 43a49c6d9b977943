package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/popeskul/sms-messaging/internal/carrier"
	"github.com/popeskul/sms-messaging/internal/config"
	"github.com/popeskul/sms-messaging/internal/models"
	"github.com/popeskul/sms-messaging/internal/phone"
	"github.com/popeskul/sms-messaging/internal/realtime"
	"github.com/popeskul/sms-messaging/internal/repository"
)

const (
	msgConversationNotFound = "Conversation not found"
	msgEmptyBody            = "Message body is required"
	msgNotAuthorized        = "Phone number is not authorized for direct messaging"
	msgNotEligible          = "Phone number is no longer eligible to receive SMS"
)

type conversationService struct {
	cfg       *config.CarrierConfig
	repo      repository.Repository
	consent   ConsentService
	gateway   carrier.Gateway
	publisher realtime.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewConversationService(
	cfg *config.CarrierConfig,
	repo repository.Repository,
	consent ConsentService,
	gateway carrier.Gateway,
	publisher realtime.Publisher,
	logger *zap.Logger,
) ConversationService {
	return &conversationService{
		cfg:       cfg,
		repo:      repo,
		consent:   consent,
		gateway:   gateway,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *conversationService) List(ctx context.Context, actorID string, status models.ConversationStatus) ([]*models.Conversation, error) {
	if err := requireAdmin(ctx, s.repo, actorID); err != nil {
		return nil, err
	}

	switch status {
	case "", models.ConversationStatusActive, models.ConversationStatusArchived:
	default:
		return nil, newError(ErrValidation, "Status must be active or archived")
	}

	conversations, err := s.repo.Conversation().List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return conversations, nil
}

// GetThread opens a conversation, which clears its unread counter.
func (s *conversationService) GetThread(ctx context.Context, actorID string, conversationID int64) (*Thread, error) {
	if err := requireAdmin(ctx, s.repo, actorID); err != nil {
		return nil, err
	}

	conversation, err := s.getConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	messages, err := s.repo.Message().ListByConversation(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	if conversation.UnreadCount > 0 {
		if err := s.repo.Conversation().MarkRead(ctx, conversationID); err != nil {
			return nil, fmt.Errorf("failed to mark conversation read: %w", err)
		}
		conversation.UnreadCount = 0
		publish(ctx, s.publisher, s.logger, realtime.ChangeEvent{
			Table:          realtime.TableConversations,
			Action:         realtime.ActionUpdate,
			ConversationID: conversationID,
			Phone:          conversation.CustomerPhone,
		})
	}

	return &Thread{Conversation: conversation, Messages: messages}, nil
}

func (s *conversationService) Archive(ctx context.Context, actorID string, conversationID int64) error {
	if err := requireAdmin(ctx, s.repo, actorID); err != nil {
		return err
	}

	if err := s.repo.Conversation().SetStatus(ctx, conversationID, models.ConversationStatusArchived); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return newError(ErrNotFound, msgConversationNotFound)
		}
		return fmt.Errorf("failed to archive conversation: %w", err)
	}

	publish(ctx, s.publisher, s.logger, realtime.ChangeEvent{
		Table:          realtime.TableConversations,
		Action:         realtime.ActionUpdate,
		ConversationID: conversationID,
	})
	return nil
}

func (s *conversationService) Reply(ctx context.Context, actorID string, conversationID int64, body string) (*models.Message, error) {
	if err := requireAdmin(ctx, s.repo, actorID); err != nil {
		return nil, err
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, newError(ErrValidation, msgEmptyBody)
	}

	conversation, err := s.getConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	return s.sendToAuthorized(ctx, actorID, conversation.CustomerPhone, body)
}

func (s *conversationService) SendDirect(ctx context.Context, actorID, rawPhone, body string) (*models.Message, error) {
	if err := requireAdmin(ctx, s.repo, actorID); err != nil {
		return nil, err
	}

	normalized, err := phone.Normalize(rawPhone)
	if err != nil {
		return nil, newError(ErrValidation, "Invalid phone number")
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, newError(ErrValidation, msgEmptyBody)
	}

	return s.sendToAuthorized(ctx, actorID, normalized, body)
}

// sendToAuthorized delivers body to an allow-listed number and records the
// outbound message whatever the carrier answers.
func (s *conversationService) sendToAuthorized(ctx context.Context, actorID, to, body string) (*models.Message, error) {
	authorized, err := s.repo.AuthorizedNumber().GetActiveByPhone(ctx, to)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(ErrCompliance, msgNotAuthorized)
		}
		return nil, fmt.Errorf("failed to check authorized numbers: %w", err)
	}

	eligible, err := s.consent.IsEligible(ctx, to)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, newError(ErrCompliance, msgNotEligible)
	}

	now := s.now()
	profileID := authorized.ProfileID
	conversation, err := s.repo.Conversation().Upsert(ctx, models.ConversationUpsert{
		Phone:     to,
		ProfileID: &profileID,
		At:        now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert conversation: %w", err)
	}

	msg := &models.Message{
		ConversationID: conversation.ID,
		Direction:      models.DirectionOutbound,
		FromNumber:     s.cfg.FromNumber,
		ToNumber:       to,
		Body:           body,
		SentBy:         sql.NullString{String: actorID, Valid: true},
		SentAt:         now,
	}

	result, sendErr := s.gateway.Send(ctx, carrier.SendRequest{To: to, Body: body})
	if sendErr != nil {
		code, message := carrier.Describe(sendErr)
		msg.Status = models.MessageStatusFailed
		msg.ErrorCode = sql.NullString{String: code, Valid: code != ""}
		msg.ErrorMessage = sql.NullString{String: message, Valid: message != ""}
	} else {
		msg.Status = statusFromCarrier(result.Status)
		msg.CarrierSID = sql.NullString{String: result.SID, Valid: result.SID != ""}
		msg.ErrorCode = sql.NullString{String: result.ErrorCode, Valid: result.ErrorCode != ""}
		msg.ErrorMessage = sql.NullString{String: result.ErrorMessage, Valid: result.ErrorMessage != ""}
	}

	if _, err := s.repo.Message().Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to store outbound message: %w", err)
	}

	publish(ctx, s.publisher, s.logger, realtime.ChangeEvent{
		Table:          realtime.TableMessages,
		Action:         realtime.ActionInsert,
		ConversationID: conversation.ID,
		Phone:          to,
		RecordID:       fmt.Sprintf("%d", msg.ID),
	})

	if sendErr != nil {
		s.logger.Error("Failed to send direct message",
			zap.Int64("conversationID", conversation.ID),
			zap.String("to", to),
			zap.Error(sendErr))
		return nil, newError(ErrCarrier, "Failed to send message: "+msg.ErrorMessage.String)
	}

	s.logger.Info("Direct message sent",
		zap.Int64("conversationID", conversation.ID),
		zap.String("carrierSID", msg.CarrierSID.String),
		zap.String("status", string(msg.Status)))

	return msg, nil
}

func (s *conversationService) getConversation(ctx context.Context, id int64) (*models.Conversation, error) {
	conversation, err := s.repo.Conversation().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(ErrNotFound, msgConversationNotFound)
		}
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	return conversation, nil
}
