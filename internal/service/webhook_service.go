package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/popeskul/sms-messaging/internal/config"
	"github.com/popeskul/sms-messaging/internal/models"
	"github.com/popeskul/sms-messaging/internal/phone"
	"github.com/popeskul/sms-messaging/internal/realtime"
	"github.com/popeskul/sms-messaging/internal/repository"
)

const (
	ReplyUnsubscribed = "You have been unsubscribed and will no longer receive messages from us. Reply START to resubscribe."
	ReplyResubscribed = "You have been resubscribed and will receive messages from us again. Reply STOP to unsubscribe."

	inboundKeyPrefix = "sms:inbound:"
)

var (
	stopKeywords  = map[string]struct{}{"stop": {}, "stopall": {}, "unsubscribe": {}, "cancel": {}, "end": {}, "quit": {}}
	startKeywords = map[string]struct{}{"start": {}, "unstop": {}, "subscribe": {}, "yes": {}}
)

// Classify matches the whole trimmed body against the carrier keyword sets,
// ignoring case. "stop please" is an ordinary message.
func Classify(body string) Keyword {
	word := strings.ToLower(strings.TrimSpace(body))
	if _, ok := stopKeywords[word]; ok {
		return KeywordStop
	}
	if _, ok := startKeywords[word]; ok {
		return KeywordStart
	}
	return KeywordNone
}

type webhookService struct {
	cfg         *config.WebhookConfig
	repo        repository.Repository
	consent     ConsentService
	redisClient *redis.Client
	publisher   realtime.Publisher
	logger      *zap.Logger
	now         func() time.Time
}

// NewWebhookService builds the inbound handler. A nil redisClient disables
// duplicate delivery detection.
func NewWebhookService(
	cfg *config.WebhookConfig,
	repo repository.Repository,
	consent ConsentService,
	redisClient *redis.Client,
	publisher realtime.Publisher,
	logger *zap.Logger,
) WebhookService {
	return &webhookService{
		cfg:         cfg,
		repo:        repo,
		consent:     consent,
		redisClient: redisClient,
		publisher:   publisher,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *webhookService) HandleInbound(ctx context.Context, msg InboundMessage) (string, error) {
	from, err := phone.Normalize(msg.From)
	if err != nil {
		return "", newError(ErrValidation, "Invalid sender phone number")
	}

	if s.isDuplicate(ctx, msg.MessageSID) {
		s.logger.Info("Ignoring duplicate inbound delivery", zap.String("messageSid", msg.MessageSID))
		return "", nil
	}

	reply, err := s.process(ctx, from, msg)
	if err != nil {
		s.forget(ctx, msg.MessageSID)
		return "", err
	}
	return reply, nil
}

func (s *webhookService) process(ctx context.Context, from string, msg InboundMessage) (string, error) {
	keyword := Classify(msg.Body)

	var reply string
	switch keyword {
	case KeywordStop:
		note := "Opted out via SMS reply: " + strings.ToUpper(strings.TrimSpace(msg.Body))
		if err := s.consent.RecordOptOut(ctx, from, models.OptOutMethodStopKeyword, note); err != nil {
			return "", err
		}
		reply = ReplyUnsubscribed
	case KeywordStart:
		if err := s.consent.RecordOptIn(ctx, from, models.ConsentMethodStartKeyword); err != nil {
			return "", err
		}
		reply = ReplyResubscribed
	}

	if err := s.storeInbound(ctx, from, msg, keyword == KeywordNone); err != nil {
		return "", err
	}

	s.logger.Info("Processed inbound SMS",
		zap.String("messageSid", msg.MessageSID),
		zap.String("from", from),
		zap.Int("keyword", int(keyword)))

	return reply, nil
}

// storeInbound records the message in the sender's conversation. Only
// ordinary messages count as unread, and only the first delivery of a
// carrier SID bumps the counter.
func (s *webhookService) storeInbound(ctx context.Context, from string, msg InboundMessage, countUnread bool) error {
	now := s.now()

	upsert := models.ConversationUpsert{Phone: from, At: now}
	profile, err := s.repo.Profile().GetByPhone(ctx, from)
	switch {
	case err == nil:
		upsert.ProfileID = &profile.ID
	case !errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("failed to get profile: %w", err)
	}

	conversation, err := s.repo.Conversation().Upsert(ctx, upsert)
	if err != nil {
		return fmt.Errorf("failed to upsert conversation: %w", err)
	}

	to := msg.To
	if normalized, err := phone.Normalize(msg.To); err == nil {
		to = normalized
	}

	inbound := &models.Message{
		ConversationID: conversation.ID,
		Direction:      models.DirectionInbound,
		FromNumber:     from,
		ToNumber:       to,
		Body:           msg.Body,
		Status:         models.MessageStatusReceived,
		CarrierSID:     sql.NullString{String: msg.MessageSID, Valid: msg.MessageSID != ""},
		SentAt:         now,
	}

	created, err := s.repo.Message().Create(ctx, inbound)
	if err != nil {
		return fmt.Errorf("failed to store inbound message: %w", err)
	}

	if created && countUnread {
		if err := s.repo.Conversation().IncrementUnread(ctx, conversation.ID); err != nil {
			return fmt.Errorf("failed to count unread message: %w", err)
		}
	}

	publish(ctx, s.publisher, s.logger, realtime.ChangeEvent{
		Table:          realtime.TableConversations,
		Action:         realtime.ActionUpdate,
		ConversationID: conversation.ID,
		Phone:          from,
	})
	if created {
		publish(ctx, s.publisher, s.logger, realtime.ChangeEvent{
			Table:          realtime.TableMessages,
			Action:         realtime.ActionInsert,
			ConversationID: conversation.ID,
			Phone:          from,
			RecordID:       fmt.Sprintf("%d", inbound.ID),
		})
	}

	return nil
}

// HandleStatus applies a delivery report to whichever table holds the SID.
func (s *webhookService) HandleStatus(ctx context.Context, update models.StatusUpdate) error {
	if update.CarrierSID == "" {
		return newError(ErrValidation, "MessageSid is required")
	}
	update.Status = statusFromCarrier(string(update.Status))

	return applyStatus(ctx, s.repo, s.publisher, s.logger, update)
}

func (s *webhookService) isDuplicate(ctx context.Context, messageSID string) bool {
	if s.redisClient == nil || messageSID == "" {
		return false
	}

	fresh, err := s.redisClient.SetNX(ctx, inboundKeyPrefix+messageSID, s.now().Unix(), s.cfg.DedupeTTL()).Result()
	if err != nil {
		s.logger.Warn("Inbound dedupe check failed, processing anyway",
			zap.String("messageSid", messageSID),
			zap.Error(err))
		return false
	}
	return !fresh
}

// forget releases the dedupe key so a carrier retry is processed again.
func (s *webhookService) forget(ctx context.Context, messageSID string) {
	if s.redisClient == nil || messageSID == "" {
		return
	}
	if err := s.redisClient.Del(ctx, inboundKeyPrefix+messageSID).Err(); err != nil {
		s.logger.Warn("Failed to release inbound dedupe key", zap.String("messageSid", messageSID), zap.Error(err))
	}
}

// applyStatus updates non-terminal message and campaign rows carrying the SID.
func applyStatus(ctx context.Context, repo repository.Repository, publisher realtime.Publisher, logger *zap.Logger, update models.StatusUpdate) error {
	messages, err := repo.Message().UpdateStatus(ctx, update)
	if err != nil {
		return fmt.Errorf("failed to update message status: %w", err)
	}
	campaigns, err := repo.Campaign().UpdateStatus(ctx, update)
	if err != nil {
		return fmt.Errorf("failed to update campaign status: %w", err)
	}

	if messages > 0 {
		publish(ctx, publisher, logger, realtime.ChangeEvent{
			Table: realtime.TableMessages, Action: realtime.ActionUpdate, RecordID: update.CarrierSID,
		})
	}
	if campaigns > 0 {
		publish(ctx, publisher, logger, realtime.ChangeEvent{
			Table: realtime.TableCampaignSends, Action: realtime.ActionUpdate, RecordID: update.CarrierSID,
		})
	}

	logger.Debug("Applied delivery status",
		zap.String("carrierSID", update.CarrierSID),
		zap.String("status", string(update.Status)),
		zap.Int64("messagesUpdated", messages),
		zap.Int64("campaignSendsUpdated", campaigns))

	return nil
}

// statusFromCarrier folds the carrier's status vocabulary into ours.
func statusFromCarrier(status string) models.MessageStatus {
	switch s := models.MessageStatus(strings.ToLower(status)); s {
	case models.MessageStatusQueued, models.MessageStatusSending, models.MessageStatusSent,
		models.MessageStatusDelivered, models.MessageStatusFailed, models.MessageStatusUndelivered,
		models.MessageStatusReceived:
		return s
	case "accepted", "scheduled", "":
		return models.MessageStatusQueued
	case "read":
		return models.MessageStatusDelivered
	case "canceled":
		return models.MessageStatusFailed
	case "receiving":
		return models.MessageStatusReceived
	default:
		return models.MessageStatusSent
	}
}
