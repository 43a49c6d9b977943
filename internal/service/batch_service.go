package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/popeskul/sms-messaging/internal/carrier"
	"github.com/popeskul/sms-messaging/internal/config"
	"github.com/popeskul/sms-messaging/internal/models"
	"github.com/popeskul/sms-messaging/internal/phone"
	"github.com/popeskul/sms-messaging/internal/realtime"
	"github.com/popeskul/sms-messaging/internal/repository"
)

const (
	firstNamePlaceholder = "[First Name]"
	firstNameFallback    = "Customer"

	reasonNoPhone    = "No phone number on file"
	reasonNoConsent  = "User has not consented"
	reasonOptedOut   = "User has opted out"
	reasonAuditWrite = "Failed to record audit entry"
)

type batchService struct {
	cfg       *config.BatchConfig
	repo      repository.Repository
	gateway   carrier.Gateway
	publisher realtime.Publisher
	logger    *zap.Logger
	// limiter paces carrier sends across every batch of this process.
	limiter *rate.Limiter
}

func NewBatchService(
	cfg *config.BatchConfig,
	repo repository.Repository,
	gateway carrier.Gateway,
	publisher realtime.Publisher,
	logger *zap.Logger,
) BatchService {
	limit := rate.Inf
	if interval := cfg.SendInterval(); interval > 0 {
		limit = rate.Every(interval)
	}

	return &batchService{
		cfg:       cfg,
		repo:      repo,
		gateway:   gateway,
		publisher: publisher,
		logger:    logger,
		limiter:   rate.NewLimiter(limit, 1),
	}
}

// SendBatch delivers the rendered template to each user in order. Recipients
// that fail a compliance check are skipped, carrier rejections are recorded as
// failures, and neither stops the batch. Each outcome is written to the
// campaign audit table before the next recipient is processed.
func (s *batchService) SendBatch(ctx context.Context, actorID string, req BatchRequest) (*BatchResult, error) {
	if err := requireAdmin(ctx, s.repo, actorID); err != nil {
		return nil, err
	}

	if len(req.UserIDs) == 0 {
		return nil, newError(ErrValidation, "At least one recipient is required")
	}
	if len(req.UserIDs) > s.cfg.MaxRecipients {
		return nil, newError(ErrValidation, fmt.Sprintf("A batch may contain at most %d recipients", s.cfg.MaxRecipients))
	}
	if strings.TrimSpace(req.MessageTemplate) == "" {
		return nil, newError(ErrValidation, "Message template is required")
	}

	// The batch outlives the request that started it.
	ctx = context.WithoutCancel(ctx)

	profiles, err := s.repo.Profile().GetByIDs(ctx, req.UserIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipients: %w", err)
	}
	byID := make(map[string]*models.Profile, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}

	phones, err := s.repo.OptOut().ListPhones(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load opt-outs: %w", err)
	}
	optedOut := make(map[string]struct{}, len(phones))
	for _, p := range phones {
		optedOut[p] = struct{}{}
	}

	result := &BatchResult{
		BatchID: uuid.NewString(),
		Results: make([]RecipientResult, 0, len(req.UserIDs)),
	}

	s.logger.Info("Starting batch send",
		zap.String("batchID", result.BatchID),
		zap.Int("recipients", len(req.UserIDs)),
		zap.String("sentBy", actorID))

	start := time.Now()
	for _, userID := range req.UserIDs {
		outcome := s.sendOne(ctx, result.BatchID, actorID, userID, byID[userID], optedOut, req.MessageTemplate)
		result.Results = append(result.Results, outcome)

		switch outcome.Status {
		case RecipientSuccess:
			result.Summary.Successful++
		case RecipientFailed:
			result.Summary.Failed++
		case RecipientSkipped:
			result.Summary.Skipped++
		}
	}
	result.Summary.Total = len(result.Results)

	s.logger.Info("Batch send completed",
		zap.String("batchID", result.BatchID),
		zap.Int("successful", result.Summary.Successful),
		zap.Int("failed", result.Summary.Failed),
		zap.Int("skipped", result.Summary.Skipped),
		zap.Duration("duration", time.Since(start)))

	return result, nil
}

func (s *batchService) sendOne(
	ctx context.Context,
	batchID, actorID, userID string,
	profile *models.Profile,
	optedOut map[string]struct{},
	template string,
) RecipientResult {
	outcome := RecipientResult{UserID: userID}
	send := &models.CampaignSend{
		BatchID:     batchID,
		UserID:      userID,
		MessageBody: template,
		Template:    template,
		SentBy:      actorID,
	}

	to, reason := s.checkRecipient(profile, optedOut)
	if to != "" {
		outcome.Phone = to
		send.Phone = sql.NullString{String: to, Valid: true}
	}

	if reason != "" {
		outcome.Status = RecipientSkipped
		outcome.Reason = reason
		send.Status = models.MessageStatusSkipped
		send.ErrorMessage = sql.NullString{String: reason, Valid: true}
		s.record(ctx, send, &outcome)
		return outcome
	}

	body := renderTemplate(template, profile.FirstName)
	send.MessageBody = body

	if err := s.limiter.Wait(ctx); err != nil {
		outcome.Status = RecipientFailed
		outcome.Reason = err.Error()
		send.Status = models.MessageStatusFailed
		send.ErrorMessage = sql.NullString{String: err.Error(), Valid: true}
		s.record(ctx, send, &outcome)
		return outcome
	}

	res, err := s.gateway.Send(ctx, carrier.SendRequest{To: to, Body: body})
	if err != nil {
		code, message := carrier.Describe(err)
		outcome.Status = RecipientFailed
		outcome.Reason = message
		outcome.ErrorCode = code
		send.Status = models.MessageStatusFailed
		send.ErrorCode = sql.NullString{String: code, Valid: code != ""}
		send.ErrorMessage = sql.NullString{String: message, Valid: message != ""}

		s.logger.Warn("Batch recipient send failed",
			zap.String("batchID", batchID),
			zap.String("userID", userID),
			zap.Error(err))
	} else {
		outcome.Status = RecipientSuccess
		outcome.CarrierSID = res.SID
		outcome.CarrierStatus = res.Status
		send.Status = statusFromCarrier(res.Status)
		send.CarrierSID = sql.NullString{String: res.SID, Valid: res.SID != ""}
	}

	s.record(ctx, send, &outcome)
	return outcome
}

// checkRecipient returns the normalized phone (when there is one) and the
// skip reason, if any. Checks run in a fixed order so the first failing one
// is reported.
func (s *batchService) checkRecipient(profile *models.Profile, optedOut map[string]struct{}) (string, string) {
	if profile == nil || !profile.Phone.Valid || strings.TrimSpace(profile.Phone.String) == "" {
		return "", reasonNoPhone
	}

	to, err := phone.Normalize(profile.Phone.String)
	if err != nil {
		return "", reasonNoPhone
	}
	if !profile.SMSConsent {
		return to, reasonNoConsent
	}
	if _, ok := optedOut[to]; ok {
		return to, reasonOptedOut
	}
	return to, ""
}

func (s *batchService) record(ctx context.Context, send *models.CampaignSend, outcome *RecipientResult) {
	if err := s.repo.Campaign().Create(ctx, send); err != nil {
		outcome.AuditError = reasonAuditWrite
		s.logger.Error("Failed to record campaign send",
			zap.String("batchID", send.BatchID),
			zap.String("userID", send.UserID),
			zap.String("status", string(send.Status)),
			zap.Error(err))
		return
	}

	publish(ctx, s.publisher, s.logger, realtime.ChangeEvent{
		Table:    realtime.TableCampaignSends,
		Action:   realtime.ActionInsert,
		Phone:    send.Phone.String,
		RecordID: fmt.Sprintf("%d", send.ID),
	})
}

func renderTemplate(template, firstName string) string {
	name := strings.TrimSpace(firstName)
	if name == "" {
		name = firstNameFallback
	}
	return strings.ReplaceAll(template, firstNamePlaceholder, name)
}
