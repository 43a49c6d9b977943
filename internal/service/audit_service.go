package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/popeskul/sms-messaging/internal/models"
	"github.com/popeskul/sms-messaging/internal/repository"
)

const (
	DefaultAuditLimit = 50
	MaxAuditLimit     = 1000
)

type auditService struct {
	repo    repository.Repository
	consent ConsentService
	logger  *zap.Logger
}

func NewAuditService(repo repository.Repository, consent ConsentService, logger *zap.Logger) AuditService {
	return &auditService{
		repo:    repo,
		consent: consent,
		logger:  logger,
	}
}

// ListRecords merges campaign sends and conversation messages into one
// timeline, newest first.
//
// Each source is paged independently with the same offset and limit, the
// two pages are merged and cut back to limit. Total is the sum of both
// counts. Deep pages can therefore skip or repeat rows when the sources
// interleave; the result is exact for page 1.
func (s *auditService) ListRecords(ctx context.Context, actorID string, query AuditQuery) (*AuditPage, error) {
	if err := requireAdmin(ctx, s.repo, actorID); err != nil {
		return nil, err
	}

	filter, err := auditFilter(query)
	if err != nil {
		return nil, err
	}

	page := &AuditPage{
		Records: []models.AuditRecord{},
		Page:    filter.Offset/filter.Limit + 1,
		Limit:   filter.Limit,
	}

	if includeCampaigns(filter) {
		rows, err := s.repo.Campaign().ListAudit(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to list campaign sends: %w", err)
		}
		count, err := s.repo.Campaign().CountAudit(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to count campaign sends: %w", err)
		}
		page.Records = appendRecords(page.Records, rows, models.AuditTypeCampaign)
		page.Total += count
	}

	if includeConversations(filter) {
		rows, err := s.repo.Message().ListAudit(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to list messages: %w", err)
		}
		count, err := s.repo.Message().CountAudit(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to count messages: %w", err)
		}
		page.Records = appendRecords(page.Records, rows, models.AuditTypeConversation)
		page.Total += count
	}

	sort.SliceStable(page.Records, func(i, j int) bool {
		return page.Records[i].Timestamp.After(page.Records[j].Timestamp)
	})
	if len(page.Records) > filter.Limit {
		page.Records = page.Records[:filter.Limit]
	}

	return page, nil
}

// Stats aggregates delivery outcomes over both sources. Skipped campaign rows
// do not count as sent.
func (s *auditService) Stats(ctx context.Context, actorID string, from, to *time.Time) (*AuditStats, error) {
	if err := requireAdmin(ctx, s.repo, actorID); err != nil {
		return nil, err
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, newError(ErrValidation, "from must not be after to")
	}

	campaigns, err := s.repo.Campaign().DeliveryCounts(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to count campaign outcomes: %w", err)
	}
	messages, err := s.repo.Message().DeliveryCounts(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to count message outcomes: %w", err)
	}
	optedOut, err := s.repo.OptOut().Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count opt-outs: %w", err)
	}

	stats := &AuditStats{
		TotalSent: campaigns.Sent + messages.Sent,
		Delivered: campaigns.Delivered + messages.Delivered,
		Failed:    campaigns.Failed + messages.Failed,
		Skipped:   campaigns.Skipped + messages.Skipped,
		OptedOut:  optedOut,
	}
	if stats.TotalSent > 0 {
		stats.DeliveryRate = float64(stats.Delivered) / float64(stats.TotalSent)
	}

	return stats, nil
}

func (s *auditService) OptOutHistory(ctx context.Context, actorID string) ([]*models.OptOutEntry, error) {
	if err := requireAdmin(ctx, s.repo, actorID); err != nil {
		return nil, err
	}
	return s.consent.ListOptOuts(ctx)
}

func auditFilter(query AuditQuery) (models.AuditFilter, error) {
	switch query.Direction {
	case "", models.DirectionInbound, models.DirectionOutbound:
	default:
		return models.AuditFilter{}, newError(ErrValidation, "direction must be inbound or outbound")
	}
	switch query.Type {
	case "", models.AuditTypeCampaign, models.AuditTypeConversation:
	default:
		return models.AuditFilter{}, newError(ErrValidation, "type must be campaign or conversation")
	}
	if query.From != nil && query.To != nil && query.From.After(*query.To) {
		return models.AuditFilter{}, newError(ErrValidation, "from must not be after to")
	}

	limit := query.Limit
	if limit <= 0 {
		limit = DefaultAuditLimit
	}
	if limit > MaxAuditLimit {
		return models.AuditFilter{}, newError(ErrValidation, fmt.Sprintf("limit must not exceed %d", MaxAuditLimit))
	}
	page := query.Page
	if page < 1 {
		page = 1
	}

	return models.AuditFilter{
		Search:    strings.TrimSpace(query.Search),
		Status:    query.Status,
		Direction: query.Direction,
		Type:      query.Type,
		From:      query.From,
		To:        query.To,
		Offset:    (page - 1) * limit,
		Limit:     limit,
	}, nil
}

// Campaign sends are always outbound.
func includeCampaigns(filter models.AuditFilter) bool {
	if filter.Direction == models.DirectionInbound {
		return false
	}
	return filter.Type == "" || filter.Type == models.AuditTypeCampaign
}

func includeConversations(filter models.AuditFilter) bool {
	return filter.Type == "" || filter.Type == models.AuditTypeConversation
}

func appendRecords(records []models.AuditRecord, rows []models.AuditRow, kind models.AuditType) []models.AuditRecord {
	for _, row := range rows {
		name := strings.TrimSpace(strings.TrimSpace(row.FirstName) + " " + strings.TrimSpace(row.LastName))
		records = append(records, models.AuditRecord{
			ID:            row.ID,
			Type:          kind,
			Direction:     row.Direction,
			RecipientName: name,
			Phone:         row.Phone,
			Email:         row.Email,
			Body:          row.Body,
			Status:        row.Status,
			SentBy:        row.SentBy,
			CarrierSID:    row.CarrierSID,
			ErrorCode:     row.ErrorCode,
			ErrorMessage:  row.ErrorMessage,
			BatchID:       row.BatchID,
			Timestamp:     row.Timestamp,
		})
	}
	return records
}
