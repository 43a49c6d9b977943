// Package memstore is an in-memory repository.Repository used by service
// scenario tests. It mirrors the uniqueness and idempotency rules of the
// PostgreSQL schema.
package memstore

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/popeskul/sms-messaging/internal/models"
	"github.com/popeskul/sms-messaging/internal/phone"
	"github.com/popeskul/sms-messaging/internal/repository"
)

// Store holds every table behind one mutex.
type Store struct {
	mu sync.Mutex

	profiles          map[string]*models.Profile
	profileOrder      []string
	optOuts           map[string]*models.OptOut
	authorizedNumbers []*models.AuthorizedNumber
	conversations     []*models.Conversation
	messages          []*models.Message
	campaignSends     []*models.CampaignSend

	nextID int64

	// PingErr is returned by Ping when set.
	PingErr error
}

func New() *Store {
	return &Store{
		profiles: make(map[string]*models.Profile),
		optOuts:  make(map[string]*models.OptOut),
	}
}

var _ repository.Repository = (*Store)(nil)

func (s *Store) Ping() error { return s.PingErr }

func (s *Store) Profile() repository.ProfileRepository { return profileStore{s} }

func (s *Store) OptOut() repository.OptOutRepository { return optOutStore{s} }

func (s *Store) AuthorizedNumber() repository.AuthorizedNumberRepository {
	return authorizedNumberStore{s}
}

func (s *Store) Conversation() repository.ConversationRepository { return conversationStore{s} }

func (s *Store) Message() repository.MessageRepository { return messageStore{s} }

func (s *Store) Campaign() repository.CampaignRepository { return campaignStore{s} }

// AddProfile seeds the customer directory.
func (s *Store) AddProfile(p models.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	if p.Role == "" {
		p.Role = models.RoleCustomer
	}
	if _, ok := s.profiles[p.ID]; !ok {
		s.profileOrder = append(s.profileOrder, p.ID)
	}
	s.profiles[p.ID] = &p
}

// Messages returns a copy of every stored message in insertion order.
func (s *Store) Messages() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Message, len(s.messages))
	for i, m := range s.messages {
		out[i] = *m
	}
	return out
}

// CampaignSends returns a copy of every campaign row in insertion order.
func (s *Store) CampaignSends() []models.CampaignSend {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.CampaignSend, len(s.campaignSends))
	for i, c := range s.campaignSends {
		out[i] = *c
	}
	return out
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

type profileStore struct{ s *Store }

func (p profileStore) GetByID(_ context.Context, id string) (*models.Profile, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	profile, ok := p.s.profiles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *profile
	return &cp, nil
}

func (p profileStore) GetByPhone(_ context.Context, phone string) (*models.Profile, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	for _, id := range p.s.profileOrder {
		profile := p.s.profiles[id]
		if profile.Phone.Valid && profile.Phone.String == phone {
			cp := *profile
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (p profileStore) GetByIDs(_ context.Context, ids []string) ([]*models.Profile, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	out := []*models.Profile{}
	for _, id := range ids {
		if profile, ok := p.s.profiles[id]; ok {
			cp := *profile
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (p profileStore) GetRole(_ context.Context, id string) (models.Role, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	profile, ok := p.s.profiles[id]
	if !ok {
		return "", repository.ErrNotFound
	}
	return profile.Role, nil
}

func (p profileStore) SetConsentByPhone(_ context.Context, phone string, consent bool, method string, at time.Time) (int64, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	var n int64
	for _, profile := range p.s.profiles {
		if profile.Phone.Valid && profile.Phone.String == phone {
			setConsent(profile, consent, method, at)
			n++
		}
	}
	return n, nil
}

func (p profileStore) SetConsentByID(_ context.Context, id string, consent bool, method string, at time.Time) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	profile, ok := p.s.profiles[id]
	if !ok {
		return repository.ErrNotFound
	}
	setConsent(profile, consent, method, at)
	return nil
}

func setConsent(p *models.Profile, consent bool, method string, at time.Time) {
	p.SMSConsent = consent
	p.SMSConsentMethod = sql.NullString{String: method, Valid: true}
	p.SMSConsentAt = sql.NullTime{Time: at, Valid: true}
}

type optOutStore struct{ s *Store }

func (o optOutStore) Insert(_ context.Context, entry *models.OptOut) (bool, error) {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()

	if _, ok := o.s.optOuts[entry.Phone]; ok {
		return false, nil
	}
	entry.ID = o.s.id()
	cp := *entry
	o.s.optOuts[entry.Phone] = &cp
	return true, nil
}

func (o optOutStore) DeleteByPhone(_ context.Context, phone string) (bool, error) {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()

	if _, ok := o.s.optOuts[phone]; !ok {
		return false, nil
	}
	delete(o.s.optOuts, phone)
	return true, nil
}

func (o optOutStore) Exists(_ context.Context, phone string) (bool, error) {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()

	_, ok := o.s.optOuts[phone]
	return ok, nil
}

func (o optOutStore) ListPhones(_ context.Context) ([]string, error) {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()

	phones := make([]string, 0, len(o.s.optOuts))
	for phone := range o.s.optOuts {
		phones = append(phones, phone)
	}
	sort.Strings(phones)
	return phones, nil
}

func (o optOutStore) List(_ context.Context) ([]*models.OptOutEntry, error) {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()

	entries := make([]*models.OptOutEntry, 0, len(o.s.optOuts))
	for _, opt := range o.s.optOuts {
		entry := &models.OptOutEntry{OptOut: *opt}
		for _, id := range o.s.profileOrder {
			p := o.s.profiles[id]
			if p.Phone.Valid && p.Phone.String == opt.Phone {
				entry.ProfileID = sql.NullString{String: p.ID, Valid: true}
				entry.FirstName = sql.NullString{String: p.FirstName, Valid: true}
				entry.LastName = sql.NullString{String: p.LastName, Valid: true}
				entry.Email = sql.NullString{String: p.Email, Valid: true}
				break
			}
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].OptedOutAt.After(entries[j].OptedOutAt)
	})
	return entries, nil
}

func (o optOutStore) Count(_ context.Context) (int64, error) {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()

	return int64(len(o.s.optOuts)), nil
}

type authorizedNumberStore struct{ s *Store }

func (a authorizedNumberStore) Create(_ context.Context, number *models.AuthorizedNumber) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	for _, n := range a.s.authorizedNumbers {
		if n.IsActive && n.Phone == number.Phone && number.IsActive {
			return repository.ErrDuplicate
		}
	}
	cp := *number
	a.s.authorizedNumbers = append(a.s.authorizedNumbers, &cp)
	return nil
}

func (a authorizedNumberStore) Deactivate(_ context.Context, id, deactivatedBy string, at time.Time) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	for _, n := range a.s.authorizedNumbers {
		if n.ID == id && n.IsActive {
			n.IsActive = false
			n.DeactivatedAt = sql.NullTime{Time: at, Valid: true}
			n.DeactivatedBy = sql.NullString{String: deactivatedBy, Valid: true}
			return nil
		}
	}
	return repository.ErrNotFound
}

func (a authorizedNumberStore) GetActiveByPhone(_ context.Context, phone string) (*models.AuthorizedNumber, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	for _, n := range a.s.authorizedNumbers {
		if n.IsActive && n.Phone == phone {
			cp := *n
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (a authorizedNumberStore) List(_ context.Context, includeInactive bool) ([]*models.AuthorizedNumber, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	out := []*models.AuthorizedNumber{}
	for i := len(a.s.authorizedNumbers) - 1; i >= 0; i-- {
		n := a.s.authorizedNumbers[i]
		if includeInactive || n.IsActive {
			cp := *n
			out = append(out, &cp)
		}
	}
	return out, nil
}

type conversationStore struct{ s *Store }

func (c conversationStore) Upsert(_ context.Context, upsert models.ConversationUpsert) (*models.Conversation, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	for _, conv := range c.s.conversations {
		if conv.CustomerPhone != upsert.Phone {
			continue
		}
		if upsert.ProfileID != nil {
			conv.ProfileID = sql.NullString{String: *upsert.ProfileID, Valid: true}
		}
		if upsert.At.After(conv.LastMessageAt) {
			conv.LastMessageAt = upsert.At
		}
		conv.Status = models.ConversationStatusActive
		conv.UpdatedAt = time.Now()
		cp := *conv
		return &cp, nil
	}

	now := time.Now()
	conv := &models.Conversation{
		ID:            c.s.id(),
		CustomerPhone: upsert.Phone,
		LastMessageAt: upsert.At,
		Status:        models.ConversationStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if upsert.ProfileID != nil {
		conv.ProfileID = sql.NullString{String: *upsert.ProfileID, Valid: true}
	}
	c.s.conversations = append(c.s.conversations, conv)
	cp := *conv
	return &cp, nil
}

func (c conversationStore) GetByID(_ context.Context, id int64) (*models.Conversation, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	conv := c.s.conversation(id)
	if conv == nil {
		return nil, repository.ErrNotFound
	}
	cp := *conv
	return &cp, nil
}

func (c conversationStore) List(_ context.Context, status models.ConversationStatus) ([]*models.Conversation, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	out := []*models.Conversation{}
	for _, conv := range c.s.conversations {
		if status == "" || conv.Status == status {
			cp := *conv
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastMessageAt.After(out[j].LastMessageAt)
	})
	return out, nil
}

func (c conversationStore) IncrementUnread(_ context.Context, id int64) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	conv := c.s.conversation(id)
	if conv == nil {
		return repository.ErrNotFound
	}
	conv.UnreadCount++
	return nil
}

func (c conversationStore) MarkRead(_ context.Context, id int64) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	conv := c.s.conversation(id)
	if conv == nil {
		return repository.ErrNotFound
	}
	conv.UnreadCount = 0
	return nil
}

func (c conversationStore) SetStatus(_ context.Context, id int64, status models.ConversationStatus) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	conv := c.s.conversation(id)
	if conv == nil {
		return repository.ErrNotFound
	}
	conv.Status = status
	return nil
}

func (s *Store) conversation(id int64) *models.Conversation {
	for _, conv := range s.conversations {
		if conv.ID == id {
			return conv
		}
	}
	return nil
}

type messageStore struct{ s *Store }

func (m messageStore) Create(_ context.Context, msg *models.Message) (bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if msg.CarrierSID.Valid {
		for _, existing := range m.s.messages {
			if existing.CarrierSID.Valid && existing.CarrierSID.String == msg.CarrierSID.String {
				return false, nil
			}
		}
	}
	now := time.Now()
	msg.ID = m.s.id()
	msg.CreatedAt = now
	msg.UpdatedAt = now
	cp := *msg
	m.s.messages = append(m.s.messages, &cp)
	return true, nil
}

func (m messageStore) ListByConversation(_ context.Context, conversationID int64) ([]*models.Message, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	out := []*models.Message{}
	for _, msg := range m.s.messages {
		if msg.ConversationID == conversationID {
			cp := *msg
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m messageStore) UpdateStatus(_ context.Context, update models.StatusUpdate) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	var n int64
	for _, msg := range m.s.messages {
		if msg.CarrierSID.String == update.CarrierSID && msg.CarrierSID.Valid && !msg.Status.IsTerminal() {
			msg.Status = update.Status
			applyError(&msg.ErrorCode, &msg.ErrorMessage, update)
			n++
		}
	}
	return n, nil
}

func (m messageStore) ListPending(_ context.Context, since time.Time, limit int) ([]models.PendingStatus, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	out := []models.PendingStatus{}
	for _, msg := range m.s.messages {
		if len(out) == limit {
			break
		}
		if msg.Direction == models.DirectionOutbound && msg.CarrierSID.Valid && !msg.Status.IsTerminal() && !msg.SentAt.Before(since) {
			out = append(out, models.PendingStatus{CarrierSID: msg.CarrierSID.String, Status: msg.Status})
		}
	}
	return out, nil
}

func (m messageStore) ListAudit(_ context.Context, filter models.AuditFilter) ([]models.AuditRow, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	rows := m.s.messageAuditRows(filter)
	return page(rows, filter), nil
}

func (m messageStore) CountAudit(_ context.Context, filter models.AuditFilter) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	return int64(len(m.s.messageAuditRows(filter))), nil
}

func (m messageStore) DeliveryCounts(_ context.Context, from, to *time.Time) (models.DeliveryCounts, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	var counts models.DeliveryCounts
	for _, msg := range m.s.messages {
		if msg.Direction != models.DirectionOutbound || !inRange(msg.SentAt, from, to) {
			continue
		}
		counts.Sent++
		countOutcome(&counts, msg.Status)
	}
	return counts, nil
}

func (s *Store) messageAuditRows(filter models.AuditFilter) []models.AuditRow {
	rows := []models.AuditRow{}
	for _, msg := range s.messages {
		conv := s.conversation(msg.ConversationID)
		if conv == nil {
			continue
		}
		row := models.AuditRow{
			ID:           msg.ID,
			Direction:    msg.Direction,
			Phone:        conv.CustomerPhone,
			Body:         msg.Body,
			Status:       msg.Status,
			SentBy:       msg.SentBy.String,
			CarrierSID:   msg.CarrierSID.String,
			ErrorCode:    msg.ErrorCode.String,
			ErrorMessage: msg.ErrorMessage.String,
			Timestamp:    msg.SentAt,
		}
		if p, ok := s.profiles[conv.ProfileID.String]; ok && conv.ProfileID.Valid {
			row.FirstName, row.LastName, row.Email = p.FirstName, p.LastName, p.Email
		}
		if matches(row, filter, true) {
			rows = append(rows, row)
		}
	}
	return rows
}

type campaignStore struct{ s *Store }

func (c campaignStore) Create(_ context.Context, send *models.CampaignSend) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	now := time.Now()
	send.ID = c.s.id()
	send.CreatedAt = now
	send.UpdatedAt = now
	cp := *send
	c.s.campaignSends = append(c.s.campaignSends, &cp)
	return nil
}

func (c campaignStore) ListByBatch(_ context.Context, batchID string) ([]*models.CampaignSend, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	out := []*models.CampaignSend{}
	for _, send := range c.s.campaignSends {
		if send.BatchID == batchID {
			cp := *send
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (c campaignStore) UpdateStatus(_ context.Context, update models.StatusUpdate) (int64, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	var n int64
	for _, send := range c.s.campaignSends {
		if send.CarrierSID.Valid && send.CarrierSID.String == update.CarrierSID && !send.Status.IsTerminal() {
			send.Status = update.Status
			applyError(&send.ErrorCode, &send.ErrorMessage, update)
			n++
		}
	}
	return n, nil
}

func (c campaignStore) ListPending(_ context.Context, since time.Time, limit int) ([]models.PendingStatus, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	out := []models.PendingStatus{}
	for _, send := range c.s.campaignSends {
		if len(out) == limit {
			break
		}
		if send.CarrierSID.Valid && !send.Status.IsTerminal() && !send.CreatedAt.Before(since) {
			out = append(out, models.PendingStatus{CarrierSID: send.CarrierSID.String, Status: send.Status})
		}
	}
	return out, nil
}

func (c campaignStore) ListAudit(_ context.Context, filter models.AuditFilter) ([]models.AuditRow, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	return page(c.s.campaignAuditRows(filter), filter), nil
}

func (c campaignStore) CountAudit(_ context.Context, filter models.AuditFilter) (int64, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	return int64(len(c.s.campaignAuditRows(filter))), nil
}

func (c campaignStore) DeliveryCounts(_ context.Context, from, to *time.Time) (models.DeliveryCounts, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	var counts models.DeliveryCounts
	for _, send := range c.s.campaignSends {
		if !inRange(send.CreatedAt, from, to) {
			continue
		}
		if send.Status == models.MessageStatusSkipped {
			counts.Skipped++
			continue
		}
		counts.Sent++
		countOutcome(&counts, send.Status)
	}
	return counts, nil
}

func (s *Store) campaignAuditRows(filter models.AuditFilter) []models.AuditRow {
	rows := []models.AuditRow{}
	for _, send := range s.campaignSends {
		row := models.AuditRow{
			ID:           send.ID,
			Direction:    models.DirectionOutbound,
			Phone:        send.Phone.String,
			Body:         send.MessageBody,
			Status:       send.Status,
			SentBy:       send.SentBy,
			CarrierSID:   send.CarrierSID.String,
			ErrorCode:    send.ErrorCode.String,
			ErrorMessage: send.ErrorMessage.String,
			BatchID:      send.BatchID,
			Timestamp:    send.CreatedAt,
		}
		if p, ok := s.profiles[send.UserID]; ok {
			row.FirstName, row.LastName, row.Email = p.FirstName, p.LastName, p.Email
		}
		if matches(row, filter, false) {
			rows = append(rows, row)
		}
	}
	return rows
}

func matches(row models.AuditRow, filter models.AuditFilter, checkDirection bool) bool {
	if q := strings.ToLower(strings.TrimSpace(filter.Search)); q != "" {
		digits := phone.SearchDigits(q)
		byDigits := digits != "" && strings.Contains(phone.Digits(row.Phone), digits)
		if !byDigits && !strings.Contains(strings.ToLower(row.Phone), q) && !strings.Contains(strings.ToLower(row.Body), q) {
			return false
		}
	}
	if filter.Status != "" && row.Status != filter.Status {
		return false
	}
	if checkDirection && filter.Direction != "" && row.Direction != filter.Direction {
		return false
	}
	return inRange(row.Timestamp, filter.From, filter.To)
}

func page(rows []models.AuditRow, filter models.AuditFilter) []models.AuditRow {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Timestamp.After(rows[j].Timestamp)
	})
	if filter.Offset >= len(rows) {
		return []models.AuditRow{}
	}
	rows = rows[filter.Offset:]
	if filter.Limit > 0 && len(rows) > filter.Limit {
		rows = rows[:filter.Limit]
	}
	return rows
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

func countOutcome(counts *models.DeliveryCounts, status models.MessageStatus) {
	switch status {
	case models.MessageStatusDelivered:
		counts.Delivered++
	case models.MessageStatusFailed, models.MessageStatusUndelivered:
		counts.Failed++
	}
}

func applyError(code, message *sql.NullString, update models.StatusUpdate) {
	if update.ErrorCode != "" {
		*code = sql.NullString{String: update.ErrorCode, Valid: true}
	}
	if update.ErrorMessage != "" {
		*message = sql.NullString{String: update.ErrorMessage, Valid: true}
	}
}
