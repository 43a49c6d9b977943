// Package realtime fans out change notifications for SMS records over Redis
// Pub/Sub so that admin dashboards can refresh without polling.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Channel is the Redis Pub/Sub channel carrying change events.
const Channel = "sms:changes"

type Table string

const (
	TableMessages          Table = "messages"
	TableConversations     Table = "conversations"
	TableOptOuts           Table = "opt_outs"
	TableProfiles          Table = "profiles"
	TableAuthorizedNumbers Table = "authorized_numbers"
	TableCampaignSends     Table = "campaign_sends"
)

type Action string

const (
	ActionInsert Action = "insert"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// ChangeEvent describes one row-level change.
type ChangeEvent struct {
	Table          Table     `json:"table"`
	Action         Action    `json:"action"`
	ConversationID int64     `json:"conversationId,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	RecordID       string    `json:"recordId,omitempty"`
	At             time.Time `json:"at"`
}

// Publisher announces changes.
type Publisher interface {
	Publish(ctx context.Context, event ChangeEvent) error
}

// NopPublisher discards every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ChangeEvent) error { return nil }

// Filter selects events for a subscriber. Zero fields match everything.
type Filter struct {
	Tables         []Table
	ConversationID int64
	Phone          string
}

func (f Filter) Match(event ChangeEvent) bool {
	if len(f.Tables) > 0 {
		found := false
		for _, t := range f.Tables {
			if t == event.Table {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.ConversationID != 0 && event.ConversationID != f.ConversationID {
		return false
	}
	if f.Phone != "" && event.Phone != f.Phone {
		return false
	}
	return true
}

// Hub publishes and subscribes through Redis.
type Hub struct {
	client *redis.Client
	logger *zap.Logger
}

func NewHub(client *redis.Client, logger *zap.Logger) *Hub {
	return &Hub{client: client, logger: logger}
}

func (h *Hub) Publish(ctx context.Context, event ChangeEvent) error {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal change event: %w", err)
	}

	if err := h.client.Publish(ctx, Channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish change event: %w", err)
	}

	return nil
}

// Subscribe starts delivering matching events until ctx is done or the
// subscription is closed.
func (h *Hub) Subscribe(ctx context.Context, filter Filter) (*Subscription, error) {
	pubsub := h.client.Subscribe(ctx, Channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", Channel, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription{
		pubsub: pubsub,
		events: make(chan ChangeEvent, 64),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go sub.run(ctx, filter, h.logger)

	return sub, nil
}

// Subscription is a live event stream.
type Subscription struct {
	pubsub *redis.PubSub
	events chan ChangeEvent
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Events is closed when the subscription ends.
func (s *Subscription) Events() <-chan ChangeEvent {
	return s.events
}

func (s *Subscription) Close() error {
	var err error
	s.once.Do(func() {
		s.cancel()
		err = s.pubsub.Close()
		<-s.done
	})
	return err
}

func (s *Subscription) run(ctx context.Context, filter Filter, logger *zap.Logger) {
	defer close(s.done)
	defer close(s.events)

	messages := s.pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}

			var event ChangeEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				logger.Warn("Dropping malformed change event", zap.Error(err))
				continue
			}
			if !filter.Match(event) {
				continue
			}

			select {
			case s.events <- event:
			case <-ctx.Done():
				return
			}
		}
	}
}
