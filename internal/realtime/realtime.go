package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"wanderlog/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// Channel is the redis pub/sub channel carrying posts change
// notifications. Subscribers re-fetch on any event; the payload is
// informational only.
const Channel = "posts:changes"

type EventKind string

const (
	EventInsert EventKind = "insert"
	EventUpdate EventKind = "update"
	EventDelete EventKind = "delete"
)

type Event struct {
	Kind   EventKind `json:"kind"`
	PostID string    `json:"post_id,omitempty"`
}

type Publisher struct {
	client *redis.Client
	logger *logger.Logger
}

func NewPublisher(client *redis.Client, log *logger.Logger) *Publisher {
	return &Publisher{client: client, logger: log}
}

// PostsChanged broadcasts a change notification to every subscriber.
func (p *Publisher) PostsChanged(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode change event: %w", err)
	}

	if err := p.client.Publish(ctx, Channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish change event: %w", err)
	}
	return nil
}

type Subscriber struct {
	client *redis.Client
	logger *logger.Logger
}

func NewSubscriber(client *redis.Client, log *logger.Logger) *Subscriber {
	return &Subscriber{client: client, logger: log}
}

// Subscribe opens a change-notification stream. The returned cancel
// func releases the channel; after it returns no further events are
// delivered.
func (s *Subscriber) Subscribe(ctx context.Context) (<-chan Event, func(), error) {
	pubsub := s.client.Subscribe(ctx, Channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe to %s: %w", Channel, err)
	}

	events := make(chan Event)
	done := make(chan struct{})
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(done)
			_ = pubsub.Close()
		})
	}

	go func() {
		defer close(events)
		for msg := range pubsub.Channel() {
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				s.logger.Warn("Dropping malformed change event: %v", err)
				continue
			}
			select {
			case events <- event:
			case <-done:
				return
			}
		}
	}()

	return events, cancel, nil
}
