package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/jayakulan/TrashRoute1/internal/core/domain"
)

// Subscriber implements ports.EventSubscriber using NATS JetStream.
type Subscriber struct {
	conn *nats.Conn
	js   nats.JetStreamContext
	subs []*nats.Subscription
}

// NewSubscriber creates a subscriber with its own NATS connection.
func NewSubscriber(url string) (*Subscriber, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}
	return &Subscriber{conn: conn, js: js}, nil
}

// SubscribeRequestSubmitted delivers newly submitted requests.
func (s *Subscriber) SubscribeRequestSubmitted(ctx context.Context, handler func(ctx context.Context, req *domain.PickupRequest) error) error {
	sub, err := s.js.Subscribe("pickup.request.submitted", func(msg *nats.Msg) {
		var req domain.PickupRequest
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			_ = msg.Nak()
			return
		}
		if err := handler(ctx, &req); err != nil {
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	},
		nats.Durable("submitted-processor"),
		nats.ManualAck(),
		nats.MaxDeliver(3),
	)
	if err != nil {
		return err
	}
	s.subs = append(s.subs, sub)
	return nil
}

// SubscribeStatusChanged delivers lifecycle transitions for every action.
func (s *Subscriber) SubscribeStatusChanged(ctx context.Context, handler func(ctx context.Context, req *domain.PickupRequest) error) error {
	sub, err := s.js.Subscribe("pickup.request.status.>", func(msg *nats.Msg) {
		var event StatusEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			_ = msg.Nak()
			return
		}
		if err := handler(ctx, event.Request); err != nil {
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	},
		nats.Durable("status-processor"),
		nats.ManualAck(),
		nats.MaxDeliver(3),
	)
	if err != nil {
		return err
	}
	s.subs = append(s.subs, sub)
	return nil
}

// Close unsubscribes and drains.
func (s *Subscriber) Close() {
	for _, sub := range s.subs {
		_ = sub.Unsubscribe()
	}
	_ = s.conn.Drain()
}
