package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/jayakulan/TrashRoute1/internal/core/domain"
	"github.com/jayakulan/TrashRoute1/internal/pkg/metrics"
)

// StatusEvent is the wire form of a lifecycle transition.
type StatusEvent struct {
	Request *domain.PickupRequest `json:"request"`
	Action  domain.Action         `json:"action"`
	At      time.Time             `json:"at"`
}

// Publisher implements ports.EventPublisher using NATS JetStream.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS and enables JetStream.
func NewPublisher(url string) (*Publisher, error) {
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

	// Ensure the stream exists
	cfg := nats.StreamConfig{
		Name:      "PICKUP_REQUESTS",
		Subjects:  []string{"pickup.request.>"},
		Retention: nats.InterestPolicy,
		MaxAge:    24 * time.Hour,
		Storage:   nats.FileStorage,
	}
	if _, err := js.AddStream(&cfg); err != nil {
		// Stream may already exist, try update
		if _, err := js.UpdateStream(&cfg); err != nil {
			return nil, fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
		}
	}

	return &Publisher{conn: conn, js: js}, nil
}

// Conn exposes the underlying connection for health checks.
func (p *Publisher) Conn() *nats.Conn {
	return p.conn
}

// PublishRequestSubmitted announces a newly submitted request.
func (p *Publisher) PublishRequestSubmitted(ctx context.Context, req *domain.PickupRequest) error {
	return p.publish("pickup.request.submitted", req)
}

// PublishStatusChanged announces a lifecycle transition.
func (p *Publisher) PublishStatusChanged(ctx context.Context, req *domain.PickupRequest, action domain.Action) error {
	return p.publish("pickup.request.status."+string(action), StatusEvent{
		Request: req,
		Action:  action,
		At:      req.UpdatedAt,
	})
}

func (p *Publisher) publish(subject string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := p.js.Publish(subject, data); err != nil {
		metrics.EventPublishErrors.WithLabelValues(subject).Inc()
		return err
	}
	metrics.EventsPublished.WithLabelValues(subject).Inc()
	return nil
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}
