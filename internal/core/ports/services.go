package ports

import (
	"context"

	"github.com/jayakulan/TrashRoute1/internal/core/domain"
)

// EventPublisher publishes request lifecycle events to a message broker.
type EventPublisher interface {
	PublishRequestSubmitted(ctx context.Context, req *domain.PickupRequest) error
	PublishStatusChanged(ctx context.Context, req *domain.PickupRequest, action domain.Action) error
}

// EventSubscriber subscribes to request lifecycle events from a message broker.
type EventSubscriber interface {
	SubscribeRequestSubmitted(ctx context.Context, handler func(ctx context.Context, req *domain.PickupRequest) error) error
	SubscribeStatusChanged(ctx context.Context, handler func(ctx context.Context, req *domain.PickupRequest) error) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}

// NotificationService sends notifications (push, email, etc.).
type NotificationService interface {
	Send(ctx context.Context, userID, title, body string) error
}
