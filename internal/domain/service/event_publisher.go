package service

import (
	"context"

	"scooter/internal/domain/entity"
)

// AuthEventPublisher sends authentication lifecycle events to an audit stream
type AuthEventPublisher interface {
	// PublishAuthEvent publishes one event; failures never undo the auth step
	PublishAuthEvent(ctx context.Context, event entity.AuthEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
