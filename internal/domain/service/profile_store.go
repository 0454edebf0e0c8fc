package service

import (
	"context"

	"scooter/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrProfileNotFound is returned by Load when no snapshot is stored for a key.
var ErrProfileNotFound = errors.New("profile snapshot not found")

// ProfileStore keeps the display profile snapshot of each client.
type ProfileStore interface {
	Save(ctx context.Context, clientID string, snapshot entity.ProfileSnapshot) error
	Load(ctx context.Context, clientID string) (*entity.ProfileSnapshot, error)
	// Delete removes the snapshot; deleting a missing key is not an error.
	Delete(ctx context.Context, clientID string) error
	Close() error
}
