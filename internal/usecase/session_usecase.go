// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"scooter/internal/domain/entity"
)

// SessionUsecase tracks who is signed in for one client.
type SessionUsecase interface {
	// Resolve re-reads the session from the identity provider. Failures
	// resolve to a guest session and are never returned.
	Resolve(ctx context.Context) entity.Session

	// HandleAuthEvent re-resolves on sign-in and sign-out; other events are ignored.
	HandleAuthEvent(ctx context.Context, event entity.AuthEvent)

	// SignOut always leaves a guest session behind. The provider error, if
	// any, is returned for display.
	SignOut(ctx context.Context) error

	// Current returns the last resolved session without contacting the provider.
	Current() entity.Session

	// Verify returns the current session, resolving it again once its tokens
	// have expired. An expired session is renewed or drops to guest.
	Verify(ctx context.Context) entity.Session
}
