// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	deliverycontext "scooter/internal/delivery/context"
	"scooter/internal/domain/entity"
	"scooter/internal/domain/service"
	"scooter/internal/usecase"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"
)

const resolveKey = "resolve"

// sessionExpirySkew re-resolves a session slightly before its tokens expire.
const sessionExpirySkew = 30 * time.Second

// sessionTracker implements the SessionUsecase interface.
type sessionTracker struct {
	clientID string
	provider service.IdentityProvider
	tokens   service.BearerTokenHolder
	profiles service.ProfileStore
	mapping  entity.GroupMapping
	logger   *slog.Logger
	now      func() time.Time

	resolveGroup singleflight.Group

	mu        sync.RWMutex
	session   entity.Session
	expiresAt time.Time
	// generation changes on every sign-in and sign-out so a resolve that
	// started before it cannot bring the old session back.
	generation uint64
}

// NewSessionTracker is the constructor for sessionTracker. The session starts loading.
func NewSessionTracker(
	clientID string,
	provider service.IdentityProvider,
	tokens service.BearerTokenHolder,
	profiles service.ProfileStore,
	mapping entity.GroupMapping,
	logger *slog.Logger,
) usecase.SessionUsecase {
	return &sessionTracker{
		clientID: clientID,
		provider: provider,
		tokens:   tokens,
		profiles: profiles,
		mapping:  mapping,
		logger:   logger,
		now:      time.Now,
		session:  entity.NewLoadingSession(),
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (t *sessionTracker) log(ctx context.Context) *slog.Logger {
	return deliverycontext.Logger(ctx, t.logger)
}

// Resolve re-reads the session from the identity provider.
func (t *sessionTracker) Resolve(ctx context.Context) entity.Session {
	result, _, _ := t.resolveGroup.Do(resolveKey, func() (any, error) {
		return t.resolve(ctx), nil
	})

	session, ok := result.(entity.Session)
	if !ok {
		return t.Current()
	}

	return session
}

func (t *sessionTracker) resolve(ctx context.Context) entity.Session {
	t.mu.RLock()
	generation := t.generation
	t.mu.RUnlock()

	principal, err := t.provider.CurrentPrincipal(ctx)
	if err != nil {
		t.log(ctx).Debug("No current principal, session is guest", slog.Any("error", err))

		return t.apply(generation, entity.GuestSession(), "", time.Time{})
	}

	role, matched := entity.RoleFromGroups(principal.Groups, t.mapping)
	if !matched {
		t.log(ctx).Warn("Principal is in no known group, treating as customer",
			slog.String("username", principal.Username),
			slog.Any("groups", principal.Groups))
	}

	return t.apply(generation, entity.SessionFromPrincipal(principal, role), principal.IDToken, principal.ExpiresAt)
}

// apply swaps the session, its expiry and the bearer token together. A stale
// resolve only clears the loading flag.
func (t *sessionTracker) apply(generation uint64, session entity.Session, token string, expiresAt time.Time) entity.Session {
	t.mu.Lock()
	defer t.mu.Unlock()

	if generation != t.generation {
		t.session.IsLoading = false

		return t.session
	}

	t.session = session
	t.expiresAt = expiresAt
	if session.IsAuthenticated && token != "" {
		t.tokens.SetBearerToken(token)
	} else {
		t.tokens.ClearBearerToken()
	}

	return t.session
}

// HandleAuthEvent re-resolves on sign-in and sign-out.
func (t *sessionTracker) HandleAuthEvent(ctx context.Context, event entity.AuthEvent) {
	if !event.Kind.ChangesSession() {
		t.log(ctx).Debug("Auth event does not change the session", slog.String("kind", string(event.Kind)))

		return
	}

	t.log(ctx).Debug("Auth event received, resolving session", slog.String("kind", string(event.Kind)))

	// A resolve already in flight read the provider before this event.
	t.mu.Lock()
	t.generation++
	t.mu.Unlock()
	t.resolveGroup.Forget(resolveKey)

	t.Resolve(ctx)
}

// SignOut ends the provider session and resets to guest regardless of the outcome.
func (t *sessionTracker) SignOut(ctx context.Context) error {
	providerErr := t.provider.SignOut(ctx)
	if providerErr != nil {
		t.log(ctx).Warn("Provider sign-out failed, resetting local session", slog.Any("error", providerErr))
	}

	t.mu.Lock()
	t.generation++
	t.session = entity.GuestSession()
	t.expiresAt = time.Time{}
	t.tokens.ClearBearerToken()
	t.mu.Unlock()

	if err := t.profiles.Delete(ctx, t.clientID); err != nil {
		t.log(ctx).Warn("Failed to delete profile snapshot", slog.Any("error", err))
	}

	if providerErr != nil {
		return errors.Wrap(providerErr, "provider sign-out")
	}

	return nil
}

// Current returns the last resolved session.
func (t *sessionTracker) Current() entity.Session {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.session
}

// Verify re-resolves an authenticated session whose tokens are about to
// expire. The provider renews them or the session drops to guest.
func (t *sessionTracker) Verify(ctx context.Context) entity.Session {
	t.mu.RLock()
	session, expiresAt := t.session, t.expiresAt
	t.mu.RUnlock()

	if !session.IsAuthenticated || expiresAt.IsZero() || t.now().Add(sessionExpirySkew).Before(expiresAt) {
		return session
	}

	t.log(ctx).Debug("Session tokens expired, resolving", slog.Time("expires_at", expiresAt))

	return t.Resolve(ctx)
}
