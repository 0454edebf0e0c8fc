package impl

import (
	"context"
	"testing"
	"time"

	"scooter/internal/domain/entity"
	domainerrors "scooter/internal/domain/errors"
	mockService "scooter/internal/mocks/service"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestTracker(t *testing.T) (*sessionTracker, *mockService.MockIdentityProvider, *mockService.MockProfileStore, *tokenRecorder) {
	t.Helper()

	provider := mockService.NewMockIdentityProvider(t)
	profiles := mockService.NewMockProfileStore(t)
	tokens := &tokenRecorder{}

	tracker, ok := NewSessionTracker("ws-1", provider, tokens, profiles, testMapping, testLogger()).(*sessionTracker)
	require.True(t, ok)

	return tracker, provider, profiles, tokens
}

func TestSessionTracker_StartsLoading(t *testing.T) {
	tracker, _, _, _ := newTestTracker(t)

	session := tracker.Current()

	assert.True(t, session.IsLoading)
	assert.False(t, session.IsAuthenticated)
	assert.Equal(t, entity.RoleGuest, session.Role)
}

func TestSessionTracker_Resolve_Customer(t *testing.T) {
	tracker, provider, _, tokens := newTestTracker(t)
	provider.On("CurrentPrincipal", mock.Anything).Return(customerPrincipal(), nil).Once()

	session := tracker.Resolve(context.Background())

	assert.True(t, session.IsAuthenticated)
	assert.False(t, session.IsLoading)
	assert.Equal(t, entity.RoleCustomer, session.Role)
	assert.Equal(t, "sub-123", session.UserID)
	assert.Equal(t, "Ana", session.DisplayName)
	assert.Equal(t, "id-token-customer", tokens.Token())
	assert.Equal(t, session, tracker.Current())
}

func TestSessionTracker_Resolve_AdminWinsOverCustomer(t *testing.T) {
	tracker, provider, _, tokens := newTestTracker(t)
	provider.On("CurrentPrincipal", mock.Anything).Return(adminPrincipal(), nil).Once()

	session := tracker.Resolve(context.Background())

	assert.Equal(t, entity.RoleAdmin, session.Role)
	assert.True(t, session.IsAdmin())
	assert.Equal(t, "id-token-admin", tokens.Token())
}

func TestSessionTracker_Resolve_NoKnownGroupIsCustomer(t *testing.T) {
	tracker, provider, _, _ := newTestTracker(t)
	principal := customerPrincipal()
	principal.Groups = nil
	provider.On("CurrentPrincipal", mock.Anything).Return(principal, nil).Once()

	session := tracker.Resolve(context.Background())

	assert.True(t, session.IsAuthenticated)
	assert.Equal(t, entity.RoleCustomer, session.Role)
}

func TestSessionTracker_Resolve_FailureIsGuest(t *testing.T) {
	tracker, provider, _, tokens := newTestTracker(t)
	tokens.SetBearerToken("stale")
	provider.On("CurrentPrincipal", mock.Anything).
		Return(nil, &domainerrors.ProviderError{Code: "NotAuthorizedException", Message: "expired"}).Once()

	session := tracker.Resolve(context.Background())

	assert.False(t, session.IsAuthenticated)
	assert.False(t, session.IsLoading)
	assert.Equal(t, entity.RoleGuest, session.Role)
	assert.Empty(t, tokens.Token())
}

func TestSessionTracker_HandleAuthEvent(t *testing.T) {
	t.Run("sign-in re-resolves", func(t *testing.T) {
		tracker, provider, _, _ := newTestTracker(t)
		provider.On("CurrentPrincipal", mock.Anything).Return(customerPrincipal(), nil).Once()

		tracker.HandleAuthEvent(context.Background(), entity.AuthEvent{Kind: entity.AuthEventSignIn})

		assert.True(t, tracker.Current().IsAuthenticated)
	})

	t.Run("informational events are ignored", func(t *testing.T) {
		tracker, provider, _, _ := newTestTracker(t)

		tracker.HandleAuthEvent(context.Background(), entity.AuthEvent{Kind: entity.AuthEventCustomChallenge})

		provider.AssertNotCalled(t, "CurrentPrincipal", mock.Anything)
		assert.True(t, tracker.Current().IsLoading)
	})
}

func TestSessionTracker_SignOut(t *testing.T) {
	t.Run("success resets everything", func(t *testing.T) {
		tracker, provider, profiles, tokens := newTestTracker(t)
		provider.On("CurrentPrincipal", mock.Anything).Return(customerPrincipal(), nil).Once()
		provider.On("SignOut", mock.Anything).Return(nil).Once()
		profiles.On("Delete", mock.Anything, "ws-1").Return(nil).Once()
		tracker.Resolve(context.Background())

		err := tracker.SignOut(context.Background())

		require.NoError(t, err)
		assert.Equal(t, entity.GuestSession(), tracker.Current())
		assert.Empty(t, tokens.Token())
	})

	t.Run("provider failure still resets locally", func(t *testing.T) {
		tracker, provider, profiles, tokens := newTestTracker(t)
		provider.On("CurrentPrincipal", mock.Anything).Return(customerPrincipal(), nil).Once()
		providerErr := &domainerrors.ProviderError{Code: "InternalErrorException", Message: "boom"}
		provider.On("SignOut", mock.Anything).Return(providerErr).Once()
		profiles.On("Delete", mock.Anything, "ws-1").Return(nil).Once()
		tracker.Resolve(context.Background())

		err := tracker.SignOut(context.Background())

		require.Error(t, err)
		assert.ErrorIs(t, err, providerErr)
		assert.False(t, tracker.Current().IsAuthenticated)
		assert.Empty(t, tokens.Token())
	})

	t.Run("snapshot delete failure is not returned", func(t *testing.T) {
		tracker, provider, profiles, _ := newTestTracker(t)
		provider.On("SignOut", mock.Anything).Return(nil).Once()
		profiles.On("Delete", mock.Anything, "ws-1").Return(errors.New("disk full")).Once()

		err := tracker.SignOut(context.Background())

		require.NoError(t, err)
		assert.Equal(t, entity.GuestSession(), tracker.Current())
	})
}

func TestSessionTracker_StaleResolveDoesNotRestoreSession(t *testing.T) {
	tracker, provider, profiles, tokens := newTestTracker(t)
	provider.On("SignOut", mock.Anything).Return(nil).Once()
	profiles.On("Delete", mock.Anything, "ws-1").Return(nil).Once()

	provider.On("CurrentPrincipal", mock.Anything).
		Run(func(mock.Arguments) {
			// sign-out lands while the provider call is in flight
			require.NoError(t, tracker.SignOut(context.Background()))
		}).
		Return(customerPrincipal(), nil).Once()

	session := tracker.Resolve(context.Background())

	assert.False(t, session.IsAuthenticated)
	assert.Empty(t, tokens.Token())
}

func TestSessionTracker_SignInWinsOverResolveInFlight(t *testing.T) {
	tracker, provider, _, tokens := newTestTracker(t)

	provider.On("CurrentPrincipal", mock.Anything).
		Run(func(mock.Arguments) {
			// the sign-in completes while the first lookup is still running
			tracker.HandleAuthEvent(context.Background(), entity.AuthEvent{Kind: entity.AuthEventSignIn})
		}).
		Return(nil, errors.WithStack(domainerrors.ErrNotAuthenticated)).Once()
	provider.On("CurrentPrincipal", mock.Anything).Return(customerPrincipal(), nil).Once()

	session := tracker.Resolve(context.Background())

	assert.True(t, session.IsAuthenticated)
	assert.True(t, tracker.Current().IsAuthenticated)
	assert.Equal(t, "id-token-customer", tokens.Token())
}

func TestSessionTracker_Verify(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	resolved := func(t *testing.T) (*sessionTracker, *mockService.MockIdentityProvider, *tokenRecorder) {
		t.Helper()

		tracker, provider, _, tokens := newTestTracker(t)
		tracker.now = func() time.Time { return now }

		principal := customerPrincipal()
		principal.ExpiresAt = now.Add(time.Hour)
		provider.On("CurrentPrincipal", mock.Anything).Return(principal, nil).Once()
		require.True(t, tracker.Resolve(context.Background()).IsAuthenticated)

		return tracker, provider, tokens
	}

	t.Run("valid session is not resolved again", func(t *testing.T) {
		tracker, _, tokens := resolved(t)

		session := tracker.Verify(context.Background())

		assert.True(t, session.IsAuthenticated)
		assert.Equal(t, "id-token-customer", tokens.Token())
	})

	t.Run("expired session drops to guest", func(t *testing.T) {
		tracker, provider, tokens := resolved(t)
		provider.On("CurrentPrincipal", mock.Anything).
			Return(nil, errors.WithStack(domainerrors.ErrNotAuthenticated)).Once()
		tracker.now = func() time.Time { return now.Add(time.Hour) }

		session := tracker.Verify(context.Background())

		assert.False(t, session.IsAuthenticated)
		assert.Equal(t, entity.RoleGuest, session.Role)
		assert.Equal(t, entity.GuestSession(), tracker.Current())
		assert.Empty(t, tokens.Token())
	})

	t.Run("renewed tokens keep the session", func(t *testing.T) {
		tracker, provider, tokens := resolved(t)
		renewed := customerPrincipal()
		renewed.IDToken = "id-token-renewed"
		renewed.ExpiresAt = now.Add(2 * time.Hour)
		provider.On("CurrentPrincipal", mock.Anything).Return(renewed, nil).Once()
		// inside the skew window
		tracker.now = func() time.Time { return now.Add(time.Hour - 10*time.Second) }

		session := tracker.Verify(context.Background())

		assert.True(t, session.IsAuthenticated)
		assert.Equal(t, "id-token-renewed", tokens.Token())

		// the renewed expiry is honoured
		assert.True(t, tracker.Verify(context.Background()).IsAuthenticated)
	})

	t.Run("guest session is never resolved", func(t *testing.T) {
		tracker, provider, _, _ := newTestTracker(t)

		session := tracker.Verify(context.Background())

		assert.True(t, session.IsLoading)
		provider.AssertNotCalled(t, "CurrentPrincipal", mock.Anything)
	})
}
