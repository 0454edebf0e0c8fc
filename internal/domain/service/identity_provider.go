package service

import (
	"context"

	"scooter/internal/domain/entity"
)

// AuthStep is the provider's answer to a sign-in or challenge submission.
// Either SignedIn is true, or Challenge holds the next round.
type AuthStep struct {
	SignedIn  bool
	Challenge *entity.ChallengeSession
}

// IdentityProvider is the managed identity service. One instance holds the
// tokens of one client; it is not shared between visitors.
type IdentityProvider interface {
	// SignUp creates an unconfirmed account.
	SignUp(ctx context.Context, registration entity.Registration) (*entity.SignupResult, error)

	// ConfirmSignUp confirms an account with the e-mailed code.
	ConfirmSignUp(ctx context.Context, email, code string) error

	// SignIn starts the custom authentication flow.
	SignIn(ctx context.Context, username, password string) (*AuthStep, error)

	// SendChallengeAnswer answers the given challenge round.
	SendChallengeAnswer(ctx context.Context, challenge entity.ChallengeSession, answer string) (*AuthStep, error)

	// CurrentPrincipal returns the signed-in principal, refreshing expired
	// tokens when possible. It fails when nobody is signed in.
	CurrentPrincipal(ctx context.Context) (*entity.Principal, error)

	// SignOut ends the provider session and forgets local tokens.
	SignOut(ctx context.Context) error
}

// IdentityProviderFactory creates a provider session per client.
type IdentityProviderFactory interface {
	NewIdentityProvider() IdentityProvider
}
