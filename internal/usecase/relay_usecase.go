package usecase

import (
	"context"

	"scooter/internal/domain/entity"
)

// ChallengeRelayUsecase drives the multi-step sign-in: password, then any
// number of provider challenges, then a signed-in session.
//
// Each submission returns the new state. When the returned error is non-nil
// the state is a RelayFailed that keeps the user on the same screen.
type ChallengeRelayUsecase interface {
	SubmitCredentials(ctx context.Context, email, password string) (entity.RelayState, error)
	SubmitChallengeAnswer(ctx context.Context, answer string) (entity.RelayState, error)

	// SignOut ends the session and returns the relay to idle.
	SignOut(ctx context.Context) error

	// Abandon discards a pending challenge when the user leaves the sign-in flow.
	Abandon()

	State() entity.RelayState
}
