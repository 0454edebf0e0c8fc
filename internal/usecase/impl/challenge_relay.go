package impl

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	deliverycontext "scooter/internal/delivery/context"
	"scooter/internal/domain/entity"
	domainerrors "scooter/internal/domain/errors"
	"scooter/internal/domain/lifecycle"
	"scooter/internal/domain/service"
	"scooter/internal/usecase"

	"github.com/pkg/errors"
)

// challengeRelay implements the ChallengeRelayUsecase interface.
type challengeRelay struct {
	clientID    string
	provider    service.IdentityProvider
	tracker     usecase.SessionUsecase
	profiles    service.ProfileStore
	publisher   service.AuthEventPublisher
	callTimeout time.Duration
	logger      *slog.Logger

	// submitting admits one submission at a time.
	submitting sync.Mutex

	mu    sync.RWMutex
	state entity.RelayState
}

// NewChallengeRelay is the constructor for challengeRelay.
func NewChallengeRelay(
	clientID string,
	provider service.IdentityProvider,
	tracker usecase.SessionUsecase,
	profiles service.ProfileStore,
	publisher service.AuthEventPublisher,
	callTimeout time.Duration,
	logger *slog.Logger,
) usecase.ChallengeRelayUsecase {
	if callTimeout <= 0 {
		callTimeout = lifecycle.DefaultTimeout
	}

	return &challengeRelay{
		clientID:    clientID,
		provider:    provider,
		tracker:     tracker,
		profiles:    profiles,
		publisher:   publisher,
		callTimeout: callTimeout,
		logger:      logger,
		state:       entity.RelayIdle{},
	}
}

func (r *challengeRelay) log(ctx context.Context) *slog.Logger {
	return deliverycontext.Logger(ctx, r.logger)
}

// SubmitCredentials starts the custom sign-in flow.
func (r *challengeRelay) SubmitCredentials(ctx context.Context, email, password string) (entity.RelayState, error) {
	if !r.submitting.TryLock() {
		return r.State(), errors.WithStack(domainerrors.ErrSubmissionInProgress)
	}
	defer r.submitting.Unlock()

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return r.fail(entity.RelayIdle{}, errors.WithStack(domainerrors.ErrCredentialsRequired))
	}

	r.setState(entity.RelayCredentialsSubmitted{Username: email})
	r.log(ctx).Info("Submitting credentials", slog.String("username", email))

	callCtx, cancel := context.WithTimeout(ctx, r.callTimeout)
	defer cancel()

	step, err := r.provider.SignIn(callCtx, email, password)
	if err != nil {
		return r.fail(entity.RelayIdle{}, r.providerError(err, domainerrors.ErrLoginFailed))
	}

	return r.advance(callCtx, email, step, entity.RelayIdle{}, domainerrors.ErrLoginFailed)
}

// SubmitChallengeAnswer answers the pending challenge round.
func (r *challengeRelay) SubmitChallengeAnswer(ctx context.Context, answer string) (entity.RelayState, error) {
	if !r.submitting.TryLock() {
		return r.State(), errors.WithStack(domainerrors.ErrSubmissionInProgress)
	}
	defer r.submitting.Unlock()

	challenge, ok := entity.PendingChallenge(r.State())
	if !ok {
		return r.fail(entity.RelayIdle{}, errors.WithStack(domainerrors.ErrNoActiveChallenge))
	}

	issued := entity.RelayChallengeIssued{Challenge: challenge}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return r.fail(issued, errors.WithStack(domainerrors.ErrAnswerRequired))
	}

	r.setState(entity.RelayChallengeAnswered{Challenge: challenge})
	r.publish(ctx, entity.AuthEventCustomChallengeAnswer, challenge.Username)
	r.log(ctx).Info("Submitting challenge answer",
		slog.String("username", challenge.Username),
		slog.String("kind", string(challenge.Kind)),
		slog.Int("round", challenge.Round))

	callCtx, cancel := context.WithTimeout(ctx, r.callTimeout)
	defer cancel()

	step, err := r.provider.SendChallengeAnswer(callCtx, challenge, answer)
	if err != nil {
		return r.fail(issued, r.providerError(err, domainerrors.ErrChallengeFailed))
	}

	return r.advance(callCtx, challenge.Username, step, issued, domainerrors.ErrChallengeFailed)
}

// advance moves to the next challenge or completes the sign-in.
func (r *challengeRelay) advance(
	ctx context.Context,
	username string,
	step *service.AuthStep,
	previous entity.RelayState,
	fallback *domainerrors.BaseError,
) (entity.RelayState, error) {
	switch {
	case step == nil:
		return r.fail(previous, errors.WithStack(domainerrors.ErrMalformedChallenge))
	case step.Challenge != nil:
		next := entity.RelayChallengeIssued{Challenge: *step.Challenge}
		r.setState(next)
		r.publish(ctx, entity.AuthEventCustomChallenge, username)
		r.log(ctx).Info("Challenge issued",
			slog.String("username", username),
			slog.String("kind", string(step.Challenge.Kind)),
			slog.Int("round", step.Challenge.Round))

		return next, nil
	case step.SignedIn:
		return r.complete(ctx, username, previous, fallback)
	default:
		return r.fail(previous, errors.WithStack(domainerrors.ErrMalformedChallenge))
	}
}

// complete runs the side effects of a successful sign-in.
func (r *challengeRelay) complete(
	ctx context.Context,
	username string,
	previous entity.RelayState,
	fallback *domainerrors.BaseError,
) (entity.RelayState, error) {
	r.tracker.HandleAuthEvent(ctx, r.event(ctx, entity.AuthEventSignIn, username))

	session := r.tracker.Current()
	if !session.IsAuthenticated {
		return r.fail(previous, errors.Wrap(fallback, "signed in but no principal is available"))
	}

	if err := r.profiles.Save(ctx, r.clientID, entity.SnapshotFromSession(session)); err != nil {
		r.log(ctx).Warn("Failed to persist profile snapshot", slog.Any("error", err))
	}
	r.publish(ctx, entity.AuthEventSignIn, username)

	signedIn := entity.RelaySignedIn{Session: session}
	r.setState(signedIn)
	r.log(ctx).Info("Signed in",
		slog.String("username", username),
		slog.String("role", session.Role.String()))

	return signedIn, nil
}

// SignOut ends the session and returns the relay to idle.
func (r *challengeRelay) SignOut(ctx context.Context) error {
	username := r.tracker.Current().Username
	err := r.tracker.SignOut(ctx)

	r.setState(entity.RelayIdle{})
	r.publish(ctx, entity.AuthEventSignOut, username)

	if err != nil {
		return domainerrors.FromRemote(err, domainerrors.ErrLogoutFailed)
	}

	return nil
}

// Abandon discards a pending challenge.
func (r *challengeRelay) Abandon() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.state.(entity.RelaySignedIn); ok {
		return
	}
	r.state = entity.RelayIdle{}
}

// State returns the current state.
func (r *challengeRelay) State() entity.RelayState {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.state
}

func (r *challengeRelay) setState(state entity.RelayState) {
	r.mu.Lock()
	r.state = state
	r.mu.Unlock()
}

// fail records a failed state that keeps the previous screen.
func (r *challengeRelay) fail(previous entity.RelayState, err error) (entity.RelayState, error) {
	reason := domainerrors.ErrInternalError.Message()
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		reason = appErr.Message()
	}

	failed := entity.RelayFailed{Reason: reason, Previous: previous}
	r.setState(failed)

	return failed, err
}

// providerError maps a provider failure to the message shown to the user.
func (r *challengeRelay) providerError(err error, fallback *domainerrors.BaseError) error {
	if errors.Is(err, entity.ErrInvalidShift) {
		return errors.Wrap(domainerrors.ErrMalformedChallenge, err.Error())
	}

	return domainerrors.FromRemote(err, fallback)
}

func (r *challengeRelay) event(ctx context.Context, kind entity.AuthEventKind, username string) entity.AuthEvent {
	return entity.AuthEvent{
		Kind:       kind,
		Username:   username,
		ClientID:   r.clientID,
		RequestID:  deliverycontext.RequestIDFrom(ctx),
		OccurredAt: time.Now().UTC(),
	}
}

// publish sends an audit event; failures never undo the auth step.
func (r *challengeRelay) publish(ctx context.Context, kind entity.AuthEventKind, username string) {
	if err := r.publisher.PublishAuthEvent(ctx, r.event(ctx, kind, username)); err != nil {
		r.log(ctx).Warn("Failed to publish auth event",
			slog.String("kind", string(kind)),
			slog.Any("error", err))
	}
}
