package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "scooter/internal/delivery/context"
	"scooter/internal/domain/entity"
	domainerrors "scooter/internal/domain/errors"
	"scooter/internal/domain/service"
	"scooter/internal/usecase"

	"github.com/pkg/errors"
)

// registrationService implements the RegistrationUsecase interface.
type registrationService struct {
	clientID    string
	provider    service.IdentityProvider
	publisher   service.AuthEventPublisher
	callTimeout time.Duration
	logger      *slog.Logger
}

// NewRegistrationService is the constructor for registrationService.
func NewRegistrationService(
	clientID string,
	provider service.IdentityProvider,
	publisher service.AuthEventPublisher,
	callTimeout time.Duration,
	logger *slog.Logger,
) usecase.RegistrationUsecase {
	return &registrationService{
		clientID:    clientID,
		provider:    provider,
		publisher:   publisher,
		callTimeout: callTimeout,
		logger:      logger,
	}
}

func (srv *registrationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.Logger(ctx, srv.logger)
}

// AdvanceToQuestions validates the first step.
func (srv *registrationService) AdvanceToQuestions(draft entity.SignupDraft) (entity.SignupDraft, error) {
	if !draft.BasicsComplete() {
		draft.Step = entity.SignupStepBasics

		return draft, errors.WithStack(domainerrors.ErrSignupFieldsMissing)
	}

	draft.Step = entity.SignupStepQuestions

	return draft, nil
}

// Submit creates the account once every question is answered.
func (srv *registrationService) Submit(ctx context.Context, draft entity.SignupDraft) (*entity.SignupResult, error) {
	if !draft.BasicsComplete() {
		return nil, errors.WithStack(domainerrors.ErrSignupFieldsMissing)
	}
	if !draft.QuestionsComplete() {
		return nil, errors.WithStack(domainerrors.ErrSecurityQuestionsIncomplete)
	}
	if !draft.QuestionsDistinct() {
		return nil, errors.WithStack(domainerrors.ErrSecurityQuestionsDuplicated)
	}

	email := strings.TrimSpace(draft.Email)
	registration := entity.Registration{
		Email:       email,
		Password:    draft.Password,
		Name:        strings.TrimSpace(draft.Name),
		AccountType: draft.AccountType,
		Questions:   draft.Answers(),
	}

	callCtx, cancel := srv.callContext(ctx)
	defer cancel()

	result, err := srv.provider.SignUp(callCtx, registration)
	if err != nil {
		srv.log(ctx).Warn("Sign-up failed", slog.String("email", email), slog.Any("error", err))

		return nil, domainerrors.FromRemote(err, domainerrors.ErrRegistrationFailed)
	}
	if result == nil {
		result = &entity.SignupResult{NeedsConfirm: true}
	}

	srv.publish(ctx, entity.AuthEventSignUp, email)
	srv.log(ctx).Info("Account registered",
		slog.String("email", email),
		slog.String("account_type", string(draft.AccountType)),
		slog.Bool("needs_confirmation", result.NeedsConfirm))

	return result, nil
}

// Confirm submits the e-mailed verification code.
func (srv *registrationService) Confirm(ctx context.Context, email, code string) error {
	email = strings.TrimSpace(email)
	code = strings.TrimSpace(code)
	if email == "" || code == "" {
		return errors.WithStack(domainerrors.ErrSignupFieldsMissing)
	}

	callCtx, cancel := srv.callContext(ctx)
	defer cancel()

	if err := srv.provider.ConfirmSignUp(callCtx, email, code); err != nil {
		return domainerrors.FromRemote(err, domainerrors.ErrVerificationFailed)
	}

	srv.publish(ctx, entity.AuthEventConfirmSignUp, email)

	return nil
}

// AvailableQuestions lists the options of one question slot.
func (srv *registrationService) AvailableQuestions(draft entity.SignupDraft, slot int) []string {
	return draft.AvailableQuestions(slot)
}

func (srv *registrationService) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if srv.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, srv.callTimeout)
}

func (srv *registrationService) publish(ctx context.Context, kind entity.AuthEventKind, email string) {
	event := entity.AuthEvent{
		Kind:       kind,
		Username:   email,
		ClientID:   srv.clientID,
		RequestID:  deliverycontext.RequestIDFrom(ctx),
		OccurredAt: time.Now().UTC(),
	}
	if err := srv.publisher.PublishAuthEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish auth event", slog.String("kind", string(kind)), slog.Any("error", err))
	}
}
