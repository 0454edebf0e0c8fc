package impl

import (
	"context"
	"testing"
	"time"

	"scooter/internal/domain/entity"
	domainerrors "scooter/internal/domain/errors"
	mockService "scooter/internal/mocks/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func completeDraft() entity.SignupDraft {
	return entity.SignupDraft{
		Email:       " ana@example.com ",
		Password:    "Secret123!",
		Name:        "Ana",
		AccountType: entity.AccountTypeCustomer,
		Questions: [entity.SecurityQuestionSlots]entity.SecurityAnswer{
			{Question: entity.SecurityQuestions[0], Answer: "pizza"},
			{Question: entity.SecurityQuestions[1], Answer: " Lisbon "},
			{Question: entity.SecurityQuestions[2], Answer: "blue"},
		},
		Step: entity.SignupStepQuestions,
	}
}

func newTestRegistration(t *testing.T) (*registrationService, *mockService.MockIdentityProvider, *mockService.MockAuthEventPublisher) {
	t.Helper()

	provider := mockService.NewMockIdentityProvider(t)
	publisher := mockService.NewMockAuthEventPublisher(t)
	srv, ok := NewRegistrationService("ws-1", provider, publisher, time.Second, testLogger()).(*registrationService)
	require.True(t, ok)

	return srv, provider, publisher
}

func TestRegistration_AdvanceToQuestions(t *testing.T) {
	srv, _, _ := newTestRegistration(t)

	draft := completeDraft()
	draft.Step = entity.SignupStepBasics
	next, err := srv.AdvanceToQuestions(draft)
	require.NoError(t, err)
	assert.Equal(t, entity.SignupStepQuestions, next.Step)

	draft.Name = " "
	next, err = srv.AdvanceToQuestions(draft)
	require.ErrorIs(t, err, domainerrors.ErrSignupFieldsMissing)
	assert.Equal(t, entity.SignupStepBasics, next.Step)
}

func TestRegistration_Submit_Success(t *testing.T) {
	srv, provider, publisher := newTestRegistration(t)

	provider.On("SignUp", mock.Anything, mock.MatchedBy(func(r entity.Registration) bool {
		return r.Email == "ana@example.com" &&
			r.AccountType == entity.AccountTypeCustomer &&
			len(r.Questions) == 3 &&
			r.Questions[1].Answer == "Lisbon"
	})).Return(&entity.SignupResult{UserID: "sub-1", NeedsConfirm: true}, nil).Once()
	publisher.On("PublishAuthEvent", mock.Anything, mock.MatchedBy(func(e entity.AuthEvent) bool {
		return e.Kind == entity.AuthEventSignUp && e.Username == "ana@example.com"
	})).Return(nil).Once()

	result, err := srv.Submit(context.Background(), completeDraft())

	require.NoError(t, err)
	assert.True(t, result.NeedsConfirm)
	assert.Equal(t, "sub-1", result.UserID)
}

func TestRegistration_Submit_InvalidQuestionsNeverReachProvider(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*entity.SignupDraft)
		wantErr error
	}{
		{
			name:    "missing answer",
			mutate:  func(d *entity.SignupDraft) { d.Questions[2].Answer = "  " },
			wantErr: domainerrors.ErrSecurityQuestionsIncomplete,
		},
		{
			name:    "missing question",
			mutate:  func(d *entity.SignupDraft) { d.Questions[0].Question = "" },
			wantErr: domainerrors.ErrSecurityQuestionsIncomplete,
		},
		{
			name:    "duplicate question",
			mutate:  func(d *entity.SignupDraft) { d.Questions[2].Question = d.Questions[0].Question },
			wantErr: domainerrors.ErrSecurityQuestionsDuplicated,
		},
		{
			name:    "missing basics",
			mutate:  func(d *entity.SignupDraft) { d.Password = "" },
			wantErr: domainerrors.ErrSignupFieldsMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, provider, _ := newTestRegistration(t)
			draft := completeDraft()
			tt.mutate(&draft)

			_, err := srv.Submit(context.Background(), draft)

			require.ErrorIs(t, err, tt.wantErr)
			provider.AssertNotCalled(t, "SignUp", mock.Anything, mock.Anything)
		})
	}
}

func TestRegistration_Submit_ProviderMessage(t *testing.T) {
	srv, provider, _ := newTestRegistration(t)
	provider.On("SignUp", mock.Anything, mock.Anything).
		Return(nil, &domainerrors.ProviderError{Code: "UsernameExistsException", Message: "An account with the given email already exists."}).Once()

	_, err := srv.Submit(context.Background(), completeDraft())

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "An account with the given email already exists.", appErr.Message())
}

func TestRegistration_Confirm(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv, provider, publisher := newTestRegistration(t)
		provider.On("ConfirmSignUp", mock.Anything, "ana@example.com", "123456").Return(nil).Once()
		publisher.On("PublishAuthEvent", mock.Anything, mock.Anything).Return(nil).Once()

		require.NoError(t, srv.Confirm(context.Background(), "ana@example.com", " 123456 "))
	})

	t.Run("failure uses fallback and is not retried", func(t *testing.T) {
		srv, provider, _ := newTestRegistration(t)
		provider.On("ConfirmSignUp", mock.Anything, "ana@example.com", "000000").
			Return(&domainerrors.ProviderError{Code: "CodeMismatchException"}).Once()

		err := srv.Confirm(context.Background(), "ana@example.com", "000000")

		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "Verification failed. Please check the code.", appErr.Message())
		provider.AssertNumberOfCalls(t, "ConfirmSignUp", 1)
	})
}

func TestRegistration_AvailableQuestions(t *testing.T) {
	srv, _, _ := newTestRegistration(t)
	draft := completeDraft()

	options := srv.AvailableQuestions(draft, 0)

	assert.ElementsMatch(t, []string{entity.SecurityQuestions[0], entity.SecurityQuestions[3]}, options)
}
