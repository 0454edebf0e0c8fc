// Package usecase holds testify mocks of the use case interfaces.
package usecase

import (
	"context"

	"scooter/internal/domain/entity"
	"scooter/internal/usecase"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func register(t testingT, m *mock.Mock) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

// MockSessionUsecase is a mock of usecase.SessionUsecase.
type MockSessionUsecase struct {
	mock.Mock
}

var _ usecase.SessionUsecase = (*MockSessionUsecase)(nil)

// NewMockSessionUsecase creates a mock that asserts its expectations on cleanup.
func NewMockSessionUsecase(t testingT) *MockSessionUsecase {
	m := &MockSessionUsecase{}
	register(t, &m.Mock)

	return m
}

func (m *MockSessionUsecase) Resolve(ctx context.Context) entity.Session {
	return m.Called(ctx).Get(0).(entity.Session)
}

func (m *MockSessionUsecase) HandleAuthEvent(ctx context.Context, event entity.AuthEvent) {
	m.Called(ctx, event)
}

func (m *MockSessionUsecase) SignOut(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockSessionUsecase) Current() entity.Session {
	return m.Called().Get(0).(entity.Session)
}

func (m *MockSessionUsecase) Verify(ctx context.Context) entity.Session {
	return m.Called(ctx).Get(0).(entity.Session)
}

// MockChallengeRelayUsecase is a mock of usecase.ChallengeRelayUsecase.
type MockChallengeRelayUsecase struct {
	mock.Mock
}

var _ usecase.ChallengeRelayUsecase = (*MockChallengeRelayUsecase)(nil)

// NewMockChallengeRelayUsecase creates a mock that asserts its expectations on cleanup.
func NewMockChallengeRelayUsecase(t testingT) *MockChallengeRelayUsecase {
	m := &MockChallengeRelayUsecase{}
	register(t, &m.Mock)

	return m
}

func (m *MockChallengeRelayUsecase) SubmitCredentials(ctx context.Context, email, password string) (entity.RelayState, error) {
	args := m.Called(ctx, email, password)
	state, _ := args.Get(0).(entity.RelayState)

	return state, args.Error(1)
}

func (m *MockChallengeRelayUsecase) SubmitChallengeAnswer(ctx context.Context, answer string) (entity.RelayState, error) {
	args := m.Called(ctx, answer)
	state, _ := args.Get(0).(entity.RelayState)

	return state, args.Error(1)
}

func (m *MockChallengeRelayUsecase) SignOut(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockChallengeRelayUsecase) Abandon() {
	m.Called()
}

func (m *MockChallengeRelayUsecase) State() entity.RelayState {
	state, _ := m.Called().Get(0).(entity.RelayState)

	return state
}

// MockRegistrationUsecase is a mock of usecase.RegistrationUsecase.
type MockRegistrationUsecase struct {
	mock.Mock
}

var _ usecase.RegistrationUsecase = (*MockRegistrationUsecase)(nil)

// NewMockRegistrationUsecase creates a mock that asserts its expectations on cleanup.
func NewMockRegistrationUsecase(t testingT) *MockRegistrationUsecase {
	m := &MockRegistrationUsecase{}
	register(t, &m.Mock)

	return m
}

func (m *MockRegistrationUsecase) AdvanceToQuestions(draft entity.SignupDraft) (entity.SignupDraft, error) {
	args := m.Called(draft)

	return args.Get(0).(entity.SignupDraft), args.Error(1)
}

func (m *MockRegistrationUsecase) Submit(ctx context.Context, draft entity.SignupDraft) (*entity.SignupResult, error) {
	args := m.Called(ctx, draft)
	result, _ := args.Get(0).(*entity.SignupResult)

	return result, args.Error(1)
}

func (m *MockRegistrationUsecase) Confirm(ctx context.Context, email, code string) error {
	return m.Called(ctx, email, code).Error(0)
}

func (m *MockRegistrationUsecase) AvailableQuestions(draft entity.SignupDraft, slot int) []string {
	options, _ := m.Called(draft, slot).Get(0).([]string)

	return options
}
