// Package service holds testify mocks of the domain service ports.
package service

import (
	"context"

	"scooter/internal/domain/entity"
	"scooter/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockIdentityProvider is a mock of service.IdentityProvider.
type MockIdentityProvider struct {
	mock.Mock
}

var _ service.IdentityProvider = (*MockIdentityProvider)(nil)

// NewMockIdentityProvider creates a mock that asserts its expectations on cleanup.
func NewMockIdentityProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockIdentityProvider {
	m := &MockIdentityProvider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockIdentityProvider) SignUp(ctx context.Context, registration entity.Registration) (*entity.SignupResult, error) {
	args := m.Called(ctx, registration)
	result, _ := args.Get(0).(*entity.SignupResult)

	return result, args.Error(1)
}

func (m *MockIdentityProvider) ConfirmSignUp(ctx context.Context, email, code string) error {
	return m.Called(ctx, email, code).Error(0)
}

func (m *MockIdentityProvider) SignIn(ctx context.Context, username, password string) (*service.AuthStep, error) {
	args := m.Called(ctx, username, password)
	step, _ := args.Get(0).(*service.AuthStep)

	return step, args.Error(1)
}

func (m *MockIdentityProvider) SendChallengeAnswer(ctx context.Context, challenge entity.ChallengeSession, answer string) (*service.AuthStep, error) {
	args := m.Called(ctx, challenge, answer)
	step, _ := args.Get(0).(*service.AuthStep)

	return step, args.Error(1)
}

func (m *MockIdentityProvider) CurrentPrincipal(ctx context.Context) (*entity.Principal, error) {
	args := m.Called(ctx)
	principal, _ := args.Get(0).(*entity.Principal)

	return principal, args.Error(1)
}

func (m *MockIdentityProvider) SignOut(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
