package service

import (
	"context"

	"scooter/internal/domain/entity"
	"scooter/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockProfileStore is a mock of service.ProfileStore.
type MockProfileStore struct {
	mock.Mock
}

var _ service.ProfileStore = (*MockProfileStore)(nil)

// NewMockProfileStore creates a mock that asserts its expectations on cleanup.
func NewMockProfileStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockProfileStore {
	m := &MockProfileStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockProfileStore) Save(ctx context.Context, clientID string, snapshot entity.ProfileSnapshot) error {
	return m.Called(ctx, clientID, snapshot).Error(0)
}

func (m *MockProfileStore) Load(ctx context.Context, clientID string) (*entity.ProfileSnapshot, error) {
	args := m.Called(ctx, clientID)
	snapshot, _ := args.Get(0).(*entity.ProfileSnapshot)

	return snapshot, args.Error(1)
}

func (m *MockProfileStore) Delete(ctx context.Context, clientID string) error {
	return m.Called(ctx, clientID).Error(0)
}

func (m *MockProfileStore) Close() error {
	return m.Called().Error(0)
}

// MockAuthEventPublisher is a mock of service.AuthEventPublisher.
type MockAuthEventPublisher struct {
	mock.Mock
}

var _ service.AuthEventPublisher = (*MockAuthEventPublisher)(nil)

// NewMockAuthEventPublisher creates a mock that asserts its expectations on cleanup.
func NewMockAuthEventPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAuthEventPublisher {
	m := &MockAuthEventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAuthEventPublisher) PublishAuthEvent(ctx context.Context, event entity.AuthEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockAuthEventPublisher) Close() error {
	return m.Called().Error(0)
}
