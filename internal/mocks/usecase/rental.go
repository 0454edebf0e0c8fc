package usecase

import (
	"context"

	"scooter/internal/domain/entity"
	"scooter/internal/usecase"

	"github.com/stretchr/testify/mock"
)

// MockCatalogUsecase is a mock of usecase.CatalogUsecase.
type MockCatalogUsecase struct {
	mock.Mock
}

var _ usecase.CatalogUsecase = (*MockCatalogUsecase)(nil)

// NewMockCatalogUsecase creates a mock that asserts its expectations on cleanup.
func NewMockCatalogUsecase(t testingT) *MockCatalogUsecase {
	m := &MockCatalogUsecase{}
	register(t, &m.Mock)

	return m
}

func (m *MockCatalogUsecase) Browse(ctx context.Context, filter entity.BikeFilter) (*entity.Catalog, error) {
	args := m.Called(ctx, filter)
	catalog, _ := args.Get(0).(*entity.Catalog)

	return catalog, args.Error(1)
}

// MockBookingUsecase is a mock of usecase.BookingUsecase.
type MockBookingUsecase struct {
	mock.Mock
}

var _ usecase.BookingUsecase = (*MockBookingUsecase)(nil)

// NewMockBookingUsecase creates a mock that asserts its expectations on cleanup.
func NewMockBookingUsecase(t testingT) *MockBookingUsecase {
	m := &MockBookingUsecase{}
	register(t, &m.Mock)

	return m
}

func (m *MockBookingUsecase) MyBookings(ctx context.Context) ([]entity.BookingView, error) {
	args := m.Called(ctx)
	views, _ := args.Get(0).([]entity.BookingView)

	return views, args.Error(1)
}

func (m *MockBookingUsecase) AllBookings(ctx context.Context) ([]entity.BookingView, error) {
	args := m.Called(ctx)
	views, _ := args.Get(0).([]entity.BookingView)

	return views, args.Error(1)
}

func (m *MockBookingUsecase) Book(ctx context.Context, input usecase.BookInput) error {
	return m.Called(ctx, input).Error(0)
}

func (m *MockBookingUsecase) Reschedule(ctx context.Context, input usecase.RescheduleInput) error {
	return m.Called(ctx, input).Error(0)
}

func (m *MockBookingUsecase) Cancel(ctx context.Context, reference string) error {
	return m.Called(ctx, reference).Error(0)
}

func (m *MockBookingUsecase) AccessCode(ctx context.Context, reference string) (*entity.AccessCode, error) {
	args := m.Called(ctx, reference)
	code, _ := args.Get(0).(*entity.AccessCode)

	return code, args.Error(1)
}

func (m *MockBookingUsecase) BikeDetails(ctx context.Context, reference string) (*entity.BookingBikeDetails, error) {
	args := m.Called(ctx, reference)
	details, _ := args.Get(0).(*entity.BookingBikeDetails)

	return details, args.Error(1)
}

// MockFleetUsecase is a mock of usecase.FleetUsecase.
type MockFleetUsecase struct {
	mock.Mock
}

var _ usecase.FleetUsecase = (*MockFleetUsecase)(nil)

// NewMockFleetUsecase creates a mock that asserts its expectations on cleanup.
func NewMockFleetUsecase(t testingT) *MockFleetUsecase {
	m := &MockFleetUsecase{}
	register(t, &m.Mock)

	return m
}

func (m *MockFleetUsecase) List(ctx context.Context) ([]entity.Bike, error) {
	args := m.Called(ctx)
	bikes, _ := args.Get(0).([]entity.Bike)

	return bikes, args.Error(1)
}

func (m *MockFleetUsecase) Get(ctx context.Context, bikeID string) (*entity.Bike, error) {
	args := m.Called(ctx, bikeID)
	bike, _ := args.Get(0).(*entity.Bike)

	return bike, args.Error(1)
}

func (m *MockFleetUsecase) Create(ctx context.Context, draft entity.BikeDraft) error {
	return m.Called(ctx, draft).Error(0)
}

func (m *MockFleetUsecase) Update(ctx context.Context, bikeID string, draft entity.BikeDraft) error {
	return m.Called(ctx, bikeID, draft).Error(0)
}

// MockConcernUsecase is a mock of usecase.ConcernUsecase.
type MockConcernUsecase struct {
	mock.Mock
}

var _ usecase.ConcernUsecase = (*MockConcernUsecase)(nil)

// NewMockConcernUsecase creates a mock that asserts its expectations on cleanup.
func NewMockConcernUsecase(t testingT) *MockConcernUsecase {
	m := &MockConcernUsecase{}
	register(t, &m.Mock)

	return m
}

func (m *MockConcernUsecase) ForBooking(ctx context.Context, bookingID string) ([]entity.Concern, error) {
	args := m.Called(ctx, bookingID)
	concerns, _ := args.Get(0).([]entity.Concern)

	return concerns, args.Error(1)
}

func (m *MockConcernUsecase) Raise(ctx context.Context, bookingID, text string) ([]entity.Concern, error) {
	args := m.Called(ctx, bookingID, text)
	concerns, _ := args.Get(0).([]entity.Concern)

	return concerns, args.Error(1)
}

func (m *MockConcernUsecase) Assigned(ctx context.Context) ([]entity.Concern, error) {
	args := m.Called(ctx)
	concerns, _ := args.Get(0).([]entity.Concern)

	return concerns, args.Error(1)
}

func (m *MockConcernUsecase) Resolve(ctx context.Context, bookingID, comment string) ([]entity.Concern, error) {
	args := m.Called(ctx, bookingID, comment)
	concerns, _ := args.Get(0).([]entity.Concern)

	return concerns, args.Error(1)
}

// MockFeedbackUsecase is a mock of usecase.FeedbackUsecase.
type MockFeedbackUsecase struct {
	mock.Mock
}

var _ usecase.FeedbackUsecase = (*MockFeedbackUsecase)(nil)

// NewMockFeedbackUsecase creates a mock that asserts its expectations on cleanup.
func NewMockFeedbackUsecase(t testingT) *MockFeedbackUsecase {
	m := &MockFeedbackUsecase{}
	register(t, &m.Mock)

	return m
}

func (m *MockFeedbackUsecase) ForBike(ctx context.Context, bikeID string) (*entity.BikeFeedback, error) {
	args := m.Called(ctx, bikeID)
	feedback, _ := args.Get(0).(*entity.BikeFeedback)

	return feedback, args.Error(1)
}

func (m *MockFeedbackUsecase) Submit(ctx context.Context, input entity.FeedbackInput) (*entity.BikeFeedback, error) {
	args := m.Called(ctx, input)
	feedback, _ := args.Get(0).(*entity.BikeFeedback)

	return feedback, args.Error(1)
}

// MockDashboardUsecase is a mock of usecase.DashboardUsecase.
type MockDashboardUsecase struct {
	mock.Mock
}

var _ usecase.DashboardUsecase = (*MockDashboardUsecase)(nil)

// NewMockDashboardUsecase creates a mock that asserts its expectations on cleanup.
func NewMockDashboardUsecase(t testingT) *MockDashboardUsecase {
	m := &MockDashboardUsecase{}
	register(t, &m.Mock)

	return m
}

func (m *MockDashboardUsecase) Load(ctx context.Context) (*entity.Dashboard, error) {
	args := m.Called(ctx)
	dashboard, _ := args.Get(0).(*entity.Dashboard)

	return dashboard, args.Error(1)
}
