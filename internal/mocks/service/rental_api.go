package service

import (
	"context"

	"scooter/internal/domain/entity"
	"scooter/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockRentalAPI is a mock of service.RentalAPI.
type MockRentalAPI struct {
	mock.Mock
}

var _ service.RentalAPI = (*MockRentalAPI)(nil)

// NewMockRentalAPI creates a mock that asserts its expectations on cleanup.
func NewMockRentalAPI(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRentalAPI {
	m := &MockRentalAPI{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRentalAPI) SetBearerToken(token string) {
	m.Called(token)
}

func (m *MockRentalAPI) ClearBearerToken() {
	m.Called()
}

func (m *MockRentalAPI) ListAvailableBikes(ctx context.Context) ([]entity.Bike, error) {
	args := m.Called(ctx)
	bikes, _ := args.Get(0).([]entity.Bike)

	return bikes, args.Error(1)
}

func (m *MockRentalAPI) ListAllBikes(ctx context.Context) ([]entity.Bike, error) {
	args := m.Called(ctx)
	bikes, _ := args.Get(0).([]entity.Bike)

	return bikes, args.Error(1)
}

func (m *MockRentalAPI) CreateBike(ctx context.Context, input entity.BikeInput) error {
	return m.Called(ctx, input).Error(0)
}

func (m *MockRentalAPI) UpdateBike(ctx context.Context, bikeID string, input entity.BikeInput) error {
	return m.Called(ctx, bikeID, input).Error(0)
}

func (m *MockRentalAPI) ListMyBookings(ctx context.Context) ([]entity.Booking, error) {
	args := m.Called(ctx)
	bookings, _ := args.Get(0).([]entity.Booking)

	return bookings, args.Error(1)
}

func (m *MockRentalAPI) ListAllBookings(ctx context.Context) ([]entity.Booking, error) {
	args := m.Called(ctx)
	bookings, _ := args.Get(0).([]entity.Booking)

	return bookings, args.Error(1)
}

func (m *MockRentalAPI) CreateBooking(ctx context.Context, request entity.BookingRequest) error {
	return m.Called(ctx, request).Error(0)
}

func (m *MockRentalAPI) UpdateBooking(ctx context.Context, reference string, update entity.BookingUpdate) error {
	return m.Called(ctx, reference, update).Error(0)
}

func (m *MockRentalAPI) CancelBooking(ctx context.Context, reference string) error {
	return m.Called(ctx, reference).Error(0)
}

func (m *MockRentalAPI) GetAccessCode(ctx context.Context, reference string) (string, error) {
	args := m.Called(ctx, reference)

	return args.String(0), args.Error(1)
}

func (m *MockRentalAPI) GetBookingBikeDetails(ctx context.Context, reference string) (*entity.BookingBikeDetails, error) {
	args := m.Called(ctx, reference)
	details, _ := args.Get(0).(*entity.BookingBikeDetails)

	return details, args.Error(1)
}

func (m *MockRentalAPI) GetBikeFeedback(ctx context.Context, bikeID string) (*entity.BikeFeedback, error) {
	args := m.Called(ctx, bikeID)
	feedback, _ := args.Get(0).(*entity.BikeFeedback)

	return feedback, args.Error(1)
}

func (m *MockRentalAPI) SubmitFeedback(ctx context.Context, input entity.FeedbackInput) error {
	return m.Called(ctx, input).Error(0)
}

func (m *MockRentalAPI) ListConcerns(ctx context.Context, bookingID string) ([]entity.Concern, error) {
	args := m.Called(ctx, bookingID)
	concerns, _ := args.Get(0).([]entity.Concern)

	return concerns, args.Error(1)
}

func (m *MockRentalAPI) RaiseConcern(ctx context.Context, input entity.ConcernInput) error {
	return m.Called(ctx, input).Error(0)
}

func (m *MockRentalAPI) ListAssignedConcerns(ctx context.Context, username string) ([]entity.Concern, error) {
	args := m.Called(ctx, username)
	concerns, _ := args.Get(0).([]entity.Concern)

	return concerns, args.Error(1)
}

func (m *MockRentalAPI) ResolveConcern(ctx context.Context, resolution entity.ConcernResolution) error {
	return m.Called(ctx, resolution).Error(0)
}

func (m *MockRentalAPI) GetAdminStats(ctx context.Context) (*entity.AdminStats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*entity.AdminStats)

	return stats, args.Error(1)
}
