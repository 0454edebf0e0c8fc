package service

import (
	"context"

	"scooter/internal/domain/entity"
)

// BearerTokenHolder receives the token attached to rental API calls.
type BearerTokenHolder interface {
	SetBearerToken(token string)
	ClearBearerToken()
}

// RentalAPI is the rental backend's REST surface. Non-2xx answers are
// reported as *errors.APIError from the domain errors package.
type RentalAPI interface {
	BearerTokenHolder

	ListAvailableBikes(ctx context.Context) ([]entity.Bike, error)
	ListAllBikes(ctx context.Context) ([]entity.Bike, error)
	CreateBike(ctx context.Context, input entity.BikeInput) error
	UpdateBike(ctx context.Context, bikeID string, input entity.BikeInput) error

	ListMyBookings(ctx context.Context) ([]entity.Booking, error)
	ListAllBookings(ctx context.Context) ([]entity.Booking, error)
	CreateBooking(ctx context.Context, request entity.BookingRequest) error
	UpdateBooking(ctx context.Context, reference string, update entity.BookingUpdate) error
	CancelBooking(ctx context.Context, reference string) error
	GetAccessCode(ctx context.Context, reference string) (string, error)
	GetBookingBikeDetails(ctx context.Context, reference string) (*entity.BookingBikeDetails, error)

	GetBikeFeedback(ctx context.Context, bikeID string) (*entity.BikeFeedback, error)
	SubmitFeedback(ctx context.Context, input entity.FeedbackInput) error

	ListConcerns(ctx context.Context, bookingID string) ([]entity.Concern, error)
	RaiseConcern(ctx context.Context, input entity.ConcernInput) error
	ListAssignedConcerns(ctx context.Context, username string) ([]entity.Concern, error)
	ResolveConcern(ctx context.Context, resolution entity.ConcernResolution) error

	GetAdminStats(ctx context.Context) (*entity.AdminStats, error)
}

// RentalAPIFactory creates a REST client with its own bearer token per client.
type RentalAPIFactory interface {
	NewRentalAPI() RentalAPI
}
