package usecase

import (
	"context"

	"scooter/internal/domain/entity"
)

// Messages shown after successful rental actions.
const (
	MsgBikeAdded         = "Bike added successfully!"
	MsgBikeUpdated       = "Bike updated successfully!"
	MsgBookingSubmitted  = "Booking request submitted successfully! Please check 'My Bookings' for status."
	MsgBookingUpdated    = "Booking updated successfully!"
	MsgBookingCancelled  = "Booking cancelled successfully!"
	MsgFeedbackSubmitted = "Feedback submitted successfully!"
	MsgConcernRaised     = "Concern submitted successfully!"
	MsgConcernResolved   = "Concern resolved successfully!"
	MsgNoBookings        = "You have no bookings yet."
)

// --- Input DTOs ---

// BookInput is a customer's booking request.
type BookInput struct {
	BikeID string
	Window entity.BookingWindow
}

// RescheduleInput moves an existing booking.
type RescheduleInput struct {
	Reference string
	Window    entity.BookingWindow
}

// CatalogUsecase is the public bike listing.
type CatalogUsecase interface {
	Browse(ctx context.Context, filter entity.BikeFilter) (*entity.Catalog, error)
}

// BookingUsecase covers customer bookings and the operator booking overview.
type BookingUsecase interface {
	MyBookings(ctx context.Context) ([]entity.BookingView, error)
	AllBookings(ctx context.Context) ([]entity.BookingView, error)
	Book(ctx context.Context, input BookInput) error
	Reschedule(ctx context.Context, input RescheduleInput) error
	Cancel(ctx context.Context, reference string) error
	AccessCode(ctx context.Context, reference string) (*entity.AccessCode, error)
	BikeDetails(ctx context.Context, reference string) (*entity.BookingBikeDetails, error)
}

// FleetUsecase is the operator's bike management.
type FleetUsecase interface {
	List(ctx context.Context) ([]entity.Bike, error)
	Get(ctx context.Context, bikeID string) (*entity.Bike, error)
	Create(ctx context.Context, draft entity.BikeDraft) error
	Update(ctx context.Context, bikeID string, draft entity.BikeDraft) error
}

// ConcernUsecase covers customer concerns and operator resolution. Mutations
// return the refreshed list.
type ConcernUsecase interface {
	ForBooking(ctx context.Context, bookingID string) ([]entity.Concern, error)
	Raise(ctx context.Context, bookingID, text string) ([]entity.Concern, error)
	Assigned(ctx context.Context) ([]entity.Concern, error)
	Resolve(ctx context.Context, bookingID, comment string) ([]entity.Concern, error)
}

// FeedbackUsecase covers bike reviews. Submit returns the refreshed feedback.
type FeedbackUsecase interface {
	ForBike(ctx context.Context, bikeID string) (*entity.BikeFeedback, error)
	Submit(ctx context.Context, input entity.FeedbackInput) (*entity.BikeFeedback, error)
}

// DashboardUsecase loads the landing screen after sign-in.
type DashboardUsecase interface {
	Load(ctx context.Context) (*entity.Dashboard, error)
}
