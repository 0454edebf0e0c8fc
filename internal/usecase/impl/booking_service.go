package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "scooter/internal/delivery/context"
	"scooter/internal/domain/entity"
	domainerrors "scooter/internal/domain/errors"
	"scooter/internal/domain/service"
	"scooter/internal/usecase"

	"github.com/pkg/errors"
)

// bookingService implements the BookingUsecase interface.
type bookingService struct {
	api    service.RentalAPI
	logger *slog.Logger
}

// NewBookingService is the constructor for bookingService.
func NewBookingService(api service.RentalAPI, logger *slog.Logger) usecase.BookingUsecase {
	return &bookingService{api: api, logger: logger}
}

func (srv *bookingService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.Logger(ctx, srv.logger)
}

// MyBookings lists the signed-in customer's bookings.
func (srv *bookingService) MyBookings(ctx context.Context) ([]entity.BookingView, error) {
	bookings, err := srv.api.ListMyBookings(ctx)
	if err != nil {
		return nil, domainerrors.FromRemote(err, domainerrors.ErrBookingsLoadFailed)
	}

	return viewBookings(bookings), nil
}

// AllBookings lists every booking for an operator.
func (srv *bookingService) AllBookings(ctx context.Context) ([]entity.BookingView, error) {
	bookings, err := srv.api.ListAllBookings(ctx)
	if err != nil {
		return nil, domainerrors.FromRemote(err, domainerrors.ErrBookingsLoadFailed)
	}

	return viewBookings(bookings), nil
}

// Book requests a new booking.
func (srv *bookingService) Book(ctx context.Context, input usecase.BookInput) error {
	if strings.TrimSpace(input.BikeID) == "" {
		return errors.WithStack(domainerrors.Validation("Please select a bike."))
	}
	if err := validateWindow(input.Window); err != nil {
		return err
	}

	request := entity.BookingRequest{
		BikeID:    strings.TrimSpace(input.BikeID),
		StartTime: entity.FormatWireTime(input.Window.Start),
		EndTime:   entity.FormatWireTime(input.Window.End),
	}
	if err := srv.api.CreateBooking(ctx, request); err != nil {
		return domainerrors.FromRemote(err, domainerrors.ErrBookingSubmitFailed)
	}

	srv.log(ctx).Info("Booking requested",
		slog.String("bike_id", request.BikeID),
		slog.String("start", request.StartTime),
		slog.String("end", request.EndTime))

	return nil
}

// Reschedule moves an existing booking.
func (srv *bookingService) Reschedule(ctx context.Context, input usecase.RescheduleInput) error {
	reference := strings.TrimSpace(input.Reference)
	if reference == "" {
		return errors.WithStack(domainerrors.Validation("Booking reference is required."))
	}
	if err := validateWindow(input.Window); err != nil {
		return err
	}

	update := entity.BookingUpdate{
		NewStartTime: entity.FormatWireTime(input.Window.Start),
		NewEndTime:   entity.FormatWireTime(input.Window.End),
	}
	if err := srv.api.UpdateBooking(ctx, reference, update); err != nil {
		return domainerrors.FromRemote(err, domainerrors.ErrBookingUpdateFailed)
	}

	return nil
}

// Cancel cancels a booking.
func (srv *bookingService) Cancel(ctx context.Context, reference string) error {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return errors.WithStack(domainerrors.Validation("Booking reference is required."))
	}

	if err := srv.api.CancelBooking(ctx, reference); err != nil {
		return domainerrors.FromRemote(err, domainerrors.ErrBookingCancelFailed)
	}

	srv.log(ctx).Info("Booking cancelled", slog.String("reference", reference))

	return nil
}

// AccessCode fetches the unlock code of an approved booking.
func (srv *bookingService) AccessCode(ctx context.Context, reference string) (*entity.AccessCode, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, errors.WithStack(domainerrors.Validation("Booking reference is required."))
	}

	code, err := srv.api.GetAccessCode(ctx, reference)
	if err != nil {
		return nil, domainerrors.FromRemote(err, domainerrors.ErrAccessCodeFailed)
	}

	return &entity.AccessCode{BookingReferenceCode: reference, Code: code}, nil
}

// BikeDetails loads a booking together with its bike.
func (srv *bookingService) BikeDetails(ctx context.Context, reference string) (*entity.BookingBikeDetails, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, errors.WithStack(domainerrors.Validation("Booking reference is required."))
	}

	details, err := srv.api.GetBookingBikeDetails(ctx, reference)
	if err != nil {
		return nil, domainerrors.FromRemote(err, domainerrors.ErrBookingDetailsFailed)
	}

	return details, nil
}

func validateWindow(window entity.BookingWindow) error {
	if !window.Complete() {
		return errors.WithStack(domainerrors.ErrBookingTimesMissing)
	}
	if !window.Ordered() {
		return errors.WithStack(domainerrors.ErrEndBeforeStart)
	}

	return nil
}

func viewBookings(bookings []entity.Booking) []entity.BookingView {
	views := make([]entity.BookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, entity.ViewBooking(b))
	}

	return views
}
