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

// concernService implements the ConcernUsecase interface.
type concernService struct {
	api     service.RentalAPI
	session usecase.SessionUsecase
	logger  *slog.Logger
}

// NewConcernService is the constructor for concernService.
func NewConcernService(api service.RentalAPI, session usecase.SessionUsecase, logger *slog.Logger) usecase.ConcernUsecase {
	return &concernService{api: api, session: session, logger: logger}
}

// ForBooking lists the concerns raised about one booking.
func (srv *concernService) ForBooking(ctx context.Context, bookingID string) ([]entity.Concern, error) {
	bookingID = strings.TrimSpace(bookingID)
	if bookingID == "" {
		return nil, errors.WithStack(domainerrors.Validation("Booking reference is required."))
	}

	concerns, err := srv.api.ListConcerns(ctx, bookingID)
	if err != nil {
		return nil, domainerrors.FromRemote(err, domainerrors.ErrConcernsLoadFailed)
	}

	return nonNil(concerns), nil
}

// Raise submits a new concern and returns the refreshed list.
func (srv *concernService) Raise(ctx context.Context, bookingID, text string) ([]entity.Concern, error) {
	bookingID = strings.TrimSpace(bookingID)
	text = strings.TrimSpace(text)
	if bookingID == "" || text == "" {
		return nil, errors.WithStack(domainerrors.ErrConcernRequired)
	}

	if err := srv.api.RaiseConcern(ctx, entity.ConcernInput{BookingID: bookingID, Concern: text}); err != nil {
		return nil, domainerrors.FromRemote(err, domainerrors.ErrConcernSubmitFailed)
	}

	return srv.ForBooking(ctx, bookingID)
}

// Assigned lists the concerns assigned to the signed-in operator.
func (srv *concernService) Assigned(ctx context.Context) ([]entity.Concern, error) {
	username := srv.session.Current().Username
	if username == "" {
		return nil, errors.WithStack(domainerrors.ErrNotAuthenticated)
	}

	concerns, err := srv.api.ListAssignedConcerns(ctx, username)
	if err != nil {
		return nil, domainerrors.FromRemote(err, domainerrors.ErrConcernsLoadFailed)
	}

	return nonNil(concerns), nil
}

// Resolve closes a concern with a comment and returns the refreshed list.
func (srv *concernService) Resolve(ctx context.Context, bookingID, comment string) ([]entity.Concern, error) {
	bookingID = strings.TrimSpace(bookingID)
	comment = strings.TrimSpace(comment)
	if bookingID == "" || comment == "" {
		return nil, errors.WithStack(domainerrors.ErrResolutionRequired)
	}

	username := srv.session.Current().Username
	if username == "" {
		return nil, errors.WithStack(domainerrors.ErrNotAuthenticated)
	}

	resolution := entity.ConcernResolution{BookingID: bookingID, Message: comment, Username: username}
	if err := srv.api.ResolveConcern(ctx, resolution); err != nil {
		return nil, domainerrors.FromRemote(err, domainerrors.ErrConcernResolveFailed)
	}

	deliverycontext.Logger(ctx, srv.logger).Info("Concern resolved",
		slog.String("booking_id", bookingID),
		slog.String("username", username))

	return srv.Assigned(ctx)
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}

	return items
}
