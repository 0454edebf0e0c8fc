package impl

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	deliverycontext "scooter/internal/delivery/context"
	"scooter/internal/domain/entity"
	domainerrors "scooter/internal/domain/errors"
	"scooter/internal/domain/service"
	"scooter/internal/usecase"

	"github.com/pkg/errors"
)

// fleetService implements the FleetUsecase interface.
type fleetService struct {
	api    service.RentalAPI
	logger *slog.Logger
}

// NewFleetService is the constructor for fleetService.
func NewFleetService(api service.RentalAPI, logger *slog.Logger) usecase.FleetUsecase {
	return &fleetService{api: api, logger: logger}
}

// List returns every bike of the operator.
func (srv *fleetService) List(ctx context.Context) ([]entity.Bike, error) {
	bikes, err := srv.api.ListAllBikes(ctx)
	if err != nil {
		return nil, domainerrors.FromRemote(err, domainerrors.ErrBikesLoadFailed)
	}

	return bikes, nil
}

// Get finds one bike for the edit form. The API has no single-bike
// endpoint, so the full list is searched.
func (srv *fleetService) Get(ctx context.Context, bikeID string) (*entity.Bike, error) {
	bikes, err := srv.List(ctx)
	if err != nil {
		return nil, err
	}

	idx := slices.IndexFunc(bikes, func(b entity.Bike) bool { return b.BikeID == bikeID })
	if idx < 0 {
		return nil, errors.WithStack(domainerrors.ErrBikeNotFound)
	}

	return &bikes[idx], nil
}

// Create adds a bike.
func (srv *fleetService) Create(ctx context.Context, draft entity.BikeDraft) error {
	input, err := bikeInputFromDraft(draft)
	if err != nil {
		return err
	}

	if err := srv.api.CreateBike(ctx, input); err != nil {
		return domainerrors.FromRemote(err, domainerrors.ErrBikeAddFailed)
	}

	deliverycontext.Logger(ctx, srv.logger).Info("Bike added",
		slog.String("model", input.Model),
		slog.String("location", input.Location))

	return nil
}

// Update replaces a bike's attributes.
func (srv *fleetService) Update(ctx context.Context, bikeID string, draft entity.BikeDraft) error {
	if strings.TrimSpace(bikeID) == "" {
		return errors.WithStack(domainerrors.ErrBikeNotFound)
	}

	input, err := bikeInputFromDraft(draft)
	if err != nil {
		return err
	}

	if err := srv.api.UpdateBike(ctx, bikeID, input); err != nil {
		return domainerrors.FromRemote(err, domainerrors.ErrBikeUpdateFailed)
	}

	return nil
}

func bikeInputFromDraft(draft entity.BikeDraft) (entity.BikeInput, error) {
	draft.Model = strings.TrimSpace(draft.Model)
	draft.Location = strings.TrimSpace(draft.Location)
	draft.RatePerHour = strings.TrimSpace(draft.RatePerHour)
	draft.Status = strings.TrimSpace(draft.Status)

	if !draft.RequiredFilled() {
		return entity.BikeInput{}, errors.WithStack(domainerrors.ErrBikeFieldsMissing)
	}

	rate, err := strconv.ParseFloat(draft.RatePerHour, 64)
	if err != nil || rate <= 0 {
		return entity.BikeInput{}, errors.WithStack(domainerrors.ErrInvalidRate)
	}

	if !slices.Contains(entity.BikeStatuses, draft.Status) {
		return entity.BikeInput{}, errors.WithStack(domainerrors.Validation("Unknown bike status."))
	}

	if draft.HasDuplicateDetailKeys() {
		return entity.BikeInput{}, errors.WithStack(domainerrors.ErrDuplicateDetailKeys)
	}

	return entity.BikeInput{
		Model:       draft.Model,
		Location:    draft.Location,
		RatePerHour: rate,
		Description: strings.TrimSpace(draft.Description),
		Status:      draft.Status,
		Details:     draft.DetailsMap(),
	}, nil
}
