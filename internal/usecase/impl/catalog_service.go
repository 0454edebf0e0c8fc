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
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	api    service.RentalAPI
	logger *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(api service.RentalAPI, logger *slog.Logger) usecase.CatalogUsecase {
	return &catalogService{api: api, logger: logger}
}

// Browse lists the available bikes matching the filter.
func (srv *catalogService) Browse(ctx context.Context, filter entity.BikeFilter) (*entity.Catalog, error) {
	filter.Location = strings.TrimSpace(filter.Location)
	filter.Model = strings.TrimSpace(filter.Model)

	bikes, err := srv.api.ListAvailableBikes(ctx)
	if err != nil {
		deliverycontext.Logger(ctx, srv.logger).Warn("Failed to load bikes", slog.Any("error", err))

		return nil, domainerrors.FromRemote(err, domainerrors.ErrBikesLoadFailed)
	}

	catalog := entity.NewCatalog(bikes, filter)

	return &catalog, nil
}
