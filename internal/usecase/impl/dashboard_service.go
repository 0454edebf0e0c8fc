package impl

import (
	"context"
	"log/slog"

	deliverycontext "scooter/internal/delivery/context"
	"scooter/internal/domain/entity"
	domainerrors "scooter/internal/domain/errors"
	"scooter/internal/domain/service"
	"scooter/internal/usecase"

	"github.com/pkg/errors"
)

// dashboardService implements the DashboardUsecase interface.
type dashboardService struct {
	clientID string
	api      service.RentalAPI
	session  usecase.SessionUsecase
	profiles service.ProfileStore
	logger   *slog.Logger
}

// NewDashboardService is the constructor for dashboardService.
func NewDashboardService(
	clientID string,
	api service.RentalAPI,
	session usecase.SessionUsecase,
	profiles service.ProfileStore,
	logger *slog.Logger,
) usecase.DashboardUsecase {
	return &dashboardService{
		clientID: clientID,
		api:      api,
		session:  session,
		profiles: profiles,
		logger:   logger,
	}
}

// Load builds the landing screen. Operators see statistics; a failure to
// load them is shown inline. Customers are sent to the public listing.
func (srv *dashboardService) Load(ctx context.Context) (*entity.Dashboard, error) {
	log := deliverycontext.Logger(ctx, srv.logger)

	session := srv.session.Current()
	if !session.IsAuthenticated {
		return nil, errors.WithStack(domainerrors.ErrNotAuthenticated)
	}

	dashboard := &entity.Dashboard{
		Session: session,
		Profile: entity.SnapshotFromSession(session),
	}

	snapshot, err := srv.profiles.Load(ctx, srv.clientID)
	switch {
	case err == nil && snapshot != nil && snapshot.ID == session.UserID:
		dashboard.Profile = *snapshot
	case err != nil && !errors.Is(err, service.ErrProfileNotFound):
		log.Warn("Failed to load profile snapshot", slog.Any("error", err))
	}

	if !session.IsAdmin() {
		dashboard.Redirect = entity.ScreenHome

		return dashboard, nil
	}

	stats, err := srv.api.GetAdminStats(ctx)
	if err != nil {
		log.Warn("Failed to load statistics", slog.Any("error", err))
		dashboard.StatsError = domainerrors.ErrStatsLoadFailed.Message()

		return dashboard, nil
	}
	dashboard.Stats = stats

	return dashboard, nil
}
