package impl

import (
	"log/slog"

	"scooter/config"
	"scooter/internal/domain/entity"
	"scooter/internal/domain/service"
	"scooter/internal/usecase"

	"go.uber.org/fx"
)

// WorkspaceFactoryParams holds dependencies for NewWorkspaceFactory, injected by Fx.
type WorkspaceFactoryParams struct {
	fx.In

	Config     *config.Config
	Identities service.IdentityProviderFactory
	APIs       service.RentalAPIFactory
	Profiles   service.ProfileStore
	Publisher  service.AuthEventPublisher
	Logger     *slog.Logger
}

// workspaceFactory implements the WorkspaceFactory interface.
type workspaceFactory struct {
	params  WorkspaceFactoryParams
	mapping entity.GroupMapping
}

// NewWorkspaceFactory is the constructor for workspaceFactory.
func NewWorkspaceFactory(params WorkspaceFactoryParams) usecase.WorkspaceFactory {
	return &workspaceFactory{
		params: params,
		mapping: entity.GroupMapping{
			AdminGroup:    params.Config.Identity.AdminGroup,
			CustomerGroup: params.Config.Identity.CustomerGroup,
		},
	}
}

// NewWorkspace wires a private client core for one visitor.
func (f *workspaceFactory) NewWorkspace(id string) *usecase.Workspace {
	logger := f.params.Logger.With(slog.String("workspace_id", id))
	callTimeout := f.params.Config.Identity.CallTimeout

	profiles := f.params.Profiles
	publisher := f.params.Publisher

	provider := f.params.Identities.NewIdentityProvider()
	api := f.params.APIs.NewRentalAPI()

	tracker := NewSessionTracker(id, provider, api, profiles, f.mapping, logger)

	return &usecase.Workspace{
		ID:           id,
		Session:      tracker,
		Relay:        NewChallengeRelay(id, provider, tracker, profiles, publisher, callTimeout, logger),
		Registration: NewRegistrationService(id, provider, publisher, callTimeout, logger),
		Catalog:      NewCatalogService(api, logger),
		Bookings:     NewBookingService(api, logger),
		Fleet:        NewFleetService(api, logger),
		Concerns:     NewConcernService(api, tracker, logger),
		Feedback:     NewFeedbackService(api, logger),
		Dashboard:    NewDashboardService(id, api, tracker, profiles, logger),
	}
}
