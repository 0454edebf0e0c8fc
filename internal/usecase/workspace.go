package usecase

// Workspace is the complete client for one visitor: its own session, sign-in
// flow and REST token. Nothing in a workspace is shared with another.
type Workspace struct {
	ID string

	Session      SessionUsecase
	Relay        ChallengeRelayUsecase
	Registration RegistrationUsecase
	Catalog      CatalogUsecase
	Bookings     BookingUsecase
	Fleet        FleetUsecase
	Concerns     ConcernUsecase
	Feedback     FeedbackUsecase
	Dashboard    DashboardUsecase
}

// WorkspaceFactory builds a fresh workspace. The session starts loading and
// is resolved by the caller.
type WorkspaceFactory interface {
	NewWorkspace(id string) *Workspace
}
