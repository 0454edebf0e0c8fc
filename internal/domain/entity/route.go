package entity

import "slices"

// Screen routes of the client.
const (
	ScreenHome          = "/"
	ScreenLogin         = "/login"
	ScreenRegister      = "/register"
	ScreenVerify        = "/verify"
	ScreenQuestion      = "/question"
	ScreenCaesar        = "/caesar"
	ScreenDashboard     = "/dashboard"
	ScreenMyBookings    = "/customer/my-bookings"
	ScreenUserConcerns  = "/user-concerns"
	ScreenAdminBikes    = "/admin/bikes"
	ScreenAdminBikeNew  = "/admin/bikes/new"
	ScreenAdminBikeEdit = "/admin/bikes/:bikeId/edit"
	ScreenAdminBookings = "/admin/bookings/all"
	LoadingPlaceholder  = "Loading authentication..."
)

// Requirement is what a route demands from the session.
type Requirement string

const (
	RequireNone          Requirement = "none"
	RequireAuthenticated Requirement = "authenticated"
	RequireAdmin         Requirement = "adminOnly"
	RequireCustomer      Requirement = "customerOnly"
)

// DecisionKind is the outcome of a guard check.
type DecisionKind string

const (
	DecisionRender   DecisionKind = "render"
	DecisionLoading  DecisionKind = "loading"
	DecisionRedirect DecisionKind = "redirect"
)

// GuardDecision tells the caller whether to render, wait or go elsewhere.
type GuardDecision struct {
	Kind     DecisionKind `json:"kind"`
	Location string       `json:"location,omitempty"`
}

// Guard decides whether a route may be shown for a session. While the session
// is still loading nothing is decided; unauthenticated users go to the login
// screen and users with the wrong role go to the dashboard.
func Guard(session Session, requirement Requirement) GuardDecision {
	if requirement == RequireNone || requirement == "" {
		return GuardDecision{Kind: DecisionRender}
	}

	if session.IsLoading {
		return GuardDecision{Kind: DecisionLoading}
	}

	if !session.IsAuthenticated {
		return GuardDecision{Kind: DecisionRedirect, Location: ScreenLogin}
	}

	switch requirement {
	case RequireAdmin:
		if session.Role != RoleAdmin {
			return GuardDecision{Kind: DecisionRedirect, Location: ScreenDashboard}
		}
	case RequireCustomer:
		if session.Role != RoleCustomer {
			return GuardDecision{Kind: DecisionRedirect, Location: ScreenDashboard}
		}
	}

	return GuardDecision{Kind: DecisionRender}
}

// RouteRequirements lists the guarded screens. Screens not listed are public.
var RouteRequirements = map[string]Requirement{
	ScreenDashboard:     RequireAuthenticated,
	ScreenMyBookings:    RequireCustomer,
	ScreenUserConcerns:  RequireAdmin,
	ScreenAdminBikes:    RequireAdmin,
	ScreenAdminBikeNew:  RequireAdmin,
	ScreenAdminBikeEdit: RequireAdmin,
	ScreenAdminBookings: RequireAdmin,
}

// RequirementFor returns the requirement of a screen route pattern.
func RequirementFor(route string) Requirement {
	if req, ok := RouteRequirements[route]; ok {
		return req
	}

	return RequireNone
}

// authScreens hide the navigation bar.
var authScreens = []string{ScreenLogin, ScreenRegister, ScreenVerify, ScreenQuestion, ScreenCaesar}

// ShowsNavbar reports whether the navigation bar is shown on a screen.
func ShowsNavbar(screen string) bool {
	return !slices.Contains(authScreens, screen)
}

// ShowsAssistant reports whether the help chat widget is offered on a screen.
func ShowsAssistant(screen string) bool {
	return ShowsNavbar(screen)
}
