package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuard(t *testing.T) {
	admin := Session{IsAuthenticated: true, Role: RoleAdmin}
	customer := Session{IsAuthenticated: true, Role: RoleCustomer}
	guest := GuestSession()
	loading := NewLoadingSession()

	render := GuardDecision{Kind: DecisionRender}
	toLogin := GuardDecision{Kind: DecisionRedirect, Location: ScreenLogin}
	toDashboard := GuardDecision{Kind: DecisionRedirect, Location: ScreenDashboard}

	tests := []struct {
		name        string
		session     Session
		requirement Requirement
		want        GuardDecision
	}{
		{name: "public while loading", session: loading, requirement: RequireNone, want: render},
		{name: "guarded while loading", session: loading, requirement: RequireAuthenticated, want: GuardDecision{Kind: DecisionLoading}},
		{name: "guest on dashboard", session: guest, requirement: RequireAuthenticated, want: toLogin},
		{name: "guest on admin screen", session: guest, requirement: RequireAdmin, want: toLogin},
		{name: "customer on admin screen", session: customer, requirement: RequireAdmin, want: toDashboard},
		{name: "admin on customer screen", session: admin, requirement: RequireCustomer, want: toDashboard},
		{name: "admin on admin screen", session: admin, requirement: RequireAdmin, want: render},
		{name: "customer on customer screen", session: customer, requirement: RequireCustomer, want: render},
		{name: "customer on dashboard", session: customer, requirement: RequireAuthenticated, want: render},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Guard(tt.session, tt.requirement))
		})
	}
}

func TestRequirementFor(t *testing.T) {
	assert.Equal(t, RequireAdmin, RequirementFor(ScreenAdminBikeEdit))
	assert.Equal(t, RequireCustomer, RequirementFor(ScreenMyBookings))
	assert.Equal(t, RequireAuthenticated, RequirementFor(ScreenDashboard))
	assert.Equal(t, RequireNone, RequirementFor(ScreenCaesar))
	assert.Equal(t, RequireNone, RequirementFor("/nowhere"))
}

func TestShowsNavbar(t *testing.T) {
	assert.False(t, ShowsNavbar(ScreenLogin))
	assert.False(t, ShowsAssistant(ScreenQuestion))
	assert.True(t, ShowsNavbar(ScreenHome))
	assert.True(t, ShowsAssistant(ScreenMyBookings))
}
