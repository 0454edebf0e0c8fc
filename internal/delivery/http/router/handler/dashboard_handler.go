package handler

import (
	"log/slog"

	"scooter/internal/delivery/http/response"
	"scooter/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// DashboardHandlerParams holds dependencies for DashboardHandler, injected by Fx.
type DashboardHandlerParams struct {
	fx.In

	Logger *slog.Logger
}

// DashboardHandler serves the landing screen after sign-in.
type DashboardHandler struct {
	logger *slog.Logger
}

// NewDashboardHandler is the constructor for DashboardHandler.
func NewDashboardHandler(params DashboardHandlerParams) *DashboardHandler {
	return &DashboardHandler{logger: params.Logger}
}

// Load shows the profile and, for operators, the statistics. A statistics
// failure is part of the view, not an error response.
func (h *DashboardHandler) Load(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}

	dashboard, err := ws.Dashboard.Load(c.Request().Context())
	if err != nil {
		return err
	}
	if dashboard.Redirect != "" {
		return response.Redirect(c, dashboard.Redirect)
	}

	return response.Screen(c, entity.ScreenDashboard, dashboard, "")
}
