// Package handler holds the portal's screen handlers. Every handler works on
// the workspace attached to the request.
package handler

import (
	"net/http"

	"scooter/internal/delivery/http/response"
	"scooter/internal/delivery/http/session"
	domainerrors "scooter/internal/domain/errors"
	"scooter/internal/errors"
	"scooter/internal/usecase"

	"github.com/labstack/echo/v4"
)

func workspace(c echo.Context) (*usecase.Workspace, error) {
	ws, ok := session.Workspace(c)
	if !ok {
		return nil, errors.WithStack(domainerrors.ErrInternalError.WithDetails("no workspace attached to request"))
	}

	return ws, nil
}

// bind decodes the request and runs struct validation.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return errors.WithStack(domainerrors.Validation("Invalid request body."))
	}
	if err := c.Validate(req); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// HealthCheck reports liveness.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}
