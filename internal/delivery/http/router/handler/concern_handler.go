package handler

import (
	"log/slog"

	"scooter/internal/delivery/http/response"
	"scooter/internal/domain/entity"
	"scooter/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ConcernHandlerParams holds dependencies for ConcernHandler, injected by Fx.
type ConcernHandlerParams struct {
	fx.In

	Logger *slog.Logger
}

// ConcernHandler serves customer concerns and their resolution by operators.
type ConcernHandler struct {
	logger *slog.Logger
}

// NewConcernHandler is the constructor for ConcernHandler.
func NewConcernHandler(params ConcernHandlerParams) *ConcernHandler {
	return &ConcernHandler{logger: params.Logger}
}

// RaiseConcernRequest is the body of POST /customer/bookings/:ref/concerns.
type RaiseConcernRequest struct {
	Concern string `json:"concern" form:"concern"`
}

// ResolveConcernRequest is the body of POST /user-concerns/resolve.
type ResolveConcernRequest struct {
	BookingID string `json:"bookingId" form:"bookingId" validate:"required"`
	Comment   string `json:"comment" form:"comment"`
}

// ForBooking lists the concerns raised on a booking.
func (h *ConcernHandler) ForBooking(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}

	concerns, err := ws.Concerns.ForBooking(c.Request().Context(), c.Param("ref"))
	if err != nil {
		return err
	}

	return response.Screen(c, entity.ScreenMyBookings, concerns, "")
}

// Raise adds a concern to a booking.
func (h *ConcernHandler) Raise(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}

	var req RaiseConcernRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	concerns, err := ws.Concerns.Raise(c.Request().Context(), c.Param("ref"), req.Concern)
	if err != nil {
		return err
	}

	return response.Screen(c, entity.ScreenMyBookings, concerns, usecase.MsgConcernRaised)
}

// Assigned lists the concerns assigned to the signed-in operator.
func (h *ConcernHandler) Assigned(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}

	concerns, err := ws.Concerns.Assigned(c.Request().Context())
	if err != nil {
		return err
	}

	return response.Screen(c, entity.ScreenUserConcerns, concerns, "")
}

// Resolve closes a concern with a comment.
func (h *ConcernHandler) Resolve(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}

	var req ResolveConcernRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	concerns, err := ws.Concerns.Resolve(c.Request().Context(), req.BookingID, req.Comment)
	if err != nil {
		return err
	}

	return response.Screen(c, entity.ScreenUserConcerns, concerns, usecase.MsgConcernResolved)
}
