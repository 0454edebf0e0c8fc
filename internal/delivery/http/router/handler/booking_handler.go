package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"scooter/internal/delivery/http/response"
	"scooter/internal/domain/entity"
	domainerrors "scooter/internal/domain/errors"
	"scooter/internal/domain/service"
	"scooter/internal/errors"
	"scooter/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// BookingHandlerParams holds dependencies for BookingHandler, injected by Fx.
type BookingHandlerParams struct {
	fx.In

	QR     service.AccessCodeQR
	Logger *slog.Logger
}

// BookingHandler serves customer bookings and the operator booking overview.
type BookingHandler struct {
	qr     service.AccessCodeQR
	logger *slog.Logger
}

// NewBookingHandler is the constructor for BookingHandler.
func NewBookingHandler(params BookingHandlerParams) *BookingHandler {
	return &BookingHandler{
		qr:     params.QR,
		logger: params.Logger,
	}
}

// BookingRequest is the body of POST /customer/bookings. Times are date-time
// form values ("2006-01-02T15:04") in TimeZone, which defaults to UTC.
type BookingRequest struct {
	BikeID    string `json:"bikeId" form:"bikeId"`
	StartTime string `json:"startTime" form:"startTime"`
	EndTime   string `json:"endTime" form:"endTime"`
	TimeZone  string `json:"timeZone" form:"timeZone"`
}

// RescheduleRequest is the body of PUT /customer/bookings/:ref.
type RescheduleRequest struct {
	StartTime string `json:"startTime" form:"startTime"`
	EndTime   string `json:"endTime" form:"endTime"`
	TimeZone  string `json:"timeZone" form:"timeZone"`
}

// MyBookingsView is the customer's booking list.
type MyBookingsView struct {
	Bookings []entity.BookingView `json:"bookings"`
}

func parseWindow(start, end, zone string) (entity.BookingWindow, error) {
	loc := time.UTC
	if zone = strings.TrimSpace(zone); zone != "" {
		var err error
		if loc, err = time.LoadLocation(zone); err != nil {
			return entity.BookingWindow{}, errors.WithStack(domainerrors.Validation("Unknown time zone."))
		}
	}

	startAt, err := entity.ParseLocalDateTime(start, loc)
	if err != nil {
		return entity.BookingWindow{}, errors.WithStack(domainerrors.Validation("Please enter a valid start date/time."))
	}
	endAt, err := entity.ParseLocalDateTime(end, loc)
	if err != nil {
		return entity.BookingWindow{}, errors.WithStack(domainerrors.Validation("Please enter a valid end date/time."))
	}

	return entity.BookingWindow{Start: startAt, End: endAt}, nil
}

// MyBookings lists the customer's bookings.
func (h *BookingHandler) MyBookings(c echo.Context) error {
	return h.myBookings(c, "")
}

func (h *BookingHandler) myBookings(c echo.Context, message string) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}

	bookings, err := ws.Bookings.MyBookings(c.Request().Context())
	if err != nil {
		return err
	}
	if message == "" && len(bookings) == 0 {
		message = usecase.MsgNoBookings
	}

	return response.Screen(c, entity.ScreenMyBookings, MyBookingsView{Bookings: bookings}, message)
}

// Book requests a booking.
func (h *BookingHandler) Book(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}

	var req BookingRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	window, err := parseWindow(req.StartTime, req.EndTime, req.TimeZone)
	if err != nil {
		return err
	}

	if err := ws.Bookings.Book(c.Request().Context(), usecase.BookInput{BikeID: req.BikeID, Window: window}); err != nil {
		return err
	}

	return response.Screen(c, entity.ScreenHome, nil, usecase.MsgBookingSubmitted)
}

// Reschedule moves a booking and returns the refreshed list.
func (h *BookingHandler) Reschedule(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}

	var req RescheduleRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	window, err := parseWindow(req.StartTime, req.EndTime, req.TimeZone)
	if err != nil {
		return err
	}

	input := usecase.RescheduleInput{Reference: c.Param("ref"), Window: window}
	if err := ws.Bookings.Reschedule(c.Request().Context(), input); err != nil {
		return err
	}

	return h.myBookings(c, usecase.MsgBookingUpdated)
}

// Cancel cancels a booking and returns the refreshed list.
func (h *BookingHandler) Cancel(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}

	if err := ws.Bookings.Cancel(c.Request().Context(), c.Param("ref")); err != nil {
		return err
	}

	return h.myBookings(c, usecase.MsgBookingCancelled)
}

// AccessCode shows the unlock code of an approved booking.
func (h *BookingHandler) AccessCode(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}

	code, err := ws.Bookings.AccessCode(c.Request().Context(), c.Param("ref"))
	if err != nil {
		return err
	}

	return response.Screen(c, entity.ScreenMyBookings, code, "")
}

// AccessCodeQR renders the unlock code as a PNG for scanning at the scooter.
func (h *BookingHandler) AccessCodeQR(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}

	code, err := ws.Bookings.AccessCode(c.Request().Context(), c.Param("ref"))
	if err != nil {
		return err
	}

	png, err := h.qr.RenderAccessCode(code.BookingReferenceCode, code.Code)
	if err != nil {
		return errors.Wrap(err, "render access code")
	}

	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")

	return c.Blob(http.StatusOK, "image/png", png)
}

// AllBookings is the operator's booking overview.
func (h *BookingHandler) AllBookings(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}

	bookings, err := ws.Bookings.AllBookings(c.Request().Context())
	if err != nil {
		return err
	}

	return response.Screen(c, entity.ScreenAdminBookings, MyBookingsView{Bookings: bookings}, "")
}

// BikeDetails shows a booking together with its bike.
func (h *BookingHandler) BikeDetails(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}

	details, err := ws.Bookings.BikeDetails(c.Request().Context(), c.Param("ref"))
	if err != nil {
		return err
	}

	return response.Screen(c, entity.ScreenAdminBookings, details, "")
}
