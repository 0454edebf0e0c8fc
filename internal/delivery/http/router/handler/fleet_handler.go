package handler

import (
	"log/slog"

	"scooter/internal/delivery/http/response"
	"scooter/internal/domain/entity"
	"scooter/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// FleetHandlerParams holds dependencies for FleetHandler, injected by Fx.
type FleetHandlerParams struct {
	fx.In

	Logger *slog.Logger
}

// FleetHandler serves the operator's bike management screens.
type FleetHandler struct {
	logger *slog.Logger
}

// NewFleetHandler is the constructor for FleetHandler.
func NewFleetHandler(params FleetHandlerParams) *FleetHandler {
	return &FleetHandler{logger: params.Logger}
}

// BikeFormView is the create/edit form with its option lists.
type BikeFormView struct {
	BikeID   string           `json:"bikeId,omitempty"`
	Draft    entity.BikeDraft `json:"draft"`
	Models   []string         `json:"models"`
	Statuses []string         `json:"statuses"`
}

func bikeForm(bikeID string, draft entity.BikeDraft) BikeFormView {
	return BikeFormView{
		BikeID:   bikeID,
		Draft:    draft,
		Models:   entity.BikeModels,
		Statuses: entity.BikeStatuses,
	}
}

// List shows every bike of the fleet.
func (h *FleetHandler) List(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}

	bikes, err := ws.Fleet.List(c.Request().Context())
	if err != nil {
		return err
	}

	return response.Screen(c, entity.ScreenAdminBikes, viewBikes(bikes), "")
}

// NewBikeForm opens an empty bike form.
func (h *FleetHandler) NewBikeForm(c echo.Context) error {
	return response.Screen(c, entity.ScreenAdminBikeNew, bikeForm("", entity.DraftFromBike(entity.Bike{})), "")
}

// Create adds a bike.
func (h *FleetHandler) Create(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}

	var draft entity.BikeDraft
	if err := bind(c, &draft); err != nil {
		return err
	}

	if err := ws.Fleet.Create(c.Request().Context(), draft); err != nil {
		return response.ErrorWithView(c, err, entity.ScreenAdminBikeNew, bikeForm("", draft))
	}

	return response.Screen(c, entity.ScreenAdminBikes, nil, usecase.MsgBikeAdded)
}

// EditForm opens the form of an existing bike.
func (h *FleetHandler) EditForm(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}

	bikeID := c.Param("bikeId")
	bike, err := ws.Fleet.Get(c.Request().Context(), bikeID)
	if err != nil {
		return err
	}

	return response.Screen(c, entity.ScreenAdminBikeEdit, bikeForm(bikeID, entity.DraftFromBike(*bike)), "")
}

// Update saves an existing bike.
func (h *FleetHandler) Update(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}

	var draft entity.BikeDraft
	if err := bind(c, &draft); err != nil {
		return err
	}

	bikeID := c.Param("bikeId")
	if err := ws.Fleet.Update(c.Request().Context(), bikeID, draft); err != nil {
		return response.ErrorWithView(c, err, entity.ScreenAdminBikeEdit, bikeForm(bikeID, draft))
	}

	return response.Screen(c, entity.ScreenAdminBikes, nil, usecase.MsgBikeUpdated)
}
