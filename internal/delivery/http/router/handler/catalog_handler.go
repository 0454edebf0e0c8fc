package handler

import (
	"log/slog"

	"scooter/internal/delivery/http/response"
	"scooter/internal/domain/entity"
	"scooter/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CatalogHandlerParams holds dependencies for CatalogHandler, injected by Fx.
type CatalogHandlerParams struct {
	fx.In

	Logger *slog.Logger
}

// CatalogHandler serves the public bike listing and bike reviews.
type CatalogHandler struct {
	logger *slog.Logger
}

// NewCatalogHandler is the constructor for CatalogHandler.
func NewCatalogHandler(params CatalogHandlerParams) *CatalogHandler {
	return &CatalogHandler{logger: params.Logger}
}

// BikeView is a bike with its display labels.
type BikeView struct {
	entity.Bike
	StatusText  string              `json:"statusLabel"`
	RateText    string              `json:"rateLabel"`
	DetailPairs []entity.DetailPair `json:"detailPairs"`
}

// CatalogView is the home screen.
type CatalogView struct {
	Bikes     []BikeView        `json:"bikes"`
	Locations []string          `json:"locations"`
	Models    []string          `json:"models"`
	Filter    entity.BikeFilter `json:"filter"`
}

// FeedbackView is the review list of one bike.
type FeedbackView struct {
	entity.BikeFeedback
	PopularShare string `json:"popularShare"`
}

// FeedbackRequest is the body of POST /bikes/:bikeId/feedback.
type FeedbackRequest struct {
	Rating  int    `json:"rating" form:"rating"`
	Comment string `json:"comment" form:"comment"`
}

func viewBike(b entity.Bike) BikeView {
	return BikeView{
		Bike:        b,
		StatusText:  b.StatusLabel(),
		RateText:    b.RatePerHour.Label(),
		DetailPairs: entity.DetailsToPairs(b.Details),
	}
}

func viewBikes(bikes []entity.Bike) []BikeView {
	views := make([]BikeView, 0, len(bikes))
	for _, b := range bikes {
		views = append(views, viewBike(b))
	}

	return views
}

func viewFeedback(feedback *entity.BikeFeedback) FeedbackView {
	return FeedbackView{BikeFeedback: *feedback, PopularShare: feedback.PopularShare()}
}

// Browse lists available bikes with the location and model filters applied.
func (h *CatalogHandler) Browse(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}

	filter := entity.BikeFilter{
		Location: c.QueryParam("location"),
		Model:    c.QueryParam("model"),
	}

	catalog, err := ws.Catalog.Browse(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return response.Screen(c, entity.ScreenHome, CatalogView{
		Bikes:     viewBikes(catalog.Bikes),
		Locations: catalog.Locations,
		Models:    catalog.Models,
		Filter:    catalog.Filter,
	}, "")
}

// Feedback lists the reviews of a bike.
func (h *CatalogHandler) Feedback(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}

	feedback, err := ws.Feedback.ForBike(c.Request().Context(), c.Param("bikeId"))
	if err != nil {
		return err
	}

	return response.Screen(c, entity.ScreenHome, viewFeedback(feedback), "")
}

// SubmitFeedback reviews a bike and returns the refreshed reviews.
func (h *CatalogHandler) SubmitFeedback(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}

	var req FeedbackRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	feedback, err := ws.Feedback.Submit(c.Request().Context(), entity.FeedbackInput{
		BikeID:  c.Param("bikeId"),
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return err
	}

	return response.Screen(c, entity.ScreenHome, viewFeedback(feedback), usecase.MsgFeedbackSubmitted)
}
