// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"scooter/config"
	"scooter/internal/delivery/http/middleware"
	"scooter/internal/delivery/http/router/handler"
	"scooter/internal/delivery/http/session"
	"scooter/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"golang.org/x/time/rate"
)

const (
	defaultAuthRPS   = 1
	defaultAuthBurst = 5
)

type RouterParams struct {
	fx.In

	Registry            *session.Registry
	AuthHandler         *handler.AuthHandler
	RegistrationHandler *handler.RegistrationHandler
	CatalogHandler      *handler.CatalogHandler
	BookingHandler      *handler.BookingHandler
	FleetHandler        *handler.FleetHandler
	ConcernHandler      *handler.ConcernHandler
	DashboardHandler    *handler.DashboardHandler
	Config              *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	registry            *session.Registry
	authHandler         *handler.AuthHandler
	registrationHandler *handler.RegistrationHandler
	catalogHandler      *handler.CatalogHandler
	bookingHandler      *handler.BookingHandler
	fleetHandler        *handler.FleetHandler
	concernHandler      *handler.ConcernHandler
	dashboardHandler    *handler.DashboardHandler
	authLimiter         *middleware.RateLimiter
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	rps, burst := float64(defaultAuthRPS), defaultAuthBurst
	if limit := params.Config.Portal.RateLimit; limit.RPS > 0 {
		rps = limit.RPS
		if limit.Burst > 0 {
			burst = limit.Burst
		}
	}

	return &router{
		registry:            params.Registry,
		authHandler:         params.AuthHandler,
		registrationHandler: params.RegistrationHandler,
		catalogHandler:      params.CatalogHandler,
		bookingHandler:      params.BookingHandler,
		fleetHandler:        params.FleetHandler,
		concernHandler:      params.ConcernHandler,
		dashboardHandler:    params.DashboardHandler,
		authLimiter:         middleware.NewRateLimiter(rate.Limit(rps), burst),
	}
}

// RegisterRoutes sets up all the portal routes. Screen routes mirror the
// client's screens and are guarded by the requirement of that screen.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Only sign-in and sign-up create a workspace; everything else peeks.
	attach := r.registry.Attach
	peek := r.registry.Peek
	limit := r.authLimiter.Middleware()

	// Public screens
	e.GET("/session", r.authHandler.Session, peek)
	e.GET("/bikes", r.catalogHandler.Browse, peek)
	e.GET("/bikes/:bikeId/feedback", r.catalogHandler.Feedback, peek)

	// Sign-in, sign-up and verification, rate limited per client IP
	e.GET(entity.ScreenLogin, r.authHandler.LoginScreen, attach, limit)
	e.POST(entity.ScreenLogin, r.authHandler.Login, attach, limit)
	e.GET(entity.ScreenQuestion, r.authHandler.ChallengeScreen, attach, limit)
	e.POST(entity.ScreenQuestion, r.authHandler.AnswerChallenge, attach, limit)
	e.GET(entity.ScreenCaesar, r.authHandler.ChallengeScreen, attach, limit)
	e.POST(entity.ScreenCaesar, r.authHandler.AnswerChallenge, attach, limit)
	e.GET(entity.ScreenRegister, r.registrationHandler.RegisterScreen, attach, limit)
	e.POST(entity.ScreenRegister+"/basics", r.registrationHandler.AdvanceToQuestions, attach, limit)
	e.POST(entity.ScreenRegister+"/options", r.registrationHandler.QuestionOptions, attach, limit)
	e.POST(entity.ScreenRegister, r.registrationHandler.Register, attach, limit)
	e.POST(entity.ScreenVerify, r.registrationHandler.Verify, attach, limit)
	e.POST("/logout", r.authHandler.Logout, peek, middleware.RequireSession(entity.RequireAuthenticated))

	// Any signed-in user
	e.GET(entity.ScreenDashboard, r.dashboardHandler.Load, peek, middleware.RequireScreen(entity.ScreenDashboard))
	e.POST("/bikes/:bikeId/feedback", r.catalogHandler.SubmitFeedback, peek, middleware.RequireSession(entity.RequireAuthenticated))

	// Customers
	customer := e.Group("/customer", peek, middleware.RequireSession(entity.RequireCustomer))
	{
		customer.GET("/my-bookings", r.bookingHandler.MyBookings)
		customer.POST("/bookings", r.bookingHandler.Book)
		customer.PUT("/bookings/:ref", r.bookingHandler.Reschedule)
		customer.DELETE("/bookings/:ref", r.bookingHandler.Cancel)
		customer.GET("/bookings/:ref/access-code", r.bookingHandler.AccessCode)
		customer.GET("/bookings/:ref/access-code.png", r.bookingHandler.AccessCodeQR)
		customer.GET("/bookings/:ref/concerns", r.concernHandler.ForBooking)
		customer.POST("/bookings/:ref/concerns", r.concernHandler.Raise)
	}

	// Franchise operators
	e.GET(entity.ScreenUserConcerns, r.concernHandler.Assigned, peek, middleware.RequireScreen(entity.ScreenUserConcerns))
	e.POST(entity.ScreenUserConcerns+"/resolve", r.concernHandler.Resolve, peek, middleware.RequireSession(entity.RequireAdmin))

	admin := e.Group("/admin", peek, middleware.RequireSession(entity.RequireAdmin))
	{
		admin.GET("/bikes", r.fleetHandler.List)
		admin.GET("/bikes/new", r.fleetHandler.NewBikeForm)
		admin.POST("/bikes", r.fleetHandler.Create)
		admin.GET("/bikes/:bikeId/edit", r.fleetHandler.EditForm)
		admin.PUT("/bikes/:bikeId", r.fleetHandler.Update)
		admin.GET("/bookings/all", r.bookingHandler.AllBookings)
		admin.GET("/bookings/:ref/bike-details", r.bookingHandler.BikeDetails)
	}
}
