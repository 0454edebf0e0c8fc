package handler

import (
	"bytes"
	"net/http"
	"testing"
	"time"

	"scooter/internal/domain/entity"
	domainerrors "scooter/internal/domain/errors"
	"scooter/internal/errors"
	"scooter/internal/infra/qrcode"
	"scooter/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newBookingEcho(t *testing.T) (*testWorkspace, *echo.Echo) {
	tw := newTestWorkspace(t)
	h := NewBookingHandler(BookingHandlerParams{
		QR:     qrcode.NewAccessCodeQR(128, "M"),
		Logger: discardLogger(),
	})
	e := newTestEcho(tw.ws)
	e.GET("/customer/my-bookings", h.MyBookings)
	e.POST("/customer/bookings", h.Book)
	e.PUT("/customer/bookings/:ref", h.Reschedule)
	e.DELETE("/customer/bookings/:ref", h.Cancel)
	e.GET("/customer/bookings/:ref/access-code", h.AccessCode)
	e.GET("/customer/bookings/:ref/access-code.png", h.AccessCodeQR)
	e.GET("/admin/bookings/all", h.AllBookings)

	return tw, e
}

func TestBookingHandler_MyBookings(t *testing.T) {
	t.Run("empty list shows a hint", func(t *testing.T) {
		tw, e := newBookingEcho(t)
		tw.bookings.On("MyBookings", mock.Anything).Return([]entity.BookingView{}, nil).Once()

		rec := do(e, http.MethodGet, "/customer/my-bookings", "")

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[MyBookingsView](t, rec)
		assert.Equal(t, usecase.MsgNoBookings, body.Message)
		assert.Equal(t, entity.ScreenMyBookings, body.Meta.Screen)
	})

	t.Run("lists bookings", func(t *testing.T) {
		tw, e := newBookingEcho(t)
		views := []entity.BookingView{entity.ViewBooking(entity.Booking{
			BookingReferenceCode: "BK-1",
			BikeID:               "bike-1",
			Status:               entity.BookingApproved,
		})}
		tw.bookings.On("MyBookings", mock.Anything).Return(views, nil).Once()

		rec := do(e, http.MethodGet, "/customer/my-bookings", "")

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[MyBookingsView](t, rec)
		require.Len(t, body.Data.Bookings, 1)
		assert.Equal(t, "BK-1", body.Data.Bookings[0].BookingReferenceCode)
		assert.Empty(t, body.Message)
	})
}

func TestBookingHandler_Book(t *testing.T) {
	t.Run("submits the window in the given zone", func(t *testing.T) {
		tw, e := newBookingEcho(t)
		start := time.Date(2026, 10, 20, 10, 0, 0, 0, time.UTC)
		end := time.Date(2026, 10, 20, 12, 30, 0, 0, time.UTC)
		tw.bookings.On("Book", mock.Anything, mock.MatchedBy(func(in usecase.BookInput) bool {
			return in.BikeID == "bike-1" && in.Window.Start.Equal(start) && in.Window.End.Equal(end)
		})).Return(nil).Once()

		rec := do(e, http.MethodPost, "/customer/bookings",
			`{"bikeId":"bike-1","startTime":"2026-10-20T10:00","endTime":"2026-10-20T12:30","timeZone":"UTC"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, usecase.MsgBookingSubmitted, decode[any](t, rec).Message)
	})

	t.Run("unknown zone", func(t *testing.T) {
		_, e := newBookingEcho(t)

		rec := do(e, http.MethodPost, "/customer/bookings",
			`{"bikeId":"bike-1","startTime":"2026-10-20T10:00","endTime":"2026-10-20T12:30","timeZone":"Mars/Olympus"}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Unknown time zone.", decode[any](t, rec).Error.Message)
	})

	t.Run("unparsable start", func(t *testing.T) {
		_, e := newBookingEcho(t)

		rec := do(e, http.MethodPost, "/customer/bookings",
			`{"bikeId":"bike-1","startTime":"tomorrow","endTime":"2026-10-20T12:30"}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Please enter a valid start date/time.", decode[any](t, rec).Error.Message)
	})

	t.Run("use case rejection", func(t *testing.T) {
		tw, e := newBookingEcho(t)
		tw.bookings.On("Book", mock.Anything, mock.Anything).
			Return(errors.WithStack(domainerrors.ErrEndBeforeStart)).Once()

		rec := do(e, http.MethodPost, "/customer/bookings",
			`{"bikeId":"bike-1","startTime":"2026-10-20T12:00","endTime":"2026-10-20T10:00"}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "END_BEFORE_START", decode[any](t, rec).Error.Code)
	})
}

func TestBookingHandler_RescheduleAndCancel(t *testing.T) {
	tw, e := newBookingEcho(t)
	tw.bookings.On("Reschedule", mock.Anything, mock.MatchedBy(func(in usecase.RescheduleInput) bool {
		return in.Reference == "BK-1" && !in.Window.Start.IsZero()
	})).Return(nil).Once()
	tw.bookings.On("Cancel", mock.Anything, "BK-1").Return(nil).Once()
	tw.bookings.On("MyBookings", mock.Anything).Return([]entity.BookingView{}, nil).Twice()

	rec := do(e, http.MethodPut, "/customer/bookings/BK-1",
		`{"startTime":"2026-10-21T09:00","endTime":"2026-10-21T11:00"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, usecase.MsgBookingUpdated, decode[any](t, rec).Message)

	rec = do(e, http.MethodDelete, "/customer/bookings/BK-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, usecase.MsgBookingCancelled, decode[any](t, rec).Message)
}

func TestBookingHandler_AccessCode(t *testing.T) {
	code := &entity.AccessCode{BookingReferenceCode: "BK-1", Code: "4711"}

	t.Run("json", func(t *testing.T) {
		tw, e := newBookingEcho(t)
		tw.bookings.On("AccessCode", mock.Anything, "BK-1").Return(code, nil).Once()

		rec := do(e, http.MethodGet, "/customer/bookings/BK-1/access-code", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "4711", decode[entity.AccessCode](t, rec).Data.Code)
	})

	t.Run("png", func(t *testing.T) {
		tw, e := newBookingEcho(t)
		tw.bookings.On("AccessCode", mock.Anything, "BK-1").Return(code, nil).Once()

		rec := do(e, http.MethodGet, "/customer/bookings/BK-1/access-code.png", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
		assert.Equal(t, "no-store", rec.Header().Get(echo.HeaderCacheControl))
		assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))
	})
}

func TestCatalogHandler_Browse(t *testing.T) {
	tw := newTestWorkspace(t)
	h := NewCatalogHandler(CatalogHandlerParams{Logger: discardLogger()})
	e := newTestEcho(tw.ws)
	e.GET("/bikes", h.Browse)

	filter := entity.BikeFilter{Location: "Halifax", Model: "E-Scooter X"}
	catalog := entity.NewCatalog([]entity.Bike{
		{BikeID: "bike-1", Model: "E-Scooter X", Location: "Halifax", RatePerHour: 5},
		{BikeID: "bike-2", Model: "Gyroboard", Location: "Truro", RatePerHour: 4},
	}, filter)
	tw.catalog.On("Browse", mock.Anything, filter).Return(&catalog, nil).Once()

	rec := do(e, http.MethodGet, "/bikes?location=Halifax&model=E-Scooter+X", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[CatalogView](t, rec)
	require.Len(t, body.Data.Bikes, 1)
	assert.Equal(t, "bike-1", body.Data.Bikes[0].BikeID)
	assert.Equal(t, []string{"Halifax", "Truro"}, body.Data.Locations)
}

func TestCatalogHandler_SubmitFeedback(t *testing.T) {
	tw := newTestWorkspace(t)
	h := NewCatalogHandler(CatalogHandlerParams{Logger: discardLogger()})
	e := newTestEcho(tw.ws)
	e.POST("/bikes/:bikeId/feedback", h.SubmitFeedback)

	input := entity.FeedbackInput{BikeID: "bike-1", Rating: 5, Comment: "Smooth ride"}
	tw.feedback.On("Submit", mock.Anything, input).Return(&entity.BikeFeedback{}, nil).Once()

	rec := do(e, http.MethodPost, "/bikes/bike-1/feedback", `{"rating":5,"comment":"Smooth ride"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, usecase.MsgFeedbackSubmitted, decode[any](t, rec).Message)
}

func TestRegistrationHandler_Verify(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		tw := newTestWorkspace(t)
		h := NewRegistrationHandler(RegistrationHandlerParams{Logger: discardLogger()})
		e := newTestEcho(tw.ws)
		e.POST(entity.ScreenVerify, h.Verify)
		tw.registration.On("Confirm", mock.Anything, "ana@example.com", "123456").Return(nil).Once()

		rec := do(e, http.MethodPost, entity.ScreenVerify, `{"email":"ana@example.com","code":"123456"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[any](t, rec)
		assert.Equal(t, usecase.MsgVerified, body.Message)
		assert.Equal(t, entity.ScreenLogin, body.Meta.Screen)
	})

	t.Run("wrong code", func(t *testing.T) {
		tw := newTestWorkspace(t)
		h := NewRegistrationHandler(RegistrationHandlerParams{Logger: discardLogger()})
		e := newTestEcho(tw.ws)
		e.POST(entity.ScreenVerify, h.Verify)
		tw.registration.On("Confirm", mock.Anything, "ana@example.com", "000000").
			Return(errors.WithStack(domainerrors.ErrVerificationFailed)).Once()

		rec := do(e, http.MethodPost, entity.ScreenVerify, `{"email":"ana@example.com","code":"000000"}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decode[any](t, rec)
		assert.Equal(t, "VERIFICATION_FAILED", body.Error.Code)
		assert.Equal(t, entity.ScreenVerify, body.Meta.Screen)
	})
}

func TestRegistrationHandler_RegisterRedactsPassword(t *testing.T) {
	tw := newTestWorkspace(t)
	h := NewRegistrationHandler(RegistrationHandlerParams{Logger: discardLogger()})
	e := newTestEcho(tw.ws)
	e.POST(entity.ScreenRegister, h.Register)
	tw.registration.On("Submit", mock.Anything, mock.Anything).
		Return(nil, errors.WithStack(domainerrors.ErrSecurityQuestionsIncomplete)).Once()

	rec := do(e, http.MethodPost, entity.ScreenRegister, `{"email":"ana@example.com","password":"hunter22"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hunter22")
}

func TestConcernHandler_ResolveRequiresBooking(t *testing.T) {
	tw := newTestWorkspace(t)
	h := NewConcernHandler(ConcernHandlerParams{Logger: discardLogger()})
	e := newTestEcho(tw.ws)
	e.POST("/user-concerns/resolve", h.Resolve)

	rec := do(e, http.MethodPost, "/user-concerns/resolve", `{"comment":"Replaced battery"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", decode[any](t, rec).Error.Code)
}

func TestDashboardHandler_Load(t *testing.T) {
	t.Run("renders", func(t *testing.T) {
		tw := newTestWorkspace(t)
		h := NewDashboardHandler(DashboardHandlerParams{Logger: discardLogger()})
		e := newTestEcho(tw.ws)
		e.GET(entity.ScreenDashboard, h.Load)
		tw.dashboard.On("Load", mock.Anything).Return(&entity.Dashboard{
			Profile:    entity.ProfileSnapshot{ID: "u-1", Name: "Ops"},
			StatsError: "Failed to load statistics",
		}, nil).Once()

		rec := do(e, http.MethodGet, entity.ScreenDashboard, "")

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[entity.Dashboard](t, rec)
		assert.Equal(t, "Ops", body.Data.Profile.Name)
		assert.Equal(t, "Failed to load statistics", body.Data.StatsError)
	})

	t.Run("redirects", func(t *testing.T) {
		tw := newTestWorkspace(t)
		h := NewDashboardHandler(DashboardHandlerParams{Logger: discardLogger()})
		e := newTestEcho(tw.ws)
		e.GET(entity.ScreenDashboard, h.Load)
		tw.dashboard.On("Load", mock.Anything).Return(&entity.Dashboard{Redirect: entity.ScreenLogin}, nil).Once()

		rec := do(e, http.MethodGet, entity.ScreenDashboard, "")

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, entity.ScreenLogin, rec.Header().Get(echo.HeaderLocation))
	})
}
