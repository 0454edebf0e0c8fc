package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	deliverycontext "scooter/internal/delivery/context"
	"scooter/internal/domain/entity"
	domainerrors "scooter/internal/domain/errors"
	"scooter/internal/errors"
	mockService "scooter/internal/mocks/service"
	"scooter/internal/usecase"
	"scooter/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type bearerToken struct {
	mu    sync.Mutex
	token string
}

func (b *bearerToken) SetBearerToken(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.token = token
}

func (b *bearerToken) ClearBearerToken() { b.SetBearerToken("") }

func (b *bearerToken) Token() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.token
}

func TestRequireSession_ExpiredSessionGoesToLogin(t *testing.T) {
	provider := mockService.NewMockIdentityProvider(t)
	provider.On("CurrentPrincipal", mock.Anything).Return(&entity.Principal{
		UserID:    "u-1",
		Username:  "ana@example.com",
		Email:     "ana@example.com",
		Groups:    []string{"CustomerGroup"},
		IDToken:   "id-token-customer",
		ExpiresAt: time.Now().Add(-time.Minute),
	}, nil).Once()
	provider.On("CurrentPrincipal", mock.Anything).
		Return(nil, errors.WithStack(domainerrors.ErrNotAuthenticated)).Once()

	tokens := &bearerToken{}
	tracker := impl.NewSessionTracker("ws-1", provider, tokens, mockService.NewMockProfileStore(t),
		entity.GroupMapping{AdminGroup: "AdminGroup", CustomerGroup: "CustomerGroup"}, discardLogger())
	require.True(t, tracker.Resolve(context.Background()).IsAuthenticated)
	require.Equal(t, "id-token-customer", tokens.Token())

	ws := &usecase.Workspace{ID: "ws-1", Session: tracker}
	attach := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(string(deliverycontext.KeyWorkspace), ws)

			return next(c)
		}
	}

	e := echo.New()
	e.GET("/customer/my-bookings", ok, attach, RequireSession(entity.RequireCustomer))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/customer/my-bookings", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, entity.ScreenLogin, rec.Header().Get(echo.HeaderLocation))
	assert.False(t, tracker.Current().IsAuthenticated)
	assert.Empty(t, tokens.Token())
}
