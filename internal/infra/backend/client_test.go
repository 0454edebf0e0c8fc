package backend

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"scooter/config"
	"scooter/internal/domain/entity"
	domainerrors "scooter/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(server.URL+"/", server.Client(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestClient_BearerToken(t *testing.T) {
	var seen []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"bikes":[]}`))
	})

	_, err := client.ListAvailableBikes(context.Background())
	require.NoError(t, err)

	client.SetBearerToken("id-token")
	_, err = client.ListAvailableBikes(context.Background())
	require.NoError(t, err)

	client.ClearBearerToken()
	_, err = client.ListAvailableBikes(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"", "Bearer id-token", ""}, seen)
}

func TestClient_DecodesEnvelopes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/bikes/all":
			_, _ = w.Write([]byte(`{"bikes":[{"bikeId":"b1","model":"Segway","location":"Lisbon","ratePerHour":"4.50","status":"available"}]}`))
		case "/bookings/history":
			_, _ = w.Write([]byte(`{"bookings":[{"bookingReferenceCode":"BK-1","bikeId":"b1","status":"approved"}]}`))
		case "/bookings/BK-1/access-code":
			_, _ = w.Write([]byte(`{"accessCode":"4821"}`))
		case "/admin/stats":
			_, _ = w.Write([]byte(`{"statistics":{"totalBikes":3,"bikesByStatus":{"available":2}}}`))
		case "/concern":
			assert.Equal(t, "BK-1", r.URL.Query().Get("bookingId"))
			_, _ = w.Write([]byte(`[{"bookingId":"BK-1","concern":"Flat tyre","status":"pending"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	bikes, err := client.ListAllBikes(ctx)
	require.NoError(t, err)
	require.Len(t, bikes, 1)
	assert.Equal(t, entity.Amount(4.5), bikes[0].RatePerHour)

	bookings, err := client.ListMyBookings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "BK-1", bookings[0].BookingReferenceCode)

	code, err := client.GetAccessCode(ctx, "BK-1")
	require.NoError(t, err)
	assert.Equal(t, "4821", code)

	stats, err := client.GetAdminStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalBikes)
	assert.Equal(t, 2, stats.BikesByStatus["available"])

	concerns, err := client.ListConcerns(ctx, "BK-1")
	require.NoError(t, err)
	assert.Equal(t, "Flat tyre", concerns[0].Concern)
}

func TestClient_SendsJSONBodies(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/bookings/BK-9", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var update entity.BookingUpdate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&update))
		assert.Equal(t, "2026-05-01T10:00:00.000Z", update.NewStartTime)

		w.WriteHeader(http.StatusNoContent)
	})

	err := client.UpdateBooking(context.Background(), "BK-9", entity.BookingUpdate{
		NewStartTime: "2026-05-01T10:00:00.000Z",
		NewEndTime:   "2026-05-01T11:00:00.000Z",
	})

	require.NoError(t, err)
}

func TestClient_ErrorStatusCarriesServerMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Bike is not available"}`))
	})

	err := client.CreateBooking(context.Background(), entity.BookingRequest{BikeID: "b1"})

	var apiErr *domainerrors.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Bike is not available", apiErr.Message)
}

func TestClient_ErrorStatusWithoutBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := client.CancelBooking(context.Background(), "BK-1")

	var apiErr *domainerrors.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Empty(t, apiErr.Message)
}

func TestNewClientFactory(t *testing.T) {
	cfg := &config.Config{Backend: &config.BackendConfig{BaseURL: "https://api.example.com/prod/"}}

	factory, err := NewClientFactory(ClientFactoryParams{Config: cfg, Logger: slog.Default()})
	require.NoError(t, err)

	first, ok := factory.NewRentalAPI().(*Client)
	require.True(t, ok)
	second, ok := factory.NewRentalAPI().(*Client)
	require.True(t, ok)

	first.SetBearerToken("a")
	assert.Equal(t, "https://api.example.com/prod", first.baseURL)
	assert.Empty(t, second.BearerToken())

	_, err = NewClientFactory(ClientFactoryParams{Config: &config.Config{Backend: &config.BackendConfig{BaseURL: "not a url"}}})
	require.Error(t, err)
}
