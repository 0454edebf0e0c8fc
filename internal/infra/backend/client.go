// Package backend is the REST client of the rental API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"scooter/config"
	deliverycontext "scooter/internal/delivery/context"
	"scooter/internal/domain/entity"
	domainerrors "scooter/internal/domain/errors"
	"scooter/internal/domain/service"
	"scooter/internal/infra/metrics"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// maxErrorBody caps how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

// ClientFactoryParams holds dependencies for NewClientFactory, injected by Fx.
type ClientFactoryParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// ClientFactory creates REST clients sharing one connection pool.
type ClientFactory struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClientFactory creates the factory with a tuned HTTP transport.
func NewClientFactory(params ClientFactoryParams) (*ClientFactory, error) {
	baseURL := strings.TrimRight(params.Config.Backend.BaseURL, "/")
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, errors.Wrapf(err, "invalid backend base URL %q", baseURL)
	}

	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
	}

	return &ClientFactory{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   params.Config.Backend.Timeout,
			Transport: transport,
		},
		logger: params.Logger,
	}, nil
}

// NewRentalAPI returns a client with its own bearer token.
func (f *ClientFactory) NewRentalAPI() service.RentalAPI {
	return NewClient(f.baseURL, f.httpClient, f.logger)
}

// Client implements service.RentalAPI over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	token      atomic.Pointer[string]
}

// NewClient creates a client for baseURL.
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// SetBearerToken sets the token sent with every request.
func (c *Client) SetBearerToken(token string) {
	c.token.Store(&token)
}

// ClearBearerToken stops sending a token.
func (c *Client) ClearBearerToken() {
	c.token.Store(nil)
}

// BearerToken returns the current token, empty when none is set.
func (c *Client) BearerToken() string {
	if token := c.token.Load(); token != nil {
		return *token
	}

	return ""
}

type bikesEnvelope struct {
	Bikes []entity.Bike `json:"bikes"`
}

type bookingsEnvelope struct {
	Bookings []entity.Booking `json:"bookings"`
}

type accessCodeEnvelope struct {
	AccessCode string `json:"accessCode"`
}

type statsEnvelope struct {
	Statistics *entity.AdminStats `json:"statistics"`
}

func (c *Client) ListAvailableBikes(ctx context.Context) ([]entity.Bike, error) {
	var out bikesEnvelope
	if err := c.do(ctx, "list_available_bikes", http.MethodGet, "/bikes/availability", nil, nil, &out); err != nil {
		return nil, err
	}

	return out.Bikes, nil
}

func (c *Client) ListAllBikes(ctx context.Context) ([]entity.Bike, error) {
	var out bikesEnvelope
	if err := c.do(ctx, "list_all_bikes", http.MethodGet, "/bikes/all", nil, nil, &out); err != nil {
		return nil, err
	}

	return out.Bikes, nil
}

func (c *Client) CreateBike(ctx context.Context, input entity.BikeInput) error {
	return c.do(ctx, "create_bike", http.MethodPost, "/bikes", nil, input, nil)
}

func (c *Client) UpdateBike(ctx context.Context, bikeID string, input entity.BikeInput) error {
	return c.do(ctx, "update_bike", http.MethodPut, "/bikes/"+url.PathEscape(bikeID), nil, input, nil)
}

func (c *Client) ListMyBookings(ctx context.Context) ([]entity.Booking, error) {
	var out bookingsEnvelope
	if err := c.do(ctx, "list_my_bookings", http.MethodGet, "/bookings/history", nil, nil, &out); err != nil {
		return nil, err
	}

	return out.Bookings, nil
}

func (c *Client) ListAllBookings(ctx context.Context) ([]entity.Booking, error) {
	var out bookingsEnvelope
	if err := c.do(ctx, "list_all_bookings", http.MethodGet, "/bookings/all", nil, nil, &out); err != nil {
		return nil, err
	}

	return out.Bookings, nil
}

func (c *Client) CreateBooking(ctx context.Context, request entity.BookingRequest) error {
	return c.do(ctx, "create_booking", http.MethodPost, "/bookings", nil, request, nil)
}

func (c *Client) UpdateBooking(ctx context.Context, reference string, update entity.BookingUpdate) error {
	return c.do(ctx, "update_booking", http.MethodPut, "/bookings/"+url.PathEscape(reference), nil, update, nil)
}

func (c *Client) CancelBooking(ctx context.Context, reference string) error {
	return c.do(ctx, "cancel_booking", http.MethodDelete, "/bookings/"+url.PathEscape(reference), nil, nil, nil)
}

func (c *Client) GetAccessCode(ctx context.Context, reference string) (string, error) {
	var out accessCodeEnvelope
	path := "/bookings/" + url.PathEscape(reference) + "/access-code"
	if err := c.do(ctx, "get_access_code", http.MethodGet, path, nil, nil, &out); err != nil {
		return "", err
	}

	return out.AccessCode, nil
}

func (c *Client) GetBookingBikeDetails(ctx context.Context, reference string) (*entity.BookingBikeDetails, error) {
	var out entity.BookingBikeDetails
	path := "/bookings/" + url.PathEscape(reference) + "/bike-details"
	if err := c.do(ctx, "get_booking_bike_details", http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) GetBikeFeedback(ctx context.Context, bikeID string) (*entity.BikeFeedback, error) {
	var out entity.BikeFeedback
	if err := c.do(ctx, "get_bike_feedback", http.MethodGet, "/feedback/"+url.PathEscape(bikeID), nil, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) SubmitFeedback(ctx context.Context, input entity.FeedbackInput) error {
	return c.do(ctx, "submit_feedback", http.MethodPost, "/feedback", nil, input, nil)
}

func (c *Client) ListConcerns(ctx context.Context, bookingID string) ([]entity.Concern, error) {
	var out []entity.Concern
	query := url.Values{"bookingId": []string{bookingID}}
	if err := c.do(ctx, "list_concerns", http.MethodGet, "/concern", query, nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) RaiseConcern(ctx context.Context, input entity.ConcernInput) error {
	return c.do(ctx, "raise_concern", http.MethodPost, "/concern", nil, input, nil)
}

func (c *Client) ListAssignedConcerns(ctx context.Context, username string) ([]entity.Concern, error) {
	var out []entity.Concern
	query := url.Values{"username": []string{username}}
	if err := c.do(ctx, "list_assigned_concerns", http.MethodGet, "/admin/concerns", query, nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) ResolveConcern(ctx context.Context, resolution entity.ConcernResolution) error {
	return c.do(ctx, "resolve_concern", http.MethodPost, "/admin/concerns/resolve", nil, resolution, nil)
}

func (c *Client) GetAdminStats(ctx context.Context) (*entity.AdminStats, error) {
	var out statsEnvelope
	if err := c.do(ctx, "get_admin_stats", http.MethodGet, "/admin/stats", nil, nil, &out); err != nil {
		return nil, err
	}
	if out.Statistics == nil {
		return &entity.AdminStats{}, nil
	}

	return out.Statistics, nil
}

// do sends one request. A non-2xx answer becomes *domainerrors.APIError
// carrying the server's message; out is decoded only on success.
func (c *Client) do(ctx context.Context, operation, method, path string, query url.Values, in, out any) error {
	start := time.Now()
	status := "error"
	defer func() {
		metrics.RecordBackendRequest(operation, status, time.Since(start).Seconds())
	}()

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return errors.Wrapf(err, "encode %s request", operation)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return errors.Wrapf(err, "build %s request", operation)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.BearerToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if requestID := deliverycontext.RequestIDFrom(ctx); requestID != "" {
		req.Header.Set(deliverycontext.HeaderXRequestID, requestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	status = strconv.Itoa(resp.StatusCode)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &domainerrors.APIError{Status: resp.StatusCode, Message: errorMessage(resp.Body)}
		deliverycontext.Logger(ctx, c.logger).Debug("Rental API request failed",
			slog.String("operation", operation),
			slog.Int("status", resp.StatusCode),
			slog.String("message", apiErr.Message))

		return errors.WithStack(apiErr)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)

		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}

		return errors.Wrapf(err, "decode %s response", operation)
	}

	return nil
}

// errorMessage reads the `message` (or `error`) field of an error body.
func errorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}

	return payload.Error
}
