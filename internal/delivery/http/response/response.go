// Package response renders the portal's JSON envelope.
package response

import (
	"net/http"

	deliverycontext "scooter/internal/delivery/context"
	"scooter/internal/domain/entity"
	domainerrors "scooter/internal/domain/errors"
	"scooter/internal/errors"

	"github.com/labstack/echo/v4"
)

// SuccessResponse defines the structure for successful responses
type SuccessResponse struct {
	Data    any       `json:"data"`
	Message string    `json:"message,omitempty"`
	Meta    *MetaInfo `json:"meta"`
}

// ErrorResponse defines the structure for error responses
type ErrorResponse struct {
	Error *ErrorInfo `json:"error"`
	// View is the screen state to keep rendering after a failed step
	View any       `json:"view,omitempty"`
	Meta *MetaInfo `json:"meta"`
}

// ErrorInfo contains detailed error information
type ErrorInfo struct {
	Code    string `json:"code"`              // Machine-readable error code, e.g., "VALIDATION_FAILED"
	Message string `json:"message"`           // User-friendly error message
	Details any    `json:"details,omitempty"` // Additional error context (only for 4xx errors)
}

// MetaInfo represents response metadata
type MetaInfo struct {
	RequestID      string `json:"request_id"`
	Screen         string `json:"screen,omitempty"`
	ShowsNavbar    bool   `json:"showsNavbar,omitempty"`
	ShowsAssistant bool   `json:"showsAssistant,omitempty"`
	Redirect       string `json:"redirect,omitempty"`
}

func meta(c echo.Context) *MetaInfo {
	return &MetaInfo{RequestID: deliverycontext.RequestID(c)}
}

func screenMeta(c echo.Context, screen string) *MetaInfo {
	m := meta(c)
	m.Screen = screen
	m.ShowsNavbar = entity.ShowsNavbar(screen)
	m.ShowsAssistant = entity.ShowsAssistant(screen)

	return m
}

// Success returns a successful response
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, SuccessResponse{
		Data: data,
		Meta: meta(c),
	})
}

// Screen returns the view model of a screen along with an optional flash message
func Screen(c echo.Context, screen string, data any, message string) error {
	return c.JSON(http.StatusOK, SuccessResponse{
		Data:    data,
		Message: message,
		Meta:    screenMeta(c, screen),
	})
}

// Redirect sends the client to another screen
func Redirect(c echo.Context, location string) error {
	m := screenMeta(c, location)
	m.Redirect = location
	c.Response().Header().Set(echo.HeaderLocation, location)

	return c.JSON(http.StatusSeeOther, SuccessResponse{Meta: m})
}

// Loading tells the client to retry once the session is known
func Loading(c echo.Context) error {
	c.Response().Header().Set("Retry-After", "1")

	return c.JSON(http.StatusAccepted, SuccessResponse{
		Message: entity.LoadingPlaceholder,
		Meta:    meta(c),
	})
}

// Error returns an error response
func Error(c echo.Context, statusCode int, errorCode string, message string, details any) error {
	// Details should not be included for 5xx errors or authentication/authorization errors
	if statusCode >= 500 || statusCode == 401 || statusCode == 403 {
		details = nil
	}

	return c.JSON(statusCode, ErrorResponse{
		Error: &ErrorInfo{
			Code:    errorCode,
			Message: message,
			Details: details,
		},
		Meta: meta(c),
	})
}

// ErrorWithView returns an error response that keeps the client on a screen
func ErrorWithView(c echo.Context, err error, screen string, view any) error {
	appErr, ok := errors.AsTarget[domainerrors.AppError](err)
	if !ok {
		return errors.WithStack(err)
	}

	return c.JSON(appErr.HTTPCode(), ErrorResponse{
		Error: &ErrorInfo{
			Code:    appErr.ErrorCode(),
			Message: appErr.Message(),
		},
		View: view,
		Meta: screenMeta(c, screen),
	})
}

// BadRequest returns a 400 error
func BadRequest(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusBadRequest, errorCode, message, nil)
}

// BindingError returns a binding error response
func BindingError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusBadRequest, errorCode, message, nil)
}

// NotFound returns a 404 error
func NotFound(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusNotFound, errorCode, message, nil)
}

// InternalServerError returns a 500 error
func InternalServerError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusInternalServerError, errorCode, message, nil)
}

// HandleAppError handles application errors, converting domain errors to appropriate HTTP responses
func HandleAppError(c echo.Context, err error) error {
	if appErr, ok := errors.AsTarget[domainerrors.AppError](err); ok {
		var details any
		if d := appErr.Details(); d != "" {
			details = d
		}

		return Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), details)
	}

	return errors.WithStack(err)
}
