package errors

import (
	"fmt"
	"net/http"

	"scooter/internal/errors"
)

// ProviderError is a failure reported by the identity provider.
// Code is the provider's exception name, Message its human-readable text.
type ProviderError struct {
	Code    string
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("identity provider: %s: %s", e.Code, e.Message)
}

// APIError is a non-2xx answer from the rental REST API.
// Message is the server's `message` field when the body carried one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("rental api: status %d", e.Status)
	}

	return fmt.Sprintf("rental api: status %d: %s", e.Status, e.Message)
}

// RemoteError is the user-facing rendering of a provider, backend or network failure
type RemoteError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
	cause     error
}

func (e *RemoteError) Error() string {
	return errors.Wrap(e.cause, e.message).Error()
}

func (e *RemoteError) Unwrap() error {
	return e.cause
}

func (e *RemoteError) HTTPCode() int {
	return e.httpCode
}

func (e *RemoteError) ErrorCode() string {
	return e.errorCode
}

func (e *RemoteError) Message() string {
	return e.message
}

func (e *RemoteError) Details() string {
	return e.details
}

// FromRemote turns a failed remote call into an AppError. The remote message
// is shown when present, otherwise the fallback's message. Errors that are
// already AppErrors pass through untouched.
func FromRemote(err error, fallback *BaseError) error {
	if err == nil {
		return nil
	}

	var appErr AppError
	if errors.As(err, &appErr) {
		return err
	}

	remote := &RemoteError{
		httpCode:  http.StatusBadGateway,
		errorCode: fallback.ErrorCode(),
		message:   fallback.Message(),
		cause:     err,
	}

	if apiErr, ok := errors.AsTarget[*APIError](err); ok {
		if apiErr.Message != "" {
			remote.message = apiErr.Message
		}
		if apiErr.Status >= http.StatusBadRequest {
			remote.httpCode = apiErr.Status
		}
		remote.details = http.StatusText(apiErr.Status)

		return remote
	}

	if providerErr, ok := errors.AsTarget[*ProviderError](err); ok {
		if providerErr.Message != "" {
			remote.message = providerErr.Message
		}
		remote.httpCode = fallback.HTTPCode()
		remote.details = providerErr.Code

		return remote
	}

	return remote
}

// Fallback messages for backend calls
var (
	ErrBikesLoadFailed = NewBaseError(
		http.StatusBadGateway,
		"BIKES_LOAD_FAILED",
		"Failed to load bikes. Please check your API URL and network connection.",
		"",
	)

	ErrBikeAddFailed = NewBaseError(
		http.StatusBadGateway,
		"BIKE_ADD_FAILED",
		"Failed to add bike. Please try again.",
		"",
	)

	ErrBikeUpdateFailed = NewBaseError(
		http.StatusBadGateway,
		"BIKE_UPDATE_FAILED",
		"Failed to update bike. Please try again.",
		"",
	)

	ErrBookingsLoadFailed = NewBaseError(
		http.StatusBadGateway,
		"BOOKINGS_LOAD_FAILED",
		"Failed to load bookings.",
		"",
	)

	ErrBookingSubmitFailed = NewBaseError(
		http.StatusBadGateway,
		"BOOKING_SUBMIT_FAILED",
		"Failed to submit booking. Please try again.",
		"",
	)

	ErrBookingUpdateFailed = NewBaseError(
		http.StatusBadGateway,
		"BOOKING_UPDATE_FAILED",
		"Failed to update booking. Please try again.",
		"",
	)

	ErrBookingCancelFailed = NewBaseError(
		http.StatusBadGateway,
		"BOOKING_CANCEL_FAILED",
		"Failed to cancel booking.",
		"",
	)

	ErrAccessCodeFailed = NewBaseError(
		http.StatusBadGateway,
		"ACCESS_CODE_FAILED",
		"Failed to get access code.",
		"",
	)

	ErrBookingDetailsFailed = NewBaseError(
		http.StatusBadGateway,
		"BOOKING_DETAILS_FAILED",
		"Failed to load booking details.",
		"",
	)

	ErrFeedbackLoadFailed = NewBaseError(
		http.StatusBadGateway,
		"FEEDBACK_LOAD_FAILED",
		"Failed to load feedback. Please try again.",
		"",
	)

	ErrFeedbackSubmitFailed = NewBaseError(
		http.StatusBadGateway,
		"FEEDBACK_SUBMIT_FAILED",
		"Failed to submit feedback. Please try again.",
		"",
	)

	ErrConcernsLoadFailed = NewBaseError(
		http.StatusBadGateway,
		"CONCERNS_LOAD_FAILED",
		"Failed to load concerns.",
		"",
	)

	ErrConcernSubmitFailed = NewBaseError(
		http.StatusBadGateway,
		"CONCERN_SUBMIT_FAILED",
		"Failed to submit concern. Please try again.",
		"",
	)

	ErrConcernResolveFailed = NewBaseError(
		http.StatusBadGateway,
		"CONCERN_RESOLVE_FAILED",
		"Failed to resolve concern. Please try again.",
		"",
	)

	ErrStatsLoadFailed = NewBaseError(
		http.StatusBadGateway,
		"STATS_LOAD_FAILED",
		"Failed to load statistics",
		"",
	)
)
