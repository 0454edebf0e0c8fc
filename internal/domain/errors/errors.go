package errors

import (
	"net/http"

	"scooter/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-facing message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-facing message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// WithMessage returns a copy carrying a different user-facing message
func (e *BaseError) WithMessage(message string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   message,
		details:   e.details,
	}
}

// Is matches errors sharing the same business code, so copies made with
// WithMessage or WithDetails still match the predefined value.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return t.errorCode == e.errorCode
}

// Validation builds a client-side validation error with the given message.
func Validation(message string) *BaseError {
	return ErrValidationFailed.WithMessage(message)
}

// Predefined error types
var (
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// Sign-in and challenge errors
	ErrAnswerRequired = NewBaseError(
		http.StatusBadRequest,
		"ANSWER_REQUIRED",
		"Please provide an answer.",
		"",
	)

	ErrCredentialsRequired = NewBaseError(
		http.StatusBadRequest,
		"CREDENTIALS_REQUIRED",
		"Please enter both email and password.",
		"",
	)

	ErrLoginFailed = NewBaseError(
		http.StatusUnauthorized,
		"LOGIN_FAILED",
		"Login failed. Please check your credentials.",
		"",
	)

	ErrChallengeFailed = NewBaseError(
		http.StatusUnauthorized,
		"CHALLENGE_FAILED",
		"Challenge response failed. Please try again.",
		"",
	)

	ErrNoActiveChallenge = NewBaseError(
		http.StatusConflict,
		"NO_ACTIVE_CHALLENGE",
		"No sign-in challenge is pending. Please log in again.",
		"",
	)

	ErrMalformedChallenge = NewBaseError(
		http.StatusBadGateway,
		"MALFORMED_CHALLENGE",
		"The sign-in challenge could not be understood. Please log in again.",
		"",
	)

	ErrSubmissionInProgress = NewBaseError(
		http.StatusConflict,
		"SUBMISSION_IN_PROGRESS",
		"A submission is already in progress.",
		"",
	)

	ErrLogoutFailed = NewBaseError(
		http.StatusBadGateway,
		"LOGOUT_FAILED",
		"Logout failed. Please try again.",
		"",
	)

	ErrNotAuthenticated = NewBaseError(
		http.StatusUnauthorized,
		"NOT_AUTHENTICATED",
		"Please log in to continue.",
		"",
	)

	// Registration errors
	ErrSignupFieldsMissing = NewBaseError(
		http.StatusBadRequest,
		"SIGNUP_FIELDS_MISSING",
		"Please fill in all fields.",
		"",
	)

	ErrSecurityQuestionsIncomplete = NewBaseError(
		http.StatusBadRequest,
		"SECURITY_QUESTIONS_INCOMPLETE",
		"All questions and answers are required.",
		"",
	)

	ErrSecurityQuestionsDuplicated = NewBaseError(
		http.StatusBadRequest,
		"SECURITY_QUESTIONS_DUPLICATED",
		"Please choose three different security questions.",
		"",
	)

	ErrRegistrationFailed = NewBaseError(
		http.StatusBadRequest,
		"REGISTRATION_FAILED",
		"Registration failed. Please try again.",
		"",
	)

	ErrVerificationFailed = NewBaseError(
		http.StatusBadRequest,
		"VERIFICATION_FAILED",
		"Verification failed. Please check the code.",
		"",
	)

	// Fleet errors
	ErrBikeFieldsMissing = NewBaseError(
		http.StatusBadRequest,
		"BIKE_FIELDS_MISSING",
		"Please fill in all required fields (Model, Location, Rate, Status).",
		"",
	)

	ErrInvalidRate = NewBaseError(
		http.StatusBadRequest,
		"INVALID_RATE",
		"Rate per hour must be a positive number.",
		"",
	)

	ErrDuplicateDetailKeys = NewBaseError(
		http.StatusBadRequest,
		"DUPLICATE_DETAIL_KEYS",
		"Duplicate keys found in Details. Please ensure all keys are unique.",
		"",
	)

	ErrBikeNotFound = NewBaseError(
		http.StatusNotFound,
		"BIKE_NOT_FOUND",
		"Bike not found or you do not have permission.",
		"",
	)

	// Booking errors
	ErrBookingTimesMissing = NewBaseError(
		http.StatusBadRequest,
		"BOOKING_TIMES_MISSING",
		"Please select both start and end date/time.",
		"",
	)

	ErrEndBeforeStart = NewBaseError(
		http.StatusBadRequest,
		"END_BEFORE_START",
		"End time must be after start time.",
		"",
	)

	// Feedback and concern errors
	ErrCommentRequired = NewBaseError(
		http.StatusBadRequest,
		"COMMENT_REQUIRED",
		"Comment cannot be empty.",
		"",
	)

	ErrRatingOutOfRange = NewBaseError(
		http.StatusBadRequest,
		"RATING_OUT_OF_RANGE",
		"Rating must be between 1 and 5.",
		"",
	)

	ErrConcernRequired = NewBaseError(
		http.StatusBadRequest,
		"CONCERN_REQUIRED",
		"Please describe your concern.",
		"",
	)

	ErrResolutionRequired = NewBaseError(
		http.StatusBadRequest,
		"RESOLUTION_REQUIRED",
		"Please enter a resolution comment.",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		"",
	)
)
