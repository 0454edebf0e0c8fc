package entity

import "strings"

// Concern is an issue a customer raised about a booking.
type Concern struct {
	ID         string `json:"id,omitempty"`
	BookingID  string `json:"bookingId"`
	Timestamp  string `json:"timestamp"`
	Concern    string `json:"concern"`
	AssignedTo string `json:"assigned_to,omitempty"`
	Status     string `json:"status"`
	Resolution string `json:"message,omitempty"`
}

// Resolved reports whether an operator closed the concern.
func (c Concern) Resolved() bool {
	switch strings.ToLower(c.Status) {
	case "resolved", "closed":
		return true
	default:
		return false
	}
}

// ConcernInput is the body of POST /concern.
type ConcernInput struct {
	BookingID string `json:"bookingId"`
	Concern   string `json:"concern"`
}

// ConcernResolution is the body of POST /admin/concerns/resolve.
type ConcernResolution struct {
	BookingID string `json:"bookingId"`
	Message   string `json:"message"`
	Username  string `json:"username"`
}
