package entity

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Booking statuses set by the backend.
const (
	BookingPendingApproval = "pending_approval"
	BookingApproved        = "approved"
	BookingActive          = "active"
	BookingCompleted       = "completed"
	BookingCancelled       = "cancelled"
	BookingRejected        = "rejected"
)

// LocalDateTimeLayout is the layout of a date-time form field.
const LocalDateTimeLayout = "2006-01-02T15:04"

// wireTimeLayout matches the UTC ISO-8601 strings the backend stores.
const wireTimeLayout = "2006-01-02T15:04:05.000Z"

// Booking is a rental reservation.
type Booking struct {
	BookingReferenceCode string `json:"bookingReferenceCode"`
	UserID               string `json:"userId,omitempty"`
	BikeID               string `json:"bikeId"`
	BikeType             string `json:"bikeType,omitempty"`
	StartTime            string `json:"startTime"`
	EndTime              string `json:"endTime"`
	Status               string `json:"status"`
	AccessCode           string `json:"accessCode,omitempty"`
	CreatedAt            string `json:"createdAt,omitempty"`
	ApprovedAt           string `json:"approvedAt,omitempty"`
	RejectedReason       string `json:"rejectedReason,omitempty"`
	RatePerHour          Amount `json:"ratePerHour,omitempty"`
	TotalCost            Amount `json:"totalCost,omitempty"`
	Location             string `json:"location,omitempty"`
}

// StatusLabel renders a status like "pending_approval" as "Pending approval".
func StatusLabel(status string) string {
	if status == "" {
		return "N/A"
	}

	label := strings.NewReplacer("_", " ", "-", " ").Replace(status)

	return strings.ToUpper(label[:1]) + label[1:]
}

// StatusLabel renders the booking status.
func (b Booking) StatusLabel() string {
	return StatusLabel(b.Status)
}

// Duration is the booked time span; zero when a timestamp is missing or invalid.
func (b Booking) Duration() time.Duration {
	start, err := ParseWireTime(b.StartTime)
	if err != nil {
		return 0
	}
	end, err := ParseWireTime(b.EndTime)
	if err != nil {
		return 0
	}

	return end.Sub(start)
}

// CostLabel is hours × rate with two decimals, or N/A for a non-positive span.
func (b Booking) CostLabel() string {
	duration := b.Duration()
	if duration <= 0 || b.RatePerHour == 0 {
		return "N/A"
	}

	cost := duration.Hours() * float64(b.RatePerHour)

	return strconv.FormatFloat(cost, 'f', 2, 64)
}

// CanShowAccessCode reports whether an unlock code can be requested.
func (b Booking) CanShowAccessCode() bool {
	return b.Status == BookingApproved || b.Status == BookingActive
}

// CanModify reports whether the booking may still be rescheduled or cancelled.
func (b Booking) CanModify() bool {
	return b.Status == BookingPendingApproval || b.Status == BookingApproved
}

// BookingView is a booking with its display fields resolved.
type BookingView struct {
	Booking
	StatusText    string  `json:"statusLabel"`
	DurationHours float64 `json:"durationHours"`
	Cost          string  `json:"cost"`
	AccessCodeOK  bool    `json:"canShowAccessCode"`
	Modifiable    bool    `json:"canModify"`
}

// ViewBooking resolves the display fields of a booking.
func ViewBooking(b Booking) BookingView {
	return BookingView{
		Booking:       b,
		StatusText:    b.StatusLabel(),
		DurationHours: b.Duration().Hours(),
		Cost:          b.CostLabel(),
		AccessCodeOK:  b.CanShowAccessCode(),
		Modifiable:    b.CanModify(),
	}
}

// BookingWindow is a requested rental period.
type BookingWindow struct {
	Start time.Time
	End   time.Time
}

// Complete reports whether both ends are set.
func (w BookingWindow) Complete() bool {
	return !w.Start.IsZero() && !w.End.IsZero()
}

// Ordered reports whether the end is strictly after the start.
func (w BookingWindow) Ordered() bool {
	return w.End.After(w.Start)
}

// BookingRequest is the body of POST /bookings.
type BookingRequest struct {
	BikeID    string `json:"bikeId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// BookingUpdate is the body of PUT /bookings/{ref}.
type BookingUpdate struct {
	NewStartTime string `json:"new_start_time"`
	NewEndTime   string `json:"new_end_time"`
}

// FormatWireTime renders a time as a UTC ISO-8601 string with milliseconds.
func FormatWireTime(t time.Time) string {
	return t.UTC().Format(wireTimeLayout)
}

// ParseWireTime accepts the backend's timestamps.
func ParseWireTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parse time %q", s)
	}

	return t, nil
}

// ParseLocalDateTime parses a date-time form field in the given location.
// An empty field yields the zero time.
func ParseLocalDateTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if loc == nil {
		loc = time.Local
	}

	t, err := time.ParseInLocation(LocalDateTimeLayout, s, loc)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parse date-time %q", s)
	}

	return t, nil
}

// AccessCode is the unlock code of an approved booking.
type AccessCode struct {
	BookingReferenceCode string `json:"bookingReferenceCode"`
	Code                 string `json:"accessCode"`
}

// BookingBikeDetails is the operator's view of a booking and its bike.
type BookingBikeDetails struct {
	BookingDetails *Booking `json:"bookingDetails,omitempty"`
	BikeDetails    *Bike    `json:"bikeDetails,omitempty"`
}
