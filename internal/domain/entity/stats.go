package entity

// AdminStats is the operator dashboard summary from GET /admin/stats.
type AdminStats struct {
	TotalUsers           int            `json:"totalUsers"`
	TotalBikes           int            `json:"totalBikes"`
	BikesByStatus        map[string]int `json:"bikesByStatus"`
	AvailableBikesCount  int            `json:"availableBikesCount"`
	InUseBikesCount      int            `json:"inUseBikesCount"`
	TotalBookings        int            `json:"totalBookings"`
	BookingsByStatus     map[string]int `json:"bookingsByStatus"`
	ActiveBookingsCount  int            `json:"activeBookingsCount"`
	TotalFeedbackEntries int            `json:"totalFeedbackEntries"`
}

// Dashboard is the landing screen after sign-in.
type Dashboard struct {
	Profile ProfileSnapshot `json:"profile"`
	Session Session         `json:"session"`
	// Stats is only loaded for operators.
	Stats      *AdminStats `json:"stats,omitempty"`
	StatsError string      `json:"statsError,omitempty"`
	// Redirect is set for customers, who land on the public listing instead.
	Redirect string `json:"redirect,omitempty"`
}
