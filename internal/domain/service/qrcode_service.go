package service

// AccessCodeQR renders booking access codes for scanning at the scooter
type AccessCodeQR interface {
	// RenderAccessCode returns a PNG encoding the booking's unlock code
	RenderAccessCode(bookingReference, accessCode string) ([]byte, error)

	// ParseAccessCode reads back the payload scanned from a code
	ParseAccessCode(payload string) (bookingReference, accessCode string, err error)
}
