// Package qrcode renders booking access codes as scannable QR images.
package qrcode

import (
	"encoding/json"
	"strings"

	"scooter/config"
	"scooter/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

const (
	defaultSize  = 256
	payloadType  = "access_code"
	defaultLevel = "M"
)

type accessCodeQR struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// Payload is the JSON encoded in an access code image.
type Payload struct {
	BookingReference string `json:"booking_reference"`
	AccessCode       string `json:"access_code"`
	Type             string `json:"type"`
}

// NewAccessCodeQR creates a renderer. A non-positive size falls back to 256 pixels.
func NewAccessCodeQR(size int, errorCorrectionLevel string) service.AccessCodeQR {
	if size <= 0 {
		size = defaultSize
	}

	var level qrcode.RecoveryLevel
	switch strings.ToUpper(errorCorrectionLevel) {
	case "L":
		level = qrcode.Low
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &accessCodeQR{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// NewAccessCodeQRFromConfig reads the qrcode section, defaulting to 256px at level M.
func NewAccessCodeQRFromConfig(cfg *config.Config) service.AccessCodeQR {
	if cfg.QRCode == nil {
		return NewAccessCodeQR(defaultSize, defaultLevel)
	}

	return NewAccessCodeQR(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

func (s *accessCodeQR) RenderAccessCode(bookingReference, accessCode string) ([]byte, error) {
	if bookingReference == "" || accessCode == "" {
		return nil, errors.New("booking reference and access code are required")
	}

	jsonData, err := json.Marshal(Payload{
		BookingReference: bookingReference,
		AccessCode:       accessCode,
		Type:             payloadType,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal QR code data")
	}

	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}

func (s *accessCodeQR) ParseAccessCode(payload string) (string, string, error) {
	var data Payload
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return "", "", errors.Wrap(err, "failed to unmarshal QR code data")
	}

	if data.Type != payloadType {
		return "", "", errors.Errorf("invalid QR code type: %s", data.Type)
	}
	if data.BookingReference == "" || data.AccessCode == "" {
		return "", "", errors.New("QR code is missing the booking reference or access code")
	}

	return data.BookingReference, data.AccessCode, nil
}
