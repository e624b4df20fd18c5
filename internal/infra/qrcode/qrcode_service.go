// Package qrcode renders share codes for destinations.
package qrcode

import (
	"encoding/json"
	"net/url"
	"strings"

	"trekmate/internal/domain/entity"
	"trekmate/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

const shareType = "destination"

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// ShareData is the payload encoded in a destination QR code
type ShareData struct {
	Type          string `json:"type"`
	DestinationID string `json:"destination_id"`
	Name          string `json:"name"`
	Location      string `json:"location,omitempty"`
	URL           string `json:"url,omitempty"`
}

// NewQRCodeService creates a QR code service. baseURL, when set, prefixes
// the share link embedded in every code.
func NewQRCodeService(size int, errorCorrectionLevel, baseURL string) service.QRCodeService {
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}
	if size <= 0 {
		size = 256
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
		baseURL:              strings.TrimRight(baseURL, "/"),
	}
}

// GenerateDestinationQR returns a PNG QR code for the destination
func (s *qrcodeService) GenerateDestinationQR(destination *entity.Destination) ([]byte, error) {
	if destination == nil || destination.ID == "" {
		return nil, errors.New("destination id is required")
	}

	payload, err := json.Marshal(s.shareData(destination))
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal QR code data")
	}

	code, err := qrcode.New(string(payload), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	png, err := code.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return png, nil
}

func (s *qrcodeService) shareData(destination *entity.Destination) ShareData {
	data := ShareData{
		Type:          shareType,
		DestinationID: destination.ID,
		Name:          destination.Name,
		Location:      destination.Location,
	}
	if s.baseURL != "" {
		data.URL = s.baseURL + "/destinations/" + url.PathEscape(destination.ID)
	}

	return data
}

// ParseShareData decodes a scanned payload
func ParseShareData(raw string) (*ShareData, error) {
	var data ShareData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal QR code data")
	}
	if data.Type != shareType {
		return nil, errors.Errorf("invalid QR code type: %s", data.Type)
	}
	if data.DestinationID == "" {
		return nil, errors.New("QR code has no destination")
	}

	return &data, nil
}
