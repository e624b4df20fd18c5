package service

import (
	"trekmate/internal/domain/entity"
)

// QRCodeService generates shareable QR codes
type QRCodeService interface {
	// GenerateDestinationQR returns a PNG QR code linking to the destination
	GenerateDestinationQR(destination *entity.Destination) ([]byte, error)
}
