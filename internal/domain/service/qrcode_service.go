package service

import "github.com/google/uuid"

// QRCodeService renders shareable QR codes for reports.
type QRCodeService interface {
	// GenerateReportQR returns a PNG QR code encoding the public URL of the
	// given report.
	GenerateReportQR(reportID uuid.UUID) ([]byte, error)
}
