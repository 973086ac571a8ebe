package usecase

import (
	"context"
	"io"

	"ecowatch/internal/domain/entity"
	"ecowatch/internal/domain/repository"

	"github.com/google/uuid"
)

// CreateReportInput defines the data required to submit a new report.
// Image and LocationID are both optional.
type CreateReportInput struct {
	UserID      uuid.UUID
	Description string
	Category    entity.ReportCategory
	LocationID  *uuid.UUID
	Image       io.Reader // Evidence image content; nil when none was attached.
}

// NearbyReportsInput defines a proximity query around a point.
type NearbyReportsInput struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}

// ReportUsecase defines the interface for report business operations.
type ReportUsecase interface {
	// CreateReport validates and persists a new report, uploading the
	// optional evidence image first. A referenced location must belong to
	// the reporting user.
	CreateReport(ctx context.Context, input *CreateReportInput) (*entity.Report, error)

	// ListUserReports returns the user's reports for the dashboard, newest first.
	ListUserReports(ctx context.Context, userID uuid.UUID) ([]*entity.Report, error)

	// ListReports returns reports matching the filter, newest first.
	ListReports(ctx context.Context, filter *repository.ReportFilter) ([]*entity.Report, error)

	// GetReport returns a single report with its location.
	GetReport(ctx context.Context, id uuid.UUID) (*entity.Report, error)

	// ResolveReport transitions a report from pending to resolved.
	// Resolving an already-resolved report is not an error.
	ResolveReport(ctx context.Context, id uuid.UUID) error

	// NearbyReports returns located reports within the given radius of a point.
	NearbyReports(ctx context.Context, input *NearbyReportsInput) ([]*entity.Report, error)

	// ReportQR returns a PNG QR code encoding the report's public URL.
	ReportQR(ctx context.Context, id uuid.UUID) ([]byte, error)
}
