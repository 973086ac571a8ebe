package repository

import (
	"context"

	"ecowatch/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrReportNotFound is the sentinel returned when a report lookup matches nothing.
var ErrReportNotFound = NewNotFoundError("report not found")

// ReportFilter narrows report listings. Nil fields match everything.
type ReportFilter struct {
	Category *entity.ReportCategory
	Status   *entity.ReportStatus
}

// ReportRepository provides persistence access to the Report entity.
type ReportRepository interface {
	// Create persists a new report. The owning user must exist; a broken
	// reference surfaces as a store integrity error.
	Create(ctx context.Context, report *entity.Report) error

	// FindByID returns the report with its location preloaded.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Report, error)

	// FindByUser returns the user's reports, newest first, locations preloaded.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Report, error)

	// List returns reports matching the filter, newest first.
	List(ctx context.Context, filter *ReportFilter) ([]*entity.Report, error)

	// ListWithLocation returns reports that carry a location reference,
	// locations preloaded, for proximity queries.
	ListWithLocation(ctx context.Context) ([]*entity.Report, error)

	// UpdateStatus transitions the report to the given status.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ReportStatus) error
}
