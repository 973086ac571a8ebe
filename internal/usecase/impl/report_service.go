package impl

import (
	"context"
	"log/slog"
	"strings"

	"ecowatch/config"
	deliverycontext "ecowatch/internal/delivery/context"
	"ecowatch/internal/domain/entity"
	domainerrors "ecowatch/internal/domain/errors"
	"ecowatch/internal/domain/repository"
	"ecowatch/internal/domain/service"
	"ecowatch/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// defaultNearbyRadiusMeters applies when a proximity query omits the radius.
const defaultNearbyRadiusMeters = 5000

// reportService implements the ReportUsecase interface.
type reportService struct {
	reportRepo      repository.ReportRepository
	locationRepo    repository.LocationRepository
	imageStorage    service.ImageStorage
	qrService       service.QRCodeService
	imageFolder     string
	maxRadiusMeters float64
	logger          *slog.Logger
}

// ReportServiceParams holds dependencies for reportService, injected by Fx.
type ReportServiceParams struct {
	fx.In

	ReportRepo   repository.ReportRepository
	LocationRepo repository.LocationRepository
	ImageStorage service.ImageStorage
	QRService    service.QRCodeService
	Config       *config.Config
	Logger       *slog.Logger
}

// NewReportService is the constructor for reportService.
func NewReportService(params ReportServiceParams) usecase.ReportUsecase {
	imageFolder := ""
	if params.Config != nil && params.Config.Cloudinary != nil {
		imageFolder = params.Config.Cloudinary.Folder
	}

	maxRadiusMeters := float64(0)
	if params.Config != nil && params.Config.Reports != nil {
		maxRadiusMeters = params.Config.Reports.MaxNearbyRadiusMeters
	}

	return &reportService{
		reportRepo:      params.ReportRepo,
		locationRepo:    params.LocationRepo,
		imageStorage:    params.ImageStorage,
		qrService:       params.QRService,
		imageFolder:     imageFolder,
		maxRadiusMeters: maxRadiusMeters,
		logger:          params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *reportService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateReport validates and persists a new report. The optional evidence
// image is uploaded before anything touches the store, so a failed upload
// leaves no orphan row behind.
func (srv *reportService) CreateReport(ctx context.Context, input *usecase.CreateReportInput) (*entity.Report, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("description is required")
	}

	if !input.Category.Valid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown report category")
	}

	if input.LocationID != nil {
		location, err := srv.locationRepo.FindByID(ctx, *input.LocationID)
		if err != nil {
			if errors.Is(err, repository.ErrLocationNotFound) {
				return nil, domainerrors.ErrLocationNotFound.WrapMessage("referenced location does not exist")
			}

			return nil, errors.Wrap(err, "failed to load referenced location")
		}

		if location.UserID != input.UserID {
			srv.log(ctx).Warn("Report references another user's location",
				slog.Any("userID", input.UserID),
				slog.Any("locationID", *input.LocationID))

			return nil, domainerrors.ErrForbidden.WrapMessage("location belongs to another user")
		}
	}

	imageURL := ""
	if input.Image != nil {
		url, err := srv.imageStorage.Upload(ctx, input.Image, srv.imageFolder)
		if err != nil {
			srv.log(ctx).Error("Failed to upload report image", slog.Any("error", err))

			return nil, domainerrors.ErrImageUploadFailed.WrapMessage("image upload failed")
		}
		imageURL = url
	}

	report := &entity.Report{
		UserID:      input.UserID,
		Description: description,
		Category:    input.Category,
		Status:      entity.StatusPending,
		ImageURL:    imageURL,
		LocationID:  input.LocationID,
	}

	if err := srv.reportRepo.Create(ctx, report); err != nil {
		srv.log(ctx).Error("Failed to persist report", slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("Report created",
		slog.Any("reportID", report.ID),
		slog.String("category", string(report.Category)))

	return report, nil
}

// ListUserReports returns the user's reports for the dashboard, newest first.
func (srv *reportService) ListUserReports(ctx context.Context, userID uuid.UUID) ([]*entity.Report, error) {
	reports, err := srv.reportRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list user reports")
	}

	return reports, nil
}

// ListReports returns reports matching the filter, newest first.
func (srv *reportService) ListReports(ctx context.Context, filter *repository.ReportFilter) ([]*entity.Report, error) {
	if filter != nil {
		if filter.Category != nil && !filter.Category.Valid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("unknown report category")
		}
		if filter.Status != nil && !filter.Status.Valid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("unknown report status")
		}
	}

	reports, err := srv.reportRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reports")
	}

	return reports, nil
}

// GetReport returns a single report with its location.
func (srv *reportService) GetReport(ctx context.Context, id uuid.UUID) (*entity.Report, error) {
	report, err := srv.reportRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			return nil, domainerrors.ErrReportNotFound.WrapMessage("report not found")
		}

		return nil, errors.Wrap(err, "failed to load report")
	}

	return report, nil
}

// ResolveReport marks a report resolved. Resolving twice is a no-op, not an
// error.
func (srv *reportService) ResolveReport(ctx context.Context, id uuid.UUID) error {
	err := srv.reportRepo.UpdateStatus(ctx, id, entity.StatusResolved)
	if err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			return domainerrors.ErrReportNotFound.WrapMessage("report not found")
		}

		return errors.Wrap(err, "failed to resolve report")
	}

	srv.log(ctx).Info("Report resolved", slog.Any("reportID", id))

	return nil
}

// NearbyReports returns located reports within the given radius of a point.
// The filtering runs over great-circle distance in meters.
func (srv *reportService) NearbyReports(ctx context.Context, input *usecase.NearbyReportsInput) ([]*entity.Report, error) {
	if err := validateCoordinates(input.Latitude, input.Longitude); err != nil {
		return nil, err
	}

	radius := input.RadiusMeters
	if radius <= 0 {
		radius = defaultNearbyRadiusMeters
	}
	if srv.maxRadiusMeters > 0 && radius > srv.maxRadiusMeters {
		radius = srv.maxRadiusMeters
	}

	located, err := srv.reportRepo.ListWithLocation(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list located reports")
	}

	center := orb.Point{input.Longitude, input.Latitude}
	nearby := make([]*entity.Report, 0, len(located))
	for _, report := range located {
		if report.Location == nil {
			continue
		}

		point := orb.Point{report.Location.Longitude, report.Location.Latitude}
		if geo.Distance(center, point) <= radius {
			nearby = append(nearby, report)
		}
	}

	return nearby, nil
}

// ReportQR returns a PNG QR code encoding the report's public URL.
func (srv *reportService) ReportQR(ctx context.Context, id uuid.UUID) ([]byte, error) {
	// Resolve the report first so a missing ID yields not-found rather than
	// a QR code pointing nowhere.
	if _, err := srv.GetReport(ctx, id); err != nil {
		return nil, err
	}

	png, err := srv.qrService.GenerateReportQR(id)
	if err != nil {
		srv.log(ctx).Error("Failed to render report QR code", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to render report QR code")
	}

	return png, nil
}

// validateCoordinates bounds-checks a WGS84 pair.
func validateCoordinates(latitude, longitude float64) error {
	if latitude < -90 || latitude > 90 {
		return domainerrors.ErrValidationFailed.WithDetails("latitude must be between -90 and 90")
	}
	if longitude < -180 || longitude > 180 {
		return domainerrors.ErrValidationFailed.WithDetails("longitude must be between -180 and 180")
	}

	return nil
}
