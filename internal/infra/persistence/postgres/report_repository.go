package postgres

import (
	"context"

	"ecowatch/internal/domain/entity"
	domainerrors "ecowatch/internal/domain/errors"
	"ecowatch/internal/domain/repository"
	"ecowatch/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// reportRepository implements the repository.ReportRepository interface using GORM.
type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository is the constructor for reportRepository.
func NewReportRepository(db *gorm.DB) repository.ReportRepository {
	return &reportRepository{db: db}
}

// Create persists a new report. The FK on user_id enforces that the owning
// user exists at creation time.
func (repo *reportRepository) Create(ctx context.Context, report *entity.Report) error {
	reportM := fromReportDomain(report)

	if err := repo.db.WithContext(ctx).Create(reportM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "invalid user or location reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "missing required report information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create report")
	}

	report.ID = reportM.ID
	report.Status = entity.ReportStatus(reportM.Status)
	report.CreatedAt = reportM.CreatedAt
	report.UpdatedAt = reportM.UpdatedAt

	return nil
}

// FindByID retrieves a report with its location preloaded.
func (repo *reportRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Report, error) {
	var reportM model.ReportModel
	err := repo.db.WithContext(ctx).
		Preload("Location").
		Where("id = ?", id).
		First(&reportM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReportNotFound
		}

		return nil, errors.Wrap(err, "failed to find report by id")
	}

	return toReportDomain(&reportM), nil
}

// FindByUser retrieves the user's reports, newest first.
func (repo *reportRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Report, error) {
	var reportMs []model.ReportModel
	err := repo.db.WithContext(ctx).
		Preload("Location").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reportMs).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to find reports by user")
	}

	return toReportDomainSlice(reportMs), nil
}

// List retrieves reports matching the filter, newest first.
func (repo *reportRepository) List(ctx context.Context, filter *repository.ReportFilter) ([]*entity.Report, error) {
	query := repo.db.WithContext(ctx).
		Preload("Location").
		Order("created_at DESC")

	if filter != nil {
		if filter.Category != nil {
			query = query.Where("category = ?", string(*filter.Category))
		}
		if filter.Status != nil {
			query = query.Where("status = ?", string(*filter.Status))
		}
	}

	var reportMs []model.ReportModel
	if err := query.Find(&reportMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list reports")
	}

	return toReportDomainSlice(reportMs), nil
}

// ListWithLocation retrieves reports that carry a location reference.
func (repo *reportRepository) ListWithLocation(ctx context.Context) ([]*entity.Report, error) {
	var reportMs []model.ReportModel
	err := repo.db.WithContext(ctx).
		Preload("Location").
		Where("location_id IS NOT NULL").
		Order("created_at DESC").
		Find(&reportMs).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to list located reports")
	}

	return toReportDomainSlice(reportMs), nil
}

// UpdateStatus transitions the report to the given status.
func (repo *reportRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ReportStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ReportModel{}).
		Where("id = ?", id).
		Update("status", string(status))

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update report status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrReportNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toReportDomain(data *model.ReportModel) *entity.Report {
	if data == nil {
		return nil
	}

	return &entity.Report{
		ID:          data.ID,
		UserID:      data.UserID,
		Description: data.Description,
		Category:    entity.ReportCategory(data.Category),
		Status:      entity.ReportStatus(data.Status),
		ImageURL:    data.ImageURL,
		LocationID:  data.LocationID,
		Location:    toLocationDomain(data.Location),
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func toReportDomainSlice(data []model.ReportModel) []*entity.Report {
	reports := make([]*entity.Report, 0, len(data))
	for i := range data {
		reports = append(reports, toReportDomain(&data[i]))
	}

	return reports
}

func fromReportDomain(data *entity.Report) *model.ReportModel {
	if data == nil {
		return nil
	}

	status := data.Status
	if status == "" {
		status = entity.StatusPending
	}

	return &model.ReportModel{
		ID:          data.ID,
		UserID:      data.UserID,
		Description: data.Description,
		Category:    string(data.Category),
		Status:      string(status),
		ImageURL:    data.ImageURL,
		LocationID:  data.LocationID,
	}
}
