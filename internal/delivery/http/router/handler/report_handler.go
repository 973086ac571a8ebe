package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"ecowatch/internal/delivery/http/middleware"
	"ecowatch/internal/delivery/http/response"
	"ecowatch/internal/domain/entity"
	domainerrors "ecowatch/internal/domain/errors"
	"ecowatch/internal/domain/repository"
	"ecowatch/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// reportView is the report representation returned to clients.
type reportView struct {
	ID          string        `json:"id"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Status      string        `json:"status"`
	ImageURL    string        `json:"imageUrl,omitempty"`
	Location    *locationView `json:"location,omitempty"`
	CreatedAt   string        `json:"createdAt"`
}

func newReportView(report *entity.Report) reportView {
	view := reportView{
		ID:          report.ID.String(),
		Description: report.Description,
		Category:    string(report.Category),
		Status:      string(report.Status),
		ImageURL:    report.ImageURL,
		CreatedAt:   report.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if report.Location != nil {
		locView := newLocationView(report.Location)
		view.Location = &locView
	}

	return view
}

func newReportViews(reports []*entity.Report) []reportView {
	views := make([]reportView, 0, len(reports))
	for _, report := range reports {
		views = append(views, newReportView(report))
	}

	return views
}

// createReportRequest is the JSON body of POST /reports. Multipart requests
// carry the same fields as form values plus an optional image part.
type createReportRequest struct {
	Description string `json:"description" form:"description" validate:"required"`
	Category    string `json:"category" form:"category" validate:"required"`
	LocationID  string `json:"locationId" form:"locationId" validate:"omitempty,uuid"`
}

// ReportHandler holds dependencies for report handlers.
type ReportHandler struct {
	uc usecase.ReportUsecase
}

// NewReportHandler is the constructor for ReportHandler, injected by Fx.
func NewReportHandler(uc usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Create handles report submission, JSON or multipart with an optional image
// part named "image".
func (h *ReportHandler) Create(c echo.Context) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return domainerrors.ErrUnauthorized
	}

	var req createReportRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid report input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	input := &usecase.CreateReportInput{
		UserID:      identity.UserID,
		Description: req.Description,
		Category:    entity.ReportCategory(req.Category),
	}

	if req.LocationID != "" {
		locationID, err := uuid.Parse(req.LocationID)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid location id")
		}
		input.LocationID = &locationID
	}

	image, closeImage, err := openImagePart(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid image upload")
	}
	if closeImage != nil {
		defer closeImage()
	}
	input.Image = image

	report, err := h.uc.CreateReport(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newReportView(report), "Report submitted successfully")
}

// openImagePart returns a reader over the multipart "image" part, or nil
// when the request carries none.
func openImagePart(c echo.Context) (io.Reader, func(), error) {
	if !strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		return nil, nil, nil
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil, nil
		}

		return nil, nil, err
	}

	return openFileHeader(fileHeader)
}

func openFileHeader(fileHeader *multipart.FileHeader) (io.Reader, func(), error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, nil, err
	}

	return file, func() { _ = file.Close() }, nil
}

// ListMine returns the authenticated user's reports for the dashboard.
func (h *ReportHandler) ListMine(c echo.Context) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return domainerrors.ErrUnauthorized
	}

	reports, err := h.uc.ListUserReports(c.Request().Context(), identity.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newReportViews(reports), "Reports retrieved successfully")
}

// Get returns one of the authenticated user's reports.
func (h *ReportHandler) Get(c echo.Context) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return domainerrors.ErrUnauthorized
	}

	reportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid report id")
	}

	report, err := h.uc.GetReport(c.Request().Context(), reportID)
	if err != nil {
		return errors.WithStack(err)
	}

	if report.UserID != identity.UserID {
		return domainerrors.ErrForbidden
	}

	return response.Success(c, http.StatusOK, newReportView(report), "Report retrieved successfully")
}

// Nearby returns located reports around a point. Query parameters: lat, lng
// and an optional radius in meters.
func (h *ReportHandler) Nearby(c echo.Context) error {
	lat, err := strconv.ParseFloat(c.QueryParam("lat"), 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid latitude")
	}

	lng, err := strconv.ParseFloat(c.QueryParam("lng"), 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid longitude")
	}

	radius := float64(0)
	if raw := c.QueryParam("radius"); raw != "" {
		radius, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid radius")
		}
	}

	reports, err := h.uc.NearbyReports(c.Request().Context(), &usecase.NearbyReportsInput{
		Latitude:     lat,
		Longitude:    lng,
		RadiusMeters: radius,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newReportViews(reports), "Nearby reports retrieved successfully")
}

// QR streams the report's share code as a PNG.
func (h *ReportHandler) QR(c echo.Context) error {
	reportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid report id")
	}

	png, err := h.uc.ReportQR(c.Request().Context(), reportID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// AdminList returns all reports, optionally filtered by category and status.
func (h *ReportHandler) AdminList(c echo.Context) error {
	filter := &repository.ReportFilter{}

	if raw := c.QueryParam("category"); raw != "" {
		category := entity.ReportCategory(raw)
		filter.Category = &category
	}

	if raw := c.QueryParam("status"); raw != "" {
		status := entity.ReportStatus(raw)
		filter.Status = &status
	}

	reports, err := h.uc.ListReports(c.Request().Context(), filter)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newReportViews(reports), "Reports retrieved successfully")
}

// AdminResolve marks a report resolved.
func (h *ReportHandler) AdminResolve(c echo.Context) error {
	reportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid report id")
	}

	if err := h.uc.ResolveReport(c.Request().Context(), reportID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"status": string(entity.StatusResolved)}, "Report resolved successfully")
}
