package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ecowatch/internal/delivery/http/middleware"
	"ecowatch/internal/delivery/http/validator"
	"ecowatch/internal/domain/entity"
	domainerrors "ecowatch/internal/domain/errors"
	"ecowatch/internal/domain/repository"
	"ecowatch/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubReportUsecase records inputs and replays canned outputs.
type stubReportUsecase struct {
	created     *usecase.CreateReportInput
	report      *entity.Report
	reports     []*entity.Report
	png         []byte
	resolvedIDs []uuid.UUID
	err         error
}

func (s *stubReportUsecase) CreateReport(_ context.Context, input *usecase.CreateReportInput) (*entity.Report, error) {
	s.created = input
	if s.err != nil {
		return nil, s.err
	}

	return s.report, nil
}

func (s *stubReportUsecase) ListUserReports(context.Context, uuid.UUID) ([]*entity.Report, error) {
	return s.reports, s.err
}

func (s *stubReportUsecase) ListReports(context.Context, *repository.ReportFilter) ([]*entity.Report, error) {
	return s.reports, s.err
}

func (s *stubReportUsecase) GetReport(context.Context, uuid.UUID) (*entity.Report, error) {
	if s.err != nil {
		return nil, s.err
	}

	return s.report, nil
}

func (s *stubReportUsecase) ResolveReport(_ context.Context, id uuid.UUID) error {
	s.resolvedIDs = append(s.resolvedIDs, id)

	return s.err
}

func (s *stubReportUsecase) NearbyReports(context.Context, *usecase.NearbyReportsInput) ([]*entity.Report, error) {
	return s.reports, s.err
}

func (s *stubReportUsecase) ReportQR(context.Context, uuid.UUID) ([]byte, error) {
	return s.png, s.err
}

func authedContext(method, target, body string, identity *entity.Identity) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e := echo.New()
	e.Validator = validator.New()
	c := e.NewContext(req, rec)
	if identity != nil {
		middleware.SetIdentity(c, identity)
	}

	return c, rec
}

func TestReportHandler_Create_JSON(t *testing.T) {
	userID := uuid.New()
	stub := &stubReportUsecase{report: &entity.Report{
		ID:          uuid.New(),
		UserID:      userID,
		Description: "Thick smoke over the river bank",
		Category:    entity.CategoryAirPollution,
		Status:      entity.StatusPending,
	}}
	h := NewReportHandler(stub)

	c, rec := authedContext(http.MethodPost, "/reports",
		`{"description":"Thick smoke over the river bank","category":"air-pollution"}`,
		&entity.Identity{UserID: userID, Email: "ada@example.com"})

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, stub.created)
	assert.Equal(t, userID, stub.created.UserID)
	assert.Equal(t, entity.CategoryAirPollution, stub.created.Category)
	assert.Nil(t, stub.created.Image)
}

func TestReportHandler_Create_RejectsMissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing category", `{"description":"Thick smoke over the river bank"}`},
		{"missing description", `{"category":"air-pollution"}`},
		{"malformed location id", `{"description":"x","category":"wildfire","locationId":"not-a-uuid"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubReportUsecase{}
			h := NewReportHandler(stub)

			c, rec := authedContext(http.MethodPost, "/reports", tt.body,
				&entity.Identity{UserID: uuid.New()})

			require.NoError(t, h.Create(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			// Validation stops the request before the usecase runs.
			assert.Nil(t, stub.created)
		})
	}
}

func TestReportHandler_Get_OwnershipEnforced(t *testing.T) {
	reportID := uuid.New()
	stub := &stubReportUsecase{report: &entity.Report{
		ID:     reportID,
		UserID: uuid.New(), // someone else's report
		Status: entity.StatusPending,
	}}
	h := NewReportHandler(stub)

	c, _ := authedContext(http.MethodGet, "/reports/"+reportID.String(), "",
		&entity.Identity{UserID: uuid.New()})
	c.SetParamNames("id")
	c.SetParamValues(reportID.String())

	err := h.Get(c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestReportHandler_QR_ServesPNG(t *testing.T) {
	reportID := uuid.New()
	png := []byte{0x89, 0x50, 0x4E, 0x47}
	h := NewReportHandler(&stubReportUsecase{png: png})

	c, rec := authedContext(http.MethodGet, "/reports/"+reportID.String()+"/qr", "",
		&entity.Identity{UserID: uuid.New()})
	c.SetParamNames("id")
	c.SetParamValues(reportID.String())

	require.NoError(t, h.QR(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, png, rec.Body.Bytes())
}

func TestReportHandler_Nearby_RejectsMissingCoordinates(t *testing.T) {
	h := NewReportHandler(&stubReportUsecase{})

	c, rec := authedContext(http.MethodGet, "/reports/nearby?lng=121.5", "",
		&entity.Identity{UserID: uuid.New()})

	require.NoError(t, h.Nearby(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReportHandler_AdminResolve(t *testing.T) {
	reportID := uuid.New()
	stub := &stubReportUsecase{}
	h := NewReportHandler(stub)

	c, rec := authedContext(http.MethodPost, "/admin/reports/"+reportID.String()+"/resolve", "", nil)
	c.SetParamNames("id")
	c.SetParamValues(reportID.String())

	require.NoError(t, h.AdminResolve(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []uuid.UUID{reportID}, stub.resolvedIDs)
}
