package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduquest/admin-api/internal/models"
	appErrors "github.com/eduquest/admin-api/pkg/errors"
)

type enrollmentServiceMock struct {
	filter    models.EnrollmentFilter
	changeID  string
	changeReq models.ChangeEnrollmentStatusRequest
	err       error
}

func (m *enrollmentServiceMock) List(ctx context.Context, filter models.EnrollmentFilter) ([]models.EnrollmentDetail, *models.Pagination, error) {
	m.filter = filter
	return []models.EnrollmentDetail{}, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize}, m.err
}

func (m *enrollmentServiceMock) Get(ctx context.Context, id string) (*models.EnrollmentDetail, error) {
	return &models.EnrollmentDetail{}, m.err
}

func (m *enrollmentServiceMock) Enroll(ctx context.Context, req models.CreateEnrollmentRequest) (*models.EnrollmentDetail, error) {
	return &models.EnrollmentDetail{}, m.err
}

func (m *enrollmentServiceMock) ChangeStatus(ctx context.Context, id string, req models.ChangeEnrollmentStatusRequest) (*models.EnrollmentDetail, error) {
	m.changeID = id
	m.changeReq = req
	return &models.EnrollmentDetail{}, m.err
}

func (m *enrollmentServiceMock) Delete(ctx context.Context, id string) error {
	return m.err
}

func TestEnrollmentHandlerListFilters(t *testing.T) {
	svc := &enrollmentServiceMock{}
	handler := NewEnrollmentHandler(svc)
	c, w := newGinContext(http.MethodGet, "/inscripciones?curso_id=c1&estado=RETIRADO&page=2&page_size=5", nil)

	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "c1", svc.filter.CourseID)
	assert.Equal(t, models.EnrollmentStatusWithdrawn, svc.filter.Status)
	assert.Equal(t, 2, svc.filter.Page)
	assert.Equal(t, 5, svc.filter.PageSize)
}

func TestEnrollmentHandlerChangeStatus(t *testing.T) {
	svc := &enrollmentServiceMock{}
	handler := NewEnrollmentHandler(svc)
	c, w := newGinContext(http.MethodPatch, "/inscripciones/e1/cambiar_estado", []byte(`{"estado":"completado"}`))
	c.Params = gin.Params{{Key: "id", Value: "e1"}}

	handler.ChangeStatus(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "e1", svc.changeID)
	assert.Equal(t, models.EnrollmentStatusCompleted, svc.changeReq.Status)
}

func TestEnrollmentHandlerChangeStatusInvalid(t *testing.T) {
	svc := &enrollmentServiceMock{err: appErrors.Clone(appErrors.ErrValidation, "Estado inválido")}
	handler := NewEnrollmentHandler(svc)
	c, w := newGinContext(http.MethodPatch, "/inscripciones/e1/cambiar_estado", []byte(`{"estado":"pausado"}`))

	handler.ChangeStatus(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEnrollmentHandlerCreateConflict(t *testing.T) {
	svc := &enrollmentServiceMock{err: appErrors.Clone(appErrors.ErrConflict, "Ya está inscrito")}
	handler := NewEnrollmentHandler(svc)
	c, w := newGinContext(http.MethodPost, "/inscripciones", []byte(`{"estudiante":"s","curso":"c"}`))

	handler.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}
