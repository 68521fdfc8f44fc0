package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduquest/admin-api/internal/dto"
	"github.com/eduquest/admin-api/internal/models"
	appErrors "github.com/eduquest/admin-api/pkg/errors"
)

type bulkServiceMock struct {
	enrollReq    dto.BulkEnrollRequest
	assignReq    dto.BulkAssignRequest
	enrollResult *dto.BulkEnrollResult
	assignResult *dto.BulkAssignResult
	err          error
}

func (m *bulkServiceMock) EnrollStudents(ctx context.Context, req dto.BulkEnrollRequest, actorID string, meta models.RequestMeta) (*dto.BulkEnrollResult, error) {
	m.enrollReq = req
	return m.enrollResult, m.err
}

func (m *bulkServiceMock) AssignTeachers(ctx context.Context, req dto.BulkAssignRequest, actorID string, meta models.RequestMeta) (*dto.BulkAssignResult, error) {
	m.assignReq = req
	return m.assignResult, m.err
}

func TestBulkHandlerEnrollCreatedWhenAnySucceeded(t *testing.T) {
	svc := &bulkServiceMock{enrollResult: &dto.BulkEnrollResult{
		Enrolled:      []dto.BulkEnrollSuccess{{StudentID: "s1", Action: dto.BulkActionCreated}},
		Failures:      []dto.BulkFailure{{SubjectID: "s2", Code: dto.BulkErrorAlreadyEnrolled}},
		TotalEnrolled: 1,
		TotalFailures: 1,
	}}
	handler := NewBulkHandler(svc)
	body, _ := json.Marshal(dto.BulkEnrollRequest{CourseID: "c1", StudentIDs: []string{"s1", "s2"}})
	c, w := newGinContext(http.MethodPost, "/inscripciones/inscripcion_masiva", body)
	withAdmin(c)

	handler.EnrollStudents(c)

	require.Equal(t, http.StatusCreated, w.Code)
	env := decodeEnvelope(t, w)
	assert.EqualValues(t, 2, env.Meta["procesados"])
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.EqualValues(t, 1, result["total_inscritos"])
	assert.EqualValues(t, 1, result["total_errores"])
}

func TestBulkHandlerEnrollBadRequestWhenNothingApplied(t *testing.T) {
	svc := &bulkServiceMock{enrollResult: &dto.BulkEnrollResult{
		Enrolled:      []dto.BulkEnrollSuccess{},
		Failures:      []dto.BulkFailure{{SubjectID: "s3", Code: dto.BulkErrorNotFound}},
		TotalFailures: 1,
	}}
	handler := NewBulkHandler(svc)
	body, _ := json.Marshal(dto.BulkEnrollRequest{CourseID: "c1", StudentIDs: []string{"s3"}})
	c, w := newGinContext(http.MethodPost, "/inscripciones/inscripcion_masiva", body)
	withAdmin(c)

	handler.EnrollStudents(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBulkHandlerCourseActionUsesPathCourse(t *testing.T) {
	svc := &bulkServiceMock{assignResult: &dto.BulkAssignResult{TotalAssigned: 1}}
	handler := NewBulkHandler(svc)
	body, _ := json.Marshal(dto.CourseTeachersRequest{Teachers: []dto.BulkTeacherEntry{{TeacherID: "t1", Role: models.TeacherRoleLead}}})
	c, w := newGinContext(http.MethodPost, "/cursos/c9/asignar_profesores", body)
	c.Params = gin.Params{{Key: "id", Value: "c9"}}
	withAdmin(c)

	handler.CourseAssignTeachers(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "c9", svc.assignReq.CourseID)
	require.Len(t, svc.assignReq.Teachers, 1)
}

func TestBulkHandlerCourseNotFound(t *testing.T) {
	svc := &bulkServiceMock{err: appErrors.Clone(appErrors.ErrNotFound, "Curso no encontrado o inactivo")}
	handler := NewBulkHandler(svc)
	body, _ := json.Marshal(dto.CourseStudentsRequest{StudentIDs: []string{"s1"}})
	c, w := newGinContext(http.MethodPost, "/cursos/c9/inscribir_estudiantes", body)
	c.Params = gin.Params{{Key: "id", Value: "c9"}}
	withAdmin(c)

	handler.CourseEnrollStudents(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "c9", svc.enrollReq.CourseID)
}

func TestBulkHandlerRequiresAuthenticatedActor(t *testing.T) {
	handler := NewBulkHandler(&bulkServiceMock{})
	body, _ := json.Marshal(dto.BulkEnrollRequest{CourseID: "c1", StudentIDs: []string{"s1"}})
	c, w := newGinContext(http.MethodPost, "/inscripciones/inscripcion_masiva", body)

	handler.EnrollStudents(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
