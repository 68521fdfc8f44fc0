package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduquest/admin-api/internal/dto"
	"github.com/eduquest/admin-api/internal/middleware"
	"github.com/eduquest/admin-api/internal/models"
	"github.com/eduquest/admin-api/pkg/response"
)

type bulkService interface {
	EnrollStudents(ctx context.Context, req dto.BulkEnrollRequest, actorID string, meta models.RequestMeta) (*dto.BulkEnrollResult, error)
	AssignTeachers(ctx context.Context, req dto.BulkAssignRequest, actorID string, meta models.RequestMeta) (*dto.BulkAssignResult, error)
}

// BulkHandler exposes the batch enrollment and assignment endpoints.
type BulkHandler struct {
	bulk bulkService
}

// NewBulkHandler constructs BulkHandler.
func NewBulkHandler(bulk bulkService) *BulkHandler {
	return &BulkHandler{bulk: bulk}
}

// EnrollStudents godoc
// @Summary Enroll many students in a course
// @Description Every entry is processed independently in one transaction. 201 when at least one entry succeeded, 400 otherwise.
// @Tags Inscripciones
// @Accept json
// @Produce json
// @Param payload body dto.BulkEnrollRequest true "Bulk enrollment"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /inscripciones/inscripcion_masiva [post]
func (h *BulkHandler) EnrollStudents(c *gin.Context) {
	var req dto.BulkEnrollRequest
	if !bindJSON(c, &req) {
		return
	}
	h.enroll(c, req)
}

// CourseEnrollStudents godoc
// @Summary Enroll many students in the course of the path
// @Tags Cursos
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body dto.CourseStudentsRequest true "Students"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /cursos/{id}/inscribir_estudiantes [post]
func (h *BulkHandler) CourseEnrollStudents(c *gin.Context) {
	var req dto.CourseStudentsRequest
	if !bindJSON(c, &req) {
		return
	}
	h.enroll(c, dto.BulkEnrollRequest{CourseID: c.Param("id"), StudentIDs: req.StudentIDs})
}

// AssignTeachers godoc
// @Summary Assign many teachers to a course
// @Tags CursosProfesores
// @Accept json
// @Produce json
// @Param payload body dto.BulkAssignRequest true "Bulk assignment"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /cursos-profesores/asignacion_masiva [post]
func (h *BulkHandler) AssignTeachers(c *gin.Context) {
	var req dto.BulkAssignRequest
	if !bindJSON(c, &req) {
		return
	}
	h.assign(c, req)
}

// CourseAssignTeachers godoc
// @Summary Assign many teachers to the course of the path
// @Tags Cursos
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body dto.CourseTeachersRequest true "Teachers"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /cursos/{id}/asignar_profesores [post]
func (h *BulkHandler) CourseAssignTeachers(c *gin.Context) {
	var req dto.CourseTeachersRequest
	if !bindJSON(c, &req) {
		return
	}
	h.assign(c, dto.BulkAssignRequest{CourseID: c.Param("id"), Teachers: req.Teachers})
}

func (h *BulkHandler) enroll(c *gin.Context, req dto.BulkEnrollRequest) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	result, err := h.bulk.EnrollStudents(c.Request.Context(), req, actor, requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetMeta(c, "procesados", len(req.StudentIDs))
	response.JSON(c, bulkStatus(result.Succeeded()), result, nil, middleware.ExtractMeta(c))
}

func (h *BulkHandler) assign(c *gin.Context, req dto.BulkAssignRequest) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	result, err := h.bulk.AssignTeachers(c.Request.Context(), req, actor, requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetMeta(c, "procesados", len(req.Teachers))
	response.JSON(c, bulkStatus(result.Succeeded()), result, nil, middleware.ExtractMeta(c))
}

func bulkStatus(succeeded bool) int {
	if succeeded {
		return http.StatusCreated
	}
	return http.StatusBadRequest
}
