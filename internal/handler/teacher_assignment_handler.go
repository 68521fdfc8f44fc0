package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduquest/admin-api/internal/models"
	"github.com/eduquest/admin-api/pkg/response"
)

type teacherAssignmentService interface {
	List(ctx context.Context, filter models.TeacherAssignmentFilter) ([]models.TeacherAssignmentDetail, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.TeacherAssignmentDetail, error)
	Assign(ctx context.Context, req models.CreateTeacherAssignmentRequest) (*models.TeacherAssignmentDetail, error)
	ChangeRole(ctx context.Context, id string, req models.ChangeTeacherRoleRequest) (*models.TeacherAssignmentDetail, error)
	Delete(ctx context.Context, id string) error
}

// TeacherAssignmentHandler exposes /cursos-profesores.
type TeacherAssignmentHandler struct {
	assignments teacherAssignmentService
}

// NewTeacherAssignmentHandler constructs TeacherAssignmentHandler.
func NewTeacherAssignmentHandler(assignments teacherAssignmentService) *TeacherAssignmentHandler {
	return &TeacherAssignmentHandler{assignments: assignments}
}

// List godoc
// @Summary List teacher assignments
// @Tags CursosProfesores
// @Produce json
// @Param curso_id query string false "Filter by course"
// @Param profesor_id query string false "Filter by teacher"
// @Param rol_profesor query string false "titular or asistente"
// @Success 200 {object} response.Envelope
// @Router /cursos-profesores [get]
func (h *TeacherAssignmentHandler) List(c *gin.Context) {
	var filter models.TeacherAssignmentFilter
	filter.CourseID = c.Query("curso_id")
	filter.TeacherID = c.Query("profesor_id")
	filter.Role = models.TeacherRole(c.Query("rol_profesor"))
	filter.Page, filter.PageSize = pageParams(c)
	filter.SortBy = c.Query("sort_by")
	filter.SortOrder = c.Query("sort_order")

	assignments, pagination, err := h.assignments.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assignments, pagination)
}

// Get godoc
// @Summary Get teacher assignment
// @Tags CursosProfesores
// @Produce json
// @Param id path string true "Assignment ID"
// @Success 200 {object} response.Envelope
// @Router /cursos-profesores/{id} [get]
func (h *TeacherAssignmentHandler) Get(c *gin.Context) {
	assignment, err := h.assignments.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assignment, nil)
}

// Create godoc
// @Summary Assign a teacher to a course
// @Tags CursosProfesores
// @Accept json
// @Produce json
// @Param payload body models.CreateTeacherAssignmentRequest true "Assignment payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /cursos-profesores [post]
func (h *TeacherAssignmentHandler) Create(c *gin.Context) {
	var req models.CreateTeacherAssignmentRequest
	if !bindJSON(c, &req) {
		return
	}
	assignment, err := h.assignments.Assign(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, assignment)
}

// ChangeRole godoc
// @Summary Change teacher role
// @Tags CursosProfesores
// @Accept json
// @Produce json
// @Param id path string true "Assignment ID"
// @Param payload body models.ChangeTeacherRoleRequest true "New role"
// @Success 200 {object} response.Envelope
// @Router /cursos-profesores/{id}/cambiar_rol [patch]
func (h *TeacherAssignmentHandler) ChangeRole(c *gin.Context) {
	var req models.ChangeTeacherRoleRequest
	if !bindJSON(c, &req) {
		return
	}
	assignment, err := h.assignments.ChangeRole(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assignment, nil)
}

// Delete godoc
// @Summary Delete teacher assignment
// @Tags CursosProfesores
// @Param id path string true "Assignment ID"
// @Success 204 {object} response.Envelope
// @Router /cursos-profesores/{id} [delete]
func (h *TeacherAssignmentHandler) Delete(c *gin.Context) {
	if err := h.assignments.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
