package dto

import "github.com/eduquest/admin-api/internal/models"

// Per-entry outcome codes of the bulk endpoints.
const (
	BulkActionCreated     = "creado"
	BulkActionReactivated = "reactivado"
	BulkActionUpdated     = "actualizado"

	BulkErrorNotFound        = "NOT_FOUND"
	BulkErrorAlreadyEnrolled = "ALREADY_ENROLLED"
	BulkErrorAlreadyAssigned = "ALREADY_ASSIGNED"
	BulkErrorAlreadyExists   = "ALREADY_EXISTS"
)

// BulkEnrollRequest is the inscripcion_masiva payload.
type BulkEnrollRequest struct {
	CourseID   string   `json:"curso_id" validate:"required,uuid"`
	StudentIDs []string `json:"estudiantes_ids" validate:"required,min=1,dive,required,uuid"`
}

// BulkTeacherEntry is one teacher of an asignacion_masiva payload.
type BulkTeacherEntry struct {
	TeacherID string             `json:"profesor_id" validate:"required,uuid"`
	Role      models.TeacherRole `json:"rol_profesor" validate:"required,oneof=titular asistente"`
}

// BulkAssignRequest is the asignacion_masiva payload.
type BulkAssignRequest struct {
	CourseID string             `json:"curso_id" validate:"required,uuid"`
	Teachers []BulkTeacherEntry `json:"profesores" validate:"required,min=1,dive"`
}

// CourseStudentsRequest is the body of POST /cursos/:id/inscribir_estudiantes.
type CourseStudentsRequest struct {
	StudentIDs []string `json:"estudiantes_ids" validate:"required,min=1,dive,required,uuid"`
}

// CourseTeachersRequest is the body of POST /cursos/:id/asignar_profesores.
type CourseTeachersRequest struct {
	Teachers []BulkTeacherEntry `json:"profesores" validate:"required,min=1,dive"`
}

// BulkCourseRef identifies the target course in a bulk response.
type BulkCourseRef struct {
	ID   string `json:"id"`
	Name string `json:"nombre"`
	Code string `json:"codigo"`
}

// BulkEnrollSuccess is one processed enrollment.
type BulkEnrollSuccess struct {
	ID          string `json:"id"`
	StudentID   string `json:"estudiante_id"`
	StudentName string `json:"estudiante"`
	Action      string `json:"accion"`
}

// BulkAssignSuccess is one processed assignment.
type BulkAssignSuccess struct {
	ID          string             `json:"id"`
	TeacherID   string             `json:"profesor_id"`
	TeacherName string             `json:"profesor"`
	Role        models.TeacherRole `json:"rol_profesor"`
	Action      string             `json:"accion"`
}

// BulkFailure is one rejected entry. Name is empty when the user was not found.
type BulkFailure struct {
	SubjectID string `json:"id"`
	Name      string `json:"nombre,omitempty"`
	Code      string `json:"codigo"`
	Error     string `json:"error"`
}

// BulkEnrollResult is the inscripcion_masiva response body.
type BulkEnrollResult struct {
	Course        BulkCourseRef       `json:"curso"`
	Enrolled      []BulkEnrollSuccess `json:"inscritos"`
	Failures      []BulkFailure       `json:"errores"`
	TotalEnrolled int                 `json:"total_inscritos"`
	TotalFailures int                 `json:"total_errores"`
}

// Succeeded reports whether at least one entry was applied.
func (r BulkEnrollResult) Succeeded() bool { return r.TotalEnrolled > 0 }

// BulkAssignResult is the asignacion_masiva response body.
type BulkAssignResult struct {
	Course        BulkCourseRef       `json:"curso"`
	Assigned      []BulkAssignSuccess `json:"asignados"`
	Failures      []BulkFailure       `json:"errores"`
	TotalAssigned int                 `json:"total_asignados"`
	TotalFailures int                 `json:"total_errores"`
}

// Succeeded reports whether at least one entry was applied.
func (r BulkAssignResult) Succeeded() bool { return r.TotalAssigned > 0 }
