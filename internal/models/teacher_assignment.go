package models

import "time"

// TeacherRole is the role a teacher holds inside a course.
type TeacherRole string

const (
	TeacherRoleLead      TeacherRole = "titular"
	TeacherRoleAssistant TeacherRole = "asistente"
)

// Valid reports whether r is a known teacher role.
func (r TeacherRole) Valid() bool {
	return r == TeacherRoleLead || r == TeacherRoleAssistant
}

// Label is the human readable role.
func (r TeacherRole) Label() string {
	switch r {
	case TeacherRoleLead:
		return "Titular"
	case TeacherRoleAssistant:
		return "Asistente"
	}
	return string(r)
}

// TeacherAssignment links one teacher to one course. Unique per (curso_id, profesor_id).
type TeacherAssignment struct {
	ID         string      `db:"id" json:"id"`
	CourseID   string      `db:"curso_id" json:"curso"`
	TeacherID  string      `db:"profesor_id" json:"profesor"`
	Role       TeacherRole `db:"rol_profesor" json:"rol_profesor"`
	AssignedAt time.Time   `db:"fecha_asignacion" json:"fecha_asignacion"`
}

// TeacherAssignmentDetail enriches the assignment for list/retrieve responses.
type TeacherAssignmentDetail struct {
	TeacherAssignment
	CourseName      string  `db:"curso_nombre" json:"curso_nombre"`
	CourseCode      string  `db:"curso_codigo" json:"curso_codigo"`
	TeacherName     *string `db:"profesor_nombre" json:"profesor_nombre"`
	TeacherEmail    string  `db:"profesor_email" json:"profesor_email"`
	TeacherUsername string  `db:"profesor_username" json:"profesor_username"`
	RoleLabel       string  `db:"-" json:"rol_profesor_display"`
}

// TeacherAssignmentFilter contains list filters.
type TeacherAssignmentFilter struct {
	CourseID  string
	TeacherID string
	Role      TeacherRole
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// CreateTeacherAssignmentRequest assigns one teacher.
type CreateTeacherAssignmentRequest struct {
	CourseID  string      `json:"curso" validate:"required,uuid"`
	TeacherID string      `json:"profesor" validate:"required,uuid"`
	Role      TeacherRole `json:"rol_profesor" validate:"omitempty,oneof=titular asistente"`
}

// ChangeTeacherRoleRequest is the cambiar_rol payload.
type ChangeTeacherRoleRequest struct {
	Role TeacherRole `json:"rol_profesor" validate:"required"`
}
