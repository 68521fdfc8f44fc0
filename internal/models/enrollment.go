package models

import "time"

// EnrollmentStatus is the lifecycle state of an enrollment.
type EnrollmentStatus string

const (
	EnrollmentStatusActive    EnrollmentStatus = "activo"
	EnrollmentStatusCompleted EnrollmentStatus = "completado"
	EnrollmentStatusWithdrawn EnrollmentStatus = "retirado"
)

// Valid reports whether s is a known enrollment state.
func (s EnrollmentStatus) Valid() bool {
	switch s {
	case EnrollmentStatusActive, EnrollmentStatusCompleted, EnrollmentStatusWithdrawn:
		return true
	}
	return false
}

// Enrollment links one student to one course. Unique per (estudiante_id, curso_id).
type Enrollment struct {
	ID          string           `db:"id" json:"id"`
	StudentID   string           `db:"estudiante_id" json:"estudiante"`
	CourseID    string           `db:"curso_id" json:"curso"`
	EnrolledAt  time.Time        `db:"fecha_inscripcion" json:"fecha_inscripcion"`
	Status      EnrollmentStatus `db:"estado" json:"estado"`
	CompletedAt *time.Time       `db:"fecha_completado" json:"fecha_completado"`
	UpdatedAt   time.Time        `db:"fecha_actualizacion" json:"fecha_actualizacion"`
}

// EnrollmentDetail enriches Enrollment with student and course info.
type EnrollmentDetail struct {
	Enrollment
	StudentName  *string `db:"estudiante_nombre" json:"estudiante_nombre"`
	StudentEmail string  `db:"estudiante_email" json:"estudiante_email"`
	CourseName   string  `db:"curso_nombre" json:"curso_nombre"`
	CourseCode   string  `db:"curso_codigo" json:"curso_codigo"`
}

// EnrollmentFilter provides filters for listing enrollments.
type EnrollmentFilter struct {
	StudentID string
	CourseID  string
	Status    EnrollmentStatus
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// CreateEnrollmentRequest enrolls one student.
type CreateEnrollmentRequest struct {
	StudentID string `json:"estudiante" validate:"required,uuid"`
	CourseID  string `json:"curso" validate:"required,uuid"`
}

// ChangeEnrollmentStatusRequest is the cambiar_estado payload.
type ChangeEnrollmentStatusRequest struct {
	Status EnrollmentStatus `json:"estado" validate:"required"`
}
