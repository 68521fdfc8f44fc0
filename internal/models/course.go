package models

import "time"

// Course is a row of the cursos table.
type Course struct {
	ID          string     `db:"id" json:"id"`
	Code        string     `db:"codigo_curso" json:"codigo_curso"`
	Name        string     `db:"nombre" json:"nombre"`
	Description *string    `db:"descripcion" json:"descripcion"`
	CoverImage  *string    `db:"imagen_portada" json:"imagen_portada"`
	StartDate   *time.Time `db:"fecha_inicio" json:"fecha_inicio"`
	EndDate     *time.Time `db:"fecha_fin" json:"fecha_fin"`
	Active      bool       `db:"activo" json:"activo"`
	CreatedAt   time.Time  `db:"fecha_creacion" json:"fecha_creacion"`
	UpdatedAt   time.Time  `db:"fecha_actualizacion" json:"fecha_actualizacion"`
}

// CourseSummary adds the active enrollment count used by list views.
type CourseSummary struct {
	Course
	TotalStudents int `db:"total_estudiantes" json:"total_estudiantes"`
}

// CourseDetail is returned by the retrieve endpoint.
type CourseDetail struct {
	CourseSummary
	EnrolledStudents []EnrolledStudent `json:"estudiantes_inscritos"`
}

// EnrolledStudent is a compact student view inside a course detail.
type EnrolledStudent struct {
	ID         string    `db:"id" json:"id"`
	Name       *string   `db:"nombre" json:"nombre"`
	Email      string    `db:"email" json:"email"`
	Username   string    `db:"username" json:"username"`
	EnrolledAt time.Time `db:"fecha_inscripcion" json:"fecha_inscripcion"`
}

// CourseFilter captures list filters.
type CourseFilter struct {
	Active    *bool
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// CourseRequest is the create/update payload.
type CourseRequest struct {
	Code        string     `json:"codigo_curso" validate:"required,max=20"`
	Name        string     `json:"nombre" validate:"required,max=100"`
	Description *string    `json:"descripcion"`
	CoverImage  *string    `json:"imagen_portada" validate:"omitempty,max=255"`
	StartDate   *time.Time `json:"fecha_inicio"`
	EndDate     *time.Time `json:"fecha_fin"`
	Active      *bool      `json:"activo"`
}

// CourseMember is the nested user payload of /cursos/:id/estudiantes and /profesores.
type CourseMember struct {
	ID        string   `db:"usuario_id" json:"id"`
	FullName  *string  `db:"nombre_completo" json:"nombre_completo"`
	Email     string   `db:"email" json:"email"`
	Username  string   `db:"username" json:"username"`
	Role      UserRole `db:"rol" json:"rol"`
	AvatarURL *string  `db:"avatar_url" json:"avatar_url"`
	Active    bool     `db:"activo" json:"activo"`
}

// CourseStudent is one active enrollment of a course with its student.
type CourseStudent struct {
	ID         string           `db:"id" json:"id"`
	Student    CourseMember     `db:"estudiante" json:"estudiante"`
	EnrolledAt time.Time        `db:"fecha_inscripcion" json:"fecha_inscripcion"`
	Status     EnrollmentStatus `db:"estado" json:"estado"`
}

// CourseTeacher is one assignment of a course with its teacher.
type CourseTeacher struct {
	ID         string       `db:"id" json:"id"`
	Teacher    CourseMember `db:"profesor" json:"profesor"`
	Role       TeacherRole  `db:"rol_profesor" json:"rol_profesor"`
	AssignedAt time.Time    `db:"fecha_asignacion" json:"fecha_asignacion"`
}
