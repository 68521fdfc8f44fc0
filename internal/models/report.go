package models

import "time"

// GeneralStatistics is the estadisticas_generales snapshot.
type GeneralStatistics struct {
	TotalStudents           int64        `json:"total_estudiantes"`
	TotalTeachers           int64        `json:"total_profesores"`
	TotalCourses            int64        `json:"total_cursos"`
	TotalMissions           int64        `json:"total_misiones"`
	TotalPointsAwarded      int64        `json:"total_puntos_otorgados"`
	AveragePointsPerStudent float64      `json:"promedio_puntos_por_estudiante"`
	TotalAchievements       int64        `json:"total_logros_obtenidos"`
	ActiveStudentsThisMonth int64        `json:"estudiantes_activos_mes"`
	MissionsCompletedMonth  int64        `json:"misiones_completadas_mes"`
	TopCourses              []TopCourse  `json:"cursos_mas_activos"`
	TopStudents             []TopStudent `json:"estudiantes_top_puntos"`
	GeneratedAt             time.Time    `json:"generado_en"`
}

// TopCourse ranks a course by active enrollments.
type TopCourse struct {
	ID            string `db:"id" json:"id"`
	Name          string `db:"nombre" json:"nombre"`
	Code          string `db:"codigo_curso" json:"codigo_curso"`
	TotalStudents int64  `db:"total_estudiantes" json:"total_estudiantes"`
}

// TopStudent ranks a student by total points.
type TopStudent struct {
	StudentID   string  `db:"estudiante_id" json:"estudiante_id"`
	Name        *string `db:"nombre" json:"nombre"`
	TotalPoints int64   `db:"puntos_totales" json:"puntos_totales"`
}

// StudentReport is one row of reporte_estudiantes.
type StudentReport struct {
	StudentID         string     `json:"estudiante_id"`
	Name              string     `json:"nombre"`
	Email             string     `json:"email"`
	TotalPoints       int64      `json:"puntos_totales"`
	Level             int        `json:"nivel_actual"`
	LevelName         string     `json:"nombre_nivel"`
	LevelIcon         string     `json:"icono_nivel"`
	PointsToNext      int64      `json:"puntos_para_siguiente_nivel"`
	CompletedMissions int64      `json:"misiones_completadas"`
	Achievements      int64      `json:"logros_obtenidos"`
	EnrolledCourses   int64      `json:"cursos_inscritos"`
	LastActivity      *time.Time `json:"ultima_actividad"`
}

// CourseReport is one row of reporte_cursos.
type CourseReport struct {
	CourseID          string  `json:"curso_id"`
	Name              string  `json:"nombre"`
	Code              string  `json:"codigo"`
	TeacherName       string  `json:"profesor_nombre"`
	TotalStudents     int64   `json:"total_estudiantes"`
	ActiveMissions    int64   `json:"misiones_activas"`
	CompletedMissions int64   `json:"misiones_completadas"`
	AveragePoints     float64 `json:"promedio_puntos_curso"`
	CompletionRate    float64 `json:"tasa_completacion"`
}

// MonthlySummary is the resumen_mensual payload.
type MonthlySummary struct {
	Month          int   `json:"mes"`
	Year           int   `json:"año"`
	NewStudents    int64 `json:"nuevos_estudiantes"`
	NewCourses     int64 `json:"nuevos_cursos"`
	ActiveStudents int64 `json:"estudiantes_activos"`
}

// StudentActivity is the local part of a student report row.
type StudentActivity struct {
	ID              string     `db:"id"`
	Username        string     `db:"username"`
	Email           string     `db:"email"`
	FullName        *string    `db:"nombre_completo"`
	LastAccess      *time.Time `db:"ultimo_acceso"`
	EnrolledCourses int64      `db:"cursos_inscritos"`
}

// CourseActivity is the local part of a course report row.
type CourseActivity struct {
	ID            string  `db:"id"`
	Name          string  `db:"nombre"`
	Code          string  `db:"codigo_curso"`
	TeacherName   *string `db:"profesor_nombre"`
	TotalStudents int64   `db:"total_estudiantes"`
}

// CourseMissionStats is the external part of a course report row.
type CourseMissionStats struct {
	ActiveMissions    int64
	DistinctCompleted int64
	CompletedProgress int64
	TotalPoints       int64
	AveragePoints     float64
}

// ReportKind selects the dataset of an export.
type ReportKind string

const (
	ReportKindStudents   ReportKind = "estudiantes"
	ReportKindCourses    ReportKind = "cursos"
	ReportKindStatistics ReportKind = "estadisticas"
)

// ReportFormat selects the export file format.
type ReportFormat string

const (
	ReportFormatCSV ReportFormat = "csv"
	ReportFormatPDF ReportFormat = "pdf"
)
