package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/eduquest/admin-api/internal/models"
)

// ReportRepository reads the locally owned counts used by reports.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository constructs the repository.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// CountActiveUsers counts active users with the given role.
func (r *ReportRepository) CountActiveUsers(ctx context.Context, role models.UserRole) (int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM usuario WHERE rol = $1 AND activo = TRUE`, role); err != nil {
		return 0, fmt.Errorf("count active users: %w", err)
	}
	return total, nil
}

// CountActiveCourses counts active courses.
func (r *ReportRepository) CountActiveCourses(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM cursos WHERE activo = TRUE`); err != nil {
		return 0, fmt.Errorf("count active courses: %w", err)
	}
	return total, nil
}

// CountStudentsActiveSince counts active students whose last access is at or after since.
func (r *ReportRepository) CountStudentsActiveSince(ctx context.Context, since time.Time) (int64, error) {
	const query = `SELECT COUNT(*) FROM usuario WHERE rol = $1 AND activo = TRUE AND ultimo_acceso >= $2`
	var total int64
	if err := r.db.GetContext(ctx, &total, query, models.RoleStudent, since); err != nil {
		return 0, fmt.Errorf("count students active since: %w", err)
	}
	return total, nil
}

// CountUsersCreatedSince counts users of a role created at or after since.
func (r *ReportRepository) CountUsersCreatedSince(ctx context.Context, role models.UserRole, since time.Time) (int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM usuario WHERE rol = $1 AND fecha_creacion >= $2`, role, since); err != nil {
		return 0, fmt.Errorf("count new users: %w", err)
	}
	return total, nil
}

// CountCoursesCreatedSince counts courses created at or after since.
func (r *ReportRepository) CountCoursesCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM cursos WHERE fecha_creacion >= $1`, since); err != nil {
		return 0, fmt.Errorf("count new courses: %w", err)
	}
	return total, nil
}

// TopCourses ranks active courses by active enrollments, ties by id ascending.
func (r *ReportRepository) TopCourses(ctx context.Context, limit int) ([]models.TopCourse, error) {
	query := fmt.Sprintf(`SELECT c.id, c.nombre, c.codigo_curso, %s
        FROM cursos c WHERE c.activo = TRUE
        ORDER BY total_estudiantes DESC, c.id ASC LIMIT $1`, activeStudentsSubquery)
	var courses []models.TopCourse
	if err := r.db.SelectContext(ctx, &courses, query, limit); err != nil {
		return nil, fmt.Errorf("top courses: %w", err)
	}
	return courses, nil
}

// StudentActivities lists active students with their active enrollment count.
func (r *ReportRepository) StudentActivities(ctx context.Context) ([]models.StudentActivity, error) {
	const query = `SELECT u.id, u.username, u.email, u.nombre_completo, u.ultimo_acceso,
        (SELECT COUNT(*) FROM inscripciones i WHERE i.estudiante_id = u.id AND i.estado = 'activo') AS cursos_inscritos
        FROM usuario u WHERE u.rol = $1 AND u.activo = TRUE
        ORDER BY u.nombre_completo, u.id`
	var students []models.StudentActivity
	if err := r.db.SelectContext(ctx, &students, query, models.RoleStudent); err != nil {
		return nil, fmt.Errorf("student activities: %w", err)
	}
	return students, nil
}

// CourseActivities lists active courses with their lead teacher and active enrollments.
// The lead teacher is the earliest titular, falling back to the earliest assistant.
func (r *ReportRepository) CourseActivities(ctx context.Context) ([]models.CourseActivity, error) {
	query := fmt.Sprintf(`SELECT c.id, c.nombre, c.codigo_curso,
        (SELECT COALESCE(NULLIF(u.nombre_completo, ''), u.username)
            FROM cursos_profesores cp JOIN usuario u ON u.id = cp.profesor_id
            WHERE cp.curso_id = c.id
            ORDER BY CASE WHEN cp.rol_profesor = 'titular' THEN 0 ELSE 1 END, cp.fecha_asignacion
            LIMIT 1) AS profesor_nombre,
        %s
        FROM cursos c WHERE c.activo = TRUE
        ORDER BY c.nombre, c.id`, activeStudentsSubquery)
	var courses []models.CourseActivity
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, fmt.Errorf("course activities: %w", err)
	}
	return courses, nil
}
