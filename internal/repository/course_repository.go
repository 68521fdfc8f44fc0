package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/eduquest/admin-api/internal/models"
)

const courseColumns = `c.id, c.codigo_curso, c.nombre, c.descripcion, c.imagen_portada, c.fecha_inicio, c.fecha_fin, c.activo, c.fecha_creacion, c.fecha_actualizacion`

const activeStudentsSubquery = `(SELECT COUNT(*) FROM inscripciones i WHERE i.curso_id = c.id AND i.estado = 'activo') AS total_estudiantes`

var courseSorts = map[string]string{
	"fecha_creacion":    "c.fecha_creacion",
	"nombre":            "c.nombre",
	"codigo_curso":      "c.codigo_curso",
	"fecha_inicio":      "c.fecha_inicio",
	"total_estudiantes": "total_estudiantes",
}

// CourseRepository handles persistence of cursos.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs the repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// List returns courses with their active enrollment count.
func (r *CourseRepository) List(ctx context.Context, filter models.CourseFilter) ([]models.CourseSummary, int, error) {
	base := `FROM cursos c`
	var conditions []string
	var args []interface{}

	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("c.activo = $%d", len(args)+1))
		args = append(args, *filter.Active)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(c.nombre) LIKE $%d OR LOWER(c.codigo_curso) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}
	if len(conditions) > 0 {
		base += " WHERE " + strings.Join(conditions, " AND ")
	}

	order := orderClause(filter.SortBy, filter.SortOrder, "fecha_creacion", "DESC", courseSorts)
	limit, offset := pageWindow(filter.Page, filter.PageSize)
	query := fmt.Sprintf("SELECT %s, %s %s ORDER BY %s, c.id LIMIT %d OFFSET %d", courseColumns, activeStudentsSubquery, base, order, limit, offset)

	var courses []models.CourseSummary
	if err := r.db.SelectContext(ctx, &courses, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list courses: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count courses: %w", err)
	}
	return courses, total, nil
}

// FindByID returns a course with its active enrollment count.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.CourseSummary, error) {
	query := `SELECT ` + courseColumns + `, ` + activeStudentsSubquery + ` FROM cursos c WHERE c.id = $1`
	var course models.CourseSummary
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find course: %w", err)
	}
	return &course, nil
}

// FindActive returns an active course, optionally inside a transaction.
func (r *CourseRepository) FindActive(ctx context.Context, exec sqlx.ExtContext, id string) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM cursos c WHERE c.id = $1 AND c.activo = TRUE`
	var course models.Course
	if err := sqlx.GetContext(ctx, r.exec(exec), &course, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find active course: %w", err)
	}
	return &course, nil
}

// ExistsByCode checks codigo_curso uniqueness, ignoring excludeID when set.
func (r *CourseRepository) ExistsByCode(ctx context.Context, code, excludeID string) (bool, error) {
	query := "SELECT 1 FROM cursos WHERE UPPER(codigo_curso) = UPPER($1)"
	args := []interface{}{code}
	if excludeID != "" {
		query += fmt.Sprintf(" AND id <> $%d", len(args)+1)
		args = append(args, excludeID)
	}
	query += " LIMIT 1"
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check course code: %w", err)
	}
	return true, nil
}

// Create inserts a course.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	course.CreatedAt = now
	course.UpdatedAt = now
	const query = `INSERT INTO cursos (id, codigo_curso, nombre, descripcion, imagen_portada, fecha_inicio, fecha_fin, activo, fecha_creacion, fecha_actualizacion)
        VALUES (:id, :codigo_curso, :nombre, :descripcion, :imagen_portada, :fecha_inicio, :fecha_fin, :activo, :fecha_creacion, :fecha_actualizacion)`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// Update persists mutable course fields.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	course.UpdatedAt = time.Now().UTC()
	const query = `UPDATE cursos SET codigo_curso = :codigo_curso, nombre = :nombre, descripcion = :descripcion, imagen_portada = :imagen_portada,
        fecha_inicio = :fecha_inicio, fecha_fin = :fecha_fin, activo = :activo, fecha_actualizacion = :fecha_actualizacion WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	return nil
}

// Delete removes a course; enrollments and assignments cascade.
func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cursos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListEnrolledStudents returns the students with an active enrollment in the course.
func (r *CourseRepository) ListEnrolledStudents(ctx context.Context, courseID string) ([]models.EnrolledStudent, error) {
	const query = `SELECT u.id, u.nombre_completo AS nombre, u.email, u.username, i.fecha_inscripcion
        FROM inscripciones i JOIN usuario u ON u.id = i.estudiante_id
        WHERE i.curso_id = $1 AND i.estado = 'activo'
        ORDER BY i.fecha_inscripcion DESC, u.id`
	students := make([]models.EnrolledStudent, 0)
	if err := r.db.SelectContext(ctx, &students, query, courseID); err != nil {
		return nil, fmt.Errorf("list enrolled students: %w", err)
	}
	return students, nil
}

// ListStudents returns active enrollments of the course with nested student info.
func (r *CourseRepository) ListStudents(ctx context.Context, courseID string) ([]models.CourseStudent, error) {
	const query = `SELECT i.id, i.fecha_inscripcion, i.estado,
        u.id AS "estudiante.usuario_id", u.nombre_completo AS "estudiante.nombre_completo", u.email AS "estudiante.email",
        u.username AS "estudiante.username", u.rol AS "estudiante.rol", u.avatar_url AS "estudiante.avatar_url", u.activo AS "estudiante.activo"
        FROM inscripciones i JOIN usuario u ON u.id = i.estudiante_id
        WHERE i.curso_id = $1 AND i.estado = 'activo'
        ORDER BY i.fecha_inscripcion DESC, i.id`
	students := make([]models.CourseStudent, 0)
	if err := r.db.SelectContext(ctx, &students, query, courseID); err != nil {
		return nil, fmt.Errorf("list course students: %w", err)
	}
	return students, nil
}

// ListTeachers returns every assignment of the course with nested teacher info.
func (r *CourseRepository) ListTeachers(ctx context.Context, courseID string) ([]models.CourseTeacher, error) {
	const query = `SELECT cp.id, cp.rol_profesor, cp.fecha_asignacion,
        u.id AS "profesor.usuario_id", u.nombre_completo AS "profesor.nombre_completo", u.email AS "profesor.email",
        u.username AS "profesor.username", u.rol AS "profesor.rol", u.avatar_url AS "profesor.avatar_url", u.activo AS "profesor.activo"
        FROM cursos_profesores cp JOIN usuario u ON u.id = cp.profesor_id
        WHERE cp.curso_id = $1
        ORDER BY cp.fecha_asignacion DESC, cp.id`
	teachers := make([]models.CourseTeacher, 0)
	if err := r.db.SelectContext(ctx, &teachers, query, courseID); err != nil {
		return nil, fmt.Errorf("list course teachers: %w", err)
	}
	return teachers, nil
}
