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

const enrollmentColumns = `i.id, i.estudiante_id, i.curso_id, i.fecha_inscripcion, i.estado, i.fecha_completado, i.fecha_actualizacion`

const enrollmentDetailSelect = `SELECT ` + enrollmentColumns + `,
        u.nombre_completo AS estudiante_nombre, u.email AS estudiante_email, c.nombre AS curso_nombre, c.codigo_curso AS curso_codigo`

const enrollmentJoins = `FROM inscripciones i
JOIN usuario u ON u.id = i.estudiante_id
JOIN cursos c ON c.id = i.curso_id`

var enrollmentSorts = map[string]string{
	"fecha_inscripcion": "i.fecha_inscripcion",
	"estado":            "i.estado",
	"estudiante_nombre": "u.nombre_completo",
	"curso_nombre":      "c.nombre",
}

// EnrollmentRepository handles persistence of inscripciones.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

func (r *EnrollmentRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// List returns enrollments filtered by course, student and state.
func (r *EnrollmentRepository) List(ctx context.Context, filter models.EnrollmentFilter) ([]models.EnrollmentDetail, int, error) {
	var conditions []string
	var args []interface{}

	if filter.CourseID != "" {
		conditions = append(conditions, fmt.Sprintf("i.curso_id = $%d", len(args)+1))
		args = append(args, filter.CourseID)
	}
	if filter.StudentID != "" {
		conditions = append(conditions, fmt.Sprintf("i.estudiante_id = $%d", len(args)+1))
		args = append(args, filter.StudentID)
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("i.estado = $%d", len(args)+1))
		args = append(args, filter.Status)
	}

	clause := ""
	if len(conditions) > 0 {
		clause = " WHERE " + strings.Join(conditions, " AND ")
	}

	order := orderClause(filter.SortBy, filter.SortOrder, "fecha_inscripcion", "DESC", enrollmentSorts)
	limit, offset := pageWindow(filter.Page, filter.PageSize)
	query := fmt.Sprintf("%s %s%s ORDER BY %s, i.id LIMIT %d OFFSET %d", enrollmentDetailSelect, enrollmentJoins, clause, order, limit, offset)

	var enrollments []models.EnrollmentDetail
	if err := r.db.SelectContext(ctx, &enrollments, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list enrollments: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+enrollmentJoins+clause, args...); err != nil {
		return nil, 0, fmt.Errorf("count enrollments: %w", err)
	}
	return enrollments, total, nil
}

// FindDetailByID returns an enrollment with student and course info.
func (r *EnrollmentRepository) FindDetailByID(ctx context.Context, id string) (*models.EnrollmentDetail, error) {
	query := enrollmentDetailSelect + " " + enrollmentJoins + " WHERE i.id = $1"
	var detail models.EnrollmentDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find enrollment: %w", err)
	}
	return &detail, nil
}

// FindByStudentAndCourse returns the single row for the pair whatever its state.
func (r *EnrollmentRepository) FindByStudentAndCourse(ctx context.Context, exec sqlx.ExtContext, studentID, courseID string) (*models.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM inscripciones i WHERE i.estudiante_id = $1 AND i.curso_id = $2`
	var enrollment models.Enrollment
	if err := sqlx.GetContext(ctx, r.exec(exec), &enrollment, query, studentID, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find enrollment by pair: %w", err)
	}
	return &enrollment, nil
}

// Create inserts a new enrollment.
func (r *EnrollmentRepository) Create(ctx context.Context, exec sqlx.ExtContext, enrollment *models.Enrollment) error {
	if enrollment.ID == "" {
		enrollment.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if enrollment.EnrolledAt.IsZero() {
		enrollment.EnrolledAt = now
	}
	enrollment.UpdatedAt = now
	if enrollment.Status == "" {
		enrollment.Status = models.EnrollmentStatusActive
	}
	const query = `INSERT INTO inscripciones (id, estudiante_id, curso_id, fecha_inscripcion, estado, fecha_completado, fecha_actualizacion)
        VALUES (:id, :estudiante_id, :curso_id, :fecha_inscripcion, :estado, :fecha_completado, :fecha_actualizacion)`
	if _, err := sqlx.NamedExecContext(ctx, r.exec(exec), query, enrollment); err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}
	return nil
}

// UpdateStatus transitions an enrollment and sets fecha_completado.
func (r *EnrollmentRepository) UpdateStatus(ctx context.Context, exec sqlx.ExtContext, id string, status models.EnrollmentStatus, completedAt *time.Time) error {
	const query = `UPDATE inscripciones SET estado = $2, fecha_completado = $3, fecha_actualizacion = $4 WHERE id = $1`
	if _, err := r.exec(exec).ExecContext(ctx, query, id, status, completedAt, time.Now().UTC()); err != nil {
		return fmt.Errorf("update enrollment status: %w", err)
	}
	return nil
}

// Delete removes an enrollment row.
func (r *EnrollmentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM inscripciones WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete enrollment: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
