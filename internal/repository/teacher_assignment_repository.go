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

const assignmentColumns = `cp.id, cp.curso_id, cp.profesor_id, cp.rol_profesor, cp.fecha_asignacion`

const assignmentDetailSelect = `SELECT ` + assignmentColumns + `,
        c.nombre AS curso_nombre, c.codigo_curso AS curso_codigo,
        u.nombre_completo AS profesor_nombre, u.email AS profesor_email, u.username AS profesor_username`

const assignmentJoins = `FROM cursos_profesores cp
JOIN cursos c ON c.id = cp.curso_id
JOIN usuario u ON u.id = cp.profesor_id`

var assignmentSorts = map[string]string{
	"fecha_asignacion": "cp.fecha_asignacion",
	"rol_profesor":     "cp.rol_profesor",
	"profesor_nombre":  "u.nombre_completo",
	"curso_nombre":     "c.nombre",
}

// TeacherAssignmentRepository manages cursos_profesores rows.
type TeacherAssignmentRepository struct {
	db *sqlx.DB
}

// NewTeacherAssignmentRepository constructs the repository.
func NewTeacherAssignmentRepository(db *sqlx.DB) *TeacherAssignmentRepository {
	return &TeacherAssignmentRepository{db: db}
}

func (r *TeacherAssignmentRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// List returns assignments filtered by course, teacher and role.
func (r *TeacherAssignmentRepository) List(ctx context.Context, filter models.TeacherAssignmentFilter) ([]models.TeacherAssignmentDetail, int, error) {
	var conditions []string
	var args []interface{}

	if filter.CourseID != "" {
		conditions = append(conditions, fmt.Sprintf("cp.curso_id = $%d", len(args)+1))
		args = append(args, filter.CourseID)
	}
	if filter.TeacherID != "" {
		conditions = append(conditions, fmt.Sprintf("cp.profesor_id = $%d", len(args)+1))
		args = append(args, filter.TeacherID)
	}
	if filter.Role != "" {
		conditions = append(conditions, fmt.Sprintf("cp.rol_profesor = $%d", len(args)+1))
		args = append(args, filter.Role)
	}

	clause := ""
	if len(conditions) > 0 {
		clause = " WHERE " + strings.Join(conditions, " AND ")
	}

	order := orderClause(filter.SortBy, filter.SortOrder, "fecha_asignacion", "DESC", assignmentSorts)
	limit, offset := pageWindow(filter.Page, filter.PageSize)
	query := fmt.Sprintf("%s %s%s ORDER BY %s, cp.id LIMIT %d OFFSET %d", assignmentDetailSelect, assignmentJoins, clause, order, limit, offset)

	var assignments []models.TeacherAssignmentDetail
	if err := r.db.SelectContext(ctx, &assignments, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list teacher assignments: %w", err)
	}
	for i := range assignments {
		assignments[i].RoleLabel = assignments[i].Role.Label()
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+assignmentJoins+clause, args...); err != nil {
		return nil, 0, fmt.Errorf("count teacher assignments: %w", err)
	}
	return assignments, total, nil
}

// FindDetailByID returns one assignment with course and teacher info.
func (r *TeacherAssignmentRepository) FindDetailByID(ctx context.Context, id string) (*models.TeacherAssignmentDetail, error) {
	query := assignmentDetailSelect + " " + assignmentJoins + " WHERE cp.id = $1"
	var detail models.TeacherAssignmentDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find teacher assignment: %w", err)
	}
	detail.RoleLabel = detail.Role.Label()
	return &detail, nil
}

// FindByCourseAndTeacher returns the assignment of the pair if any.
func (r *TeacherAssignmentRepository) FindByCourseAndTeacher(ctx context.Context, exec sqlx.ExtContext, courseID, teacherID string) (*models.TeacherAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM cursos_profesores cp WHERE cp.curso_id = $1 AND cp.profesor_id = $2`
	var assignment models.TeacherAssignment
	if err := sqlx.GetContext(ctx, r.exec(exec), &assignment, query, courseID, teacherID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find teacher assignment by pair: %w", err)
	}
	return &assignment, nil
}

// Create inserts a new assignment.
func (r *TeacherAssignmentRepository) Create(ctx context.Context, exec sqlx.ExtContext, assignment *models.TeacherAssignment) error {
	if assignment.ID == "" {
		assignment.ID = uuid.NewString()
	}
	if assignment.AssignedAt.IsZero() {
		assignment.AssignedAt = time.Now().UTC()
	}
	if assignment.Role == "" {
		assignment.Role = models.TeacherRoleLead
	}
	const query = `INSERT INTO cursos_profesores (id, curso_id, profesor_id, rol_profesor, fecha_asignacion)
        VALUES (:id, :curso_id, :profesor_id, :rol_profesor, :fecha_asignacion)`
	if _, err := sqlx.NamedExecContext(ctx, r.exec(exec), query, assignment); err != nil {
		return fmt.Errorf("create teacher assignment: %w", err)
	}
	return nil
}

// UpdateRole changes the role of an assignment in place.
func (r *TeacherAssignmentRepository) UpdateRole(ctx context.Context, exec sqlx.ExtContext, id string, role models.TeacherRole) error {
	res, err := r.exec(exec).ExecContext(ctx, `UPDATE cursos_profesores SET rol_profesor = $2 WHERE id = $1`, id, role)
	if err != nil {
		return fmt.Errorf("update teacher role: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes an assignment.
func (r *TeacherAssignmentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cursos_profesores WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete teacher assignment: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
