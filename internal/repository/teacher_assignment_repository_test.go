package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduquest/admin-api/internal/models"
)

func TestTeacherAssignmentRepositoryListSetsRoleLabel(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTeacherAssignmentRepository(db)

	now := time.Now()
	cols := []string{"id", "curso_id", "profesor_id", "rol_profesor", "fecha_asignacion", "curso_nombre", "curso_codigo", "profesor_nombre", "profesor_email", "profesor_username"}
	mock.ExpectQuery(regexp.QuoteMeta("WHERE cp.profesor_id = $1 ORDER BY cp.fecha_asignacion DESC, cp.id LIMIT 20 OFFSET 0")).
		WithArgs("t1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("a1", "c1", "t1", "asistente", now, "Historia", "HIS1", "Ana", "ana@eduquest.app", "ana"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM cursos_profesores cp")).
		WithArgs("t1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	list, total, err := repo.List(context.Background(), models.TeacherAssignmentFilter{TeacherID: "t1"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Asistente", list[0].RoleLabel)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherAssignmentRepositoryCreateDefaultsToLead(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTeacherAssignmentRepository(db)

	mock.ExpectExec("INSERT INTO cursos_profesores").WillReturnResult(sqlmock.NewResult(1, 1))

	assignment := &models.TeacherAssignment{CourseID: "c1", TeacherID: "t1"}
	require.NoError(t, repo.Create(context.Background(), nil, assignment))
	assert.Equal(t, models.TeacherRoleLead, assignment.Role)
	assert.NotEmpty(t, assignment.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherAssignmentRepositoryUpdateRoleMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTeacherAssignmentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE cursos_profesores SET rol_profesor = $2 WHERE id = $1")).
		WithArgs("missing", models.TeacherRoleAssistant).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateRole(context.Background(), nil, "missing", models.TeacherRoleAssistant)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
