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

var courseCols = []string{"id", "codigo_curso", "nombre", "descripcion", "imagen_portada", "fecha_inicio", "fecha_fin", "activo", "fecha_creacion", "fecha_actualizacion", "total_estudiantes"}

func TestCourseRepositoryListActive(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(courseCols).
		AddRow("c1", "MAT101", "Matemáticas", nil, nil, nil, nil, true, now, now, 12)
	mock.ExpectQuery(regexp.QuoteMeta("FROM cursos c WHERE c.activo = $1 ORDER BY c.fecha_creacion DESC, c.id LIMIT 20 OFFSET 0")).
		WithArgs(true).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM cursos c WHERE c.activo = $1")).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	active := true
	courses, total, err := repo.List(context.Background(), models.CourseFilter{Active: &active})
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, 12, courses[0].TotalStudents)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryFindActiveMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM cursos c WHERE c.id = $1 AND c.activo = TRUE")).
		WithArgs("c1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindActive(context.Background(), nil, "c1")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryExistsByCode(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM cursos WHERE UPPER(codigo_curso) = UPPER($1) AND id <> $2 LIMIT 1")).
		WithArgs("mat101", "c1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	exists, err := repo.ExistsByCode(context.Background(), "mat101", "c1")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryListStudentsNested(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "fecha_inscripcion", "estado", "estudiante.usuario_id", "estudiante.nombre_completo", "estudiante.email", "estudiante.username", "estudiante.rol", "estudiante.avatar_url", "estudiante.activo"}).
		AddRow("i1", now, "activo", "s1", "Luis", "luis@eduquest.app", "luis", "estudiante", nil, true)
	mock.ExpectQuery("FROM inscripciones i JOIN usuario u").WithArgs("c1").WillReturnRows(rows)

	students, err := repo.ListStudents(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "s1", students[0].Student.ID)
	assert.Equal(t, models.RoleStudent, students[0].Student.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryDeleteMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cursos WHERE id = $1")).WithArgs("c1").WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), "c1"), sql.ErrNoRows)
}
