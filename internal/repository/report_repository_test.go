package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduquest/admin-api/internal/models"
)

func TestReportRepositoryCountActiveUsers(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM usuario WHERE rol = $1 AND activo = TRUE")).
		WithArgs(models.RoleTeacher).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	total, err := repo.CountActiveUsers(context.Background(), models.RoleTeacher)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepositoryTopCoursesTieBreak(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	rows := sqlmock.NewRows([]string{"id", "nombre", "codigo_curso", "total_estudiantes"}).
		AddRow("a", "Arte", "ART1", 3).
		AddRow("b", "Biologia", "BIO1", 3)
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY total_estudiantes DESC, c.id ASC LIMIT $1")).
		WithArgs(5).
		WillReturnRows(rows)

	courses, err := repo.TopCourses(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "a", courses[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepositoryCourseActivitiesTeacherFallback(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	rows := sqlmock.NewRows([]string{"id", "nombre", "codigo_curso", "profesor_nombre", "total_estudiantes"}).
		AddRow("c1", "Historia", "HIS1", "Ana", 12).
		AddRow("c2", "Quimica", "QUI1", nil, 0)
	mock.ExpectQuery(regexp.QuoteMeta("CASE WHEN cp.rol_profesor = 'titular' THEN 0 ELSE 1 END")).WillReturnRows(rows)

	courses, err := repo.CourseActivities(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 2)
	require.NotNil(t, courses[0].TeacherName)
	assert.Equal(t, "Ana", *courses[0].TeacherName)
	assert.Nil(t, courses[1].TeacherName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepositoryCountStudentsActiveSince(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	since := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("ultimo_acceso >= $2")).
		WithArgs(models.RoleStudent, since).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	total, err := repo.CountStudentsActiveSince(context.Background(), since)
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
