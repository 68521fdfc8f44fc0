package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduquest/admin-api/internal/models"
	appErrors "github.com/eduquest/admin-api/pkg/errors"
)

type roleUserStub struct {
	users map[string]models.UserRole
}

func (s *roleUserStub) FindActiveWithRole(ctx context.Context, exec sqlx.ExtContext, id string, role models.UserRole) (*models.User, error) {
	if r, ok := s.users[id]; ok && r == role {
		name := "Usuario " + id
		return &models.User{ID: id, Username: id, FullName: &name, Role: r, Active: true}, nil
	}
	return nil, sql.ErrNoRows
}

type activeCourseStub struct {
	active map[string]bool
}

func (s *activeCourseStub) FindActive(ctx context.Context, exec sqlx.ExtContext, id string) (*models.Course, error) {
	if s.active[id] {
		return &models.Course{ID: id, Code: "HIS101", Name: "Historia", Active: true}, nil
	}
	return nil, sql.ErrNoRows
}

type enrollmentRepoStub struct {
	rows    map[string]*models.Enrollment
	nextID  int
	updates []models.EnrollmentStatus
}

func newEnrollmentRepoStub() *enrollmentRepoStub {
	return &enrollmentRepoStub{rows: map[string]*models.Enrollment{}}
}

func (s *enrollmentRepoStub) List(ctx context.Context, filter models.EnrollmentFilter) ([]models.EnrollmentDetail, int, error) {
	var out []models.EnrollmentDetail
	for _, row := range s.rows {
		out = append(out, models.EnrollmentDetail{Enrollment: *row})
	}
	return out, len(out), nil
}

func (s *enrollmentRepoStub) FindDetailByID(ctx context.Context, id string) (*models.EnrollmentDetail, error) {
	row, ok := s.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &models.EnrollmentDetail{Enrollment: *row, CourseCode: "HIS101"}, nil
}

func (s *enrollmentRepoStub) FindByStudentAndCourse(ctx context.Context, exec sqlx.ExtContext, studentID, courseID string) (*models.Enrollment, error) {
	for _, row := range s.rows {
		if row.StudentID == studentID && row.CourseID == courseID {
			copy := *row
			return &copy, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *enrollmentRepoStub) Create(ctx context.Context, exec sqlx.ExtContext, enrollment *models.Enrollment) error {
	s.nextID++
	enrollment.ID = "i" + string(rune('0'+s.nextID))
	if enrollment.Status == "" {
		enrollment.Status = models.EnrollmentStatusActive
	}
	copy := *enrollment
	s.rows[enrollment.ID] = &copy
	return nil
}

func (s *enrollmentRepoStub) UpdateStatus(ctx context.Context, exec sqlx.ExtContext, id string, status models.EnrollmentStatus, completedAt *time.Time) error {
	row, ok := s.rows[id]
	if !ok {
		return sql.ErrNoRows
	}
	row.Status = status
	row.CompletedAt = completedAt
	s.updates = append(s.updates, status)
	return nil
}

func (s *enrollmentRepoStub) Delete(ctx context.Context, id string) error {
	if _, ok := s.rows[id]; !ok {
		return sql.ErrNoRows
	}
	delete(s.rows, id)
	return nil
}

const (
	testCourseID  = "8a1f3c2e-0000-4000-8000-000000000001"
	testStudentID = "8a1f3c2e-0000-4000-8000-000000000002"
	testTeacherID = "8a1f3c2e-0000-4000-8000-000000000003"
)

func newEnrollmentFixture() (*EnrollmentService, *enrollmentRepoStub) {
	repo := newEnrollmentRepoStub()
	users := &roleUserStub{users: map[string]models.UserRole{testStudentID: models.RoleStudent, testTeacherID: models.RoleTeacher}}
	courses := &activeCourseStub{active: map[string]bool{testCourseID: true}}
	return NewEnrollmentService(repo, users, courses, nil, nil), repo
}

func TestEnrollmentServiceEnrollCreates(t *testing.T) {
	svc, repo := newEnrollmentFixture()

	detail, err := svc.Enroll(context.Background(), models.CreateEnrollmentRequest{StudentID: testStudentID, CourseID: testCourseID})
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentStatusActive, detail.Status)
	assert.Len(t, repo.rows, 1)
}

func TestEnrollmentServiceEnrollRejectsActiveDuplicate(t *testing.T) {
	svc, repo := newEnrollmentFixture()
	repo.rows["i1"] = &models.Enrollment{ID: "i1", StudentID: testStudentID, CourseID: testCourseID, Status: models.EnrollmentStatusActive}

	_, err := svc.Enroll(context.Background(), models.CreateEnrollmentRequest{StudentID: testStudentID, CourseID: testCourseID})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestEnrollmentServiceEnrollReactivatesWithdrawn(t *testing.T) {
	svc, repo := newEnrollmentFixture()
	repo.rows["i1"] = &models.Enrollment{ID: "i1", StudentID: testStudentID, CourseID: testCourseID, Status: models.EnrollmentStatusWithdrawn}

	detail, err := svc.Enroll(context.Background(), models.CreateEnrollmentRequest{StudentID: testStudentID, CourseID: testCourseID})
	require.NoError(t, err)
	assert.Equal(t, "i1", detail.ID)
	assert.Equal(t, models.EnrollmentStatusActive, detail.Status)
	assert.Len(t, repo.rows, 1)
}

func TestEnrollmentServiceEnrollRequiresStudentRole(t *testing.T) {
	svc, _ := newEnrollmentFixture()

	_, err := svc.Enroll(context.Background(), models.CreateEnrollmentRequest{StudentID: testTeacherID, CourseID: testCourseID})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestEnrollmentServiceEnrollRequiresActiveCourse(t *testing.T) {
	svc, _ := newEnrollmentFixture()

	_, err := svc.Enroll(context.Background(), models.CreateEnrollmentRequest{StudentID: testStudentID, CourseID: testTeacherID})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestEnrollmentServiceChangeStatusStampsCompletion(t *testing.T) {
	svc, repo := newEnrollmentFixture()
	fixed := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	repo.rows["i1"] = &models.Enrollment{ID: "i1", StudentID: testStudentID, CourseID: testCourseID, Status: models.EnrollmentStatusActive}

	detail, err := svc.ChangeStatus(context.Background(), "i1", models.ChangeEnrollmentStatusRequest{Status: models.EnrollmentStatusCompleted})
	require.NoError(t, err)
	require.NotNil(t, detail.CompletedAt)
	assert.Equal(t, fixed, *detail.CompletedAt)

	detail, err = svc.ChangeStatus(context.Background(), "i1", models.ChangeEnrollmentStatusRequest{Status: models.EnrollmentStatusWithdrawn})
	require.NoError(t, err)
	assert.Nil(t, detail.CompletedAt)
}

func TestEnrollmentServiceChangeStatusValidation(t *testing.T) {
	svc, _ := newEnrollmentFixture()

	_, err := svc.ChangeStatus(context.Background(), "i1", models.ChangeEnrollmentStatusRequest{Status: "pausado"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.ChangeStatus(context.Background(), "missing", models.ChangeEnrollmentStatusRequest{Status: models.EnrollmentStatusActive})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestEnrollmentServiceDeleteNotFound(t *testing.T) {
	svc, _ := newEnrollmentFixture()

	err := svc.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
