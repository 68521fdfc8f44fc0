package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduquest/admin-api/internal/models"
	appErrors "github.com/eduquest/admin-api/pkg/errors"
)

type assignmentRepoStub struct {
	rows   map[string]*models.TeacherAssignment
	nextID int
}

func newAssignmentRepoStub() *assignmentRepoStub {
	return &assignmentRepoStub{rows: map[string]*models.TeacherAssignment{}}
}

func (s *assignmentRepoStub) List(ctx context.Context, filter models.TeacherAssignmentFilter) ([]models.TeacherAssignmentDetail, int, error) {
	var out []models.TeacherAssignmentDetail
	for _, row := range s.rows {
		out = append(out, models.TeacherAssignmentDetail{TeacherAssignment: *row, RoleLabel: row.Role.Label()})
	}
	return out, len(out), nil
}

func (s *assignmentRepoStub) FindDetailByID(ctx context.Context, id string) (*models.TeacherAssignmentDetail, error) {
	row, ok := s.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &models.TeacherAssignmentDetail{TeacherAssignment: *row, RoleLabel: row.Role.Label()}, nil
}

func (s *assignmentRepoStub) FindByCourseAndTeacher(ctx context.Context, exec sqlx.ExtContext, courseID, teacherID string) (*models.TeacherAssignment, error) {
	for _, row := range s.rows {
		if row.CourseID == courseID && row.TeacherID == teacherID {
			copy := *row
			return &copy, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *assignmentRepoStub) Create(ctx context.Context, exec sqlx.ExtContext, assignment *models.TeacherAssignment) error {
	s.nextID++
	assignment.ID = "a" + string(rune('0'+s.nextID))
	if assignment.Role == "" {
		assignment.Role = models.TeacherRoleLead
	}
	copy := *assignment
	s.rows[assignment.ID] = &copy
	return nil
}

func (s *assignmentRepoStub) UpdateRole(ctx context.Context, exec sqlx.ExtContext, id string, role models.TeacherRole) error {
	row, ok := s.rows[id]
	if !ok {
		return sql.ErrNoRows
	}
	row.Role = role
	return nil
}

func (s *assignmentRepoStub) Delete(ctx context.Context, id string) error {
	if _, ok := s.rows[id]; !ok {
		return sql.ErrNoRows
	}
	delete(s.rows, id)
	return nil
}

func newAssignmentFixture() (*TeacherAssignmentService, *assignmentRepoStub) {
	repo := newAssignmentRepoStub()
	users := &roleUserStub{users: map[string]models.UserRole{testStudentID: models.RoleStudent, testTeacherID: models.RoleTeacher}}
	courses := &activeCourseStub{active: map[string]bool{testCourseID: true}}
	return NewTeacherAssignmentService(repo, users, courses, nil, nil), repo
}

func TestTeacherAssignmentServiceAssignDefaultsToLead(t *testing.T) {
	svc, _ := newAssignmentFixture()

	detail, err := svc.Assign(context.Background(), models.CreateTeacherAssignmentRequest{CourseID: testCourseID, TeacherID: testTeacherID})
	require.NoError(t, err)
	assert.Equal(t, models.TeacherRoleLead, detail.Role)
	assert.Equal(t, "Titular", detail.RoleLabel)
}

func TestTeacherAssignmentServiceAssignConflict(t *testing.T) {
	svc, repo := newAssignmentFixture()
	repo.rows["a1"] = &models.TeacherAssignment{ID: "a1", CourseID: testCourseID, TeacherID: testTeacherID, Role: models.TeacherRoleAssistant}

	_, err := svc.Assign(context.Background(), models.CreateTeacherAssignmentRequest{CourseID: testCourseID, TeacherID: testTeacherID})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestTeacherAssignmentServiceAssignRequiresTeacher(t *testing.T) {
	svc, _ := newAssignmentFixture()

	_, err := svc.Assign(context.Background(), models.CreateTeacherAssignmentRequest{CourseID: testCourseID, TeacherID: testStudentID})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestTeacherAssignmentServiceChangeRole(t *testing.T) {
	svc, repo := newAssignmentFixture()
	repo.rows["a1"] = &models.TeacherAssignment{ID: "a1", CourseID: testCourseID, TeacherID: testTeacherID, Role: models.TeacherRoleLead}

	detail, err := svc.ChangeRole(context.Background(), "a1", models.ChangeTeacherRoleRequest{Role: models.TeacherRoleAssistant})
	require.NoError(t, err)
	assert.Equal(t, models.TeacherRoleAssistant, detail.Role)

	_, err = svc.ChangeRole(context.Background(), "a1", models.ChangeTeacherRoleRequest{Role: "suplente"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.ChangeRole(context.Background(), "missing", models.ChangeTeacherRoleRequest{Role: models.TeacherRoleLead})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
