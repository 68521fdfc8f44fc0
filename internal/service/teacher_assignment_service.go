package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/eduquest/admin-api/internal/models"
	"github.com/eduquest/admin-api/pkg/database"
	appErrors "github.com/eduquest/admin-api/pkg/errors"
)

type teacherAssignmentRepository interface {
	List(ctx context.Context, filter models.TeacherAssignmentFilter) ([]models.TeacherAssignmentDetail, int, error)
	FindDetailByID(ctx context.Context, id string) (*models.TeacherAssignmentDetail, error)
	FindByCourseAndTeacher(ctx context.Context, exec sqlx.ExtContext, courseID, teacherID string) (*models.TeacherAssignment, error)
	Create(ctx context.Context, exec sqlx.ExtContext, assignment *models.TeacherAssignment) error
	UpdateRole(ctx context.Context, exec sqlx.ExtContext, id string, role models.TeacherRole) error
	Delete(ctx context.Context, id string) error
}

// TeacherAssignmentService manages cursos_profesores.
type TeacherAssignmentService struct {
	repo      teacherAssignmentRepository
	users     roleUserReader
	courses   activeCourseReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeacherAssignmentService constructs the service.
func NewTeacherAssignmentService(repo teacherAssignmentRepository, users roleUserReader, courses activeCourseReader, validate *validator.Validate, logger *zap.Logger) *TeacherAssignmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherAssignmentService{repo: repo, users: users, courses: courses, validator: validate, logger: logger}
}

// List returns assignments with pagination metadata.
func (s *TeacherAssignmentService) List(ctx context.Context, filter models.TeacherAssignmentFilter) ([]models.TeacherAssignmentDetail, *models.Pagination, error) {
	if filter.Role != "" && !filter.Role.Valid() {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "invalid rol_profesor filter")
	}
	assignments, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teacher assignments")
	}
	return assignments, paginate(filter.Page, filter.PageSize, total), nil
}

// Get returns one assignment.
func (s *TeacherAssignmentService) Get(ctx context.Context, id string) (*models.TeacherAssignmentDetail, error) {
	detail, err := s.repo.FindDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher assignment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher assignment")
	}
	return detail, nil
}

// Assign links an active teacher to an active course.
func (s *TeacherAssignmentService) Assign(ctx context.Context, req models.CreateTeacherAssignmentRequest) (*models.TeacherAssignmentDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher assignment payload")
	}
	if _, err := s.users.FindActiveWithRole(ctx, nil, req.TeacherID, models.RoleTeacher); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "user is not an active teacher")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	if _, err := s.courses.FindActive(ctx, nil, req.CourseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "course not found or inactive")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	if _, err := s.repo.FindByCourseAndTeacher(ctx, nil, req.CourseID, req.TeacherID); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "teacher already assigned to course")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check teacher assignment")
	}

	assignment := &models.TeacherAssignment{CourseID: req.CourseID, TeacherID: req.TeacherID, Role: req.Role}
	if err := s.repo.Create(ctx, nil, assignment); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "teacher already assigned to course")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create teacher assignment")
	}
	return s.Get(ctx, assignment.ID)
}

// ChangeRole switches the role of an assignment.
func (s *TeacherAssignmentService) ChangeRole(ctx context.Context, id string, req models.ChangeTeacherRoleRequest) (*models.TeacherAssignmentDetail, error) {
	if !req.Role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "rol_profesor must be titular or asistente")
	}
	if err := s.repo.UpdateRole(ctx, nil, id, req.Role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher assignment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update teacher role")
	}
	return s.Get(ctx, id)
}

// Delete removes an assignment.
func (s *TeacherAssignmentService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "teacher assignment not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete teacher assignment")
	}
	return nil
}
