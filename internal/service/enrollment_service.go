package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/eduquest/admin-api/internal/models"
	"github.com/eduquest/admin-api/pkg/database"
	appErrors "github.com/eduquest/admin-api/pkg/errors"
)

type enrollmentRepository interface {
	List(ctx context.Context, filter models.EnrollmentFilter) ([]models.EnrollmentDetail, int, error)
	FindDetailByID(ctx context.Context, id string) (*models.EnrollmentDetail, error)
	FindByStudentAndCourse(ctx context.Context, exec sqlx.ExtContext, studentID, courseID string) (*models.Enrollment, error)
	Create(ctx context.Context, exec sqlx.ExtContext, enrollment *models.Enrollment) error
	UpdateStatus(ctx context.Context, exec sqlx.ExtContext, id string, status models.EnrollmentStatus, completedAt *time.Time) error
	Delete(ctx context.Context, id string) error
}

type roleUserReader interface {
	FindActiveWithRole(ctx context.Context, exec sqlx.ExtContext, id string, role models.UserRole) (*models.User, error)
}

type activeCourseReader interface {
	FindActive(ctx context.Context, exec sqlx.ExtContext, id string) (*models.Course, error)
}

// EnrollmentService orchestrates single enrollment workflows.
type EnrollmentService struct {
	repo      enrollmentRepository
	users     roleUserReader
	courses   activeCourseReader
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewEnrollmentService constructs EnrollmentService.
func NewEnrollmentService(repo enrollmentRepository, users roleUserReader, courses activeCourseReader, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{repo: repo, users: users, courses: courses, validator: validate, logger: logger, now: time.Now}
}

// List returns enrollments with pagination metadata.
func (s *EnrollmentService) List(ctx context.Context, filter models.EnrollmentFilter) ([]models.EnrollmentDetail, *models.Pagination, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "invalid estado filter")
	}
	enrollments, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrollments")
	}
	return enrollments, paginate(filter.Page, filter.PageSize, total), nil
}

// Get returns one enrollment.
func (s *EnrollmentService) Get(ctx context.Context, id string) (*models.EnrollmentDetail, error) {
	detail, err := s.repo.FindDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollment")
	}
	return detail, nil
}

// Enroll registers an active student in an active course. A withdrawn or
// completed row for the same pair is reactivated instead of duplicated.
func (s *EnrollmentService) Enroll(ctx context.Context, req models.CreateEnrollmentRequest) (*models.EnrollmentDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment payload")
	}
	if _, err := s.users.FindActiveWithRole(ctx, nil, req.StudentID, models.RoleStudent); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "user is not an active student")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if _, err := s.courses.FindActive(ctx, nil, req.CourseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "course not found or inactive")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	existing, err := s.repo.FindByStudentAndCourse(ctx, nil, req.StudentID, req.CourseID)
	switch {
	case err == nil && existing.Status == models.EnrollmentStatusActive:
		return nil, appErrors.Clone(appErrors.ErrConflict, "student already actively enrolled in course")
	case err == nil:
		if err := s.repo.UpdateStatus(ctx, nil, existing.ID, models.EnrollmentStatusActive, nil); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reactivate enrollment")
		}
		return s.Get(ctx, existing.ID)
	case !errors.Is(err, sql.ErrNoRows):
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check enrollment")
	}

	enrollment := &models.Enrollment{StudentID: req.StudentID, CourseID: req.CourseID, Status: models.EnrollmentStatusActive}
	if err := s.repo.Create(ctx, nil, enrollment); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "student already enrolled in course")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create enrollment")
	}
	return s.Get(ctx, enrollment.ID)
}

// ChangeStatus transitions an enrollment. completado stamps fecha_completado.
func (s *EnrollmentService) ChangeStatus(ctx context.Context, id string, req models.ChangeEnrollmentStatusRequest) (*models.EnrollmentDetail, error) {
	if !req.Status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "estado must be one of activo, completado, retirado")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	var completedAt *time.Time
	if req.Status == models.EnrollmentStatusCompleted {
		now := s.now().UTC()
		completedAt = &now
	}
	if err := s.repo.UpdateStatus(ctx, nil, id, req.Status, completedAt); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update enrollment status")
	}
	return s.Get(ctx, id)
}

// Delete removes an enrollment row.
func (s *EnrollmentService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete enrollment")
	}
	return nil
}
