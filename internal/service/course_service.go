package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/eduquest/admin-api/internal/models"
	"github.com/eduquest/admin-api/pkg/database"
	appErrors "github.com/eduquest/admin-api/pkg/errors"
)

type courseRepository interface {
	List(ctx context.Context, filter models.CourseFilter) ([]models.CourseSummary, int, error)
	FindByID(ctx context.Context, id string) (*models.CourseSummary, error)
	ExistsByCode(ctx context.Context, code, excludeID string) (bool, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id string) error
	ListEnrolledStudents(ctx context.Context, courseID string) ([]models.EnrolledStudent, error)
	ListStudents(ctx context.Context, courseID string) ([]models.CourseStudent, error)
	ListTeachers(ctx context.Context, courseID string) ([]models.CourseTeacher, error)
}

// CourseService manages cursos.
type CourseService struct {
	repo      courseRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs a CourseService.
func NewCourseService(repo courseRepository, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, validator: validate, logger: logger}
}

// List returns courses with active enrollment counts.
func (s *CourseService) List(ctx context.Context, filter models.CourseFilter) ([]models.CourseSummary, *models.Pagination, error) {
	courses, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	return courses, paginate(filter.Page, filter.PageSize, total), nil
}

// Get returns a course with its enrolled students.
func (s *CourseService) Get(ctx context.Context, id string) (*models.CourseDetail, error) {
	summary, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	students, err := s.repo.ListEnrolledStudents(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrolled students")
	}
	return &models.CourseDetail{CourseSummary: *summary, EnrolledStudents: students}, nil
}

// Create validates and stores a course. codigo_curso is stored upper-cased.
func (s *CourseService) Create(ctx context.Context, req models.CourseRequest) (*models.Course, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	code := normalizeCourseCode(req.Code)
	if err := s.ensureCodeAvailable(ctx, code, ""); err != nil {
		return nil, err
	}

	course := &models.Course{
		Code:        code,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		CoverImage:  req.CoverImage,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Active:      true,
	}
	if req.Active != nil {
		course.Active = *req.Active
	}
	if err := s.repo.Create(ctx, course); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "course code already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}
	return course, nil
}

// Update replaces the mutable fields of a course.
func (s *CourseService) Update(ctx context.Context, id string, req models.CourseRequest) (*models.Course, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	existing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	code := normalizeCourseCode(req.Code)
	if err := s.ensureCodeAvailable(ctx, code, id); err != nil {
		return nil, err
	}

	course := existing.Course
	course.Code = code
	course.Name = strings.TrimSpace(req.Name)
	course.Description = req.Description
	course.CoverImage = req.CoverImage
	course.StartDate = req.StartDate
	course.EndDate = req.EndDate
	if req.Active != nil {
		course.Active = *req.Active
	}
	if err := s.repo.Update(ctx, &course); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "course code already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update course")
	}
	return &course, nil
}

// Delete removes a course.
func (s *CourseService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete course")
	}
	return nil
}

// Students lists the active enrollments of a course.
func (s *CourseService) Students(ctx context.Context, id string) ([]models.CourseStudent, error) {
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}
	students, err := s.repo.ListStudents(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list course students")
	}
	return students, nil
}

// Teachers lists the teacher assignments of a course.
func (s *CourseService) Teachers(ctx context.Context, id string) ([]models.CourseTeacher, error) {
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}
	teachers, err := s.repo.ListTeachers(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list course teachers")
	}
	return teachers, nil
}

func (s *CourseService) find(ctx context.Context, id string) (*models.CourseSummary, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	return course, nil
}

func (s *CourseService) validate(req models.CourseRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return appErrors.Clone(appErrors.ErrValidation, "fecha_fin must not be before fecha_inicio")
	}
	return nil
}

func (s *CourseService) ensureCodeAvailable(ctx context.Context, code, excludeID string) error {
	exists, err := s.repo.ExistsByCode(ctx, code, excludeID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check course code")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "course code already exists")
	}
	return nil
}

func normalizeCourseCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
