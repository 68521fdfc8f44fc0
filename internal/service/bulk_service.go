package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/eduquest/admin-api/internal/dto"
	"github.com/eduquest/admin-api/internal/models"
	"github.com/eduquest/admin-api/pkg/database"
	appErrors "github.com/eduquest/admin-api/pkg/errors"
)

const (
	bulkOperationEnroll = "enroll"
	bulkOperationAssign = "assign"

	msgCourseUnavailable  = "Curso no encontrado o inactivo"
	msgStudentUnavailable = "Estudiante no encontrado o inactivo"
	msgTeacherUnavailable = "Profesor no encontrado o inactivo"
	msgAlreadyEnrolled    = "Ya está inscrito activamente"
	msgAlreadyAssigned    = "Ya está asignado con el mismo rol"
	msgRelationExists     = "La relación ya existe"
)

type txProvider interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

type bulkEnrollmentStore interface {
	FindByStudentAndCourse(ctx context.Context, exec sqlx.ExtContext, studentID, courseID string) (*models.Enrollment, error)
	Create(ctx context.Context, exec sqlx.ExtContext, enrollment *models.Enrollment) error
	UpdateStatus(ctx context.Context, exec sqlx.ExtContext, id string, status models.EnrollmentStatus, completedAt *time.Time) error
}

type bulkAssignmentStore interface {
	FindByCourseAndTeacher(ctx context.Context, exec sqlx.ExtContext, courseID, teacherID string) (*models.TeacherAssignment, error)
	Create(ctx context.Context, exec sqlx.ExtContext, assignment *models.TeacherAssignment) error
	UpdateRole(ctx context.Context, exec sqlx.ExtContext, id string, role models.TeacherRole) error
}

type auditWriter interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// BulkService applies batches of enrollments or teacher assignments to one
// course inside a single transaction. Entries fail independently.
type BulkService struct {
	db          txProvider
	courses     activeCourseReader
	users       roleUserReader
	enrollments bulkEnrollmentStore
	assignments bulkAssignmentStore
	audits      auditWriter
	metrics     *MetricsService
	validator   *validator.Validate
	logger      *zap.Logger
}

// BulkServiceParams groups the dependencies of BulkService.
type BulkServiceParams struct {
	DB          txProvider
	Courses     activeCourseReader
	Users       roleUserReader
	Enrollments bulkEnrollmentStore
	Assignments bulkAssignmentStore
	Audits      auditWriter
	Metrics     *MetricsService
	Validator   *validator.Validate
	Logger      *zap.Logger
}

// NewBulkService constructs BulkService.
func NewBulkService(params BulkServiceParams) *BulkService {
	validate := params.Validator
	if validate == nil {
		validate = validator.New()
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BulkService{
		db:          params.DB,
		courses:     params.Courses,
		users:       params.Users,
		enrollments: params.Enrollments,
		assignments: params.Assignments,
		audits:      params.Audits,
		metrics:     params.Metrics,
		validator:   validate,
		logger:      logger,
	}
}

// EnrollStudents enrolls every student of the request into the course.
// Withdrawn or completed enrollments are reactivated in place.
func (s *BulkService) EnrollStudents(ctx context.Context, req dto.BulkEnrollRequest, actorID string, meta models.RequestMeta) (result *dto.BulkEnrollResult, err error) {
	if err = s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "curso_id and estudiantes_ids are required")
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	course, err := s.loadCourse(ctx, tx, req.CourseID)
	if err != nil {
		return nil, err
	}

	result = &dto.BulkEnrollResult{
		Course:   dto.BulkCourseRef{ID: course.ID, Name: course.Name, Code: course.Code},
		Enrolled: []dto.BulkEnrollSuccess{},
		Failures: []dto.BulkFailure{},
	}

	for _, studentID := range req.StudentIDs {
		success, failure, entryErr := s.enrollOne(ctx, tx, course.ID, studentID)
		if entryErr != nil {
			err = appErrors.Wrap(entryErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to process bulk enrollment")
			return nil, err
		}
		if failure != nil {
			result.Failures = append(result.Failures, *failure)
			s.metrics.RecordBulkEntry(bulkOperationEnroll, strings.ToLower(failure.Code))
			continue
		}
		result.Enrolled = append(result.Enrolled, *success)
		s.metrics.RecordBulkEntry(bulkOperationEnroll, success.Action)
	}

	if err = tx.Commit(); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit bulk enrollment")
		return nil, err
	}

	result.TotalEnrolled = len(result.Enrolled)
	result.TotalFailures = len(result.Failures)
	s.recordAudit(ctx, models.AuditActionBulkEnroll, course.ID, actorID, meta, result.TotalEnrolled, result.TotalFailures)
	s.logger.Info("bulk enrollment processed",
		zap.String("course_id", course.ID),
		zap.Int("enrolled", result.TotalEnrolled),
		zap.Int("failed", result.TotalFailures),
	)
	return result, nil
}

func (s *BulkService) enrollOne(ctx context.Context, tx *sqlx.Tx, courseID, studentID string) (*dto.BulkEnrollSuccess, *dto.BulkFailure, error) {
	student, err := s.users.FindActiveWithRole(ctx, tx, studentID, models.RoleStudent)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &dto.BulkFailure{SubjectID: studentID, Code: dto.BulkErrorNotFound, Error: msgStudentUnavailable}, nil
		}
		return nil, nil, err
	}
	name := student.DisplayName()

	existing, err := s.enrollments.FindByStudentAndCourse(ctx, tx, studentID, courseID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, nil, err
	}
	if existing != nil && existing.Status == models.EnrollmentStatusActive {
		return nil, &dto.BulkFailure{SubjectID: studentID, Name: name, Code: dto.BulkErrorAlreadyEnrolled, Error: msgAlreadyEnrolled}, nil
	}

	success := &dto.BulkEnrollSuccess{StudentID: studentID, StudentName: name}
	err = withSavepoint(ctx, tx, func() error {
		if existing != nil {
			success.ID = existing.ID
			success.Action = dto.BulkActionReactivated
			return s.enrollments.UpdateStatus(ctx, tx, existing.ID, models.EnrollmentStatusActive, nil)
		}
		enrollment := &models.Enrollment{StudentID: studentID, CourseID: courseID, Status: models.EnrollmentStatusActive}
		if err := s.enrollments.Create(ctx, tx, enrollment); err != nil {
			return err
		}
		success.ID = enrollment.ID
		success.Action = dto.BulkActionCreated
		return nil
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, &dto.BulkFailure{SubjectID: studentID, Name: name, Code: dto.BulkErrorAlreadyExists, Error: msgRelationExists}, nil
		}
		return nil, nil, err
	}
	return success, nil, nil
}

// AssignTeachers assigns every teacher of the request to the course.
// Existing assignments with a different role are updated in place.
func (s *BulkService) AssignTeachers(ctx context.Context, req dto.BulkAssignRequest, actorID string, meta models.RequestMeta) (result *dto.BulkAssignResult, err error) {
	if err = s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "curso_id and profesores are required")
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	course, err := s.loadCourse(ctx, tx, req.CourseID)
	if err != nil {
		return nil, err
	}

	result = &dto.BulkAssignResult{
		Course:   dto.BulkCourseRef{ID: course.ID, Name: course.Name, Code: course.Code},
		Assigned: []dto.BulkAssignSuccess{},
		Failures: []dto.BulkFailure{},
	}

	for _, entry := range req.Teachers {
		success, failure, entryErr := s.assignOne(ctx, tx, course.ID, entry)
		if entryErr != nil {
			err = appErrors.Wrap(entryErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to process bulk assignment")
			return nil, err
		}
		if failure != nil {
			result.Failures = append(result.Failures, *failure)
			s.metrics.RecordBulkEntry(bulkOperationAssign, strings.ToLower(failure.Code))
			continue
		}
		result.Assigned = append(result.Assigned, *success)
		s.metrics.RecordBulkEntry(bulkOperationAssign, success.Action)
	}

	if err = tx.Commit(); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit bulk assignment")
		return nil, err
	}

	result.TotalAssigned = len(result.Assigned)
	result.TotalFailures = len(result.Failures)
	s.recordAudit(ctx, models.AuditActionBulkAssign, course.ID, actorID, meta, result.TotalAssigned, result.TotalFailures)
	s.logger.Info("bulk assignment processed",
		zap.String("course_id", course.ID),
		zap.Int("assigned", result.TotalAssigned),
		zap.Int("failed", result.TotalFailures),
	)
	return result, nil
}

func (s *BulkService) assignOne(ctx context.Context, tx *sqlx.Tx, courseID string, entry dto.BulkTeacherEntry) (*dto.BulkAssignSuccess, *dto.BulkFailure, error) {
	teacher, err := s.users.FindActiveWithRole(ctx, tx, entry.TeacherID, models.RoleTeacher)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &dto.BulkFailure{SubjectID: entry.TeacherID, Code: dto.BulkErrorNotFound, Error: msgTeacherUnavailable}, nil
		}
		return nil, nil, err
	}
	name := teacher.DisplayName()

	existing, err := s.assignments.FindByCourseAndTeacher(ctx, tx, courseID, entry.TeacherID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, nil, err
	}
	if existing != nil && existing.Role == entry.Role {
		return nil, &dto.BulkFailure{SubjectID: entry.TeacherID, Name: name, Code: dto.BulkErrorAlreadyAssigned, Error: msgAlreadyAssigned}, nil
	}

	success := &dto.BulkAssignSuccess{TeacherID: entry.TeacherID, TeacherName: name, Role: entry.Role}
	err = withSavepoint(ctx, tx, func() error {
		if existing != nil {
			success.ID = existing.ID
			success.Action = dto.BulkActionUpdated
			return s.assignments.UpdateRole(ctx, tx, existing.ID, entry.Role)
		}
		assignment := &models.TeacherAssignment{CourseID: courseID, TeacherID: entry.TeacherID, Role: entry.Role}
		if err := s.assignments.Create(ctx, tx, assignment); err != nil {
			return err
		}
		success.ID = assignment.ID
		success.Action = dto.BulkActionCreated
		return nil
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, &dto.BulkFailure{SubjectID: entry.TeacherID, Name: name, Code: dto.BulkErrorAlreadyExists, Error: msgRelationExists}, nil
		}
		return nil, nil, err
	}
	return success, nil, nil
}

func (s *BulkService) loadCourse(ctx context.Context, tx *sqlx.Tx, courseID string) (*models.Course, error) {
	course, err := s.courses.FindActive(ctx, tx, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, msgCourseUnavailable)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	return course, nil
}

func (s *BulkService) recordAudit(ctx context.Context, action, courseID, actorID string, meta models.RequestMeta, applied, failed int) {
	if s.audits == nil {
		return
	}
	payload, _ := json.Marshal(map[string]int{"aplicados": applied, "errores": failed})
	log := &models.AuditLog{
		UserID:     optionalString(actorID),
		Action:     action,
		Resource:   "cursos",
		ResourceID: &courseID,
		NewValues:  payload,
		IPAddress:  meta.IP,
		UserAgent:  meta.UserAgent,
	}
	if err := s.audits.CreateAuditLog(ctx, log); err != nil {
		s.logger.Warn("failed to record audit log", zap.String("action", action), zap.Error(err))
	}
}

// withSavepoint scopes fn to a savepoint so a constraint violation only
// discards that entry and leaves the surrounding transaction usable.
func withSavepoint(ctx context.Context, tx *sqlx.Tx, fn func() error) error {
	if _, err := tx.ExecContext(ctx, "SAVEPOINT bulk_entry"); err != nil {
		return err
	}
	if err := fn(); err != nil {
		if _, rbErr := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT bulk_entry"); rbErr != nil {
			return rbErr
		}
		return err
	}
	_, err := tx.ExecContext(ctx, "RELEASE SAVEPOINT bulk_entry")
	return err
}
