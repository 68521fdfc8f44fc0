package service

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/eduquest/admin-api/internal/models"
	"github.com/eduquest/admin-api/pkg/database"
	appErrors "github.com/eduquest/admin-api/pkg/errors"
)

const (
	unnamedStudent    = "Sin nombre"
	unassignedTeacher = "Sin asignar"
	missingCourseCode = "N/A"
)

type reportLocalStore interface {
	CountActiveUsers(ctx context.Context, role models.UserRole) (int64, error)
	CountActiveCourses(ctx context.Context) (int64, error)
	CountStudentsActiveSince(ctx context.Context, since time.Time) (int64, error)
	CountUsersCreatedSince(ctx context.Context, role models.UserRole, since time.Time) (int64, error)
	CountCoursesCreatedSince(ctx context.Context, since time.Time) (int64, error)
	TopCourses(ctx context.Context, limit int) ([]models.TopCourse, error)
	StudentActivities(ctx context.Context) ([]models.StudentActivity, error)
	CourseActivities(ctx context.Context) ([]models.CourseActivity, error)
}

type missionStatsReader interface {
	CountActiveMissions(ctx context.Context) (int64, error)
	SumPoints(ctx context.Context) (int64, error)
	CountAchievements(ctx context.Context) (int64, error)
	CountCompletedSince(ctx context.Context, since time.Time) (int64, error)
	TopStudents(ctx context.Context, limit int) ([]models.TopStudent, error)
	SumStudentPoints(ctx context.Context, studentID string) (int64, error)
	CountStudentCompleted(ctx context.Context, studentID string) (int64, error)
	CountStudentAchievements(ctx context.Context, studentID string) (int64, error)
	CourseStats(ctx context.Context, courseID string) (models.CourseMissionStats, error)
}

type thresholdSource interface {
	Thresholds(ctx context.Context) []models.LevelThreshold
}

// ReportServiceConfig tunes the ranking sizes of the statistics snapshot.
type ReportServiceConfig struct {
	TopCourses  int
	TopStudents int
}

// ReportServiceParams groups constructor dependencies.
type ReportServiceParams struct {
	Local    reportLocalStore
	Missions missionStatsReader
	Levels   thresholdSource
	Metrics  *MetricsService
	Logger   *zap.Logger
	Config   ReportServiceConfig
}

// ReportService composes gamification reports from local tables and the
// mission tracking schema. Mission figures degrade to zero when unavailable.
type ReportService struct {
	local    reportLocalStore
	missions missionStatsReader
	levels   thresholdSource
	metrics  *MetricsService
	logger   *zap.Logger
	now      func() time.Time
	cfg      ReportServiceConfig
}

// NewReportService constructs a ReportService with sane defaults.
func NewReportService(params ReportServiceParams) *ReportService {
	cfg := params.Config
	if cfg.TopCourses <= 0 {
		cfg.TopCourses = 5
	}
	if cfg.TopStudents <= 0 {
		cfg.TopStudents = 10
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		local:    params.Local,
		missions: params.Missions,
		levels:   params.Levels,
		metrics:  params.Metrics,
		logger:   logger,
		now:      time.Now,
		cfg:      cfg,
	}
}

// GeneralStatistics builds the estadisticas_generales snapshot.
func (s *ReportService) GeneralStatistics(ctx context.Context) (*models.GeneralStatistics, error) {
	now := s.now().UTC()
	monthStart := startOfMonth(now)
	fb := s.newFallbacks()

	stats := &models.GeneralStatistics{GeneratedAt: now}
	var err error
	if stats.TotalStudents, err = s.local.CountActiveUsers(ctx, models.RoleStudent); err != nil {
		return nil, internalReportError(err, "failed to count students")
	}
	if stats.TotalTeachers, err = s.local.CountActiveUsers(ctx, models.RoleTeacher); err != nil {
		return nil, internalReportError(err, "failed to count teachers")
	}
	if stats.TotalCourses, err = s.local.CountActiveCourses(ctx); err != nil {
		return nil, internalReportError(err, "failed to count courses")
	}
	if stats.ActiveStudentsThisMonth, err = s.local.CountStudentsActiveSince(ctx, monthStart); err != nil {
		return nil, internalReportError(err, "failed to count active students")
	}

	stats.TotalMissions = fb.count("misiones_activas", func() (int64, error) { return s.missions.CountActiveMissions(ctx) })
	stats.TotalPointsAwarded = fb.count("puntos_totales", func() (int64, error) { return s.missions.SumPoints(ctx) })
	stats.TotalAchievements = fb.count("logros", func() (int64, error) { return s.missions.CountAchievements(ctx) })
	stats.MissionsCompletedMonth = fb.count("misiones_completadas_mes", func() (int64, error) {
		return s.missions.CountCompletedSince(ctx, monthStart)
	})
	if stats.TotalStudents > 0 {
		stats.AveragePointsPerStudent = float64(stats.TotalPointsAwarded) / float64(stats.TotalStudents)
	}

	topCourses, err := s.local.TopCourses(ctx, s.cfg.TopCourses)
	if err != nil {
		fb.degrade("cursos_mas_activos", err)
		topCourses = nil
	}
	stats.TopCourses = nonNilCourses(topCourses)

	topStudents, err := s.missions.TopStudents(ctx, s.cfg.TopStudents)
	if err != nil {
		fb.degrade("estudiantes_top_puntos", err)
		topStudents = nil
	}
	for i := range topStudents {
		if topStudents[i].Name == nil || *topStudents[i].Name == "" {
			name := unnamedStudent
			topStudents[i].Name = &name
		}
	}
	stats.TopStudents = nonNilStudents(topStudents)
	return stats, nil
}

// StudentReports builds one row per active student with its resolved level.
func (s *ReportService) StudentReports(ctx context.Context) ([]models.StudentReport, error) {
	students, err := s.local.StudentActivities(ctx)
	if err != nil {
		return nil, internalReportError(err, "failed to load students")
	}
	thresholds := s.thresholds(ctx)
	fb := s.newFallbacks()

	report := make([]models.StudentReport, 0, len(students))
	for _, student := range students {
		points := fb.count("puntos_estudiante", func() (int64, error) { return s.missions.SumStudentPoints(ctx, student.ID) })
		level := ResolveLevel(points, thresholds)
		name := student.Username
		if student.FullName != nil && *student.FullName != "" {
			name = *student.FullName
		}
		report = append(report, models.StudentReport{
			StudentID:         student.ID,
			Name:              name,
			Email:             student.Email,
			TotalPoints:       points,
			Level:             level.Level,
			LevelName:         level.Name,
			LevelIcon:         level.Icon,
			PointsToNext:      level.PointsToNext,
			CompletedMissions: fb.count("misiones_estudiante", func() (int64, error) { return s.missions.CountStudentCompleted(ctx, student.ID) }),
			Achievements:      fb.count("logros_estudiante", func() (int64, error) { return s.missions.CountStudentAchievements(ctx, student.ID) }),
			EnrolledCourses:   student.EnrolledCourses,
			LastActivity:      student.LastAccess,
		})
	}
	return report, nil
}

// CourseReports builds one row per active course with mission figures.
func (s *ReportService) CourseReports(ctx context.Context) ([]models.CourseReport, error) {
	courses, err := s.local.CourseActivities(ctx)
	if err != nil {
		return nil, internalReportError(err, "failed to load courses")
	}
	fb := s.newFallbacks()

	report := make([]models.CourseReport, 0, len(courses))
	for _, course := range courses {
		stats, statsErr := s.missions.CourseStats(ctx, course.ID)
		if statsErr != nil {
			fb.degrade("misiones_curso", statsErr)
			stats = models.CourseMissionStats{}
		}
		row := models.CourseReport{
			CourseID:          course.ID,
			Name:              course.Name,
			Code:              course.Code,
			TeacherName:       unassignedTeacher,
			TotalStudents:     course.TotalStudents,
			ActiveMissions:    stats.ActiveMissions,
			CompletedMissions: stats.DistinctCompleted,
			AveragePoints:     round2(stats.AveragePoints),
			CompletionRate:    CompletionRate(stats.CompletedProgress, course.TotalStudents, stats.ActiveMissions),
		}
		if row.Code == "" {
			row.Code = missingCourseCode
		}
		if course.TeacherName != nil && *course.TeacherName != "" {
			row.TeacherName = *course.TeacherName
		}
		report = append(report, row)
	}
	return report, nil
}

// MonthlySummary counts sign-ups and activity since the first day of the month.
func (s *ReportService) MonthlySummary(ctx context.Context) (*models.MonthlySummary, error) {
	now := s.now().UTC()
	monthStart := startOfMonth(now)
	summary := &models.MonthlySummary{Month: int(now.Month()), Year: now.Year()}

	var err error
	if summary.NewStudents, err = s.local.CountUsersCreatedSince(ctx, models.RoleStudent, monthStart); err != nil {
		return nil, internalReportError(err, "failed to count new students")
	}
	if summary.NewCourses, err = s.local.CountCoursesCreatedSince(ctx, monthStart); err != nil {
		return nil, internalReportError(err, "failed to count new courses")
	}
	if summary.ActiveStudents, err = s.local.CountStudentsActiveSince(ctx, monthStart); err != nil {
		return nil, internalReportError(err, "failed to count active students")
	}
	return summary, nil
}

// CompletionRate is completed progress rows over the possible completions,
// as a percentage rounded to two decimals. Zero when either factor is zero.
func CompletionRate(completed, students, missions int64) float64 {
	possible := students * missions
	if students <= 0 || missions <= 0 {
		return 0
	}
	return round2(float64(completed) / float64(possible) * 100)
}

func (s *ReportService) thresholds(ctx context.Context) []models.LevelThreshold {
	if s.levels == nil {
		return BuiltinLevels()
	}
	return s.levels.Thresholds(ctx)
}

// reportFallbacks zeroes failed mission lookups and reports each source once per build.
type reportFallbacks struct {
	svc    *ReportService
	logged map[string]bool
}

func (s *ReportService) newFallbacks() *reportFallbacks {
	return &reportFallbacks{svc: s, logged: map[string]bool{}}
}

func (f *reportFallbacks) count(source string, fn func() (int64, error)) int64 {
	value, err := fn()
	if err != nil {
		f.degrade(source, err)
		return 0
	}
	return value
}

func (f *reportFallbacks) degrade(source string, err error) {
	f.svc.metrics.RecordReportFallback(source)
	if f.logged[source] {
		return
	}
	f.logged[source] = true
	f.svc.logger.Warn("report source unavailable, using zero value",
		zap.String("source", source),
		zap.Bool("missing_schema", database.IsUndefinedRelation(err)),
		zap.Error(err),
	)
}

func internalReportError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func nonNilCourses(v []models.TopCourse) []models.TopCourse {
	if v == nil {
		return []models.TopCourse{}
	}
	return v
}

func nonNilStudents(v []models.TopStudent) []models.TopStudent {
	if v == nil {
		return []models.TopStudent{}
	}
	return v
}
