package service

import (
	"context"
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/eduquest/admin-api/internal/dto"
	"github.com/eduquest/admin-api/internal/models"
	appErrors "github.com/eduquest/admin-api/pkg/errors"
	"github.com/eduquest/admin-api/pkg/export"
	"github.com/eduquest/admin-api/pkg/storage"
)

const exportDir = "reportes"

type reportSource interface {
	GeneralStatistics(ctx context.Context) (*models.GeneralStatistics, error)
	StudentReports(ctx context.Context) ([]models.StudentReport, error)
	CourseReports(ctx context.Context) ([]models.CourseReport, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Read(filename string) ([]byte, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
}

// ExportServiceParams groups constructor dependencies.
type ExportServiceParams struct {
	Reports   reportSource
	Storage   fileStorage
	Signer    *storage.SignedURLSigner
	CSV       csvRenderer
	PDF       pdfRenderer
	Validator *validator.Validate
	Logger    *zap.Logger
	Config    ExportConfig
}

// ExportFile is a stored report ready to be streamed.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ExportService renders report datasets and persists the resulting files.
type ExportService struct {
	reports   reportSource
	storage   fileStorage
	signer    *storage.SignedURLSigner
	csv       csvRenderer
	pdf       pdfRenderer
	validator *validator.Validate
	logger    *zap.Logger
	cfg       ExportConfig
	now       func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(params ExportServiceParams) *ExportService {
	cfg := params.Config
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	svc := &ExportService{
		reports:   params.Reports,
		storage:   params.Storage,
		signer:    params.Signer,
		csv:       params.CSV,
		pdf:       params.PDF,
		validator: params.Validator,
		logger:    params.Logger,
		cfg:       cfg,
		now:       time.Now,
	}
	if svc.csv == nil {
		svc.csv = export.NewCSVExporter()
	}
	if svc.pdf == nil {
		svc.pdf = export.NewPDFExporter()
	}
	if svc.validator == nil {
		svc.validator = validator.New()
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	return svc
}

// Export renders the requested report, stores it and returns a signed download URL.
func (s *ExportService) Export(ctx context.Context, req dto.ExportReportRequest) (*dto.ExportReportResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "tipo o formato de reporte inválido")
	}

	dataset, title, err := s.buildDataset(ctx, req.Kind)
	if err != nil {
		return nil, err
	}

	var payload []byte
	switch req.Format {
	case models.ReportFormatCSV:
		payload, err = s.csv.Render(dataset)
	case models.ReportFormatPDF:
		payload, err = s.pdf.Render(dataset, title)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report")
	}

	filename := s.buildFilename(req.Kind, req.Format)
	relPath, err := s.storage.Save(filename, payload)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store report")
	}

	token, expiresAt, err := s.signer.Generate(string(req.Kind), relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign report url")
	}

	s.logger.Info("report exported",
		zap.String("kind", string(req.Kind)),
		zap.String("format", string(req.Format)),
		zap.String("file", relPath),
		zap.Int("rows", len(dataset.Rows)),
	)

	return &dto.ExportReportResponse{
		Kind:      req.Kind,
		Format:    req.Format,
		FileName:  path.Base(relPath),
		Rows:      len(dataset.Rows),
		URL:       s.downloadURL(token),
		ExpiresAt: expiresAt,
	}, nil
}

// Download resolves a signed token to the stored file.
func (s *ExportService) Download(token string) (*ExportFile, error) {
	kind, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "enlace de descarga inválido o expirado")
	}
	if !strings.HasPrefix(path.Base(relPath), kind+"_") {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "enlace de descarga inválido o expirado")
	}
	data, err := s.storage.Read(relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "reporte no encontrado")
	}
	return &ExportFile{
		Name:        path.Base(relPath),
		ContentType: contentTypeFor(relPath),
		Data:        data,
	}, nil
}

// Cleanup removes files older than ttl (defaults to configured ResultTTL when ttl <= 0).
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	removed, err := s.storage.CleanupOlderThan(ttl)
	if err != nil {
		return nil, err
	}
	if len(removed) > 0 {
		s.logger.Info("expired reports removed", zap.Int("count", len(removed)))
	}
	return removed, nil
}

func (s *ExportService) downloadURL(token string) string {
	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}
	return fmt.Sprintf("%s/reportes/descargas/%s", prefix, token)
}

func (s *ExportService) buildFilename(kind models.ReportKind, format models.ReportFormat) string {
	timestamp := s.now().UTC().Format("20060102_150405.000")
	timestamp = strings.Replace(timestamp, ".", "_", 1)
	return path.Join(exportDir, fmt.Sprintf("%s_%s.%s", kind, timestamp, format))
}

func (s *ExportService) buildDataset(ctx context.Context, kind models.ReportKind) (export.Dataset, string, error) {
	switch kind {
	case models.ReportKindStudents:
		return s.buildStudentDataset(ctx)
	case models.ReportKindCourses:
		return s.buildCourseDataset(ctx)
	case models.ReportKindStatistics:
		return s.buildStatisticsDataset(ctx)
	default:
		return export.Dataset{}, "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("tipo de reporte no soportado: %s", kind))
	}
}

func (s *ExportService) buildStudentDataset(ctx context.Context) (export.Dataset, string, error) {
	reports, err := s.reports.StudentReports(ctx)
	if err != nil {
		return export.Dataset{}, "", err
	}
	headers := []string{"Estudiante", "Email", "Puntos", "Nivel", "Misiones completadas", "Logros", "Cursos", "Última actividad"}
	rows := make([]map[string]string, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, map[string]string{
			"Estudiante":           r.Name,
			"Email":                r.Email,
			"Puntos":               strconv.FormatInt(r.TotalPoints, 10),
			"Nivel":                fmt.Sprintf("%d - %s", r.Level, r.LevelName),
			"Misiones completadas": strconv.FormatInt(r.CompletedMissions, 10),
			"Logros":               strconv.FormatInt(r.Achievements, 10),
			"Cursos":               strconv.FormatInt(r.EnrolledCourses, 10),
			"Última actividad":     formatReportTime(r.LastActivity),
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}, "Reporte de estudiantes", nil
}

func (s *ExportService) buildCourseDataset(ctx context.Context) (export.Dataset, string, error) {
	reports, err := s.reports.CourseReports(ctx)
	if err != nil {
		return export.Dataset{}, "", err
	}
	headers := []string{"Curso", "Código", "Profesor", "Estudiantes", "Misiones activas", "Completadas", "Promedio", "Completación (%)"}
	rows := make([]map[string]string, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, map[string]string{
			"Curso":            r.Name,
			"Código":           r.Code,
			"Profesor":         r.TeacherName,
			"Estudiantes":      strconv.FormatInt(r.TotalStudents, 10),
			"Misiones activas": strconv.FormatInt(r.ActiveMissions, 10),
			"Completadas":      strconv.FormatInt(r.CompletedMissions, 10),
			"Promedio":         fmt.Sprintf("%.2f", r.AveragePoints),
			"Completación (%)": fmt.Sprintf("%.2f", r.CompletionRate),
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}, "Reporte de cursos", nil
}

func (s *ExportService) buildStatisticsDataset(ctx context.Context) (export.Dataset, string, error) {
	stats, err := s.reports.GeneralStatistics(ctx)
	if err != nil {
		return export.Dataset{}, "", err
	}
	metric := func(name, value string) map[string]string {
		return map[string]string{"Métrica": name, "Valor": value}
	}
	rows := []map[string]string{
		metric("Estudiantes activos", strconv.FormatInt(stats.TotalStudents, 10)),
		metric("Profesores activos", strconv.FormatInt(stats.TotalTeachers, 10)),
		metric("Cursos activos", strconv.FormatInt(stats.TotalCourses, 10)),
		metric("Misiones activas", strconv.FormatInt(stats.TotalMissions, 10)),
		metric("Puntos otorgados", strconv.FormatInt(stats.TotalPointsAwarded, 10)),
		metric("Promedio de puntos por estudiante", fmt.Sprintf("%.2f", stats.AveragePointsPerStudent)),
		metric("Logros obtenidos", strconv.FormatInt(stats.TotalAchievements, 10)),
		metric("Estudiantes activos en el mes", strconv.FormatInt(stats.ActiveStudentsThisMonth, 10)),
		metric("Misiones completadas en el mes", strconv.FormatInt(stats.MissionsCompletedMonth, 10)),
	}
	for i, course := range stats.TopCourses {
		rows = append(rows, metric(fmt.Sprintf("Curso top %d", i+1), fmt.Sprintf("%s (%d estudiantes)", course.Name, course.TotalStudents)))
	}
	for i, student := range stats.TopStudents {
		name := unnamedStudent
		if student.Name != nil {
			name = *student.Name
		}
		rows = append(rows, metric(fmt.Sprintf("Estudiante top %d", i+1), fmt.Sprintf("%s (%d pts)", name, student.TotalPoints)))
	}
	return export.Dataset{Headers: []string{"Métrica", "Valor"}, Rows: rows}, "Estadísticas generales", nil
}

func contentTypeFor(relPath string) string {
	switch strings.ToLower(path.Ext(relPath)) {
	case ".csv":
		return "text/csv; charset=utf-8"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

func formatReportTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
