package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduquest/admin-api/internal/dto"
	"github.com/eduquest/admin-api/internal/middleware"
	"github.com/eduquest/admin-api/internal/models"
	"github.com/eduquest/admin-api/internal/service"
	"github.com/eduquest/admin-api/pkg/response"
)

type reportService interface {
	GeneralStatistics(ctx context.Context) (*models.GeneralStatistics, error)
	StudentReports(ctx context.Context) ([]models.StudentReport, error)
	CourseReports(ctx context.Context) ([]models.CourseReport, error)
	MonthlySummary(ctx context.Context) (*models.MonthlySummary, error)
}

type exportService interface {
	Export(ctx context.Context, req dto.ExportReportRequest) (*dto.ExportReportResponse, error)
	Download(token string) (*service.ExportFile, error)
}

// ReportHandler exposes the /reportes endpoints.
type ReportHandler struct {
	reports reportService
	exports exportService
}

// NewReportHandler constructs handler.
func NewReportHandler(reports reportService, exports exportService) *ReportHandler {
	return &ReportHandler{reports: reports, exports: exports}
}

// GeneralStatistics godoc
// @Summary System-wide gamification statistics
// @Description Mission figures degrade to zero when the mission schema is unavailable.
// @Tags Reportes
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reportes/estadisticas_generales [get]
func (h *ReportHandler) GeneralStatistics(c *gin.Context) {
	stats, err := h.reports.GeneralStatistics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil, middleware.ExtractMeta(c))
}

// StudentReports godoc
// @Summary Per-student points, level and activity
// @Tags Reportes
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reportes/reporte_estudiantes [get]
func (h *ReportHandler) StudentReports(c *gin.Context) {
	rows, err := h.reports.StudentReports(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetMeta(c, "total", len(rows))
	response.JSON(c, http.StatusOK, rows, nil, middleware.ExtractMeta(c))
}

// CourseReports godoc
// @Summary Per-course missions and completion rate
// @Tags Reportes
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reportes/reporte_cursos [get]
func (h *ReportHandler) CourseReports(c *gin.Context) {
	rows, err := h.reports.CourseReports(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetMeta(c, "total", len(rows))
	response.JSON(c, http.StatusOK, rows, nil, middleware.ExtractMeta(c))
}

// MonthlySummary godoc
// @Summary Current month summary
// @Tags Reportes
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reportes/resumen_mensual [get]
func (h *ReportHandler) MonthlySummary(c *gin.Context) {
	summary, err := h.reports.MonthlySummary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil, middleware.ExtractMeta(c))
}

// Export godoc
// @Summary Export a report as CSV or PDF
// @Tags Reportes
// @Accept json
// @Produce json
// @Param payload body dto.ExportReportRequest true "Export request"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /reportes/exportar [post]
func (h *ReportHandler) Export(c *gin.Context) {
	var req dto.ExportReportRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.exports.Export(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, res)
}

// Download godoc
// @Summary Download an exported report
// @Tags Reportes
// @Produce octet-stream
// @Param token path string true "Signed token"
// @Success 200 {file} file
// @Failure 401 {object} response.Envelope
// @Router /reportes/descargas/{token} [get]
func (h *ReportHandler) Download(c *gin.Context) {
	file, err := h.exports.Download(c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Name, file.ContentType, file.Data)
}
