package dto

import (
	"time"

	"github.com/eduquest/admin-api/internal/models"
)

// ExportReportRequest captures POST /reportes/exportar.
type ExportReportRequest struct {
	Kind   models.ReportKind   `json:"tipo" validate:"required,oneof=estudiantes cursos estadisticas"`
	Format models.ReportFormat `json:"formato" validate:"required,oneof=csv pdf"`
}

// ExportReportResponse points at a generated report file.
type ExportReportResponse struct {
	Kind      models.ReportKind   `json:"tipo"`
	Format    models.ReportFormat `json:"formato"`
	FileName  string              `json:"archivo"`
	Rows      int                 `json:"filas"`
	URL       string              `json:"url"`
	ExpiresAt time.Time           `json:"expira_en"`
}
