package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/eduquest/admin-api/internal/models"
	"github.com/eduquest/admin-api/pkg/database"
)

// MissionStatsRepository reads the mission tracking tables owned by the client service.
// Every method is a read and returns driver errors wrapped; ReportService turns
// failures, including a missing schema or table, into zero values.
type MissionStatsRepository struct {
	db          *sqlx.DB
	missions    string
	submissions string
	progress    string
	achievement string
	users       string
}

// NewMissionStatsRepository binds the repository to the external schema.
func NewMissionStatsRepository(db *sqlx.DB, schema string) *MissionStatsRepository {
	return &MissionStatsRepository{
		db:          db,
		missions:    database.QualifiedTable(schema, "misiones"),
		submissions: database.QualifiedTable(schema, "entregas_mision"),
		progress:    database.QualifiedTable(schema, "progreso_mision"),
		achievement: database.QualifiedTable(schema, "logros_estudiante"),
		users:       database.QualifiedTable(schema, "usuario"),
	}
}

// CountActiveMissions counts active missions across every course.
func (r *MissionStatsRepository) CountActiveMissions(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE activo = TRUE`, r.missions)); err != nil {
		return 0, fmt.Errorf("count active missions: %w", err)
	}
	return total, nil
}

// SumPoints sums positive points over every submission.
func (r *MissionStatsRepository) SumPoints(ctx context.Context) (int64, error) {
	query := fmt.Sprintf(`SELECT COALESCE(SUM(puntos_obtenidos), 0) FROM %s
        WHERE puntos_obtenidos IS NOT NULL AND puntos_obtenidos > 0`, r.submissions)
	var total int64
	if err := r.db.GetContext(ctx, &total, query); err != nil {
		return 0, fmt.Errorf("sum points: %w", err)
	}
	return total, nil
}

// CountAchievements counts unlocked achievements.
func (r *MissionStatsRepository) CountAchievements(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, r.achievement)); err != nil {
		return 0, fmt.Errorf("count achievements: %w", err)
	}
	return total, nil
}

// CountCompletedSince counts completed progress rows finished at or after since.
func (r *MissionStatsRepository) CountCompletedSince(ctx context.Context, since time.Time) (int64, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE completada = TRUE AND fecha_completado >= $1`, r.progress)
	var total int64
	if err := r.db.GetContext(ctx, &total, query, since); err != nil {
		return 0, fmt.Errorf("count completed missions since: %w", err)
	}
	return total, nil
}

// TopStudents ranks active students by positive points, ties by id ascending.
func (r *MissionStatsRepository) TopStudents(ctx context.Context, limit int) ([]models.TopStudent, error) {
	query := fmt.Sprintf(`SELECT e.estudiante_id, u.nombre_completo AS nombre, SUM(e.puntos_obtenidos) AS puntos_totales
        FROM %s e
        JOIN %s u ON u.id = e.estudiante_id
        WHERE e.puntos_obtenidos IS NOT NULL AND e.puntos_obtenidos > 0
          AND u.rol = 'estudiante' AND u.activo = TRUE
        GROUP BY e.estudiante_id, u.nombre_completo
        ORDER BY puntos_totales DESC, e.estudiante_id ASC
        LIMIT $1`, r.submissions, r.users)
	var students []models.TopStudent
	if err := r.db.SelectContext(ctx, &students, query, limit); err != nil {
		return nil, fmt.Errorf("top students: %w", err)
	}
	return students, nil
}

// SumStudentPoints sums a student's positive points.
func (r *MissionStatsRepository) SumStudentPoints(ctx context.Context, studentID string) (int64, error) {
	query := fmt.Sprintf(`SELECT COALESCE(SUM(puntos_obtenidos), 0) FROM %s
        WHERE estudiante_id = $1 AND puntos_obtenidos IS NOT NULL AND puntos_obtenidos > 0`, r.submissions)
	var total int64
	if err := r.db.GetContext(ctx, &total, query, studentID); err != nil {
		return 0, fmt.Errorf("sum student points: %w", err)
	}
	return total, nil
}

// CountStudentCompleted counts a student's completed missions.
func (r *MissionStatsRepository) CountStudentCompleted(ctx context.Context, studentID string) (int64, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE estudiante_id = $1 AND completada = TRUE`, r.progress)
	var total int64
	if err := r.db.GetContext(ctx, &total, query, studentID); err != nil {
		return 0, fmt.Errorf("count student completed missions: %w", err)
	}
	return total, nil
}

// CountStudentAchievements counts a student's unlocked achievements.
func (r *MissionStatsRepository) CountStudentAchievements(ctx context.Context, studentID string) (int64, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE estudiante_id = $1`, r.achievement)
	var total int64
	if err := r.db.GetContext(ctx, &total, query, studentID); err != nil {
		return 0, fmt.Errorf("count student achievements: %w", err)
	}
	return total, nil
}

// CourseStats aggregates the mission figures of one course in a single round trip.
func (r *MissionStatsRepository) CourseStats(ctx context.Context, courseID string) (models.CourseMissionStats, error) {
	query := fmt.Sprintf(`SELECT
        (SELECT COUNT(*) FROM %[1]s m WHERE m.curso_id = $1 AND m.activo = TRUE) AS misiones_activas,
        (SELECT COUNT(DISTINCT pm.mision_id) FROM %[2]s pm JOIN %[1]s m ON m.id = pm.mision_id
            WHERE m.curso_id = $1 AND pm.completada = TRUE) AS misiones_completadas,
        (SELECT COUNT(*) FROM %[2]s pm JOIN %[1]s m ON m.id = pm.mision_id
            WHERE m.curso_id = $1 AND pm.completada = TRUE) AS progresos_completados,
        (SELECT COALESCE(SUM(e.puntos_obtenidos), 0) FROM %[3]s e JOIN %[1]s m ON m.id = e.mision_id
            WHERE m.curso_id = $1 AND e.puntos_obtenidos IS NOT NULL AND e.puntos_obtenidos > 0) AS puntos_totales,
        (SELECT COALESCE(AVG(e.puntos_obtenidos), 0) FROM %[3]s e JOIN %[1]s m ON m.id = e.mision_id
            WHERE m.curso_id = $1 AND e.puntos_obtenidos IS NOT NULL AND e.puntos_obtenidos > 0) AS promedio_puntos`,
		r.missions, r.progress, r.submissions)

	var row struct {
		ActiveMissions    int64   `db:"misiones_activas"`
		DistinctCompleted int64   `db:"misiones_completadas"`
		CompletedProgress int64   `db:"progresos_completados"`
		TotalPoints       int64   `db:"puntos_totales"`
		AveragePoints     float64 `db:"promedio_puntos"`
	}
	if err := r.db.GetContext(ctx, &row, query, courseID); err != nil {
		return models.CourseMissionStats{}, fmt.Errorf("course mission stats: %w", err)
	}
	return models.CourseMissionStats{
		ActiveMissions:    row.ActiveMissions,
		DistinctCompleted: row.DistinctCompleted,
		CompletedProgress: row.CompletedProgress,
		TotalPoints:       row.TotalPoints,
		AveragePoints:     row.AveragePoints,
	}, nil
}
