package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/eduquest/admin-api/internal/models"
)

const visualColumns = `id, logo_url, nombre_institucion, color_primario, color_secundario, color_acento, color_fondo, activo, fecha_creacion, fecha_actualizacion`

// VisualConfigRepository persists configuracion_visual rows.
type VisualConfigRepository struct {
	db *sqlx.DB
}

// NewVisualConfigRepository constructs the repository.
func NewVisualConfigRepository(db *sqlx.DB) *VisualConfigRepository {
	return &VisualConfigRepository{db: db}
}

func (r *VisualConfigRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// ListActive returns the active configurations, newest first.
func (r *VisualConfigRepository) ListActive(ctx context.Context) ([]models.VisualConfig, error) {
	var configs []models.VisualConfig
	query := `SELECT ` + visualColumns + ` FROM configuracion_visual WHERE activo = TRUE ORDER BY fecha_creacion DESC`
	if err := r.db.SelectContext(ctx, &configs, query); err != nil {
		return nil, fmt.Errorf("list visual configs: %w", err)
	}
	return configs, nil
}

// FindActive returns the active configuration.
func (r *VisualConfigRepository) FindActive(ctx context.Context) (*models.VisualConfig, error) {
	var cfg models.VisualConfig
	query := `SELECT ` + visualColumns + ` FROM configuracion_visual WHERE activo = TRUE ORDER BY fecha_actualizacion DESC LIMIT 1`
	if err := r.db.GetContext(ctx, &cfg, query); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find active visual config: %w", err)
	}
	return &cfg, nil
}

// FindByID loads one configuration.
func (r *VisualConfigRepository) FindByID(ctx context.Context, id string) (*models.VisualConfig, error) {
	var cfg models.VisualConfig
	if err := r.db.GetContext(ctx, &cfg, `SELECT `+visualColumns+` FROM configuracion_visual WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find visual config: %w", err)
	}
	return &cfg, nil
}

// DeactivateOthers clears the active flag on every row except keepID.
func (r *VisualConfigRepository) DeactivateOthers(ctx context.Context, exec sqlx.ExtContext, keepID string) error {
	const query = `UPDATE configuracion_visual SET activo = FALSE, fecha_actualizacion = $2 WHERE activo = TRUE AND id <> $1`
	if _, err := r.exec(exec).ExecContext(ctx, query, keepID, time.Now().UTC()); err != nil {
		return fmt.Errorf("deactivate visual configs: %w", err)
	}
	return nil
}

// Create inserts a configuration.
func (r *VisualConfigRepository) Create(ctx context.Context, exec sqlx.ExtContext, cfg *models.VisualConfig) error {
	if cfg.ID == nil || *cfg.ID == "" {
		id := uuid.NewString()
		cfg.ID = &id
	}
	now := time.Now().UTC()
	cfg.CreatedAt = &now
	cfg.UpdatedAt = &now
	const query = `INSERT INTO configuracion_visual (id, logo_url, nombre_institucion, color_primario, color_secundario, color_acento, color_fondo, activo, fecha_creacion, fecha_actualizacion)
        VALUES (:id, :logo_url, :nombre_institucion, :color_primario, :color_secundario, :color_acento, :color_fondo, :activo, :fecha_creacion, :fecha_actualizacion)`
	if _, err := sqlx.NamedExecContext(ctx, r.exec(exec), query, cfg); err != nil {
		return fmt.Errorf("create visual config: %w", err)
	}
	return nil
}

// Update persists a configuration.
func (r *VisualConfigRepository) Update(ctx context.Context, exec sqlx.ExtContext, cfg *models.VisualConfig) error {
	now := time.Now().UTC()
	cfg.UpdatedAt = &now
	const query = `UPDATE configuracion_visual SET logo_url = :logo_url, nombre_institucion = :nombre_institucion,
        color_primario = :color_primario, color_secundario = :color_secundario, color_acento = :color_acento,
        color_fondo = :color_fondo, activo = :activo, fecha_actualizacion = :fecha_actualizacion WHERE id = :id`
	res, err := sqlx.NamedExecContext(ctx, r.exec(exec), query, cfg)
	if err != nil {
		return fmt.Errorf("update visual config: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a configuration.
func (r *VisualConfigRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM configuracion_visual WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete visual config: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
