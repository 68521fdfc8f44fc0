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

const ruleColumns = `id, tipo_regla, valor, descripcion, activo, fecha_creacion, fecha_actualizacion`

const levelColumns = `id, nivel, nombre, puntos_minimos, puntos_maximos, icono, descripcion, activo, fecha_creacion, fecha_actualizacion`

// GamificationRepository persists reglas_gamificacion and configuracion_niveles.
type GamificationRepository struct {
	db *sqlx.DB
}

// NewGamificationRepository constructs the repository.
func NewGamificationRepository(db *sqlx.DB) *GamificationRepository {
	return &GamificationRepository{db: db}
}

func (r *GamificationRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// ListRules returns rules ordered by type, optionally filtered by active flag.
func (r *GamificationRepository) ListRules(ctx context.Context, active *bool) ([]models.GamificationRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM reglas_gamificacion`
	var args []interface{}
	if active != nil {
		query += ` WHERE activo = $1`
		args = append(args, *active)
	}
	query += ` ORDER BY tipo_regla, fecha_creacion DESC`

	var rules []models.GamificationRule
	if err := r.db.SelectContext(ctx, &rules, query, args...); err != nil {
		return nil, fmt.Errorf("list gamification rules: %w", err)
	}
	for i := range rules {
		rules[i].TypeLabel = rules[i].Type.Label()
	}
	return rules, nil
}

// FindRuleByID loads one rule.
func (r *GamificationRepository) FindRuleByID(ctx context.Context, id string) (*models.GamificationRule, error) {
	var rule models.GamificationRule
	if err := r.db.GetContext(ctx, &rule, `SELECT `+ruleColumns+` FROM reglas_gamificacion WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find gamification rule: %w", err)
	}
	rule.TypeLabel = rule.Type.Label()
	return &rule, nil
}

// DeactivateRulesOfType clears the active flag of every rule of the type except keepID.
func (r *GamificationRepository) DeactivateRulesOfType(ctx context.Context, exec sqlx.ExtContext, ruleType models.RuleType, keepID string) error {
	const query = `UPDATE reglas_gamificacion SET activo = FALSE, fecha_actualizacion = $3
        WHERE tipo_regla = $1 AND activo = TRUE AND id <> $2`
	if _, err := r.exec(exec).ExecContext(ctx, query, ruleType, keepID, time.Now().UTC()); err != nil {
		return fmt.Errorf("deactivate gamification rules: %w", err)
	}
	return nil
}

// CreateRule inserts a rule.
func (r *GamificationRepository) CreateRule(ctx context.Context, exec sqlx.ExtContext, rule *models.GamificationRule) error {
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	rule.CreatedAt = now
	rule.UpdatedAt = now
	const query = `INSERT INTO reglas_gamificacion (id, tipo_regla, valor, descripcion, activo, fecha_creacion, fecha_actualizacion)
        VALUES (:id, :tipo_regla, :valor, :descripcion, :activo, :fecha_creacion, :fecha_actualizacion)`
	if _, err := sqlx.NamedExecContext(ctx, r.exec(exec), query, rule); err != nil {
		return fmt.Errorf("create gamification rule: %w", err)
	}
	return nil
}

// UpdateRule persists the mutable fields of a rule.
func (r *GamificationRepository) UpdateRule(ctx context.Context, exec sqlx.ExtContext, rule *models.GamificationRule) error {
	rule.UpdatedAt = time.Now().UTC()
	const query = `UPDATE reglas_gamificacion SET tipo_regla = :tipo_regla, valor = :valor, descripcion = :descripcion,
        activo = :activo, fecha_actualizacion = :fecha_actualizacion WHERE id = :id`
	res, err := sqlx.NamedExecContext(ctx, r.exec(exec), query, rule)
	if err != nil {
		return fmt.Errorf("update gamification rule: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteRule removes a rule.
func (r *GamificationRepository) DeleteRule(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reglas_gamificacion WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete gamification rule: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListLevels returns thresholds ordered by level, optionally filtered by active flag.
func (r *GamificationRepository) ListLevels(ctx context.Context, active *bool) ([]models.LevelThreshold, error) {
	query := `SELECT ` + levelColumns + ` FROM configuracion_niveles`
	var args []interface{}
	if active != nil {
		query += ` WHERE activo = $1`
		args = append(args, *active)
	}
	query += ` ORDER BY nivel`

	var levels []models.LevelThreshold
	if err := r.db.SelectContext(ctx, &levels, query, args...); err != nil {
		return nil, fmt.Errorf("list level thresholds: %w", err)
	}
	return levels, nil
}

// FindLevelByID loads one threshold.
func (r *GamificationRepository) FindLevelByID(ctx context.Context, id string) (*models.LevelThreshold, error) {
	var level models.LevelThreshold
	if err := r.db.GetContext(ctx, &level, `SELECT `+levelColumns+` FROM configuracion_niveles WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find level threshold: %w", err)
	}
	return &level, nil
}

// LevelNumberTaken reports whether another threshold already uses the level number.
func (r *GamificationRepository) LevelNumberTaken(ctx context.Context, level int, excludeID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM configuracion_niveles WHERE nivel = $1`
	args := []interface{}{level}
	if excludeID != "" {
		query += ` AND id <> $2`
		args = append(args, excludeID)
	}
	query += `)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, args...); err != nil {
		return false, fmt.Errorf("check level number: %w", err)
	}
	return exists, nil
}

// CreateLevel inserts a threshold.
func (r *GamificationRepository) CreateLevel(ctx context.Context, level *models.LevelThreshold) error {
	if level.ID == "" {
		level.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	level.CreatedAt = now
	level.UpdatedAt = now
	const query = `INSERT INTO configuracion_niveles (id, nivel, nombre, puntos_minimos, puntos_maximos, icono, descripcion, activo, fecha_creacion, fecha_actualizacion)
        VALUES (:id, :nivel, :nombre, :puntos_minimos, :puntos_maximos, :icono, :descripcion, :activo, :fecha_creacion, :fecha_actualizacion)`
	if _, err := r.db.NamedExecContext(ctx, query, level); err != nil {
		return fmt.Errorf("create level threshold: %w", err)
	}
	return nil
}

// UpdateLevel persists a threshold.
func (r *GamificationRepository) UpdateLevel(ctx context.Context, level *models.LevelThreshold) error {
	level.UpdatedAt = time.Now().UTC()
	const query = `UPDATE configuracion_niveles SET nivel = :nivel, nombre = :nombre, puntos_minimos = :puntos_minimos,
        puntos_maximos = :puntos_maximos, icono = :icono, descripcion = :descripcion, activo = :activo,
        fecha_actualizacion = :fecha_actualizacion WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, level)
	if err != nil {
		return fmt.Errorf("update level threshold: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteLevel removes a threshold.
func (r *GamificationRepository) DeleteLevel(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM configuracion_niveles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete level threshold: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
