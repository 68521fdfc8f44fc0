package models

import "time"

// RuleType enumerates the supported gamification rule kinds.
type RuleType string

const (
	RulePointsMissionComplete RuleType = "puntos_completar_mision"
	RulePointsLateDelivery    RuleType = "puntos_entrega_tardia"
	RulePointsEarlyDelivery   RuleType = "puntos_entrega_anticipada"
	RuleMultiplierEasy        RuleType = "multiplicador_dificultad_facil"
	RuleMultiplierMedium      RuleType = "multiplicador_dificultad_medio"
	RuleMultiplierHard        RuleType = "multiplicador_dificultad_dificil"
	RuleBonusFirstTime        RuleType = "puntos_bonificacion_primera_vez"
	RuleBonusStreak           RuleType = "puntos_bonificacion_racha"
)

var ruleTypeLabels = map[RuleType]string{
	RulePointsMissionComplete: "Puntos por Completar Misión",
	RulePointsLateDelivery:    "Puntos por Entrega Tardía",
	RulePointsEarlyDelivery:   "Puntos por Entrega Anticipada",
	RuleMultiplierEasy:        "Multiplicador Dificultad Fácil",
	RuleMultiplierMedium:      "Multiplicador Dificultad Medio",
	RuleMultiplierHard:        "Multiplicador Dificultad Difícil",
	RuleBonusFirstTime:        "Bonificación Primera Vez",
	RuleBonusStreak:           "Bonificación por Racha",
}

// Valid reports whether t is a known rule type.
func (t RuleType) Valid() bool {
	_, ok := ruleTypeLabels[t]
	return ok
}

// Label returns the display name of the rule type.
func (t RuleType) Label() string {
	if label, ok := ruleTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

// GamificationRule is a row of reglas_gamificacion. At most one active row per type.
type GamificationRule struct {
	ID          string    `db:"id" json:"id"`
	Type        RuleType  `db:"tipo_regla" json:"tipo_regla"`
	TypeLabel   string    `db:"-" json:"tipo_regla_display"`
	Value       float64   `db:"valor" json:"valor"`
	Description string    `db:"descripcion" json:"descripcion"`
	Active      bool      `db:"activo" json:"activo"`
	CreatedAt   time.Time `db:"fecha_creacion" json:"fecha_creacion"`
	UpdatedAt   time.Time `db:"fecha_actualizacion" json:"fecha_actualizacion"`
}

// GamificationRuleRequest is the create/update payload.
type GamificationRuleRequest struct {
	Type        RuleType `json:"tipo_regla" validate:"required"`
	Value       *float64 `json:"valor" validate:"required,gte=0"`
	Description string   `json:"descripcion"`
	Active      *bool    `json:"activo"`
}

// LevelThreshold is a row of configuracion_niveles. MaxPoints nil means unbounded.
type LevelThreshold struct {
	ID          string    `db:"id" json:"id"`
	Level       int       `db:"nivel" json:"nivel"`
	Name        string    `db:"nombre" json:"nombre"`
	MinPoints   int64     `db:"puntos_minimos" json:"puntos_minimos"`
	MaxPoints   *int64    `db:"puntos_maximos" json:"puntos_maximos"`
	Icon        string    `db:"icono" json:"icono"`
	Description string    `db:"descripcion" json:"descripcion"`
	Active      bool      `db:"activo" json:"activo"`
	CreatedAt   time.Time `db:"fecha_creacion" json:"fecha_creacion"`
	UpdatedAt   time.Time `db:"fecha_actualizacion" json:"fecha_actualizacion"`
}

// Contains reports whether points fall inside the threshold range.
func (l LevelThreshold) Contains(points int64) bool {
	if points < l.MinPoints {
		return false
	}
	return l.MaxPoints == nil || points <= *l.MaxPoints
}

// LevelThresholdRequest is the create/update payload.
type LevelThresholdRequest struct {
	Level       int    `json:"nivel" validate:"required,min=1,max=20"`
	Name        string `json:"nombre" validate:"required,max=100"`
	MinPoints   *int64 `json:"puntos_minimos" validate:"required,gte=0"`
	MaxPoints   *int64 `json:"puntos_maximos" validate:"omitempty,gte=0"`
	Icon        string `json:"icono" validate:"max=50"`
	Description string `json:"descripcion"`
	Active      *bool  `json:"activo"`
}

// ResolvedLevel is the outcome of resolving a point total against a threshold table.
type ResolvedLevel struct {
	Level        int    `json:"nivel"`
	Name         string `json:"nombre"`
	Icon         string `json:"icono"`
	PointsToNext int64  `json:"puntos_para_siguiente_nivel"`
	NextLevel    *int   `json:"siguiente_nivel,omitempty"`
}
