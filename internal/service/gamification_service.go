package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/eduquest/admin-api/internal/models"
	"github.com/eduquest/admin-api/pkg/cache"
	"github.com/eduquest/admin-api/pkg/database"
	appErrors "github.com/eduquest/admin-api/pkg/errors"
)

type gamificationRepository interface {
	ListRules(ctx context.Context, active *bool) ([]models.GamificationRule, error)
	FindRuleByID(ctx context.Context, id string) (*models.GamificationRule, error)
	DeactivateRulesOfType(ctx context.Context, exec sqlx.ExtContext, ruleType models.RuleType, keepID string) error
	CreateRule(ctx context.Context, exec sqlx.ExtContext, rule *models.GamificationRule) error
	UpdateRule(ctx context.Context, exec sqlx.ExtContext, rule *models.GamificationRule) error
	DeleteRule(ctx context.Context, id string) error
	ListLevels(ctx context.Context, active *bool) ([]models.LevelThreshold, error)
	FindLevelByID(ctx context.Context, id string) (*models.LevelThreshold, error)
	LevelNumberTaken(ctx context.Context, level int, excludeID string) (bool, error)
	CreateLevel(ctx context.Context, level *models.LevelThreshold) error
	UpdateLevel(ctx context.Context, level *models.LevelThreshold) error
	DeleteLevel(ctx context.Context, id string) error
}

var (
	rulesCachePattern  = cache.Key("gamificacion", "reglas", "*")
	levelsCachePattern = cache.Key("gamificacion", "niveles", "*")
)

// DefaultRules is served when reglas_gamificacion holds no rows.
func DefaultRules() []models.GamificationRule {
	rules := []models.GamificationRule{
		{Type: models.RulePointsMissionComplete, Value: 100, Description: "Puntos otorgados al completar una misión exitosamente"},
		{Type: models.RulePointsLateDelivery, Value: 50, Description: "Puntos reducidos por entregar una misión después de la fecha límite"},
		{Type: models.RulePointsEarlyDelivery, Value: 150, Description: "Bonificación por entregar una misión antes de la fecha límite"},
		{Type: models.RuleMultiplierEasy, Value: 1, Description: "Multiplicador para misiones de dificultad fácil"},
		{Type: models.RuleMultiplierMedium, Value: 1.5, Description: "Multiplicador para misiones de dificultad media"},
		{Type: models.RuleMultiplierHard, Value: 2, Description: "Multiplicador para misiones de dificultad difícil"},
		{Type: models.RuleBonusFirstTime, Value: 50, Description: "Bonificación adicional por completar una misión por primera vez"},
		{Type: models.RuleBonusStreak, Value: 25, Description: "Bonificación por mantener una racha de misiones completadas consecutivas"},
	}
	for i := range rules {
		rules[i].TypeLabel = rules[i].Type.Label()
		rules[i].Active = true
	}
	return rules
}

// GamificationService manages rules and level thresholds.
type GamificationService struct {
	repo      gamificationRepository
	db        txProvider
	cache     *CacheService
	audits    auditWriter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewGamificationService constructs GamificationService.
func NewGamificationService(repo gamificationRepository, db txProvider, cacheSvc *CacheService, audits auditWriter, validate *validator.Validate, logger *zap.Logger) *GamificationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GamificationService{repo: repo, db: db, cache: cacheSvc, audits: audits, validator: validate, logger: logger}
}

// ListRules returns rules; an empty table yields DefaultRules unless only
// inactive rules were requested.
func (s *GamificationService) ListRules(ctx context.Context, active *bool) ([]models.GamificationRule, error) {
	key := cache.Key("gamificacion", "reglas", boolKey(active))
	var cached []models.GamificationRule
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	rules, err := s.repo.ListRules(ctx, active)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list gamification rules")
	}
	if len(rules) == 0 {
		if active != nil && !*active {
			return []models.GamificationRule{}, nil
		}
		return DefaultRules(), nil
	}
	s.cache.Set(ctx, key, rules, 0)
	return rules, nil
}

// GetRule returns one rule.
func (s *GamificationService) GetRule(ctx context.Context, id string) (*models.GamificationRule, error) {
	rule, err := s.repo.FindRuleByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "gamification rule not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load gamification rule")
	}
	rule.TypeLabel = rule.Type.Label()
	return rule, nil
}

// CreateRule inserts a rule. An active rule deactivates the others of its type.
func (s *GamificationService) CreateRule(ctx context.Context, req models.GamificationRuleRequest, actorID string, meta models.RequestMeta) (*models.GamificationRule, error) {
	if err := s.validateRule(req); err != nil {
		return nil, err
	}
	rule := &models.GamificationRule{ID: uuid.NewString(), Type: req.Type, Value: *req.Value, Description: req.Description, Active: true}
	if req.Active != nil {
		rule.Active = *req.Active
	}
	if err := s.saveRule(ctx, rule, true); err != nil {
		return nil, err
	}
	s.afterRuleWrite(ctx, rule, actorID, meta)
	return rule, nil
}

// UpdateRule replaces a rule's fields. Omitted activo keeps the current flag.
func (s *GamificationService) UpdateRule(ctx context.Context, id string, req models.GamificationRuleRequest, actorID string, meta models.RequestMeta) (*models.GamificationRule, error) {
	if err := s.validateRule(req); err != nil {
		return nil, err
	}
	rule, err := s.GetRule(ctx, id)
	if err != nil {
		return nil, err
	}
	rule.Type = req.Type
	rule.Value = *req.Value
	rule.Description = req.Description
	if req.Active != nil {
		rule.Active = *req.Active
	}
	if err := s.saveRule(ctx, rule, false); err != nil {
		return nil, err
	}
	s.afterRuleWrite(ctx, rule, actorID, meta)
	return rule, nil
}

// DeleteRule removes a rule.
func (s *GamificationService) DeleteRule(ctx context.Context, id string) error {
	if err := s.repo.DeleteRule(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "gamification rule not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete gamification rule")
	}
	s.cache.Invalidate(ctx, rulesCachePattern)
	return nil
}

func (s *GamificationService) validateRule(req models.GamificationRuleRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid gamification rule payload")
	}
	if !req.Type.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, "unknown tipo_regla")
	}
	return nil
}

func (s *GamificationService) saveRule(ctx context.Context, rule *models.GamificationRule, create bool) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Siblings go first so the partial unique index on active types never trips.
	if rule.Active {
		if err = s.repo.DeactivateRulesOfType(ctx, tx, rule.Type, rule.ID); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate sibling rules")
		}
	}
	if create {
		err = s.repo.CreateRule(ctx, tx, rule)
	} else {
		err = s.repo.UpdateRule(ctx, tx, rule)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "gamification rule not found")
		}
		if database.IsUniqueViolation(err) {
			return appErrors.Clone(appErrors.ErrConflict, "an active rule of this type already exists")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save gamification rule")
	}
	if err = tx.Commit(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit gamification rule")
	}
	rule.TypeLabel = rule.Type.Label()
	return nil
}

func (s *GamificationService) afterRuleWrite(ctx context.Context, rule *models.GamificationRule, actorID string, meta models.RequestMeta) {
	s.cache.Invalidate(ctx, rulesCachePattern)
	if s.audits == nil {
		return
	}
	payload, _ := json.Marshal(map[string]interface{}{"tipo_regla": rule.Type, "valor": rule.Value, "activo": rule.Active})
	if err := s.audits.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     optionalString(actorID),
		Action:     models.AuditActionGamificationEdit,
		Resource:   "reglas",
		ResourceID: &rule.ID,
		NewValues:  payload,
		IPAddress:  meta.IP,
		UserAgent:  meta.UserAgent,
	}); err != nil {
		s.logger.Warn("failed to record audit log", zap.String("action", models.AuditActionGamificationEdit), zap.Error(err))
	}
}

// ListLevels returns active thresholds, or BuiltinLevels when none are configured.
func (s *GamificationService) ListLevels(ctx context.Context) ([]models.LevelThreshold, error) {
	key := cache.Key("gamificacion", "niveles", "activos")
	var cached []models.LevelThreshold
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	active := true
	levels, err := s.repo.ListLevels(ctx, &active)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list level thresholds")
	}
	if len(levels) == 0 {
		return BuiltinLevels(), nil
	}
	s.cache.Set(ctx, key, levels, 0)
	return levels, nil
}

// Thresholds returns the table the level resolver should use. Lookup
// failures fall back to BuiltinLevels.
func (s *GamificationService) Thresholds(ctx context.Context) []models.LevelThreshold {
	levels, err := s.ListLevels(ctx)
	if err != nil {
		s.logger.Warn("level thresholds unavailable, using built-in table", zap.Error(err))
		return BuiltinLevels()
	}
	return levels
}

// GetLevel returns one threshold.
func (s *GamificationService) GetLevel(ctx context.Context, id string) (*models.LevelThreshold, error) {
	level, err := s.repo.FindLevelByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "level threshold not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load level threshold")
	}
	return level, nil
}

// CreateLevel inserts a threshold with a unique nivel.
func (s *GamificationService) CreateLevel(ctx context.Context, req models.LevelThresholdRequest) (*models.LevelThreshold, error) {
	if err := s.validateLevel(ctx, req, ""); err != nil {
		return nil, err
	}
	level := &models.LevelThreshold{Active: true}
	applyLevelRequest(level, req)
	if err := s.repo.CreateLevel(ctx, level); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "nivel already configured")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create level threshold")
	}
	s.cache.Invalidate(ctx, levelsCachePattern)
	return level, nil
}

// UpdateLevel replaces a threshold's fields.
func (s *GamificationService) UpdateLevel(ctx context.Context, id string, req models.LevelThresholdRequest) (*models.LevelThreshold, error) {
	level, err := s.GetLevel(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validateLevel(ctx, req, id); err != nil {
		return nil, err
	}
	applyLevelRequest(level, req)
	if err := s.repo.UpdateLevel(ctx, level); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "level threshold not found")
		}
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "nivel already configured")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update level threshold")
	}
	s.cache.Invalidate(ctx, levelsCachePattern)
	return level, nil
}

// DeleteLevel removes a threshold.
func (s *GamificationService) DeleteLevel(ctx context.Context, id string) error {
	if err := s.repo.DeleteLevel(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "level threshold not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete level threshold")
	}
	s.cache.Invalidate(ctx, levelsCachePattern)
	return nil
}

func (s *GamificationService) validateLevel(ctx context.Context, req models.LevelThresholdRequest, excludeID string) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid level threshold payload")
	}
	if req.MaxPoints != nil && *req.MaxPoints <= *req.MinPoints {
		return appErrors.Clone(appErrors.ErrValidation, "puntos_maximos must be greater than puntos_minimos")
	}
	taken, err := s.repo.LevelNumberTaken(ctx, req.Level, excludeID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check level number")
	}
	if taken {
		return appErrors.Clone(appErrors.ErrConflict, "nivel "+strconv.Itoa(req.Level)+" already configured")
	}
	return nil
}

func applyLevelRequest(level *models.LevelThreshold, req models.LevelThresholdRequest) {
	level.Level = req.Level
	level.Name = req.Name
	level.MinPoints = *req.MinPoints
	level.MaxPoints = req.MaxPoints
	level.Icon = req.Icon
	level.Description = req.Description
	if req.Active != nil {
		level.Active = *req.Active
	}
}

func boolKey(v *bool) string {
	if v == nil {
		return "todos"
	}
	return strconv.FormatBool(*v)
}
