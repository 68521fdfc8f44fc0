package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/eduquest/admin-api/internal/models"
	"github.com/eduquest/admin-api/pkg/cache"
	appErrors "github.com/eduquest/admin-api/pkg/errors"
)

type visualConfigRepository interface {
	ListActive(ctx context.Context) ([]models.VisualConfig, error)
	FindActive(ctx context.Context) (*models.VisualConfig, error)
	FindByID(ctx context.Context, id string) (*models.VisualConfig, error)
	DeactivateOthers(ctx context.Context, exec sqlx.ExtContext, keepID string) error
	Create(ctx context.Context, exec sqlx.ExtContext, cfg *models.VisualConfig) error
	Update(ctx context.Context, exec sqlx.ExtContext, cfg *models.VisualConfig) error
	Delete(ctx context.Context, id string) error
}

var (
	activeVisualKey    = cache.Key("configuracion_visual", "activa")
	visualCachePattern = cache.Key("configuracion_visual", "*")
)

// VisualConfigService manages the branding singleton.
type VisualConfigService struct {
	repo      visualConfigRepository
	db        txProvider
	cache     *CacheService
	audits    auditWriter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewVisualConfigService constructs VisualConfigService.
func NewVisualConfigService(repo visualConfigRepository, db txProvider, cacheSvc *CacheService, audits auditWriter, validate *validator.Validate, logger *zap.Logger) *VisualConfigService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VisualConfigService{repo: repo, db: db, cache: cacheSvc, audits: audits, validator: validate, logger: logger}
}

// List returns the active configurations.
func (s *VisualConfigService) List(ctx context.Context) ([]models.VisualConfig, error) {
	configs, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list visual configurations")
	}
	return configs, nil
}

// Active returns the active configuration or the built-in defaults.
func (s *VisualConfigService) Active(ctx context.Context) (*models.VisualConfig, error) {
	var cached models.VisualConfig
	if s.cache.Get(ctx, activeVisualKey, &cached) {
		return &cached, nil
	}

	cfg, err := s.repo.FindActive(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			defaults := models.DefaultVisualConfig()
			return &defaults, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load active visual configuration")
	}
	s.cache.Set(ctx, activeVisualKey, cfg, 0)
	return cfg, nil
}

// Get returns one configuration.
func (s *VisualConfigService) Get(ctx context.Context, id string) (*models.VisualConfig, error) {
	cfg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "visual configuration not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load visual configuration")
	}
	return cfg, nil
}

// Create stores a new configuration, always active, and deactivates the rest.
func (s *VisualConfigService) Create(ctx context.Context, req models.VisualConfigRequest, actorID string, meta models.RequestMeta) (*models.VisualConfig, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid visual configuration payload")
	}
	cfg := models.DefaultVisualConfig()
	id := uuid.NewString()
	cfg.ID = &id
	cfg.LogoURL = nil
	applyVisualRequest(&cfg, req)
	cfg.Active = true

	if err := s.save(ctx, &cfg, true); err != nil {
		return nil, err
	}
	s.afterWrite(ctx, &cfg, actorID, meta)
	return &cfg, nil
}

// Update applies a partial update. Activating it deactivates the rest.
func (s *VisualConfigService) Update(ctx context.Context, id string, req models.VisualConfigRequest, actorID string, meta models.RequestMeta) (*models.VisualConfig, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid visual configuration payload")
	}
	cfg, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	applyVisualRequest(cfg, req)

	if err := s.save(ctx, cfg, false); err != nil {
		return nil, err
	}
	s.afterWrite(ctx, cfg, actorID, meta)
	return cfg, nil
}

// Delete removes a configuration.
func (s *VisualConfigService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "visual configuration not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete visual configuration")
	}
	s.cache.Invalidate(ctx, visualCachePattern)
	return nil
}

func (s *VisualConfigService) save(ctx context.Context, cfg *models.VisualConfig, create bool) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if cfg.Active {
		if err = s.repo.DeactivateOthers(ctx, tx, *cfg.ID); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate visual configurations")
		}
	}
	if create {
		err = s.repo.Create(ctx, tx, cfg)
	} else {
		err = s.repo.Update(ctx, tx, cfg)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "visual configuration not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save visual configuration")
	}
	if err = tx.Commit(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit visual configuration")
	}
	return nil
}

func (s *VisualConfigService) afterWrite(ctx context.Context, cfg *models.VisualConfig, actorID string, meta models.RequestMeta) {
	s.cache.Invalidate(ctx, visualCachePattern)
	if s.audits == nil || !cfg.Active {
		return
	}
	payload, _ := json.Marshal(map[string]interface{}{"nombre_institucion": cfg.InstitutionName, "color_primario": cfg.PrimaryColor})
	if err := s.audits.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     optionalString(actorID),
		Action:     models.AuditActionVisualActivate,
		Resource:   "configuracion_visual",
		ResourceID: cfg.ID,
		NewValues:  payload,
		IPAddress:  meta.IP,
		UserAgent:  meta.UserAgent,
	}); err != nil {
		s.logger.Warn("failed to record audit log", zap.String("action", models.AuditActionVisualActivate), zap.Error(err))
	}
}

func applyVisualRequest(cfg *models.VisualConfig, req models.VisualConfigRequest) {
	if req.LogoURL != nil {
		cfg.LogoURL = optionalString(*req.LogoURL)
	}
	if req.InstitutionName != nil && *req.InstitutionName != "" {
		cfg.InstitutionName = *req.InstitutionName
	}
	if req.PrimaryColor != nil && *req.PrimaryColor != "" {
		cfg.PrimaryColor = *req.PrimaryColor
	}
	if req.SecondaryColor != nil && *req.SecondaryColor != "" {
		cfg.SecondaryColor = *req.SecondaryColor
	}
	if req.AccentColor != nil && *req.AccentColor != "" {
		cfg.AccentColor = *req.AccentColor
	}
	if req.BackgroundColor != nil && *req.BackgroundColor != "" {
		cfg.BackgroundColor = *req.BackgroundColor
	}
	if req.Active != nil {
		cfg.Active = *req.Active
	}
}
