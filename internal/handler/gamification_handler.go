package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduquest/admin-api/internal/models"
	"github.com/eduquest/admin-api/pkg/response"
)

type gamificationService interface {
	ListRules(ctx context.Context, active *bool) ([]models.GamificationRule, error)
	GetRule(ctx context.Context, id string) (*models.GamificationRule, error)
	CreateRule(ctx context.Context, req models.GamificationRuleRequest, actorID string, meta models.RequestMeta) (*models.GamificationRule, error)
	UpdateRule(ctx context.Context, id string, req models.GamificationRuleRequest, actorID string, meta models.RequestMeta) (*models.GamificationRule, error)
	DeleteRule(ctx context.Context, id string) error
	ListLevels(ctx context.Context) ([]models.LevelThreshold, error)
	GetLevel(ctx context.Context, id string) (*models.LevelThreshold, error)
	CreateLevel(ctx context.Context, req models.LevelThresholdRequest) (*models.LevelThreshold, error)
	UpdateLevel(ctx context.Context, id string, req models.LevelThresholdRequest) (*models.LevelThreshold, error)
	DeleteLevel(ctx context.Context, id string) error
}

// GamificationHandler exposes rules and level thresholds.
type GamificationHandler struct {
	service gamificationService
}

// NewGamificationHandler constructs GamificationHandler.
func NewGamificationHandler(svc gamificationService) *GamificationHandler {
	return &GamificationHandler{service: svc}
}

// ListRules godoc
// @Summary List gamification rules
// @Description Returns the default rule set when none is configured.
// @Tags Gamificacion
// @Produce json
// @Param activo query bool false "Active filter"
// @Success 200 {object} response.Envelope
// @Router /reglas-gamificacion [get]
func (h *GamificationHandler) ListRules(c *gin.Context) {
	rules, err := h.service.ListRules(c.Request.Context(), optionalBoolQuery(c, "activo"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rules, nil)
}

// GetRule godoc
// @Summary Get gamification rule
// @Tags Gamificacion
// @Produce json
// @Param id path string true "Rule ID"
// @Success 200 {object} response.Envelope
// @Router /reglas-gamificacion/{id} [get]
func (h *GamificationHandler) GetRule(c *gin.Context) {
	rule, err := h.service.GetRule(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rule, nil)
}

// CreateRule godoc
// @Summary Create gamification rule
// @Description An active rule deactivates the other rules of its type.
// @Tags Gamificacion
// @Accept json
// @Produce json
// @Param payload body models.GamificationRuleRequest true "Rule payload"
// @Success 201 {object} response.Envelope
// @Router /reglas-gamificacion [post]
func (h *GamificationHandler) CreateRule(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var req models.GamificationRuleRequest
	if !bindJSON(c, &req) {
		return
	}
	rule, err := h.service.CreateRule(c.Request.Context(), req, actor, requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, rule)
}

// UpdateRule godoc
// @Summary Update gamification rule
// @Tags Gamificacion
// @Accept json
// @Produce json
// @Param id path string true "Rule ID"
// @Param payload body models.GamificationRuleRequest true "Rule payload"
// @Success 200 {object} response.Envelope
// @Router /reglas-gamificacion/{id} [put]
func (h *GamificationHandler) UpdateRule(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var req models.GamificationRuleRequest
	if !bindJSON(c, &req) {
		return
	}
	rule, err := h.service.UpdateRule(c.Request.Context(), c.Param("id"), req, actor, requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rule, nil)
}

// DeleteRule godoc
// @Summary Delete gamification rule
// @Tags Gamificacion
// @Param id path string true "Rule ID"
// @Success 204 {object} response.Envelope
// @Router /reglas-gamificacion/{id} [delete]
func (h *GamificationHandler) DeleteRule(c *gin.Context) {
	if err := h.service.DeleteRule(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListLevels godoc
// @Summary List active level thresholds
// @Description Returns the built-in table when none is configured.
// @Tags Niveles
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /niveles [get]
func (h *GamificationHandler) ListLevels(c *gin.Context) {
	levels, err := h.service.ListLevels(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, levels, nil)
}

// GetLevel godoc
// @Summary Get level threshold
// @Tags Niveles
// @Produce json
// @Param id path string true "Level ID"
// @Success 200 {object} response.Envelope
// @Router /niveles/{id} [get]
func (h *GamificationHandler) GetLevel(c *gin.Context) {
	level, err := h.service.GetLevel(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, level, nil)
}

// CreateLevel godoc
// @Summary Create level threshold
// @Tags Niveles
// @Accept json
// @Produce json
// @Param payload body models.LevelThresholdRequest true "Level payload"
// @Success 201 {object} response.Envelope
// @Router /niveles [post]
func (h *GamificationHandler) CreateLevel(c *gin.Context) {
	var req models.LevelThresholdRequest
	if !bindJSON(c, &req) {
		return
	}
	level, err := h.service.CreateLevel(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, level)
}

// UpdateLevel godoc
// @Summary Update level threshold
// @Tags Niveles
// @Accept json
// @Produce json
// @Param id path string true "Level ID"
// @Param payload body models.LevelThresholdRequest true "Level payload"
// @Success 200 {object} response.Envelope
// @Router /niveles/{id} [put]
func (h *GamificationHandler) UpdateLevel(c *gin.Context) {
	var req models.LevelThresholdRequest
	if !bindJSON(c, &req) {
		return
	}
	level, err := h.service.UpdateLevel(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, level, nil)
}

// DeleteLevel godoc
// @Summary Delete level threshold
// @Tags Niveles
// @Param id path string true "Level ID"
// @Success 204 {object} response.Envelope
// @Router /niveles/{id} [delete]
func (h *GamificationHandler) DeleteLevel(c *gin.Context) {
	if err := h.service.DeleteLevel(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
