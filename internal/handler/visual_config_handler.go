package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduquest/admin-api/internal/models"
	"github.com/eduquest/admin-api/pkg/response"
)

type visualConfigService interface {
	List(ctx context.Context) ([]models.VisualConfig, error)
	Active(ctx context.Context) (*models.VisualConfig, error)
	Get(ctx context.Context, id string) (*models.VisualConfig, error)
	Create(ctx context.Context, req models.VisualConfigRequest, actorID string, meta models.RequestMeta) (*models.VisualConfig, error)
	Update(ctx context.Context, id string, req models.VisualConfigRequest, actorID string, meta models.RequestMeta) (*models.VisualConfig, error)
	Delete(ctx context.Context, id string) error
}

// VisualConfigHandler exposes /configuracion-visual.
type VisualConfigHandler struct {
	service visualConfigService
}

// NewVisualConfigHandler constructs VisualConfigHandler.
func NewVisualConfigHandler(svc visualConfigService) *VisualConfigHandler {
	return &VisualConfigHandler{service: svc}
}

// Active godoc
// @Summary Active visual configuration
// @Description Public endpoint; returns the default branding when none is active.
// @Tags ConfiguracionVisual
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /configuracion-visual/activa [get]
func (h *VisualConfigHandler) Active(c *gin.Context) {
	cfg, err := h.service.Active(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cfg, nil)
}

// List godoc
// @Summary List visual configurations
// @Tags ConfiguracionVisual
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /configuracion-visual [get]
func (h *VisualConfigHandler) List(c *gin.Context) {
	configs, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, configs, nil)
}

// Get godoc
// @Summary Get visual configuration
// @Tags ConfiguracionVisual
// @Produce json
// @Param id path string true "Config ID"
// @Success 200 {object} response.Envelope
// @Router /configuracion-visual/{id} [get]
func (h *VisualConfigHandler) Get(c *gin.Context) {
	cfg, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cfg, nil)
}

// Create godoc
// @Summary Create and activate a visual configuration
// @Tags ConfiguracionVisual
// @Accept json
// @Produce json
// @Param payload body models.VisualConfigRequest true "Config payload"
// @Success 201 {object} response.Envelope
// @Router /configuracion-visual [post]
func (h *VisualConfigHandler) Create(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var req models.VisualConfigRequest
	if !bindJSON(c, &req) {
		return
	}
	cfg, err := h.service.Create(c.Request.Context(), req, actor, requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, cfg)
}

// Update godoc
// @Summary Update visual configuration
// @Tags ConfiguracionVisual
// @Accept json
// @Produce json
// @Param id path string true "Config ID"
// @Param payload body models.VisualConfigRequest true "Config payload"
// @Success 200 {object} response.Envelope
// @Router /configuracion-visual/{id} [put]
func (h *VisualConfigHandler) Update(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var req models.VisualConfigRequest
	if !bindJSON(c, &req) {
		return
	}
	cfg, err := h.service.Update(c.Request.Context(), c.Param("id"), req, actor, requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cfg, nil)
}

// Delete godoc
// @Summary Delete visual configuration
// @Tags ConfiguracionVisual
// @Param id path string true "Config ID"
// @Success 204 {object} response.Envelope
// @Router /configuracion-visual/{id} [delete]
func (h *VisualConfigHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
