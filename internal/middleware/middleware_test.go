package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduquest/admin-api/internal/models"
	appErrors "github.com/eduquest/admin-api/pkg/errors"
)

type validatorStub struct {
	claims *models.JWTClaims
}

func (v validatorStub) ValidateToken(token string) (*models.JWTClaims, error) {
	if token != "good" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "token inválido")
	}
	return v.claims, nil
}

type auditRecorder struct {
	logs []*models.AuditLog
	err  error
}

func (a *auditRecorder) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	a.logs = append(a.logs, log)
	return a.err
}

func newProtectedRouter(role models.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	validator := validatorStub{claims: &models.JWTClaims{UserID: "u1", Role: role}}
	router.GET("/admin", JWT(validator), AdminOnly(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func TestJWTRejectsMissingToken(t *testing.T) {
	router := newProtectedRouter(models.RoleAdmin)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTRejectsInvalidToken(t *testing.T) {
	router := newProtectedRouter(models.RoleAdmin)
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer bad")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminOnlyAllowsAdmin(t *testing.T) {
	router := newProtectedRouter(models.RoleAdmin)
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestAdminOnlyForbidsTeacher(t *testing.T) {
	router := newProtectedRouter(models.RoleTeacher)
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "bearer good")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestOptionalJWTIgnoresBadToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/public", OptionalJWT(validatorStub{}), func(c *gin.Context) {
		_, exists := c.Get(ContextUserKey)
		assert.False(t, exists)
		c.Status(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	req.Header.Set("Authorization", "Bearer bad")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuditRecordsSuccessfulWrites(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := &auditRecorder{err: errors.New("db down")}
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(ContextUserKey, &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin})
	})
	group := router.Group("/cursos", Audit(recorder, nil, models.AuditActionCourseWrite, "cursos"))
	group.PUT("/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	group.GET("/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	group.DELETE("/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	for _, method := range []string{http.MethodPut, http.MethodGet, http.MethodDelete} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(method, "/cursos/c1", nil))
	}

	require.Len(t, recorder.logs, 1)
	log := recorder.logs[0]
	assert.Equal(t, models.AuditActionCourseWrite, log.Action)
	require.NotNil(t, log.ResourceID)
	assert.Equal(t, "c1", *log.ResourceID)
	require.NotNil(t, log.UserID)
	assert.Equal(t, "admin-1", *log.UserID)
}

func TestResponseMetaTracksProcessingTime(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var captured map[string]interface{}
	router := gin.New()
	router.Use(WithResponseMeta())
	router.GET("/", func(c *gin.Context) {
		SetMeta(c, "total", 3)
		captured = ExtractMeta(c)
		c.Status(http.StatusOK)
	})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotNil(t, captured)
	assert.Equal(t, 3, captured["total"])
	assert.Contains(t, captured, "processing_time_ms")
}
