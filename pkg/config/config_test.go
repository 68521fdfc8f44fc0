package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, "grupo_03", cfg.Gamification.ExternalSchema)
	assert.Equal(t, 5, cfg.Gamification.TopCourses)
	assert.Equal(t, 10, cfg.Gamification.TopStudents)
	assert.Equal(t, time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	assert.Nil(t, cfg.CORS.AllowedOrigins)
}

func TestOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("ALLOWED_ORIGINS", "http://localhost:3000, https://admin.eduquest.app ,")
	v.Set("CACHE_TTL", "not-a-duration")
	v.Set("STATS_TOP_COURSES", -1)
	v.Set("GAMIFICATION_SCHEMA", "misiones_v2")

	cfg := fromViper(v)
	assert.Equal(t, []string{"http://localhost:3000", "https://admin.eduquest.app"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 5, cfg.Gamification.TopCourses)
	assert.Equal(t, "misiones_v2", cfg.Gamification.ExternalSchema)
}
