package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduquest/admin-api/internal/models"
	appErrors "github.com/eduquest/admin-api/pkg/errors"
)

type visualRepoStub struct {
	configs   map[string]*models.VisualConfig
	calls     []string
	findCalls int
}

func newVisualRepoStub() *visualRepoStub {
	return &visualRepoStub{configs: map[string]*models.VisualConfig{}}
}

func (s *visualRepoStub) ListActive(ctx context.Context) ([]models.VisualConfig, error) {
	var out []models.VisualConfig
	for _, cfg := range s.configs {
		if cfg.Active {
			out = append(out, *cfg)
		}
	}
	return out, nil
}

func (s *visualRepoStub) FindActive(ctx context.Context) (*models.VisualConfig, error) {
	s.findCalls++
	for _, cfg := range s.configs {
		if cfg.Active {
			copy := *cfg
			return &copy, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *visualRepoStub) FindByID(ctx context.Context, id string) (*models.VisualConfig, error) {
	if cfg, ok := s.configs[id]; ok {
		copy := *cfg
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (s *visualRepoStub) DeactivateOthers(ctx context.Context, exec sqlx.ExtContext, keepID string) error {
	s.calls = append(s.calls, "deactivate")
	for id, cfg := range s.configs {
		if id != keepID {
			cfg.Active = false
		}
	}
	return nil
}

func (s *visualRepoStub) Create(ctx context.Context, exec sqlx.ExtContext, cfg *models.VisualConfig) error {
	s.calls = append(s.calls, "create")
	copy := *cfg
	s.configs[*cfg.ID] = &copy
	return nil
}

func (s *visualRepoStub) Update(ctx context.Context, exec sqlx.ExtContext, cfg *models.VisualConfig) error {
	s.calls = append(s.calls, "update")
	copy := *cfg
	s.configs[*cfg.ID] = &copy
	return nil
}

func (s *visualRepoStub) Delete(ctx context.Context, id string) error {
	if _, ok := s.configs[id]; !ok {
		return sql.ErrNoRows
	}
	delete(s.configs, id)
	return nil
}

func strPtr(v string) *string { return &v }

func TestVisualConfigServiceActiveDefaults(t *testing.T) {
	svc := NewVisualConfigService(newVisualRepoStub(), nil, nil, nil, nil, nil)

	cfg, err := svc.Active(context.Background())
	require.NoError(t, err)
	assert.Nil(t, cfg.ID)
	assert.Equal(t, "EduQuest", cfg.InstitutionName)
	assert.Equal(t, "#3B82F6", cfg.PrimaryColor)
	assert.Equal(t, "#F9FAFB", cfg.BackgroundColor)
	assert.True(t, cfg.Active)
}

func TestVisualConfigServiceActiveIsCached(t *testing.T) {
	repo := newVisualRepoStub()
	repo.configs["v1"] = &models.VisualConfig{ID: strPtr("v1"), InstitutionName: "Colegio", PrimaryColor: "#000000", Active: true}
	cacheSvc := NewCacheService(newMemoryCacheRepo(), nil, time.Minute, nil, true)
	svc := NewVisualConfigService(repo, nil, cacheSvc, nil, nil, nil)

	_, err := svc.Active(context.Background())
	require.NoError(t, err)
	cfg, err := svc.Active(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Colegio", cfg.InstitutionName)
	assert.Equal(t, 1, repo.findCalls)
}

func TestVisualConfigServiceCreateDeactivatesOthersInTransaction(t *testing.T) {
	db, mock := newBulkDB(t)
	repo := newVisualRepoStub()
	repo.configs["old"] = &models.VisualConfig{ID: strPtr("old"), InstitutionName: "Antigua", Active: true}
	audits := &auditStub{}
	svc := NewVisualConfigService(repo, db, nil, audits, nil, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	cfg, err := svc.Create(context.Background(), models.VisualConfigRequest{
		InstitutionName: strPtr("Liceo Norte"),
		PrimaryColor:    strPtr("#112233"),
	}, "admin-1", models.RequestMeta{})
	require.NoError(t, err)
	assert.True(t, cfg.Active)
	assert.Equal(t, "Liceo Norte", cfg.InstitutionName)
	assert.Equal(t, "#112233", cfg.PrimaryColor)
	assert.Equal(t, models.DefaultSecondaryColor, cfg.SecondaryColor)
	assert.Equal(t, []string{"deactivate", "create"}, repo.calls)
	assert.False(t, repo.configs["old"].Active)
	require.Len(t, audits.logs, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVisualConfigServiceUpdateWithoutActivation(t *testing.T) {
	db, mock := newBulkDB(t)
	repo := newVisualRepoStub()
	repo.configs["v1"] = &models.VisualConfig{ID: strPtr("v1"), InstitutionName: "Uno", Active: false}
	repo.configs["v2"] = &models.VisualConfig{ID: strPtr("v2"), InstitutionName: "Dos", Active: true}
	svc := NewVisualConfigService(repo, db, nil, nil, nil, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	cfg, err := svc.Update(context.Background(), "v1", models.VisualConfigRequest{AccentColor: strPtr("#ABCDEF")}, "admin-1", models.RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, "#ABCDEF", cfg.AccentColor)
	assert.Equal(t, []string{"update"}, repo.calls)
	assert.True(t, repo.configs["v2"].Active)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVisualConfigServiceRejectsInvalidColor(t *testing.T) {
	svc := NewVisualConfigService(newVisualRepoStub(), nil, nil, nil, nil, nil)

	_, err := svc.Create(context.Background(), models.VisualConfigRequest{PrimaryColor: strPtr("azul")}, "admin-1", models.RequestMeta{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
