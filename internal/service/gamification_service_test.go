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

type gamificationRepoStub struct {
	rules       map[string]*models.GamificationRule
	levels      map[string]*models.LevelThreshold
	listCalls   int
	deactivated []models.RuleType
}

func newGamificationRepoStub() *gamificationRepoStub {
	return &gamificationRepoStub{rules: map[string]*models.GamificationRule{}, levels: map[string]*models.LevelThreshold{}}
}

func (s *gamificationRepoStub) ListRules(ctx context.Context, active *bool) ([]models.GamificationRule, error) {
	s.listCalls++
	var out []models.GamificationRule
	for _, rule := range s.rules {
		if active == nil || rule.Active == *active {
			out = append(out, *rule)
		}
	}
	return out, nil
}

func (s *gamificationRepoStub) FindRuleByID(ctx context.Context, id string) (*models.GamificationRule, error) {
	if rule, ok := s.rules[id]; ok {
		copy := *rule
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (s *gamificationRepoStub) DeactivateRulesOfType(ctx context.Context, exec sqlx.ExtContext, ruleType models.RuleType, keepID string) error {
	s.deactivated = append(s.deactivated, ruleType)
	for id, rule := range s.rules {
		if rule.Type == ruleType && id != keepID {
			rule.Active = false
		}
	}
	return nil
}

func (s *gamificationRepoStub) CreateRule(ctx context.Context, exec sqlx.ExtContext, rule *models.GamificationRule) error {
	copy := *rule
	s.rules[rule.ID] = &copy
	return nil
}

func (s *gamificationRepoStub) UpdateRule(ctx context.Context, exec sqlx.ExtContext, rule *models.GamificationRule) error {
	if _, ok := s.rules[rule.ID]; !ok {
		return sql.ErrNoRows
	}
	copy := *rule
	s.rules[rule.ID] = &copy
	return nil
}

func (s *gamificationRepoStub) DeleteRule(ctx context.Context, id string) error {
	if _, ok := s.rules[id]; !ok {
		return sql.ErrNoRows
	}
	delete(s.rules, id)
	return nil
}

func (s *gamificationRepoStub) ListLevels(ctx context.Context, active *bool) ([]models.LevelThreshold, error) {
	var out []models.LevelThreshold
	for _, level := range s.levels {
		if active == nil || level.Active == *active {
			out = append(out, *level)
		}
	}
	return out, nil
}

func (s *gamificationRepoStub) FindLevelByID(ctx context.Context, id string) (*models.LevelThreshold, error) {
	if level, ok := s.levels[id]; ok {
		copy := *level
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (s *gamificationRepoStub) LevelNumberTaken(ctx context.Context, number int, excludeID string) (bool, error) {
	for id, level := range s.levels {
		if level.Level == number && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *gamificationRepoStub) CreateLevel(ctx context.Context, level *models.LevelThreshold) error {
	level.ID = "lvl-new"
	copy := *level
	s.levels[level.ID] = &copy
	return nil
}

func (s *gamificationRepoStub) UpdateLevel(ctx context.Context, level *models.LevelThreshold) error {
	copy := *level
	s.levels[level.ID] = &copy
	return nil
}

func (s *gamificationRepoStub) DeleteLevel(ctx context.Context, id string) error {
	if _, ok := s.levels[id]; !ok {
		return sql.ErrNoRows
	}
	delete(s.levels, id)
	return nil
}

func floatPtr(v float64) *float64 { return &v }

func TestGamificationServiceListRulesDefaultsWhenEmpty(t *testing.T) {
	svc := NewGamificationService(newGamificationRepoStub(), nil, nil, nil, nil, nil)

	rules, err := svc.ListRules(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, rules, 8)
	assert.Equal(t, models.RulePointsMissionComplete, rules[0].Type)
	assert.Equal(t, 100.0, rules[0].Value)
	assert.Equal(t, "Puntos por Completar Misión", rules[0].TypeLabel)

	inactive := false
	rules, err = svc.ListRules(context.Background(), &inactive)
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestGamificationServiceListRulesUsesCache(t *testing.T) {
	repo := newGamificationRepoStub()
	repo.rules["r1"] = &models.GamificationRule{ID: "r1", Type: models.RuleBonusStreak, Value: 30, Active: true}
	cacheSvc := NewCacheService(newMemoryCacheRepo(), NewMetricsService(), time.Minute, nil, true)
	svc := NewGamificationService(repo, nil, cacheSvc, nil, nil, nil)

	_, err := svc.ListRules(context.Background(), nil)
	require.NoError(t, err)
	rules, err := svc.ListRules(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, 1, repo.listCalls)
}

func TestGamificationServiceCreateActiveRuleDeactivatesSiblings(t *testing.T) {
	db, mock := newBulkDB(t)
	repo := newGamificationRepoStub()
	repo.rules["old"] = &models.GamificationRule{ID: "old", Type: models.RulePointsMissionComplete, Value: 80, Active: true}
	audits := &auditStub{}
	svc := NewGamificationService(repo, db, nil, audits, nil, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	rule, err := svc.CreateRule(context.Background(), models.GamificationRuleRequest{
		Type:  models.RulePointsMissionComplete,
		Value: floatPtr(120),
	}, "admin-1", models.RequestMeta{})
	require.NoError(t, err)
	assert.True(t, rule.Active)
	assert.NotEmpty(t, rule.ID)
	assert.False(t, repo.rules["old"].Active)
	assert.Equal(t, []models.RuleType{models.RulePointsMissionComplete}, repo.deactivated)
	require.Len(t, audits.logs, 1)
	assert.Equal(t, models.AuditActionGamificationEdit, audits.logs[0].Action)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGamificationServiceCreateRuleValidation(t *testing.T) {
	svc := NewGamificationService(newGamificationRepoStub(), nil, nil, nil, nil, nil)

	_, err := svc.CreateRule(context.Background(), models.GamificationRuleRequest{Type: "puntos_magicos", Value: floatPtr(1)}, "", models.RequestMeta{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.CreateRule(context.Background(), models.GamificationRuleRequest{Type: models.RuleBonusStreak}, "", models.RequestMeta{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestGamificationServiceUpdateInactiveRuleSkipsDeactivation(t *testing.T) {
	db, mock := newBulkDB(t)
	repo := newGamificationRepoStub()
	repo.rules["r1"] = &models.GamificationRule{ID: "r1", Type: models.RuleMultiplierHard, Value: 2, Active: true}
	svc := NewGamificationService(repo, db, nil, nil, nil, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	inactive := false
	rule, err := svc.UpdateRule(context.Background(), "r1", models.GamificationRuleRequest{
		Type:   models.RuleMultiplierHard,
		Value:  floatPtr(2.5),
		Active: &inactive,
	}, "admin-1", models.RequestMeta{})
	require.NoError(t, err)
	assert.False(t, rule.Active)
	assert.Equal(t, 2.5, repo.rules["r1"].Value)
	assert.Empty(t, repo.deactivated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGamificationServiceListLevelsFallsBackToBuiltin(t *testing.T) {
	svc := NewGamificationService(newGamificationRepoStub(), nil, nil, nil, nil, nil)

	levels, err := svc.ListLevels(context.Background())
	require.NoError(t, err)
	require.Len(t, levels, 6)
	assert.Equal(t, "Maestro", levels[5].Name)
	assert.Nil(t, levels[5].MaxPoints)
	assert.Len(t, svc.Thresholds(context.Background()), 6)
}

func TestGamificationServiceCreateLevelRules(t *testing.T) {
	repo := newGamificationRepoStub()
	repo.levels["l1"] = &models.LevelThreshold{ID: "l1", Level: 1, Name: "Principiante", Active: true}
	svc := NewGamificationService(repo, nil, nil, nil, nil, nil)

	_, err := svc.CreateLevel(context.Background(), models.LevelThresholdRequest{Level: 1, Name: "Otro", MinPoints: int64Ptr(0)})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)

	_, err = svc.CreateLevel(context.Background(), models.LevelThresholdRequest{Level: 2, Name: "Bronce", MinPoints: int64Ptr(100), MaxPoints: int64Ptr(100)})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	level, err := svc.CreateLevel(context.Background(), models.LevelThresholdRequest{Level: 2, Name: "Bronce", MinPoints: int64Ptr(100), MaxPoints: int64Ptr(499)})
	require.NoError(t, err)
	assert.True(t, level.Active)
	assert.Equal(t, int64(100), level.MinPoints)
}

func TestGamificationServiceDeleteMissingLevel(t *testing.T) {
	svc := NewGamificationService(newGamificationRepoStub(), nil, nil, nil, nil, nil)

	err := svc.DeleteLevel(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
