package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eduquest/admin-api/internal/models"
	appErrors "github.com/eduquest/admin-api/pkg/errors"
)

type mockUserRepo struct {
	users         map[string]*models.User
	listUsers     []models.User
	listCount     int
	exists        bool
	passwordSetTo string
	deleted       []string
	auditLogs     []*models.AuditLog
}

func (m *mockUserRepo) List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error) {
	return m.listUsers, m.listCount, nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if user, ok := m.users[id]; ok {
		copy := *user
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email, excludeID string) (bool, error) {
	return m.exists, nil
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.users == nil {
		m.users = make(map[string]*models.User)
	}
	user.ID = "new-user"
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error {
	m.passwordSetTo = passwordHash
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockUserRepo) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	m.auditLogs = append(m.auditLogs, log)
	return nil
}

func TestUserServiceCreateHashesPassword(t *testing.T) {
	repo := &mockUserRepo{}
	svc := NewUserService(repo, validator.New(), zap.NewNop())

	user, err := svc.Create(context.Background(), models.CreateUserRequest{
		Username: "luis",
		Email:    "Luis@EduQuest.app",
		Password: "Secreto123",
		FullName: "Luis Rojas",
		Role:     models.RoleStudent,
	}, "admin", models.RequestMeta{IP: "127.0.0.1"})
	require.NoError(t, err)
	assert.Equal(t, "luis@eduquest.app", user.Email)
	assert.True(t, user.Active)
	assert.True(t, strings.HasPrefix(user.PasswordHash, "$2a$12$"))
	require.Len(t, repo.auditLogs, 1)
	assert.Equal(t, models.AuditActionUserCreate, repo.auditLogs[0].Action)
}

func TestUserServiceCreateConflict(t *testing.T) {
	svc := NewUserService(&mockUserRepo{exists: true}, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), models.CreateUserRequest{
		Username: "luis",
		Email:    "luis@eduquest.app",
		Password: "Secreto123",
		Role:     models.RoleStudent,
	}, "admin", models.RequestMeta{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestUserServiceCreateRejectsUnknownRole(t *testing.T) {
	svc := NewUserService(&mockUserRepo{}, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), models.CreateUserRequest{
		Username: "luis",
		Email:    "luis@eduquest.app",
		Password: "Secreto123",
		Role:     models.UserRole("SUPERADMIN"),
	}, "admin", models.RequestMeta{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestUserServiceUpdatePartial(t *testing.T) {
	repo := &mockUserRepo{users: map[string]*models.User{
		"u1": {ID: "u1", Username: "luis", Email: "luis@eduquest.app", Role: models.RoleStudent, Active: true},
	}}
	svc := NewUserService(repo, validator.New(), zap.NewNop())

	inactive := false
	password := "NuevoSecreto1"
	user, err := svc.Update(context.Background(), "u1", models.UpdateUserRequest{Active: &inactive, Password: &password}, "admin", models.RequestMeta{})
	require.NoError(t, err)
	assert.False(t, user.Active)
	assert.Equal(t, "luis", user.Username)
	assert.True(t, CheckPassword(repo.passwordSetTo, password))
}

func TestUserServiceDeleteMissing(t *testing.T) {
	repo := &mockUserRepo{users: map[string]*models.User{}}
	svc := NewUserService(repo, validator.New(), zap.NewNop())

	err := svc.Delete(context.Background(), "missing", "admin", models.RequestMeta{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.deleted)
}

func TestUserServiceListPagination(t *testing.T) {
	repo := &mockUserRepo{listUsers: []models.User{{ID: "u1"}}, listCount: 41}
	svc := NewUserService(repo, validator.New(), zap.NewNop())

	users, pagination, err := svc.List(context.Background(), models.UserFilter{Page: 3, PageSize: 20})
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, 3, pagination.Page)
	assert.Equal(t, 41, pagination.TotalCount)
}
