package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/eduquest/admin-api/pkg/errors"
)

func TestCacheRepositoryWithoutClientAlwaysMisses(t *testing.T) {
	repo := NewCacheRepository(nil, nil)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "eduquest:admin:niveles:activos", []string{"Principiante"}, time.Minute))

	var dest []string
	err := repo.Get(ctx, "eduquest:admin:niveles:activos", &dest)
	assert.True(t, errors.Is(err, appErrors.ErrCacheMiss))
	assert.Empty(t, dest)

	assert.NoError(t, repo.DeleteByPattern(ctx, "eduquest:admin:niveles:*"))
	assert.NoError(t, repo.Ping(ctx))
}

func TestCacheMissMatchesClonedError(t *testing.T) {
	err := appErrors.Clone(appErrors.ErrCacheMiss, "niveles not cached")
	assert.True(t, errors.Is(err, appErrors.ErrCacheMiss))
	assert.False(t, errors.Is(err, appErrors.ErrNotFound))
}
