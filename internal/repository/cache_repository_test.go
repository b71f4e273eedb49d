package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/edusuite/exam-seating-api/pkg/errors"
)

func TestCacheRepositoryDegradesWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil, nil)
	ctx := context.Background()

	var dest []string
	err := repo.Get(ctx, "roster:inst-1:10-A", &dest)
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrCacheMiss)

	assert.NoError(t, repo.Set(ctx, "roster:inst-1:10-A", []string{"s1"}, time.Minute))
	assert.NoError(t, repo.DeleteByPattern(ctx, "roster:inst-1:*"))
	assert.NoError(t, repo.Close())
}
