package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subsidyhub/backend/domain"
	"github.com/subsidyhub/backend/repository"
)

func newTestRepo(t *testing.T) (repository.SessionRepository, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewSessionRepository(client, time.Hour), mr
}

func testSession(id string) *domain.Session {
	now := time.Now()
	return &domain.Session{
		ID:        id,
		UserID:    1,
		Username:  "admin",
		IsAdmin:   true,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
}

func TestSessionRepository_SaveAndGet(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testSession("s1")))

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.UserID)
	assert.Equal(t, "admin", got.Username)
	assert.True(t, got.IsAdmin)
}

func TestSessionRepository_GetMissing(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.Get(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
}

func TestSessionRepository_Delete(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testSession("s1")))
	require.NoError(t, repo.Delete(ctx, "s1"))

	_, err := repo.Get(ctx, "s1")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
}

func TestSessionRepository_TTLExpiry(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testSession("s1")))

	mr.FastForward(2 * time.Hour)

	_, err := repo.Get(ctx, "s1")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
}

func TestSessionRepository_RejectsInvalid(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	assert.Error(t, repo.Save(ctx, nil))
	assert.Error(t, repo.Save(ctx, &domain.Session{}))
}
