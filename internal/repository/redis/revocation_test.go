package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/mIRRONEL/4-tier-app/internal/model"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRevocationRepository_PutGet(t *testing.T) {
	ctx := context.Background()
	_, client := newTestClient(t)
	repo := NewRevocationRepository(client)
	userID := uuid.New()

	require.NoError(t, repo.Put(ctx, userID, "token-1", time.Hour))

	got, err := repo.Get(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, "token-1", got)
}

func TestRevocationRepository_PutOverwrites(t *testing.T) {
	ctx := context.Background()
	_, client := newTestClient(t)
	repo := NewRevocationRepository(client)
	userID := uuid.New()

	require.NoError(t, repo.Put(ctx, userID, "token-1", time.Hour))
	require.NoError(t, repo.Put(ctx, userID, "token-2", time.Hour))

	got, err := repo.Get(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, "token-2", got)
}

func TestRevocationRepository_GetMissing(t *testing.T) {
	ctx := context.Background()
	_, client := newTestClient(t)
	repo := NewRevocationRepository(client)

	_, err := repo.Get(ctx, uuid.New())
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestRevocationRepository_EntryExpires(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestClient(t)
	repo := NewRevocationRepository(client)
	userID := uuid.New()

	require.NoError(t, repo.Put(ctx, userID, "token-1", time.Minute))

	mr.FastForward(2 * time.Minute)

	_, err := repo.Get(ctx, userID)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestRevocationRepository_Delete(t *testing.T) {
	ctx := context.Background()
	_, client := newTestClient(t)
	repo := NewRevocationRepository(client)
	userID := uuid.New()

	require.NoError(t, repo.Put(ctx, userID, "token-1", time.Hour))
	require.NoError(t, repo.Delete(ctx, userID))

	_, err := repo.Get(ctx, userID)
	require.ErrorIs(t, err, model.ErrNotFound)

	// Deleting again is a no-op.
	require.NoError(t, repo.Delete(ctx, userID))
}
