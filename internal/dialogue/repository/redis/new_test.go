package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bankbot/internal/dialogue/repository"
	"bankbot/internal/model"
	"bankbot/pkg/log"
)

func newTestRepo(t *testing.T) (repository.Repository, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return New(client, time.Minute, log.NewNop()), mr
}

func TestRepository_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	repo, mr := newTestRepo(t)

	s := model.Session{
		ID:        "chat-42",
		Username:  "asha",
		State:     model.StateTransferAmount,
		Slots:     model.Slots{FromAccount: "111", ToAccount: "222"},
		UpdatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, repo.SaveSession(ctx, s))

	raw, err := mr.Get("bankbot:session:chat-42")
	require.NoError(t, err)
	assert.Contains(t, raw, `"state":"transfer_amount"`)
	assert.Equal(t, time.Minute, mr.TTL("bankbot:session:chat-42"))

	got, err := repo.GetSession(ctx, "chat-42")
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestRepository_MissingAndExpired(t *testing.T) {
	ctx := context.Background()
	repo, mr := newTestRepo(t)

	got, err := repo.GetSession(ctx, "nobody")
	require.NoError(t, err)
	assert.False(t, got.Exists())

	require.NoError(t, repo.SaveSession(ctx, model.Session{ID: "a"}))
	mr.FastForward(2 * time.Minute)

	got, err = repo.GetSession(ctx, "a")
	require.NoError(t, err)
	assert.False(t, got.Exists())
}

func TestRepository_CorruptValue(t *testing.T) {
	ctx := context.Background()
	repo, mr := newTestRepo(t)

	require.NoError(t, mr.Set("bankbot:session:bad", "{not json"))
	got, err := repo.GetSession(ctx, "bad")
	require.NoError(t, err)
	assert.False(t, got.Exists())
}

func TestRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo, mr := newTestRepo(t)

	require.NoError(t, repo.SaveSession(ctx, model.Session{ID: "a"}))
	require.NoError(t, repo.DeleteSession(ctx, "a"))
	assert.False(t, mr.Exists("bankbot:session:a"))

	assert.ErrorIs(t, repo.SaveSession(ctx, model.Session{}), repository.ErrInvalidSession)
}

func TestRepository_ServerDown(t *testing.T) {
	ctx := context.Background()
	repo, mr := newTestRepo(t)
	mr.Close()

	_, err := repo.GetSession(ctx, "a")
	assert.ErrorIs(t, err, repository.ErrFailedToGet)
	assert.ErrorIs(t, repo.SaveSession(ctx, model.Session{ID: "a"}), repository.ErrFailedToSave)
}
