package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bankbot/internal/dialogue/repository"
	"bankbot/internal/model"
)

func TestRepository(t *testing.T) {
	ctx := context.Background()
	repo := New(2, time.Minute)

	got, err := repo.GetSession(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, got.Exists())

	s := model.Session{ID: "a", Username: "asha", State: model.StateTransferTo, Slots: model.Slots{FromAccount: "111"}}
	require.NoError(t, repo.SaveSession(ctx, s))

	got, err = repo.GetSession(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, s, got)

	require.NoError(t, repo.DeleteSession(ctx, "a"))
	got, _ = repo.GetSession(ctx, "a")
	assert.False(t, got.Exists())

	assert.ErrorIs(t, repo.SaveSession(ctx, model.Session{}), repository.ErrInvalidSession)
}

func TestRepository_EvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	repo := New(2, time.Minute)

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.SaveSession(ctx, model.Session{ID: id}))
	}

	got, _ := repo.GetSession(ctx, "a")
	assert.False(t, got.Exists())
	got, _ = repo.GetSession(ctx, "c")
	assert.True(t, got.Exists())
}

func TestRepository_Expires(t *testing.T) {
	ctx := context.Background()
	repo := New(10, 20*time.Millisecond)

	require.NoError(t, repo.SaveSession(ctx, model.Session{ID: "a"}))
	time.Sleep(60 * time.Millisecond)

	got, _ := repo.GetSession(ctx, "a")
	assert.False(t, got.Exists())
}
