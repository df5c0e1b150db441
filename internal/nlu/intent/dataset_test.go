package intent

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bankbot/pkg/log"
)

func TestDatasetStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "intents.json")
	store := NewDatasetStore(log.NewNop(), path)

	intents := []Intent{
		{Name: "greetings", Examples: []string{"नमस्ते", "hello <bot> & co"}},
		{Name: "transfer_money", Examples: []string{"send ₹500 to Ravi"}},
		{Name: "empty"},
	}
	require.NoError(t, store.Save(ctx, intents))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "नमस्ते")
	assert.Contains(t, string(raw), "₹500")
	assert.Contains(t, string(raw), "<bot> & co")
	assert.True(t, strings.HasPrefix(string(raw), "{\n    \"intents\""))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	assert.Equal(t, "greetings", loaded[0].Name)
	assert.Equal(t, intents[1], loaded[1])
	assert.Equal(t, []string{}, loaded[2].Examples)

	require.NoError(t, store.Save(ctx, loaded))
	again, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(raw), string(again))
}

func TestDatasetStore_Missing(t *testing.T) {
	ctx := context.Background()
	store := NewDatasetStore(log.NewNop(), filepath.Join(t.TempDir(), "nope.json"))

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, ErrIntentsNotFound)
	assert.Empty(t, store.LoadOrEmpty(ctx))
	assert.NotNil(t, store.LoadOrEmpty(ctx))
}

func TestDatasetStore_Corrupt(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "{intents: ["},
		{name: "wrong shape", body: `{"intents": [{"name": 3, "examples": []}]}`},
		{name: "missing intents", body: `{"items": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".json")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))
			store := NewDatasetStore(log.NewNop(), path)

			_, err := store.Load(ctx)
			assert.ErrorIs(t, err, ErrInvalidIntents)
			assert.Empty(t, store.LoadOrEmpty(ctx))
		})
	}
}
