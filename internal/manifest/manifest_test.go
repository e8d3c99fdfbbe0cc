package manifest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "manifest.db"))
	require.NoError(t, err)
	defer func() { require.NoError(t, store.Close()) }()

	require.NoError(t, store.Record("shot", "sequences/sq010/sh020", map[string]any{
		"sequence": "sq010",
		"shot":     "sh020",
	}))
	require.NoError(t, store.Record("sequence", "sequences/sq010", map[string]any{
		"sequence": "sq010",
	}))

	entries, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, "sequence", entries[0].Key)
	assert.Equal(t, "sequences/sq010", entries[0].Path)
	assert.Equal(t, "shot", entries[1].Key)
	assert.Equal(t, map[string]any{"sequence": "sq010", "shot": "sh020"}, entries[1].Tokens)
	assert.False(t, entries[0].CreatedAt.IsZero())

	limited, err := store.Recent(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
