package client

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenStore(t *testing.T) {
	store := NewTokenStore(filepath.Join(t.TempDir(), "nested", "token"))

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, store.Save("tok-1"))
	token, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	// Saving again replaces the slot.
	require.NoError(t, store.Save("tok-2"))
	token, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-2", token)

	require.NoError(t, store.Clear())
	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoToken)

	// Clearing an already-empty store is fine.
	assert.NoError(t, store.Clear())
}
