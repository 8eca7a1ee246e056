package session

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"zeelx/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store, err := NewFileStore(path)
	require.NoError(t, err)

	// Empty store loads as absent, not as an error.
	token, user, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Nil(t, user)

	saved := &domain.User{ID: 4, Phone: "88001122", Name: "Bat"}
	require.NoError(t, store.Save("tok-abc", saved))

	token, user, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", token)
	require.NotNil(t, user)
	assert.Equal(t, saved.Phone, user.Phone)

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}
}

func TestFileStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store, err := NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Save("tok", &domain.User{ID: 1}))
	require.NoError(t, store.Clear())

	token, user, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Nil(t, user)

	// Clearing an already-empty store is fine.
	require.NoError(t, store.Clear())
}

func TestFileStoreCorruptFileTreatedAsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store, err := NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	token, user, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Nil(t, user)
}
