package kv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_MissingFileIsEmpty(t *testing.T) {
	r := NewFileRepository(filepath.Join(t.TempDir(), "store.json"))

	v, err := r.Get(context.Background(), "auth-storage")
	require.NoError(t, err)
	assert.Nil(t, v)

	m, err := r.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestFile_SetGetPersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	ctx := context.Background()

	require.NoError(t, NewFileRepository(path).Set(ctx, "k", []byte(`{"x":1}`)))

	v, err := NewFileRepository(path).Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"x":1}`), v)

	st, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), st.Mode().Perm())
}

func TestFile_DeleteAndClear(t *testing.T) {
	r := NewFileRepository(filepath.Join(t.TempDir(), "store.json"))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "a", []byte("1")))
	require.NoError(t, r.Set(ctx, "b", []byte("2")))
	require.NoError(t, r.Delete(ctx, "a"))
	require.NoError(t, r.Delete(ctx, "missing"))

	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"b": []byte("2")}, m)

	require.NoError(t, r.Clear(ctx))
	m, err = r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestFile_CorruptFileReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileRepository(path).Get(context.Background(), "k")
	require.Error(t, err)
}

func TestFile_NoTempFilesLeftBehind(t *testing.T) {
	dir := t.TempDir()
	r := NewFileRepository(filepath.Join(dir, "store.json"))
	require.NoError(t, r.Set(context.Background(), "k", []byte("v")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "store.json", entries[0].Name())
}
