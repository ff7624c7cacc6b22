package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir_CreatesMissingDirs(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "a", "b", "session.db")

	got, err := EnsureParentDir(target)
	require.NoError(t, err)
	require.Equal(t, target, got)

	fi, err := os.Stat(filepath.Join(tmp, "a", "b"))
	require.NoError(t, err)
	require.True(t, fi.IsDir())
}

func TestEnsureParentDir_Idempotent(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "session.db")

	_, err := EnsureParentDir(target)
	require.NoError(t, err)
	_, err = EnsureParentDir(target)
	require.NoError(t, err)
}

func TestEnsureParentDir_ParentIsFile(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, err := EnsureParentDir(filepath.Join(blocker, "session.db"))
	require.Error(t, err)
}

func TestReadLimited(t *testing.T) {
	tmp := t.TempDir()
	p := filepath.Join(tmp, "avatar.png")
	require.NoError(t, os.WriteFile(p, []byte("12345"), 0o600))

	b, err := ReadLimited(p, 10)
	require.NoError(t, err)
	require.Equal(t, []byte("12345"), b)

	_, err = ReadLimited(p, 4)
	require.Error(t, err)

	_, err = ReadLimited(tmp, 10)
	require.Error(t, err)

	_, err = ReadLimited(filepath.Join(tmp, "missing"), 10)
	require.Error(t, err)
}
