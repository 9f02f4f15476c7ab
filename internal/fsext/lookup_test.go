package fsext

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
}

func TestLookupClosest(t *testing.T) {
	t.Parallel()

	t.Run("起始目录", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, ".origami"), 0o755))

		got, ok := LookupClosest(dir, ".origami")
		require.True(t, ok)
		require.Equal(t, filepath.Join(dir, ".origami"), got)
	})

	t.Run("祖父目录", func(t *testing.T) {
		dir := t.TempDir()
		nested := filepath.Join(dir, "a", "b")
		require.NoError(t, os.MkdirAll(nested, 0o755))
		require.NoError(t, os.Mkdir(filepath.Join(dir, ".origami"), 0o755))

		got, ok := LookupClosest(nested, ".origami")
		require.True(t, ok)
		require.Equal(t, filepath.Join(dir, ".origami"), got)
	})

	t.Run("未找到", func(t *testing.T) {
		got, ok := LookupClosest(t.TempDir(), "does-not-exist-anywhere")
		require.False(t, ok)
		require.Empty(t, got)
	})

	t.Run("无效的起始目录", func(t *testing.T) {
		_, ok := LookupClosest(filepath.Join(t.TempDir(), "missing"), ".origami")
		require.False(t, ok)
	})
}

func TestLookup(t *testing.T) {
	t.Parallel()

	t.Run("无目标", func(t *testing.T) {
		found, err := Lookup(t.TempDir())
		require.NoError(t, err)
		require.Empty(t, found)
	})

	t.Run("由近及远", func(t *testing.T) {
		dir := t.TempDir()
		nested := filepath.Join(dir, "project")
		touch(t, filepath.Join(dir, "origami.json"))
		touch(t, filepath.Join(nested, ".origami.json"))
		touch(t, filepath.Join(nested, "origami.json"))

		found, err := Lookup(nested, "origami.json", ".origami.json")
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(found), 3)
		require.Equal(t, []string{
			filepath.Join(nested, "origami.json"),
			filepath.Join(nested, ".origami.json"),
			filepath.Join(dir, "origami.json"),
		}, found[:3])
	})

	t.Run("无效的起始目录", func(t *testing.T) {
		_, err := Lookup(filepath.Join(t.TempDir(), "missing"), "origami.json")
		require.Error(t, err)
	})
}

func TestAncestorsStopsAtRoot(t *testing.T) {
	t.Parallel()

	var dirs []string
	for d := range ancestors(filepath.FromSlash("/a/b")) {
		dirs = append(dirs, d)
	}
	require.Equal(t, []string{
		filepath.FromSlash("/a/b"),
		filepath.FromSlash("/a"),
		filepath.FromSlash("/"),
	}, dirs)
}

func TestOwnedBy(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	owner, err := dirOwner(dir)
	require.NoError(t, err)

	// 当前用户创建的文件与目录同属一人
	path := filepath.Join(dir, "origami.json")
	touch(t, path)
	require.NoError(t, ownedBy(path, owner))
	require.NoError(t, ownedBy(path, -1))

	require.ErrorIs(t, ownedBy(filepath.Join(dir, "missing"), owner), os.ErrNotExist)

	if owner != -1 {
		require.ErrorIs(t, ownedBy(path, owner+1), os.ErrPermission)
	}
}
