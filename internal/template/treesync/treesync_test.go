package treesync

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestSync_CopiesTree(t *testing.T) {
	from := t.TempDir()
	to := filepath.Join(t.TempDir(), "cache")

	writeFile(t, filepath.Join(from, "placeholders.borrow"), "NAME=Alice\n")
	writeFile(t, filepath.Join(from, "content", "greeting.txt.template"), "Hello, %%(NAME)%%!\n")
	writeFile(t, filepath.Join(from, "content", "nested", "deep", "file.bin"), "\x00\x01\x02")
	require.NoError(t, os.MkdirAll(filepath.Join(from, "empty"), 0755))

	result, err := Sync(from, to)
	require.NoError(t, err)

	assert.Equal(t, "NAME=Alice\n", readFile(t, filepath.Join(to, "placeholders.borrow")))
	assert.Equal(t, "Hello, %%(NAME)%%!\n", readFile(t, filepath.Join(to, "content", "greeting.txt.template")))
	assert.Equal(t, "\x00\x01\x02", readFile(t, filepath.Join(to, "content", "nested", "deep", "file.bin")))
	assert.DirExists(t, filepath.Join(to, "empty"))

	assert.Equal(t, 3, result.FilesCopied)
	assert.Equal(t, 0, result.FilesSkipped)
	assert.False(t, result.HasErrors())
}

func TestSync_NeverOverwrites(t *testing.T) {
	from := t.TempDir()
	to := t.TempDir()

	writeFile(t, filepath.Join(from, "a.txt"), "X")
	writeFile(t, filepath.Join(to, "a.txt"), "Y")

	result, err := Sync(from, to)
	require.NoError(t, err)

	assert.Equal(t, "Y", readFile(t, filepath.Join(to, "a.txt")))
	assert.Equal(t, 1, result.FilesSkipped)
	assert.Equal(t, 0, result.FilesCopied)
}

func TestSync_MergesExistingDirectories(t *testing.T) {
	from := t.TempDir()
	to := t.TempDir()

	writeFile(t, filepath.Join(from, "sub", "new.txt"), "new")
	writeFile(t, filepath.Join(to, "sub", "old.txt"), "old")

	result, err := Sync(from, to)
	require.NoError(t, err)

	assert.Equal(t, "new", readFile(t, filepath.Join(to, "sub", "new.txt")))
	assert.Equal(t, "old", readFile(t, filepath.Join(to, "sub", "old.txt")))
	assert.GreaterOrEqual(t, result.DirsExisting, 2)
}

func TestSync_KeepsExistingDirectoryMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on windows")
	}

	from := t.TempDir()
	to := t.TempDir()

	writeFile(t, filepath.Join(from, "sub", "new.txt"), "new")
	require.NoError(t, os.Chmod(filepath.Join(from, "sub"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(to, "sub"), 0700))
	require.NoError(t, os.Chmod(filepath.Join(to, "sub"), 0700))

	_, err := Sync(from, to)
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(to, "sub"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
	assert.Equal(t, "new", readFile(t, filepath.Join(to, "sub", "new.txt")))
}

func TestSync_SkipsSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on windows")
	}

	from := t.TempDir()
	to := filepath.Join(t.TempDir(), "out")

	writeFile(t, filepath.Join(from, "real.txt"), "real")
	require.NoError(t, os.Symlink(filepath.Join(from, "real.txt"), filepath.Join(from, "link.txt")))
	require.NoError(t, os.Symlink(from, filepath.Join(from, "loop")))

	result, err := Sync(from, to)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(to, "real.txt"))
	_, err = os.Lstat(filepath.Join(to, "link.txt"))
	assert.True(t, os.IsNotExist(err), "symlink should not be recreated")
	_, err = os.Lstat(filepath.Join(to, "loop"))
	assert.True(t, os.IsNotExist(err), "directory symlink should not be followed")
	assert.Equal(t, 2, result.SymlinksSkipped)
}

func TestSync_Idempotent(t *testing.T) {
	from := t.TempDir()
	to := filepath.Join(t.TempDir(), "cache")

	writeFile(t, filepath.Join(from, "a", "b.txt"), "b")
	writeFile(t, filepath.Join(from, "c.txt"), "c")

	first, err := Sync(from, to)
	require.NoError(t, err)
	assert.Equal(t, 2, first.FilesCopied)

	second, err := Sync(from, to)
	require.NoError(t, err)
	assert.Equal(t, 0, second.FilesCopied)
	assert.Equal(t, 2, second.FilesSkipped)

	assert.Equal(t, "b", readFile(t, filepath.Join(to, "a", "b.txt")))
	assert.Equal(t, "c", readFile(t, filepath.Join(to, "c.txt")))
}

func TestSync_MaxDepth(t *testing.T) {
	from := t.TempDir()
	to := filepath.Join(t.TempDir(), "out")

	parts := make([]string, MaxDepth+1)
	for i := range parts {
		parts[i] = "d"
	}
	deep := filepath.Join(append([]string{from}, parts...)...)
	require.NoError(t, os.MkdirAll(deep, 0755))

	_, err := Sync(from, to)
	require.NoError(t, err)

	assert.DirExists(t, filepath.Join(append([]string{to}, parts[:MaxDepth]...)...))
	assert.NoDirExists(t, filepath.Join(append([]string{to}, parts...)...))
}

func TestSync_MissingSource(t *testing.T) {
	_, err := Sync(filepath.Join(t.TempDir(), "missing"), t.TempDir())
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestSync_SourceNotDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.txt")
	writeFile(t, file, "x")

	_, err := Sync(file, t.TempDir())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "not a directory"))
}

func TestDepth(t *testing.T) {
	assert.Equal(t, 0, depth("/a", "/a"))
	assert.Equal(t, 1, depth("/a", "/a/b"))
	assert.Equal(t, 3, depth("/a", "/a/b/c/d"))
}
