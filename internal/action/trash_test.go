package action

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTrash(t *testing.T) *FreedesktopTrash {
	t.Helper()
	return &FreedesktopTrash{HomeTrash: filepath.Join(t.TempDir(), "Trash")}
}

func TestTrashMovesFileAndWritesInfo(t *testing.T) {
	trash := newTestTrash(t)
	srcDir := t.TempDir()
	srcPath := filepath.Join(srcDir, "doc.txt")
	require.NoError(t, os.WriteFile(srcPath, []byte("hello"), 0o644))

	require.NoError(t, trash.Trash(srcPath))

	_, err := os.Stat(srcPath)
	assert.True(t, os.IsNotExist(err))

	trashedPath := filepath.Join(trash.HomeTrash, "files", "doc.txt")
	data, err := os.ReadFile(trashedPath)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	infoPath := filepath.Join(trash.HomeTrash, "info", "doc.txt.trashinfo")
	info, err := os.ReadFile(infoPath)
	require.NoError(t, err)
	assert.Contains(t, string(info), "[Trash Info]")
	assert.Contains(t, string(info), "Path=")
	assert.Contains(t, string(info), "DeletionDate=")
}

func TestTrashCollisionAppendsSuffix(t *testing.T) {
	trash := newTestTrash(t)
	dirA := t.TempDir()
	dirB := t.TempDir()
	pathA := filepath.Join(dirA, "note.txt")
	pathB := filepath.Join(dirB, "note.txt")
	require.NoError(t, os.WriteFile(pathA, []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(pathB, []byte("b"), 0o644))

	require.NoError(t, trash.Trash(pathA))
	require.NoError(t, trash.Trash(pathB))

	firstData, err := os.ReadFile(filepath.Join(trash.HomeTrash, "files", "note.txt"))
	require.NoError(t, err)
	assert.Equal(t, "a", string(firstData))

	secondData, err := os.ReadFile(filepath.Join(trash.HomeTrash, "files", "note.txt_1"))
	require.NoError(t, err)
	assert.Equal(t, "b", string(secondData))

	_, err = os.Stat(filepath.Join(trash.HomeTrash, "info", "note.txt_1.trashinfo"))
	assert.NoError(t, err)
}

func TestCopyThenRemoveCopiesContentAndRemovesSource(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()
	src := filepath.Join(srcDir, "a.bin")
	dst := filepath.Join(dstDir, "a.bin")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))

	require.NoError(t, copyThenRemove(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	_, err = os.Stat(src)
	assert.True(t, os.IsNotExist(err))
}
