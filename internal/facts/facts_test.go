package facts

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBasicFields(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/Report.HTML", []byte("<html></html>"), 0o644))

	f, err := Build(fs, "/src/Report.HTML")
	require.NoError(t, err)

	assert.Equal(t, "Report.HTML", f.Basename)
	assert.Equal(t, "html", f.Extension)
	assert.Equal(t, int64(13), f.Size)
	assert.False(t, f.IsSymlink)
	assert.Equal(t, "text/html", f.MimeType)
}

func TestNameWithoutExtension(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/archive.tar.gz", []byte("x"), 0o644))
	f, err := Build(fs, "/src/archive.tar.gz")
	require.NoError(t, err)
	assert.Equal(t, "archive.tar", f.NameWithoutExtension())
}

func TestNameWithoutExtensionStripsMixedCaseExtension(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/photo.JPG", []byte("x"), 0o644))
	f, err := Build(fs, "/src/photo.JPG")
	require.NoError(t, err)
	assert.Equal(t, "jpg", f.Extension)
	assert.Equal(t, "photo", f.NameWithoutExtension())
}

func TestNoExifOutsideAllowList(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/a.txt", []byte("x"), 0o644))
	f, err := Build(fs, "/src/a.txt")
	require.NoError(t, err)

	_, ok := f.Exif()
	assert.False(t, ok)
}

func TestUnguessableExtensionFallsBackToOctetStream(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/a.weirdext", []byte("x"), 0o644))
	f, err := Build(fs, "/src/a.weirdext")
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", f.MimeType)
}
