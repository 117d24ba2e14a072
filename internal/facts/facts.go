// Package facts builds the FileFacts record consumed by the matcher
// and template engine: everything a rule might need to know about a
// file, computed once per file before matching begins.
package facts

import (
	"mime"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"
)

// exifExtensions is the small allow-list of extensions EXIF decoding
// is attempted against; every other extension short-circuits to "no
// EXIF" without touching the file.
var exifExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"tiff": true,
	"heic": true,
}

// Facts is the precomputed bundle of observations about a single file.
type Facts struct {
	Path      string
	Basename  string
	Extension string // lowercased, no leading dot
	Size      int64
	Created   time.Time
	Modified  time.Time
	IsSymlink bool
	MimeType  string
	Owner     string // platform-specific, may be empty

	fs afero.Fs

	exifOnce sync.Once
	exifMap  map[string]string
	exifOK   bool
}

// Build stats path once and derives the facts a Matcher/template
// expansion needs. EXIF decoding is deferred until Exif() is called.
func Build(fsys afero.Fs, path string) (*Facts, error) {
	isSymlink, info, err := lstat(fsys, path)
	if err != nil {
		return nil, err
	}

	base := filepath.Base(path)
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(base)), ".")

	modified := info.ModTime().UTC()
	created := creationTime(info, modified)

	f := &Facts{
		Path:      path,
		Basename:  base,
		Extension: ext,
		Size:      info.Size(),
		Created:   created,
		Modified:  modified,
		IsSymlink: isSymlink,
		MimeType:  guessMime(ext),
		fs:        fsys,
	}
	return f, nil
}

func guessMime(ext string) string {
	if ext == "" {
		return "application/octet-stream"
	}
	t := mime.TypeByExtension("." + ext)
	if t == "" {
		return "application/octet-stream"
	}
	// mime.TypeByExtension can append a charset parameter; the
	// matcher only cares about the primary type/subtype.
	if idx := strings.IndexByte(t, ';'); idx >= 0 {
		t = strings.TrimSpace(t[:idx])
	}
	return t
}

// NameWithoutExtension returns the basename with its extension
// stripped, used by the template engine's `name` variable. Trims
// against the basename's actual extension, not a reconstruction from
// the lowercased Extension field, so a mixed-case on-disk extension
// (e.g. "photo.JPG") still strips cleanly.
func (f *Facts) NameWithoutExtension() string {
	ext := filepath.Ext(f.Basename)
	return strings.TrimSuffix(f.Basename, ext)
}

// CanHaveExif reports whether this file's extension is in the small
// allow-list EXIF decoding is attempted against.
func (f *Facts) CanHaveExif() bool {
	return exifExtensions[f.Extension]
}

// Exif lazily decodes EXIF tags into a flat key/value map. Decode
// failure (unsupported format, corrupt data, wrong extension) is
// reported as ok=false, never as an error: per the matcher's
// contract, "no EXIF" and "decode failed" are indistinguishable.
func (f *Facts) Exif() (map[string]string, bool) {
	f.exifOnce.Do(func() {
		if !f.CanHaveExif() {
			return
		}
		m, err := decodeExif(f.fs, f.Path)
		if err != nil {
			return
		}
		f.exifMap = m
		f.exifOK = true
	})
	return f.exifMap, f.exifOK
}

// ExifDate returns the EXIF-reported original date, if present and
// decodable, else the zero time with ok=false.
func (f *Facts) ExifDate() (time.Time, bool) {
	m, ok := f.Exif()
	if !ok {
		return time.Time{}, false
	}
	raw, ok := m["DateTimeOriginal"]
	if !ok {
		raw, ok = m["DateTime"]
	}
	if !ok {
		return time.Time{}, false
	}
	raw = strings.Trim(raw, `"`)
	t, err := time.Parse("2006:01:02 15:04:05", raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
