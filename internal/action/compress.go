package action

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"

	"github.com/filesort/filesort/internal/apperrors"
	"github.com/filesort/filesort/internal/facts"
)

// doCompress gzips the matched file into a destination directory,
// leaving the source untouched. Grounded on the original tool's
// flate2-based compress feature; the Go rendering uses the standard
// library since no third-party compression library appears anywhere
// in the reference corpus.
func (e *Executor) doCompress(to string, preserveStructure bool, f *facts.Facts) Outcome {
	destDir, err := resolveDestinationDir(to, preserveStructure, f, e.Source)
	if err != nil {
		return fail("compress", "", err)
	}
	targetBase := f.Basename + ".gz"

	if e.DryRun {
		return Outcome{Kind: "compress", Target: filepath.Join(destDir, targetBase), Success: true, DryRun: true}
	}

	if err := e.FS.MkdirAll(destDir, 0o755); err != nil {
		return fail("compress", destDir, apperrors.ActionIoFailed("create destination directory", err))
	}

	target, err := resolveCollision(e.FS, destDir, targetBase)
	if err != nil {
		return fail("compress", destDir, err)
	}

	in, err := e.FS.Open(f.Path)
	if err != nil {
		return fail("compress", target, apperrors.ActionIoFailed("open source file", err))
	}
	defer in.Close()

	out, err := e.FS.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fail("compress", target, apperrors.ActionIoFailed("create destination file", err))
	}
	defer out.Close()

	gz := gzip.NewWriter(out)
	gz.Name = f.Basename
	if _, err := io.Copy(gz, in); err != nil {
		return fail("compress", target, apperrors.ActionIoFailed("write compressed data", err))
	}
	if err := gz.Close(); err != nil {
		return fail("compress", target, apperrors.ActionIoFailed("flush compressed data", err))
	}
	return Outcome{Kind: "compress", Target: target, Success: true}
}
