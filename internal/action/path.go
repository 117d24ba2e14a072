package action

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/filesort/filesort/internal/apperrors"
	"github.com/filesort/filesort/internal/facts"
)

// expandHome expands a leading `~` to the user's home directory.
func expandHome(path string) (string, error) {
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return home, nil
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// resolveDestinationDir applies the Move/Copy path-resolution policy:
// `~` expansion, relative-to-source resolution, and preserve_structure
// appending the file's source-relative directory.
func resolveDestinationDir(to string, preserveStructure bool, f *facts.Facts, sourceRoot string) (string, error) {
	expanded, err := expandHome(to)
	if err != nil {
		return "", apperrors.ActionIoFailed("resolve home directory", err)
	}
	dir := expanded
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(sourceRoot, dir)
	}
	if preserveStructure {
		rel, err := filepath.Rel(sourceRoot, filepath.Dir(f.Path))
		if err == nil && rel != "." {
			dir = filepath.Join(dir, rel)
		}
	}
	return dir, nil
}

// resolveCollision returns a free path for basename inside dir,
// appending -1, -2, ... before the extension when the plain name is
// already taken, bounded at 1000 attempts.
func resolveCollision(fsys afero.Fs, dir, basename string) (string, error) {
	candidate := filepath.Join(dir, basename)
	if exists, err := pathExists(fsys, candidate); err != nil {
		return "", apperrors.ActionIoFailed("stat destination", err)
	} else if !exists {
		return candidate, nil
	}

	ext := filepath.Ext(basename)
	stem := strings.TrimSuffix(basename, ext)

	for i := 1; i <= 1000; i++ {
		attempt := filepath.Join(dir, fmt.Sprintf("%s-%d%s", stem, i, ext))
		exists, err := pathExists(fsys, attempt)
		if err != nil {
			return "", apperrors.ActionIoFailed("stat destination", err)
		}
		if !exists {
			return attempt, nil
		}
	}
	return "", apperrors.ActionCollision(candidate)
}

func pathExists(fsys afero.Fs, path string) (bool, error) {
	_, err := fsys.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
