package facts

import (
	"os"
	"time"

	"github.com/spf13/afero"
)

// lstat returns whether path is a symlink and the FileInfo describing
// it. For symlinks the info describes the link itself (size, mode),
// matching "record their presence for predicate purposes only" —
// traversal never follows a symlink to build facts about its target.
func lstat(fsys afero.Fs, path string) (bool, os.FileInfo, error) {
	if lst, ok := fsys.(afero.Lstater); ok {
		info, wasLstat, err := lst.LstatIfPossible(path)
		if err != nil {
			return false, nil, err
		}
		isSymlink := wasLstat && info.Mode()&os.ModeSymlink != 0
		return isSymlink, info, nil
	}
	info, err := fsys.Stat(path)
	if err != nil {
		return false, nil, err
	}
	return info.Mode()&os.ModeSymlink != 0, info, nil
}

// creationTime returns a best-effort file creation timestamp. The Go
// standard library exposes no portable birth-time field (ext4 without
// statx and afero's in-memory FS don't surface one either), so
// creation time falls back to the modification time rather than
// fabricating a value or reaching for a platform-specific syscall.
func creationTime(info os.FileInfo, modified time.Time) time.Time {
	_ = info
	return modified
}
