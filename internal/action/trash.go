package action

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// FreedesktopTrash is the default TrashMover: it follows the
// freedesktop.org trash specification's "home trash" layout
// (~/.local/share/Trash/{files,info}). No trash-moving library
// appears anywhere in the reference corpus and no specific ecosystem
// candidate could be named with confidence, so this stays a small
// standard-library implementation behind the TrashMover interface —
// a real library can be substituted later without touching the
// executor.
type FreedesktopTrash struct {
	// HomeTrash overrides the trash directory, mainly for tests.
	HomeTrash string
}

// NewFreedesktopTrash resolves the trash directory under the user's
// home; returns an error if the home directory cannot be resolved.
func NewFreedesktopTrash() (*FreedesktopTrash, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return &FreedesktopTrash{HomeTrash: filepath.Join(home, ".local", "share", "Trash")}, nil
}

func (t *FreedesktopTrash) Trash(path string) error {
	filesDir := filepath.Join(t.HomeTrash, "files")
	infoDir := filepath.Join(t.HomeTrash, "info")
	if err := os.MkdirAll(filesDir, 0o700); err != nil {
		return err
	}
	if err := os.MkdirAll(infoDir, 0o700); err != nil {
		return err
	}

	base := filepath.Base(path)
	dest := filepath.Join(filesDir, base)
	infoPath := filepath.Join(infoDir, base+".trashinfo")
	for i := 1; ; i++ {
		if _, err := os.Stat(dest); os.IsNotExist(err) {
			break
		}
		suffix := strconv.Itoa(i)
		dest = filepath.Join(filesDir, base+"_"+suffix)
		infoPath = filepath.Join(infoDir, base+"_"+suffix+".trashinfo")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	info := fmt.Sprintf("[Trash Info]\nPath=%s\nDeletionDate=%s\n", absPath, time.Now().Format("2006-01-02T15:04:05"))
	if err := os.WriteFile(infoPath, []byte(info), 0o600); err != nil {
		return err
	}

	if err := os.Rename(path, dest); err == nil {
		return nil
	}
	// Cross-device rename: fall back to copy+remove.
	return copyThenRemove(path, dest)
}

func copyThenRemove(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
