// Package fsutil holds small filesystem-error classification helpers
// shared by the sorter's traversal stage.
package fsutil

import (
	"strings"
	"syscall"
)

// IsPermissionError reports whether err represents a permission
// failure (EACCES/EPERM, or their string forms on platforms that
// don't surface a syscall.Errno), so the sorter's traversal can log a
// warning and skip the entry instead of failing the whole run.
func IsPermissionError(err error) bool {
	if err == nil {
		return false
	}
	if errno, ok := err.(syscall.Errno); ok {
		return errno == syscall.EACCES || errno == syscall.EPERM
	}
	msg := err.Error()
	return strings.Contains(msg, "permission denied") ||
		strings.Contains(msg, "operation not permitted") ||
		strings.Contains(msg, "access is denied")
}
