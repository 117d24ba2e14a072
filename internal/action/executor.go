// Package action executes a single Rule's action sequence against a
// single file: path resolution, directory creation, collision
// handling, trash-vs-permanent delete and dry-run short-circuiting.
package action

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/filesort/filesort/internal/apperrors"
	"github.com/filesort/filesort/internal/facts"
	"github.com/filesort/filesort/internal/rules"
	"github.com/filesort/filesort/internal/template"
)

// Outcome records the result of one action's attempt against one file.
type Outcome struct {
	Kind    string `json:"kind"`
	Target  string `json:"target,omitempty"`
	Success bool   `json:"success"`
	DryRun  bool   `json:"dry_run"`
	Error   string `json:"error,omitempty"`
}

// CommandRunner is the pluggable collaborator the Execute action
// dispatches through, so the core never depends on a concrete process
// model.
type CommandRunner interface {
	Run(ctx context.Context, command string, args []string) (exitCode int, err error)
}

// TrashMover delegates a permanent-vs-trash delete decision to a
// platform facility.
type TrashMover interface {
	Trash(path string) error
}

// Executor runs action sequences for one sort. It is safe for
// concurrent use by multiple workers: all state is read-only or
// pushed down into per-call arguments.
type Executor struct {
	FS      afero.Fs
	Runner  CommandRunner
	Trash   TrashMover
	DryRun  bool
	Source  string
}

// ExecuteSequence runs actions in order against f, stopping at the
// first failure (including a Skip, which stops successfully).
func (e *Executor) ExecuteSequence(ctx context.Context, actions []rules.Action, f *facts.Facts) []Outcome {
	outcomes := make([]Outcome, 0, len(actions))
	for _, a := range actions {
		outcome := e.executeOne(ctx, a, f)
		outcomes = append(outcomes, outcome)
		if a.Skip != nil {
			break
		}
		if !outcome.Success {
			break
		}
	}
	return outcomes
}

func (e *Executor) executeOne(ctx context.Context, a rules.Action, f *facts.Facts) Outcome {
	switch {
	case a.Move != nil:
		return e.doMoveOrCopy("move", a.Move.To, a.Move.PreserveStructure, f, true)
	case a.Copy != nil:
		return e.doMoveOrCopy("copy", a.Copy.To, a.Copy.PreserveStructure, f, false)
	case a.Rename != nil:
		return e.doRename(a.Rename.To, f)
	case a.Delete != nil:
		return e.doDelete(a.Delete.Trash, f)
	case a.Skip != nil:
		return Outcome{Kind: "skip", Success: true}
	case a.Execute != nil:
		return e.doExecute(ctx, a.Execute, f)
	case a.Compress != nil:
		return e.doCompress(a.Compress.To, a.Compress.PreserveStructure, f)
	default:
		return Outcome{Kind: "unknown", Success: false, Error: "action has no recognized kind"}
	}
}

func fail(kind, target string, err error) Outcome {
	return Outcome{Kind: kind, Target: target, Success: false, Error: err.Error()}
}

func (e *Executor) doMoveOrCopy(kind, to string, preserveStructure bool, f *facts.Facts, remove bool) Outcome {
	expandedTo, err := template.Expand(to, f)
	if err != nil {
		return fail(kind, "", err)
	}
	destDir, err := resolveDestinationDir(expandedTo, preserveStructure, f, e.Source)
	if err != nil {
		return fail(kind, "", err)
	}

	if e.DryRun {
		target := filepath.Join(destDir, f.Basename)
		return Outcome{Kind: kind, Target: target, Success: true, DryRun: true}
	}

	if err := e.FS.MkdirAll(destDir, 0o755); err != nil {
		return fail(kind, destDir, apperrors.ActionIoFailed("create destination directory", err))
	}

	target, err := resolveCollision(e.FS, destDir, f.Basename)
	if err != nil {
		return fail(kind, destDir, err)
	}

	if remove {
		if err := e.FS.Rename(f.Path, target); err != nil {
			return fail(kind, target, apperrors.ActionIoFailed("move file", err))
		}
	} else {
		if err := copyFile(e.FS, f.Path, target); err != nil {
			return fail(kind, target, apperrors.ActionIoFailed("copy file", err))
		}
	}
	return Outcome{Kind: kind, Target: target, Success: true}
}

func (e *Executor) doRename(to string, f *facts.Facts) Outcome {
	expanded, err := template.Expand(to, f)
	if err != nil {
		return fail("rename", "", err)
	}
	newBase := filepath.Base(expanded)
	dir := filepath.Dir(f.Path)

	if e.DryRun {
		return Outcome{Kind: "rename", Target: filepath.Join(dir, newBase), Success: true, DryRun: true}
	}

	target, err := resolveCollision(e.FS, dir, newBase)
	if err != nil {
		return fail("rename", dir, err)
	}
	if err := e.FS.Rename(f.Path, target); err != nil {
		return fail("rename", target, apperrors.ActionIoFailed("rename file", err))
	}
	return Outcome{Kind: "rename", Target: target, Success: true}
}

func (e *Executor) doDelete(trash bool, f *facts.Facts) Outcome {
	if e.DryRun {
		return Outcome{Kind: "delete", Target: f.Path, Success: true, DryRun: true}
	}
	if trash {
		if e.Trash == nil {
			return fail("delete", f.Path, apperrors.ActionTrashUnavailable("no trash facility configured", nil))
		}
		if err := e.Trash.Trash(f.Path); err != nil {
			return fail("delete", f.Path, apperrors.ActionTrashUnavailable("send to trash", err))
		}
		return Outcome{Kind: "delete", Target: f.Path, Success: true}
	}
	if err := e.FS.Remove(f.Path); err != nil {
		return fail("delete", f.Path, apperrors.ActionIoFailed("remove file", err))
	}
	return Outcome{Kind: "delete", Target: f.Path, Success: true}
}

func (e *Executor) doExecute(ctx context.Context, a *rules.ExecuteAction, f *facts.Facts) Outcome {
	command, err := template.Expand(a.Command, f)
	if err != nil {
		return fail("execute", "", err)
	}
	args := make([]string, len(a.Args))
	for i, raw := range a.Args {
		expanded, err := template.Expand(raw, f)
		if err != nil {
			return fail("execute", "", err)
		}
		args[i] = expanded
	}

	if e.DryRun {
		return Outcome{Kind: "execute", Target: command, Success: true, DryRun: true}
	}
	if e.Runner == nil {
		return fail("execute", command, fmt.Errorf("no command runner configured"))
	}
	exitCode, err := e.Runner.Run(ctx, command, args)
	if err != nil {
		return fail("execute", command, apperrors.ActionIoFailed("spawn command", err))
	}
	if exitCode != 0 {
		return fail("execute", command, apperrors.ActionExecuteFailed(exitCode))
	}
	return Outcome{Kind: "execute", Target: command, Success: true}
}

func copyFile(fsys afero.Fs, src, dst string) error {
	in, err := fsys.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := fsys.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return nil
}
