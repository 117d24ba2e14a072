package sorter

import (
	"context"
	"os"
	"runtime"
	"sort"
	"sync"

	"github.com/spf13/afero"

	"github.com/filesort/filesort/internal/action"
	"github.com/filesort/filesort/internal/apperrors"
	"github.com/filesort/filesort/internal/facts"
	"github.com/filesort/filesort/internal/fsutil"
	"github.com/filesort/filesort/internal/logging"
	"github.com/filesort/filesort/internal/match"
	"github.com/filesort/filesort/internal/rules"
)

var log = logging.GetLogger("sorter")

// Options overrides a single sort run: an explicit rule id allowlist
// and dry-run mode.
type Options struct {
	DryRun   bool
	RuleIDs  []string
	Observer Observer
	Workers  int
}

// Sorter walks a source directory and applies a ruleset to every file
// it finds, dispatching through an Executor and aggregating results
// into a Report.
type Sorter struct {
	FS     afero.Fs
	Runner action.CommandRunner
	Trash  action.TrashMover
}

// New builds a Sorter from the given filesystem, command runner and
// trash mover. A nil runner or trash is kept as nil: Execute actions
// and trash deletes then fail instead of falling back to a default.
func New(fs afero.Fs, runner action.CommandRunner, trash action.TrashMover) *Sorter {
	return &Sorter{FS: fs, Runner: runner, Trash: trash}
}

// Sort validates source, snapshots and sorts the ruleset, walks the
// tree and dispatches each file to a worker pool, and returns the
// aggregated Report. A cancelled context yields a partial Report with
// Cancelled=true rather than an error, per the cooperative
// cancellation contract.
func (s *Sorter) Sort(ctx context.Context, source string, ruleset []rules.Rule, opts Options) (*Report, error) {
	info, err := s.FS.Stat(source)
	if err != nil || !info.IsDir() {
		return nil, apperrors.SortBadSource(source, err)
	}

	sorted := snapshotRuleset(ruleset, opts.RuleIDs)

	paths, err := s.collectFiles(source)
	if err != nil {
		return nil, apperrors.SortBadSource(source, err)
	}

	observer := opts.Observer
	if observer == nil {
		observer = NoopObserver{}
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	exec := &action.Executor{FS: s.FS, Runner: s.Runner, Trash: s.Trash, DryRun: opts.DryRun, Source: source}

	report := newReport(opts.DryRun)
	tasks := make(chan string, len(paths))
	results := make(chan FileRecord, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go s.worker(ctx, &wg, tasks, results, sorted, exec)
	}

	for _, p := range paths {
		tasks <- p
	}
	close(tasks)

	go func() {
		wg.Wait()
		close(results)
	}()

	scanned, matched := 0, 0
	for fr := range results {
		report.record(fr)
		scanned++
		if fr.RuleID != "" {
			matched++
		}
		observer.OnProgress(scanned, matched, fr.Path)
	}

	if ctx.Err() != nil {
		report.Cancelled = true
	}
	return report, nil
}

func (s *Sorter) worker(ctx context.Context, wg *sync.WaitGroup, tasks <-chan string, results chan<- FileRecord, sorted []rules.Rule, exec *action.Executor) {
	defer wg.Done()
	for path := range tasks {
		select {
		case <-ctx.Done():
			return
		default:
		}

		fr := s.processFile(ctx, path, sorted, exec)
		results <- fr
	}
}

func (s *Sorter) processFile(ctx context.Context, path string, sorted []rules.Rule, exec *action.Executor) FileRecord {
	f, err := facts.Build(s.FS, path)
	if err != nil {
		return FileRecord{Path: path, Error: err.Error()}
	}

	for i := range sorted {
		rule := &sorted[i]
		if !match.Matches(rule, f) {
			continue
		}
		outcomes := exec.ExecuteSequence(ctx, rule.Then, f)
		fr := FileRecord{Path: path, RuleID: rule.ID, Outcomes: outcomes}
		for _, o := range outcomes {
			if !o.Success {
				fr.Error = o.Error
				break
			}
		}
		return fr
	}
	return FileRecord{Path: path}
}

// collectFiles performs a recursive traversal of source, yielding
// every regular file; symlinks are recorded by facts.Build's caller
// but never followed for recursion, matching afero.Walk's underlying
// filepath.Walk semantics.
func (s *Sorter) collectFiles(source string) ([]string, error) {
	var paths []string
	err := afero.Walk(s.FS, source, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if fsutil.IsPermissionError(err) {
				log.Warn().Str("path", path).Msg("permission denied, skipping")
			} else {
				log.Warn().Err(err).Str("path", path).Msg("skipping unreadable entry")
			}
			return nil
		}
		if info.IsDir() {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	return paths, err
}

// snapshotRuleset filters to enabled rules, intersects with an
// explicit id allowlist when given, and sorts by (-priority, id).
func snapshotRuleset(ruleset []rules.Rule, ids []string) []rules.Rule {
	var allow map[string]bool
	if len(ids) > 0 {
		allow = make(map[string]bool, len(ids))
		for _, id := range ids {
			allow[id] = true
		}
	}

	out := make([]rules.Rule, 0, len(ruleset))
	for _, r := range ruleset {
		if !r.Enabled {
			continue
		}
		if allow != nil && !allow[r.ID] {
			continue
		}
		out = append(out, r)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		return out[i].ID < out[j].ID
	})
	return out
}
