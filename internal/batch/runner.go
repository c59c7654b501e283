package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a batch progress update.
type ProgressEvent struct {
	Message string
	Path    string
	Level   ProgressLevel
}

// Operation processes one file and returns a short status line.
type Operation func(ctx context.Context, path string) (string, error)

// Result is the outcome for one file.
type Result struct {
	Path   string
	Status string
	Err    error
}

// Runner runs an Operation over several files.
type Runner struct {
	limit      int
	onProgress func(ProgressEvent)

	total int32
	done  int32
}

// NewRunner creates a Runner processing at most limit files at once.
// A limit below 1 is treated as 1.
func NewRunner(limit int, onProgress func(ProgressEvent)) *Runner {
	if limit < 1 {
		limit = 1
	}
	return &Runner{
		limit:      limit,
		onProgress: onProgress,
	}
}

// Run applies op to every distinct path.
//
// Results are in the order paths were first given. Files not started
// before ctx is cancelled get ctx.Err() as their error.
func (r *Runner) Run(ctx context.Context, paths []string, op Operation) ([]Result, error) {
	unique := Dedupe(paths)
	results := make([]Result, len(unique))

	atomic.StoreInt32(&r.total, int32(len(unique)))
	atomic.StoreInt32(&r.done, 0)

	g := new(errgroup.Group)
	g.SetLimit(r.limit)

	for i, path := range unique {
		g.Go(func() error {
			res := Result{Path: path}
			if err := ctx.Err(); err != nil {
				res.Err = err
			} else {
				r.progress(ProgressEvent{Message: fmt.Sprintf("Processing %s", filepath.Base(path)), Path: path, Level: LevelVerbose})
				res.Status, res.Err = op(ctx, path)
			}

			results[i] = res
			atomic.AddInt32(&r.done, 1)

			if res.Err != nil {
				r.progress(ProgressEvent{Message: res.Err.Error(), Path: path, Level: LevelError})
			} else {
				r.progress(ProgressEvent{Message: fmt.Sprintf("%s: %s", path, res.Status), Path: path, Level: LevelSuccess})
			}
			// Failures are reported per file, never through the group.
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		if len(results) == 1 {
			return results, results[0].Err
		}
		return results, fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return results, nil
}

// GetProgress returns how many files have finished out of the current run.
func (r *Runner) GetProgress() (done, total int32) {
	return atomic.LoadInt32(&r.done), atomic.LoadInt32(&r.total)
}

// Dedupe returns paths without repeats, keeping first occurrences in order.
// Paths that clean to the same file name are treated as repeats.
func Dedupe(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		key := filepath.Clean(p)
		if abs, err := filepath.Abs(p); err == nil {
			key = abs
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}

func (r *Runner) progress(event ProgressEvent) {
	if r.onProgress != nil {
		r.onProgress(event)
	}
}
