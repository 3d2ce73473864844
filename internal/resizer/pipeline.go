package resizer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	ErrNoSource      = errors.New("no source folder selected")
	ErrNotDirectory  = errors.New("not a directory")
	ErrRunInProgress = errors.New("a resize run is already in progress")
)

type options struct {
	log *zap.Logger
}

type Option func(*options)

// WithLogger sets the diagnostics logger. Status lines still go to the sink.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// Run resizes every supported image directly inside req.SourceDir and
// writes the copies to req.ResolvedOutputDir().
//
// Per-file problems never abort the run; they are reported on sink and
// counted in the returned Summary. Run only returns an error for folder
// level failures, in which case no summary is emitted, or when ctx is
// cancelled between files, in which case the summary covers the files
// classified so far.
func Run(ctx context.Context, req Request, sink Sink, opts ...Option) (Summary, error) {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if sink == nil {
		sink = func(Event) {}
	}
	log := o.log.With(zap.String("source", req.SourceDir))

	summary := Summary{}

	if req.SourceDir == "" {
		return summary, ErrNoSource
	}
	if !req.Scale.Valid() {
		return summary, fmt.Errorf("%w: %d%%", ErrInvalidScale, int(req.Scale))
	}

	info, err := os.Stat(req.SourceDir)
	if err != nil {
		return summary, fmt.Errorf("source folder: %w", err)
	}
	if !info.IsDir() {
		return summary, fmt.Errorf("source folder %s: %w", req.SourceDir, ErrNotDirectory)
	}

	outputDir := req.ResolvedOutputDir()
	created, err := ensureDir(outputDir)
	if err != nil {
		return summary, fmt.Errorf("output folder: %w", err)
	}
	if created {
		sink(Event{Kind: EventInfo, Message: fmt.Sprintf("Created output folder: %s", outputDir)})
	}

	entries, err := os.ReadDir(req.SourceDir)
	if err != nil {
		return summary, fmt.Errorf("read source folder: %w", err)
	}

	log.Info("run started",
		zap.String("output", outputDir),
		zap.String("scale", req.Scale.String()),
		zap.String("on_conflict", req.Conflict.String()),
		zap.Int("entries", len(entries)),
	)

	sink(Event{Kind: EventStart, Entries: len(entries)})

	var runErr error
	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			runErr = err
			sink(Event{Kind: EventInfo, Message: fmt.Sprintf("Run cancelled after %d of %d entries.", i, len(entries))})
			break
		}

		c := newCandidate(req.SourceDir, entry.Name())

		var res Result
		if !isRegular(entry, c.Path) || !SupportedExtension(c.Ext) {
			res = Result{Candidate: c, Outcome: OutcomeSkippedUnsupported}
		} else {
			sink(Event{Kind: EventInfo, Message: fmt.Sprintf("Processing: %s...", c.Name)})
			res = processCandidate(c, req, outputDir, log)
		}

		summary.add(res.Outcome)
		if res.Outcome == OutcomeErrored {
			log.Warn("file failed", zap.String("file", c.Name), zap.Error(res.Err))
		}
		sink(Event{Kind: EventFile, Message: resultMessage(res), Result: &res})
	}

	sink(Event{Kind: EventInfo, Message: "--- Processing complete ---"})
	sink(Event{Kind: EventInfo, Message: fmt.Sprintf("Total images processed: %d", summary.Processed)})
	sink(Event{Kind: EventInfo, Message: fmt.Sprintf("Total files skipped: %d", summary.Skipped)})
	sink(Event{Kind: EventInfo, Message: fmt.Sprintf("Total errors: %d", summary.Errors)})
	final := summary
	sink(Event{Kind: EventDone, Summary: &final})

	log.Info("run finished",
		zap.Int("processed", summary.Processed),
		zap.Int("skipped", summary.Skipped),
		zap.Int("errors", summary.Errors),
	)

	return summary, runErr
}

func resultMessage(res Result) string {
	switch res.Outcome {
	case OutcomeProcessed:
		return fmt.Sprintf("  --> Resized and saved as: %s", res.OutputName)
	case OutcomeSkippedUnrecognized:
		return fmt.Sprintf("  Skipping %s: not a recognized image format or the file is corrupted.", res.Name)
	case OutcomeErrored:
		return fmt.Sprintf("  Error processing %s: %v", res.Name, res.Err)
	default:
		return fmt.Sprintf("  Skipping: %s (not a supported image file or is a directory).", res.Name)
	}
}

// isRegular follows symlinks, so a link to an image is processed like the
// image itself.
func isRegular(entry fs.DirEntry, path string) bool {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.Type().IsRegular()
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// ensureDir creates dir and its parents. It reports whether dir was missing.
func ensureDir(dir string) (bool, error) {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("%s: %w", dir, ErrNotDirectory)
		}
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, err
	}
	return true, nil
}

// Runner rejects overlapping runs. The zero value is ready to use.
type Runner struct {
	running atomic.Bool
}

// Run is the package-level Run guarded against re-entry. A second call while
// one is in flight returns ErrRunInProgress without touching the filesystem.
func (r *Runner) Run(ctx context.Context, req Request, sink Sink, opts ...Option) (Summary, error) {
	if !r.running.CompareAndSwap(false, true) {
		return Summary{}, ErrRunInProgress
	}
	defer r.running.Store(false)

	return Run(ctx, req, sink, opts...)
}

// Running reports whether a run is in flight.
func (r *Runner) Running() bool {
	return r.running.Load()
}
