package organize

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"shelve/internal/config"
	"shelve/internal/faults"
	"shelve/internal/logging"
	"shelve/internal/preflight"
	"shelve/internal/runlock"
)

// Options carries per-invocation switches that never come from the
// configuration file.
type Options struct {
	DryRun bool
}

// Summary aggregates the counters for one organize run. In real runs
// Processed equals Moved + Copied + Skipped; dry runs leave Moved and
// Copied at zero. Failed counts the subset of skipped files whose
// transfer was attempted and did not complete.
type Summary struct {
	RunID     string
	DryRun    bool
	Processed int
	Moved     int
	Copied    int
	Skipped   int
	Failed    int
	Bytes     int64
	Started   time.Time
	Elapsed   time.Duration
}

// Organizer executes organize runs against a single configuration.
type Organizer struct {
	cfg    *config.Config
	logger *slog.Logger
	now    func() time.Time
}

// New constructs an organizer bound to cfg. A nil logger disables output.
func New(cfg *config.Config, logger *slog.Logger) *Organizer {
	return NewWithClock(cfg, logger, time.Now)
}

// NewWithClock injects the time source so tests can pin the dated folder
// layer and run identifiers.
func NewWithClock(cfg *config.Config, logger *slog.Logger, now func() time.Time) *Organizer {
	if logger == nil {
		logger = logging.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &Organizer{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "organize"),
		now:    now,
	}
}

// Run performs one organize pass. Per-file failures are recorded in the
// summary and do not abort the run; a cancelled context stops between
// files and returns the partial summary alongside the context error.
func (o *Organizer) Run(ctx context.Context, opts Options) (Summary, error) {
	if o.cfg == nil {
		return Summary{}, faults.Wrap(faults.ErrConfiguration, "organize", "run", "configuration unavailable", nil)
	}

	started := o.now()
	summary := Summary{
		RunID:   newRunID(started),
		DryRun:  opts.DryRun,
		Started: started,
	}

	if err := o.verify(opts.DryRun); err != nil {
		return summary, err
	}

	// Dry runs hold the lock too; their collision probes read the
	// destination and must not race a live run.
	release, err := runlock.Acquire(o.cfg.Paths.Dest)
	if err != nil {
		return summary, err
	}
	defer release()

	logger, closeRunLog := o.runLogger(summary.RunID)
	defer closeRunLog()
	ctx = logging.WithRunID(ctx, summary.RunID)
	logger = logging.WithContext(ctx, logger)

	logger.Info("organize run starting",
		logging.String(logging.FieldSourcePath, o.cfg.Paths.Source),
		logging.String(logging.FieldDestPath, o.cfg.Paths.Dest),
		logging.Bool("dry_run", opts.DryRun),
		logging.Bool("copy", o.cfg.Organize.Copy),
		logging.Bool("by_date", o.cfg.Organize.ByDate),
		logging.Bool("skip_duplicates", o.cfg.Organize.SkipDuplicates),
	)

	files, err := o.scan(logger)
	if err != nil {
		return summary, err
	}

	state := o.newRunState(logger, summary, opts.DryRun)
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			state.summary.Elapsed = o.now().Sub(started)
			logger.Warn("organize run cancelled",
				logging.Int("processed", state.summary.Processed),
				logging.Int("remaining", len(files)-state.summary.Processed),
			)
			return state.summary, err
		}
		state.processFile(path)
	}

	state.summary.Elapsed = o.now().Sub(started)
	o.logSummary(logger, state.summary)
	return state.summary, nil
}

// verify gates the run on preflight. Dry runs only need a readable
// source and a sane layout; nothing is written.
func (o *Organizer) verify(dryRun bool) error {
	if !dryRun {
		return preflight.Verify(o.cfg)
	}
	for _, result := range []preflight.Result{
		preflight.CheckSource(o.cfg.Paths.Source, false),
		preflight.CheckOverlap(o.cfg.Paths.Source, o.cfg.Paths.Dest),
	} {
		if !result.Passed {
			return faults.Wrap(faults.ErrValidation, "preflight", strings.ToLower(result.Name), result.Detail, nil)
		}
	}
	return nil
}

// scan snapshots every regular file under the source in walk order. The
// snapshot is taken before any placement so the run never observes its
// own output.
func (o *Organizer) scan(logger *slog.Logger) ([]string, error) {
	source := o.cfg.Paths.Source
	var files []string
	err := filepath.WalkDir(source, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == source {
				return walkErr
			}
			logger.Warn("skipping unreadable path",
				logging.String(logging.FieldSourcePath, path),
				logging.Error(walkErr),
			)
			return nil
		}
		if entry.IsDir() {
			return nil
		}
		if !entry.Type().IsRegular() {
			logger.Debug("ignoring non-regular file", logging.String(logging.FieldSourcePath, path))
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, faults.Wrap(faults.ErrIO, "organize", "scan", "walk source directory", err)
	}
	return files, nil
}

// runLogger tees the organizer's logger into a per-run log file.
// Failures to open the run log degrade to the base logger alone.
func (o *Organizer) runLogger(runID string) (*slog.Logger, func()) {
	if err := o.cfg.EnsureDirectories(); err != nil {
		o.logger.Warn("log directory unavailable", logging.Error(err))
		return o.logger, func() {}
	}
	logging.CleanupRunLogs(o.logger, o.cfg.Paths.LogDir, o.cfg.Logging.RetentionDays)
	handler, closer, err := logging.OpenRunLog(o.cfg.Paths.LogDir, runID)
	if err != nil {
		o.logger.Warn("run log unavailable", logging.Error(err))
		return o.logger, func() {}
	}
	return logging.TeeLogger(o.logger, handler), func() { _ = closer.Close() }
}

func (o *Organizer) logSummary(logger *slog.Logger, s Summary) {
	message := "organize run completed"
	if s.DryRun {
		message = "dry run completed"
	}
	logger.Info(message,
		logging.Int("processed", s.Processed),
		logging.Int("moved", s.Moved),
		logging.Int("copied", s.Copied),
		logging.Int("skipped", s.Skipped),
		logging.Int("failed", s.Failed),
		logging.String("transferred", humanize.IBytes(uint64(s.Bytes))),
		logging.Duration("elapsed", s.Elapsed),
	)
}

// newRunID combines a sortable UTC timestamp with a short random suffix
// so run logs order chronologically and never collide.
func newRunID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return now.UTC().Format("20060102T150405") + "-" + suffix
}
