package organize

import (
	"log/slog"
	"os"
	"path/filepath"

	"shelve/internal/classify"
	"shelve/internal/fileutil"
	"shelve/internal/logging"
	"shelve/internal/plan"
)

// runState carries the per-run machinery shared by every file in the
// snapshot: the category table, the collision resolver, and the optional
// duplicate index.
type runState struct {
	summary  Summary
	logger   *slog.Logger
	table    classify.Table
	fallback string
	date     string
	dest     string
	copyMode bool
	dryRun   bool
	sniff    bool
	dedupe   *dupeIndex
	resolver *plan.Resolver
}

func (o *Organizer) newRunState(logger *slog.Logger, summary Summary, dryRun bool) *runState {
	date := ""
	if o.cfg.Organize.ByDate {
		date = summary.Started.Format("2006-01-02")
	}
	var dedupe *dupeIndex
	if o.cfg.Organize.SkipDuplicates {
		dedupe = newDupeIndex(o.cfg.DigestAlgorithm(), logger)
	}
	return &runState{
		summary:  summary,
		logger:   logger,
		table:    o.cfg.CategoryTable(),
		fallback: o.cfg.FallbackLabel(),
		date:     date,
		dest:     o.cfg.Paths.Dest,
		copyMode: o.cfg.Organize.Copy,
		dryRun:   dryRun,
		sniff:    o.cfg.Organize.SniffContent,
		dedupe:   dedupe,
		resolver: plan.NewResolver(o.cfg.Organize.MaxRenameAttempts),
	}
}

// processFile runs the full pipeline for one source file: classify,
// resolve a collision-free target, check for duplicates, transfer. Every
// outcome lands in exactly one of moved, copied, or skipped.
func (s *runState) processFile(path string) {
	s.summary.Processed++

	if fileutil.Within(s.dest, path) {
		s.summary.Skipped++
		s.logger.Debug("already shelved",
			logging.String(logging.FieldAction, "skip-dest"),
			logging.String(logging.FieldSourcePath, path),
		)
		return
	}

	info, err := os.Stat(path)
	if err != nil {
		s.fail(path, "stat source file", err)
		return
	}

	base := filepath.Base(path)
	ext := classify.Ext(base)
	category := s.categorize(path, ext)
	relDir := plan.RelativeDir(category, s.date, ext)

	target, err := s.resolver.Resolve(s.dest, relDir, base)
	if err != nil {
		s.fail(path, "resolve target name", err)
		return
	}

	folder := filepath.Join(s.dest, relDir)
	var sum string
	if s.dedupe != nil {
		var duplicate bool
		duplicate, sum = s.dedupe.Check(folder, path)
		if duplicate {
			s.summary.Skipped++
			s.logger.Info("duplicate skipped",
				logging.String(logging.FieldAction, "skip-duplicate"),
				logging.String(logging.FieldCategory, category),
				logging.String(logging.FieldSourcePath, path),
			)
			return
		}
	}

	if s.dryRun {
		s.logger.Info("would shelve file",
			logging.String(logging.FieldAction, "plan"),
			logging.String(logging.FieldCategory, category),
			logging.String(logging.FieldSourcePath, path),
			logging.String(logging.FieldDestPath, target),
			logging.Int64(logging.FieldSize, info.Size()),
		)
		s.commit(folder, target, sum, info.Size())
		return
	}

	action := "move"
	if s.copyMode {
		action = "copy"
	}

	if err := os.MkdirAll(folder, 0o755); err != nil {
		s.fail(path, "create destination directory", err)
		return
	}

	transfer := fileutil.MoveFile
	if s.copyMode {
		transfer = fileutil.CopyPreserving
	}
	if err := transfer(path, target); err != nil {
		s.fail(path, action+" file", err)
		return
	}

	s.logger.Info("file shelved",
		logging.String(logging.FieldAction, action),
		logging.String(logging.FieldCategory, category),
		logging.String(logging.FieldSourcePath, path),
		logging.String(logging.FieldDestPath, target),
		logging.Int64(logging.FieldSize, info.Size()),
	)
	s.commit(folder, target, sum, info.Size())
}

// categorize maps one file to its category label. Table lookups win;
// unknown extensions optionally fall back to content sniffing before
// landing in the fallback category.
func (s *runState) categorize(path, ext string) string {
	if !s.sniff {
		return classify.Category(s.table, ext, s.fallback)
	}
	if category, ok := s.table[ext]; ok {
		return category
	}
	if category, ok := classify.Sniff(path, s.table); ok {
		return category
	}
	return s.fallback
}

// commit records a completed (or simulated) placement. Dry runs share
// the reservation and duplicate bookkeeping so later files in the run see
// identical collision state, but only real transfers count as moved or
// copied. Bytes tracks planned sizes either way.
func (s *runState) commit(folder, target, sum string, size int64) {
	s.resolver.Reserve(target)
	if s.dedupe != nil && sum != "" {
		s.dedupe.Add(folder, sum)
	}
	if !s.dryRun {
		if s.copyMode {
			s.summary.Copied++
		} else {
			s.summary.Moved++
		}
	}
	s.summary.Bytes += size
}

// fail records a file the run could not place. Failed files still count
// as skipped so the counter identity holds.
func (s *runState) fail(path, operation string, err error) {
	s.summary.Skipped++
	s.summary.Failed++
	s.logger.Warn("file not shelved",
		logging.String(logging.FieldAction, "error"),
		logging.String(logging.FieldSourcePath, path),
		logging.String("operation", operation),
		logging.Error(err),
	)
}
