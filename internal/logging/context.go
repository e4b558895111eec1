package logging

import (
	"context"
	"log/slog"
	"strings"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized structured logging key for organize run identifiers.
	FieldRunID = "run_id"
	// FieldAction is the standardized structured logging key for per-file outcomes.
	FieldAction = "action"
	// FieldCategory is the standardized structured logging key for category labels.
	FieldCategory = "category"
	// FieldSourcePath is the standardized structured logging key for the file being placed.
	FieldSourcePath = "source_path"
	// FieldDestPath is the standardized structured logging key for the resolved destination.
	FieldDestPath = "dest_path"
	// FieldSize is the standardized structured logging key for humanized file sizes.
	FieldSize = "size"
)

type runIDContextKey struct{}

// WithRunID stores the run identifier in the context so ContextFields can
// recover it.
func WithRunID(ctx context.Context, runID string) context.Context {
	runID = strings.TrimSpace(runID)
	if runID == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDContextKey{}, runID)
}

// RunIDFromContext returns the run identifier stored in ctx, if any.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	runID, ok := ctx.Value(runIDContextKey{}).(string)
	return runID, ok && runID != ""
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 1)
	if runID, ok := RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, runID))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from
// the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
