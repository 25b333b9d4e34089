// Package logging holds the small structured-logging contract the rest of
// the project codes against, plus an slog-backed implementation.
package logging

import "context"

// Logger accepts a message followed by alternating key/value pairs:
//
//	log.Info(ctx, "metadata saved", "project", project, "fingerprint", fp)
type Logger interface {
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger whose lines always carry the given pairs.
	With(args ...any) Logger
}
