package logging

import (
	"context"
	"io"
	"log/slog"
)

const redactedPlaceholder = "[redacted]"

// Logger is what the adapters log through. Key generation, store loading
// and CMS operations emit Debug records. The only Error record is a failed
// libcrypto initialization.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	With(args ...any) Logger
}

// New adapts l. A nil l binds to slog.Default().
func New(logger *slog.Logger) Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &sloggerFacade{logger: logger}
}

// Discard drops every record, for silencing the adapters in tests.
func Discard() Logger {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type sloggerFacade struct {
	logger *slog.Logger
}

func (l *sloggerFacade) Debug(ctx context.Context, msg string, args ...any) {
	l.logger.DebugContext(ctx, msg, args...)
}

func (l *sloggerFacade) Info(ctx context.Context, msg string, args ...any) {
	l.logger.InfoContext(ctx, msg, args...)
}

func (l *sloggerFacade) Warn(ctx context.Context, msg string, args ...any) {
	l.logger.WarnContext(ctx, msg, args...)
}

func (l *sloggerFacade) Error(ctx context.Context, msg string, args ...any) {
	l.logger.ErrorContext(ctx, msg, args...)
}

func (l *sloggerFacade) With(args ...any) Logger {
	return &sloggerFacade{logger: l.logger.With(args...)}
}

// Redacted stands in for an attribute whose value is a passphrase or key
// material. The key is kept so a record still shows that the secret was
// supplied.
func Redacted(key string) slog.Attr {
	return slog.String(key, redactedPlaceholder)
}

// Placeholder is the value Redacted records.
func Placeholder() string {
	return redactedPlaceholder
}
