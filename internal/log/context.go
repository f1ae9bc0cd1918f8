package log

import (
	"context"
	"log/slog"
)

type contextKey string

const loggerContextKey contextKey = "logger"

// NewContext returns a copy of ctx carrying logger.
func NewContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}

// FromContext extracts a logger from the context
func FromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(loggerContextKey).(*Logger); ok {
		return logger
	}
	// Return default logger if not found
	return &Logger{
		Logger:    slog.Default(),
		component: "unknown",
	}
}

// StructuredLogger provides structured logging methods with context awareness
type StructuredLogger struct {
	logger *Logger
}

// NewStructuredLogger creates a new structured logger
func NewStructuredLogger(logger *Logger) *StructuredLogger {
	return &StructuredLogger{
		logger: logger,
	}
}

// LogLineRejected logs a line that failed validation
func (sl *StructuredLogger) LogLineRejected(ctx context.Context, lineNo int, line, reason string, err error) {
	fields := NewFields().
		WithLine(lineNo, line).
		WithReason(reason).
		WithError(err).
		WithOperation(OpParse)

	sl.logger.WarnContext(ctx, "Invalid line skipped", fields.ToSlice()...)
}

// LogSummaryPublished logs a summary handed to an output sink
func (sl *StructuredLogger) LogSummaryPublished(ctx context.Context, sink, ref string) {
	fields := NewFields().
		WithOperation(OpPublish).
		WithSink(sink)
	fields[FieldRef] = ref

	sl.logger.InfoContext(ctx, "Summary published", fields.ToSlice()...)
}

// LogError logs an error with structured context
func (sl *StructuredLogger) LogError(ctx context.Context, msg string, err error, operation string, fields LogFields) {
	if fields == nil {
		fields = NewFields()
	}
	allFields := fields.
		WithError(err).
		WithOperation(operation)

	sl.logger.ErrorContext(ctx, msg, allFields.ToSlice()...)
}
