package importer

import (
	"context"

	"orderimport/internal/core"
	applog "orderimport/internal/log"
)

// LogReporter writes a debug record per accepted line and a warning per
// rejected line. Without a fixed logger it logs through the one carried by
// the context of each call.
type LogReporter struct {
	logger *applog.Logger
}

// NewLogReporter returns a reporter bound to logger; nil selects the context
// logger.
func NewLogReporter(logger *applog.Logger) *LogReporter {
	return &LogReporter{logger: logger}
}

func (r *LogReporter) loggerFor(ctx context.Context) *applog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return applog.FromContext(ctx)
}

func (r *LogReporter) Accepted(ctx context.Context, lineNo int, o core.Order) {
	r.loggerFor(ctx).DebugContext(ctx, "Line accepted",
		applog.FieldLineNo, lineNo,
		"order", o.String())
}

func (r *LogReporter) Rejected(ctx context.Context, d Diagnostic) {
	applog.NewStructuredLogger(r.loggerFor(ctx)).LogLineRejected(ctx, d.LineNo, d.Line, d.Reason(), d.Err)
}

// ReporterFunc adapts a plain function to Reporter. Only rejections are
// forwarded.
type ReporterFunc func(Diagnostic)

func (f ReporterFunc) Accepted(context.Context, int, core.Order) {}

func (f ReporterFunc) Rejected(_ context.Context, d Diagnostic) { f(d) }
