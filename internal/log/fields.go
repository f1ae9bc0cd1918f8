package log

import "sort"

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldRunID     = "run_id"
	FieldFile      = "file"
	FieldLineNo    = "line_no"
	FieldLine      = "line"
	FieldReason    = "reason"
	FieldError     = "error"
	FieldOperation = "operation"
	FieldSink      = "sink"
	FieldRef       = "ref"
	FieldValid     = "valid_orders"
	FieldRejected  = "rejected_lines"
	FieldDuration  = "duration_ms"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentImporter  = "importer"
	ComponentDiscovery = "discovery"
	ComponentReport    = "report"
	ComponentAMQP      = "amqp"
	ComponentSheets    = "sheets"
	ComponentBackend   = "backend"
)

// Operations defines standard operation names
const (
	OpParse    = "parse"
	OpScan     = "scan"
	OpProbe    = "probe"
	OpSelect   = "select"
	OpPublish  = "publish"
	OpValidate = "validate"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithLine adds line number and content
func (f LogFields) WithLine(lineNo int, line string) LogFields {
	f[FieldLineNo] = lineNo
	f[FieldLine] = line
	return f
}

// WithReason adds rejection reason
func (f LogFields) WithReason(reason string) LogFields {
	f[FieldReason] = reason
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithSink adds sink field
func (f LogFields) WithSink(sink string) LogFields {
	f[FieldSink] = sink
	return f
}

// ToSlice converts LogFields to a slice for slog, ordered by key
func (f LogFields) ToSlice() []any {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	slice := make([]any, 0, len(f)*2)
	for _, k := range keys {
		slice = append(slice, k, f[k])
	}
	return slice
}
