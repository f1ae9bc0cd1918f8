package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"", slog.LevelInfo, true},
		{"warning", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"loud", slog.LevelInfo, false},
	}
	for _, tc := range cases {
		got, err := ParseLevel(tc.in)
		if (err == nil) != tc.ok || got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, %v", tc.in, got, err)
		}
	}
}

func TestLoggerJSONCarriesComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelInfo, Format: "json", Component: ComponentImporter, Output: &buf})
	l.Info("hello", FieldRunID, "r-1")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode log line: %v (%s)", err, buf.String())
	}
	if rec[FieldComponent] != ComponentImporter || rec[FieldRunID] != "r-1" {
		t.Fatalf("unexpected record: %v", rec)
	}
}

func TestLoggerLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelWarn, Component: ComponentApp, Output: &buf})
	l.Debug("hidden")
	l.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing below warn, got %q", buf.String())
	}
	l.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("expected warn record, got %q", buf.String())
	}
}

func TestContextRoundTrip(t *testing.T) {
	l := New(Config{Component: ComponentReport, Output: &bytes.Buffer{}})
	ctx := NewContext(context.Background(), l)
	if got := FromContext(ctx); got != l {
		t.Fatalf("expected same logger back")
	}
	if got := FromContext(context.Background()); got.Component() != "unknown" {
		t.Fatalf("expected fallback logger, got component %q", got.Component())
	}
}

func TestStructuredLoggerRejected(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Format: "json", Component: ComponentImporter, Output: &buf})
	NewStructuredLogger(l).LogLineRejected(context.Background(), 3, "3;;10.00", "empty_field", errors.New("empty field"))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec["level"] != "WARN" || rec[FieldLine] != "3;;10.00" || rec[FieldReason] != "empty_field" {
		t.Fatalf("unexpected record: %v", rec)
	}
	if rec[FieldLineNo] != float64(3) {
		t.Fatalf("unexpected line number: %v", rec[FieldLineNo])
	}
}

func TestToSliceOrdered(t *testing.T) {
	got := NewFields().WithSink("amqp").WithOperation(OpPublish).ToSlice()
	if len(got) != 4 || got[0] != FieldOperation || got[2] != FieldSink {
		t.Fatalf("unexpected slice: %v", got)
	}
}
