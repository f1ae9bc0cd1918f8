// Package report renders import summaries and defines the ports through which
// they leave the process.
package report

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"orderimport/internal/core"
)

// DefaultCurrency labels amounts when no currency is configured.
const DefaultCurrency = "SEK"

// Summary is the outcome of one import run as handed to output sinks.
type Summary struct {
	RunID         string
	SourceFile    string
	Currency      string
	GeneratedAt   time.Time
	RejectedLines int
	Report        core.SummaryReport
}

// SummaryWriter is implemented by every output sink.
type SummaryWriter interface {
	// WriteSummary hands s to the sink and returns a sink-specific reference.
	WriteSummary(ctx context.Context, s Summary) (ref string, err error)
}

// Named is implemented by sinks that identify themselves in logs.
type Named interface {
	Name() string
}

// SinkName returns w's name, or its Go type when it has none.
func SinkName(w SummaryWriter) string {
	if n, ok := w.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", w)
}

// Lines returns the four summary lines.
func Lines(r core.SummaryReport, currency string) []string {
	if currency == "" {
		currency = DefaultCurrency
	}
	return []string{
		fmt.Sprintf("Total valid orders: %d", r.TotalCount),
		fmt.Sprintf("Total amount: %s %s", core.FormatAmount(r.TotalAmount), currency),
		fmt.Sprintf("Average order value: %s %s", core.FormatAmount(r.AverageAmount), currency),
		fmt.Sprintf("Unique customers: %d", r.UniqueCustomers),
	}
}

// Title is the heading printed above the summary lines.
func Title(s Summary) string {
	return fmt.Sprintf("==== SUMMARY for %s ====", filepath.Base(s.SourceFile))
}

// Render writes the summary block, framed by a title and a closing rule.
func Render(w io.Writer, s Summary) error {
	if _, err := fmt.Fprintln(w, Title(s)); err != nil {
		return err
	}
	for _, line := range Lines(s.Report, s.Currency) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "==================================")
	return err
}
