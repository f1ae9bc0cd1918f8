package amqp

import (
	"encoding/json"
	"path/filepath"
	"time"

	"orderimport/internal/core"
	"orderimport/internal/report"
)

// MessageTypeSummary is set as the AMQP type of summary messages.
const MessageTypeSummary = "order.summary"

// SummaryMessage is the wire form of one import run's summary.
// Amounts are carried as two-decimal strings so consumers never see float noise.
type SummaryMessage struct {
	RunID           string    `json:"run_id"`
	SourceFile      string    `json:"source_file"`
	Currency        string    `json:"currency"`
	TotalCount      int       `json:"total_count"`
	TotalAmount     string    `json:"total_amount"`
	AverageAmount   string    `json:"average_amount"`
	UniqueCustomers int       `json:"unique_customers"`
	RejectedLines   int       `json:"rejected_lines"`
	Timestamp       time.Time `json:"timestamp"`
}

// NewSummaryMessage builds the message for s.
func NewSummaryMessage(s report.Summary) *SummaryMessage {
	ts := s.GeneratedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	currency := s.Currency
	if currency == "" {
		currency = report.DefaultCurrency
	}
	return &SummaryMessage{
		RunID:           s.RunID,
		SourceFile:      filepath.Base(s.SourceFile),
		Currency:        currency,
		TotalCount:      s.Report.TotalCount,
		TotalAmount:     core.FormatAmount(s.Report.TotalAmount),
		AverageAmount:   core.FormatAmount(s.Report.AverageAmount),
		UniqueCustomers: s.Report.UniqueCustomers,
		RejectedLines:   s.RejectedLines,
		Timestamp:       ts.UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *SummaryMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}
