package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"orderimport/internal/report"
)

// Store keeps the summaries written during the life of the process.
type Store struct {
	mu    sync.Mutex
	items []report.Summary
}

var _ report.SummaryWriter = (*Store)(nil)

func New() *Store {
	return &Store{}
}

// Name identifies the sink in logs.
func (s *Store) Name() string { return "memory" }

// WriteSummary stores the summary and returns a synthetic reference.
func (s *Store) WriteSummary(_ context.Context, sum report.Summary) (string, error) {
	if sum.RunID == "" {
		return "", errors.New("summary has no run id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, sum)
	return fmt.Sprintf("mem:%d", len(s.items)), nil
}

// Summaries returns a copy of everything written so far, oldest first.
func (s *Store) Summaries() []report.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]report.Summary(nil), s.items...)
}

// Find returns the summary written for runID.
func (s *Store) Find(runID string) (report.Summary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.RunID == runID {
			return it, true
		}
	}
	return report.Summary{}, false
}
