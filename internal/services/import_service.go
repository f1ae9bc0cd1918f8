package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"orderimport/internal/importer"
	applog "orderimport/internal/log"
	"orderimport/internal/report"
)

const defaultPublishTimeout = 10 * time.Second

// ImportService runs one import and hands its summary to every output sink
type ImportService struct {
	logger         *applog.Logger
	opts           importer.Options
	writers        []report.SummaryWriter
	currency       string
	publishTimeout time.Duration
	now            func() time.Time
	newRunID       func() string
}

func NewImportService(logger *applog.Logger, opts importer.Options, writers []report.SummaryWriter, currency string, publishTimeout time.Duration) *ImportService {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	if currency == "" {
		currency = report.DefaultCurrency
	}
	if publishTimeout <= 0 {
		publishTimeout = defaultPublishTimeout
	}
	return &ImportService{
		logger:         logger.WithComponent(applog.ComponentImporter),
		opts:           opts,
		writers:        writers,
		currency:       currency,
		publishTimeout: publishTimeout,
		now:            time.Now,
		newRunID:       func() string { return uuid.NewString() },
	}
}

// Import processes the file at path and returns its summary.
//
// A file-level failure still yields the (zeroed or partial) summary together
// with the error; the summary is only published when the file was read in
// full. Sink failures are logged and never returned.
func (s *ImportService) Import(ctx context.Context, path string) (report.Summary, error) {
	runID := s.newRunID()
	logger := s.logger.With(applog.FieldRunID, runID, applog.FieldFile, path)
	ctx = applog.NewContext(ctx, logger)
	sl := applog.NewStructuredLogger(logger)

	start := s.now()
	logger.InfoContext(ctx, "Import started", applog.FieldOperation, applog.OpScan)

	res, fileErr := importer.ProcessFile(ctx, path, s.opts, importer.NewLogReporter(nil))

	sum := report.Summary{
		RunID:         runID,
		SourceFile:    path,
		Currency:      s.currency,
		GeneratedAt:   s.now().UTC(),
		RejectedLines: len(res.Rejections),
		Report:        res.Report,
	}

	if fileErr != nil {
		sl.LogError(ctx, "Import failed", fileErr, applog.OpScan, nil)
		return sum, fileErr
	}

	logger.InfoContext(ctx, "Import complete",
		applog.FieldValid, len(res.Orders),
		applog.FieldRejected, len(res.Rejections),
		"lines_read", res.LinesRead,
		"skipped", res.Skipped,
		applog.FieldDuration, s.now().Sub(start).Milliseconds())

	for _, line := range report.Lines(sum.Report, sum.Currency) {
		logger.InfoContext(ctx, line)
	}

	s.publish(ctx, sl, sum)
	return sum, nil
}

func (s *ImportService) publish(ctx context.Context, sl *applog.StructuredLogger, sum report.Summary) {
	for _, w := range s.writers {
		name := report.SinkName(w)
		ref, err := s.writeOne(ctx, w, sum)
		if err != nil {
			sl.LogError(ctx, "Failed to publish summary", err, applog.OpPublish, applog.NewFields().
				WithSink(name))
			continue
		}
		sl.LogSummaryPublished(ctx, name, ref)
	}
}

func (s *ImportService) writeOne(ctx context.Context, w report.SummaryWriter, sum report.Summary) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.publishTimeout)
	defer cancel()

	ref, err := w.WriteSummary(ctx, sum)
	if err != nil {
		return "", fmt.Errorf("write summary to %s: %w", report.SinkName(w), err)
	}
	return ref, nil
}
