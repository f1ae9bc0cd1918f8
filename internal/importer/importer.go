// Package importer feeds a stream of order lines through the line parser and
// the aggregator.
//
// Per-line rejections never stop a pass: they are reported through a Reporter
// and collected in the Result. File-level failures abort the pass and come
// back as ErrFileNotFound, ErrPermissionDenied or ErrRead.
package importer

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"orderimport/internal/core"
)

// MaxLineSize is the longest line the scanner accepts.
const MaxLineSize = 1 << 20

const utf8BOM = "\ufeff"

var (
	ErrFileNotFound     = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrRead             = errors.New("read failed")
)

// HeaderPolicy decides what happens to the first line of the input.
type HeaderPolicy string

const (
	// HeaderNone parses the first line like any other.
	HeaderNone HeaderPolicy = "none"
	// HeaderSkip drops the first line unconditionally.
	HeaderSkip HeaderPolicy = "skip"
	// HeaderDetect drops the first line only when it looks like a column header.
	HeaderDetect HeaderPolicy = "detect"
)

// Options are caller policies applied before lines reach the parser.
type Options struct {
	Header         HeaderPolicy
	SkipBlankLines bool
}

// Diagnostic records one rejected line.
type Diagnostic struct {
	LineNo int
	Line   string
	Err    error
}

// Reason returns the stable reason code of the rejection.
func (d Diagnostic) Reason() string {
	return core.Reason(d.Err)
}

// Reporter receives per-line outcomes in input order.
type Reporter interface {
	Accepted(ctx context.Context, lineNo int, o core.Order)
	Rejected(ctx context.Context, d Diagnostic)
}

// Result is the outcome of one pass.
type Result struct {
	Orders      []core.Order
	Rejections  []Diagnostic
	LinesRead   int
	Skipped     int
	Report      core.SummaryReport
	HeaderFound bool
}

// Scan parses every line of r in order. It returns the partial result and a
// wrapped ErrRead when the reader fails, or ctx.Err() when ctx is cancelled.
func Scan(ctx context.Context, r io.Reader, opts Options, rep Reporter) (Result, error) {
	if rep == nil {
		rep = nopReporter{}
	}

	var (
		res Result
		agg core.Aggregator
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineSize)

	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			res.Report = agg.Report()
			return res, err
		}

		res.LinesRead++
		lineNo := res.LinesRead
		line := sc.Text()
		if lineNo == 1 {
			line = strings.TrimPrefix(line, utf8BOM)
			if skipHeader(opts.Header, line) {
				res.HeaderFound = true
				res.Skipped++
				continue
			}
		}
		if opts.SkipBlankLines && strings.TrimSpace(line) == "" {
			res.Skipped++
			continue
		}

		o, err := core.ParseLine(line)
		if err != nil {
			d := Diagnostic{LineNo: lineNo, Line: line, Err: err}
			res.Rejections = append(res.Rejections, d)
			rep.Rejected(ctx, d)
			continue
		}
		agg.Add(o)
		res.Orders = append(res.Orders, o)
		rep.Accepted(ctx, lineNo, o)
	}

	res.Report = agg.Report()
	if err := sc.Err(); err != nil {
		return res, fmt.Errorf("%w: line %d: %w", ErrRead, res.LinesRead+1, err)
	}
	return res, nil
}

// ProcessFile opens path, scans it and closes it again on every path.
func ProcessFile(ctx context.Context, path string, opts Options, rep Reporter) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, classifyOpenError(path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s: %w", ErrRead, path, err)
	}
	if info.IsDir() {
		return Result{}, fmt.Errorf("%w: %s is a directory", ErrRead, path)
	}

	res, err := Scan(ctx, f, opts, rep)
	if err != nil {
		return res, fmt.Errorf("scan %s: %w", path, err)
	}
	return res, nil
}

func classifyOpenError(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s", ErrFileNotFound, path)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s", ErrPermissionDenied, path)
	default:
		return fmt.Errorf("%w: open %s: %w", ErrRead, path, err)
	}
}

// skipHeader applies the header policy to the first line.
func skipHeader(policy HeaderPolicy, line string) bool {
	switch policy {
	case HeaderSkip:
		return true
	case HeaderDetect:
		return looksLikeHeader(line)
	default:
		return false
	}
}

// looksLikeHeader reports whether line has the three-field shape of an order
// line but none of its fields is numeric, e.g. "orderId;customerId;amount".
func looksLikeHeader(line string) bool {
	parts := strings.Split(line, core.FieldSeparator)
	if len(parts) != 3 {
		return false
	}
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || strings.ContainsAny(p, "0123456789") {
			return false
		}
	}
	return true
}

type nopReporter struct{}

func (nopReporter) Accepted(context.Context, int, core.Order) {}
func (nopReporter) Rejected(context.Context, Diagnostic)      {}
