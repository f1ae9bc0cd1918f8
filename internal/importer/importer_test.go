package importer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"orderimport/internal/core"
	applog "orderimport/internal/log"
)

type recorder struct {
	accepted []int
	rejected []Diagnostic
}

func (r *recorder) Accepted(_ context.Context, lineNo int, _ core.Order) {
	r.accepted = append(r.accepted, lineNo)
}

func (r *recorder) Rejected(_ context.Context, d Diagnostic) {
	r.rejected = append(r.rejected, d)
}

const scenario = "1;100;50.00\n2;200;not_a_number\n3;;10.00\n4;300;-5.00\n5;400;20.00\n"

func TestScanScenario(t *testing.T) {
	rec := &recorder{}
	res, err := Scan(context.Background(), strings.NewReader(scenario), Options{}, rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []core.Order{{OrderID: 1, CustomerID: 100, Amount: 50}, {OrderID: 5, CustomerID: 400, Amount: 20}}
	if len(res.Orders) != len(want) || res.Orders[0] != want[0] || res.Orders[1] != want[1] {
		t.Fatalf("unexpected orders: %+v", res.Orders)
	}

	wantReasons := []string{core.ReasonInvalidNumber, core.ReasonEmptyField, core.ReasonNegativeAmount}
	if len(res.Rejections) != len(wantReasons) {
		t.Fatalf("expected %d rejections, got %+v", len(wantReasons), res.Rejections)
	}
	for i, d := range res.Rejections {
		if d.Reason() != wantReasons[i] {
			t.Fatalf("rejection %d: reason %q, want %q", i, d.Reason(), wantReasons[i])
		}
		if d.LineNo != i+2 {
			t.Fatalf("rejection %d: line %d, want %d", i, d.LineNo, i+2)
		}
	}

	if len(rec.rejected) != 3 || rec.rejected[0].Line != "2;200;not_a_number" {
		t.Fatalf("reporter saw %+v", rec.rejected)
	}
	if len(rec.accepted) != 2 || rec.accepted[0] != 1 || rec.accepted[1] != 5 {
		t.Fatalf("reporter accepted lines %v", rec.accepted)
	}

	r := res.Report
	if r.TotalCount != 2 || r.TotalAmount != 70 || r.AverageAmount != 35 || r.UniqueCustomers != 2 {
		t.Fatalf("unexpected report: %+v", r)
	}
	if res.LinesRead != 5 {
		t.Fatalf("lines read = %d, want 5", res.LinesRead)
	}
}

func TestScanEmptyInput(t *testing.T) {
	res, err := Scan(context.Background(), strings.NewReader(""), Options{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Report != (core.SummaryReport{}) || res.LinesRead != 0 {
		t.Fatalf("expected zeroed result, got %+v", res)
	}
}

func TestScanBlankLines(t *testing.T) {
	in := "1;1;1\n\n   \n2;2;2\n"

	res, _ := Scan(context.Background(), strings.NewReader(in), Options{}, nil)
	if len(res.Rejections) != 2 || !errors.Is(res.Rejections[0].Err, core.ErrFieldCount) {
		t.Fatalf("blank lines should be rejected by default: %+v", res.Rejections)
	}

	res, _ = Scan(context.Background(), strings.NewReader(in), Options{SkipBlankLines: true}, nil)
	if len(res.Rejections) != 0 || res.Skipped != 2 || len(res.Orders) != 2 {
		t.Fatalf("blank lines should be skipped: %+v", res)
	}
}

func TestScanHeaderPolicies(t *testing.T) {
	withHeader := "orderId;customerId;amount\n1;100;50.00\n"
	noHeader := "1;100;50.00\n2;100;5\n"

	tests := []struct {
		name     string
		in       string
		policy   HeaderPolicy
		orders   int
		rejected int
		header   bool
	}{
		{"none keeps header as data", withHeader, HeaderNone, 1, 1, false},
		{"skip drops header", withHeader, HeaderSkip, 1, 0, true},
		{"skip drops first data line", noHeader, HeaderSkip, 1, 0, true},
		{"detect drops header", withHeader, HeaderDetect, 1, 0, true},
		{"detect keeps data line", noHeader, HeaderDetect, 2, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Scan(context.Background(), strings.NewReader(tt.in), Options{Header: tt.policy}, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(res.Orders) != tt.orders || len(res.Rejections) != tt.rejected || res.HeaderFound != tt.header {
				t.Fatalf("orders=%d rejected=%d header=%v", len(res.Orders), len(res.Rejections), res.HeaderFound)
			}
		})
	}
}

func TestLooksLikeHeader(t *testing.T) {
	cases := map[string]bool{
		"orderId;customerId;amount": true,
		" id ; customer ; sum ":     true,
		"1;100;50.00":               false,
		"order1;customer;amount":    false,
		"orderId;customerId":        false,
		"orderId;;amount":           false,
	}
	for in, want := range cases {
		if got := looksLikeHeader(in); got != want {
			t.Errorf("looksLikeHeader(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestScanCRLFAndBOM(t *testing.T) {
	in := "\ufeff1;100;50.00\r\n2;200;25.00\r\n"
	res, err := Scan(context.Background(), strings.NewReader(in), Options{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Orders) != 2 || len(res.Rejections) != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestScanReadErrorKeepsPartialResult(t *testing.T) {
	r := io.MultiReader(strings.NewReader("1;100;50.00\n"), iotest.ErrReader(errors.New("disk gone")))
	res, err := Scan(context.Background(), r, Options{}, nil)
	if !errors.Is(err, ErrRead) {
		t.Fatalf("expected ErrRead, got %v", err)
	}
	if len(res.Orders) != 1 || res.Report.TotalCount != 1 {
		t.Fatalf("expected partial result, got %+v", res)
	}
}

func TestScanLineTooLong(t *testing.T) {
	in := "1;1;1\n" + strings.Repeat("9", MaxLineSize+1) + "\n"
	_, err := Scan(context.Background(), strings.NewReader(in), Options{}, nil)
	if !errors.Is(err, ErrRead) {
		t.Fatalf("expected ErrRead, got %v", err)
	}
}

func TestScanCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Scan(ctx, strings.NewReader(scenario), Options{}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestReporterFunc(t *testing.T) {
	var got []string
	rep := ReporterFunc(func(d Diagnostic) { got = append(got, d.Reason()) })
	if _, err := Scan(context.Background(), strings.NewReader(scenario), Options{}, rep); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Join(got, ",") != "invalid_number_format,empty_field,negative_amount" {
		t.Fatalf("unexpected reasons: %v", got)
	}
}

func TestLogReporterUsesContextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := applog.New(applog.Config{Format: "text", Output: &buf, Component: applog.ComponentImporter}).
		With(applog.FieldRunID, "run-42")
	ctx := applog.NewContext(context.Background(), logger)

	if _, err := Scan(ctx, strings.NewReader(scenario), Options{}, NewLogReporter(nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if got := strings.Count(out, "Invalid line skipped"); got != 3 {
		t.Fatalf("expected 3 rejection records, got %d:\n%s", got, out)
	}
	if got := strings.Count(out, "run_id=run-42"); got != 3 {
		t.Fatalf("expected run_id on every record exactly once, got %d:\n%s", got, out)
	}
}

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "orders.csv")
	if err := os.WriteFile(path, []byte(scenario), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	res, err := ProcessFile(context.Background(), path, Options{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Report.TotalCount != 2 || res.Report.TotalAmount != 70 {
		t.Fatalf("unexpected report: %+v", res.Report)
	}
}

func TestProcessFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ProcessFile(context.Background(), filepath.Join(dir, "missing.csv"), Options{}, nil)
	if !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}

	_, err = ProcessFile(context.Background(), dir, Options{}, nil)
	if !errors.Is(err, ErrRead) {
		t.Fatalf("expected ErrRead for directory, got %v", err)
	}
}

func TestProcessFilePermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	path := filepath.Join(t.TempDir(), "locked.csv")
	if err := os.WriteFile(path, []byte(scenario), 0o000); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := ProcessFile(context.Background(), path, Options{}, nil)
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}
