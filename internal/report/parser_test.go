package report

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const sampleReport = "##FastQC\t0.11.9\n" +
	">>Basic Statistics\tpass\n" +
	"#Measure\tValue\n" +
	"Filename\treads_1.fastq\n" +
	"Total Sequences\t10000\n" +
	"%GC\t48\n" +
	">>END_MODULE\n" +
	">>Per base sequence quality\tpass\n" +
	"#Base\tMean\n" +
	"1\t32.5\n" +
	"2\t33.1\n" +
	">>END_MODULE\n" +
	">>Overrepresented sequences\twarn\n" +
	"#Sequence\tCount\tPercentage\n" +
	"AGATCGGAAGAG\t120\t1.2\n" +
	">>END_MODULE\n"

func TestParse_SampleReport(t *testing.T) {
	res, err := Parse(strings.NewReader(sampleReport))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Len() != 3 {
		t.Fatalf("expected 3 modules, got %d", res.Len())
	}

	want := []string{"Basic Statistics", "Per base sequence quality", "Overrepresented sequences"}
	if !reflect.DeepEqual(res.Names(), want) {
		t.Errorf("unexpected module order: %v", res.Names())
	}

	stats, err := res.Get("Basic Statistics")
	if err != nil {
		t.Fatalf("get basic statistics: %v", err)
	}
	if stats.Status != Pass {
		t.Errorf("expected status pass, got %q", stats.Status)
	}
	// The ##FastQC preamble line sits before the first header and must land
	// in the first module's body, rehomed under the plain FastQC key.
	if v, ok := stats.Fields.Get("FastQC"); !ok || v.String() != "0.11.9" {
		t.Errorf("expected FastQC=0.11.9, got %v (present=%v)", v, ok)
	}
	if v, ok := stats.Fields.Get("Total Sequences"); !ok || !v.IsInt || v.Int != 10000 {
		t.Errorf("expected Total Sequences=10000, got %v", v)
	}

	over, err := res.Get("Overrepresented sequences")
	if err != nil {
		t.Fatalf("get overrepresented: %v", err)
	}
	if over.Status != Warn {
		t.Errorf("expected status warn, got %q", over.Status)
	}
	if over.Table == nil || len(over.Table.Rows) != 1 {
		t.Fatalf("expected 1 table row, got %+v", over.Table)
	}
}

func TestParse_Deterministic(t *testing.T) {
	first, err := Parse(strings.NewReader(sampleReport))
	if err != nil {
		t.Fatalf("first parse: %v", err)
	}
	second, err := Parse(strings.NewReader(sampleReport))
	if err != nil {
		t.Fatalf("second parse: %v", err)
	}
	if !reflect.DeepEqual(first.Names(), second.Names()) {
		t.Errorf("module order differs between parses")
	}
	if !reflect.DeepEqual(first.Statuses(), second.Statuses()) {
		t.Errorf("statuses differ between parses")
	}
	if !reflect.DeepEqual(first.Modules(), second.Modules()) {
		t.Errorf("structured modules differ between parses")
	}
}

func TestParse_GenericRoundTrip(t *testing.T) {
	body := "line one\nline two\n\nline four"
	input := ">>Custom Module\tpass\n" + body + "\n>>END_MODULE\n"

	res, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, err := res.Get("Custom Module")
	if err != nil {
		t.Fatalf("get module: %v", err)
	}
	if m.Kind != KindGeneric {
		t.Errorf("expected generic kind, got %v", m.Kind)
	}
	if m.Raw != body {
		t.Errorf("raw body not preserved: %q", m.Raw)
	}
}

func TestParse_TrimsTrailingWhitespace(t *testing.T) {
	input := ">>Custom Module\tpass\nvalue  \t\nother\r\n>>END_MODULE\n"
	res, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, _ := res.Get("Custom Module")
	if m.Raw != "value\nother" {
		t.Errorf("expected trailing whitespace trimmed, got %q", m.Raw)
	}
}

func TestParse_OpaqueStatus(t *testing.T) {
	input := ">>Custom Module\tunknown-token\n>>END_MODULE\n"
	res, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, _ := res.Get("Custom Module")
	if m.Status != Status("unknown-token") {
		t.Errorf("expected opaque status preserved, got %q", m.Status)
	}
}

func TestParse_DuplicateNameLastWins(t *testing.T) {
	input := ">>Custom Module\tpass\nfirst\n>>END_MODULE\n" +
		">>Other\twarn\n>>END_MODULE\n" +
		">>Custom Module\tfail\nsecond\n>>END_MODULE\n"
	res, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Len() != 2 {
		t.Fatalf("expected 2 modules, got %d", res.Len())
	}
	// Replacement keeps the original position.
	if got := res.Names(); got[0] != "Custom Module" || got[1] != "Other" {
		t.Errorf("unexpected order: %v", got)
	}
	m, _ := res.Get("Custom Module")
	if m.Status != Fail || m.Raw != "second" {
		t.Errorf("expected last module to win, got status=%q raw=%q", m.Status, m.Raw)
	}
}

func TestParse_NestedHeader(t *testing.T) {
	input := ">>Basic Statistics\tpass\n>>Per base sequence quality\tpass\n>>END_MODULE\n"
	_, err := Parse(strings.NewReader(input))
	var perr *ProtocolError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ProtocolError, got %v", err)
	}
	if perr.Line != 2 {
		t.Errorf("expected violation on line 2, got %d", perr.Line)
	}
}

func TestParse_UnmatchedTerminator(t *testing.T) {
	_, err := Parse(strings.NewReader("some line\n>>END_MODULE\n"))
	var perr *ProtocolError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ProtocolError, got %v", err)
	}
}

func TestParse_UnterminatedModule(t *testing.T) {
	_, err := Parse(strings.NewReader(">>Custom Module\tpass\nbody line\n"))
	var perr *ProtocolError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ProtocolError, got %v", err)
	}
	if perr.Line != 0 {
		t.Errorf("expected line 0 for EOF violation, got %d", perr.Line)
	}
}

func TestParse_HeaderWithoutStatus(t *testing.T) {
	_, err := Parse(strings.NewReader(">>Custom Module\n>>END_MODULE\n"))
	var perr *ProtocolError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ProtocolError, got %v", err)
	}
}

func TestParse_InterpreterFailureAborts(t *testing.T) {
	input := ">>Custom Module\tpass\nok\n>>END_MODULE\n" +
		">>Basic Statistics\tpass\nno tab here\n>>END_MODULE\n"
	res, err := Parse(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected error for malformed key-value body")
	}
	if res != nil {
		t.Error("expected no partial results on interpreter failure")
	}
	var kverr *MalformedKeyValueError
	if !errors.As(err, &kverr) {
		t.Fatalf("expected MalformedKeyValueError, got %v", err)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	res, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Len() != 0 {
		t.Errorf("expected empty results, got %d modules", res.Len())
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fastqc_data.txt")
	if err := os.WriteFile(path, []byte(sampleReport), 0o644); err != nil {
		t.Fatal(err)
	}
	res, err := ParseFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Len() != 3 {
		t.Errorf("expected 3 modules, got %d", res.Len())
	}
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
