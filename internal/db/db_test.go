package db

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/lucasnoah/readqc/internal/report"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	d, err := Open(filepath.Join(t.TempDir(), "readqc.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	if err := d.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return d
}

func testResults(t *testing.T) *report.Results {
	t.Helper()
	input := "##FastQC\t0.11.9\n" +
		">>Basic Statistics\tpass\nTotal Sequences\t10000\n>>END_MODULE\n" +
		">>Overrepresented sequences\twarn\n#Sequence\tCount\tPercentage\nAGATCGG\t12\t0.1\n>>END_MODULE\n" +
		">>Adapter Content\tfail\nsome\tdata\n>>END_MODULE\n"
	res, err := report.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return res
}

func TestMigrate_Idempotent(t *testing.T) {
	d := openTestDB(t)
	if err := d.Migrate(); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestLogScanAndHistory(t *testing.T) {
	d := openTestDB(t)
	res := testResults(t)

	passed := false
	scanID, err := d.LogScan("/data/reads_1.fastq.gz", "/out/reads_1_fastqc/fastqc_data.txt", res, &passed)
	if err != nil {
		t.Fatalf("log scan: %v", err)
	}
	if scanID == 0 {
		t.Fatal("expected a scan id")
	}

	scans, err := d.ScanHistory("")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(scans) != 1 {
		t.Fatalf("expected 1 scan, got %d", len(scans))
	}
	s := scans[0]
	if s.InputPath != "/data/reads_1.fastq.gz" || s.ModuleCount != 3 {
		t.Errorf("unexpected scan row: %+v", s)
	}
	if s.GatePassed == nil || *s.GatePassed {
		t.Errorf("expected gate_passed=false, got %v", s.GatePassed)
	}

	mods, err := d.ModulesForScan(scanID)
	if err != nil {
		t.Fatalf("modules: %v", err)
	}
	if len(mods) != 3 {
		t.Fatalf("expected 3 modules, got %d", len(mods))
	}
	if mods[0].Name != "Basic Statistics" || mods[0].Status != report.Pass {
		t.Errorf("unexpected first module: %+v", mods[0])
	}
	// Summaries condense structured content.
	if mods[0].Summary != "2 fields" {
		t.Errorf("unexpected key-value summary: %q", mods[0].Summary)
	}
	if mods[1].Summary != "1 rows" {
		t.Errorf("unexpected table summary: %q", mods[1].Summary)
	}
}

func TestScanHistory_FilterByInput(t *testing.T) {
	d := openTestDB(t)
	res := testResults(t)

	if _, err := d.LogScan("a.fastq", "a.txt", res, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := d.LogScan("b.fastq", "b.txt", res, nil); err != nil {
		t.Fatal(err)
	}

	scans, err := d.ScanHistory("a.fastq")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(scans) != 1 || scans[0].InputPath != "a.fastq" {
		t.Errorf("unexpected filtered history: %+v", scans)
	}
	if scans[0].GatePassed != nil {
		t.Errorf("expected nil gate_passed, got %v", scans[0].GatePassed)
	}
}

func TestLatestScan(t *testing.T) {
	d := openTestDB(t)
	res := testResults(t)

	if s, err := d.LatestScan("a.fastq"); err != nil || s != nil {
		t.Fatalf("expected no scan yet, got %+v err=%v", s, err)
	}

	first, err := d.LogScan("a.fastq", "first.txt", res, nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := d.LogScan("a.fastq", "second.txt", res, nil)
	if err != nil {
		t.Fatal(err)
	}
	if second <= first {
		t.Fatalf("expected increasing ids, got %d then %d", first, second)
	}

	latest, err := d.LatestScan("a.fastq")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest == nil || latest.ReportPath != "second.txt" {
		t.Errorf("unexpected latest scan: %+v", latest)
	}
}
