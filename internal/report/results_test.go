package report

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestResults_GetMissing(t *testing.T) {
	res, err := Parse(strings.NewReader(">>Custom Module\tpass\n>>END_MODULE\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = res.Get("Nope")
	if !errors.Is(err, ErrModuleNotFound) {
		t.Fatalf("expected ErrModuleNotFound, got %v", err)
	}
}

func TestResults_Statuses(t *testing.T) {
	input := ">>A\tpass\n>>END_MODULE\n>>B\twarn\n>>END_MODULE\n>>C\tfail\n>>END_MODULE\n"
	res, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]Status{"A": Pass, "B": Warn, "C": Fail}
	if got := res.Statuses(); !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected statuses: %v", got)
	}
}

func TestResults_NamesCopy(t *testing.T) {
	res, err := Parse(strings.NewReader(">>A\tpass\n>>END_MODULE\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	names := res.Names()
	names[0] = "mutated"
	if res.Names()[0] != "A" {
		t.Error("Names must return a copy")
	}
}

func TestFields_MarshalJSON(t *testing.T) {
	f := Fields{
		{Key: "Filename", Value: Value{Text: "reads.fastq"}},
		{Key: "Total Sequences", Value: Value{Int: 10000, IsInt: true}},
		{Key: "FastQC", Value: Value{Text: "0.11.9"}},
	}
	data, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"Filename":"reads.fastq","Total Sequences":10000,"FastQC":"0.11.9"}`
	if string(data) != want {
		t.Errorf("unexpected JSON: %s", data)
	}
}

func TestValue_String(t *testing.T) {
	if got := (Value{Int: 42, IsInt: true}).String(); got != "42" {
		t.Errorf("expected 42, got %q", got)
	}
	if got := (Value{Text: "abc"}).String(); got != "abc" {
		t.Errorf("expected abc, got %q", got)
	}
}
