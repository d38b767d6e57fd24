package gradebook

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWriteCSV_Format(t *testing.T) {
	s := NewSession()
	mustAdd(t, s, "Essay 1", Formative, 85.5, 10)
	mustAdd(t, s, "Final Exam", Summative, 92, 30)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, s.Export()); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	want := strings.Join([]string{
		"Assignment,Category,Grade,Weight",
		"Essay 1,FA,85.50,10.00",
		"Final Exam,SA,92.00,30.00",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("unexpected CSV output:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestCSV_RoundTrip(t *testing.T) {
	s := NewSession()
	mustAdd(t, s, "Quiz, with comma", Formative, 77.25, 5)
	mustAdd(t, s, "Project", Summative, 100, 20)

	path := filepath.Join(t.TempDir(), "grades.csv")
	if err := SaveCSV(path, s.Export()); err != nil {
		t.Fatalf("SaveCSV failed: %v", err)
	}

	loaded, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}

	if diff := cmp.Diff(s.Export(), loaded.Export()); diff != "" {
		t.Errorf("round trip mismatch (-saved +loaded):\n%s", diff)
	}
}

func TestReadCSV_RejectsInvalidRows(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad grade", "Assignment,Category,Grade,Weight\nEssay,FA,notanumber,10.00\n"},
		{"grade out of range", "Assignment,Category,Grade,Weight\nEssay,FA,120.00,10.00\n"},
		{"bad category", "Assignment,Category,Grade,Weight\nEssay,ZZ,80.00,10.00\n"},
		{"zero weight", "Assignment,Category,Grade,Weight\nEssay,SA,80.00,0.00\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadCSV(strings.NewReader(tt.body)); err == nil {
				t.Error("expected load to fail")
			}
		})
	}
}

func TestLoadCSV_MissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "absent.csv"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}
