package gradebook

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// csvHeader is the fixed column order for exported grade files.
var csvHeader = []string{"Assignment", "Category", "Grade", "Weight"}

// WriteCSV serializes records in insertion order with a header row.
// Grades and weights are written with two decimals.
func WriteCSV(w io.Writer, records []Assignment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, a := range records {
		row := []string{
			a.Name,
			string(a.Category),
			strconv.FormatFloat(a.Grade, 'f', 2, 64),
			strconv.FormatFloat(a.Weight, 'f', 2, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write record %q: %w", a.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes records to path, replacing any previous session output.
func SaveCSV(path string, records []Assignment) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteCSV(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadCSV parses a grade file back into a session, re-validating every
// row through Session.Add. Rows that fail validation abort the load with
// the row number in the error.
func ReadCSV(r io.Reader) (*Session, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) != len(csvHeader) {
		return nil, fmt.Errorf("unexpected header %v", header)
	}

	session := NewSession()
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", line, err)
		}
		grade, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad grade %q: %w", line, row[2], err)
		}
		weight, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad weight %q: %w", line, row[3], err)
		}
		category, err := ParseCategory(row[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		if _, err := session.Add(row[0], category, grade, weight); err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
	}
	return session, nil
}

// LoadCSV reads a grade file from disk.
func LoadCSV(path string) (*Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(f)
}
