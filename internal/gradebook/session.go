package gradebook

import (
	"errors"

	"github.com/google/uuid"
)

// ErrEmptyDataset is returned when a summary is requested for a session
// with no records; the weighted mean is undefined.
var ErrEmptyDataset = errors.New("no assignments recorded")

// Status is the pass/fail outcome of a session.
type Status string

const (
	Pass Status = "PASS"
	Fail Status = "FAIL"
)

// Totals accumulates one category's weighted sum and weight total.
// WeightTotal is 0 for a category with no records; callers guard division.
type Totals struct {
	WeightedSum float64
	WeightTotal float64
}

// Percentage returns the category's achieved percentage, or 0 when the
// category holds no weight. WeightedSum carries grade*weight with grades
// on a 0-100 scale, so the ratio is already a percentage.
func (t Totals) Percentage() float64 {
	if t.WeightTotal <= 0 {
		return 0
	}
	return t.WeightedSum / t.WeightTotal
}

// Points converts the weighted sum to achieved weight points, the scale
// the printed summary uses (grade fraction times weight).
func (t Totals) Points() float64 {
	return t.WeightedSum / 100.0
}

// Session is the explicitly owned accumulator for one grade-entry run.
// Created at session start, discarded after export. Not safe for
// concurrent use; a session belongs to exactly one interactive loop.
type Session struct {
	ID      string
	records []Assignment
}

// NewSession returns an empty session with a fresh correlation ID.
func NewSession() *Session {
	return &Session{ID: uuid.NewString()}
}

// Add validates and appends a record. On a *ValidationError nothing is
// appended and the caller is expected to re-prompt.
func (s *Session) Add(name string, category Category, grade, weight float64) (Assignment, error) {
	if err := validate(name, category, grade, weight); err != nil {
		return Assignment{}, err
	}
	a := Assignment{Name: name, Category: category, Grade: grade, Weight: weight}
	s.records = append(s.records, a)
	return a, nil
}

// Len reports how many records have been accepted.
func (s *Session) Len() int { return len(s.records) }

// Export returns the accepted records in insertion order. The returned
// slice is a copy: calling Export twice with no intervening Add yields
// identical sequences, and callers cannot mutate session state through it.
func (s *Session) Export() []Assignment {
	out := make([]Assignment, len(s.records))
	copy(out, s.records)
	return out
}

// CategoryTotals computes per-category weighted sums over the current
// sequence. Every known category is present in the result, including
// those with no records (WeightTotal 0).
func (s *Session) CategoryTotals() map[Category]Totals {
	totals := make(map[Category]Totals, len(Categories))
	for _, c := range Categories {
		totals[c] = Totals{}
	}
	for _, a := range s.records {
		t := totals[a.Category]
		t.WeightedSum += a.Grade * a.Weight
		t.WeightTotal += a.Weight
		totals[a.Category] = t
	}
	return totals
}

// OverallPercentage is the weighted mean of all grades regardless of
// category: sum(grade*weight)/sum(weight). Returns ErrEmptyDataset when
// the session holds no records.
func (s *Session) OverallPercentage() (float64, error) {
	if len(s.records) == 0 {
		return 0, ErrEmptyDataset
	}
	var sum, weight float64
	for _, a := range s.records {
		sum += a.Grade * a.Weight
		weight += a.Weight
	}
	return sum / weight, nil
}

// DetermineStatus compares an overall percentage against the configured
// pass threshold. The threshold is configuration, not policy baked in here.
func DetermineStatus(overallPercentage, passThreshold float64) Status {
	if overallPercentage >= passThreshold {
		return Pass
	}
	return Fail
}
