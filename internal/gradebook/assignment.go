// Package gradebook implements the weighted-grade aggregation core:
// assignment records, per-category totals, overall percentage, GPA and
// pass/fail determination. Input collection and file archiving live
// elsewhere; this package is pure arithmetic over validated records.
package gradebook

import (
	"fmt"
	"strings"
)

// Category classifies an assignment as formative or summative.
type Category string

const (
	Formative Category = "FA"
	Summative Category = "SA"
)

// Categories lists all valid categories in display order.
var Categories = []Category{Formative, Summative}

// ParseCategory accepts the two-letter codes (FA/SA) or the full words,
// case-insensitively.
func ParseCategory(s string) (Category, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "FA", "FORMATIVE":
		return Formative, nil
	case "SA", "SUMMATIVE":
		return Summative, nil
	}
	return "", &ValidationError{Field: "category", Reason: "must be 'FA' or 'SA'"}
}

// Name returns the long form for display.
func (c Category) Name() string {
	switch c {
	case Formative:
		return "Formative"
	case Summative:
		return "Summative"
	}
	return string(c)
}

// Assignment is a single validated grade entry. Immutable once accepted
// into a Session.
type Assignment struct {
	Name     string
	Category Category
	Grade    float64 // 0-100
	Weight   float64 // > 0
}

// WeightedGrade is the assignment's contribution to the final grade.
func (a Assignment) WeightedGrade() float64 {
	return (a.Grade / 100.0) * a.Weight
}

// ValidationError reports which field of a candidate record was rejected
// and why. Recoverable: the caller re-prompts and retries.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// validate checks a candidate record without mutating anything.
func validate(name string, category Category, grade, weight float64) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Reason: "cannot be empty"}
	}
	switch category {
	case Formative, Summative:
	default:
		return &ValidationError{Field: "category", Reason: "must be 'FA' or 'SA'"}
	}
	if grade < 0 || grade > 100 {
		return &ValidationError{Field: "grade", Reason: "must be between 0 and 100"}
	}
	if weight <= 0 {
		return &ValidationError{Field: "weight", Reason: "must be a positive number"}
	}
	return nil
}
