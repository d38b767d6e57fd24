package gradebook

import (
	"fmt"
	"strings"
)

// categoryPassFraction is the share of a category's weight that must be
// achieved for that category to count as passed.
const categoryPassFraction = 0.5

// CategoryScore is one category's line in the summary.
type CategoryScore struct {
	Category   Category
	Points     float64 // achieved weight points, grade fraction * weight
	Weight     float64 // total weight entered for the category
	Percentage float64 // Points/Weight * 100, 0 when Weight is 0
	Threshold  float64 // points needed to pass the category
	Passed     bool    // true when Points >= Threshold or the category is empty
}

// Summary is the derived view over a finished session. Recomputed on
// demand, never persisted on its own.
type Summary struct {
	Assignments []Assignment
	Scores      []CategoryScore
	FinalGrade  float64 // sum of all weighted grades, /100 when weights total 100
	Overall     float64 // weighted mean percentage across all records
	GPA         float64
	Status      Status
}

// Summarize computes the full summary for a session. passThreshold is the
// overall percentage needed to pass; gpaScale is the top of the GPA scale
// (5.0 in the default configuration). Returns ErrEmptyDataset for a
// session with no records.
func Summarize(s *Session, passThreshold, gpaScale float64) (*Summary, error) {
	overall, err := s.OverallPercentage()
	if err != nil {
		return nil, err
	}

	totals := s.CategoryTotals()
	var finalGrade float64
	scores := make([]CategoryScore, 0, len(Categories))
	passed := DetermineStatus(overall, passThreshold) == Pass
	for _, c := range Categories {
		t := totals[c]
		sc := CategoryScore{
			Category:   c,
			Points:     t.Points(),
			Weight:     t.WeightTotal,
			Percentage: t.Percentage(),
			Threshold:  t.WeightTotal * categoryPassFraction,
			Passed:     true,
		}
		if t.WeightTotal > 0 && sc.Points < sc.Threshold {
			sc.Passed = false
			passed = false
		}
		finalGrade += sc.Points
		scores = append(scores, sc)
	}

	status := Fail
	if passed {
		status = Pass
	}
	return &Summary{
		Assignments: s.Export(),
		Scores:      scores,
		FinalGrade:  finalGrade,
		Overall:     overall,
		GPA:         (finalGrade / 100.0) * gpaScale,
		Status:      status,
	}, nil
}

// Render formats the summary as the plain-text report printed at the end
// of an interactive session.
func (sum *Summary) Render(gpaScale float64) string {
	var b strings.Builder

	b.WriteString("=== GRADE SUMMARY ===\n\n")
	b.WriteString("Assignments Entered:\n")
	for i, a := range sum.Assignments {
		fmt.Fprintf(&b, "%d. %s (%s): %.2f%% - Weight: %.2f - Weighted: %.2f\n",
			i+1, a.Name, a.Category, a.Grade, a.Weight, a.WeightedGrade())
	}

	b.WriteString("\nCategory Breakdown:\n")
	for _, sc := range sum.Scores {
		fmt.Fprintf(&b, "- Total %s (%s): %.2f/%.2f (%.2f%%)\n",
			sc.Category.Name(), sc.Category, sc.Points, sc.Weight, sc.Percentage)
	}

	b.WriteString("\nFinal Results:\n")
	fmt.Fprintf(&b, "- Total Grade: %.2f/100\n", sum.FinalGrade)
	fmt.Fprintf(&b, "- GPA: %.2f/%.1f\n", sum.GPA, gpaScale)
	fmt.Fprintf(&b, "- Status: %s\n", sum.Status)

	if sum.Status == Fail {
		for _, sc := range sum.Scores {
			if !sc.Passed {
				fmt.Fprintf(&b, "Failed %s (achieved %.2f / need %.2f)\n",
					sc.Category, sc.Points, sc.Threshold)
			}
		}
	}
	return b.String()
}
