// Package annualhours derives a subject's yearly lesson hours from its weekly hours.
package annualhours

import "github.com/ellenorzo/ellenorzo-backend/internal/domain/school"

// Teaching weeks per year.
const (
	weeksFull  = 36
	weeksFinal = 31
)

// Multiplier returns the teaching weeks for a grade level and category.
// ok is false when no rule covers the grade level.
func Multiplier(gradeLevel int, category school.SubjectCategory) (weeks int, ok bool) {
	switch gradeLevel {
	case 9, 10, 11:
		return weeksFull, true
	case 12:
		if category == school.CategoryGeneral {
			return weeksFinal, true
		}
		return weeksFull, true
	case 13:
		return weeksFinal, true
	default:
		return 0, false
	}
}

// Derive returns weeklyHours * Multiplier, or nil when no rule matches.
func Derive(gradeLevel int, category school.SubjectCategory, weeklyHours int) *int {
	weeks, ok := Multiplier(gradeLevel, category)
	if !ok {
		return nil
	}
	annual := weeklyHours * weeks
	return &annual
}

// Apply recomputes AnnualHours. An unmatched grade level leaves the field as it was.
// It reports whether a rule matched.
func Apply(subject *school.Subject) bool {
	if subject == nil {
		return false
	}
	annual := Derive(subject.GradeLevel, subject.Category, subject.WeeklyHours)
	if annual == nil {
		return false
	}
	subject.AnnualHours = annual
	return true
}
