package registry

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ellenorzo/ellenorzo-backend/internal/domain/school"
)

// Group is the numbering rule a candidate falls under.
type Group string

const (
	GroupRosterByName    Group = "roster_by_name"
	GroupEnrollmentOrder Group = "enrollment_order"
)

// Assignment is the outcome of numbering one student.
type Assignment struct {
	Group  Group
	Number int
	Slip   string
}

// Cutoff returns September 1 of the enrollment year.
func Cutoff(enrolledOn time.Time) time.Time {
	return time.Date(enrolledOn.Year(), time.September, 1, 0, 0, 0, 0, time.UTC)
}

// GroupFor picks the numbering rule for an enrollment date. Only the calendar date counts.
func GroupFor(enrolledOn time.Time) Group {
	y, m, d := enrolledOn.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if day.Before(Cutoff(enrolledOn)) {
		return GroupRosterByName
	}
	return GroupEnrollmentOrder
}

// SlipCode formats the registry-slip code "{number}/{year}".
func SlipCode(number, year int) string {
	return fmt.Sprintf("%d/%d", number, year)
}

// Compute numbers candidate against classmates, the rows already persisted for its class.
// classmates includes candidate itself when candidate was persisted before numbering.
func Compute(candidate *school.Student, classmates []*school.Student) Assignment {
	enrolledOn := candidate.EnrollmentTime()
	group := GroupFor(enrolledOn)

	number := len(classmates) + 1
	if group == GroupRosterByName && candidate.ID != uuid.Nil {
		if rank, ok := rosterRank(candidate.ID, classmates); ok {
			number = rank
		}
	}
	return Assignment{
		Group:  group,
		Number: number,
		Slip:   SlipCode(number, enrolledOn.Year()),
	}
}

// Apply assigns the registry number and slip when the candidate has none yet.
// It reports whether anything was assigned.
func Apply(candidate *school.Student, classmates []*school.Student) (Assignment, bool) {
	if candidate == nil || candidate.HasRegistryNumber() {
		return Assignment{}, false
	}
	a := Compute(candidate, classmates)
	number, slip := a.Number, a.Slip
	candidate.RegistryNumber = &number
	candidate.RegistrySlip = &slip
	return a, true
}

// rosterRank is the 1-based position of id in classmates ordered by name.
func rosterRank(id uuid.UUID, classmates []*school.Student) (int, bool) {
	roster := make([]*school.Student, 0, len(classmates))
	for _, s := range classmates {
		if s != nil {
			roster = append(roster, s)
		}
	}
	sortByName(roster)
	for i, s := range roster {
		if s.ID == id {
			return i + 1, true
		}
	}
	return 0, false
}

func sortByName(students []*school.Student) {
	col := collate.New(language.Hungarian)
	sort.SliceStable(students, func(i, j int) bool {
		if c := col.CompareString(students[i].Name, students[j].Name); c != 0 {
			return c < 0
		}
		return students[i].ID.String() < students[j].ID.String()
	})
}
