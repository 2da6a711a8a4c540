package aggregates

import (
	"context"

	"github.com/google/uuid"

	"github.com/ellenorzo/ellenorzo-backend/internal/domain/school"
)

var EnrollmentAggregateContract = Contract{
	Name:             "School.EnrollmentAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Assigns registry number and slip from same-class rows in the transaction that persists the student.",
}

var CurriculumAggregateContract = Contract{
	Name:             "School.CurriculumAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Recomputes subject annual hours on every save; stamps grade dates once; checks lesson references.",
}

var RosterAggregateContract = Contract{
	Name:             "School.RosterAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyTableRepoQueries,
	Notes:            "Creates classes and teachers; deletes parents together with every dependent row.",
}

// EnrollmentAggregate owns the registry number invariants of students.
//
// Write method failures return *aggregates.Error with codes:
// CodeValidation, CodeNotFound, CodeConflict, CodePreconditionFailed, CodeRetryable, CodeInternal.
type EnrollmentAggregate interface {
	Aggregate

	// Enroll persists a new student, numbering it first when it has no registry number.
	Enroll(ctx context.Context, in *school.Student) (EnrollStudentResult, error)

	// Save updates a persisted student. An assigned number and slip never change; a row
	// still lacking one is numbered with itself counted among its classmates.
	Save(ctx context.Context, in *school.Student) (EnrollStudentResult, error)
}

type EnrollStudentResult struct {
	Student *school.Student
	// Assigned is true when this write set the registry number.
	Assigned bool
	// Group is the numbering rule used; empty when nothing was assigned.
	Group string
}

// CurriculumAggregate owns subject hours, grades and the timetable.
type CurriculumAggregate interface {
	Aggregate

	// SaveSubject creates or updates a subject, recomputing its annual hours.
	SaveSubject(ctx context.Context, in *school.Subject) (SaveSubjectResult, error)

	// RecordGrade persists a new grade dated today.
	RecordGrade(ctx context.Context, in *school.Grade) (*school.Grade, error)

	// AmendGrade changes score, topic or assessment type; the recorded date is kept.
	AmendGrade(ctx context.Context, in *school.Grade) (*school.Grade, error)

	// ScheduleLesson persists a lesson after its teacher, class and subject are found.
	ScheduleLesson(ctx context.Context, in *school.Lesson) (*school.Lesson, error)
}

type SaveSubjectResult struct {
	Subject *school.Subject
	// HoursDerived is false when no annual-hours rule covers the grade level.
	HoursDerived bool
	Created      bool
}

// RosterAggregate owns class and teacher lifecycles and every delete cascade.
type RosterAggregate interface {
	Aggregate

	CreateClass(ctx context.Context, in *school.Class) (*school.Class, error)
	CreateTeacher(ctx context.Context, in *school.Teacher) (*school.Teacher, error)

	// DeleteClass removes the class, its students, their grades and its lessons.
	DeleteClass(ctx context.Context, id uuid.UUID) (CascadeResult, error)
	// DeleteStudent removes the student and its grades.
	DeleteStudent(ctx context.Context, id uuid.UUID) (CascadeResult, error)
	// DeleteSubject removes the subject, its lessons and its grades.
	DeleteSubject(ctx context.Context, id uuid.UUID) (CascadeResult, error)
	// DeleteTeacher removes the teacher and its lessons.
	DeleteTeacher(ctx context.Context, id uuid.UUID) (CascadeResult, error)
}

// CascadeResult lists what a delete removed besides the parent row.
type CascadeResult struct {
	StudentIDs []uuid.UUID
	Lessons    int
	Grades     int
}
