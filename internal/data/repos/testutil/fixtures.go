package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/ellenorzo/ellenorzo-backend/internal/domain"
)

// Date returns the calendar date y-m-d.
func Date(y int, m time.Month, d int) datatypes.Date {
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func SeedClass(tb testing.TB, ctx context.Context, tx *gorm.DB, level int, section, room string) *types.Class {
	tb.Helper()
	c := &types.Class{
		ID:         uuid.New(),
		GradeLevel: level,
		Section:    section,
		Room:       room,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed class: %v", err)
	}
	return c
}

// NewStudent builds an unsaved student with every required field filled.
func NewStudent(classID uuid.UUID, name string, enrolledOn datatypes.Date) *types.Student {
	return &types.Student{
		Name:       name,
		BirthPlace: "Szeged",
		BirthDate:  Date(2008, time.March, 14),
		MotherName: "Kiss Mária",
		Address:    "Szeged, Fő utca 1.",
		EnrolledOn: enrolledOn,
		Track:      "gimnázium",
		ClassID:    classID,
	}
}

// SeedStudent inserts a student row directly, bypassing registry numbering.
func SeedStudent(tb testing.TB, ctx context.Context, tx *gorm.DB, classID uuid.UUID, name string, enrolledOn datatypes.Date) *types.Student {
	tb.Helper()
	s := NewStudent(classID, name, enrolledOn)
	s.ID = uuid.New()
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed student: %v", err)
	}
	return s
}

func SeedTeacher(tb testing.TB, ctx context.Context, tx *gorm.DB, name, subject string) *types.Teacher {
	tb.Helper()
	t := &types.Teacher{
		ID:           uuid.New(),
		Name:         name,
		SubjectLabel: subject,
	}
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed teacher: %v", err)
	}
	return t
}

func SeedSubject(tb testing.TB, ctx context.Context, tx *gorm.DB, name string, level int, category types.SubjectCategory, weekly int) *types.Subject {
	tb.Helper()
	s := &types.Subject{
		ID:          uuid.New(),
		Name:        name,
		GradeLevel:  level,
		Category:    category,
		WeeklyHours: weekly,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed subject: %v", err)
	}
	return s
}

func SeedLesson(tb testing.TB, ctx context.Context, tx *gorm.DB, teacherID, classID, subjectID uuid.UUID, weekday string, period int) *types.Lesson {
	tb.Helper()
	l := &types.Lesson{
		ID:        uuid.New(),
		TeacherID: teacherID,
		ClassID:   classID,
		SubjectID: subjectID,
		Weekday:   weekday,
		Period:    period,
	}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		tb.Fatalf("seed lesson: %v", err)
	}
	return l
}

func SeedGrade(tb testing.TB, ctx context.Context, tx *gorm.DB, studentID, subjectID uuid.UUID, recordedOn datatypes.Date, score float64) *types.Grade {
	tb.Helper()
	g := &types.Grade{
		ID:         uuid.New(),
		StudentID:  studentID,
		SubjectID:  subjectID,
		RecordedOn: recordedOn,
		Score:      score,
	}
	if err := tx.WithContext(ctx).Create(g).Error; err != nil {
		tb.Fatalf("seed grade: %v", err)
	}
	return g
}
