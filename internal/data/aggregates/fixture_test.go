package aggregates_test

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/ellenorzo/ellenorzo-backend/internal/data/aggregates"
	aggtest "github.com/ellenorzo/ellenorzo-backend/internal/data/aggregates/testutil"
	"github.com/ellenorzo/ellenorzo-backend/internal/data/repos"
	repotest "github.com/ellenorzo/ellenorzo-backend/internal/data/repos/testutil"
	domainagg "github.com/ellenorzo/ellenorzo-backend/internal/domain/aggregates"
)

type fixture struct {
	ctx   context.Context
	db    *gorm.DB
	hooks *aggtest.HooksRecorder
	now   time.Time

	classes  repos.ClassRepo
	students repos.StudentRepo
	teachers repos.TeacherRepo
	subjects repos.SubjectRepo
	lessons  repos.LessonRepo
	grades   repos.GradeRepo

	enrollment domainagg.EnrollmentAggregate
	curriculum domainagg.CurriculumAggregate
	roster     domainagg.RosterAggregate
}

// newFixture wires every aggregate over a fresh store. runner may be nil.
func newFixture(t *testing.T, runner aggregates.TxRunner) *fixture {
	t.Helper()
	db := repotest.DB(t)
	log := repotest.Logger(t)
	f := &fixture{
		ctx:      context.Background(),
		db:       db,
		hooks:    &aggtest.HooksRecorder{},
		now:      time.Date(2024, time.October, 7, 9, 30, 0, 0, time.UTC),
		classes:  repos.NewClassRepo(db, log),
		students: repos.NewStudentRepo(db, log),
		teachers: repos.NewTeacherRepo(db, log),
		subjects: repos.NewSubjectRepo(db, log),
		lessons:  repos.NewLessonRepo(db, log),
		grades:   repos.NewGradeRepo(db, log),
	}
	base := aggregates.BaseDeps{DB: db, Log: log, Runner: runner, Hooks: f.hooks}
	f.enrollment = aggregates.NewEnrollmentAggregate(aggregates.EnrollmentAggregateDeps{
		Base:     base,
		Classes:  f.classes,
		Students: f.students,
	})
	f.curriculum = aggregates.NewCurriculumAggregate(aggregates.CurriculumAggregateDeps{
		Base:     base,
		Classes:  f.classes,
		Students: f.students,
		Teachers: f.teachers,
		Subjects: f.subjects,
		Lessons:  f.lessons,
		Grades:   f.grades,
		Now:      func() time.Time { return f.now },
	})
	f.roster = aggregates.NewRosterAggregate(aggregates.RosterAggregateDeps{
		Base:     base,
		Classes:  f.classes,
		Students: f.students,
		Teachers: f.teachers,
		Subjects: f.subjects,
		Lessons:  f.lessons,
		Grades:   f.grades,
	})
	return f
}

func (f *fixture) count(t *testing.T, model any, where string, args ...any) int64 {
	t.Helper()
	var n int64
	if err := f.db.Model(model).Where(where, args...).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
