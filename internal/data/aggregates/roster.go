package aggregates

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ellenorzo/ellenorzo-backend/internal/data/repos"
	types "github.com/ellenorzo/ellenorzo-backend/internal/domain"
	domainagg "github.com/ellenorzo/ellenorzo-backend/internal/domain/aggregates"
	"github.com/ellenorzo/ellenorzo-backend/internal/pkg/dbctx"
)

type RosterAggregateDeps struct {
	Base BaseDeps

	Classes  repos.ClassRepo
	Students repos.StudentRepo
	Teachers repos.TeacherRepo
	Subjects repos.SubjectRepo
	Lessons  repos.LessonRepo
	Grades   repos.GradeRepo
}

type rosterAggregate struct {
	deps RosterAggregateDeps
}

func NewRosterAggregate(deps RosterAggregateDeps) domainagg.RosterAggregate {
	deps.Base = deps.Base.withDefaults()
	deps.Base.Log = deps.Base.Log.With("aggregate", "RosterAggregate")
	return &rosterAggregate{deps: deps}
}

func (a *rosterAggregate) Contract() domainagg.Contract {
	return domainagg.RosterAggregateContract
}

func (a *rosterAggregate) CreateClass(ctx context.Context, in *types.Class) (*types.Class, error) {
	const op = "School.Roster.CreateClass"
	if in == nil {
		return nil, MapError(op, ValidationError("class is required"))
	}
	if err := validateInput("class", in); err != nil {
		return nil, MapError(op, err)
	}
	prevID := in.ID
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		existing, err := a.deps.Classes.FindByLevelSectionRoom(dbc, in.GradeLevel, in.Section, in.Room)
		switch {
		case err == nil:
			return ConflictError("class " + existing.String() + " already exists")
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
		_, err = a.deps.Classes.Create(dbc, []*types.Class{in})
		return err
	})
	if err != nil {
		in.ID = prevID
		return nil, err
	}
	return in, nil
}

func (a *rosterAggregate) CreateTeacher(ctx context.Context, in *types.Teacher) (*types.Teacher, error) {
	const op = "School.Roster.CreateTeacher"
	if in == nil {
		return nil, MapError(op, ValidationError("teacher is required"))
	}
	if err := validateInput("teacher", in); err != nil {
		return nil, MapError(op, err)
	}
	prevID := in.ID
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		_, err := a.deps.Teachers.Create(dbc, []*types.Teacher{in})
		return err
	})
	if err != nil {
		in.ID = prevID
		return nil, err
	}
	return in, nil
}

func (a *rosterAggregate) DeleteClass(ctx context.Context, id uuid.UUID) (domainagg.CascadeResult, error) {
	const op = "School.Roster.DeleteClass"
	var out domainagg.CascadeResult
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if _, err := a.deps.Classes.GetByID(dbc, id); err != nil {
			return notFoundOr(op, "class", id, err)
		}
		classIDs := []uuid.UUID{id}
		students, err := a.deps.Students.ListByClassIDs(dbc, classIDs)
		if err != nil {
			return err
		}
		studentIDs := make([]uuid.UUID, 0, len(students))
		for _, s := range students {
			studentIDs = append(studentIDs, s.ID)
		}
		grades, err := a.deps.Grades.FullDeleteByStudentIDs(dbc, studentIDs)
		if err != nil {
			return err
		}
		if err := a.deps.Students.FullDeleteByClassIDs(dbc, classIDs); err != nil {
			return err
		}
		lessons, err := a.deps.Lessons.FullDeleteByClassIDs(dbc, classIDs)
		if err != nil {
			return err
		}
		if err := a.deps.Classes.FullDeleteByIDs(dbc, classIDs); err != nil {
			return err
		}
		out = domainagg.CascadeResult{StudentIDs: studentIDs, Lessons: int(lessons), Grades: int(grades)}
		return nil
	})
	if err != nil {
		return domainagg.CascadeResult{}, err
	}
	a.logCascade(op, id, out)
	return out, nil
}

func (a *rosterAggregate) DeleteStudent(ctx context.Context, id uuid.UUID) (domainagg.CascadeResult, error) {
	const op = "School.Roster.DeleteStudent"
	var out domainagg.CascadeResult
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if _, err := a.deps.Students.GetByID(dbc, id); err != nil {
			return notFoundOr(op, "student", id, err)
		}
		ids := []uuid.UUID{id}
		grades, err := a.deps.Grades.FullDeleteByStudentIDs(dbc, ids)
		if err != nil {
			return err
		}
		if err := a.deps.Students.FullDeleteByIDs(dbc, ids); err != nil {
			return err
		}
		out = domainagg.CascadeResult{Grades: int(grades)}
		return nil
	})
	if err != nil {
		return domainagg.CascadeResult{}, err
	}
	a.logCascade(op, id, out)
	return out, nil
}

func (a *rosterAggregate) DeleteSubject(ctx context.Context, id uuid.UUID) (domainagg.CascadeResult, error) {
	const op = "School.Roster.DeleteSubject"
	var out domainagg.CascadeResult
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if _, err := a.deps.Subjects.GetByID(dbc, id); err != nil {
			return notFoundOr(op, "subject", id, err)
		}
		ids := []uuid.UUID{id}
		grades, err := a.deps.Grades.FullDeleteBySubjectIDs(dbc, ids)
		if err != nil {
			return err
		}
		lessons, err := a.deps.Lessons.FullDeleteBySubjectIDs(dbc, ids)
		if err != nil {
			return err
		}
		if err := a.deps.Subjects.FullDeleteByIDs(dbc, ids); err != nil {
			return err
		}
		out = domainagg.CascadeResult{Lessons: int(lessons), Grades: int(grades)}
		return nil
	})
	if err != nil {
		return domainagg.CascadeResult{}, err
	}
	a.logCascade(op, id, out)
	return out, nil
}

func (a *rosterAggregate) DeleteTeacher(ctx context.Context, id uuid.UUID) (domainagg.CascadeResult, error) {
	const op = "School.Roster.DeleteTeacher"
	var out domainagg.CascadeResult
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if _, err := a.deps.Teachers.GetByID(dbc, id); err != nil {
			return notFoundOr(op, "teacher", id, err)
		}
		ids := []uuid.UUID{id}
		lessons, err := a.deps.Lessons.FullDeleteByTeacherIDs(dbc, ids)
		if err != nil {
			return err
		}
		if err := a.deps.Teachers.FullDeleteByIDs(dbc, ids); err != nil {
			return err
		}
		out = domainagg.CascadeResult{Lessons: int(lessons)}
		return nil
	})
	if err != nil {
		return domainagg.CascadeResult{}, err
	}
	a.logCascade(op, id, out)
	return out, nil
}

func (a *rosterAggregate) logCascade(op string, id uuid.UUID, out domainagg.CascadeResult) {
	a.deps.Base.Log.Info("cascade delete",
		"op", op,
		"id", id,
		"students", len(out.StudentIDs),
		"lessons", out.Lessons,
		"grades", out.Grades,
	)
}
