package aggregates

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ellenorzo/ellenorzo-backend/internal/data/repos"
	types "github.com/ellenorzo/ellenorzo-backend/internal/domain"
	domainagg "github.com/ellenorzo/ellenorzo-backend/internal/domain/aggregates"
	"github.com/ellenorzo/ellenorzo-backend/internal/modules/school/annualhours"
	"github.com/ellenorzo/ellenorzo-backend/internal/pkg/dbctx"
)

type CurriculumAggregateDeps struct {
	Base BaseDeps

	Classes  repos.ClassRepo
	Students repos.StudentRepo
	Teachers repos.TeacherRepo
	Subjects repos.SubjectRepo
	Lessons  repos.LessonRepo
	Grades   repos.GradeRepo

	// Now dates new grades; defaults to time.Now.
	Now func() time.Time
}

type curriculumAggregate struct {
	deps CurriculumAggregateDeps
}

func NewCurriculumAggregate(deps CurriculumAggregateDeps) domainagg.CurriculumAggregate {
	deps.Base = deps.Base.withDefaults()
	deps.Base.Log = deps.Base.Log.With("aggregate", "CurriculumAggregate")
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &curriculumAggregate{deps: deps}
}

func (a *curriculumAggregate) Contract() domainagg.Contract {
	return domainagg.CurriculumAggregateContract
}

func (a *curriculumAggregate) SaveSubject(ctx context.Context, in *types.Subject) (domainagg.SaveSubjectResult, error) {
	const op = "School.Curriculum.SaveSubject"
	var out domainagg.SaveSubjectResult
	if in == nil {
		return out, MapError(op, ValidationError("subject is required"))
	}
	if err := validateInput("subject", in); err != nil {
		return out, MapError(op, err)
	}
	prevHours := in.AnnualHours
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		// AnnualHours is derived; the caller's value never reaches the store.
		created := in.ID == uuid.Nil
		if created {
			in.AnnualHours = nil
		} else {
			stored, err := a.deps.Subjects.GetByID(dbc, in.ID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainagg.NotFound(op, "subject", in.ID)
			}
			if err != nil {
				return err
			}
			in.CreatedAt = stored.CreatedAt
			in.AnnualHours = stored.AnnualHours
		}

		derived := annualhours.Apply(in)
		if created {
			if _, err := a.deps.Subjects.Create(dbc, []*types.Subject{in}); err != nil {
				return err
			}
		} else if err := a.deps.Subjects.Update(dbc, in); err != nil {
			return err
		}
		out = domainagg.SaveSubjectResult{Subject: in, HoursDerived: derived, Created: created}
		return nil
	})
	if err != nil {
		in.AnnualHours = prevHours
		return domainagg.SaveSubjectResult{}, err
	}
	if !out.HoursDerived {
		a.deps.Base.Hooks.AnnualHoursUnmatched(in.GradeLevel)
		a.deps.Base.Log.Warn("no annual hours rule for grade level; annual hours left unchanged",
			"subject_id", in.ID,
			"grade_level", in.GradeLevel,
			"category", in.Category,
		)
	}
	return out, nil
}

func (a *curriculumAggregate) RecordGrade(ctx context.Context, in *types.Grade) (*types.Grade, error) {
	const op = "School.Curriculum.RecordGrade"
	if in == nil {
		return nil, MapError(op, ValidationError("grade is required"))
	}
	if in.ID != uuid.Nil {
		return nil, MapError(op, ValidationError("grade is already recorded; use AmendGrade"))
	}
	if err := validateInput("grade", in); err != nil {
		return nil, MapError(op, err)
	}
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if err := a.requireStudent(dbc, op, in.StudentID); err != nil {
			return err
		}
		if err := a.requireSubject(dbc, op, in.SubjectID); err != nil {
			return err
		}
		in.RecordedOn = a.today()
		_, err := a.deps.Grades.Create(dbc, []*types.Grade{in})
		return err
	})
	if err != nil {
		in.ID = uuid.Nil
		return nil, err
	}
	return in, nil
}

func (a *curriculumAggregate) AmendGrade(ctx context.Context, in *types.Grade) (*types.Grade, error) {
	const op = "School.Curriculum.AmendGrade"
	if in == nil || in.ID == uuid.Nil {
		return nil, MapError(op, ValidationError("recorded grade is required"))
	}
	var out *types.Grade
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		stored, err := a.deps.Grades.GetByID(dbc, in.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainagg.NotFound(op, "grade", in.ID)
		}
		if err != nil {
			return err
		}
		stored.Score = in.Score
		stored.Topic = in.Topic
		stored.AssessmentType = in.AssessmentType
		if err := validateInput("grade", stored); err != nil {
			return err
		}
		if err := a.deps.Grades.Update(dbc, stored); err != nil {
			return err
		}
		out = stored
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (a *curriculumAggregate) ScheduleLesson(ctx context.Context, in *types.Lesson) (*types.Lesson, error) {
	const op = "School.Curriculum.ScheduleLesson"
	if in == nil {
		return nil, MapError(op, ValidationError("lesson is required"))
	}
	if err := validateInput("lesson", in); err != nil {
		return nil, MapError(op, err)
	}
	prevID := in.ID
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if _, err := a.deps.Teachers.GetByID(dbc, in.TeacherID); err != nil {
			return notFoundOr(op, "teacher", in.TeacherID, err)
		}
		if _, err := a.deps.Classes.GetByID(dbc, in.ClassID); err != nil {
			return notFoundOr(op, "class", in.ClassID, err)
		}
		if err := a.requireSubject(dbc, op, in.SubjectID); err != nil {
			return err
		}
		_, err := a.deps.Lessons.Create(dbc, []*types.Lesson{in})
		return err
	})
	if err != nil {
		in.ID = prevID
		return nil, err
	}
	return in, nil
}

// today is the calendar date of Now in Now's own location.
func (a *curriculumAggregate) today() datatypes.Date {
	y, m, d := a.deps.Now().Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func (a *curriculumAggregate) requireStudent(dbc dbctx.Context, op string, id uuid.UUID) error {
	if _, err := a.deps.Students.GetByID(dbc, id); err != nil {
		return notFoundOr(op, "student", id, err)
	}
	return nil
}

func (a *curriculumAggregate) requireSubject(dbc dbctx.Context, op string, id uuid.UUID) error {
	if _, err := a.deps.Subjects.GetByID(dbc, id); err != nil {
		return notFoundOr(op, "subject", id, err)
	}
	return nil
}

func notFoundOr(op, entity string, id uuid.UUID, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainagg.NotFound(op, entity, id)
	}
	return err
}
