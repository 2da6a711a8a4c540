package aggregates

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ellenorzo/ellenorzo-backend/internal/data/repos"
	types "github.com/ellenorzo/ellenorzo-backend/internal/domain"
	domainagg "github.com/ellenorzo/ellenorzo-backend/internal/domain/aggregates"
	"github.com/ellenorzo/ellenorzo-backend/internal/modules/school/registry"
	"github.com/ellenorzo/ellenorzo-backend/internal/pkg/dbctx"
)

type EnrollmentAggregateDeps struct {
	Base BaseDeps

	Classes  repos.ClassRepo
	Students repos.StudentRepo
}

type enrollmentAggregate struct {
	deps EnrollmentAggregateDeps
}

func NewEnrollmentAggregate(deps EnrollmentAggregateDeps) domainagg.EnrollmentAggregate {
	deps.Base = deps.Base.withDefaults()
	deps.Base.Log = deps.Base.Log.With("aggregate", "EnrollmentAggregate")
	return &enrollmentAggregate{deps: deps}
}

func (a *enrollmentAggregate) Contract() domainagg.Contract {
	return domainagg.EnrollmentAggregateContract
}

func (a *enrollmentAggregate) Enroll(ctx context.Context, in *types.Student) (domainagg.EnrollStudentResult, error) {
	const op = "School.Enrollment.Enroll"
	var out domainagg.EnrollStudentResult
	if in == nil {
		return out, MapError(op, ValidationError("student is required"))
	}
	if err := validateInput("student", in); err != nil {
		return out, MapError(op, err)
	}
	prevID, prevNumber, prevSlip := in.ID, in.RegistryNumber, in.RegistrySlip
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if err := a.requireClass(dbc, op, in.ClassID); err != nil {
			return err
		}
		group, assigned, err := a.assign(dbc, in)
		if err != nil {
			return err
		}
		if _, err := a.deps.Students.Create(dbc, []*types.Student{in}); err != nil {
			return err
		}
		out = domainagg.EnrollStudentResult{Student: in, Assigned: assigned, Group: group}
		return nil
	})
	if err != nil {
		// nothing was persisted; leave the candidate as the caller built it
		in.ID, in.RegistryNumber, in.RegistrySlip = prevID, prevNumber, prevSlip
		return domainagg.EnrollStudentResult{}, err
	}
	a.observeAssignment(out)
	return out, nil
}

func (a *enrollmentAggregate) Save(ctx context.Context, in *types.Student) (domainagg.EnrollStudentResult, error) {
	const op = "School.Enrollment.Save"
	var out domainagg.EnrollStudentResult
	if in == nil || in.ID == uuid.Nil {
		return out, MapError(op, ValidationError("persisted student is required"))
	}
	if err := validateInput("student", in); err != nil {
		return out, MapError(op, err)
	}
	prevNumber, prevSlip := in.RegistryNumber, in.RegistrySlip
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		stored, err := a.deps.Students.GetByID(dbc, in.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainagg.NotFound(op, "student", in.ID)
		}
		if err != nil {
			return err
		}
		if stored.HasRegistryNumber() != (stored.RegistrySlip != nil) {
			return InvariantError("student " + stored.ID.String() + " has a registry number without a slip or a slip without a number")
		}
		if stored.ClassID != in.ClassID {
			if err := a.requireClass(dbc, op, in.ClassID); err != nil {
				return err
			}
		}

		// An assigned number is permanent, whatever the caller sent.
		in.RegistryNumber = stored.RegistryNumber
		in.RegistrySlip = stored.RegistrySlip
		in.CreatedAt = stored.CreatedAt

		var (
			group    string
			assigned bool
		)
		if !in.HasRegistryNumber() {
			if group, assigned, err = a.assign(dbc, in); err != nil {
				return err
			}
		}
		if err := a.deps.Students.Update(dbc, in); err != nil {
			return err
		}
		out = domainagg.EnrollStudentResult{Student: in, Assigned: assigned, Group: group}
		return nil
	})
	if err != nil {
		in.RegistryNumber, in.RegistrySlip = prevNumber, prevSlip
		return domainagg.EnrollStudentResult{}, err
	}
	a.observeAssignment(out)
	return out, nil
}

// assign numbers in against the rows persisted for its class. For a row that is already
// stored, that list contains the row itself.
func (a *enrollmentAggregate) assign(dbc dbctx.Context, in *types.Student) (string, bool, error) {
	if in.HasRegistryNumber() {
		return "", false, nil
	}
	classmates, err := a.deps.Students.ListByClassID(dbc, in.ClassID)
	if err != nil {
		return "", false, err
	}
	result, ok := registry.Apply(in, classmates)
	if !ok {
		return "", false, nil
	}
	return string(result.Group), true, nil
}

func (a *enrollmentAggregate) requireClass(dbc dbctx.Context, op string, classID uuid.UUID) error {
	if _, err := a.deps.Classes.GetByID(dbc, classID); err != nil {
		return notFoundOr(op, "class", classID, err)
	}
	return nil
}

func (a *enrollmentAggregate) observeAssignment(out domainagg.EnrollStudentResult) {
	if !out.Assigned {
		return
	}
	a.deps.Base.Hooks.RegistryAssigned(out.Group)
	a.deps.Base.Log.Debug("registry number assigned",
		"student_id", out.Student.ID,
		"student_name", out.Student.Name,
		"class_id", out.Student.ClassID,
		"group", out.Group,
		"registry_slip", *out.Student.RegistrySlip,
	)
}
