package aggregates_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/ellenorzo/ellenorzo-backend/internal/data/aggregates"
	aggtest "github.com/ellenorzo/ellenorzo-backend/internal/data/aggregates/testutil"
	repotest "github.com/ellenorzo/ellenorzo-backend/internal/data/repos/testutil"
	types "github.com/ellenorzo/ellenorzo-backend/internal/domain"
	domainagg "github.com/ellenorzo/ellenorzo-backend/internal/domain/aggregates"
	"github.com/ellenorzo/ellenorzo-backend/internal/pkg/dbctx"
)

var (
	beforeCutoff = repotest.Date(2024, time.June, 20)
	afterCutoff  = repotest.Date(2024, time.September, 2)
)

func TestEnrollFirstStudentOfClass(t *testing.T) {
	f := newFixture(t, nil)
	class := repotest.SeedClass(t, f.ctx, f.db, 9, "A", "101")

	res, err := f.enrollment.Enroll(f.ctx, repotest.NewStudent(class.ID, "Kovács Anna", beforeCutoff))
	if err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if !res.Assigned || res.Group != "roster_by_name" {
		t.Fatalf("unexpected result: %+v", res)
	}
	stored, err := f.students.GetByID(dbctx.New(f.ctx, nil), res.Student.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.RegistryNumber == nil || *stored.RegistryNumber != 1 {
		t.Fatalf("registry number: want=1 got=%v", stored.RegistryNumber)
	}
	if stored.RegistrySlip == nil || *stored.RegistrySlip != "1/2024" {
		t.Fatalf("registry slip: want=1/2024 got=%v", stored.RegistrySlip)
	}
	if len(f.hooks.Registry) != 1 || f.hooks.Registry[0] != "roster_by_name" {
		t.Fatalf("registry hook: %v", f.hooks.Registry)
	}
	if got := f.hooks.LastStatus("School.Enrollment.Enroll"); got != "success" {
		t.Fatalf("op status: want=success got=%q", got)
	}
}

func TestEnrollAfterCutoffUsesEnrollmentOrder(t *testing.T) {
	f := newFixture(t, nil)
	class := repotest.SeedClass(t, f.ctx, f.db, 10, "B", "204")
	repotest.SeedStudent(t, f.ctx, f.db, class.ID, "Nagy Béla", beforeCutoff)
	repotest.SeedStudent(t, f.ctx, f.db, class.ID, "Szabó Csilla", beforeCutoff)
	other := repotest.SeedClass(t, f.ctx, f.db, 10, "C", "205")
	repotest.SeedStudent(t, f.ctx, f.db, other.ID, "Tóth Dénes", beforeCutoff)

	res, err := f.enrollment.Enroll(f.ctx, repotest.NewStudent(class.ID, "Aba Ádám", afterCutoff))
	if err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if res.Group != "enrollment_order" {
		t.Fatalf("group: want=enrollment_order got=%q", res.Group)
	}
	if *res.Student.RegistryNumber != 3 || *res.Student.RegistrySlip != "3/2024" {
		t.Fatalf("want 3 and 3/2024, got %d and %s", *res.Student.RegistryNumber, *res.Student.RegistrySlip)
	}
}

func TestEnrollNewStudentBeforeCutoffAppends(t *testing.T) {
	f := newFixture(t, nil)
	class := repotest.SeedClass(t, f.ctx, f.db, 9, "A", "101")
	repotest.SeedStudent(t, f.ctx, f.db, class.ID, "Zala Zoltán", beforeCutoff)
	repotest.SeedStudent(t, f.ctx, f.db, class.ID, "Bodor Béla", beforeCutoff)

	// A brand-new row is not among its classmates yet, so it is appended rather than ranked.
	res, err := f.enrollment.Enroll(f.ctx, repotest.NewStudent(class.ID, "Antal Aladár", beforeCutoff))
	if err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if *res.Student.RegistryNumber != 3 {
		t.Fatalf("registry number: want=3 got=%d", *res.Student.RegistryNumber)
	}
}

func TestSaveRanksPersistedStudentByHungarianName(t *testing.T) {
	f := newFixture(t, nil)
	class := repotest.SeedClass(t, f.ctx, f.db, 11, "C", "12")
	repotest.SeedStudent(t, f.ctx, f.db, class.ID, "Zoltán", beforeCutoff)
	eva := repotest.SeedStudent(t, f.ctx, f.db, class.ID, "Éva", beforeCutoff)
	repotest.SeedStudent(t, f.ctx, f.db, class.ID, "Ede", beforeCutoff)

	eva.Track = "nyelvi előkészítő"
	res, err := f.enrollment.Save(f.ctx, eva)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !res.Assigned || res.Group != "roster_by_name" {
		t.Fatalf("unexpected result: %+v", res)
	}
	// Ede < Éva < Zoltán under Hungarian collation; byte order would put Éva last.
	if *res.Student.RegistryNumber != 2 || *res.Student.RegistrySlip != "2/2024" {
		t.Fatalf("want 2 and 2/2024, got %d and %s", *res.Student.RegistryNumber, *res.Student.RegistrySlip)
	}
	stored, err := f.students.GetByID(dbctx.New(f.ctx, nil), eva.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Track != "nyelvi előkészítő" || *stored.RegistryNumber != 2 {
		t.Fatalf("update not persisted: %+v", stored)
	}
}

func TestSaveCountsPersistedStudentAfterCutoff(t *testing.T) {
	f := newFixture(t, nil)
	class := repotest.SeedClass(t, f.ctx, f.db, 9, "D", "3")
	repotest.SeedStudent(t, f.ctx, f.db, class.ID, "Első", afterCutoff)
	repotest.SeedStudent(t, f.ctx, f.db, class.ID, "Második", afterCutoff)
	late := repotest.SeedStudent(t, f.ctx, f.db, class.ID, "Harmadik", afterCutoff)

	res, err := f.enrollment.Save(f.ctx, late)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	// the stored row itself is among the three counted
	if *res.Student.RegistryNumber != 4 {
		t.Fatalf("registry number: want=4 got=%d", *res.Student.RegistryNumber)
	}
}

func TestSaveNeverRenumbers(t *testing.T) {
	f := newFixture(t, nil)
	class := repotest.SeedClass(t, f.ctx, f.db, 9, "A", "101")
	other := repotest.SeedClass(t, f.ctx, f.db, 9, "B", "102")
	res, err := f.enrollment.Enroll(f.ctx, repotest.NewStudent(class.ID, "Kiss Péter", afterCutoff))
	if err != nil {
		t.Fatalf("Enroll: %v", err)
	}

	edited := *res.Student
	forged, forgedSlip := 42, "42/1999"
	edited.RegistryNumber = &forged
	edited.RegistrySlip = &forgedSlip
	edited.ClassID = other.ID
	edited.Boarding = true
	edited.BoardingHouse = "Kollégium"

	saved, err := f.enrollment.Save(f.ctx, &edited)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.Assigned {
		t.Fatalf("an assigned number must not be reassigned")
	}
	stored, err := f.students.GetByID(dbctx.New(f.ctx, nil), edited.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if *stored.RegistryNumber != 1 || *stored.RegistrySlip != "1/2024" {
		t.Fatalf("registry fields changed: %d %s", *stored.RegistryNumber, *stored.RegistrySlip)
	}
	if stored.ClassID != other.ID || !stored.Boarding || stored.BoardingHouse != "Kollégium" {
		t.Fatalf("other fields not updated: %+v", stored)
	}
	if len(f.hooks.Registry) != 1 {
		t.Fatalf("registry hook should fire once, got %v", f.hooks.Registry)
	}
}

func TestEnrollRejectsMissingClass(t *testing.T) {
	f := newFixture(t, nil)
	in := repotest.NewStudent(uuid.New(), "Senki Sem", beforeCutoff)

	_, err := f.enrollment.Enroll(f.ctx, in)
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
	if in.ID != uuid.Nil || in.RegistryNumber != nil || in.RegistrySlip != nil {
		t.Fatalf("candidate should be left untouched: %+v", in)
	}
}

func TestEnrollValidatesInput(t *testing.T) {
	f := newFixture(t, nil)
	class := repotest.SeedClass(t, f.ctx, f.db, 9, "A", "101")
	in := repotest.NewStudent(class.ID, "", beforeCutoff)

	_, err := f.enrollment.Enroll(f.ctx, in)
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("expected validation, got %v", err)
	}
	if _, err := f.enrollment.Save(f.ctx, repotest.NewStudent(class.ID, "No ID", beforeCutoff)); !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("Save without id: expected validation, got %v", err)
	}
}

func TestEnrollRejectsMissingDates(t *testing.T) {
	f := newFixture(t, nil)
	class := repotest.SeedClass(t, f.ctx, f.db, 9, "A", "101")

	noEnrollment := repotest.NewStudent(class.ID, "Dátum Nélküli", datatypes.Date{})
	_, err := f.enrollment.Enroll(f.ctx, noEnrollment)
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("zero enrolled_on: expected validation, got %v", err)
	}
	if noEnrollment.RegistryNumber != nil || noEnrollment.RegistrySlip != nil {
		t.Fatalf("candidate should stay unnumbered: %+v", noEnrollment)
	}

	noBirth := repotest.NewStudent(class.ID, "Születés Nélküli", beforeCutoff)
	noBirth.BirthDate = datatypes.Date{}
	if _, err := f.enrollment.Enroll(f.ctx, noBirth); !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("zero birth_date: expected validation, got %v", err)
	}
	if n := f.count(t, &types.Student{}, "class_id = ?", class.ID); n != 0 {
		t.Fatalf("no student should be stored: %d rows", n)
	}
}

func TestSaveRejectsHalfAssignedRegistry(t *testing.T) {
	f := newFixture(t, nil)
	class := repotest.SeedClass(t, f.ctx, f.db, 9, "A", "101")
	s := repotest.SeedStudent(t, f.ctx, f.db, class.ID, "Fél Ferenc", beforeCutoff)
	if err := f.db.Model(&types.Student{}).Where("id = ?", s.ID).Update("registry_number", 7).Error; err != nil {
		t.Fatalf("corrupt row: %v", err)
	}

	s.BoardingHouse = "Kollégium"
	_, err := f.enrollment.Save(f.ctx, s)
	if !domainagg.IsCode(err, domainagg.CodeInvariantViolation) {
		t.Fatalf("expected invariant_violation, got %v", err)
	}
	if got := f.hooks.LastStatus("School.Enrollment.Save"); got != string(domainagg.CodeInvariantViolation) {
		t.Fatalf("op status: got=%q", got)
	}
	stored, err := f.students.GetByID(dbctx.New(f.ctx, nil), s.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.BoardingHouse != "" || stored.RegistrySlip != nil {
		t.Fatalf("row should be unchanged: %+v", stored)
	}
}

func TestSaveUnknownStudent(t *testing.T) {
	f := newFixture(t, nil)
	class := repotest.SeedClass(t, f.ctx, f.db, 9, "A", "101")
	in := repotest.NewStudent(class.ID, "Szellem", beforeCutoff)
	in.ID = uuid.New()

	if _, err := f.enrollment.Save(f.ctx, in); !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestEnrollRollsBackOnFailedCommit(t *testing.T) {
	commitErr := errors.New("connection reset")
	runner := &aggtest.InjectedTxRunner{FailCommit: commitErr}
	f := newFixture(t, runner)
	runner.Inner = aggregates.NewGormTxRunner(f.db)
	class := repotest.SeedClass(t, f.ctx, f.db, 9, "A", "101")
	in := repotest.NewStudent(class.ID, "Pech Pál", beforeCutoff)

	_, err := f.enrollment.Enroll(f.ctx, in)
	if !errors.Is(err, commitErr) {
		t.Fatalf("expected injected error, got %v", err)
	}
	if n := f.count(t, &types.Student{}, "class_id = ?", class.ID); n != 0 {
		t.Fatalf("student persisted despite rollback: %d rows", n)
	}
	if in.RegistryNumber != nil || in.ID != uuid.Nil {
		t.Fatalf("candidate should be restored: %+v", in)
	}
	if runner.RollbackCalls != 1 || runner.CommitCalls != 0 {
		t.Fatalf("unexpected counters commit=%d rollback=%d", runner.CommitCalls, runner.RollbackCalls)
	}
	if len(f.hooks.Registry) != 0 {
		t.Fatalf("no assignment should be observed: %v", f.hooks.Registry)
	}
}

func TestEnrollmentSequenceIsMonotonic(t *testing.T) {
	f := newFixture(t, nil)
	class := repotest.SeedClass(t, f.ctx, f.db, 12, "E", "40")
	for i, name := range []string{"Első", "Második", "Harmadik", "Negyedik"} {
		res, err := f.enrollment.Enroll(f.ctx, repotest.NewStudent(class.ID, name, afterCutoff))
		if err != nil {
			t.Fatalf("Enroll %s: %v", name, err)
		}
		if *res.Student.RegistryNumber != i+1 {
			t.Fatalf("%s: want=%d got=%d", name, i+1, *res.Student.RegistryNumber)
		}
	}
	register, err := f.students.ListRegister(dbctx.New(f.ctx, nil), class.ID)
	if err != nil {
		t.Fatalf("ListRegister: %v", err)
	}
	if len(register) != 4 || register[0].Name != "Első" || register[3].Name != "Negyedik" {
		t.Fatalf("register order wrong: %v", register)
	}
}
