package school_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ellenorzo/ellenorzo-backend/internal/data/aggregates"
	"github.com/ellenorzo/ellenorzo-backend/internal/data/repos/school"
	"github.com/ellenorzo/ellenorzo-backend/internal/data/repos/testutil"
	types "github.com/ellenorzo/ellenorzo-backend/internal/domain"
	domainagg "github.com/ellenorzo/ellenorzo-backend/internal/domain/aggregates"
	"github.com/ellenorzo/ellenorzo-backend/internal/pkg/dbctx"
)

func TestClassRepoCreateAndFind(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := school.NewClassRepo(tx, testutil.Logger(t))
	dbc := dbctx.New(ctx, tx)

	created, err := repo.Create(dbc, []*types.Class{
		{GradeLevel: 10, Section: "B", Room: "12"},
		{GradeLevel: 9, Section: "A", Room: "101"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	for _, c := range created {
		if c.ID == uuid.Nil {
			t.Fatalf("Create should assign ids")
		}
	}

	found, err := repo.FindByLevelSectionRoom(dbc, 9, "A", "101")
	if err != nil {
		t.Fatalf("FindByLevelSectionRoom: %v", err)
	}
	if found.ID != created[1].ID || found.String() != "9.A (101)" {
		t.Fatalf("unexpected class: %+v", found)
	}
	if _, err := repo.FindByLevelSectionRoom(dbc, 9, "A", "999"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}

	list, err := repo.List(dbc)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].GradeLevel != 9 {
		t.Fatalf("List order: %+v", list)
	}
}

func TestClassRepoUniqueIndex(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := school.NewClassRepo(db, testutil.Logger(t))
	dbc := dbctx.New(ctx, nil)

	if _, err := repo.Create(dbc, []*types.Class{{GradeLevel: 9, Section: "A", Room: "101"}}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := repo.Create(dbc, []*types.Class{{GradeLevel: 9, Section: "A", Room: "101"}})
	if err == nil {
		t.Fatalf("duplicate class accepted")
	}
	if mapped := aggregates.MapError("test", err); !domainagg.IsCode(mapped, domainagg.CodeConflict) {
		t.Fatalf("expected conflict, got %v", mapped)
	}
}

func TestStudentRepoQueries(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	log := testutil.Logger(t)
	repo := school.NewStudentRepo(tx, log)
	dbc := dbctx.New(ctx, tx)

	a := testutil.SeedClass(t, ctx, tx, 9, "A", "101")
	b := testutil.SeedClass(t, ctx, tx, 9, "B", "102")
	enrolled := testutil.Date(2024, time.June, 1)
	testutil.SeedStudent(t, ctx, tx, a.ID, "Nagy", enrolled)
	testutil.SeedStudent(t, ctx, tx, a.ID, "Kiss", enrolled)
	testutil.SeedStudent(t, ctx, tx, b.ID, "Toth", enrolled)

	list, err := repo.ListByClassID(dbc, a.ID)
	if err != nil {
		t.Fatalf("ListByClassID: %v", err)
	}
	if len(list) != 2 || list[0].Name != "Kiss" || list[1].Name != "Nagy" {
		t.Fatalf("ListByClassID order: %v", list)
	}
	n, err := repo.CountByClassID(dbc, a.ID)
	if err != nil || n != 2 {
		t.Fatalf("CountByClassID: n=%d err=%v", n, err)
	}
	both, err := repo.ListByClassIDs(dbc, []uuid.UUID{a.ID, b.ID})
	if err != nil || len(both) != 3 {
		t.Fatalf("ListByClassIDs: n=%d err=%v", len(both), err)
	}

	withClass, err := repo.GetWithClass(dbc, list[0].ID)
	if err != nil {
		t.Fatalf("GetWithClass: %v", err)
	}
	if withClass.String() != "Kiss (9.A (101))" {
		t.Fatalf("display string: %q", withClass.String())
	}
	if _, err := repo.GetByID(dbc, uuid.New()); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}
}

func TestStudentRepoUpdateKeepsCreatedAt(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := school.NewStudentRepo(tx, testutil.Logger(t))
	dbc := dbctx.New(ctx, tx)

	class := testutil.SeedClass(t, ctx, tx, 9, "A", "101")
	s := testutil.SeedStudent(t, ctx, tx, class.ID, "Kiss", testutil.Date(2024, time.June, 1))
	created := s.CreatedAt

	s.CreatedAt = time.Time{}
	s.Boarding = true
	s.BoardingHouse = "Kollégium"
	if err := repo.Update(dbc, s); err != nil {
		t.Fatalf("Update: %v", err)
	}
	stored, err := repo.GetByID(dbc, s.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !stored.Boarding || stored.BoardingHouse != "Kollégium" {
		t.Fatalf("update not applied: %+v", stored)
	}
	if !stored.CreatedAt.Equal(created) {
		t.Fatalf("created_at changed: %v -> %v", created, stored.CreatedAt)
	}
}

func TestGradeRepoUpdateNeverMovesRecordedOn(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := school.NewGradeRepo(tx, testutil.Logger(t))
	dbc := dbctx.New(ctx, tx)

	class := testutil.SeedClass(t, ctx, tx, 9, "A", "101")
	st := testutil.SeedStudent(t, ctx, tx, class.ID, "Kiss", testutil.Date(2024, time.June, 1))
	sub := testutil.SeedSubject(t, ctx, tx, "Biológia", 9, types.CategoryGeneral, 2)
	day := testutil.Date(2024, time.October, 3)
	g := testutil.SeedGrade(t, ctx, tx, st.ID, sub.ID, day, 3)

	g.RecordedOn = testutil.Date(2025, time.January, 1)
	g.Score = 4
	if err := repo.Update(dbc, g); err != nil {
		t.Fatalf("Update: %v", err)
	}
	stored, err := repo.GetByID(dbc, g.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Score != 4 || !time.Time(stored.RecordedOn).Equal(time.Time(day)) {
		t.Fatalf("unexpected grade: score=%v recorded_on=%v", stored.Score, time.Time(stored.RecordedOn))
	}

	bySubject, err := repo.ListByStudentAndSubject(dbc, st.ID, sub.ID)
	if err != nil || len(bySubject) != 1 {
		t.Fatalf("ListByStudentAndSubject: n=%d err=%v", len(bySubject), err)
	}
}

func TestLessonRepoDeletesByParent(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := school.NewLessonRepo(tx, testutil.Logger(t))
	dbc := dbctx.New(ctx, tx)

	class := testutil.SeedClass(t, ctx, tx, 9, "A", "101")
	teacher := testutil.SeedTeacher(t, ctx, tx, "Horváth Gábor", "Matematika")
	sub := testutil.SeedSubject(t, ctx, tx, "Matematika", 9, types.CategoryGeneral, 4)
	testutil.SeedLesson(t, ctx, tx, teacher.ID, class.ID, sub.ID, "szerda", 4)
	testutil.SeedLesson(t, ctx, tx, teacher.ID, class.ID, sub.ID, "hétfő", 2)

	list, err := repo.ListByClassID(dbc, class.ID)
	if err != nil {
		t.Fatalf("ListByClassID: %v", err)
	}
	if len(list) != 2 || list[0].Weekday != "hétfő" || list[0].Teacher == nil {
		t.Fatalf("ListByClassID: %+v", list)
	}
	n, err := repo.FullDeleteByTeacherIDs(dbc, []uuid.UUID{teacher.ID})
	if err != nil || n != 2 {
		t.Fatalf("FullDeleteByTeacherIDs: n=%d err=%v", n, err)
	}
	if n, err := repo.FullDeleteByClassIDs(dbc, nil); err != nil || n != 0 {
		t.Fatalf("empty delete: n=%d err=%v", n, err)
	}
}

func TestStoreCascadesOnParentDelete(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	log := testutil.Logger(t)
	dbc := dbctx.New(ctx, nil)

	class := testutil.SeedClass(t, ctx, db, 9, "A", "101")
	st := testutil.SeedStudent(t, ctx, db, class.ID, "Kiss", testutil.Date(2024, time.June, 1))
	sub := testutil.SeedSubject(t, ctx, db, "Ének", 9, types.CategoryGeneral, 1)
	testutil.SeedGrade(t, ctx, db, st.ID, sub.ID, testutil.Date(2024, time.October, 1), 5)

	if err := school.NewClassRepo(db, log).FullDeleteByIDs(dbc, []uuid.UUID{class.ID}); err != nil {
		t.Fatalf("FullDeleteByIDs: %v", err)
	}
	var students, grades int64
	db.Model(&types.Student{}).Count(&students)
	db.Model(&types.Grade{}).Count(&grades)
	if students != 0 || grades != 0 {
		t.Fatalf("store should cascade: students=%d grades=%d", students, grades)
	}
}
