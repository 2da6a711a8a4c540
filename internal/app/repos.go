package app

import (
	"gorm.io/gorm"

	"github.com/ellenorzo/ellenorzo-backend/internal/data/repos"
	"github.com/ellenorzo/ellenorzo-backend/internal/platform/logger"
)

type Repos struct {
	Class   repos.ClassRepo
	Student repos.StudentRepo
	Teacher repos.TeacherRepo
	Subject repos.SubjectRepo
	Lesson  repos.LessonRepo
	Grade   repos.GradeRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Class:   repos.NewClassRepo(db, log),
		Student: repos.NewStudentRepo(db, log),
		Teacher: repos.NewTeacherRepo(db, log),
		Subject: repos.NewSubjectRepo(db, log),
		Lesson:  repos.NewLessonRepo(db, log),
		Grade:   repos.NewGradeRepo(db, log),
	}
}
