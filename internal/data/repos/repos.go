package repos

import (
	"gorm.io/gorm"

	"github.com/ellenorzo/ellenorzo-backend/internal/data/repos/school"
	"github.com/ellenorzo/ellenorzo-backend/internal/platform/logger"
)

type ClassRepo = school.ClassRepo
type StudentRepo = school.StudentRepo
type TeacherRepo = school.TeacherRepo
type SubjectRepo = school.SubjectRepo
type LessonRepo = school.LessonRepo
type GradeRepo = school.GradeRepo

func NewClassRepo(db *gorm.DB, baseLog *logger.Logger) ClassRepo {
	return school.NewClassRepo(db, baseLog)
}
func NewStudentRepo(db *gorm.DB, baseLog *logger.Logger) StudentRepo {
	return school.NewStudentRepo(db, baseLog)
}
func NewTeacherRepo(db *gorm.DB, baseLog *logger.Logger) TeacherRepo {
	return school.NewTeacherRepo(db, baseLog)
}
func NewSubjectRepo(db *gorm.DB, baseLog *logger.Logger) SubjectRepo {
	return school.NewSubjectRepo(db, baseLog)
}
func NewLessonRepo(db *gorm.DB, baseLog *logger.Logger) LessonRepo {
	return school.NewLessonRepo(db, baseLog)
}
func NewGradeRepo(db *gorm.DB, baseLog *logger.Logger) GradeRepo {
	return school.NewGradeRepo(db, baseLog)
}
