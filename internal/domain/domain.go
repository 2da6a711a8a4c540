package domain

import (
	"github.com/ellenorzo/ellenorzo-backend/internal/domain/school"
)

const (
	CategoryGeneral    = school.CategoryGeneral
	CategoryVocational = school.CategoryVocational
)

type Class = school.Class
type Student = school.Student
type Teacher = school.Teacher
type Subject = school.Subject
type SubjectCategory = school.SubjectCategory
type Lesson = school.Lesson
type Grade = school.Grade
