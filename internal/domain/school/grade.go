package school

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Grade is a scored assessment of a student in a subject.
type Grade struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;index:idx_grade_student_recorded,priority:1" json:"student_id" validate:"required"`
	Student   *Student  `gorm:"constraint:OnDelete:CASCADE;foreignKey:StudentID;references:ID" json:"student,omitempty" validate:"-"`
	SubjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"subject_id" validate:"required"`
	Subject   *Subject  `gorm:"constraint:OnDelete:CASCADE;foreignKey:SubjectID;references:ID" json:"subject,omitempty" validate:"-"`

	// Set once at creation; the column is insert-only.
	RecordedOn datatypes.Date `gorm:"column:recorded_on;not null;<-:create;index:idx_grade_student_recorded,priority:2" json:"recorded_on"`

	Score          float64 `gorm:"column:score;not null" json:"score"`
	Topic          string  `gorm:"column:topic;type:varchar(100)" json:"topic,omitempty" validate:"max=100"`
	AssessmentType string  `gorm:"column:assessment_type;type:varchar(50)" json:"assessment_type,omitempty" validate:"max=50"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Grade) TableName() string { return "grade" }

func (g Grade) String() string {
	student, subject := g.StudentID.String(), g.SubjectID.String()
	if g.Student != nil {
		student = g.Student.String()
	}
	if g.Subject != nil {
		subject = g.Subject.String()
	}
	return fmt.Sprintf("%s – %s: %g", student, subject, g.Score)
}
