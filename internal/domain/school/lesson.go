package school

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Lesson is one timetable slot.
type Lesson struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TeacherID uuid.UUID `gorm:"type:uuid;not null;index" json:"teacher_id" validate:"required"`
	Teacher   *Teacher  `gorm:"constraint:OnDelete:CASCADE;foreignKey:TeacherID;references:ID" json:"teacher,omitempty" validate:"-"`
	ClassID   uuid.UUID `gorm:"type:uuid;not null;index" json:"class_id" validate:"required"`
	Class     *Class    `gorm:"constraint:OnDelete:CASCADE;foreignKey:ClassID;references:ID" json:"class,omitempty" validate:"-"`
	SubjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"subject_id" validate:"required"`
	Subject   *Subject  `gorm:"constraint:OnDelete:CASCADE;foreignKey:SubjectID;references:ID" json:"subject,omitempty" validate:"-"`

	Weekday string `gorm:"column:weekday;type:varchar(10);not null" json:"weekday" validate:"required,max=10"`
	Period  int    `gorm:"column:period;not null" json:"period" validate:"gte=0"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Lesson) TableName() string { return "lesson" }

func (l Lesson) String() string {
	class, subject := l.ClassID.String(), l.SubjectID.String()
	if l.Class != nil {
		class = l.Class.String()
	}
	if l.Subject != nil {
		subject = l.Subject.String()
	}
	return fmt.Sprintf("%s – %s (%s %d. óra)", class, subject, l.Weekday, l.Period)
}
