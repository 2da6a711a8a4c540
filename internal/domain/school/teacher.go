package school

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Teacher struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"column:name;type:varchar(100);not null" json:"name" validate:"required,max=100"`
	SubjectLabel string    `gorm:"column:subject_label;type:varchar(50);not null" json:"subject_label" validate:"required,max=50"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Teacher) TableName() string { return "teacher" }

func (t Teacher) String() string {
	return fmt.Sprintf("%s – %s", t.Name, t.SubjectLabel)
}
