package school

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Class is a cohort sharing grade level, section letter and room.
type Class struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GradeLevel int       `gorm:"column:grade_level;not null;uniqueIndex:idx_class_level_section_room" json:"grade_level" validate:"gte=1"`
	Section    string    `gorm:"column:section;type:varchar(1);not null;uniqueIndex:idx_class_level_section_room" json:"section" validate:"required,len=1"`
	Room       string    `gorm:"column:room;type:varchar(10);not null;uniqueIndex:idx_class_level_section_room" json:"room" validate:"required,max=10"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Class) TableName() string { return "class" }

func (c Class) String() string {
	return fmt.Sprintf("%d.%s (%s)", c.GradeLevel, c.Section, c.Room)
}
