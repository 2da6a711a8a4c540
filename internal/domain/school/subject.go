package school

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SubjectCategory is the closed set of subject kinds.
type SubjectCategory string

const (
	CategoryGeneral    SubjectCategory = "general"
	CategoryVocational SubjectCategory = "vocational"
)

func (c SubjectCategory) Valid() bool {
	switch c {
	case CategoryGeneral, CategoryVocational:
		return true
	default:
		return false
	}
}

// Label returns the display label used on printed registers.
func (c SubjectCategory) Label() string {
	switch c {
	case CategoryGeneral:
		return "Közismereti"
	case CategoryVocational:
		return "Szakmai"
	default:
		return string(c)
	}
}

// ParseSubjectCategory accepts the canonical values and the Hungarian register codes.
func ParseSubjectCategory(raw string) (SubjectCategory, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "general", "kozismereti", "közismereti":
		return CategoryGeneral, nil
	case "vocational", "szakmai":
		return CategoryVocational, nil
	default:
		return "", fmt.Errorf("unknown subject category %q", raw)
	}
}

type Subject struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string          `gorm:"column:name;type:varchar(50);not null" json:"name" validate:"required,max=50"`
	GradeLevel  int             `gorm:"column:grade_level;not null;index" json:"grade_level"`
	Category    SubjectCategory `gorm:"column:category;type:varchar(20);not null" json:"category" validate:"oneof=general vocational"`
	WeeklyHours int             `gorm:"column:weekly_hours;not null" json:"weekly_hours" validate:"gte=0"`
	// Derived on every save; nil when no rule covers GradeLevel.
	AnnualHours *int `gorm:"column:annual_hours" json:"annual_hours,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Subject) TableName() string { return "subject" }

func (s Subject) String() string {
	return fmt.Sprintf("%s (%d)", s.Name, s.GradeLevel)
}
