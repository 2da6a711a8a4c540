package school

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Student struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string         `gorm:"column:name;type:varchar(100);not null;index" json:"name" validate:"required,max=100"`
	BirthPlace string         `gorm:"column:birth_place;type:varchar(100);not null" json:"birth_place" validate:"required,max=100"`
	BirthDate  datatypes.Date `gorm:"column:birth_date;not null" json:"birth_date" validate:"required"`
	MotherName string         `gorm:"column:mother_name;type:varchar(100);not null" json:"mother_name" validate:"required,max=100"`
	Address    string         `gorm:"column:address;type:varchar(150);not null" json:"address" validate:"required,max=150"`
	EnrolledOn datatypes.Date `gorm:"column:enrolled_on;not null" json:"enrolled_on" validate:"required"`
	Track      string         `gorm:"column:track;type:varchar(50);not null" json:"track" validate:"required,max=50"`

	ClassID uuid.UUID `gorm:"type:uuid;not null;index" json:"class_id" validate:"required"`
	Class   *Class    `gorm:"constraint:OnDelete:CASCADE;foreignKey:ClassID;references:ID" json:"class,omitempty" validate:"-"`

	Boarding      bool   `gorm:"column:boarding;not null;default:false" json:"boarding"`
	BoardingHouse string `gorm:"column:boarding_house;type:varchar(50)" json:"boarding_house,omitempty" validate:"max=50"`

	// Derived on first save, never recomputed afterwards.
	RegistryNumber *int    `gorm:"column:registry_number" json:"registry_number,omitempty"`
	RegistrySlip   *string `gorm:"column:registry_slip;type:varchar(20)" json:"registry_slip,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Student) TableName() string { return "student" }

// EnrollmentTime returns EnrolledOn as a time.Time.
func (s *Student) EnrollmentTime() time.Time { return time.Time(s.EnrolledOn) }

// HasRegistryNumber reports whether the registry number was already assigned.
func (s *Student) HasRegistryNumber() bool { return s != nil && s.RegistryNumber != nil }

func (s Student) String() string {
	if s.Class == nil {
		return s.Name
	}
	return fmt.Sprintf("%s (%s)", s.Name, s.Class.String())
}
