package db

import (
	"fmt"

	types "github.com/ellenorzo/ellenorzo-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.Class{},
		&types.Teacher{},
		&types.Subject{},
		&types.Student{},
		&types.Lesson{},
		&types.Grade{},
	)
}

// EnsureSchoolIndexes adds the composite lookup indexes the repos order by.
func EnsureSchoolIndexes(db *gorm.DB) error {
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_student_class_name ON student (class_id, name);`).Error; err != nil {
		return fmt.Errorf("create idx_student_class_name: %w", err)
	}
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_lesson_class_slot ON lesson (class_id, weekday, period);`).Error; err != nil {
		return fmt.Errorf("create idx_lesson_class_slot: %w", err)
	}
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_lesson_teacher_slot ON lesson (teacher_id, weekday, period);`).Error; err != nil {
		return fmt.Errorf("create idx_lesson_teacher_slot: %w", err)
	}
	return nil
}
