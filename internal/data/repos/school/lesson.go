package school

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/ellenorzo/ellenorzo-backend/internal/domain"
	"github.com/ellenorzo/ellenorzo-backend/internal/pkg/dbctx"
	"github.com/ellenorzo/ellenorzo-backend/internal/platform/logger"
)

type LessonRepo interface {
	Create(dbc dbctx.Context, rows []*types.Lesson) ([]*types.Lesson, error)
	ListByClassID(dbc dbctx.Context, classID uuid.UUID) ([]*types.Lesson, error)
	ListByTeacherID(dbc dbctx.Context, teacherID uuid.UUID) ([]*types.Lesson, error)
	FullDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
	FullDeleteByClassIDs(dbc dbctx.Context, classIDs []uuid.UUID) (int64, error)
	FullDeleteByTeacherIDs(dbc dbctx.Context, teacherIDs []uuid.UUID) (int64, error)
	FullDeleteBySubjectIDs(dbc dbctx.Context, subjectIDs []uuid.UUID) (int64, error)
}

type lessonRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLessonRepo(db *gorm.DB, baseLog *logger.Logger) LessonRepo {
	return &lessonRepo{db: db, log: baseLog.With("repo", "LessonRepo")}
}

func (r *lessonRepo) Create(dbc dbctx.Context, rows []*types.Lesson) ([]*types.Lesson, error) {
	if len(rows) == 0 {
		return []*types.Lesson{}, nil
	}
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
	}
	if err := dbc.DB(r.db).Omit(clause.Associations).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *lessonRepo) ListByClassID(dbc dbctx.Context, classID uuid.UUID) ([]*types.Lesson, error) {
	var out []*types.Lesson
	if classID == uuid.Nil {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Preload("Subject").
		Preload("Teacher").
		Where("class_id = ?", classID).
		Order("weekday ASC, period ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *lessonRepo) ListByTeacherID(dbc dbctx.Context, teacherID uuid.UUID) ([]*types.Lesson, error) {
	var out []*types.Lesson
	if teacherID == uuid.Nil {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Preload("Class").
		Preload("Subject").
		Where("teacher_id = ?", teacherID).
		Order("weekday ASC, period ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *lessonRepo) FullDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return dbc.DB(r.db).Where("id IN ?", ids).Delete(&types.Lesson{}).Error
}

func (r *lessonRepo) FullDeleteByClassIDs(dbc dbctx.Context, classIDs []uuid.UUID) (int64, error) {
	if len(classIDs) == 0 {
		return 0, nil
	}
	res := dbc.DB(r.db).Where("class_id IN ?", classIDs).Delete(&types.Lesson{})
	return res.RowsAffected, res.Error
}

func (r *lessonRepo) FullDeleteByTeacherIDs(dbc dbctx.Context, teacherIDs []uuid.UUID) (int64, error) {
	if len(teacherIDs) == 0 {
		return 0, nil
	}
	res := dbc.DB(r.db).Where("teacher_id IN ?", teacherIDs).Delete(&types.Lesson{})
	return res.RowsAffected, res.Error
}

func (r *lessonRepo) FullDeleteBySubjectIDs(dbc dbctx.Context, subjectIDs []uuid.UUID) (int64, error) {
	if len(subjectIDs) == 0 {
		return 0, nil
	}
	res := dbc.DB(r.db).Where("subject_id IN ?", subjectIDs).Delete(&types.Lesson{})
	return res.RowsAffected, res.Error
}
