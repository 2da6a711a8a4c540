package school

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/ellenorzo/ellenorzo-backend/internal/domain"
	"github.com/ellenorzo/ellenorzo-backend/internal/pkg/dbctx"
	"github.com/ellenorzo/ellenorzo-backend/internal/platform/logger"
)

// gradeOrder is the default retrieval order for grades.
const gradeOrder = "recorded_on ASC, created_at ASC, id ASC"

type GradeRepo interface {
	Create(dbc dbctx.Context, rows []*types.Grade) ([]*types.Grade, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Grade, error)
	ListByStudentID(dbc dbctx.Context, studentID uuid.UUID) ([]*types.Grade, error)
	ListByStudentAndSubject(dbc dbctx.Context, studentID, subjectID uuid.UUID) ([]*types.Grade, error)
	Update(dbc dbctx.Context, row *types.Grade) error
	FullDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
	FullDeleteByStudentIDs(dbc dbctx.Context, studentIDs []uuid.UUID) (int64, error)
	FullDeleteBySubjectIDs(dbc dbctx.Context, subjectIDs []uuid.UUID) (int64, error)
}

type gradeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGradeRepo(db *gorm.DB, baseLog *logger.Logger) GradeRepo {
	return &gradeRepo{db: db, log: baseLog.With("repo", "GradeRepo")}
}

func (r *gradeRepo) Create(dbc dbctx.Context, rows []*types.Grade) ([]*types.Grade, error) {
	if len(rows) == 0 {
		return []*types.Grade{}, nil
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

func (r *gradeRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Grade, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("missing grade id")
	}
	var out types.Grade
	if err := dbc.DB(r.db).Where("id = ?", id).Take(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *gradeRepo) ListByStudentID(dbc dbctx.Context, studentID uuid.UUID) ([]*types.Grade, error) {
	var out []*types.Grade
	if studentID == uuid.Nil {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Where("student_id = ?", studentID).
		Order(gradeOrder).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *gradeRepo) ListByStudentAndSubject(dbc dbctx.Context, studentID, subjectID uuid.UUID) ([]*types.Grade, error) {
	var out []*types.Grade
	if studentID == uuid.Nil || subjectID == uuid.Nil {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Where("student_id = ? AND subject_id = ?", studentID, subjectID).
		Order(gradeOrder).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Update never touches recorded_on; the column is insert-only.
func (r *gradeRepo) Update(dbc dbctx.Context, row *types.Grade) error {
	if row == nil || row.ID == uuid.Nil {
		return fmt.Errorf("missing grade id")
	}
	return dbc.DB(r.db).
		Model(row).
		Select("*").
		Omit("id", "created_at", "recorded_on", clause.Associations).
		Updates(row).Error
}

func (r *gradeRepo) FullDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return dbc.DB(r.db).Where("id IN ?", ids).Delete(&types.Grade{}).Error
}

func (r *gradeRepo) FullDeleteByStudentIDs(dbc dbctx.Context, studentIDs []uuid.UUID) (int64, error) {
	if len(studentIDs) == 0 {
		return 0, nil
	}
	res := dbc.DB(r.db).Where("student_id IN ?", studentIDs).Delete(&types.Grade{})
	return res.RowsAffected, res.Error
}

func (r *gradeRepo) FullDeleteBySubjectIDs(dbc dbctx.Context, subjectIDs []uuid.UUID) (int64, error) {
	if len(subjectIDs) == 0 {
		return 0, nil
	}
	res := dbc.DB(r.db).Where("subject_id IN ?", subjectIDs).Delete(&types.Grade{})
	return res.RowsAffected, res.Error
}
