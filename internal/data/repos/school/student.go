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

type StudentRepo interface {
	Create(dbc dbctx.Context, rows []*types.Student) ([]*types.Student, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Student, error)
	GetWithClass(dbc dbctx.Context, id uuid.UUID) (*types.Student, error)
	ListByClassID(dbc dbctx.Context, classID uuid.UUID) ([]*types.Student, error)
	ListByClassIDs(dbc dbctx.Context, classIDs []uuid.UUID) ([]*types.Student, error)
	ListRegister(dbc dbctx.Context, classID uuid.UUID) ([]*types.Student, error)
	CountByClassID(dbc dbctx.Context, classID uuid.UUID) (int64, error)
	Update(dbc dbctx.Context, row *types.Student) error
	FullDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
	FullDeleteByClassIDs(dbc dbctx.Context, classIDs []uuid.UUID) error
}

type studentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStudentRepo(db *gorm.DB, baseLog *logger.Logger) StudentRepo {
	return &studentRepo{db: db, log: baseLog.With("repo", "StudentRepo")}
}

func (r *studentRepo) Create(dbc dbctx.Context, rows []*types.Student) ([]*types.Student, error) {
	if len(rows) == 0 {
		return []*types.Student{}, nil
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

func (r *studentRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Student, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("missing student id")
	}
	var out types.Student
	if err := dbc.DB(r.db).Where("id = ?", id).Take(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *studentRepo) GetWithClass(dbc dbctx.Context, id uuid.UUID) (*types.Student, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("missing student id")
	}
	var out types.Student
	if err := dbc.DB(r.db).Preload("Class").Where("id = ?", id).Take(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// ListByClassID returns every persisted student of the class ordered by name.
func (r *studentRepo) ListByClassID(dbc dbctx.Context, classID uuid.UUID) ([]*types.Student, error) {
	var out []*types.Student
	if classID == uuid.Nil {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Where("class_id = ?", classID).
		Order("name ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *studentRepo) ListByClassIDs(dbc dbctx.Context, classIDs []uuid.UUID) ([]*types.Student, error) {
	var out []*types.Student
	if len(classIDs) == 0 {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Where("class_id IN ?", classIDs).
		Order("class_id, name ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListRegister returns the class in register order: numbered students by registry number,
// then any still unnumbered ones by name.
func (r *studentRepo) ListRegister(dbc dbctx.Context, classID uuid.UUID) ([]*types.Student, error) {
	var out []*types.Student
	if classID == uuid.Nil {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Where("class_id = ?", classID).
		Order("CASE WHEN registry_number IS NULL THEN 1 ELSE 0 END, registry_number ASC, name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *studentRepo) CountByClassID(dbc dbctx.Context, classID uuid.UUID) (int64, error) {
	var n int64
	if classID == uuid.Nil {
		return 0, nil
	}
	if err := dbc.DB(r.db).
		Model(&types.Student{}).
		Where("class_id = ?", classID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *studentRepo) Update(dbc dbctx.Context, row *types.Student) error {
	if row == nil || row.ID == uuid.Nil {
		return fmt.Errorf("missing student id")
	}
	return dbc.DB(r.db).
		Model(row).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(row).Error
}

func (r *studentRepo) FullDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return dbc.DB(r.db).Where("id IN ?", ids).Delete(&types.Student{}).Error
}

func (r *studentRepo) FullDeleteByClassIDs(dbc dbctx.Context, classIDs []uuid.UUID) error {
	if len(classIDs) == 0 {
		return nil
	}
	return dbc.DB(r.db).Where("class_id IN ?", classIDs).Delete(&types.Student{}).Error
}
