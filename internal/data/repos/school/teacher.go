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

type TeacherRepo interface {
	Create(dbc dbctx.Context, rows []*types.Teacher) ([]*types.Teacher, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Teacher, error)
	List(dbc dbctx.Context) ([]*types.Teacher, error)
	Update(dbc dbctx.Context, row *types.Teacher) error
	FullDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type teacherRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTeacherRepo(db *gorm.DB, baseLog *logger.Logger) TeacherRepo {
	return &teacherRepo{db: db, log: baseLog.With("repo", "TeacherRepo")}
}

func (r *teacherRepo) Create(dbc dbctx.Context, rows []*types.Teacher) ([]*types.Teacher, error) {
	if len(rows) == 0 {
		return []*types.Teacher{}, nil
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

func (r *teacherRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Teacher, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("missing teacher id")
	}
	var out types.Teacher
	if err := dbc.DB(r.db).Where("id = ?", id).Take(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *teacherRepo) List(dbc dbctx.Context) ([]*types.Teacher, error) {
	var out []*types.Teacher
	if err := dbc.DB(r.db).Order("name ASC, id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *teacherRepo) Update(dbc dbctx.Context, row *types.Teacher) error {
	if row == nil || row.ID == uuid.Nil {
		return fmt.Errorf("missing teacher id")
	}
	return dbc.DB(r.db).
		Model(row).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(row).Error
}

func (r *teacherRepo) FullDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return dbc.DB(r.db).Where("id IN ?", ids).Delete(&types.Teacher{}).Error
}
