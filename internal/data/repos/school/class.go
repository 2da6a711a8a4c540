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

type ClassRepo interface {
	Create(dbc dbctx.Context, rows []*types.Class) ([]*types.Class, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Class, error)
	FindByLevelSectionRoom(dbc dbctx.Context, gradeLevel int, section, room string) (*types.Class, error)
	List(dbc dbctx.Context) ([]*types.Class, error)
	Update(dbc dbctx.Context, row *types.Class) error
	FullDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type classRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClassRepo(db *gorm.DB, baseLog *logger.Logger) ClassRepo {
	return &classRepo{db: db, log: baseLog.With("repo", "ClassRepo")}
}

func (r *classRepo) Create(dbc dbctx.Context, rows []*types.Class) ([]*types.Class, error) {
	if len(rows) == 0 {
		return []*types.Class{}, nil
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

func (r *classRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Class, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("missing class id")
	}
	var out types.Class
	if err := dbc.DB(r.db).Where("id = ?", id).Take(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *classRepo) FindByLevelSectionRoom(dbc dbctx.Context, gradeLevel int, section, room string) (*types.Class, error) {
	var out types.Class
	if err := dbc.DB(r.db).
		Where("grade_level = ? AND section = ? AND room = ?", gradeLevel, section, room).
		Take(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *classRepo) List(dbc dbctx.Context) ([]*types.Class, error) {
	var out []*types.Class
	if err := dbc.DB(r.db).
		Order("grade_level ASC, section ASC, room ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *classRepo) Update(dbc dbctx.Context, row *types.Class) error {
	if row == nil || row.ID == uuid.Nil {
		return fmt.Errorf("missing class id")
	}
	return dbc.DB(r.db).
		Model(row).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(row).Error
}

func (r *classRepo) FullDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return dbc.DB(r.db).Where("id IN ?", ids).Delete(&types.Class{}).Error
}
