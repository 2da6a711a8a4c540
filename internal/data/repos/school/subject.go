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

type SubjectRepo interface {
	Create(dbc dbctx.Context, rows []*types.Subject) ([]*types.Subject, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Subject, error)
	ListByGradeLevel(dbc dbctx.Context, gradeLevel int) ([]*types.Subject, error)
	Update(dbc dbctx.Context, row *types.Subject) error
	FullDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
}

type subjectRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubjectRepo(db *gorm.DB, baseLog *logger.Logger) SubjectRepo {
	return &subjectRepo{db: db, log: baseLog.With("repo", "SubjectRepo")}
}

func (r *subjectRepo) Create(dbc dbctx.Context, rows []*types.Subject) ([]*types.Subject, error) {
	if len(rows) == 0 {
		return []*types.Subject{}, nil
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

func (r *subjectRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Subject, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("missing subject id")
	}
	var out types.Subject
	if err := dbc.DB(r.db).Where("id = ?", id).Take(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *subjectRepo) ListByGradeLevel(dbc dbctx.Context, gradeLevel int) ([]*types.Subject, error) {
	var out []*types.Subject
	if err := dbc.DB(r.db).
		Where("grade_level = ?", gradeLevel).
		Order("name ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *subjectRepo) Update(dbc dbctx.Context, row *types.Subject) error {
	if row == nil || row.ID == uuid.Nil {
		return fmt.Errorf("missing subject id")
	}
	return dbc.DB(r.db).
		Model(row).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(row).Error
}

func (r *subjectRepo) FullDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return dbc.DB(r.db).Where("id IN ?", ids).Delete(&types.Subject{}).Error
}
