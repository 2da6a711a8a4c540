package app

import (
	"gorm.io/gorm"

	"github.com/ellenorzo/ellenorzo-backend/internal/data/aggregates"
	domainagg "github.com/ellenorzo/ellenorzo-backend/internal/domain/aggregates"
	"github.com/ellenorzo/ellenorzo-backend/internal/observability"
	"github.com/ellenorzo/ellenorzo-backend/internal/platform/logger"
)

type Aggregates struct {
	Enrollment domainagg.EnrollmentAggregate
	Curriculum domainagg.CurriculumAggregate
	Roster     domainagg.RosterAggregate
}

func wireAggregates(db *gorm.DB, log *logger.Logger, r Repos, metrics *observability.Metrics) Aggregates {
	log.Info("Wiring aggregates...")
	base := aggregates.BaseDeps{
		DB:     db,
		Log:    log,
		Runner: aggregates.NewGormTxRunner(db),
		Hooks:  aggregates.NewObservabilityHooks(metrics),
	}
	return Aggregates{
		Enrollment: aggregates.NewEnrollmentAggregate(aggregates.EnrollmentAggregateDeps{
			Base:     base,
			Classes:  r.Class,
			Students: r.Student,
		}),
		Curriculum: aggregates.NewCurriculumAggregate(aggregates.CurriculumAggregateDeps{
			Base:     base,
			Classes:  r.Class,
			Students: r.Student,
			Teachers: r.Teacher,
			Subjects: r.Subject,
			Lessons:  r.Lesson,
			Grades:   r.Grade,
		}),
		Roster: aggregates.NewRosterAggregate(aggregates.RosterAggregateDeps{
			Base:     base,
			Classes:  r.Class,
			Students: r.Student,
			Teachers: r.Teacher,
			Subjects: r.Subject,
			Lessons:  r.Lesson,
			Grades:   r.Grade,
		}),
	}
}
