package implementation

import (
	"context"
	"errors"
	"time"

	"fitmarket-be/internal/entity"
	"fitmarket-be/internal/mapper"
	"fitmarket-be/internal/model"
	"fitmarket-be/internal/repository/contract"
	"fitmarket-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type JobRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.JobMapper
}

func NewJobRepository(db *gorm.DB) contract.JobRepository {
	return &JobRepositoryImpl{
		db:     db,
		mapper: mapper.NewJobMapper(),
	}
}

func (r *JobRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *JobRepositoryImpl) Create(ctx context.Context, job *entity.ScheduledJob) error {
	m := r.mapper.ToModel(job)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*job = *r.mapper.ToEntity(m)
	return nil
}

func (r *JobRepositoryImpl) Update(ctx context.Context, job *entity.ScheduledJob) error {
	m := r.mapper.ToModel(job)
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *JobRepositoryImpl) DeleteByKey(ctx context.Context, name, group string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("name = ? AND \"group\" = ?", name, group).
		Delete(&model.ScheduledJob{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *JobRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ScheduledJob, error) {
	var m model.ScheduledJob
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *JobRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ScheduledJob, error) {
	var models []*model.ScheduledJob
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.ScheduledJob, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *JobRepositoryImpl) ClaimDue(ctx context.Context, now time.Time, limit int) ([]*entity.ScheduledJob, error) {
	var claimed []*model.ScheduledJob

	// Lock the due rows and flip them to fired inside one transaction so a
	// second poller (or an overlapping tick) cannot claim the same job.
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var due []*model.ScheduledJob
		q := tx.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where("state = ? AND trigger_at <= ?", string(entity.JobStateScheduled), now).
			Order("trigger_at ASC")
		if limit > 0 {
			q = q.Limit(limit)
		}
		if err := q.Find(&due).Error; err != nil {
			return err
		}
		firedAt := now
		for _, j := range due {
			j.State = string(entity.JobStateFired)
			j.FiredAt = &firedAt
			j.Attempts++
			if err := tx.Save(j).Error; err != nil {
				return err
			}
		}
		claimed = due
		return nil
	})
	if err != nil {
		return nil, err
	}

	entities := make([]*entity.ScheduledJob, len(claimed))
	for i, m := range claimed {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}
