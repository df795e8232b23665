package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fitmarket-be/internal/entity"
	"fitmarket-be/internal/pkg/logger"
	"fitmarket-be/internal/repository/specification"
	"fitmarket-be/internal/repository/unitofwork"

	"github.com/avast/retry-go"
)

// ErrJobNotFound is returned by Reschedule, Pause and Resume when the key has
// no job row.
var ErrJobNotFound = errors.New("scheduled job not found")

// StoreScheduler persists jobs in the jobs table. Writes run inside a unit of
// work and are retried on transient failures so a flaky connection does not
// drop a settlement deadline.
type StoreScheduler struct {
	factory unitofwork.RepositoryFactory
	logger  logger.ILogger
}

func NewStoreScheduler(factory unitofwork.RepositoryFactory, logger logger.ILogger) IScheduler {
	return &StoreScheduler{
		factory: factory,
		logger:  logger,
	}
}

func (s *StoreScheduler) withRetry(ctx context.Context, op func() error) error {
	return retry.Do(
		op,
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(200*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			// Domain outcomes are final; only infrastructure errors retry.
			return !errors.Is(err, ErrJobNotFound)
		}),
	)
}

func (s *StoreScheduler) Schedule(ctx context.Context, key JobKey, triggerAt time.Time) error {
	return s.withRetry(ctx, func() error {
		uow := s.factory.NewUnitOfWork(ctx)
		if err := uow.Begin(ctx); err != nil {
			return err
		}
		defer uow.Rollback()

		repo := uow.JobRepository()
		// Last write wins: an existing job for the key is replaced wholesale.
		if _, err := repo.DeleteByKey(ctx, key.Name(), key.Group); err != nil {
			return err
		}
		job := &entity.ScheduledJob{
			Name:      key.Name(),
			Group:     key.Group,
			TriggerAt: triggerAt.UTC(),
			ContextId: key.EntityId,
			State:     entity.JobStateScheduled,
		}
		if err := repo.Create(ctx, job); err != nil {
			return err
		}
		return uow.Commit()
	})
}

func (s *StoreScheduler) ScheduleIn(ctx context.Context, uow unitofwork.UnitOfWork, key JobKey, triggerAt time.Time) error {
	repo := uow.JobRepository()
	if _, err := repo.DeleteByKey(ctx, key.Name(), key.Group); err != nil {
		return err
	}
	job := &entity.ScheduledJob{
		Name:      key.Name(),
		Group:     key.Group,
		TriggerAt: triggerAt.UTC(),
		ContextId: key.EntityId,
		State:     entity.JobStateScheduled,
	}
	return repo.Create(ctx, job)
}

func (s *StoreScheduler) Reschedule(ctx context.Context, key JobKey, triggerAt time.Time) error {
	return s.withRetry(ctx, func() error {
		uow := s.factory.NewUnitOfWork(ctx)
		if err := uow.Begin(ctx); err != nil {
			return err
		}
		defer uow.Rollback()

		repo := uow.JobRepository()
		job, err := repo.FindOne(ctx, specification.ByJobKey{Name: key.Name(), Group: key.Group})
		if err != nil {
			return err
		}
		if job == nil {
			return fmt.Errorf("%w: %s/%s", ErrJobNotFound, key.Group, key.Name())
		}
		job.TriggerAt = triggerAt.UTC()
		job.State = entity.JobStateScheduled
		job.FiredAt = nil
		if err := repo.Update(ctx, job); err != nil {
			return err
		}
		return uow.Commit()
	})
}

func (s *StoreScheduler) Cancel(ctx context.Context, key JobKey) (bool, error) {
	var existed bool
	err := s.withRetry(ctx, func() error {
		uow := s.factory.NewUnitOfWork(ctx)
		found, err := uow.JobRepository().DeleteByKey(ctx, key.Name(), key.Group)
		if err != nil {
			return err
		}
		existed = found
		return nil
	})
	if err != nil {
		return false, err
	}
	if !existed {
		s.logger.Info("scheduler", "cancel skipped, no job for key", map[string]interface{}{
			"group": key.Group,
			"name":  key.Name(),
		})
	}
	return existed, nil
}

func (s *StoreScheduler) Pause(ctx context.Context, key JobKey) error {
	return s.setState(ctx, key, entity.JobStatePaused)
}

func (s *StoreScheduler) Resume(ctx context.Context, key JobKey) error {
	return s.setState(ctx, key, entity.JobStateScheduled)
}

func (s *StoreScheduler) setState(ctx context.Context, key JobKey, state entity.JobState) error {
	return s.withRetry(ctx, func() error {
		uow := s.factory.NewUnitOfWork(ctx)
		if err := uow.Begin(ctx); err != nil {
			return err
		}
		defer uow.Rollback()

		repo := uow.JobRepository()
		job, err := repo.FindOne(ctx, specification.ByJobKey{Name: key.Name(), Group: key.Group})
		if err != nil {
			return err
		}
		if job == nil {
			return fmt.Errorf("%w: %s/%s", ErrJobNotFound, key.Group, key.Name())
		}
		job.State = state
		if err := repo.Update(ctx, job); err != nil {
			return err
		}
		return uow.Commit()
	})
}

func (s *StoreScheduler) GetState(ctx context.Context, key JobKey) (entity.JobState, error) {
	uow := s.factory.NewUnitOfWork(ctx)
	job, err := uow.JobRepository().FindOne(ctx, specification.ByJobKey{Name: key.Name(), Group: key.Group})
	if err != nil {
		return entity.JobStateNone, err
	}
	if job == nil {
		return entity.JobStateNone, nil
	}
	return job.State, nil
}
