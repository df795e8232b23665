package contract

import (
	"context"
	"time"

	"fitmarket-be/internal/entity"
	"fitmarket-be/internal/repository/specification"
)

type JobRepository interface {
	Create(ctx context.Context, job *entity.ScheduledJob) error
	Update(ctx context.Context, job *entity.ScheduledJob) error
	// DeleteByKey removes the job for (name, group) and reports whether a row
	// existed.
	DeleteByKey(ctx context.Context, name, group string) (bool, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ScheduledJob, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ScheduledJob, error)

	// ClaimDue atomically moves due scheduled jobs to fired and returns them,
	// so a poll cycle never hands the same job to two handlers.
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]*entity.ScheduledJob, error)
}
