package scheduler

import (
	"context"
	"time"

	"fitmarket-be/internal/entity"
	"fitmarket-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// JobKey identifies a scheduled job. Group is the job kind (profit-release,
// auto-cancel-order, ...) and EntityId the row the job acts on, so each
// entity carries at most one live job per kind.
type JobKey struct {
	Group    string
	EntityId uuid.UUID
}

func (k JobKey) Name() string {
	return k.EntityId.String()
}

// IScheduler is the durable one-shot job facade used by the settlement and
// booking services. Schedule over an existing key replaces it.
type IScheduler interface {
	// Schedule registers (or replaces) the job for key to fire at triggerAt.
	Schedule(ctx context.Context, key JobKey, triggerAt time.Time) error
	// ScheduleIn does the same inside the caller's unit of work, so a
	// settlement's wallet mutation and its follow-up jobs commit together.
	ScheduleIn(ctx context.Context, uow unitofwork.UnitOfWork, key JobKey, triggerAt time.Time) error
	// Reschedule moves an existing job; it fails when the key has no job.
	Reschedule(ctx context.Context, key JobKey, triggerAt time.Time) error
	// Cancel removes the job for key and reports whether one existed. A
	// missing job is not an error.
	Cancel(ctx context.Context, key JobKey) (bool, error)
	// Pause keeps the job row but stops it from firing until Resume.
	Pause(ctx context.Context, key JobKey) error
	Resume(ctx context.Context, key JobKey) error
	// GetState returns JobStateNone for an unknown key.
	GetState(ctx context.Context, key JobKey) (entity.JobState, error)
}

// JobHandler consumes a fired job. Returning an error requeues the job for a
// bounded number of attempts.
type JobHandler func(ctx context.Context, job *entity.ScheduledJob) error
