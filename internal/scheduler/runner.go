package scheduler

import (
	"context"
	"time"

	"fitmarket-be/internal/config"
	"fitmarket-be/internal/entity"
	"fitmarket-be/internal/pkg/logger"
	"fitmarket-be/internal/repository/unitofwork"

	"github.com/robfig/cron/v3"
)

const claimBatchSize = 50

// Runner polls the jobs table on a cron interval and dispatches fired jobs to
// the handler registered for their group. Claiming and handling are separate
// steps: a job that is claimed but whose handler fails goes back to scheduled
// with a backoff until it runs out of attempts.
type Runner struct {
	cron         *cron.Cron
	factory      unitofwork.RepositoryFactory
	logger       logger.ILogger
	handlers     map[string]JobHandler
	pollSpec     string
	maxAttempts  int
	retryBackoff time.Duration
}

func NewRunner(factory unitofwork.RepositoryFactory, cfg config.SchedulerConfig, log logger.ILogger) *Runner {
	backoff, err := time.ParseDuration(cfg.RetryBackoff)
	if err != nil {
		backoff = 5 * time.Minute
	}
	return &Runner{
		cron:         cron.New(),
		factory:      factory,
		logger:       log,
		handlers:     make(map[string]JobHandler),
		pollSpec:     cfg.PollInterval,
		maxAttempts:  cfg.MaxAttempts,
		retryBackoff: backoff,
	}
}

// RegisterHandler binds a job group to its handler. Must be called before
// Start.
func (r *Runner) RegisterHandler(group string, handler JobHandler) {
	r.handlers[group] = handler
}

func (r *Runner) Start() error {
	if _, err := r.cron.AddFunc(r.pollSpec, r.tick); err != nil {
		return err
	}
	r.cron.Start()
	r.logger.Info("scheduler", "runner started", map[string]interface{}{
		"poll":   r.pollSpec,
		"groups": len(r.handlers),
	})
	return nil
}

func (r *Runner) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}

func (r *Runner) tick() {
	// Jobs run outside any HTTP request; they get a fresh root context.
	ctx := context.Background()
	uow := r.factory.NewUnitOfWork(ctx)
	jobs, err := uow.JobRepository().ClaimDue(ctx, time.Now().UTC(), claimBatchSize)
	if err != nil {
		r.logger.Error("scheduler", "claim due jobs failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	for _, job := range jobs {
		r.dispatch(ctx, job)
	}
}

func (r *Runner) dispatch(ctx context.Context, job *entity.ScheduledJob) {
	handler, ok := r.handlers[job.Group]
	if !ok {
		r.logger.Error("scheduler", "no handler for job group", map[string]interface{}{
			"group": job.Group,
			"name":  job.Name,
		})
		return
	}

	if err := handler(ctx, job); err != nil {
		if job.Attempts >= r.maxAttempts {
			r.logger.Error("scheduler", "job exhausted attempts", map[string]interface{}{
				"group":    job.Group,
				"name":     job.Name,
				"attempts": job.Attempts,
				"error":    err.Error(),
			})
			return
		}
		r.requeue(ctx, job, err)
		return
	}

	r.logger.Info("scheduler", "job completed", map[string]interface{}{
		"group": job.Group,
		"name":  job.Name,
	})
}

func (r *Runner) requeue(ctx context.Context, job *entity.ScheduledJob, cause error) {
	job.State = entity.JobStateScheduled
	job.TriggerAt = time.Now().UTC().Add(r.retryBackoff)
	job.FiredAt = nil

	uow := r.factory.NewUnitOfWork(ctx)
	if err := uow.JobRepository().Update(ctx, job); err != nil {
		r.logger.Error("scheduler", "requeue failed", map[string]interface{}{
			"group": job.Group,
			"name":  job.Name,
			"error": err.Error(),
		})
		return
	}
	r.logger.Warn("scheduler", "job failed, requeued", map[string]interface{}{
		"group":    job.Group,
		"name":     job.Name,
		"attempts": job.Attempts,
		"error":    cause.Error(),
	})
}
