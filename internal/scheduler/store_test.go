package scheduler

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"fitmarket-be/internal/entity"
	"fitmarket-be/internal/repository/specification"
	"fitmarket-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// The id default emits canonical dashed uuids: gorm scans ids into uuid.UUID
// and writes them back dashed, so a dashless id would never match its own row
// on update.
const jobsDDL = `CREATE TABLE scheduled_jobs (
	id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(4))) || '-' || lower(hex(randomblob(2))) ||
		'-4' || substr(lower(hex(randomblob(2))),2) || '-' ||
		substr('89ab', abs(random()) % 4 + 1, 1) || substr(lower(hex(randomblob(2))),2) ||
		'-' || lower(hex(randomblob(6)))),
	name TEXT NOT NULL,
	"group" TEXT NOT NULL,
	trigger_at DATETIME NOT NULL,
	payload TEXT,
	state TEXT NOT NULL,
	attempts INTEGER NOT NULL DEFAULT 0,
	fired_at DATETIME,
	created_at DATETIME,
	updated_at DATETIME,
	UNIQUE (name, "group")
)`

func setupScheduler(t *testing.T) (IScheduler, unitofwork.RepositoryFactory) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Exec(jobsDDL).Error)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	factory := unitofwork.NewRepositoryFactory(db)
	return NewStoreScheduler(factory, nopLogger{}), factory
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func TestStoreScheduler_ScheduleAndGetState(t *testing.T) {
	sched, _ := setupScheduler(t)
	ctx := context.Background()
	key := JobKey{Group: "profit-release", EntityId: uuid.New()}

	state, err := sched.GetState(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, entity.JobStateNone, state, "missing job must report None")

	require.NoError(t, sched.Schedule(ctx, key, time.Now().Add(time.Hour)))

	state, err = sched.GetState(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, entity.JobStateScheduled, state)
}

func TestStoreScheduler_ScheduleReplacesExisting(t *testing.T) {
	sched, factory := setupScheduler(t)
	ctx := context.Background()
	key := JobKey{Group: "entitlement-expiry", EntityId: uuid.New()}

	first := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	second := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, sched.Schedule(ctx, key, first))
	require.NoError(t, sched.Schedule(ctx, key, second))

	jobs, err := factory.NewUnitOfWork(ctx).JobRepository().FindAll(ctx,
		specification.ByJobKey{Name: key.Name(), Group: key.Group})
	require.NoError(t, err)
	require.Len(t, jobs, 1, "last write wins, exactly one job per key")
	assert.True(t, jobs[0].TriggerAt.Equal(second), "trigger must be the latest schedule")
}

func TestStoreScheduler_Cancel(t *testing.T) {
	sched, _ := setupScheduler(t)
	ctx := context.Background()
	key := JobKey{Group: "auto-cancel-order", EntityId: uuid.New()}

	// Cancelling a job that never existed is not an error.
	existed, err := sched.Cancel(ctx, key)
	require.NoError(t, err)
	assert.False(t, existed)

	require.NoError(t, sched.Schedule(ctx, key, time.Now().Add(time.Hour)))

	existed, err = sched.Cancel(ctx, key)
	require.NoError(t, err)
	assert.True(t, existed)

	state, err := sched.GetState(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, entity.JobStateNone, state)
}

func TestStoreScheduler_RescheduleMissingJob(t *testing.T) {
	sched, _ := setupScheduler(t)
	ctx := context.Background()
	key := JobKey{Group: "feedback-reminder", EntityId: uuid.New()}

	err := sched.Reschedule(ctx, key, time.Now())
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestStoreScheduler_PauseResume(t *testing.T) {
	sched, _ := setupScheduler(t)
	ctx := context.Background()
	key := JobKey{Group: "profit-release", EntityId: uuid.New()}

	assert.ErrorIs(t, sched.Pause(ctx, key), ErrJobNotFound)
	assert.ErrorIs(t, sched.Resume(ctx, key), ErrJobNotFound)

	require.NoError(t, sched.Schedule(ctx, key, time.Now().Add(time.Hour)))
	require.NoError(t, sched.Pause(ctx, key))

	state, err := sched.GetState(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, entity.JobStatePaused, state, "paused must stay distinguishable from none")

	require.NoError(t, sched.Resume(ctx, key))
	state, err = sched.GetState(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, entity.JobStateScheduled, state)
}

func TestStoreScheduler_ScheduleInJoinsCallerTransaction(t *testing.T) {
	sched, factory := setupScheduler(t)
	ctx := context.Background()
	key := JobKey{Group: "trainer-release", EntityId: uuid.New()}

	// A rolled back unit of work takes the scheduled job down with it.
	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, sched.ScheduleIn(ctx, uow, key, time.Now().Add(time.Hour)))
	require.NoError(t, uow.Rollback())

	state, err := sched.GetState(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, entity.JobStateNone, state)

	// A committed one persists it.
	uow = factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, sched.ScheduleIn(ctx, uow, key, time.Now().Add(time.Hour)))
	require.NoError(t, uow.Commit())

	state, err = sched.GetState(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, entity.JobStateScheduled, state)
}

func TestClaimDue_SkipsPausedAndFuture(t *testing.T) {
	sched, factory := setupScheduler(t)
	ctx := context.Background()
	now := time.Now()

	due := JobKey{Group: "profit-release", EntityId: uuid.New()}
	paused := JobKey{Group: "profit-release", EntityId: uuid.New()}
	future := JobKey{Group: "profit-release", EntityId: uuid.New()}

	require.NoError(t, sched.Schedule(ctx, due, now.Add(-time.Minute)))
	require.NoError(t, sched.Schedule(ctx, paused, now.Add(-time.Minute)))
	require.NoError(t, sched.Pause(ctx, paused))
	require.NoError(t, sched.Schedule(ctx, future, now.Add(time.Hour)))

	claimed, err := factory.NewUnitOfWork(ctx).JobRepository().ClaimDue(ctx, now, 10)
	require.NoError(t, err)
	require.Len(t, claimed, 1, "only the due scheduled job is claimable")
	assert.Equal(t, due.Name(), claimed[0].Name)
	assert.Equal(t, entity.JobStateFired, claimed[0].State)
	assert.Equal(t, 1, claimed[0].Attempts)

	// A second poll finds nothing: fired jobs stay claimed.
	claimed, err = factory.NewUnitOfWork(ctx).JobRepository().ClaimDue(ctx, now, 10)
	require.NoError(t, err)
	assert.Empty(t, claimed)
}
