package service

import (
	"context"
	"testing"
	"time"

	"fitmarket-be/internal/constant"
	"fitmarket-be/internal/entity"
	"fitmarket-be/internal/model"
	"fitmarket-be/internal/repository/specification"
	"fitmarket-be/internal/repository/unitofwork"
	"fitmarket-be/internal/scheduler"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestConsumerService(t *testing.T) (*consumerService, scheduler.IScheduler, unitofwork.RepositoryFactory, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	factory := unitofwork.NewRepositoryFactory(db)
	sched := scheduler.NewStoreScheduler(factory, nopLogger{})
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	cs := NewConsumerService(pubSub, factory, sched, nopLogger{}).(*consumerService)
	return cs, sched, factory, db
}

// seedSessionItem plants a pt-package order item granting the given number of
// sessions against purchasedId and returns the item id.
func seedSessionItem(t *testing.T, db *gorm.DB, purchasedId uuid.UUID, sessions int) uuid.UUID {
	t.Helper()
	trainerId := uuid.New()
	pkg := &model.PtPackage{
		Id:            uuid.New(),
		TrainerId:     trainerId,
		Name:          "strength block",
		Price:         1_000_000,
		DurationDays:  60,
		TotalSessions: sessions,
		IsActive:      true,
	}
	require.NoError(t, db.Create(pkg).Error)

	pid := purchasedId
	item := &model.OrderItem{
		Id:          uuid.New(),
		OrderId:     uuid.New(),
		ItemType:    string(entity.OrderItemTypePtPackage),
		RefId:       pkg.Id,
		MerchantId:  trainerId,
		Price:       1_000_000,
		Quantity:    1,
		PurchasedId: &pid,
	}
	require.NoError(t, db.Create(item).Error)
	return item.Id
}

func seedFinishedSessions(t *testing.T, factory unitofwork.RepositoryFactory, purchasedId uuid.UUID, count int) {
	t.Helper()
	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	for i := 0; i < count; i++ {
		seedBooking(t, factory, &entity.Booking{
			CustomerId:  uuid.New(),
			TrainerId:   uuid.New(),
			PurchasedId: purchasedId,
			Date:        day.AddDate(0, 0, i),
			StartAt:     day.AddDate(0, 0, i).Add(10 * time.Hour),
			EndAt:       day.AddDate(0, 0, i).Add(11 * time.Hour),
			Status:      entity.BookingStatusFinished,
		})
	}
}

func findReleaseJob(t *testing.T, factory unitofwork.RepositoryFactory, itemId uuid.UUID) *entity.ScheduledJob {
	t.Helper()
	ctx := context.Background()
	uow := factory.NewUnitOfWork(ctx)
	job, err := uow.JobRepository().FindOne(ctx, specification.ByJobKey{
		Name:  itemId.String(),
		Group: constant.JobGroupProfitRelease,
	})
	require.NoError(t, err)
	require.NotNil(t, job)
	return job
}

func TestCheckEarlyRelease_PullsScheduledJobForward(t *testing.T) {
	cs, sched, factory, db := newTestConsumerService(t)
	ctx := context.Background()

	purchasedId := uuid.New()
	itemId := seedSessionItem(t, db, purchasedId, 10)
	// The sixth finished session passes the halfway mark of ten.
	seedFinishedSessions(t, factory, purchasedId, 6)

	future := time.Now().UTC().Add(72 * time.Hour)
	key := scheduler.JobKey{Group: constant.JobGroupProfitRelease, EntityId: itemId}
	require.NoError(t, sched.Schedule(ctx, key, future))

	require.NoError(t, cs.checkEarlyRelease(ctx, purchasedId))

	job := findReleaseJob(t, factory, itemId)
	assert.Equal(t, entity.JobStateScheduled, job.State)
	assert.True(t, job.TriggerAt.Before(future), "release must be pulled forward from %v, got %v", future, job.TriggerAt)
	assert.WithinDuration(t, time.Now().UTC(), job.TriggerAt, 5*time.Second)
}

func TestCheckEarlyRelease_BelowHalfLeavesJobAlone(t *testing.T) {
	cs, sched, factory, db := newTestConsumerService(t)
	ctx := context.Background()

	purchasedId := uuid.New()
	itemId := seedSessionItem(t, db, purchasedId, 10)
	// Five of ten is exactly half, not past it.
	seedFinishedSessions(t, factory, purchasedId, 5)

	future := time.Now().UTC().Add(72 * time.Hour)
	key := scheduler.JobKey{Group: constant.JobGroupProfitRelease, EntityId: itemId}
	require.NoError(t, sched.Schedule(ctx, key, future))

	require.NoError(t, cs.checkEarlyRelease(ctx, purchasedId))

	job := findReleaseJob(t, factory, itemId)
	assert.WithinDuration(t, future, job.TriggerAt, time.Second)
}

func TestCheckEarlyRelease_SkipsPausedJob(t *testing.T) {
	cs, sched, factory, db := newTestConsumerService(t)
	ctx := context.Background()

	purchasedId := uuid.New()
	itemId := seedSessionItem(t, db, purchasedId, 10)
	seedFinishedSessions(t, factory, purchasedId, 6)

	future := time.Now().UTC().Add(72 * time.Hour)
	key := scheduler.JobKey{Group: constant.JobGroupProfitRelease, EntityId: itemId}
	require.NoError(t, sched.Schedule(ctx, key, future))
	// A paused job means an open dispute; early release must not touch it.
	require.NoError(t, sched.Pause(ctx, key))

	require.NoError(t, cs.checkEarlyRelease(ctx, purchasedId))

	job := findReleaseJob(t, factory, itemId)
	assert.Equal(t, entity.JobStatePaused, job.State)
	assert.WithinDuration(t, future, job.TriggerAt, time.Second)
}
