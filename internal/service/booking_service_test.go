package service

import (
	"context"
	"testing"
	"time"

	"fitmarket-be/internal/entity"
	"fitmarket-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBookingService(t *testing.T) (IBookingService, unitofwork.RepositoryFactory) {
	t.Helper()
	db := setupTestDB(t)
	factory := unitofwork.NewRepositoryFactory(db)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	return NewBookingService(factory, pubSub, nil, nopLogger{}), factory
}

func seedBooking(t *testing.T, factory unitofwork.RepositoryFactory, b *entity.Booking) {
	t.Helper()
	ctx := context.Background()
	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.BookingRepository().Create(ctx, b))
	require.NoError(t, uow.Commit())
}

func TestBookingService_CheckConflict(t *testing.T) {
	svc, factory := newTestBookingService(t)
	ctx := context.Background()

	customerId := uuid.New()
	trainerId := uuid.New()
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	at := func(hour int) time.Time { return day.Add(time.Duration(hour) * time.Hour) }

	seedBooking(t, factory, &entity.Booking{
		CustomerId:  customerId,
		TrainerId:   trainerId,
		PurchasedId: uuid.New(),
		Date:        day,
		StartAt:     at(10),
		EndAt:       at(11),
		Status:      entity.BookingStatusBooked,
	})

	t.Run("overlap as customer conflicts", func(t *testing.T) {
		conflict, err := svc.CheckConflict(ctx, customerId, day, at(10).Add(30*time.Minute), at(11).Add(30*time.Minute))
		require.NoError(t, err)
		assert.True(t, conflict)
	})

	t.Run("overlap as trainer conflicts", func(t *testing.T) {
		conflict, err := svc.CheckConflict(ctx, trainerId, day, at(9), at(12))
		require.NoError(t, err)
		assert.True(t, conflict)
	})

	t.Run("adjacent window does not conflict", func(t *testing.T) {
		// [10:00, 11:00) then [11:00, 12:00): half-open, back to back is fine.
		conflict, err := svc.CheckConflict(ctx, customerId, day, at(11), at(12))
		require.NoError(t, err)
		assert.False(t, conflict)

		conflict, err = svc.CheckConflict(ctx, customerId, day, at(9), at(10))
		require.NoError(t, err)
		assert.False(t, conflict)
	})

	t.Run("other person is free", func(t *testing.T) {
		conflict, err := svc.CheckConflict(ctx, uuid.New(), day, at(10), at(11))
		require.NoError(t, err)
		assert.False(t, conflict)
	})

	t.Run("other day is free", func(t *testing.T) {
		nextDay := day.AddDate(0, 0, 1)
		conflict, err := svc.CheckConflict(ctx, customerId, nextDay, nextDay.Add(10*time.Hour), nextDay.Add(11*time.Hour))
		require.NoError(t, err)
		assert.False(t, conflict)
	})
}

func TestBookingService_CheckConflict_IgnoresCancelled(t *testing.T) {
	svc, factory := newTestBookingService(t)
	ctx := context.Background()

	customerId := uuid.New()
	day := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	seedBooking(t, factory, &entity.Booking{
		CustomerId:  customerId,
		TrainerId:   uuid.New(),
		PurchasedId: uuid.New(),
		Date:        day,
		StartAt:     day.Add(14 * time.Hour),
		EndAt:       day.Add(15 * time.Hour),
		Status:      entity.BookingStatusCancelled,
	})

	conflict, err := svc.CheckConflict(ctx, customerId, day, day.Add(14*time.Hour), day.Add(15*time.Hour))
	require.NoError(t, err)
	assert.False(t, conflict, "a cancelled booking must not block the window")
}
