package service

import (
	"context"
	"encoding/json"
	"time"

	"fitmarket-be/internal/constant"
	"fitmarket-be/internal/dto"
	"fitmarket-be/internal/entity"
	"fitmarket-be/internal/pkg/logger"
	"fitmarket-be/internal/repository/specification"
	"fitmarket-be/internal/repository/unitofwork"
	"fitmarket-be/internal/scheduler"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// IConsumerService drains the in-process booking-completed topic and runs the
// early-release check: once a customer has completed more than half of an
// item's allotted sessions, that item's pending profit-release job is pulled
// forward to now.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub     *gochannel.GoChannel
	uowFactory unitofwork.RepositoryFactory
	jobs       scheduler.IScheduler
	logger     logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	uowFactory unitofwork.RepositoryFactory,
	jobs scheduler.IScheduler,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		uowFactory: uowFactory,
		jobs:       jobs,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, constant.TopicBookingCompleted)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishBookingCompletedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("consumer", "unmarshal booking completed failed", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // malformed messages must not loop forever
		return
	}

	if err := cs.checkEarlyRelease(ctx, payload.PurchasedId); err != nil {
		cs.logger.Error("consumer", "early release check failed", map[string]interface{}{
			"purchased_id": payload.PurchasedId,
			"error":        err.Error(),
		})
		msg.Nack()
		return
	}

	msg.Ack()
}

// checkEarlyRelease walks the entitlement's order items in purchase order,
// accumulating their allotted sessions, and reschedules each undistributed
// item whose cumulative allotment the completed count has passed the half
// mark of. A Paused job signals an active dispute and is left alone.
func (cs *consumerService) checkEarlyRelease(ctx context.Context, purchasedId uuid.UUID) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	completed, err := uow.BookingRepository().CountCompletedSessions(ctx, purchasedId)
	if err != nil {
		return err
	}

	items, err := uow.OrderRepository().FindAllItems(ctx,
		specification.Filter("purchased_id", purchasedId),
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return err
	}

	allotted := 0
	for _, item := range items {
		grant, err := resolveItemGrant(ctx, uow, item)
		if err != nil {
			return err
		}
		allotted += grant.sessions * item.Quantity

		if item.ProfitDistributeActualDate != nil || item.IsRefunded {
			continue
		}
		if completed*2 <= allotted {
			continue
		}

		key := scheduler.JobKey{Group: constant.JobGroupProfitRelease, EntityId: item.Id}
		state, err := cs.jobs.GetState(ctx, key)
		if err != nil {
			return err
		}
		switch state {
		case entity.JobStatePaused:
			// Dispute in flight; force-releasing here would pay out contested
			// profit.
			cs.logger.Info("consumer", "early release blocked by paused job", map[string]interface{}{
				"order_item_id": item.Id,
			})
		case entity.JobStateScheduled:
			if err := cs.jobs.Reschedule(ctx, key, time.Now().UTC()); err != nil {
				return err
			}
			cs.logger.Info("consumer", "profit release pulled forward", map[string]interface{}{
				"order_item_id": item.Id,
				"completed":     completed,
				"allotted":      allotted,
			})
		default:
			// None or already fired; nothing to pull forward.
		}
	}
	return nil
}
