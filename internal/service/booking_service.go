package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fitmarket-be/internal/constant"
	"fitmarket-be/internal/dto"
	"fitmarket-be/internal/entity"
	"fitmarket-be/internal/pkg/logger"
	"fitmarket-be/internal/repository/specification"
	"fitmarket-be/internal/repository/unitofwork"

	"fitmarket-be/pkg/events"
	pktNats "fitmarket-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IBookingService interface {
	// CheckConflict reports whether the person already has a non-cancelled
	// booking overlapping [start, end) on date, in either role.
	CheckConflict(ctx context.Context, personId uuid.UUID, date time.Time, startAt, endAt time.Time) (bool, error)
	CreateBooking(ctx context.Context, customerId uuid.UUID, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	CompleteBooking(ctx context.Context, bookingId uuid.UUID) error
	CancelBooking(ctx context.Context, bookingId uuid.UUID, refundSession bool) error
}

type bookingService struct {
	uowFactory     unitofwork.RepositoryFactory
	pubSub         *gochannel.GoChannel
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewBookingService(
	uowFactory unitofwork.RepositoryFactory,
	pubSub *gochannel.GoChannel,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IBookingService {
	return &bookingService{
		uowFactory:     uowFactory,
		pubSub:         pubSub,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *bookingService) CheckConflict(ctx context.Context, personId uuid.UUID, date time.Time, startAt, endAt time.Time) (bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	count, err := uow.BookingRepository().Count(ctx,
		specification.PersonOnDate{PersonId: personId, Date: date},
		specification.NotCancelled{},
		specification.OverlappingWindow{StartAt: startAt, EndAt: endAt},
	)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *bookingService) CreateBooking(ctx context.Context, customerId uuid.UUID, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid booking date: %w", err)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	purchased, err := uow.PurchasedRepository().FindOne(ctx, specification.ByID{ID: req.PurchasedId})
	if err != nil {
		return nil, err
	}
	if purchased == nil {
		return nil, fmt.Errorf("%w: %s", ErrEntitlementNotFound, req.PurchasedId)
	}
	if purchased.AvailableSessions <= 0 {
		return nil, ErrNoSessionsRemaining
	}
	if time.Now().UTC().After(purchased.ExpirationDate) || purchased.Status != entity.PurchasedStatusActive {
		return nil, ErrEntitlementExpired
	}

	// Both windows are validated before the write; the database exclusion
	// constraint is the backstop when two requests race past them.
	bookingRepo := uow.BookingRepository()
	for _, personId := range []uuid.UUID{customerId, req.TrainerId} {
		count, err := bookingRepo.Count(ctx,
			specification.PersonOnDate{PersonId: personId, Date: date},
			specification.NotCancelled{},
			specification.OverlappingWindow{StartAt: req.StartAt, EndAt: req.EndAt},
		)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrBookingConflict
		}
	}

	booking := &entity.Booking{
		CustomerId:  customerId,
		TrainerId:   req.TrainerId,
		PurchasedId: purchased.Id,
		Date:        date,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
		Status:      entity.BookingStatusBooked,
	}
	if err := bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	purchased.AvailableSessions--
	if err := uow.PurchasedRepository().Update(ctx, purchased); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.New(constant.EventBookingCreated, map[string]interface{}{
			"booking_id":  booking.Id.String(),
			"customer_id": customerId.String(),
			"trainer_id":  req.TrainerId.String(),
		})); err != nil {
			s.logger.Warn("booking", "event publish failed", map[string]interface{}{
				"booking_id": booking.Id,
				"error":      err.Error(),
			})
		}
	}

	return &dto.BookingResponse{
		Id:          booking.Id,
		CustomerId:  booking.CustomerId,
		TrainerId:   booking.TrainerId,
		PurchasedId: booking.PurchasedId,
		Date:        req.Date,
		StartAt:     booking.StartAt,
		EndAt:       booking.EndAt,
		Status:      string(booking.Status),
	}, nil
}

func (s *bookingService) CompleteBooking(ctx context.Context, bookingId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	booking, err := uow.BookingRepository().FindOne(ctx, specification.ByID{ID: bookingId})
	if err != nil {
		return err
	}
	if booking == nil {
		return fmt.Errorf("%w: %s", ErrBookingNotFound, bookingId)
	}

	booking.Status = entity.BookingStatusFinished
	if err := uow.BookingRepository().Update(ctx, booking); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.notifyCompleted(booking)
	return nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingId uuid.UUID, refundSession bool) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	booking, err := uow.BookingRepository().FindOne(ctx, specification.ByID{ID: bookingId})
	if err != nil {
		return err
	}
	if booking == nil {
		return fmt.Errorf("%w: %s", ErrBookingNotFound, bookingId)
	}

	booking.Status = entity.BookingStatusCancelled
	booking.CancelledRefunded = refundSession
	if err := uow.BookingRepository().Update(ctx, booking); err != nil {
		return err
	}

	if refundSession {
		purchased, err := uow.PurchasedRepository().FindOne(ctx, specification.ByID{ID: booking.PurchasedId})
		if err != nil {
			return err
		}
		if purchased != nil {
			purchased.AvailableSessions++
			if err := uow.PurchasedRepository().Update(ctx, purchased); err != nil {
				return err
			}
		}
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	// An unrefunded cancellation still consumed the session, so it counts
	// toward the early-release threshold just like a finished one.
	if !refundSession {
		s.notifyCompleted(booking)
	}
	return nil
}

func (s *bookingService) notifyCompleted(booking *entity.Booking) {
	payload, err := json.Marshal(dto.PublishBookingCompletedMessage{
		BookingId:   booking.Id,
		PurchasedId: booking.PurchasedId,
	})
	if err != nil {
		s.logger.Error("booking", "marshal completed message failed", map[string]interface{}{
			"booking_id": booking.Id,
			"error":      err.Error(),
		})
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.pubSub.Publish(constant.TopicBookingCompleted, msg); err != nil {
		s.logger.Error("booking", "publish completed message failed", map[string]interface{}{
			"booking_id": booking.Id,
			"error":      err.Error(),
		})
	}
}
