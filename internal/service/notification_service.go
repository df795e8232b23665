package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fitmarket-be/internal/constant"
	"fitmarket-be/internal/model"
	"fitmarket-be/internal/pkg/logger"
	"fitmarket-be/internal/repository/unitofwork"
	"fitmarket-be/pkg/events"
	pktNats "fitmarket-be/pkg/nats"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NotificationDelivery pushes real-time updates, typically the websocket hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification model.Notification)
	Broadcast(notification model.Notification)
}

// notificationTemplate maps an event code to its inbox rendering and the
// payload key naming the recipient.
type notificationTemplate struct {
	title        string
	message      string
	recipientKey string
}

var notificationTemplates = map[string]notificationTemplate{
	constant.EventOrderSettled:    {title: "Payment received", message: "Your order has been paid and is being processed.", recipientKey: "account_id"},
	constant.EventOrderCancelled:  {title: "Order cancelled", message: "Your order was cancelled.", recipientKey: "account_id"},
	constant.EventProfitReleased:  {title: "Earnings released", message: "Pending earnings moved to your available balance.", recipientKey: "merchant_id"},
	constant.EventBookingCreated:  {title: "Session booked", message: "A new training session was booked.", recipientKey: "trainer_id"},
	constant.EventBookingReminder: {title: "Upcoming session", message: "You have a training session coming up.", recipientKey: "customer_id"},
	constant.EventReportOpened:    {title: "Dispute opened", message: "A dispute was opened against one of your sales.", recipientKey: "customer_id"},
	constant.EventReportResolved:  {title: "Dispute resolved", message: "Your dispute has been resolved.", recipientKey: "customer_id"},
}

type NotificationService struct {
	uowFactory unitofwork.RepositoryFactory
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(
	uowFactory unitofwork.RepositoryFactory,
	sub *pktNats.Subscriber,
	delivery NotificationDelivery,
	log logger.ILogger,
) *NotificationService {
	return &NotificationService{
		uowFactory: uowFactory,
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins draining the settlement event stream into user inboxes.
func (s *NotificationService) Start() {
	err := s.subscriber.Subscribe("settlement.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("notification", "failed to start subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("notification", "listening to settlement.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	payload := event.Payload()
	typeCode, _ := payload["event_type"].(string)
	if typeCode == "" {
		typeCode = event.EventType()
	}

	template, ok := notificationTemplates[typeCode]
	if !ok {
		// Events without an inbox rendering are fine; the bus also feeds
		// other consumers.
		return nil
	}

	recipientStr, _ := payload[template.recipientKey].(string)
	recipient, err := uuid.Parse(recipientStr)
	if err != nil {
		s.logger.Warn("notification", fmt.Sprintf("no recipient in payload for %s", typeCode), nil)
		return nil
	}

	metaJSON, _ := json.Marshal(payload)
	notif := model.Notification{
		ID:        uuid.New(),
		UserID:    recipient,
		TypeCode:  typeCode,
		Title:     template.title,
		Message:   template.message,
		Metadata:  datatypes.JSON(metaJSON),
		IsRead:    false,
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.NotificationRepository().Create(ctx, &notif); err != nil {
		s.logger.Error("notification", "failed to save notification", map[string]interface{}{"error": err.Error()})
		return err // NATS redelivers
	}

	if s.delivery != nil {
		s.delivery.Send(recipient, notif)
	}
	return nil
}

func (s *NotificationService) GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*model.Notification, int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().FindAllByUser(ctx, userID, limit, offset)
}

func (s *NotificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().CountUnread(ctx, userID)
}

func (s *NotificationService) MarkAsRead(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().MarkRead(ctx, id, userID)
}
