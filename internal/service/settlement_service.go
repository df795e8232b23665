package service

import (
	"context"
	"crypto/sha512"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fitmarket-be/internal/config"
	"fitmarket-be/internal/constant"
	"fitmarket-be/internal/dto"
	"fitmarket-be/internal/entity"
	"fitmarket-be/internal/pkg/logger"
	"fitmarket-be/internal/pkg/mailer"
	"fitmarket-be/internal/repository/memory"
	"fitmarket-be/internal/repository/specification"
	"fitmarket-be/internal/repository/unitofwork"
	"fitmarket-be/internal/scheduler"

	"fitmarket-be/pkg/events"
	pktNats "fitmarket-be/pkg/nats"

	"github.com/google/uuid"
)

// orderCodePrefix prefixes the numeric order code in the gateway order_id.
const orderCodePrefix = "FIT-"

type ISettlementService interface {
	HandlePaymentNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error

	// Scheduled job handlers, registered with the runner by group.
	HandleProfitRelease(ctx context.Context, job *entity.ScheduledJob) error
	HandleAutoCancel(ctx context.Context, job *entity.ScheduledJob) error
	HandleFeedbackReminder(ctx context.Context, job *entity.ScheduledJob) error
	HandleEntitlementExpiry(ctx context.Context, job *entity.ScheduledJob) error
	HandleTrainerRelease(ctx context.Context, job *entity.ScheduledJob) error
	HandleSubscriptionExpiry(ctx context.Context, job *entity.ScheduledJob) error
}

type settlementService struct {
	uowFactory     unitofwork.RepositoryFactory
	ledger         IWalletLedger
	jobs           scheduler.IScheduler
	settings       *memory.SettingsCache
	eventPublisher *pktNats.Publisher
	emailService   mailer.IEmailService
	midtransCfg    config.MidtransConfig
	logger         logger.ILogger
}

func NewSettlementService(
	uowFactory unitofwork.RepositoryFactory,
	ledger IWalletLedger,
	jobs scheduler.IScheduler,
	settings *memory.SettingsCache,
	eventPublisher *pktNats.Publisher,
	emailService mailer.IEmailService,
	midtransCfg config.MidtransConfig,
	log logger.ILogger,
) ISettlementService {
	return &settlementService{
		uowFactory:     uowFactory,
		ledger:         ledger,
		jobs:           jobs,
		settings:       settings,
		eventPublisher: eventPublisher,
		emailService:   emailService,
		midtransCfg:    midtransCfg,
		logger:         log,
	}
}

func parseOrderCode(orderId string) (int64, error) {
	raw := strings.TrimPrefix(orderId, orderCodePrefix)
	code, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid order id format: %s", orderId)
	}
	return code, nil
}

// HandlePaymentNotification verifies the gateway signature, enforces webhook
// idempotency by order code, and routes the settled transaction to its
// workflow by kind. Gateways retry deliveries, so everything after the
// success flip must be safe to never run twice.
func (s *settlementService) HandlePaymentNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error {
	// Midtrans signature = SHA512(order_id + status_code + gross_amount + server_key)
	signatureInput := req.OrderId + req.StatusCode + req.GrossAmount + s.midtransCfg.ServerKey
	expectedSignature := fmt.Sprintf("%x", sha512.Sum512([]byte(signatureInput)))
	if req.SignatureKey != expectedSignature {
		s.logger.Warn("settlement", "webhook signature mismatch", map[string]interface{}{
			"order_id": req.OrderId,
		})
		return ErrInvalidSignature
	}

	orderCode, err := parseOrderCode(req.OrderId)
	if err != nil {
		return err
	}

	switch req.TransactionStatus {
	case "capture", "settlement":
		return s.settleOrder(ctx, orderCode)
	case "deny", "cancel", "expire":
		return s.failOrder(ctx, orderCode, req.TransactionStatus)
	default:
		// "pending" and friends carry no settlement consequence.
		s.logger.Info("settlement", "webhook ignored", map[string]interface{}{
			"order_code": orderCode,
			"status":     req.TransactionStatus,
		})
		return nil
	}
}

func (s *settlementService) settleOrder(ctx context.Context, orderCode int64) error {
	snapshot, err := s.settings.Snapshot(ctx)
	if err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	transaction, err := uow.TransactionRepository().FindOne(ctx, specification.TransactionByOrderCode{Code: orderCode})
	if err != nil {
		return err
	}
	if transaction == nil {
		return fmt.Errorf("%w: order code %d", ErrTransactionNotFound, orderCode)
	}

	flipped, err := uow.TransactionRepository().MarkSuccessIfPending(ctx, orderCode)
	if err != nil {
		return err
	}
	if !flipped {
		// Replay of an already-settled webhook. Wallets and entitlements must
		// stay untouched.
		s.logger.Info("settlement", "webhook replay ignored", map[string]interface{}{
			"order_code": orderCode,
		})
		return uow.Commit()
	}

	order, err := uow.OrderRepository().FindOne(ctx, specification.ByOrderCode{Code: orderCode})
	if err != nil {
		return err
	}
	if order == nil {
		return fmt.Errorf("%w: code %d", ErrOrderNotFound, orderCode)
	}

	var coupon *entity.Coupon
	if order.CouponId != nil {
		coupon, err = uow.CouponRepository().FindOne(ctx, specification.ByID{ID: *order.CouponId})
		if err != nil {
			return err
		}
		if coupon != nil {
			consumed, err := uow.CouponRepository().Consume(ctx, coupon.Id)
			if err != nil {
				return err
			}
			if !consumed {
				// Payment already happened; we honor the discount snapshotted
				// on the order and just record the exhaustion.
				s.logger.Warn("settlement", "coupon exhausted at settle time", map[string]interface{}{
					"order_code": orderCode,
					"coupon_id":  coupon.Id,
				})
			}
		}
	}

	breakdown := ComputeProfit(order.Subtotal, order.Total, order.CommissionRate, coupon)
	transaction.ProfitAmount = breakdown.SystemProfit
	transaction.Status = entity.TransactionStatusSuccess
	if err := uow.TransactionRepository().Update(ctx, transaction); err != nil {
		return err
	}

	// One workflow per kind; the switch is exhaustive over purchase kinds and
	// a new kind fails loudly instead of half-settling.
	switch transaction.Kind {
	case entity.TransactionKindGymCourse,
		entity.TransactionKindFreelancePtPackage,
		entity.TransactionKindSubscriptionPlansOrder:
		err = s.settleEntitlementPurchase(ctx, uow, order, coupon, snapshot)
	case entity.TransactionKindExtendCourse,
		entity.TransactionKindExtendFreelancePtPackage:
		err = s.settleExtension(ctx, uow, order, coupon, snapshot)
	case entity.TransactionKindAssignPt:
		err = s.settlePtAssignment(ctx, uow, order, coupon, snapshot)
	case entity.TransactionKindProductOrder:
		err = s.settleProductOrder(ctx, uow, order, coupon, snapshot)
	case entity.TransactionKindDistributeProfit,
		entity.TransactionKindPendingDeduction,
		entity.TransactionKindDisbursement:
		err = fmt.Errorf("transaction kind %s cannot arrive via webhook", transaction.Kind)
	default:
		err = fmt.Errorf("unhandled transaction kind %s", transaction.Kind)
	}
	if err != nil {
		return err
	}

	// Orders carrying a physical product stay pending until shipment.
	order.Status = entity.OrderStatusFinished
	for _, item := range order.Items {
		if item.ItemType == entity.OrderItemTypeProduct {
			order.Status = entity.OrderStatusPending
			break
		}
	}
	if err := uow.OrderRepository().Update(ctx, order); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	// The order has paid; the standing auto-cancel job must not fire. A job
	// that already fired or never existed is fine, any other failure is a bug
	// to surface in the logs.
	if _, err := s.jobs.Cancel(ctx, scheduler.JobKey{
		Group:    constant.JobGroupAutoCancelOrder,
		EntityId: order.Id,
	}); err != nil {
		s.logger.Error("settlement", "cancel auto-cancel job failed", map[string]interface{}{
			"order_code": orderCode,
			"error":      err.Error(),
		})
	}

	s.publish(ctx, constant.EventOrderSettled, map[string]interface{}{
		"order_id":      order.Id.String(),
		"order_code":    orderCode,
		"account_id":    order.AccountId.String(),
		"system_profit": breakdown.SystemProfit,
	})
	return nil
}

func (s *settlementService) failOrder(ctx context.Context, orderCode int64, gatewayStatus string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	transaction, err := uow.TransactionRepository().FindOne(ctx, specification.TransactionByOrderCode{Code: orderCode})
	if err != nil {
		return err
	}
	if transaction == nil {
		return fmt.Errorf("%w: order code %d", ErrTransactionNotFound, orderCode)
	}
	if transaction.Status == entity.TransactionStatusSuccess {
		// A success never regresses on a late failure notification.
		return uow.Commit()
	}

	transaction.Status = entity.TransactionStatusFailed
	if err := uow.TransactionRepository().Update(ctx, transaction); err != nil {
		return err
	}

	order, err := uow.OrderRepository().FindOne(ctx, specification.ByOrderCode{Code: orderCode})
	if err != nil {
		return err
	}
	if order != nil {
		order.Status = entity.OrderStatusCancelled
		if err := uow.OrderRepository().Update(ctx, order); err != nil {
			return err
		}
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	if order != nil {
		if _, err := s.jobs.Cancel(ctx, scheduler.JobKey{
			Group:    constant.JobGroupAutoCancelOrder,
			EntityId: order.Id,
		}); err != nil {
			s.logger.Error("settlement", "cancel auto-cancel job failed", map[string]interface{}{
				"order_code": orderCode,
				"error":      err.Error(),
			})
		}
		s.publish(ctx, constant.EventOrderCancelled, map[string]interface{}{
			"order_id":   order.Id.String(),
			"order_code": orderCode,
			"reason":     gatewayStatus,
		})
	}
	return nil
}

// itemGrant is what one settled item grants the customer.
type itemGrant struct {
	durationDays int
	sessions     int
}

func resolveItemGrant(ctx context.Context, uow unitofwork.UnitOfWork, item *entity.OrderItem) (*itemGrant, error) {
	catalog := uow.CatalogRepository()
	switch item.ItemType {
	case entity.OrderItemTypeGymCourse:
		course, err := catalog.FindOneCourse(ctx, specification.ByID{ID: item.RefId})
		if err != nil {
			return nil, err
		}
		if course == nil {
			return nil, fmt.Errorf("%w: course %s", ErrCatalogItemNotFound, item.RefId)
		}
		return &itemGrant{durationDays: course.DurationDays, sessions: course.TotalSessions}, nil
	case entity.OrderItemTypePtPackage, entity.OrderItemTypePtAssignment:
		pkg, err := catalog.FindOnePackage(ctx, specification.ByID{ID: item.RefId})
		if err != nil {
			return nil, err
		}
		if pkg == nil {
			return nil, fmt.Errorf("%w: package %s", ErrCatalogItemNotFound, item.RefId)
		}
		return &itemGrant{durationDays: pkg.DurationDays, sessions: pkg.TotalSessions}, nil
	case entity.OrderItemTypeSubscription:
		plan, err := catalog.FindOnePlan(ctx, specification.ByID{ID: item.RefId})
		if err != nil {
			return nil, err
		}
		if plan == nil {
			return nil, fmt.Errorf("%w: plan %s", ErrCatalogItemNotFound, item.RefId)
		}
		return &itemGrant{durationDays: plan.PeriodDays, sessions: 0}, nil
	default:
		return nil, fmt.Errorf("item type %s grants no entitlement", item.ItemType)
	}
}

// settleItem runs the common per-item tail: credit the merchant's pending
// balance and plant the profit-release and feedback-reminder jobs, all inside
// the surrounding unit of work.
func (s *settlementService) settleItem(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	order *entity.Order,
	item *entity.OrderItem,
	coupon *entity.Coupon,
	snapshot *memory.SettingsSnapshot,
	releaseAt time.Time,
) error {
	merchantProfit := ItemMerchantProfit(item, order.CommissionRate, coupon)
	if _, err := s.ledger.CreditPending(ctx, uow, item.MerchantId, merchantProfit); err != nil {
		return err
	}

	item.ProfitDistributePlannedDate = &releaseAt
	if err := uow.OrderRepository().UpdateItem(ctx, item); err != nil {
		return err
	}

	if err := s.jobs.ScheduleIn(ctx, uow, scheduler.JobKey{
		Group:    constant.JobGroupProfitRelease,
		EntityId: item.Id,
	}, releaseAt); err != nil {
		return err
	}

	reminderAt := releaseAt.AddDate(0, 0, snapshot.FeedbackReminderDays)
	return s.jobs.ScheduleIn(ctx, uow, scheduler.JobKey{
		Group:    constant.JobGroupFeedbackReminder,
		EntityId: item.Id,
	}, reminderAt)
}

func (s *settlementService) settleEntitlementPurchase(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	order *entity.Order,
	coupon *entity.Coupon,
	snapshot *memory.SettingsSnapshot,
) error {
	now := time.Now().UTC()
	for _, item := range order.Items {
		if item.ItemType == entity.OrderItemTypeProduct {
			continue
		}
		grant, err := resolveItemGrant(ctx, uow, item)
		if err != nil {
			return err
		}

		expiration := now.AddDate(0, 0, grant.durationDays*item.Quantity)
		purchased := &entity.CustomerPurchased{
			CustomerId:        order.AccountId,
			ItemType:          item.ItemType,
			RefId:             item.RefId,
			TrainerId:         item.TrainerId,
			AvailableSessions: grant.sessions * item.Quantity,
			ExpirationDate:    expiration,
			Status:            entity.PurchasedStatusActive,
		}
		if err := uow.PurchasedRepository().Create(ctx, purchased); err != nil {
			return err
		}
		item.PurchasedId = &purchased.Id

		expiryGroup := constant.JobGroupEntitlementExpiry
		if item.ItemType == entity.OrderItemTypeSubscription {
			expiryGroup = constant.JobGroupSubscriptionExpiry
		}
		if err := s.jobs.ScheduleIn(ctx, uow, scheduler.JobKey{
			Group:    expiryGroup,
			EntityId: purchased.Id,
		}, expiration); err != nil {
			return err
		}
		if item.TrainerId != nil {
			if err := s.jobs.ScheduleIn(ctx, uow, scheduler.JobKey{
				Group:    constant.JobGroupTrainerRelease,
				EntityId: purchased.Id,
			}, expiration); err != nil {
				return err
			}
		}

		releaseAt := expiration.AddDate(0, 0, snapshot.ProfitGraceDays)
		if err := s.settleItem(ctx, uow, order, item, coupon, snapshot, releaseAt); err != nil {
			return err
		}
	}
	return nil
}

func (s *settlementService) settleExtension(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	order *entity.Order,
	coupon *entity.Coupon,
	snapshot *memory.SettingsSnapshot,
) error {
	if order.TargetPurchasedId == nil {
		return fmt.Errorf("%w: extension order %d has no target entitlement", ErrEntitlementNotFound, order.Code)
	}
	purchased, err := uow.PurchasedRepository().FindOne(ctx, specification.ByID{ID: *order.TargetPurchasedId})
	if err != nil {
		return err
	}
	if purchased == nil {
		return fmt.Errorf("%w: %s", ErrEntitlementNotFound, *order.TargetPurchasedId)
	}

	for _, item := range order.Items {
		grant, err := resolveItemGrant(ctx, uow, item)
		if err != nil {
			return err
		}

		// An extension pushes the existing window out rather than opening a
		// second one.
		base := purchased.ExpirationDate
		if now := time.Now().UTC(); base.Before(now) {
			base = now
		}
		purchased.ExpirationDate = base.AddDate(0, 0, grant.durationDays*item.Quantity)
		purchased.AvailableSessions += grant.sessions * item.Quantity
		purchased.Status = entity.PurchasedStatusActive
		item.PurchasedId = &purchased.Id

		expiryGroup := constant.JobGroupEntitlementExpiry
		if item.ItemType == entity.OrderItemTypeSubscription {
			expiryGroup = constant.JobGroupSubscriptionExpiry
		}
		if err := s.jobs.ScheduleIn(ctx, uow, scheduler.JobKey{
			Group:    expiryGroup,
			EntityId: purchased.Id,
		}, purchased.ExpirationDate); err != nil {
			return err
		}

		releaseAt := purchased.ExpirationDate.AddDate(0, 0, snapshot.ProfitGraceDays)
		if err := s.settleItem(ctx, uow, order, item, coupon, snapshot, releaseAt); err != nil {
			return err
		}
	}

	return uow.PurchasedRepository().Update(ctx, purchased)
}

func (s *settlementService) settlePtAssignment(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	order *entity.Order,
	coupon *entity.Coupon,
	snapshot *memory.SettingsSnapshot,
) error {
	if order.TargetPurchasedId == nil {
		return fmt.Errorf("%w: assignment order %d has no target entitlement", ErrEntitlementNotFound, order.Code)
	}
	purchased, err := uow.PurchasedRepository().FindOne(ctx, specification.ByID{ID: *order.TargetPurchasedId})
	if err != nil {
		return err
	}
	if purchased == nil {
		return fmt.Errorf("%w: %s", ErrEntitlementNotFound, *order.TargetPurchasedId)
	}

	for _, item := range order.Items {
		if item.TrainerId == nil {
			return fmt.Errorf("assignment item %s has no trainer", item.Id)
		}
		purchased.TrainerId = item.TrainerId
		item.PurchasedId = &purchased.Id

		// The trainer is held by this entitlement until it expires.
		if err := s.jobs.ScheduleIn(ctx, uow, scheduler.JobKey{
			Group:    constant.JobGroupTrainerRelease,
			EntityId: purchased.Id,
		}, purchased.ExpirationDate); err != nil {
			return err
		}

		releaseAt := purchased.ExpirationDate.AddDate(0, 0, snapshot.ProfitGraceDays)
		if err := s.settleItem(ctx, uow, order, item, coupon, snapshot, releaseAt); err != nil {
			return err
		}
	}

	return uow.PurchasedRepository().Update(ctx, purchased)
}

func (s *settlementService) settleProductOrder(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	order *entity.Order,
	coupon *entity.Coupon,
	snapshot *memory.SettingsSnapshot,
) error {
	now := time.Now().UTC()
	for _, item := range order.Items {
		if item.ItemType != entity.OrderItemTypeProduct {
			continue
		}
		ok, err := uow.CatalogRepository().DecrementStock(ctx, item.RefId, item.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			// Stock was validated at checkout; hitting this means concurrent
			// purchases drained it. The payment stands, so record and alert
			// rather than fail the settlement.
			s.logger.Error("settlement", "stock drained after payment", map[string]interface{}{
				"order_code": order.Code,
				"product_id": item.RefId,
			})
		}

		// Product profit releases after the grace period from settlement;
		// there is no entitlement window to wait out.
		releaseAt := now.AddDate(0, 0, snapshot.ProfitGraceDays)
		if err := s.settleItem(ctx, uow, order, item, coupon, snapshot, releaseAt); err != nil {
			return err
		}
	}
	return nil
}

// HandleProfitRelease runs when an item's release job fires: it moves the
// item's merchant profit pending -> available and stamps the actual date.
// Paused jobs never reach here; the claim query only takes scheduled rows.
func (s *settlementService) HandleProfitRelease(ctx context.Context, job *entity.ScheduledJob) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	item, err := uow.OrderRepository().FindOneItem(ctx, specification.ByID{ID: job.ContextId})
	if err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("order item %s not found for profit release", job.ContextId)
	}
	if item.ProfitDistributeActualDate != nil || item.IsRefunded {
		// Guarded earlier in the pipeline; reaching here is a no-op, not a
		// ledger mutation.
		s.logger.Warn("settlement", "profit release skipped", map[string]interface{}{
			"order_item_id": item.Id,
			"refunded":      item.IsRefunded,
		})
		return uow.Commit()
	}

	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: item.OrderId})
	if err != nil {
		return err
	}
	if order == nil {
		return fmt.Errorf("%w: %s", ErrOrderNotFound, item.OrderId)
	}

	var coupon *entity.Coupon
	if order.CouponId != nil {
		// Coupon parameters are immutable once applied to an order; the row
		// read here only supplies the original percentage and cap.
		coupon, err = uow.CouponRepository().FindOne(ctx, specification.ByID{ID: *order.CouponId})
		if err != nil {
			return err
		}
	}

	amount := ItemMerchantProfit(item, order.CommissionRate, coupon)

	wallet, err := uow.WalletRepository().FindOne(ctx, specification.Filter("owner_id", item.MerchantId))
	if err != nil {
		return err
	}
	if wallet == nil {
		return fmt.Errorf("%w: owner %s", ErrWalletNotFound, item.MerchantId)
	}

	if err := s.ledger.ReleasePending(ctx, uow, wallet.Id, order.Id, order.Code, amount); err != nil {
		return err
	}

	now := time.Now().UTC()
	item.ProfitDistributeActualDate = &now
	if err := uow.OrderRepository().UpdateItem(ctx, item); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.publish(ctx, constant.EventProfitReleased, map[string]interface{}{
		"order_item_id": item.Id.String(),
		"merchant_id":   item.MerchantId.String(),
		"amount":        amount,
	})
	return nil
}

// HandleAutoCancel fires when an order stayed unpaid past the configured
// window.
func (s *settlementService) HandleAutoCancel(ctx context.Context, job *entity.ScheduledJob) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: job.ContextId})
	if err != nil {
		return err
	}
	if order == nil {
		return fmt.Errorf("%w: %s", ErrOrderNotFound, job.ContextId)
	}
	if order.Status != entity.OrderStatusCreated {
		// Paid or already cancelled between scheduling and firing.
		return uow.Commit()
	}

	order.Status = entity.OrderStatusCancelled
	if err := uow.OrderRepository().Update(ctx, order); err != nil {
		return err
	}

	transaction, err := uow.TransactionRepository().FindOne(ctx, specification.TransactionByOrderCode{Code: order.Code})
	if err != nil {
		return err
	}
	if transaction != nil && transaction.Status == entity.TransactionStatusPending {
		transaction.Status = entity.TransactionStatusFailed
		if err := uow.TransactionRepository().Update(ctx, transaction); err != nil {
			return err
		}
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.publish(ctx, constant.EventOrderCancelled, map[string]interface{}{
		"order_id":   order.Id.String(),
		"order_code": order.Code,
		"reason":     "unpaid",
	})
	return nil
}

func (s *settlementService) HandleFeedbackReminder(ctx context.Context, job *entity.ScheduledJob) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	item, err := uow.OrderRepository().FindOneItem(ctx, specification.ByID{ID: job.ContextId})
	if err != nil {
		return err
	}
	if item == nil || item.IsRefunded {
		return nil
	}
	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: item.OrderId})
	if err != nil {
		return err
	}
	if order == nil {
		return nil
	}
	customer, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: order.AccountId})
	if err != nil {
		return err
	}
	if customer == nil {
		return nil
	}

	if err := s.emailService.SendFeedbackReminder(customer.Email, string(item.ItemType)); err != nil {
		// Mail is best effort; the job must not requeue forever on a flaky
		// SMTP relay.
		s.logger.Warn("settlement", "feedback reminder mail failed", map[string]interface{}{
			"order_item_id": item.Id,
			"error":         err.Error(),
		})
	}
	return nil
}

func (s *settlementService) HandleEntitlementExpiry(ctx context.Context, job *entity.ScheduledJob) error {
	return s.expireEntitlement(ctx, job.ContextId)
}

func (s *settlementService) HandleSubscriptionExpiry(ctx context.Context, job *entity.ScheduledJob) error {
	return s.expireEntitlement(ctx, job.ContextId)
}

func (s *settlementService) expireEntitlement(ctx context.Context, purchasedId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	purchased, err := uow.PurchasedRepository().FindOne(ctx, specification.ByID{ID: purchasedId})
	if err != nil {
		return err
	}
	if purchased == nil {
		return fmt.Errorf("%w: %s", ErrEntitlementNotFound, purchasedId)
	}
	if time.Now().UTC().Before(purchased.ExpirationDate) {
		// The window was extended after this job was planted; the extension
		// planted its own expiry job.
		return uow.Commit()
	}

	purchased.Status = entity.PurchasedStatusExpired
	if err := uow.PurchasedRepository().Update(ctx, purchased); err != nil {
		return err
	}
	return uow.Commit()
}

// HandleTrainerRelease frees the trainer from an entitlement whose window
// closed, so they show as available for new assignments.
func (s *settlementService) HandleTrainerRelease(ctx context.Context, job *entity.ScheduledJob) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	purchased, err := uow.PurchasedRepository().FindOne(ctx, specification.ByID{ID: job.ContextId})
	if err != nil {
		return err
	}
	if purchased == nil {
		return fmt.Errorf("%w: %s", ErrEntitlementNotFound, job.ContextId)
	}
	if time.Now().UTC().Before(purchased.ExpirationDate) {
		return uow.Commit()
	}

	purchased.TrainerId = nil
	if err := uow.PurchasedRepository().Update(ctx, purchased); err != nil {
		return err
	}
	return uow.Commit()
}

func (s *settlementService) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events.New(eventType, data)); err != nil {
		s.logger.Warn("settlement", "event publish failed", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}
