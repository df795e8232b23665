package service

import (
	"context"
	"fmt"
	"time"

	"fitmarket-be/internal/config"
	"fitmarket-be/internal/constant"
	"fitmarket-be/internal/dto"
	"fitmarket-be/internal/entity"
	"fitmarket-be/internal/pkg/logger"
	"fitmarket-be/internal/repository/memory"
	"fitmarket-be/internal/repository/specification"
	"fitmarket-be/internal/repository/unitofwork"
	"fitmarket-be/internal/scheduler"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

type ICheckoutService interface {
	Checkout(ctx context.Context, customerId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
}

type checkoutService struct {
	uowFactory  unitofwork.RepositoryFactory
	jobs        scheduler.IScheduler
	settings    *memory.SettingsCache
	midtransCfg config.MidtransConfig
	appCfg      config.AppConfig
	logger      logger.ILogger
}

func NewCheckoutService(
	uowFactory unitofwork.RepositoryFactory,
	jobs scheduler.IScheduler,
	settings *memory.SettingsCache,
	midtransCfg config.MidtransConfig,
	appCfg config.AppConfig,
	log logger.ILogger,
) ICheckoutService {
	return &checkoutService{
		uowFactory:  uowFactory,
		jobs:        jobs,
		settings:    settings,
		midtransCfg: midtransCfg,
		appCfg:      appCfg,
		logger:      log,
	}
}

// pricedLine is a checkout item with its catalog pricing resolved.
type pricedLine struct {
	req        dto.CheckoutItemRequest
	name       string
	unitPrice  float64
	merchantId uuid.UUID
	trainerId  *uuid.UUID
}

func (s *checkoutService) priceLine(ctx context.Context, uow unitofwork.UnitOfWork, item dto.CheckoutItemRequest) (*pricedLine, error) {
	catalog := uow.CatalogRepository()
	switch entity.OrderItemType(item.ItemType) {
	case entity.OrderItemTypeGymCourse:
		course, err := catalog.FindOneCourse(ctx, specification.ByID{ID: item.RefId})
		if err != nil {
			return nil, err
		}
		if course == nil || !course.IsActive {
			return nil, fmt.Errorf("%w: course %s", ErrCatalogItemNotFound, item.RefId)
		}
		return &pricedLine{req: item, name: course.Name, unitPrice: course.Price, merchantId: course.GymOwnerId}, nil
	case entity.OrderItemTypePtPackage, entity.OrderItemTypePtAssignment:
		pkg, err := catalog.FindOnePackage(ctx, specification.ByID{ID: item.RefId})
		if err != nil {
			return nil, err
		}
		if pkg == nil || !pkg.IsActive {
			return nil, fmt.Errorf("%w: package %s", ErrCatalogItemNotFound, item.RefId)
		}
		trainerId := pkg.TrainerId
		return &pricedLine{req: item, name: pkg.Name, unitPrice: pkg.Price, merchantId: pkg.TrainerId, trainerId: &trainerId}, nil
	case entity.OrderItemTypeProduct:
		product, err := catalog.FindOneProduct(ctx, specification.ByID{ID: item.RefId})
		if err != nil {
			return nil, err
		}
		if product == nil || !product.IsActive {
			return nil, fmt.Errorf("%w: product %s", ErrCatalogItemNotFound, item.RefId)
		}
		if product.Stock < item.Quantity {
			return nil, ErrInsufficientStock
		}
		return &pricedLine{req: item, name: product.Name, unitPrice: product.Price, merchantId: product.SellerId}, nil
	case entity.OrderItemTypeSubscription:
		plan, err := catalog.FindOnePlan(ctx, specification.ByID{ID: item.RefId})
		if err != nil {
			return nil, err
		}
		if plan == nil || !plan.IsActive {
			return nil, fmt.Errorf("%w: plan %s", ErrCatalogItemNotFound, item.RefId)
		}
		return &pricedLine{req: item, name: plan.Name, unitPrice: plan.Price, merchantId: plan.GymOwnerId}, nil
	default:
		return nil, fmt.Errorf("unknown item type %s", item.ItemType)
	}
}

// transactionKind derives the purchase kind recorded on the pending
// transaction. Extension and assignment orders are flagged by the target
// entitlement reference.
func transactionKind(lines []*pricedLine, hasTarget bool) entity.TransactionKind {
	first := entity.OrderItemType(lines[0].req.ItemType)
	switch first {
	case entity.OrderItemTypeGymCourse:
		if hasTarget {
			return entity.TransactionKindExtendCourse
		}
		return entity.TransactionKindGymCourse
	case entity.OrderItemTypePtPackage:
		if hasTarget {
			return entity.TransactionKindExtendFreelancePtPackage
		}
		return entity.TransactionKindFreelancePtPackage
	case entity.OrderItemTypePtAssignment:
		return entity.TransactionKindAssignPt
	case entity.OrderItemTypeSubscription:
		return entity.TransactionKindSubscriptionPlansOrder
	default:
		return entity.TransactionKindProductOrder
	}
}

func (s *checkoutService) Checkout(ctx context.Context, customerId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	snapshot, err := s.settings.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	lines := make([]*pricedLine, 0, len(req.Items))
	subtotal := 0.0
	for _, item := range req.Items {
		line, err := s.priceLine(ctx, uow, item)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
		subtotal += line.unitPrice * float64(item.Quantity)
	}

	var coupon *entity.Coupon
	if req.CouponCode != "" {
		coupon, err = uow.CouponRepository().FindOne(ctx, specification.Filter("code", req.CouponCode))
		if err != nil {
			return nil, err
		}
		if coupon == nil || coupon.Quantity <= 0 {
			return nil, ErrCouponExhausted
		}
		if coupon.ExpiresAt != nil && time.Now().After(*coupon.ExpiresAt) {
			return nil, ErrCouponExhausted
		}
	}

	discount := couponDiscount(subtotal, coupon)
	total := subtotal - discount

	var couponId *uuid.UUID
	if coupon != nil {
		couponId = &coupon.Id
	}
	var targetId *uuid.UUID
	if req.TargetPurchasedId != uuid.Nil {
		targetId = &req.TargetPurchasedId
	}

	order := &entity.Order{
		Code:              time.Now().UnixMilli(),
		AccountId:         customerId,
		Status:            entity.OrderStatusCreated,
		Subtotal:          subtotal,
		Total:             total,
		CommissionRate:    snapshot.CommissionRate,
		CouponId:          couponId,
		TargetPurchasedId: targetId,
	}
	for _, line := range lines {
		lineSubtotal := line.unitPrice * float64(line.req.Quantity)
		price := line.unitPrice
		var originalPrice *float64
		if discount > 0 && subtotal > 0 {
			// The order-level discount is spread across lines by weight so
			// refund math at line granularity works the same as order math.
			op := line.unitPrice
			originalPrice = &op
			lineDiscount := roundCurrency(discount * lineSubtotal / subtotal)
			price = line.unitPrice - lineDiscount/float64(line.req.Quantity)
		}
		trainerId := line.trainerId
		if line.req.TrainerId != uuid.Nil {
			t := line.req.TrainerId
			trainerId = &t
		}
		order.Items = append(order.Items, &entity.OrderItem{
			ItemType:      entity.OrderItemType(line.req.ItemType),
			RefId:         line.req.RefId,
			MerchantId:    line.merchantId,
			TrainerId:     trainerId,
			Price:         price,
			Quantity:      line.req.Quantity,
			OriginalPrice: originalPrice,
		})
	}

	if err := uow.OrderRepository().Create(ctx, order); err != nil {
		return nil, err
	}

	transaction := &entity.Transaction{
		OrderId:   order.Id,
		OrderCode: order.Code,
		Kind:      transactionKind(lines, targetId != nil),
		Status:    entity.TransactionStatusPending,
		Amount:    total,
	}
	if err := uow.TransactionRepository().Create(ctx, transaction); err != nil {
		return nil, err
	}

	// The unpaid order self-destructs unless the webhook cancels this job.
	cancelAt := time.Now().UTC().Add(time.Duration(snapshot.AutoCancelMinutes) * time.Minute)
	if err := s.jobs.ScheduleIn(ctx, uow, scheduler.JobKey{
		Group:    constant.JobGroupAutoCancelOrder,
		EntityId: order.Id,
	}, cancelAt); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	// Gateway call stays outside the transaction; a snap failure leaves a
	// created order the auto-cancel job will sweep.
	var sClient snap.Client
	env := midtrans.Sandbox
	if s.midtransCfg.IsProduction {
		env = midtrans.Production
	}
	sClient.New(s.midtransCfg.ServerKey, env)

	itemDetails := make([]midtrans.ItemDetails, 0, len(lines))
	for _, line := range lines {
		itemDetails = append(itemDetails, midtrans.ItemDetails{
			ID:    line.req.RefId.String(),
			Price: int64(line.unitPrice),
			Qty:   int32(line.req.Quantity),
			Name:  line.name,
		})
	}
	if discount > 0 {
		itemDetails = append(itemDetails, midtrans.ItemDetails{
			ID:    "DISCOUNT",
			Price: -int64(discount),
			Qty:   1,
			Name:  "Coupon discount",
		})
	}

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  fmt.Sprintf("%s%d", orderCodePrefix, order.Code),
			GrossAmt: int64(total),
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		Callbacks: &snap.Callbacks{
			Finish: fmt.Sprintf("%s/orders?payment=success", s.appCfg.ClientURL),
		},
		Items:           &itemDetails,
		EnabledPayments: snap.AllSnapPaymentType,
	}

	snapResp, midErr := sClient.CreateTransaction(snapReq)
	if midErr != nil {
		return nil, fmt.Errorf("midtrans error: %v", midErr.GetMessage())
	}

	s.logger.Info("checkout", "order created", map[string]interface{}{
		"order_code": order.Code,
		"total":      total,
	})

	return &dto.CheckoutResponse{
		OrderId:     order.Id,
		OrderCode:   order.Code,
		Subtotal:    subtotal,
		Total:       total,
		SnapToken:   snapResp.Token,
		RedirectUrl: snapResp.RedirectURL,
	}, nil
}
