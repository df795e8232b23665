package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fitmarket-be/internal/constant"
	"fitmarket-be/internal/dto"
	"fitmarket-be/internal/entity"
	"fitmarket-be/internal/pkg/logger"
	"fitmarket-be/internal/repository/specification"
	"fitmarket-be/internal/repository/unitofwork"
	"fitmarket-be/internal/scheduler"

	"fitmarket-be/pkg/events"
	pktNats "fitmarket-be/pkg/nats"

	"github.com/google/uuid"
)

// IReportService runs the dispute flow. An open report freezes the disputed
// item's profit-release job; resolution either thaws it or refunds the item
// and claws the profit back out of the merchant wallet.
type IReportService interface {
	CreateReport(ctx context.Context, customerId uuid.UUID, req *dto.CreateReportRequest) (*dto.ReportResponse, error)
	ResolveReport(ctx context.Context, reportId uuid.UUID, req *dto.ResolveReportRequest) (*dto.ReportResponse, error)
	GetReports(ctx context.Context, status string) ([]*dto.ReportResponse, error)
}

type reportService struct {
	uowFactory     unitofwork.RepositoryFactory
	ledger         IWalletLedger
	jobs           scheduler.IScheduler
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewReportService(
	uowFactory unitofwork.RepositoryFactory,
	ledger IWalletLedger,
	jobs scheduler.IScheduler,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IReportService {
	return &reportService{
		uowFactory:     uowFactory,
		ledger:         ledger,
		jobs:           jobs,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *reportService) CreateReport(ctx context.Context, customerId uuid.UUID, req *dto.CreateReportRequest) (*dto.ReportResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	item, err := uow.OrderRepository().FindOneItem(ctx, specification.ByID{ID: req.OrderItemId})
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("order item %s not found", req.OrderItemId)
	}

	report := &entity.Report{
		OrderItemId: item.Id,
		CustomerId:  customerId,
		Reason:      req.Reason,
		Status:      entity.ReportStatusOpen,
	}
	if err := uow.ReportRepository().Create(ctx, report); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	// Freeze the release while the dispute is open. A job that already fired
	// or was never planted leaves nothing to freeze; the refund path still
	// claws back from the available balance.
	key := scheduler.JobKey{Group: constant.JobGroupProfitRelease, EntityId: item.Id}
	if err := s.jobs.Pause(ctx, key); err != nil {
		if errors.Is(err, scheduler.ErrJobNotFound) {
			s.logger.Info("report", "no release job to pause", map[string]interface{}{
				"order_item_id": item.Id,
			})
		} else {
			return nil, err
		}
	}

	s.publish(ctx, constant.EventReportOpened, map[string]interface{}{
		"report_id":     report.Id.String(),
		"order_item_id": item.Id.String(),
		"customer_id":   customerId.String(),
	})
	return reportToResponse(report), nil
}

func (s *reportService) ResolveReport(ctx context.Context, reportId uuid.UUID, req *dto.ResolveReportRequest) (*dto.ReportResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	report, err := uow.ReportRepository().FindOne(ctx, specification.ByID{ID: reportId})
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, fmt.Errorf("%w: %s", ErrReportNotFound, reportId)
	}
	if report.Status != entity.ReportStatusOpen {
		return nil, ErrReportNotOpen
	}

	item, err := uow.OrderRepository().FindOneItem(ctx, specification.ByID{ID: report.OrderItemId})
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("order item %s not found", report.OrderItemId)
	}

	now := time.Now().UTC()
	report.ProcessedAt = &now
	report.AdminNotes = req.AdminNotes
	key := scheduler.JobKey{Group: constant.JobGroupProfitRelease, EntityId: item.Id}

	if req.Resolution == "refund" {
		report.Status = entity.ReportStatusResolvedRefunded

		order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: item.OrderId})
		if err != nil {
			return nil, err
		}
		if order == nil {
			return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, item.OrderId)
		}
		var coupon *entity.Coupon
		if order.CouponId != nil {
			coupon, err = uow.CouponRepository().FindOne(ctx, specification.ByID{ID: *order.CouponId})
			if err != nil {
				return nil, err
			}
		}

		// The refund reverses the same commission formula that credited the
		// merchant, from the coupon parameters applied to the order.
		amount := ItemMerchantProfit(item, order.CommissionRate, coupon)
		wallet, err := uow.WalletRepository().FindOne(ctx, specification.Filter("owner_id", item.MerchantId))
		if err != nil {
			return nil, err
		}
		if wallet == nil {
			return nil, fmt.Errorf("%w: owner %s", ErrWalletNotFound, item.MerchantId)
		}
		if err := s.ledger.AdjustForRefund(ctx, uow, wallet.Id, amount); err != nil {
			return nil, err
		}

		item.IsRefunded = true
		if err := uow.OrderRepository().UpdateItem(ctx, item); err != nil {
			return nil, err
		}
	} else {
		report.Status = entity.ReportStatusResolvedDismissed
	}

	if err := uow.ReportRepository().Update(ctx, report); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if req.Resolution == "refund" {
		if _, err := s.jobs.Cancel(ctx, key); err != nil {
			s.logger.Error("report", "cancel release job failed", map[string]interface{}{
				"order_item_id": item.Id,
				"error":         err.Error(),
			})
		}
	} else {
		if err := s.jobs.Resume(ctx, key); err != nil && !errors.Is(err, scheduler.ErrJobNotFound) {
			return nil, err
		}
	}

	s.publish(ctx, constant.EventReportResolved, map[string]interface{}{
		"report_id":  report.Id.String(),
		"resolution": req.Resolution,
	})
	return reportToResponse(report), nil
}

func (s *reportService) GetReports(ctx context.Context, status string) ([]*dto.ReportResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if status != "" {
		specs = append(specs, specification.Filter("status", status))
	}
	reports, err := uow.ReportRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ReportResponse, 0, len(reports))
	for _, r := range reports {
		res = append(res, reportToResponse(r))
	}
	return res, nil
}

func reportToResponse(r *entity.Report) *dto.ReportResponse {
	return &dto.ReportResponse{
		Id:          r.Id,
		OrderItemId: r.OrderItemId,
		CustomerId:  r.CustomerId,
		Reason:      r.Reason,
		Status:      string(r.Status),
		AdminNotes:  r.AdminNotes,
		ProcessedAt: r.ProcessedAt,
		CreatedAt:   r.CreatedAt,
	}
}

func (s *reportService) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events.New(eventType, data)); err != nil {
		s.logger.Warn("report", "event publish failed", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}
