package mapper

import (
	"fitmarket-be/internal/entity"
	"fitmarket-be/internal/model"
)

type ReportMapper struct{}

func NewReportMapper() *ReportMapper {
	return &ReportMapper{}
}

func (m *ReportMapper) ToEntity(r *model.Report) *entity.Report {
	if r == nil {
		return nil
	}
	return &entity.Report{
		Id:          r.Id,
		OrderItemId: r.OrderItemId,
		CustomerId:  r.CustomerId,
		Reason:      r.Reason,
		Status:      entity.ReportStatus(r.Status),
		AdminNotes:  r.AdminNotes,
		ProcessedAt: r.ProcessedAt,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (m *ReportMapper) ToModel(r *entity.Report) *model.Report {
	if r == nil {
		return nil
	}
	return &model.Report{
		Id:          r.Id,
		OrderItemId: r.OrderItemId,
		CustomerId:  r.CustomerId,
		Reason:      r.Reason,
		Status:      string(r.Status),
		AdminNotes:  r.AdminNotes,
		ProcessedAt: r.ProcessedAt,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
