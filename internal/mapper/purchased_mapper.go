package mapper

import (
	"fitmarket-be/internal/entity"
	"fitmarket-be/internal/model"
)

type PurchasedMapper struct{}

func NewPurchasedMapper() *PurchasedMapper {
	return &PurchasedMapper{}
}

func (m *PurchasedMapper) ToEntity(p *model.CustomerPurchased) *entity.CustomerPurchased {
	if p == nil {
		return nil
	}
	return &entity.CustomerPurchased{
		Id:                p.Id,
		CustomerId:        p.CustomerId,
		ItemType:          entity.OrderItemType(p.ItemType),
		RefId:             p.RefId,
		TrainerId:         p.TrainerId,
		AvailableSessions: p.AvailableSessions,
		ExpirationDate:    p.ExpirationDate,
		Status:            entity.PurchasedStatus(p.Status),
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func (m *PurchasedMapper) ToModel(p *entity.CustomerPurchased) *model.CustomerPurchased {
	if p == nil {
		return nil
	}
	return &model.CustomerPurchased{
		Id:                p.Id,
		CustomerId:        p.CustomerId,
		ItemType:          string(p.ItemType),
		RefId:             p.RefId,
		TrainerId:         p.TrainerId,
		AvailableSessions: p.AvailableSessions,
		ExpirationDate:    p.ExpirationDate,
		Status:            string(p.Status),
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
