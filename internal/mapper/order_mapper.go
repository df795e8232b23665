package mapper

import (
	"fitmarket-be/internal/entity"
	"fitmarket-be/internal/model"
)

type OrderMapper struct{}

func NewOrderMapper() *OrderMapper {
	return &OrderMapper{}
}

func (m *OrderMapper) ToEntity(o *model.Order) *entity.Order {
	if o == nil {
		return nil
	}
	items := make([]*entity.OrderItem, len(o.Items))
	for i, it := range o.Items {
		items[i] = m.ItemToEntity(it)
	}
	return &entity.Order{
		Id:                o.Id,
		Code:              o.Code,
		AccountId:         o.AccountId,
		Status:            entity.OrderStatus(o.Status),
		Subtotal:          o.Subtotal,
		Total:             o.Total,
		CommissionRate:    o.CommissionRate,
		CouponId:          o.CouponId,
		TargetPurchasedId: o.TargetPurchasedId,
		Items:             items,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

func (m *OrderMapper) ToModel(o *entity.Order) *model.Order {
	if o == nil {
		return nil
	}
	items := make([]*model.OrderItem, len(o.Items))
	for i, it := range o.Items {
		items[i] = m.ItemToModel(it)
	}
	return &model.Order{
		Id:                o.Id,
		Code:              o.Code,
		AccountId:         o.AccountId,
		Status:            string(o.Status),
		Subtotal:          o.Subtotal,
		Total:             o.Total,
		CommissionRate:    o.CommissionRate,
		CouponId:          o.CouponId,
		TargetPurchasedId: o.TargetPurchasedId,
		Items:             items,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

func (m *OrderMapper) ItemToEntity(i *model.OrderItem) *entity.OrderItem {
	if i == nil {
		return nil
	}
	return &entity.OrderItem{
		Id:                          i.Id,
		OrderId:                     i.OrderId,
		ItemType:                    entity.OrderItemType(i.ItemType),
		RefId:                       i.RefId,
		MerchantId:                  i.MerchantId,
		TrainerId:                   i.TrainerId,
		Price:                       i.Price,
		Quantity:                    i.Quantity,
		OriginalPrice:               i.OriginalPrice,
		IsRefunded:                  i.IsRefunded,
		PurchasedId:                 i.PurchasedId,
		ProfitDistributePlannedDate: i.ProfitDistributePlannedDate,
		ProfitDistributeActualDate:  i.ProfitDistributeActualDate,
		CreatedAt:                   i.CreatedAt,
		UpdatedAt:                   i.UpdatedAt,
	}
}

func (m *OrderMapper) ItemToModel(i *entity.OrderItem) *model.OrderItem {
	if i == nil {
		return nil
	}
	return &model.OrderItem{
		Id:                          i.Id,
		OrderId:                     i.OrderId,
		ItemType:                    string(i.ItemType),
		RefId:                       i.RefId,
		MerchantId:                  i.MerchantId,
		TrainerId:                   i.TrainerId,
		Price:                       i.Price,
		Quantity:                    i.Quantity,
		OriginalPrice:               i.OriginalPrice,
		IsRefunded:                  i.IsRefunded,
		PurchasedId:                 i.PurchasedId,
		ProfitDistributePlannedDate: i.ProfitDistributePlannedDate,
		ProfitDistributeActualDate:  i.ProfitDistributeActualDate,
		CreatedAt:                   i.CreatedAt,
		UpdatedAt:                   i.UpdatedAt,
	}
}
