package mapper

import (
	"fitmarket-be/internal/entity"
	"fitmarket-be/internal/model"
)

type BookingMapper struct{}

func NewBookingMapper() *BookingMapper {
	return &BookingMapper{}
}

func (m *BookingMapper) ToEntity(b *model.Booking) *entity.Booking {
	if b == nil {
		return nil
	}
	return &entity.Booking{
		Id:                b.Id,
		CustomerId:        b.CustomerId,
		TrainerId:         b.TrainerId,
		PurchasedId:       b.PurchasedId,
		Date:              b.Date,
		StartAt:           b.StartAt,
		EndAt:             b.EndAt,
		Status:            entity.BookingStatus(b.Status),
		CancelledRefunded: b.CancelledRefunded,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

func (m *BookingMapper) ToModel(b *entity.Booking) *model.Booking {
	if b == nil {
		return nil
	}
	return &model.Booking{
		Id:                b.Id,
		CustomerId:        b.CustomerId,
		TrainerId:         b.TrainerId,
		PurchasedId:       b.PurchasedId,
		Date:              b.Date,
		StartAt:           b.StartAt,
		EndAt:             b.EndAt,
		Status:            string(b.Status),
		CancelledRefunded: b.CancelledRefunded,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}
