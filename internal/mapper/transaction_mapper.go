package mapper

import (
	"fitmarket-be/internal/entity"
	"fitmarket-be/internal/model"
)

type TransactionMapper struct{}

func NewTransactionMapper() *TransactionMapper {
	return &TransactionMapper{}
}

func (m *TransactionMapper) ToEntity(t *model.Transaction) *entity.Transaction {
	if t == nil {
		return nil
	}
	return &entity.Transaction{
		Id:           t.Id,
		OrderId:      t.OrderId,
		OrderCode:    t.OrderCode,
		Kind:         entity.TransactionKind(t.Kind),
		Status:       entity.TransactionStatus(t.Status),
		Amount:       t.Amount,
		ProfitAmount: t.ProfitAmount,
		WalletId:     t.WalletId,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func (m *TransactionMapper) ToModel(t *entity.Transaction) *model.Transaction {
	if t == nil {
		return nil
	}
	return &model.Transaction{
		Id:           t.Id,
		OrderId:      t.OrderId,
		OrderCode:    t.OrderCode,
		Kind:         string(t.Kind),
		Status:       string(t.Status),
		Amount:       t.Amount,
		ProfitAmount: t.ProfitAmount,
		WalletId:     t.WalletId,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}
