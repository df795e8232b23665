package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByOrderCode filters transactions or orders by the external gateway code.
type ByOrderCode struct {
	Code int64
}

func (s ByOrderCode) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("code = ?", s.Code)
}

// TransactionByOrderCode filters the transactions table, whose column is
// order_code rather than code.
type TransactionByOrderCode struct {
	Code int64
}

func (s TransactionByOrderCode) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("order_code = ?", s.Code)
}

// ByAccount filters by the purchasing account.
type ByAccount struct {
	AccountId uuid.UUID
}

func (s ByAccount) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("account_id = ?", s.AccountId)
}

// ByOrder filters order items and transactions by their parent order.
type ByOrder struct {
	OrderId uuid.UUID
}

func (s ByOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("order_id = ?", s.OrderId)
}
