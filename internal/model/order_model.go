package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Order struct {
	Id                uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code              int64          `gorm:"uniqueIndex;not null"`
	AccountId         uuid.UUID      `gorm:"type:uuid;not null;index"`
	Status            string         `gorm:"type:varchar(50);not null"`
	Subtotal          float64        `gorm:"type:decimal(14,2);not null"`
	Total             float64        `gorm:"type:decimal(14,2);not null"`
	CommissionRate    float64        `gorm:"type:decimal(5,4);not null"`
	CouponId          *uuid.UUID     `gorm:"type:uuid;index"`
	TargetPurchasedId *uuid.UUID     `gorm:"type:uuid"`
	CreatedAt         time.Time      `gorm:"autoCreateTime"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime"`
	DeletedAt         gorm.DeletedAt `gorm:"index"`

	Items []*OrderItem `gorm:"foreignKey:OrderId"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	Id                          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderId                     uuid.UUID  `gorm:"type:uuid;not null;index"`
	ItemType                    string     `gorm:"type:varchar(50);not null"`
	RefId                       uuid.UUID  `gorm:"type:uuid;not null"`
	MerchantId                  uuid.UUID  `gorm:"type:uuid;not null;index"`
	TrainerId                   *uuid.UUID `gorm:"type:uuid"`
	Price                       float64    `gorm:"type:decimal(14,2);not null"`
	Quantity                    int        `gorm:"not null;default:1"`
	OriginalPrice               *float64   `gorm:"type:decimal(14,2)"`
	IsRefunded                  bool       `gorm:"default:false"`
	PurchasedId                 *uuid.UUID `gorm:"type:uuid;index"`
	ProfitDistributePlannedDate *time.Time
	ProfitDistributeActualDate  *time.Time
	CreatedAt                   time.Time `gorm:"autoCreateTime"`
	UpdatedAt                   time.Time `gorm:"autoUpdateTime"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
