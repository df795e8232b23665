package entity

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string
type OrderItemType string

const (
	OrderStatusCreated   OrderStatus = "created"
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusFinished  OrderStatus = "finished"
	OrderStatusCancelled OrderStatus = "cancelled"
	// Shipping sub-states for orders carrying physical products.
	OrderStatusShipping  OrderStatus = "shipping"
	OrderStatusDelivered OrderStatus = "delivered"

	OrderItemTypeGymCourse    OrderItemType = "gym_course"
	OrderItemTypePtPackage    OrderItemType = "pt_package"
	OrderItemTypePtAssignment OrderItemType = "pt_assignment"
	OrderItemTypeProduct      OrderItemType = "product"
	OrderItemTypeSubscription OrderItemType = "subscription"
)

// Order is a purchase attempt. Code is the external order code the payment
// gateway echoes back in webhooks; CommissionRate is snapshotted at checkout so
// later rate changes never affect an already-created order.
type Order struct {
	Id             uuid.UUID
	Code           int64
	AccountId      uuid.UUID
	Status         OrderStatus
	Subtotal       float64
	Total          float64
	CommissionRate float64
	CouponId       *uuid.UUID
	// TargetPurchasedId points at the entitlement being extended or assigned a
	// trainer, for extension/assignment orders.
	TargetPurchasedId *uuid.UUID
	Items             []*OrderItem
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type OrderItem struct {
	Id            uuid.UUID
	OrderId       uuid.UUID
	ItemType      OrderItemType
	RefId         uuid.UUID // catalog id: course, package, product or plan
	MerchantId    uuid.UUID // gym owner or freelance trainer receiving the profit
	TrainerId     *uuid.UUID
	Price         float64
	Quantity      int
	OriginalPrice *float64 // pre-discount price, when a coupon applied
	IsRefunded    bool
	// PurchasedId links to the entitlement this item produced or extended.
	PurchasedId                 *uuid.UUID
	ProfitDistributePlannedDate *time.Time
	ProfitDistributeActualDate  *time.Time
	CreatedAt                   time.Time
	UpdatedAt                   time.Time
}

// Subtotal is the pre-discount line amount.
func (i *OrderItem) LineSubtotal() float64 {
	price := i.Price
	if i.OriginalPrice != nil {
		price = *i.OriginalPrice
	}
	return price * float64(i.Quantity)
}
