package entity

import (
	"time"

	"github.com/google/uuid"
)

type TransactionKind string
type TransactionStatus string

// Purchase kinds arrive from the gateway webhook; ledger kinds are written by
// the wallet ledger itself.
const (
	TransactionKindGymCourse                TransactionKind = "gym_course"
	TransactionKindExtendCourse             TransactionKind = "extend_course"
	TransactionKindAssignPt                 TransactionKind = "assign_pt"
	TransactionKindFreelancePtPackage       TransactionKind = "freelance_pt_package"
	TransactionKindExtendFreelancePtPackage TransactionKind = "extend_freelance_pt_package"
	TransactionKindSubscriptionPlansOrder   TransactionKind = "subscription_plans_order"
	TransactionKindProductOrder             TransactionKind = "product_order"

	TransactionKindDistributeProfit TransactionKind = "distribute_profit"
	TransactionKindPendingDeduction TransactionKind = "pending_deduction"
	TransactionKindDisbursement     TransactionKind = "disbursement"

	TransactionStatusPending TransactionStatus = "pending"
	TransactionStatusSuccess TransactionStatus = "success"
	TransactionStatusFailed  TransactionStatus = "failed"
)

// IsPurchaseKind reports whether the kind is settled from a gateway webhook.
func (k TransactionKind) IsPurchaseKind() bool {
	switch k {
	case TransactionKindGymCourse, TransactionKindExtendCourse, TransactionKindAssignPt,
		TransactionKindFreelancePtPackage, TransactionKindExtendFreelancePtPackage,
		TransactionKindSubscriptionPlansOrder, TransactionKindProductOrder:
		return true
	}
	return false
}

// Transaction is one monetary movement tied to an order. OrderCode doubles as
// the idempotency key for webhook delivery: status moves pending -> success at
// most once.
type Transaction struct {
	Id           uuid.UUID
	OrderId      uuid.UUID
	OrderCode    int64
	Kind         TransactionKind
	Status       TransactionStatus
	Amount       float64
	ProfitAmount float64
	WalletId     *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
