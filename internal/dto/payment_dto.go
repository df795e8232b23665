package dto

import (
	"github.com/google/uuid"
)

// --- Webhook DTOs ---

// MidtransWebhookRequest mirrors the gateway notification body. The signature
// is sha512(order_id + status_code + gross_amount + server_key) and is
// verified before any settlement runs.
type MidtransWebhookRequest struct {
	OrderId           string `json:"order_id" validate:"required"`
	StatusCode        string `json:"status_code" validate:"required"`
	GrossAmount       string `json:"gross_amount" validate:"required"`
	SignatureKey      string `json:"signature_key" validate:"required"`
	TransactionStatus string `json:"transaction_status" validate:"required"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
}

// --- Checkout DTOs ---

type CheckoutItemRequest struct {
	ItemType  string    `json:"item_type" validate:"required,oneof=gym_course pt_package pt_assignment product subscription"`
	RefId     uuid.UUID `json:"ref_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
	TrainerId uuid.UUID `json:"trainer_id" validate:"omitempty"`
}

type CheckoutRequest struct {
	Items             []CheckoutItemRequest `json:"items" validate:"required,min=1,dive"`
	CouponCode        string                `json:"coupon_code"`
	TargetPurchasedId uuid.UUID             `json:"target_purchased_id"` // set for extension/assignment orders
}

type CheckoutResponse struct {
	OrderId     uuid.UUID `json:"order_id"`
	OrderCode   int64     `json:"order_code"`
	Subtotal    float64   `json:"subtotal"`
	Total       float64   `json:"total"`
	SnapToken   string    `json:"snap_token"`
	RedirectUrl string    `json:"redirect_url"`
}

// --- Wallet DTOs ---

type WalletResponse struct {
	Id               uuid.UUID `json:"id"`
	PendingBalance   float64   `json:"pending_balance"`
	AvailableBalance float64   `json:"available_balance"`
}

type WalletTransactionResponse struct {
	Id           uuid.UUID `json:"id"`
	OrderCode    int64     `json:"order_code"`
	Kind         string    `json:"kind"`
	Status       string    `json:"status"`
	Amount       float64   `json:"amount"`
	ProfitAmount float64   `json:"profit_amount"`
	CreatedAt    string    `json:"created_at"`
}

type WalletTransactionListResponse struct {
	Transactions []WalletTransactionResponse `json:"transactions"`
	Total        int64                       `json:"total"`
}
