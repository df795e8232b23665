package service

import "errors"

// Sentinel domain errors. Controllers map these onto HTTP statuses; anything
// else is treated as an internal failure.
var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrEntitlementNotFound = errors.New("entitlement not found")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrReportNotFound      = errors.New("report not found")
	ErrCatalogItemNotFound = errors.New("catalog item not found")

	ErrBookingConflict     = errors.New("booking window overlaps an existing booking")
	ErrCouponExhausted     = errors.New("coupon has no remaining uses")
	ErrInsufficientStock   = errors.New("insufficient product stock")
	ErrNoSessionsRemaining = errors.New("entitlement has no sessions remaining")
	ErrEntitlementExpired  = errors.New("entitlement has expired")

	ErrInvalidSignature = errors.New("webhook signature mismatch")
	ErrReportNotOpen    = errors.New("report is not open")
)
