package service

import (
	"math"

	"fitmarket-be/internal/entity"
)

// ProfitBreakdown is the outcome of settling one order's money.
// SystemProfit may be negative: a capped system coupon can discount more than
// the commission earns, in which case the platform subsidizes the order.
type ProfitBreakdown struct {
	SystemProfit   float64
	MerchantProfit float64
}

// roundCurrency rounds to the nearest whole currency unit, ties away from
// zero. Every monetary figure in settlement passes through here; mixing
// rounding policies makes refund and extension math drift.
func roundCurrency(v float64) float64 {
	return math.Round(v)
}

// couponDiscount is the absolute discount a coupon grants on base, honoring
// the cap.
func couponDiscount(base float64, coupon *entity.Coupon) float64 {
	if coupon == nil {
		return 0
	}
	return math.Min(base*coupon.DiscountPct, coupon.MaxDiscount)
}

// ComputeProfit computes the platform and merchant shares for an order.
//
// Without a coupon the commission is round(subtotal × rate). A merchant-issued
// coupon is self funded, so the commission base drops to the post-discount
// total. A system coupon is platform funded: the discount comes out of the
// commission itself and may push SystemProfit below zero.
func ComputeProfit(subtotal, total, commissionRate float64, coupon *entity.Coupon) ProfitBreakdown {
	var systemProfit float64
	switch {
	case coupon == nil:
		systemProfit = roundCurrency(subtotal * commissionRate)
	case coupon.IsMerchantIssued():
		systemProfit = roundCurrency(total * commissionRate)
	default:
		systemProfit = roundCurrency(subtotal*commissionRate) - couponDiscount(subtotal, coupon)
	}

	merchantProfit := total - systemProfit
	if coupon != nil && coupon.Type == entity.CouponTypeSystem {
		// The customer paid total = subtotal − discount, and the discount
		// already came out of the commission above. The merchant is made whole
		// to subtotal minus the nominal commission; the discount is consumed
		// exactly once.
		merchantProfit = subtotal - roundCurrency(subtotal*commissionRate)
	}

	return ProfitBreakdown{
		SystemProfit:   systemProfit,
		MerchantProfit: merchantProfit,
	}
}

// ItemCommissions recomputes the commission for each order item using the
// same coupon-type branching at line granularity, walking items in slice
// order. A system coupon's cap belongs to the whole order, so each line only
// discounts against whatever cap the earlier lines left over; summed, the
// per-line commissions agree with ComputeProfit. The coupon passed in is the
// snapshot applied to the order, never the live row.
func ItemCommissions(items []*entity.OrderItem, commissionRate float64, coupon *entity.Coupon) []float64 {
	var remainingCap float64
	if coupon != nil {
		remainingCap = coupon.MaxDiscount
	}

	out := make([]float64, len(items))
	for i, item := range items {
		lineSubtotal := item.LineSubtotal()
		lineTotal := item.Price * float64(item.Quantity)

		switch {
		case coupon == nil:
			out[i] = roundCurrency(lineSubtotal * commissionRate)
		case coupon.IsMerchantIssued():
			out[i] = roundCurrency(lineTotal * commissionRate)
		default:
			discount := math.Min(lineSubtotal*coupon.DiscountPct, remainingCap)
			remainingCap -= discount
			out[i] = roundCurrency(lineSubtotal*commissionRate) - discount
		}
	}
	return out
}

// ItemCommission is ItemCommissions for a single line; the full cap is
// available to it.
func ItemCommission(item *entity.OrderItem, commissionRate float64, coupon *entity.Coupon) float64 {
	return ItemCommissions([]*entity.OrderItem{item}, commissionRate, coupon)[0]
}

// ItemMerchantProfit is what the merchant keeps for one item after the
// platform commission. Mirrors the merchant side of ComputeProfit at line
// granularity: under a system coupon the merchant is made whole to the line
// subtotal minus the nominal commission; the platform-funded discount already
// came out of the commission and is never re-credited. Under a merchant
// coupon the merchant funds the discount, so the share comes off the
// post-discount line total.
func ItemMerchantProfit(item *entity.OrderItem, commissionRate float64, coupon *entity.Coupon) float64 {
	lineSubtotal := item.LineSubtotal()

	switch {
	case coupon == nil:
		return lineSubtotal - roundCurrency(lineSubtotal*commissionRate)
	case coupon.IsMerchantIssued():
		lineTotal := item.Price * float64(item.Quantity)
		return lineTotal - roundCurrency(lineTotal*commissionRate)
	default:
		return lineSubtotal - roundCurrency(lineSubtotal*commissionRate)
	}
}
