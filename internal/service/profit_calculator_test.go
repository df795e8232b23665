package service

import (
	"testing"

	"fitmarket-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func systemCoupon(pct, cap float64) *entity.Coupon {
	return &entity.Coupon{Type: entity.CouponTypeSystem, DiscountPct: pct, MaxDiscount: cap}
}

func merchantCoupon(pct, cap float64) *entity.Coupon {
	return &entity.Coupon{Type: entity.CouponTypeGymOwner, DiscountPct: pct, MaxDiscount: cap}
}

func TestComputeProfit(t *testing.T) {
	tests := []struct {
		name         string
		subtotal     float64
		total        float64
		rate         float64
		coupon       *entity.Coupon
		wantSystem   float64
		wantMerchant float64
	}{
		{
			name:     "no coupon",
			subtotal: 1_000_000, total: 1_000_000, rate: 0.10,
			wantSystem: 100_000, wantMerchant: 900_000,
		},
		{
			name:     "system coupon capped, commission fully consumed",
			subtotal: 1_000_000, total: 900_000, rate: 0.10,
			coupon:     systemCoupon(0.20, 100_000),
			wantSystem: 0, wantMerchant: 900_000,
		},
		{
			name:     "system coupon pushes platform negative",
			subtotal: 500_000, total: 400_000, rate: 0.10,
			coupon:     systemCoupon(0.20, 100_000),
			wantSystem: -50_000, wantMerchant: 450_000,
		},
		{
			name:     "merchant coupon commissions post-discount total",
			subtotal: 1_000_000, total: 950_000, rate: 0.10,
			coupon:     merchantCoupon(0.10, 50_000),
			wantSystem: 95_000, wantMerchant: 855_000,
		},
		{
			name:     "commission rounds to whole currency",
			subtotal: 99_999, total: 99_999, rate: 0.105,
			wantSystem: 10_500, wantMerchant: 89_499,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeProfit(tt.subtotal, tt.total, tt.rate, tt.coupon)
			assert.Equal(t, tt.wantSystem, got.SystemProfit, "system profit")
			assert.Equal(t, tt.wantMerchant, got.MerchantProfit, "merchant profit")
		})
	}
}

func TestComputeProfit_SharesCoverTotal(t *testing.T) {
	// Whatever the coupon type, the two shares must account for the money
	// actually paid. A system discount is consumed exactly once.
	cases := []struct {
		subtotal float64
		coupon   *entity.Coupon
	}{
		{1_000_000, nil},
		{1_000_000, systemCoupon(0.20, 100_000)},
		{500_000, systemCoupon(0.20, 100_000)},
		{750_000, merchantCoupon(0.15, 80_000)},
	}

	for _, c := range cases {
		discount := couponDiscount(c.subtotal, c.coupon)
		total := c.subtotal - discount
		got := ComputeProfit(c.subtotal, total, 0.10, c.coupon)
		assert.InDelta(t, total, got.SystemProfit+got.MerchantProfit, 0.001,
			"subtotal=%v coupon=%+v", c.subtotal, c.coupon)
	}
}

func TestItemCommission(t *testing.T) {
	original := 500_000.0
	item := &entity.OrderItem{
		Price:         450_000, // post-discount unit price
		OriginalPrice: &original,
		Quantity:      2,
	}

	t.Run("no coupon uses original line price", func(t *testing.T) {
		got := ItemCommission(item, 0.10, nil)
		assert.Equal(t, 100_000.0, got)
	})

	t.Run("merchant coupon uses discounted line price", func(t *testing.T) {
		got := ItemCommission(item, 0.10, merchantCoupon(0.10, 200_000))
		assert.Equal(t, 90_000.0, got)
	})

	t.Run("system coupon subtracts line discount from commission", func(t *testing.T) {
		got := ItemCommission(item, 0.10, systemCoupon(0.20, 150_000))
		// round(1,000,000 * 0.10) - min(1,000,000 * 0.20, 150,000)
		assert.Equal(t, -50_000.0, got)
	})
}

func TestItemCommissions_CapSharedAcrossItems(t *testing.T) {
	one := 1_000_000.0
	items := []*entity.OrderItem{
		{Price: 950_000, OriginalPrice: &one, Quantity: 1},
		{Price: 950_000, OriginalPrice: &one, Quantity: 1},
	}
	coupon := systemCoupon(0.20, 100_000)

	got := ItemCommissions(items, 0.10, coupon)

	// The first line exhausts the order cap; the second discounts nothing.
	assert.Equal(t, 0.0, got[0])
	assert.Equal(t, 100_000.0, got[1])

	// Summed, the per-line figures agree with the order-level commission.
	order := ComputeProfit(2_000_000, 1_900_000, 0.10, coupon)
	assert.InDelta(t, order.SystemProfit, got[0]+got[1], 0.001)
}

func TestItemMerchantProfit(t *testing.T) {
	item := &entity.OrderItem{Price: 1_200_000, Quantity: 1}

	got := ItemMerchantProfit(item, 0.10, nil)
	assert.Equal(t, 1_080_000.0, got)

	// System coupon: merchant is made whole to the pre-discount line amount
	// minus the nominal commission. The discount came out of the commission;
	// it is never credited to the merchant.
	got = ItemMerchantProfit(item, 0.10, systemCoupon(0.20, 100_000))
	assert.Equal(t, 1_080_000.0, got)

	// Merchant coupon: the merchant funds the discount, so the share comes
	// off the post-discount line total.
	original := 1_200_000.0
	discounted := &entity.OrderItem{Price: 1_100_000, OriginalPrice: &original, Quantity: 1}
	got = ItemMerchantProfit(discounted, 0.10, merchantCoupon(0.10, 100_000))
	assert.Equal(t, 990_000.0, got)
}

func TestItemPath_SharesCoverPayment(t *testing.T) {
	// An order of one line, subtotal 500,000 with a 20% system coupon capped
	// at 100,000 and a 10% rate: the customer pays 400,000 and the platform
	// subsidizes 50,000. Credit plus commission must account for exactly the
	// money paid, same as the order-level math.
	original := 500_000.0
	item := &entity.OrderItem{Price: 400_000, OriginalPrice: &original, Quantity: 1}
	coupon := systemCoupon(0.20, 100_000)

	commission := ItemCommission(item, 0.10, coupon)
	merchant := ItemMerchantProfit(item, 0.10, coupon)

	assert.Equal(t, -50_000.0, commission)
	assert.Equal(t, 450_000.0, merchant)
	assert.InDelta(t, 400_000.0, commission+merchant, 0.001, "shares must sum to the amount paid")

	order := ComputeProfit(500_000, 400_000, 0.10, coupon)
	assert.Equal(t, order.MerchantProfit, merchant)
	assert.Equal(t, order.SystemProfit, commission)
}
