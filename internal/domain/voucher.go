package domain

import "time"

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// VoucherScope restricts which transaction types a voucher may discount.
type VoucherScope string

const (
	VoucherScopeAll     VoucherScope = "all"
	VoucherScopeBooking VoucherScope = "booking"
	VoucherScopeProduct VoucherScope = "product"
)

type Voucher struct {
	ID            int64        `json:"id" gorm:"primaryKey"`
	Code          string       `json:"code" gorm:"uniqueIndex" validate:"required"`
	Name          string       `json:"name"`
	DiscountType  DiscountType `json:"discount_type"`
	DiscountValue float64      `json:"discount_value" validate:"gte=0"`

	MinOrderAmount *float64     `json:"min_order_amount,omitempty"`
	MaxDiscount    *float64     `json:"max_discount,omitempty"`
	ApplicableFor  VoucherScope `json:"applicable_for"`

	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	// UsageLimit nil means unlimited global redemptions. UsedCount is only
	// incremented inside a successful booking/order transaction.
	UsageLimit        *int `json:"usage_limit,omitempty"`
	UsageLimitPerUser int  `json:"usage_limit_per_user"`
	UsedCount         int  `json:"used_count"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppliesTo reports whether the voucher may discount the given scope.
func (v *Voucher) AppliesTo(scope VoucherScope) bool {
	return v.ApplicableFor == VoucherScopeAll || v.ApplicableFor == scope
}

// Discount computes the bounded discount for an order amount. Percentage
// discounts are clamped to MaxDiscount when set; fixed discounts never exceed
// the order amount itself.
func (v *Voucher) Discount(orderAmount float64) float64 {
	switch v.DiscountType {
	case DiscountPercentage:
		d := orderAmount * v.DiscountValue / 100
		if v.MaxDiscount != nil && d > *v.MaxDiscount {
			d = *v.MaxDiscount
		}
		return d
	case DiscountFixed:
		if v.DiscountValue > orderAmount {
			return orderAmount
		}
		return v.DiscountValue
	default:
		return 0
	}
}

// VoucherUsage is an append-only ledger row; per-user caps are enforced by
// counting these.
type VoucherUsage struct {
	ID              int64     `json:"id" gorm:"primaryKey"`
	VoucherID       int64     `json:"voucher_id" gorm:"index"`
	UserID          int64     `json:"user_id" gorm:"index"`
	BookingID       *int64    `json:"booking_id,omitempty"`
	OrderID         *int64    `json:"order_id,omitempty"`
	DiscountApplied float64   `json:"discount_applied"`
	UsedAt          time.Time `json:"used_at"`
}
