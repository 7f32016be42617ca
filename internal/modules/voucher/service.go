package voucher

import (
	"context"
	"errors"
	"time"

	"courtbook/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	vouchers VoucherRepository

	now func() time.Time
}

func NewService(vouchers VoucherRepository) *Service {
	return &Service{vouchers: vouchers, now: time.Now}
}

// Evaluation is the advisory result of checking a voucher. The global usage
// limit is NOT checked here; it is re-verified under lock inside the booking
// transaction, where over-redemption races can actually be prevented.
type Evaluation struct {
	Voucher  *domain.Voucher
	Discount float64
}

// Evaluate validates a voucher code for a user and order amount, short-
// circuiting on the first failed check, and computes the bounded discount.
func (s *Service) Evaluate(ctx context.Context, code string, userID int64, orderAmount float64, scope domain.VoucherScope) (*Evaluation, error) {
	v, err := s.vouchers.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !v.IsActive {
		return nil, ErrNotFound
	}

	now := s.now()
	if now.Before(v.StartDate) {
		return nil, ErrNotYetStarted
	}
	if now.After(v.EndDate) {
		return nil, ErrExpired
	}

	if !v.AppliesTo(scope) {
		return nil, ErrNotApplicable
	}

	if v.MinOrderAmount != nil && orderAmount < *v.MinOrderAmount {
		return nil, ErrBelowMinimum
	}

	if v.UsageLimitPerUser > 0 {
		used, err := s.vouchers.CountUserUsages(ctx, v.ID, userID)
		if err != nil {
			return nil, err
		}
		if used >= int64(v.UsageLimitPerUser) {
			return nil, ErrPerUserLimitReached
		}
	}

	return &Evaluation{Voucher: v, Discount: v.Discount(orderAmount)}, nil
}
