package voucher

import (
	"context"

	"courtbook/internal/domain"
)

type VoucherRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Voucher, error)
	CountUserUsages(ctx context.Context, voucherID, userID int64) (int64, error)
}
