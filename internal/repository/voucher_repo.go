package repository

import (
	"context"

	"courtbook/internal/domain"

	"gorm.io/gorm"
)

type VoucherRepository struct {
	db *gorm.DB
}

func NewVoucherRepository(db *gorm.DB) *VoucherRepository {
	return &VoucherRepository{db: db}
}

func (r *VoucherRepository) GetByCode(ctx context.Context, code string) (*domain.Voucher, error) {
	var v domain.Voucher
	if err := r.db.WithContext(ctx).First(&v, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// CountUserUsages counts prior redemptions of a voucher by one user from the
// append-only usage ledger.
func (r *VoucherRepository) CountUserUsages(ctx context.Context, voucherID, userID int64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&domain.VoucherUsage{}).
		Where("voucher_id = ? AND user_id = ?", voucherID, userID).
		Count(&cnt).Error
	if err != nil {
		return 0, err
	}
	return cnt, nil
}
