package repository

import (
	"context"

	"courtbook/internal/domain"

	"gorm.io/gorm"
)

type CourtRepository struct {
	db *gorm.DB
}

func NewCourtRepository(db *gorm.DB) *CourtRepository {
	return &CourtRepository{db: db}
}

func (r *CourtRepository) GetByID(ctx context.Context, id int64) (*domain.Court, error) {
	var c domain.Court
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CourtRepository) ListByFacility(ctx context.Context, facilityID int64) ([]domain.Court, error) {
	var out []domain.Court
	err := r.db.WithContext(ctx).
		Where("facility_id = ?", facilityID).
		Order("name ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
