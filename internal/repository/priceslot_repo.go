package repository

import (
	"context"
	"time"

	"courtbook/internal/domain"

	"gorm.io/gorm"
)

type PriceSlotRepository struct {
	db *gorm.DB
}

func NewPriceSlotRepository(db *gorm.DB) *PriceSlotRepository {
	return &PriceSlotRepository{db: db}
}

// ListActiveForDay returns the active price slots for a facility and court type
// that apply on the given weekday (day_of_week NULL means every day), ordered
// by start time. An empty result is not an error; it means the schedule is not
// configured and nothing is bookable.
func (r *PriceSlotRepository) ListActiveForDay(ctx context.Context, facilityID int64, courtType string, day time.Weekday) ([]domain.PriceSlot, error) {
	var out []domain.PriceSlot
	err := r.db.WithContext(ctx).
		Where("facility_id = ? AND court_type = ? AND is_active = ?", facilityID, courtType, true).
		Where("day_of_week IS NULL OR day_of_week = ?", int(day)).
		Order("start_min ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
