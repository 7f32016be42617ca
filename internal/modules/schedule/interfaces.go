package schedule

import (
	"context"
	"time"

	"courtbook/internal/domain"
)

// PriceSlotRepository is the read side of the admin-maintained price schedule.
type PriceSlotRepository interface {
	ListActiveForDay(ctx context.Context, facilityID int64, courtType string, day time.Weekday) ([]domain.PriceSlot, error)
}
