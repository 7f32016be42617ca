package availability

import (
	"context"
	"time"

	"courtbook/internal/domain"
)

type CourtReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Court, error)
}

type BookingReader interface {
	ListForCourtDate(ctx context.Context, courtID int64, date time.Time) ([]domain.Booking, error)
}

// ScheduleResolver is implemented by the schedule service.
type ScheduleResolver interface {
	Resolve(ctx context.Context, facilityID int64, courtType string, date time.Time) ([]domain.PriceSlot, error)
	Quote(ctx context.Context, facilityID int64, courtType string, date time.Time, req domain.TimeInterval) (float64, error)
}
