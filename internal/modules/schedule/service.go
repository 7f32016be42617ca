package schedule

import (
	"context"
	"sort"
	"time"

	"courtbook/internal/domain"
)

type Service struct {
	slots PriceSlotRepository
}

func NewService(slots PriceSlotRepository) *Service {
	return &Service{slots: slots}
}

// Resolve returns the active price slots for a facility/court type on a date,
// ordered by start time. An empty schedule means "unbookable", not "free" —
// callers must not treat it as a day with no charges.
func (s *Service) Resolve(ctx context.Context, facilityID int64, courtType string, date time.Time) ([]domain.PriceSlot, error) {
	return s.slots.ListActiveForDay(ctx, facilityID, courtType, date.Weekday())
}

// Quote resolves the schedule and prices the requested range.
func (s *Service) Quote(ctx context.Context, facilityID int64, courtType string, date time.Time, req domain.TimeInterval) (float64, error) {
	slots, err := s.Resolve(ctx, facilityID, courtType, date)
	if err != nil {
		return 0, err
	}
	return PriceForRange(req, slots)
}

// PriceForRange sums the flat rate of every slot overlapping the requested
// range. Slots are fixed-rate buckets: a request covering part of a bucket is
// still charged the whole bucket, and accidental admin-side slot overlaps
// resolve deterministically by summing all matching slots. No slot overlapping
// the request means the price is undefined.
func PriceForRange(req domain.TimeInterval, slots []domain.PriceSlot) (float64, error) {
	var total float64
	matched := false
	for _, sl := range slots {
		if sl.Interval().Overlaps(req) {
			total += sl.Price
			matched = true
		}
	}
	if !matched {
		return 0, ErrNoPriceAvailable
	}
	return total, nil
}

// Covers reports whether the union of the slots fully covers the requested
// range. A request spanning a gap between slots has no defined price there and
// must be rejected even if every overlapping slot is free.
func Covers(req domain.TimeInterval, slots []domain.PriceSlot) bool {
	overlapping := make([]domain.TimeInterval, 0, len(slots))
	for _, sl := range slots {
		if sl.Interval().Overlaps(req) {
			overlapping = append(overlapping, sl.Interval())
		}
	}
	if len(overlapping) == 0 {
		return false
	}
	sort.Slice(overlapping, func(i, j int) bool { return overlapping[i].Start < overlapping[j].Start })

	cur := req.Start
	for _, iv := range overlapping {
		if iv.Start > cur {
			return false
		}
		if iv.End > cur {
			cur = iv.End
		}
		if cur >= req.End {
			return true
		}
	}
	return cur >= req.End
}
