package availability

import (
	"context"
	"errors"
	"time"

	"courtbook/internal/domain"
	"courtbook/internal/modules/schedule"

	"gorm.io/gorm"
)

type Service struct {
	courts   CourtReader
	bookings BookingReader
	resolver ScheduleResolver
}

func NewService(courts CourtReader, bookings BookingReader, resolver ScheduleResolver) *Service {
	return &Service{courts: courts, bookings: bookings, resolver: resolver}
}

// GetAvailability builds the advisory day view for a court: one record per
// schedule slot, unavailable iff any non-cancelled booking overlaps it. This
// read takes no locks; CreateBooking re-verifies before committing.
func (s *Service) GetAvailability(ctx context.Context, facilityID, courtID int64, date time.Time) (*DayAvailability, error) {
	court, err := s.courts.GetByID(ctx, courtID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}
	if court.FacilityID != facilityID {
		return nil, ErrCourtNotFound
	}

	slots, err := s.resolver.Resolve(ctx, facilityID, court.CourtType, date)
	if err != nil {
		return nil, err
	}

	booked, err := s.bookings.ListForCourtDate(ctx, courtID, date)
	if err != nil {
		return nil, err
	}

	underMaintenance := court.Status == domain.CourtMaintenance

	out := &DayAvailability{
		CourtID: courtID,
		Date:    date.Format("2006-01-02"),
		Slots:   make([]SlotAvailability, 0, len(slots)),
	}
	for _, sl := range slots {
		free := !underMaintenance && !anyOverlap(sl.Interval(), booked)
		out.Slots = append(out.Slots, SlotAvailability{
			Start:       sl.StartMin.String(),
			End:         sl.EndMin.String(),
			Price:       sl.Price,
			IsPeakHour:  sl.IsPeakHour,
			IsAvailable: free,
		})
	}
	return out, nil
}

// IsRangeAvailable answers "is 14:00-16:00 free?" for a custom range. The
// range must be fully covered by schedule slots (a gap has no price and is
// unbookable), every overlapping slot must be free and no booking may overlap
// the range directly.
func (s *Service) IsRangeAvailable(ctx context.Context, facilityID, courtID int64, date time.Time, req domain.TimeInterval) (bool, error) {
	court, err := s.courts.GetByID(ctx, courtID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrCourtNotFound
		}
		return false, err
	}
	if court.FacilityID != facilityID {
		return false, ErrCourtNotFound
	}
	if court.Status == domain.CourtMaintenance {
		return false, nil
	}

	slots, err := s.resolver.Resolve(ctx, facilityID, court.CourtType, date)
	if err != nil {
		return false, err
	}
	if !schedule.Covers(req, slots) {
		return false, nil
	}

	booked, err := s.bookings.ListForCourtDate(ctx, courtID, date)
	if err != nil {
		return false, err
	}
	for _, sl := range slots {
		if !sl.Interval().Overlaps(req) {
			continue
		}
		if anyOverlap(sl.Interval(), booked) {
			return false, nil
		}
	}
	return !anyOverlap(req, booked), nil
}

// QuotePrice prices a prospective range without touching bookings. Read-only;
// CreateBooking recomputes the price server-side at commit.
func (s *Service) QuotePrice(ctx context.Context, facilityID int64, courtType string, date time.Time, req domain.TimeInterval) (float64, error) {
	return s.resolver.Quote(ctx, facilityID, courtType, date, req)
}

func anyOverlap(iv domain.TimeInterval, bookings []domain.Booking) bool {
	for i := range bookings {
		if bookings[i].Interval().Overlaps(iv) {
			return true
		}
	}
	return false
}
