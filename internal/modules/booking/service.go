package booking

import (
	"context"
	"errors"
	"time"

	"courtbook/internal/domain"
	"courtbook/internal/modules/schedule"
	"courtbook/internal/modules/voucher"
	"courtbook/internal/repository"

	"gorm.io/gorm"
)

// Config holds the business knobs of the transaction manager.
type Config struct {
	// CancellationBuffer is the minimum lead time before a booking's start at
	// which cancellation is still permitted.
	CancellationBuffer time.Duration
	// ServiceFee is a flat fee added to every booking total.
	ServiceFee float64
}

type Service struct {
	bookings BookingStore
	courts   CourtReader
	schedule ScheduleResolver
	vouchers VoucherEvaluator
	cfg      Config

	now func() time.Time
}

func NewService(bookings BookingStore, courts CourtReader, sched ScheduleResolver, vouchers VoucherEvaluator, cfg Config) *Service {
	return &Service{
		bookings: bookings,
		courts:   courts,
		schedule: sched,
		vouchers: vouchers,
		cfg:      cfg,
		now:      time.Now,
	}
}

// CreateBooking is the sole mutating entry point. Any availability the user
// saw earlier is advisory; the store re-verifies overlap under lock, so two
// concurrent requests for the same slot end with exactly one committed
// booking. Price, discount and order line prices are all computed from
// server-side data.
func (s *Service) CreateBooking(ctx context.Context, userID int64, req CreateBookingRequest) (*domain.Booking, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrValidation
	}
	date = domain.DateOnly(date)

	iv, err := parseInterval(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	if !iv.Start.At(date).After(s.now()) {
		return nil, ErrValidation
	}

	court, err := s.courts.GetByID(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}
	if court.Status != domain.CourtAvailable {
		return nil, ErrCourtUnavailable
	}

	slots, err := s.schedule.Resolve(ctx, court.FacilityID, court.CourtType, date)
	if err != nil {
		return nil, err
	}
	// A range the schedule does not fully cover has no defined price there
	// and must not be bookable.
	if !schedule.Covers(iv, slots) {
		return nil, schedule.ErrNoPriceAvailable
	}
	courtPrice, err := schedule.PriceForRange(iv, slots)
	if err != nil {
		return nil, err
	}

	var discount float64
	var vc *repository.VoucherCommit
	if req.VoucherCode != "" {
		eval, err := s.vouchers.Evaluate(ctx, req.VoucherCode, userID, courtPrice, domain.VoucherScopeBooking)
		if err != nil {
			return nil, err
		}
		discount = eval.Discount
		vc = &repository.VoucherCommit{VoucherID: eval.Voucher.ID, Discount: discount}
	}

	total := courtPrice + s.cfg.ServiceFee - discount
	if total < 0 {
		total = 0
	}

	b := &domain.Booking{
		UserID:         userID,
		CourtID:        court.ID,
		BookingDate:    date,
		StartMin:       iv.Start,
		EndMin:         iv.End,
		DurationMin:    iv.DurationMinutes(),
		CourtPrice:     courtPrice,
		ServiceFee:     s.cfg.ServiceFee,
		DiscountAmount: discount,
		TotalPrice:     total,
		Status:         domain.BookingConfirmed,
		PaymentStatus:  domain.PaymentUnpaid,
	}

	var lines []repository.OrderLine
	for _, ln := range req.OrderLines {
		lines = append(lines, repository.OrderLine{ProductID: ln.ProductID, Quantity: ln.Quantity})
	}

	if err := s.bookings.CreateWithNoOverlap(ctx, b, vc, lines); err != nil {
		switch {
		case errors.Is(err, repository.ErrOverlap):
			return nil, ErrSlotTaken
		case errors.Is(err, repository.ErrBusy):
			return nil, ErrBusy
		case errors.Is(err, repository.ErrVoucherExhausted):
			return nil, voucher.ErrLimitReached
		case errors.Is(err, repository.ErrVoucherPerUserLimit):
			return nil, voucher.ErrPerUserLimitReached
		}
		return nil, err
	}
	return b, nil
}

// CancelBooking moves a pending/confirmed booking to cancelled, provided the
// caller owns it (or is staff) and the cancellation buffer has not closed.
// The row is kept for audit and drops out of all overlap checks.
func (s *Service) CancelBooking(ctx context.Context, userID int64, role domain.Role, bookingID int64, reason string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if b.UserID != userID && role != domain.RoleAdmin && role != domain.RoleStaff {
		return nil, ErrForbidden
	}

	if !b.Status.CanTransitionTo(domain.BookingCancelled) {
		return nil, ErrInvalidStatusTransition
	}

	if !s.now().Add(s.cfg.CancellationBuffer).Before(b.StartsAt()) {
		return nil, ErrCancellationWindowClosed
	}

	if err := s.bookings.Cancel(ctx, bookingID, b.Status, reason); err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return nil, ErrInvalidStatusTransition
		}
		return nil, err
	}
	return s.bookings.GetByID(ctx, bookingID)
}

// Transition applies one step of the booking lifecycle (confirm, check-in,
// check-out). Moves not in the transition table are rejected.
func (s *Service) Transition(ctx context.Context, bookingID int64, to domain.BookingStatus) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !b.Status.CanTransitionTo(to) {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.bookings.UpdateStatus(ctx, bookingID, b.Status, to); err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return nil, ErrInvalidStatusTransition
		}
		return nil, err
	}
	return s.bookings.GetByID(ctx, bookingID)
}

func (s *Service) CheckIn(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	return s.Transition(ctx, bookingID, domain.BookingPlaying)
}

func (s *Service) CheckOut(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	return s.Transition(ctx, bookingID, domain.BookingCompleted)
}

func (s *Service) GetMyBookings(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID, limit, offset)
}

func parseInterval(startStr, endStr string) (domain.TimeInterval, error) {
	start, err := domain.ParseTimeOfDay(startStr)
	if err != nil {
		return domain.TimeInterval{}, domain.ErrInvalidInterval
	}
	end, err := domain.ParseTimeOfDay(endStr)
	if err != nil {
		return domain.TimeInterval{}, domain.ErrInvalidInterval
	}
	return domain.NewTimeInterval(start, end)
}
