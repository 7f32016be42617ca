package booking

import (
	"context"
	"time"

	"courtbook/internal/domain"
	"courtbook/internal/modules/voucher"
	"courtbook/internal/repository"
)

// BookingStore is the persistence side of the transaction manager.
// CreateWithNoOverlap must be atomic: the overlap re-check, the booking
// insert, the voucher usage and the attached order either all commit or
// nothing does.
type BookingStore interface {
	CreateWithNoOverlap(ctx context.Context, b *domain.Booking, vc *repository.VoucherCommit, lines []repository.OrderLine) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, from domain.BookingStatus, reason string) error
}

type CourtReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Court, error)
}

// ScheduleResolver is implemented by the schedule service.
type ScheduleResolver interface {
	Resolve(ctx context.Context, facilityID int64, courtType string, date time.Time) ([]domain.PriceSlot, error)
}

// VoucherEvaluator is implemented by the voucher service.
type VoucherEvaluator interface {
	Evaluate(ctx context.Context, code string, userID int64, orderAmount float64, scope domain.VoucherScope) (*voucher.Evaluation, error)
}
