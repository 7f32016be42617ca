package repository

import (
	"context"
	"errors"
	"time"

	"courtbook/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrOverlap             = errors.New("booking slot overlap")
	ErrBusy                = errors.New("booking lock contention")
	ErrStaleStatus         = errors.New("booking status changed concurrently")
	ErrVoucherExhausted    = errors.New("voucher global usage limit reached")
	ErrVoucherPerUserLimit = errors.New("voucher per-user usage limit reached")
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// VoucherCommit carries the voucher the service already evaluated; limits are
// re-checked under lock inside the transaction.
type VoucherCommit struct {
	VoucherID int64
	Discount  float64
}

// OrderLine is a requested retail line; unit prices are resolved from the
// product table inside the transaction, never taken from the client.
type OrderLine struct {
	ProductID int64
	Quantity  int
}

// CreateWithNoOverlap persists a booking, its voucher usage and an optional
// attached order as one transaction. Candidate overlapping rows are locked
// first so two concurrent requests for the same court/date serialize; whichever
// commits second sees the winner's row and gets ErrOverlap. On Postgres the
// bookings exclusion constraint backstops the check (see database.Migrate).
func (r *BookingRepository) CreateWithNoOverlap(ctx context.Context, b *domain.Booking, vc *VoucherCommit, lines []OrderLine) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.Booking
		err := tx.Model(&domain.Booking{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("court_id = ? AND booking_date = ? AND status <> ?", b.CourtID, b.BookingDate, domain.BookingCancelled).
			Where("start_min < ? AND end_min > ?", int(b.EndMin), int(b.StartMin)).
			Take(&existing).Error
		if err == nil {
			return ErrOverlap
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return translateBookingConstraint(err)
		}

		if err := tx.Create(b).Error; err != nil {
			return translateBookingConstraint(err)
		}

		if vc != nil {
			if err := commitVoucherUsage(tx, b, vc); err != nil {
				return err
			}
		}

		if len(lines) > 0 {
			if err := createAttachedOrder(tx, b, lines); err != nil {
				return err
			}
		}
		return nil
	})
}

func commitVoucherUsage(tx *gorm.DB, b *domain.Booking, vc *VoucherCommit) error {
	var v domain.Voucher
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&v, "id = ?", vc.VoucherID).Error; err != nil {
		return err
	}

	if v.UsageLimit != nil && v.UsedCount >= *v.UsageLimit {
		return ErrVoucherExhausted
	}

	var used int64
	if err := tx.Model(&domain.VoucherUsage{}).
		Where("voucher_id = ? AND user_id = ?", v.ID, b.UserID).
		Count(&used).Error; err != nil {
		return err
	}
	if v.UsageLimitPerUser > 0 && used >= int64(v.UsageLimitPerUser) {
		return ErrVoucherPerUserLimit
	}

	usage := domain.VoucherUsage{
		VoucherID:       v.ID,
		UserID:          b.UserID,
		BookingID:       &b.ID,
		DiscountApplied: vc.Discount,
		UsedAt:          time.Now().UTC(),
	}
	if err := tx.Create(&usage).Error; err != nil {
		return err
	}

	return tx.Model(&domain.Voucher{}).
		Where("id = ?", v.ID).
		UpdateColumn("used_count", gorm.Expr("used_count + ?", 1)).Error
}

func createAttachedOrder(tx *gorm.DB, b *domain.Booking, lines []OrderLine) error {
	order := domain.Order{
		UserID:    b.UserID,
		BookingID: &b.ID,
		Status:    domain.OrderPending,
	}

	details := make([]domain.OrderDetail, 0, len(lines))
	var total float64
	for _, ln := range lines {
		var p domain.Product
		if err := tx.First(&p, "id = ?", ln.ProductID).Error; err != nil {
			return err
		}
		sub := p.Price * float64(ln.Quantity)
		details = append(details, domain.OrderDetail{
			ProductID: p.ID,
			Quantity:  ln.Quantity,
			UnitPrice: p.Price,
			Subtotal:  sub,
		})
		total += sub
	}
	order.TotalAmount = total

	if err := tx.Create(&order).Error; err != nil {
		return err
	}
	for i := range details {
		details[i].OrderID = order.ID
	}
	return tx.Create(&details).Error
}

// translateBookingConstraint maps the Postgres no-overlap constraint violation
// to ErrOverlap so a loser of the insert race gets the same answer as a loser
// of the lock race. Lock acquisition timeouts become ErrBusy.
func translateBookingConstraint(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		// 23P01 = exclusion_violation, 23505 = unique_violation
		case pgErr.Code == "23P01",
			pgErr.Code == "23505" && pgErr.ConstraintName == "bookings_no_overlap":
			return ErrOverlap
		// 55P03 = lock_not_available, 40001 = serialization_failure
		case pgErr.Code == "55P03", pgErr.Code == "40001":
			return ErrBusy
		}
	}
	return err
}

// ListForCourtDate returns the non-cancelled bookings for a court on a calendar
// day, ordered by start time.
func (r *BookingRepository) ListForCourtDate(ctx context.Context, courtID int64, date time.Time) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Where("court_id = ? AND booking_date = ? AND status <> ?", courtID, domain.DateOnly(date), domain.BookingCancelled).
		Order("start_min ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	if limit <= 0 {
		limit = 20
	}
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Court").
		Where("user_id = ?", userID).
		Order("booking_date DESC, start_min DESC").
		Limit(limit).Offset(offset).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus is a compare-and-swap: the write applies only while the row is
// still in the status the caller validated against. A stale move (the row was
// cancelled or advanced by a concurrent writer between read and write) touches
// zero rows and returns ErrStaleStatus instead of resurrecting the old status.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleStatus
	}
	return nil
}

// Cancel carries the same guard: only the status the caller saw may be
// cancelled, so a cancel racing another transition cannot clobber it.
func (r *BookingRepository) Cancel(ctx context.Context, id int64, from domain.BookingStatus, reason string) error {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{
			"status":              domain.BookingCancelled,
			"cancellation_reason": reason,
			"cancelled_at":        &now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleStatus
	}
	return nil
}
