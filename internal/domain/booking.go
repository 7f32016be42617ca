package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingPlaying   BookingStatus = "playing"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// bookingTransitions is the closed set of legal status moves. Anything not
// listed here is rejected.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingPlaying, BookingCancelled},
	BookingPlaying:   {BookingCompleted},
}

func (s BookingStatus) CanTransitionTo(to BookingStatus) bool {
	for _, next := range bookingTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Booking reserves a court for [StartMin, EndMin) on BookingDate. Bookings are
// never deleted; cancellation keeps the row for audit and excludes it from
// overlap checks.
type Booking struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	UserID      int64     `json:"user_id" gorm:"index" validate:"required"`
	CourtID     int64     `json:"court_id" gorm:"index" validate:"required"`
	BookingDate time.Time `json:"booking_date" gorm:"index"`
	StartMin    TimeOfDay `json:"start_time" gorm:"column:start_min"`
	EndMin      TimeOfDay `json:"end_time" gorm:"column:end_min"`
	DurationMin int       `json:"duration_minutes"`

	CourtPrice     float64 `json:"court_price" validate:"gte=0"`
	ServiceFee     float64 `json:"service_fee"`
	DiscountAmount float64 `json:"discount_amount"`
	TotalPrice     float64 `json:"total_price"`

	Status        BookingStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`

	CancellationReason string     `json:"cancellation_reason,omitempty" gorm:"type:text"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Court *Court `json:"court,omitempty" gorm:"foreignKey:CourtID"`
}

func (b *Booking) Interval() TimeInterval {
	return TimeInterval{Start: b.StartMin, End: b.EndMin}
}

// StartsAt is the wall-clock start of the booking.
func (b *Booking) StartsAt() time.Time {
	return b.StartMin.At(b.BookingDate)
}
