package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseTimeOfDay(t *testing.T) {
	got, err := ParseTimeOfDay("17:30")
	assert.NoError(t, err)
	assert.Equal(t, TimeOfDay(17*60+30), got)
	assert.Equal(t, "17:30", got.String())

	_, err = ParseTimeOfDay("25:00")
	assert.Error(t, err)
}

func TestNewTimeInterval_RejectsEmptyOrReversed(t *testing.T) {
	_, err := NewTimeInterval(600, 600)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = NewTimeInterval(660, 600)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	iv, err := NewTimeInterval(600, 660)
	assert.NoError(t, err)
	assert.Equal(t, 60, iv.DurationMinutes())
}

func TestTimeInterval_Overlaps(t *testing.T) {
	base := TimeInterval{Start: 600, End: 720} // 10:00-12:00

	cases := []struct {
		name  string
		other TimeInterval
		want  bool
	}{
		{"identical", TimeInterval{600, 720}, true},
		{"contained", TimeInterval{630, 690}, true},
		{"partial left", TimeInterval{540, 630}, true},
		{"partial right", TimeInterval{690, 780}, true},
		{"touching before", TimeInterval{480, 600}, false},
		{"touching after", TimeInterval{720, 780}, false},
		{"disjoint", TimeInterval{780, 840}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, base.Overlaps(tc.other))
			assert.Equal(t, tc.want, tc.other.Overlaps(base))
		})
	}
}

func TestTimeInterval_Contains(t *testing.T) {
	iv := TimeInterval{Start: 600, End: 720}
	assert.True(t, iv.Contains(600))
	assert.True(t, iv.Contains(719))
	assert.False(t, iv.Contains(720)) // half-open
	assert.False(t, iv.Contains(599))
}

func TestTimeOfDay_At(t *testing.T) {
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	at := TimeOfDay(17 * 60).At(day)
	assert.Equal(t, time.Date(2024, 6, 1, 17, 0, 0, 0, time.UTC), at)
}

func TestBookingStatus_Transitions(t *testing.T) {
	assert.True(t, BookingPending.CanTransitionTo(BookingConfirmed))
	assert.True(t, BookingPending.CanTransitionTo(BookingCancelled))
	assert.True(t, BookingConfirmed.CanTransitionTo(BookingPlaying))
	assert.True(t, BookingConfirmed.CanTransitionTo(BookingCancelled))
	assert.True(t, BookingPlaying.CanTransitionTo(BookingCompleted))

	assert.False(t, BookingPlaying.CanTransitionTo(BookingCancelled))
	assert.False(t, BookingCompleted.CanTransitionTo(BookingPlaying))
	assert.False(t, BookingCancelled.CanTransitionTo(BookingConfirmed))
	assert.False(t, BookingPending.CanTransitionTo(BookingPlaying))
}

func TestVoucher_Discount(t *testing.T) {
	maxD := 15000.0
	pct := &Voucher{DiscountType: DiscountPercentage, DiscountValue: 10, MaxDiscount: &maxD}
	assert.Equal(t, 10000.0, pct.Discount(100000))
	assert.Equal(t, 15000.0, pct.Discount(300000)) // clamped to max

	fixed := &Voucher{DiscountType: DiscountFixed, DiscountValue: 20000}
	assert.Equal(t, 20000.0, fixed.Discount(100000))
	assert.Equal(t, 5000.0, fixed.Discount(5000)) // never exceeds order amount
}
