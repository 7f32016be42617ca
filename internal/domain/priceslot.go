package domain

import "time"

// PriceSlot is an admin-defined flat-rate time bucket scoped to every court of
// CourtType within a facility. DayOfWeek nil means the slot applies every day;
// otherwise it is time.Weekday as an int (0 = Sunday).
type PriceSlot struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	FacilityID int64     `json:"facility_id" gorm:"index"`
	CourtType  string    `json:"court_type" gorm:"index"`
	DayOfWeek  *int      `json:"day_of_week,omitempty"`
	StartMin   TimeOfDay `json:"start_time" gorm:"column:start_min"`
	EndMin     TimeOfDay `json:"end_time" gorm:"column:end_min"`
	Price      float64   `json:"price" validate:"gte=0"`
	IsPeakHour bool      `json:"is_peak_hour"`
	IsActive   bool      `json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p PriceSlot) Interval() TimeInterval {
	return TimeInterval{Start: p.StartMin, End: p.EndMin}
}

// AppliesOn reports whether the slot is in effect on the given weekday.
func (p PriceSlot) AppliesOn(day time.Weekday) bool {
	return p.DayOfWeek == nil || *p.DayOfWeek == int(day)
}
