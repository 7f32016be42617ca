package domain

import "time"

type Facility struct {
	ID       int64     `json:"id" gorm:"primaryKey"`
	Name     string    `json:"name" validate:"required"`
	Address  string    `json:"address"`
	City     string    `json:"city"`
	Phone    string    `json:"phone,omitempty"`
	OpenMin  TimeOfDay `json:"open_time" gorm:"column:open_min"`
	CloseMin TimeOfDay `json:"close_time" gorm:"column:close_min"`
	IsActive bool      `json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Courts []Court `json:"courts,omitempty" gorm:"foreignKey:FacilityID"`
}

type CourtStatus string

const (
	CourtAvailable   CourtStatus = "available"
	CourtMaintenance CourtStatus = "maintenance"
)

// Court belongs to exactly one facility for its lifetime. CourtType is a
// free-form label ("Standard", "Premium") shared with the facility's price slots.
type Court struct {
	ID         int64       `json:"id" gorm:"primaryKey"`
	FacilityID int64       `json:"facility_id" gorm:"index"`
	Name       string      `json:"name" validate:"required"`
	CourtType  string      `json:"court_type" validate:"required"`
	Status     CourtStatus `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
