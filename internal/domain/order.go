package domain

import "time"

type Product struct {
	ID       int64   `json:"id" gorm:"primaryKey"`
	Name     string  `json:"name" validate:"required"`
	Category string  `json:"category,omitempty"`
	Price    float64 `json:"price" validate:"gte=0"`
	Stock    int     `json:"stock"`
	IsActive bool    `json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderCancelled OrderStatus = "cancelled"
)

// Order is a retail purchase, optionally attached to a booking (rackets,
// shuttlecocks, drinks picked up at the court).
type Order struct {
	ID          int64       `json:"id" gorm:"primaryKey"`
	UserID      int64       `json:"user_id" gorm:"index"`
	BookingID   *int64      `json:"booking_id,omitempty" gorm:"index"`
	TotalAmount float64     `json:"total_amount"`
	Status      OrderStatus `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Details []OrderDetail `json:"details,omitempty" gorm:"foreignKey:OrderID"`
}

type OrderDetail struct {
	ID        int64   `json:"id" gorm:"primaryKey"`
	OrderID   int64   `json:"order_id" gorm:"index"`
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity" validate:"gt=0"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}
