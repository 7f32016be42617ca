package booking

type OrderLineRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,gt=0"`
}

type CreateBookingRequest struct {
	CourtID     int64              `json:"court_id" binding:"required"`
	Date        string             `json:"date" binding:"required"`       // YYYY-MM-DD
	StartTime   string             `json:"start_time" binding:"required"` // HH:MM
	EndTime     string             `json:"end_time" binding:"required"`   // HH:MM
	VoucherCode string             `json:"voucher_code"`
	OrderLines  []OrderLineRequest `json:"order_lines"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type BookingResponse struct {
	ID             int64   `json:"id"`
	CourtID        int64   `json:"court_id"`
	Date           string  `json:"date"`
	StartTime      string  `json:"start_time"`
	EndTime        string  `json:"end_time"`
	DurationMin    int     `json:"duration_minutes"`
	CourtPrice     float64 `json:"court_price"`
	ServiceFee     float64 `json:"service_fee"`
	DiscountAmount float64 `json:"discount_amount"`
	TotalPrice     float64 `json:"total_price"`
	Status         string  `json:"status"`
	PaymentStatus  string  `json:"payment_status"`
}
