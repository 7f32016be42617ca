package availability

// SlotAvailability is one schedule slot of a court's day, priced and flagged.
// Slots are reported at the granularity the admin defined them; adjacent free
// slots are not merged.
type SlotAvailability struct {
	Start       string  `json:"start"`
	End         string  `json:"end"`
	Price       float64 `json:"price"`
	IsPeakHour  bool    `json:"is_peak_hour"`
	IsAvailable bool    `json:"is_available"`
}

type DayAvailability struct {
	CourtID int64              `json:"court_id"`
	Date    string             `json:"date"`
	Slots   []SlotAvailability `json:"slots"`
}
