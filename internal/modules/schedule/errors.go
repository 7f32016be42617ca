package schedule

import "errors"

// ErrNoPriceAvailable means the requested range has no covering price-slot
// schedule; a booking or quote is impossible, not free.
var ErrNoPriceAvailable = errors.New("no price available for requested range")
