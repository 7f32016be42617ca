package voucher

import "errors"

// Any of these aborts the whole booking/order transaction, not just the
// discount line: the total price cannot be finalized without the voucher.
var (
	ErrNotFound            = errors.New("voucher not found")
	ErrNotYetStarted       = errors.New("voucher not yet started")
	ErrExpired             = errors.New("voucher expired")
	ErrNotApplicable       = errors.New("voucher not applicable to this order type")
	ErrBelowMinimum        = errors.New("order amount below voucher minimum")
	ErrPerUserLimitReached = errors.New("voucher per-user usage limit reached")
	ErrLimitReached        = errors.New("voucher usage limit reached")
)
