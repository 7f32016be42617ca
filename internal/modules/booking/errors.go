package booking

import "errors"

var (
	ErrValidation               = errors.New("validation error")
	ErrCourtNotFound            = errors.New("court not found")
	ErrCourtUnavailable         = errors.New("court not operational")
	ErrSlotTaken                = errors.New("slot no longer available")
	ErrBusy                     = errors.New("booking store busy, retry")
	ErrNotFound                 = errors.New("booking not found")
	ErrForbidden                = errors.New("forbidden")
	ErrInvalidStatusTransition  = errors.New("invalid status transition")
	ErrCancellationWindowClosed = errors.New("cancellation window closed")
)
