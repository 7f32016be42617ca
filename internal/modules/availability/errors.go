package availability

import "errors"

var ErrCourtNotFound = errors.New("court not found")
