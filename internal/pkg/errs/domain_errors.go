package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// Lookup errors
	ErrEquipmentNotFound = errors.New("equipment not found")
	ErrBookingNotFound   = errors.New("booking not found")

	// Authorization errors
	ErrAccessDenied = errors.New("access denied")

	// Date errors
	ErrNoDatesProvided   = errors.New("no dates provided")
	ErrInvalidDateWindow = errors.New("date outside booking window")
	ErrDateNotInBooking  = errors.New("date not part of booking")

	// Lifecycle errors
	ErrInvalidStatus       = errors.New("operation not valid for booking status")
	ErrAvailabilityChanged = errors.New("equipment no longer available for the requested dates")
	ErrHoldExpired         = errors.New("payment hold expired")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
