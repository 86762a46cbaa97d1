package booking

type Status string

const (
	StatusPending       Status = "pending"
	StatusPaymentHold   Status = "payment_hold"
	StatusConfirmed     Status = "confirmed"
	StatusCompleted     Status = "completed"
	StatusRejected      Status = "rejected"
	StatusCancelled     Status = "cancelled"
	StatusPaymentFailed Status = "payment_failed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPaymentHold, StatusConfirmed, StatusCompleted,
		StatusRejected, StatusCancelled, StatusPaymentFailed:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status ends the booking's lifecycle.
// Terminal bookings are retained for history, never deleted.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusRejected, StatusCancelled, StatusPaymentFailed:
		return true
	default:
		return false
	}
}

type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentCompleted  PaymentStatus = "completed"
	PaymentFailed     PaymentStatus = "failed"
	PaymentCancelled  PaymentStatus = "cancelled"
)

func (s PaymentStatus) String() string {
	return string(s)
}

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentProcessing, PaymentCompleted, PaymentFailed, PaymentCancelled:
		return true
	default:
		return false
	}
}
