package booking

import (
	"strings"
	"time"

	"agrirent/internal/pkg/errs"

	"github.com/google/uuid"
)

// Booking walks pending/payment_hold through owner approval to completion.
// The date set is the source of truth for the days it occupies; startDate
// and endDate are recomputed from it on every mutation.
type Booking struct {
	id            uuid.UUID
	equipmentID   uuid.UUID
	renterID      uuid.UUID
	ownerID       uuid.UUID
	dates         DateSet
	startDate     string
	endDate       string
	totalAmount   Money
	status        Status
	paymentStatus PaymentStatus

	// isPaymentHold mirrors status == payment_hold. Redundant, but several
	// transition sites check it independently of status, so it stays.
	isPaymentHold     bool
	paymentHoldExpiry *time.Time

	paymentMethod *string
	transactionID *string

	createdAt time.Time
	updatedAt time.Time
}

func newBooking(equipmentID, renterID, ownerID uuid.UUID, dates DateSet, amount Money) *Booking {
	start, end := dates.Bounds()
	return &Booking{
		id:            uuid.New(),
		equipmentID:   equipmentID,
		renterID:      renterID,
		ownerID:       ownerID,
		dates:         dates,
		startDate:     start,
		endDate:       end,
		totalAmount:   amount,
		status:        StatusPending,
		paymentStatus: PaymentPending,
	}
}

func ReconstructBooking(
	id, equipmentID, renterID, ownerID uuid.UUID,
	dates DateSet,
	startDate, endDate string,
	totalAmount Money,
	status Status,
	paymentStatus PaymentStatus,
	isPaymentHold bool,
	paymentHoldExpiry *time.Time,
	paymentMethod, transactionID *string,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:                id,
		equipmentID:       equipmentID,
		renterID:          renterID,
		ownerID:           ownerID,
		dates:             dates,
		startDate:         startDate,
		endDate:           endDate,
		totalAmount:       totalAmount,
		status:            status,
		paymentStatus:     paymentStatus,
		isPaymentHold:     isPaymentHold,
		paymentHoldExpiry: paymentHoldExpiry,
		paymentMethod:     paymentMethod,
		transactionID:     transactionID,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

func (b *Booking) ID() uuid.UUID                 { return b.id }
func (b *Booking) EquipmentID() uuid.UUID        { return b.equipmentID }
func (b *Booking) RenterID() uuid.UUID           { return b.renterID }
func (b *Booking) OwnerID() uuid.UUID            { return b.ownerID }
func (b *Booking) Dates() DateSet                { return b.dates }
func (b *Booking) StartDate() string             { return b.startDate }
func (b *Booking) EndDate() string               { return b.endDate }
func (b *Booking) TotalAmount() Money            { return b.totalAmount }
func (b *Booking) Status() Status                { return b.status }
func (b *Booking) PaymentStatus() PaymentStatus  { return b.paymentStatus }
func (b *Booking) IsPaymentHold() bool           { return b.isPaymentHold }
func (b *Booking) PaymentHoldExpiry() *time.Time { return b.paymentHoldExpiry }
func (b *Booking) PaymentMethod() *string        { return b.paymentMethod }
func (b *Booking) TransactionID() *string        { return b.transactionID }
func (b *Booking) CreatedAt() time.Time          { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time          { return b.updatedAt }

// HoldExpired reports whether an active payment hold has passed its expiry.
func (b *Booking) HoldExpired(now time.Time) bool {
	return b.status == StatusPaymentHold && b.paymentHoldExpiry != nil && now.After(*b.paymentHoldExpiry)
}

// ReleaseHoldFailed terminates a payment hold whose payment can no longer
// succeed: the hold timed out or the dates were taken by a competing booking.
func (b *Booking) ReleaseHoldFailed() {
	b.status = StatusCancelled
	b.paymentStatus = PaymentFailed
	b.clearHold()
}

// CompletePayment moves a held booking to pending owner approval.
func (b *Booking) CompletePayment(paymentMethod, transactionID string) error {
	if b.status != StatusPaymentHold || !b.isPaymentHold {
		return errs.Mark(errs.New("booking is not in payment hold state"), errs.ErrInvalidStatus)
	}
	b.status = StatusPending
	b.paymentStatus = PaymentCompleted
	b.paymentMethod = &paymentMethod
	b.transactionID = &transactionID
	b.clearHold()
	return nil
}

func (b *Booking) FailPayment() error {
	if b.status != StatusPaymentHold {
		return errs.Mark(errs.New("booking is not in payment hold state"), errs.ErrInvalidStatus)
	}
	b.status = StatusPaymentFailed
	b.paymentStatus = PaymentFailed
	b.clearHold()
	return nil
}

func (b *Booking) CancelPayment() error {
	if b.status != StatusPaymentHold {
		return errs.Mark(errs.New("booking is not in payment hold state"), errs.ErrInvalidStatus)
	}
	b.status = StatusCancelled
	b.paymentStatus = PaymentCancelled
	b.clearHold()
	return nil
}

// Confirm is the owner accepting a pending booking.
func (b *Booking) Confirm() error {
	if b.status != StatusPending {
		return errs.Mark(errs.New("only pending bookings can be accepted"), errs.ErrInvalidStatus)
	}
	b.status = StatusConfirmed
	return nil
}

func (b *Booking) Reject() error {
	if b.status != StatusPending {
		return errs.Mark(errs.New("only pending bookings can be rejected"), errs.ErrInvalidStatus)
	}
	b.status = StatusRejected
	return nil
}

func (b *Booking) Complete() error {
	if b.status != StatusConfirmed {
		return errs.Mark(errs.New("only confirmed bookings can be marked as completed"), errs.ErrInvalidStatus)
	}
	b.status = StatusCompleted
	return nil
}

// CancelDates removes the given days from the booking. Cancelling every
// remaining day cancels the whole booking; otherwise the amount shrinks
// proportionally to the days kept.
func (b *Booking) CancelDates(toCancel DateSet) (cancelledAll bool, err error) {
	if b.status != StatusPending && b.status != StatusConfirmed {
		return false, errs.Mark(
			errs.New("can only cancel dates from pending or confirmed bookings"),
			errs.ErrInvalidStatus)
	}

	remaining, notMembers := b.dates.Subtract(toCancel)
	if len(notMembers) > 0 {
		return false, errs.Mark(
			errs.Newf("these dates are not in your booking: %s", strings.Join(notMembers, ", ")),
			errs.ErrDateNotInBooking)
	}

	if remaining.IsEmpty() {
		b.status = StatusCancelled
		b.dates = DateSet{}
		b.startDate, b.endDate = "", ""
		return true, nil
	}

	b.totalAmount = b.totalAmount.Rescale(remaining.Len(), b.dates.Len())
	b.dates = remaining
	b.startDate, b.endDate = remaining.Bounds()
	return false, nil
}

// Reschedule replaces the booking's date set, window validation being the
// caller's concern.
func (b *Booking) Reschedule(dates DateSet) error {
	if dates.IsEmpty() {
		return errs.ErrNoDatesProvided
	}
	b.dates = dates
	b.startDate, b.endDate = dates.Bounds()
	return nil
}

// SetTotalAmount replaces the agreed amount, e.g. after renegotiation.
func (b *Booking) SetTotalAmount(amount Money) error {
	if amount.Cents() < 0 {
		return errs.New("booking amount cannot be negative")
	}
	b.totalAmount = amount
	return nil
}

// SetStatus applies a raw status change from the generic update operation.
func (b *Booking) SetStatus(status Status) error {
	if !status.IsValid() {
		return errs.Mark(errs.Newf("unknown booking status %q", status), errs.ErrInvalidStatus)
	}
	b.status = status
	return nil
}

func (b *Booking) clearHold() {
	b.isPaymentHold = false
	b.paymentHoldExpiry = nil
}
