package commands

import (
	"context"

	"agrirent/internal/domain/booking"
	"agrirent/internal/pkg/clock"
	"agrirent/internal/pkg/errs"
	"agrirent/internal/usecase/shared"

	"github.com/google/uuid"
)

type ConfirmPaymentRequest struct {
	PaymentMethod string
	TransactionID string
}

type PaymentCommands interface {
	// ConfirmPayment settles a payment hold. When the hold has expired or
	// the dates were taken while it was open, the hold is released and the
	// matching sentinel is returned.
	ConfirmPayment(ctx context.Context, bookingID uuid.UUID, actorID uuid.UUID, req ConfirmPaymentRequest) error
	FailPayment(ctx context.Context, bookingID uuid.UUID, actorID uuid.UUID) error
	CancelPayment(ctx context.Context, bookingID uuid.UUID, actorID uuid.UUID) error
}

type paymentUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewPaymentUseCase(uow shared.UnitOfWork, clk clock.Clock) PaymentCommands {
	return &paymentUseCaseImpl{uow: uow, clock: clk}
}

func (uc *paymentUseCaseImpl) ConfirmPayment(ctx context.Context, bookingID uuid.UUID, actorID uuid.UUID, req ConfirmPaymentRequest) error {
	// The release of a dead hold must commit even though the operation
	// itself fails, so the sentinel is carried out of the transaction
	// instead of aborting it.
	var resultErr error
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, agg, derr := uc.loadHeld(ctx, tx, bookingID, actorID)
		if derr != nil {
			return derr
		}

		now := uc.clock.Now()
		if agg.HoldExpired(now) {
			agg.ReleaseHoldFailed()
			if derr = tx.Bookings().Update(ctx, tx.DB(), agg, booking.StatusPaymentHold); derr != nil {
				return wrapUpdateErr(derr)
			}
			resultErr = errs.ErrHoldExpired
			return nil
		}

		equipSnap, derr := tx.Equipment().LockByID(ctx, tx.DB(), snap.EquipmentID)
		if derr != nil {
			return wrapEquipmentErr(derr)
		}

		active, derr := tx.Reads().ActiveBookingsForEquipment(ctx, equipSnap.ID, now, &bookingID)
		if derr != nil {
			return derr
		}
		report, derr := shared.ComputeAvailability(equipSnap, active, agg.Dates())
		if derr != nil {
			return derr
		}
		if !report.Available {
			agg.ReleaseHoldFailed()
			if derr = tx.Bookings().Update(ctx, tx.DB(), agg, booking.StatusPaymentHold); derr != nil {
				return wrapUpdateErr(derr)
			}
			resultErr = &AvailabilityError{Report: report}
			return nil
		}

		if derr = agg.CompletePayment(req.PaymentMethod, req.TransactionID); derr != nil {
			return derr
		}
		return wrapUpdateErr(tx.Bookings().Update(ctx, tx.DB(), agg, booking.StatusPaymentHold))
	})
	if err != nil {
		return err
	}
	return resultErr
}

func (uc *paymentUseCaseImpl) FailPayment(ctx context.Context, bookingID uuid.UUID, actorID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, agg, err := uc.loadHeld(ctx, tx, bookingID, actorID)
		if err != nil {
			return err
		}
		if err = agg.FailPayment(); err != nil {
			return err
		}
		return wrapUpdateErr(tx.Bookings().Update(ctx, tx.DB(), agg, booking.StatusPaymentHold))
	})
}

func (uc *paymentUseCaseImpl) CancelPayment(ctx context.Context, bookingID uuid.UUID, actorID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, agg, err := uc.loadHeld(ctx, tx, bookingID, actorID)
		if err != nil {
			return err
		}
		if err = agg.CancelPayment(); err != nil {
			return err
		}
		return wrapUpdateErr(tx.Bookings().Update(ctx, tx.DB(), agg, booking.StatusPaymentHold))
	})
}

// loadHeld reads a booking for a payment transition, which only the renter
// who opened the hold may drive.
func (uc *paymentUseCaseImpl) loadHeld(ctx context.Context, tx shared.Tx, bookingID, actorID uuid.UUID) (*shared.BookingSnapshot, *booking.Booking, error) {
	snap, err := tx.Reads().BookingByID(ctx, bookingID)
	if err != nil {
		return nil, nil, wrapBookingErr(err)
	}
	if snap.RenterID != actorID {
		return nil, nil, errs.ErrAccessDenied
	}
	agg, err := snap.ToAggregate()
	if err != nil {
		return nil, nil, err
	}
	return snap, agg, nil
}
