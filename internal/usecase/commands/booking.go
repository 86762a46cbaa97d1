package commands

import (
	"context"
	"strings"

	"agrirent/internal/domain/booking"
	"agrirent/internal/domain/equipment"
	"agrirent/internal/infra"
	"agrirent/internal/pkg/clock"
	"agrirent/internal/pkg/errs"
	"agrirent/internal/pkg/patch"
	"agrirent/internal/usecase/shared"

	"github.com/google/uuid"
)

// AvailabilityError carries the per-date report alongside the sentinel, so
// handlers can tell the caller which dates are taken.
type AvailabilityError struct {
	Report *shared.AvailabilityReport
}

func (e *AvailabilityError) Error() string {
	if len(e.Report.UnavailableDates) > 0 {
		return "equipment not available on: " + strings.Join(e.Report.UnavailableDates, ", ")
	}
	return errs.ErrAvailabilityChanged.Error()
}

func (e *AvailabilityError) Unwrap() error {
	return errs.ErrAvailabilityChanged
}

type CreateBookingRequest struct {
	EquipmentID      uuid.UUID
	RenterID         uuid.UUID
	SelectedDates    []string
	StartDate        string
	EndDate          string
	TotalAmountCents int64
}

type UpdateBookingRequest struct {
	SelectedDates    []string
	StartDate        *string
	EndDate          *string
	TotalAmountCents *int64
	Status           *string
}

type CreateBookingResult struct {
	Booking *shared.BookingSnapshot
}

type CancelDatesResult struct {
	CancelledAll   bool
	RemainingDates []string
	NewAmountCents int64
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*CreateBookingResult, error)
	CreatePaymentHold(ctx context.Context, req CreateBookingRequest) (*CreateBookingResult, error)
	AcceptBooking(ctx context.Context, bookingID uuid.UUID, actorID uuid.UUID) error
	RejectBooking(ctx context.Context, bookingID uuid.UUID, actorID uuid.UUID) error
	CompleteBooking(ctx context.Context, bookingID uuid.UUID, actorID uuid.UUID) error
	UpdateBooking(ctx context.Context, bookingID uuid.UUID, actorID uuid.UUID, req UpdateBookingRequest) error
	CancelDates(ctx context.Context, bookingID uuid.UUID, actorID uuid.UUID, dates []string) (*CancelDatesResult, error)
}

type bookingUseCaseImpl struct {
	uow     shared.UnitOfWork
	factory *booking.Factory
	clock   clock.Clock
}

func NewBookingUseCase(uow shared.UnitOfWork, factory *booking.Factory, clk clock.Clock) BookingCommands {
	return &bookingUseCaseImpl{uow: uow, factory: factory, clock: clk}
}

// resolveDates accepts either an explicit date list or a contiguous range,
// mirroring the two request shapes the API supports.
func resolveDates(selected []string, startDate, endDate string) (booking.DateSet, error) {
	if len(selected) > 0 {
		return booking.NewDateSet(selected)
	}
	return booking.NewDateSetFromRange(startDate, endDate)
}

func (uc *bookingUseCaseImpl) CreateBooking(ctx context.Context, req CreateBookingRequest) (*CreateBookingResult, error) {
	return uc.create(ctx, req, false)
}

func (uc *bookingUseCaseImpl) CreatePaymentHold(ctx context.Context, req CreateBookingRequest) (*CreateBookingResult, error) {
	return uc.create(ctx, req, true)
}

func (uc *bookingUseCaseImpl) create(ctx context.Context, req CreateBookingRequest, hold bool) (*CreateBookingResult, error) {
	dates, err := resolveDates(req.SelectedDates, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	amount, err := booking.NewMoneyFromCents(req.TotalAmountCents)
	if err != nil {
		return nil, err
	}

	var created *shared.BookingSnapshot
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// Row lock first: every capacity-consuming transition on this unit
		// serializes here, closing the check-then-insert race.
		equipSnap, derr := tx.Equipment().LockByID(ctx, tx.DB(), req.EquipmentID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return errs.ErrEquipmentNotFound
			}
			return derr
		}

		equip, derr := equipment.NewEquipment(equipSnap.ID, equipSnap.Name, equipSnap.TotalQuantity, equipSnap.OwnerID)
		if derr != nil {
			return derr
		}

		var b *booking.Booking
		if hold {
			b, derr = uc.factory.NewPaymentHold(equip, req.RenterID, dates, amount)
		} else {
			b, derr = uc.factory.NewBooking(equip, req.RenterID, dates, amount)
		}
		if derr != nil {
			return derr
		}

		if derr = uc.ensureAvailable(ctx, tx, equipSnap, dates, nil); derr != nil {
			return derr
		}

		if _, derr = tx.Bookings().Create(ctx, tx.DB(), b); derr != nil {
			return derr
		}
		created = shared.SnapshotFromAggregate(b)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &CreateBookingResult{Booking: created}, nil
}

func (uc *bookingUseCaseImpl) AcceptBooking(ctx context.Context, bookingID uuid.UUID, actorID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, agg, err := uc.loadOwned(ctx, tx, bookingID, actorID)
		if err != nil {
			return err
		}

		equipSnap, err := tx.Equipment().LockByID(ctx, tx.DB(), snap.EquipmentID)
		if err != nil {
			return wrapEquipmentErr(err)
		}

		if err = agg.Confirm(); err != nil {
			return err
		}

		// Re-check capacity at approval time, excluding the booking itself.
		// A competing booking confirmed since creation may have taken the
		// last unit.
		if err = uc.ensureAvailable(ctx, tx, equipSnap, agg.Dates(), &bookingID); err != nil {
			return err
		}

		return wrapUpdateErr(tx.Bookings().Update(ctx, tx.DB(), agg, booking.StatusPending))
	})
}

func (uc *bookingUseCaseImpl) RejectBooking(ctx context.Context, bookingID uuid.UUID, actorID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, agg, err := uc.loadOwned(ctx, tx, bookingID, actorID)
		if err != nil {
			return err
		}
		if err = agg.Reject(); err != nil {
			return err
		}
		return wrapUpdateErr(tx.Bookings().Update(ctx, tx.DB(), agg, booking.StatusPending))
	})
}

func (uc *bookingUseCaseImpl) CompleteBooking(ctx context.Context, bookingID uuid.UUID, actorID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, agg, err := uc.loadOwned(ctx, tx, bookingID, actorID)
		if err != nil {
			return err
		}
		if err = agg.Complete(); err != nil {
			return err
		}
		return wrapUpdateErr(tx.Bookings().Update(ctx, tx.DB(), agg, booking.StatusConfirmed))
	})
}

func (uc *bookingUseCaseImpl) UpdateBooking(ctx context.Context, bookingID uuid.UUID, actorID uuid.UUID, req UpdateBookingRequest) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().BookingByID(ctx, bookingID)
		if err != nil {
			return wrapBookingErr(err)
		}
		if snap.RenterID != actorID && snap.OwnerID != actorID {
			return errs.ErrAccessDenied
		}

		agg, err := snap.ToAggregate()
		if err != nil {
			return err
		}
		expected := booking.Status(snap.Status)

		reschedule := len(req.SelectedDates) > 0 || req.StartDate != nil
		if reschedule {
			dates, derr := resolveDates(req.SelectedDates, patch.Coalesce(req.StartDate, ""), patch.Coalesce(req.EndDate, ""))
			if derr != nil {
				return derr
			}
			if derr = dates.ValidateWindow(uc.clock.Now(), uc.factory.WindowDays, uc.factory.MaxDates); derr != nil {
				return derr
			}

			equipSnap, derr := tx.Equipment().LockByID(ctx, tx.DB(), snap.EquipmentID)
			if derr != nil {
				return wrapEquipmentErr(derr)
			}
			if derr = uc.ensureAvailable(ctx, tx, equipSnap, dates, &bookingID); derr != nil {
				return derr
			}
			if derr = agg.Reschedule(dates); derr != nil {
				return derr
			}
		}

		if req.TotalAmountCents != nil {
			amount, derr := booking.NewMoneyFromCents(*req.TotalAmountCents)
			if derr != nil {
				return derr
			}
			if derr = agg.SetTotalAmount(amount); derr != nil {
				return derr
			}
		}

		if req.Status != nil {
			// Status changes through the generic update are an owner action;
			// renters go through the payment flow or cancel-dates.
			if snap.OwnerID != actorID {
				return errs.ErrAccessDenied
			}
			if derr := agg.SetStatus(booking.Status(*req.Status)); derr != nil {
				return derr
			}
		}

		return wrapUpdateErr(tx.Bookings().Update(ctx, tx.DB(), agg, expected))
	})
}

func (uc *bookingUseCaseImpl) CancelDates(ctx context.Context, bookingID uuid.UUID, actorID uuid.UUID, dates []string) (*CancelDatesResult, error) {
	toCancel, err := booking.NewDateSet(dates)
	if err != nil {
		return nil, err
	}

	var result *CancelDatesResult
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().BookingByID(ctx, bookingID)
		if derr != nil {
			return wrapBookingErr(derr)
		}
		if snap.RenterID != actorID {
			return errs.ErrAccessDenied
		}

		agg, derr := snap.ToAggregate()
		if derr != nil {
			return derr
		}
		expected := booking.Status(snap.Status)

		cancelledAll, derr := agg.CancelDates(toCancel)
		if derr != nil {
			return derr
		}

		if derr = wrapUpdateErr(tx.Bookings().Update(ctx, tx.DB(), agg, expected)); derr != nil {
			return derr
		}
		result = &CancelDatesResult{
			CancelledAll:   cancelledAll,
			RemainingDates: agg.Dates().Days(),
			NewAmountCents: agg.TotalAmount().Cents(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// loadOwned reads a booking and checks the actor is the equipment owner,
// the precondition shared by accept, reject, and complete.
func (uc *bookingUseCaseImpl) loadOwned(ctx context.Context, tx shared.Tx, bookingID, actorID uuid.UUID) (*shared.BookingSnapshot, *booking.Booking, error) {
	snap, err := tx.Reads().BookingByID(ctx, bookingID)
	if err != nil {
		return nil, nil, wrapBookingErr(err)
	}
	if snap.OwnerID != actorID {
		return nil, nil, errs.ErrAccessDenied
	}
	agg, err := snap.ToAggregate()
	if err != nil {
		return nil, nil, err
	}
	return snap, agg, nil
}

func (uc *bookingUseCaseImpl) ensureAvailable(ctx context.Context, tx shared.Tx, equip *shared.EquipmentSnapshot, dates booking.DateSet, excludeID *uuid.UUID) error {
	active, err := tx.Reads().ActiveBookingsForEquipment(ctx, equip.ID, uc.clock.Now(), excludeID)
	if err != nil {
		return err
	}
	report, err := shared.ComputeAvailability(equip, active, dates)
	if err != nil {
		return err
	}
	if !report.Available {
		return &AvailabilityError{Report: report}
	}
	return nil
}

func wrapBookingErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.ErrBookingNotFound
	}
	return err
}

func wrapEquipmentErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.ErrEquipmentNotFound
	}
	return err
}

// wrapUpdateErr converts a lost status-guard race into the availability
// sentinel the caller already handles for capacity conflicts.
func wrapUpdateErr(err error) error {
	if infra.IsKind(err, infra.KindConflict) {
		return errs.Mark(errs.Wrap(err, "booking changed concurrently"), errs.ErrAvailabilityChanged)
	}
	return err
}
