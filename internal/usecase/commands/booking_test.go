//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"agrirent/internal/domain/booking"
	"agrirent/internal/pkg/clock"
	"agrirent/internal/pkg/errs"
	"agrirent/internal/usecase/commands"
	"agrirent/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cmdTestNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type commandEnv struct {
	uow      *fakeUoW
	clk      *clock.MockClock
	bookings commands.BookingCommands
	payments commands.PaymentCommands
	sweeper  commands.SweeperCommands
}

func newCommandEnv() *commandEnv {
	uow := newFakeUoW()
	clk := clock.NewMockClock(cmdTestNow)
	factory := booking.NewFactory(clk, 10*time.Minute, 15, 15)
	return &commandEnv{
		uow:      uow,
		clk:      clk,
		bookings: commands.NewBookingUseCase(uow, factory, clk),
		payments: commands.NewPaymentUseCase(uow, clk),
		sweeper:  commands.NewSweeperUseCase(uow, clk),
	}
}

func (e *commandEnv) seedEquipment(quantity int) shared.EquipmentSnapshot {
	snap := shared.EquipmentSnapshot{
		ID:            uuid.New(),
		Name:          "compact tractor",
		TotalQuantity: quantity,
		OwnerID:       uuid.New(),
	}
	e.uow.addEquipment(snap)
	return snap
}

func (e *commandEnv) seedBooking(equip shared.EquipmentSnapshot, status booking.Status, dates ...string) shared.BookingSnapshot {
	snap := shared.BookingSnapshot{
		ID:               uuid.New(),
		EquipmentID:      equip.ID,
		RenterID:         uuid.New(),
		OwnerID:          equip.OwnerID,
		Dates:            dates,
		StartDate:        dates[0],
		EndDate:          dates[len(dates)-1],
		TotalAmountCents: 30000,
		Status:           status.String(),
		PaymentStatus:    booking.PaymentPending.String(),
		CreatedAt:        cmdTestNow,
		UpdatedAt:        cmdTestNow,
	}
	e.uow.addBooking(snap)
	return snap
}

func (e *commandEnv) seedHold(equip shared.EquipmentSnapshot, expiry time.Time, dates ...string) shared.BookingSnapshot {
	snap := shared.BookingSnapshot{
		ID:                uuid.New(),
		EquipmentID:       equip.ID,
		RenterID:          uuid.New(),
		OwnerID:           equip.OwnerID,
		Dates:             dates,
		StartDate:         dates[0],
		EndDate:           dates[len(dates)-1],
		TotalAmountCents:  30000,
		Status:            booking.StatusPaymentHold.String(),
		PaymentStatus:     booking.PaymentPending.String(),
		IsPaymentHold:     true,
		PaymentHoldExpiry: &expiry,
		CreatedAt:         cmdTestNow,
		UpdatedAt:         cmdTestNow,
	}
	e.uow.addBooking(snap)
	return snap
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("success: booking is persisted as pending", func(t *testing.T) {
		env := newCommandEnv()
		equip := env.seedEquipment(2)

		result, err := env.bookings.CreateBooking(ctx, commands.CreateBookingRequest{
			EquipmentID:      equip.ID,
			RenterID:         uuid.New(),
			SelectedDates:    []string{"2026-03-14", "2026-03-12"},
			TotalAmountCents: 20000,
		})

		require.NoError(t, err)
		assert.Equal(t, booking.StatusPending.String(), result.Booking.Status)
		assert.Equal(t, []string{"2026-03-12", "2026-03-14"}, result.Booking.Dates)
		assert.Equal(t, "2026-03-12", result.Booking.StartDate)
		assert.Equal(t, "2026-03-14", result.Booking.EndDate)
		assert.Equal(t, equip.OwnerID, result.Booking.OwnerID)

		stored, ok := env.uow.booking(result.Booking.ID)
		require.True(t, ok)
		assert.Equal(t, booking.StatusPending.String(), stored.Status)
	})

	t.Run("success: contiguous range expands to every day", func(t *testing.T) {
		env := newCommandEnv()
		equip := env.seedEquipment(1)

		result, err := env.bookings.CreateBooking(ctx, commands.CreateBookingRequest{
			EquipmentID:      equip.ID,
			RenterID:         uuid.New(),
			StartDate:        "2026-03-12",
			EndDate:          "2026-03-14",
			TotalAmountCents: 30000,
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"2026-03-12", "2026-03-13", "2026-03-14"}, result.Booking.Dates)
	})

	t.Run("success: completed and rejected bookings free their dates", func(t *testing.T) {
		env := newCommandEnv()
		equip := env.seedEquipment(1)
		env.seedBooking(equip, booking.StatusCompleted, "2026-03-12")
		env.seedBooking(equip, booking.StatusRejected, "2026-03-13")

		_, err := env.bookings.CreateBooking(ctx, commands.CreateBookingRequest{
			EquipmentID:      equip.ID,
			RenterID:         uuid.New(),
			SelectedDates:    []string{"2026-03-12", "2026-03-13"},
			TotalAmountCents: 20000,
		})

		require.NoError(t, err, "terminal bookings must not count against capacity")
	})

	t.Run("error: unknown equipment", func(t *testing.T) {
		env := newCommandEnv()

		_, err := env.bookings.CreateBooking(ctx, commands.CreateBookingRequest{
			EquipmentID:      uuid.New(),
			RenterID:         uuid.New(),
			SelectedDates:    []string{"2026-03-12"},
			TotalAmountCents: 10000,
		})

		assert.True(t, errors.Is(err, errs.ErrEquipmentNotFound))
	})

	t.Run("error: no capacity left on a requested date", func(t *testing.T) {
		env := newCommandEnv()
		equip := env.seedEquipment(1)
		env.seedBooking(equip, booking.StatusConfirmed, "2026-03-12", "2026-03-13")

		_, err := env.bookings.CreateBooking(ctx, commands.CreateBookingRequest{
			EquipmentID:      equip.ID,
			RenterID:         uuid.New(),
			SelectedDates:    []string{"2026-03-13", "2026-03-14"},
			TotalAmountCents: 20000,
		})

		var availErr *commands.AvailabilityError
		require.True(t, errors.As(err, &availErr))
		assert.True(t, errors.Is(err, errs.ErrAvailabilityChanged))
		assert.Equal(t, []string{"2026-03-13"}, availErr.Report.UnavailableDates)
		assert.Len(t, env.uow.bookings, 1, "failed request must not persist a booking")
	})

	t.Run("error: past date rejected", func(t *testing.T) {
		env := newCommandEnv()
		equip := env.seedEquipment(1)

		_, err := env.bookings.CreateBooking(ctx, commands.CreateBookingRequest{
			EquipmentID:      equip.ID,
			RenterID:         uuid.New(),
			SelectedDates:    []string{"2026-03-09"},
			TotalAmountCents: 10000,
		})

		assert.True(t, errors.Is(err, errs.ErrInvalidDateWindow))
	})

	t.Run("error: no dates provided", func(t *testing.T) {
		env := newCommandEnv()
		equip := env.seedEquipment(1)

		_, err := env.bookings.CreateBooking(ctx, commands.CreateBookingRequest{
			EquipmentID:      equip.ID,
			RenterID:         uuid.New(),
			TotalAmountCents: 10000,
		})

		assert.True(t, errors.Is(err, errs.ErrNoDatesProvided))
	})
}

func TestCreatePaymentHold(t *testing.T) {
	ctx := context.Background()

	t.Run("success: hold carries an expiry ten minutes out", func(t *testing.T) {
		env := newCommandEnv()
		equip := env.seedEquipment(1)

		result, err := env.bookings.CreatePaymentHold(ctx, commands.CreateBookingRequest{
			EquipmentID:      equip.ID,
			RenterID:         uuid.New(),
			SelectedDates:    []string{"2026-03-12"},
			TotalAmountCents: 10000,
		})

		require.NoError(t, err)
		assert.Equal(t, booking.StatusPaymentHold.String(), result.Booking.Status)
		assert.Equal(t, booking.PaymentPending.String(), result.Booking.PaymentStatus,
			"payment side-channel stays pending until an outcome arrives")
		assert.True(t, result.Booking.IsPaymentHold)
		require.NotNil(t, result.Booking.PaymentHoldExpiry)
		assert.Equal(t, cmdTestNow.Add(10*time.Minute), *result.Booking.PaymentHoldExpiry)
	})

	t.Run("error: a live hold consumes the last unit", func(t *testing.T) {
		env := newCommandEnv()
		equip := env.seedEquipment(1)
		env.seedHold(equip, cmdTestNow.Add(5*time.Minute), "2026-03-12")

		_, err := env.bookings.CreatePaymentHold(ctx, commands.CreateBookingRequest{
			EquipmentID:      equip.ID,
			RenterID:         uuid.New(),
			SelectedDates:    []string{"2026-03-12"},
			TotalAmountCents: 10000,
		})

		assert.True(t, errors.Is(err, errs.ErrAvailabilityChanged))
	})

	t.Run("success: an expired hold no longer blocks", func(t *testing.T) {
		env := newCommandEnv()
		equip := env.seedEquipment(1)
		env.seedHold(equip, cmdTestNow.Add(-time.Minute), "2026-03-12")

		_, err := env.bookings.CreatePaymentHold(ctx, commands.CreateBookingRequest{
			EquipmentID:      equip.ID,
			RenterID:         uuid.New(),
			SelectedDates:    []string{"2026-03-12"},
			TotalAmountCents: 10000,
		})

		assert.NoError(t, err)
	})
}

func TestAcceptBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("success: owner confirms a pending booking", func(t *testing.T) {
		env := newCommandEnv()
		equip := env.seedEquipment(1)
		snap := env.seedBooking(equip, booking.StatusPending, "2026-03-12")

		err := env.bookings.AcceptBooking(ctx, snap.ID, equip.OwnerID)

		require.NoError(t, err)
		stored, _ := env.uow.booking(snap.ID)
		assert.Equal(t, booking.StatusConfirmed.String(), stored.Status)
	})

	t.Run("error: actor is not the owner", func(t *testing.T) {
		env := newCommandEnv()
		equip := env.seedEquipment(1)
		snap := env.seedBooking(equip, booking.StatusPending, "2026-03-12")

		err := env.bookings.AcceptBooking(ctx, snap.ID, snap.RenterID)

		assert.True(t, errors.Is(err, errs.ErrAccessDenied))
	})

	t.Run("error: competing booking took the last unit since creation", func(t *testing.T) {
		env := newCommandEnv()
		equip := env.seedEquipment(1)
		snap := env.seedBooking(equip, booking.StatusPending, "2026-03-12")
		env.seedBooking(equip, booking.StatusConfirmed, "2026-03-12")

		err := env.bookings.AcceptBooking(ctx, snap.ID, equip.OwnerID)

		var availErr *commands.AvailabilityError
		assert.True(t, errors.As(err, &availErr))

		stored, _ := env.uow.booking(snap.ID)
		assert.Equal(t, booking.StatusPending.String(), stored.Status, "failed accept must not persist")
	})

	t.Run("error: unknown booking", func(t *testing.T) {
		env := newCommandEnv()
		env.seedEquipment(1)

		err := env.bookings.AcceptBooking(ctx, uuid.New(), uuid.New())

		assert.True(t, errors.Is(err, errs.ErrBookingNotFound))
	})

	t.Run("error: already confirmed", func(t *testing.T) {
		env := newCommandEnv()
		equip := env.seedEquipment(1)
		snap := env.seedBooking(equip, booking.StatusConfirmed, "2026-03-12")

		err := env.bookings.AcceptBooking(ctx, snap.ID, equip.OwnerID)

		assert.True(t, errors.Is(err, errs.ErrInvalidStatus))
	})
}

func TestRejectAndCompleteBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("success: owner rejects a pending booking", func(t *testing.T) {
		env := newCommandEnv()
		equip := env.seedEquipment(1)
		snap := env.seedBooking(equip, booking.StatusPending, "2026-03-12")

		require.NoError(t, env.bookings.RejectBooking(ctx, snap.ID, equip.OwnerID))

		stored, _ := env.uow.booking(snap.ID)
		assert.Equal(t, booking.StatusRejected.String(), stored.Status)
	})

	t.Run("success: owner completes a confirmed booking", func(t *testing.T) {
		env := newCommandEnv()
		equip := env.seedEquipment(1)
		snap := env.seedBooking(equip, booking.StatusConfirmed, "2026-03-12")

		require.NoError(t, env.bookings.CompleteBooking(ctx, snap.ID, equip.OwnerID))

		stored, _ := env.uow.booking(snap.ID)
		assert.Equal(t, booking.StatusCompleted.String(), stored.Status)
	})

	t.Run("error: pending booking cannot be completed", func(t *testing.T) {
		env := newCommandEnv()
		equip := env.seedEquipment(1)
		snap := env.seedBooking(equip, booking.StatusPending, "2026-03-12")

		err := env.bookings.CompleteBooking(ctx, snap.ID, equip.OwnerID)

		assert.True(t, errors.Is(err, errs.ErrInvalidStatus))
	})
}

func TestUpdateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("success: renter reschedules to free dates", func(t *testing.T) {
		env := newCommandEnv()
		equip := env.seedEquipment(1)
		snap := env.seedBooking(equip, booking.StatusPending, "2026-03-12")

		err := env.bookings.UpdateBooking(ctx, snap.ID, snap.RenterID, commands.UpdateBookingRequest{
			SelectedDates: []string{"2026-03-15", "2026-03-16"},
		})

		require.NoError(t, err)
		stored, _ := env.uow.booking(snap.ID)
		assert.Equal(t, []string{"2026-03-15", "2026-03-16"}, stored.Dates)
		assert.Equal(t, "2026-03-15", stored.StartDate)
		assert.Equal(t, "2026-03-16", stored.EndDate)
	})

	t.Run("success: owner adjusts the amount", func(t *testing.T) {
		env := newCommandEnv()
		equip := env.seedEquipment(1)
		snap := env.seedBooking(equip, booking.StatusPending, "2026-03-12")

		amount := int64(25000)
		err := env.bookings.UpdateBooking(ctx, snap.ID, equip.OwnerID, commands.UpdateBookingRequest{
			TotalAmountCents: &amount,
		})

		require.NoError(t, err)
		stored, _ := env.uow.booking(snap.ID)
		assert.Equal(t, int64(25000), stored.TotalAmountCents)
	})

	t.Run("success: owner changes the status", func(t *testing.T) {
		env := newCommandEnv()
		equip := env.seedEquipment(1)
		snap := env.seedBooking(equip, booking.StatusPending, "2026-03-12")

		status := booking.StatusConfirmed.String()
		err := env.bookings.UpdateBooking(ctx, snap.ID, equip.OwnerID, commands.UpdateBookingRequest{
			Status: &status,
		})

		require.NoError(t, err)
		stored, _ := env.uow.booking(snap.ID)
		assert.Equal(t, booking.StatusConfirmed.String(), stored.Status)
	})

	t.Run("error: renter may not change the status", func(t *testing.T) {
		env := newCommandEnv()
		equip := env.seedEquipment(1)
		snap := env.seedBooking(equip, booking.StatusPending, "2026-03-12")

		status := booking.StatusConfirmed.String()
		err := env.bookings.UpdateBooking(ctx, snap.ID, snap.RenterID, commands.UpdateBookingRequest{
			Status: &status,
		})

		assert.True(t, errors.Is(err, errs.ErrAccessDenied))
		stored, _ := env.uow.booking(snap.ID)
		assert.Equal(t, booking.StatusPending.String(), stored.Status, "renter must not self-confirm")
	})

	t.Run("error: stranger may not update", func(t *testing.T) {
		env := newCommandEnv()
		equip := env.seedEquipment(1)
		snap := env.seedBooking(equip, booking.StatusPending, "2026-03-12")

		amount := int64(25000)
		err := env.bookings.UpdateBooking(ctx, snap.ID, uuid.New(), commands.UpdateBookingRequest{
			TotalAmountCents: &amount,
		})

		assert.True(t, errors.Is(err, errs.ErrAccessDenied))
	})

	t.Run("error: reschedule into a full date", func(t *testing.T) {
		env := newCommandEnv()
		equip := env.seedEquipment(1)
		snap := env.seedBooking(equip, booking.StatusPending, "2026-03-12")
		env.seedBooking(equip, booking.StatusConfirmed, "2026-03-15")

		err := env.bookings.UpdateBooking(ctx, snap.ID, snap.RenterID, commands.UpdateBookingRequest{
			SelectedDates: []string{"2026-03-15"},
		})

		var availErr *commands.AvailabilityError
		assert.True(t, errors.As(err, &availErr))
		stored, _ := env.uow.booking(snap.ID)
		assert.Equal(t, []string{"2026-03-12"}, stored.Dates, "failed reschedule must not persist")
	})

	t.Run("error: negative amount", func(t *testing.T) {
		env := newCommandEnv()
		equip := env.seedEquipment(1)
		snap := env.seedBooking(equip, booking.StatusPending, "2026-03-12")

		amount := int64(-1)
		err := env.bookings.UpdateBooking(ctx, snap.ID, snap.RenterID, commands.UpdateBookingRequest{
			TotalAmountCents: &amount,
		})

		assert.Error(t, err)
	})
}

func TestCancelDates(t *testing.T) {
	ctx := context.Background()

	t.Run("success: partial cancel rescales the amount proportionally", func(t *testing.T) {
		env := newCommandEnv()
		equip := env.seedEquipment(1)
		snap := env.seedBooking(equip, booking.StatusConfirmed, "2026-03-12", "2026-03-13", "2026-03-14")

		result, err := env.bookings.CancelDates(ctx, snap.ID, snap.RenterID, []string{"2026-03-13"})

		require.NoError(t, err)
		assert.False(t, result.CancelledAll)
		assert.Equal(t, []string{"2026-03-12", "2026-03-14"}, result.RemainingDates)
		assert.Equal(t, int64(20000), result.NewAmountCents)

		stored, _ := env.uow.booking(snap.ID)
		assert.Equal(t, []string{"2026-03-12", "2026-03-14"}, stored.Dates)
		assert.Equal(t, int64(20000), stored.TotalAmountCents)
		assert.Equal(t, booking.StatusConfirmed.String(), stored.Status)
	})

	t.Run("success: cancelling every date cancels the booking", func(t *testing.T) {
		env := newCommandEnv()
		equip := env.seedEquipment(1)
		snap := env.seedBooking(equip, booking.StatusConfirmed, "2026-03-12", "2026-03-13")

		result, err := env.bookings.CancelDates(ctx, snap.ID, snap.RenterID, []string{"2026-03-12", "2026-03-13"})

		require.NoError(t, err)
		assert.True(t, result.CancelledAll)
		assert.Empty(t, result.RemainingDates)
		assert.Equal(t, int64(0), result.NewAmountCents)

		stored, _ := env.uow.booking(snap.ID)
		assert.Equal(t, booking.StatusCancelled.String(), stored.Status)
	})

	t.Run("error: only the renter may cancel dates", func(t *testing.T) {
		env := newCommandEnv()
		equip := env.seedEquipment(1)
		snap := env.seedBooking(equip, booking.StatusConfirmed, "2026-03-12")

		_, err := env.bookings.CancelDates(ctx, snap.ID, equip.OwnerID, []string{"2026-03-12"})

		assert.True(t, errors.Is(err, errs.ErrAccessDenied))
	})

	t.Run("error: date outside the booking rejects the whole request", func(t *testing.T) {
		env := newCommandEnv()
		equip := env.seedEquipment(1)
		snap := env.seedBooking(equip, booking.StatusConfirmed, "2026-03-12", "2026-03-13")

		_, err := env.bookings.CancelDates(ctx, snap.ID, snap.RenterID, []string{"2026-03-13", "2026-03-20"})

		assert.True(t, errors.Is(err, errs.ErrDateNotInBooking))
		stored, _ := env.uow.booking(snap.ID)
		assert.Equal(t, []string{"2026-03-12", "2026-03-13"}, stored.Dates)
	})
}
