//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"agrirent/internal/domain/booking"
	"agrirent/internal/pkg/errs"
	"agrirent/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmPayment(t *testing.T) {
	ctx := context.Background()
	confirmReq := commands.ConfirmPaymentRequest{
		PaymentMethod: "card",
		TransactionID: "tx-20260310-001",
	}

	t.Run("success: payment before expiry moves the hold to pending", func(t *testing.T) {
		env := newCommandEnv()
		equip := env.seedEquipment(1)
		snap := env.seedHold(equip, cmdTestNow.Add(10*time.Minute), "2026-03-12")
		env.clk.Add(9 * time.Minute)

		err := env.payments.ConfirmPayment(ctx, snap.ID, snap.RenterID, confirmReq)

		require.NoError(t, err)
		stored, _ := env.uow.booking(snap.ID)
		assert.Equal(t, booking.StatusPending.String(), stored.Status)
		assert.Equal(t, booking.PaymentCompleted.String(), stored.PaymentStatus)
		assert.False(t, stored.IsPaymentHold)
		assert.Nil(t, stored.PaymentHoldExpiry)
		require.NotNil(t, stored.PaymentMethod)
		assert.Equal(t, "card", *stored.PaymentMethod)
		require.NotNil(t, stored.TransactionID)
		assert.Equal(t, "tx-20260310-001", *stored.TransactionID)
	})

	t.Run("error: expired hold fails and the release still commits", func(t *testing.T) {
		env := newCommandEnv()
		equip := env.seedEquipment(1)
		snap := env.seedHold(equip, cmdTestNow.Add(10*time.Minute), "2026-03-12")
		env.clk.Add(11 * time.Minute)

		err := env.payments.ConfirmPayment(ctx, snap.ID, snap.RenterID, confirmReq)

		assert.True(t, errors.Is(err, errs.ErrHoldExpired))
		stored, _ := env.uow.booking(snap.ID)
		assert.Equal(t, booking.StatusCancelled.String(), stored.Status)
		assert.Equal(t, booking.PaymentFailed.String(), stored.PaymentStatus)
		assert.False(t, stored.IsPaymentHold)
	})

	t.Run("error: availability lost while held releases the hold", func(t *testing.T) {
		env := newCommandEnv()
		equip := env.seedEquipment(1)
		snap := env.seedHold(equip, cmdTestNow.Add(10*time.Minute), "2026-03-12")
		env.seedBooking(equip, booking.StatusConfirmed, "2026-03-12")

		err := env.payments.ConfirmPayment(ctx, snap.ID, snap.RenterID, confirmReq)

		var availErr *commands.AvailabilityError
		require.True(t, errors.As(err, &availErr))
		assert.Equal(t, []string{"2026-03-12"}, availErr.Report.UnavailableDates)

		stored, _ := env.uow.booking(snap.ID)
		assert.Equal(t, booking.StatusCancelled.String(), stored.Status)
		assert.Equal(t, booking.PaymentFailed.String(), stored.PaymentStatus)
	})

	t.Run("error: only the renter may confirm", func(t *testing.T) {
		env := newCommandEnv()
		equip := env.seedEquipment(1)
		snap := env.seedHold(equip, cmdTestNow.Add(10*time.Minute), "2026-03-12")

		err := env.payments.ConfirmPayment(ctx, snap.ID, equip.OwnerID, confirmReq)

		assert.True(t, errors.Is(err, errs.ErrAccessDenied))
		stored, _ := env.uow.booking(snap.ID)
		assert.Equal(t, booking.StatusPaymentHold.String(), stored.Status)
	})

	t.Run("error: unknown booking", func(t *testing.T) {
		env := newCommandEnv()

		err := env.payments.ConfirmPayment(ctx, uuid.New(), uuid.New(), confirmReq)

		assert.True(t, errors.Is(err, errs.ErrBookingNotFound))
	})

	t.Run("error: booking is not a payment hold", func(t *testing.T) {
		env := newCommandEnv()
		equip := env.seedEquipment(1)
		snap := env.seedBooking(equip, booking.StatusPending, "2026-03-12")

		err := env.payments.ConfirmPayment(ctx, snap.ID, snap.RenterID, confirmReq)

		assert.True(t, errors.Is(err, errs.ErrInvalidStatus))
	})
}

func TestFailPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("success: failed payment terminates the hold", func(t *testing.T) {
		env := newCommandEnv()
		equip := env.seedEquipment(1)
		snap := env.seedHold(equip, cmdTestNow.Add(10*time.Minute), "2026-03-12")

		require.NoError(t, env.payments.FailPayment(ctx, snap.ID, snap.RenterID))

		stored, _ := env.uow.booking(snap.ID)
		assert.Equal(t, booking.StatusPaymentFailed.String(), stored.Status)
		assert.Equal(t, booking.PaymentFailed.String(), stored.PaymentStatus)
		assert.False(t, stored.IsPaymentHold)
	})

	t.Run("error: pending booking has no payment to fail", func(t *testing.T) {
		env := newCommandEnv()
		equip := env.seedEquipment(1)
		snap := env.seedBooking(equip, booking.StatusPending, "2026-03-12")

		err := env.payments.FailPayment(ctx, snap.ID, snap.RenterID)

		assert.True(t, errors.Is(err, errs.ErrInvalidStatus))
	})
}

func TestCancelPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("success: renter abandons the checkout", func(t *testing.T) {
		env := newCommandEnv()
		equip := env.seedEquipment(1)
		snap := env.seedHold(equip, cmdTestNow.Add(10*time.Minute), "2026-03-12")

		require.NoError(t, env.payments.CancelPayment(ctx, snap.ID, snap.RenterID))

		stored, _ := env.uow.booking(snap.ID)
		assert.Equal(t, booking.StatusCancelled.String(), stored.Status)
		assert.Equal(t, booking.PaymentCancelled.String(), stored.PaymentStatus)
	})

	t.Run("error: owner may not drive the renter's checkout", func(t *testing.T) {
		env := newCommandEnv()
		equip := env.seedEquipment(1)
		snap := env.seedHold(equip, cmdTestNow.Add(10*time.Minute), "2026-03-12")

		err := env.payments.CancelPayment(ctx, snap.ID, equip.OwnerID)

		assert.True(t, errors.Is(err, errs.ErrAccessDenied))
	})
}
