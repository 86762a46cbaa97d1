//go:build unit

package booking_test

import (
	"errors"
	"testing"
	"time"

	"agrirent/internal/domain/booking"
	"agrirent/internal/domain/equipment"
	"agrirent/internal/pkg/clock"
	"agrirent/internal/pkg/errs"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestFactory() *booking.Factory {
	return booking.NewFactory(clock.NewMockClock(testNow), 10*time.Minute, 15, 15)
}

func newTestEquipment(t *testing.T) *equipment.Equipment {
	t.Helper()
	equip, err := equipment.NewEquipment(uuid.New(), "Kubota L3301 tractor", 2, uuid.New())
	require.NoError(t, err)
	return equip
}

func newPendingBooking(t *testing.T, dates ...string) *booking.Booking {
	t.Helper()
	if len(dates) == 0 {
		dates = []string{"2026-03-12", "2026-03-13", "2026-03-14"}
	}
	ds, err := booking.NewDateSet(dates)
	require.NoError(t, err)

	b, err := newTestFactory().NewBooking(newTestEquipment(t), uuid.New(), ds, booking.NewMoney(30000))
	require.NoError(t, err)
	return b
}

func newHeldBooking(t *testing.T) *booking.Booking {
	t.Helper()
	ds, err := booking.NewDateSet([]string{"2026-03-12", "2026-03-13"})
	require.NoError(t, err)

	b, err := newTestFactory().NewPaymentHold(newTestEquipment(t), uuid.New(), ds, booking.NewMoney(20000))
	require.NoError(t, err)
	return b
}

func TestFactory_NewBooking(t *testing.T) {
	t.Run("success: starts pending with payment pending", func(t *testing.T) {
		b := newPendingBooking(t)
		assert.Equal(t, booking.StatusPending, b.Status())
		assert.Equal(t, booking.PaymentPending, b.PaymentStatus())
		assert.False(t, b.IsPaymentHold())
		assert.Nil(t, b.PaymentHoldExpiry())
		assert.Equal(t, "2026-03-12", b.StartDate())
		assert.Equal(t, "2026-03-14", b.EndDate())
	})

	t.Run("error: past dates rejected", func(t *testing.T) {
		ds, err := booking.NewDateSet([]string{"2026-03-01"})
		require.NoError(t, err)

		_, err = newTestFactory().NewBooking(newTestEquipment(t), uuid.New(), ds, booking.NewMoney(10000))
		assert.True(t, errors.Is(err, errs.ErrInvalidDateWindow))
	})
}

func TestFactory_NewPaymentHold(t *testing.T) {
	b := newHeldBooking(t)

	assert.Equal(t, booking.StatusPaymentHold, b.Status())
	assert.Equal(t, booking.PaymentPending, b.PaymentStatus())
	assert.True(t, b.IsPaymentHold())
	require.NotNil(t, b.PaymentHoldExpiry())
	assert.Equal(t, testNow.Add(10*time.Minute), *b.PaymentHoldExpiry())
}

func TestMoney(t *testing.T) {
	t.Run("success: non-negative cents accepted", func(t *testing.T) {
		m, err := booking.NewMoneyFromCents(30000)
		require.NoError(t, err)
		assert.Equal(t, int64(30000), m.Cents())
	})

	t.Run("error: negative cents rejected", func(t *testing.T) {
		_, err := booking.NewMoneyFromCents(-1)
		assert.ErrorContains(t, err, "money cannot be negative")
	})

	t.Run("success: rescale floors the proportional amount", func(t *testing.T) {
		m := booking.NewMoney(10000)
		assert.Equal(t, int64(6666), m.Rescale(2, 3).Cents())
		assert.Equal(t, int64(0), m.Rescale(0, 3).Cents())
	})
}

func TestBooking_HoldExpired(t *testing.T) {
	b := newHeldBooking(t)

	assert.False(t, b.HoldExpired(testNow.Add(9*time.Minute)))
	assert.True(t, b.HoldExpired(testNow.Add(11*time.Minute)))

	// Holds never expire on bookings that are not holds.
	p := newPendingBooking(t)
	assert.False(t, p.HoldExpired(testNow.Add(24*time.Hour)))
}

func TestBooking_CompletePayment(t *testing.T) {
	t.Run("success: hold moves to pending owner approval", func(t *testing.T) {
		b := newHeldBooking(t)

		err := b.CompletePayment("credit_card", "txn-123")
		require.NoError(t, err)

		assert.Equal(t, booking.StatusPending, b.Status())
		assert.Equal(t, booking.PaymentCompleted, b.PaymentStatus())
		assert.False(t, b.IsPaymentHold())
		assert.Nil(t, b.PaymentHoldExpiry())
		require.NotNil(t, b.PaymentMethod())
		assert.Equal(t, "credit_card", *b.PaymentMethod())
		require.NotNil(t, b.TransactionID())
		assert.Equal(t, "txn-123", *b.TransactionID())
	})

	t.Run("error: only holds can complete payment", func(t *testing.T) {
		b := newPendingBooking(t)
		err := b.CompletePayment("credit_card", "txn-123")
		assert.True(t, errors.Is(err, errs.ErrInvalidStatus))
	})
}

func TestBooking_PaymentFailureAndCancel(t *testing.T) {
	t.Run("fail payment terminates the hold", func(t *testing.T) {
		b := newHeldBooking(t)
		require.NoError(t, b.FailPayment())
		assert.Equal(t, booking.StatusPaymentFailed, b.Status())
		assert.Equal(t, booking.PaymentFailed, b.PaymentStatus())
		assert.False(t, b.IsPaymentHold())
	})

	t.Run("cancel payment cancels the booking", func(t *testing.T) {
		b := newHeldBooking(t)
		require.NoError(t, b.CancelPayment())
		assert.Equal(t, booking.StatusCancelled, b.Status())
		assert.Equal(t, booking.PaymentCancelled, b.PaymentStatus())
	})

	t.Run("release failed marks cancelled with failed payment", func(t *testing.T) {
		b := newHeldBooking(t)
		b.ReleaseHoldFailed()
		assert.Equal(t, booking.StatusCancelled, b.Status())
		assert.Equal(t, booking.PaymentFailed, b.PaymentStatus())
		assert.Nil(t, b.PaymentHoldExpiry())
	})
}

func TestBooking_OwnerTransitions(t *testing.T) {
	t.Run("pending accepts, rejects", func(t *testing.T) {
		b := newPendingBooking(t)
		require.NoError(t, b.Confirm())
		assert.Equal(t, booking.StatusConfirmed, b.Status())

		r := newPendingBooking(t)
		require.NoError(t, r.Reject())
		assert.Equal(t, booking.StatusRejected, r.Status())
	})

	t.Run("only confirmed completes", func(t *testing.T) {
		b := newPendingBooking(t)
		assert.True(t, errors.Is(b.Complete(), errs.ErrInvalidStatus))

		require.NoError(t, b.Confirm())
		require.NoError(t, b.Complete())
		assert.Equal(t, booking.StatusCompleted, b.Status())
	})

	t.Run("terminal states refuse further transitions", func(t *testing.T) {
		b := newPendingBooking(t)
		require.NoError(t, b.Reject())

		assert.True(t, errors.Is(b.Confirm(), errs.ErrInvalidStatus))
		assert.True(t, errors.Is(b.Reject(), errs.ErrInvalidStatus))
		assert.True(t, errors.Is(b.Complete(), errs.ErrInvalidStatus))
	})
}

func TestBooking_CancelDates(t *testing.T) {
	t.Run("success: partial cancel rescales the amount by days kept", func(t *testing.T) {
		b := newPendingBooking(t, "2026-03-12", "2026-03-13", "2026-03-14")
		require.Equal(t, int64(30000), b.TotalAmount().Cents())

		toCancel, err := booking.NewDateSet([]string{"2026-03-13"})
		require.NoError(t, err)

		cancelledAll, err := b.CancelDates(toCancel)
		require.NoError(t, err)
		assert.False(t, cancelledAll)
		assert.Empty(t, cmp.Diff([]string{"2026-03-12", "2026-03-14"}, b.Dates().Days()))
		assert.Equal(t, int64(20000), b.TotalAmount().Cents())
		assert.Equal(t, "2026-03-12", b.StartDate())
		assert.Equal(t, "2026-03-14", b.EndDate())
		assert.Equal(t, booking.StatusPending, b.Status())
	})

	t.Run("success: integer rescale truncates", func(t *testing.T) {
		b := newPendingBooking(t, "2026-03-12", "2026-03-13", "2026-03-14")
		require.NoError(t, b.SetTotalAmount(booking.NewMoney(100)))

		toCancel, err := booking.NewDateSet([]string{"2026-03-14"})
		require.NoError(t, err)

		_, err = b.CancelDates(toCancel)
		require.NoError(t, err)
		assert.Equal(t, int64(66), b.TotalAmount().Cents())
	})

	t.Run("success: cancelling every date cancels the booking", func(t *testing.T) {
		b := newPendingBooking(t, "2026-03-12", "2026-03-13")

		toCancel, err := booking.NewDateSet([]string{"2026-03-12", "2026-03-13"})
		require.NoError(t, err)

		cancelledAll, err := b.CancelDates(toCancel)
		require.NoError(t, err)
		assert.True(t, cancelledAll)
		assert.Equal(t, booking.StatusCancelled, b.Status())
		assert.True(t, b.Dates().IsEmpty())
		assert.Equal(t, "", b.StartDate())
		assert.Equal(t, "", b.EndDate())
	})

	t.Run("error: dates outside the booking are rejected atomically", func(t *testing.T) {
		b := newPendingBooking(t, "2026-03-12", "2026-03-13")

		toCancel, err := booking.NewDateSet([]string{"2026-03-13", "2026-03-20"})
		require.NoError(t, err)

		_, err = b.CancelDates(toCancel)
		assert.True(t, errors.Is(err, errs.ErrDateNotInBooking))
		// Nothing changed.
		assert.Empty(t, cmp.Diff([]string{"2026-03-12", "2026-03-13"}, b.Dates().Days()))
	})

	t.Run("error: holds cannot cancel individual dates", func(t *testing.T) {
		b := newHeldBooking(t)

		toCancel, err := booking.NewDateSet([]string{"2026-03-12"})
		require.NoError(t, err)

		_, err = b.CancelDates(toCancel)
		assert.True(t, errors.Is(err, errs.ErrInvalidStatus))
	})
}
