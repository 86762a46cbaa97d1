package booking

import (
	"time"

	"agrirent/internal/domain/equipment"
	"agrirent/internal/pkg/clock"

	"github.com/google/uuid"
)

// Factory builds bookings with the deployment's window policy applied.
type Factory struct {
	Clock      clock.Clock
	HoldTTL    time.Duration
	WindowDays int
	MaxDates   int
}

func NewFactory(clk clock.Clock, holdTTL time.Duration, windowDays, maxDates int) *Factory {
	return &Factory{
		Clock:      clk,
		HoldTTL:    holdTTL,
		WindowDays: windowDays,
		MaxDates:   maxDates,
	}
}

// NewBooking creates a direct booking awaiting owner approval.
func (f *Factory) NewBooking(equip *equipment.Equipment, renterID uuid.UUID, dates DateSet, amount Money) (*Booking, error) {
	if err := dates.ValidateWindow(f.Clock.Now(), f.WindowDays, f.MaxDates); err != nil {
		return nil, err
	}
	return newBooking(equip.ID(), renterID, equip.OwnerID(), dates, amount), nil
}

// NewPaymentHold creates a booking that soft-reserves capacity until the
// hold expiry; payment has to complete before then.
func (f *Factory) NewPaymentHold(equip *equipment.Equipment, renterID uuid.UUID, dates DateSet, amount Money) (*Booking, error) {
	if err := dates.ValidateWindow(f.Clock.Now(), f.WindowDays, f.MaxDates); err != nil {
		return nil, err
	}

	b := newBooking(equip.ID(), renterID, equip.OwnerID(), dates, amount)
	expiry := f.Clock.Now().Add(f.HoldTTL)
	b.status = StatusPaymentHold
	b.isPaymentHold = true
	b.paymentHoldExpiry = &expiry
	return b, nil
}
