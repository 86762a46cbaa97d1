package repository

import (
	"context"
	"time"

	"agrirent/internal/domain/booking"
	"agrirent/internal/infra"
	"agrirent/internal/infra/db"
	"agrirent/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

const createBookingSQL = `
INSERT INTO bookings (
	id, equipment_id, renter_id, owner_id,
	booked_dates, start_date, end_date,
	total_amount_cents, status, payment_status,
	is_payment_hold, payment_hold_expiry,
	payment_method, transaction_id
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING id`

func (r *BookingRepository) Create(ctx context.Context, dbtx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	var id uuid.UUID
	err := dbtx.QueryRow(ctx, createBookingSQL,
		b.ID(), b.EquipmentID(), b.RenterID(), b.OwnerID(),
		b.Dates().Days(), b.StartDate(), b.EndDate(),
		b.TotalAmount().Cents(), b.Status().String(), b.PaymentStatus().String(),
		b.IsPaymentHold(), b.PaymentHoldExpiry(),
		b.PaymentMethod(), b.TransactionID(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}
	return id, nil
}

const updateBookingSQL = `
UPDATE bookings SET
	booked_dates = $3,
	start_date = $4,
	end_date = $5,
	total_amount_cents = $6,
	status = $7,
	payment_status = $8,
	is_payment_hold = $9,
	payment_hold_expiry = $10,
	payment_method = $11,
	transaction_id = $12,
	updated_at = now()
WHERE id = $1 AND status = $2`

// Update writes the aggregate back under a status guard. Zero rows means a
// concurrent transaction moved the booking first; the stale write is
// rejected instead of clobbering it.
func (r *BookingRepository) Update(ctx context.Context, dbtx db.DBTX, b *booking.Booking, expectedStatus booking.Status) error {
	tag, err := dbtx.Exec(ctx, updateBookingSQL,
		b.ID(), expectedStatus.String(),
		b.Dates().Days(), b.StartDate(), b.EndDate(),
		b.TotalAmount().Cents(), b.Status().String(), b.PaymentStatus().String(),
		b.IsPaymentHold(), b.PaymentHoldExpiry(),
		b.PaymentMethod(), b.TransactionID(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking status changed concurrently", nil, infra.KindConflict)
	}
	return nil
}

const expireHoldsSQL = `
UPDATE bookings SET
	status = 'cancelled',
	payment_status = 'failed',
	is_payment_hold = FALSE,
	payment_hold_expiry = NULL,
	updated_at = now()
WHERE status = 'payment_hold'
  AND is_payment_hold
  AND payment_hold_expiry <= $1`

func (r *BookingRepository) ExpireHolds(ctx context.Context, dbtx db.DBTX, now time.Time) (int64, error) {
	tag, err := dbtx.Exec(ctx, expireHoldsSQL, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to expire payment holds", err)
	}
	return tag.RowsAffected(), nil
}

var _ shared.BookingRepository = (*BookingRepository)(nil)
