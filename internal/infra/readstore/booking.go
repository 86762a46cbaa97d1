package readstore

import (
	"context"
	"time"

	"agrirent/internal/infra"
	"agrirent/internal/infra/db"
	"agrirent/internal/pkg/pgconv"
	"agrirent/internal/usecase/queries"
	"agrirent/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

const bookingViewSQL = `
SELECT b.id, b.equipment_id, e.name, b.renter_id, b.owner_id,
       b.booked_dates, b.start_date, b.end_date,
       b.total_amount_cents, b.status, b.payment_status,
       b.is_payment_hold, b.payment_hold_expiry,
       b.payment_method, b.transaction_id,
       b.created_at, b.updated_at
FROM bookings b
JOIN equipment e ON e.id = b.equipment_id
WHERE b.id = $1`

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	var v queries.BookingView
	err := r.db.QueryRow(ctx, bookingViewSQL, id).Scan(
		&v.ID, &v.EquipmentID, &v.EquipmentName, &v.RenterID, &v.OwnerID,
		&v.BookedDates, &v.StartDate, &v.EndDate,
		&v.TotalAmountCents, &v.Status, &v.PaymentStatus,
		&v.IsPaymentHold, &v.PaymentHoldExpiry,
		&v.PaymentMethod, &v.TransactionID,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return &v, nil
}

// Static SQL with nullable params instead of string building; NULL disables
// the matching condition.
const bookingListSQL = `
SELECT b.id, b.equipment_id, e.name, b.start_date, b.end_date,
       b.total_amount_cents, b.status, b.created_at
FROM bookings b
JOIN equipment e ON e.id = b.equipment_id
WHERE ($1::uuid IS NULL OR b.renter_id = $1)
  AND ($2::uuid IS NULL OR b.owner_id = $2)
  AND ($3::uuid IS NULL OR b.equipment_id = $3)
  AND ($4::text IS NULL OR b.status = $4)
  AND ($5::text IS NULL OR b.end_date >= $5)
  AND ($6::text IS NULL OR b.start_date <= $6)
ORDER BY b.created_at DESC
LIMIT $7`

func (r *BookingReadStore) FindFiltered(ctx context.Context, filter queries.BookingListFilter, limit int32) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, bookingListSQL,
		filter.RenterID, filter.OwnerID, filter.EquipmentID,
		filter.Status, filter.From, filter.To, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var result []*queries.BookingListItem
	for rows.Next() {
		var item queries.BookingListItem
		if err := rows.Scan(
			&item.ID, &item.EquipmentID, &item.EquipmentName,
			&item.StartDate, &item.EndDate,
			&item.TotalAmountCents, &item.Status, &item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking rows", err)
	}
	return result, nil
}

const bookingSnapshotColumns = `
SELECT id, equipment_id, renter_id, owner_id,
       booked_dates, start_date, end_date,
       total_amount_cents, status, payment_status,
       is_payment_hold, payment_hold_expiry,
       payment_method, transaction_id,
       created_at, updated_at
FROM bookings`

const bookingSnapshotByIDSQL = bookingSnapshotColumns + `
WHERE id = $1`

// FindSnapshotByID reads the raw row for command-side reconstruction,
// without the equipment join the view carries.
func (r *BookingReadStore) FindSnapshotByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	var s shared.BookingSnapshot
	err := r.db.QueryRow(ctx, bookingSnapshotByIDSQL, id).Scan(
		&s.ID, &s.EquipmentID, &s.RenterID, &s.OwnerID,
		&s.Dates, &s.StartDate, &s.EndDate,
		&s.TotalAmountCents, &s.Status, &s.PaymentStatus,
		&s.IsPaymentHold, &s.PaymentHoldExpiry,
		&s.PaymentMethod, &s.TransactionID,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking snapshot", err)
	}
	return &s, nil
}

const activeBookingsSQL = bookingSnapshotColumns + `
WHERE equipment_id = $1
  AND (status IN ('confirmed', 'pending')
       OR (status = 'payment_hold' AND payment_hold_expiry > $2))
  AND ($3::uuid IS NULL OR id <> $3)`

// FindActiveForEquipment returns the bookings that count against capacity
// at the given instant: confirmed, pending, and unexpired payment holds.
func (r *BookingReadStore) FindActiveForEquipment(ctx context.Context, equipmentID uuid.UUID, now time.Time, excludeID *uuid.UUID) ([]*shared.BookingSnapshot, error) {
	rows, err := r.db.Query(ctx, activeBookingsSQL, equipmentID, now, excludeID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find active bookings", err)
	}
	return scanSnapshots(rows)
}

const settledOverlappingSQL = bookingSnapshotColumns + `
WHERE equipment_id = $1
  AND status IN ('confirmed', 'pending')
  AND start_date <= $3
  AND end_date >= $2`

// FindSettledOverlapping returns confirmed and pending bookings whose range
// overlaps [from, to]. Open payment holds are excluded; they only matter to
// the booking path, not to calendar consumers.
func (r *BookingReadStore) FindSettledOverlapping(ctx context.Context, equipmentID uuid.UUID, from, to string) ([]*shared.BookingSnapshot, error) {
	rows, err := r.db.Query(ctx, settledOverlappingSQL, equipmentID, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find overlapping bookings", err)
	}
	return scanSnapshots(rows)
}

func scanSnapshots(rows pgx.Rows) ([]*shared.BookingSnapshot, error) {
	defer rows.Close()

	var result []*shared.BookingSnapshot
	for rows.Next() {
		var s shared.BookingSnapshot
		if err := rows.Scan(
			&s.ID, &s.EquipmentID, &s.RenterID, &s.OwnerID,
			&s.Dates, &s.StartDate, &s.EndDate,
			&s.TotalAmountCents, &s.Status, &s.PaymentStatus,
			&s.IsPaymentHold, &s.PaymentHoldExpiry,
			&s.PaymentMethod, &s.TransactionID,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking snapshot", err)
		}
		result = append(result, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking snapshots", err)
	}
	return result, nil
}
