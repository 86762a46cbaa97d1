package shared

import (
	"context"
	"time"

	"agrirent/internal/domain/booking"
	"agrirent/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Equipment() EquipmentRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	EquipmentByID(ctx context.Context, id uuid.UUID) (*EquipmentSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	// ActiveBookingsForEquipment returns the reservations that count against
	// capacity: confirmed, pending, and payment holds unexpired at now.
	ActiveBookingsForEquipment(ctx context.Context, equipmentID uuid.UUID, now time.Time, excludeID *uuid.UUID) ([]*BookingSnapshot, error)
}

type EquipmentSnapshot struct {
	ID            uuid.UUID
	Name          string
	TotalQuantity int
	OwnerID       uuid.UUID
}

type BookingSnapshot struct {
	ID                uuid.UUID
	EquipmentID       uuid.UUID
	RenterID          uuid.UUID
	OwnerID           uuid.UUID
	Dates             []string // empty on legacy range-only rows
	StartDate         string
	EndDate           string
	TotalAmountCents  int64
	Status            string
	PaymentStatus     string
	IsPaymentHold     bool
	PaymentHoldExpiry *time.Time
	PaymentMethod     *string
	TransactionID     *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type BookingRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, b *booking.Booking) (uuid.UUID, error)
	// Update persists the aggregate with a status guard: the row is only
	// written while its stored status still equals expectedStatus, so a
	// transition lost to a concurrent writer surfaces as KindConflict.
	Update(ctx context.Context, dbtx db.DBTX, b *booking.Booking, expectedStatus booking.Status) error
	// ExpireHolds bulk-cancels payment holds past expiry, returning the count.
	ExpireHolds(ctx context.Context, dbtx db.DBTX, now time.Time) (int64, error)
}

type EquipmentRepository interface {
	// LockByID reads the equipment row FOR UPDATE, serializing concurrent
	// check-then-write transitions on the same unit.
	LockByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*EquipmentSnapshot, error)
}

// SnapshotDates resolves a snapshot's temporal footprint: the explicit date
// set when present, otherwise the legacy start/end range expanded.
func SnapshotDates(b *BookingSnapshot) (booking.DateSet, error) {
	if len(b.Dates) > 0 {
		return booking.NewDateSet(b.Dates)
	}
	return booking.NewDateSetFromRange(b.StartDate, b.EndDate)
}

// ToAggregate reconstructs the domain aggregate from a stored snapshot.
func (b *BookingSnapshot) ToAggregate() (*booking.Booking, error) {
	var dates booking.DateSet
	if len(b.Dates) > 0 || b.StartDate != "" {
		var err error
		dates, err = SnapshotDates(b)
		if err != nil {
			return nil, err
		}
	}

	return booking.ReconstructBooking(
		b.ID, b.EquipmentID, b.RenterID, b.OwnerID,
		dates,
		b.StartDate, b.EndDate,
		booking.NewMoney(b.TotalAmountCents),
		booking.Status(b.Status),
		booking.PaymentStatus(b.PaymentStatus),
		b.IsPaymentHold,
		b.PaymentHoldExpiry,
		b.PaymentMethod, b.TransactionID,
		b.CreatedAt, b.UpdatedAt,
	), nil
}

// SnapshotFromAggregate is the write-side inverse of ToAggregate, used to
// hand a freshly mutated aggregate back to callers without re-reading.
func SnapshotFromAggregate(b *booking.Booking) *BookingSnapshot {
	return &BookingSnapshot{
		ID:                b.ID(),
		EquipmentID:       b.EquipmentID(),
		RenterID:          b.RenterID(),
		OwnerID:           b.OwnerID(),
		Dates:             b.Dates().Days(),
		StartDate:         b.StartDate(),
		EndDate:           b.EndDate(),
		TotalAmountCents:  b.TotalAmount().Cents(),
		Status:            b.Status().String(),
		PaymentStatus:     b.PaymentStatus().String(),
		IsPaymentHold:     b.IsPaymentHold(),
		PaymentHoldExpiry: b.PaymentHoldExpiry(),
		PaymentMethod:     b.PaymentMethod(),
		TransactionID:     b.TransactionID(),
		CreatedAt:         b.CreatedAt(),
		UpdatedAt:         b.UpdatedAt(),
	}
}
