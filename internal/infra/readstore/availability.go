package readstore

import (
	"context"
	"time"

	"agrirent/internal/infra/db"
	"agrirent/internal/usecase/queries"
	"agrirent/internal/usecase/shared"

	"github.com/google/uuid"
)

// AvailabilityReadStore bundles the equipment and booking reads the
// availability queries need behind one constructor.
type AvailabilityReadStore struct {
	equipment *EquipmentReadStore
	bookings  *BookingReadStore
}

func NewAvailabilityReadStore(dbtx db.DBTX) *AvailabilityReadStore {
	return &AvailabilityReadStore{
		equipment: NewEquipmentReadStore(dbtx),
		bookings:  NewBookingReadStore(dbtx),
	}
}

func (r *AvailabilityReadStore) EquipmentByID(ctx context.Context, id uuid.UUID) (*shared.EquipmentSnapshot, error) {
	return r.equipment.FindByID(ctx, id)
}

func (r *AvailabilityReadStore) ActiveBookingsForEquipment(ctx context.Context, equipmentID uuid.UUID, now time.Time, excludeID *uuid.UUID) ([]*shared.BookingSnapshot, error) {
	return r.bookings.FindActiveForEquipment(ctx, equipmentID, now, excludeID)
}

func (r *AvailabilityReadStore) SettledBookingsOverlapping(ctx context.Context, equipmentID uuid.UUID, from, to string) ([]*shared.BookingSnapshot, error) {
	return r.bookings.FindSettledOverlapping(ctx, equipmentID, from, to)
}

var _ queries.AvailabilityReader = (*AvailabilityReadStore)(nil)
