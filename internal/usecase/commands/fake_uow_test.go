//go:build unit

package commands_test

import (
	"context"
	"time"

	"agrirent/internal/domain/booking"
	"agrirent/internal/infra"
	"agrirent/internal/infra/db"
	"agrirent/internal/usecase/shared"

	"github.com/google/uuid"
)

// fakeUoW is an in-memory UnitOfWork. Within runs the closure against a
// copy of the stores and publishes it only on success, mirroring commit
// and rollback semantics.
type fakeUoW struct {
	equipment map[uuid.UUID]shared.EquipmentSnapshot
	bookings  map[uuid.UUID]shared.BookingSnapshot
}

func newFakeUoW() *fakeUoW {
	return &fakeUoW{
		equipment: make(map[uuid.UUID]shared.EquipmentSnapshot),
		bookings:  make(map[uuid.UUID]shared.BookingSnapshot),
	}
}

func (u *fakeUoW) addEquipment(e shared.EquipmentSnapshot) {
	u.equipment[e.ID] = e
}

func (u *fakeUoW) addBooking(b shared.BookingSnapshot) {
	u.bookings[b.ID] = b
}

func (u *fakeUoW) booking(id uuid.UUID) (shared.BookingSnapshot, bool) {
	b, ok := u.bookings[id]
	return b, ok
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	staged := &fakeUoW{
		equipment: make(map[uuid.UUID]shared.EquipmentSnapshot, len(u.equipment)),
		bookings:  make(map[uuid.UUID]shared.BookingSnapshot, len(u.bookings)),
	}
	for k, v := range u.equipment {
		staged.equipment[k] = v
	}
	for k, v := range u.bookings {
		staged.bookings[k] = v
	}

	if err := fn(ctx, &fakeTx{store: staged}); err != nil {
		return err
	}

	u.equipment = staged.equipment
	u.bookings = staged.bookings
	return nil
}

func (u *fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) CommandReads() shared.CommandReads {
	return &fakeReads{store: u}
}

type fakeTx struct {
	store *fakeUoW
}

func (t *fakeTx) Bookings() shared.BookingRepository   { return &fakeBookingRepo{store: t.store} }
func (t *fakeTx) Equipment() shared.EquipmentRepository { return &fakeEquipmentRepo{store: t.store} }
func (t *fakeTx) Reads() shared.CommandReads            { return &fakeReads{store: t.store} }
func (t *fakeTx) DB() db.DBTX                           { return nil }

type fakeEquipmentRepo struct {
	store *fakeUoW
}

func (r *fakeEquipmentRepo) LockByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*shared.EquipmentSnapshot, error) {
	e, ok := r.store.equipment[id]
	if !ok {
		return nil, infra.WrapRepoErr("equipment not found", nil, infra.KindNotFound)
	}
	snap := e
	return &snap, nil
}

type fakeBookingRepo struct {
	store *fakeUoW
}

func (r *fakeBookingRepo) Create(_ context.Context, _ db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	snap := shared.SnapshotFromAggregate(b)
	snap.CreatedAt = time.Now()
	snap.UpdatedAt = snap.CreatedAt
	r.store.bookings[snap.ID] = *snap
	return snap.ID, nil
}

func (r *fakeBookingRepo) Update(_ context.Context, _ db.DBTX, b *booking.Booking, expectedStatus booking.Status) error {
	current, ok := r.store.bookings[b.ID()]
	if !ok || current.Status != expectedStatus.String() {
		return infra.WrapRepoErr("booking status changed concurrently", nil, infra.KindConflict)
	}
	snap := shared.SnapshotFromAggregate(b)
	snap.CreatedAt = current.CreatedAt
	snap.UpdatedAt = time.Now()
	r.store.bookings[snap.ID] = *snap
	return nil
}

func (r *fakeBookingRepo) ExpireHolds(_ context.Context, _ db.DBTX, now time.Time) (int64, error) {
	var released int64
	for id, b := range r.store.bookings {
		if b.Status == booking.StatusPaymentHold.String() && b.PaymentHoldExpiry != nil && !b.PaymentHoldExpiry.After(now) {
			b.Status = booking.StatusCancelled.String()
			b.PaymentStatus = booking.PaymentFailed.String()
			b.IsPaymentHold = false
			b.PaymentHoldExpiry = nil
			r.store.bookings[id] = b
			released++
		}
	}
	return released, nil
}

type fakeReads struct {
	store *fakeUoW
}

func (r *fakeReads) EquipmentByID(_ context.Context, id uuid.UUID) (*shared.EquipmentSnapshot, error) {
	e, ok := r.store.equipment[id]
	if !ok {
		return nil, infra.WrapRepoErr("equipment not found", nil, infra.KindNotFound)
	}
	snap := e
	return &snap, nil
}

func (r *fakeReads) BookingByID(_ context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	b, ok := r.store.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	snap := b
	return &snap, nil
}

func (r *fakeReads) ActiveBookingsForEquipment(_ context.Context, equipmentID uuid.UUID, now time.Time, excludeID *uuid.UUID) ([]*shared.BookingSnapshot, error) {
	var result []*shared.BookingSnapshot
	for id, b := range r.store.bookings {
		if b.EquipmentID != equipmentID {
			continue
		}
		if excludeID != nil && id == *excludeID {
			continue
		}
		active := b.Status == booking.StatusConfirmed.String() || b.Status == booking.StatusPending.String() ||
			(b.Status == booking.StatusPaymentHold.String() && b.PaymentHoldExpiry != nil && b.PaymentHoldExpiry.After(now))
		if !active {
			continue
		}
		snap := b
		result = append(result, &snap)
	}
	return result, nil
}

var _ shared.UnitOfWork = (*fakeUoW)(nil)
