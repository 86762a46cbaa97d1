package queries

import (
	"context"
	"time"

	"agrirent/internal/domain/booking"
	"agrirent/internal/infra"
	"agrirent/internal/pkg/clock"
	"agrirent/internal/pkg/errs"
	"agrirent/internal/usecase/shared"

	"github.com/google/uuid"
)

const monthLayout = "2006-01"

type AvailabilityQueries interface {
	// CheckAvailability reports per-date remaining capacity for the given
	// dates (explicit list or contiguous range). Advisory only; commands
	// re-check under lock before any write.
	CheckAvailability(ctx context.Context, equipmentID uuid.UUID, selectedDates []string, startDate, endDate string) (*shared.AvailabilityReport, error)
	// GetCalendar summarizes a month of demand. Only confirmed and pending
	// bookings appear; open payment holds are deliberately invisible here.
	GetCalendar(ctx context.Context, equipmentID uuid.UUID, month string) (*CalendarView, error)
}

// AvailabilityReader is the read surface the availability queries run on.
type AvailabilityReader interface {
	EquipmentByID(ctx context.Context, id uuid.UUID) (*shared.EquipmentSnapshot, error)
	ActiveBookingsForEquipment(ctx context.Context, equipmentID uuid.UUID, now time.Time, excludeID *uuid.UUID) ([]*shared.BookingSnapshot, error)
	// SettledBookingsOverlapping returns confirmed and pending bookings
	// whose range overlaps [from, to], both YYYY-MM-DD inclusive.
	SettledBookingsOverlapping(ctx context.Context, equipmentID uuid.UUID, from, to string) ([]*shared.BookingSnapshot, error)
}

type availabilityQueriesImpl struct {
	reader AvailabilityReader
	clock  clock.Clock
}

func NewAvailabilityQueries(reader AvailabilityReader, clk clock.Clock) AvailabilityQueries {
	return &availabilityQueriesImpl{reader: reader, clock: clk}
}

func (q *availabilityQueriesImpl) CheckAvailability(ctx context.Context, equipmentID uuid.UUID, selectedDates []string, startDate, endDate string) (*shared.AvailabilityReport, error) {
	var requested booking.DateSet
	var err error
	if len(selectedDates) > 0 {
		requested, err = booking.NewDateSet(selectedDates)
	} else {
		requested, err = booking.NewDateSetFromRange(startDate, endDate)
	}
	if err != nil {
		return nil, err
	}

	equip, err := q.reader.EquipmentByID(ctx, equipmentID)
	if err != nil {
		return nil, wrapEquipmentReadErr(err)
	}

	active, err := q.reader.ActiveBookingsForEquipment(ctx, equipmentID, q.clock.Now(), nil)
	if err != nil {
		return nil, err
	}
	return shared.ComputeAvailability(equip, active, requested)
}

func (q *availabilityQueriesImpl) GetCalendar(ctx context.Context, equipmentID uuid.UUID, month string) (*CalendarView, error) {
	first, err := time.Parse(monthLayout, month)
	if err != nil {
		return nil, errs.Mark(errs.Newf("invalid month %q, want YYYY-MM", month), errs.ErrInvalidDateWindow)
	}
	last := first.AddDate(0, 1, -1)
	from := first.Format(booking.DateLayout)
	to := last.Format(booking.DateLayout)

	equip, err := q.reader.EquipmentByID(ctx, equipmentID)
	if err != nil {
		return nil, wrapEquipmentReadErr(err)
	}

	settled, err := q.reader.SettledBookingsOverlapping(ctx, equipmentID, from, to)
	if err != nil {
		return nil, err
	}

	type footprint struct {
		snap  *shared.BookingSnapshot
		dates booking.DateSet
	}
	footprints := make([]footprint, 0, len(settled))
	for _, b := range settled {
		ds, derr := shared.SnapshotDates(b)
		if derr != nil {
			return nil, errs.Wrap(derr, "failed to resolve booking dates")
		}
		footprints = append(footprints, footprint{snap: b, dates: ds})
	}

	view := &CalendarView{
		EquipmentID:   equip.ID,
		EquipmentName: equip.Name,
		TotalUnits:    equip.TotalQuantity,
		Month:         month,
		Days:          make([]CalendarDay, 0, last.Day()),
	}

	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		day := d.Format(booking.DateLayout)
		entry := CalendarDay{Date: day}
		for _, fp := range footprints {
			if fp.dates.Contains(day) {
				entry.BookedUnits++
				entry.Bookings = append(entry.Bookings, CalendarBooking{
					ID:       fp.snap.ID,
					RenterID: fp.snap.RenterID,
					Status:   fp.snap.Status,
				})
			}
		}
		entry.AvailableUnits = equip.TotalQuantity - entry.BookedUnits
		entry.Available = entry.AvailableUnits > 0
		view.Days = append(view.Days, entry)
	}

	return view, nil
}

func wrapEquipmentReadErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.ErrEquipmentNotFound
	}
	return err
}
