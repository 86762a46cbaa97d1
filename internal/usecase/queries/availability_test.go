//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"agrirent/internal/infra"
	"agrirent/internal/pkg/clock"
	"agrirent/internal/pkg/errs"
	"agrirent/internal/usecase/queries"
	"agrirent/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var queryTestNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

// fakeReader serves a single equipment unit and canned booking sets.
type fakeReader struct {
	equipment *shared.EquipmentSnapshot
	active    []*shared.BookingSnapshot
	settled   []*shared.BookingSnapshot
}

func (r *fakeReader) EquipmentByID(_ context.Context, id uuid.UUID) (*shared.EquipmentSnapshot, error) {
	if r.equipment == nil || r.equipment.ID != id {
		return nil, infra.WrapRepoErr("equipment not found", nil, infra.KindNotFound)
	}
	return r.equipment, nil
}

func (r *fakeReader) ActiveBookingsForEquipment(_ context.Context, _ uuid.UUID, _ time.Time, _ *uuid.UUID) ([]*shared.BookingSnapshot, error) {
	return r.active, nil
}

func (r *fakeReader) SettledBookingsOverlapping(_ context.Context, _ uuid.UUID, _, _ string) ([]*shared.BookingSnapshot, error) {
	return r.settled, nil
}

func newAvailabilityQueries(reader *fakeReader) queries.AvailabilityQueries {
	return queries.NewAvailabilityQueries(reader, clock.NewMockClock(queryTestNow))
}

func bookingOn(status string, dates ...string) *shared.BookingSnapshot {
	return &shared.BookingSnapshot{
		ID:        uuid.New(),
		RenterID:  uuid.New(),
		Dates:     dates,
		StartDate: dates[0],
		EndDate:   dates[len(dates)-1],
		Status:    status,
	}
}

func TestCheckAvailability(t *testing.T) {
	ctx := context.Background()
	equip := &shared.EquipmentSnapshot{
		ID:            uuid.New(),
		Name:          "baler",
		TotalQuantity: 2,
		OwnerID:       uuid.New(),
	}

	t.Run("success: explicit date list", func(t *testing.T) {
		q := newAvailabilityQueries(&fakeReader{
			equipment: equip,
			active:    []*shared.BookingSnapshot{bookingOn("confirmed", "2026-03-12")},
		})

		report, err := q.CheckAvailability(ctx, equip.ID, []string{"2026-03-12", "2026-03-13"}, "", "")

		require.NoError(t, err)
		assert.True(t, report.Available)
		assert.Equal(t, 1, report.DateAvailability["2026-03-12"].AvailableUnits)
		assert.Equal(t, 2, report.DateAvailability["2026-03-13"].AvailableUnits)
	})

	t.Run("success: range request", func(t *testing.T) {
		q := newAvailabilityQueries(&fakeReader{equipment: equip})

		report, err := q.CheckAvailability(ctx, equip.ID, nil, "2026-03-12", "2026-03-13")

		require.NoError(t, err)
		assert.Equal(t, []string{"2026-03-12", "2026-03-13"}, report.RequestedDates)
	})

	t.Run("error: unknown equipment", func(t *testing.T) {
		q := newAvailabilityQueries(&fakeReader{equipment: equip})

		_, err := q.CheckAvailability(ctx, uuid.New(), []string{"2026-03-12"}, "", "")

		assert.True(t, errors.Is(err, errs.ErrEquipmentNotFound))
	})

	t.Run("error: no dates at all", func(t *testing.T) {
		q := newAvailabilityQueries(&fakeReader{equipment: equip})

		_, err := q.CheckAvailability(ctx, equip.ID, nil, "", "")

		assert.Error(t, err)
	})
}

func TestGetCalendar(t *testing.T) {
	ctx := context.Background()
	equip := &shared.EquipmentSnapshot{
		ID:            uuid.New(),
		Name:          "baler",
		TotalQuantity: 2,
		OwnerID:       uuid.New(),
	}

	t.Run("success: one day per calendar day with per-day counts", func(t *testing.T) {
		q := newAvailabilityQueries(&fakeReader{
			equipment: equip,
			settled: []*shared.BookingSnapshot{
				bookingOn("confirmed", "2026-03-12", "2026-03-13"),
				bookingOn("pending", "2026-03-12"),
			},
		})

		view, err := q.GetCalendar(ctx, equip.ID, "2026-03")

		require.NoError(t, err)
		assert.Equal(t, equip.ID, view.EquipmentID)
		assert.Equal(t, "baler", view.EquipmentName)
		assert.Equal(t, 2, view.TotalUnits)
		assert.Equal(t, "2026-03", view.Month)
		require.Len(t, view.Days, 31)

		assert.Equal(t, "2026-03-01", view.Days[0].Date)
		assert.Equal(t, "2026-03-31", view.Days[30].Date)

		day12 := view.Days[11]
		assert.Equal(t, "2026-03-12", day12.Date)
		assert.Equal(t, 2, day12.BookedUnits)
		assert.Equal(t, 0, day12.AvailableUnits)
		assert.False(t, day12.Available)
		require.Len(t, day12.Bookings, 2)

		day13 := view.Days[12]
		assert.Equal(t, 1, day13.BookedUnits)
		assert.True(t, day13.Available)

		day14 := view.Days[13]
		assert.Equal(t, 0, day14.BookedUnits)
		assert.Equal(t, 2, day14.AvailableUnits)
		assert.Empty(t, day14.Bookings)
	})

	t.Run("success: february has the right day count", func(t *testing.T) {
		q := newAvailabilityQueries(&fakeReader{equipment: equip})

		view, err := q.GetCalendar(ctx, equip.ID, "2026-02")

		require.NoError(t, err)
		assert.Len(t, view.Days, 28)
	})

	t.Run("success: legacy range-only rows count across their range", func(t *testing.T) {
		legacy := &shared.BookingSnapshot{
			ID:        uuid.New(),
			RenterID:  uuid.New(),
			StartDate: "2026-03-12",
			EndDate:   "2026-03-14",
			Status:    "confirmed",
		}
		q := newAvailabilityQueries(&fakeReader{
			equipment: equip,
			settled:   []*shared.BookingSnapshot{legacy},
		})

		view, err := q.GetCalendar(ctx, equip.ID, "2026-03")

		require.NoError(t, err)
		assert.Equal(t, 1, view.Days[11].BookedUnits)
		assert.Equal(t, 1, view.Days[12].BookedUnits)
		assert.Equal(t, 1, view.Days[13].BookedUnits)
		assert.Equal(t, 0, view.Days[14].BookedUnits)
	})

	t.Run("error: malformed month", func(t *testing.T) {
		q := newAvailabilityQueries(&fakeReader{equipment: equip})

		_, err := q.GetCalendar(ctx, equip.ID, "March 2026")

		assert.True(t, errors.Is(err, errs.ErrInvalidDateWindow))
	})

	t.Run("error: unknown equipment", func(t *testing.T) {
		q := newAvailabilityQueries(&fakeReader{equipment: equip})

		_, err := q.GetCalendar(ctx, uuid.New(), "2026-03")

		assert.True(t, errors.Is(err, errs.ErrEquipmentNotFound))
	})
}
