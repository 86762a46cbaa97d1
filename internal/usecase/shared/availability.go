package shared

import (
	"agrirent/internal/domain/booking"
	"agrirent/internal/pkg/errs"
)

type DateAvailability struct {
	AvailableUnits int  `json:"availableUnits"`
	TotalUnits     int  `json:"totalUnits"`
	BookingsCount  int  `json:"bookingsCount"`
	Available      bool `json:"available"`
}

type AvailabilityReport struct {
	Available bool `json:"available"`
	// AvailableUnits is the minimum per-date count across the requested set.
	// It is not a guarantee that many units are free simultaneously for the
	// whole window; see DESIGN.md.
	AvailableUnits   int                         `json:"availableUnits"`
	TotalUnits       int                         `json:"totalUnits"`
	RequestedDates   []string                    `json:"requestedDates"`
	DateAvailability map[string]DateAvailability `json:"dateAvailability"`
	UnavailableDates []string                    `json:"unavailableDates"`
}

// ComputeAvailability derives per-date remaining capacity for the requested
// dates from the reservations currently counting against the unit. The
// caller supplies the active set (confirmed, pending, unexpired holds) and
// decides whether a reservation is excluded from its own re-check.
// Availability is always computed live from stored reservations, never from
// a cached counter.
func ComputeAvailability(equip *EquipmentSnapshot, active []*BookingSnapshot, requested booking.DateSet) (*AvailabilityReport, error) {
	if requested.IsEmpty() {
		return nil, errs.ErrNoDatesProvided
	}

	footprints := make([]booking.DateSet, 0, len(active))
	for _, b := range active {
		ds, err := SnapshotDates(b)
		if err != nil {
			return nil, errs.Wrap(err, "failed to resolve booking dates")
		}
		footprints = append(footprints, ds)
	}

	report := &AvailabilityReport{
		Available:        true,
		AvailableUnits:   equip.TotalQuantity,
		TotalUnits:       equip.TotalQuantity,
		RequestedDates:   requested.Days(),
		DateAvailability: make(map[string]DateAvailability, requested.Len()),
	}

	for _, day := range requested.Days() {
		count := 0
		for _, ds := range footprints {
			if ds.Contains(day) {
				count++
			}
		}

		availableForDate := equip.TotalQuantity - count
		report.DateAvailability[day] = DateAvailability{
			AvailableUnits: availableForDate,
			TotalUnits:     equip.TotalQuantity,
			BookingsCount:  count,
			Available:      availableForDate > 0,
		}

		if availableForDate <= 0 {
			report.Available = false
			report.UnavailableDates = append(report.UnavailableDates, day)
		}
		if availableForDate < report.AvailableUnits {
			report.AvailableUnits = availableForDate
		}
	}

	return report, nil
}
