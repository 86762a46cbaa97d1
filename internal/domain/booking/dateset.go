package booking

import (
	"sort"
	"time"

	"agrirent/internal/pkg/errs"
)

const DateLayout = "2006-01-02"

// DateSet is the ordered set of calendar days a booking occupies. Days are
// ISO date strings; arithmetic is done on date-only UTC values so a range
// crossing a daylight-saving boundary never skips or duplicates a day.
type DateSet struct {
	days []string
}

// ExpandRange enumerates every calendar day from start to end inclusive.
func ExpandRange(startDate, endDate string) ([]string, error) {
	start, err := parseDay(startDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDay(endDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, errs.Newf("end date %s is before start date %s", endDate, startDate)
	}

	var days []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(DateLayout))
	}
	return days, nil
}

// NewDateSet normalizes an explicit date list: sorted, duplicates removed.
func NewDateSet(dates []string) (DateSet, error) {
	if len(dates) == 0 {
		return DateSet{}, errs.ErrNoDatesProvided
	}

	seen := make(map[string]struct{}, len(dates))
	days := make([]string, 0, len(dates))
	for _, d := range dates {
		if _, err := parseDay(d); err != nil {
			return DateSet{}, err
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, d)
	}
	sort.Strings(days)

	return DateSet{days: days}, nil
}

func NewDateSetFromRange(startDate, endDate string) (DateSet, error) {
	days, err := ExpandRange(startDate, endDate)
	if err != nil {
		return DateSet{}, err
	}
	return DateSet{days: days}, nil
}

func (s DateSet) Days() []string {
	out := make([]string, len(s.days))
	copy(out, s.days)
	return out
}

func (s DateSet) Len() int {
	return len(s.days)
}

func (s DateSet) IsEmpty() bool {
	return len(s.days) == 0
}

func (s DateSet) Contains(day string) bool {
	i := sort.SearchStrings(s.days, day)
	return i < len(s.days) && s.days[i] == day
}

// Overlaps reports whether the two sets share at least one day.
func (s DateSet) Overlaps(other DateSet) bool {
	for _, d := range other.days {
		if s.Contains(d) {
			return true
		}
	}
	return false
}

// Subtract returns s without the given days, plus the days that were not
// members of s in the first place.
func (s DateSet) Subtract(toRemove DateSet) (remaining DateSet, notMembers []string) {
	for _, d := range toRemove.days {
		if !s.Contains(d) {
			notMembers = append(notMembers, d)
		}
	}

	days := make([]string, 0, len(s.days))
	for _, d := range s.days {
		if !toRemove.Contains(d) {
			days = append(days, d)
		}
	}
	return DateSet{days: days}, notMembers
}

// Bounds returns the min/max day of the set, the legacy start/end pair kept
// for range-only consumers.
func (s DateSet) Bounds() (startDate, endDate string) {
	if len(s.days) == 0 {
		return "", ""
	}
	return s.days[0], s.days[len(s.days)-1]
}

// ValidateWindow enforces the booking window: no past days, nothing beyond
// today+horizonDays (both boundaries inclusive), and at most maxDates days.
func (s DateSet) ValidateWindow(now time.Time, horizonDays, maxDates int) error {
	if len(s.days) == 0 {
		return errs.ErrNoDatesProvided
	}
	if len(s.days) > maxDates {
		return errs.Mark(
			errs.Newf("cannot book more than %d dates at once", maxDates),
			errs.ErrInvalidDateWindow)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	latest := today.AddDate(0, 0, horizonDays)

	for _, d := range s.days {
		day, err := parseDay(d)
		if err != nil {
			return err
		}
		if day.Before(today) {
			return errs.Mark(
				errs.Newf("date %s cannot be in the past", d),
				errs.ErrInvalidDateWindow)
		}
		if day.After(latest) {
			return errs.Mark(
				errs.Newf("date %s is beyond the %d-day booking window, latest allowed: %s",
					d, horizonDays, latest.Format(DateLayout)),
				errs.ErrInvalidDateWindow)
		}
	}
	return nil
}

func parseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, errs.Newf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}
