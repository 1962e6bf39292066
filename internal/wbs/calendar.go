package wbs

import (
	"time"

	"github.com/kkurihara/planboard/internal/domain"
)

// truncateToDay strips the time-of-day component, keeping the civil date
// in UTC. All calendar arithmetic operates on these normalized values.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ExpandHolidays flattens holiday entries into a set of individual
// non-working days, clipped to the inclusive [from, to] window. Ranged
// entries expand to every contained day; overlapping entries collapse
// because the result is keyed by day.
func ExpandHolidays(entries []*domain.Holiday, from, to time.Time) map[time.Time]struct{} {
	from = truncateToDay(from)
	to = truncateToDay(to)
	days := make(map[time.Time]struct{})
	for _, h := range entries {
		start := truncateToDay(h.Date)
		end := start
		if h.EndDate != nil {
			end = truncateToDay(*h.EndDate)
		}
		if end.Before(start) {
			continue
		}
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			if d.Before(from) || d.After(to) {
				continue
			}
			days[d] = struct{}{}
		}
	}
	return days
}

// IsWorkingDay reports whether day is neither a weekend nor contained in
// the holiday set.
func IsWorkingDay(day time.Time, holidays map[time.Time]struct{}) bool {
	day = truncateToDay(day)
	if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}
	_, holiday := holidays[day]
	return !holiday
}

// CountDays returns the inclusive number of calendar days between from and
// to, or 0 when to precedes from.
func CountDays(from, to time.Time) int {
	from = truncateToDay(from)
	to = truncateToDay(to)
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from).Hours()/24) + 1
}

// CountWorkingDays returns the number of working days in the inclusive
// [from, to] window.
func CountWorkingDays(from, to time.Time, holidays map[time.Time]struct{}) int {
	from = truncateToDay(from)
	to = truncateToDay(to)
	count := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if IsWorkingDay(d, holidays) {
			count++
		}
	}
	return count
}
