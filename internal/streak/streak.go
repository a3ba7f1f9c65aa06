// Package streak computes the rolling engagement streak from a learner's
// activity history. The reference date is always an explicit parameter so
// the arithmetic stays deterministic under test.
package streak

import (
	"math"
	"sort"
	"time"
)

// Current returns the number of consecutive calendar days, ending at the
// reference day or the day before it, on which the learner was active.
// A gap of more than one full day breaks the chain; in particular a learner
// active yesterday but not yet today still holds their streak.
func Current(activityDates []time.Time, reference time.Time) int {
	days := distinctDays(activityDates)
	if len(days) == 0 {
		return 0
	}

	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	refDay := truncateDay(reference)
	if gapDays(days[0], refDay) > 1 {
		return 0
	}

	count := 1
	cursor := days[0]
	for _, day := range days[1:] {
		if gapDays(day, cursor) > 1 {
			break
		}
		count++
		cursor = day
	}
	return count
}

// distinctDays collapses timestamps to unique calendar days in the
// timestamps' own locations.
func distinctDays(dates []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(dates))
	var days []time.Time
	for _, d := range dates {
		day := truncateDay(d)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}
	return days
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// gapDays rounds so that daylight-saving shifts do not turn a one-day gap
// into zero or two.
func gapDays(earlier, later time.Time) int {
	return int(math.Round(later.Sub(earlier).Hours() / 24))
}
