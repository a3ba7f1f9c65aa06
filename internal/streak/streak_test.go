package streak

import (
	"testing"
	"time"
)

var ref = time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return ref.AddDate(0, 0, -n)
}

func TestCurrentEmpty(t *testing.T) {
	if got := Current(nil, ref); got != 0 {
		t.Errorf("Current(nil) = %d, want 0", got)
	}
}

func TestCurrentTable(t *testing.T) {
	cases := []struct {
		name  string
		dates []time.Time
		want  int
	}{
		{"today only", []time.Time{daysAgo(0)}, 1},
		{"yesterday only", []time.Time{daysAgo(1)}, 1},
		{"three consecutive", []time.Time{daysAgo(0), daysAgo(1), daysAgo(2)}, 3},
		{"chain broken by stale start", []time.Time{daysAgo(3)}, 0},
		{"two days ago alone", []time.Time{daysAgo(2)}, 0},
		{"gap inside chain", []time.Time{daysAgo(0), daysAgo(1), daysAgo(2), daysAgo(4)}, 3},
		{"unsorted input", []time.Time{daysAgo(2), daysAgo(0), daysAgo(1)}, 3},
		{"yesterday anchored chain", []time.Time{daysAgo(1), daysAgo(2), daysAgo(3)}, 3},
		{"old activity ignored", []time.Time{daysAgo(0), daysAgo(5), daysAgo(6)}, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Current(tc.dates, ref); got != tc.want {
				t.Errorf("Current = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestCurrentDeduplicatesSameDay(t *testing.T) {
	dates := []time.Time{
		time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 15, 22, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 14, 9, 0, 0, 0, time.UTC),
	}
	if got := Current(dates, ref); got != 2 {
		t.Errorf("Current = %d, want 2 (multiple events per day count once)", got)
	}
}

func TestCurrentNotYetActiveToday(t *testing.T) {
	// Activity through yesterday holds the streak while today is unfinished.
	dates := []time.Time{daysAgo(1), daysAgo(2), daysAgo(3), daysAgo(4)}
	if got := Current(dates, ref); got != 4 {
		t.Errorf("Current = %d, want 4", got)
	}
}
