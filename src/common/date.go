package common

import "time"

const DateLayout = "2006-01-02"

// Day returns t's calendar day as UTC midnight, so days compare and key maps
// regardless of the zone t was read in.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func ParseDay(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// DateRange lists every day from start to end inclusive. It is empty when end
// precedes start.
func DateRange(start, end time.Time) []time.Time {
	start, end = Day(start), Day(end)
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
