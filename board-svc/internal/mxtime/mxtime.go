// Package mxtime maps absolute instants to the board's civil calendar: a
// fixed UTC-6 offset with no daylight-saving adjustment.
package mxtime

import "time"

// Zone is the board's calendar zone.
var Zone = time.FixedZone("UTC-6", -6*60*60)

type Parts struct {
	Date      string
	Hour      int
	YearMonth string
}

func LocalParts(t time.Time) Parts {
	local := t.In(Zone)
	return Parts{
		Date:      local.Format("2006-01-02"),
		Hour:      local.Hour(),
		YearMonth: local.Format("2006-01"),
	}
}

// WeekdayIndex uses ISO ordering: Monday is 0, Sunday is 6.
func WeekdayIndex(t time.Time) int {
	return (int(t.In(Zone).Weekday()) + 6) % 7
}

// WeekDates returns the seven dates, Monday through Sunday, of the week
// containing the given instant.
func WeekDates(now time.Time) []string {
	monday := now.In(Zone).AddDate(0, 0, -WeekdayIndex(now))
	dates := make([]string, 7)
	for i := range dates {
		dates[i] = monday.AddDate(0, 0, i).Format("2006-01-02")
	}
	return dates
}

func CurrentWeekDates() []string {
	return WeekDates(time.Now())
}

// OperatingParts returns the operating-day date and an hour in 1..24.
// Midnight belongs to the closing of the previous day's shift, so a local
// hour of 0 is reported as hour 24 of the previous date. The hourly chart
// shows the 17 labels 08 through 24.
func OperatingParts(t time.Time) (string, int) {
	local := t.In(Zone)
	if local.Hour() == 0 {
		return local.AddDate(0, 0, -1).Format("2006-01-02"), 24
	}
	return local.Format("2006-01-02"), local.Hour()
}

// FormatLocal renders an instant the way the board displays it.
func FormatLocal(t time.Time) string {
	return t.In(Zone).Format("02/01/06, 15:04")
}

func Today() string {
	return time.Now().In(Zone).Format("2006-01-02")
}
