// utils/dates.go
package utils

import "time"

const DateLayout = "2006-01-02"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(end.Sub(start).Hours() / 24)
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today is the current local date as YYYY-MM-DD.
func Today() string {
	return FormatDate(time.Now())
}

// ParseDate reads YYYY-MM-DD in local time.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.Local)
}

// MonthRange returns the first and last day of a YYYY-MM month.
func MonthRange(month string) (string, string, error) {
	start, err := time.ParseInLocation("2006-01", month, time.Local)
	if err != nil {
		return "", "", err
	}
	end := start.AddDate(0, 1, -1)
	return FormatDate(start), FormatDate(end), nil
}
