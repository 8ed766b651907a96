package app

import "time"

// NextMonday returns the Monday after t at midnight. A Monday maps to the
// following Monday.
func NextMonday(t time.Time) time.Time {
	days := (8 - int(t.Weekday())) % 7
	if days == 0 {
		days = 7
	}
	return time.Date(t.Year(), t.Month(), t.Day()+days, 0, 0, 0, 0, t.Location())
}

// WeekOf returns the ISO week number of t.
func WeekOf(t time.Time) int {
	_, week := t.ISOWeek()
	return week
}

// ISOWeekMonday returns the Monday of ISO week in year.
func ISOWeekMonday(year, week int) time.Time {
	// January 4th is always in ISO week 1.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.Local)
	offset := int(jan4.Weekday()+6) % 7
	return jan4.AddDate(0, 0, -offset+(week-1)*7)
}
