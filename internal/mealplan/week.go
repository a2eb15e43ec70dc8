package mealplan

import "time"

// DateFormat is the ISO date layout used for weekly-plan keys.
const DateFormat = "2006-01-02"

// WeekStart returns the Sunday on or before t, at midnight in t's location.
func WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// WeekDates returns the seven ISO dates of the week starting at weekStart.
func WeekDates(weekStart time.Time) []string {
	dates := make([]string, 7)
	for i := 0; i < 7; i++ {
		dates[i] = weekStart.AddDate(0, 0, i).Format(DateFormat)
	}
	return dates
}

// PrevDate returns the ISO date one day before date. Unparseable input is
// returned unchanged so a corrupt key can never block a write.
func PrevDate(date string) string {
	t, err := time.Parse(DateFormat, date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, -1).Format(DateFormat)
}
