package calendar

import (
	"fmt"
	"time"
)

// View is the month shown by the date picker. It is independent of the
// selected date: moving the view never changes the selection.
type View struct {
	Year  int
	Month time.Month
}

// ViewOf returns the view containing d.
func ViewOf(d Date) View {
	return View{Year: d.Year, Month: d.Month}
}

// ParseView parses a YYYY-MM string.
func ParseView(s string) (View, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return View{}, fmt.Errorf("%w: month %q", ErrInvalidDate, s)
	}
	return View{Year: t.Year(), Month: t.Month()}, nil
}

// Shift moves the view by n whole months (negative moves back).
func (v View) Shift(n int) View {
	t := time.Date(v.Year, v.Month+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	return View{Year: t.Year(), Month: t.Month()}
}

// Next is the following month.
func (v View) Next() View { return v.Shift(1) }

// Prev is the preceding month.
func (v View) Prev() View { return v.Shift(-1) }

// First is day 1 of the month.
func (v View) First() Date {
	return Date{Year: v.Year, Month: v.Month, Day: 1}
}

// DaysInMonth counts the days of the month.
func (v View) DaysInMonth() int {
	return time.Date(v.Year, v.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// LeadingBlanks is the number of empty cells before day 1 in a Sunday-first
// grid, i.e. the weekday index of the 1st.
func (v View) LeadingBlanks() int {
	return int(v.First().Weekday())
}

// String formats the view as YYYY-MM.
func (v View) String() string {
	return fmt.Sprintf("%04d-%02d", v.Year, int(v.Month))
}
