package calendar

import (
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/wolfman30/jwbeauty-studio/internal/i18n"
)

// Cell is one day of the month grid.
type Cell struct {
	Day      int
	Date     string
	Disabled bool
	Selected bool
	Today    bool
}

// Month is a rendered month grid.
type Month struct {
	View     View
	Header   string
	Weekdays []string
	Blanks   int
	Cells    []Cell
	Prev     View
	Next     View
}

// Picker renders month grids and answers day selections. "Today" is the
// civil date in Location at the moment of each call.
type Picker struct {
	clock    clock.Clock
	location *time.Location
}

// NewPicker creates a picker. A nil clock uses the wall clock and a nil
// location uses time.Local.
func NewPicker(clk clock.Clock, loc *time.Location) *Picker {
	if clk == nil {
		clk = clock.New()
	}
	if loc == nil {
		loc = time.Local
	}
	return &Picker{clock: clk, location: loc}
}

// Today returns the current civil date.
func (p *Picker) Today() Date {
	return Today(p.clock.Now(), p.location)
}

// CurrentView is the month containing today. The picker opens on it.
func (p *Picker) CurrentView() View {
	return ViewOf(p.Today())
}

// Grid renders the month v. selected is matched against cells by exact
// string equality; it may be empty or malformed, in which case nothing is
// marked selected.
func (p *Picker) Grid(v View, selected string, locale i18n.Locale) Month {
	today := p.Today()
	todayStr := today.String()

	n := v.DaysInMonth()
	cells := make([]Cell, 0, n)
	for day := 1; day <= n; day++ {
		d := Date{Year: v.Year, Month: v.Month, Day: day}
		s := d.String()
		cells = append(cells, Cell{
			Day:      day,
			Date:     s,
			Disabled: d.Before(today),
			Selected: s == selected,
			Today:    s == todayStr,
		})
	}

	return Month{
		View:     v,
		Header:   FormatHeader(v, locale),
		Weekdays: WeekdayAbbrevs(locale),
		Blanks:   v.LeadingBlanks(),
		Cells:    cells,
		Prev:     v.Prev(),
		Next:     v.Next(),
	}
}

// Select returns the ISO date for day in v, or ErrPastDate when that day is
// strictly before today.
func (p *Picker) Select(v View, day int) (string, error) {
	if day < 1 || day > v.DaysInMonth() {
		return "", fmt.Errorf("%w: day %d of %s", ErrInvalidDate, day, v)
	}
	d := Date{Year: v.Year, Month: v.Month, Day: day}
	if d.Before(p.Today()) {
		return "", fmt.Errorf("%w: %s", ErrPastDate, d)
	}
	return d.String(), nil
}

// SelectDate validates an ISO date string against the same rule as Select.
func (p *Picker) SelectDate(s string) (string, error) {
	d, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return p.Select(ViewOf(d), d.Day)
}
