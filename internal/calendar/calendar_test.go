package calendar

import (
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wolfman30/jwbeauty-studio/internal/i18n"
)

func singapore(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Singapore")
	require.NoError(t, err)
	return loc
}

// newTestPicker pins "now" to 2024-06-15 10:00 in Singapore.
func newTestPicker(t *testing.T) (*Picker, *clock.Mock) {
	t.Helper()
	loc := singapore(t)
	mock := clock.NewMock()
	mock.Set(time.Date(2024, time.June, 15, 10, 0, 0, 0, loc))
	return NewPicker(mock, loc), mock
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, Date{2024, time.June, 1}, d)
	assert.Equal(t, "2024-06-01", d.String())
	assert.Equal(t, time.Saturday, d.Weekday())

	for _, bad := range []string{"", "2024-6-1", "2024-02-30", "01/06/2024", "2024-06-01T00:00:00"} {
		_, err := ParseDate(bad)
		assert.Truef(t, errors.Is(err, ErrInvalidDate), "expected invalid for %q", bad)
	}
}

func TestTodayUsesStudioTimezone(t *testing.T) {
	loc := singapore(t)
	// 2024-06-14 20:00 UTC is already 2024-06-15 in Singapore.
	now := time.Date(2024, time.June, 14, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-06-15", Today(now, loc).String())
	assert.Equal(t, "2024-06-14", Today(now, time.UTC).String())
}

func TestTodayIsRecomputed(t *testing.T) {
	p, mock := newTestPicker(t)
	assert.Equal(t, "2024-06-15", p.Today().String())
	mock.Add(24 * time.Hour)
	assert.Equal(t, "2024-06-16", p.Today().String())
}

func TestViewNavigation(t *testing.T) {
	v := View{Year: 2024, Month: time.December}
	assert.Equal(t, View{2025, time.January}, v.Next())
	assert.Equal(t, View{2024, time.November}, v.Prev())
	assert.Equal(t, View{2023, time.December}, v.Shift(-12))
	assert.Equal(t, "2024-12", v.String())

	parsed, err := ParseView("2024-02")
	require.NoError(t, err)
	assert.Equal(t, 29, parsed.DaysInMonth())
	_, err = ParseView("2024-13")
	assert.Error(t, err)
}

func TestLeadingBlanksAlignDayOne(t *testing.T) {
	// June 2024 starts on a Saturday, September 2024 on a Sunday.
	assert.Equal(t, 6, View{2024, time.June}.LeadingBlanks())
	assert.Equal(t, 0, View{2024, time.September}.LeadingBlanks())
	assert.Equal(t, 1, View{2024, time.July}.LeadingBlanks())
}

func TestGridMarksPastTodayAndSelected(t *testing.T) {
	p, _ := newTestPicker(t)
	m := p.Grid(View{2024, time.June}, "2024-06-20", i18n.English)

	require.Len(t, m.Cells, 30)
	assert.Equal(t, 6, m.Blanks)
	assert.Equal(t, "June 2024", m.Header)
	assert.Equal(t, []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}, m.Weekdays)
	assert.Equal(t, View{2024, time.May}, m.Prev)
	assert.Equal(t, View{2024, time.July}, m.Next)

	selected, today := 0, 0
	for _, c := range m.Cells {
		assert.Equal(t, c.Day < 15, c.Disabled, "day %d", c.Day)
		if c.Selected {
			selected++
			assert.Equal(t, "2024-06-20", c.Date)
		}
		if c.Today {
			today++
			assert.Equal(t, 15, c.Day)
		}
	}
	assert.Equal(t, 1, selected)
	assert.Equal(t, 1, today)
}

func TestGridTodayCanAlsoBeSelected(t *testing.T) {
	p, _ := newTestPicker(t)
	m := p.Grid(View{2024, time.June}, "2024-06-15", i18n.English)
	c := m.Cells[14]
	assert.True(t, c.Today)
	assert.True(t, c.Selected)
	assert.False(t, c.Disabled)
}

func TestGridChineseLocale(t *testing.T) {
	p, _ := newTestPicker(t)
	m := p.Grid(View{2024, time.June}, "", i18n.Chinese)
	assert.Equal(t, "2024年6月", m.Header)
	assert.Equal(t, "日", m.Weekdays[0])
	assert.Equal(t, "六", m.Weekdays[6])
	// Locale does not change date arithmetic.
	en := p.Grid(View{2024, time.June}, "", i18n.English)
	assert.Equal(t, en.Cells, m.Cells)
	assert.Equal(t, en.Blanks, m.Blanks)
}

func TestSelectRejectsEveryPastDay(t *testing.T) {
	p, _ := newTestPicker(t)
	for _, v := range []View{{2024, time.May}, {2024, time.June}, {2024, time.July}} {
		for day := 1; day <= v.DaysInMonth(); day++ {
			d := Date{v.Year, v.Month, day}
			got, err := p.Select(v, day)
			if d.Before(p.Today()) {
				assert.Truef(t, errors.Is(err, ErrPastDate), "%s should be rejected", d)
				assert.Empty(t, got)
				continue
			}
			require.NoError(t, err)
			assert.Equal(t, d.String(), got)
		}
	}
}

func TestSelectOutOfRangeDay(t *testing.T) {
	p, _ := newTestPicker(t)
	_, err := p.Select(View{2024, time.June}, 31)
	assert.True(t, errors.Is(err, ErrInvalidDate))
	_, err = p.Select(View{2024, time.June}, 0)
	assert.True(t, errors.Is(err, ErrInvalidDate))
}

func TestSelectDate(t *testing.T) {
	p, _ := newTestPicker(t)
	got, err := p.SelectDate("2024-06-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-15", got)

	_, err = p.SelectDate("2024-06-14")
	assert.True(t, errors.Is(err, ErrPastDate))
	_, err = p.SelectDate("June 20")
	assert.True(t, errors.Is(err, ErrInvalidDate))
}

func TestNavigationDoesNotTouchSelection(t *testing.T) {
	p, _ := newTestPicker(t)
	selected := "2024-06-20"
	v := ViewOf(Date{2024, time.June, 20})
	for i := 0; i < 3; i++ {
		v = v.Next()
		m := p.Grid(v, selected, i18n.English)
		for _, c := range m.Cells {
			assert.False(t, c.Selected)
		}
	}
	v = v.Shift(-3)
	m := p.Grid(v, selected, i18n.English)
	assert.True(t, m.Cells[19].Selected)
	assert.Equal(t, "2024-06-20", selected)
}

func TestFormatting(t *testing.T) {
	d := Date{2024, time.June, 1}
	assert.Equal(t, "Saturday, 1 June 2024", FormatLong(d, i18n.English))
	assert.Equal(t, "2024年6月1日星期六", FormatLong(d, i18n.Chinese))
	assert.Equal(t, "June 1, 2024", FormatDisplay(d, i18n.English))
	assert.Equal(t, "2024年6月1日", FormatDisplay(d, i18n.Chinese))
	assert.Equal(t, "", FormatDisplay(Date{}, i18n.English))
	assert.Equal(t, "", FormatLong(Date{}, i18n.Chinese))
}
