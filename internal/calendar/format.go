package calendar

import (
	"fmt"

	"github.com/wolfman30/jwbeauty-studio/internal/i18n"
)

var (
	weekdayAbbrevEN = [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}
	weekdayAbbrevZH = [7]string{"日", "一", "二", "三", "四", "五", "六"}
	weekdayLongZH   = [7]string{"星期日", "星期一", "星期二", "星期三", "星期四", "星期五", "星期六"}
)

// WeekdayAbbrevs returns the Sunday-first column headings for locale.
func WeekdayAbbrevs(locale i18n.Locale) []string {
	if locale == i18n.Chinese {
		return weekdayAbbrevZH[:]
	}
	return weekdayAbbrevEN[:]
}

// FormatHeader renders the month/year heading of the picker
// ("June 2024" or "2024年6月").
func FormatHeader(v View, locale i18n.Locale) string {
	if locale == i18n.Chinese {
		return fmt.Sprintf("%d年%d月", v.Year, int(v.Month))
	}
	return fmt.Sprintf("%s %d", v.Month, v.Year)
}

// FormatDisplay renders the date shown on the form's date button
// ("June 1, 2024" or "2024年6月1日").
func FormatDisplay(d Date, locale i18n.Locale) string {
	if d.IsZero() {
		return ""
	}
	if locale == i18n.Chinese {
		return fmt.Sprintf("%d年%d月%d日", d.Year, int(d.Month), d.Day)
	}
	return fmt.Sprintf("%s %d, %d", d.Month, d.Day, d.Year)
}

// FormatLong renders weekday, day, month and year for booking messages
// ("Saturday, 1 June 2024" or "2024年6月1日星期六").
func FormatLong(d Date, locale i18n.Locale) string {
	if d.IsZero() {
		return ""
	}
	if locale == i18n.Chinese {
		return fmt.Sprintf("%d年%d月%d日%s", d.Year, int(d.Month), d.Day, weekdayLongZH[d.Weekday()])
	}
	return fmt.Sprintf("%s, %d %s %d", d.Weekday(), d.Day, d.Month, d.Year)
}
