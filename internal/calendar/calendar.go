// Package calendar implements the proleptic Gregorian calendar primitives
// that the zone processor needs: day-of-week, days-in-month, and conversion
// to days-from-epoch. Nothing here knows about time zones or DST; it is pure
// date arithmetic shared by the date-tuple and zone-processor layers.
package calendar

// EpochYear is the base year used by the engine's internal epoch, chosen to
// match the AceTime convention of seconds since 2000-01-01 00:00:00 UTC.
const EpochYear = 2000

// IsLeapYear reports whether year is a leap year in the proleptic Gregorian
// calendar.
func IsLeapYear(year int16) bool {
	y := int(year)
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

var daysInMonthTable = [12]uint8{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysInMonth returns the number of days in the given month (1-12) of year.
func DaysInMonth(year int16, month uint8) uint8 {
	if month == 2 && IsLeapYear(year) {
		return 29
	}
	return daysInMonthTable[month-1]
}

// DayOfWeek returns the ISO-ish day of week for the given date, where
// 1=Monday .. 7=Sunday, matching the tz-database rule convention.
func DayOfWeek(year int16, month, day uint8) uint8 {
	y := int(year)
	m := int(month)
	d := int(day)
	if m < 3 {
		m += 12
		y--
	}
	k := y % 100
	j := y / 100
	h := (d + (13*(m+1))/5 + k + k/4 + j/4 + 5*j) % 7
	// h: 0=Saturday, 1=Sunday, 2=Monday, ... Remap to 1=Monday..7=Sunday.
	dow := (h+5)%7 + 1
	return uint8(dow)
}

// Days in a 400/100/4-year Gregorian cycle, used to convert a year into a
// day count without iterating year by year.
const (
	daysPer400Years = 365*400 + 97
	daysPer100Years = 365*100 + 24
	daysPer4Years   = 365*4 + 1
)

// daysSinceEpoch returns the number of days from EpochYear-01-01 to the
// start of the given year, using the same cycle-counting technique as the
// Go standard library's time package. The cycles are counted from
// EpochYear+1, so that each 4/100/400-year block ends with its leap year,
// and the 366 days of EpochYear (a multiple of 400, hence a leap year) are
// added back at the end.
func daysSinceEpoch(year int16) int32 {
	y := int64(year) - (EpochYear + 1)

	n := floorDiv(y, 400)
	y -= 400 * n
	days := daysPer400Years * n

	n = y / 100
	y -= 100 * n
	days += daysPer100Years * n

	n = y / 4
	y -= 4 * n
	days += daysPer4Years * n

	days += 365 * y

	return int32(days + 366)
}

// floorDiv returns the floor of a/b, unlike Go's built-in integer division
// which truncates toward zero. Needed because years before EpochYear make a
// negative.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// EpochDays returns the number of days between EpochYear-01-01 and the given
// date, which may be negative for dates before the epoch.
func EpochDays(year int16, month, day uint8) int32 {
	days := daysSinceEpoch(year)
	for m := uint8(1); m < month; m++ {
		days += int32(DaysInMonth(year, m))
	}
	days += int32(day) - 1
	return days
}

// EpochSeconds converts a calendar date plus seconds-of-day into seconds
// since the engine epoch (EpochYear-01-01 00:00:00).
func EpochSeconds(year int16, month, day uint8, secondsOfDay int32) int64 {
	return int64(EpochDays(year, month, day))*86400 + int64(secondsOfDay)
}

// DayOfMonthForRule resolves a ZoneRule's (dayOfMonth, dayOfWeek) selector
// into a concrete day of the given month:
//
//   - dayOfWeek == 0 means the day is an exact day-of-month.
//   - dayOfMonth == 0 means "the last occurrence of dayOfWeek in the month".
//   - otherwise, it's the first occurrence of dayOfWeek on or after
//     dayOfMonth, or the last occurrence on or before dayOfMonth when
//     onOrBefore is set ("Sun<=23"-style rules).
func DayOfMonthForRule(year int16, month, dayOfMonth, dayOfWeek uint8, onOrBefore bool) uint8 {
	if dayOfWeek == 0 {
		return dayOfMonth
	}
	if dayOfMonth == 0 {
		return lastDayOfWeekInMonth(year, month, dayOfWeek)
	}
	if onOrBefore {
		return lastDayOfWeekOnOrBefore(year, month, dayOfMonth, dayOfWeek)
	}
	return firstDayOfWeekOnOrAfter(year, month, dayOfMonth, dayOfWeek)
}

func lastDayOfWeekInMonth(year int16, month, dayOfWeek uint8) uint8 {
	last := DaysInMonth(year, month)
	lastDow := DayOfWeek(year, month, last)
	offset := (lastDow - dayOfWeek + 7) % 7
	return last - offset
}

func firstDayOfWeekOnOrAfter(year int16, month, day, dayOfWeek uint8) uint8 {
	dow := DayOfWeek(year, month, day)
	diff := (dayOfWeek - dow + 7) % 7
	return day + diff
}

// lastDayOfWeekOnOrBefore returns the latest day <= day in month/year that
// falls on dayOfWeek, the mirror image of firstDayOfWeekOnOrAfter. If that
// day would fall in the previous month (day is small and dayOfWeek's
// closest on-or-before occurrence is more than day-1 days back), it clamps
// to day 1 rather than spilling across the month boundary; no rule in this
// module's bundled sample data exercises that edge (see DESIGN.md).
func lastDayOfWeekOnOrBefore(year int16, month, day, dayOfWeek uint8) uint8 {
	dow := DayOfWeek(year, month, day)
	diff := (dow - dayOfWeek + 7) % 7
	if diff >= day {
		return 1
	}
	return day - diff
}
