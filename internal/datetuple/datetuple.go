// Package datetuple implements the (year, month, day, seconds-of-day) date
// algebra that the zone processor uses to reason about transition times
// before it has committed to a single frame of reference. A DateTuple always
// carries the Modifier it was computed in, because the same wall-clock
// moment is a different instant in the wall, standard, and UTC frames.
package datetuple

import "github.com/go-tz/acetz/internal/calendar"

// Modifier identifies the frame of reference a DateTuple's Seconds field is
// expressed in.
type Modifier uint8

const (
	// Wall is local wall-clock time, i.e. what a clock on the wall reads.
	Wall Modifier = iota
	// Standard is local standard time, i.e. wall time minus any DST delta.
	Standard
	// UTC is universal time.
	UTC
)

// String renders the modifier using the single-letter tz-database
// convention (w, s, u).
func (m Modifier) String() string {
	switch m {
	case Wall:
		return "w"
	case Standard:
		return "s"
	case UTC:
		return "u"
	default:
		return "?"
	}
}

// DateTuple is an ordered (year, month, day, seconds-of-day) quadruple.
// Seconds may be negative or exceed 86400 before Normalize is called; this
// happens routinely when a transition time of "24:00" or "-1:00" is composed
// directly from a rule's AT field.
type DateTuple struct {
	Year     int16
	Month    uint8
	Day      uint8
	Seconds  int32
	Modifier Modifier
}

// Compare returns -1, 0, or 1 as a is less than, equal to, or greater than b.
// It compares the raw fields and assumes both tuples have already been
// normalized into a common frame; comparing tuples with different Modifiers
// is the caller's responsibility to avoid.
func Compare(a, b DateTuple) int {
	if a.Year != b.Year {
		return cmpInt(int(a.Year), int(b.Year))
	}
	if a.Month != b.Month {
		return cmpInt(int(a.Month), int(b.Month))
	}
	if a.Day != b.Day {
		return cmpInt(int(a.Day), int(b.Day))
	}
	if a.Seconds != b.Seconds {
		return cmpInt(int(a.Seconds), int(b.Seconds))
	}
	return 0
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Less reports whether a sorts before b.
func Less(a, b DateTuple) bool { return Compare(a, b) < 0 }

// Normalize carries any seconds-of-day overflow or underflow into the date
// fields, so that 0 <= Seconds < 86400 on return. This is what lets a
// transition time of "24:00" (end of day) roll cleanly into the next day.
func Normalize(dt DateTuple) DateTuple {
	days := int32(0)
	s := dt.Seconds
	for s < 0 {
		s += 86400
		days--
	}
	for s >= 86400 {
		s -= 86400
		days++
	}
	dt.Seconds = s
	if days != 0 {
		dt.Year, dt.Month, dt.Day = shiftDays(dt.Year, dt.Month, dt.Day, days)
	}
	return dt
}

func shiftDays(year int16, month, day uint8, days int32) (int16, uint8, uint8) {
	for days > 0 {
		remaining := int32(calendar.DaysInMonth(year, month)) - int32(day) + 1
		if days < remaining {
			day += uint8(days)
			return year, month, day
		}
		days -= remaining
		day = 1
		month++
		if month > 12 {
			month = 1
			year++
		}
	}
	for days < 0 {
		if day > 1 {
			take := int32(day) - 1
			if -days <= take {
				day -= uint8(-days)
				return year, month, day
			}
			days += take
			day = 1
		}
		month--
		if month < 1 {
			month = 12
			year--
		}
		day = calendar.DaysInMonth(year, month) + 1
	}
	return year, month, day
}

// Subtract returns a - b in seconds, treating both as dates in the same
// frame, e.g. the length of an overlap or gap between two transitions.
func Subtract(a, b DateTuple) int64 {
	da := int64(calendar.EpochDays(a.Year, a.Month, a.Day))*86400 + int64(a.Seconds)
	db := int64(calendar.EpochDays(b.Year, b.Month, b.Day))*86400 + int64(b.Seconds)
	return da - db
}

// Frames is the (wall, standard, UTC) expansion of a single instant.
type Frames struct {
	Wall, Standard, UTC DateTuple
}

// Expand computes all three frame representations of dt, given the
// utcOffset and dstOffset seconds in effect for dt's frame. The relationship
// is purely additive:
//
//	wall - standard = dstOffset
//	standard - utc  = utcOffset
//	wall - utc      = utcOffset + dstOffset
func Expand(dt DateTuple, utcOffset, dstOffset int32) Frames {
	switch dt.Modifier {
	case Wall:
		w := dt
		s := DateTuple{dt.Year, dt.Month, dt.Day, dt.Seconds - dstOffset, Standard}
		u := DateTuple{dt.Year, dt.Month, dt.Day, dt.Seconds - dstOffset - utcOffset, UTC}
		return Frames{Normalize(w), Normalize(s), Normalize(u)}
	case Standard:
		s := dt
		w := DateTuple{dt.Year, dt.Month, dt.Day, dt.Seconds + dstOffset, Wall}
		u := DateTuple{dt.Year, dt.Month, dt.Day, dt.Seconds - utcOffset, UTC}
		return Frames{Normalize(w), Normalize(s), Normalize(u)}
	case UTC:
		u := dt
		w := DateTuple{dt.Year, dt.Month, dt.Day, dt.Seconds + dstOffset + utcOffset, Wall}
		s := DateTuple{dt.Year, dt.Month, dt.Day, dt.Seconds + utcOffset, Standard}
		return Frames{Normalize(w), Normalize(s), Normalize(u)}
	default:
		return Frames{Normalize(dt), Normalize(dt), Normalize(dt)}
	}
}

// ShiftSeconds returns dt shifted by delta seconds, normalized, keeping the
// same Modifier.
func ShiftSeconds(dt DateTuple, delta int32) DateTuple {
	dt.Seconds += delta
	return Normalize(dt)
}

// EpochSeconds converts dt (assumed already normalized) into seconds since
// the engine epoch, ignoring its Modifier — the caller is responsible for
// only calling this on UTC-frame tuples when an absolute instant is wanted.
func EpochSeconds(dt DateTuple) int64 {
	return calendar.EpochSeconds(dt.Year, dt.Month, dt.Day, dt.Seconds)
}
