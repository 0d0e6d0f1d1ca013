package calendar

import "testing"

func TestIsLeapYear(t *testing.T) {
	cases := []struct {
		year int16
		want bool
	}{
		{2000, true},
		{1900, false},
		{2004, true},
		{2001, false},
		{2400, true},
	}
	for _, c := range cases {
		if got := IsLeapYear(c.year); got != c.want {
			t.Errorf("IsLeapYear(%d) = %v, want %v", c.year, got, c.want)
		}
	}
}

func TestDaysInMonth(t *testing.T) {
	if got := DaysInMonth(2000, 2); got != 29 {
		t.Errorf("DaysInMonth(2000, Feb) = %d, want 29", got)
	}
	if got := DaysInMonth(2001, 2); got != 28 {
		t.Errorf("DaysInMonth(2001, Feb) = %d, want 28", got)
	}
	if got := DaysInMonth(2001, 4); got != 30 {
		t.Errorf("DaysInMonth(2001, Apr) = %d, want 30", got)
	}
}

func TestDayOfWeek(t *testing.T) {
	// 2000-01-01 was a Saturday.
	if got := DayOfWeek(2000, 1, 1); got != 6 {
		t.Errorf("DayOfWeek(2000-01-01) = %d, want 6 (Saturday)", got)
	}
	// 2000-03-26 was a Sunday.
	if got := DayOfWeek(2000, 3, 26); got != 7 {
		t.Errorf("DayOfWeek(2000-03-26) = %d, want 7 (Sunday)", got)
	}
}

func TestEpochDaysRoundTrip(t *testing.T) {
	if got := EpochDays(2000, 1, 1); got != 0 {
		t.Errorf("EpochDays(2000-01-01) = %d, want 0", got)
	}
	if got := EpochDays(1999, 12, 31); got != -1 {
		t.Errorf("EpochDays(1999-12-31) = %d, want -1", got)
	}
	if got := EpochDays(2001, 1, 1); got != 366 {
		t.Errorf("EpochDays(2001-01-01) = %d, want 366 (2000 was a leap year)", got)
	}
}

func TestDayOfMonthForRule(t *testing.T) {
	cases := []struct {
		name                       string
		year                       int16
		month, dayOfMonth, dayOfWk uint8
		onOrBefore                 bool
		want                       uint8
	}{
		{"exact day", 2020, 3, 23, 0, false, 23},
		{"last Sunday of March 2020", 2020, 3, 0, 7, false, 29},
		{"first Sunday on or after 23rd", 2020, 3, 23, 7, false, 29},
		{"Sunday on exact day", 2020, 3, 8, 7, false, 8},
		{"last Sunday on or before 23rd", 2020, 3, 23, 7, true, 22},
		{"Sunday on or before exact day", 2020, 3, 8, 7, true, 8},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := DayOfMonthForRule(c.year, c.month, c.dayOfMonth, c.dayOfWk, c.onOrBefore)
			if got != c.want {
				t.Errorf("DayOfMonthForRule(%d, %d, %d, %d, %v) = %d, want %d",
					c.year, c.month, c.dayOfMonth, c.dayOfWk, c.onOrBefore, got, c.want)
			}
		})
	}
}
