package zoneprocessor

import "github.com/pkg/errors"

// OutOfRangeError is returned when a query's year falls outside the
// ZoneContext's [StartYear, UntilYear) window. It is user-visible: a
// well-behaved caller can avoid it by checking the context bounds first.
type OutOfRangeError struct {
	Zone string
	Year int16
}

func (e *OutOfRangeError) Error() string {
	return errors.Errorf("zoneprocessor: year %d is out of range for zone %q", e.Year, e.Zone).Error()
}

// BadZoneDataError indicates a broken invariant in the compiled zone
// record: eras out of order, a rule referencing a missing policy, or a
// transition buffer overflow. It is fatal and non-retryable: it signals a
// compiler regression or a handcrafted record bug, never a transient
// condition, so the cache is left invalid and the caller must not retry in
// a loop expecting success.
type BadZoneDataError struct {
	Zone   string
	Reason string
}

func (e *BadZoneDataError) Error() string {
	return errors.Errorf("zoneprocessor: bad zone data for %q: %s", e.Zone, e.Reason).Error()
}

func badZoneData(zone, format string, args ...interface{}) error {
	return &BadZoneDataError{Zone: zone, Reason: errors.Errorf(format, args...).Error()}
}
