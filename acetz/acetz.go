// Package acetz adapts zoneprocessor.Processor into the shape a host
// date/time library expects from a time zone: offset-at-instant,
// offset-at-local-with-fold, and zone identity, without tying callers to
// this module's own DateTuple/epoch representation.
package acetz

import (
	"time"

	"github.com/go-tz/acetz/tzregistry"
	"github.com/go-tz/acetz/zoneprocessor"
	"go.uber.org/zap"
)

// epochOffsetSeconds is the difference between this module's epoch
// (calendar.EpochYear, i.e. 2000-01-01T00:00:00Z) and the Unix epoch.
const epochOffsetSeconds = 946684800

// TimeZone is a named, lazily-initialized time zone backed by a single
// zoneprocessor.Processor. It satisfies the minimal surface a host
// time.Time-like type needs to collaborate with this engine: resolve an
// instant to an offset, or a local date/time to an offset with fold
// disambiguation.
type TimeZone struct {
	name   string // the name the caller asked for; may be a link
	target string // the resolved, data-bearing zone name
	proc   *zoneprocessor.Processor
}

// New binds name against reg and returns a ready-to-query TimeZone. log may
// be nil, in which case the processor logs nothing.
func New(reg *tzregistry.Registry, name string, log *zap.Logger) (*TimeZone, error) {
	zi, ok := reg.Get(name)
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	resolved := zi
	if zi.IsLink() {
		resolved = zi.Target
	}
	proc, err := zoneprocessor.NewProcessor(resolved, log)
	if err != nil {
		return nil, err
	}
	return &TimeZone{name: name, target: resolved.Name, proc: proc}, nil
}

// NotFoundError is returned when a zone name has no entry in the registry.
// Unlike zoneprocessor's OutOfRangeError and BadZoneDataError, this is a
// registry-level condition: the name itself is unknown, independent of any
// particular year.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return "acetz: unknown zone " + e.Name
}

// FullName is the name this TimeZone was constructed with, which may be a
// link name distinct from TargetName.
func (z *TimeZone) FullName() string { return z.name }

// TargetName is the data-bearing zone name: equal to FullName unless this
// TimeZone was constructed from a link.
func (z *TimeZone) TargetName() string { return z.target }

// IsLink reports whether this TimeZone was constructed from a link name.
func (z *TimeZone) IsLink() bool { return z.name != z.target }

// Offset resolves the UTC offset, DST offset, and abbreviation in effect at
// the given instant.
type Offset struct {
	UTCOffset time.Duration
	DSTOffset time.Duration
	Abbrev    string
}

func (o Offset) TotalOffset() time.Duration { return o.UTCOffset + o.DSTOffset }

// OffsetAt resolves the offset in effect at t.
func (z *TimeZone) OffsetAt(t time.Time) (Offset, error) {
	epochSeconds := t.Unix() - epochOffsetSeconds
	info, err := z.proc.OffsetForInstant(epochSeconds)
	if err != nil {
		return Offset{}, err
	}
	return offsetFromInfo(info), nil
}

// LocalResult is the outcome of resolving a local (wall-clock) date and
// time that may be ambiguous or may not have occurred at all.
type LocalResult struct {
	Offset Offset
	// Gap is true when the requested local time fell inside a forward
	// clock jump and never actually occurred.
	Gap bool
}

// OffsetAtLocal resolves the offset that applies to a local date and time
// expressed as a calendar year (e.g. 2024) plus a standard
// time.Month/day/hour/min/sec breakdown, with fold selecting between the
// two candidate offsets during a fall-back overlap (PEP 495 semantics: 0 is
// the earlier offset, 1 is the later one).
func (z *TimeZone) OffsetAtLocal(year int, month time.Month, day, hour, min, sec, fold int) (LocalResult, error) {
	secondsOfDay := int32(hour*3600 + min*60 + sec)
	fr, err := z.proc.OffsetForLocal(int16(year), uint8(month), uint8(day), secondsOfDay, fold)
	if err != nil {
		return LocalResult{}, err
	}
	return LocalResult{Offset: offsetFromInfo(fr.Offset), Gap: fr.Gap}, nil
}

func offsetFromInfo(info zoneprocessor.OffsetInfo) Offset {
	return Offset{
		UTCOffset: time.Duration(info.UTCOffsetSeconds) * time.Second,
		DSTOffset: time.Duration(info.DSTOffsetSeconds) * time.Second,
		Abbrev:    info.Abbrev,
	}
}
