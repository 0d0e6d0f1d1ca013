// Package zonedb defines the passive, in-memory shape of a compiled time
// zone record: the eras, policies, and rules that a zone compiler emits.
// Nothing in this package computes a transition or an offset; it only
// describes the data that the zone processor (package zoneprocessor) walks.
//
// The types mirror the "compiled zone record layout" in the engine's
// external interface: ZoneContext, ZoneRule, ZonePolicy, ZoneEra, and
// ZoneInfo are read-only for the lifetime of the process and freely
// shareable across goroutines and zone processors.
package zonedb

import "github.com/go-tz/acetz/internal/datetuple"

// Modifier is the frame (wall-clock, standard, or universal) in which a rule
// or era boundary time is expressed.
type Modifier = datetuple.Modifier

// Frame constants re-exported for readability at call sites that build
// zonedb records by hand or from a parser.
const (
	Wall     = datetuple.Wall
	Standard = datetuple.Standard
	UTC      = datetuple.UTC
)

// Sentinel years. FromYear/ToYear fields use these to mean "since the
// beginning of time" and "until the end of time".
const (
	MinYear int16 = -32767
	MaxYear int16 = 32767
)

// ZoneContext carries database-wide metadata shared by every zone compiled
// from the same tzdb release.
type ZoneContext struct {
	// TZDBVersion is the upstream tzdata release this context was compiled
	// from, e.g. "2024b".
	TZDBVersion string
	// StartYear is the earliest year the database was compiled to support.
	StartYear int16
	// UntilYear is one past the latest year the database was compiled to
	// support; queries for UntilYear or later fail with OutOfRange.
	UntilYear int16
	// BaseEpochYear is the year against which compact until-year offsets
	// are interpreted. It has no effect on this implementation, which
	// stores years directly, but is carried for parity with the embedded
	// 8/16-bit encodings a real compiler would emit.
	BaseEpochYear int16
}

// ZoneRule is one recurrence rule within a ZonePolicy.
type ZoneRule struct {
	// FromYear and ToYear bound the inclusive range of years this rule
	// applies in. MinYear/MaxYear stand in for -INF/+INF.
	FromYear, ToYear int16
	// Month is 1-12.
	Month uint8
	// DayOfMonth is the day of the month the rule transitions on, or 0 to
	// mean "use DayOfWeek to select the day".
	DayOfMonth uint8
	// DayOfWeek is 1 (Monday) through 7 (Sunday), or 0 to mean "the
	// transition falls on the exact DayOfMonth".
	DayOfWeek uint8
	// DayOnOrBefore, when DayOfWeek is set and DayOfMonth is nonzero,
	// selects the last occurrence of DayOfWeek on or before DayOfMonth
	// ("Sun<=23") instead of the default first occurrence on or after it
	// ("Sun>=23").
	DayOnOrBefore bool
	// AtSeconds is the transition time of day, in seconds since local
	// midnight, expressed in the frame named by AtModifier.
	AtSeconds int32
	AtModifier Modifier
	// DeltaSeconds is the DST offset, in seconds, added to the era's
	// standard offset while this rule is in effect.
	DeltaSeconds int32
	// Letter substitutes into a ZoneEra's "%s" abbreviation template. An
	// empty string corresponds to the tzdata "-" placeholder.
	Letter string
}

// Applies reports whether the rule is in effect during calendar year y.
func (r *ZoneRule) Applies(y int16) bool {
	return r.FromYear <= y && y <= r.ToYear
}

// ZonePolicy is a named, ordered list of rules. Rules within a policy are
// not required to be sorted by year; the zone processor sorts candidate
// transitions itself.
type ZonePolicy struct {
	Name  string
	Rules []ZoneRule
}

// ZoneEra is one row of a zone's history: a span of time during which the
// standard UTC offset is fixed, possibly modulated by a ZonePolicy or a
// fixed DST delta.
type ZoneEra struct {
	// OffsetSeconds is the standard (non-DST) UTC offset.
	OffsetSeconds int32
	// Policy references the rules that produce DST transitions during this
	// era. Nil if the era has no DST rules at all (see FixedDeltaSeconds).
	Policy *ZonePolicy
	// FixedDeltaSeconds is used when the era has a constant DST delta with
	// no named policy (the tzdata RULES column holding a bare SAVE value
	// rather than "-" or a policy name). Meaningful only when Policy is
	// nil.
	FixedDeltaSeconds int32
	// Format is the abbreviation template: a literal, a "%s" template
	// substituting a rule's Letter, or an "A/B" pair picked by whether DST
	// is in effect.
	Format string
	// UntilYear, UntilMonth, UntilDay, UntilSeconds, UntilModifier mark the
	// exclusive upper bound of this era's effective range.
	UntilYear     int16
	UntilMonth    uint8
	UntilDay      uint8
	UntilSeconds  int32
	UntilModifier Modifier
}

// Until returns the era's upper bound as a DateTuple in the era's declared
// frame.
func (e *ZoneEra) Until() datetuple.DateTuple {
	return datetuple.DateTuple{
		Year:     e.UntilYear,
		Month:    e.UntilMonth,
		Day:      e.UntilDay,
		Seconds:  e.UntilSeconds,
		Modifier: e.UntilModifier,
	}
}

// ZoneInfo is a zone's identity: either a true zone with its own eras, or a
// link whose eras are borrowed from a target ZoneInfo.
type ZoneInfo struct {
	// Name is the zone's full name, e.g. "America/Los_Angeles".
	Name string
	// Target is non-nil when this ZoneInfo is a link; Eras is then nil and
	// callers should use Target.Eras instead.
	Target *ZoneInfo
	// Eras is the zone's ordered history. Always nil for links.
	Eras []ZoneEra
	// Context is the ZoneContext this record was compiled under.
	Context *ZoneContext
	// TransitionBufSize is the compiler-computed tight upper bound on the
	// number of active transitions this zone can produce in any supported
	// year. The zone processor must never exceed it.
	TransitionBufSize uint8
}

// IsLink reports whether this ZoneInfo is a link to another zone.
func (z *ZoneInfo) IsLink() bool {
	return z.Target != nil
}

// ResolveEras returns the era list to use for this ZoneInfo, following a
// single link hop if necessary. The compiler guarantees links point
// directly at true zones, so no recursion is needed.
func (z *ZoneInfo) ResolveEras() []ZoneEra {
	if z.Target != nil {
		return z.Target.Eras
	}
	return z.Eras
}

// DataName is the name of the ZoneInfo whose era data backs this zone: the
// zone's own name if it is a true zone, or its target's name if it is a
// link.
func (z *ZoneInfo) DataName() string {
	if z.Target != nil {
		return z.Target.Name
	}
	return z.Name
}
