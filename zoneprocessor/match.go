package zoneprocessor

import (
	"github.com/go-tz/acetz/internal/datetuple"
	"github.com/go-tz/acetz/zonedb"
)

// yearMonth is a coarse (year, month) pair used only to decide which eras
// overlap the processor's working window; day and time-of-day are
// deliberately ignored here; see §4.1.2.
type yearMonth struct {
	year  int16
	month uint8
}

// findMatches walks eras in order and returns the MatchingEras whose
// [start, until) interval overlaps [lo, hi), clipped to that window. The
// start of matching era k is the until of era k-1, expressed in era k-1's
// frame; this is why eraOverlapsWindow and createMatch both need the
// previous era.
func findMatches(zone string, eras []zonedb.ZoneEra, lo, hi yearMonth) ([]*matchingEra, error) {
	var matches []*matchingEra
	var prev *matchingEra
	for i := range eras {
		era := &eras[i]
		var prevEra *zonedb.ZoneEra
		if prev != nil {
			prevEra = prev.Era
		}
		if eraOverlapsWindow(prevEra, era, lo, hi) {
			m := createMatch(prev, era, lo, hi)
			matches = append(matches, m)
			prev = m
		}
	}
	if len(matches) == 0 {
		return nil, badZoneData(zone, "no eras overlap the requested year's window")
	}
	return matches, nil
}

// eraOverlapsWindow reports whether era's effective interval
// [prevEra.Until, era.Until) overlaps [lo, hi), at month granularity. A nil
// prevEra means the earliest possible era, i.e. -INF.
func eraOverlapsWindow(prevEra, era *zonedb.ZoneEra, lo, hi yearMonth) bool {
	startsBeforeHi := prevEra == nil || compareEraToYearMonth(prevEra, hi) < 0
	endsAfterLo := compareEraToYearMonth(era, lo) > 0
	return startsBeforeHi && endsAfterLo
}

// compareEraToYearMonth compares era's Until against (year, month), with
// day implicitly 1 and ties broken by the sign of UntilSeconds, per the
// reference comparison in §4.1.2.
func compareEraToYearMonth(era *zonedb.ZoneEra, ym yearMonth) int {
	if era.UntilYear != ym.year {
		if era.UntilYear < ym.year {
			return -1
		}
		return 1
	}
	if era.UntilMonth != ym.month {
		if era.UntilMonth < ym.month {
			return -1
		}
		return 1
	}
	if era.UntilDay > 1 {
		return 1
	}
	if era.UntilSeconds < 0 {
		return -1
	}
	if era.UntilSeconds > 0 {
		return 1
	}
	return 0
}

func createMatch(prev *matchingEra, era *zonedb.ZoneEra, lo, hi yearMonth) *matchingEra {
	var start datetuple.DateTuple
	if prev == nil {
		start = datetuple.DateTuple{Year: zonedb.MinYear, Month: 1, Day: 1, Seconds: 0, Modifier: zonedb.Wall}
	} else {
		start = prev.Era.Until()
	}
	left := datetuple.DateTuple{Year: lo.year, Month: lo.month, Day: 1, Seconds: 0, Modifier: zonedb.Wall}
	if datetuple.Less(start, left) {
		start = left
	}

	until := era.Until()
	right := datetuple.DateTuple{Year: hi.year, Month: hi.month, Day: 1, Seconds: 0, Modifier: zonedb.Wall}
	if datetuple.Less(right, until) {
		until = right
	}

	return &matchingEra{
		Start: start,
		Until: until,
		Era:   era,
		Prev:  prev,
	}
}
