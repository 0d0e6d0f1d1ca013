// Package zoneprocessor implements the on-demand zone processing engine:
// given a zone's compiled eras and rules, it computes, for a single
// cached year at a time, the bounded list of transitions that govern
// that year plus a short margin on either side, and answers offset
// queries against that list.
package zoneprocessor

import (
	"fmt"
	"strings"

	"github.com/go-tz/acetz/internal/calendar"
	"github.com/go-tz/acetz/internal/datetuple"
	"github.com/go-tz/acetz/zonedb"
	"go.uber.org/zap"
)

// OffsetInfo is the result of resolving an instant or a local time to its
// governing transition.
type OffsetInfo struct {
	UTCOffsetSeconds int32
	DSTOffsetSeconds int32
	Abbrev           string
}

func (o OffsetInfo) TotalOffsetSeconds() int32 {
	return o.UTCOffsetSeconds + o.DSTOffsetSeconds
}

// FoldResult reports the outcome of resolving a local (wall-clock) time
// that may be ambiguous (fold=1 candidates exist) or may not exist at all
// (a gap).
type FoldResult struct {
	Offset OffsetInfo
	// Fold mirrors PEP 495: in an overlap, 0 selects the earlier transition
	// and 1 the later one; in a gap the mapping is reversed. For an
	// unambiguous local time both folds resolve to the same answer.
	Fold int
	// Gap is true when the requested local time never occurred, because a
	// transition skipped over it; Offset is then the offset that governs
	// immediately after the gap for fold=0, or immediately before it for
	// fold=1.
	Gap bool
}

type bindState int8

const (
	stateUnbound bindState = iota
	stateBound
	stateYearCached
)

// Processor answers offset queries for a single bound zone, lazily
// recomputing its transition cache whenever a query falls in a year other
// than the currently cached one.
type Processor struct {
	registry *zonedb.ZoneInfo
	state    bindState

	cachedYear int16
	buffer     *transitionBuffer
	matches    []*matchingEra

	log *zap.Logger
}

// NewProcessor binds a processor to a resolved (non-link) zone record.
func NewProcessor(zi *zonedb.ZoneInfo, log *zap.Logger) (*Processor, error) {
	if zi == nil {
		return nil, badZoneData("<nil>", "NewProcessor called with a nil ZoneInfo")
	}
	if zi.IsLink() {
		return nil, badZoneData(zi.Name, "NewProcessor requires a resolved zone, got a link to %q", zi.Target.Name)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Processor{
		registry: zi,
		state:    stateBound,
		buffer:   newTransitionBuffer(zi.Name, zi.TransitionBufSize),
		log:      log,
	}, nil
}

func (p *Processor) Name() string { return p.registry.Name }

// ActiveTransitionCount returns the number of active transitions computed
// for year, forcing a cache rebuild if a different year is currently
// cached. It exists for package bufestimator, which needs the raw count
// rather than any particular offset answer.
func (p *Processor) ActiveTransitionCount(year int16) (int, error) {
	if err := p.initForYear(year); err != nil {
		return 0, err
	}
	return len(p.buffer.slice()), nil
}

// initForYear recomputes the transition cache so that it covers year, plus
// the December margin of year-1 and the January margin of year+1, per
// §4.1.1. It is a no-op if year is already cached.
func (p *Processor) initForYear(year int16) error {
	if p.state == stateYearCached && p.cachedYear == year {
		return nil
	}

	ctx := p.registry.Context
	if ctx != nil && (year < ctx.StartYear || year >= ctx.UntilYear) {
		return &OutOfRangeError{Zone: p.registry.Name, Year: year}
	}

	eras := p.registry.ResolveEras()
	lo := yearMonth{year: year - 1, month: 12}
	hi := yearMonth{year: year + 1, month: 2}

	matches, err := findMatches(p.registry.Name, eras, lo, hi)
	if err != nil {
		return err
	}

	// Until the rebuild completes, no year counts as cached, so a failure
	// below leaves the cache invalid rather than claiming the old year.
	p.state = stateBound
	p.buffer.reset()

	seedOffset, seedDelta := matches[0].Era.OffsetSeconds, int32(0)
	var seedLetter string
	var flat []transition
	for _, m := range matches {
		ts, err := createTransitionsForMatch(p.registry.Name, m, year, seedOffset, seedDelta, seedLetter)
		if err != nil {
			return err
		}
		flat = append(flat, ts...)
		last := &ts[len(ts)-1]
		m.lastOffsetSeconds, m.lastDeltaSeconds = last.utcOffsetSeconds, last.dstOffsetSeconds
		m.lastTransition = last
		seedOffset, seedDelta, seedLetter = m.lastOffsetSeconds, m.lastDeltaSeconds, last.letter
	}

	fixTransitionTimesChain(flat)
	generateStartUntilTimes(flat)
	calcAbbreviations(flat)

	for i := range flat {
		if err := p.buffer.push(flat[i]); err != nil {
			return err
		}
	}

	p.matches = matches
	p.cachedYear = year
	p.state = stateYearCached

	p.log.Debug("zone cache rebuilt",
		zap.String("zone", p.registry.Name),
		zap.Int16("year", year),
		zap.Int("transitions", len(flat)),
	)
	return nil
}

// generateStartUntilTimes fixes each transition's validity window.
// fixTransitionTimesChain already computed t.u correctly — it chains each
// candidate's own AT value through its immediate predecessor's offsets,
// exactly as zic interprets a rule's AT field against the offset in effect
// just before the transition — but t.w is left expressed in that
// predecessor's frame, not this transition's own. startDateTime must be the
// wall time in THIS transition's own offset, so it is recomputed here by
// re-expanding t.u (the one frame-independent value available) through
// (utcOffsetSeconds, dstOffsetSeconds). untilDateTime is the next
// transition's instant re-expressed in this transition's offset, and
// startEpochSecond is the UTC instant at which it takes effect.
func generateStartUntilTimes(transitions []transition) {
	for i := range transitions {
		t := &transitions[i]
		t.startDateTime = datetuple.Expand(t.u, t.utcOffsetSeconds, t.dstOffsetSeconds).Wall
		t.startEpochSecond = datetuple.EpochSeconds(t.u)
		if i+1 < len(transitions) {
			next := &transitions[i+1]
			t.untilDateTime = datetuple.Expand(next.nativeValidAt(), t.utcOffsetSeconds, t.dstOffsetSeconds).Wall
		} else {
			t.untilDateTime = datetuple.DateTuple{Year: zonedb.MaxYear, Month: 12, Day: 31, Seconds: 0, Modifier: zonedb.Wall}
		}
	}
}

// nativeValidAt returns the UTC instant the transition takes effect, used
// purely to re-express it in a neighbor's frame.
func (t *transition) nativeValidAt() datetuple.DateTuple {
	return t.u
}

// calcAbbreviations fills in the human-readable abbreviation for each
// transition from the era's FORMAT string: a %s is replaced by the
// transition's LETTER, an "A/B" pair yields A without DST and B with it, and
// any other FORMAT is used literally. %z is not expanded.
func calcAbbreviations(transitions []transition) {
	for i := range transitions {
		t := &transitions[i]
		format := t.match.Era.Format
		letter := t.letter
		t.abbrev = formatAbbrev(format, letter, t.dstOffsetSeconds)
	}
}

func formatAbbrev(format, letter string, dstOffsetSeconds int32) string {
	if idx := strings.IndexByte(format, '%'); idx >= 0 && idx+1 < len(format) && format[idx+1] == 's' {
		if letter == "-" {
			letter = ""
		}
		return format[:idx] + letter + format[idx+2:]
	}
	if slash := strings.IndexByte(format, '/'); slash >= 0 {
		if dstOffsetSeconds != 0 {
			return format[slash+1:]
		}
		return format[:slash]
	}
	return format
}

// OffsetForInstant resolves the offset in effect at the given epoch
// second, expressed as seconds since calendar.EpochYear.
func (p *Processor) OffsetForInstant(epochSeconds int64) (OffsetInfo, error) {
	year := yearOfEpochSeconds(epochSeconds)
	if err := p.initForYear(year); err != nil {
		return OffsetInfo{}, err
	}
	return p.offsetForInstantInCache(epochSeconds)
}

func (p *Processor) offsetForInstantInCache(epochSeconds int64) (OffsetInfo, error) {
	ts := p.buffer.slice()
	var found *transition
	for i := range ts {
		if ts[i].startEpochSecond <= epochSeconds {
			found = &ts[i]
		} else {
			break
		}
	}
	if found == nil {
		return OffsetInfo{}, badZoneData(p.registry.Name, "no governing transition for epoch second %d", epochSeconds)
	}
	return OffsetInfo{
		UTCOffsetSeconds: found.utcOffsetSeconds,
		DSTOffsetSeconds: found.dstOffsetSeconds,
		Abbrev:           found.abbrev,
	}, nil
}

func yearOfEpochSeconds(epochSeconds int64) int16 {
	// Coarse inverse of calendar.EpochSeconds: divide by the average
	// Gregorian year length in seconds (365.2425 days, exactly
	// 31556952 seconds), then walk to the exact year. Good enough as a
	// first guess because initForYear's margin absorbs small errors.
	const secondsPerYear = 31556952
	guess := int16(calendar.EpochYear + epochSeconds/secondsPerYear)
	for calendar.EpochSeconds(guess, 1, 1, 0) > epochSeconds {
		guess--
	}
	for calendar.EpochSeconds(guess+1, 1, 1, 0) <= epochSeconds {
		guess++
	}
	return guess
}

// OffsetForLocal resolves a local (wall-clock) date and time, handling
// gaps and folds per §4.1.5. fold selects between the two candidate
// offsets when the local time is ambiguous; it is ignored when the local
// time is unambiguous.
func (p *Processor) OffsetForLocal(year int16, month, day uint8, secondsOfDay int32, fold int) (FoldResult, error) {
	if err := p.initForYear(year); err != nil {
		return FoldResult{}, err
	}

	wall := datetuple.DateTuple{Year: year, Month: month, Day: day, Seconds: secondsOfDay, Modifier: zonedb.Wall}

	ts := p.buffer.slice()
	if len(ts) == 0 {
		return FoldResult{}, badZoneData(p.registry.Name, "empty transition cache for year %d", year)
	}

	var before, at, overlapAfter, postGap *transition
	for i := range ts {
		t := &ts[i]
		if datetuple.Less(wall, t.startDateTime) {
			if postGap == nil {
				postGap = t
			}
			continue
		}
		if datetuple.Less(wall, t.untilDateTime) {
			if at == nil {
				at = t
			} else {
				overlapAfter = t
			}
		}
		before = t
	}

	switch {
	case at != nil && overlapAfter != nil:
		// Overlap: two transitions both claim this wall time, meaning the
		// clock fell back through it. fold=0 picks the earlier (at),
		// fold=1 the later (overlapAfter).
		chosen := at
		if fold == 1 {
			chosen = overlapAfter
		}
		return FoldResult{Offset: offsetOf(chosen), Fold: fold}, nil
	case at != nil:
		return FoldResult{Offset: offsetOf(at), Fold: fold}, nil
	default:
		// Gap: no transition's window contains wall, meaning the clock
		// jumped forward across it. fold=0 selects the transition after
		// the gap, fold=1 the transition before it.
		if postGap == nil {
			postGap = &ts[len(ts)-1]
		}
		if before == nil {
			before = &ts[0]
		}
		chosen := postGap
		if fold == 1 {
			chosen = before
		}
		return FoldResult{Offset: offsetOf(chosen), Fold: fold, Gap: true}, nil
	}
}

func offsetOf(t *transition) OffsetInfo {
	return OffsetInfo{
		UTCOffsetSeconds: t.utcOffsetSeconds,
		DSTOffsetSeconds: t.dstOffsetSeconds,
		Abbrev:           t.abbrev,
	}
}

func (o OffsetInfo) String() string {
	return fmt.Sprintf("%s(utc=%ds,dst=%ds)", o.Abbrev, o.UTCOffsetSeconds, o.DSTOffsetSeconds)
}
