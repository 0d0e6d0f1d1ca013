package zoneprocessor

import (
	"github.com/go-tz/acetz/internal/datetuple"
	"github.com/go-tz/acetz/zonedb"
)

// matchStatus classifies how a candidate transition's native time relates
// to the MatchingEra that produced it. It exists purely as working state
// during initForYear; callers never see it.
type matchStatus int8

const (
	statusFarPast matchStatus = iota - 2
	statusPrior
	statusExactMatch
	statusWithinMatch
	statusFarFuture
)

func (s matchStatus) isActive() bool {
	return s == statusExactMatch || s == statusWithinMatch || s == statusPrior
}

// matchingEra is an era clipped to the processor's three-year working
// window, as described in §4.1.2 of the engine design: its Start is the
// previous era's Until in that era's declared frame (clipped to the window),
// which candidates are compared against after expanding it with the
// previous era's exit offsets, and its Until is this era's Until clipped to
// the window.
type matchingEra struct {
	Start, Until datetuple.DateTuple
	Era          *zonedb.ZoneEra
	Prev         *matchingEra

	// lastOffsetSeconds/lastDeltaSeconds are the (utc, dst) offsets in
	// effect the instant this MatchingEra ends; they seed frame
	// expansion for the next MatchingEra's candidates. Populated once
	// this era's transitions have been computed.
	lastOffsetSeconds, lastDeltaSeconds int32
	lastTransition                      *transition
}

// transition is a concrete instant at which the effective (utcOffset,
// dstOffset) pair changes, or the synthetic transition at the start of a
// MatchingEra.
type transition struct {
	match *matchingEra
	rule  *zonedb.ZoneRule // nil for an era-start transition

	// nativeTime is the transition's time in the frame in which it was
	// originally composed (the rule's AtModifier, or wall for an
	// era-start transition).
	nativeTime datetuple.DateTuple

	// w, s, u are the three-frame expansion of nativeTime, filled in by
	// fixTransitionTimesChain using the offsets in effect just before this
	// transition.
	w, s, u datetuple.DateTuple

	utcOffsetSeconds int32
	dstOffsetSeconds int32
	letter           string
	abbrev           string

	status matchStatus

	// startDateTime/untilDateTime are this transition's validity window
	// in its OWN wall frame, computed by generateStartUntilTimes.
	startDateTime, untilDateTime datetuple.DateTuple
	startEpochSecond             int64

	// originalNativeTime preserves nativeTime for the "most recent prior"
	// transition before its time is overwritten with the MatchingEra's
	// start, mirroring the reference algorithm's bookkeeping.
	originalNativeTime datetuple.DateTuple
	hasOriginalNative   bool
}

func (t *transition) totalOffset() int32 {
	return t.utcOffsetSeconds + t.dstOffsetSeconds
}

// transitionBuffer is a fixed-capacity holding area for active transitions.
// Capacity is set to the zone's compiler-declared TransitionBufSize; an
// attempt to push past it is a BadZoneData condition, never a silent
// reallocation, matching the engine's commitment to bounded buffers for
// embedded parity.
type transitionBuffer struct {
	zone string
	buf  []transition
}

func newTransitionBuffer(zone string, capacity uint8) *transitionBuffer {
	return &transitionBuffer{
		zone: zone,
		buf:  make([]transition, 0, capacity),
	}
}

func (b *transitionBuffer) reset() {
	b.buf = b.buf[:0]
}

func (b *transitionBuffer) push(t transition) error {
	if len(b.buf) == cap(b.buf) {
		return badZoneData(b.zone,
			"active transition buffer exceeded capacity %d", cap(b.buf))
	}
	b.buf = append(b.buf, t)
	return nil
}

func (b *transitionBuffer) slice() []transition {
	return b.buf
}
