package zoneprocessor

import (
	"sort"

	"github.com/go-tz/acetz/internal/calendar"
	"github.com/go-tz/acetz/internal/datetuple"
	"github.com/go-tz/acetz/zonedb"
)

// createTransitionsForMatch returns the active transitions produced by a
// single MatchingEra, given the (utc, dst) offsets in effect the instant
// this match begins (the previous match's exit offsets, or the seed
// described in DESIGN.md's Open Question resolution when there is none) and
// seedLetter, the abbreviation letter of whichever rule last governed
// before this match began (empty if none ever has, per §4.1.4 step 5).
func createTransitionsForMatch(zone string, m *matchingEra, cachedYear int16, seedOffset, seedDelta int32, seedLetter string) ([]transition, error) {
	if m.Era.Policy == nil {
		return createSimpleTransition(m), nil
	}
	return createNamedTransitions(zone, m, cachedYear, seedOffset, seedDelta, seedLetter)
}

func createSimpleTransition(m *matchingEra) []transition {
	t := transition{
		match:            m,
		rule:             nil,
		nativeTime:       m.Start,
		utcOffsetSeconds: m.Era.OffsetSeconds,
		dstOffsetSeconds: m.Era.FixedDeltaSeconds,
		status:           statusExactMatch,
	}
	return []transition{t}
}

func createNamedTransitions(zone string, m *matchingEra, cachedYear int16, seedOffset, seedDelta int32, seedLetter string) ([]transition, error) {
	policy := m.Era.Policy

	candidateYears := [3]int16{cachedYear - 1, cachedYear, cachedYear + 1}

	var candidates []transition
	for ri := range policy.Rules {
		rule := &policy.Rules[ri]
		for _, y := range candidateYears {
			if !rule.Applies(y) {
				continue
			}
			day := calendar.DayOfMonthForRule(y, rule.Month, rule.DayOfMonth, rule.DayOfWeek, rule.DayOnOrBefore)
			native := datetuple.DateTuple{
				Year: y, Month: rule.Month, Day: day,
				Seconds: rule.AtSeconds, Modifier: rule.AtModifier,
			}
			candidates = append(candidates, transition{
				match:            m,
				rule:             rule,
				nativeTime:       native,
				utcOffsetSeconds: m.Era.OffsetSeconds,
				dstOffsetSeconds: rule.DeltaSeconds,
				letter:           rule.Letter,
			})
		}
	}

	// Always emit a synthetic era-start candidate; an exact-match
	// rule-derived transition at the same instant overrides it (§4.1.4).
	candidates = append(candidates, transition{
		match:            m,
		rule:             nil,
		nativeTime:       m.Start,
		utcOffsetSeconds: m.Era.OffsetSeconds,
		dstOffsetSeconds: 0,
	})

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i].nativeTime, candidates[j].nativeTime
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		return a.Day < b.Day
	})

	fixTransitionTimesChain(candidates)

	sort.SliceStable(candidates, func(i, j int) bool {
		return datetuple.Less(candidates[i].u, candidates[j].u)
	})

	active := selectActiveTransitions(m, candidates, seedOffset, seedDelta, seedLetter)
	if len(active) == 0 {
		return nil, badZoneData(zone, "named match for policy %q produced no active transitions", policy.Name)
	}
	return active, nil
}

// fixTransitionTimesChain expands every candidate's nativeTime into its
// (w, s, u) frames, using the immediately preceding candidate's own
// resulting offsets as the frame basis. The first candidate bootstraps with
// its own offsets; this is only accurate enough to support the comparisons
// in selectActiveTransitions, not a final answer — initForYear runs it again
// over the full cross-match transition list before generateStartUntilTimes.
func fixTransitionTimesChain(candidates []transition) {
	if len(candidates) == 0 {
		return
	}
	prevOffset, prevDelta := candidates[0].utcOffsetSeconds, candidates[0].dstOffsetSeconds
	for i := range candidates {
		frames := datetuple.Expand(candidates[i].nativeTime, prevOffset, prevDelta)
		candidates[i].w, candidates[i].s, candidates[i].u = frames.Wall, frames.Standard, frames.UTC
		prevOffset, prevDelta = candidates[i].utcOffsetSeconds, candidates[i].dstOffsetSeconds
	}
}

// selectActiveTransitions runs the match-status state machine described in
// §4.1.4 over transitions already sorted by UTC instant, then returns only
// those marked active. seedLetter is threaded onto whichever transition
// ends up governing the match's start if that transition has no rule of
// its own to supply a letter (the synthetic era-start candidate).
func selectActiveTransitions(m *matchingEra, candidates []transition, seedOffset, seedDelta int32, seedLetter string) []transition {
	var prior *transition
	// governingLetter tracks the letter of the most recent rule seen so far
	// that actually governed some instant before the match's start, so it
	// can be backfilled onto the synthetic era-start candidate if that one
	// ends up superseding every real rule as the final "prior" transition
	// (candidates are visited in chronological order, so whichever
	// candidate is demoted to statusFarPast last is the most recent).
	governingLetter := seedLetter
	for i := range candidates {
		c := &candidates[i]
		c.status = compareTransitionToMatch(c, m, seedOffset, seedDelta)
		switch c.status {
		case statusExactMatch:
			if c.rule == nil && prior != nil && prior.status == statusExactMatch && prior.rule != nil {
				// A rule-derived transition at exactly the match's start
				// overrides the synthetic era-start candidate.
				c.status = statusFarPast
				continue
			}
			if prior != nil {
				prior.status = statusFarPast
				if prior.letter != "" {
					governingLetter = prior.letter
				}
			}
			prior = c
		case statusPrior:
			if prior != nil {
				if !datetuple.Less(c.u, prior.u) {
					prior.status = statusFarPast
					if prior.letter != "" {
						governingLetter = prior.letter
					}
					prior = c
				} else {
					c.status = statusFarPast
					if c.letter != "" {
						governingLetter = c.letter
					}
				}
			} else {
				prior = c
			}
		}
	}
	if prior != nil {
		prior.originalNativeTime = prior.nativeTime
		prior.hasOriginalNative = true
		prior.nativeTime = m.Start
		if prior.rule == nil {
			prior.letter = governingLetter
		}
	}

	var active []transition
	for i := range candidates {
		if candidates[i].status.isActive() {
			active = append(active, candidates[i])
		}
	}
	return active
}

// compareTransitionToMatch determines how t's transition time relates to
// the timeline of m, per §4.1.4. seedOffset/seedDelta are the offsets in
// effect just before m begins.
func compareTransitionToMatch(t *transition, m *matchingEra, seedOffset, seedDelta int32) matchStatus {
	frames := datetuple.Expand(m.Start, seedOffset, seedDelta)

	if t.u == frames.UTC || t.w == frames.Wall || t.s == frames.Standard {
		return statusExactMatch
	}
	if datetuple.Less(t.u, frames.UTC) {
		return statusPrior
	}

	var transitionTime datetuple.DateTuple
	switch m.Until.Modifier {
	case zonedb.Wall:
		transitionTime = t.w
	case zonedb.Standard:
		transitionTime = t.s
	default:
		transitionTime = t.u
	}
	if !datetuple.Less(transitionTime, m.Until) {
		return statusFarFuture
	}
	return statusWithinMatch
}
