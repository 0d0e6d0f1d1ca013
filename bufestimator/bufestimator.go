// Package bufestimator measures, by direct simulation, the transition
// buffer capacity each zone actually needs over a span of years. It plays
// the role a zone compiler's static analysis pass would: rather than
// guessing a bound, it runs the zone processor across every supported year
// and records the high-water mark.
package bufestimator

import (
	"sort"

	"github.com/go-tz/acetz/zonedb"
	"github.com/go-tz/acetz/zoneprocessor"
	"go.uber.org/zap"
)

// CountAndYear pairs a measured count with the year it occurred in, so a
// caller can report not just "how many" but "when it got that bad".
type CountAndYear struct {
	Count int
	Year  int16
}

// Result is the outcome of estimating one zone's buffer requirement.
type Result struct {
	Zone          string
	MaxActiveSize CountAndYear
}

// Estimate simulates zi across [startYear, untilYear) and returns the
// largest number of active transitions observed in any single year.
func Estimate(zi *zonedb.ZoneInfo, startYear, untilYear int16) (Result, error) {
	p, err := zoneprocessor.NewProcessor(zi, zap.NewNop())
	if err != nil {
		return Result{}, err
	}

	result := Result{Zone: zi.Name}
	for year := startYear; year < untilYear; year++ {
		count, err := p.ActiveTransitionCount(year)
		if err != nil {
			return Result{}, err
		}
		if count > result.MaxActiveSize.Count {
			result.MaxActiveSize = CountAndYear{Count: count, Year: year}
		}
	}
	return result, nil
}

// EstimateAll estimates every zone in zones (skipping links, which borrow
// their target's buffer requirement) and assigns the measured high-water
// mark, plus a one-transition safety margin, back into each ZoneInfo's
// TransitionBufSize.
func EstimateAll(zones map[string]*zonedb.ZoneInfo, startYear, untilYear int16) ([]Result, error) {
	names := make([]string, 0, len(zones))
	for name := range zones {
		names = append(names, name)
	}
	sort.Strings(names)

	var results []Result
	for _, name := range names {
		zi := zones[name]
		if zi.IsLink() {
			continue
		}
		r, err := Estimate(zi, startYear, untilYear)
		if err != nil {
			return nil, err
		}
		zi.TransitionBufSize = uint8(r.MaxActiveSize.Count + 1)
		results = append(results, r)
	}
	return results, nil
}
