package zonedb

import (
	"fmt"
	"time"

	"github.com/go-tz/acetz/tzdata"
)

// Load converts a parsed tzdata.File into a set of ZoneInfo records, one per
// named Zone block, plus one per Link, sharing ctx. It is the bridge between
// the IANA text format and the compiled record shape the processor walks;
// a real ahead-of-time compiler would do this once and emit Go source, but
// nothing here prevents calling it at program startup instead.
func Load(f tzdata.File, ctx *ZoneContext) (map[string]*ZoneInfo, error) {
	policies := make(map[string]*ZonePolicy)
	for _, rl := range f.RuleLines {
		p := policies[rl.Name]
		if p == nil {
			p = &ZonePolicy{Name: rl.Name}
			policies[rl.Name] = p
		}
		rule, err := convertRule(rl)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", rl.Name, err)
		}
		p.Rules = append(p.Rules, rule)
	}

	zones := make(map[string]*ZoneInfo)
	order := make([]string, 0)
	var current *ZoneInfo
	for _, zl := range f.ZoneLines {
		if !zl.Continuation {
			current = &ZoneInfo{Name: zl.Name, Context: ctx}
			zones[zl.Name] = current
			order = append(order, zl.Name)
		}
		if current == nil {
			return nil, fmt.Errorf("continuation line with no preceding Zone line")
		}
		era, err := convertEra(zl, policies)
		if err != nil {
			return nil, fmt.Errorf("zone %q: %w", current.Name, err)
		}
		current.Eras = append(current.Eras, era)
	}

	for _, ll := range f.LinkLines {
		target, ok := zones[ll.From]
		if !ok {
			return nil, fmt.Errorf("link %q references unknown target %q", ll.To, ll.From)
		}
		zones[ll.To] = &ZoneInfo{Name: ll.To, Target: target, Context: ctx}
	}

	// TransitionBufSize starts at a conservative placeholder; a real
	// compiler derives a tight bound by simulating every supported year,
	// which this package cannot do without importing the processor it
	// feeds (see package bufestimator, which closes that loop one layer
	// up and overwrites this field with a measured value).
	for _, name := range order {
		zones[name].TransitionBufSize = defaultTransitionBufSize
	}

	return zones, nil
}

const defaultTransitionBufSize = 8

func convertRule(rl tzdata.RuleLine) (ZoneRule, error) {
	atSeconds, atMod := convertTime(rl.At)
	day, err := convertDay(rl.On)
	if err != nil {
		return ZoneRule{}, err
	}
	letter := rl.Letter
	if letter == "-" {
		letter = ""
	}
	return ZoneRule{
		FromYear:      clampYear(rl.From),
		ToYear:        clampYear(rl.To),
		Month:         uint8(rl.In),
		DayOfMonth:    day.dayOfMonth,
		DayOfWeek:     day.dayOfWeek,
		DayOnOrBefore: day.onOrBefore,
		AtSeconds:     atSeconds,
		AtModifier:    atMod,
		DeltaSeconds:  int32(rl.Save.Duration / time.Second),
		Letter:        letter,
	}, nil
}

func convertEra(zl tzdata.ZoneLine, policies map[string]*ZonePolicy) (ZoneEra, error) {
	era := ZoneEra{
		OffsetSeconds: int32(zl.Offset / time.Second),
		Format:        zl.Format,
	}
	switch zl.Rules.Form {
	case tzdata.ZoneRulesStandard:
		// no DST.
	case tzdata.ZoneRulesTime:
		era.FixedDeltaSeconds = int32(zl.Rules.Time.Duration / time.Second)
	case tzdata.ZoneRulesName:
		p, ok := policies[zl.Rules.Name]
		if !ok {
			return ZoneEra{}, fmt.Errorf("references unknown rule policy %q", zl.Rules.Name)
		}
		era.Policy = p
	}

	if !zl.Until.Defined {
		era.UntilYear, era.UntilMonth, era.UntilDay, era.UntilSeconds, era.UntilModifier =
			MaxYear, 1, 1, 0, Wall
		return era, nil
	}

	era.UntilYear = clampYearInt(zl.Until.Year)
	era.UntilMonth = 1
	era.UntilDay = 1
	if zl.Until.Parts.Has(tzdata.UntilMonth) {
		era.UntilMonth = uint8(zl.Until.Month)
	}
	if zl.Until.Parts.Has(tzdata.UntilDay) {
		day, err := convertDay(zl.Until.Day)
		if err != nil {
			return ZoneEra{}, err
		}
		if day.dayOfWeek != 0 {
			return ZoneEra{}, fmt.Errorf("UNTIL day-of-week forms are not supported for era boundaries")
		}
		era.UntilDay = day.dayOfMonth
	}
	if zl.Until.Parts.Has(tzdata.UntilTime) {
		era.UntilSeconds, era.UntilModifier = convertTime(zl.Until.Time)
	}
	return era, nil
}

func convertTime(t tzdata.Time) (int32, Modifier) {
	mod := Wall
	switch t.Form {
	case tzdata.StandardTime:
		mod = Standard
	case tzdata.UniversalTime:
		mod = UTC
	case tzdata.DaylightSavingTime, tzdata.WallClock:
		mod = Wall
	}
	return int32(t.Duration / time.Second), mod
}

type resolvedDay struct {
	dayOfMonth uint8
	dayOfWeek  uint8
	onOrBefore bool
}

// convertDay resolves a tzdata.Day into the (DayOfMonth, DayOfWeek) encoding
// zonedb.ZoneRule uses: a plain day number leaves DayOfWeek at 0, while
// "lastSun"/"Sun>=23"/"Sun<=23"-style forms are resolved at evaluation time
// by calendar.DayOfMonthForRule and so are passed through with DayOfMonth
// carrying the Num field (0 for "last").
func convertDay(d tzdata.Day) (resolvedDay, error) {
	switch d.Form {
	case tzdata.DayFormDayNum:
		return resolvedDay{dayOfMonth: uint8(d.Num)}, nil
	case tzdata.DayFormLast:
		return resolvedDay{dayOfMonth: 0, dayOfWeek: convertWeekday(d.Day)}, nil
	case tzdata.DayFormAfter:
		return resolvedDay{dayOfMonth: uint8(d.Num), dayOfWeek: convertWeekday(d.Day)}, nil
	case tzdata.DayFormBefore:
		return resolvedDay{dayOfMonth: uint8(d.Num), dayOfWeek: convertWeekday(d.Day), onOrBefore: true}, nil
	default:
		return resolvedDay{}, fmt.Errorf("unrecognized day form %v", d.Form)
	}
}

// convertWeekday maps time.Weekday (Sunday=0) onto the datetuple convention
// of Monday=1..Sunday=7 used throughout internal/calendar.
func convertWeekday(w time.Weekday) uint8 {
	if w == time.Sunday {
		return 7
	}
	return uint8(w)
}

func clampYear(y tzdata.Year) int16 {
	return clampYearInt(int(y))
}

func clampYearInt(y int) int16 {
	if y <= int(MinYear) {
		return MinYear
	}
	if y >= int(MaxYear) {
		return MaxYear
	}
	return int16(y)
}
