package zoneprocessor

import (
	"testing"

	"github.com/go-tz/acetz/internal/calendar"
	"github.com/go-tz/acetz/zonedb/sample"
	"go.uber.org/zap"
)

func processorFor(t *testing.T, name string) *Processor {
	t.Helper()
	zones := sample.Zones()
	zi, ok := zones[name]
	if !ok {
		t.Fatalf("zone %q not found in sample database", name)
	}
	if zi.IsLink() {
		zi = zi.Target
	}
	p, err := NewProcessor(zi, zap.NewNop())
	if err != nil {
		t.Fatalf("NewProcessor(%q): %v", name, err)
	}
	return p
}

func epoch(year int16, month, day uint8, hour, min int32) int64 {
	return calendar.EpochSeconds(year, month, day, hour*3600+min*60)
}

func TestLosAngelesWinterOffset(t *testing.T) {
	p := processorFor(t, "America/Los_Angeles")
	info, err := p.OffsetForInstant(epoch(2024, 1, 15, 12, 0))
	if err != nil {
		t.Fatal(err)
	}
	if info.UTCOffsetSeconds != -8*3600 || info.DSTOffsetSeconds != 0 {
		t.Errorf("got utc=%d dst=%d, want utc=-28800 dst=0", info.UTCOffsetSeconds, info.DSTOffsetSeconds)
	}
}

func TestLosAngelesSummerOffset(t *testing.T) {
	p := processorFor(t, "America/Los_Angeles")
	info, err := p.OffsetForInstant(epoch(2024, 7, 15, 12, 0))
	if err != nil {
		t.Fatal(err)
	}
	if info.UTCOffsetSeconds != -8*3600 || info.DSTOffsetSeconds != 3600 {
		t.Errorf("got utc=%d dst=%d, want utc=-28800 dst=3600", info.UTCOffsetSeconds, info.DSTOffsetSeconds)
	}
}

func TestLosAngelesSpringForwardGap(t *testing.T) {
	p := processorFor(t, "America/Los_Angeles")
	// 2024-03-10: clocks jump from 02:00 to 03:00. 02:30 never happened.
	// fold=0 resolves to the transition after the gap (PDT, dst=3600);
	// fold=1 resolves to the transition before it (PST, dst=0).
	postGap, err := p.OffsetForLocal(2024, 3, 10, 2*3600+30*60, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !postGap.Gap {
		t.Errorf("expected a gap at 2024-03-10 02:30 local")
	}
	if postGap.Offset.UTCOffsetSeconds != -8*3600 || postGap.Offset.DSTOffsetSeconds != 3600 {
		t.Errorf("fold=0 gap offset = %+v, want utc=-28800 dst=3600", postGap.Offset)
	}

	preGap, err := p.OffsetForLocal(2024, 3, 10, 2*3600+30*60, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !preGap.Gap {
		t.Errorf("expected a gap at 2024-03-10 02:30 local")
	}
	if preGap.Offset.UTCOffsetSeconds != -8*3600 || preGap.Offset.DSTOffsetSeconds != 0 {
		t.Errorf("fold=1 gap offset = %+v, want utc=-28800 dst=0", preGap.Offset)
	}
}

// TestGapFoldSignMatchesSpringForward pins the general property behind
// TestLosAngelesSpringForwardGap: in a spring-forward gap, fold=0 must
// resolve to a total offset strictly greater than fold=1's, since fold=0
// lands on the later (post-gap, larger-offset) transition.
func TestGapFoldSignMatchesSpringForward(t *testing.T) {
	p := processorFor(t, "America/Los_Angeles")
	fold0, err := p.OffsetForLocal(2024, 3, 10, 2*3600+30*60, 0)
	if err != nil {
		t.Fatal(err)
	}
	fold1, err := p.OffsetForLocal(2024, 3, 10, 2*3600+30*60, 1)
	if err != nil {
		t.Fatal(err)
	}
	if fold0.Offset.TotalOffsetSeconds() <= fold1.Offset.TotalOffsetSeconds() {
		t.Errorf("fold=0 total offset (%d) must exceed fold=1's (%d) across a gap",
			fold0.Offset.TotalOffsetSeconds(), fold1.Offset.TotalOffsetSeconds())
	}
}

// TestInstantToLocalRoundTrip checks that an unambiguous instant's offset,
// when used to build the corresponding local wall-clock time, resolves
// back to the same offset regardless of which fold is requested.
func TestInstantToLocalRoundTrip(t *testing.T) {
	p := processorFor(t, "America/Los_Angeles")
	instant := epoch(2024, 7, 15, 12, 0)
	info, err := p.OffsetForInstant(instant)
	if err != nil {
		t.Fatal(err)
	}
	secondsOfDay := int32(12*3600 + info.TotalOffsetSeconds())
	for _, fold := range []int{0, 1} {
		local, err := p.OffsetForLocal(2024, 7, 15, secondsOfDay, fold)
		if err != nil {
			t.Fatal(err)
		}
		if local.Gap {
			t.Fatalf("fold=%d: unexpected gap round-tripping an unambiguous instant", fold)
		}
		if local.Offset != info {
			t.Errorf("fold=%d: round trip got %+v, want %+v", fold, local.Offset, info)
		}
	}
}

func TestLosAngelesFallBackFold(t *testing.T) {
	p := processorFor(t, "America/Los_Angeles")
	// 2024-11-03: clocks fall from 02:00 back to 01:00. 01:30 occurs twice.
	early, err := p.OffsetForLocal(2024, 11, 3, 1*3600+30*60, 0)
	if err != nil {
		t.Fatal(err)
	}
	late, err := p.OffsetForLocal(2024, 11, 3, 1*3600+30*60, 1)
	if err != nil {
		t.Fatal(err)
	}
	if early.Offset.DSTOffsetSeconds != 3600 {
		t.Errorf("fold=0 should land in DST, got dst=%d", early.Offset.DSTOffsetSeconds)
	}
	if late.Offset.DSTOffsetSeconds != 0 {
		t.Errorf("fold=1 should land in standard time, got dst=%d", late.Offset.DSTOffsetSeconds)
	}
	if early.Gap || late.Gap {
		t.Errorf("fall-back overlap must not be reported as a gap")
	}
}

func TestHongKongNeverObservesDST(t *testing.T) {
	p := processorFor(t, "Asia/Hong_Kong")
	for _, month := range []uint8{1, 6, 12} {
		info, err := p.OffsetForInstant(epoch(2024, month, 15, 0, 0))
		if err != nil {
			t.Fatal(err)
		}
		if info.DSTOffsetSeconds != 0 || info.UTCOffsetSeconds != 8*3600 {
			t.Errorf("month %d: got utc=%d dst=%d, want utc=28800 dst=0", month, info.UTCOffsetSeconds, info.DSTOffsetSeconds)
		}
	}
}

func TestBahiaBanderasDroppedDSTIn2022(t *testing.T) {
	p := processorFor(t, "America/Bahia_Banderas")

	before, err := p.OffsetForInstant(epoch(2021, 7, 15, 12, 0))
	if err != nil {
		t.Fatal(err)
	}
	if before.DSTOffsetSeconds != 3600 {
		t.Errorf("2021-07: got dst=%d, want 3600 (still observing DST)", before.DSTOffsetSeconds)
	}

	after, err := p.OffsetForInstant(epoch(2022, 7, 15, 12, 0))
	if err != nil {
		t.Fatal(err)
	}
	if after.DSTOffsetSeconds != 0 {
		t.Errorf("2022-07: got dst=%d, want 0 (DST abolished)", after.DSTOffsetSeconds)
	}
	if after.UTCOffsetSeconds != -6*3600 {
		t.Errorf("2022-07: got utc=%d, want -21600", after.UTCOffsetSeconds)
	}
}

func TestOutOfRangeYearIsRejected(t *testing.T) {
	p := processorFor(t, "America/Los_Angeles")
	_, err := p.OffsetForInstant(epoch(2200, 1, 1, 0, 0))
	if err == nil {
		t.Fatal("expected an OutOfRangeError")
	}
	if _, ok := err.(*OutOfRangeError); !ok {
		t.Errorf("got %T, want *OutOfRangeError", err)
	}
}

func TestYearCacheIsReusedAcrossQueries(t *testing.T) {
	p := processorFor(t, "America/Los_Angeles")
	if _, err := p.OffsetForInstant(epoch(2024, 1, 1, 0, 0)); err != nil {
		t.Fatal(err)
	}
	cachedYear := p.cachedYear
	if _, err := p.OffsetForInstant(epoch(2024, 6, 1, 0, 0)); err != nil {
		t.Fatal(err)
	}
	if p.cachedYear != cachedYear {
		t.Errorf("cache was rebuilt for a query within the same year")
	}
}
