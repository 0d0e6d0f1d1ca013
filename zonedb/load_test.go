package zonedb

import (
	"strings"
	"testing"

	"github.com/go-tz/acetz/tzdata"
)

// TestLoadSupportsDayOnOrBeforeRules verifies that a "Sun<=N"-style rule,
// which a real tzdata release uses alongside "Sun>=N" forms, loads cleanly
// instead of being rejected.
func TestLoadSupportsDayOnOrBeforeRules(t *testing.T) {
	input := strings.TrimSpace(`
Rule	Test	2000	max	-	Oct	Sun<=25	2:00	0	S
Rule	Test	2000	max	-	Mar	Sun>=8	2:00	1:00	D

Zone	Test/Zone	0:00	Test	TE%sT
`)
	f, err := tzdata.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	zones, err := Load(f, &ZoneContext{StartYear: 2000, UntilYear: 2100})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	zi, ok := zones["Test/Zone"]
	if !ok {
		t.Fatal("Test/Zone not loaded")
	}
	policy := zi.Eras[0].Policy
	if policy == nil {
		t.Fatal("expected a policy to be resolved")
	}

	var octRule *ZoneRule
	for i := range policy.Rules {
		if policy.Rules[i].Month == 10 {
			octRule = &policy.Rules[i]
		}
	}
	if octRule == nil {
		t.Fatal("October rule not found")
	}
	if !octRule.DayOnOrBefore {
		t.Errorf("expected DayOnOrBefore=true for a Sun<=25 rule")
	}
	if octRule.DayOfMonth != 25 || octRule.DayOfWeek != 7 {
		t.Errorf("got DayOfMonth=%d DayOfWeek=%d, want 25, 7", octRule.DayOfMonth, octRule.DayOfWeek)
	}
}
