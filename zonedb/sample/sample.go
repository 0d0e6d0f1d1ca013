// Package sample provides a small, hand-curated set of compiled zone
// records for use in tests, examples, and the bundled commands. It is not
// a release of the IANA database; see DESIGN.md for what it deliberately
// leaves out.
package sample

import (
	_ "embed"
	"strings"

	"github.com/go-tz/acetz/tzdata"
	"github.com/go-tz/acetz/zonedb"
)

//go:embed testzones.tzdata
var testZonesText string

// Context is the ZoneContext every sample.Zones() record is compiled
// under.
var Context = &zonedb.ZoneContext{
	TZDBVersion:   "acetz-sample-1",
	StartYear:     2000,
	UntilYear:     2100,
	BaseEpochYear: 2000,
}

// Zones parses the embedded sample tzdata text and returns its zones and
// links, keyed by name. It panics on malformed embedded data, since that
// would be a defect in this module rather than a runtime condition any
// caller could recover from.
func Zones() map[string]*zonedb.ZoneInfo {
	f, err := tzdata.Parse(strings.NewReader(testZonesText))
	if err != nil {
		panic("zonedb/sample: embedded tzdata failed to parse: " + err.Error())
	}
	zones, err := zonedb.Load(f, Context)
	if err != nil {
		panic("zonedb/sample: embedded tzdata failed to load: " + err.Error())
	}
	return zones
}
