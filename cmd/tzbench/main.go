// Command tzbench measures the transition buffer capacity every zone in
// the sample database actually needs, the way a zone compiler's static
// analysis pass would, and reports the worst case across the whole set.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/go-tz/acetz/bufestimator"
	"github.com/go-tz/acetz/zonedb/sample"
)

func main() {
	startYear := flag.Int("start", 2000, "first year to simulate (inclusive)")
	untilYear := flag.Int("until", 2100, "last year to simulate (exclusive)")
	flag.Parse()

	zones := sample.Zones()
	results, err := bufestimator.EstimateAll(zones, int16(*startYear), int16(*untilYear))
	if err != nil {
		fmt.Fprintln(os.Stderr, "tzbench:", err)
		os.Exit(1)
	}

	maxCount := 0
	var maxZone string
	for _, r := range results {
		fmt.Printf("%-28s max_active=%d (in %d)\n", r.Zone, r.MaxActiveSize.Count, r.MaxActiveSize.Year)
		if r.MaxActiveSize.Count > maxCount {
			maxCount = r.MaxActiveSize.Count
			maxZone = r.Zone
		}
	}
	fmt.Printf("\nworst case: %s needs %d active transitions\n", maxZone, maxCount)
}
