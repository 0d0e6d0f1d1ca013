package bufestimator

import (
	"testing"

	"github.com/go-tz/acetz/zonedb/sample"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateLosAngelesFindsActiveTransitions(t *testing.T) {
	zones := sample.Zones()
	zi := zones["America/Los_Angeles"]

	result, err := Estimate(zi, 2020, 2030)
	require.NoError(t, err)
	assert.Equal(t, "America/Los_Angeles", result.Zone)
	assert.Greater(t, result.MaxActiveSize.Count, 0)
}

func TestEstimateAllSkipsLinksAndSetsBufSize(t *testing.T) {
	zones := sample.Zones()

	results, err := EstimateAll(zones, 2020, 2030)
	require.NoError(t, err)

	for _, r := range results {
		zi := zones[r.Zone]
		require.False(t, zi.IsLink(), "EstimateAll must not estimate a link directly")
		assert.EqualValues(t, r.MaxActiveSize.Count+1, zi.TransitionBufSize)
	}

	link := zones["US/Pacific"]
	assert.True(t, link.IsLink())
}
