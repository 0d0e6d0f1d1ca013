package tzregistry

import (
	"testing"

	"github.com/go-tz/acetz/zonedb/sample"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAndResolve(t *testing.T) {
	reg := New(sample.Zones())

	zi, ok := reg.Get("America/Los_Angeles")
	require.True(t, ok)
	assert.Equal(t, "America/Los_Angeles", zi.Name)

	link, ok := reg.Get("US/Pacific")
	require.True(t, ok)
	assert.True(t, link.IsLink())

	resolved, ok := reg.Resolve("US/Pacific")
	require.True(t, ok)
	assert.Equal(t, "America/Los_Angeles", resolved.Name)

	_, ok = reg.Get("Nowhere/Imaginary")
	assert.False(t, ok, "Get should report false for unknown names")
}

func TestNamesAreSorted(t *testing.T) {
	reg := New(sample.Zones())
	names := reg.Names()
	for i := 1; i < len(names); i++ {
		require.Lessf(t, names[i-1], names[i], "Names() not sorted at index %d", i)
	}
	assert.Equal(t, reg.Len(), len(names))
}
