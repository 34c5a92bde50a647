package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vedicengine/internal/chart"
	"vedicengine/internal/ephemeris"
	"vedicengine/internal/varga"
)

func TestChartLabel_D1AndOthers(t *testing.T) {
	assert.Equal(t, "D1", chartLabel(1))
	assert.Equal(t, "D9", chartLabel(9))
	assert.Equal(t, "D60", chartLabel(60))
}

func TestChartLabel_CoversEveryAllowedDivision(t *testing.T) {
	seen := map[string]bool{}
	for _, n := range varga.AllowedN {
		label := chartLabel(n)
		assert.False(t, seen[label], "duplicate chart label %s", label)
		seen[label] = true
	}
	assert.Len(t, seen, len(varga.AllowedN))
}

func TestTotalDashaYears_CoversFullVimshottariCycle(t *testing.T) {
	assert.Equal(t, 120.0, totalDashaYears)
}

func TestMarshalJSON_FlattensChartLabelsToTopLevel(t *testing.T) {
	d1 := chart.D1Input{
		AscendantLongitude: 7*30 + 2.2799,
		Planets: map[ephemeris.Body]ephemeris.Position{
			ephemeris.Moon: {Longitude: 235.2501, SpeedLong: 13.2},
		},
	}
	charts := make(map[string]*chart.Chart)
	for _, n := range []int{1, 9, 60} {
		c, err := chart.Build(d1, n)
		require.NoError(t, err)
		charts[chartLabel(n)] = c
	}

	raw, err := json.Marshal(&Report{Charts: charts})
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Contains(t, decoded, "D1")
	assert.Contains(t, decoded, "D9")
	assert.Contains(t, decoded, "D60")
	assert.Contains(t, decoded, "panchanga")
	assert.Contains(t, decoded, "dasha")
	assert.Contains(t, decoded, "yogas")
	assert.Contains(t, decoded, "strength")
	assert.NotContains(t, decoded, "charts")
	assert.NotContains(t, decoded, "transits") // omitted unless requested
}

func TestMarshalJSON_IsByteIdenticalAcrossRuns(t *testing.T) {
	d1 := chart.D1Input{
		AscendantLongitude: 100.0,
		Planets: map[ephemeris.Body]ephemeris.Position{
			ephemeris.Sun:  {Longitude: 31.5},
			ephemeris.Moon: {Longitude: 235.2501},
		},
	}
	charts := make(map[string]*chart.Chart)
	for _, n := range varga.AllowedN {
		c, err := chart.Build(d1, n)
		require.NoError(t, err)
		charts[chartLabel(n)] = c
	}
	r := &Report{Charts: charts}

	first, err := json.Marshal(r)
	require.NoError(t, err)
	second, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
