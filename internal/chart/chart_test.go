package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vedicengine/internal/ephemeris"
)

func sampleD1() D1Input {
	return D1Input{
		// Scorpio ascendant, ~2.2799 deg in sign (Scenario A).
		AscendantLongitude: 7*30 + 2.2799,
		Planets: map[ephemeris.Body]ephemeris.Position{
			ephemeris.Sun:  {Longitude: 31.5, SpeedLong: 1.0},
			ephemeris.Moon: {Longitude: 235.2501, SpeedLong: 13.2},
			ephemeris.Mars: {Longitude: 100.0, SpeedLong: -0.1},
		},
	}
}

func TestBuild_D1AscendantHouseOne(t *testing.T) {
	c, err := Build(sampleD1(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Ascendant.House)
	assert.Equal(t, 7, c.Ascendant.SignIndex)
	assert.Len(t, c.Houses, 12)
}

func TestBuild_WholeSignInvariantHoldsForEveryPlanet(t *testing.T) {
	d1 := sampleD1()
	c, err := Build(d1, 1)
	require.NoError(t, err)
	for name, b := range c.Planets {
		want := ((b.SignIndex - c.Ascendant.SignIndex + 12) % 12) + 1
		assert.Equal(t, want, b.House, "planet %s", name)
	}
}

func TestBuild_DMSPreservationAcrossDn(t *testing.T) {
	d1 := sampleD1()
	d1Chart, err := Build(d1, 1)
	require.NoError(t, err)
	d10Chart, err := Build(d1, 10)
	require.NoError(t, err)

	assert.InDelta(t, d1Chart.Planets["Moon"].DegreesInSign, d10Chart.Planets["Moon"].DegreesInSign, 1e-9)
}

func TestBuild_PureSignChartsOmitHouses(t *testing.T) {
	c, err := Build(sampleD1(), 27)
	require.NoError(t, err)
	assert.Nil(t, c.Houses)
}

func TestBuild_HouseBearingChartsEmitTwelveHouses(t *testing.T) {
	c, err := Build(sampleD1(), 20)
	require.NoError(t, err)
	assert.Len(t, c.Houses, 12)
}

func TestBuild_RejectsUnsupportedN(t *testing.T) {
	_, err := Build(sampleD1(), 5)
	assert.Error(t, err)
}

func TestBuild_RetrogradeCarriedFromD1(t *testing.T) {
	c, err := Build(sampleD1(), 9)
	require.NoError(t, err)
	assert.True(t, c.Planets["Mars"].Retrograde)
	assert.False(t, c.Planets["Sun"].Retrograde)
}
