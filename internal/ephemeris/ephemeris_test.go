package ephemeris

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCivilTime_UnknownTimezone(t *testing.T) {
	_, _, err := ResolveCivilTime(1995, 5, 16, 18, 38, 0, "Not/AZone")
	require.Error(t, err)
}

func TestResolveCivilTime_Roundtrip(t *testing.T) {
	local, utc, err := ResolveCivilTime(1995, 5, 16, 18, 38, 0, "Asia/Kolkata")
	require.NoError(t, err)
	assert.Equal(t, 1995, local.Year())
	assert.True(t, utc.Before(local) || utc.Equal(local))
}

func TestJulianDay_KnownEpoch(t *testing.T) {
	// 2000-01-01 12:00 UT is JD 2451545.0 by definition.
	jd := JulianDay(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC))
	assert.InDelta(t, 2451545.0, jd, 0.01)
}

func TestCivilTime_RoundtripsWithJulianDay(t *testing.T) {
	want := time.Date(2026, 1, 22, 6, 45, 0, 0, time.UTC)
	jd := JulianDay(want)
	got := CivilTime(jd)
	assert.Equal(t, want.Year(), got.Year())
	assert.Equal(t, want.Month(), got.Month())
	assert.Equal(t, want.Day(), got.Day())
	assert.Equal(t, want.Hour(), got.Hour())
	assert.Equal(t, want.Minute(), got.Minute())
}

func TestNormalizeDegrees(t *testing.T) {
	cases := map[float64]float64{
		0:     0,
		359.9: 359.9,
		360:   0,
		370:   10,
		-10:   350,
	}
	for in, want := range cases {
		got := normalizeDegrees(in)
		assert.InDelta(t, want, got, 1e-9, "normalizeDegrees(%v)", in)
	}
}

func TestPosition_Retrograde(t *testing.T) {
	assert.True(t, Position{SpeedLong: -0.01}.Retrograde())
	assert.False(t, Position{SpeedLong: 0.01}.Retrograde())
}

func TestBodyString(t *testing.T) {
	assert.Equal(t, "Ketu", Ketu.String())
	assert.Equal(t, "Rahu", Rahu.String())
}

func TestNineBodies_CoverAllNamedBodies(t *testing.T) {
	require.Len(t, NineBodies, 9)
	seen := map[Body]bool{}
	for _, b := range NineBodies {
		assert.False(t, seen[b], "duplicate body %v in NineBodies", b)
		seen[b] = true
		assert.NotEmpty(t, b.String())
	}
}

func TestKetuDerivedFromRahu(t *testing.T) {
	// Ketu has no independent ephemeris id; its longitude must be exactly
	// Rahu+180 mod 360 whenever an Adapter computes both. We can't call
	// into swephgo without the real data file here, so this test locks
	// the arithmetic identity itself (Scenario D of the acceptance suite).
	rahuLong := 123.456
	want := math.Mod(rahuLong+180, 360)
	got := normalizeDegrees(rahuLong + 180)
	assert.InDelta(t, want, got, 1e-6)
}
