package zodiac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrich_SignBoundary(t *testing.T) {
	// Exactly on a sign boundary: must land in the upper sign (Taurus).
	pos, err := Enrich(30.0)
	require.NoError(t, err)
	assert.Equal(t, 1, pos.SignIndex)
	assert.Equal(t, "Taurus", pos.Sign)
	assert.InDelta(t, 0.0, pos.DegreesInSign, 1e-9)
}

func TestEnrich_NakshatraBoundary(t *testing.T) {
	// 360/27 exactly: upper nakshatra (Bharani, index 1).
	pos, err := Enrich(nakshatraSpan)
	require.NoError(t, err)
	assert.Equal(t, 1, pos.NakshatraIndex)
	assert.Equal(t, "Bharani", pos.Nakshatra)
}

func TestEnrich_RangeInvariants(t *testing.T) {
	longitudes := []float64{0, 12.3456, 89.999, 235.2501, 359.999999}
	for _, lon := range longitudes {
		pos, err := Enrich(lon)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, pos.SignIndex, 0)
		assert.LessOrEqual(t, pos.SignIndex, 11)
		assert.GreaterOrEqual(t, pos.DegreesInSign, 0.0)
		assert.Less(t, pos.DegreesInSign, 30.0)
		assert.GreaterOrEqual(t, pos.NakshatraIndex, 0)
		assert.LessOrEqual(t, pos.NakshatraIndex, 26)
		assert.GreaterOrEqual(t, pos.Pada, 1)
		assert.LessOrEqual(t, pos.Pada, 4)
	}
}

func TestEnrich_OutOfRange(t *testing.T) {
	_, err := Enrich(360.0)
	assert.Error(t, err)
	_, err = Enrich(-0.01)
	assert.Error(t, err)
}

func TestEnrich_ScenarioA_MoonPosition(t *testing.T) {
	// Scenario A: Moon longitude ~=235.2501 -> Scorpio, Jyeshtha, pada 3, Mercury.
	pos, err := Enrich(235.2501)
	require.NoError(t, err)
	assert.Equal(t, "Scorpio", pos.Sign)
	assert.Equal(t, "Jyeshtha", pos.Nakshatra)
	assert.Equal(t, 3, pos.Pada)
	assert.Equal(t, "Mercury", pos.NakshatraLord)
	assert.InDelta(t, 25.2501, pos.DegreesInSign, 1e-4)
}

func TestVimshottariLordOf_CyclesEveryNineNakshatras(t *testing.T) {
	lord0, err := VimshottariLordOf(0)
	require.NoError(t, err)
	lord8, err := VimshottariLordOf(8)
	require.NoError(t, err)
	lord9, err := VimshottariLordOf(9)
	require.NoError(t, err)
	assert.Equal(t, "Ketu", lord0)
	assert.Equal(t, "Mercury", lord8)
	assert.Equal(t, "Ketu", lord9) // nakshatra 9 restarts the nine-lord cycle
}

func TestVimshottariLordOf_OutOfRange(t *testing.T) {
	_, err := VimshottariLordOf(27)
	assert.Error(t, err)
}

func TestSignName_RoundTrip(t *testing.T) {
	for i := 0; i < 12; i++ {
		assert.NotEmpty(t, SignName(i))
		assert.NotEmpty(t, SignSanskritName(i))
		assert.NotEmpty(t, SignLord(i))
	}
	assert.Empty(t, SignName(12))
}

func TestFormatDMS(t *testing.T) {
	assert.Equal(t, "2°16'46\"", FormatDMS(2.2797))
}
