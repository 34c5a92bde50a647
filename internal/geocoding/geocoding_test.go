package geocoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine_ValidRow(t *testing.T) {
	rec, err := parseLine("1273294\tNew Delhi\tNew Delhi\tDelhi\tIN\t28.6139\t77.2090\t249998\tAsia/Kolkata")
	require.NoError(t, err)
	assert.Equal(t, "New Delhi", rec.name)
	assert.Equal(t, "IN", rec.country)
	assert.InDelta(t, 28.6139, rec.latitude, 1e-6)
	assert.InDelta(t, 77.2090, rec.longitude, 1e-6)
	assert.Equal(t, "Asia/Kolkata", rec.timezone)
}

func TestParseLine_TooFewFields(t *testing.T) {
	_, err := parseLine("1\tOnly\tA\tFew\tFields")
	assert.Error(t, err)
}

func TestParseLine_InvalidLatitude(t *testing.T) {
	_, err := parseLine("1\tCity\tCity\t\tXX\tnotalat\t0\t0\tUTC")
	assert.Error(t, err)
}

func TestNew_LoadsEmbeddedCities(t *testing.T) {
	s, err := New(nil)
	require.NoError(t, err)
	defer s.Close()

	var count int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM cities").Scan(&count))
	assert.Greater(t, count, 50)
}

func TestLookup_ExactNameMatch(t *testing.T) {
	s, err := New(nil)
	require.NoError(t, err)
	defer s.Close()

	c, err := s.Lookup("Mumbai")
	require.NoError(t, err)
	assert.Equal(t, "Mumbai", c.Name)
	assert.Equal(t, "Asia/Kolkata", c.Timezone)
	assert.InDelta(t, 19.0760, c.Latitude, 1e-3)
}

func TestLookup_CaseInsensitiveAndFuzzy(t *testing.T) {
	s, err := New(nil)
	require.NoError(t, err)
	defer s.Close()

	c, err := s.Lookup("new delhi")
	require.NoError(t, err)
	assert.Equal(t, "New Delhi", c.Name)
}

func TestLookup_AlternateName(t *testing.T) {
	s, err := New(nil)
	require.NoError(t, err)
	defer s.Close()

	c, err := s.Lookup("Bombay")
	require.NoError(t, err)
	assert.Equal(t, "Mumbai", c.Name)
}

func TestLookup_UnknownCityFailsClosed(t *testing.T) {
	s, err := New(nil)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Lookup("Nowhereville Zzyzx")
	assert.Error(t, err)
}
