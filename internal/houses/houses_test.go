package houses

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWholeSign_SameSignIsHouseOne(t *testing.T) {
	for s := 0; s < 12; s++ {
		assert.Equal(t, 1, WholeSign(s, s))
	}
}

func TestWholeSign_Scenario(t *testing.T) {
	// Ascendant Scorpio (7), planet in Aquarius (10) -> house 4.
	assert.Equal(t, 4, WholeSign(7, 10))
	// Ascendant Cancer (3), Venus in Aquarius (10) -> house 11 (Scenario A, D10).
	assert.Equal(t, 11, WholeSign(3, 10))
	// Ascendant Cancer (3), Mars in Pisces (11) -> house 12.
	assert.Equal(t, 12, WholeSign(3, 11))
}

func TestBuildTwelve_WrapsAndCoversAllSigns(t *testing.T) {
	list := BuildTwelve(7)
	assert.Len(t, list, 12)
	assert.Equal(t, 1, list[0].House)
	assert.Equal(t, 7, list[0].SignIndex)
	assert.Equal(t, 12, list[11].House)
	assert.Equal(t, 6, list[11].SignIndex) // wraps back to just before the ascendant sign
	seen := map[int]bool{}
	for _, h := range list {
		seen[h.SignIndex] = true
	}
	assert.Len(t, seen, 12)
}
