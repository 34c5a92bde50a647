package yoga

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vedicengine/internal/chart"
	"vedicengine/internal/houses"
	"vedicengine/internal/zodiac"
)

func body(signIndex, house int) chart.Body {
	return chart.Body{
		Position: zodiac.Position{SignIndex: signIndex, Sign: zodiac.SignName(signIndex)},
		House:    house,
	}
}

func TestDetect_RuchakaYoga_MarsOwnSignInKendra(t *testing.T) {
	c := &chart.Chart{
		Planets: map[string]chart.Body{
			"Mars": body(0, 1), // Aries, house 1 (Kendra), Mars' own sign
		},
		Houses: houses.BuildTwelve(0),
	}
	found := Detect(c)
	names := namesOf(found)
	assert.Contains(t, names, "Ruchaka Yoga")
}

func TestDetect_NoMahapurushaWhenNotInKendra(t *testing.T) {
	c := &chart.Chart{
		Planets: map[string]chart.Body{
			"Mars": body(0, 2), // own sign but house 2, not a Kendra
		},
		Houses: houses.BuildTwelve(0),
	}
	names := namesOf(Detect(c))
	assert.NotContains(t, names, "Ruchaka Yoga")
}

func TestDetect_GajakesariYoga(t *testing.T) {
	c := &chart.Chart{
		Planets: map[string]chart.Body{
			"Moon":    body(3, 1),
			"Jupiter": body(6, 4), // 4th from Moon's house -> Kendra distance
		},
		Houses: houses.BuildTwelve(0),
	}
	assert.Contains(t, namesOf(Detect(c)), "Gajakesari Yoga")
}

func TestDetect_BudhadityaYoga_SunMercuryConjunct(t *testing.T) {
	c := &chart.Chart{
		Planets: map[string]chart.Body{
			"Sun":     body(2, 5),
			"Mercury": body(2, 5),
		},
		Houses: houses.BuildTwelve(0),
	}
	assert.Contains(t, namesOf(Detect(c)), "Budhaditya Yoga")
}

func TestDetect_KemadrumaDosha_NoNeighborsOfMoon(t *testing.T) {
	c := &chart.Chart{
		Planets: map[string]chart.Body{
			"Moon": body(3, 6),
			"Mars": body(0, 1), // far from Moon's house and its neighbors
		},
		Houses: houses.BuildTwelve(0),
	}
	assert.Contains(t, namesOf(Detect(c)), "Kemadruma Dosha")
}

func TestDetect_NoKemadrumaWhenPlanetAdjacentToMoon(t *testing.T) {
	c := &chart.Chart{
		Planets: map[string]chart.Body{
			"Moon": body(3, 6),
			"Mars": body(4, 7), // adjacent house to Moon
		},
		Houses: houses.BuildTwelve(0),
	}
	assert.NotContains(t, namesOf(Detect(c)), "Kemadruma Dosha")
}

func namesOf(yogas []Yoga) []string {
	out := make([]string, len(yogas))
	for i, y := range yogas {
		out[i] = y.Name
	}
	return out
}
