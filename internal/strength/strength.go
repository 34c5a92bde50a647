// Package strength computes Ṣaḍbala (six-fold planetary strength) and
// Bhinnāṣṭakavarga (per-house bindu counts) for the seven classical
// grahas, per BPHS. Rahu/Ketu carry no Ṣaḍbala in the classical system
// and are excluded here, matching the canonical-minimum table spec.md
// gives for exactly seven planets.
package strength

import (
	"math"
	"sort"

	"vedicengine/internal/chart"
	"vedicengine/internal/config"
	"vedicengine/internal/dignity"
	"vedicengine/pkg/apperr"
)

// classicalPlanets are the seven grahas Ṣaḍbala applies to, in BPHS order.
var classicalPlanets = []string{"Sun", "Moon", "Mars", "Mercury", "Jupiter", "Venus", "Saturn"}

// canonicalMinimum is each planet's minimum Ṣaḍbala in Virūpa (spec.md §4.C10).
var canonicalMinimum = map[string]float64{
	"Sun": 390, "Moon": 360, "Mars": 300, "Mercury": 420,
	"Jupiter": 390, "Venus": 330, "Saturn": 300,
}

// exaltDegree is each planet's exact exaltation degree-in-sign; the
// debilitation point is the same degree in the opposite sign.
var exaltDegree = map[string]float64{
	"Sun": 10, "Moon": 3, "Mars": 28, "Mercury": 15,
	"Jupiter": 5, "Venus": 27, "Saturn": 20,
}

// digBalaHouse is each planet's house of maximum directional strength.
var digBalaHouse = map[string]int{
	"Sun": 10, "Mars": 10, "Moon": 4, "Venus": 4, "Mercury": 1, "Jupiter": 1, "Saturn": 7,
}

// naisargikaBala is the fixed natural-strength table (Virūpa), ordered
// by classical brightness/speed rank from Saturn (weakest) to Sun (strongest).
var naisargikaBala = map[string]float64{
	"Saturn": 8.57, "Mars": 17.14, "Mercury": 25.71, "Jupiter": 34.29,
	"Venus": 42.86, "Moon": 51.43, "Sun": 60,
}

// maxDirectSpeed bounds Cheṣṭā Bala's speed-ratio term for each planet's
// typical direct-motion speed in degrees/day.
var maxDirectSpeed = map[string]float64{
	"Mars": 0.7, "Mercury": 2.2, "Jupiter": 0.23, "Venus": 1.25, "Saturn": 0.13,
}

var beneficPlanets = map[string]bool{"Jupiter": true, "Venus": true, "Mercury": true}

// PlanetStrength is one graha's full Ṣaḍbala breakdown.
type PlanetStrength struct {
	Planet         string  `json:"planet"`
	SthanaBala     float64 `json:"sthana_bala"`
	DigBala        float64 `json:"dig_bala"`
	KalaBala       float64 `json:"kala_bala"`
	ChestaBala     float64 `json:"chesta_bala"`
	NaisargikaBala float64 `json:"naisargika_bala"`
	DrkBala        float64 `json:"drk_bala"`
	TotalVirupa    float64 `json:"total_virupa"`
	TotalRupa      float64 `json:"total_rupa"`
	Rank           int     `json:"rank"`
	Status         string  `json:"status"`
}

// Result is the full strength report: Ṣaḍbala per planet plus
// Bhinnāṣṭakavarga/Sarvāṣṭakavarga bindu tables.
type Result struct {
	Planets          map[string]PlanetStrength `json:"planets"`
	Ashtakavarga     map[string][12]int        `json:"ashtakavarga"`
	Sarvashtakavarga [12]int                   `json:"sarvashtakavarga"`
	Config           config.StrengthConfig     `json:"config"`
}

// Compute runs the full strength engine against a built D1 chart.
func Compute(c *chart.Chart, cfg config.StrengthConfig) (*Result, error) {
	planets := make(map[string]PlanetStrength, len(classicalPlanets))

	waxing, err := isWaxing(c)
	if err != nil {
		return nil, err
	}
	pakshaBala, err := pakshaBalaValue(c)
	if err != nil {
		return nil, err
	}

	for _, name := range classicalPlanets {
		b, ok := c.Planets[name]
		if !ok {
			return nil, apperr.Input("chart is missing required planet %q for strength computation", name)
		}

		sthana := uchchaBala(name, b.Longitude) + saptavargajaBala(name, b.SignIndex, cfg.SaptavargajaDivisor) + kendradiBala(b.House, cfg.KendradiScale)
		dig := digBala(name, b.House)
		if name == "Sun" {
			dig *= cfg.DigBalaSunMultiplier
		}
		kala := kalaBala(name, pakshaBala)
		chesta := chestaBala(name, b.Speed)
		naisargika := naisargikaBala[name]
		drk := drkBala(name, b.House, c, waxing)

		total := sthana + dig + kala + chesta + naisargika + drk
		planets[name] = PlanetStrength{
			Planet:         name,
			SthanaBala:     sthana,
			DigBala:        dig,
			KalaBala:       kala,
			ChestaBala:     chesta,
			NaisargikaBala: naisargika,
			DrkBala:        drk,
			TotalVirupa:    total,
			TotalRupa:      total / 60.0,
		}
	}

	rankPlanets(planets)
	statusPlanets(planets)

	ashtaka := make(map[string][12]int, len(classicalPlanets))
	var sarva [12]int
	for _, name := range classicalPlanets {
		bindus, err := Bhinnashtakavarga(name, c)
		if err != nil {
			return nil, err
		}
		ashtaka[name] = bindus
		for i, v := range bindus {
			sarva[i] += v
		}
	}

	return &Result{Planets: planets, Ashtakavarga: ashtaka, Sarvashtakavarga: sarva, Config: cfg}, nil
}

func rankPlanets(planets map[string]PlanetStrength) {
	names := make([]string, 0, len(planets))
	for n := range planets {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		return planets[names[i]].TotalVirupa > planets[names[j]].TotalVirupa
	})
	for rank, n := range names {
		p := planets[n]
		p.Rank = rank + 1
		planets[n] = p
	}
}

func statusPlanets(planets map[string]PlanetStrength) {
	for n, p := range planets {
		ratio := p.TotalVirupa / canonicalMinimum[n]
		switch {
		case ratio >= 1.25:
			p.Status = "Very Strong"
		case ratio >= 1.0:
			p.Status = "Strong"
		case ratio >= 0.75:
			p.Status = "Average"
		default:
			p.Status = "Weak"
		}
		planets[n] = p
	}
}

// uchchaBala is the positional strength from a planet's distance from
// its deep-debilitation point: 0 Virūpa exactly at debilitation, 60 at
// exact exaltation, per BPHS.
func uchchaBala(planet string, longitude float64) float64 {
	exaltSign := exaltationSignOf(planet)
	exaltLongitude := float64(exaltSign)*30 + exaltDegree[planet]
	debilLongitude := math.Mod(exaltLongitude+180, 360)
	return angularSeparation(longitude, debilLongitude) / 3.0
}

func exaltationSignOf(planet string) int {
	for s := 0; s < 12; s++ {
		if dignity.Of(planet, s) == dignity.Exalted {
			return s
		}
	}
	return 0
}

func angularSeparation(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// saptavargajaBala scores dignity across the sign placement with a
// single own/exalted bonus, scaled by the frozen Pure-BPHS divisor.
func saptavargajaBala(planet string, signIndex int, divisor float64) float64 {
	if divisor == 0 {
		divisor = 1
	}
	if dignity.IsOwnOrExalted(planet, signIndex) {
		return 20.0 / divisor
	}
	return 0
}

// kendradiBala rewards Kendra placement over Panaphara/Apoklima, scaled
// by the frozen Pure-BPHS Kendradi scale.
func kendradiBala(house int, scale float64) float64 {
	switch {
	case house == 1 || house == 4 || house == 7 || house == 10:
		return 60 * scale
	case house == 2 || house == 5 || house == 8 || house == 11:
		return 30 * scale
	default:
		return 15 * scale
	}
}

// digBala is directional strength: full at the planet's ideal house,
// falling linearly to zero at the opposite house.
func digBala(planet string, house int) float64 {
	ideal, ok := digBalaHouse[planet]
	if !ok {
		return 0
	}
	dist := house - ideal
	if dist < 0 {
		dist = -dist
	}
	if dist > 6 {
		dist = 12 - dist
	}
	return 60 * (1 - float64(dist)/6)
}

// pakshaBalaValue is the Moon's lunar-phase strength: zero at new moon,
// sixty at full moon.
func pakshaBalaValue(c *chart.Chart) (float64, error) {
	moon, ok := c.Planets["Moon"]
	if !ok {
		return 0, apperr.Input("chart is missing Moon for paksha bala")
	}
	sun, ok := c.Planets["Sun"]
	if !ok {
		return 0, apperr.Input("chart is missing Sun for paksha bala")
	}
	elongation := math.Mod(moon.Longitude-sun.Longitude+360, 360)
	if elongation > 180 {
		elongation = 360 - elongation
	}
	return elongation / 3.0, nil
}

func isWaxing(c *chart.Chart) (bool, error) {
	moon, ok := c.Planets["Moon"]
	if !ok {
		return false, apperr.Input("chart is missing Moon")
	}
	sun, ok := c.Planets["Sun"]
	if !ok {
		return false, apperr.Input("chart is missing Sun")
	}
	return math.Mod(moon.Longitude-sun.Longitude+360, 360) <= 180, nil
}

// kalaBala is a reduced temporal-strength model built from Pakṣa Bala
// alone: benefics score the Moon's own bright-fortnight value, malefics
// score its complement. Full BPHS Kāla Bala also folds in Nāthonnata,
// Ayana, and Varṣa-Māsa-Dina-Horā Bala, which this engine omits.
func kalaBala(planet string, pakshaBala float64) float64 {
	if planet == "Moon" {
		return pakshaBala
	}
	if beneficPlanets[planet] {
		return pakshaBala
	}
	return 60 - pakshaBala
}

// chestaBala rewards retrograde motion with the maximum score and
// otherwise scales with the planet's speed against its typical direct
// maximum. Sun and Moon never retrograde; BPHS substitutes Ayana Bala
// for them there, approximated here as a fixed half-share.
func chestaBala(planet string, speed float64) float64 {
	if planet == "Sun" || planet == "Moon" {
		return 30
	}
	if speed < 0 {
		return 60
	}
	max, ok := maxDirectSpeed[planet]
	if !ok || max == 0 {
		return 0
	}
	ratio := speed / max
	if ratio > 1 {
		ratio = 1
	}
	return 60 * ratio
}

// drkBala sums the aspectual strength every other classical planet
// casts onto planet's house, signed by the aspecting planet's benefic
// or malefic nature.
func drkBala(planet string, house int, c *chart.Chart, moonWaxing bool) float64 {
	total := 0.0
	for _, other := range classicalPlanets {
		if other == planet {
			continue
		}
		ob, ok := c.Planets[other]
		if !ok {
			continue
		}
		dist := ((house-ob.House)%12+12)%12 + 1
		strength := aspectStrength(other, dist)
		if strength == 0 {
			continue
		}
		total += strength * 60 * beneficSign(other, moonWaxing)
	}
	return total
}

// aspectStrength is the classical full/partial aspect table: every
// planet casts a full 7th-house aspect; Mars, Jupiter, and Saturn carry
// additional full special aspects, elsewhere scaled down.
func aspectStrength(planet string, houseDistance int) float64 {
	switch houseDistance {
	case 7:
		return 1.0
	case 4, 8:
		if planet == "Mars" {
			return 1.0
		}
		return 0.75
	case 5, 9:
		if planet == "Jupiter" {
			return 1.0
		}
		return 0.5
	case 3, 10:
		if planet == "Saturn" {
			return 1.0
		}
		return 0.25
	default:
		return 0
	}
}

func beneficSign(planet string, moonWaxing bool) float64 {
	if planet == "Moon" {
		if moonWaxing {
			return 1
		}
		return -1
	}
	if beneficPlanets[planet] {
		return 1
	}
	return -1
}

// bavContributors are the eight bindu-givers every Bhinnāṣṭakavarga is
// built from: the seven classical grahas plus the Ascendant.
var bavContributors = []string{"Sun", "Moon", "Mars", "Mercury", "Jupiter", "Venus", "Saturn", "Ascendant"}

// ashtakavargaTables gives each target planet's benefic house offsets
// (1 = the contributor's own house) counted from each of the eight
// contributors, per the classical BPHS Bhinnāṣṭakavarga tables. Each
// row's length matches that target's canonical total bindu count
// (Sun 48, Moon 49, Mars 39, Mercury 54, Jupiter 56, Venus 52, Saturn 39).
var ashtakavargaTables = map[string]map[string][]int{
	"Sun": {
		"Sun": {1, 2, 4, 7, 8, 9, 10, 11}, "Moon": {3, 6, 10, 11}, "Mars": {1, 2, 4, 7, 8, 9, 10, 11},
		"Mercury": {3, 5, 6, 9, 10, 11, 12}, "Jupiter": {5, 6, 9, 11}, "Venus": {6, 7, 12},
		"Saturn": {1, 2, 4, 7, 8, 9, 10, 11}, "Ascendant": {3, 4, 6, 10, 11, 12},
	},
	"Moon": {
		"Sun": {3, 6, 7, 8, 10, 11}, "Moon": {1, 3, 6, 7, 9, 10, 11}, "Mars": {2, 3, 5, 6, 9, 10, 11},
		"Mercury": {1, 3, 4, 5, 7, 8, 10, 11}, "Jupiter": {1, 4, 7, 8, 10, 11, 12}, "Venus": {3, 4, 5, 7, 9, 10, 11},
		"Saturn": {3, 5, 6, 11}, "Ascendant": {3, 6, 11},
	},
	"Mars": {
		"Sun": {3, 5, 6, 10, 11}, "Moon": {3, 6, 11}, "Mars": {1, 2, 4, 7, 8, 10, 11},
		"Mercury": {3, 5, 6, 11}, "Jupiter": {6, 10, 11, 12}, "Venus": {6, 8, 11, 12},
		"Saturn": {1, 4, 7, 8, 9, 10, 11}, "Ascendant": {1, 3, 6, 10, 11},
	},
	"Mercury": {
		"Sun": {5, 6, 9, 11, 12}, "Moon": {2, 4, 6, 8, 10, 11}, "Mars": {1, 2, 4, 7, 8, 9, 10, 11},
		"Mercury": {1, 2, 4, 6, 8, 10, 11}, "Jupiter": {5, 6, 9, 11}, "Venus": {1, 2, 3, 4, 5, 8, 9, 11},
		"Saturn": {1, 2, 4, 7, 8, 9, 10, 11}, "Ascendant": {1, 2, 4, 6, 8, 10, 11, 12},
	},
	"Jupiter": {
		"Sun": {1, 2, 3, 4, 7, 8, 9, 10, 11}, "Moon": {2, 5, 7, 9, 11}, "Mars": {1, 2, 4, 7, 8, 10, 11},
		"Mercury": {1, 2, 4, 5, 6, 9, 10, 11}, "Jupiter": {1, 2, 3, 4, 7, 8, 10, 11}, "Venus": {2, 5, 6, 9, 10, 11},
		"Saturn": {3, 5, 6, 12}, "Ascendant": {1, 2, 4, 5, 6, 7, 9, 10, 11},
	},
	"Venus": {
		"Sun": {8, 11, 12}, "Moon": {1, 2, 3, 4, 5, 8, 9, 11, 12}, "Mars": {3, 4, 6, 9, 11, 12},
		"Mercury": {3, 5, 6, 9, 11}, "Jupiter": {5, 8, 9, 10, 11}, "Venus": {1, 2, 3, 4, 5, 8, 9, 10, 11},
		"Saturn": {3, 4, 5, 8, 9, 10, 11}, "Ascendant": {1, 2, 3, 4, 5, 8, 9, 11},
	},
	"Saturn": {
		"Sun": {1, 2, 4, 7, 8, 10, 11}, "Moon": {3, 6, 11}, "Mars": {3, 5, 6, 10, 11, 12},
		"Mercury": {6, 8, 9, 10, 11, 12}, "Jupiter": {5, 6, 11, 12}, "Venus": {6, 11, 12},
		"Saturn": {3, 5, 6, 11}, "Ascendant": {1, 3, 4, 6, 10, 11},
	},
}

// Bhinnashtakavarga computes target's per-house bindu table (0-8): each
// of the eight contributors casts one point into every house that falls
// on one of its benefic offsets counted from its own house.
func Bhinnashtakavarga(target string, c *chart.Chart) ([12]int, error) {
	table, ok := ashtakavargaTables[target]
	if !ok {
		return [12]int{}, apperr.Input("unknown Ashtakavarga target %q", target)
	}

	var bindus [12]int
	for _, contributor := range bavContributors {
		var refHouse int
		if contributor == "Ascendant" {
			refHouse = c.Ascendant.House
		} else {
			b, ok := c.Planets[contributor]
			if !ok {
				continue
			}
			refHouse = b.House
		}
		for _, offset := range table[contributor] {
			house := (refHouse-1+offset-1)%12 + 1
			bindus[house-1]++
		}
	}
	return bindus, nil
}
