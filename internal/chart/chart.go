// Package chart composes C1-C4's outputs into a full Dn chart and
// enforces the structural invariants §4.C5 requires before the result
// is safe to hand to a caller.
package chart

import (
	"math"

	"vedicengine/internal/ephemeris"
	"vedicengine/internal/houses"
	"vedicengine/internal/varga"
	"vedicengine/internal/zodiac"
	"vedicengine/pkg/apperr"
)

// houseBearingMax is the largest N that still emits a houses list;
// N >= 24 charts are pure-sign per §4.C5.
const houseBearingMax = 20

// Body is one enriched position in a chart, with the house it occupies.
type Body struct {
	zodiac.Position
	House      int     `json:"house"`
	Retrograde bool    `json:"retrograde"`
	Speed      float64 `json:"speed_deg_per_day,omitempty"`
}

// Chart is one divisional chart (D1..D60).
type Chart struct {
	N         int             `json:"-"`
	Ascendant Body            `json:"Ascendant"`
	Planets   map[string]Body `json:"Planets"`
	Houses    []houses.House  `json:"Houses"`
}

// D1Input is the raw sidereal state C1 produced for one birth moment —
// the only place a longitude is allowed to enter the chart builder
// without first going through the Dn mapping.
type D1Input struct {
	AscendantLongitude float64
	Planets            map[ephemeris.Body]ephemeris.Position
}

// Build constructs the Dn chart for N from a D1 input. This is the
// varga engine's only public entry point (§4.C4): callers must never
// assemble a chart by calling varga.BuildDnSign piecewise, because
// houses and signs must be computed atomically for one Dn.
func Build(d1 D1Input, n int) (*Chart, error) {
	ascSignIndex := zodiac.SignIndexOf(d1.AscendantLongitude)
	ascDeg := degInSign(d1.AscendantLongitude)

	ascDnSign, err := varga.BuildDnSign(ascSignIndex, ascDeg, n)
	if err != nil {
		return nil, err
	}
	ascendant, err := buildBody(ascDnSign, ascDeg, 1, false, 0)
	if err != nil {
		return nil, err
	}
	if err := mustInvariant(ascendant.House == 1, "ascendant house must be 1, got %d", ascendant.House); err != nil {
		return nil, err
	}

	planets := make(map[string]Body, len(d1.Planets))
	for body, pos := range d1.Planets {
		signIndex := zodiac.SignIndexOf(pos.Longitude)
		deg := degInSign(pos.Longitude)

		dnSign, err := varga.BuildDnSign(signIndex, deg, n)
		if err != nil {
			return nil, err
		}
		house := houses.WholeSign(ascDnSign, dnSign)
		b, err := buildBody(dnSign, deg, house, pos.Retrograde(), pos.SpeedLong)
		if err != nil {
			return nil, err
		}
		if err := mustInvariant(b.House == houses.WholeSign(ascDnSign, b.SignIndex), "house invariant failed for %s: got %d", body, b.House); err != nil {
			return nil, err
		}
		planets[body.String()] = b
	}

	var houseList []houses.House
	if n <= houseBearingMax {
		houseList = houses.BuildTwelve(ascDnSign)
		if err := mustInvariant(len(houseList) == 12, "house-bearing chart must list 12 houses, got %d", len(houseList)); err != nil {
			return nil, err
		}
	}

	return &Chart{
		N:         n,
		Ascendant: ascendant,
		Planets:   planets,
		Houses:    houseList,
	}, nil
}

func buildBody(dnSignIndex int, degInSignValue float64, house int, retrograde bool, speed float64) (Body, error) {
	// The Dn "longitude" per §4.C4's DMS preservation invariant is
	// dn_sign*30 + d1_deg_in_sign; re-enrich from that reconstructed
	// value so every derived field (nakṣatra, DMS, names) is internally
	// consistent with the Dn sign rather than the D1 sign.
	dnLongitude := float64(dnSignIndex)*30 + degInSignValue
	pos, err := zodiac.Enrich(dnLongitude)
	if err != nil {
		return Body{}, err
	}
	return Body{Position: pos, House: house, Retrograde: retrograde, Speed: speed}, nil
}

func degInSign(longitude float64) float64 {
	normalized := math.Mod(longitude, 360)
	if normalized < 0 {
		normalized += 360
	}
	return math.Mod(normalized, 30)
}

func mustInvariant(ok bool, format string, args ...interface{}) error {
	if ok {
		return nil
	}
	return apperr.InvariantViolation(format, args...)
}
