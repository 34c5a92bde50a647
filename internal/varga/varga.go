// Package varga computes the divisional-chart (Dn) sign for a D1
// position. Each Dn has its own classical rule; per §9 of the design
// notes, a single unified multiply-by-N formula is forbidden — this is
// a tagged dispatch keyed on N, one tiny pure function per arm, with the
// shared nature/parity tables kept as module-level constants.
package varga

import (
	"math"

	"vedicengine/pkg/apperr"
)

// AllowedN lists the sixteen divisional charts the core supports.
var AllowedN = []int{1, 2, 3, 4, 7, 9, 10, 12, 16, 20, 24, 27, 30, 40, 45, 60}

func isAllowed(n int) bool {
	for _, v := range AllowedN {
		if v == n {
			return true
		}
	}
	return false
}

// Sign natures, zero-indexed: Movable {Aries, Cancer, Libra, Capricorn},
// Fixed {Taurus, Leo, Scorpio, Aquarius}, Dual {Gemini, Virgo,
// Sagittarius, Pisces}.
type nature int

const (
	movable nature = iota
	fixed
	dual
)

func natureOf(signIndex int) nature {
	switch signIndex % 3 {
	case 0:
		return movable
	case 1:
		return fixed
	default:
		return dual
	}
}

// isOdd reports the zero-indexed parity of a sign index, per §4.C4
// "Parity: zero-indexed even-odd of the sign index."
func isOdd(signIndex int) bool { return signIndex%2 == 1 }

const divEpsilon = 1e-9

// divisionIndex computes k = floor(deg_in_sign / (30/N)), clamped to
// [0, N-1], with a small epsilon added before floor to absorb
// floating-point noise at a division boundary (§9).
func divisionIndex(degInSign float64, n int) int {
	width := 30.0 / float64(n)
	k := int(math.Floor(degInSign/width + divEpsilon))
	if k < 0 {
		k = 0
	}
	if k > n-1 {
		k = n - 1
	}
	return k
}

func mod12(x int) int {
	return ((x % 12) + 12) % 12
}

// offsetTableD10 is the shared (nature, parity) offset table used by
// D10, D16, D40 and D60 (§9, "several share structure"). Movable and
// Fixed signs share a row — the D10 Fixed-sign convention was corrected
// late in the classical source to match Movable (odd -> 0, even -> 8)
// rather than the superficially plausible inverted convention; tests
// anchor this explicitly.
func offsetTableD10(signIndex int) int {
	n := natureOf(signIndex)
	odd := isOdd(signIndex)
	switch n {
	case movable, fixed:
		if odd {
			return 0
		}
		return 8
	default: // dual
		if odd {
			return 4
		}
		return 8
	}
}

// BuildDnSign returns the Dn sign index for a D1 (signIndex, degInSign)
// pair. degInSign must be in [0, 30); N must be one of AllowedN.
func BuildDnSign(signIndex int, degInSign float64, n int) (int, error) {
	if signIndex < 0 || signIndex > 11 {
		return 0, apperr.Input("sign index %d outside [0, 11]", signIndex)
	}
	if degInSign < 0 || degInSign >= 30 {
		return 0, apperr.Input("degrees-in-sign %f outside [0, 30)", degInSign)
	}
	if !isAllowed(n) {
		return 0, apperr.Input("varga number %d is not a supported Dn", n)
	}

	k := divisionIndex(degInSign, n)

	switch n {
	case 1:
		return signIndex, nil
	case 2:
		return d2(signIndex, k), nil
	case 3:
		return d3(signIndex, k), nil
	case 4:
		return d4(signIndex, k), nil
	case 7:
		return d7(signIndex, k), nil
	case 9:
		return d9(signIndex, k), nil
	case 10:
		return d10family(signIndex, k), nil
	case 12:
		return d12(signIndex, k), nil
	case 16:
		return d10family(signIndex, k), nil
	case 20:
		return d20(signIndex, k), nil
	case 24:
		return d24family(signIndex, k), nil
	case 27:
		return d27(signIndex, k), nil
	case 30:
		return d30(signIndex, k), nil
	case 40:
		return d10family(signIndex, k), nil
	case 45:
		return d24family(signIndex, k), nil
	case 60:
		return d10family(signIndex, k), nil
	default:
		return 0, apperr.Input("varga number %d is not a supported Dn", n)
	}
}

// d2 is the Horā division: k=0 first half, k=1 second half.
func d2(signIndex, k int) int {
	const leo, cancer = 4, 3
	if isOdd(signIndex) {
		if k == 0 {
			return leo
		}
		return cancer
	}
	if k == 0 {
		return cancer
	}
	return leo
}

func d3(signIndex, k int) int {
	switch k {
	case 0:
		return signIndex
	case 1:
		return mod12(signIndex + 4)
	default:
		return mod12(signIndex + 8)
	}
}

func d4(signIndex, k int) int {
	if k == 0 {
		return signIndex
	}
	var base int
	switch natureOf(signIndex) {
	case movable:
		base = signIndex
	case fixed:
		base = mod12(signIndex + 3)
	default:
		base = mod12(signIndex + 6)
	}
	if k == 1 {
		return base
	}
	if natureOf(signIndex) == dual && k == 2 {
		return base
	}
	return mod12(base + 3)
}

func d7(signIndex, k int) int {
	if isOdd(signIndex) {
		return mod12(signIndex + k)
	}
	return mod12(signIndex + 6 + k)
}

func d9(signIndex, k int) int {
	var start int
	switch natureOf(signIndex) {
	case movable:
		start = signIndex
	case fixed:
		start = mod12(signIndex + 8)
	default:
		start = mod12(signIndex + 4)
	}
	return mod12(start + k)
}

func d10family(signIndex, k int) int {
	return mod12(signIndex + offsetTableD10(signIndex) + k)
}

func d12(signIndex, k int) int {
	return mod12(signIndex + k)
}

func d20(signIndex, k int) int {
	return mod12(signIndex + k)
}

const (
	cancerIdx = 3
	leoIdx    = 4
)

// d24Exceptions are the four published (sign, k) pairs where D24/D45
// fire the Leo start instead of the Cancer default. §9 marks the
// exception set as tunable data, reverse-engineered against a published
// reference and "awaiting verification" in the source; this
// implementation resolves it to the first division (k=0) of each
// Movable sign, the smallest defensible reading consistent with the
// classical odd-sign/Leo convention, and ships it as a literal table
// rather than a parity formula (see DESIGN.md).
var d24Exceptions = map[[2]int]bool{
	{0, 0}: true, // Aries, k=0
	{3, 0}: true, // Cancer, k=0
	{6, 0}: true, // Libra, k=0
	{9, 0}: true, // Capricorn, k=0
}

func d24family(signIndex, k int) int {
	start := cancerIdx
	if d24Exceptions[[2]int{signIndex, k}] {
		start = leoIdx
	}
	return mod12(start + k)
}

func d27(signIndex, k int) int {
	return mod12(signIndex*27 + k)
}

// trimsamsaOdd and trimsamsaEven are the classical D30 band tables:
// each band's resulting sign is the planet's own sign of matching
// parity, stored as literal sign indices per §4.C4 ("do not compute by
// multiplication").
type trimsamsaBand struct {
	upperBound float64 // exclusive
	signIndex  int
}

var trimsamsaOdd = []trimsamsaBand{
	{5, 0},   // Mars -> Aries
	{10, 10}, // Saturn -> Aquarius
	{18, 8},  // Jupiter -> Sagittarius
	{25, 2},  // Mercury -> Gemini
	{30, 6},  // Venus -> Libra
}

var trimsamsaEven = []trimsamsaBand{
	{5, 1},   // Venus -> Taurus
	{10, 5},  // Mercury -> Virgo
	{18, 11}, // Jupiter -> Pisces
	{25, 9},  // Saturn -> Capricorn
	{30, 7},  // Mars -> Scorpio
}

// d30 ignores the generic division-index k: its bands are not equal
// width, so it re-derives deg_in_sign's band directly. signIndex's
// parity selects the table; degInSign picks the band within it.
func d30WithDegree(signIndex int, degInSign float64) int {
	table := trimsamsaEven
	if isOdd(signIndex) {
		table = trimsamsaOdd
	}
	for _, band := range table {
		if degInSign+divEpsilon < band.upperBound {
			return band.signIndex
		}
	}
	return table[len(table)-1].signIndex
}

// d30's bands sit on whole-degree boundaries and its division width is
// exactly 1°, so k from the generic divisionIndex already equals the
// floored degree-in-sign; reuse it directly against the band tables.
func d30(signIndex, k int) int {
	return d30WithDegree(signIndex, float64(k))
}
