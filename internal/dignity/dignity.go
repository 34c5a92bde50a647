// Package dignity classifies a planet's sign placement — own sign,
// exaltation, debilitation, or neither — the shared table both the yoga
// detector and the strength engine score against.
package dignity

// Status is one placement classification for a graha.
type Status string

const (
	OwnSign     Status = "own_sign"
	Exalted     Status = "exalted"
	Debilitated Status = "debilitated"
	Neutral     Status = "neutral"
)

// ownSigns lists each graha's ruled signs (zero-based sign index),
// matching the classical rulership table.
var ownSigns = map[string][]int{
	"Sun":     {4},     // Leo
	"Moon":    {3},     // Cancer
	"Mercury": {2, 5},  // Gemini, Virgo
	"Venus":   {1, 6},  // Taurus, Libra
	"Mars":    {0, 7},  // Aries, Scorpio
	"Jupiter": {8, 11}, // Sagittarius, Pisces
	"Saturn":  {9, 10}, // Capricorn, Aquarius
}

// exaltationSign gives each graha's single exaltation sign. Rahu/Ketu's
// exaltation assignment is the commonly used (if debated) convention:
// Rahu in Taurus, Ketu in Scorpio.
var exaltationSign = map[string]int{
	"Sun":     0,  // Aries
	"Moon":    1,  // Taurus
	"Mars":    9,  // Capricorn
	"Mercury": 5,  // Virgo
	"Jupiter": 3,  // Cancer
	"Venus":   11, // Pisces
	"Saturn":  6,  // Libra
	"Rahu":    1,  // Taurus
	"Ketu":    7,  // Scorpio
}

// debilitationSign is each graha's exaltation sign rotated 180°, the
// classical rule for deriving the fall sign from the exaltation sign.
var debilitationSign = map[string]int{
	"Sun":     6,
	"Moon":    7,
	"Mars":    3,
	"Mercury": 11,
	"Jupiter": 9,
	"Venus":   5,
	"Saturn":  0,
	"Rahu":    7,
	"Ketu":    1,
}

// Of classifies planet's dignity in signIndex (zero-based).
func Of(planet string, signIndex int) Status {
	if exaltationSign[planet] == signIndex {
		return Exalted
	}
	if debilitationSign[planet] == signIndex {
		return Debilitated
	}
	for _, s := range ownSigns[planet] {
		if s == signIndex {
			return OwnSign
		}
	}
	return Neutral
}

// IsOwnOrExalted is the common "own sign or exalted" dignity test used
// by most Mahāpuruṣa and Rāja Yoga rules.
func IsOwnOrExalted(planet string, signIndex int) bool {
	status := Of(planet, signIndex)
	return status == OwnSign || status == Exalted
}
