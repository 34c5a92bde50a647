// Package zodiac maps a sidereal longitude to its sign and nakṣatra
// identities — a pure function with no ephemeris access of its own.
package zodiac

import (
	"fmt"
	"math"

	"vedicengine/pkg/apperr"
)

const signSpan = 30.0
const nakshatraSpan = 360.0 / 27.0
const padaSpan = nakshatraSpan / 4.0

// signEpsilon guards the floor() at a sign/nakṣatra/pada boundary against
// floating-point noise carried up from the ephemeris output.
const signEpsilon = 1e-9

var englishSigns = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

var sanskritSigns = [12]string{
	"Meṣa", "Vṛṣabha", "Mithuna", "Karka", "Siṃha", "Kanyā",
	"Tulā", "Vṛścika", "Dhanu", "Makara", "Kumbha", "Mīna",
}

var signLords = [12]string{
	"Mars", "Venus", "Mercury", "Moon", "Sun", "Mercury",
	"Venus", "Mars", "Jupiter", "Saturn", "Saturn", "Jupiter",
}

// VimshottariLords is the nine-lord Daśā order, starting from nakṣatra 0
// (Ashwini → Ketu); it repeats every nine nakṣatras, so each lord rules
// three nakṣatras spaced nine apart.
var VimshottariLords = [9]string{
	"Ketu", "Venus", "Sun", "Moon", "Mars", "Rahu", "Jupiter", "Saturn", "Mercury",
}

type nakshatraEntry struct {
	name  string
	lord  string
	deity string
}

// nakshatras is zero-indexed (0 = Ashwini .. 26 = Revati), unlike the
// traditional 1-27 numbering.
var nakshatras = [27]nakshatraEntry{
	{"Ashwini", "Ketu", "Ashwini Kumaras"},
	{"Bharani", "Venus", "Yama"},
	{"Krittika", "Sun", "Agni"},
	{"Rohini", "Moon", "Brahma"},
	{"Mrigashira", "Mars", "Soma"},
	{"Ardra", "Rahu", "Rudra"},
	{"Punarvasu", "Jupiter", "Aditi"},
	{"Pushya", "Saturn", "Brihaspati"},
	{"Ashlesha", "Mercury", "Nagas"},
	{"Magha", "Ketu", "Pitrs"},
	{"Purva Phalguni", "Venus", "Bhaga"},
	{"Uttara Phalguni", "Sun", "Aryaman"},
	{"Hasta", "Moon", "Savitar"},
	{"Chitra", "Mars", "Tvashtar"},
	{"Swati", "Rahu", "Vayu"},
	{"Vishakha", "Jupiter", "Indra-Agni"},
	{"Anuradha", "Saturn", "Mitra"},
	{"Jyeshtha", "Mercury", "Indra"},
	{"Mula", "Ketu", "Nirriti"},
	{"Purva Ashadha", "Venus", "Apas"},
	{"Uttara Ashadha", "Sun", "Vishve Devas"},
	{"Shravana", "Moon", "Vishnu"},
	{"Dhanishta", "Mars", "Vasus"},
	{"Shatabhisha", "Rahu", "Varuna"},
	{"Purva Bhadrapada", "Jupiter", "Aja Ekapada"},
	{"Uttara Bhadrapada", "Saturn", "Ahir Budhnya"},
	{"Revati", "Mercury", "Pushan"},
}

// Position is the full sign+nakṣatra enrichment of one longitude, the
// shape every chart entry in the §6 JSON contract is built from.
type Position struct {
	Longitude      float64 `json:"longitude"`
	SignIndex      int     `json:"sign_index"`
	Sign           string  `json:"sign"`
	SignSanskrit   string  `json:"sign_sanskrit"`
	DegreesInSign  float64 `json:"degrees_in_sign"`
	DegreeDMS      int     `json:"degree_dms"`
	Arcminutes     int     `json:"arcminutes"`
	Arcseconds     int     `json:"arcseconds"`
	Nakshatra      string  `json:"nakshatra"`
	NakshatraIndex int     `json:"nakshatra_index"`
	Pada           int     `json:"pada"`
	NakshatraLord  string  `json:"nakshatra_lord"`
}

// Enrich derives the full Position record for a sidereal longitude.
// Boundary ties resolve to the upper bucket: floor() with a tiny epsilon
// added first, per §9 "Sign-boundary numerical stability".
func Enrich(longitude float64) (Position, error) {
	if longitude < 0 || longitude >= 360 {
		return Position{}, apperr.Input("longitude %f outside [0, 360)", longitude)
	}

	signIndex := signIndexOf(longitude)
	degInSign := math.Mod(longitude, signSpan)

	nakIndex := int(math.Floor(longitude/nakshatraSpan + signEpsilon))
	if nakIndex > 26 {
		nakIndex = 26
	}
	posInNak := longitude - float64(nakIndex)*nakshatraSpan
	pada := int(math.Floor(posInNak/padaSpan+signEpsilon)) + 1
	if pada > 4 {
		pada = 4
	}

	deg, min, sec := toDMS(degInSign)
	nak := nakshatras[nakIndex]

	return Position{
		Longitude:      longitude,
		SignIndex:      signIndex,
		Sign:           englishSigns[signIndex],
		SignSanskrit:   sanskritSigns[signIndex],
		DegreesInSign:  degInSign,
		DegreeDMS:      deg,
		Arcminutes:     min,
		Arcseconds:     sec,
		Nakshatra:      nak.name,
		NakshatraIndex: nakIndex,
		Pada:           pada,
		NakshatraLord:  nak.lord,
	}, nil
}

// signIndexOf implements the canonical invariant
// sign_index == floor(longitude / 30), ties resolving to the upper sign.
func signIndexOf(longitude float64) int {
	idx := int(math.Floor(longitude/signSpan + signEpsilon))
	if idx > 11 {
		idx = 11
	}
	return idx
}

// SignIndexOf exposes signIndexOf to other core packages (varga, houses)
// that need the same boundary-stable sign lookup on a derived longitude.
func SignIndexOf(longitude float64) int { return signIndexOf(math.Mod(longitude, 360)) }

// SignName returns the English name for a zero-based sign index.
func SignName(signIndex int) string {
	if signIndex < 0 || signIndex > 11 {
		return ""
	}
	return englishSigns[signIndex]
}

// SignSanskritName returns the Sanskrit name for a zero-based sign index.
func SignSanskritName(signIndex int) string {
	if signIndex < 0 || signIndex > 11 {
		return ""
	}
	return sanskritSigns[signIndex]
}

// SignLord returns the ruling planet of a zero-based sign index.
func SignLord(signIndex int) string {
	if signIndex < 0 || signIndex > 11 {
		return ""
	}
	return signLords[signIndex]
}

// NakshatraName returns the name of a zero-based nakṣatra index.
func NakshatraName(nakshatraIndex int) string {
	if nakshatraIndex < 0 || nakshatraIndex > 26 {
		return ""
	}
	return nakshatras[nakshatraIndex].name
}

// VimshottariLordOf returns the Daśā lord ruling a zero-based nakṣatra
// index; the nine lords repeat every nine nakṣatras (index mod 9).
func VimshottariLordOf(nakshatraIndex int) (string, error) {
	if nakshatraIndex < 0 || nakshatraIndex > 26 {
		return "", apperr.Input("nakshatra index %d outside [0, 26]", nakshatraIndex)
	}
	return VimshottariLords[nakshatraIndex%9], nil
}

// toDMS splits a [0, 30) degree-in-sign value into whole degrees,
// arcminutes and arcseconds.
func toDMS(degreesInSign float64) (deg, min, sec int) {
	deg = int(degreesInSign)
	remMinutes := (degreesInSign - float64(deg)) * 60
	min = int(remMinutes)
	sec = int((remMinutes - float64(min)) * 60)
	return deg, min, sec
}

// FormatDMS renders a degrees-in-sign value the way the teacher's
// formatter does, e.g. "2°16'47"".
func FormatDMS(degreesInSign float64) string {
	deg, min, sec := toDMS(degreesInSign)
	return fmt.Sprintf("%d°%02d'%02d\"", deg, min, sec)
}
