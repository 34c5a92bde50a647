// Package panchanga computes the five-limbed Vedic daily calendar —
// Tithi, Vāra, Nakṣatra, Yoga, Karaṇa — plus the lunar month and Saṃvat
// year bookkeeping built on top of them. Every boundary below is a root
// of a scalar function of time, found with internal/boundary.
package panchanga

import (
	"math"
	"time"

	"vedicengine/internal/boundary"
	"vedicengine/internal/ephemeris"
	"vedicengine/internal/zodiac"
	"vedicengine/pkg/apperr"
)

const (
	tithiSpan     = 12.0
	nakshatraSpan = 360.0 / 27.0
	yogaSpan      = 360.0 / 27.0
	karanaSpan    = 6.0
	epsilon       = 1e-9
)

var tithiNames = [30]string{
	"Pratipada", "Dwitiya", "Tritiya", "Chaturthi", "Panchami", "Shashthi",
	"Saptami", "Ashtami", "Navami", "Dashami", "Ekadashi", "Dwadashi",
	"Trayodashi", "Chaturdashi", "Purnima",
	"Pratipada", "Dwitiya", "Tritiya", "Chaturthi", "Panchami", "Shashthi",
	"Saptami", "Ashtami", "Navami", "Dashami", "Ekadashi", "Dwadashi",
	"Trayodashi", "Chaturdashi", "Amavasya",
}

var yogaNames = [27]string{
	"Vishkambha", "Priti", "Ayushman", "Saubhagya", "Shobhana", "Atiganda",
	"Sukarma", "Dhriti", "Shoola", "Ganda", "Vriddhi", "Dhruva",
	"Vyaghata", "Harshana", "Vajra", "Siddhi", "Vyatipata", "Variyana",
	"Parigha", "Shiva", "Siddha", "Sadhya", "Shubha", "Shukla",
	"Brahma", "Indra", "Vaidhriti",
}

var movableKaranas = [7]string{
	"Bava", "Balava", "Kaulava", "Taitila", "Garaja", "Vanija", "Vishti",
}

// karanaName resolves a global half-Tithi index (0-based, wraps every
// 60) to its classical name: Kimstughna fixed at the start of the lunar
// month, the seven movable karanas cycling eight times, then the three
// fixed karanas (Shakuni, Chatushpada, Naga) closing it out.
func karanaName(globalIdx int) string {
	m := ((globalIdx % 60) + 60) % 60
	switch {
	case m == 0:
		return "Kimstughna"
	case m == 57:
		return "Shakuni"
	case m == 58:
		return "Chatushpada"
	case m == 59:
		return "Naga"
	default:
		return movableKaranas[(m-1)%7]
	}
}

// monthNames maps the sidereal sign the Sun occupies at a lunar-month
// marker (Amāvāsyā or Pūrṇimā) to the canonical Amānta month name.
var monthNames = [12]string{
	"Chaitra", "Vaishakha", "Jyeshtha", "Ashadha", "Shravana", "Bhadrapada",
	"Ashwin", "Kartika", "Margashirsha", "Pausha", "Magha", "Phalguna",
}

var varaLords = [7]string{"Sun", "Moon", "Mars", "Mercury", "Jupiter", "Venus", "Saturn"}

// Limb is one of Tithi/Nakṣatra/Yoga: a current value, the value it
// transitions into, and the exact instant of that transition.
type Limb struct {
	CurrentIndex int       `json:"current_index"`
	Current      string    `json:"current"`
	NextIndex    int       `json:"next_index"`
	Next         string    `json:"next"`
	EndsAt       time.Time `json:"ends_at"`
	EndsAtLocal  string    `json:"ends_at_local"`
}

// KaranaEntry is one karana in the sunrise-to-next-sunrise sequence.
type KaranaEntry struct {
	Name        string    `json:"name"`
	EndsAt      time.Time `json:"ends_at"`
	EndsAtLocal string    `json:"ends_at_local"`
}

// Snapshot is the full Pañcāṅga contract for one civil day at one place.
type Snapshot struct {
	Date         time.Time `json:"date"`
	Sunrise      time.Time `json:"sunrise"`
	SunriseLocal string    `json:"sunrise_local"`
	Sunset       time.Time `json:"sunset"`
	SunsetLocal  string    `json:"sunset_local"`
	Vara         string    `json:"vara"`
	VaraLord     string    `json:"vara_lord"`

	Tithi     Limb   `json:"tithi"`
	Paksha    string `json:"paksha"`
	Nakshatra Limb   `json:"nakshatra"`
	Yoga      Limb   `json:"yoga"`

	Karanas []KaranaEntry `json:"karanas"`

	AmantaMonth     string `json:"amanta_month"`
	PurnimantaMonth string `json:"purnimanta_month"`
	AdhikaMasa      bool   `json:"adhika_masa"`

	MoonSign string `json:"moon_sign"`
	SunSign  string `json:"sun_sign"`

	SakaSamvat     int `json:"saka_samvat"`
	VikramSamvat   int `json:"vikram_samvat"`
	GujaratiSamvat int `json:"gujarati_samvat"`
}

// Engine computes Pañcāṅga snapshots against one ephemeris adapter.
type Engine struct {
	adapter *ephemeris.Adapter
}

// New builds a panchanga Engine over an already-initialized ephemeris adapter.
func New(adapter *ephemeris.Adapter) *Engine {
	return &Engine{adapter: adapter}
}

// Compute builds the full Pañcāṅga snapshot for the civil date (in tz)
// at the given geographic position.
func (e *Engine) Compute(date time.Time, lat, lon float64, tz string) (*Snapshot, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, apperr.Input("unknown timezone %q: %v", tz, err)
	}

	localMidnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	sunriseJD, err := e.adapter.Sunrise(ephemeris.JulianDay(localMidnight), lat, lon)
	if err != nil {
		return nil, err
	}
	sunsetJD, err := e.adapter.Sunset(ephemeris.JulianDay(localMidnight), lat, lon)
	if err != nil {
		return nil, err
	}
	nextMidnight := localMidnight.AddDate(0, 0, 1)
	nextSunriseJD, err := e.adapter.Sunrise(ephemeris.JulianDay(nextMidnight), lat, lon)
	if err != nil {
		return nil, err
	}

	sunrise := ephemeris.CivilTime(sunriseJD).In(loc)
	sunset := ephemeris.CivilTime(sunsetJD).In(loc)
	nextSunrise := ephemeris.CivilTime(nextSunriseJD).In(loc)

	varaIdx := int(sunrise.Weekday())

	tithi, err := e.tithiLimb(sunrise)
	if err != nil {
		return nil, err
	}
	paksha := "Shukla"
	if tithi.CurrentIndex >= 15 {
		paksha = "Krishna"
	}

	nak, err := e.nakshatraLimb(sunrise)
	if err != nil {
		return nil, err
	}
	yog, err := e.yogaLimb(sunrise)
	if err != nil {
		return nil, err
	}

	karanas, err := e.karanaSequence(sunrise, nextSunrise)
	if err != nil {
		return nil, err
	}

	tithi.EndsAtLocal = formatClock(tithi.EndsAt, sunrise)
	nak.EndsAtLocal = formatClock(nak.EndsAt, sunrise)
	yog.EndsAtLocal = formatClock(yog.EndsAt, sunrise)
	for i := range karanas {
		karanas[i].EndsAtLocal = formatClock(karanas[i].EndsAt, sunrise)
	}

	amavasyaPrev, err := e.findLunarMarker(sunrise, 0)
	if err != nil {
		return nil, err
	}
	purnimaPrev, err := e.findLunarMarker(sunrise, 180)
	if err != nil {
		return nil, err
	}
	amavasyaNext, err := e.findNextLunarMarker(sunrise, 360)
	if err != nil {
		return nil, err
	}

	amantaSignIdx, err := e.sunSignAt(amavasyaPrev)
	if err != nil {
		return nil, err
	}
	purnimantaSignIdx, err := e.sunSignAt(purnimaPrev)
	if err != nil {
		return nil, err
	}
	nextAmantaSignIdx, err := e.sunSignAt(amavasyaNext)
	if err != nil {
		return nil, err
	}
	adhikaMasa := amantaSignIdx == nextAmantaSignIdx

	moonLongAtSunrise, err := e.moonLongitude(sunrise)
	if err != nil {
		return nil, err
	}
	sunLongAtSunrise, err := e.sunLongitude(sunrise)
	if err != nil {
		return nil, err
	}

	saka, vikram, gujarati := samvatYears(date.Year(), amantaSignIdx)

	return &Snapshot{
		Date:            date,
		Sunrise:         sunrise,
		SunriseLocal:    formatClock(sunrise, sunrise),
		Sunset:          sunset,
		SunsetLocal:     formatClock(sunset, sunrise),
		Vara:            sunrise.Weekday().String(),
		VaraLord:        varaLords[varaIdx],
		Tithi:           tithi,
		Paksha:          paksha,
		Nakshatra:       nak,
		Yoga:            yog,
		Karanas:         karanas,
		AmantaMonth:     monthNames[amantaSignIdx],
		PurnimantaMonth: monthNames[purnimantaSignIdx],
		AdhikaMasa:      adhikaMasa,
		MoonSign:        zodiac.SignName(zodiac.SignIndexOf(moonLongAtSunrise)),
		SunSign:         zodiac.SignName(zodiac.SignIndexOf(sunLongAtSunrise)),
		SakaSamvat:      saka,
		VikramSamvat:    vikram,
		GujaratiSamvat:  gujarati,
	}, nil
}

func (e *Engine) moonLongitude(t time.Time) (float64, error) {
	pos, err := e.adapter.Longitude(ephemeris.JulianDay(t), ephemeris.Moon)
	if err != nil {
		return 0, err
	}
	return pos.Longitude, nil
}

func (e *Engine) sunLongitude(t time.Time) (float64, error) {
	pos, err := e.adapter.Longitude(ephemeris.JulianDay(t), ephemeris.Sun)
	if err != nil {
		return 0, err
	}
	return pos.Longitude, nil
}

func (e *Engine) sunSignAt(t time.Time) (int, error) {
	sunLong, err := e.sunLongitude(t)
	if err != nil {
		return 0, err
	}
	return zodiac.SignIndexOf(sunLong), nil
}

func (e *Engine) diffRaw(t time.Time) (float64, error) {
	moon, err := e.moonLongitude(t)
	if err != nil {
		return 0, err
	}
	sun, err := e.sunLongitude(t)
	if err != nil {
		return 0, err
	}
	return math.Mod(moon-sun+360, 360), nil
}

func (e *Engine) sumRaw(t time.Time) (float64, error) {
	moon, err := e.moonLongitude(t)
	if err != nil {
		return 0, err
	}
	sun, err := e.sunLongitude(t)
	if err != nil {
		return 0, err
	}
	return math.Mod(moon+sun, 360), nil
}

// wrapErr adapts an error-returning scalar function into a boundary.Func,
// stashing the first error it hits so the caller can surface it instead
// of misreading it as "no crossing found".
func wrapErr(fn func(time.Time) (float64, error)) (boundary.Func, *error) {
	var captured error
	f := func(t time.Time) float64 {
		v, err := fn(t)
		if err != nil {
			captured = err
			return 0
		}
		return v
	}
	return f, &captured
}

func (e *Engine) tithiLimb(sunrise time.Time) (Limb, error) {
	baseDiff, err := e.diffRaw(sunrise)
	if err != nil {
		return Limb{}, err
	}
	idx := int(math.Floor(baseDiff/tithiSpan + epsilon))
	if idx > 29 {
		idx = 29
	}
	target := float64(idx+1) * tithiSpan

	f, errp := wrapErr(func(t time.Time) (float64, error) {
		raw, err := e.diffRaw(t)
		if err != nil {
			return 0, err
		}
		return boundary.UnwrapNear(raw, baseDiff) - target, nil
	})
	end, err := boundary.Find(sunrise, 3600, f)
	if err == nil && *errp != nil {
		err = *errp
	}
	if err != nil {
		return Limb{}, err
	}

	nextIdx := (idx + 1) % 30
	return Limb{
		CurrentIndex: idx,
		Current:      tithiNames[idx],
		NextIndex:    nextIdx,
		Next:         tithiNames[nextIdx],
		EndsAt:       end,
	}, nil
}

func (e *Engine) nakshatraLimb(sunrise time.Time) (Limb, error) {
	baseLong, err := e.moonLongitude(sunrise)
	if err != nil {
		return Limb{}, err
	}
	idx := int(math.Floor(baseLong/nakshatraSpan + epsilon))
	if idx > 26 {
		idx = 26
	}
	target := float64(idx+1) * nakshatraSpan

	f, errp := wrapErr(func(t time.Time) (float64, error) {
		raw, err := e.moonLongitude(t)
		if err != nil {
			return 0, err
		}
		return boundary.UnwrapNear(raw, baseLong) - target, nil
	})
	end, err := boundary.Find(sunrise, 3600, f)
	if err == nil && *errp != nil {
		err = *errp
	}
	if err != nil {
		return Limb{}, err
	}

	nextIdx := (idx + 1) % 27
	return Limb{
		CurrentIndex: idx,
		Current:      zodiac.NakshatraName(idx),
		NextIndex:    nextIdx,
		Next:         zodiac.NakshatraName(nextIdx),
		EndsAt:       end,
	}, nil
}

func (e *Engine) yogaLimb(sunrise time.Time) (Limb, error) {
	baseSum, err := e.sumRaw(sunrise)
	if err != nil {
		return Limb{}, err
	}
	idx := int(math.Floor(baseSum/yogaSpan + epsilon))
	if idx > 26 {
		idx = 26
	}
	target := float64(idx+1) * yogaSpan

	f, errp := wrapErr(func(t time.Time) (float64, error) {
		raw, err := e.sumRaw(t)
		if err != nil {
			return 0, err
		}
		return boundary.UnwrapNear(raw, baseSum) - target, nil
	})
	end, err := boundary.Find(sunrise, 3600, f)
	if err == nil && *errp != nil {
		err = *errp
	}
	if err != nil {
		return Limb{}, err
	}

	nextIdx := (idx + 1) % 27
	return Limb{
		CurrentIndex: idx,
		Current:      yogaNames[idx],
		NextIndex:    nextIdx,
		Next:         yogaNames[nextIdx],
		EndsAt:       end,
	}, nil
}

func (e *Engine) karanaSequence(sunrise, nextSunrise time.Time) ([]KaranaEntry, error) {
	baseDiff, err := e.diffRaw(sunrise)
	if err != nil {
		return nil, err
	}
	baseIdx := int(math.Floor(baseDiff/karanaSpan + epsilon))

	var entries []KaranaEntry
	cursor := sunrise
	for k := 0; ; k++ {
		target := float64(baseIdx+k+1) * karanaSpan
		f, errp := wrapErr(func(t time.Time) (float64, error) {
			raw, err := e.diffRaw(t)
			if err != nil {
				return 0, err
			}
			return boundary.UnwrapNear(raw, baseDiff) - target, nil
		})
		end, err := boundary.Find(cursor, 900, f)
		if err == nil && *errp != nil {
			err = *errp
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, KaranaEntry{Name: karanaName(baseIdx + k), EndsAt: end})
		cursor = end
		if end.After(nextSunrise) {
			break
		}
	}
	return entries, nil
}

// lunarPhaseRate is the mean Moon-Sun elongation rate in degrees per
// day (one synodic month per 360°), used to count whole revolutions
// when unwrapping the phase angle across a multi-week search window.
const lunarPhaseRate = 360.0 / 29.530588

// phaseUnwrapped lifts the mod-360 Moon-Sun difference onto a single
// continuous, monotonically increasing branch anchored at ref. The
// winding count comes from the mean synodic rate; the true phase never
// drifts anywhere near the 180° the rounding tolerates within the
// at-most-one-month windows the lunar-month searches span. A fixed
// UnwrapNear anchor cannot serve here: it confines every sample to
// ±180° of the reference phase, which leaves the Amāvāsyā/Pūrṇimā
// targets out of reach for half of each month.
func (e *Engine) phaseUnwrapped(t, ref time.Time, basePhase float64) (float64, error) {
	raw, err := e.diffRaw(t)
	if err != nil {
		return 0, err
	}
	days := t.Sub(ref).Hours() / 24
	estimate := basePhase + lunarPhaseRate*days
	turns := math.Round((estimate - raw) / 360)
	return raw + 360*turns, nil
}

// markerTargetBackward picks the largest targetDiff+360k at or below
// basePhase: the unwrapped phase of the most recent crossing behind the
// reference instant. On a Śukla day (phase below 180) the last Pūrṇimā
// belongs to the previous month, so its branch is negative (180 - 360).
func markerTargetBackward(basePhase, targetDiff float64) float64 {
	t := targetDiff
	for t > basePhase {
		t -= 360
	}
	return t
}

// markerTargetForward picks the smallest targetDiff+360k strictly above
// basePhase: the unwrapped phase of the next crossing ahead.
func markerTargetForward(basePhase, targetDiff float64) float64 {
	t := targetDiff
	for t <= basePhase {
		t += 360
	}
	return t
}

// findLunarMarker searches backward from ref for the most recent instant
// the Moon-Sun angular difference equalled targetDiff (0 for Amāvāsyā,
// 180 for Pūrṇimā).
func (e *Engine) findLunarMarker(ref time.Time, targetDiff float64) (time.Time, error) {
	basePhase, err := e.diffRaw(ref)
	if err != nil {
		return time.Time{}, err
	}
	target := markerTargetBackward(basePhase, targetDiff)

	f, errp := wrapErr(func(t time.Time) (float64, error) {
		phase, err := e.phaseUnwrapped(t, ref, basePhase)
		if err != nil {
			return 0, err
		}
		return phase - target, nil
	})
	found, err := boundary.FindBackward(ref, 3600*6, f)
	if err == nil && *errp != nil {
		err = *errp
	}
	return found, err
}

// findNextLunarMarker searches forward from ref for the next instant the
// Moon-Sun difference reaches targetDiff (360 finds the next Amāvāsyā).
func (e *Engine) findNextLunarMarker(ref time.Time, targetDiff float64) (time.Time, error) {
	basePhase, err := e.diffRaw(ref)
	if err != nil {
		return time.Time{}, err
	}
	target := markerTargetForward(basePhase, targetDiff)

	f, errp := wrapErr(func(t time.Time) (float64, error) {
		phase, err := e.phaseUnwrapped(t, ref, basePhase)
		if err != nil {
			return 0, err
		}
		return phase - target, nil
	})
	found, err := boundary.Find(ref, 3600*6, f)
	if err == nil && *errp != nil {
		err = *errp
	}
	return found, err
}

// formatClock renders t as the wall-clock string the contract reports
// ("2:37 AM"), appending a date suffix ("2:37 AM, Jan 23") when the
// event falls on a different civil day than ref. Both instants must
// already be in the request's timezone.
func formatClock(t, ref time.Time) string {
	s := t.Format("3:04 PM")
	if t.Year() != ref.Year() || t.YearDay() != ref.YearDay() {
		s += ", " + t.Format("Jan 2")
	}
	return s
}

// samvatYears derives the three lunisolar year numbers from the civil
// year and the Amānta month's solar sign. The Vikram/Śaka year rolls
// over at Chaitra (Aries); for the tail months that precede it within
// the same Gregorian year (Pauṣa/Māgha/Phālguna — Capricorn..Pisces)
// the lunar year is still the previous one. This is the source's
// documented approximation, not an exact lunisolar calendar reduction.
func samvatYears(gregorianYear, amantaSignIndex int) (saka, vikram, gujarati int) {
	saka = gregorianYear - 78
	vikram = gregorianYear + 57
	gujarati = gregorianYear + 56
	if amantaSignIndex >= 9 { // Capricorn, Aquarius, Pisces
		saka--
		vikram--
	}
	return saka, vikram, gujarati
}
