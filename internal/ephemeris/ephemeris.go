// Package ephemeris is the only place the core calls into Swiss Ephemeris.
// Every other package consumes sidereal longitudes, not the library directly.
package ephemeris

import (
	"fmt"
	"math"
	"time"

	"github.com/mshafiee/swephgo"

	"vedicengine/internal/logging"
	"vedicengine/pkg/apperr"
)

// Body identifies one of the nine Vedic grahas by its Swiss Ephemeris id.
type Body int

const (
	Sun Body = iota
	Moon
	Mars
	Mercury
	Jupiter
	Venus
	Saturn
	Rahu
	Ketu
)

// seID maps a Body to the underlying swephgo planet number. Rahu uses the
// true node per the fixed node policy; Ketu has no id of its own and is
// always derived as Rahu+180°.
var seID = map[Body]int{
	Sun:     0,
	Moon:    1,
	Mercury: 2,
	Venus:   3,
	Mars:    4,
	Jupiter: 5,
	Saturn:  6,
	Rahu:    seTrueNode,
}

// Names mirror BPHS order, not the swephgo numbering.
var names = map[Body]string{
	Sun: "Sun", Moon: "Moon", Mars: "Mars", Mercury: "Mercury",
	Jupiter: "Jupiter", Venus: "Venus", Saturn: "Saturn",
	Rahu: "Rahu", Ketu: "Ketu",
}

func (b Body) String() string { return names[b] }

// NineBodies lists the Vedic grahas in BPHS order.
var NineBodies = []Body{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn, Rahu, Ketu}

// Swiss Ephemeris flag/constant values, mirrored from the public C API
// (swephexp.h) rather than guessed: the sidereal flag, Lahiri sidereal
// mode, the true-node id, and the rise/set selectors used for sunrise
// and sunset with the Sun's upper limb and standard refraction.
const (
	seFlagSwieph   = 2
	seFlagSpeed    = 256
	seFlagSidereal = 65536
	seSidmLahiri   = 1
	seTrueNode     = 11

	seCalcRise      = 1
	seCalcSet       = 2
	seBitDiscCenter = 256 // disabled: we want the upper-limb event, not the disc center
	_               = seBitDiscCenter
)

// siderealFlag is the iflag passed to every swephgo.Calc call: Swiss
// Ephemeris data, sidereal zodiac, and speeds (without the speed flag the
// library leaves xx[3..5] at zero and no body would ever read retrograde).
const siderealFlag = seFlagSwieph | seFlagSpeed | seFlagSidereal

// Position is a single body's ecliptic state at one Julian Day, already
// in the sidereal (Lahiri) frame.
type Position struct {
	Longitude float64 // [0, 360)
	Latitude  float64
	Distance  float64 // AU
	SpeedLong float64 // deg/day; negative means retrograde
}

// Retrograde reports whether the body's longitude is decreasing.
func (p Position) Retrograde() bool { return p.SpeedLong < 0 }

// Adapter wraps the process-wide Swiss Ephemeris handle. It is initialized
// once at startup and is safe for concurrent reads afterward: swephgo's
// global ephemeris path and sidereal mode are set before any goroutine
// calls into it, and nothing here mutates them again.
type Adapter struct {
	logger *logging.Logger
}

// New initializes Swiss Ephemeris against dataPath (empty uses the
// library's built-in Moshier approximation) and locks the sidereal mode
// to Lahiri. Returns EphemerisUnavailable if the library cannot produce
// even a test position.
func New(dataPath string, logger *logging.Logger) (*Adapter, error) {
	swephgo.SetEphePath([]byte(dataPath))
	swephgo.SetSidMode(seSidmLahiri, 0, 0)

	logger.Info().Str("data_path", dataPath).Msg("initializing Swiss Ephemeris (Lahiri sidereal)")

	testJD := swephgo.Julday(2000, 1, 1, 12.0, 1)
	xx := make([]float64, 6)
	serr := make([]byte, 256)
	if result := swephgo.Calc(testJD, seID[Sun], siderealFlag, xx, serr); result < 0 {
		return nil, apperr.EphemerisUnavailable(fmt.Errorf("%s", string(serr)), "Swiss Ephemeris failed to initialize")
	}

	logger.Info().Float64("test_sun_longitude", xx[0]).Msg("Swiss Ephemeris ready")
	return &Adapter{logger: logger}, nil
}

// JulianDay converts a civil instant (already resolved to a specific
// IANA zone) to Julian Day in UT, the canonical time coordinate for
// every downstream calculation.
func JulianDay(t time.Time) float64 {
	utc := t.UTC()
	hour := float64(utc.Hour()) + float64(utc.Minute())/60.0 + float64(utc.Second())/3600.0
	return swephgo.Julday(utc.Year(), int(utc.Month()), utc.Day(), hour, 1)
}

// CivilTime is the inverse of JulianDay: it turns a Julian Day (UT) found
// by a root search (e.g. sunrise) back into a UTC wall-clock instant.
func CivilTime(julianDayUT float64) time.Time {
	year := make([]int, 1)
	month := make([]int, 1)
	day := make([]int, 1)
	hour := make([]float64, 1)
	swephgo.Revjul(julianDayUT, 1, year, month, day, hour)

	h := hour[0]
	hh := int(h)
	remMinutes := (h - float64(hh)) * 60
	mm := int(remMinutes)
	ss := int((remMinutes - float64(mm)) * 60)
	return time.Date(int(year[0]), time.Month(month[0]), int(day[0]), hh, mm, ss, 0, time.UTC)
}

// ResolveCivilTime loads tz and builds the local and UTC instants for a
// birth moment, failing with InputError on an unrecognized IANA zone.
func ResolveCivilTime(year, month, day, hour, minute, second int, tz string) (local, utc time.Time, err error) {
	loc, locErr := time.LoadLocation(tz)
	if locErr != nil {
		return time.Time{}, time.Time{}, apperr.Input("unknown timezone %q: %v", tz, locErr)
	}
	local = time.Date(year, time.Month(month), day, hour, minute, second, 0, loc)
	return local, local.UTC(), nil
}

// Longitude computes b's sidereal position at julianDay. Ketu is derived
// from Rahu rather than queried — it has no ephemeris id of its own.
func (a *Adapter) Longitude(julianDay float64, b Body) (Position, error) {
	if b == Ketu {
		rahu, err := a.Longitude(julianDay, Rahu)
		if err != nil {
			return Position{}, err
		}
		return Position{
			Longitude: normalizeDegrees(rahu.Longitude + 180),
			Latitude:  -rahu.Latitude,
			Distance:  rahu.Distance,
			SpeedLong: rahu.SpeedLong,
		}, nil
	}

	id, ok := seID[b]
	if !ok {
		return Position{}, apperr.Input("unknown body %v", b)
	}

	xx := make([]float64, 6)
	serr := make([]byte, 256)
	result := swephgo.Calc(julianDay, id, siderealFlag, xx, serr)
	if result < 0 {
		a.logger.Error().Str("error", string(serr)).Int("body_id", id).Msg("ephemeris calculation failed")
		return Position{}, apperr.EphemerisUnavailable(fmt.Errorf("%s", string(serr)), "position unavailable for body %d", id)
	}

	return Position{
		Longitude: normalizeDegrees(xx[0]),
		Latitude:  xx[1],
		Distance:  xx[2],
		SpeedLong: xx[3],
	}, nil
}

// AllBodies computes the nine BPHS grahas in one pass.
func (a *Adapter) AllBodies(julianDay float64) (map[Body]Position, error) {
	out := make(map[Body]Position, len(NineBodies))
	for _, b := range NineBodies {
		pos, err := a.Longitude(julianDay, b)
		if err != nil {
			return nil, err
		}
		out[b] = pos
	}
	return out, nil
}

// Ascendant returns the sidereal longitude of the rising degree for the
// given Julian Day and geographic position, using the Whole-Sign house
// system code so the underlying library's cusp machinery is bypassed —
// only ascmc[0] (the Ascendant) is consumed, per the core's Whole-Sign-
// only house policy.
func (a *Adapter) Ascendant(julianDay, latitude, longitude float64) (float64, error) {
	cusps := make([]float64, 13)
	ascmc := make([]float64, 10)
	result := swephgo.Houses(julianDay, latitude, longitude, int('W'), cusps, ascmc)
	if result < 0 {
		return 0, apperr.EphemerisUnavailable(nil, "ascendant calculation failed at lat=%f lon=%f", latitude, longitude)
	}
	return normalizeDegrees(ascmc[0]), nil
}

// riseTrans calls swephgo's sunrise/sunset search. rsmi selects CalcRise
// or CalcSet; the search always targets the Sun's upper limb with
// standard atmospheric refraction (i.e. neither BitDiscCenter nor
// BitNoRefraction is set), matching the naked-eye sunrise convention
// Pañcāṅga is defined against.
func (a *Adapter) riseTrans(julianDayUT, latitude, longitude float64, rsmi int) (float64, error) {
	geopos := []float64{longitude, latitude, 0}
	tret := make([]float64, 1)
	serr := make([]byte, 256)
	result := swephgo.RiseTrans(julianDayUT, seID[Sun], []byte{}, seFlagSwieph, rsmi, geopos, 1013.25, 15.0, tret, serr)
	if result < 0 {
		return 0, apperr.AstroEventUnavailable("no rise/set event found (message: %s)", string(serr))
	}
	if result == 2 {
		// swe_rise_trans-style circumpolar code: no event at this latitude/date.
		return 0, apperr.AstroEventUnavailable("no sunrise/sunset at this latitude on this date (polar)")
	}
	return tret[0], nil
}

// Sunrise finds the next sunrise at or after the Julian Day of local
// midnight for the given position.
func (a *Adapter) Sunrise(localMidnightJD, latitude, longitude float64) (float64, error) {
	return a.riseTrans(localMidnightJD, latitude, longitude, seCalcRise)
}

// Sunset finds the next sunset at or after the given Julian Day.
func (a *Adapter) Sunset(localMidnightJD, latitude, longitude float64) (float64, error) {
	return a.riseTrans(localMidnightJD, latitude, longitude, seCalcSet)
}

func normalizeDegrees(d float64) float64 {
	d = math.Mod(d, 360.0)
	if d < 0 {
		d += 360.0
	}
	return d
}
