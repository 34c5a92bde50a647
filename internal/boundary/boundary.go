// Package boundary finds the instant a scalar function of time crosses
// zero — the shared primitive behind every Pañcāṅga limb boundary and
// sign-ingress search: Tithi/Nakṣatra/Yoga ends, Amāvāsyā/Pūrṇimā, and
// slow-planet sign changes are all roots of a function built elsewhere.
package boundary

import (
	"math"
	"time"

	"vedicengine/pkg/apperr"
)

// maxExpansions bounds how far Find will widen its search interval
// before giving up; each expansion doubles the step, so this comfortably
// covers anything from a Tithi (under a day) to a slow-planet ingress
// (months).
const maxExpansions = 40

// iterations is the fixed bisection step count; 60 halvings of even a
// year-long interval land well under a second of time, far inside the
// ~1e-5 day tolerance called for.
const iterations = 64

// Func is a scalar function of civil time whose sign change marks the
// boundary being searched for (e.g. Tithi index progress minus a target
// threshold). Find and FindBackward treat any change between negative and
// non-negative, in either direction, as the crossing.
type Func func(t time.Time) float64

// Find searches forward from start for the first instant where f changes
// sign, expanding the search window geometrically until a bracket is
// found and then bisecting it down to iterations steps. stepSeconds is
// the initial bracket width and also the minimum meaningful resolution
// of the underlying phenomenon (e.g. a few hours for a Tithi, a day for
// a slow transit).
func Find(start time.Time, stepSeconds float64, f Func) (time.Time, error) {
	lo := start
	loVal := f(lo)

	step := stepSeconds
	hi := lo
	hiVal := loVal
	found := false
	for i := 0; i < maxExpansions; i++ {
		hi = lo.Add(time.Duration(step) * time.Second)
		hiVal = f(hi)
		if sameSign(loVal, hiVal) {
			step *= 2
			continue
		}
		found = true
		break
	}
	if !found {
		return time.Time{}, apperr.AstroEventUnavailable("no boundary found within %d expansions of %s", maxExpansions, start.Format(time.RFC3339))
	}

	for i := 0; i < iterations; i++ {
		mid := midpoint(lo, hi)
		midVal := f(mid)
		if sameSign(loVal, midVal) {
			lo, loVal = mid, midVal
		} else {
			hi, hiVal = mid, midVal
		}
	}
	_ = hiVal
	return midpoint(lo, hi), nil
}

// FindBackward is Find's mirror image: it searches into the past for the
// first sign change, used by the lunar-month search (most recent
// Amāvāsyā/Pūrṇimā before a given instant).
func FindBackward(start time.Time, stepSeconds float64, f Func) (time.Time, error) {
	hi := start
	hiVal := f(hi)

	step := stepSeconds
	lo := hi
	loVal := hiVal
	found := false
	for i := 0; i < maxExpansions; i++ {
		lo = hi.Add(-time.Duration(step) * time.Second)
		loVal = f(lo)
		if sameSign(loVal, hiVal) {
			step *= 2
			continue
		}
		found = true
		break
	}
	if !found {
		return time.Time{}, apperr.AstroEventUnavailable("no boundary found within %d backward expansions of %s", maxExpansions, start.Format(time.RFC3339))
	}

	for i := 0; i < iterations; i++ {
		mid := midpoint(lo, hi)
		midVal := f(mid)
		if sameSign(loVal, midVal) {
			lo, loVal = mid, midVal
		} else {
			hi, hiVal = mid, midVal
		}
	}
	return midpoint(lo, hi), nil
}

// UnwrapNear resolves the branch ambiguity in a mod-360 angle by picking
// the representative of raw closest to anchor, so a boundary function
// built from it stays continuous (monotonic) across a 0°/360° seam
// instead of jumping when the underlying angle wraps.
func UnwrapNear(raw, anchor float64) float64 {
	d := math.Mod(raw-anchor+540, 360) - 180
	return anchor + d
}

func sameSign(a, b float64) bool {
	return (a < 0) == (b < 0)
}

func midpoint(a, b time.Time) time.Time {
	return a.Add(b.Sub(a) / 2)
}
