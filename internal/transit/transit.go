// Package transit reports present-moment planetary positions and scans
// for sign ingresses over a date range, reusing C1 (ephemeris) and C2
// (zodiac) rather than duplicating any astronomical math.
package transit

import (
	"time"

	"vedicengine/internal/boundary"
	"vedicengine/internal/ephemeris"
	"vedicengine/internal/zodiac"
)

// slowBodies rarely change sign within a query window; their ingress
// scan can afford to search for the boundary directly instead of
// sampling a grid.
var slowBodies = map[ephemeris.Body]bool{
	ephemeris.Mars:    true,
	ephemeris.Jupiter: true,
	ephemeris.Saturn:  true,
	ephemeris.Rahu:    true,
	ephemeris.Ketu:    true,
}

// fastGridStep is the sampling interval used to bracket a sign change
// for fast-moving bodies (Sun, Moon, Mercury, Venus), which can cross
// more than one sign boundary within a wide query window.
const fastGridStep = 7 * 24 * time.Hour

// Ingress is one sign-to-sign crossing of a body within a scan window.
type Ingress struct {
	Instant  time.Time `json:"instant"`
	FromSign string    `json:"from_sign"`
	ToSign   string    `json:"to_sign"`
}

// Engine reports transits against one ephemeris adapter.
type Engine struct {
	adapter *ephemeris.Adapter
}

// New builds a transit Engine over an already-initialized ephemeris adapter.
func New(adapter *ephemeris.Adapter) *Engine {
	return &Engine{adapter: adapter}
}

// CurrentPositions is a thin C1+C2 call: the sidereal position and full
// sign/nakṣatra enrichment of every Vedic graha at one instant.
func (e *Engine) CurrentPositions(instant time.Time) (map[string]zodiac.Position, error) {
	jd := ephemeris.JulianDay(instant)
	out := make(map[string]zodiac.Position, len(ephemeris.NineBodies))
	for _, b := range ephemeris.NineBodies {
		pos, err := e.adapter.Longitude(jd, b)
		if err != nil {
			return nil, err
		}
		enriched, err := zodiac.Enrich(pos.Longitude)
		if err != nil {
			return nil, err
		}
		out[b.String()] = enriched
	}
	return out, nil
}

// SignIngresses scans [start, end] for every sign change body makes.
// Slow-moving bodies are scanned by root-bracketing directly on each
// candidate sign boundary; fast bodies are scanned on a weekly grid
// since they can cross several signs within a wide window.
func (e *Engine) SignIngresses(body ephemeris.Body, start, end time.Time) ([]Ingress, error) {
	if slowBodies[body] {
		return e.scanSlow(body, start, end)
	}
	return e.scanFast(body, start, end)
}

func (e *Engine) longitude(body ephemeris.Body, t time.Time) (float64, error) {
	pos, err := e.adapter.Longitude(ephemeris.JulianDay(t), body)
	if err != nil {
		return 0, err
	}
	return pos.Longitude, nil
}

// ingressTarget picks the sign boundary a body is moving toward from
// fromSign and the sign it lands in on crossing. Direct motion exits
// through the upper boundary; retrograde motion (Rāhu/Ketu always, the
// outer planets during their retrograde spells) exits through the lower.
func ingressTarget(fromSign int, retrograde bool) (target float64, toSign int) {
	if retrograde {
		return float64(fromSign) * 30, (fromSign + 11) % 12
	}
	return float64(fromSign+1) * 30, (fromSign + 1) % 12
}

// scanSlow finds, at most, a handful of ingresses by root-bracketing
// the body's longitude (unwrapped around its value at the cursor)
// against the sign boundary it is heading for from the cursor's current
// sign, repeating until the window is exhausted.
func (e *Engine) scanSlow(body ephemeris.Body, start, end time.Time) ([]Ingress, error) {
	var out []Ingress
	cursor := start
	for {
		pos, err := e.adapter.Longitude(ephemeris.JulianDay(cursor), body)
		if err != nil {
			return nil, err
		}
		longNow := pos.Longitude
		fromSign := zodiac.SignIndexOf(longNow)
		target, toSign := ingressTarget(fromSign, pos.Retrograde())

		var capturedErr error
		f := func(t time.Time) float64 {
			raw, err := e.longitude(body, t)
			if err != nil {
				capturedErr = err
				return 0
			}
			return boundary.UnwrapNear(raw, longNow) - target
		}
		instant, err := boundary.Find(cursor, 24*3600, f)
		if err == nil && capturedErr != nil {
			err = capturedErr
		}
		if err != nil {
			// No further ingress found inside the window; stop cleanly.
			return out, nil
		}
		if instant.After(end) {
			return out, nil
		}

		out = append(out, Ingress{
			Instant:  instant,
			FromSign: zodiac.SignName(fromSign),
			ToSign:   zodiac.SignName(toSign),
		})
		// Step past the crossing so the next iteration samples inside the
		// new sign instead of restarting on the boundary it just found.
		cursor = instant.Add(time.Minute)
	}
}

// scanFast samples body's longitude on a weekly grid and flags every
// interval where the sign index changed, then refines the exact instant
// by root-bracketing within that week.
func (e *Engine) scanFast(body ephemeris.Body, start, end time.Time) ([]Ingress, error) {
	var out []Ingress
	prevT := start
	prevLong, err := e.longitude(body, prevT)
	if err != nil {
		return nil, err
	}
	prevSign := zodiac.SignIndexOf(prevLong)

	for cursor := start.Add(fastGridStep); !cursor.After(end.Add(fastGridStep)); cursor = cursor.Add(fastGridStep) {
		sampleT := cursor
		if sampleT.After(end) {
			sampleT = end
		}
		curLong, err := e.longitude(body, sampleT)
		if err != nil {
			return nil, err
		}
		curSign := zodiac.SignIndexOf(curLong)

		if curSign != prevSign {
			target := float64(minSignStep(prevSign, curSign)) * 30
			anchor := prevLong
			var capturedErr error
			f := func(t time.Time) float64 {
				raw, err := e.longitude(body, t)
				if err != nil {
					capturedErr = err
					return 0
				}
				return boundary.UnwrapNear(raw, anchor) - target
			}
			instant, ferr := boundary.Find(prevT, 3600, f)
			if ferr == nil && capturedErr != nil {
				ferr = capturedErr
			}
			if ferr == nil && !instant.After(end) {
				out = append(out, Ingress{
					Instant:  instant,
					FromSign: zodiac.SignName(prevSign),
					ToSign:   zodiac.SignName(curSign),
				})
			}
		}

		prevT, prevLong, prevSign = sampleT, curLong, curSign
		if sampleT.Equal(end) {
			break
		}
	}
	return out, nil
}

// minSignStep picks the nearest upward sign boundary target (in whole
// signs from 0) that a longitude must cross to move from 'from' to 'to',
// used to seed the root-bracketing target for a fast-body ingress.
func minSignStep(from, to int) int {
	step := to - from
	if step <= 0 {
		step += 12
	}
	return from + step
}
