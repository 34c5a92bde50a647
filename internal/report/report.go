// Package report composes C1-C10's outputs into the full birth report
// the service hands back over HTTP: one Dn chart per divisional chart
// in varga.AllowedN, plus the Pañcāṅga, Daśā, transit, yoga, and
// strength sections layered on top of D1.
package report

import (
	"encoding/json"
	"strconv"
	"time"

	"vedicengine/internal/chart"
	"vedicengine/internal/config"
	"vedicengine/internal/dasha"
	"vedicengine/internal/ephemeris"
	"vedicengine/internal/panchanga"
	"vedicengine/internal/strength"
	"vedicengine/internal/transit"
	"vedicengine/internal/varga"
	"vedicengine/internal/yoga"
	"vedicengine/pkg/apperr"
)

// Request is one fully-resolved birth event: local wall-clock time
// already pinned to tz, plus the geographic position Houses and
// Pañcāṅga are computed against.
type Request struct {
	Local     time.Time
	Latitude  float64
	Longitude float64
	Timezone  string

	// IncludeTransits gates the C8 section (spec §6: "on request"),
	// since a transit scan is the one component whose cost scales with
	// an externally supplied window rather than the birth moment alone.
	IncludeTransits bool
	TransitsFrom    time.Time
	TransitsTo      time.Time
}

// Report is the full §6 JSON contract: one Chart per divisional chart
// label, plus the shared Pañcāṅga/Daśā/yoga/strength sections that only
// make sense against D1.
type Report struct {
	Charts map[string]*chart.Chart

	Panchanga *panchanga.Snapshot
	Dasha     []dasha.Period
	Transits  map[string][]transit.Ingress
	Yogas     []yoga.Yoga
	Strength  *strength.Result
}

// MarshalJSON flattens the per-division charts into top-level "D1".."D60"
// keys alongside the panchanga/dasha/transits/yogas/strength sections,
// the shape consumers key every chart lookup on. encoding/json sorts map
// keys, so the same report always serializes byte-identically.
func (r *Report) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(r.Charts)+5)
	for label, c := range r.Charts {
		out[label] = c
	}
	out["panchanga"] = r.Panchanga
	out["dasha"] = r.Dasha
	if r.Transits != nil {
		out["transits"] = r.Transits
	}
	out["yogas"] = r.Yogas
	out["strength"] = r.Strength
	return json.Marshal(out)
}

// Engine wires the ten core packages together behind one call.
type Engine struct {
	adapter     *ephemeris.Adapter
	panchanga   *panchanga.Engine
	transit     *transit.Engine
	strengthCfg config.StrengthConfig
}

// New builds a report engine against a single shared ephemeris adapter,
// per §5's concurrency rule that the adapter, not any downstream
// package, owns the one swephgo handle.
func New(adapter *ephemeris.Adapter, strengthCfg config.StrengthConfig) *Engine {
	return &Engine{
		adapter:     adapter,
		panchanga:   panchanga.New(adapter),
		transit:     transit.New(adapter),
		strengthCfg: strengthCfg,
	}
}

// Generate produces the full report for one birth event.
func (e *Engine) Generate(req Request) (*Report, error) {
	utc := req.Local.UTC()
	jd := ephemeris.JulianDay(req.Local)

	ascLongitude, err := e.adapter.Ascendant(jd, req.Latitude, req.Longitude)
	if err != nil {
		return nil, err
	}
	planetPositions, err := e.adapter.AllBodies(jd)
	if err != nil {
		return nil, err
	}

	d1Input := chart.D1Input{
		AscendantLongitude: ascLongitude,
		Planets:            planetPositions,
	}

	charts := make(map[string]*chart.Chart, len(varga.AllowedN))
	for _, n := range varga.AllowedN {
		c, err := chart.Build(d1Input, n)
		if err != nil {
			return nil, err
		}
		charts[chartLabel(n)] = c
	}

	d1Chart, ok := charts[chartLabel(1)]
	if !ok {
		return nil, apperr.InvariantViolation("D1 chart missing from computed set")
	}

	snapshot, err := e.panchanga.Compute(req.Local, req.Latitude, req.Longitude, req.Timezone)
	if err != nil {
		return nil, err
	}

	moon, ok := planetPositions[ephemeris.Moon]
	if !ok {
		return nil, apperr.InvariantViolation("Moon position missing from ephemeris output")
	}
	dashaPeriods, err := dasha.Generate(moon.Longitude, utc, totalDashaYears)
	if err != nil {
		return nil, err
	}

	yogas := yoga.Detect(d1Chart)

	strengthResult, err := strength.Compute(d1Chart, e.strengthCfg)
	if err != nil {
		return nil, err
	}

	var transits map[string][]transit.Ingress
	if req.IncludeTransits {
		transits, err = e.computeTransits(req.TransitsFrom, req.TransitsTo)
		if err != nil {
			return nil, err
		}
	}

	return &Report{
		Charts:    charts,
		Panchanga: snapshot,
		Dasha:     dashaPeriods,
		Transits:  transits,
		Yogas:     yogas,
		Strength:  strengthResult,
	}, nil
}

// totalDashaYears requests a full 120-year Vimśottarī cycle (spec §8
// testable property #8); Generate trims nothing, it only ever extends
// to cover at least this many years.
const totalDashaYears = 120.0

func (e *Engine) computeTransits(from, to time.Time) (map[string][]transit.Ingress, error) {
	out := make(map[string][]transit.Ingress, len(ephemeris.NineBodies))
	for _, b := range ephemeris.NineBodies {
		ingresses, err := e.transit.SignIngresses(b, from, to)
		if err != nil {
			return nil, err
		}
		out[b.String()] = ingresses
	}
	return out, nil
}

// chartLabel formats the Dn label the §6 contract keys every chart by.
func chartLabel(n int) string {
	return "D" + strconv.Itoa(n)
}
