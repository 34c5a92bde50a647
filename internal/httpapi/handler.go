package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"vedicengine/internal/ephemeris"
	"vedicengine/internal/geocoding"
	"vedicengine/internal/logging"
	"vedicengine/internal/report"
	"vedicengine/pkg/apperr"
)

// ChartRequest is the POST /api/v1/chart request body. Either City or
// the (Latitude, Longitude, Timezone) triple must be supplied; City
// takes priority when both are present.
type ChartRequest struct {
	Date string `json:"date" binding:"required"` // YYYY-MM-DD
	Time string `json:"time" binding:"required"` // HH:MM[:SS]

	City      string  `json:"city,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`

	IncludeTransits bool   `json:"include_transits,omitempty"`
	TransitsFrom    string `json:"transits_from,omitempty"`
	TransitsTo      string `json:"transits_to,omitempty"`
}

// ChartHandler serves the core report engine over HTTP.
type ChartHandler struct {
	engine   *report.Engine
	geocoder *geocoding.Service
	logger   *logging.Logger
}

// NewChartHandler wires a report engine and an optional geocoder (nil
// disables city-name resolution; callers must then supply coordinates
// directly) behind the /chart endpoint.
func NewChartHandler(engine *report.Engine, geocoder *geocoding.Service, logger *logging.Logger) *ChartHandler {
	return &ChartHandler{engine: engine, geocoder: geocoder, logger: logger}
}

// HandleChart handles POST /api/v1/chart.
func (h *ChartHandler) HandleChart(c *gin.Context) {
	var req ChartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error().Err(err).Str("endpoint", "chart").Msg("invalid request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	coreReq, err := h.resolveRequest(&req)
	if err != nil {
		h.logger.Error().Err(err).Str("endpoint", "chart").Msg("failed to resolve birth event")
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	result, err := h.engine.Generate(*coreReq)
	if err != nil {
		h.logger.Error().Err(err).Str("endpoint", "chart").Msg("failed to generate report")
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// resolveRequest turns the wire request into the core's Request,
// resolving a city name to coordinates first when one is given.
func (h *ChartHandler) resolveRequest(req *ChartRequest) (*report.Request, error) {
	lat, lon, tz := req.Latitude, req.Longitude, req.Timezone

	if req.City != "" {
		if h.geocoder == nil {
			return nil, apperr.Input("city-name resolution is not available on this server")
		}
		city, err := h.geocoder.Lookup(req.City)
		if err != nil {
			return nil, err
		}
		lat, lon, tz = city.Latitude, city.Longitude, city.Timezone
	}
	if tz == "" {
		return nil, apperr.Input("timezone is required when city is not supplied")
	}

	year, month, day, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	hour, minute, second, err := parseTime(req.Time)
	if err != nil {
		return nil, err
	}

	local, _, err := ephemeris.ResolveCivilTime(year, month, day, hour, minute, second, tz)
	if err != nil {
		return nil, err
	}

	out := &report.Request{
		Local:           local,
		Latitude:        lat,
		Longitude:       lon,
		Timezone:        tz,
		IncludeTransits: req.IncludeTransits,
	}
	if req.IncludeTransits {
		from, err := parseOptionalDate(req.TransitsFrom, local)
		if err != nil {
			return nil, err
		}
		to, err := parseOptionalDate(req.TransitsTo, local.AddDate(1, 0, 0))
		if err != nil {
			return nil, err
		}
		out.TransitsFrom = from
		out.TransitsTo = to
	}
	return out, nil
}

func parseDate(s string) (year, month, day int, err error) {
	t, parseErr := time.Parse("2006-01-02", s)
	if parseErr != nil {
		return 0, 0, 0, apperr.Input("invalid date %q: must be YYYY-MM-DD", s)
	}
	return t.Year(), int(t.Month()), t.Day(), nil
}

func parseTime(s string) (hour, minute, second int, err error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, parseErr := time.Parse(layout, s); parseErr == nil {
			return t.Hour(), t.Minute(), t.Second(), nil
		}
	}
	return 0, 0, 0, apperr.Input("invalid time %q: must be HH:MM or HH:MM:SS", s)
}

func parseOptionalDate(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return fallback, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, apperr.Input("invalid date %q: must be YYYY-MM-DD", s)
	}
	return t, nil
}
