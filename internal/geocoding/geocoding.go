// Package geocoding resolves a city name to the (latitude, longitude,
// IANA timezone) triple the core needs for a birth event, backed by an
// embedded GeoNames-format extract loaded into an in-memory SQLite
// database at startup.
package geocoding

import (
	"database/sql"
	_ "embed"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"

	"vedicengine/internal/logging"
	"vedicengine/pkg/apperr"
)

//go:embed cities.tsv
var citiesData string

// City is one resolved location.
type City struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// record mirrors one line of the embedded GeoNames-format extract:
// geonameid, name, asciiname, alternatenames, country, latitude,
// longitude, population, timezone.
type record struct {
	geonameID      int
	name           string
	asciiName      string
	alternateNames string
	country        string
	latitude       float64
	longitude      float64
	population     int
	timezone       string
}

// Service is a local city lookup backed by an in-memory SQLite database.
type Service struct {
	db     *sql.DB
	logger *logging.Logger
}

// New builds a Service and loads the embedded city extract into an
// in-memory database. Unlike a remote geocoder, this never blocks on
// network I/O and carries no external dependency at request time.
func New(logger *logging.Logger) (*Service, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, apperr.EphemerisUnavailable(err, "failed to open geocoding database")
	}

	s := &Service{db: db, logger: logger}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Service) load() error {
	const createTableSQL = `
		CREATE TABLE cities (
			geonameid      INTEGER PRIMARY KEY,
			name           TEXT NOT NULL,
			asciiname      TEXT NOT NULL,
			alternatenames TEXT,
			country        TEXT NOT NULL,
			latitude       REAL NOT NULL,
			longitude      REAL NOT NULL,
			population     INTEGER,
			timezone       TEXT NOT NULL
		);
		CREATE INDEX idx_city_name           ON cities(name);
		CREATE INDEX idx_city_asciiname       ON cities(asciiname);
		CREATE INDEX idx_city_alternatenames  ON cities(alternatenames);
	`
	if _, err := s.db.Exec(createTableSQL); err != nil {
		return apperr.EphemerisUnavailable(err, "failed to create cities table")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return apperr.EphemerisUnavailable(err, "failed to begin geocoding load transaction")
	}

	const insertSQL = `INSERT INTO cities
		(geonameid, name, asciiname, alternatenames, country, latitude, longitude, population, timezone)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		tx.Rollback()
		return apperr.EphemerisUnavailable(err, "failed to prepare geocoding insert")
	}
	defer stmt.Close()

	loaded := 0
	for _, line := range strings.Split(citiesData, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rec, err := parseLine(line)
		if err != nil {
			if s.logger != nil {
				s.logger.Debug().Err(err).Str("line", line).Msg("skipping malformed city row")
			}
			continue
		}
		if _, err := stmt.Exec(rec.geonameID, rec.name, rec.asciiName, rec.alternateNames,
			rec.country, rec.latitude, rec.longitude, rec.population, rec.timezone); err != nil {
			continue
		}
		loaded++
	}

	if err := tx.Commit(); err != nil {
		return apperr.EphemerisUnavailable(err, "failed to commit geocoding load")
	}

	if s.logger != nil {
		s.logger.Info().Int("cities_loaded", loaded).Msg("geocoding database populated")
	}
	return nil
}

// parseLine parses one tab-separated GeoNames-format row.
func parseLine(line string) (record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 9 {
		return record{}, apperr.Input("malformed city row: expected 9 fields, got %d", len(fields))
	}

	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return record{}, apperr.Input("invalid geoname id %q: %v", fields[0], err)
	}
	lat, err := strconv.ParseFloat(fields[5], 64)
	if err != nil {
		return record{}, apperr.Input("invalid latitude %q: %v", fields[5], err)
	}
	lon, err := strconv.ParseFloat(fields[6], 64)
	if err != nil {
		return record{}, apperr.Input("invalid longitude %q: %v", fields[6], err)
	}
	population, _ := strconv.Atoi(fields[7])

	return record{
		geonameID:      id,
		name:           fields[1],
		asciiName:      fields[2],
		alternateNames: fields[3],
		country:        fields[4],
		latitude:       lat,
		longitude:      lon,
		population:     population,
		timezone:       fields[8],
	}, nil
}

// queries tries progressively fuzzier matches, most-specific first,
// breaking ties by population so "Paris" resolves to the French capital
// rather than Paris, Texas.
var queries = []string{
	`SELECT name, country, latitude, longitude, timezone FROM cities
	 WHERE LOWER(name) = LOWER(?) ORDER BY population DESC LIMIT 1`,
	`SELECT name, country, latitude, longitude, timezone FROM cities
	 WHERE LOWER(asciiname) = LOWER(?) ORDER BY population DESC LIMIT 1`,
	`SELECT name, country, latitude, longitude, timezone FROM cities
	 WHERE LOWER(alternatenames) LIKE LOWER(?) ORDER BY population DESC LIMIT 1`,
	`SELECT name, country, latitude, longitude, timezone FROM cities
	 WHERE LOWER(name) LIKE LOWER(?) ORDER BY population DESC LIMIT 1`,
}

// Lookup resolves a free-form city name. Unlike the ambient-stack
// geocoder this engine is descended from, an unresolved name fails with
// KindInput rather than silently defaulting to a fallback city: a
// mis-resolved birth location makes every downstream chart wrong in a
// way that's invisible to the caller, so the contract here is fail
// closed, not fail quiet.
func (s *Service) Lookup(cityName string) (City, error) {
	exact := cityName
	fuzzy := "%" + cityName + "%"
	args := []interface{}{exact, exact, fuzzy, fuzzy}

	for i, q := range queries {
		var c City
		if err := s.db.QueryRow(q, args[i]).Scan(&c.Name, &c.Country, &c.Latitude, &c.Longitude, &c.Timezone); err == nil {
			return c, nil
		}
	}
	return City{}, apperr.Input("no city matching %q in the geocoding database", cityName)
}

// Close releases the in-memory database.
func (s *Service) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
