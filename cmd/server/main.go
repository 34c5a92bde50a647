package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"vedicengine/internal/config"
	"vedicengine/internal/ephemeris"
	"vedicengine/internal/geocoding"
	"vedicengine/internal/httpapi"
	"vedicengine/internal/logging"
	"vedicengine/internal/report"
)

func main() {
	cfg := config.Load()

	logger := logging.NewLogger()
	logger.Info().
		Str("version", "v1.0.0").
		Str("service", "vedicengine").
		Msg("starting Vedic astrology engine")

	adapter, err := ephemeris.New(cfg.Ephemeris.DataPath, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to initialize Swiss Ephemeris")
		log.Fatalf("failed to initialize Swiss Ephemeris: %v", err)
	}
	logger.Info().Msg("Swiss Ephemeris initialized (Lahiri sidereal)")

	geocoder, err := geocoding.New(logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to initialize geocoding service")
		log.Fatalf("failed to initialize geocoding service: %v", err)
	}
	defer geocoder.Close()
	logger.Info().Msg("geocoding service initialized")

	reportEngine := report.New(adapter, cfg.Strength)

	router := gin.Default()
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Vedic astrology engine is running",
			"version": "v1.0.0",
		})
	})

	httpapi.RegisterRoutes(router, reportEngine, geocoder, logger)

	port := cfg.Server.Port
	logger.Info().
		Str("port", port).
		Str("health_endpoint", "http://localhost:"+port+"/health").
		Str("api_endpoint", "http://localhost:"+port+"/api/v1/chart").
		Msg("server starting")

	if err := router.Run(":" + port); err != nil {
		logger.Error().Err(err).Msg("failed to run server")
		log.Fatalf("failed to run server: %v", err)
	}
}
