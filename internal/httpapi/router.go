// Package httpapi exposes the core engine over HTTP: one handler behind
// gin, with the same request-logging and CORS middleware shape the
// service this engine is descended from uses.
package httpapi

import (
	"time"

	"github.com/gin-gonic/gin"

	"vedicengine/internal/geocoding"
	"vedicengine/internal/logging"
	"vedicengine/internal/report"
)

// RegisterRoutes mounts the chart endpoint and its middleware onto router.
func RegisterRoutes(router *gin.Engine, engine *report.Engine, geocoder *geocoding.Service, logger *logging.Logger) {
	router.Use(loggingMiddleware(logger))
	router.Use(corsMiddleware())

	handler := NewChartHandler(engine, geocoder, logger)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/chart", handler.HandleChart)
	}
}

// loggingMiddleware logs one structured line per request.
func loggingMiddleware(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.RequestLogger().
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Str("ip", c.ClientIP()).
			Msg("HTTP request")
	}
}

// corsMiddleware allows any origin; the core has no session state or
// cookies to protect, so a permissive policy mirrors the ambient-stack
// default rather than inventing an allowlist the spec never asked for.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
