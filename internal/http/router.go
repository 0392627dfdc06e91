package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"go.ngs.io/ephemeris-api/internal/logging"
	"go.ngs.io/ephemeris-api/internal/observability"
	"go.ngs.io/ephemeris-api/internal/usecase"
)

// RouterOptions carries the cross-cutting pieces wired around the handlers.
type RouterOptions struct {
	// AllowedOrigins restricts CORS; empty allows all origins.
	AllowedOrigins []string
	Logger         logging.Logger
	Metrics        *observability.HTTPCollector
}

// SetupRouter creates and configures the Gin router.
func SetupRouter(ephemerisUC *usecase.EphemerisUseCase, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(opts.Logger))
	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware())
	}

	// Setup CORS middleware.
	corsConfig := cors.DefaultConfig()
	if len(opts.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = opts.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.ExposeHeaders = []string{logging.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	// Create handler.
	handler := NewHandler(ephemerisUC)

	// API v1 routes.
	v1 := router.Group("/v1")
	v1.GET("/time", handler.GetTime)
	v1.GET("/planets", handler.GetPlanets)
	v1.GET("/planets/:number", handler.GetPlanet)
	v1.GET("/bodies", handler.GetBodies)

	bodies := v1.Group("/bodies/:body")
	bodies.GET("/position", handler.GetPosition)
	bodies.GET("/distance", handler.GetDistance)

	v1.GET("/mars/sol", handler.GetMarsSol)

	// Health check and metrics.
	router.GET("/health", handler.HealthCheck)
	if opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	return router
}
