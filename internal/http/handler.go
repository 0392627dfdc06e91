package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"go.ngs.io/ephemeris-api/internal/domain"
	"go.ngs.io/ephemeris-api/internal/usecase"
)

// Handler handles HTTP requests for ephemeris computations.
type Handler struct {
	ephemerisUC *usecase.EphemerisUseCase
}

// NewHandler creates a new HTTP handler.
func NewHandler(ephemerisUC *usecase.EphemerisUseCase) *Handler {
	return &Handler{
		ephemerisUC: ephemerisUC,
	}
}

// GetTime handles GET /v1/time.
func (h *Handler) GetTime(c *gin.Context) {
	instant, err := parseInstant(c, "jd")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.ephemerisUC.ConvertTime(c.Request.Context(), usecase.TimeRequest{
		Instant: instant,
		Scale:   c.Query("scale"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetPlanets handles GET /v1/planets.
func (h *Handler) GetPlanets(c *gin.Context) {
	planets := h.ephemerisUC.Planets()
	c.JSON(http.StatusOK, gin.H{
		"planets": planets,
		"count":   len(planets),
	})
}

// GetPlanet handles GET /v1/planets/:number.
func (h *Handler) GetPlanet(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid planet number: %v", err)})
		return
	}

	planet, err := h.ephemerisUC.Planet(number)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, planet)
}

// GetBodies handles GET /v1/bodies.
func (h *Handler) GetBodies(c *gin.Context) {
	bodies, err := h.ephemerisUC.Bodies()
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bodies": bodies,
		"count":  len(bodies),
	})
}

// GetPosition handles GET /v1/bodies/:body/position.
func (h *Handler) GetPosition(c *gin.Context) {
	instant, err := parseInstant(c, "jd_tt")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.ephemerisUC.Position(c.Request.Context(), usecase.PositionRequest{
		Body:    c.Param("body"),
		Instant: instant,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetDistance handles GET /v1/bodies/:body/distance.
func (h *Handler) GetDistance(c *gin.Context) {
	var coords [4]float64
	for i, name := range []string{"lat1", "lon1", "lat2", "lon2"} {
		raw := c.Query(name)
		if raw == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": name + " parameter is required"})
			return
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid %s: %v", name, err)})
			return
		}
		coords[i] = v
	}

	response, err := h.ephemerisUC.Distance(c.Request.Context(), usecase.DistanceRequest{
		Body: c.Param("body"),
		Lat1: coords[0], Lon1: coords[1],
		Lat2: coords[2], Lon2: coords[3],
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetMarsSol handles GET /v1/mars/sol.
func (h *Handler) GetMarsSol(c *gin.Context) {
	instant, err := parseInstant(c, "jd")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.ephemerisUC.MarsSol(c.Request.Context(), instant)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// parseInstant reads the "time" (RFC3339) and Julian Date query parameters.
// Mutual exclusion is checked by the use case.
func parseInstant(c *gin.Context, jdParam string) (usecase.Instant, error) {
	var instant usecase.Instant

	if raw := c.Query("time"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return instant, fmt.Errorf("invalid time (expected RFC3339): %w", err)
		}
		instant.Time = &t
	}

	if raw := c.Query(jdParam); raw != "" {
		jd, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return instant, fmt.Errorf("invalid %s: %w", jdParam, err)
		}
		instant.JD = &jd
	}

	return instant, nil
}

// writeError maps domain errors onto HTTP status codes.
func writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNoMatch), errors.Is(err, domain.ErrDataNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidArgument):
		status = http.StatusBadRequest
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal error"
	}
	c.JSON(status, gin.H{"error": message})
}
