package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/user/crypto-advisor/internal/storage"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// handleHealth handles the health check endpoint.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// handleGetLastAdvises serves the most recent stored recommendations,
// newest first. Internal faults collapse into the generic envelope; no
// storage detail leaks to the dashboard.
func (s *Server) handleGetLastAdvises(c *gin.Context) {
	advises, err := s.store.LastAdvises(c.Request.Context(), storage.QueryLimit)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to fetch advises")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "unexpected database error",
		})
		return
	}

	c.JSON(http.StatusOK, advises)
}
