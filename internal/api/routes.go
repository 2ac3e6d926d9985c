// Package api provides the REST API server.
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/user/crypto-advisor/internal/storage"
)

// AdviceStore is the read-side dependency of the server.
type AdviceStore interface {
	LastAdvises(ctx context.Context, limit int) ([]storage.Advice, error)
}

// Server represents the API server. The read path is fully independent of
// the generation pipeline: it holds only a store handle and never shares
// in-memory state with an engine.
type Server struct {
	router *gin.Engine
	store  AdviceStore
	log    zerolog.Logger
}

// NewServer creates a new API server.
func NewServer(store AdviceStore, log zerolog.Logger, production bool) *Server {
	s := &Server{
		store: store,
		log:   log,
	}
	s.setupRouter(production)
	return s
}

// setupRouter sets up the Gin router with all routes.
func (s *Server) setupRouter(production bool) {
	if production {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	// Enable CORS for the dashboard consumer
	r.Use(corsMiddleware())

	r.GET("/api/health", s.handleHealth)
	r.GET("/api/get_last_10_advises", s.handleGetLastAdvises)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "unknown path"})
	})

	s.router = r
}

// Router returns the Gin router.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the server.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// corsMiddleware permits unauthenticated cross-origin reads, which the
// dashboard needs in non-production deployments.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Accept, Content-Type")
		c.Header("Access-Control-Max-Age", "600")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
