// Package server exposes the extraction pipeline over HTTP.
package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/textcal/textcal/internal/logger"
	"github.com/textcal/textcal/pkg/event"
)

// Pipeline is the extraction surface the server drives. It is an
// interface so handler tests run against deterministic stubs.
type Pipeline interface {
	ExtractEvents(ctx context.Context, text string, opts event.Options) ([]event.ExtractedEventData, error)
	ExtractEventDetails(ctx context.Context, text string, opts event.Options) (*event.ExtractedEventData, error)
}

// Config holds server settings.
type Config struct {
	Addr string
	// Production suppresses the debug response field and switches gin to
	// release mode.
	Production bool
}

// Server wraps the gin engine and the pipeline.
type Server struct {
	cfg      Config
	pipeline Pipeline
	engine   *gin.Engine
}

// New creates a Server around the given pipeline.
func New(pipeline Pipeline, cfg Config) *Server {
	if cfg.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:      cfg,
		pipeline: pipeline,
		engine:   gin.New(),
	}

	s.engine.Use(gin.Recovery(), requestID())

	s.engine.GET("/healthz", s.handleHealth)
	api := s.engine.Group("/api/events")
	api.GET("/parse", s.handleUsage)
	api.POST("/parse", s.handleParse)
	api.POST("/parse-one", s.handleParseOne)

	return s
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts serving on the configured address.
func (s *Server) Run() error {
	logger.Info("server listening", "addr", s.cfg.Addr, "production", s.cfg.Production)
	return s.engine.Run(s.cfg.Addr)
}

// requestID tags every request with a correlation id.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-ID", id)
		c.Set("request_id", id)
		c.Next()
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleUsage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":     "textcal parse events API",
		"methods":     []string{"POST"},
		"description": "Send text to extract calendar events",
		"example": gin.H{
			"text": "Meeting tomorrow at 2pm",
			"options": gin.H{
				"timezone":    "America/New_York",
				"currentDate": "2025-06-11T00:00:00Z",
			},
		},
	})
}
