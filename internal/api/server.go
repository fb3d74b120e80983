// Package api exposes the menu service over HTTP: menu read/replace,
// document ingestion with WebSocket progress, and image upload.
package api

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"menuforge/internal/generation"
	"menuforge/internal/ingest"
	"menuforge/internal/models"
	"menuforge/internal/monitoring"
)

// MenuStore is the persistence surface the handlers need
type MenuStore interface {
	ingest.MenuReplacer
	FetchMenu(ctx context.Context, restaurantID string) (models.MenuPayload, error)
}

// Server wires the HTTP routes to the menu repository and the
// ingestion pipeline.
type Server struct {
	Router *gin.Engine

	store     MenuStore
	generator generation.TextGenerator
	monitor   *monitoring.Monitor
	hub       *ProgressHub

	ingestOpts ingest.Options
	uploadDir  string

	mu        sync.Mutex
	ingesting map[string]bool
}

// Options configures the server
type Options struct {
	UploadDir    string
	Model        string
	MaxTokens    int
	Temperature  float64
	StageTimeout time.Duration
}

// NewServer creates the server and registers all routes
func NewServer(store MenuStore, generator generation.TextGenerator, monitor *monitoring.Monitor, opts Options) *Server {
	s := &Server{
		Router:    gin.Default(),
		store:     store,
		generator: generator,
		monitor:   monitor,
		hub:       NewProgressHub(),
		ingestOpts: ingest.Options{
			Model:        opts.Model,
			MaxTokens:    opts.MaxTokens,
			Temperature:  opts.Temperature,
			StageTimeout: opts.StageTimeout,
		},
		uploadDir: opts.UploadDir,
		ingesting: make(map[string]bool),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.Router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "message": "menuforge API is running"})
	})

	if s.uploadDir != "" {
		s.Router.Static("/uploads", s.uploadDir)
	}

	v1 := s.Router.Group("/api/v1")
	{
		v1.GET("/restaurants/:id/menu", s.GetMenu)
		v1.PUT("/restaurants/:id/menu", s.ReplaceMenu)
		v1.POST("/restaurants/:id/menu/ingest", s.IngestDocument)
		v1.GET("/restaurants/:id/menu/ingest/progress", s.hub.Handle)
		v1.POST("/restaurants/:id/items/:itemID/image", s.UploadImage)
	}
}

// beginIngest marks a restaurant's ingestion as in flight. It returns
// false when one is already running, mirroring the editor disabling
// its upload control while a pipeline runs.
func (s *Server) beginIngest(restaurantID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ingesting[restaurantID] {
		return false
	}
	s.ingesting[restaurantID] = true
	return true
}

func (s *Server) endIngest(restaurantID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ingesting, restaurantID)
}
