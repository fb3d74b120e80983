package api

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"menuforge/internal/extract"
	"menuforge/internal/ingest"
	"menuforge/internal/models"
)

// GetMenu returns the restaurant's current items and customisations
func (s *Server) GetMenu(c *gin.Context) {
	payload, err := s.store.FetchMenu(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.MenuResponse{Success: false, Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, payload)
}

// ReplaceMenu swaps the restaurant's menu for the submitted payload
func (s *Server) ReplaceMenu(c *gin.Context) {
	var payload models.MenuPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, models.MenuResponse{Success: false, Error: err.Error()})
		return
	}

	if err := s.store.ReplaceMenu(c.Request.Context(), c.Param("id"), payload); err != nil {
		s.monitor.MenuWritten("error")
		c.JSON(http.StatusUnprocessableEntity, models.MenuResponse{Success: false, Error: err.Error()})
		return
	}

	s.monitor.MenuWritten("ok")
	c.JSON(http.StatusOK, models.MenuResponse{Success: true})
}

// IngestDocument runs the full ingestion pipeline on an uploaded menu
// document. Only one ingestion per restaurant runs at a time.
func (s *Server) IngestDocument(c *gin.Context) {
	restaurantID := c.Param("id")

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.MenuResponse{Success: false, Error: "missing multipart field \"file\""})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.MenuResponse{Success: false, Error: err.Error()})
		return
	}

	if !s.beginIngest(restaurantID) {
		c.JSON(http.StatusConflict, models.MenuResponse{
			Success: false,
			Error:   "an import is already running for this restaurant",
		})
		return
	}
	defer s.endIngest(restaurantID)

	runID := uuid.NewString()
	pipeline := s.newPipeline(restaurantID, runID)

	items, err := pipeline.Run(c.Request.Context(), restaurantID, ingest.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})
	s.monitor.RunFinished(runID)
	if err != nil {
		s.monitor.IngestRunFinished("error")
		c.JSON(statusForIngestError(err), models.MenuResponse{Success: false, Error: err.Error()})
		return
	}

	s.monitor.IngestRunFinished("ok")
	c.JSON(http.StatusOK, gin.H{"success": true, "menuItems": items})
}

func (s *Server) newPipeline(restaurantID, runID string) *ingest.Pipeline {
	opts := s.ingestOpts
	opts.Progress = func(ev ingest.ProgressEvent) {
		s.monitor.StageEntered(runID, ev.StageName)
		s.hub.Broadcast(restaurantID, ev)
	}
	return ingest.New(s.generator, s.store, opts)
}

// statusForIngestError maps pipeline failures onto HTTP statuses so
// the editor can tell user mistakes from service trouble.
func statusForIngestError(err error) int {
	var (
		unsupported *extract.UnsupportedFileTypeError
		empty       *extract.EmptyExtractionError
		parse       *ingest.StructuringParseError
		integrity   *ingest.EnhancementIntegrityError
		timeout     *ingest.TimeoutError
	)
	switch {
	case errors.As(err, &unsupported), errors.As(err, &empty):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &parse), errors.As(err, &integrity):
		return http.StatusBadGateway
	case errors.As(err, &timeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// UploadImage stores a menu item image and returns its public URL
func (s *Server) UploadImage(c *gin.Context) {
	if s.uploadDir == "" {
		c.JSON(http.StatusNotImplemented, models.UploadResponse{Success: false, Error: "image uploads are not configured"})
		return
	}

	restaurantID := c.Param("id")
	itemID := c.Param("itemID")

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.UploadResponse{Success: false, Error: "missing multipart field \"image\""})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	name := fmt.Sprintf("%s-%s%s", itemID, uuid.NewString(), ext)
	dir := filepath.Join(s.uploadDir, restaurantID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, models.UploadResponse{Success: false, Error: err.Error()})
		return
	}

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.UploadResponse{Success: false, Error: err.Error()})
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		c.JSON(http.StatusInternalServerError, models.UploadResponse{Success: false, Error: err.Error()})
		return
	}

	fileURL := fmt.Sprintf("/uploads/%s/%s", restaurantID, name)
	log.Printf("api: stored image for restaurant %s item %s at %s", restaurantID, itemID, fileURL)
	c.JSON(http.StatusOK, models.UploadResponse{Success: true, FileURL: fileURL})
}
