package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menuforge/internal/generation"
	"menuforge/internal/models"
	"menuforge/internal/monitoring"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubStore struct {
	payload  models.MenuPayload
	fetchErr error

	replaced   []models.MenuPayload
	replaceErr error
}

func (s *stubStore) FetchMenu(ctx context.Context, restaurantID string) (models.MenuPayload, error) {
	return s.payload, s.fetchErr
}

func (s *stubStore) ReplaceMenu(ctx context.Context, restaurantID string, payload models.MenuPayload) error {
	if s.replaceErr != nil {
		return s.replaceErr
	}
	s.replaced = append(s.replaced, payload)
	return nil
}

type stubGenerator struct {
	responses []string

	started chan struct{} // closed on first call when set
	release chan struct{} // blocks completion when set
}

func (g *stubGenerator) Complete(ctx context.Context, req generation.CompletionRequest) (string, error) {
	if g.started != nil {
		select {
		case <-g.started:
		default:
			close(g.started)
		}
	}
	if g.release != nil {
		select {
		case <-g.release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if len(g.responses) == 0 {
		return "", errors.New("stub generator exhausted")
	}
	response := g.responses[0]
	g.responses = g.responses[1:]
	return response, nil
}

func newTestServer(store *stubStore, gen *stubGenerator, opts Options) *Server {
	monitor := monitoring.NewMonitor(prometheus.NewRegistry())
	return NewServer(store, gen, monitor, opts)
}

func multipartBody(t *testing.T, field, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := make(map[string][]string)
	header["Content-Disposition"] = []string{
		`form-data; name="` + field + `"; filename="` + filename + `"`,
	}
	header["Content-Type"] = []string{contentType}
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestHealth(t *testing.T) {
	server := newTestServer(&stubStore{}, &stubGenerator{}, Options{})

	rec := httptest.NewRecorder()
	server.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestGetMenu(t *testing.T) {
	store := &stubStore{payload: models.MenuPayload{
		MenuItems: []models.MenuItem{{
			ID: 1, Name: "Dal", Price: 40,
			CaffeineLevel: models.CaffeineNone, SufficientFor: 1, Available: true,
		}},
		Customisations: []models.ItemCustomisation{},
	}}
	server := newTestServer(store, &stubGenerator{}, Options{})

	rec := httptest.NewRecorder()
	server.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/restaurants/r1/menu", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var payload models.MenuPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.MenuItems, 1)
	assert.Equal(t, "Dal", payload.MenuItems[0].Name)
	assert.NotNil(t, payload.Customisations)
}

func TestReplaceMenu(t *testing.T) {
	store := &stubStore{}
	server := newTestServer(store, &stubGenerator{}, Options{})

	body := `{"menuItems":[{"id":1,"name":"Dal","price":40,"caffeineLevel":"none","sufficientFor":1,"available":true}],"customisations":[]}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/restaurants/r1/menu", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, store.replaced, 1)
	assert.Equal(t, "Dal", store.replaced[0].MenuItems[0].Name)
}

func TestReplaceMenuBadJSON(t *testing.T) {
	server := newTestServer(&stubStore{}, &stubGenerator{}, Options{})

	req := httptest.NewRequest(http.MethodPut, "/api/v1/restaurants/r1/menu", strings.NewReader("{broken"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReplaceMenuStoreFailure(t *testing.T) {
	server := newTestServer(&stubStore{replaceErr: errors.New("constraint violated")}, &stubGenerator{}, Options{})

	req := httptest.NewRequest(http.MethodPut, "/api/v1/restaurants/r1/menu", strings.NewReader(`{"menuItems":[],"customisations":[]}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "constraint violated")
}

func TestIngestDocument(t *testing.T) {
	store := &stubStore{}
	gen := &stubGenerator{responses: []string{
		`[{"id":1,"name":"Dal","price":40}]`,
		`[{"id":1,"name":"Dal","price":40,"description":"lentils","category":"Mains",
		   "spicinessLevel":2,"sweetnessLevel":0,"dietaryPreference":["vegan"],
		   "healthinessScore":4,"caffeineLevel":"none","sufficientFor":1,"available":true}]`,
	}}
	server := newTestServer(store, gen, Options{})

	body, contentType := multipartBody(t, "file", "menu.txt", "text/plain", []byte("Dal - 40"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/restaurants/r1/menu/ingest", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	server.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Len(t, store.replaced, 1)
	require.Len(t, store.replaced[0].MenuItems, 1)
	assert.Equal(t, "Dal", store.replaced[0].MenuItems[0].Name)
	assert.Empty(t, store.replaced[0].Customisations)
}

func TestIngestDocumentMissingFile(t *testing.T) {
	server := newTestServer(&stubStore{}, &stubGenerator{}, Options{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/restaurants/r1/menu/ingest", nil)
	rec := httptest.NewRecorder()
	server.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIngestDocumentUnsupportedType(t *testing.T) {
	server := newTestServer(&stubStore{}, &stubGenerator{}, Options{})

	body, contentType := multipartBody(t, "file", "menu.png", "image/png", []byte{0x89, 0x50, 0x4e, 0x47})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/restaurants/r1/menu/ingest", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	server.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestIngestDocumentConflict(t *testing.T) {
	gen := &stubGenerator{
		responses: []string{`[]`},
		started:   make(chan struct{}),
		release:   make(chan struct{}),
	}
	server := newTestServer(&stubStore{}, gen, Options{StageTimeout: 5 * time.Second})

	firstDone := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		body, contentType := multipartBody(t, "file", "menu.txt", "text/plain", []byte("Dal - 40"))
		req := httptest.NewRequest(http.MethodPost, "/api/v1/restaurants/r1/menu/ingest", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		server.Router.ServeHTTP(rec, req)
		firstDone <- rec
	}()

	select {
	case <-gen.started:
	case <-time.After(2 * time.Second):
		t.Fatal("first ingestion never reached the generator")
	}

	body, contentType := multipartBody(t, "file", "menu.txt", "text/plain", []byte("Naan - 10"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/restaurants/r1/menu/ingest", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	server.Router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusConflict, rec.Code)

	close(gen.release)
	<-firstDone

	// the slot frees once the first run finishes
	assert.True(t, server.beginIngest("r1"))
	server.endIngest("r1")
}

func TestUploadImage(t *testing.T) {
	server := newTestServer(&stubStore{}, &stubGenerator{}, Options{UploadDir: t.TempDir()})

	body, contentType := multipartBody(t, "image", "dal.jpg", "image/jpeg", []byte("fake image bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/restaurants/r1/items/3/image", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	server.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result models.UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.True(t, strings.HasPrefix(result.FileURL, "/uploads/r1/3-"))
	assert.True(t, strings.HasSuffix(result.FileURL, ".jpg"))
}

func TestUploadImageNotConfigured(t *testing.T) {
	server := newTestServer(&stubStore{}, &stubGenerator{}, Options{})

	body, contentType := multipartBody(t, "image", "dal.jpg", "image/jpeg", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/restaurants/r1/items/3/image", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	server.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}
