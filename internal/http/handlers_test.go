package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/autoflow/fileops/internal/logging"
	"github.com/autoflow/fileops/internal/providers/files"
	"github.com/autoflow/fileops/internal/registry"
)

func newTestRouter(t *testing.T, baseDir string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reg := registry.NewRegistry()
	require.NoError(t, reg.Register(files.NewProvider(nil, baseDir, files.CaseSensitive)))

	handlers := NewHandlers(reg, nil, "test")

	router := gin.New()
	router.Use(RequestID())
	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/services", handlers.ListServices)
	router.POST("/services/discover", handlers.DiscoverServices)
	router.POST("/services/execute", handlers.ExecuteService)
	return router
}

func TestRootAndHealth(t *testing.T) {
	router := newTestRouter(t, "")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestListServices(t *testing.T) {
	router := newTestRouter(t, "")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/services", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Services []struct {
			ID string `json:"id"`
		} `json:"services"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Services, 1)
	assert.Equal(t, "files", body.Services[0].ID)
}

func TestDiscoverServices(t *testing.T) {
	router := newTestRouter(t, "")

	payload := bytes.NewBufferString(`{"query": "scan files in a directory"}`)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/services/discover", payload))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Services []interface{} `json:"services"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Services)
}

func TestExecuteService(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hit.txt"), []byte("x"), 0o644))
	router := newTestRouter(t, dir)

	req := map[string]interface{}{
		"tool_id":  "files.scan",
		"params":   map[string]interface{}{"path": ".", "patterns": "*.txt"},
		"base_dir": dir,
	}
	raw, err := json.Marshal(req)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/services/execute", bytes.NewBuffer(raw)))
	require.Equal(t, http.StatusOK, w.Code)

	var result struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, float64(1), result.Data["count"])
}

func TestExecuteServiceTagsWorkflow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.InfoLevel)

	reg := registry.NewRegistry()
	require.NoError(t, reg.Register(files.NewProvider(nil, "", files.CaseSensitive)))
	handlers := NewHandlers(reg, &logging.Logger{Logger: zap.New(core)}, "test")

	router := gin.New()
	router.POST("/services/execute", handlers.ExecuteService)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644))

	raw, err := json.Marshal(map[string]interface{}{
		"tool_id":     "files.list",
		"params":      map[string]interface{}{"path": "."},
		"base_dir":    dir,
		"workflow_id": "wf_caller",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/services/execute", bytes.NewBuffer(raw)))
	require.Equal(t, http.StatusOK, w.Code)

	entries := logs.FilterMessage("executing tool").All()
	require.NotEmpty(t, entries)
	assert.Equal(t, "wf_caller", entries[0].ContextMap()["workflow_id"])

	// Without a caller-supplied ID one is generated.
	logs.TakeAll()
	raw, err = json.Marshal(map[string]interface{}{
		"tool_id":  "files.list",
		"params":   map[string]interface{}{"path": "."},
		"base_dir": dir,
	})
	require.NoError(t, err)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/services/execute", bytes.NewBuffer(raw)))
	require.Equal(t, http.StatusOK, w.Code)

	entries = logs.FilterMessage("executing tool").All()
	require.NotEmpty(t, entries)
	generated, _ := entries[0].ContextMap()["workflow_id"].(string)
	assert.True(t, strings.HasPrefix(generated, "wf_"))
}

func TestExecuteServiceValidation(t *testing.T) {
	router := newTestRouter(t, "")

	// Missing tool_id fails binding.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/services/execute",
		bytes.NewBufferString(`{"params": {}}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown service is a registry error.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/services/execute",
		bytes.NewBufferString(`{"tool_id": "nope.nothing"}`)))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequestIDPassthrough(t *testing.T) {
	router := newTestRouter(t, "")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req_custom")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "req_custom", w.Header().Get(RequestIDHeader))
}
