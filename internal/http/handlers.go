package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/autoflow/fileops/internal/logging"
	"github.com/autoflow/fileops/internal/registry"
	"github.com/autoflow/fileops/internal/shared/id"
	"github.com/autoflow/fileops/internal/types"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	registry *registry.Registry
	log      *logging.Logger
	version  string
}

// NewHandlers creates a new handler set
func NewHandlers(reg *registry.Registry, log *logging.Logger, version string) *Handlers {
	if log == nil {
		log = logging.Nop()
	}
	return &Handlers{registry: reg, log: log, version: version}
}

// Root handles basic liveness check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "fileops",
		"version": h.version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"registry": h.registry.Stats(),
	})
}

// ListServices lists registered services, optionally filtered by category
func (h *Handlers) ListServices(c *gin.Context) {
	var category *types.Category
	if categoryStr := c.Query("category"); categoryStr != "" {
		cat := types.Category(categoryStr)
		category = &cat
	}

	services := h.registry.List(category)
	stats := h.registry.Stats()

	c.JSON(http.StatusOK, gin.H{
		"services": services,
		"stats":    stats,
	})
}

// DiscoverServices discovers services relevant to a free-form query
func (h *Handlers) DiscoverServices(c *gin.Context) {
	var req struct {
		Query string `json:"query" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	services := h.registry.Discover(req.Query, 5)

	c.JSON(http.StatusOK, gin.H{
		"query":    req.Query,
		"services": services,
	})
}

// ExecuteService executes a service tool. Every execution is tagged with a
// workflow ID, either the caller's or a freshly generated one.
func (h *Handlers) ExecuteService(c *gin.Context) {
	var req types.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wfID := string(id.NewWorkflowID())
	if req.WorkflowID != nil && *req.WorkflowID != "" {
		wfID = *req.WorkflowID
	}
	log := h.log.WithWorkflow(wfID)

	opCtx := &types.Context{
		WorkflowID: &wfID,
		BaseDir:    req.BaseDir,
	}

	log.Info("executing tool", zap.String("tool_id", req.ToolID))

	result, err := h.registry.Execute(c.Request.Context(), req.ToolID, req.Params, opCtx)
	if err != nil {
		log.Error("tool execution failed", zap.String("tool_id", req.ToolID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
