// Package http contains the gateway's Gin handlers: the Inspire proxy
// routes, the server-hosted agent operations, the workspace tag set,
// and the tag recommendation endpoints.
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/azuma520/prompt-scribe/gateway/internal/client"
	"github.com/azuma520/prompt-scribe/gateway/internal/domain/agent"
	"github.com/azuma520/prompt-scribe/gateway/internal/domain/workspace"
	"github.com/azuma520/prompt-scribe/gateway/internal/infrastructure/logging"
	"github.com/azuma520/prompt-scribe/gateway/internal/infrastructure/monitoring"
)

// Handlers contains all HTTP handlers.
type Handlers struct {
	backend   *client.Client
	agent     *agent.Agent
	workspace *workspace.Store
	metrics   *monitoring.Metrics
	logger    *logging.Logger
}

// NewHandlers creates a new handler set.
func NewHandlers(
	backend *client.Client,
	agentSvc *agent.Agent,
	workspaceStore *workspace.Store,
	metrics *monitoring.Metrics,
	logger *logging.Logger,
) *Handlers {
	return &Handlers{
		backend:   backend,
		agent:     agentSvc,
		workspace: workspaceStore,
		metrics:   metrics,
		logger:    logger,
	}
}

// Root handles the service banner.
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "Prompt-Scribe Gateway",
		"version": "0.3.0",
	})
}

// Health reports the gateway's own state. It never calls the backend,
// so a dead upstream does not fail liveness probes.
func (h *Handlers) Health(c *gin.Context) {
	snap := h.agent.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"session": gin.H{
			"active": snap.SessionID != "",
			"phase":  snap.Phase,
		},
		"workspace": gin.H{"tags": h.workspace.Count()},
	})
}

func (h *Handlers) newUpstreamTimer(endpoint string) *monitoring.Timer {
	return monitoring.NewTimer(h.metrics, endpoint)
}

// writeAgentError maps an agent failure onto the HTTP surface.
// Validation failures are the caller's fault; everything else came from
// the backend or the network.
func (h *Handlers) writeAgentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, agent.ErrEmptyMessage),
		errors.Is(err, agent.ErrNoSession),
		errors.Is(err, agent.ErrInvalidDirection):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			c.JSON(http.StatusBadGateway, gin.H{"error": apiErr.Detail, "status": apiErr.StatusCode})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}
