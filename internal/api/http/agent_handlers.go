package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type agentMessageRequest struct {
	Message string `json:"message"`
}

type selectDirectionRequest struct {
	Index *int `json:"index"`
}

// AgentStart opens a new conversation with the user's first message.
func (h *Handlers) AgentStart(c *gin.Context) {
	var req agentMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	h.metrics.SessionTurns.Inc()
	if err := h.agent.StartConversation(c.Request.Context(), req.Message); err != nil {
		h.metrics.SessionErrors.Inc()
		h.writeAgentError(c, err)
		return
	}

	h.metrics.SessionActive.Set(1)
	c.JSON(http.StatusOK, h.agent.Snapshot())
}

// AgentContinue sends the next user message of the active session.
func (h *Handlers) AgentContinue(c *gin.Context) {
	var req agentMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	h.metrics.SessionTurns.Inc()
	if err := h.agent.ContinueConversation(c.Request.Context(), req.Message); err != nil {
		h.metrics.SessionErrors.Inc()
		h.writeAgentError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.agent.Snapshot())
}

// AgentSelectDirection records the user's pick of a creative direction.
func (h *Handlers) AgentSelectDirection(c *gin.Context) {
	var req selectDirectionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Index == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index is required"})
		return
	}

	h.metrics.SessionTurns.Inc()
	if err := h.agent.SelectDirection(c.Request.Context(), *req.Index); err != nil {
		h.metrics.SessionErrors.Inc()
		h.writeAgentError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.agent.Snapshot())
}

// AgentReset returns the session to its initial empty state.
func (h *Handlers) AgentReset(c *gin.Context) {
	h.agent.Reset()
	h.metrics.SessionResets.Inc()
	h.metrics.SessionActive.Set(0)

	c.JSON(http.StatusOK, h.agent.Snapshot())
}

// AgentState returns the session state plus derived flags.
func (h *Handlers) AgentState(c *gin.Context) {
	c.JSON(http.StatusOK, h.agent.Snapshot())
}
