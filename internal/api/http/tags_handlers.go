package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/azuma520/prompt-scribe/gateway/internal/client"
)

type recommendRequest struct {
	Description   string `json:"description"`
	MaxTags       int    `json:"max_tags,omitempty"`
	MinPopularity int    `json:"min_popularity,omitempty"`
	IncludeAdult  bool   `json:"include_adult,omitempty"`
}

type validateRequest struct {
	Tags []string `json:"tags"`
}

// GetTags serves the tag catalog page.
func (h *Handlers) GetTags(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a number"})
			return
		}
		limit = parsed
	}

	timer := h.newUpstreamTimer("/api/v1/tags")
	tags, err := h.backend.GetTags(c.Request.Context(), limit)
	if err != nil {
		timer.Stop("error")
		h.writeBackendError(c, err)
		return
	}
	timer.Stop("ok")

	c.JSON(http.StatusOK, gin.H{"data": tags, "count": len(tags)})
}

// RecommendTags asks the backend for tags matching a description.
func (h *Handlers) RecommendTags(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "description is required"})
		return
	}

	timer := h.newUpstreamTimer("/api/llm/recommend-tags")
	out, err := h.backend.RecommendTags(c.Request.Context(), req.Description, client.RecommendOptions{
		MaxTags:       req.MaxTags,
		MinPopularity: req.MinPopularity,
		IncludeAdult:  req.IncludeAdult,
	})
	if err != nil {
		timer.Stop("error")
		h.writeBackendError(c, err)
		return
	}
	timer.Stop("ok")

	c.JSON(http.StatusOK, out)
}

// ValidatePrompt checks a tag list for conflicts and redundancy.
func (h *Handlers) ValidatePrompt(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Tags) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tags are required"})
		return
	}

	timer := h.newUpstreamTimer("/api/llm/validate-prompt")
	out, err := h.backend.ValidatePrompt(c.Request.Context(), req.Tags)
	if err != nil {
		timer.Stop("error")
		h.writeBackendError(c, err)
		return
	}
	timer.Stop("ok")

	c.JSON(http.StatusOK, out)
}

func (h *Handlers) writeBackendError(c *gin.Context, err error) {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.StatusCode, gin.H{"error": apiErr.Detail})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
}
