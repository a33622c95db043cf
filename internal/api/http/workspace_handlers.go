package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/azuma520/prompt-scribe/gateway/internal/domain/workspace"
	"github.com/azuma520/prompt-scribe/gateway/internal/shared/types"
)

type addTagsRequest struct {
	Tags []types.Tag `json:"tags"`
}

type reorderRequest struct {
	From *int `json:"from"`
	To   *int `json:"to"`
}

type formatRequest struct {
	Separator string             `json:"separator,omitempty"`
	Weights   map[string]float64 `json:"weights,omitempty"`
}

// ListWorkspaceTags returns the workspace tag set in order.
func (h *Handlers) ListWorkspaceTags(c *gin.Context) {
	tags := h.workspace.Tags()
	c.JSON(http.StatusOK, gin.H{
		"tags":  tags,
		"count": len(tags),
	})
}

// AddWorkspaceTag adds one tag; duplicates are no-ops.
func (h *Handlers) AddWorkspaceTag(c *gin.Context) {
	var tag types.Tag
	if err := c.ShouldBindJSON(&tag); err != nil || tag.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tag with id is required"})
		return
	}

	h.workspace.AddTag(tag)
	h.metrics.WorkspaceTags.Set(float64(h.workspace.Count()))
	c.JSON(http.StatusOK, gin.H{"count": h.workspace.Count()})
}

// AddWorkspaceTags adds tags in bulk, de-duplicated.
func (h *Handlers) AddWorkspaceTags(c *gin.Context) {
	var req addTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	h.workspace.AddTags(req.Tags)
	h.metrics.WorkspaceTags.Set(float64(h.workspace.Count()))
	c.JSON(http.StatusOK, gin.H{"count": h.workspace.Count()})
}

// RemoveWorkspaceTag deletes one tag by id.
func (h *Handlers) RemoveWorkspaceTag(c *gin.Context) {
	h.workspace.RemoveTag(c.Param("id"))
	h.metrics.WorkspaceTags.Set(float64(h.workspace.Count()))
	c.JSON(http.StatusOK, gin.H{"count": h.workspace.Count()})
}

// ClearWorkspace empties the tag set.
func (h *Handlers) ClearWorkspace(c *gin.Context) {
	h.workspace.ClearAll()
	h.metrics.WorkspaceTags.Set(0)
	c.JSON(http.StatusOK, gin.H{"count": 0})
}

// ReorderWorkspaceTags moves a tag to a new position.
func (h *Handlers) ReorderWorkspaceTags(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.From == nil || req.To == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to are required"})
		return
	}

	h.workspace.ReorderTags(*req.From, *req.To)
	c.JSON(http.StatusOK, gin.H{"tags": h.workspace.Tags()})
}

// WorkspacePrompt renders the tag set as a prompt string. An optional
// body customizes separator and per-tag weights.
func (h *Handlers) WorkspacePrompt(c *gin.Context) {
	var req formatRequest
	// Body is optional; plain GET yields the default format.
	_ = c.ShouldBindJSON(&req)

	var prompt string
	if req.Separator == "" && len(req.Weights) == 0 {
		prompt = h.workspace.FormatPrompt()
	} else {
		prompt = h.workspace.FormatPromptWith(workspace.FormatOptions{
			Separator: req.Separator,
			Weights:   req.Weights,
		})
	}
	c.JSON(http.StatusOK, gin.H{"prompt": prompt})
}

// CopyWorkspacePrompt copies the formatted prompt to the clipboard.
func (h *Handlers) CopyWorkspacePrompt(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": h.workspace.CopyToClipboard()})
}
