package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// The proxy routes forward request bodies to the backend verbatim and
// hand the upstream payload back. Upstream failures keep their status
// code; transport failures surface as a gateway error.

// InspireStartProxy forwards a session-start request.
func (h *Handlers) InspireStartProxy(c *gin.Context) {
	h.forward(c, http.MethodPost, "/api/inspire/start")
}

// InspireContinueProxy forwards a continue request.
func (h *Handlers) InspireContinueProxy(c *gin.Context) {
	h.forward(c, http.MethodPost, "/api/inspire/continue")
}

// InspireStatusProxy forwards a session status lookup.
func (h *Handlers) InspireStatusProxy(c *gin.Context) {
	h.forward(c, http.MethodGet, "/api/inspire/status/"+c.Param("sessionId"))
}

func (h *Handlers) forward(c *gin.Context, method, path string) {
	requestID := uuid.NewString()

	var body []byte
	if method != http.MethodGet {
		var err error
		body, err = io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
			return
		}
	}

	timer := h.newUpstreamTimer(path)
	status, payload, err := h.backend.Forward(c.Request.Context(), method, path, body)
	if err != nil {
		timer.Stop("error")
		h.logger.Warn("proxy request failed",
			zap.String("request_id", requestID),
			zap.String("path", path),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "內部服務器錯誤",
			"details": err.Error(),
		})
		return
	}
	timer.Stop(http.StatusText(status))

	if status >= http.StatusBadRequest {
		h.logger.Warn("backend rejected proxied request",
			zap.String("request_id", requestID),
			zap.String("path", path),
			zap.Int("status", status),
		)
		c.JSON(status, gin.H{
			"error":   "後端 API 調用失敗",
			"details": string(payload),
		})
		return
	}

	c.Data(status, "application/json", payload)
}
