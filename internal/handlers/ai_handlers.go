package handlers

import (
	"net/http"

	"github.com/01moynul/containerhub-golang/internal/apperr"
	"github.com/gin-gonic/gin"
)

// ChatInput defines the structure of the JSON request body.
type ChatInput struct {
	Message string `json:"message" binding:"required,max=2000"`
}

// ChatAI handles POST /v1/ai/chat. It answers 503 when the assistant is
// not configured.
func (h *Handlers) ChatAI(c *gin.Context) {
	if h.AIService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "AI assistant is not configured", "code": "AI_UNAVAILABLE"})
		return
	}

	p, ok := principal(c)
	if !ok {
		return
	}

	var input ChatInput
	if !bindJSON(c, &input) {
		return
	}

	answer, err := h.AIService.GenerateResponse(c.Request.Context(), input.Message, p)
	if err != nil {
		respondError(c, apperr.Internal(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": answer})
}
