package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/uaplabs/minidapps/core"
	"github.com/uaplabs/minidapps/service"
)

// ChatHandlers exposes the chat relay endpoint.
type ChatHandlers struct {
	chat       *service.ChatService
	log        *zap.Logger
	production bool
}

// NewChatHandlers creates the chat handler set.
func NewChatHandlers(chat *service.ChatService, log *zap.Logger, production bool) *ChatHandlers {
	return &ChatHandlers{chat: chat, log: log, production: production}
}

// ChatRequest carries the conversation to relay.
type ChatRequest struct {
	Messages []core.ChatMessage `json:"messages"`
}

// Relay handles POST /api/chat. The response body is streamed incrementally
// as plain text; the caller receives partial output as it is produced.
func (h *ChatHandlers) Relay(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "detail": "messages array is required"})
		return
	}

	streaming := false
	err := h.chat.Relay(c.Request.Context(), req.Messages, func(delta string) error {
		if !streaming {
			streaming = true
			c.Header("Content-Type", "text/plain; charset=utf-8")
			c.Header("Cache-Control", "no-cache")
			c.Header("X-Accel-Buffering", "no")
			c.Status(http.StatusOK)
		}
		if _, err := c.Writer.WriteString(delta); err != nil {
			return err
		}
		c.Writer.Flush()
		return nil
	})
	if err == nil {
		return
	}

	if streaming {
		// Headers and partial output are already on the wire; all we can
		// do is cut the stream and log the cause.
		h.log.Error("completion stream aborted", zap.Error(err))
		return
	}

	var upstreamErr *core.UpstreamError
	if errors.As(err, &upstreamErr) && upstreamErr.Status != 0 {
		body := gin.H{"error": "Error communicating with the model"}
		if !h.production {
			body["details"] = upstreamErr.Body
		}
		h.log.Error("completion request rejected upstream",
			zap.Int("status", upstreamErr.Status), zap.Error(err))
		c.JSON(upstreamErr.Status, body)
		return
	}

	respondError(c, h.log, h.production, err)
}
