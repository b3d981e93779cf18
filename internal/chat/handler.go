package chat

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"querium-backend/internal/shared/server/middleware"
	"querium-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the composer.
type Handler struct {
	Composer *Composer
}

// NewHandler constructs a Handler.
func NewHandler(composer *Composer) *Handler {
	return &Handler{Composer: composer}
}

// RegisterRoutes attaches chat routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/chat", h.chat)
}

func (h *Handler) chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "message is required", nil)
		return
	}
	scopeID := strings.TrimSpace(req.DocumentID)
	if scopeID != "" {
		c.Set(middleware.DocumentIDKey, scopeID)
	}

	answer := h.Composer.Compose(c.Request.Context(), message, scopeID)
	respond.OK(c, ChatResponse{
		Response: answer.Text,
		Sources:  answer.Sources,
	})
}
