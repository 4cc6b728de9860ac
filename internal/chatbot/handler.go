package chatbot

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler exposes the chat endpoint. The endpoint always answers 200; failed
// pipelines degrade to the canned reply with an error marker in the body.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(r *gin.Engine) {
	r.POST("/api/chatbot", h.Chat)
}

type chatRequest struct {
	Message             string `json:"message" binding:"required"`
	ConversationHistory []Turn `json:"conversationHistory"`
}

func (h *Handler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}
	c.JSON(http.StatusOK, h.svc.Respond(c.Request.Context(), req.Message, req.ConversationHistory))
}
