package contact

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devfolio/devfolio/backend/pkg/logger"
)

// Handler exposes the public submission endpoint and the admin listing.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(r *gin.Engine, authMW gin.HandlerFunc) {
	r.POST("/api/contact", h.Submit)
	r.GET("/api/contact", authMW, h.List)
}

type submitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (h *Handler) Submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	id, err := h.svc.Submit(c.Request.Context(), Submission{
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		UserAgent: c.Request.UserAgent(),
		ClientIP:  c.ClientIP(),
	})
	if err != nil {
		var verr *ValidationError
		var ierr *InvalidEmailError
		var uerr *UndeliverableEmailError
		switch {
		case errors.As(err, &verr), errors.As(err, &ierr), errors.As(err, &uerr):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Errorf("contact submission failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store message"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message sent successfully", "id": id})
}

func (h *Handler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load messages"})
		return
	}
	c.JSON(http.StatusOK, list)
}
