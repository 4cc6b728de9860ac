package assets

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler exposes the blob endpoints. Reads are public, uploads and deletes
// go behind authMW.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(r *gin.Engine, authMW gin.HandlerFunc) {
	api := r.Group("/api")

	api.GET("/profile/avatar", h.GetAvatar)
	api.GET("/projects/image/:id", h.GetProjectImage)
	api.GET("/resume/check", h.CheckResume)
	api.GET("/resume/download", h.DownloadResume)

	admin := api.Group("/", authMW)
	admin.POST("/profile/upload-avatar", h.UploadAvatar)
	admin.POST("/projects/upload-image", h.UploadProjectImage)
	admin.POST("/resume/upload", h.UploadResume)
	admin.DELETE("/resume/delete", h.DeleteResume)
}

func (h *Handler) GetAvatar(c *gin.Context) {
	f, raw, err := h.svc.Avatar(c.Request.Context())
	if err != nil {
		writeBlobError(c, err)
		return
	}
	c.Data(http.StatusOK, f.ContentType, raw)
}

func (h *Handler) UploadAvatar(c *gin.Context) {
	filename, contentType, data, ok := readUpload(c)
	if !ok {
		return
	}
	if err := h.svc.SaveAvatar(c.Request.Context(), filename, contentType, data); err != nil {
		writeBlobError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "avatar uploaded"})
}

func (h *Handler) GetProjectImage(c *gin.Context) {
	f, raw, err := h.svc.ProjectImage(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeBlobError(c, err)
		return
	}
	c.Data(http.StatusOK, f.ContentType, raw)
}

func (h *Handler) UploadProjectImage(c *gin.Context) {
	filename, contentType, data, ok := readUpload(c)
	if !ok {
		return
	}
	id, err := h.svc.SaveProjectImage(c.Request.Context(), filename, contentType, data)
	if err != nil {
		writeBlobError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imageUrl": "/api/projects/image/" + id})
}

func (h *Handler) CheckResume(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ResumeStatus(c.Request.Context()))
}

func (h *Handler) DownloadResume(c *gin.Context) {
	st := h.svc.ResumeStatus(c.Request.Context())
	if !st.Exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "resume not found"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="resume.pdf"`)
	c.File(h.svc.ResumePath())
}

func (h *Handler) UploadResume(c *gin.Context) {
	filename, contentType, data, ok := readUpload(c)
	if !ok {
		return
	}
	if err := h.svc.SaveResume(c.Request.Context(), filename, contentType, data); err != nil {
		writeBlobError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "resume uploaded"})
}

func (h *Handler) DeleteResume(c *gin.Context) {
	if err := h.svc.DeleteResume(c.Request.Context()); err != nil {
		writeBlobError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "resume deleted"})
}

// readUpload extracts the multipart "file" part. On failure it writes the
// error response and returns ok=false.
func readUpload(c *gin.Context) (filename, contentType string, data []byte, ok bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return "", "", nil, false
	}
	src, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return "", "", nil, false
	}
	defer src.Close()
	data, err = io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return "", "", nil, false
	}
	return fh.Filename, fh.Header.Get("Content-Type"), data, true
}

func writeBlobError(c *gin.Context, err error) {
	var tooLarge *FileTooLargeError
	var badType *UnsupportedTypeError
	switch {
	case errors.As(err, &tooLarge), errors.As(err, &badType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
