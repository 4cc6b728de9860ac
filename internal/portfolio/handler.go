package portfolio

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Handler exposes the public read endpoints and the admin CRUD surface.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Register wires the routes. Mutating routes go behind authMW.
func (h *Handler) Register(r *gin.Engine, authMW gin.HandlerFunc) {
	api := r.Group("/api")

	api.GET("/projects", h.ListProjects)
	api.GET("/experience", h.ListExperience)
	api.GET("/blog", h.ListBlogPosts)
	api.GET("/blog/:slug", h.GetBlogPost)

	admin := api.Group("/", authMW)
	admin.POST("/projects", h.CreateProject)
	admin.PUT("/projects/reorder", h.ReorderProjects)
	admin.PUT("/projects/:id", h.UpdateProject)
	admin.DELETE("/projects/:id", h.DeleteProject)
	admin.POST("/experience", h.CreateExperience)
	admin.PUT("/experience/:id", h.UpdateExperience)
	admin.DELETE("/experience/:id", h.DeleteExperience)
	admin.POST("/blog", h.CreateBlogPost)
	admin.PUT("/blog/:id", h.UpdateBlogPost)
	admin.POST("/blog/:id/publish", h.PublishBlogPost)
	admin.DELETE("/blog/:id", h.DeleteBlogPost)
}

type projectRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description" binding:"required"`
	Technologies []string `json:"technologies"`
	GithubURL    string   `json:"githubUrl"`
	LiveURL      string   `json:"liveUrl"`
	ImageURL     string   `json:"imageUrl"`
}

func (h *Handler) ListProjects(c *gin.Context) {
	list, err := h.svc.ListProjects(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load projects"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) CreateProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p := &Project{
		Title:        req.Title,
		Description:  req.Description,
		Technologies: req.Technologies,
		GithubURL:    req.GithubURL,
		LiveURL:      req.LiveURL,
		ImageURL:     req.ImageURL,
	}
	id, err := h.svc.CreateProject(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) UpdateProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	existing, err := h.svc.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	existing.Title = req.Title
	existing.Description = req.Description
	existing.Technologies = req.Technologies
	existing.GithubURL = req.GithubURL
	existing.LiveURL = req.LiveURL
	existing.ImageURL = req.ImageURL
	if err := h.svc.UpdateProject(c.Request.Context(), existing); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": existing.ID})
}

func (h *Handler) DeleteProject(c *gin.Context) {
	if err := h.svc.DeleteProject(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ReorderProjects(c *gin.Context) {
	var req struct {
		ProjectIDs []string `json:"projectIds" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.svc.ReorderProjects(c.Request.Context(), req.ProjectIDs); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "projects reordered"})
}

type experienceRequest struct {
	Company       string     `json:"company" binding:"required"`
	Position      string     `json:"position" binding:"required"`
	Description   string     `json:"description"`
	Technologies  []string   `json:"technologies"`
	StartDate     time.Time  `json:"startDate" binding:"required"`
	EndDate       *time.Time `json:"endDate"`
	IsCurrentRole bool       `json:"isCurrentRole"`
	Location      string     `json:"location"`
}

func (h *Handler) ListExperience(c *gin.Context) {
	list, err := h.svc.ListExperience(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load experience"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) CreateExperience(c *gin.Context) {
	var req experienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	e := &Experience{
		Company:       req.Company,
		Position:      req.Position,
		Description:   req.Description,
		Technologies:  req.Technologies,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		IsCurrentRole: req.IsCurrentRole,
		Location:      req.Location,
	}
	id, err := h.svc.CreateExperience(c.Request.Context(), e)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) UpdateExperience(c *gin.Context) {
	var req experienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	e := &Experience{
		ID:            c.Param("id"),
		Company:       req.Company,
		Position:      req.Position,
		Description:   req.Description,
		Technologies:  req.Technologies,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		IsCurrentRole: req.IsCurrentRole,
		Location:      req.Location,
	}
	if err := h.svc.UpdateExperience(c.Request.Context(), e); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": e.ID})
}

func (h *Handler) DeleteExperience(c *gin.Context) {
	if err := h.svc.DeleteExperience(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type blogPostRequest struct {
	Title     string   `json:"title" binding:"required"`
	Excerpt   string   `json:"excerpt"`
	Content   string   `json:"content" binding:"required"`
	Tags      []string `json:"tags"`
	Published bool     `json:"published"`
}

func (h *Handler) ListBlogPosts(c *gin.Context) {
	// admins may pass ?all=true to include drafts; the public list is
	// published posts only
	publishedOnly := c.Query("all") != "true"
	list, err := h.svc.ListBlogPosts(c.Request.Context(), publishedOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load posts"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) GetBlogPost(c *gin.Context) {
	b, err := h.svc.GetBlogPostBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *Handler) CreateBlogPost(c *gin.Context) {
	var req blogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b := &BlogPost{
		Title:     req.Title,
		Excerpt:   req.Excerpt,
		Content:   req.Content,
		Tags:      req.Tags,
		Published: req.Published,
	}
	id, err := h.svc.CreateBlogPost(c.Request.Context(), b)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "slug": b.Slug})
}

func (h *Handler) UpdateBlogPost(c *gin.Context) {
	var req blogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	existing, err := h.svc.GetBlogPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	existing.Title = req.Title
	existing.Excerpt = req.Excerpt
	existing.Content = req.Content
	existing.Tags = req.Tags
	existing.Published = req.Published
	if err := h.svc.UpdateBlogPost(c.Request.Context(), existing); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": existing.ID, "slug": existing.Slug})
}

func (h *Handler) PublishBlogPost(c *gin.Context) {
	b, err := h.svc.PublishBlogPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *Handler) DeleteBlogPost(c *gin.Context) {
	if err := h.svc.DeleteBlogPost(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
