package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/patitas/patitas/backend/api/internal/content"
	"github.com/patitas/patitas/backend/api/pkg/logger"
)

// ContentHandler serves the read-only marketing content: FAQs and blog posts.
type ContentHandler struct {
	svc *content.Service
}

func NewContentHandler(svc *content.Service) *ContentHandler {
	return &ContentHandler{svc: svc}
}

func (h *ContentHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/faqs", h.FAQs)
	rg.GET("/posts", h.Posts)
	rg.GET("/posts/:slug", h.Post)
}

func (h *ContentHandler) FAQs(c *gin.Context) {
	faqs, err := h.svc.FAQs(c.Request.Context())
	if err != nil {
		logger.Errorf("faqs failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno"})
		return
	}
	c.JSON(http.StatusOK, faqs)
}

func (h *ContentHandler) Posts(c *gin.Context) {
	posts, err := h.svc.Posts(c.Request.Context(), c.Query("category"))
	if err != nil {
		logger.Errorf("posts failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno"})
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *ContentHandler) Post(c *gin.Context) {
	p, err := h.svc.PostBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Artículo no encontrado"})
			return
		}
		logger.Errorf("post lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno"})
		return
	}
	c.JSON(http.StatusOK, p)
}
