package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/patitas/patitas/backend/api/internal/reviews"
	"github.com/patitas/patitas/backend/api/pkg/logger"
)

type ReviewsHandler struct {
	svc *reviews.Service
}

func NewReviewsHandler(svc *reviews.Service) *ReviewsHandler {
	return &ReviewsHandler{svc: svc}
}

// RegisterPublic mounts the unauthenticated review endpoints.
func (h *ReviewsHandler) RegisterPublic(rg *gin.RouterGroup) {
	r := rg.Group("/reviews")
	r.GET("", h.ListPublic)
	r.POST("", h.Submit)
}

// RegisterAdmin mounts the moderation endpoints. The caller wraps the group
// with the admin role check.
func (h *ReviewsHandler) RegisterAdmin(rg *gin.RouterGroup) {
	r := rg.Group("/reviews")
	r.GET("/pending", h.ListPending)
	r.POST("/:id/approve", h.Approve)
}

func (h *ReviewsHandler) ListPublic(c *gin.Context) {
	list, err := h.svc.ListPublic(c.Request.Context())
	if err != nil {
		logger.Errorf("reviews list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron cargar las reseñas"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ReviewsHandler) Submit(c *gin.Context) {
	var in reviews.SubmitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rev, err := h.svc.Submit(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, reviews.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Errorf("review submit failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo enviar la reseña"})
		return
	}
	c.JSON(http.StatusCreated, rev)
}

func (h *ReviewsHandler) ListPending(c *gin.Context) {
	list, err := h.svc.ListPending(c.Request.Context())
	if err != nil {
		logger.Errorf("pending reviews list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ReviewsHandler) Approve(c *gin.Context) {
	err := h.svc.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, reviews.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reseña no encontrada"})
			return
		}
		logger.Errorf("review approve failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "approved"})
}
