package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patitas/patitas/backend/api/internal/pets"
	"github.com/patitas/patitas/backend/api/internal/storage"
	"github.com/patitas/patitas/backend/api/pkg/logger"
)

const maxPhotoSize = 5 << 20 // 5 MiB

// PetsHandler exposes the authenticated pet CRUD plus photo upload.
// media may be nil when object storage is not configured; photo endpoints
// then answer 503.
type PetsHandler struct {
	svc   *pets.Service
	media *storage.MediaStore
}

func NewPetsHandler(svc *pets.Service, media *storage.MediaStore) *PetsHandler {
	return &PetsHandler{svc: svc, media: media}
}

// Register routes under the authenticated group.
func (h *PetsHandler) Register(rg *gin.RouterGroup) {
	p := rg.Group("/pets")
	p.GET("", h.List)
	p.POST("", h.Create)
	p.GET("/:id", h.Get)
	p.PUT("/:id", h.Update)
	p.DELETE("/:id", h.Delete)
	p.POST("/:id/photo", h.UploadPhoto)
	p.GET("/:id/photo", h.PhotoURL)
}

func (h *PetsHandler) List(c *gin.Context) {
	owner, ok := currentUserID(c)
	if !ok {
		return
	}
	list, err := h.svc.List(c.Request.Context(), owner)
	if err != nil {
		logger.Errorf("pets list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron cargar las mascotas"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *PetsHandler) Create(c *gin.Context) {
	owner, ok := currentUserID(c)
	if !ok {
		return
	}
	var in pets.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.svc.Create(c.Request.Context(), owner, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *PetsHandler) Get(c *gin.Context) {
	owner, ok := currentUserID(c)
	if !ok {
		return
	}
	p, err := h.svc.Get(c.Request.Context(), owner, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PetsHandler) Update(c *gin.Context) {
	owner, ok := currentUserID(c)
	if !ok {
		return
	}
	var in pets.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.svc.Update(c.Request.Context(), owner, c.Param("id"), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PetsHandler) Delete(c *gin.Context) {
	owner, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), owner, c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadPhoto stores a multipart "photo" file for the pet.
func (h *PetsHandler) UploadPhoto(c *gin.Context) {
	owner, ok := currentUserID(c)
	if !ok {
		return
	}
	if h.media == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "almacenamiento no disponible"})
		return
	}
	p, err := h.svc.Get(c.Request.Context(), owner, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	fh, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file required"})
		return
	}
	if fh.Size > maxPhotoSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "La imagen supera los 5 MB"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return
	}
	defer f.Close()

	key := storage.PhotoKey(p.ID, fh.Filename)
	contentType := fh.Header.Get("Content-Type")
	if err := h.media.UploadPhoto(c.Request.Context(), key, f, fh.Size, contentType); err != nil {
		logger.Errorf("photo upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo subir la foto"})
		return
	}
	p, err = h.svc.SetPhotoKey(c.Request.Context(), owner, c.Param("id"), key)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// PhotoURL returns a short-lived presigned URL for the pet's photo.
func (h *PetsHandler) PhotoURL(c *gin.Context) {
	owner, ok := currentUserID(c)
	if !ok {
		return
	}
	if h.media == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "almacenamiento no disponible"})
		return
	}
	p, err := h.svc.Get(c.Request.Context(), owner, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if p.PhotoKey == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "La mascota no tiene foto"})
		return
	}
	u, err := h.media.PhotoURL(c.Request.Context(), p.PhotoKey, 15*time.Minute)
	if err != nil {
		logger.Errorf("presign failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo generar la URL"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": u})
}

func (h *PetsHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pets.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, pets.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Mascota no encontrada"})
	case errors.Is(err, pets.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Mascota no autorizada"})
	default:
		logger.Errorf("pets handler error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno"})
	}
}
