package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/patitas/patitas/backend/api/internal/appointments"
	"github.com/patitas/patitas/backend/api/internal/pets"
	"github.com/patitas/patitas/backend/api/pkg/logger"
)

type AppointmentsHandler struct {
	svc *appointments.Service
}

func NewAppointmentsHandler(svc *appointments.Service) *AppointmentsHandler {
	return &AppointmentsHandler{svc: svc}
}

// Register routes under the authenticated group.
func (h *AppointmentsHandler) Register(rg *gin.RouterGroup) {
	a := rg.Group("/appointments")
	a.GET("", h.List)
	a.POST("", h.Schedule)
	a.POST("/:id/cancel", h.Cancel)
	a.GET("/slots", h.Availability)
}

func (h *AppointmentsHandler) List(c *gin.Context) {
	owner, ok := currentUserID(c)
	if !ok {
		return
	}
	list, err := h.svc.List(c.Request.Context(), owner)
	if err != nil {
		logger.Errorf("appointments list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron cargar las citas"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *AppointmentsHandler) Schedule(c *gin.Context) {
	owner, ok := currentUserID(c)
	if !ok {
		return
	}
	var in appointments.ScheduleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a, err := h.svc.Schedule(c.Request.Context(), owner, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *AppointmentsHandler) Cancel(c *gin.Context) {
	owner, ok := currentUserID(c)
	if !ok {
		return
	}
	a, err := h.svc.Cancel(c.Request.Context(), owner, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// Availability lists every bookable slot for a date with its free/taken state.
func (h *AppointmentsHandler) Availability(c *gin.Context) {
	date := c.Query("date")
	slots, err := h.svc.Availability(c.Request.Context(), date)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "slots": slots})
}

func (h *AppointmentsHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, appointments.ErrSlotTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "El horario seleccionado ya está reservado"})
	case errors.Is(err, appointments.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, appointments.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Cita no encontrada"})
	case errors.Is(err, pets.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Mascota no encontrada"})
	case errors.Is(err, appointments.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Cita no autorizada"})
	default:
		logger.Errorf("appointments handler error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno"})
	}
}
