package handler

import (
	"net/http"

	"parqueo_api/internal/api/respond"
	"parqueo_api/internal/domain"
	"parqueo_api/internal/service"

	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	reservations *service.ReservationService
}

func NewReservationHandler(rs *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservations: rs}
}

// POST /reservas
func (h *ReservationHandler) Create(c *gin.Context) {
	var dto domain.ReservationDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respond.Error(c, err)
		return
	}
	r, err := h.reservations.Create(c.Request.Context(), dto)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"mensaje": "Reserva creada exitosamente", "reserva": r})
}

// GET /reservas
func (h *ReservationHandler) List(c *gin.Context) {
	var filter domain.ReservationFilterDTO
	if err := c.ShouldBindQuery(&filter); err != nil {
		respond.Error(c, err)
		return
	}
	rs, err := h.reservations.List(c.Request.Context(), filter)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(rs), "resumen": domain.CountReservations(rs), "reservas": rs})
}

// GET /reservas/activas
func (h *ReservationHandler) ListActive(c *gin.Context) {
	rs, err := h.reservations.ListActive(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(rs), "reservas": rs})
}

// GET /reservas/cliente/:cliente_id
func (h *ReservationHandler) ListByClient(c *gin.Context) {
	clientID, ok := paramID(c, "cliente_id")
	if !ok {
		return
	}
	rs, err := h.reservations.ListByClient(c.Request.Context(), clientID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(rs), "cliente_id": clientID, "resumen": domain.CountReservations(rs), "reservas": rs})
}

// GET /reservas/:id
func (h *ReservationHandler) GetByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	r, err := h.reservations.GetByID(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reserva": r})
}

// PUT /reservas/:id
func (h *ReservationHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var dto domain.ReservationUpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respond.Error(c, err)
		return
	}
	r, err := h.reservations.Reschedule(c.Request.Context(), id, dto)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Reserva actualizada exitosamente", "reserva": r})
}

// PATCH /reservas/:id/cancelar
func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	r, err := h.reservations.Cancel(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Reserva cancelada exitosamente", "reserva": r})
}

// PATCH /reservas/:id/finalizar
func (h *ReservationHandler) Finish(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	r, err := h.reservations.Finish(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Reserva finalizada exitosamente", "reserva": r})
}
