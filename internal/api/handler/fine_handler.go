package handler

import (
	"net/http"

	"parqueo_api/internal/api/respond"
	"parqueo_api/internal/domain"
	"parqueo_api/internal/service"

	"github.com/gin-gonic/gin"
)

type FineHandler struct {
	fines *service.FineService
}

func NewFineHandler(fs *service.FineService) *FineHandler {
	return &FineHandler{fines: fs}
}

// POST /multas
func (h *FineHandler) Create(c *gin.Context) {
	var dto domain.FineDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respond.Error(c, err)
		return
	}
	fine, err := h.fines.Create(c.Request.Context(), dto)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"mensaje": "Multa registrada exitosamente", "multa": fine})
}

// GET /multas
func (h *FineHandler) List(c *gin.Context) {
	fines, err := h.fines.List(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(fines), "multas": fines})
}

// GET /multas/ticket/:ticket_id
func (h *FineHandler) ListByTicket(c *gin.Context) {
	ticketID, ok := paramID(c, "ticket_id")
	if !ok {
		return
	}
	fines, err := h.fines.ListByTicket(c.Request.Context(), ticketID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(fines), "ticket_id": ticketID, "multas": fines})
}

// GET /multas/:id
func (h *FineHandler) GetByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	fine, err := h.fines.GetByID(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"multa": fine})
}

// PUT /multas/:id
func (h *FineHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var dto domain.FineUpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respond.Error(c, err)
		return
	}
	fine, err := h.fines.Update(c.Request.Context(), id, dto)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Multa actualizada exitosamente", "multa": fine})
}

// DELETE /multas/:id
func (h *FineHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.fines.Delete(c.Request.Context(), id); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Multa eliminada exitosamente"})
}
