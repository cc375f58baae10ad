package handler

import (
	"net/http"

	"parqueo_api/internal/api/respond"
	"parqueo_api/internal/domain"
	"parqueo_api/internal/service"

	"github.com/gin-gonic/gin"
)

type ClientHandler struct {
	clients *service.ClientService
}

func NewClientHandler(cs *service.ClientService) *ClientHandler {
	return &ClientHandler{clients: cs}
}

// POST /clientes
func (h *ClientHandler) Create(c *gin.Context) {
	var dto domain.ClientDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respond.Error(c, err)
		return
	}
	client, err := h.clients.Create(c.Request.Context(), dto)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"mensaje": "Cliente creado exitosamente", "cliente": client})
}

// GET /clientes
func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.clients.List(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(clients), "clientes": clients})
}

// GET /clientes/:id
func (h *ClientHandler) GetByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	client, err := h.clients.GetByID(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cliente": client})
}

// PUT /clientes/:id
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var dto domain.ClientDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respond.Error(c, err)
		return
	}
	client, err := h.clients.Update(c.Request.Context(), id, dto)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Cliente actualizado exitosamente", "cliente": client})
}

// DELETE /clientes/:id
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.clients.Delete(c.Request.Context(), id); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Cliente eliminado exitosamente"})
}
