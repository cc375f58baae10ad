package handler

import (
	"net/http"

	"parqueo_api/internal/api/respond"
	"parqueo_api/internal/domain"
	"parqueo_api/internal/service"

	"github.com/gin-gonic/gin"
)

// FacilityHandler serves zones and the spaces inside them.
type FacilityHandler struct {
	facility *service.FacilityService
}

func NewFacilityHandler(fs *service.FacilityService) *FacilityHandler {
	return &FacilityHandler{facility: fs}
}

// POST /zonas
func (h *FacilityHandler) CreateZone(c *gin.Context) {
	var dto domain.ZoneDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respond.Error(c, err)
		return
	}
	zone, err := h.facility.CreateZone(c.Request.Context(), dto)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"mensaje": "Zona creada exitosamente", "zona": zone})
}

// GET /zonas
func (h *FacilityHandler) ListZones(c *gin.Context) {
	zones, err := h.facility.ListZones(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(zones), "zonas": zones})
}

// GET /zonas/:id
func (h *FacilityHandler) GetZone(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	zone, err := h.facility.GetZone(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"zona": zone})
}

// PUT /zonas/:id
func (h *FacilityHandler) UpdateZone(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var dto domain.ZoneDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respond.Error(c, err)
		return
	}
	zone, err := h.facility.UpdateZone(c.Request.Context(), id, dto)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Zona actualizada exitosamente", "zona": zone})
}

// DELETE /zonas/:id
func (h *FacilityHandler) DeleteZone(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.facility.DeleteZone(c.Request.Context(), id); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Zona eliminada exitosamente"})
}

// POST /espacios
func (h *FacilityHandler) CreateSpace(c *gin.Context) {
	var dto domain.SpaceDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respond.Error(c, err)
		return
	}
	space, err := h.facility.CreateSpace(c.Request.Context(), dto)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"mensaje": "Espacio creado exitosamente", "espacio": space})
}

// GET /espacios
func (h *FacilityHandler) ListSpaces(c *gin.Context) {
	var filter domain.SpaceFilterDTO
	if err := c.ShouldBindQuery(&filter); err != nil {
		respond.Error(c, err)
		return
	}
	spaces, err := h.facility.ListSpaces(c.Request.Context(), filter)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(spaces), "espacios": spaces})
}

// GET /espacios/disponibles
func (h *FacilityHandler) ListAvailableSpaces(c *gin.Context) {
	var filter domain.SpaceFilterDTO
	if err := c.ShouldBindQuery(&filter); err != nil {
		respond.Error(c, err)
		return
	}
	spaces, err := h.facility.ListAvailableSpaces(c.Request.Context(), filter)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(spaces), "espacios": spaces})
}

// GET /espacios/:id
func (h *FacilityHandler) GetSpace(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	space, err := h.facility.GetSpace(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"espacio": space})
}

// PUT /espacios/:id
func (h *FacilityHandler) UpdateSpace(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var dto domain.SpaceDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respond.Error(c, err)
		return
	}
	space, err := h.facility.UpdateSpace(c.Request.Context(), id, dto)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Espacio actualizado exitosamente", "espacio": space})
}

// PATCH /espacios/:id/disponibilidad
func (h *FacilityHandler) SetAvailability(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var dto domain.SpaceAvailabilityDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respond.Error(c, err)
		return
	}
	space, err := h.facility.SetAvailability(c.Request.Context(), id, *dto.Disponible)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Disponibilidad actualizada", "espacio": space})
}

// DELETE /espacios/:id
func (h *FacilityHandler) DeleteSpace(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.facility.DeleteSpace(c.Request.Context(), id); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Espacio eliminado exitosamente"})
}
