package handler

import (
	"context"
	"net/http"

	"parqueo_api/internal/api/respond"
	"parqueo_api/internal/domain"

	"github.com/gin-gonic/gin"
)

type TicketService interface {
	RegisterEntry(ctx context.Context, dto domain.TicketEntryDTO, actingUserID int) (*domain.TicketDetail, error)
	RegisterExit(ctx context.Context, ticketID int) (*domain.TicketDetail, error)
	GetByID(ctx context.Context, id int) (*domain.TicketDetail, error)
	List(ctx context.Context, filter domain.TicketFilterDTO) ([]domain.TicketDetail, error)
	ListActive(ctx context.Context) ([]domain.TicketDetail, error)
	ListByPlate(ctx context.Context, plate string) ([]domain.TicketDetail, error)
}

type TicketHandler struct {
	tickets TicketService
}

func NewTicketHandler(ts TicketService) *TicketHandler {
	return &TicketHandler{tickets: ts}
}

// POST /tickets/entrada
func (h *TicketHandler) RegisterEntry(c *gin.Context) {
	var dto domain.TicketEntryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respond.Error(c, err)
		return
	}

	ticket, err := h.tickets.RegisterEntry(c.Request.Context(), dto, callerID(c))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"mensaje": "Entrada registrada exitosamente", "ticket": ticket})
}

// PUT /tickets/:id/salida
func (h *TicketHandler) RegisterExit(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ticket, err := h.tickets.RegisterExit(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Salida registrada exitosamente", "ticket": ticket})
}

// GET /tickets
func (h *TicketHandler) List(c *gin.Context) {
	var filter domain.TicketFilterDTO
	if err := c.ShouldBindQuery(&filter); err != nil {
		respond.Error(c, err)
		return
	}

	tickets, err := h.tickets.List(c.Request.Context(), filter)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(tickets), "tickets": tickets})
}

// GET /tickets/activos
func (h *TicketHandler) ListActive(c *gin.Context) {
	tickets, err := h.tickets.ListActive(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(tickets), "tickets": tickets})
}

// GET /tickets/vehiculo/:placa
func (h *TicketHandler) ListByPlate(c *gin.Context) {
	plate := domain.NormalizePlate(c.Param("placa"))
	tickets, err := h.tickets.ListByPlate(c.Request.Context(), plate)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(tickets), "placa": plate, "tickets": tickets})
}

// GET /tickets/:id
func (h *TicketHandler) GetByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ticket, err := h.tickets.GetByID(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticket": ticket})
}
