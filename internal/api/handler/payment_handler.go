package handler

import (
	"context"
	"net/http"

	"parqueo_api/internal/api/respond"
	"parqueo_api/internal/domain"

	"github.com/gin-gonic/gin"
)

type PaymentService interface {
	RegisterPayment(ctx context.Context, dto domain.PaymentDTO) (*domain.PaymentReceipt, error)
	GetByID(ctx context.Context, id int) (*domain.PaymentDetail, error)
	GetByTicket(ctx context.Context, ticketID int) (*domain.PaymentDetail, error)
	List(ctx context.Context, filter domain.PaymentFilterDTO) ([]domain.PaymentDetail, domain.Amount, error)
	Report(ctx context.Context, filter domain.PaymentFilterDTO) (*domain.PaymentReport, error)
}

type PaymentHandler struct {
	payments PaymentService
}

func NewPaymentHandler(ps PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: ps}
}

// POST /pagos
func (h *PaymentHandler) RegisterPayment(c *gin.Context) {
	var dto domain.PaymentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respond.Error(c, err)
		return
	}

	receipt, err := h.payments.RegisterPayment(c.Request.Context(), dto)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"mensaje":        "Pago registrado exitosamente",
		"pago":           receipt.Payment,
		"monto_esperado": receipt.Expected,
		"cambio":         receipt.Change,
	})
}

// GET /pagos
func (h *PaymentHandler) List(c *gin.Context) {
	var filter domain.PaymentFilterDTO
	if err := c.ShouldBindQuery(&filter); err != nil {
		respond.Error(c, err)
		return
	}

	payments, total, err := h.payments.List(c.Request.Context(), filter)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(payments), "total_monto": total, "pagos": payments})
}

// GET /pagos/reporte
func (h *PaymentHandler) Report(c *gin.Context) {
	var filter domain.PaymentFilterDTO
	if err := c.ShouldBindQuery(&filter); err != nil {
		respond.Error(c, err)
		return
	}

	report, err := h.payments.Report(c.Request.Context(), filter)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GET /pagos/ticket/:ticket_id
func (h *PaymentHandler) GetByTicket(c *gin.Context) {
	ticketID, ok := paramID(c, "ticket_id")
	if !ok {
		return
	}

	payment, err := h.payments.GetByTicket(c.Request.Context(), ticketID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pago": payment})
}

// GET /pagos/:id
func (h *PaymentHandler) GetByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	payment, err := h.payments.GetByID(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pago": payment})
}
