package handler

import (
	"net/http"

	"parqueo_api/internal/api/respond"
	"parqueo_api/internal/domain"
	"parqueo_api/internal/service"

	"github.com/gin-gonic/gin"
)

// TariffHandler serves tariffs and payment types, the two price catalogues.
type TariffHandler struct {
	tariffs      *service.TariffService
	paymentTypes *service.PaymentTypeService
}

func NewTariffHandler(ts *service.TariffService, pts *service.PaymentTypeService) *TariffHandler {
	return &TariffHandler{tariffs: ts, paymentTypes: pts}
}

// POST /tarifas
func (h *TariffHandler) Create(c *gin.Context) {
	var dto domain.TariffDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respond.Error(c, err)
		return
	}
	tariff, err := h.tariffs.Create(c.Request.Context(), dto)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"mensaje": "Tarifa creada exitosamente", "tarifa": tariff})
}

// GET /tarifas
func (h *TariffHandler) List(c *gin.Context) {
	tariffs, err := h.tariffs.List(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(tariffs), "tarifas": tariffs})
}

// GET /tarifas/:id
func (h *TariffHandler) GetByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	tariff, err := h.tariffs.GetByID(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tarifa": tariff})
}

// PUT /tarifas/:id
func (h *TariffHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var dto domain.TariffDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respond.Error(c, err)
		return
	}
	tariff, err := h.tariffs.Update(c.Request.Context(), id, dto)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Tarifa actualizada exitosamente", "tarifa": tariff})
}

// DELETE /tarifas/:id
func (h *TariffHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.tariffs.Delete(c.Request.Context(), id); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Tarifa eliminada exitosamente"})
}

// POST /tipospago
func (h *TariffHandler) CreatePaymentType(c *gin.Context) {
	var dto domain.PaymentTypeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respond.Error(c, err)
		return
	}
	pt, err := h.paymentTypes.Create(c.Request.Context(), dto)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"mensaje": "Tipo de pago creado exitosamente", "tipo_pago": pt})
}

// GET /tipospago
func (h *TariffHandler) ListPaymentTypes(c *gin.Context) {
	types, err := h.paymentTypes.List(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(types), "tipos_pago": types})
}

// GET /tipospago/:id
func (h *TariffHandler) GetPaymentType(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	pt, err := h.paymentTypes.GetByID(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tipo_pago": pt})
}

// PUT /tipospago/:id
func (h *TariffHandler) UpdatePaymentType(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var dto domain.PaymentTypeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respond.Error(c, err)
		return
	}
	pt, err := h.paymentTypes.Update(c.Request.Context(), id, dto)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Tipo de pago actualizado exitosamente", "tipo_pago": pt})
}

// DELETE /tipospago/:id
func (h *TariffHandler) DeletePaymentType(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.paymentTypes.Delete(c.Request.Context(), id); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Tipo de pago eliminado exitosamente"})
}
