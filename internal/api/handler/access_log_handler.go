package handler

import (
	"net/http"
	"strconv"

	"parqueo_api/internal/api/respond"
	"parqueo_api/internal/domain"
	"parqueo_api/internal/service"

	"github.com/gin-gonic/gin"
)

type AccessLogHandler struct {
	logs *service.AccessLogService
}

func NewAccessLogHandler(ls *service.AccessLogService) *AccessLogHandler {
	return &AccessLogHandler{logs: ls}
}

// POST /historial
func (h *AccessLogHandler) Record(c *gin.Context) {
	var dto domain.AccessLogDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respond.Error(c, err)
		return
	}
	entry, err := h.logs.Record(c.Request.Context(), dto)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"mensaje": "Acceso registrado exitosamente", "registro": entry})
}

// GET /historial
func (h *AccessLogHandler) List(c *gin.Context) {
	var filter domain.AccessLogFilterDTO
	if err := c.ShouldBindQuery(&filter); err != nil {
		respond.Error(c, err)
		return
	}
	entries, err := h.logs.List(c.Request.Context(), filter)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(entries), "historial": entries})
}

// GET /historial/estadisticas
func (h *AccessLogHandler) Stats(c *gin.Context) {
	var filter domain.AccessLogFilterDTO
	if err := c.ShouldBindQuery(&filter); err != nil {
		respond.Error(c, err)
		return
	}
	stats, err := h.logs.Stats(c.Request.Context(), filter)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GET /historial/usuario/:usuario_id
func (h *AccessLogHandler) ListByUser(c *gin.Context) {
	userID, ok := paramID(c, "usuario_id")
	if !ok {
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 1000 {
			respond.Error(c, domain.NewValidationError("limit must be between 1 and 1000"))
			return
		}
		limit = n
	}
	user, entries, err := h.logs.ListByUser(c.Request.Context(), userID, limit)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"usuario": user, "total": len(entries), "historial": entries})
}

// GET /historial/:id
func (h *AccessLogHandler) GetByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	entry, err := h.logs.GetByID(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"registro": entry})
}

// DELETE /historial/limpiar
func (h *AccessLogHandler) Purge(c *gin.Context) {
	var dto domain.AccessPurgeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respond.Error(c, err)
		return
	}
	n, cutoff, err := h.logs.Purge(c.Request.Context(), dto.Dias)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"mensaje":        "Historial depurado exitosamente",
		"eliminados":     n,
		"fecha_limite":   cutoff,
		"dias_retenidos": dto.Dias,
	})
}
