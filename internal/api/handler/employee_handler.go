package handler

import (
	"net/http"

	"parqueo_api/internal/api/respond"
	"parqueo_api/internal/domain"
	"parqueo_api/internal/service"

	"github.com/gin-gonic/gin"
)

// EmployeeHandler serves employees and the shifts they are assigned to.
type EmployeeHandler struct {
	employees *service.EmployeeService
}

func NewEmployeeHandler(es *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employees: es}
}

// POST /empleados
func (h *EmployeeHandler) Create(c *gin.Context) {
	var dto domain.EmployeeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respond.Error(c, err)
		return
	}
	e, err := h.employees.Create(c.Request.Context(), dto)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"mensaje": "Empleado registrado exitosamente", "empleado": e})
}

// GET /empleados
func (h *EmployeeHandler) List(c *gin.Context) {
	es, err := h.employees.List(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(es), "empleados": es})
}

// GET /empleados/:id
func (h *EmployeeHandler) GetByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	e, err := h.employees.GetByID(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"empleado": e})
}

// PUT /empleados/:id
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var dto domain.EmployeeUpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respond.Error(c, err)
		return
	}
	e, err := h.employees.Update(c.Request.Context(), id, dto)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Empleado actualizado exitosamente", "empleado": e})
}

// PATCH /empleados/:id/estado
func (h *EmployeeHandler) SetActive(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var dto domain.EmployeeStatusDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respond.Error(c, err)
		return
	}
	e, err := h.employees.SetActive(c.Request.Context(), id, *dto.Activo)
	if err != nil {
		respond.Error(c, err)
		return
	}
	msg := "Empleado desactivado"
	if *dto.Activo {
		msg = "Empleado activado"
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": msg, "empleado": e})
}

// DELETE /empleados/:id
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.employees.Delete(c.Request.Context(), id); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Empleado eliminado exitosamente"})
}

// POST /turnos
func (h *EmployeeHandler) CreateShift(c *gin.Context) {
	var dto domain.ShiftDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respond.Error(c, err)
		return
	}
	s, err := h.employees.CreateShift(c.Request.Context(), dto)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"mensaje": "Turno creado exitosamente", "turno": s})
}

// GET /turnos
func (h *EmployeeHandler) ListShifts(c *gin.Context) {
	shifts, err := h.employees.ListShifts(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(shifts), "turnos": shifts})
}

// GET /turnos/:id
func (h *EmployeeHandler) GetShift(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	s, err := h.employees.GetShift(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"turno": s})
}

// PUT /turnos/:id
func (h *EmployeeHandler) UpdateShift(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var dto domain.ShiftDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respond.Error(c, err)
		return
	}
	s, err := h.employees.UpdateShift(c.Request.Context(), id, dto)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Turno actualizado exitosamente", "turno": s})
}

// DELETE /turnos/:id
func (h *EmployeeHandler) DeleteShift(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.employees.DeleteShift(c.Request.Context(), id); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Turno eliminado exitosamente"})
}
