package domain

import (
	"regexp"

	"gopkg.in/guregu/null.v4"
)

type Shift struct {
	ID          int         `db:"id" json:"id"`
	Descripcion null.String `db:"descripcion" json:"descripcion"`
	HoraInicio  string      `db:"hora_inicio" json:"hora_inicio"`
	HoraFin     string      `db:"hora_fin" json:"hora_fin"`
}

type ShiftDTO struct {
	Descripcion string `json:"descripcion" binding:"omitempty,max=100"`
	HoraInicio  string `json:"hora_inicio"`
	HoraFin     string `json:"hora_fin"`
}

var clockTimeRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]:[0-5][0-9]$`)

// ValidClockTime reports whether s is a wall-clock time in HH:MM:SS form.
func ValidClockTime(s string) bool {
	return clockTimeRe.MatchString(s)
}

// Validate requires both times on create.
func (d ShiftDTO) Validate() error {
	if d.HoraInicio == "" || d.HoraFin == "" {
		return NewValidationError("hora_inicio and hora_fin are required")
	}
	return d.validateFormat()
}

// ValidatePartial checks only the times that are present, for updates.
func (d ShiftDTO) ValidatePartial() error {
	return d.validateFormat()
}

func (d ShiftDTO) validateFormat() error {
	if (d.HoraInicio != "" && !ValidClockTime(d.HoraInicio)) || (d.HoraFin != "" && !ValidClockTime(d.HoraFin)) {
		return NewValidationError("times must use HH:MM:SS format (e.g. 08:00:00)")
	}
	return nil
}

type Employee struct {
	ID        int         `db:"id" json:"id"`
	UsuarioID int         `db:"usuario_id" json:"usuario_id"`
	TurnoID   null.Int    `db:"turno_id" json:"turno_id"`
	Telefono  null.String `db:"telefono" json:"telefono"`
	Direccion null.String `db:"direccion" json:"direccion"`
	DPI       null.String `db:"dpi" json:"dpi"`
}

type EmployeeDetail struct {
	Employee
	UsuarioNombre null.String `db:"usuario_nombre" json:"usuario_nombre"`
	UsuarioCorreo null.String `db:"usuario_correo" json:"usuario_correo"`
	UsuarioActivo null.Bool   `db:"usuario_activo" json:"usuario_activo"`
	RolNombre     null.String `db:"rol_nombre" json:"rol_nombre"`
	TurnoDesc     null.String `db:"turno_descripcion" json:"turno_descripcion"`
	HoraInicio    null.String `db:"hora_inicio" json:"hora_inicio"`
	HoraFin       null.String `db:"hora_fin" json:"hora_fin"`
}

type EmployeeDTO struct {
	UsuarioID int    `json:"usuario_id" binding:"required,gt=0"`
	TurnoID   int    `json:"turno_id" binding:"omitempty,gt=0"`
	Telefono  string `json:"telefono" binding:"omitempty,max=20"`
	Direccion string `json:"direccion" binding:"omitempty,max=255"`
	DPI       string `json:"dpi" binding:"omitempty,max=20"`
}

type EmployeeUpdateDTO struct {
	TurnoID   int    `json:"turno_id" binding:"omitempty,gt=0"`
	Telefono  string `json:"telefono" binding:"omitempty,max=20"`
	Direccion string `json:"direccion" binding:"omitempty,max=255"`
	DPI       string `json:"dpi" binding:"omitempty,max=20"`
}

type EmployeeStatusDTO struct {
	Activo *bool `json:"activo" binding:"required"`
}
