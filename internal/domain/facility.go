package domain

import (
	"strings"

	"gopkg.in/guregu/null.v4"
)

type Zone struct {
	ID          int         `db:"id" json:"id"`
	Nombre      string      `db:"nombre" json:"nombre"`
	Descripcion null.String `db:"descripcion" json:"descripcion"`
}

type ZoneDetail struct {
	Zone
	TotalEspacios      int `db:"total_espacios" json:"total_espacios"`
	EspaciosDisponible int `db:"espacios_disponibles" json:"espacios_disponibles"`
}

type ZoneDTO struct {
	Nombre      string `json:"nombre" binding:"required,max=50"`
	Descripcion string `json:"descripcion" binding:"omitempty,max=255"`
}

// Space is a single parking slot. Disponible is cleared by ticket entry and
// set again by ticket exit; admins may override it.
type Space struct {
	ID         int    `db:"id" json:"id"`
	ZonaID     int    `db:"zona_id" json:"zona_id"`
	Codigo     string `db:"codigo" json:"codigo"`
	Disponible bool   `db:"disponible" json:"disponible"`
}

type SpaceDetail struct {
	Space
	ZonaNombre null.String `db:"zona_nombre" json:"zona_nombre"`
}

type SpaceDTO struct {
	ZonaID     int    `json:"zona_id" binding:"required,gt=0"`
	Codigo     string `json:"codigo" binding:"required,max=10"`
	Disponible *bool  `json:"disponible"`
}

type SpaceAvailabilityDTO struct {
	Disponible *bool `json:"disponible" binding:"required"`
}

type SpaceFilterDTO struct {
	ZonaID int `form:"zona_id" binding:"omitempty,gt=0"`
}

func NormalizeSpaceCode(c string) string {
	return strings.ToUpper(strings.TrimSpace(c))
}

type Tariff struct {
	ID          int    `db:"id" json:"id"`
	Descripcion string `db:"descripcion" json:"descripcion"`
	PrecioHora  Amount `db:"precio_hora" json:"precio_hora"`
}

type TariffDTO struct {
	Descripcion string `json:"descripcion" binding:"required,max=100"`
	PrecioHora  Amount `json:"precio_hora" binding:"required,gt=0,lte=99999999.99"`
}

func (d TariffDTO) Validate() error {
	if strings.TrimSpace(d.Descripcion) == "" {
		return NewValidationError("descripcion is required")
	}
	return CheckAmount("precio_hora", d.PrecioHora)
}
