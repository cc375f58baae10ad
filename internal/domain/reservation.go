package domain

import (
	"time"

	"gopkg.in/guregu/null.v4"
)

type ReservationStatus string

const (
	ReservationActive    ReservationStatus = "ACTIVA"
	ReservationCancelled ReservationStatus = "CANCELADA"
	ReservationFinished  ReservationStatus = "FINALIZADA"
)

type Reservation struct {
	ID           int               `db:"id" json:"id"`
	ClienteID    int               `db:"cliente_id" json:"cliente_id"`
	EspacioID    int               `db:"espacio_id" json:"espacio_id"`
	FechaReserva time.Time         `db:"fecha_reserva" json:"fecha_reserva"`
	FechaInicio  time.Time         `db:"fecha_inicio" json:"fecha_inicio"`
	FechaFin     time.Time         `db:"fecha_fin" json:"fecha_fin"`
	Estado       ReservationStatus `db:"estado" json:"estado"`
}

type ReservationDetail struct {
	Reservation
	ClienteNombre   null.String `db:"cliente_nombre" json:"cliente_nombre"`
	ClienteTelefono null.String `db:"cliente_telefono" json:"cliente_telefono"`
	EspacioCodigo   null.String `db:"espacio_codigo" json:"espacio_codigo"`
	ZonaNombre      null.String `db:"zona_nombre" json:"zona_nombre"`
}

type ReservationDTO struct {
	ClienteID   int       `json:"cliente_id" binding:"required,gt=0"`
	EspacioID   int       `json:"espacio_id" binding:"required,gt=0"`
	FechaInicio time.Time `json:"fecha_inicio" binding:"required"`
	FechaFin    time.Time `json:"fecha_fin" binding:"required"`
}

// Validate checks the period; fecha_fin must be strictly after fecha_inicio.
func (d ReservationDTO) Validate() error {
	if d.ClienteID <= 0 || d.EspacioID <= 0 || d.FechaInicio.IsZero() || d.FechaFin.IsZero() {
		return NewValidationError("cliente_id, espacio_id, fecha_inicio and fecha_fin are required")
	}
	if !d.FechaFin.After(d.FechaInicio) {
		return NewValidationError("fecha_fin must be after fecha_inicio")
	}
	return nil
}

type ReservationUpdateDTO struct {
	FechaInicio time.Time `json:"fecha_inicio" binding:"required"`
	FechaFin    time.Time `json:"fecha_fin" binding:"required"`
}

type ReservationFilterDTO struct {
	Estado      string `form:"estado" binding:"omitempty,oneof=ACTIVA CANCELADA FINALIZADA"`
	ClienteID   int    `form:"cliente_id" binding:"omitempty,gt=0"`
	FechaInicio string `form:"fecha_inicio" binding:"omitempty,datetime=2006-01-02"`
	FechaFin    string `form:"fecha_fin" binding:"omitempty,datetime=2006-01-02"`
}

// ReservationCounts summarizes a reservation listing by state.
type ReservationCounts struct {
	Activas     int `json:"activas"`
	Finalizadas int `json:"finalizadas"`
	Canceladas  int `json:"canceladas"`
}

func CountReservations(rs []ReservationDetail) ReservationCounts {
	var c ReservationCounts
	for _, r := range rs {
		switch r.Estado {
		case ReservationActive:
			c.Activas++
		case ReservationFinished:
			c.Finalizadas++
		case ReservationCancelled:
			c.Canceladas++
		}
	}
	return c
}
