package domain

import (
	"strings"
	"time"

	"gopkg.in/guregu/null.v4"
)

// Fine is a penalty attached to a ticket, independent of its payment.
type Fine struct {
	ID       int       `db:"id" json:"id"`
	TicketID int       `db:"ticket_id" json:"ticket_id"`
	Motivo   string    `db:"motivo" json:"motivo"`
	Monto    Amount    `db:"monto" json:"monto"`
	Fecha    time.Time `db:"fecha" json:"fecha"`
}

type FineDetail struct {
	Fine
	Placa         null.String `db:"placa" json:"placa"`
	ClienteNombre null.String `db:"cliente_nombre" json:"cliente_nombre"`
}

type FineDTO struct {
	TicketID int    `json:"ticket_id" binding:"required,gt=0"`
	Motivo   string `json:"motivo" binding:"required,max=255"`
	Monto    Amount `json:"monto" binding:"required,gt=0,lte=99999999.99"`
}

func (d FineDTO) Validate() error {
	if d.TicketID <= 0 || strings.TrimSpace(d.Motivo) == "" {
		return NewValidationError("ticket_id, motivo and monto are required")
	}
	return CheckAmount("monto", d.Monto)
}

type FineUpdateDTO struct {
	Motivo string `json:"motivo" binding:"omitempty,max=255"`
	Monto  Amount `json:"monto" binding:"omitempty,gt=0,lte=99999999.99"`
}
