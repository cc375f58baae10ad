package domain

import (
	"time"

	"gopkg.in/guregu/null.v4"
)

type PaymentType struct {
	ID     int    `db:"id" json:"id"`
	Nombre string `db:"nombre" json:"nombre"`
}

type PaymentTypeDTO struct {
	Nombre string `json:"nombre" binding:"required,max=50"`
}

// Payment settles a closed ticket. At most one exists per ticket.
type Payment struct {
	ID         int       `db:"id" json:"id"`
	TicketID   int       `db:"ticket_id" json:"ticket_id"`
	TipoPagoID int       `db:"tipo_pago_id" json:"tipo_pago_id"`
	Monto      Amount    `db:"monto" json:"monto"`
	FechaPago  time.Time `db:"fecha_pago" json:"fecha_pago"`
}

type PaymentDetail struct {
	Payment
	TipoPagoNombre null.String `db:"tipo_pago_nombre" json:"tipo_pago_nombre"`
	Placa          null.String `db:"placa" json:"placa"`
	ClienteNombre  null.String `db:"cliente_nombre" json:"cliente_nombre"`
}

type PaymentDTO struct {
	TicketID   int    `json:"ticket_id" binding:"required,gt=0"`
	TipoPagoID int    `json:"tipo_pago_id" binding:"required,gt=0"`
	Monto      Amount `json:"monto" binding:"required,gt=0,lte=99999999.99"`
}

func (d PaymentDTO) Validate() error {
	if d.TicketID <= 0 || d.TipoPagoID <= 0 {
		return NewValidationError("ticket_id, tipo_pago_id and monto are required")
	}
	return CheckAmount("monto", d.Monto)
}

// PaymentReceipt is the outcome of registering a payment.
type PaymentReceipt struct {
	Payment  *PaymentDetail
	Expected Amount
	Change   Amount
}

type PaymentFilterDTO struct {
	FechaInicio string `form:"fecha_inicio" binding:"omitempty,datetime=2006-01-02"`
	FechaFin    string `form:"fecha_fin" binding:"omitempty,datetime=2006-01-02"`
	TipoPagoID  int    `form:"tipo_pago_id" binding:"omitempty,gt=0"`
}

type PaymentSummary struct {
	TotalPagos     int    `db:"total_pagos" json:"total_pagos"`
	TotalRecaudado Amount `db:"total_recaudado" json:"total_recaudado"`
	PromedioPago   Amount `db:"promedio_pago" json:"promedio_pago"`
	PagoMinimo     Amount `db:"pago_minimo" json:"pago_minimo"`
	PagoMaximo     Amount `db:"pago_maximo" json:"pago_maximo"`
}

type PaymentReport struct {
	Resumen     PaymentSummary     `json:"resumen"`
	PorTipoPago []PaymentTypeTotal `json:"por_tipo_pago"`
	PorDia      []PaymentDayTotal  `json:"por_dia"`
}

type PaymentTypeTotal struct {
	TipoPago string `db:"tipo_pago" json:"tipo_pago"`
	Cantidad int    `db:"cantidad" json:"cantidad"`
	Total    Amount `db:"total" json:"total"`
}

type PaymentDayTotal struct {
	Fecha    string `db:"fecha" json:"fecha"`
	Cantidad int    `db:"cantidad" json:"cantidad"`
	Total    Amount `db:"total" json:"total"`
}
