package domain

import (
	"time"

	"gopkg.in/guregu/null.v4"
)

type TicketStatus string

const (
	TicketActive TicketStatus = "ACTIVO"
	TicketClosed TicketStatus = "CERRADO"
)

// Ticket is one vehicle's occupancy of one space. It moves ACTIVO -> CERRADO
// exactly once; HoraSalida is set iff Estado is CERRADO.
type Ticket struct {
	ID          int          `db:"id" json:"id"`
	VehiculoID  int          `db:"vehiculo_id" json:"vehiculo_id"`
	EspacioID   int          `db:"espacio_id" json:"espacio_id"`
	EmpleadoID  null.Int     `db:"empleado_id" json:"empleado_id"`
	TarifaID    int          `db:"tarifa_id" json:"tarifa_id"`
	HoraEntrada time.Time    `db:"hora_entrada" json:"hora_entrada"`
	HoraSalida  null.Time    `db:"hora_salida" json:"hora_salida"`
	Estado      TicketStatus `db:"estado" json:"estado"`
}

func (t *Ticket) IsActive() bool { return t.Estado == TicketActive }

// TicketDetail is a ticket joined with the display data of the rows it
// references. Charge and Elapsed are filled at read time, never stored.
type TicketDetail struct {
	Ticket
	Placa             null.String `db:"placa" json:"placa"`
	Marca             null.String `db:"marca" json:"marca"`
	Modelo            null.String `db:"modelo" json:"modelo"`
	Color             null.String `db:"color" json:"color"`
	ClienteNombre     null.String `db:"cliente_nombre" json:"cliente_nombre"`
	ClienteTelefono   null.String `db:"cliente_telefono" json:"cliente_telefono"`
	EspacioCodigo     null.String `db:"espacio_codigo" json:"espacio_codigo"`
	ZonaNombre        null.String `db:"zona_nombre" json:"zona_nombre"`
	TarifaDescripcion null.String `db:"tarifa_descripcion" json:"tarifa_descripcion"`
	PrecioHora        Amount      `db:"precio_hora" json:"precio_hora"`
	EmpleadoNombre    null.String `db:"empleado_nombre" json:"empleado_nombre"`

	*Charge `db:"-"`
	Elapsed *int64 `db:"-" json:"minutos_transcurridos,omitempty"`
}

// TicketForBilling is the locked view of a ticket used by exit and payment.
type TicketForBilling struct {
	Ticket
	PrecioHora Amount `db:"precio_hora"`
}

// Charge bills the ticket up to its exit, or up to now while still active.
func (t *TicketForBilling) Charge(now time.Time) Charge {
	end := now
	if t.HoraSalida.Valid {
		end = t.HoraSalida.Time
	}
	return ComputeCharge(t.HoraEntrada, end, t.PrecioHora)
}

type TicketEntryDTO struct {
	VehiculoID int `json:"vehiculo_id" binding:"required,gt=0"`
	EspacioID  int `json:"espacio_id" binding:"required,gt=0"`
	TarifaID   int `json:"tarifa_id" binding:"required,gt=0"`
}

func (d TicketEntryDTO) Validate() error {
	if d.VehiculoID <= 0 || d.EspacioID <= 0 || d.TarifaID <= 0 {
		return NewValidationError("vehiculo_id, espacio_id and tarifa_id are required")
	}
	return nil
}

type TicketFilterDTO struct {
	Estado      string `form:"estado" binding:"omitempty,oneof=ACTIVO CERRADO"`
	FechaInicio string `form:"fecha_inicio" binding:"omitempty,datetime=2006-01-02"`
	FechaFin    string `form:"fecha_fin" binding:"omitempty,datetime=2006-01-02"`
}
