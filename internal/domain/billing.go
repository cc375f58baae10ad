package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Charge is the billing outcome for one stay.
type Charge struct {
	Minutes       int64  `json:"minutos_totales"`
	BillableHours int64  `json:"horas_cobrar"`
	Amount        Amount `json:"monto_total"`
}

// ElapsedMinutes returns the whole minutes between entry and exit, truncated.
// A negative interval counts as zero.
func ElapsedMinutes(entry, exit time.Time) int64 {
	d := exit.Sub(entry)
	if d <= 0 {
		return 0
	}
	return int64(d / time.Minute)
}

// BillableHours rounds minutes up to the next whole hour: 59 and 60 bill one
// hour, 61 bills two.
func BillableHours(minutes int64) int64 {
	if minutes <= 0 {
		return 0
	}
	return (minutes + 59) / 60
}

// ComputeCharge applies the hourly price to the stay between entry and exit.
func ComputeCharge(entry, exit time.Time, hourlyPrice Amount) Charge {
	minutes := ElapsedMinutes(entry, exit)
	hours := BillableHours(minutes)
	return Charge{
		Minutes:       minutes,
		BillableHours: hours,
		Amount:        NewAmount(hourlyPrice.Mul(decimal.NewFromInt(hours))),
	}
}

// Change is what is returned to the customer: tendered minus expected when
// positive, zero otherwise. Under-payment is not an error.
func Change(tendered, expected Amount) Amount {
	diff := tendered.Sub(expected.Decimal)
	if !diff.IsPositive() {
		return NewAmount(decimal.Zero)
	}
	return NewAmount(diff)
}
