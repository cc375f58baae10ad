package domain

import (
	"strings"

	"gopkg.in/guregu/null.v4"
)

type Client struct {
	ID       int         `db:"id" json:"id"`
	Nombre   string      `db:"nombre" json:"nombre"`
	Telefono null.String `db:"telefono" json:"telefono"`
	Correo   null.String `db:"correo" json:"correo"`
	NIT      null.String `db:"nit" json:"nit"`
}

type ClientDTO struct {
	Nombre   string `json:"nombre" binding:"required,max=100"`
	Telefono string `json:"telefono" binding:"omitempty,max=20"`
	Correo   string `json:"correo" binding:"omitempty,email,max=100"`
	NIT      string `json:"nit" binding:"omitempty,max=20"`
}

// Vehicle plates are unique and always stored uppercase.
type Vehicle struct {
	ID        int         `db:"id" json:"id"`
	ClienteID null.Int    `db:"cliente_id" json:"cliente_id"`
	Placa     string      `db:"placa" json:"placa"`
	Marca     null.String `db:"marca" json:"marca"`
	Modelo    null.String `db:"modelo" json:"modelo"`
	Color     null.String `db:"color" json:"color"`
}

type VehicleDetail struct {
	Vehicle
	ClienteNombre   null.String `db:"cliente_nombre" json:"cliente_nombre"`
	ClienteTelefono null.String `db:"cliente_telefono" json:"cliente_telefono"`
}

type VehicleDTO struct {
	ClienteID int    `json:"cliente_id" binding:"omitempty,gt=0"`
	Placa     string `json:"placa" binding:"required,max=15"`
	Marca     string `json:"marca" binding:"omitempty,max=50"`
	Modelo    string `json:"modelo" binding:"omitempty,max=50"`
	Color     string `json:"color" binding:"omitempty,max=30"`
}

// NormalizePlate trims and uppercases a plate so lookups match stored values.
func NormalizePlate(p string) string {
	return strings.ToUpper(strings.TrimSpace(p))
}

// NullString maps the empty string to SQL NULL.
func NullString(s string) null.String {
	return null.NewString(s, s != "")
}

// NullInt maps zero to SQL NULL.
func NullInt(i int) null.Int {
	return null.NewInt(int64(i), i != 0)
}
