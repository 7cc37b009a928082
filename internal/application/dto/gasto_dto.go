package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegistrarGastoRequest body para POST /api/gastos.
type RegistrarGastoRequest struct {
	Tipo        string           `json:"tipo"`
	Monto       decimal.Decimal  `json:"monto"`
	Fecha       *time.Time       `json:"fecha,omitempty"` // por defecto ahora
	VehiculoID  string           `json:"vehiculo_id,omitempty"`
	Kilometraje *int             `json:"kilometraje,omitempty"`
	Litros      *decimal.Decimal `json:"litros,omitempty"`
	EmpleadoID  string           `json:"empleado_id,omitempty"`
	Descripcion string           `json:"descripcion"`
}

// GastoResponse representación de un gasto.
type GastoResponse struct {
	ID          string           `json:"id"`
	Fecha       time.Time        `json:"fecha"`
	Tipo        string           `json:"tipo"`
	Monto       decimal.Decimal  `json:"monto"`
	VehiculoID  string           `json:"vehiculo_id,omitempty"`
	Kilometraje *int             `json:"kilometraje,omitempty"`
	Litros      *decimal.Decimal `json:"litros,omitempty"`
	EmpleadoID  string           `json:"empleado_id,omitempty"`
	Descripcion string           `json:"descripcion,omitempty"`
	UsuarioID   string           `json:"usuario_id"`
}
