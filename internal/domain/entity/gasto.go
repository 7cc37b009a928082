package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de gasto.
const (
	GastoCombustible   = "combustible"
	GastoMantenimiento = "mantenimiento"
	GastoPeaje         = "peaje"
	GastoSeguro        = "seguro"
	GastoSalario       = "salario"
	GastoAlimento      = "alimento"
	GastoSanidad       = "sanidad"
	GastoOtro          = "otro"
)

// TipoGastoValido informa si el string corresponde a un tipo conocido.
func TipoGastoValido(t string) bool {
	switch t {
	case GastoCombustible, GastoMantenimiento, GastoPeaje, GastoSeguro,
		GastoSalario, GastoAlimento, GastoSanidad, GastoOtro:
		return true
	}
	return false
}

// Gasto registra una erogación. VehiculoID, Kilometraje y Litros aplican a
// gastos de flota; EmpleadoID aplica a salarios.
type Gasto struct {
	ID          string
	Fecha       time.Time
	Tipo        string
	Monto       decimal.Decimal
	VehiculoID  string
	Kilometraje *int
	Litros      *decimal.Decimal
	EmpleadoID  string
	Descripcion string
	UsuarioID   string // quien lo registró
	CreatedAt   time.Time
}
