package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de asiento en la cuenta corriente del cliente.
const (
	AsientoPago          = "pago"           // pago del cliente, baja la deuda
	AsientoAjusteAumento = "ajuste_aumento" // ajuste manual con motivo
	AsientoAjusteBaja    = "ajuste_baja"
	AsientoVentaCuenta   = "venta_cuenta" // venta a cuenta corriente, sube la deuda
)

// Pago es un asiento de la cuenta corriente. Monto es siempre positivo; el
// tipo determina el signo sobre la deuda. Solo inserción.
type Pago struct {
	ID         string
	ClienteID  string
	Tipo       string
	Monto      decimal.Decimal
	MetodoPago string // efectivo, transferencia (vacío para ajustes)
	Motivo     string // obligatorio en ajustes
	Referencia string // ID de venta para asientos venta_cuenta
	UsuarioID  string
	Fecha      time.Time
	CreatedAt  time.Time
}
