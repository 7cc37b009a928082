package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de cliente.
const (
	ClienteActivo   = "activo"
	ClienteMoroso   = "moroso"
	ClienteInactivo = "inactivo"
)

// Cliente representa un cliente con cuenta corriente opcional. Deuda puede
// quedar negativa: un pago en exceso es saldo a favor, no un error.
type Cliente struct {
	ID                 string
	Nombre             string
	DNI                string
	Telefono           string
	Direccion          string
	MetodoPagoHabitual string
	Deuda              decimal.Decimal
	TotalCompras       decimal.Decimal
	FechaUltimaCompra  *time.Time
	VencimientoDeuda   *time.Time // fecha pactada de pago de la cuenta corriente
	Estado             string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Moroso indica si el cliente tiene deuda vencida al instante dado.
func (c *Cliente) Moroso(ahora time.Time) bool {
	return c.Deuda.IsPositive() && c.VencimientoDeuda != nil && c.VencimientoDeuda.Before(ahora)
}
