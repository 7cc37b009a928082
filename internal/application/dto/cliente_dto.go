package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateClienteRequest body para POST /api/clientes.
type CreateClienteRequest struct {
	Nombre             string `json:"nombre"`
	DNI                string `json:"dni"`
	Telefono           string `json:"telefono"`
	Direccion          string `json:"direccion"`
	MetodoPagoHabitual string `json:"metodo_pago_habitual"`
}

// UpdateClienteRequest body para PUT /api/clientes/:id.
type UpdateClienteRequest struct {
	Nombre             *string `json:"nombre,omitempty"`
	Telefono           *string `json:"telefono,omitempty"`
	Direccion          *string `json:"direccion,omitempty"`
	MetodoPagoHabitual *string `json:"metodo_pago_habitual,omitempty"`
	Estado             *string `json:"estado,omitempty"`
}

// ClienteResponse representación de un cliente.
type ClienteResponse struct {
	ID                 string          `json:"id"`
	Nombre             string          `json:"nombre"`
	DNI                string          `json:"dni"`
	Telefono           string          `json:"telefono,omitempty"`
	Direccion          string          `json:"direccion,omitempty"`
	MetodoPagoHabitual string          `json:"metodo_pago_habitual,omitempty"`
	Deuda              decimal.Decimal `json:"deuda"`
	TotalCompras       decimal.Decimal `json:"total_compras"`
	FechaUltimaCompra  *time.Time      `json:"fecha_ultima_compra,omitempty"`
	VencimientoDeuda   *time.Time      `json:"vencimiento_deuda,omitempty"`
	Estado             string          `json:"estado"`
}

// RegistrarPagoRequest body para POST /api/clientes/:id/pagos.
type RegistrarPagoRequest struct {
	Monto      decimal.Decimal `json:"monto"`
	MetodoPago string          `json:"metodo_pago"`
	Nota       string          `json:"nota"`
}

// AjusteDeudaRequest body para POST /api/clientes/:id/ajuste-deuda.
type AjusteDeudaRequest struct {
	Monto   decimal.Decimal `json:"monto"`
	Aumenta bool            `json:"aumenta"`
	Motivo  string          `json:"motivo"`
}

// PagoResponse asiento de cuenta corriente.
type PagoResponse struct {
	ID         string          `json:"id"`
	ClienteID  string          `json:"cliente_id"`
	Tipo       string          `json:"tipo"`
	Monto      decimal.Decimal `json:"monto"`
	MetodoPago string          `json:"metodo_pago,omitempty"`
	Motivo     string          `json:"motivo,omitempty"`
	Referencia string          `json:"referencia,omitempty"`
	Fecha      time.Time       `json:"fecha"`
}
