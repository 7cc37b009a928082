package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pedido.
const (
	PedidoPendiente = "pendiente"
	PedidoAsignado  = "asignado"
	PedidoEntregado = "entregado"
	PedidoCancelado = "cancelado"
)

// Pedido es un encargo de un cliente para entrega futura; se asigna a un
// viaje y al entregarse puede marcarse pagado o quedar en cuenta corriente.
type Pedido struct {
	ID           string
	ClienteID    string
	FechaPedido  time.Time
	FechaEntrega *time.Time
	Estado       string
	ViajeID      string // vacío hasta asignarse
	Pagado       bool
	Notas        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DetallePedido es una línea de pedido; conserva la unidad tal como la pidió
// el cliente.
type DetallePedido struct {
	ID             string
	PedidoID       string
	ProductoID     string
	Cantidad       decimal.Decimal
	Unidad         string
	PrecioUnitario decimal.Decimal
}
