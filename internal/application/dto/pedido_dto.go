package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PedidoItem línea de un pedido.
type PedidoItem struct {
	ProductoID     string          `json:"producto_id"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	Unidad         string          `json:"unidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

// CrearPedidoRequest body para POST /api/pedidos.
type CrearPedidoRequest struct {
	ClienteID    string       `json:"cliente_id"`
	FechaEntrega *time.Time   `json:"fecha_entrega,omitempty"`
	Notas        string       `json:"notas"`
	Items        []PedidoItem `json:"items"`
}

// AsignarPedidoRequest body para POST /api/pedidos/:id/asignar.
type AsignarPedidoRequest struct {
	ViajeID string `json:"viaje_id"`
}

// EntregarPedidoRequest body para POST /api/pedidos/:id/entregar.
type EntregarPedidoRequest struct {
	Pagado bool `json:"pagado"`
}

// PedidoResponse pedido con sus líneas.
type PedidoResponse struct {
	ID           string       `json:"id"`
	ClienteID    string       `json:"cliente_id"`
	FechaPedido  time.Time    `json:"fecha_pedido"`
	FechaEntrega *time.Time   `json:"fecha_entrega,omitempty"`
	Estado       string       `json:"estado"`
	ViajeID      string       `json:"viaje_id,omitempty"`
	Pagado       bool         `json:"pagado"`
	Notas        string       `json:"notas,omitempty"`
	Items        []PedidoItem `json:"items"`
}

// ── Viajes ────────────────────────────────────────────────────────────────────

// IniciarViajeRequest body para POST /api/viajes.
type IniciarViajeRequest struct {
	VehiculoID string `json:"vehiculo_id"`
	ChoferID   string `json:"chofer_id"`
	Notas      string `json:"notas"`
}

// ViajeResponse representación de un viaje.
type ViajeResponse struct {
	ID           string     `json:"id"`
	VehiculoID   string     `json:"vehiculo_id"`
	ChoferID     string     `json:"chofer_id"`
	FechaSalida  time.Time  `json:"fecha_salida"`
	FechaRegreso *time.Time `json:"fecha_regreso,omitempty"`
	Estado       string     `json:"estado"`
	Notas        string     `json:"notas,omitempty"`
}
