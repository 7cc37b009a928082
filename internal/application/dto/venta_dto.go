package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// VentaItem línea del carrito de venta. Cantidad y PrecioUnitario van en la
// unidad indicada; el servidor convierte a unidad base para descontar stock.
type VentaItem struct {
	ProductoID     string          `json:"producto_id"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	Unidad         string          `json:"unidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

// CrearVentaRequest body para POST /api/ventas.
type CrearVentaRequest struct {
	ClienteID      string          `json:"cliente_id"`
	VehiculoID     string          `json:"vehiculo_id"`
	MetodoPago     string          `json:"metodo_pago"`
	DescuentoPct   decimal.Decimal `json:"descuento_pct"`
	DescuentoMonto decimal.Decimal `json:"descuento_monto"`
	// Obligatoria para cuenta_corriente; debe ser estrictamente futura.
	FechaVencimiento *time.Time  `json:"fecha_vencimiento,omitempty"`
	Items            []VentaItem `json:"items"`
}

// DetalleVentaResponse línea de venta persistida.
type DetalleVentaResponse struct {
	ProductoID     string          `json:"producto_id"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	Unidad         string          `json:"unidad"`
	CantidadBase   decimal.Decimal `json:"cantidad_base"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// VentaResponse venta persistida con sus detalles.
type VentaResponse struct {
	ID             string                 `json:"id"`
	Fecha          time.Time              `json:"fecha"`
	ClienteID      string                 `json:"cliente_id"`
	VendedorID     string                 `json:"vendedor_id"`
	VehiculoID     string                 `json:"vehiculo_id"`
	MetodoPago     string                 `json:"metodo_pago"`
	Subtotal       decimal.Decimal        `json:"subtotal"`
	DescuentoPct   decimal.Decimal        `json:"descuento_pct"`
	DescuentoMonto decimal.Decimal        `json:"descuento_monto"`
	Total          decimal.Decimal        `json:"total"`
	Items          []DetalleVentaResponse `json:"items"`
}
