package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago.
const (
	PagoEfectivo        = "efectivo"
	PagoTransferencia   = "transferencia"
	PagoCuentaCorriente = "cuenta_corriente"
)

// MetodoPagoValido informa si el string corresponde a un método conocido.
func MetodoPagoValido(m string) bool {
	switch m {
	case PagoEfectivo, PagoTransferencia, PagoCuentaCorriente:
		return true
	}
	return false
}

// Venta es una venta realizada desde el stock de un vehículo.
// Total = Σ subtotales de los detalles − descuento.
type Venta struct {
	ID             string
	Fecha          time.Time
	ClienteID      string
	VendedorID     string
	VehiculoID     string
	MetodoPago     string
	Subtotal       decimal.Decimal // antes de descuento
	DescuentoPct   decimal.Decimal // 0-100
	DescuentoMonto decimal.Decimal // monto fijo adicional
	Total          decimal.Decimal
	CreatedAt      time.Time
}

// DetalleVenta es una línea de venta. Cantidad y PrecioUnitario se guardan
// tal como se cargaron (en Unidad); CantidadBase es la cantidad convertida a
// la unidad base del producto, que es la que descuenta stock.
type DetalleVenta struct {
	ID             string
	VentaID        string
	ProductoID     string
	Cantidad       decimal.Decimal // en Unidad (la ingresada por el vendedor)
	Unidad         string
	CantidadBase   decimal.Decimal // en unidad base del producto
	PrecioUnitario decimal.Decimal // por Unidad ingresada
	Subtotal       decimal.Decimal // Cantidad × PrecioUnitario
}
