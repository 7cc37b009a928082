package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// MontoPorClave total agrupado por una clave (método de pago, tipo de gasto).
type MontoPorClave struct {
	Clave string
	Total decimal.Decimal
	Count int
}

// VentasPorProductoRow ventas agrupadas por producto en un período.
type VentasPorProductoRow struct {
	ProductoID   string
	Producto     string
	UnidadBase   string
	CantidadBase decimal.Decimal
	Ingresos     decimal.Decimal
	Costo        decimal.Decimal // cantidad × costo promedio
	Margen       decimal.Decimal
}

// VentasPorVendedorRow ventas agrupadas por vendedor en un período.
type VentasPorVendedorRow struct {
	VendedorID string
	Vendedor   string
	CantVentas int
	Ingresos   decimal.Decimal
}

// GastosPorVehiculoRow gastos agrupados por vehículo en un período.
type GastosPorVehiculoRow struct {
	VehiculoID string
	Patente    string
	Total      decimal.Decimal
	Litros     decimal.Decimal
}

// ResumenFinanciero totales del período. Las sumas provienen directamente de
// las filas de detalle: el reporte debe reconciliar con los libros.
type ResumenFinanciero struct {
	VentasTotal     decimal.Decimal
	CantVentas      int
	VentasPorMetodo []MontoPorClave
	CobrosTotal     decimal.Decimal
	GastosTotal     decimal.Decimal
	GastosPorTipo   []MontoPorClave
	DeudaTotal      decimal.Decimal // deuda viva de todos los clientes al cierre
}

// ReportesRepository consultas de solo lectura para reportes financieros.
type ReportesRepository interface {
	ResumenFinanciero(ctx context.Context, desde, hasta time.Time) (*ResumenFinanciero, error)
	VentasPorProducto(ctx context.Context, desde, hasta time.Time) ([]VentasPorProductoRow, error)
	VentasPorVendedor(ctx context.Context, desde, hasta time.Time) ([]VentasPorVendedorRow, error)
	GastosPorVehiculo(ctx context.Context, desde, hasta time.Time) ([]GastosPorVehiculoRow, error)
}
