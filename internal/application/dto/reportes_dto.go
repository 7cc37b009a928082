package dto

import "github.com/shopspring/decimal"

// PeriodoDTO rango de fechas del reporte.
type PeriodoDTO struct {
	Inicio string `json:"inicio"` // YYYY-MM-DD
	Fin    string `json:"fin"`
}

// MontoPorClaveDTO total agrupado (método de pago, tipo de gasto).
type MontoPorClaveDTO struct {
	Clave string          `json:"clave"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// ReporteFinancieroDTO respuesta de GET /api/reportes/financiero.
type ReporteFinancieroDTO struct {
	Periodo         PeriodoDTO         `json:"periodo"`
	VentasTotal     decimal.Decimal    `json:"ventas_total"`
	CantVentas      int                `json:"cant_ventas"`
	VentasPorMetodo []MontoPorClaveDTO `json:"ventas_por_metodo"`
	CobrosTotal     decimal.Decimal    `json:"cobros_total"`
	GastosTotal     decimal.Decimal    `json:"gastos_total"`
	GastosPorTipo   []MontoPorClaveDTO `json:"gastos_por_tipo"`
	Resultado       decimal.Decimal    `json:"resultado"` // ventas - gastos
	DeudaTotal      decimal.Decimal    `json:"deuda_total"`
}

// VentasPorProductoDTO fila del reporte por producto.
type VentasPorProductoDTO struct {
	ProductoID   string          `json:"producto_id"`
	Producto     string          `json:"producto"`
	UnidadBase   string          `json:"unidad_base"`
	CantidadBase decimal.Decimal `json:"cantidad_base"`
	Ingresos     decimal.Decimal `json:"ingresos"`
	Costo        decimal.Decimal `json:"costo"`
	Margen       decimal.Decimal `json:"margen"`
}

// VentasPorVendedorDTO fila del reporte por vendedor.
type VentasPorVendedorDTO struct {
	VendedorID string          `json:"vendedor_id"`
	Vendedor   string          `json:"vendedor"`
	CantVentas int             `json:"cant_ventas"`
	Ingresos   decimal.Decimal `json:"ingresos"`
}

// GastosPorVehiculoDTO fila del reporte de gastos de flota.
type GastosPorVehiculoDTO struct {
	VehiculoID string          `json:"vehiculo_id"`
	Patente    string          `json:"patente"`
	Total      decimal.Decimal `json:"total"`
	Litros     decimal.Decimal `json:"litros"`
}
