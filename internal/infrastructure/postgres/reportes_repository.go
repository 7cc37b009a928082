package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmolina/avicola-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ReportesRepository = (*ReportesRepo)(nil)

// ReportesRepo consultas de solo lectura para los reportes financieros. Los
// totales salen siempre de las filas de detalle, para que el reporte
// reconcilie con los libros.
type ReportesRepo struct {
	pool *pgxpool.Pool
}

// NewReportesRepository construye el adaptador de reportes.
func NewReportesRepository(pool *pgxpool.Pool) *ReportesRepo {
	return &ReportesRepo{pool: pool}
}

// ResumenFinanciero totales de ventas, cobros, gastos y deuda del período.
func (r *ReportesRepo) ResumenFinanciero(ctx context.Context, desde, hasta time.Time) (*repository.ResumenFinanciero, error) {
	out := &repository.ResumenFinanciero{
		VentasTotal: decimal.Zero,
		CobrosTotal: decimal.Zero,
		GastosTotal: decimal.Zero,
		DeudaTotal:  decimal.Zero,
	}

	// Ventas por método de pago.
	rows, err := r.pool.Query(ctx, `
		SELECT metodo_pago, COALESCE(SUM(total), 0), COUNT(*)
		FROM ventas WHERE fecha >= $1 AND fecha < $2
		GROUP BY metodo_pago ORDER BY metodo_pago`, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("reportes.ResumenFinanciero ventas: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var m repository.MontoPorClave
		if err := rows.Scan(&m.Clave, &m.Total, &m.Count); err != nil {
			return nil, fmt.Errorf("scan ventas por metodo: %w", err)
		}
		out.VentasPorMetodo = append(out.VentasPorMetodo, m)
		out.VentasTotal = out.VentasTotal.Add(m.Total)
		out.CantVentas += m.Count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Cobros: asientos de pago del período.
	err = r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(monto), 0) FROM pagos
		WHERE tipo = 'pago' AND fecha >= $1 AND fecha < $2`, desde, hasta).Scan(&out.CobrosTotal)
	if err != nil {
		return nil, fmt.Errorf("reportes.ResumenFinanciero cobros: %w", err)
	}

	// Gastos por tipo.
	rows, err = r.pool.Query(ctx, `
		SELECT tipo, COALESCE(SUM(monto), 0), COUNT(*)
		FROM gastos WHERE fecha >= $1 AND fecha < $2
		GROUP BY tipo ORDER BY tipo`, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("reportes.ResumenFinanciero gastos: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var m repository.MontoPorClave
		if err := rows.Scan(&m.Clave, &m.Total, &m.Count); err != nil {
			return nil, fmt.Errorf("scan gastos por tipo: %w", err)
		}
		out.GastosPorTipo = append(out.GastosPorTipo, m)
		out.GastosTotal = out.GastosTotal.Add(m.Total)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Deuda viva al momento de la consulta (solo positiva: el saldo a favor
	// no compensa la deuda de otros clientes).
	err = r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(deuda), 0) FROM clientes WHERE deuda > 0`).Scan(&out.DeudaTotal)
	if err != nil {
		return nil, fmt.Errorf("reportes.ResumenFinanciero deuda: %w", err)
	}

	return out, nil
}

// VentasPorProducto cantidades, ingresos y margen por producto. El margen usa
// el costo promedio actual del producto.
func (r *ReportesRepo) VentasPorProducto(ctx context.Context, desde, hasta time.Time) ([]repository.VentasPorProductoRow, error) {
	const query = `
	SELECT
	    p.id,
	    p.nombre,
	    p.unidad_base,
	    COALESCE(SUM(d.cantidad_base), 0)               AS cantidad_base,
	    COALESCE(SUM(d.subtotal), 0)                    AS ingresos,
	    COALESCE(SUM(d.cantidad_base * p.costo), 0)     AS costo,
	    COALESCE(SUM(d.subtotal - d.cantidad_base * p.costo), 0) AS margen
	FROM detalle_ventas d
	JOIN ventas v    ON v.id = d.venta_id
	JOIN productos p ON p.id = d.producto_id
	WHERE v.fecha >= $1 AND v.fecha < $2
	GROUP BY p.id, p.nombre, p.unidad_base
	ORDER BY ingresos DESC`

	rows, err := r.pool.Query(ctx, query, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("reportes.VentasPorProducto: %w", err)
	}
	defer rows.Close()

	var out []repository.VentasPorProductoRow
	for rows.Next() {
		var row repository.VentasPorProductoRow
		if err := rows.Scan(
			&row.ProductoID, &row.Producto, &row.UnidadBase,
			&row.CantidadBase, &row.Ingresos, &row.Costo, &row.Margen,
		); err != nil {
			return nil, fmt.Errorf("scan ventas por producto: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// VentasPorVendedor ventas e ingresos por vendedor.
func (r *ReportesRepo) VentasPorVendedor(ctx context.Context, desde, hasta time.Time) ([]repository.VentasPorVendedorRow, error) {
	const query = `
	SELECT
	    u.id,
	    u.nombre,
	    COUNT(v.id)                  AS cant_ventas,
	    COALESCE(SUM(v.total), 0)    AS ingresos
	FROM ventas v
	JOIN usuarios u ON u.id = v.vendedor_id
	WHERE v.fecha >= $1 AND v.fecha < $2
	GROUP BY u.id, u.nombre
	ORDER BY ingresos DESC`

	rows, err := r.pool.Query(ctx, query, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("reportes.VentasPorVendedor: %w", err)
	}
	defer rows.Close()

	var out []repository.VentasPorVendedorRow
	for rows.Next() {
		var row repository.VentasPorVendedorRow
		if err := rows.Scan(&row.VendedorID, &row.Vendedor, &row.CantVentas, &row.Ingresos); err != nil {
			return nil, fmt.Errorf("scan ventas por vendedor: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// GastosPorVehiculo gasto acumulado y litros de combustible por vehículo.
func (r *ReportesRepo) GastosPorVehiculo(ctx context.Context, desde, hasta time.Time) ([]repository.GastosPorVehiculoRow, error) {
	const query = `
	SELECT
	    vh.id,
	    vh.patente,
	    COALESCE(SUM(g.monto), 0)   AS total,
	    COALESCE(SUM(g.litros), 0)  AS litros
	FROM gastos g
	JOIN vehiculos vh ON vh.id = g.vehiculo_id
	WHERE g.fecha >= $1 AND g.fecha < $2 AND g.vehiculo_id <> ''
	GROUP BY vh.id, vh.patente
	ORDER BY total DESC`

	rows, err := r.pool.Query(ctx, query, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("reportes.GastosPorVehiculo: %w", err)
	}
	defer rows.Close()

	var out []repository.GastosPorVehiculoRow
	for rows.Next() {
		var row repository.GastosPorVehiculoRow
		if err := rows.Scan(&row.VehiculoID, &row.Patente, &row.Total, &row.Litros); err != nil {
			return nil, fmt.Errorf("scan gastos por vehiculo: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
