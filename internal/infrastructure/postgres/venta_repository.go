package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jmolina/avicola-api/internal/domain/entity"
	"github.com/jmolina/avicola-api/internal/domain/repository"
)

var _ repository.VentaRepository = (*VentaRepo)(nil)

// VentaRepo implementación de VentaRepository sobre PostgreSQL (usable con pool o tx).
type VentaRepo struct {
	q Querier
}

// NewVentaRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewVentaRepository(q Querier) *VentaRepo {
	return &VentaRepo{q: q}
}

const ventaCols = `id, fecha, cliente_id, vendedor_id, vehiculo_id, metodo_pago, subtotal, descuento_pct, descuento_monto, total, created_at`

func scanVenta(row pgx.Row) (*entity.Venta, error) {
	var v entity.Venta
	err := row.Scan(
		&v.ID, &v.Fecha, &v.ClienteID, &v.VendedorID, &v.VehiculoID, &v.MetodoPago,
		&v.Subtotal, &v.DescuentoPct, &v.DescuentoMonto, &v.Total, &v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create inserta la cabecera de una venta.
func (r *VentaRepo) Create(v *entity.Venta) error {
	query := `
		INSERT INTO ventas (` + ventaCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		v.ID, v.Fecha, v.ClienteID, v.VendedorID, v.VehiculoID, v.MetodoPago,
		v.Subtotal, v.DescuentoPct, v.DescuentoMonto, v.Total, v.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert venta: %w", err)
	}
	return nil
}

// CreateDetalle inserta una línea de venta.
func (r *VentaRepo) CreateDetalle(d *entity.DetalleVenta) error {
	query := `
		INSERT INTO detalle_ventas (id, venta_id, producto_id, cantidad, unidad, cantidad_base, precio_unitario, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.VentaID, d.ProductoID, d.Cantidad, d.Unidad,
		d.CantidadBase, d.PrecioUnitario, d.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert detalle venta: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una venta, o nil si no existe.
func (r *VentaRepo) GetByID(id string) (*entity.Venta, error) {
	v, err := scanVenta(r.q.QueryRow(context.Background(),
		`SELECT `+ventaCols+` FROM ventas WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get venta: %w", err)
	}
	return v, nil
}

// ListDetalles lista las líneas de una venta.
func (r *VentaRepo) ListDetalles(ventaID string) ([]*entity.DetalleVenta, error) {
	query := `
		SELECT id, venta_id, producto_id, cantidad, unidad, cantidad_base, precio_unitario, subtotal
		FROM detalle_ventas WHERE venta_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, ventaID)
	if err != nil {
		return nil, fmt.Errorf("list detalles venta: %w", err)
	}
	defer rows.Close()

	var out []*entity.DetalleVenta
	for rows.Next() {
		var d entity.DetalleVenta
		if err := rows.Scan(
			&d.ID, &d.VentaID, &d.ProductoID, &d.Cantidad, &d.Unidad,
			&d.CantidadBase, &d.PrecioUnitario, &d.Subtotal,
		); err != nil {
			return nil, fmt.Errorf("scan detalle venta: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

// List lista ventas del período con paginación.
func (r *VentaRepo) List(desde, hasta time.Time, limit, offset int) ([]*entity.Venta, error) {
	query := `
		SELECT ` + ventaCols + ` FROM ventas
		WHERE fecha >= $1 AND fecha < $2
		ORDER BY fecha DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, desde, hasta, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ventas: %w", err)
	}
	defer rows.Close()

	var out []*entity.Venta
	for rows.Next() {
		v, err := scanVenta(rows)
		if err != nil {
			return nil, fmt.Errorf("scan venta: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
