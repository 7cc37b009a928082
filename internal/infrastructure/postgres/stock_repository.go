package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jmolina/avicola-api/internal/domain/entity"
	"github.com/jmolina/avicola-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.StockRepository = (*StockRepo)(nil)
var _ repository.MovimientoRepository = (*MovimientoRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock de un producto en una ubicación. Si no hay fila
// devuelve una en cero: ausencia de fila y stock cero son lo mismo.
func (r *StockRepo) Get(ubicacionTipo, ubicacionID, productoID string) (*entity.Stock, error) {
	query := `
		SELECT ubicacion_tipo, ubicacion_id, producto_id, cantidad, updated_at
		FROM stock WHERE ubicacion_tipo = $1 AND ubicacion_id = $2 AND producto_id = $3`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, ubicacionTipo, ubicacionID, productoID).Scan(
		&s.UbicacionTipo, &s.UbicacionID, &s.ProductoID, &s.Cantidad, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{
				UbicacionTipo: ubicacionTipo,
				UbicacionID:   ubicacionID,
				ProductoID:    productoID,
				Cantidad:      decimal.Zero,
			}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene el stock y bloquea la fila (SELECT FOR UPDATE) para
// la secuencia leer-verificar-descontar. Si la fila no existe todavía la
// crea en cero y la bloquea igual: una fila sintética sin lock dejaría que
// dos transacciones que estrenan el mismo (ubicación, producto) lean cero a
// la vez y la segunda pise el delta de la primera.
func (r *StockRepo) GetForUpdate(ubicacionTipo, ubicacionID, productoID string) (*entity.Stock, error) {
	query := `
		SELECT ubicacion_tipo, ubicacion_id, producto_id, cantidad, updated_at
		FROM stock WHERE ubicacion_tipo = $1 AND ubicacion_id = $2 AND producto_id = $3
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, ubicacionTipo, ubicacionID, productoID).Scan(
		&s.UbicacionTipo, &s.UbicacionID, &s.ProductoID, &s.Cantidad, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		insert := `
			INSERT INTO stock (ubicacion_tipo, ubicacion_id, producto_id, cantidad, updated_at)
			VALUES ($1, $2, $3, 0, now())
			ON CONFLICT (ubicacion_tipo, ubicacion_id, producto_id) DO NOTHING`
		if _, err := r.q.Exec(context.Background(), insert, ubicacionTipo, ubicacionID, productoID); err != nil {
			return nil, fmt.Errorf("init stock row: %w", err)
		}
		// Releer con lock: si otra transacción ganó el insert, acá se espera
		// su commit y se lee la cantidad que dejó.
		err = r.q.QueryRow(context.Background(), query, ubicacionTipo, ubicacionID, productoID).Scan(
			&s.UbicacionTipo, &s.UbicacionID, &s.ProductoID, &s.Cantidad, &s.UpdatedAt,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Upsert actualiza la cantidad por (ubicación, producto). El caller debe
// tener la fila bloqueada vía GetForUpdate dentro de la misma transacción;
// la escritura es absoluta y sin lock previo pisaría deltas concurrentes.
func (r *StockRepo) Upsert(s *entity.Stock) error {
	query := `
		INSERT INTO stock (ubicacion_tipo, ubicacion_id, producto_id, cantidad, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (ubicacion_tipo, ubicacion_id, producto_id)
		DO UPDATE SET cantidad = EXCLUDED.cantidad, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, s.UbicacionTipo, s.UbicacionID, s.ProductoID, s.Cantidad)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListPorUbicacion lista el stock no nulo de una ubicación.
func (r *StockRepo) ListPorUbicacion(ubicacionTipo, ubicacionID string) ([]*entity.Stock, error) {
	query := `
		SELECT ubicacion_tipo, ubicacion_id, producto_id, cantidad, updated_at
		FROM stock
		WHERE ubicacion_tipo = $1 AND ubicacion_id = $2 AND cantidad <> 0
		ORDER BY producto_id`
	rows, err := r.q.Query(context.Background(), query, ubicacionTipo, ubicacionID)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	var out []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.UbicacionTipo, &s.UbicacionID, &s.ProductoID, &s.Cantidad, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// MovimientoRepo implementación del libro de movimientos (solo inserción).
type MovimientoRepo struct {
	q Querier
}

// NewMovimientoRepository construye el adaptador del libro. Pasar pool o tx (Querier).
func NewMovimientoRepository(q Querier) *MovimientoRepo {
	return &MovimientoRepo{q: q}
}

// Create inserta una fila del libro. Nunca hay UPDATE sobre esta tabla.
func (r *MovimientoRepo) Create(m *entity.MovimientoStock) error {
	query := `
		INSERT INTO movimientos_stock (id, tipo, ubicacion_tipo, ubicacion_id, producto_id, cantidad, referencia, motivo, usuario_id, fecha, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Tipo, m.UbicacionTipo, m.UbicacionID, m.ProductoID,
		m.Cantidad, m.Referencia, m.Motivo, m.UsuarioID, m.Fecha, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movimiento: %w", err)
	}
	return nil
}

// List consulta el libro con filtros opcionales.
func (r *MovimientoRepo) List(f repository.MovimientoFiltro) ([]*entity.MovimientoStock, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT id, tipo, ubicacion_tipo, ubicacion_id, producto_id, cantidad, referencia, motivo, usuario_id, fecha, created_at
		FROM movimientos_stock WHERE 1=1`)
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if f.UbicacionTipo != "" {
		sb.WriteString(" AND ubicacion_tipo = " + arg(f.UbicacionTipo))
	}
	if f.UbicacionID != "" {
		sb.WriteString(" AND ubicacion_id = " + arg(f.UbicacionID))
	}
	if f.ProductoID != "" {
		sb.WriteString(" AND producto_id = " + arg(f.ProductoID))
	}
	if f.Tipo != "" {
		sb.WriteString(" AND tipo = " + arg(f.Tipo))
	}
	if f.Desde != nil {
		sb.WriteString(" AND fecha >= " + arg(*f.Desde))
	}
	if f.Hasta != nil {
		sb.WriteString(" AND fecha < " + arg(*f.Hasta))
	}
	limit := f.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	sb.WriteString(" ORDER BY fecha DESC, created_at DESC")
	sb.WriteString(" LIMIT " + arg(limit))
	sb.WriteString(" OFFSET " + arg(f.Offset))

	rows, err := r.q.Query(context.Background(), sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()

	var out []*entity.MovimientoStock
	for rows.Next() {
		var m entity.MovimientoStock
		if err := rows.Scan(
			&m.ID, &m.Tipo, &m.UbicacionTipo, &m.UbicacionID, &m.ProductoID,
			&m.Cantidad, &m.Referencia, &m.Motivo, &m.UsuarioID, &m.Fecha, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
