package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jmolina/avicola-api/internal/domain/entity"
	"github.com/jmolina/avicola-api/internal/domain/repository"
)

var _ repository.PedidoRepository = (*PedidoRepo)(nil)

// PedidoRepo implementación de PedidoRepository sobre PostgreSQL (usable con pool o tx).
type PedidoRepo struct {
	q Querier
}

// NewPedidoRepository construye el adaptador de pedidos. Pasar pool o tx (Querier).
func NewPedidoRepository(q Querier) *PedidoRepo {
	return &PedidoRepo{q: q}
}

const pedidoCols = `id, cliente_id, fecha_pedido, fecha_entrega, estado, viaje_id, pagado, notas, created_at, updated_at`

func scanPedido(row pgx.Row) (*entity.Pedido, error) {
	var p entity.Pedido
	err := row.Scan(
		&p.ID, &p.ClienteID, &p.FechaPedido, &p.FechaEntrega, &p.Estado,
		&p.ViajeID, &p.Pagado, &p.Notas, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un pedido nuevo.
func (r *PedidoRepo) Create(p *entity.Pedido) error {
	query := `
		INSERT INTO pedidos (` + pedidoCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.ClienteID, p.FechaPedido, p.FechaEntrega, p.Estado,
		p.ViajeID, p.Pagado, p.Notas, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert pedido: %w", err)
	}
	return nil
}

// CreateDetalle inserta una línea de pedido.
func (r *PedidoRepo) CreateDetalle(d *entity.DetallePedido) error {
	query := `
		INSERT INTO detalle_pedidos (id, pedido_id, producto_id, cantidad, unidad, precio_unitario)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.PedidoID, d.ProductoID, d.Cantidad, d.Unidad, d.PrecioUnitario,
	)
	if err != nil {
		return fmt.Errorf("insert detalle pedido: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido por ID, o nil si no existe.
func (r *PedidoRepo) GetByID(id string) (*entity.Pedido, error) {
	p, err := scanPedido(r.q.QueryRow(context.Background(),
		`SELECT `+pedidoCols+` FROM pedidos WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pedido: %w", err)
	}
	return p, nil
}

// Update actualiza un pedido.
func (r *PedidoRepo) Update(p *entity.Pedido) error {
	query := `
		UPDATE pedidos SET fecha_entrega = $2, estado = $3, viaje_id = $4, pagado = $5, notas = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.FechaEntrega, p.Estado, p.ViajeID, p.Pagado, p.Notas, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update pedido: %w", err)
	}
	return nil
}

// ListDetalles lista las líneas de un pedido.
func (r *PedidoRepo) ListDetalles(pedidoID string) ([]*entity.DetallePedido, error) {
	query := `
		SELECT id, pedido_id, producto_id, cantidad, unidad, precio_unitario
		FROM detalle_pedidos WHERE pedido_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, pedidoID)
	if err != nil {
		return nil, fmt.Errorf("list detalles pedido: %w", err)
	}
	defer rows.Close()

	var out []*entity.DetallePedido
	for rows.Next() {
		var d entity.DetallePedido
		if err := rows.Scan(&d.ID, &d.PedidoID, &d.ProductoID, &d.Cantidad, &d.Unidad, &d.PrecioUnitario); err != nil {
			return nil, fmt.Errorf("scan detalle pedido: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

// List lista pedidos, opcionalmente filtrados por estado.
func (r *PedidoRepo) List(estado string, limit, offset int) ([]*entity.Pedido, error) {
	var rows pgx.Rows
	var err error
	if estado != "" {
		rows, err = r.q.Query(context.Background(),
			`SELECT `+pedidoCols+` FROM pedidos WHERE estado = $1 ORDER BY fecha_pedido DESC LIMIT $2 OFFSET $3`,
			estado, limit, offset)
	} else {
		rows, err = r.q.Query(context.Background(),
			`SELECT `+pedidoCols+` FROM pedidos ORDER BY fecha_pedido DESC LIMIT $1 OFFSET $2`,
			limit, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("list pedidos: %w", err)
	}
	defer rows.Close()

	var out []*entity.Pedido
	for rows.Next() {
		p, err := scanPedido(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pedido: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
