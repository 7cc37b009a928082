package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jmolina/avicola-api/internal/domain"
	"github.com/jmolina/avicola-api/internal/domain/entity"
	"github.com/jmolina/avicola-api/internal/domain/repository"
)

var _ repository.ClienteRepository = (*ClienteRepo)(nil)
var _ repository.PagoRepository = (*PagoRepo)(nil)

// ClienteRepo implementación de ClienteRepository sobre PostgreSQL (usable con pool o tx).
type ClienteRepo struct {
	q Querier
}

// NewClienteRepository construye el adaptador de clientes. Pasar pool o tx (Querier).
func NewClienteRepository(q Querier) *ClienteRepo {
	return &ClienteRepo{q: q}
}

const clienteCols = `id, nombre, dni, telefono, direccion, metodo_pago_habitual, deuda, total_compras, fecha_ultima_compra, vencimiento_deuda, estado, created_at, updated_at`

func scanCliente(row pgx.Row) (*entity.Cliente, error) {
	var c entity.Cliente
	err := row.Scan(
		&c.ID, &c.Nombre, &c.DNI, &c.Telefono, &c.Direccion, &c.MetodoPagoHabitual,
		&c.Deuda, &c.TotalCompras, &c.FechaUltimaCompra, &c.VencimientoDeuda,
		&c.Estado, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un cliente nuevo.
func (r *ClienteRepo) Create(c *entity.Cliente) error {
	query := `
		INSERT INTO clientes (` + clienteCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Nombre, c.DNI, c.Telefono, c.Direccion, c.MetodoPagoHabitual,
		c.Deuda, c.TotalCompras, c.FechaUltimaCompra, c.VencimientoDeuda,
		c.Estado, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cliente: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID, o nil si no existe.
func (r *ClienteRepo) GetByID(id string) (*entity.Cliente, error) {
	c, err := scanCliente(r.q.QueryRow(context.Background(),
		`SELECT `+clienteCols+` FROM clientes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return c, nil
}

// GetForUpdate obtiene el cliente bloqueando su fila para actualizar la
// deuda de forma serializada frente a ventas y pagos concurrentes.
func (r *ClienteRepo) GetForUpdate(id string) (*entity.Cliente, error) {
	c, err := scanCliente(r.q.QueryRow(context.Background(),
		`SELECT `+clienteCols+` FROM clientes WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente for update: %w", err)
	}
	return c, nil
}

// Update actualiza un cliente completo, deuda y acumulados incluidos.
func (r *ClienteRepo) Update(c *entity.Cliente) error {
	query := `
		UPDATE clientes SET nombre = $2, dni = $3, telefono = $4, direccion = $5,
			metodo_pago_habitual = $6, deuda = $7, total_compras = $8,
			fecha_ultima_compra = $9, vencimiento_deuda = $10, estado = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Nombre, c.DNI, c.Telefono, c.Direccion, c.MetodoPagoHabitual,
		c.Deuda, c.TotalCompras, c.FechaUltimaCompra, c.VencimientoDeuda,
		c.Estado, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update cliente: %w", err)
	}
	return nil
}

// List lista clientes con paginación.
func (r *ClienteRepo) List(limit, offset int) ([]*entity.Cliente, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+clienteCols+` FROM clientes ORDER BY nombre LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()

	var out []*entity.Cliente
	for rows.Next() {
		c, err := scanCliente(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// PagoRepo implementación del libro de cuenta corriente (solo inserción).
type PagoRepo struct {
	q Querier
}

// NewPagoRepository construye el adaptador de asientos. Pasar pool o tx (Querier).
func NewPagoRepository(q Querier) *PagoRepo {
	return &PagoRepo{q: q}
}

// Create inserta un asiento.
func (r *PagoRepo) Create(p *entity.Pago) error {
	query := `
		INSERT INTO pagos (id, cliente_id, tipo, monto, metodo_pago, motivo, referencia, usuario_id, fecha, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.ClienteID, p.Tipo, p.Monto, p.MetodoPago, p.Motivo,
		p.Referencia, p.UsuarioID, p.Fecha, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert pago: %w", err)
	}
	return nil
}

// ListByCliente lista los asientos de un cliente, más recientes primero.
func (r *PagoRepo) ListByCliente(clienteID string, limit, offset int) ([]*entity.Pago, error) {
	query := `
		SELECT id, cliente_id, tipo, monto, metodo_pago, motivo, referencia, usuario_id, fecha, created_at
		FROM pagos WHERE cliente_id = $1
		ORDER BY fecha DESC, created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, clienteID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list pagos: %w", err)
	}
	defer rows.Close()

	var out []*entity.Pago
	for rows.Next() {
		var p entity.Pago
		if err := rows.Scan(
			&p.ID, &p.ClienteID, &p.Tipo, &p.Monto, &p.MetodoPago, &p.Motivo,
			&p.Referencia, &p.UsuarioID, &p.Fecha, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan pago: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
