package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jmolina/avicola-api/internal/domain"
	"github.com/jmolina/avicola-api/internal/domain/entity"
	"github.com/jmolina/avicola-api/internal/domain/repository"
)

var _ repository.GastoRepository = (*GastoRepo)(nil)

// GastoRepo implementación de GastoRepository sobre PostgreSQL (usable con pool o tx).
type GastoRepo struct {
	q Querier
}

// NewGastoRepository construye el adaptador de gastos. Pasar pool o tx (Querier).
func NewGastoRepository(q Querier) *GastoRepo {
	return &GastoRepo{q: q}
}

const gastoCols = `id, fecha, tipo, monto, vehiculo_id, kilometraje, litros, empleado_id, descripcion, usuario_id, created_at`

func scanGasto(row pgx.Row) (*entity.Gasto, error) {
	var g entity.Gasto
	err := row.Scan(
		&g.ID, &g.Fecha, &g.Tipo, &g.Monto, &g.VehiculoID, &g.Kilometraje,
		&g.Litros, &g.EmpleadoID, &g.Descripcion, &g.UsuarioID, &g.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// Create persiste un gasto nuevo.
func (r *GastoRepo) Create(g *entity.Gasto) error {
	query := `
		INSERT INTO gastos (` + gastoCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		g.ID, g.Fecha, g.Tipo, g.Monto, g.VehiculoID, g.Kilometraje,
		g.Litros, g.EmpleadoID, g.Descripcion, g.UsuarioID, g.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert gasto: %w", err)
	}
	return nil
}

// GetByID obtiene un gasto por ID, o nil si no existe.
func (r *GastoRepo) GetByID(id string) (*entity.Gasto, error) {
	g, err := scanGasto(r.q.QueryRow(context.Background(),
		`SELECT `+gastoCols+` FROM gastos WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get gasto: %w", err)
	}
	return g, nil
}

// List lista gastos del período, opcionalmente filtrados por tipo.
func (r *GastoRepo) List(desde, hasta time.Time, tipo string, limit, offset int) ([]*entity.Gasto, error) {
	var rows pgx.Rows
	var err error
	if tipo != "" {
		rows, err = r.q.Query(context.Background(),
			`SELECT `+gastoCols+` FROM gastos WHERE fecha >= $1 AND fecha < $2 AND tipo = $3 ORDER BY fecha DESC LIMIT $4 OFFSET $5`,
			desde, hasta, tipo, limit, offset)
	} else {
		rows, err = r.q.Query(context.Background(),
			`SELECT `+gastoCols+` FROM gastos WHERE fecha >= $1 AND fecha < $2 ORDER BY fecha DESC LIMIT $3 OFFSET $4`,
			desde, hasta, limit, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("list gastos: %w", err)
	}
	defer rows.Close()

	var out []*entity.Gasto
	for rows.Next() {
		g, err := scanGasto(rows)
		if err != nil {
			return nil, fmt.Errorf("scan gasto: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// Delete elimina un gasto.
func (r *GastoRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM gastos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete gasto: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
