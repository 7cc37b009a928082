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

var _ repository.VehiculoRepository = (*VehiculoRepo)(nil)
var _ repository.ViajeRepository = (*ViajeRepo)(nil)

// VehiculoRepo implementación de VehiculoRepository sobre PostgreSQL (usable con pool o tx).
type VehiculoRepo struct {
	q Querier
}

// NewVehiculoRepository construye el adaptador de vehículos. Pasar pool o tx (Querier).
func NewVehiculoRepository(q Querier) *VehiculoRepo {
	return &VehiculoRepo{q: q}
}

const vehiculoCols = `id, patente, kilometraje, en_ruta, chofer_id, ultimo_service, vencimiento_vtv, vencimiento_seguro, activo, created_at, updated_at`

func scanVehiculo(row pgx.Row) (*entity.Vehiculo, error) {
	var v entity.Vehiculo
	err := row.Scan(
		&v.ID, &v.Patente, &v.Kilometraje, &v.EnRuta, &v.ChoferID,
		&v.UltimoService, &v.VencimientoVTV, &v.VencimientoSeguro,
		&v.Activo, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create persiste un vehículo nuevo.
func (r *VehiculoRepo) Create(v *entity.Vehiculo) error {
	query := `
		INSERT INTO vehiculos (` + vehiculoCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		v.ID, v.Patente, v.Kilometraje, v.EnRuta, v.ChoferID,
		v.UltimoService, v.VencimientoVTV, v.VencimientoSeguro,
		v.Activo, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert vehiculo: %w", err)
	}
	return nil
}

// GetByID obtiene un vehículo por ID, o nil si no existe.
func (r *VehiculoRepo) GetByID(id string) (*entity.Vehiculo, error) {
	v, err := scanVehiculo(r.q.QueryRow(context.Background(),
		`SELECT `+vehiculoCols+` FROM vehiculos WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vehiculo: %w", err)
	}
	return v, nil
}

// GetByPatente obtiene un vehículo por patente, o nil si no existe.
func (r *VehiculoRepo) GetByPatente(patente string) (*entity.Vehiculo, error) {
	v, err := scanVehiculo(r.q.QueryRow(context.Background(),
		`SELECT `+vehiculoCols+` FROM vehiculos WHERE patente = $1`, patente))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vehiculo por patente: %w", err)
	}
	return v, nil
}

// Update actualiza un vehículo.
func (r *VehiculoRepo) Update(v *entity.Vehiculo) error {
	query := `
		UPDATE vehiculos SET kilometraje = $2, en_ruta = $3, chofer_id = $4,
			ultimo_service = $5, vencimiento_vtv = $6, vencimiento_seguro = $7,
			activo = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		v.ID, v.Kilometraje, v.EnRuta, v.ChoferID,
		v.UltimoService, v.VencimientoVTV, v.VencimientoSeguro,
		v.Activo, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update vehiculo: %w", err)
	}
	return nil
}

// List lista vehículos con paginación.
func (r *VehiculoRepo) List(limit, offset int) ([]*entity.Vehiculo, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+vehiculoCols+` FROM vehiculos ORDER BY patente LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list vehiculos: %w", err)
	}
	defer rows.Close()

	var out []*entity.Vehiculo
	for rows.Next() {
		v, err := scanVehiculo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vehiculo: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Delete elimina un vehículo.
func (r *VehiculoRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM vehiculos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete vehiculo: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ViajeRepo implementación de ViajeRepository sobre PostgreSQL (usable con pool o tx).
type ViajeRepo struct {
	q Querier
}

// NewViajeRepository construye el adaptador de viajes. Pasar pool o tx (Querier).
func NewViajeRepository(q Querier) *ViajeRepo {
	return &ViajeRepo{q: q}
}

const viajeCols = `id, vehiculo_id, chofer_id, fecha_salida, fecha_regreso, estado, notas, created_at, updated_at`

func scanViaje(row pgx.Row) (*entity.Viaje, error) {
	var v entity.Viaje
	err := row.Scan(
		&v.ID, &v.VehiculoID, &v.ChoferID, &v.FechaSalida, &v.FechaRegreso,
		&v.Estado, &v.Notas, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create persiste un viaje nuevo.
func (r *ViajeRepo) Create(v *entity.Viaje) error {
	query := `
		INSERT INTO viajes (` + viajeCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		v.ID, v.VehiculoID, v.ChoferID, v.FechaSalida, v.FechaRegreso,
		v.Estado, v.Notas, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert viaje: %w", err)
	}
	return nil
}

// GetByID obtiene un viaje por ID, o nil si no existe.
func (r *ViajeRepo) GetByID(id string) (*entity.Viaje, error) {
	v, err := scanViaje(r.q.QueryRow(context.Background(),
		`SELECT `+viajeCols+` FROM viajes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get viaje: %w", err)
	}
	return v, nil
}

// GetEnCursoPorVehiculo devuelve el viaje en curso del vehículo o nil.
func (r *ViajeRepo) GetEnCursoPorVehiculo(vehiculoID string) (*entity.Viaje, error) {
	v, err := scanViaje(r.q.QueryRow(context.Background(),
		`SELECT `+viajeCols+` FROM viajes WHERE vehiculo_id = $1 AND estado = 'en_curso'`, vehiculoID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get viaje en curso: %w", err)
	}
	return v, nil
}

// Update actualiza un viaje.
func (r *ViajeRepo) Update(v *entity.Viaje) error {
	query := `
		UPDATE viajes SET fecha_regreso = $2, estado = $3, notas = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		v.ID, v.FechaRegreso, v.Estado, v.Notas, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update viaje: %w", err)
	}
	return nil
}

// List lista viajes, más recientes primero.
func (r *ViajeRepo) List(limit, offset int) ([]*entity.Viaje, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+viajeCols+` FROM viajes ORDER BY fecha_salida DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list viajes: %w", err)
	}
	defer rows.Close()

	var out []*entity.Viaje
	for rows.Next() {
		v, err := scanViaje(rows)
		if err != nil {
			return nil, fmt.Errorf("scan viaje: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
