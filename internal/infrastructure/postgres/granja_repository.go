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

var _ repository.SiloRepository = (*SiloRepo)(nil)
var _ repository.GalponRepository = (*GalponRepo)(nil)
var _ repository.LoteRepository = (*LoteRepo)(nil)

// SiloRepo implementación de SiloRepository sobre PostgreSQL (usable con pool o tx).
type SiloRepo struct {
	q Querier
}

// NewSiloRepository construye el adaptador de silos. Pasar pool o tx (Querier).
func NewSiloRepository(q Querier) *SiloRepo {
	return &SiloRepo{q: q}
}

const siloCols = `id, nombre, capacidad_kg, cantidad_actual, created_at, updated_at`

func scanSilo(row pgx.Row) (*entity.Silo, error) {
	var s entity.Silo
	err := row.Scan(&s.ID, &s.Nombre, &s.CapacidadKg, &s.CantidadActual, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste un silo nuevo.
func (r *SiloRepo) Create(s *entity.Silo) error {
	query := `
		INSERT INTO silos (` + siloCols + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.Nombre, s.CapacidadKg, s.CantidadActual, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert silo: %w", err)
	}
	return nil
}

// GetByID obtiene un silo por ID, o nil si no existe.
func (r *SiloRepo) GetByID(id string) (*entity.Silo, error) {
	s, err := scanSilo(r.q.QueryRow(context.Background(),
		`SELECT `+siloCols+` FROM silos WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get silo: %w", err)
	}
	return s, nil
}

// GetForUpdate obtiene un silo bloqueando su fila.
func (r *SiloRepo) GetForUpdate(id string) (*entity.Silo, error) {
	s, err := scanSilo(r.q.QueryRow(context.Background(),
		`SELECT `+siloCols+` FROM silos WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get silo for update: %w", err)
	}
	return s, nil
}

// Update actualiza un silo.
func (r *SiloRepo) Update(s *entity.Silo) error {
	query := `
		UPDATE silos SET nombre = $2, capacidad_kg = $3, cantidad_actual = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.Nombre, s.CapacidadKg, s.CantidadActual, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update silo: %w", err)
	}
	return nil
}

// List lista todos los silos.
func (r *SiloRepo) List() ([]*entity.Silo, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+siloCols+` FROM silos ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list silos: %w", err)
	}
	defer rows.Close()

	var out []*entity.Silo
	for rows.Next() {
		s, err := scanSilo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan silo: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetContenidoForUpdate obtiene una materia prima del silo bloqueando su
// fila, o nil si ese material nunca ingresó.
func (r *SiloRepo) GetContenidoForUpdate(siloID, material string) (*entity.ContenidoSilo, error) {
	query := `
		SELECT id, silo_id, material, cantidad_kg, costo_por_kg, updated_at
		FROM contenido_silos WHERE silo_id = $1 AND material = $2
		FOR UPDATE`
	var c entity.ContenidoSilo
	err := r.q.QueryRow(context.Background(), query, siloID, material).Scan(
		&c.ID, &c.SiloID, &c.Material, &c.CantidadKg, &c.CostoPorKg, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contenido silo: %w", err)
	}
	return &c, nil
}

// UpsertContenido inserta o actualiza una materia prima del silo.
func (r *SiloRepo) UpsertContenido(c *entity.ContenidoSilo) error {
	query := `
		INSERT INTO contenido_silos (id, silo_id, material, cantidad_kg, costo_por_kg, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (silo_id, material)
		DO UPDATE SET cantidad_kg = EXCLUDED.cantidad_kg, costo_por_kg = EXCLUDED.costo_por_kg, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.SiloID, c.Material, c.CantidadKg, c.CostoPorKg, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert contenido silo: %w", err)
	}
	return nil
}

// ListContenido lista las materias primas de un silo.
func (r *SiloRepo) ListContenido(siloID string) ([]*entity.ContenidoSilo, error) {
	query := `
		SELECT id, silo_id, material, cantidad_kg, costo_por_kg, updated_at
		FROM contenido_silos WHERE silo_id = $1 AND cantidad_kg <> 0 ORDER BY material`
	rows, err := r.q.Query(context.Background(), query, siloID)
	if err != nil {
		return nil, fmt.Errorf("list contenido silo: %w", err)
	}
	defer rows.Close()

	var out []*entity.ContenidoSilo
	for rows.Next() {
		var c entity.ContenidoSilo
		if err := rows.Scan(&c.ID, &c.SiloID, &c.Material, &c.CantidadKg, &c.CostoPorKg, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan contenido silo: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// GalponRepo implementación de GalponRepository sobre PostgreSQL (usable con pool o tx).
type GalponRepo struct {
	q Querier
}

// NewGalponRepository construye el adaptador de galpones. Pasar pool o tx (Querier).
func NewGalponRepository(q Querier) *GalponRepo {
	return &GalponRepo{q: q}
}

const galponCols = `id, nombre, tipo, estado, cantidad_aves, created_at, updated_at`

func scanGalpon(row pgx.Row) (*entity.Galpon, error) {
	var g entity.Galpon
	err := row.Scan(&g.ID, &g.Nombre, &g.Tipo, &g.Estado, &g.CantidadAves, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// Create persiste un galpón nuevo.
func (r *GalponRepo) Create(g *entity.Galpon) error {
	query := `
		INSERT INTO galpones (` + galponCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		g.ID, g.Nombre, g.Tipo, g.Estado, g.CantidadAves, g.CreatedAt, g.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert galpon: %w", err)
	}
	return nil
}

// GetByID obtiene un galpón por ID, o nil si no existe.
func (r *GalponRepo) GetByID(id string) (*entity.Galpon, error) {
	g, err := scanGalpon(r.q.QueryRow(context.Background(),
		`SELECT `+galponCols+` FROM galpones WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get galpon: %w", err)
	}
	return g, nil
}

// GetForUpdate obtiene un galpón bloqueando su fila.
func (r *GalponRepo) GetForUpdate(id string) (*entity.Galpon, error) {
	g, err := scanGalpon(r.q.QueryRow(context.Background(),
		`SELECT `+galponCols+` FROM galpones WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get galpon for update: %w", err)
	}
	return g, nil
}

// Update actualiza un galpón.
func (r *GalponRepo) Update(g *entity.Galpon) error {
	query := `
		UPDATE galpones SET nombre = $2, tipo = $3, estado = $4, cantidad_aves = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		g.ID, g.Nombre, g.Tipo, g.Estado, g.CantidadAves, g.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update galpon: %w", err)
	}
	return nil
}

// List lista todos los galpones.
func (r *GalponRepo) List() ([]*entity.Galpon, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+galponCols+` FROM galpones ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list galpones: %w", err)
	}
	defer rows.Close()

	var out []*entity.Galpon
	for rows.Next() {
		g, err := scanGalpon(rows)
		if err != nil {
			return nil, fmt.Errorf("scan galpon: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// LoteRepo implementación de LoteRepository sobre PostgreSQL (usable con pool o tx).
type LoteRepo struct {
	q Querier
}

// NewLoteRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewLoteRepository(q Querier) *LoteRepo {
	return &LoteRepo{q: q}
}

const loteCols = `id, galpon_id, tipo_ave, cantidad_inicial, cantidad_actual, precio_por_ave, fecha_ingreso, fecha_salida, estado, created_at, updated_at`

func scanLote(row pgx.Row) (*entity.LoteAve, error) {
	var l entity.LoteAve
	err := row.Scan(
		&l.ID, &l.GalponID, &l.TipoAve, &l.CantidadInicial, &l.CantidadActual,
		&l.PrecioPorAve, &l.FechaIngreso, &l.FechaSalida, &l.Estado,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create persiste un lote nuevo.
func (r *LoteRepo) Create(l *entity.LoteAve) error {
	query := `
		INSERT INTO lotes_aves (` + loteCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.GalponID, l.TipoAve, l.CantidadInicial, l.CantidadActual,
		l.PrecioPorAve, l.FechaIngreso, l.FechaSalida, l.Estado,
		l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lote: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID, o nil si no existe.
func (r *LoteRepo) GetByID(id string) (*entity.LoteAve, error) {
	l, err := scanLote(r.q.QueryRow(context.Background(),
		`SELECT `+loteCols+` FROM lotes_aves WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lote: %w", err)
	}
	return l, nil
}

// GetForUpdate obtiene un lote bloqueando su fila.
func (r *LoteRepo) GetForUpdate(id string) (*entity.LoteAve, error) {
	l, err := scanLote(r.q.QueryRow(context.Background(),
		`SELECT `+loteCols+` FROM lotes_aves WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lote for update: %w", err)
	}
	return l, nil
}

// GetActivoPorGalpon devuelve el lote activo del galpón o nil.
func (r *LoteRepo) GetActivoPorGalpon(galponID string) (*entity.LoteAve, error) {
	l, err := scanLote(r.q.QueryRow(context.Background(),
		`SELECT `+loteCols+` FROM lotes_aves WHERE galpon_id = $1 AND estado = 'activo' FOR UPDATE`, galponID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lote activo: %w", err)
	}
	return l, nil
}

// Update actualiza un lote.
func (r *LoteRepo) Update(l *entity.LoteAve) error {
	query := `
		UPDATE lotes_aves SET cantidad_inicial = $2, cantidad_actual = $3, fecha_salida = $4, estado = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.CantidadInicial, l.CantidadActual, l.FechaSalida, l.Estado, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update lote: %w", err)
	}
	return nil
}

// ListByGalpon lista los lotes de un galpón, más recientes primero.
func (r *LoteRepo) ListByGalpon(galponID string) ([]*entity.LoteAve, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+loteCols+` FROM lotes_aves WHERE galpon_id = $1 ORDER BY fecha_ingreso DESC`, galponID)
	if err != nil {
		return nil, fmt.Errorf("list lotes: %w", err)
	}
	defer rows.Close()

	var out []*entity.LoteAve
	for rows.Next() {
		l, err := scanLote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lote: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// CreateMortalidad inserta un evento de mortalidad.
func (r *LoteRepo) CreateMortalidad(e *entity.EventoMortalidad) error {
	query := `
		INSERT INTO eventos_mortalidad (id, lote_id, cantidad, motivo, fecha, usuario_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.LoteID, e.Cantidad, e.Motivo, e.Fecha, e.UsuarioID, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert evento mortalidad: %w", err)
	}
	return nil
}

// ListMortalidad lista los eventos de mortalidad de un lote.
func (r *LoteRepo) ListMortalidad(loteID string) ([]*entity.EventoMortalidad, error) {
	query := `
		SELECT id, lote_id, cantidad, motivo, fecha, usuario_id, created_at
		FROM eventos_mortalidad WHERE lote_id = $1 ORDER BY fecha DESC`
	rows, err := r.q.Query(context.Background(), query, loteID)
	if err != nil {
		return nil, fmt.Errorf("list mortalidad: %w", err)
	}
	defer rows.Close()

	var out []*entity.EventoMortalidad
	for rows.Next() {
		var e entity.EventoMortalidad
		if err := rows.Scan(&e.ID, &e.LoteID, &e.Cantidad, &e.Motivo, &e.Fecha, &e.UsuarioID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan evento mortalidad: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}
