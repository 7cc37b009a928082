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

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)
var _ repository.AsistenciaRepository = (*AsistenciaRepo)(nil)

// UsuarioRepo implementación de UsuarioRepository sobre PostgreSQL (usable con pool o tx).
type UsuarioRepo struct {
	q Querier
}

// NewUsuarioRepository construye el adaptador de usuarios. Pasar pool o tx (Querier).
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

const usuarioCols = `id, nombre, dni, email, password_hash, rol, activo, created_at, updated_at`

func scanUsuario(row pgx.Row) (*entity.Usuario, error) {
	var u entity.Usuario
	err := row.Scan(
		&u.ID, &u.Nombre, &u.DNI, &u.Email, &u.PasswordHash,
		&u.Rol, &u.Activo, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste un usuario nuevo.
func (r *UsuarioRepo) Create(u *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (` + usuarioCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		u.ID, u.Nombre, u.DNI, u.Email, u.PasswordHash,
		u.Rol, u.Activo, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID, o nil si no existe.
func (r *UsuarioRepo) GetByID(id string) (*entity.Usuario, error) {
	u, err := scanUsuario(r.q.QueryRow(context.Background(),
		`SELECT `+usuarioCols+` FROM usuarios WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return u, nil
}

// FindByEmail obtiene un usuario por email, o nil si no existe.
func (r *UsuarioRepo) FindByEmail(email string) (*entity.Usuario, error) {
	u, err := scanUsuario(r.q.QueryRow(context.Background(),
		`SELECT `+usuarioCols+` FROM usuarios WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find usuario por email: %w", err)
	}
	return u, nil
}

// Update actualiza un usuario.
func (r *UsuarioRepo) Update(u *entity.Usuario) error {
	query := `
		UPDATE usuarios SET nombre = $2, dni = $3, email = $4, password_hash = $5, rol = $6, activo = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		u.ID, u.Nombre, u.DNI, u.Email, u.PasswordHash, u.Rol, u.Activo, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update usuario: %w", err)
	}
	return nil
}

// List lista usuarios con paginación.
func (r *UsuarioRepo) List(limit, offset int) ([]*entity.Usuario, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+usuarioCols+` FROM usuarios ORDER BY nombre LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	defer rows.Close()
	return collectUsuarios(rows)
}

// ListActivos lista los usuarios activos (para el job de asistencias).
func (r *UsuarioRepo) ListActivos() ([]*entity.Usuario, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+usuarioCols+` FROM usuarios WHERE activo ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list usuarios activos: %w", err)
	}
	defer rows.Close()
	return collectUsuarios(rows)
}

func collectUsuarios(rows pgx.Rows) ([]*entity.Usuario, error) {
	var out []*entity.Usuario
	for rows.Next() {
		u, err := scanUsuario(rows)
		if err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// CountAdminsActivos cuenta los admins activos (guarda contra borrar el último).
func (r *UsuarioRepo) CountAdminsActivos() (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM usuarios WHERE rol = 'admin' AND activo`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count admins: %w", err)
	}
	return n, nil
}

// Delete elimina un usuario.
func (r *UsuarioRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM usuarios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete usuario: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// AsistenciaRepo implementación de AsistenciaRepository sobre PostgreSQL (usable con pool o tx).
type AsistenciaRepo struct {
	q Querier
}

// NewAsistenciaRepository construye el adaptador de asistencias. Pasar pool o tx (Querier).
func NewAsistenciaRepository(q Querier) *AsistenciaRepo {
	return &AsistenciaRepo{q: q}
}

const asistenciaCols = `id, usuario_id, fecha, presente, motivo_ausencia, justificada, created_at`

func scanAsistencia(row pgx.Row) (*entity.Asistencia, error) {
	var a entity.Asistencia
	err := row.Scan(
		&a.ID, &a.UsuarioID, &a.Fecha, &a.Presente,
		&a.MotivoAusencia, &a.Justificada, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserta un registro de asistencia. La tabla tiene unique por
// (usuario, fecha): el segundo registro del día devuelve ErrDuplicate.
func (r *AsistenciaRepo) Create(a *entity.Asistencia) error {
	query := `
		INSERT INTO asistencias (` + asistenciaCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.UsuarioID, a.Fecha, a.Presente,
		a.MotivoAusencia, a.Justificada, a.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert asistencia: %w", err)
	}
	return nil
}

// GetPorUsuarioYFecha devuelve el registro del día o nil.
func (r *AsistenciaRepo) GetPorUsuarioYFecha(usuarioID string, fecha time.Time) (*entity.Asistencia, error) {
	a, err := scanAsistencia(r.q.QueryRow(context.Background(),
		`SELECT `+asistenciaCols+` FROM asistencias WHERE usuario_id = $1 AND fecha = $2::date`,
		usuarioID, fecha))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get asistencia: %w", err)
	}
	return a, nil
}

// ListPorFecha lista los registros de una fecha.
func (r *AsistenciaRepo) ListPorFecha(fecha time.Time) ([]*entity.Asistencia, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+asistenciaCols+` FROM asistencias WHERE fecha = $1::date ORDER BY usuario_id`, fecha)
	if err != nil {
		return nil, fmt.Errorf("list asistencias por fecha: %w", err)
	}
	defer rows.Close()
	return collectAsistencias(rows)
}

// ListPorUsuarioYMes lista los registros de un empleado en un mes.
func (r *AsistenciaRepo) ListPorUsuarioYMes(usuarioID string, anio int, mes time.Month) ([]*entity.Asistencia, error) {
	query := `
		SELECT ` + asistenciaCols + ` FROM asistencias
		WHERE usuario_id = $1
		  AND EXTRACT(YEAR FROM fecha) = $2
		  AND EXTRACT(MONTH FROM fecha) = $3
		ORDER BY fecha`
	rows, err := r.q.Query(context.Background(), query, usuarioID, anio, int(mes))
	if err != nil {
		return nil, fmt.Errorf("list asistencias por mes: %w", err)
	}
	defer rows.Close()
	return collectAsistencias(rows)
}

func collectAsistencias(rows pgx.Rows) ([]*entity.Asistencia, error) {
	var out []*entity.Asistencia
	for rows.Next() {
		a, err := scanAsistencia(rows)
		if err != nil {
			return nil, fmt.Errorf("scan asistencia: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
