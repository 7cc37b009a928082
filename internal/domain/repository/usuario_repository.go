package repository

import (
	"time"

	"github.com/jmolina/avicola-api/internal/domain/entity"
)

// UsuarioRepository puerto de persistencia para usuarios/empleados.
type UsuarioRepository interface {
	Create(u *entity.Usuario) error
	GetByID(id string) (*entity.Usuario, error)
	FindByEmail(email string) (*entity.Usuario, error)
	Update(u *entity.Usuario) error
	List(limit, offset int) ([]*entity.Usuario, error)
	ListActivos() ([]*entity.Usuario, error)
	// CountAdminsActivos cuenta los admins activos (guarda contra borrar el último).
	CountAdminsActivos() (int, error)
	Delete(id string) error
}

// AsistenciaRepository puerto de persistencia para asistencias.
type AsistenciaRepository interface {
	Create(a *entity.Asistencia) error
	// GetPorUsuarioYFecha devuelve el registro del día o nil.
	GetPorUsuarioYFecha(usuarioID string, fecha time.Time) (*entity.Asistencia, error)
	ListPorFecha(fecha time.Time) ([]*entity.Asistencia, error)
	ListPorUsuarioYMes(usuarioID string, anio int, mes time.Month) ([]*entity.Asistencia, error)
}
