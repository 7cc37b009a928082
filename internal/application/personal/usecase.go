package personal

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmolina/avicola-api/internal/application/dto"
	"github.com/jmolina/avicola-api/internal/domain"
	"github.com/jmolina/avicola-api/internal/domain/entity"
	"github.com/jmolina/avicola-api/internal/domain/repository"
	"github.com/jmolina/avicola-api/pkg/reloj"
	"golang.org/x/crypto/bcrypt"
)

// PersonalUseCase administra empleados y su asistencia diaria. El sistema no
// puede quedarse sin administradores: desactivar, borrar o degradar al
// último admin activo se rechaza.
type PersonalUseCase struct {
	usuarioRepo    repository.UsuarioRepository
	asistenciaRepo repository.AsistenciaRepository
	clock          reloj.Clock
}

// NewPersonalUseCase construye el caso de uso.
func NewPersonalUseCase(
	usuarioRepo repository.UsuarioRepository,
	asistenciaRepo repository.AsistenciaRepository,
	clock reloj.Clock,
) *PersonalUseCase {
	return &PersonalUseCase{
		usuarioRepo:    usuarioRepo,
		asistenciaRepo: asistenciaRepo,
		clock:          clock,
	}
}

// ── Empleados ─────────────────────────────────────────────────────────────────

// CreateEmpleado da de alta un empleado con su contraseña hasheada.
func (uc *PersonalUseCase) CreateEmpleado(ctx context.Context, in dto.CreateEmpleadoRequest) (*dto.UsuarioResponse, error) {
	if strings.TrimSpace(in.Nombre) == "" || strings.TrimSpace(in.Email) == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	if !entity.RolValido(in.Rol) {
		return nil, domain.ErrInvalidInput
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existente, err := uc.usuarioRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrDuplicate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	ahora := uc.clock.Now()
	u := &entity.Usuario{
		ID:           uuid.New().String(),
		Nombre:       strings.TrimSpace(in.Nombre),
		DNI:          strings.TrimSpace(in.DNI),
		Email:        email,
		PasswordHash: string(hash),
		Rol:          in.Rol,
		Activo:       true,
		CreatedAt:    ahora,
		UpdatedAt:    ahora,
	}
	if err := uc.usuarioRepo.Create(u); err != nil {
		return nil, err
	}
	return usuarioAResponse(u), nil
}

// GetEmpleado devuelve un empleado por su ID.
func (uc *PersonalUseCase) GetEmpleado(ctx context.Context, id string) (*dto.UsuarioResponse, error) {
	u, err := uc.usuarioRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return usuarioAResponse(u), nil
}

// ListEmpleados devuelve empleados paginados.
func (uc *PersonalUseCase) ListEmpleados(ctx context.Context, limit, offset int) ([]dto.UsuarioResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	usuarios, err := uc.usuarioRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UsuarioResponse, 0, len(usuarios))
	for _, u := range usuarios {
		out = append(out, *usuarioAResponse(u))
	}
	return out, nil
}

// UpdateEmpleado modifica datos, rol o estado de un empleado.
func (uc *PersonalUseCase) UpdateEmpleado(ctx context.Context, id string, in dto.UpdateEmpleadoRequest) (*dto.UsuarioResponse, error) {
	u, err := uc.usuarioRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}

	// Degradar o desactivar al último admin activo dejaría el sistema sin
	// administración.
	pierdeAdmin := false
	if u.Rol == entity.RolAdmin && u.Activo {
		if in.Rol != nil && *in.Rol != entity.RolAdmin {
			pierdeAdmin = true
		}
		if in.Activo != nil && !*in.Activo {
			pierdeAdmin = true
		}
	}
	if pierdeAdmin {
		n, err := uc.usuarioRepo.CountAdminsActivos()
		if err != nil {
			return nil, err
		}
		if n <= 1 {
			return nil, domain.ErrUltimoAdmin
		}
	}

	if in.Nombre != nil {
		if strings.TrimSpace(*in.Nombre) == "" {
			return nil, domain.ErrInvalidInput
		}
		u.Nombre = strings.TrimSpace(*in.Nombre)
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email == "" {
			return nil, domain.ErrInvalidInput
		}
		u.Email = email
	}
	if in.Rol != nil {
		if !entity.RolValido(*in.Rol) {
			return nil, domain.ErrInvalidInput
		}
		u.Rol = *in.Rol
	}
	if in.Activo != nil {
		u.Activo = *in.Activo
	}
	u.UpdatedAt = uc.clock.Now()
	if err := uc.usuarioRepo.Update(u); err != nil {
		return nil, err
	}
	return usuarioAResponse(u), nil
}

// DeleteEmpleado elimina un empleado. El último admin activo no se puede
// borrar.
func (uc *PersonalUseCase) DeleteEmpleado(ctx context.Context, id string) error {
	u, err := uc.usuarioRepo.GetByID(id)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrUserNotFound
	}
	if u.Rol == entity.RolAdmin && u.Activo {
		n, err := uc.usuarioRepo.CountAdminsActivos()
		if err != nil {
			return err
		}
		if n <= 1 {
			return domain.ErrUltimoAdmin
		}
	}
	return uc.usuarioRepo.Delete(id)
}

// ── Asistencias ───────────────────────────────────────────────────────────────

// RegistrarAsistencia asienta presencia o ausencia de un empleado en un día.
// Una sola fila por empleado y fecha.
func (uc *PersonalUseCase) RegistrarAsistencia(ctx context.Context, in dto.RegistrarAsistenciaRequest) (*dto.AsistenciaResponse, error) {
	if in.UsuarioID == "" {
		return nil, domain.ErrInvalidInput
	}
	u, err := uc.usuarioRepo.GetByID(in.UsuarioID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	ahora := uc.clock.Now()
	fecha := soloFecha(ahora)
	if in.Fecha != nil {
		fecha = soloFecha(*in.Fecha)
	}
	existente, err := uc.asistenciaRepo.GetPorUsuarioYFecha(in.UsuarioID, fecha)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrDuplicate
	}

	a := &entity.Asistencia{
		ID:             uuid.New().String(),
		UsuarioID:      in.UsuarioID,
		Fecha:          fecha,
		Presente:       in.Presente,
		MotivoAusencia: strings.TrimSpace(in.MotivoAusencia),
		Justificada:    in.Justificada,
		CreatedAt:      ahora,
	}
	if err := uc.asistenciaRepo.Create(a); err != nil {
		return nil, err
	}
	return asistenciaAResponse(a), nil
}

// AsistenciasDelDia devuelve todos los registros de una fecha.
func (uc *PersonalUseCase) AsistenciasDelDia(ctx context.Context, fecha time.Time) ([]dto.AsistenciaResponse, error) {
	asistencias, err := uc.asistenciaRepo.ListPorFecha(soloFecha(fecha))
	if err != nil {
		return nil, err
	}
	out := make([]dto.AsistenciaResponse, 0, len(asistencias))
	for _, a := range asistencias {
		out = append(out, *asistenciaAResponse(a))
	}
	return out, nil
}

// EstadisticasMensuales resume presencia y ausencias de un empleado en un mes.
func (uc *PersonalUseCase) EstadisticasMensuales(ctx context.Context, usuarioID string, anio int, mes time.Month) (*dto.EstadisticasAsistenciaResponse, error) {
	if anio < 2000 || mes < time.January || mes > time.December {
		return nil, domain.ErrInvalidInput
	}
	u, err := uc.usuarioRepo.GetByID(usuarioID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	asistencias, err := uc.asistenciaRepo.ListPorUsuarioYMes(usuarioID, anio, mes)
	if err != nil {
		return nil, err
	}
	stats := &dto.EstadisticasAsistenciaResponse{
		UsuarioID: usuarioID,
		Anio:      anio,
		Mes:       int(mes),
	}
	for _, a := range asistencias {
		switch {
		case a.Presente:
			stats.DiasPresente++
		case a.Justificada:
			stats.AusenciasJustificadas++
		default:
			stats.AusenciasInjustificadas++
		}
	}
	return stats, nil
}

// MarcarAusentes inserta una ausencia injustificada para cada empleado
// activo sin registro en la fecha. Lo dispara el job nocturno; correrlo dos
// veces el mismo día es inofensivo.
func (uc *PersonalUseCase) MarcarAusentes(ctx context.Context, fecha time.Time) (int, error) {
	fecha = soloFecha(fecha)
	activos, err := uc.usuarioRepo.ListActivos()
	if err != nil {
		return 0, err
	}
	ahora := uc.clock.Now()
	marcados := 0
	for _, u := range activos {
		existente, err := uc.asistenciaRepo.GetPorUsuarioYFecha(u.ID, fecha)
		if err != nil {
			return marcados, err
		}
		if existente != nil {
			continue
		}
		a := &entity.Asistencia{
			ID:        uuid.New().String(),
			UsuarioID: u.ID,
			Fecha:     fecha,
			Presente:  false,
			CreatedAt: ahora,
		}
		if err := uc.asistenciaRepo.Create(a); err != nil {
			return marcados, err
		}
		marcados++
	}
	return marcados, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func soloFecha(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func usuarioAResponse(u *entity.Usuario) *dto.UsuarioResponse {
	return &dto.UsuarioResponse{
		ID:        u.ID,
		Nombre:    u.Nombre,
		DNI:       u.DNI,
		Email:     u.Email,
		Rol:       u.Rol,
		Activo:    u.Activo,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func asistenciaAResponse(a *entity.Asistencia) *dto.AsistenciaResponse {
	return &dto.AsistenciaResponse{
		ID:             a.ID,
		UsuarioID:      a.UsuarioID,
		Fecha:          a.Fecha,
		Presente:       a.Presente,
		MotivoAusencia: a.MotivoAusencia,
		Justificada:    a.Justificada,
	}
}
