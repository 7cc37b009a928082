package gastos

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
)

// GastoUseCase registra y consulta gastos operativos: flota, salarios,
// alimento y sanidad de la granja.
type GastoUseCase struct {
	gastoRepo    repository.GastoRepository
	vehiculoRepo repository.VehiculoRepository
	usuarioRepo  repository.UsuarioRepository
	clock        reloj.Clock
}

// NewGastoUseCase construye el caso de uso.
func NewGastoUseCase(
	gastoRepo repository.GastoRepository,
	vehiculoRepo repository.VehiculoRepository,
	usuarioRepo repository.UsuarioRepository,
	clock reloj.Clock,
) *GastoUseCase {
	return &GastoUseCase{
		gastoRepo:    gastoRepo,
		vehiculoRepo: vehiculoRepo,
		usuarioRepo:  usuarioRepo,
		clock:        clock,
	}
}

// Registrar asienta un gasto. Los gastos de flota actualizan de paso el
// kilometraje del vehículo si vino uno mayor al registrado.
func (uc *GastoUseCase) Registrar(ctx context.Context, usuarioID string, in dto.RegistrarGastoRequest) (*dto.GastoResponse, error) {
	if !entity.TipoGastoValido(in.Tipo) {
		return nil, domain.ErrInvalidInput
	}
	if !in.Monto.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if in.Litros != nil && in.Litros.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	ahora := uc.clock.Now()
	fecha := ahora
	if in.Fecha != nil {
		fecha = *in.Fecha
	}

	if in.VehiculoID != "" {
		v, err := uc.vehiculoRepo.GetByID(in.VehiculoID)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, domain.ErrNotFound
		}
		if in.Kilometraje != nil && *in.Kilometraje > v.Kilometraje {
			v.Kilometraje = *in.Kilometraje
			v.UpdatedAt = ahora
			if err := uc.vehiculoRepo.Update(v); err != nil {
				return nil, err
			}
		}
	}
	if in.EmpleadoID != "" {
		u, err := uc.usuarioRepo.GetByID(in.EmpleadoID)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, domain.ErrNotFound
		}
	}

	g := &entity.Gasto{
		ID:          uuid.New().String(),
		Fecha:       fecha,
		Tipo:        in.Tipo,
		Monto:       in.Monto,
		VehiculoID:  in.VehiculoID,
		Kilometraje: in.Kilometraje,
		Litros:      in.Litros,
		EmpleadoID:  in.EmpleadoID,
		Descripcion: strings.TrimSpace(in.Descripcion),
		UsuarioID:   usuarioID,
		CreatedAt:   ahora,
	}
	if err := uc.gastoRepo.Create(g); err != nil {
		return nil, err
	}
	return gastoAResponse(g), nil
}

// GetByID devuelve un gasto por su ID.
func (uc *GastoUseCase) GetByID(ctx context.Context, id string) (*dto.GastoResponse, error) {
	g, err := uc.gastoRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, domain.ErrNotFound
	}
	return gastoAResponse(g), nil
}

// List devuelve gastos del período, opcionalmente filtrados por tipo.
func (uc *GastoUseCase) List(ctx context.Context, desde, hasta time.Time, tipo string, limit, offset int) ([]dto.GastoResponse, error) {
	if tipo != "" && !entity.TipoGastoValido(tipo) {
		return nil, domain.ErrInvalidInput
	}
	if hasta.Before(desde) {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	gastos, err := uc.gastoRepo.List(desde, hasta, tipo, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.GastoResponse, 0, len(gastos))
	for _, g := range gastos {
		out = append(out, *gastoAResponse(g))
	}
	return out, nil
}

// Delete elimina un gasto cargado por error.
func (uc *GastoUseCase) Delete(ctx context.Context, id string) error {
	g, err := uc.gastoRepo.GetByID(id)
	if err != nil {
		return err
	}
	if g == nil {
		return domain.ErrNotFound
	}
	return uc.gastoRepo.Delete(id)
}

func gastoAResponse(g *entity.Gasto) *dto.GastoResponse {
	return &dto.GastoResponse{
		ID:          g.ID,
		Fecha:       g.Fecha,
		Tipo:        g.Tipo,
		Monto:       g.Monto,
		VehiculoID:  g.VehiculoID,
		Kilometraje: g.Kilometraje,
		Litros:      g.Litros,
		EmpleadoID:  g.EmpleadoID,
		Descripcion: g.Descripcion,
		UsuarioID:   g.UsuarioID,
	}
}
