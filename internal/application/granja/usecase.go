package granja

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmolina/avicola-api/internal/application/dto"
	"github.com/jmolina/avicola-api/internal/domain"
	"github.com/jmolina/avicola-api/internal/domain/entity"
	"github.com/jmolina/avicola-api/internal/domain/inventario"
	"github.com/jmolina/avicola-api/internal/domain/repository"
	"github.com/jmolina/avicola-api/pkg/reloj"
	"github.com/shopspring/decimal"
)

// GranjaUseCase administra silos de alimento, galpones y lotes de aves.
// Las cantidades de silo y de aves se tocan solo bajo fila bloqueada y cada
// cambio deja su fila en el libro de movimientos o de mortalidad.
type GranjaUseCase struct {
	txRunner   TxRunner
	siloRepo   repository.SiloRepository
	galponRepo repository.GalponRepository
	loteRepo   repository.LoteRepository
	clock      reloj.Clock
}

// NewGranjaUseCase construye el caso de uso.
func NewGranjaUseCase(
	txRunner TxRunner,
	siloRepo repository.SiloRepository,
	galponRepo repository.GalponRepository,
	loteRepo repository.LoteRepository,
	clock reloj.Clock,
) *GranjaUseCase {
	return &GranjaUseCase{
		txRunner:   txRunner,
		siloRepo:   siloRepo,
		galponRepo: galponRepo,
		loteRepo:   loteRepo,
		clock:      clock,
	}
}

// ── Silos ─────────────────────────────────────────────────────────────────────

// CreateSilo da de alta un silo vacío.
func (uc *GranjaUseCase) CreateSilo(ctx context.Context, in dto.CreateSiloRequest) (*dto.SiloResponse, error) {
	if strings.TrimSpace(in.Nombre) == "" || !in.CapacidadKg.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	ahora := uc.clock.Now()
	s := &entity.Silo{
		ID:          uuid.New().String(),
		Nombre:      strings.TrimSpace(in.Nombre),
		CapacidadKg: in.CapacidadKg,
		CreatedAt:   ahora,
		UpdatedAt:   ahora,
	}
	if err := uc.siloRepo.Create(s); err != nil {
		return nil, err
	}
	return siloAResponse(s, nil), nil
}

// GetSilo devuelve un silo con su contenido desglosado por material.
func (uc *GranjaUseCase) GetSilo(ctx context.Context, id string) (*dto.SiloResponse, error) {
	s, err := uc.siloRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	contenido, err := uc.siloRepo.ListContenido(id)
	if err != nil {
		return nil, err
	}
	return siloAResponse(s, contenido), nil
}

// ListSilos devuelve todos los silos sin su desglose.
func (uc *GranjaUseCase) ListSilos(ctx context.Context) ([]dto.SiloResponse, error) {
	silos, err := uc.siloRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.SiloResponse, 0, len(silos))
	for _, s := range silos {
		out = append(out, *siloAResponse(s, nil))
	}
	return out, nil
}

// IngresoSilo descarga una compra de materia prima en el silo. El costo por
// kg del material se promedia con lo que ya había (mismo promedio ponderado
// que los productos del depósito) y la capacidad del silo es un tope duro.
func (uc *GranjaUseCase) IngresoSilo(ctx context.Context, siloID, usuarioID string, in dto.IngresoSiloRequest) (*dto.SiloResponse, error) {
	material := strings.ToLower(strings.TrimSpace(in.Material))
	if material == "" || !in.CantidadKg.IsPositive() || in.CostoPorKg.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	ahora := uc.clock.Now()

	var resp *dto.SiloResponse
	err := uc.txRunner.RunGranja(ctx, func(
		_ repository.GalponRepository,
		_ repository.LoteRepository,
		siloRepo repository.SiloRepository,
		movRepo repository.MovimientoRepository,
	) error {
		s, err := siloRepo.GetForUpdate(siloID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNotFound
		}
		if s.CantidadActual.Add(in.CantidadKg).GreaterThan(s.CapacidadKg) {
			return domain.ErrCapacidadExcedida
		}

		c, err := siloRepo.GetContenidoForUpdate(siloID, material)
		if err != nil {
			return err
		}
		if c == nil {
			c = &entity.ContenidoSilo{
				ID:       uuid.New().String(),
				SiloID:   siloID,
				Material: material,
			}
		}
		c.CostoPorKg = inventario.CostoPromedio(c.CantidadKg, c.CostoPorKg, in.CantidadKg, in.CostoPorKg)
		c.CantidadKg = c.CantidadKg.Add(in.CantidadKg)
		c.UpdatedAt = ahora
		if err := siloRepo.UpsertContenido(c); err != nil {
			return err
		}

		s.CantidadActual = s.CantidadActual.Add(in.CantidadKg)
		s.UpdatedAt = ahora
		if err := siloRepo.Update(s); err != nil {
			return err
		}

		mov := &entity.MovimientoStock{
			ID:            uuid.New().String(),
			Tipo:          entity.MovIngresoSilo,
			UbicacionTipo: "silo",
			UbicacionID:   siloID,
			ProductoID:    material,
			Cantidad:      in.CantidadKg,
			UsuarioID:     usuarioID,
			Fecha:         ahora,
			CreatedAt:     ahora,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		resp = siloAResponse(s, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ConsumoSilo descuenta materia prima del silo hacia los galpones. No se
// puede consumir más de lo que hay de ese material.
func (uc *GranjaUseCase) ConsumoSilo(ctx context.Context, siloID, usuarioID string, in dto.ConsumoSiloRequest) (*dto.SiloResponse, error) {
	material := strings.ToLower(strings.TrimSpace(in.Material))
	if material == "" || !in.CantidadKg.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	ahora := uc.clock.Now()

	var resp *dto.SiloResponse
	err := uc.txRunner.RunGranja(ctx, func(
		galponRepo repository.GalponRepository,
		_ repository.LoteRepository,
		siloRepo repository.SiloRepository,
		movRepo repository.MovimientoRepository,
	) error {
		s, err := siloRepo.GetForUpdate(siloID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNotFound
		}
		if in.GalponID != "" {
			g, err := galponRepo.GetByID(in.GalponID)
			if err != nil {
				return err
			}
			if g == nil {
				return domain.ErrNotFound
			}
		}

		c, err := siloRepo.GetContenidoForUpdate(siloID, material)
		if err != nil {
			return err
		}
		disponible := decimal.Zero
		if c != nil {
			disponible = c.CantidadKg
		}
		if disponible.LessThan(in.CantidadKg) {
			return &domain.StockInsuficienteError{
				ProductoID:    material,
				Producto:      material,
				UbicacionTipo: "silo",
				UbicacionID:   siloID,
				Solicitado:    in.CantidadKg.String(),
				Disponible:    disponible.String(),
			}
		}
		c.CantidadKg = c.CantidadKg.Sub(in.CantidadKg)
		c.UpdatedAt = ahora
		if err := siloRepo.UpsertContenido(c); err != nil {
			return err
		}

		s.CantidadActual = s.CantidadActual.Sub(in.CantidadKg)
		s.UpdatedAt = ahora
		if err := siloRepo.Update(s); err != nil {
			return err
		}

		mov := &entity.MovimientoStock{
			ID:            uuid.New().String(),
			Tipo:          entity.MovConsumoProduccion,
			UbicacionTipo: "silo",
			UbicacionID:   siloID,
			ProductoID:    material,
			Cantidad:      in.CantidadKg.Neg(),
			Referencia:    in.GalponID,
			UsuarioID:     usuarioID,
			Fecha:         ahora,
			CreatedAt:     ahora,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		resp = siloAResponse(s, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ── Galpones ──────────────────────────────────────────────────────────────────

// CreateGalpon da de alta un galpón vacío.
func (uc *GranjaUseCase) CreateGalpon(ctx context.Context, in dto.CreateGalponRequest) (*dto.GalponResponse, error) {
	if strings.TrimSpace(in.Nombre) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Tipo != entity.GalponProduccion && in.Tipo != entity.GalponCria {
		return nil, domain.ErrInvalidInput
	}
	ahora := uc.clock.Now()
	g := &entity.Galpon{
		ID:        uuid.New().String(),
		Nombre:    strings.TrimSpace(in.Nombre),
		Tipo:      in.Tipo,
		Estado:    entity.GalponActivo,
		CreatedAt: ahora,
		UpdatedAt: ahora,
	}
	if err := uc.galponRepo.Create(g); err != nil {
		return nil, err
	}
	return galponAResponse(g), nil
}

// ListGalpones devuelve todos los galpones.
func (uc *GranjaUseCase) ListGalpones(ctx context.Context) ([]dto.GalponResponse, error) {
	galpones, err := uc.galponRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.GalponResponse, 0, len(galpones))
	for _, g := range galpones {
		out = append(out, *galponAResponse(g))
	}
	return out, nil
}

// GetGalpon devuelve un galpón por su ID.
func (uc *GranjaUseCase) GetGalpon(ctx context.Context, id string) (*dto.GalponResponse, error) {
	g, err := uc.galponRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, domain.ErrNotFound
	}
	return galponAResponse(g), nil
}

// ── Lotes ─────────────────────────────────────────────────────────────────────

// CrearLote ingresa una camada nueva a un galpón. El galpón no puede tener
// otro lote activo: primero se cierra el anterior.
func (uc *GranjaUseCase) CrearLote(ctx context.Context, galponID, usuarioID string, in dto.CrearLoteRequest) (*dto.LoteResponse, error) {
	if strings.TrimSpace(in.TipoAve) == "" || in.Cantidad <= 0 || in.PrecioPorAve.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	ahora := uc.clock.Now()

	var resp *dto.LoteResponse
	err := uc.txRunner.RunGranja(ctx, func(
		galponRepo repository.GalponRepository,
		loteRepo repository.LoteRepository,
		_ repository.SiloRepository,
		_ repository.MovimientoRepository,
	) error {
		g, err := galponRepo.GetForUpdate(galponID)
		if err != nil {
			return err
		}
		if g == nil {
			return domain.ErrNotFound
		}
		activo, err := loteRepo.GetActivoPorGalpon(galponID)
		if err != nil {
			return err
		}
		if activo != nil {
			return domain.ErrEstadoActivoDuplicado
		}

		l := &entity.LoteAve{
			ID:              uuid.New().String(),
			GalponID:        galponID,
			TipoAve:         strings.TrimSpace(in.TipoAve),
			CantidadInicial: in.Cantidad,
			CantidadActual:  in.Cantidad,
			PrecioPorAve:    in.PrecioPorAve,
			FechaIngreso:    ahora,
			Estado:          entity.LoteActivo,
			CreatedAt:       ahora,
			UpdatedAt:       ahora,
		}
		if err := loteRepo.Create(l); err != nil {
			return err
		}
		g.CantidadAves += in.Cantidad
		g.UpdatedAt = ahora
		if err := galponRepo.Update(g); err != nil {
			return err
		}
		resp = loteAResponse(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetLote devuelve un lote por su ID.
func (uc *GranjaUseCase) GetLote(ctx context.Context, id string) (*dto.LoteResponse, error) {
	l, err := uc.loteRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	return loteAResponse(l), nil
}

// ListLotes devuelve los lotes de un galpón, activos y cerrados.
func (uc *GranjaUseCase) ListLotes(ctx context.Context, galponID string) ([]dto.LoteResponse, error) {
	lotes, err := uc.loteRepo.ListByGalpon(galponID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LoteResponse, 0, len(lotes))
	for _, l := range lotes {
		out = append(out, *loteAResponse(l))
	}
	return out, nil
}

// RegistrarMortalidad asienta bajas de un lote activo. Nunca puede morir más
// de lo que vive: un exceso es error de carga, no un lote en cero.
func (uc *GranjaUseCase) RegistrarMortalidad(ctx context.Context, loteID, usuarioID string, in dto.RegistrarMortalidadRequest) (*dto.LoteResponse, error) {
	if in.Cantidad <= 0 {
		return nil, domain.ErrCantidadInvalida
	}
	ahora := uc.clock.Now()

	var resp *dto.LoteResponse
	err := uc.txRunner.RunGranja(ctx, func(
		galponRepo repository.GalponRepository,
		loteRepo repository.LoteRepository,
		_ repository.SiloRepository,
		_ repository.MovimientoRepository,
	) error {
		l, err := loteRepo.GetForUpdate(loteID)
		if err != nil {
			return err
		}
		if l == nil {
			return domain.ErrNotFound
		}
		if l.Estado != entity.LoteActivo {
			return domain.ErrConflict
		}
		if in.Cantidad > l.CantidadActual {
			return domain.ErrCantidadInvalida
		}

		l.CantidadActual -= in.Cantidad
		l.UpdatedAt = ahora
		if err := loteRepo.Update(l); err != nil {
			return err
		}

		g, err := galponRepo.GetForUpdate(l.GalponID)
		if err != nil {
			return err
		}
		if g != nil {
			g.CantidadAves -= in.Cantidad
			g.UpdatedAt = ahora
			if err := galponRepo.Update(g); err != nil {
				return err
			}
		}

		evento := &entity.EventoMortalidad{
			ID:        uuid.New().String(),
			LoteID:    loteID,
			Cantidad:  in.Cantidad,
			Motivo:    strings.TrimSpace(in.Motivo),
			Fecha:     ahora,
			UsuarioID: usuarioID,
			CreatedAt: ahora,
		}
		if err := loteRepo.CreateMortalidad(evento); err != nil {
			return err
		}
		resp = loteAResponse(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ListMortalidad devuelve los eventos de mortalidad de un lote.
func (uc *GranjaUseCase) ListMortalidad(ctx context.Context, loteID string) ([]dto.MortalidadResponse, error) {
	l, err := uc.loteRepo.GetByID(loteID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	eventos, err := uc.loteRepo.ListMortalidad(loteID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MortalidadResponse, 0, len(eventos))
	for _, e := range eventos {
		out = append(out, dto.MortalidadResponse{
			ID:       e.ID,
			LoteID:   e.LoteID,
			Cantidad: e.Cantidad,
			Motivo:   e.Motivo,
			Fecha:    e.Fecha,
		})
	}
	return out, nil
}

// CerrarLote termina un lote (venta de descarte, fin de ciclo). Las aves que
// quedaban salen del conteo del galpón.
func (uc *GranjaUseCase) CerrarLote(ctx context.Context, loteID string) (*dto.LoteResponse, error) {
	ahora := uc.clock.Now()

	var resp *dto.LoteResponse
	err := uc.txRunner.RunGranja(ctx, func(
		galponRepo repository.GalponRepository,
		loteRepo repository.LoteRepository,
		_ repository.SiloRepository,
		_ repository.MovimientoRepository,
	) error {
		l, err := loteRepo.GetForUpdate(loteID)
		if err != nil {
			return err
		}
		if l == nil {
			return domain.ErrNotFound
		}
		if l.Estado != entity.LoteActivo {
			return domain.ErrConflict
		}

		g, err := galponRepo.GetForUpdate(l.GalponID)
		if err != nil {
			return err
		}
		if g != nil {
			g.CantidadAves -= l.CantidadActual
			g.UpdatedAt = ahora
			if err := galponRepo.Update(g); err != nil {
				return err
			}
		}

		l.Estado = entity.LoteCerrado
		l.FechaSalida = &ahora
		l.UpdatedAt = ahora
		if err := loteRepo.Update(l); err != nil {
			return err
		}
		resp = loteAResponse(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// TransferirLote pasa aves de un lote de cría a un galpón de producción, en
// una sola transacción sobre los dos galpones. Si el destino ya tiene lote
// activo las aves se suman a ese lote; si no, se abre uno nuevo con el mismo
// tipo de ave y precio.
func (uc *GranjaUseCase) TransferirLote(ctx context.Context, loteID string, in dto.TransferirLoteRequest) (*dto.LoteResponse, error) {
	if in.GalponDestinoID == "" || in.Cantidad <= 0 {
		return nil, domain.ErrInvalidInput
	}
	ahora := uc.clock.Now()

	var resp *dto.LoteResponse
	err := uc.txRunner.RunGranja(ctx, func(
		galponRepo repository.GalponRepository,
		loteRepo repository.LoteRepository,
		_ repository.SiloRepository,
		_ repository.MovimientoRepository,
	) error {
		origen, err := loteRepo.GetForUpdate(loteID)
		if err != nil {
			return err
		}
		if origen == nil {
			return domain.ErrNotFound
		}
		if origen.Estado != entity.LoteActivo {
			return domain.ErrConflict
		}
		if in.Cantidad > origen.CantidadActual {
			return domain.ErrCantidadInvalida
		}
		if origen.GalponID == in.GalponDestinoID {
			return domain.ErrInvalidInput
		}

		// Los dos galpones se bloquean en orden de ID: dos transferencias
		// cruzadas que los tomaran en orden de pedido se esperarían mutuamente.
		primeroID, segundoID := origen.GalponID, in.GalponDestinoID
		if segundoID < primeroID {
			primeroID, segundoID = segundoID, primeroID
		}
		primero, err := galponRepo.GetForUpdate(primeroID)
		if err != nil {
			return err
		}
		segundo, err := galponRepo.GetForUpdate(segundoID)
		if err != nil {
			return err
		}
		galponOrigen, destino := primero, segundo
		if primeroID != origen.GalponID {
			galponOrigen, destino = segundo, primero
		}
		if destino == nil {
			return domain.ErrNotFound
		}
		if destino.Tipo != entity.GalponProduccion || destino.Estado != entity.GalponActivo {
			return domain.ErrConflict
		}

		origen.CantidadActual -= in.Cantidad
		origen.UpdatedAt = ahora
		if origen.CantidadActual == 0 {
			origen.Estado = entity.LoteCerrado
			origen.FechaSalida = &ahora
		}
		if err := loteRepo.Update(origen); err != nil {
			return err
		}
		if galponOrigen != nil {
			galponOrigen.CantidadAves -= in.Cantidad
			galponOrigen.UpdatedAt = ahora
			if err := galponRepo.Update(galponOrigen); err != nil {
				return err
			}
		}

		loteDestino, err := loteRepo.GetActivoPorGalpon(in.GalponDestinoID)
		if err != nil {
			return err
		}
		if loteDestino != nil {
			loteDestino.CantidadInicial += in.Cantidad
			loteDestino.CantidadActual += in.Cantidad
			loteDestino.UpdatedAt = ahora
			if err := loteRepo.Update(loteDestino); err != nil {
				return err
			}
		} else {
			loteDestino = &entity.LoteAve{
				ID:              uuid.New().String(),
				GalponID:        in.GalponDestinoID,
				TipoAve:         origen.TipoAve,
				CantidadInicial: in.Cantidad,
				CantidadActual:  in.Cantidad,
				PrecioPorAve:    origen.PrecioPorAve,
				FechaIngreso:    ahora,
				Estado:          entity.LoteActivo,
				CreatedAt:       ahora,
				UpdatedAt:       ahora,
			}
			if err := loteRepo.Create(loteDestino); err != nil {
				return err
			}
		}

		destino.CantidadAves += in.Cantidad
		destino.UpdatedAt = ahora
		if err := galponRepo.Update(destino); err != nil {
			return err
		}
		resp = loteAResponse(loteDestino)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func siloAResponse(s *entity.Silo, contenido []*entity.ContenidoSilo) *dto.SiloResponse {
	out := &dto.SiloResponse{
		ID:             s.ID,
		Nombre:         s.Nombre,
		CapacidadKg:    s.CapacidadKg,
		CantidadActual: s.CantidadActual,
	}
	for _, c := range contenido {
		out.Contenido = append(out.Contenido, dto.ContenidoSiloResponse{
			Material:   c.Material,
			CantidadKg: c.CantidadKg,
			CostoPorKg: c.CostoPorKg,
		})
	}
	return out
}

func galponAResponse(g *entity.Galpon) *dto.GalponResponse {
	return &dto.GalponResponse{
		ID:           g.ID,
		Nombre:       g.Nombre,
		Tipo:         g.Tipo,
		Estado:       g.Estado,
		CantidadAves: g.CantidadAves,
	}
}

func loteAResponse(l *entity.LoteAve) *dto.LoteResponse {
	return &dto.LoteResponse{
		ID:              l.ID,
		GalponID:        l.GalponID,
		TipoAve:         l.TipoAve,
		CantidadInicial: l.CantidadInicial,
		CantidadActual:  l.CantidadActual,
		PrecioPorAve:    l.PrecioPorAve,
		FechaIngreso:    l.FechaIngreso,
		FechaSalida:     l.FechaSalida,
		Estado:          l.Estado,
	}
}
