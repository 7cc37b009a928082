package pedidos

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmolina/avicola-api/internal/application/dto"
	"github.com/jmolina/avicola-api/internal/domain"
	"github.com/jmolina/avicola-api/internal/domain/entity"
	"github.com/jmolina/avicola-api/internal/domain/repository"
	"github.com/jmolina/avicola-api/internal/domain/unidades"
	"github.com/jmolina/avicola-api/pkg/reloj"
)

// PedidoUseCase administra pedidos para entrega futura y los viajes de
// reparto que los llevan. Un vehículo tiene a lo sumo un viaje en curso.
type PedidoUseCase struct {
	pedidoRepo   repository.PedidoRepository
	viajeRepo    repository.ViajeRepository
	vehiculoRepo repository.VehiculoRepository
	clienteRepo  repository.ClienteRepository
	productoRepo repository.ProductoRepository
	usuarioRepo  repository.UsuarioRepository
	clock        reloj.Clock
}

// NewPedidoUseCase construye el caso de uso.
func NewPedidoUseCase(
	pedidoRepo repository.PedidoRepository,
	viajeRepo repository.ViajeRepository,
	vehiculoRepo repository.VehiculoRepository,
	clienteRepo repository.ClienteRepository,
	productoRepo repository.ProductoRepository,
	usuarioRepo repository.UsuarioRepository,
	clock reloj.Clock,
) *PedidoUseCase {
	return &PedidoUseCase{
		pedidoRepo:   pedidoRepo,
		viajeRepo:    viajeRepo,
		vehiculoRepo: vehiculoRepo,
		clienteRepo:  clienteRepo,
		productoRepo: productoRepo,
		usuarioRepo:  usuarioRepo,
		clock:        clock,
	}
}

// ── Pedidos ───────────────────────────────────────────────────────────────────

// CrearPedido toma un encargo de un cliente. No toca stock: el stock recién
// se mueve cuando el pedido se entrega como venta.
func (uc *PedidoUseCase) CrearPedido(ctx context.Context, in dto.CrearPedidoRequest) (*dto.PedidoResponse, error) {
	if in.ClienteID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	cliente, err := uc.clienteRepo.GetByID(in.ClienteID)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, domain.ErrNotFound
	}
	for _, item := range in.Items {
		if item.ProductoID == "" || !item.Cantidad.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		if item.Unidad != "" && !unidades.EsValida(item.Unidad) {
			return nil, domain.ErrUnidadDesconocida
		}
		p, err := uc.productoRepo.GetByID(item.ProductoID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
	}

	ahora := uc.clock.Now()
	pedido := &entity.Pedido{
		ID:           uuid.New().String(),
		ClienteID:    in.ClienteID,
		FechaPedido:  ahora,
		FechaEntrega: in.FechaEntrega,
		Estado:       entity.PedidoPendiente,
		Notas:        strings.TrimSpace(in.Notas),
		CreatedAt:    ahora,
		UpdatedAt:    ahora,
	}
	if err := uc.pedidoRepo.Create(pedido); err != nil {
		return nil, err
	}
	for _, item := range in.Items {
		det := &entity.DetallePedido{
			ID:             uuid.New().String(),
			PedidoID:       pedido.ID,
			ProductoID:     item.ProductoID,
			Cantidad:       item.Cantidad,
			Unidad:         item.Unidad,
			PrecioUnitario: item.PrecioUnitario,
		}
		if err := uc.pedidoRepo.CreateDetalle(det); err != nil {
			return nil, err
		}
	}
	return uc.pedidoAResponse(pedido)
}

// GetPedido devuelve un pedido con sus líneas.
func (uc *PedidoUseCase) GetPedido(ctx context.Context, id string) (*dto.PedidoResponse, error) {
	p, err := uc.pedidoRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return uc.pedidoAResponse(p)
}

// ListPedidos devuelve pedidos, opcionalmente filtrados por estado.
func (uc *PedidoUseCase) ListPedidos(ctx context.Context, estado string, limit, offset int) ([]dto.PedidoResponse, error) {
	switch estado {
	case "", entity.PedidoPendiente, entity.PedidoAsignado, entity.PedidoEntregado, entity.PedidoCancelado:
	default:
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	pedidos, err := uc.pedidoRepo.List(estado, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PedidoResponse, 0, len(pedidos))
	for _, p := range pedidos {
		resp, err := uc.pedidoAResponse(p)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

// AsignarPedido engancha un pedido pendiente a un viaje en curso.
func (uc *PedidoUseCase) AsignarPedido(ctx context.Context, pedidoID string, in dto.AsignarPedidoRequest) (*dto.PedidoResponse, error) {
	if in.ViajeID == "" {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.pedidoRepo.GetByID(pedidoID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if p.Estado != entity.PedidoPendiente {
		return nil, domain.ErrConflict
	}
	viaje, err := uc.viajeRepo.GetByID(in.ViajeID)
	if err != nil {
		return nil, err
	}
	if viaje == nil {
		return nil, domain.ErrNotFound
	}
	if viaje.Estado != entity.ViajeEnCurso {
		return nil, domain.ErrConflict
	}

	p.Estado = entity.PedidoAsignado
	p.ViajeID = in.ViajeID
	p.UpdatedAt = uc.clock.Now()
	if err := uc.pedidoRepo.Update(p); err != nil {
		return nil, err
	}
	return uc.pedidoAResponse(p)
}

// EntregarPedido marca un pedido como entregado. La venta asociada se
// registra aparte por el flujo normal de ventas; acá solo se cierra el
// encargo y se anota si quedó pagado.
func (uc *PedidoUseCase) EntregarPedido(ctx context.Context, pedidoID string, in dto.EntregarPedidoRequest) (*dto.PedidoResponse, error) {
	p, err := uc.pedidoRepo.GetByID(pedidoID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if p.Estado != entity.PedidoPendiente && p.Estado != entity.PedidoAsignado {
		return nil, domain.ErrConflict
	}
	ahora := uc.clock.Now()
	p.Estado = entity.PedidoEntregado
	p.FechaEntrega = &ahora
	p.Pagado = in.Pagado
	p.UpdatedAt = ahora
	if err := uc.pedidoRepo.Update(p); err != nil {
		return nil, err
	}
	return uc.pedidoAResponse(p)
}

// CancelarPedido cancela un pedido no entregado.
func (uc *PedidoUseCase) CancelarPedido(ctx context.Context, pedidoID string) (*dto.PedidoResponse, error) {
	p, err := uc.pedidoRepo.GetByID(pedidoID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if p.Estado == entity.PedidoEntregado || p.Estado == entity.PedidoCancelado {
		return nil, domain.ErrConflict
	}
	p.Estado = entity.PedidoCancelado
	p.UpdatedAt = uc.clock.Now()
	if err := uc.pedidoRepo.Update(p); err != nil {
		return nil, err
	}
	return uc.pedidoAResponse(p)
}

// ── Viajes ────────────────────────────────────────────────────────────────────

// IniciarViaje saca un vehículo a ruta con su chofer. El vehículo no puede
// tener otro viaje en curso.
func (uc *PedidoUseCase) IniciarViaje(ctx context.Context, in dto.IniciarViajeRequest) (*dto.ViajeResponse, error) {
	if in.VehiculoID == "" || in.ChoferID == "" {
		return nil, domain.ErrInvalidInput
	}
	vehiculo, err := uc.vehiculoRepo.GetByID(in.VehiculoID)
	if err != nil {
		return nil, err
	}
	if vehiculo == nil {
		return nil, domain.ErrNotFound
	}
	if !vehiculo.Activo {
		return nil, domain.ErrConflict
	}
	chofer, err := uc.usuarioRepo.GetByID(in.ChoferID)
	if err != nil {
		return nil, err
	}
	if chofer == nil {
		return nil, domain.ErrNotFound
	}
	enCurso, err := uc.viajeRepo.GetEnCursoPorVehiculo(in.VehiculoID)
	if err != nil {
		return nil, err
	}
	if enCurso != nil {
		return nil, domain.ErrEstadoActivoDuplicado
	}

	ahora := uc.clock.Now()
	viaje := &entity.Viaje{
		ID:          uuid.New().String(),
		VehiculoID:  in.VehiculoID,
		ChoferID:    in.ChoferID,
		FechaSalida: ahora,
		Estado:      entity.ViajeEnCurso,
		Notas:       strings.TrimSpace(in.Notas),
		CreatedAt:   ahora,
		UpdatedAt:   ahora,
	}
	if err := uc.viajeRepo.Create(viaje); err != nil {
		return nil, err
	}
	vehiculo.EnRuta = true
	vehiculo.UpdatedAt = ahora
	if err := uc.vehiculoRepo.Update(vehiculo); err != nil {
		return nil, err
	}
	return viajeAResponse(viaje), nil
}

// FinalizarViaje cierra el viaje en curso y devuelve el vehículo a base. La
// descarga del remanente se registra aparte por inventario.
func (uc *PedidoUseCase) FinalizarViaje(ctx context.Context, viajeID string) (*dto.ViajeResponse, error) {
	viaje, err := uc.viajeRepo.GetByID(viajeID)
	if err != nil {
		return nil, err
	}
	if viaje == nil {
		return nil, domain.ErrNotFound
	}
	if viaje.Estado != entity.ViajeEnCurso {
		return nil, domain.ErrConflict
	}
	ahora := uc.clock.Now()
	viaje.Estado = entity.ViajeFinalizado
	viaje.FechaRegreso = &ahora
	viaje.UpdatedAt = ahora
	if err := uc.viajeRepo.Update(viaje); err != nil {
		return nil, err
	}
	vehiculo, err := uc.vehiculoRepo.GetByID(viaje.VehiculoID)
	if err != nil {
		return nil, err
	}
	if vehiculo != nil {
		vehiculo.EnRuta = false
		vehiculo.UpdatedAt = ahora
		if err := uc.vehiculoRepo.Update(vehiculo); err != nil {
			return nil, err
		}
	}
	return viajeAResponse(viaje), nil
}

// GetViaje devuelve un viaje por su ID.
func (uc *PedidoUseCase) GetViaje(ctx context.Context, id string) (*dto.ViajeResponse, error) {
	v, err := uc.viajeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	return viajeAResponse(v), nil
}

// ListViajes devuelve viajes paginados.
func (uc *PedidoUseCase) ListViajes(ctx context.Context, limit, offset int) ([]dto.ViajeResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	viajes, err := uc.viajeRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ViajeResponse, 0, len(viajes))
	for _, v := range viajes {
		out = append(out, *viajeAResponse(v))
	}
	return out, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (uc *PedidoUseCase) pedidoAResponse(p *entity.Pedido) (*dto.PedidoResponse, error) {
	detalles, err := uc.pedidoRepo.ListDetalles(p.ID)
	if err != nil {
		return nil, err
	}
	out := &dto.PedidoResponse{
		ID:           p.ID,
		ClienteID:    p.ClienteID,
		FechaPedido:  p.FechaPedido,
		FechaEntrega: p.FechaEntrega,
		Estado:       p.Estado,
		ViajeID:      p.ViajeID,
		Pagado:       p.Pagado,
		Notas:        p.Notas,
	}
	for _, d := range detalles {
		out.Items = append(out.Items, dto.PedidoItem{
			ProductoID:     d.ProductoID,
			Cantidad:       d.Cantidad,
			Unidad:         d.Unidad,
			PrecioUnitario: d.PrecioUnitario,
		})
	}
	return out, nil
}

func viajeAResponse(v *entity.Viaje) *dto.ViajeResponse {
	return &dto.ViajeResponse{
		ID:           v.ID,
		VehiculoID:   v.VehiculoID,
		ChoferID:     v.ChoferID,
		FechaSalida:  v.FechaSalida,
		FechaRegreso: v.FechaRegreso,
		Estado:       v.Estado,
		Notas:        v.Notas,
	}
}
