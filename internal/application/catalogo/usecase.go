package catalogo

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

// CatalogoUseCase administra el catálogo: productos y vehículos de reparto.
type CatalogoUseCase struct {
	productoRepo repository.ProductoRepository
	vehiculoRepo repository.VehiculoRepository
	usuarioRepo  repository.UsuarioRepository
	clock        reloj.Clock
}

// NewCatalogoUseCase construye el caso de uso.
func NewCatalogoUseCase(
	productoRepo repository.ProductoRepository,
	vehiculoRepo repository.VehiculoRepository,
	usuarioRepo repository.UsuarioRepository,
	clock reloj.Clock,
) *CatalogoUseCase {
	return &CatalogoUseCase{
		productoRepo: productoRepo,
		vehiculoRepo: vehiculoRepo,
		usuarioRepo:  usuarioRepo,
		clock:        clock,
	}
}

// ── Productos ─────────────────────────────────────────────────────────────────

// CreateProducto da de alta un producto. La unidad base queda fija: todo el
// stock histórico del producto está expresado en ella.
func (uc *CatalogoUseCase) CreateProducto(ctx context.Context, in dto.CreateProductoRequest) (*dto.ProductoResponse, error) {
	if strings.TrimSpace(in.Nombre) == "" {
		return nil, domain.ErrInvalidInput
	}
	switch in.Tipo {
	case entity.ProductoHuevo, entity.ProductoInsumo, entity.ProductoEmbalaje:
	default:
		return nil, domain.ErrInvalidInput
	}
	if !unidades.EsValida(in.UnidadBase) {
		return nil, domain.ErrUnidadDesconocida
	}
	if in.Precio.IsNegative() || in.StockMinimo.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	ahora := uc.clock.Now()
	p := &entity.Producto{
		ID:          uuid.New().String(),
		Nombre:      strings.TrimSpace(in.Nombre),
		Tipo:        in.Tipo,
		UnidadBase:  in.UnidadBase,
		Precio:      in.Precio,
		StockMinimo: in.StockMinimo,
		Activo:      true,
		CreatedAt:   ahora,
		UpdatedAt:   ahora,
	}
	if err := uc.productoRepo.Create(p); err != nil {
		return nil, err
	}
	return productoAResponse(p), nil
}

// GetProducto devuelve un producto por su ID.
func (uc *CatalogoUseCase) GetProducto(ctx context.Context, id string) (*dto.ProductoResponse, error) {
	p, err := uc.productoRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return productoAResponse(p), nil
}

// ListProductos devuelve productos paginados.
func (uc *CatalogoUseCase) ListProductos(ctx context.Context, page dto.PageRequest) (*dto.ProductoListResponse, error) {
	page.DefaultPage()
	productos, err := uc.productoRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductoListResponse{
		Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, p := range productos {
		out.Items = append(out.Items, *productoAResponse(p))
	}
	return out, nil
}

// UpdateProducto modifica nombre, precio, mínimo o estado. La unidad base y
// el tipo no se editan: cambiarlos reinterpretaría todo el stock histórico.
func (uc *CatalogoUseCase) UpdateProducto(ctx context.Context, id string, in dto.UpdateProductoRequest) (*dto.ProductoResponse, error) {
	p, err := uc.productoRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.Nombre != nil {
		if strings.TrimSpace(*in.Nombre) == "" {
			return nil, domain.ErrInvalidInput
		}
		p.Nombre = strings.TrimSpace(*in.Nombre)
	}
	if in.Precio != nil {
		if in.Precio.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		p.Precio = *in.Precio
	}
	if in.StockMinimo != nil {
		if in.StockMinimo.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		p.StockMinimo = *in.StockMinimo
	}
	if in.Activo != nil {
		p.Activo = *in.Activo
	}
	p.UpdatedAt = uc.clock.Now()
	if err := uc.productoRepo.Update(p); err != nil {
		return nil, err
	}
	return productoAResponse(p), nil
}

// DeleteProducto elimina un producto del catálogo.
func (uc *CatalogoUseCase) DeleteProducto(ctx context.Context, id string) error {
	p, err := uc.productoRepo.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return uc.productoRepo.Delete(id)
}

// ProductosBajoMinimo lista los productos con stock total por debajo del
// umbral de alerta.
func (uc *CatalogoUseCase) ProductosBajoMinimo(ctx context.Context) ([]dto.ProductoResponse, error) {
	productos, err := uc.productoRepo.ListBajoMinimo()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductoResponse, 0, len(productos))
	for _, p := range productos {
		out = append(out, *productoAResponse(p))
	}
	return out, nil
}

// ── Vehículos ─────────────────────────────────────────────────────────────────

// CreateVehiculo da de alta un vehículo de reparto.
func (uc *CatalogoUseCase) CreateVehiculo(ctx context.Context, in dto.CreateVehiculoRequest) (*dto.VehiculoResponse, error) {
	patente := strings.ToUpper(strings.TrimSpace(in.Patente))
	if patente == "" || in.Kilometraje < 0 {
		return nil, domain.ErrInvalidInput
	}
	existente, err := uc.vehiculoRepo.GetByPatente(patente)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrDuplicate
	}
	if in.ChoferID != "" {
		chofer, err := uc.usuarioRepo.GetByID(in.ChoferID)
		if err != nil {
			return nil, err
		}
		if chofer == nil {
			return nil, domain.ErrUserNotFound
		}
	}
	ahora := uc.clock.Now()
	v := &entity.Vehiculo{
		ID:          uuid.New().String(),
		Patente:     patente,
		Kilometraje: in.Kilometraje,
		ChoferID:    in.ChoferID,
		Activo:      true,
		CreatedAt:   ahora,
		UpdatedAt:   ahora,
	}
	if err := uc.vehiculoRepo.Create(v); err != nil {
		return nil, err
	}
	return vehiculoAResponse(v), nil
}

// GetVehiculo devuelve un vehículo por su ID.
func (uc *CatalogoUseCase) GetVehiculo(ctx context.Context, id string) (*dto.VehiculoResponse, error) {
	v, err := uc.vehiculoRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	return vehiculoAResponse(v), nil
}

// ListVehiculos devuelve vehículos paginados.
func (uc *CatalogoUseCase) ListVehiculos(ctx context.Context, limit, offset int) ([]dto.VehiculoResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	vehiculos, err := uc.vehiculoRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VehiculoResponse, 0, len(vehiculos))
	for _, v := range vehiculos {
		out = append(out, *vehiculoAResponse(v))
	}
	return out, nil
}

// UpdateVehiculo modifica datos del vehículo. El kilometraje solo avanza.
func (uc *CatalogoUseCase) UpdateVehiculo(ctx context.Context, id string, in dto.UpdateVehiculoRequest) (*dto.VehiculoResponse, error) {
	v, err := uc.vehiculoRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	if in.Kilometraje != nil {
		if *in.Kilometraje < v.Kilometraje {
			return nil, domain.ErrInvalidInput
		}
		v.Kilometraje = *in.Kilometraje
	}
	if in.ChoferID != nil {
		if *in.ChoferID != "" {
			chofer, err := uc.usuarioRepo.GetByID(*in.ChoferID)
			if err != nil {
				return nil, err
			}
			if chofer == nil {
				return nil, domain.ErrUserNotFound
			}
		}
		v.ChoferID = *in.ChoferID
	}
	if in.UltimoService != nil {
		v.UltimoService = in.UltimoService
	}
	if in.VencimientoVTV != nil {
		v.VencimientoVTV = in.VencimientoVTV
	}
	if in.VencimientoSeguro != nil {
		v.VencimientoSeguro = in.VencimientoSeguro
	}
	if in.Activo != nil {
		v.Activo = *in.Activo
	}
	v.UpdatedAt = uc.clock.Now()
	if err := uc.vehiculoRepo.Update(v); err != nil {
		return nil, err
	}
	return vehiculoAResponse(v), nil
}

// DeleteVehiculo elimina un vehículo que no esté en ruta.
func (uc *CatalogoUseCase) DeleteVehiculo(ctx context.Context, id string) error {
	v, err := uc.vehiculoRepo.GetByID(id)
	if err != nil {
		return err
	}
	if v == nil {
		return domain.ErrNotFound
	}
	if v.EnRuta {
		return domain.ErrConflict
	}
	return uc.vehiculoRepo.Delete(id)
}

func productoAResponse(p *entity.Producto) *dto.ProductoResponse {
	return &dto.ProductoResponse{
		ID:          p.ID,
		Nombre:      p.Nombre,
		Tipo:        p.Tipo,
		UnidadBase:  p.UnidadBase,
		Precio:      p.Precio,
		Costo:       p.Costo,
		StockMinimo: p.StockMinimo,
		Activo:      p.Activo,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func vehiculoAResponse(v *entity.Vehiculo) *dto.VehiculoResponse {
	return &dto.VehiculoResponse{
		ID:                v.ID,
		Patente:           v.Patente,
		Kilometraje:       v.Kilometraje,
		EnRuta:            v.EnRuta,
		ChoferID:          v.ChoferID,
		UltimoService:     v.UltimoService,
		VencimientoVTV:    v.VencimientoVTV,
		VencimientoSeguro: v.VencimientoSeguro,
		Activo:            v.Activo,
	}
}
