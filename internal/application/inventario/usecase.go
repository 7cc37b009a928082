package inventario

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmolina/avicola-api/internal/application/dto"
	"github.com/jmolina/avicola-api/internal/domain"
	"github.com/jmolina/avicola-api/internal/domain/entity"
	dominv "github.com/jmolina/avicola-api/internal/domain/inventario"
	"github.com/jmolina/avicola-api/internal/domain/repository"
	"github.com/jmolina/avicola-api/internal/domain/unidades"
	"github.com/jmolina/avicola-api/pkg/reloj"
	"github.com/shopspring/decimal"
)

// MovimientosUseCase registra movimientos de stock de forma transaccional
// (compras, cargas de vehículo, mermas, devoluciones, ajustes) con bloqueo
// de fila (SELECT FOR UPDATE) y Commit/Rollback.
type MovimientosUseCase struct {
	txRunner     TxRunner
	productoRepo repository.ProductoRepository
	vehiculoRepo repository.VehiculoRepository
	stockRepo    repository.StockRepository      // lecturas fuera de tx
	movRepo      repository.MovimientoRepository // lecturas fuera de tx
	clock        reloj.Clock
}

// NewMovimientosUseCase construye el caso de uso.
func NewMovimientosUseCase(
	txRunner TxRunner,
	productoRepo repository.ProductoRepository,
	vehiculoRepo repository.VehiculoRepository,
	stockRepo repository.StockRepository,
	movRepo repository.MovimientoRepository,
	clock reloj.Clock,
) *MovimientosUseCase {
	return &MovimientosUseCase{
		txRunner:     txRunner,
		productoRepo: productoRepo,
		vehiculoRepo: vehiculoRepo,
		stockRepo:    stockRepo,
		movRepo:      movRepo,
		clock:        clock,
	}
}

// aplicarMovimiento bloquea la fila de stock de (ubicación, producto), valida
// que una salida no deje la cantidad negativa, actualiza la cantidad y agrega
// la fila al libro. Debe llamarse con repositorios atados a una transacción.
func aplicarMovimiento(
	movRepo repository.MovimientoRepository,
	stockRepo repository.StockRepository,
	producto *entity.Producto,
	tipo, ubicacionTipo, ubicacionID string,
	cantidad decimal.Decimal, // con signo, en unidad base
	usuarioID, motivo, referencia string,
	ahora time.Time,
) error {
	stock, err := stockRepo.GetForUpdate(ubicacionTipo, ubicacionID, producto.ID)
	if err != nil {
		return err
	}
	nueva := stock.Cantidad.Add(cantidad)
	if nueva.IsNegative() {
		return &domain.StockInsuficienteError{
			ProductoID:    producto.ID,
			Producto:      producto.Nombre,
			UbicacionTipo: ubicacionTipo,
			UbicacionID:   ubicacionID,
			Solicitado:    cantidad.Abs().String(),
			Disponible:    stock.Cantidad.String(),
		}
	}
	stock.Cantidad = nueva
	stock.UpdatedAt = ahora
	if err := stockRepo.Upsert(stock); err != nil {
		return err
	}
	mov := &entity.MovimientoStock{
		ID:            uuid.New().String(),
		Tipo:          tipo,
		UbicacionTipo: ubicacionTipo,
		UbicacionID:   ubicacionID,
		ProductoID:    producto.ID,
		Cantidad:      cantidad,
		Referencia:    referencia,
		Motivo:        motivo,
		UsuarioID:     usuarioID,
		Fecha:         ahora,
		CreatedAt:     ahora,
	}
	return movRepo.Create(mov)
}

// SalidaVentaEnTx descuenta stock del vehículo por una línea de venta usando
// los repositorios del caller (misma transacción). cantidadBase va en la
// unidad base del producto; referencia es el ID de la venta.
func (uc *MovimientosUseCase) SalidaVentaEnTx(
	movRepo repository.MovimientoRepository,
	stockRepo repository.StockRepository,
	producto *entity.Producto,
	vehiculoID, usuarioID string,
	cantidadBase decimal.Decimal,
	ahora time.Time,
	referencia string,
) error {
	if !cantidadBase.IsPositive() {
		return domain.ErrCantidadInvalida
	}
	return aplicarMovimiento(movRepo, stockRepo, producto,
		entity.MovVenta, entity.UbicacionVehiculo, vehiculoID,
		cantidadBase.Neg(), usuarioID, "", referencia, ahora)
}

// cantidadBaseDe convierte la cantidad de un ítem a la unidad base del
// producto. Unidad vacía significa "ya viene en unidad base".
func cantidadBaseDe(cantidad decimal.Decimal, unidad string, producto *entity.Producto) (decimal.Decimal, error) {
	if !cantidad.IsPositive() {
		return decimal.Zero, domain.ErrCantidadInvalida
	}
	if unidad == "" {
		return cantidad, nil
	}
	return unidades.ACantidadBase(cantidad, unidad, producto.UnidadBase)
}

// RegistrarCompra ingresa mercadería al depósito y actualiza el costo
// promedio de cada producto. Todo dentro de una transacción.
func (uc *MovimientosUseCase) RegistrarCompra(ctx context.Context, usuarioID string, in dto.RegistrarCompraRequest) error {
	if len(in.Items) == 0 {
		return domain.ErrInvalidInput
	}
	productos := make(map[string]*entity.Producto, len(in.Items))
	for _, item := range in.Items {
		if item.ProductoID == "" || item.CostoUnitario.IsNegative() {
			return domain.ErrInvalidInput
		}
		p, err := uc.productoRepo.GetByID(item.ProductoID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		productos[item.ProductoID] = p
	}

	ahora := uc.clock.Now()
	compraID := uuid.New().String()

	return uc.txRunner.Run(ctx, func(
		movRepo repository.MovimientoRepository,
		stockRepo repository.StockRepository,
		productoRepo repository.ProductoRepository,
	) error {
		for _, item := range in.Items {
			p := productos[item.ProductoID]
			cantBase, err := cantidadBaseDe(item.Cantidad, item.Unidad, p)
			if err != nil {
				return err
			}
			// El costo se informa por la unidad ingresada; normalizarlo igual
			// que la cantidad para que cantidad × costo no cambie.
			costoBase := item.CostoUnitario
			if item.Unidad != "" {
				costoBase, err = unidades.PrecioPorUnidadBase(item.CostoUnitario, item.Unidad, p.UnidadBase)
				if err != nil {
					return err
				}
			}
			stock, err := stockRepo.GetForUpdate(entity.UbicacionDeposito, "", p.ID)
			if err != nil {
				return err
			}
			nuevoCosto := dominv.CostoPromedio(stock.Cantidad, p.Costo, cantBase, costoBase)
			if err := productoRepo.UpdateCosto(p.ID, nuevoCosto); err != nil {
				return err
			}
			stock.Cantidad = stock.Cantidad.Add(cantBase)
			stock.UpdatedAt = ahora
			if err := stockRepo.Upsert(stock); err != nil {
				return err
			}
			mov := &entity.MovimientoStock{
				ID:            uuid.New().String(),
				Tipo:          entity.MovCompra,
				UbicacionTipo: entity.UbicacionDeposito,
				ProductoID:    p.ID,
				Cantidad:      cantBase,
				Referencia:    compraID,
				Motivo:        in.Proveedor,
				UsuarioID:     usuarioID,
				Fecha:         ahora,
				CreatedAt:     ahora,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
		}
		return nil
	})
}

// CargarVehiculo mueve mercadería del depósito a un vehículo. Dos filas en el
// libro por ítem (salida del depósito, entrada al vehículo), una transacción.
func (uc *MovimientosUseCase) CargarVehiculo(ctx context.Context, usuarioID string, in dto.CargarVehiculoRequest) error {
	if in.VehiculoID == "" || len(in.Items) == 0 {
		return domain.ErrInvalidInput
	}
	vehiculo, err := uc.vehiculoRepo.GetByID(in.VehiculoID)
	if err != nil {
		return err
	}
	if vehiculo == nil {
		return domain.ErrNotFound
	}
	productos, err := uc.validarItems(cargaAItems(in.Items))
	if err != nil {
		return err
	}

	tipo := entity.MovCargaInicial
	if in.Recarga {
		tipo = entity.MovRecarga
	}
	ahora := uc.clock.Now()
	cargaID := uuid.New().String()

	return uc.txRunner.Run(ctx, func(
		movRepo repository.MovimientoRepository,
		stockRepo repository.StockRepository,
		_ repository.ProductoRepository,
	) error {
		for _, item := range in.Items {
			p := productos[item.ProductoID]
			cantBase, err := cantidadBaseDe(item.Cantidad, item.Unidad, p)
			if err != nil {
				return err
			}
			if err := aplicarMovimiento(movRepo, stockRepo, p, tipo,
				entity.UbicacionDeposito, "", cantBase.Neg(),
				usuarioID, "", cargaID, ahora); err != nil {
				return err
			}
			if err := aplicarMovimiento(movRepo, stockRepo, p, tipo,
				entity.UbicacionVehiculo, in.VehiculoID, cantBase,
				usuarioID, "", cargaID, ahora); err != nil {
				return err
			}
		}
		return nil
	})
}

// DescargarVehiculo devuelve mercadería del vehículo al depósito. Sin items
// descarga todo el remanente.
func (uc *MovimientosUseCase) DescargarVehiculo(ctx context.Context, usuarioID string, in dto.DescargarVehiculoRequest) error {
	if in.VehiculoID == "" {
		return domain.ErrInvalidInput
	}
	vehiculo, err := uc.vehiculoRepo.GetByID(in.VehiculoID)
	if err != nil {
		return err
	}
	if vehiculo == nil {
		return domain.ErrNotFound
	}

	items := in.Items
	if len(items) == 0 {
		// Remanente completo del vehículo, ya en unidad base.
		stocks, err := uc.stockRepo.ListPorUbicacion(entity.UbicacionVehiculo, in.VehiculoID)
		if err != nil {
			return err
		}
		for _, s := range stocks {
			if s.Cantidad.IsPositive() {
				items = append(items, dto.CargaItem{ProductoID: s.ProductoID, Cantidad: s.Cantidad})
			}
		}
		if len(items) == 0 {
			return nil // vehículo vacío, nada que descargar
		}
	}
	productos, err := uc.validarItems(cargaAItems(items))
	if err != nil {
		return err
	}

	ahora := uc.clock.Now()
	descargaID := uuid.New().String()

	return uc.txRunner.Run(ctx, func(
		movRepo repository.MovimientoRepository,
		stockRepo repository.StockRepository,
		_ repository.ProductoRepository,
	) error {
		for _, item := range items {
			p := productos[item.ProductoID]
			cantBase, err := cantidadBaseDe(item.Cantidad, item.Unidad, p)
			if err != nil {
				return err
			}
			if err := aplicarMovimiento(movRepo, stockRepo, p, entity.MovDescargaFinal,
				entity.UbicacionVehiculo, in.VehiculoID, cantBase.Neg(),
				usuarioID, "", descargaID, ahora); err != nil {
				return err
			}
			if err := aplicarMovimiento(movRepo, stockRepo, p, entity.MovDescargaFinal,
				entity.UbicacionDeposito, "", cantBase,
				usuarioID, "", descargaID, ahora); err != nil {
				return err
			}
		}
		return nil
	})
}

// RegistrarMerma da de baja mercadería rota o perdida. Motivo obligatorio.
func (uc *MovimientosUseCase) RegistrarMerma(ctx context.Context, usuarioID string, in dto.RegistrarMermaRequest) error {
	if in.ProductoID == "" || in.Motivo == "" {
		return domain.ErrInvalidInput
	}
	ubicacionID, err := uc.resolverUbicacion(in.UbicacionTipo, in.VehiculoID)
	if err != nil {
		return err
	}
	p, err := uc.productoRepo.GetByID(in.ProductoID)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	cantBase, err := cantidadBaseDe(in.Cantidad, in.Unidad, p)
	if err != nil {
		return err
	}

	ahora := uc.clock.Now()
	return uc.txRunner.Run(ctx, func(
		movRepo repository.MovimientoRepository,
		stockRepo repository.StockRepository,
		_ repository.ProductoRepository,
	) error {
		return aplicarMovimiento(movRepo, stockRepo, p, entity.MovMerma,
			in.UbicacionTipo, ubicacionID, cantBase.Neg(),
			usuarioID, in.Motivo, "", ahora)
	})
}

// RegistrarDevolucion reingresa mercadería devuelta por un cliente al
// vehículo que la trajo.
func (uc *MovimientosUseCase) RegistrarDevolucion(ctx context.Context, usuarioID string, in dto.DevolucionClienteRequest) error {
	if in.ProductoID == "" || in.VehiculoID == "" {
		return domain.ErrInvalidInput
	}
	p, err := uc.productoRepo.GetByID(in.ProductoID)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	cantBase, err := cantidadBaseDe(in.Cantidad, in.Unidad, p)
	if err != nil {
		return err
	}

	ahora := uc.clock.Now()
	return uc.txRunner.Run(ctx, func(
		movRepo repository.MovimientoRepository,
		stockRepo repository.StockRepository,
		_ repository.ProductoRepository,
	) error {
		return aplicarMovimiento(movRepo, stockRepo, p, entity.MovDevolucionCliente,
			entity.UbicacionVehiculo, in.VehiculoID, cantBase,
			usuarioID, in.Motivo, "", ahora)
	})
}

// AjusteManual corrige stock con signo. Motivo obligatorio; los ajustes
// negativos validan disponibilidad igual que cualquier salida.
func (uc *MovimientosUseCase) AjusteManual(ctx context.Context, usuarioID string, in dto.AjusteManualRequest) error {
	if in.ProductoID == "" || in.Motivo == "" || in.Cantidad.IsZero() {
		return domain.ErrInvalidInput
	}
	ubicacionID, err := uc.resolverUbicacion(in.UbicacionTipo, in.VehiculoID)
	if err != nil {
		return err
	}
	p, err := uc.productoRepo.GetByID(in.ProductoID)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	cantBase, err := cantidadBaseDe(in.Cantidad.Abs(), in.Unidad, p)
	if err != nil {
		return err
	}
	if in.Cantidad.IsNegative() {
		cantBase = cantBase.Neg()
	}

	ahora := uc.clock.Now()
	return uc.txRunner.Run(ctx, func(
		movRepo repository.MovimientoRepository,
		stockRepo repository.StockRepository,
		_ repository.ProductoRepository,
	) error {
		return aplicarMovimiento(movRepo, stockRepo, p, entity.MovAjuste,
			in.UbicacionTipo, ubicacionID, cantBase,
			usuarioID, in.Motivo, "", ahora)
	})
}

// StockPorUbicacion devuelve el stock actual de una ubicación con nombres de
// producto resueltos (lectura sin transacción).
func (uc *MovimientosUseCase) StockPorUbicacion(ctx context.Context, ubicacionTipo, ubicacionID string) ([]dto.StockItemResponse, error) {
	stocks, err := uc.stockRepo.ListPorUbicacion(ubicacionTipo, ubicacionID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockItemResponse, 0, len(stocks))
	for _, s := range stocks {
		p, err := uc.productoRepo.GetByID(s.ProductoID)
		if err != nil {
			return nil, err
		}
		item := dto.StockItemResponse{
			ProductoID: s.ProductoID,
			Cantidad:   s.Cantidad,
			UpdatedAt:  s.UpdatedAt,
		}
		if p != nil {
			item.Producto = p.Nombre
			item.UnidadBase = p.UnidadBase
		}
		out = append(out, item)
	}
	return out, nil
}

// ListarMovimientos consulta el libro con filtros (lectura sin transacción).
func (uc *MovimientosUseCase) ListarMovimientos(ctx context.Context, f repository.MovimientoFiltro) ([]dto.MovimientoResponse, error) {
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}
	movs, err := uc.movRepo.List(f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovimientoResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.MovimientoResponse{
			ID:            m.ID,
			Tipo:          m.Tipo,
			UbicacionTipo: m.UbicacionTipo,
			UbicacionID:   m.UbicacionID,
			ProductoID:    m.ProductoID,
			Cantidad:      m.Cantidad,
			Referencia:    m.Referencia,
			Motivo:        m.Motivo,
			UsuarioID:     m.UsuarioID,
			Fecha:         m.Fecha,
		})
	}
	return out, nil
}

// resolverUbicacion valida el par (tipo, vehiculo) y devuelve el UbicacionID.
func (uc *MovimientosUseCase) resolverUbicacion(ubicacionTipo, vehiculoID string) (string, error) {
	switch ubicacionTipo {
	case entity.UbicacionDeposito:
		return "", nil
	case entity.UbicacionVehiculo:
		if vehiculoID == "" {
			return "", domain.ErrInvalidInput
		}
		v, err := uc.vehiculoRepo.GetByID(vehiculoID)
		if err != nil {
			return "", err
		}
		if v == nil {
			return "", domain.ErrNotFound
		}
		return vehiculoID, nil
	}
	return "", domain.ErrInvalidInput
}

type itemRef struct {
	productoID string
}

func cargaAItems(items []dto.CargaItem) []itemRef {
	out := make([]itemRef, 0, len(items))
	for _, it := range items {
		out = append(out, itemRef{productoID: it.ProductoID})
	}
	return out
}

// validarItems verifica que todos los productos existan antes de abrir la tx.
func (uc *MovimientosUseCase) validarItems(items []itemRef) (map[string]*entity.Producto, error) {
	productos := make(map[string]*entity.Producto, len(items))
	for _, it := range items {
		if it.productoID == "" {
			return nil, domain.ErrInvalidInput
		}
		if _, ok := productos[it.productoID]; ok {
			continue
		}
		p, err := uc.productoRepo.GetByID(it.productoID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
		productos[it.productoID] = p
	}
	return productos, nil
}
