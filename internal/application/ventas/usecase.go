package ventas

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmolina/avicola-api/internal/application/dto"
	"github.com/jmolina/avicola-api/internal/domain"
	"github.com/jmolina/avicola-api/internal/domain/entity"
	"github.com/jmolina/avicola-api/internal/domain/repository"
	"github.com/jmolina/avicola-api/internal/domain/unidades"
	"github.com/jmolina/avicola-api/pkg/reloj"
	"github.com/shopspring/decimal"
)

var cien = decimal.NewFromInt(100)

// VentaUseCase cierra una venta de forma atómica: descuenta el stock del
// vehículo línea por línea, persiste la venta con sus detalles y, si el
// método es cuenta corriente, aumenta la deuda del cliente. Cualquier fallo
// (típicamente stock insuficiente) revierte todo.
type VentaUseCase struct {
	txRunner     TxRunner
	inventario   Inventario
	clienteRepo  repository.ClienteRepository
	vehiculoRepo repository.VehiculoRepository
	productoRepo repository.ProductoRepository
	ventaRepo    repository.VentaRepository
	clock        reloj.Clock
}

// NewVentaUseCase construye el caso de uso.
func NewVentaUseCase(
	txRunner TxRunner,
	inventario Inventario,
	clienteRepo repository.ClienteRepository,
	vehiculoRepo repository.VehiculoRepository,
	productoRepo repository.ProductoRepository,
	ventaRepo repository.VentaRepository,
	clock reloj.Clock,
) *VentaUseCase {
	return &VentaUseCase{
		txRunner:     txRunner,
		inventario:   inventario,
		clienteRepo:  clienteRepo,
		vehiculoRepo: vehiculoRepo,
		productoRepo: productoRepo,
		ventaRepo:    ventaRepo,
		clock:        clock,
	}
}

type lineaNormalizada struct {
	producto     *entity.Producto
	cantidad     decimal.Decimal
	unidad       string
	cantidadBase decimal.Decimal
	precio       decimal.Decimal
	subtotal     decimal.Decimal
}

// CrearVenta valida el carrito, lo normaliza a unidades base y lo comete en
// una sola transacción. Sin reintentos: un rechazo vuelve al caller tal cual.
func (uc *VentaUseCase) CrearVenta(ctx context.Context, vendedorID string, in dto.CrearVentaRequest) (*dto.VentaResponse, error) {
	if in.ClienteID == "" || in.VehiculoID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if !entity.MetodoPagoValido(in.MetodoPago) {
		return nil, domain.ErrInvalidInput
	}
	if in.DescuentoPct.IsNegative() || in.DescuentoPct.GreaterThan(cien) || in.DescuentoMonto.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	ahora := uc.clock.Now()

	// Cuenta corriente exige fecha de vencimiento estrictamente futura.
	if in.MetodoPago == entity.PagoCuentaCorriente {
		if in.FechaVencimiento == nil {
			return nil, domain.ErrInvalidInput
		}
		if !in.FechaVencimiento.After(ahora) {
			return nil, domain.ErrVencimientoPasado
		}
	}

	cliente, err := uc.clienteRepo.GetByID(in.ClienteID)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, domain.ErrNotFound
	}
	vehiculo, err := uc.vehiculoRepo.GetByID(in.VehiculoID)
	if err != nil {
		return nil, err
	}
	if vehiculo == nil {
		return nil, domain.ErrNotFound
	}

	// Normalización y totales fuera de la tx (solo lectura). El subtotal se
	// calcula sobre la cantidad y el precio tal como se cargaron, antes de
	// convertir, para que el ticket coincida con lo que tipeó el vendedor.
	lineas := make([]lineaNormalizada, 0, len(in.Items))
	subtotal := decimal.Zero
	for _, item := range in.Items {
		if item.ProductoID == "" || !item.Cantidad.IsPositive() || item.PrecioUnitario.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		p, err := uc.productoRepo.GetByID(item.ProductoID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
		unidad := item.Unidad
		if unidad == "" {
			unidad = p.UnidadBase
		}
		cantBase, err := unidades.ACantidadBase(item.Cantidad, unidad, p.UnidadBase)
		if err != nil {
			return nil, err
		}
		precio := item.PrecioUnitario
		if precio.IsZero() {
			// Precio de lista convertido a la unidad de la línea.
			precio, err = unidades.ADisplayPrecio(p.Precio, p.UnidadBase, unidad)
			if err != nil {
				return nil, err
			}
		}
		lineas = append(lineas, lineaNormalizada{
			producto:     p,
			cantidad:     item.Cantidad,
			unidad:       unidad,
			cantidadBase: cantBase,
			precio:       precio,
			subtotal:     item.Cantidad.Mul(precio),
		})
		subtotal = subtotal.Add(item.Cantidad.Mul(precio))
	}

	descuento := subtotal.Mul(in.DescuentoPct).Div(cien).Add(in.DescuentoMonto)
	total := subtotal.Sub(descuento)
	if total.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	ventaID := uuid.New().String()
	venta := &entity.Venta{
		ID:             ventaID,
		Fecha:          ahora,
		ClienteID:      in.ClienteID,
		VendedorID:     vendedorID,
		VehiculoID:     in.VehiculoID,
		MetodoPago:     in.MetodoPago,
		Subtotal:       subtotal,
		DescuentoPct:   in.DescuentoPct,
		DescuentoMonto: in.DescuentoMonto,
		Total:          total,
		CreatedAt:      ahora,
	}

	err = uc.txRunner.RunVenta(ctx, func(
		movRepo repository.MovimientoRepository,
		stockRepo repository.StockRepository,
		clienteRepo repository.ClienteRepository,
		ventaRepo repository.VentaRepository,
		pagoRepo repository.PagoRepository,
	) error {
		// 1) Descontar stock del vehículo por cada línea. El primer rechazo
		// aborta la venta completa (rollback de todas las líneas previas).
		for _, l := range lineas {
			if err := uc.inventario.SalidaVentaEnTx(
				movRepo, stockRepo, l.producto,
				in.VehiculoID, vendedorID, l.cantidadBase, ahora, ventaID,
			); err != nil {
				return err
			}
		}

		// 2) Cabecera y detalles.
		if err := ventaRepo.Create(venta); err != nil {
			return err
		}
		for _, l := range lineas {
			det := &entity.DetalleVenta{
				ID:             uuid.New().String(),
				VentaID:        ventaID,
				ProductoID:     l.producto.ID,
				Cantidad:       l.cantidad,
				Unidad:         l.unidad,
				CantidadBase:   l.cantidadBase,
				PrecioUnitario: l.precio,
				Subtotal:       l.subtotal,
			}
			if err := ventaRepo.CreateDetalle(det); err != nil {
				return err
			}
		}

		// 3) Cliente: bloquear fila y actualizar acumulados; si es cuenta
		// corriente, sumar la deuda y asentarla en el libro de la cuenta.
		cli, err := clienteRepo.GetForUpdate(in.ClienteID)
		if err != nil {
			return err
		}
		if cli == nil {
			return domain.ErrNotFound
		}
		cli.TotalCompras = cli.TotalCompras.Add(total)
		cli.FechaUltimaCompra = &ahora
		if in.MetodoPago == entity.PagoCuentaCorriente {
			cli.Deuda = cli.Deuda.Add(total)
			cli.VencimientoDeuda = in.FechaVencimiento
			asiento := &entity.Pago{
				ID:         uuid.New().String(),
				ClienteID:  cli.ID,
				Tipo:       entity.AsientoVentaCuenta,
				Monto:      total,
				Referencia: ventaID,
				UsuarioID:  vendedorID,
				Fecha:      ahora,
				CreatedAt:  ahora,
			}
			if err := pagoRepo.Create(asiento); err != nil {
				return err
			}
		}
		if cli.Moroso(ahora) {
			cli.Estado = entity.ClienteMoroso
		}
		cli.UpdatedAt = ahora
		return clienteRepo.Update(cli)
	})
	if err != nil {
		return nil, err
	}

	return ventaAResponse(venta, lineas), nil
}

// GetVenta devuelve una venta con sus detalles.
func (uc *VentaUseCase) GetVenta(ctx context.Context, id string) (*dto.VentaResponse, error) {
	v, err := uc.ventaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	detalles, err := uc.ventaRepo.ListDetalles(id)
	if err != nil {
		return nil, err
	}
	out := &dto.VentaResponse{
		ID:             v.ID,
		Fecha:          v.Fecha,
		ClienteID:      v.ClienteID,
		VendedorID:     v.VendedorID,
		VehiculoID:     v.VehiculoID,
		MetodoPago:     v.MetodoPago,
		Subtotal:       v.Subtotal,
		DescuentoPct:   v.DescuentoPct,
		DescuentoMonto: v.DescuentoMonto,
		Total:          v.Total,
	}
	for _, d := range detalles {
		out.Items = append(out.Items, dto.DetalleVentaResponse{
			ProductoID:     d.ProductoID,
			Cantidad:       d.Cantidad,
			Unidad:         d.Unidad,
			CantidadBase:   d.CantidadBase,
			PrecioUnitario: d.PrecioUnitario,
			Subtotal:       d.Subtotal,
		})
	}
	return out, nil
}

// ListVentas devuelve las ventas del período, sin el detalle de líneas.
func (uc *VentaUseCase) ListVentas(ctx context.Context, desde, hasta time.Time, limit, offset int) ([]dto.VentaResponse, error) {
	if hasta.Before(desde) {
		return nil, domain.ErrInvalidInput
	}
	ventas, err := uc.ventaRepo.List(desde, hasta, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VentaResponse, 0, len(ventas))
	for _, v := range ventas {
		out = append(out, dto.VentaResponse{
			ID:             v.ID,
			Fecha:          v.Fecha,
			ClienteID:      v.ClienteID,
			VendedorID:     v.VendedorID,
			VehiculoID:     v.VehiculoID,
			MetodoPago:     v.MetodoPago,
			Subtotal:       v.Subtotal,
			DescuentoPct:   v.DescuentoPct,
			DescuentoMonto: v.DescuentoMonto,
			Total:          v.Total,
		})
	}
	return out, nil
}

func ventaAResponse(v *entity.Venta, lineas []lineaNormalizada) *dto.VentaResponse {
	out := &dto.VentaResponse{
		ID:             v.ID,
		Fecha:          v.Fecha,
		ClienteID:      v.ClienteID,
		VendedorID:     v.VendedorID,
		VehiculoID:     v.VehiculoID,
		MetodoPago:     v.MetodoPago,
		Subtotal:       v.Subtotal,
		DescuentoPct:   v.DescuentoPct,
		DescuentoMonto: v.DescuentoMonto,
		Total:          v.Total,
	}
	for _, l := range lineas {
		out.Items = append(out.Items, dto.DetalleVentaResponse{
			ProductoID:     l.producto.ID,
			Cantidad:       l.cantidad,
			Unidad:         l.unidad,
			CantidadBase:   l.cantidadBase,
			PrecioUnitario: l.precio,
			Subtotal:       l.subtotal,
		})
	}
	return out
}
