package ventas_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmolina/avicola-api/internal/application/apptest"
	"github.com/jmolina/avicola-api/internal/application/dto"
	"github.com/jmolina/avicola-api/internal/application/inventario"
	"github.com/jmolina/avicola-api/internal/application/ventas"
	"github.com/jmolina/avicola-api/internal/domain"
	"github.com/jmolina/avicola-api/internal/domain/entity"
	"github.com/jmolina/avicola-api/pkg/reloj"
)

const (
	vendedorID = "vend-1"
	clienteID  = "cli-1"
	vehiculoID = "veh-1"
	productoID = "prod-huevo-blanco"
)

type ventaFixture struct {
	uc        *ventas.VentaUseCase
	stock     *apptest.StockMem
	movs      *apptest.MovimientoMem
	clientes  *apptest.ClienteMem
	pagos     *apptest.PagoMem
	ventasRep *apptest.VentaMem
	ahora     time.Time
}

// nuevaFixture arma un escenario con un vehículo cargado con 100 maples de
// huevo blanco (unidad base Maple) y un cliente sin deuda.
func nuevaFixture(t *testing.T) *ventaFixture {
	t.Helper()
	ahora := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	clk := reloj.Fijo(ahora)

	productos := apptest.NewProductoMem()
	require.NoError(t, productos.Create(&entity.Producto{
		ID:         productoID,
		Nombre:     "Huevo blanco",
		Tipo:       entity.ProductoHuevo,
		UnidadBase: "Maple",
		Precio:     decimal.NewFromInt(600), // por maple
		Costo:      decimal.NewFromInt(400),
		Activo:     true,
	}))

	vehiculos := apptest.NewVehiculoMem()
	require.NoError(t, vehiculos.Create(&entity.Vehiculo{
		ID: vehiculoID, Patente: "AB123CD", Activo: true,
	}))

	clientesMem := apptest.NewClienteMem()
	require.NoError(t, clientesMem.Create(&entity.Cliente{
		ID: clienteID, Nombre: "Almacén Sur", Estado: entity.ClienteActivo,
	}))

	stock := apptest.NewStockMem()
	stock.Set(entity.UbicacionVehiculo, vehiculoID, productoID, decimal.NewFromInt(100))

	movs := apptest.NewMovimientoMem()
	pagos := apptest.NewPagoMem()
	ventasMem := apptest.NewVentaMem()
	tx := &apptest.TxMem{
		Movimientos: movs,
		Stock:       stock,
		Productos:   productos,
		Clientes:    clientesMem,
		Pagos:       pagos,
		Ventas:      ventasMem,
	}

	inv := inventario.NewMovimientosUseCase(tx, productos, vehiculos, stock, movs, clk)
	uc := ventas.NewVentaUseCase(tx, inv, clientesMem, vehiculos, productos, ventasMem, clk)

	return &ventaFixture{
		uc:        uc,
		stock:     stock,
		movs:      movs,
		clientes:  clientesMem,
		pagos:     pagos,
		ventasRep: ventasMem,
		ahora:     ahora,
	}
}

// Venta en efectivo: 2 cajones (24 maples) salen del vehículo y el total es
// cantidad × precio en la unidad cargada.
func TestCrearVenta_DescuentaStockEnUnidadBase(t *testing.T) {
	f := nuevaFixture(t)

	out, err := f.uc.CrearVenta(context.Background(), vendedorID, dto.CrearVentaRequest{
		ClienteID:  clienteID,
		VehiculoID: vehiculoID,
		MetodoPago: entity.PagoEfectivo,
		Items: []dto.VentaItem{{
			ProductoID:     productoID,
			Cantidad:       decimal.NewFromInt(2),
			Unidad:         "Cajón",
			PrecioUnitario: decimal.NewFromInt(7200), // por cajón
		}},
	})
	require.NoError(t, err)

	// 2 cajones = 2 × 360 / 30 = 24 maples
	assert.True(t, decimal.NewFromInt(76).Equal(
		f.stock.Cantidad(entity.UbicacionVehiculo, vehiculoID, productoID)),
		"el vehículo debe quedar con 76 maples, quedó %s",
		f.stock.Cantidad(entity.UbicacionVehiculo, vehiculoID, productoID))

	assert.True(t, decimal.NewFromInt(14400).Equal(out.Total),
		"total = 2 × 7200, fue %s", out.Total)
	require.Len(t, out.Items, 1)
	assert.True(t, decimal.NewFromInt(24).Equal(out.Items[0].CantidadBase))

	// El libro registra la salida con signo negativo y la venta como referencia.
	require.Len(t, f.movs.Items, 1)
	mov := f.movs.Items[0]
	assert.Equal(t, entity.MovVenta, mov.Tipo)
	assert.True(t, decimal.NewFromInt(-24).Equal(mov.Cantidad))
	assert.Equal(t, out.ID, mov.Referencia)
}

// Si el precio viene en cero se usa el precio de lista convertido a la
// unidad de la línea.
func TestCrearVenta_PrecioDeListaConvertido(t *testing.T) {
	f := nuevaFixture(t)

	out, err := f.uc.CrearVenta(context.Background(), vendedorID, dto.CrearVentaRequest{
		ClienteID:  clienteID,
		VehiculoID: vehiculoID,
		MetodoPago: entity.PagoEfectivo,
		Items: []dto.VentaItem{{
			ProductoID: productoID,
			Cantidad:   decimal.NewFromInt(3),
			Unidad:     "Docena",
		}},
	})
	require.NoError(t, err)

	// 600 por maple → 600 × 12/30 = 240 por docena; 3 docenas = 720.
	require.Len(t, out.Items, 1)
	assert.True(t, decimal.NewFromInt(240).Equal(out.Items[0].PrecioUnitario),
		"precio por docena debe ser 240, fue %s", out.Items[0].PrecioUnitario)
	assert.True(t, decimal.NewFromInt(720).Equal(out.Total))
}

// Una línea sin stock suficiente rechaza la venta completa: ninguna línea
// previa queda aplicada y no se persiste nada.
func TestCrearVenta_StockInsuficienteRevierteTodo(t *testing.T) {
	f := nuevaFixture(t)

	_, err := f.uc.CrearVenta(context.Background(), vendedorID, dto.CrearVentaRequest{
		ClienteID:  clienteID,
		VehiculoID: vehiculoID,
		MetodoPago: entity.PagoEfectivo,
		Items: []dto.VentaItem{
			{
				ProductoID:     productoID,
				Cantidad:       decimal.NewFromInt(10),
				Unidad:         "Maple",
				PrecioUnitario: decimal.NewFromInt(600),
			},
			{
				ProductoID:     productoID,
				Cantidad:       decimal.NewFromInt(200), // 200 maples > 90 restantes
				Unidad:         "Maple",
				PrecioUnitario: decimal.NewFromInt(600),
			},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStockInsuficiente)

	var detalle *domain.StockInsuficienteError
	require.ErrorAs(t, err, &detalle)
	assert.Equal(t, productoID, detalle.ProductoID)

	// Rollback: el stock vuelve a 100 y no quedó venta ni movimiento.
	assert.True(t, decimal.NewFromInt(100).Equal(
		f.stock.Cantidad(entity.UbicacionVehiculo, vehiculoID, productoID)),
		"el stock debe quedar intacto tras el rechazo")
	assert.Empty(t, f.ventasRep.Ventas)
	assert.Empty(t, f.movs.Items)
}

// Venta a cuenta corriente: sube la deuda del cliente, fija el vencimiento y
// asienta la operación en el libro de la cuenta.
func TestCrearVenta_CuentaCorrienteSumaDeuda(t *testing.T) {
	f := nuevaFixture(t)
	vencimiento := f.ahora.AddDate(0, 0, 15)

	out, err := f.uc.CrearVenta(context.Background(), vendedorID, dto.CrearVentaRequest{
		ClienteID:        clienteID,
		VehiculoID:       vehiculoID,
		MetodoPago:       entity.PagoCuentaCorriente,
		FechaVencimiento: &vencimiento,
		Items: []dto.VentaItem{{
			ProductoID:     productoID,
			Cantidad:       decimal.NewFromInt(10),
			Unidad:         "Maple",
			PrecioUnitario: decimal.NewFromInt(600),
		}},
	})
	require.NoError(t, err)

	cli, err := f.clientes.GetByID(clienteID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(6000).Equal(cli.Deuda),
		"la deuda debe subir al total de la venta, quedó %s", cli.Deuda)
	require.NotNil(t, cli.VencimientoDeuda)
	assert.True(t, cli.VencimientoDeuda.Equal(vencimiento))

	require.Len(t, f.pagos.Items, 1)
	asiento := f.pagos.Items[0]
	assert.Equal(t, entity.AsientoVentaCuenta, asiento.Tipo)
	assert.Equal(t, out.ID, asiento.Referencia)
	assert.True(t, decimal.NewFromInt(6000).Equal(asiento.Monto))
}

// Cuenta corriente sin vencimiento o con vencimiento pasado se rechaza antes
// de tocar nada.
func TestCrearVenta_CuentaCorrienteValidaVencimiento(t *testing.T) {
	f := nuevaFixture(t)

	base := dto.CrearVentaRequest{
		ClienteID:  clienteID,
		VehiculoID: vehiculoID,
		MetodoPago: entity.PagoCuentaCorriente,
		Items: []dto.VentaItem{{
			ProductoID:     productoID,
			Cantidad:       decimal.NewFromInt(1),
			Unidad:         "Maple",
			PrecioUnitario: decimal.NewFromInt(600),
		}},
	}

	_, err := f.uc.CrearVenta(context.Background(), vendedorID, base)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin fecha de vencimiento")

	pasado := f.ahora.AddDate(0, 0, -1)
	base.FechaVencimiento = &pasado
	_, err = f.uc.CrearVenta(context.Background(), vendedorID, base)
	assert.ErrorIs(t, err, domain.ErrVencimientoPasado)

	assert.True(t, decimal.NewFromInt(100).Equal(
		f.stock.Cantidad(entity.UbicacionVehiculo, vehiculoID, productoID)))
}

// Unidad desconocida rechaza la venta: un typo no puede degradar a factor 1.
func TestCrearVenta_UnidadDesconocida(t *testing.T) {
	f := nuevaFixture(t)

	_, err := f.uc.CrearVenta(context.Background(), vendedorID, dto.CrearVentaRequest{
		ClienteID:  clienteID,
		VehiculoID: vehiculoID,
		MetodoPago: entity.PagoEfectivo,
		Items: []dto.VentaItem{{
			ProductoID:     productoID,
			Cantidad:       decimal.NewFromInt(2),
			Unidad:         "Mapel",
			PrecioUnitario: decimal.NewFromInt(600),
		}},
	})
	assert.ErrorIs(t, err, domain.ErrUnidadDesconocida)
}

// Descuentos: porcentaje y monto fijo se aplican sobre el subtotal; un total
// negativo se rechaza.
func TestCrearVenta_Descuentos(t *testing.T) {
	f := nuevaFixture(t)

	out, err := f.uc.CrearVenta(context.Background(), vendedorID, dto.CrearVentaRequest{
		ClienteID:      clienteID,
		VehiculoID:     vehiculoID,
		MetodoPago:     entity.PagoEfectivo,
		DescuentoPct:   decimal.NewFromInt(10),
		DescuentoMonto: decimal.NewFromInt(100),
		Items: []dto.VentaItem{{
			ProductoID:     productoID,
			Cantidad:       decimal.NewFromInt(10),
			Unidad:         "Maple",
			PrecioUnitario: decimal.NewFromInt(600),
		}},
	})
	require.NoError(t, err)
	// 6000 − 10% − 100 = 5300
	assert.True(t, decimal.NewFromInt(5300).Equal(out.Total), "total fue %s", out.Total)

	_, err = f.uc.CrearVenta(context.Background(), vendedorID, dto.CrearVentaRequest{
		ClienteID:      clienteID,
		VehiculoID:     vehiculoID,
		MetodoPago:     entity.PagoEfectivo,
		DescuentoMonto: decimal.NewFromInt(99999),
		Items: []dto.VentaItem{{
			ProductoID:     productoID,
			Cantidad:       decimal.NewFromInt(1),
			Unidad:         "Maple",
			PrecioUnitario: decimal.NewFromInt(600),
		}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "descuento mayor al subtotal")
}
