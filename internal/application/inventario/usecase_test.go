package inventario_test

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
	"github.com/jmolina/avicola-api/internal/domain"
	"github.com/jmolina/avicola-api/internal/domain/entity"
	"github.com/jmolina/avicola-api/pkg/reloj"
)

const (
	oficinaID  = "ofi-1"
	productoID = "prod-huevo-color"
	vehiculoID = "veh-1"
)

type invFixture struct {
	uc        *inventario.MovimientosUseCase
	stock     *apptest.StockMem
	movs      *apptest.MovimientoMem
	productos *apptest.ProductoMem
	ahora     time.Time
}

// nuevaFixture arma un depósito con 50 maples de huevo color a costo $400 y
// un vehículo vacío.
func nuevaFixture(t *testing.T) *invFixture {
	t.Helper()
	ahora := time.Date(2025, 6, 10, 7, 30, 0, 0, time.UTC)
	clk := reloj.Fijo(ahora)

	productos := apptest.NewProductoMem()
	require.NoError(t, productos.Create(&entity.Producto{
		ID:         productoID,
		Nombre:     "Huevo color",
		Tipo:       entity.ProductoHuevo,
		UnidadBase: "Maple",
		Precio:     decimal.NewFromInt(600),
		Costo:      decimal.NewFromInt(400),
		Activo:     true,
	}))

	vehiculos := apptest.NewVehiculoMem()
	require.NoError(t, vehiculos.Create(&entity.Vehiculo{
		ID: vehiculoID, Patente: "AC456EF", Activo: true,
	}))

	stock := apptest.NewStockMem()
	stock.Set(entity.UbicacionDeposito, "", productoID, decimal.NewFromInt(50))

	movs := apptest.NewMovimientoMem()
	tx := &apptest.TxMem{
		Movimientos: movs,
		Stock:       stock,
		Productos:   productos,
	}
	uc := inventario.NewMovimientosUseCase(tx, productos, vehiculos, stock, movs, clk)
	return &invFixture{uc: uc, stock: stock, movs: movs, productos: productos, ahora: ahora}
}

func TestRegistrarCompra_ActualizaCostoPromedio(t *testing.T) {
	f := nuevaFixture(t)

	err := f.uc.RegistrarCompra(context.Background(), oficinaID, dto.RegistrarCompraRequest{
		Proveedor: "Granja El Hornero",
		Items: []dto.CompraItem{
			{ProductoID: productoID, Cantidad: decimal.NewFromInt(50), CostoUnitario: decimal.NewFromInt(500)},
		},
	})
	require.NoError(t, err)

	deposito := f.stock.Cantidad(entity.UbicacionDeposito, "", productoID)
	assert.True(t, deposito.Equal(decimal.NewFromInt(100)))

	// 50 maples a $400 más 50 a $500 promedia $450.
	p, err := f.productos.GetByID(productoID)
	require.NoError(t, err)
	assert.True(t, p.Costo.Equal(decimal.NewFromInt(450)), "costo promedio: %s", p.Costo)

	require.Len(t, f.movs.Items, 1)
	mov := f.movs.Items[0]
	assert.Equal(t, entity.MovCompra, mov.Tipo)
	assert.Equal(t, entity.UbicacionDeposito, mov.UbicacionTipo)
	assert.True(t, mov.Cantidad.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, "Granja El Hornero", mov.Motivo)
}

func TestRegistrarCompra_ConvierteCantidadYCosto(t *testing.T) {
	f := nuevaFixture(t)
	f.stock.Set(entity.UbicacionDeposito, "", productoID, decimal.NewFromInt(36))

	// 1 cajón son 12 maples; el costo de $6000 por cajón queda en $500 el
	// maple, así cantidad × costo no cambia con la conversión.
	err := f.uc.RegistrarCompra(context.Background(), oficinaID, dto.RegistrarCompraRequest{
		Proveedor: "Granja El Hornero",
		Items: []dto.CompraItem{
			{ProductoID: productoID, Cantidad: decimal.NewFromInt(1), Unidad: "Cajón", CostoUnitario: decimal.NewFromInt(6000)},
		},
	})
	require.NoError(t, err)

	deposito := f.stock.Cantidad(entity.UbicacionDeposito, "", productoID)
	assert.True(t, deposito.Equal(decimal.NewFromInt(48)))

	// (36×400 + 12×500) / 48 = 425
	p, err := f.productos.GetByID(productoID)
	require.NoError(t, err)
	assert.True(t, p.Costo.Equal(decimal.NewFromInt(425)), "costo promedio: %s", p.Costo)
}

func TestRegistrarCompra_ProductoInexistente(t *testing.T) {
	f := nuevaFixture(t)

	err := f.uc.RegistrarCompra(context.Background(), oficinaID, dto.RegistrarCompraRequest{
		Items: []dto.CompraItem{
			{ProductoID: "no-existe", Cantidad: decimal.NewFromInt(1), CostoUnitario: decimal.NewFromInt(100)},
		},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.movs.Items)
}

func TestCargarVehiculo_MueveDelDepositoAlVehiculo(t *testing.T) {
	f := nuevaFixture(t)

	err := f.uc.CargarVehiculo(context.Background(), oficinaID, dto.CargarVehiculoRequest{
		VehiculoID: vehiculoID,
		Items: []dto.CargaItem{
			{ProductoID: productoID, Cantidad: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)

	assert.True(t, f.stock.Cantidad(entity.UbicacionDeposito, "", productoID).Equal(decimal.NewFromInt(40)))
	assert.True(t, f.stock.Cantidad(entity.UbicacionVehiculo, vehiculoID, productoID).Equal(decimal.NewFromInt(10)))

	// Dos filas en el libro: salida del depósito y entrada al vehículo,
	// ambas con la misma referencia de carga.
	require.Len(t, f.movs.Items, 2)
	assert.Equal(t, entity.MovCargaInicial, f.movs.Items[0].Tipo)
	assert.Equal(t, entity.MovCargaInicial, f.movs.Items[1].Tipo)
	assert.True(t, f.movs.Items[0].Cantidad.Equal(decimal.NewFromInt(-10)))
	assert.True(t, f.movs.Items[1].Cantidad.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, f.movs.Items[0].Referencia, f.movs.Items[1].Referencia)
}

func TestCargarVehiculo_RecargaCambiaElTipo(t *testing.T) {
	f := nuevaFixture(t)

	err := f.uc.CargarVehiculo(context.Background(), oficinaID, dto.CargarVehiculoRequest{
		VehiculoID: vehiculoID,
		Recarga:    true,
		Items: []dto.CargaItem{
			{ProductoID: productoID, Cantidad: decimal.NewFromInt(5)},
		},
	})
	require.NoError(t, err)

	require.Len(t, f.movs.Items, 2)
	assert.Equal(t, entity.MovRecarga, f.movs.Items[0].Tipo)
}

func TestCargarVehiculo_SinStockRevierteTodo(t *testing.T) {
	f := nuevaFixture(t)

	// La primera línea alcanza, la segunda pide 2 cajones (24 maples) cuando
	// quedan 20: toda la carga debe revertirse.
	err := f.uc.CargarVehiculo(context.Background(), oficinaID, dto.CargarVehiculoRequest{
		VehiculoID: vehiculoID,
		Items: []dto.CargaItem{
			{ProductoID: productoID, Cantidad: decimal.NewFromInt(30)},
			{ProductoID: productoID, Cantidad: decimal.NewFromInt(2), Unidad: "Cajón"},
		},
	})
	require.ErrorIs(t, err, domain.ErrStockInsuficiente)

	assert.True(t, f.stock.Cantidad(entity.UbicacionDeposito, "", productoID).Equal(decimal.NewFromInt(50)))
	assert.True(t, f.stock.Cantidad(entity.UbicacionVehiculo, vehiculoID, productoID).IsZero())
	assert.Empty(t, f.movs.Items)
}

func TestDescargarVehiculo_SinItemsDescargaElRemanente(t *testing.T) {
	f := nuevaFixture(t)
	f.stock.Set(entity.UbicacionVehiculo, vehiculoID, productoID, decimal.NewFromInt(8))

	err := f.uc.DescargarVehiculo(context.Background(), oficinaID, dto.DescargarVehiculoRequest{
		VehiculoID: vehiculoID,
	})
	require.NoError(t, err)

	assert.True(t, f.stock.Cantidad(entity.UbicacionVehiculo, vehiculoID, productoID).IsZero())
	assert.True(t, f.stock.Cantidad(entity.UbicacionDeposito, "", productoID).Equal(decimal.NewFromInt(58)))

	require.Len(t, f.movs.Items, 2)
	assert.Equal(t, entity.MovDescargaFinal, f.movs.Items[0].Tipo)
}

func TestDescargarVehiculo_VacioNoHaceNada(t *testing.T) {
	f := nuevaFixture(t)

	err := f.uc.DescargarVehiculo(context.Background(), oficinaID, dto.DescargarVehiculoRequest{
		VehiculoID: vehiculoID,
	})
	require.NoError(t, err)
	assert.Empty(t, f.movs.Items)
}

func TestRegistrarMerma(t *testing.T) {
	f := nuevaFixture(t)

	err := f.uc.RegistrarMerma(context.Background(), oficinaID, dto.RegistrarMermaRequest{
		ProductoID:    productoID,
		Cantidad:      decimal.NewFromInt(2),
		UbicacionTipo: entity.UbicacionDeposito,
		Motivo:        "maples rotos en la cámara",
	})
	require.NoError(t, err)

	assert.True(t, f.stock.Cantidad(entity.UbicacionDeposito, "", productoID).Equal(decimal.NewFromInt(48)))
	require.Len(t, f.movs.Items, 1)
	assert.Equal(t, entity.MovMerma, f.movs.Items[0].Tipo)
	assert.True(t, f.movs.Items[0].Cantidad.Equal(decimal.NewFromInt(-2)))
	assert.Equal(t, "maples rotos en la cámara", f.movs.Items[0].Motivo)
}

func TestRegistrarMerma_Validaciones(t *testing.T) {
	f := nuevaFixture(t)

	// Sin motivo no hay merma.
	err := f.uc.RegistrarMerma(context.Background(), oficinaID, dto.RegistrarMermaRequest{
		ProductoID:    productoID,
		Cantidad:      decimal.NewFromInt(1),
		UbicacionTipo: entity.UbicacionDeposito,
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	// Ubicación vehículo exige el ID del vehículo.
	err = f.uc.RegistrarMerma(context.Background(), oficinaID, dto.RegistrarMermaRequest{
		ProductoID:    productoID,
		Cantidad:      decimal.NewFromInt(1),
		UbicacionTipo: entity.UbicacionVehiculo,
		Motivo:        "rotura",
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.True(t, f.stock.Cantidad(entity.UbicacionDeposito, "", productoID).Equal(decimal.NewFromInt(50)))
	assert.Empty(t, f.movs.Items)
}

func TestRegistrarDevolucion_ConvierteAUnidadBase(t *testing.T) {
	f := nuevaFixture(t)

	// 3 docenas son 36 huevos: 1.2 maples.
	err := f.uc.RegistrarDevolucion(context.Background(), oficinaID, dto.DevolucionClienteRequest{
		VehiculoID: vehiculoID,
		ProductoID: productoID,
		Cantidad:   decimal.NewFromInt(3),
		Unidad:     "Docena",
		Motivo:     "cascados",
	})
	require.NoError(t, err)

	enVehiculo := f.stock.Cantidad(entity.UbicacionVehiculo, vehiculoID, productoID)
	assert.True(t, enVehiculo.Equal(decimal.NewFromFloat(1.2)), "en vehículo: %s", enVehiculo)

	require.Len(t, f.movs.Items, 1)
	assert.Equal(t, entity.MovDevolucionCliente, f.movs.Items[0].Tipo)
}

func TestAjusteManual_ConSigno(t *testing.T) {
	f := nuevaFixture(t)

	err := f.uc.AjusteManual(context.Background(), oficinaID, dto.AjusteManualRequest{
		ProductoID:    productoID,
		Cantidad:      decimal.NewFromInt(-3),
		UbicacionTipo: entity.UbicacionDeposito,
		Motivo:        "conteo físico",
	})
	require.NoError(t, err)
	assert.True(t, f.stock.Cantidad(entity.UbicacionDeposito, "", productoID).Equal(decimal.NewFromInt(47)))

	require.Len(t, f.movs.Items, 1)
	assert.Equal(t, entity.MovAjuste, f.movs.Items[0].Tipo)
	assert.True(t, f.movs.Items[0].Cantidad.Equal(decimal.NewFromInt(-3)))
}

func TestAjusteManual_Validaciones(t *testing.T) {
	f := nuevaFixture(t)

	// Cantidad cero no dice nada.
	err := f.uc.AjusteManual(context.Background(), oficinaID, dto.AjusteManualRequest{
		ProductoID:    productoID,
		UbicacionTipo: entity.UbicacionDeposito,
		Motivo:        "conteo",
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	// Un ajuste negativo valida disponibilidad igual que cualquier salida.
	err = f.uc.AjusteManual(context.Background(), oficinaID, dto.AjusteManualRequest{
		ProductoID:    productoID,
		Cantidad:      decimal.NewFromInt(-60),
		UbicacionTipo: entity.UbicacionDeposito,
		Motivo:        "conteo físico",
	})
	require.ErrorIs(t, err, domain.ErrStockInsuficiente)
	assert.True(t, f.stock.Cantidad(entity.UbicacionDeposito, "", productoID).Equal(decimal.NewFromInt(50)))
}
