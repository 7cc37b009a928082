package pedidos_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmolina/avicola-api/internal/application/apptest"
	"github.com/jmolina/avicola-api/internal/application/dto"
	"github.com/jmolina/avicola-api/internal/application/pedidos"
	"github.com/jmolina/avicola-api/internal/domain"
	"github.com/jmolina/avicola-api/internal/domain/entity"
	"github.com/jmolina/avicola-api/pkg/reloj"
)

const (
	clienteID  = "cli-1"
	productoID = "prod-huevo"
	vehiculoID = "veh-1"
	choferID   = "usr-chofer"
)

type pedidoFixture struct {
	uc        *pedidos.PedidoUseCase
	pedidos   *apptest.PedidoMem
	viajes    *apptest.ViajeMem
	vehiculos *apptest.VehiculoMem
	ahora     time.Time
}

func nuevaFixture(t *testing.T) *pedidoFixture {
	t.Helper()
	ahora := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	clk := reloj.Fijo(ahora)

	clientesMem := apptest.NewClienteMem()
	require.NoError(t, clientesMem.Create(&entity.Cliente{
		ID: clienteID, Nombre: "Kiosco 9 de Julio", Estado: entity.ClienteActivo,
	}))
	productos := apptest.NewProductoMem()
	require.NoError(t, productos.Create(&entity.Producto{
		ID: productoID, Nombre: "Huevo blanco", Tipo: entity.ProductoHuevo,
		UnidadBase: "Maple", Precio: decimal.NewFromInt(600), Activo: true,
	}))
	vehiculos := apptest.NewVehiculoMem()
	require.NoError(t, vehiculos.Create(&entity.Vehiculo{
		ID: vehiculoID, Patente: "AD789GH", Activo: true,
	}))
	usuarios := apptest.NewUsuarioMem()
	require.NoError(t, usuarios.Create(&entity.Usuario{
		ID: choferID, Nombre: "Tito", Email: "tito@avicola.local",
		Rol: entity.RolChofer, Activo: true,
	}))

	pedidosMem := apptest.NewPedidoMem()
	viajesMem := apptest.NewViajeMem()
	uc := pedidos.NewPedidoUseCase(pedidosMem, viajesMem, vehiculos, clientesMem, productos, usuarios, clk)
	return &pedidoFixture{uc: uc, pedidos: pedidosMem, viajes: viajesMem, vehiculos: vehiculos, ahora: ahora}
}

func (f *pedidoFixture) crearPedido(t *testing.T) *dto.PedidoResponse {
	t.Helper()
	out, err := f.uc.CrearPedido(context.Background(), dto.CrearPedidoRequest{
		ClienteID: clienteID,
		Notas:     "dejar en el depósito del fondo",
		Items: []dto.PedidoItem{
			{ProductoID: productoID, Cantidad: decimal.NewFromInt(5), Unidad: "Maple", PrecioUnitario: decimal.NewFromInt(600)},
		},
	})
	require.NoError(t, err)
	return out
}

func (f *pedidoFixture) iniciarViaje(t *testing.T) *dto.ViajeResponse {
	t.Helper()
	v, err := f.uc.IniciarViaje(context.Background(), dto.IniciarViajeRequest{
		VehiculoID: vehiculoID,
		ChoferID:   choferID,
	})
	require.NoError(t, err)
	return v
}

func TestCrearPedido_NoTocaStock(t *testing.T) {
	f := nuevaFixture(t)

	out := f.crearPedido(t)
	assert.Equal(t, entity.PedidoPendiente, out.Estado)
	require.Len(t, out.Items, 1)
	assert.True(t, out.Items[0].Cantidad.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, "Maple", out.Items[0].Unidad)
}

func TestCrearPedido_Validaciones(t *testing.T) {
	f := nuevaFixture(t)

	_, err := f.uc.CrearPedido(context.Background(), dto.CrearPedidoRequest{
		ClienteID: clienteID,
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.CrearPedido(context.Background(), dto.CrearPedidoRequest{
		ClienteID: clienteID,
		Items: []dto.PedidoItem{
			{ProductoID: productoID, Cantidad: decimal.NewFromInt(2), Unidad: "Bandeja"},
		},
	})
	require.ErrorIs(t, err, domain.ErrUnidadDesconocida)

	_, err = f.uc.CrearPedido(context.Background(), dto.CrearPedidoRequest{
		ClienteID: "no-existe",
		Items: []dto.PedidoItem{
			{ProductoID: productoID, Cantidad: decimal.NewFromInt(2)},
		},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAsignarPedido_SoloAViajeEnCurso(t *testing.T) {
	f := nuevaFixture(t)
	p := f.crearPedido(t)
	v := f.iniciarViaje(t)

	out, err := f.uc.AsignarPedido(context.Background(), p.ID, dto.AsignarPedidoRequest{ViajeID: v.ID})
	require.NoError(t, err)
	assert.Equal(t, entity.PedidoAsignado, out.Estado)
	assert.Equal(t, v.ID, out.ViajeID)

	// Un pedido ya asignado no se reasigna.
	_, err = f.uc.AsignarPedido(context.Background(), p.ID, dto.AsignarPedidoRequest{ViajeID: v.ID})
	require.ErrorIs(t, err, domain.ErrConflict)

	// Tampoco se asigna a un viaje finalizado.
	_, err = f.uc.FinalizarViaje(context.Background(), v.ID)
	require.NoError(t, err)
	p2 := f.crearPedido(t)
	_, err = f.uc.AsignarPedido(context.Background(), p2.ID, dto.AsignarPedidoRequest{ViajeID: v.ID})
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestEntregarPedido(t *testing.T) {
	f := nuevaFixture(t)
	p := f.crearPedido(t)

	out, err := f.uc.EntregarPedido(context.Background(), p.ID, dto.EntregarPedidoRequest{Pagado: true})
	require.NoError(t, err)
	assert.Equal(t, entity.PedidoEntregado, out.Estado)
	assert.True(t, out.Pagado)
	require.NotNil(t, out.FechaEntrega)

	// Entregado es terminal.
	_, err = f.uc.EntregarPedido(context.Background(), p.ID, dto.EntregarPedidoRequest{})
	require.ErrorIs(t, err, domain.ErrConflict)
	_, err = f.uc.CancelarPedido(context.Background(), p.ID)
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestCancelarPedido(t *testing.T) {
	f := nuevaFixture(t)
	p := f.crearPedido(t)

	out, err := f.uc.CancelarPedido(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PedidoCancelado, out.Estado)

	_, err = f.uc.EntregarPedido(context.Background(), p.ID, dto.EntregarPedidoRequest{})
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestIniciarViaje_UnoEnCursoPorVehiculo(t *testing.T) {
	f := nuevaFixture(t)

	v := f.iniciarViaje(t)
	assert.Equal(t, entity.ViajeEnCurso, v.Estado)

	veh, err := f.vehiculos.GetByID(vehiculoID)
	require.NoError(t, err)
	assert.True(t, veh.EnRuta)

	_, err = f.uc.IniciarViaje(context.Background(), dto.IniciarViajeRequest{
		VehiculoID: vehiculoID,
		ChoferID:   choferID,
	})
	require.ErrorIs(t, err, domain.ErrEstadoActivoDuplicado)
}

func TestFinalizarViaje_DevuelveElVehiculoABase(t *testing.T) {
	f := nuevaFixture(t)
	v := f.iniciarViaje(t)

	out, err := f.uc.FinalizarViaje(context.Background(), v.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ViajeFinalizado, out.Estado)
	require.NotNil(t, out.FechaRegreso)

	veh, err := f.vehiculos.GetByID(vehiculoID)
	require.NoError(t, err)
	assert.False(t, veh.EnRuta)

	// Con el viaje cerrado el vehículo puede volver a salir.
	v2 := f.iniciarViaje(t)
	assert.NotEqual(t, v.ID, v2.ID)

	_, err = f.uc.FinalizarViaje(context.Background(), v.ID)
	require.ErrorIs(t, err, domain.ErrConflict)
}
