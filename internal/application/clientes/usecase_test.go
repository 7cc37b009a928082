package clientes_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmolina/avicola-api/internal/application/apptest"
	"github.com/jmolina/avicola-api/internal/application/clientes"
	"github.com/jmolina/avicola-api/internal/application/dto"
	"github.com/jmolina/avicola-api/internal/application/inventario"
	"github.com/jmolina/avicola-api/internal/application/ventas"
	"github.com/jmolina/avicola-api/internal/domain"
	"github.com/jmolina/avicola-api/internal/domain/entity"
	"github.com/jmolina/avicola-api/pkg/reloj"
)

const (
	cobradorID = "usr-cobrador"
	clienteID  = "cli-1"
)

type cuentaFixture struct {
	uc       *clientes.ClienteUseCase
	clientes *apptest.ClienteMem
	pagos    *apptest.PagoMem
	ahora    time.Time
}

// nuevaFixture arma un cliente moroso con deuda de 5000 vencida ayer.
func nuevaFixture(t *testing.T) *cuentaFixture {
	t.Helper()
	ahora := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	vencido := ahora.AddDate(0, 0, -1)

	clientesMem := apptest.NewClienteMem()
	require.NoError(t, clientesMem.Create(&entity.Cliente{
		ID:               clienteID,
		Nombre:           "Almacén Sur",
		Deuda:            decimal.NewFromInt(5000),
		VencimientoDeuda: &vencido,
		Estado:           entity.ClienteMoroso,
	}))
	pagos := apptest.NewPagoMem()
	tx := &apptest.TxMem{Clientes: clientesMem, Pagos: pagos}

	return &cuentaFixture{
		uc:       clientes.NewClienteUseCase(tx, clientesMem, pagos, reloj.Fijo(ahora)),
		clientes: clientesMem,
		pagos:    pagos,
		ahora:    ahora,
	}
}

// Un pago parcial baja la deuda pero no limpia el vencimiento: el cliente
// sigue moroso.
func TestRegistrarPago_Parcial(t *testing.T) {
	f := nuevaFixture(t)

	out, err := f.uc.RegistrarPago(context.Background(), clienteID, cobradorID, dto.RegistrarPagoRequest{
		Monto:      decimal.NewFromInt(2000),
		MetodoPago: entity.PagoEfectivo,
	})
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(3000).Equal(out.Deuda), "deuda quedó %s", out.Deuda)
	assert.NotNil(t, out.VencimientoDeuda, "con deuda viva el vencimiento sigue corriendo")
	assert.Equal(t, entity.ClienteMoroso, out.Estado)

	require.Len(t, f.pagos.Items, 1)
	assert.Equal(t, entity.AsientoPago, f.pagos.Items[0].Tipo)
	assert.True(t, decimal.NewFromInt(2000).Equal(f.pagos.Items[0].Monto))
}

// Pagar de más deja saldo a favor (deuda negativa), limpia el vencimiento y
// el cliente vuelve a activo.
func TestRegistrarPago_ExcesoDejaSaldoAFavor(t *testing.T) {
	f := nuevaFixture(t)

	out, err := f.uc.RegistrarPago(context.Background(), clienteID, cobradorID, dto.RegistrarPagoRequest{
		Monto:      decimal.NewFromInt(6000),
		MetodoPago: entity.PagoTransferencia,
	})
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(-1000).Equal(out.Deuda),
		"el exceso queda como saldo a favor, deuda %s", out.Deuda)
	assert.Nil(t, out.VencimientoDeuda)
	assert.Equal(t, entity.ClienteActivo, out.Estado)
}

// Monto no positivo o método desconocido se rechazan sin tocar la cuenta.
func TestRegistrarPago_Validaciones(t *testing.T) {
	f := nuevaFixture(t)

	_, err := f.uc.RegistrarPago(context.Background(), clienteID, cobradorID, dto.RegistrarPagoRequest{
		Monto:      decimal.Zero,
		MetodoPago: entity.PagoEfectivo,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.RegistrarPago(context.Background(), clienteID, cobradorID, dto.RegistrarPagoRequest{
		Monto:      decimal.NewFromInt(100),
		MetodoPago: entity.PagoCuentaCorriente, // no es un medio de pago real
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	cli, err := f.clientes.GetByID(clienteID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(5000).Equal(cli.Deuda))
	assert.Empty(t, f.pagos.Items)
}

// El ajuste manual exige motivo y asienta el tipo según el sentido.
func TestAjustarDeuda_MotivObligatorio(t *testing.T) {
	f := nuevaFixture(t)

	_, err := f.uc.AjustarDeuda(context.Background(), clienteID, cobradorID, dto.AjusteDeudaRequest{
		Monto:   decimal.NewFromInt(500),
		Aumenta: true,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "ajuste sin motivo debe rechazarse")

	out, err := f.uc.AjustarDeuda(context.Background(), clienteID, cobradorID, dto.AjusteDeudaRequest{
		Monto:   decimal.NewFromInt(500),
		Aumenta: true,
		Motivo:  "diferencia de reparto del 9/6",
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(5500).Equal(out.Deuda))

	require.Len(t, f.pagos.Items, 1)
	assert.Equal(t, entity.AsientoAjusteAumento, f.pagos.Items[0].Tipo)
	assert.Equal(t, "diferencia de reparto del 9/6", f.pagos.Items[0].Motivo)
}

// Un ajuste a la baja que salda la deuda limpia el vencimiento y saca al
// cliente de moroso.
func TestAjustarDeuda_BajaSaldaDeuda(t *testing.T) {
	f := nuevaFixture(t)

	out, err := f.uc.AjustarDeuda(context.Background(), clienteID, cobradorID, dto.AjusteDeudaRequest{
		Monto:  decimal.NewFromInt(5000),
		Motivo: "nota de crédito por huevos rotos",
	})
	require.NoError(t, err)

	assert.True(t, out.Deuda.IsZero(), "deuda quedó %s", out.Deuda)
	assert.Nil(t, out.VencimientoDeuda)
	assert.Equal(t, entity.ClienteActivo, out.Estado)
	require.Len(t, f.pagos.Items, 1)
	assert.Equal(t, entity.AsientoAjusteBaja, f.pagos.Items[0].Tipo)
}

// Morosos lista a los clientes con deuda vencida.
func TestMorosos(t *testing.T) {
	f := nuevaFixture(t)
	require.NoError(t, f.clientes.Create(&entity.Cliente{
		ID:     "cli-2",
		Nombre: "Kiosco Norte",
		Estado: entity.ClienteActivo,
	}))

	out, err := f.uc.Morosos(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, clienteID, out[0].ID)
}

// La deuda final tiene que coincidir con la inicial más la suma con signo de
// los asientos, mezclando ventas a cuenta, pagos y ajustes en ambos sentidos.
func TestCuentaCorriente_DeudaCoincideConLosAsientos(t *testing.T) {
	ahora := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	clk := reloj.Fijo(ahora)
	vence := ahora.AddDate(0, 0, 7)

	deudaInicial := decimal.NewFromInt(5000)
	clientesMem := apptest.NewClienteMem()
	require.NoError(t, clientesMem.Create(&entity.Cliente{
		ID:     clienteID,
		Nombre: "Almacén Sur",
		Deuda:  deudaInicial,
		Estado: entity.ClienteActivo,
	}))

	productos := apptest.NewProductoMem()
	require.NoError(t, productos.Create(&entity.Producto{
		ID:         "prod-huevo",
		Nombre:     "Huevo blanco",
		Tipo:       entity.ProductoHuevo,
		UnidadBase: "Maple",
		Precio:     decimal.NewFromInt(600),
		Costo:      decimal.NewFromInt(400),
		Activo:     true,
	}))
	vehiculos := apptest.NewVehiculoMem()
	require.NoError(t, vehiculos.Create(&entity.Vehiculo{
		ID: "veh-1", Patente: "AB123CD", Activo: true,
	}))
	stock := apptest.NewStockMem()
	stock.Set(entity.UbicacionVehiculo, "veh-1", "prod-huevo", decimal.NewFromInt(100))

	pagos := apptest.NewPagoMem()
	movs := apptest.NewMovimientoMem()
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
	ventasUC := ventas.NewVentaUseCase(tx, inv, clientesMem, vehiculos, productos, ventasMem, clk)
	cuentaUC := clientes.NewClienteUseCase(tx, clientesMem, pagos, clk)

	vender := func(maples int64) {
		t.Helper()
		_, err := ventasUC.CrearVenta(context.Background(), cobradorID, dto.CrearVentaRequest{
			ClienteID:        clienteID,
			VehiculoID:       "veh-1",
			MetodoPago:       entity.PagoCuentaCorriente,
			FechaVencimiento: &vence,
			Items: []dto.VentaItem{{
				ProductoID:     "prod-huevo",
				Cantidad:       decimal.NewFromInt(maples),
				Unidad:         "Maple",
				PrecioUnitario: decimal.NewFromInt(600),
			}},
		})
		require.NoError(t, err)
	}
	pagar := func(monto int64) {
		t.Helper()
		_, err := cuentaUC.RegistrarPago(context.Background(), clienteID, cobradorID, dto.RegistrarPagoRequest{
			Monto:      decimal.NewFromInt(monto),
			MetodoPago: entity.PagoEfectivo,
		})
		require.NoError(t, err)
	}
	ajustar := func(monto int64, aumenta bool) {
		t.Helper()
		_, err := cuentaUC.AjustarDeuda(context.Background(), clienteID, cobradorID, dto.AjusteDeudaRequest{
			Monto:   decimal.NewFromInt(monto),
			Aumenta: aumenta,
			Motivo:  "conciliación de reparto",
		})
		require.NoError(t, err)
	}

	vender(10)           // +6000
	pagar(4000)          // -4000
	ajustar(500, true)   // +500
	vender(5)            // +3000
	pagar(2500)          // -2500
	ajustar(1000, false) // -1000

	cli, err := clientesMem.GetByID(clienteID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(7000).Equal(cli.Deuda), "deuda quedó %s", cli.Deuda)

	// Reproduce la deuda solo desde el libro de asientos.
	saldo := deudaInicial
	require.Len(t, pagos.Items, 6)
	for _, p := range pagos.Items {
		switch p.Tipo {
		case entity.AsientoVentaCuenta, entity.AsientoAjusteAumento:
			saldo = saldo.Add(p.Monto)
		case entity.AsientoPago, entity.AsientoAjusteBaja:
			saldo = saldo.Sub(p.Monto)
		default:
			t.Fatalf("asiento de tipo desconocido %q", p.Tipo)
		}
	}
	assert.True(t, saldo.Equal(cli.Deuda), "libro %s vs deuda %s", saldo, cli.Deuda)
}
