package granja_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmolina/avicola-api/internal/application/apptest"
	"github.com/jmolina/avicola-api/internal/application/dto"
	"github.com/jmolina/avicola-api/internal/application/granja"
	"github.com/jmolina/avicola-api/internal/domain"
	"github.com/jmolina/avicola-api/internal/domain/entity"
	"github.com/jmolina/avicola-api/pkg/reloj"
)

const (
	supervisorID = "sup-1"
	siloID       = "silo-norte"
	galponCriaID = "galpon-cria"
	galponProdID = "galpon-prod"
	loteCriaID   = "lote-cria"
)

type granjaFixture struct {
	uc       *granja.GranjaUseCase
	silos    *apptest.SiloMem
	galpones *apptest.GalponMem
	lotes    *apptest.LoteMem
	movs     *apptest.MovimientoMem
	ahora    time.Time
}

// nuevaFixture arma un silo de 10.000 kg con 500 kg de maíz a $10/kg, un
// galpón de cría con un lote activo de 1000 pollitas y un galpón de
// producción vacío.
func nuevaFixture(t *testing.T) *granjaFixture {
	t.Helper()
	ahora := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	clk := reloj.Fijo(ahora)

	silos := apptest.NewSiloMem()
	require.NoError(t, silos.Create(&entity.Silo{
		ID:             siloID,
		Nombre:         "Silo Norte",
		CapacidadKg:    decimal.NewFromInt(10000),
		CantidadActual: decimal.NewFromInt(500),
	}))
	require.NoError(t, silos.UpsertContenido(&entity.ContenidoSilo{
		ID:         "cont-maiz",
		SiloID:     siloID,
		Material:   "maiz",
		CantidadKg: decimal.NewFromInt(500),
		CostoPorKg: decimal.NewFromInt(10),
	}))

	galpones := apptest.NewGalponMem()
	require.NoError(t, galpones.Create(&entity.Galpon{
		ID:           galponCriaID,
		Nombre:       "Galpón Cría 1",
		Tipo:         entity.GalponCria,
		Estado:       entity.GalponActivo,
		CantidadAves: 1000,
	}))
	require.NoError(t, galpones.Create(&entity.Galpon{
		ID:     galponProdID,
		Nombre: "Galpón A",
		Tipo:   entity.GalponProduccion,
		Estado: entity.GalponActivo,
	}))

	lotes := apptest.NewLoteMem()
	require.NoError(t, lotes.Create(&entity.LoteAve{
		ID:              loteCriaID,
		GalponID:        galponCriaID,
		TipoAve:         "pollita",
		CantidadInicial: 1000,
		CantidadActual:  1000,
		PrecioPorAve:    decimal.NewFromInt(800),
		FechaIngreso:    ahora.AddDate(0, -2, 0),
		Estado:          entity.LoteActivo,
	}))

	movs := apptest.NewMovimientoMem()
	tx := &apptest.TxMem{
		Movimientos: movs,
		Galpones:    galpones,
		Lotes:       lotes,
		Silos:       silos,
	}
	uc := granja.NewGranjaUseCase(tx, silos, galpones, lotes, clk)
	return &granjaFixture{uc: uc, silos: silos, galpones: galpones, lotes: lotes, movs: movs, ahora: ahora}
}

func TestIngresoSilo_PromediaCosto(t *testing.T) {
	f := nuevaFixture(t)

	out, err := f.uc.IngresoSilo(context.Background(), siloID, supervisorID, dto.IngresoSiloRequest{
		Material:   "Maiz",
		CantidadKg: decimal.NewFromInt(500),
		CostoPorKg: decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	assert.True(t, out.CantidadActual.Equal(decimal.NewFromInt(1000)))

	// 500 kg a $10 más 500 kg a $20 deja el kilo promedio en $15.
	c, err := f.silos.GetContenidoForUpdate(siloID, "maiz")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.True(t, c.CantidadKg.Equal(decimal.NewFromInt(1000)))
	assert.True(t, c.CostoPorKg.Equal(decimal.NewFromInt(15)), "costo promedio: %s", c.CostoPorKg)

	require.Len(t, f.movs.Items, 1)
	mov := f.movs.Items[0]
	assert.Equal(t, entity.MovIngresoSilo, mov.Tipo)
	assert.Equal(t, "silo", mov.UbicacionTipo)
	assert.Equal(t, "maiz", mov.ProductoID)
	assert.True(t, mov.Cantidad.Equal(decimal.NewFromInt(500)))
}

func TestIngresoSilo_MaterialNuevo(t *testing.T) {
	f := nuevaFixture(t)

	_, err := f.uc.IngresoSilo(context.Background(), siloID, supervisorID, dto.IngresoSiloRequest{
		Material:   "Soja",
		CantidadKg: decimal.NewFromInt(200),
		CostoPorKg: decimal.NewFromInt(30),
	})
	require.NoError(t, err)

	c, err := f.silos.GetContenidoForUpdate(siloID, "soja")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.True(t, c.CantidadKg.Equal(decimal.NewFromInt(200)))
	assert.True(t, c.CostoPorKg.Equal(decimal.NewFromInt(30)))
}

func TestIngresoSilo_CapacidadExcedida(t *testing.T) {
	f := nuevaFixture(t)

	// 500 ya adentro + 9600 supera los 10.000 kg del silo.
	_, err := f.uc.IngresoSilo(context.Background(), siloID, supervisorID, dto.IngresoSiloRequest{
		Material:   "maiz",
		CantidadKg: decimal.NewFromInt(9600),
		CostoPorKg: decimal.NewFromInt(10),
	})
	require.ErrorIs(t, err, domain.ErrCapacidadExcedida)

	s, err := f.silos.GetByID(siloID)
	require.NoError(t, err)
	assert.True(t, s.CantidadActual.Equal(decimal.NewFromInt(500)))
	assert.Empty(t, f.movs.Items)
}

func TestConsumoSilo_DescuentaYRegistraMovimiento(t *testing.T) {
	f := nuevaFixture(t)

	out, err := f.uc.ConsumoSilo(context.Background(), siloID, supervisorID, dto.ConsumoSiloRequest{
		Material:   "maiz",
		CantidadKg: decimal.NewFromInt(200),
		GalponID:   galponProdID,
	})
	require.NoError(t, err)
	assert.True(t, out.CantidadActual.Equal(decimal.NewFromInt(300)))

	c, err := f.silos.GetContenidoForUpdate(siloID, "maiz")
	require.NoError(t, err)
	assert.True(t, c.CantidadKg.Equal(decimal.NewFromInt(300)))

	require.Len(t, f.movs.Items, 1)
	mov := f.movs.Items[0]
	assert.Equal(t, entity.MovConsumoProduccion, mov.Tipo)
	assert.True(t, mov.Cantidad.Equal(decimal.NewFromInt(-200)))
	assert.Equal(t, galponProdID, mov.Referencia)
}

func TestConsumoSilo_Insuficiente(t *testing.T) {
	f := nuevaFixture(t)

	_, err := f.uc.ConsumoSilo(context.Background(), siloID, supervisorID, dto.ConsumoSiloRequest{
		Material:   "maiz",
		CantidadKg: decimal.NewFromInt(600),
	})
	var stockErr *domain.StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "500", stockErr.Disponible)

	// Un material que nunca entró tiene disponible cero.
	_, err = f.uc.ConsumoSilo(context.Background(), siloID, supervisorID, dto.ConsumoSiloRequest{
		Material:   "soja",
		CantidadKg: decimal.NewFromInt(1),
	})
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "0", stockErr.Disponible)

	c, err := f.silos.GetContenidoForUpdate(siloID, "maiz")
	require.NoError(t, err)
	assert.True(t, c.CantidadKg.Equal(decimal.NewFromInt(500)))
	assert.Empty(t, f.movs.Items)
}

func TestCrearLote_UnSoloActivoPorGalpon(t *testing.T) {
	f := nuevaFixture(t)

	// El galpón de cría ya tiene su lote activo.
	_, err := f.uc.CrearLote(context.Background(), galponCriaID, supervisorID, dto.CrearLoteRequest{
		TipoAve:      "pollita",
		Cantidad:     500,
		PrecioPorAve: decimal.NewFromInt(700),
	})
	require.ErrorIs(t, err, domain.ErrEstadoActivoDuplicado)

	out, err := f.uc.CrearLote(context.Background(), galponProdID, supervisorID, dto.CrearLoteRequest{
		TipoAve:      "ponedora",
		Cantidad:     800,
		PrecioPorAve: decimal.NewFromInt(1200),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.LoteActivo, out.Estado)
	assert.Equal(t, 800, out.CantidadActual)

	g, err := f.galpones.GetByID(galponProdID)
	require.NoError(t, err)
	assert.Equal(t, 800, g.CantidadAves)
}

func TestRegistrarMortalidad_DescuentaLoteYGalpon(t *testing.T) {
	f := nuevaFixture(t)

	out, err := f.uc.RegistrarMortalidad(context.Background(), loteCriaID, supervisorID, dto.RegistrarMortalidadRequest{
		Cantidad: 40,
		Motivo:   "golpe de calor",
	})
	require.NoError(t, err)
	assert.Equal(t, 960, out.CantidadActual)
	assert.Equal(t, 1000, out.CantidadInicial)

	g, err := f.galpones.GetByID(galponCriaID)
	require.NoError(t, err)
	assert.Equal(t, 960, g.CantidadAves)

	eventos, err := f.uc.ListMortalidad(context.Background(), loteCriaID)
	require.NoError(t, err)
	require.Len(t, eventos, 1)
	assert.Equal(t, 40, eventos[0].Cantidad)
	assert.Equal(t, "golpe de calor", eventos[0].Motivo)
}

func TestRegistrarMortalidad_ExcesoNoDejaLoteNegativo(t *testing.T) {
	f := nuevaFixture(t)

	_, err := f.uc.RegistrarMortalidad(context.Background(), loteCriaID, supervisorID, dto.RegistrarMortalidadRequest{
		Cantidad: 2000,
	})
	require.ErrorIs(t, err, domain.ErrCantidadInvalida)

	l, err := f.lotes.GetByID(loteCriaID)
	require.NoError(t, err)
	assert.Equal(t, 1000, l.CantidadActual)

	g, err := f.galpones.GetByID(galponCriaID)
	require.NoError(t, err)
	assert.Equal(t, 1000, g.CantidadAves)
}

func TestCerrarLote(t *testing.T) {
	f := nuevaFixture(t)

	out, err := f.uc.CerrarLote(context.Background(), loteCriaID)
	require.NoError(t, err)
	assert.Equal(t, entity.LoteCerrado, out.Estado)
	require.NotNil(t, out.FechaSalida)
	assert.True(t, out.FechaSalida.Equal(f.ahora))

	// Las aves que quedaban salen del conteo del galpón.
	g, err := f.galpones.GetByID(galponCriaID)
	require.NoError(t, err)
	assert.Equal(t, 0, g.CantidadAves)

	_, err = f.uc.CerrarLote(context.Background(), loteCriaID)
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestTransferirLote_AbreLoteEnDestino(t *testing.T) {
	f := nuevaFixture(t)

	out, err := f.uc.TransferirLote(context.Background(), loteCriaID, dto.TransferirLoteRequest{
		GalponDestinoID: galponProdID,
		Cantidad:        400,
	})
	require.NoError(t, err)
	assert.Equal(t, galponProdID, out.GalponID)
	assert.Equal(t, 400, out.CantidadActual)
	assert.Equal(t, "pollita", out.TipoAve)
	assert.Equal(t, entity.LoteActivo, out.Estado)

	origen, err := f.lotes.GetByID(loteCriaID)
	require.NoError(t, err)
	assert.Equal(t, 600, origen.CantidadActual)
	assert.Equal(t, entity.LoteActivo, origen.Estado)

	gCria, err := f.galpones.GetByID(galponCriaID)
	require.NoError(t, err)
	assert.Equal(t, 600, gCria.CantidadAves)
	gProd, err := f.galpones.GetByID(galponProdID)
	require.NoError(t, err)
	assert.Equal(t, 400, gProd.CantidadAves)
}

func TestTransferirLote_TotalCierraElOrigen(t *testing.T) {
	f := nuevaFixture(t)

	_, err := f.uc.TransferirLote(context.Background(), loteCriaID, dto.TransferirLoteRequest{
		GalponDestinoID: galponProdID,
		Cantidad:        1000,
	})
	require.NoError(t, err)

	origen, err := f.lotes.GetByID(loteCriaID)
	require.NoError(t, err)
	assert.Equal(t, entity.LoteCerrado, origen.Estado)
	assert.Equal(t, 0, origen.CantidadActual)
	require.NotNil(t, origen.FechaSalida)
}

func TestTransferirLote_SumaAlLoteActivoDelDestino(t *testing.T) {
	f := nuevaFixture(t)

	// El destino ya tiene un lote activo: las aves se suman ahí.
	require.NoError(t, f.lotes.Create(&entity.LoteAve{
		ID:              "lote-prod",
		GalponID:        galponProdID,
		TipoAve:         "ponedora",
		CantidadInicial: 300,
		CantidadActual:  300,
		Estado:          entity.LoteActivo,
	}))

	out, err := f.uc.TransferirLote(context.Background(), loteCriaID, dto.TransferirLoteRequest{
		GalponDestinoID: galponProdID,
		Cantidad:        200,
	})
	require.NoError(t, err)
	assert.Equal(t, "lote-prod", out.ID)
	assert.Equal(t, 500, out.CantidadActual)
	assert.Equal(t, 500, out.CantidadInicial)
}

func TestTransferirLote_DestinoConIDMenor(t *testing.T) {
	f := nuevaFixture(t)

	// El destino ordena antes que el galpón de origen, así que los locks se
	// toman al revés del orden del pedido; el resultado no cambia.
	require.NoError(t, f.galpones.Create(&entity.Galpon{
		ID:     "galpon-a1",
		Nombre: "Galpón A1",
		Tipo:   entity.GalponProduccion,
		Estado: entity.GalponActivo,
	}))

	out, err := f.uc.TransferirLote(context.Background(), loteCriaID, dto.TransferirLoteRequest{
		GalponDestinoID: "galpon-a1",
		Cantidad:        250,
	})
	require.NoError(t, err)
	assert.Equal(t, "galpon-a1", out.GalponID)
	assert.Equal(t, 250, out.CantidadActual)

	gCria, err := f.galpones.GetByID(galponCriaID)
	require.NoError(t, err)
	assert.Equal(t, 750, gCria.CantidadAves)
	gDestino, err := f.galpones.GetByID("galpon-a1")
	require.NoError(t, err)
	assert.Equal(t, 250, gDestino.CantidadAves)
}

func TestTransferirLote_DestinoInvalido(t *testing.T) {
	f := nuevaFixture(t)

	// Un segundo galpón de cría no puede recibir la transferencia.
	require.NoError(t, f.galpones.Create(&entity.Galpon{
		ID:     "galpon-cria-2",
		Nombre: "Galpón Cría 2",
		Tipo:   entity.GalponCria,
		Estado: entity.GalponActivo,
	}))
	_, err := f.uc.TransferirLote(context.Background(), loteCriaID, dto.TransferirLoteRequest{
		GalponDestinoID: "galpon-cria-2",
		Cantidad:        100,
	})
	require.ErrorIs(t, err, domain.ErrConflict)

	// Tampoco al mismo galpón del lote.
	_, err = f.uc.TransferirLote(context.Background(), loteCriaID, dto.TransferirLoteRequest{
		GalponDestinoID: galponCriaID,
		Cantidad:        100,
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	// Más aves de las que tiene el lote.
	_, err = f.uc.TransferirLote(context.Background(), loteCriaID, dto.TransferirLoteRequest{
		GalponDestinoID: galponProdID,
		Cantidad:        1500,
	})
	require.ErrorIs(t, err, domain.ErrCantidadInvalida)
}
