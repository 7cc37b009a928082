package unidades_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmolina/avicola-api/internal/domain"
	"github.com/jmolina/avicola-api/internal/domain/unidades"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestFactor_UnidadesConocidas(t *testing.T) {
	casos := map[string]string{
		"Unidad": "1",
		"Docena": "12",
		"Maple":  "30",
		"Cajon":  "360",
	}
	for nombre, esperado := range casos {
		f, err := unidades.Factor(nombre)
		require.NoError(t, err, nombre)
		assert.True(t, f.Equal(dec(esperado)), "factor de %s", nombre)
	}
}

// El nombre se acepta con mayúsculas, espacios y tilde ("Cajón" == "cajon").
func TestFactor_NormalizaNombre(t *testing.T) {
	for _, variante := range []string{"cajón", "CAJON", " Cajon ", "Cajón"} {
		f, err := unidades.Factor(variante)
		require.NoError(t, err, variante)
		assert.True(t, f.Equal(dec("360")), variante)
	}
}

// Una unidad desconocida debe fallar, nunca degradar a factor 1: un typo en
// la unidad no puede cambiar el precio de una venta en un orden de magnitud.
func TestFactor_UnidadDesconocidaFalla(t *testing.T) {
	_, err := unidades.Factor("Mapel")
	require.ErrorIs(t, err, domain.ErrUnidadDesconocida)

	_, err = unidades.ACantidadBase(dec("5"), "Bandeja", unidades.Maple)
	require.ErrorIs(t, err, domain.ErrUnidadDesconocida)
}

// Escenario de referencia: producto con unidad base Maple, venta de 2 Cajón.
// 2 * 360 / 30 = 24 maples.
func TestACantidadBase_CajonAMaple(t *testing.T) {
	got, err := unidades.ACantidadBase(dec("2"), unidades.Cajon, unidades.Maple)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("24")), "esperaba 24 maples, obtuve %s", got)
}

func TestACantidadBase_DocenaAUnidad(t *testing.T) {
	got, err := unidades.ACantidadBase(dec("3"), unidades.Docena, unidades.Unidad)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("36")))
}

// Ida y vuelta: base -> display -> base devuelve la cantidad original.
func TestConversion_RoundTrip(t *testing.T) {
	unidadesPrueba := []string{unidades.Unidad, unidades.Docena, unidades.Maple, unidades.Cajon}
	cantidades := []string{"1", "7", "24", "100.5"}

	for _, u := range unidadesPrueba {
		for _, c := range cantidades {
			base, err := unidades.ACantidadBase(dec(c), u, unidades.Maple)
			require.NoError(t, err)
			display, err := unidades.ADisplay(base, unidades.Maple, u)
			require.NoError(t, err)
			assert.True(t, display.Equal(dec(c)), "round-trip %s %s: obtuve %s", c, u, display)
		}
	}
}

// El total no depende de la unidad en que se cargó: cantidad_base × precio_base
// debe igualar cantidad_entrada × precio_entrada.
func TestPrecioPorUnidadBase_ConservaElTotal(t *testing.T) {
	cantidad := dec("2")     // 2 cajones
	precio := dec("7200.00") // precio por cajón

	cantBase, err := unidades.ACantidadBase(cantidad, unidades.Cajon, unidades.Maple)
	require.NoError(t, err)
	precioBase, err := unidades.PrecioPorUnidadBase(precio, unidades.Cajon, unidades.Maple)
	require.NoError(t, err)

	totalEntrada := cantidad.Mul(precio)
	totalBase := cantBase.Mul(precioBase)
	assert.True(t, totalBase.Equal(totalEntrada), "total entrada %s != total base %s", totalEntrada, totalBase)
	// 7200 por cajón = 600 por maple
	assert.True(t, precioBase.Equal(dec("600")))
}
