// Package unidades implementa la conversión entre unidades de venta de
// huevos (Unidad, Docena, Maple, Cajón) y la unidad base declarada por cada
// producto. Todo el stock se almacena en la unidad base del producto; las
// demás unidades existen solo al momento de cargar o mostrar datos.
package unidades

import (
	"strings"

	"github.com/jmolina/avicola-api/internal/domain"
	"github.com/shopspring/decimal"
)

// Nombres canónicos de unidad.
const (
	Unidad = "Unidad"
	Docena = "Docena"
	Maple  = "Maple" // bandeja de 30 huevos
	Cajon  = "Cajon" // cajón de 360 huevos (12 maples)
)

// factores relativos a Unidad.
var factores = map[string]decimal.Decimal{
	"unidad": decimal.NewFromInt(1),
	"docena": decimal.NewFromInt(12),
	"maple":  decimal.NewFromInt(30),
	"cajon":  decimal.NewFromInt(360),
}

// normalizar acepta variantes con mayúsculas y tilde ("Cajón" == "cajon").
func normalizar(nombre string) string {
	s := strings.ToLower(strings.TrimSpace(nombre))
	s = strings.ReplaceAll(s, "ó", "o")
	return s
}

// Factor devuelve el multiplicador de la unidad respecto de Unidad.
// Un nombre desconocido es un error: un typo en la unidad no puede
// degradar silenciosamente a factor 1 y desvalorizar una venta 30 veces.
func Factor(nombre string) (decimal.Decimal, error) {
	f, ok := factores[normalizar(nombre)]
	if !ok {
		return decimal.Zero, domain.ErrUnidadDesconocida
	}
	return f, nil
}

// EsValida informa si el nombre corresponde a una unidad conocida.
func EsValida(nombre string) bool {
	_, ok := factores[normalizar(nombre)]
	return ok
}

// ACantidadBase convierte una cantidad expresada en unidadEntrada a la
// unidad base del producto: cantidad * factor(entrada) / factor(base).
func ACantidadBase(cantidad decimal.Decimal, unidadEntrada, unidadBase string) (decimal.Decimal, error) {
	fe, err := Factor(unidadEntrada)
	if err != nil {
		return decimal.Zero, err
	}
	fb, err := Factor(unidadBase)
	if err != nil {
		return decimal.Zero, err
	}
	return cantidad.Mul(fe).Div(fb), nil
}

// ADisplay es la inversa de ACantidadBase: convierte una cantidad en unidad
// base del producto a la unidad pedida.
func ADisplay(cantidadBase decimal.Decimal, unidadBase, unidadDestino string) (decimal.Decimal, error) {
	return ACantidadBase(cantidadBase, unidadBase, unidadDestino)
}

// PrecioPorUnidadBase normaliza un precio dado por unidadEntrada al precio
// por unidad base del producto. Misma fórmula que la cantidad: el total
// cantidad_base × precio_base coincide con cantidad_entrada × precio_entrada.
func PrecioPorUnidadBase(precio decimal.Decimal, unidadEntrada, unidadBase string) (decimal.Decimal, error) {
	fe, err := Factor(unidadEntrada)
	if err != nil {
		return decimal.Zero, err
	}
	fb, err := Factor(unidadBase)
	if err != nil {
		return decimal.Zero, err
	}
	// precio por entrada / unidades-base por entrada = precio * fb / fe
	return precio.Mul(fb).Div(fe), nil
}

// ADisplayPrecio es la inversa de PrecioPorUnidadBase: convierte un precio
// por unidad base al precio por la unidad pedida.
func ADisplayPrecio(precioBase decimal.Decimal, unidadBase, unidadDestino string) (decimal.Decimal, error) {
	return PrecioPorUnidadBase(precioBase, unidadBase, unidadDestino)
}
