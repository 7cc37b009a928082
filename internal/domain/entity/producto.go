package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de producto.
const (
	ProductoHuevo    = "huevo"
	ProductoInsumo   = "insumo"
	ProductoEmbalaje = "embalaje"
)

// Producto representa un artículo comercializable o de consumo interno.
// Stock y StockMinimo se expresan siempre en UnidadBase del producto;
// cualquier otra unidad es una conversión de entrada/salida (ver unidades).
type Producto struct {
	ID          string
	Nombre      string
	Tipo        string          // huevo, insumo, embalaje
	UnidadBase  string          // Unidad, Docena, Maple, Cajon
	Precio      decimal.Decimal // precio de venta por unidad base
	Costo       decimal.Decimal // costo promedio ponderado por unidad base
	StockMinimo decimal.Decimal // umbral de alerta, en unidad base
	Activo      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
