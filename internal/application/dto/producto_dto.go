package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductoRequest body para POST /api/productos.
type CreateProductoRequest struct {
	Nombre      string          `json:"nombre"`
	Tipo        string          `json:"tipo"`        // huevo, insumo, embalaje
	UnidadBase  string          `json:"unidad_base"` // Unidad, Docena, Maple, Cajon
	Precio      decimal.Decimal `json:"precio"`
	StockMinimo decimal.Decimal `json:"stock_minimo"`
}

// UpdateProductoRequest body para PUT /api/productos/:id.
type UpdateProductoRequest struct {
	Nombre      *string          `json:"nombre,omitempty"`
	Precio      *decimal.Decimal `json:"precio,omitempty"`
	StockMinimo *decimal.Decimal `json:"stock_minimo,omitempty"`
	Activo      *bool            `json:"activo,omitempty"`
}

// ProductoResponse representación de un producto.
type ProductoResponse struct {
	ID          string          `json:"id"`
	Nombre      string          `json:"nombre"`
	Tipo        string          `json:"tipo"`
	UnidadBase  string          `json:"unidad_base"`
	Precio      decimal.Decimal `json:"precio"`
	Costo       decimal.Decimal `json:"costo"`
	StockMinimo decimal.Decimal `json:"stock_minimo"`
	Activo      bool            `json:"activo"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductoListResponse listado paginado.
type ProductoListResponse struct {
	Items []ProductoResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
