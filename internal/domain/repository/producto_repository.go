package repository

import (
	"github.com/jmolina/avicola-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductoRepository puerto de persistencia para productos.
type ProductoRepository interface {
	Create(p *entity.Producto) error
	GetByID(id string) (*entity.Producto, error)
	Update(p *entity.Producto) error
	// UpdateCosto actualiza solo el costo promedio (usado por el motor de stock).
	UpdateCosto(productoID string, costo decimal.Decimal) error
	List(limit, offset int) ([]*entity.Producto, error)
	// ListBajoMinimo devuelve los productos cuyo stock total (todas las
	// ubicaciones) está por debajo de su StockMinimo.
	ListBajoMinimo() ([]*entity.Producto, error)
	Delete(id string) error
}
