package repository

import (
	"time"

	"github.com/jmolina/avicola-api/internal/domain/entity"
)

// VentaRepository puerto de persistencia para ventas y sus detalles.
type VentaRepository interface {
	Create(v *entity.Venta) error
	CreateDetalle(d *entity.DetalleVenta) error
	GetByID(id string) (*entity.Venta, error)
	ListDetalles(ventaID string) ([]*entity.DetalleVenta, error)
	List(desde, hasta time.Time, limit, offset int) ([]*entity.Venta, error)
}
