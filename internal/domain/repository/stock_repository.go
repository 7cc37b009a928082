package repository

import (
	"time"

	"github.com/jmolina/avicola-api/internal/domain/entity"
)

// StockRepository puerto para las cantidades actuales por (ubicación, producto).
type StockRepository interface {
	Get(ubicacionTipo, ubicacionID, productoID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para la secuencia
	// leer-verificar-descontar. Si no existe devuelve una fila en cero.
	GetForUpdate(ubicacionTipo, ubicacionID, productoID string) (*entity.Stock, error)
	Upsert(s *entity.Stock) error
	ListPorUbicacion(ubicacionTipo, ubicacionID string) ([]*entity.Stock, error)
}

// MovimientoFiltro filtros para listar el libro de movimientos.
type MovimientoFiltro struct {
	UbicacionTipo string
	UbicacionID   string
	ProductoID    string
	Tipo          string
	Desde         *time.Time
	Hasta         *time.Time
	Limit         int
	Offset        int
}

// MovimientoRepository puerto del libro de movimientos (solo inserción).
type MovimientoRepository interface {
	Create(m *entity.MovimientoStock) error
	List(f MovimientoFiltro) ([]*entity.MovimientoStock, error)
}
