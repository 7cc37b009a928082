package inventario

import (
	"context"

	"github.com/jmolina/avicola-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de stock.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovimientoRepository,
		stockRepo repository.StockRepository,
		productoRepo repository.ProductoRepository,
	) error) error
}
