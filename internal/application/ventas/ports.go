package ventas

import (
	"context"
	"time"

	"github.com/jmolina/avicola-api/internal/domain/entity"
	"github.com/jmolina/avicola-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// TxRunner ejecuta el cierre de una venta dentro de una transacción con los
// repositorios necesarios atados a esa tx.
type TxRunner interface {
	RunVenta(ctx context.Context, fn func(
		movRepo repository.MovimientoRepository,
		stockRepo repository.StockRepository,
		clienteRepo repository.ClienteRepository,
		ventaRepo repository.VentaRepository,
		pagoRepo repository.PagoRepository,
	) error) error
}

// Inventario es el contrato mínimo que ventas necesita del motor de stock:
// descontar una línea del vehículo dentro de la transacción del caller.
type Inventario interface {
	SalidaVentaEnTx(
		movRepo repository.MovimientoRepository,
		stockRepo repository.StockRepository,
		producto *entity.Producto,
		vehiculoID, usuarioID string,
		cantidadBase decimal.Decimal,
		ahora time.Time,
		referencia string,
	) error
}
