package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmolina/avicola-api/internal/application/clientes"
	"github.com/jmolina/avicola-api/internal/application/granja"
	"github.com/jmolina/avicola-api/internal/application/inventario"
	"github.com/jmolina/avicola-api/internal/application/ventas"
	"github.com/jmolina/avicola-api/internal/domain/repository"
)

var _ inventario.TxRunner = (*TxRunner)(nil)
var _ ventas.TxRunner = (*TxRunner)(nil)
var _ clientes.TxRunner = (*TxRunner)(nil)
var _ granja.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, pasando
// repositorios atados a esa tx.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run transacción del motor de stock (compras, cargas, descargas, ajustes).
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovimientoRepository,
	stockRepo repository.StockRepository,
	productoRepo repository.ProductoRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewMovimientoRepository(tx), NewStockRepository(tx), NewProductoRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunVenta transacción del cierre de una venta: stock, venta, cliente y
// asiento de cuenta corriente juntos.
func (r *TxRunner) RunVenta(ctx context.Context, fn func(
	movRepo repository.MovimientoRepository,
	stockRepo repository.StockRepository,
	clienteRepo repository.ClienteRepository,
	ventaRepo repository.VentaRepository,
	pagoRepo repository.PagoRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewMovimientoRepository(tx),
		NewStockRepository(tx),
		NewClienteRepository(tx),
		NewVentaRepository(tx),
		NewPagoRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunCuenta transacción de pagos y ajustes de deuda.
func (r *TxRunner) RunCuenta(ctx context.Context, fn func(
	clienteRepo repository.ClienteRepository,
	pagoRepo repository.PagoRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewClienteRepository(tx), NewPagoRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunGranja transacción de silos, galpones y lotes.
func (r *TxRunner) RunGranja(ctx context.Context, fn func(
	galponRepo repository.GalponRepository,
	loteRepo repository.LoteRepository,
	siloRepo repository.SiloRepository,
	movRepo repository.MovimientoRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewGalponRepository(tx),
		NewLoteRepository(tx),
		NewSiloRepository(tx),
		NewMovimientoRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
